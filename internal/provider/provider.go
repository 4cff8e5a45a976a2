// Package provider fetches xview pages and turns them into media records
// and search listings.
package provider

import (
	"context"

	"github.com/samber/mo"

	"xview/internal/media"
)

// Provider is the interface the command layer talks to.
type Provider interface {
	// Resolve fetches the page for an id or URL and returns a loaded record.
	Resolve(ctx context.Context, input string) (*media.Record, error)

	// Thumbnail downloads the record's thumbnail, blurred when blur > 0.
	Thumbnail(ctx context.Context, rec *media.Record, blur int) mo.Option[[]byte]

	// Search returns listing hits for a query. It never fails; no result is
	// an empty slice.
	Search(ctx context.Context, query string, page int) []media.SearchHit

	// Category returns listing hits for a category page.
	Category(ctx context.Context, name string, page int) []media.SearchHit

	// Close releases pooled connections.
	Close()
}

// ImageTransformer post-processes downloaded images.
type ImageTransformer interface {
	Transform(ctx context.Context, data []byte, strength int) ([]byte, error)
}
