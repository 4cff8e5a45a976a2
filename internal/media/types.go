// Package media defines the record model shared by the xview provider and
// the command layer.
package media

import (
	"fmt"
	"strings"

	"github.com/samber/mo"

	"xview/internal/extract"
)

// CanonicalURL returns the page URL for id under root.
func CanonicalURL(root, id string) string {
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root + id + "/"
}

// SearchHit is one entry of a search or category listing.
type SearchHit struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// Info is a snapshot of every field of a Record, suitable for JSON output.
type Info struct {
	ID                 string             `json:"id"`
	URL                string             `json:"url"`
	Title              mo.Option[string]  `json:"title"`
	Description        mo.Option[string]  `json:"description"`
	Thumbnail          mo.Option[string]  `json:"thumbnail"`
	Duration           mo.Option[int]     `json:"duration"`
	DurationFormatted  mo.Option[string]  `json:"duration_formatted"`
	Views              mo.Option[int]     `json:"views"`
	Rating             mo.Option[float64] `json:"rating"`
	Likes              mo.Option[int]     `json:"likes"`
	Uploader           mo.Option[string]  `json:"uploader"`
	Tags               []string           `json:"tags"`
	PublishDate        mo.Option[string]  `json:"publish_date"`
	RealName           mo.Option[string]  `json:"real_name"`
	Followers          mo.Option[int]     `json:"followers"`
	Gender             mo.Option[string]  `json:"gender"`
	InterestedIn       mo.Option[string]  `json:"interested_in"`
	Location           mo.Option[string]  `json:"location"`
	LastBroadcast      mo.Option[string]  `json:"last_broadcast"`
	Languages          mo.Option[string]  `json:"languages"`
	BodyType           mo.Option[string]  `json:"body_type"`
	BodyDecorations    mo.Option[string]  `json:"body_decorations"`
	Age                mo.Option[int]     `json:"age"`
	SocialMedia        []string           `json:"social_media"`
	IsOnline           bool               `json:"is_online"`
	AvailableQualities []int              `json:"available_qualities"`
	Sources            []extract.Source   `json:"sources"`
}

// FormatDuration renders seconds as H:MM:SS, or M:SS under an hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, rem := seconds/3600, seconds%3600
	m, s := rem/60, rem%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
