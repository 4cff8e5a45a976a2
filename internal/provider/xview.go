package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"xview/internal/httputil"
	"xview/internal/media"
)

const (
	// DefaultRoot is the site root used when Options.Root is empty.
	DefaultRoot = "https://secure.xview.tv/"

	// MinContentLength is the smallest body accepted as a real page.
	// Shorter bodies are interstitials or error stubs.
	MinContentLength = 1000
)

// Options configures an XView provider.
type Options struct {
	Root        string
	Proxy       string
	Timeout     time.Duration
	RateLimit   float64 // requests per second; 0 disables limiting
	Transformer ImageTransformer
	Logger      logrus.FieldLogger
}

// XView implements Provider for the xview site.
type XView struct {
	root      string
	client    *http.Client
	timeout   time.Duration
	limiter   *rate.Limiter
	transform ImageTransformer
	log       logrus.FieldLogger
}

var _ Provider = (*XView)(nil)

// NewXView creates a provider with its own pooled client.
func NewXView(opts Options) (*XView, error) {
	root := opts.Root
	if root == "" {
		root = DefaultRoot
	}
	if err := httputil.ValidateURL(root); err != nil {
		return nil, fmt.Errorf("invalid root: %w", err)
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = httputil.DefaultTimeout
	}
	client, err := httputil.NewClient(httputil.Options{Proxy: opts.Proxy, Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &XView{
		root:      root,
		client:    client,
		timeout:   timeout,
		limiter:   limiter,
		transform: opts.Transformer,
		log:       log,
	}, nil
}

// Root returns the normalized site root.
func (x *XView) Root() string { return x.root }

func (x *XView) requestLog(op string) logrus.FieldLogger {
	return x.log.WithFields(logrus.Fields{
		"request": uuid.NewString(),
		"op":      op,
	})
}

// candidates lists the page URLs tried for id, in order.
func (x *XView) candidates(id string) []string {
	return []string{media.CanonicalURL(x.root, id)}
}

// Resolve fetches the page for an id or URL. Candidate URLs are tried in
// order; bodies of MinContentLength bytes or less are rejected.
func (x *XView) Resolve(ctx context.Context, input string) (*media.Record, error) {
	id, err := ParseID(input)
	if err != nil {
		return nil, err
	}
	log := x.requestLog("resolve").WithField("id", id)

	var lastErr error
	for _, candidate := range x.candidates(id) {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", media.ErrNetwork, ctx.Err())
		}
		body, err := x.fetchPage(ctx, candidate)
		if err != nil {
			log.WithError(err).WithField("url", candidate).Debug("candidate failed")
			lastErr = err
			continue
		}
		if len(body) <= MinContentLength {
			log.WithField("url", candidate).Debugf("body too short (%d bytes)", len(body))
			lastErr = fmt.Errorf("%w: insufficient content from %s (%d bytes)", media.ErrNotFound, candidate, len(body))
			continue
		}

		rec := media.NewRecord(id, x.root)
		rec.SetURL(candidate)
		rec.Load(string(body))
		log.WithField("url", candidate).Debug("resolved")
		return rec, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: %s", media.ErrNotFound, id)
	}
	return nil, lastErr
}

// get performs one rate-limited GET and returns the status and capped body.
func (x *XView) get(ctx context.Context, rawURL string) (int, []byte, error) {
	if err := x.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}
	resp, err := httputil.Get(ctx, x.client, rawURL, x.root)
	if err != nil {
		return 0, nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, nil
	}
	body, err := httputil.ReadBody(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// fetchPage GETs an HTML page. 404 maps to ErrNotFound; every other failure
// is ErrNetwork.
func (x *XView) fetchPage(ctx context.Context, rawURL string) ([]byte, error) {
	status, body, err := x.get(ctx, rawURL)
	switch {
	case err != nil:
		return nil, fmt.Errorf("%w: %w", media.ErrNetwork, err)
	case status == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s returned 404", media.ErrNotFound, rawURL)
	case status < 200 || status > 299:
		return nil, fmt.Errorf("%w: unexpected status %d for %s", media.ErrNetwork, status, rawURL)
	}
	return body, nil
}

// FetchBytes downloads a resource. Every failure, 404 included, is
// ErrNetwork.
func (x *XView) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	status, body, err := x.get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrNetwork, err)
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d for %s", media.ErrNetwork, status, rawURL)
	}
	return body, nil
}

func resolveReference(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing reference: %w", err)
	}
	return b.ResolveReference(r).String(), nil
}

// Thumbnail downloads the record's thumbnail. Download failures yield no
// bytes; a failed blur yields the original bytes.
func (x *XView) Thumbnail(ctx context.Context, rec *media.Record, blur int) mo.Option[[]byte] {
	log := x.requestLog("thumbnail").WithField("id", rec.ID())

	ref, ok := rec.Thumbnail().Get()
	if !ok {
		log.Debug("record has no thumbnail")
		return mo.None[[]byte]()
	}
	thumbURL, err := resolveReference(rec.URL(), ref)
	if err != nil {
		log.WithError(err).Warn("bad thumbnail URL")
		return mo.None[[]byte]()
	}

	data, err := x.FetchBytes(ctx, thumbURL)
	if err != nil {
		log.WithError(err).WithField("url", thumbURL).Warn("thumbnail download failed")
		return mo.None[[]byte]()
	}
	if blur <= 0 || x.transform == nil {
		return mo.Some(data)
	}

	tctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	out, err := x.transform.Transform(tctx, data, blur)
	if err != nil {
		log.WithError(err).Warn("blur failed, keeping original thumbnail")
		return mo.Some(data)
	}
	return mo.Some(out)
}

// searchURLs lists the search endpoints tried for query, in order.
func (x *XView) searchURLs(query string, page int) []string {
	q := httputil.EncodeQuery(query)
	return []string{
		fmt.Sprintf("%s?keywords=%s&page=%d", x.root, q, page),
		fmt.Sprintf("%s/?page=%d", httputil.BuildURL(x.root, "search", query), page),
		fmt.Sprintf("%s/?page=%d", httputil.BuildURL(x.root, "tag", query), page),
		fmt.Sprintf("%sapi/public/cams/?keywords=%s&page=%d", x.root, q, page),
	}
}

// Search tries each search endpoint until one yields hits. It never fails;
// a blank query or no hits returns an empty slice.
func (x *XView) Search(ctx context.Context, query string, page int) []media.SearchHit {
	query = strings.TrimSpace(query)
	if query == "" {
		return []media.SearchHit{}
	}
	if page < 1 {
		page = 1
	}
	log := x.requestLog("search").WithField("query", query)

	for _, u := range x.searchURLs(query, page) {
		hits, err := x.listing(ctx, u)
		if err != nil {
			log.WithError(err).WithField("url", u).Debug("search endpoint failed")
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if len(hits) > 0 {
			log.WithField("url", u).Debugf("%d hits", len(hits))
			return hits
		}
	}
	log.Warn("no search results")
	return []media.SearchHit{}
}

// Category lists the videos of a category page.
func (x *XView) Category(ctx context.Context, name string, page int) []media.SearchHit {
	name = strings.TrimSpace(name)
	if name == "" {
		return []media.SearchHit{}
	}
	if page < 1 {
		page = 1
	}
	log := x.requestLog("category").WithField("category", name)

	u := fmt.Sprintf("%s?page=%d", httputil.BuildURL(x.root, "category", name), page)
	hits, err := x.listing(ctx, u)
	if err != nil {
		log.WithError(err).WithField("url", u).Warn("category listing failed")
		return []media.SearchHit{}
	}
	if hits == nil {
		return []media.SearchHit{}
	}
	return hits
}

func (x *XView) listing(ctx context.Context, u string) ([]media.SearchHit, error) {
	body, err := x.fetchPage(ctx, u)
	if err != nil {
		return nil, err
	}
	return parseListing(string(body), x.root), nil
}

// Close releases idle pooled connections.
func (x *XView) Close() {
	x.client.CloseIdleConnections()
}
