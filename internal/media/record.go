package media

import (
	"fmt"
	"html"
	"sync"
	"sync/atomic"

	"github.com/samber/mo"

	"xview/internal/extract"
)

// Field names a cached value of a Record.
type Field string

const (
	FieldJSONLD          Field = "jsonld"
	FieldTitle           Field = "title"
	FieldDescription     Field = "description"
	FieldThumbnail       Field = "thumbnail"
	FieldDuration        Field = "duration"
	FieldViews           Field = "views"
	FieldRating          Field = "rating"
	FieldLikes           Field = "likes"
	FieldUploader        Field = "uploader"
	FieldTags            Field = "tags"
	FieldPublishDate     Field = "publish_date"
	FieldRealName        Field = "real_name"
	FieldFollowers       Field = "followers"
	FieldGender          Field = "gender"
	FieldInterestedIn    Field = "interested_in"
	FieldLocation        Field = "location"
	FieldLastBroadcast   Field = "last_broadcast"
	FieldLanguages       Field = "languages"
	FieldBodyType        Field = "body_type"
	FieldBodyDecorations Field = "body_decorations"
	FieldAge             Field = "age"
	FieldSocialMedia     Field = "social_media"
	FieldIsOnline        Field = "is_online"
	FieldSources         Field = "sources"
)

type entry struct {
	once  sync.Once
	done  atomic.Bool
	value any
}

// Record is one video or profile page. Fields are derived lazily from the
// loaded content and computed at most once per Load. Reads may run
// concurrently; Load must not overlap them.
type Record struct {
	id   string
	root string

	mu      sync.Mutex
	url     string
	content string
	loaded  bool
	gen     uint64
	entries map[Field]*entry
}

// NewRecord returns an empty record for id on the site rooted at root.
func NewRecord(id, root string) *Record {
	return &Record{
		id:      id,
		root:    root,
		entries: make(map[Field]*entry),
	}
}

func (r *Record) ID() string { return r.id }

// URL returns the fetched page URL, or the canonical URL before a fetch.
func (r *Record) URL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.url == "" {
		return CanonicalURL(r.root, r.id)
	}
	return r.url
}

func (r *Record) SetURL(u string) {
	r.mu.Lock()
	r.url = u
	r.mu.Unlock()
}

// Load replaces the page content and drops every cached field.
func (r *Record) Load(raw string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.content = html.UnescapeString(raw)
	r.loaded = true
	r.gen++
	r.entries = make(map[Field]*entry)
}

func (r *Record) Content() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content
}

// Loaded reports whether Load has been called.
func (r *Record) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// Generation increments on every Load.
func (r *Record) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Computed reports whether f has been computed since the last Load.
func (r *Record) Computed(f Field) bool {
	r.mu.Lock()
	e, ok := r.entries[f]
	r.mu.Unlock()
	return ok && e.done.Load()
}

func (r *Record) page() extract.Page {
	r.mu.Lock()
	content := r.content
	r.mu.Unlock()
	return extract.Page{
		Content: content,
		LD: func() map[string]any {
			return cached(r, FieldJSONLD, func(p extract.Page) map[string]any { return extract.LD(p.Content) })
		},
	}
}

// cached returns the value of f for the current generation, computing it on
// first use.
func cached[T any](r *Record, f Field, compute func(extract.Page) T) T {
	r.mu.Lock()
	e, ok := r.entries[f]
	if !ok {
		e = &entry{}
		r.entries[f] = e
	}
	r.mu.Unlock()

	e.once.Do(func() {
		e.value = compute(r.page())
		e.done.Store(true)
	})
	return e.value.(T)
}

func (r *Record) Title() mo.Option[string]       { return cached(r, FieldTitle, extract.Title) }
func (r *Record) Description() mo.Option[string] { return cached(r, FieldDescription, extract.Description) }
func (r *Record) Thumbnail() mo.Option[string]   { return cached(r, FieldThumbnail, extract.Thumbnail) }
func (r *Record) Duration() mo.Option[int]       { return cached(r, FieldDuration, extract.Duration) }
func (r *Record) Views() mo.Option[int]          { return cached(r, FieldViews, extract.Views) }
func (r *Record) Rating() mo.Option[float64]     { return cached(r, FieldRating, extract.Rating) }
func (r *Record) Likes() mo.Option[int]          { return cached(r, FieldLikes, extract.Likes) }
func (r *Record) Uploader() mo.Option[string]    { return cached(r, FieldUploader, extract.Uploader) }
func (r *Record) Tags() []string                 { return cached(r, FieldTags, extract.Tags) }
func (r *Record) PublishDate() mo.Option[string] { return cached(r, FieldPublishDate, extract.PublishDate) }

// Profile fields.
func (r *Record) RealName() mo.Option[string]        { return cached(r, FieldRealName, extract.RealName) }
func (r *Record) Followers() mo.Option[int]          { return cached(r, FieldFollowers, extract.Followers) }
func (r *Record) Gender() mo.Option[string]          { return cached(r, FieldGender, extract.Gender) }
func (r *Record) InterestedIn() mo.Option[string]    { return cached(r, FieldInterestedIn, extract.InterestedIn) }
func (r *Record) Location() mo.Option[string]        { return cached(r, FieldLocation, extract.Location) }
func (r *Record) LastBroadcast() mo.Option[string]   { return cached(r, FieldLastBroadcast, extract.LastBroadcast) }
func (r *Record) Languages() mo.Option[string]       { return cached(r, FieldLanguages, extract.Languages) }
func (r *Record) BodyType() mo.Option[string]        { return cached(r, FieldBodyType, extract.BodyType) }
func (r *Record) BodyDecorations() mo.Option[string] { return cached(r, FieldBodyDecorations, extract.BodyDecorations) }
func (r *Record) Age() mo.Option[int]                { return cached(r, FieldAge, extract.Age) }
func (r *Record) SocialMedia() []string              { return cached(r, FieldSocialMedia, extract.SocialMedia) }
func (r *Record) IsOnline() bool                     { return cached(r, FieldIsOnline, extract.IsOnline) }

// DurationFormatted renders Duration as H:MM:SS or M:SS.
func (r *Record) DurationFormatted() mo.Option[string] {
	d, ok := r.Duration().Get()
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(FormatDuration(d))
}

// Sources lists every media source found on the page.
func (r *Record) Sources() []extract.Source {
	return cached(r, FieldSources, extract.DiscoverSources)
}

// AvailableQualities returns the known resolutions, highest first.
func (r *Record) AvailableQualities() []int {
	return extract.AvailableQualities(r.Sources())
}

// MediaURL picks the media URL matching a quality token (best, worst, half,
// 720, 720p).
func (r *Record) MediaURL(token string) mo.Option[string] {
	src, ok := extract.SelectSource(r.Sources(), token).Get()
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(src.URL)
}

// CheckAvailable returns ErrNotFound when nothing was loaded and ErrDisabled
// when the page reports the content as removed.
func (r *Record) CheckAvailable() error {
	if !r.Loaded() {
		return fmt.Errorf("%w: %s has no content", ErrNotFound, r.id)
	}
	if extract.Disabled(r.Content()) {
		return fmt.Errorf("%w: %s", ErrDisabled, r.id)
	}
	return nil
}

// Info collects every field into a snapshot.
func (r *Record) Info() Info {
	return Info{
		ID:                 r.id,
		URL:                r.URL(),
		Title:              r.Title(),
		Description:        r.Description(),
		Thumbnail:          r.Thumbnail(),
		Duration:           r.Duration(),
		DurationFormatted:  r.DurationFormatted(),
		Views:              r.Views(),
		Rating:             r.Rating(),
		Likes:              r.Likes(),
		Uploader:           r.Uploader(),
		Tags:               r.Tags(),
		PublishDate:        r.PublishDate(),
		RealName:           r.RealName(),
		Followers:          r.Followers(),
		Gender:             r.Gender(),
		InterestedIn:       r.InterestedIn(),
		Location:           r.Location(),
		LastBroadcast:      r.LastBroadcast(),
		Languages:          r.Languages(),
		BodyType:           r.BodyType(),
		BodyDecorations:    r.BodyDecorations(),
		Age:                r.Age(),
		SocialMedia:        r.SocialMedia(),
		IsOnline:           r.IsOnline(),
		AvailableQualities: r.AvailableQualities(),
		Sources:            r.Sources(),
	}
}
