package media

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"xview/internal/extract"
)

const root = "https://secure.xview.tv/"

func TestRecordURL(t *testing.T) {
	rec := NewRecord("123456", root)
	if got := rec.ID(); got != "123456" {
		t.Errorf("ID() = %q", got)
	}
	if got := rec.URL(); got != "https://secure.xview.tv/123456/" {
		t.Errorf("URL() = %q, want canonical URL", got)
	}
	rec.SetURL("https://secure.xview.tv/video/123456/")
	if got := rec.URL(); got != "https://secure.xview.tv/video/123456/" {
		t.Errorf("URL() after SetURL = %q", got)
	}
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		root, id, want string
	}{
		{"https://secure.xview.tv/", "123456", "https://secure.xview.tv/123456/"},
		{"https://secure.xview.tv", "janeroe", "https://secure.xview.tv/janeroe/"},
	}
	for _, tt := range tests {
		if got := CanonicalURL(tt.root, tt.id); got != tt.want {
			t.Errorf("CanonicalURL(%q, %q) = %q, want %q", tt.root, tt.id, got, tt.want)
		}
	}
}

func TestReloadInvalidatesCache(t *testing.T) {
	rec := NewRecord("1", root)
	rec.Load(`<meta property="og:title" content="First">`)

	if rec.Computed(FieldTitle) {
		t.Fatal("title should not be computed before first access")
	}
	if got := rec.Title().OrEmpty(); got != "First" {
		t.Fatalf("Title() = %q, want First", got)
	}
	if !rec.Computed(FieldTitle) {
		t.Fatal("title should be cached after access")
	}
	gen := rec.Generation()

	rec.Load(`<meta property="og:title" content="Second">`)
	if rec.Generation() != gen+1 {
		t.Errorf("Generation() = %d, want %d", rec.Generation(), gen+1)
	}
	if rec.Computed(FieldTitle) {
		t.Error("Load should drop the cached title")
	}
	if got := rec.Title().OrEmpty(); got != "Second" {
		t.Errorf("Title() after reload = %q, want Second", got)
	}
}

func TestLoadUnescapesContent(t *testing.T) {
	rec := NewRecord("1", root)
	rec.Load("&lt;title&gt;Clip - XView&lt;/title&gt;")
	if !strings.Contains(rec.Content(), "<title>") {
		t.Errorf("Content() = %q, want unescaped markup", rec.Content())
	}
	if got := rec.Title().OrEmpty(); got != "Clip" {
		t.Errorf("Title() = %q, want Clip", got)
	}
}

func TestUnloadedRecord(t *testing.T) {
	rec := NewRecord("1", root)
	if rec.Loaded() {
		t.Error("new record should not be loaded")
	}
	if rec.Title().IsPresent() || rec.Duration().IsPresent() {
		t.Error("fields of an unloaded record should be absent")
	}
	if len(rec.Sources()) != 0 || rec.MediaURL("best").IsPresent() {
		t.Error("unloaded record should have no sources")
	}
	if err := rec.CheckAvailable(); !errors.Is(err, ErrNotFound) {
		t.Errorf("CheckAvailable() = %v, want ErrNotFound", err)
	}
}

func TestCheckAvailable(t *testing.T) {
	rec := NewRecord("1", root)
	rec.Load("<h1>Video removed</h1>")
	if err := rec.CheckAvailable(); !errors.Is(err, ErrDisabled) {
		t.Errorf("CheckAvailable() = %v, want ErrDisabled", err)
	}

	rec.Load(`<meta property="og:title" content="Fine">`)
	if err := rec.CheckAvailable(); err != nil {
		t.Errorf("CheckAvailable() = %v, want nil", err)
	}
}

func TestDurationFormatted(t *testing.T) {
	tests := []struct {
		iso      string
		seconds  int
		rendered string
	}{
		{"PT1H30M45S", 5445, "1:30:45"},
		{"PT5M9S", 309, "5:09"},
	}
	for _, tt := range tests {
		t.Run(tt.iso, func(t *testing.T) {
			rec := NewRecord("1", root)
			rec.Load(`<script type="application/ld+json">{"duration":"` + tt.iso + `"}</script>`)
			if got := rec.Duration().OrEmpty(); got != tt.seconds {
				t.Errorf("Duration() = %d, want %d", got, tt.seconds)
			}
			if got := rec.DurationFormatted().OrEmpty(); got != tt.rendered {
				t.Errorf("DurationFormatted() = %q, want %q", got, tt.rendered)
			}
		})
	}

	if NewRecord("1", root).DurationFormatted().IsPresent() {
		t.Error("DurationFormatted() should be absent without a duration")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{
		0:     "0:00",
		59:    "0:59",
		60:    "1:00",
		3599:  "59:59",
		3600:  "1:00:00",
		36061: "10:01:01",
		-5:    "0:00",
	}
	for in, want := range tests {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestMediaURL(t *testing.T) {
	rec := NewRecord("1", root)
	rec.Load(`<video>
<source src="https://cdn.xview.tv/v/1_1080p.mp4">
<source src="https://cdn.xview.tv/v/1_720p.mp4">
<source src="https://cdn.xview.tv/v/1_480p.mp4">
<source src="https://cdn.xview.tv/v/1_360p.mp4">
</video>`)

	tests := map[string]string{
		"best":  "https://cdn.xview.tv/v/1_1080p.mp4",
		"worst": "https://cdn.xview.tv/v/1_360p.mp4",
		"half":  "https://cdn.xview.tv/v/1_480p.mp4",
		"720":   "https://cdn.xview.tv/v/1_720p.mp4",
		"900":   "https://cdn.xview.tv/v/1_1080p.mp4",
	}
	for token, want := range tests {
		if got := rec.MediaURL(token).OrEmpty(); got != want {
			t.Errorf("MediaURL(%q) = %q, want %q", token, got, want)
		}
	}
	if got := rec.AvailableQualities(); len(got) != 4 || got[0] != 1080 || got[3] != 360 {
		t.Errorf("AvailableQualities() = %v", got)
	}
}

func TestCachedComputesOnce(t *testing.T) {
	rec := NewRecord("1", root)
	rec.Load("<p>content</p>")

	var calls atomic.Int32
	compute := func(p extract.Page) string {
		calls.Add(1)
		return p.Content
	}

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := cached(rec, Field("probe"), compute); got != "<p>content</p>" {
				t.Errorf("cached() = %q", got)
			}
		}()
	}
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("compute ran %d times, want 1", n)
	}
}

func TestInfoJSON(t *testing.T) {
	rec := NewRecord("123456", root)
	rec.Load(`<meta property="og:title" content="Clip - XView">`)

	data, err := json.Marshal(rec.Info())
	if err != nil {
		t.Fatalf("marshal info: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal info: %v", err)
	}
	if got["id"] != "123456" || got["title"] != "Clip" {
		t.Errorf("unexpected info %s", data)
	}
	if got["rating"] != nil {
		t.Errorf("absent rating should encode as null, got %v", got["rating"])
	}
	if got["is_online"] != false {
		t.Errorf("is_online = %v, want false", got["is_online"])
	}
}

func TestInfoJSONWithNonFiniteLDValues(t *testing.T) {
	rec := NewRecord("123456", root)
	rec.Load(`<script type="application/ld+json">{"aggregateRating": {"ratingValue": "NaN"}, "interactionCount": "1e30"}</script>`)

	data, err := json.Marshal(rec.Info())
	if err != nil {
		t.Fatalf("marshal info: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal info: %v", err)
	}
	if got["rating"] != nil || got["views"] != nil {
		t.Errorf("rating = %v, views = %v; want null for both", got["rating"], got["views"])
	}
}
