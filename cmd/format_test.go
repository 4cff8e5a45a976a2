package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/samber/mo"

	"xview/internal/media"
)

func TestRenderInfoPlain(t *testing.T) {
	info := media.Info{
		ID:                 "123456",
		URL:                "https://secure.xview.tv/123456/",
		Title:              mo.Some("Sunset Drive"),
		Views:              mo.Some(1200),
		Rating:             mo.Some(4.5),
		Tags:               []string{"sunset", "amateur"},
		AvailableQualities: []int{1080, 720},
	}

	// Widest label is "Qualities", padded with its colon to ten columns.
	line := func(label, value string) string {
		return fmt.Sprintf("%-10s %s\n", label+":", value)
	}
	want := line("ID", "123456") +
		line("URL", "https://secure.xview.tv/123456/") +
		line("Title", "Sunset Drive") +
		line("Views", "1200") +
		line("Rating", "4.5") +
		line("Tags", "sunset, amateur") +
		line("Online", "false") +
		line("Qualities", "1080p, 720p")

	if got := renderInfo(info, false); got != want {
		t.Errorf("renderInfo() =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderInfoSkipsAbsentFields(t *testing.T) {
	got := renderInfo(media.Info{ID: "janeroe", URL: "https://secure.xview.tv/janeroe/", IsOnline: true}, false)

	for _, label := range []string{"Title:", "Views:", "Rating:", "Qualities:", "Thumbnail:"} {
		if strings.Contains(got, label) {
			t.Errorf("output contains %q for an absent field:\n%s", label, got)
		}
	}
	if !strings.Contains(got, "Online: true") {
		t.Errorf("output missing online flag:\n%s", got)
	}
}

func TestRenderHitsPlain(t *testing.T) {
	hits := []media.SearchHit{
		{ID: "janeroe", URL: "https://secure.xview.tv/janeroe/"},
		{ID: "123456", URL: "https://secure.xview.tv/123456/"},
	}
	want := " 1. janeroe https://secure.xview.tv/janeroe/\n" +
		" 2. 123456 https://secure.xview.tv/123456/\n"

	if got := renderHits(hits, false); got != want {
		t.Errorf("renderHits() = %q, want %q", got, want)
	}
	if got := renderHits(nil, false); got != "" {
		t.Errorf("renderHits(nil) = %q, want empty", got)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, map[string]int{"views": 42}); err != nil {
		t.Fatalf("printJSON() error: %v", err)
	}
	if got, want := buf.String(), "{\n  \"views\": 42\n}\n"; got != want {
		t.Errorf("printJSON() = %q, want %q", got, want)
	}
}

func TestStdoutStyledIgnoresBuffers(t *testing.T) {
	if stdoutStyled(&bytes.Buffer{}) {
		t.Error("stdoutStyled(buffer) = true, want false")
	}
}
