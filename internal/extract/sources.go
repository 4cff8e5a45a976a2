package extract

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Format is the container of a media source.
type Format string

const (
	FormatMP4     Format = "mp4"
	FormatM3U8    Format = "m3u8"
	FormatWebM    Format = "webm"
	FormatUnknown Format = "unknown"
)

// Source is one playable media URL found on a page.
type Source struct {
	URL     string `json:"url"`
	Quality int    `json:"quality"` // vertical resolution, 0 when unknown
	Format  Format `json:"format"`
}

// DetectQuality returns the resolution encoded in url as "<N>p", or 0.
func DetectQuality(url string) int {
	m := QualityToken.Re.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// DetectFormat guesses the container from the URL.
func DetectFormat(url string) Format {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, ".mp4"):
		return FormatMP4
	case strings.Contains(lower, ".m3u8"):
		return FormatM3U8
	case strings.Contains(lower, ".webm"):
		return FormatWebM
	default:
		return FormatUnknown
	}
}

type sourceSet struct {
	seen    map[string]bool
	sources []Source
}

func (s *sourceSet) add(url string, format Format) {
	url = cleanText(url)
	if url == "" || s.seen[url] {
		return
	}
	s.seen[url] = true
	s.sources = append(s.sources, Source{URL: url, Quality: DetectQuality(url), Format: format})
}

// DiscoverSources collects media URLs from <source> tags, bare mp4 and m3u8
// links, script assignments and the JSON-LD contentUrl, in that order. A URL
// is reported once, by the first pass that finds it.
func DiscoverSources(page Page) []Source {
	set := &sourceSet{seen: make(map[string]bool)}

	for _, m := range SourceTag.Re.FindAllStringSubmatch(page.Content, -1) {
		set.add(m[1], DetectFormat(m[1]))
	}
	for _, m := range SourceMP4.Re.FindAllStringSubmatch(page.Content, -1) {
		set.add(m[1], FormatMP4)
	}
	for _, m := range SourceM3U8.Re.FindAllStringSubmatch(page.Content, -1) {
		set.add(m[1], FormatM3U8)
	}
	for _, m := range ScriptSource.Re.FindAllStringSubmatch(page.Content, -1) {
		set.add(m[1], Format(strings.ToLower(m[2])))
	}
	if u, ok := ldValue(page, "contentUrl"); ok {
		set.add(u, DetectFormat(u))
	}
	return set.sources
}

// AvailableQualities returns the distinct known qualities, highest first.
func AvailableQualities(sources []Source) []int {
	qualities := lo.Uniq(lo.FilterMap(sources, func(s Source, _ int) (int, bool) {
		return s.Quality, s.Quality > 0
	}))
	slices.Sort(qualities)
	slices.Reverse(qualities)
	return qualities
}

// Quality tokens accepted by SelectSource besides a resolution.
const (
	QualityBest  = "best"
	QualityWorst = "worst"
	QualityHalf  = "half"
)

func parseQualityToken(token string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(token)), "p"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ValidQuality reports whether token is best, worst, half or a resolution
// such as "720" or "720p".
func ValidQuality(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case QualityBest, QualityWorst, QualityHalf:
		return true
	}
	n, ok := parseQualityToken(token)
	return ok && n > 0
}

// SelectSource picks a source for the quality token. MP4 sources are
// preferred when present. Resolutions without an exact match fall back to the
// closest one; unparsable tokens select the best source.
func SelectSource(sources []Source, token string) mo.Option[Source] {
	if len(sources) == 0 {
		return mo.None[Source]()
	}
	candidates := lo.Filter(sources, func(s Source, _ int) bool { return s.Format == FormatMP4 })
	if len(candidates) == 0 {
		candidates = slices.Clone(sources)
	}
	slices.SortStableFunc(candidates, func(a, b Source) int { return b.Quality - a.Quality })

	switch strings.ToLower(strings.TrimSpace(token)) {
	case QualityBest:
		return mo.Some(candidates[0])
	case QualityWorst:
		return mo.Some(candidates[len(candidates)-1])
	case QualityHalf:
		return mo.Some(candidates[len(candidates)/2])
	}

	target, ok := parseQualityToken(token)
	if !ok {
		return mo.Some(candidates[0])
	}
	if exact, found := lo.Find(candidates, func(s Source) bool { return s.Quality == target }); found {
		return mo.Some(exact)
	}
	closest := candidates[0]
	for _, s := range candidates[1:] {
		if distance(s.Quality, target) < distance(closest.Quality, target) {
			closest = s
		}
	}
	return mo.Some(closest)
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
