package extract

import (
	"encoding/json"
	"maps"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/mo"
)

// Blocks returns the body of every JSON-LD script element in content.
func Blocks(content string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}
	var blocks []string
	doc.Find("script[type]").Each(func(_ int, s *goquery.Selection) {
		typ, _ := s.Attr("type")
		if !strings.EqualFold(strings.TrimSpace(typ), jsonLDType) {
			return
		}
		if body := strings.TrimSpace(s.Text()); body != "" {
			blocks = append(blocks, body)
		}
	})
	return blocks
}

// Decode parses the first JSON value in block. Trailing data is ignored and
// numbers are kept as json.Number. Blocks carrying raw control characters
// inside strings are retried once with those characters blanked.
func Decode(block string) (any, bool) {
	if v, err := decodeFirst(block); err == nil {
		return v, true
	}
	blanked := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, block)
	v, err := decodeFirst(blanked)
	if err != nil {
		return nil, false
	}
	return v, true
}

func decodeFirst(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Flatten turns a decoded JSON-LD value into a single-level map. Nested
// object keys are joined with "_". A top-level array contributes each of its
// object elements; other top-level values contribute nothing. Arrays below
// the top level are kept as values.
func Flatten(v any) map[string]any {
	out := make(map[string]any)
	switch t := v.(type) {
	case map[string]any:
		flattenInto(out, "", t)
	case []any:
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				flattenInto(out, "", m)
			}
		}
	}
	return out
}

func flattenInto(out map[string]any, prefix string, m map[string]any) {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		key := k
		if prefix != "" {
			key = prefix + "_" + k
		}
		if child, ok := m[k].(map[string]any); ok {
			flattenInto(out, key, child)
			continue
		}
		out[key] = m[k]
	}
}

// LD merges every JSON-LD block in content. Later blocks overwrite earlier
// keys. Blocks that fail to decode are skipped.
func LD(content string) map[string]any {
	merged := make(map[string]any)
	for _, block := range Blocks(content) {
		v, ok := Decode(block)
		if !ok {
			continue
		}
		maps.Copy(merged, Flatten(v))
	}
	return merged
}

var isoDuration = regexp.MustCompile(`(?i)^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseISODuration converts a "PT#H#M#S" duration into seconds. Missing parts
// count as 0 and anything after the last whole part is ignored. Values that
// overflow an int are absent.
func ParseISODuration(s string) mo.Option[int] {
	m := isoDuration.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return mo.None[int]()
	}
	total := 0
	for i, unit := range []int{3600, 60, 1} {
		g := m[i+1]
		if g == "" {
			continue
		}
		n, err := strconv.Atoi(g)
		if err != nil || n > (math.MaxInt-total)/unit {
			return mo.None[int]()
		}
		total += n * unit
	}
	return mo.Some(total)
}
