package extract

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/mo"
)

// Page is the input every strategy reads from. LD returns the flattened
// JSON-LD map and is expected to be memoized by the caller.
type Page struct {
	Content string
	LD      func() map[string]any
}

// NewPage returns a Page whose JSON-LD map is computed on first use.
func NewPage(content string) Page {
	return Page{
		Content: content,
		LD:      sync.OnceValue(func() map[string]any { return LD(content) }),
	}
}

func (p Page) ld() map[string]any {
	if p.LD == nil {
		return nil
	}
	return p.LD()
}

// Strategy extracts one candidate value from a page.
type Strategy[T any] func(Page) mo.Option[T]

// Resolve runs strategies in order and returns the first present value.
func Resolve[T any](page Page, strategies ...Strategy[T]) mo.Option[T] {
	for _, s := range strategies {
		if v := s(page); v.IsPresent() {
			return v
		}
	}
	return mo.None[T]()
}

// Normalizer rewrites a matched string before it is accepted.
type Normalizer func(string) string

func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

func firstGroup(p *Pattern, content string) (string, bool) {
	m := p.Re.FindStringSubmatch(content)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// Text returns group 1 of p, unescaped and trimmed, then passed through
// normalizers. An empty result is absent.
func Text(p *Pattern, normalizers ...Normalizer) Strategy[string] {
	return func(page Page) mo.Option[string] {
		raw, ok := firstGroup(p, page.Content)
		if !ok {
			return mo.None[string]()
		}
		s := cleanText(raw)
		for _, n := range normalizers {
			s = strings.TrimSpace(n(s))
		}
		if s == "" {
			return mo.None[string]()
		}
		return mo.Some(s)
	}
}

func parseInt(s string) (int, bool) {
	s = strings.ReplaceAll(cleanText(s), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFloat(s string) (float64, bool) {
	s = strings.ReplaceAll(cleanText(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int converts group 1 of p to an int. Thousands separators are ignored.
func Int(p *Pattern) Strategy[int] {
	return func(page Page) mo.Option[int] {
		raw, ok := firstGroup(p, page.Content)
		if !ok {
			return mo.None[int]()
		}
		n, ok := parseInt(raw)
		if !ok {
			return mo.None[int]()
		}
		return mo.Some(n)
	}
}

// Float converts group 1 of p to a float64.
func Float(p *Pattern) Strategy[float64] {
	return func(page Page) mo.Option[float64] {
		raw, ok := firstGroup(p, page.Content)
		if !ok {
			return mo.None[float64]()
		}
		f, ok := parseFloat(raw)
		if !ok {
			return mo.None[float64]()
		}
		return mo.Some(f)
	}
}

func ldValue(page Page, key string) (string, bool) {
	v, ok := page.ld()[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case fmt.Stringer:
		return t.String(), true
	case float64, bool:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

// LDString reads a flattened JSON-LD key as text.
func LDString(key string) Strategy[string] {
	return func(page Page) mo.Option[string] {
		raw, ok := ldValue(page, key)
		if !ok {
			return mo.None[string]()
		}
		if s := cleanText(raw); s != "" {
			return mo.Some(s)
		}
		return mo.None[string]()
	}
}

// LDInt reads a flattened JSON-LD key as an integer. Fractional values are
// truncated; values outside the int range are absent.
func LDInt(key string) Strategy[int] {
	return func(page Page) mo.Option[int] {
		raw, ok := ldValue(page, key)
		if !ok {
			return mo.None[int]()
		}
		if n, ok := parseInt(raw); ok {
			return mo.Some(n)
		}
		if f, ok := parseFloat(raw); ok && f >= math.MinInt && f < math.MaxInt {
			return mo.Some(int(f))
		}
		return mo.None[int]()
	}
}

// LDFloat reads a flattened JSON-LD key as a float64.
func LDFloat(key string) Strategy[float64] {
	return func(page Page) mo.Option[float64] {
		raw, ok := ldValue(page, key)
		if !ok {
			return mo.None[float64]()
		}
		if f, ok := parseFloat(raw); ok {
			return mo.Some(f)
		}
		return mo.None[float64]()
	}
}

// LDDuration reads an ISO-8601 duration and returns whole seconds.
func LDDuration(key string) Strategy[int] {
	return func(page Page) mo.Option[int] {
		raw, ok := ldValue(page, key)
		if !ok {
			return mo.None[int]()
		}
		return ParseISODuration(raw)
	}
}
