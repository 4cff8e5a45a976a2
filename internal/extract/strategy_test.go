package extract

import (
	"testing"

	"github.com/samber/mo"
)

func TestResolveFirstPresentWins(t *testing.T) {
	calls := 0
	absent := func(Page) mo.Option[string] { calls++; return mo.None[string]() }
	first := func(Page) mo.Option[string] { calls++; return mo.Some("first") }
	never := func(Page) mo.Option[string] { t.Error("strategy after a hit should not run"); return mo.None[string]() }

	got := Resolve[string](NewPage(""), absent, first, never)
	if v := got.OrEmpty(); v != "first" {
		t.Errorf("Resolve = %q, want first", v)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if Resolve[string](NewPage("")).IsPresent() {
		t.Error("Resolve with no strategies should be absent")
	}
}

func TestNumericStrategies(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantOK  bool
	}{
		{"thousands separators", `views: "1,234,567"`, 1234567, true},
		{"plain", `views=42`, 42, true},
		{"separators only", `views: ","`, 0, false},
		{"no match", `nothing`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Int(ViewsText)(NewPage(tt.content)).Get()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Int = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if f, ok := Float(RatingText)(NewPage(`rating: "4.75"`)).Get(); !ok || f != 4.75 {
		t.Errorf("Float = %v, %v; want 4.75", f, ok)
	}
	if Float(RatingText)(NewPage(`rating: "..."`)).IsPresent() {
		t.Error("unparsable rating should be absent")
	}
}

func TestLDStrategies(t *testing.T) {
	page := NewPage(`<script type="application/ld+json">
{"interactionCount": 1500, "aggregateRating": {"ratingValue": 4.2}, "duration": "PT2M5S", "name": "  Clip &amp; Co  "}
</script>`)

	if n, ok := LDInt("interactionCount")(page).Get(); !ok || n != 1500 {
		t.Errorf("LDInt = %d, %v", n, ok)
	}
	if f, ok := LDFloat("aggregateRating_ratingValue")(page).Get(); !ok || f != 4.2 {
		t.Errorf("LDFloat = %v, %v", f, ok)
	}
	if d, ok := LDDuration("duration")(page).Get(); !ok || d != 125 {
		t.Errorf("LDDuration = %d, %v", d, ok)
	}
	if s := LDString("name")(page).OrEmpty(); s != "Clip & Co" {
		t.Errorf("LDString = %q", s)
	}
	if LDString("missing")(page).IsPresent() {
		t.Error("missing key should be absent")
	}
	if LDInt("name")(page).IsPresent() {
		t.Error("non-numeric value should be absent")
	}
	if LDString("name")(Page{Content: "x"}).IsPresent() {
		t.Error("page without LD should be absent")
	}
}

func TestNumericConversionFailures(t *testing.T) {
	ld := func(value string) Page {
		return NewPage(`<script type="application/ld+json">{"interactionCount": ` + value +
			`, "aggregateRating": {"ratingValue": ` + value + `}}</script>`)
	}

	tests := []struct {
		name       string
		value      string
		floatValid bool
	}{
		{"float beyond int range", `"1e30"`, true},
		{"negative float beyond int range", `"-1e30"`, true},
		{"integer overflow", `"99999999999999999999999"`, true},
		{"NaN", `"NaN"`, false},
		{"infinity", `"+Inf"`, false},
		{"float overflow", `"1e400"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := ld(tt.value)
			if n, ok := LDInt("interactionCount")(page).Get(); ok {
				t.Errorf("LDInt(%s) = %d, want absent", tt.value, n)
			}
			if ok := LDFloat("aggregateRating_ratingValue")(page).IsPresent(); ok != tt.floatValid {
				t.Errorf("LDFloat(%s) present = %v, want %v", tt.value, ok, tt.floatValid)
			}
		})
	}

	if Int(ViewsText)(NewPage(`views: "99999999999999999999999"`)).IsPresent() {
		t.Error("overflowing view count should be absent")
	}
	if n, ok := LDInt("interactionCount")(ld(`"1.5e3"`)).Get(); !ok || n != 1500 {
		t.Errorf("LDInt(1.5e3) = %d, %v; want 1500", n, ok)
	}
}
