package provider

import (
	"strings"

	"github.com/samber/lo"

	"xview/internal/extract"
	"xview/internal/httputil"
	"xview/internal/media"
)

// maxListingHits caps how many hits one listing page yields.
const maxListingHits = 20

// listingStrategy pulls candidate ids out of a listing page.
type listingStrategy struct {
	pattern *extract.Pattern
	accept  func(id string) bool
}

var listingStrategies = []listingStrategy{
	{extract.ListingAnchor, func(id string) bool {
		return !lo.SomeBy([]string{"css", "js", "static"}, func(p string) bool { return strings.HasPrefix(id, p) })
	}},
	{extract.ListingData, func(string) bool { return true }},
	{extract.ListingJSON, func(id string) bool { return len(id) > 2 }},
}

// parseListing extracts hits from a search or category page. Strategies run
// in order and the first one yielding any hit wins. Ids that are not a safe
// path segment are dropped.
func parseListing(content, root string) []media.SearchHit {
	for _, s := range listingStrategies {
		var ids []string
		for _, m := range s.pattern.Re.FindAllStringSubmatch(content, -1) {
			id := strings.TrimSpace(m[1])
			if id == "" || !s.accept(id) || httputil.ValidateID(id) != nil {
				continue
			}
			ids = append(ids, id)
		}
		ids = lo.Uniq(ids)
		if len(ids) == 0 {
			continue
		}
		if len(ids) > maxListingHits {
			ids = ids[:maxListingHits]
		}
		return lo.Map(ids, func(id string, _ int) media.SearchHit {
			return media.SearchHit{ID: id, URL: media.CanonicalURL(root, id)}
		})
	}
	return nil
}
