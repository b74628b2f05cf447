package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/storefront/internal/domain"
)

// Rank keeps the items whose title or summary contains the characters of
// query in order (case-insensitive) and sorts them by match distance.
// Ties keep display order. Used by the HTML front end's ?q= filter.
func Rank[T domain.ListItem](query string, items []T) []T {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	type ranked struct {
		item     T
		pos      int
		distance int
	}

	var hits []ranked
	for i, it := range items {
		best := -1
		for _, target := range []string{it.GetTitle(), it.GetSummary()} {
			if d := fuzzy.RankMatchFold(query, target); d >= 0 && (best < 0 || d < best) {
				best = d
			}
		}
		if best >= 0 {
			hits = append(hits, ranked{item: it, pos: i, distance: best})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].distance < hits[j].distance
	})

	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = h.item
	}
	return out
}
