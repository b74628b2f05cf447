// Package search filters the currently displayed batch. It never fetches and
// never touches pagination state.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/storefront/internal/domain"
)

// Result is a filtered item with match metadata for highlighting
type Result[T domain.ListItem] struct {
	Item           T
	Index          int   // Position in the displayed batch
	MatchedIndexes []int // Character positions in the title that matched
	Score          int   // Higher is better
}

// Index implements sahilm/fuzzy.Source over item titles
type Index[T domain.ListItem] struct {
	items       []T
	lowerTitles []string
}

// NewIndex builds an index over items
func NewIndex[T domain.ListItem](items []T) *Index[T] {
	idx := &Index[T]{items: items, lowerTitles: make([]string, len(items))}
	for i, it := range items {
		idx.lowerTitles[i] = strings.ToLower(it.GetTitle())
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *Index[T]) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *Index[T]) Len() int { return len(idx.items) }

// Filter returns items whose title fuzzy-matches query, best first.
// An empty query returns every item in display order.
func Filter[T domain.ListItem](query string, items []T) []Result[T] {
	query = strings.TrimSpace(query)
	if query == "" {
		results := make([]Result[T], len(items))
		for i, it := range items {
			results[i] = Result[T]{Item: it, Index: i}
		}
		return results
	}

	idx := NewIndex(items)
	matches := fuzzy.FindFrom(strings.ToLower(query), idx)

	results := make([]Result[T], len(matches))
	for i, m := range matches {
		results[i] = Result[T]{
			Item:           items[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
