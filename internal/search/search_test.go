package search

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storefront/internal/domain"
)

func products() []*domain.Product {
	return []*domain.Product{
		{ID: 1, Title: "Essence Mascara Lash Princess", Price: decimal.RequireFromString("9.99")},
		{ID: 2, Title: "Eyeshadow Palette with Mirror", Price: decimal.RequireFromString("19.99")},
		{ID: 3, Title: "Powder Canister", Price: decimal.RequireFromString("14.99")},
		{ID: 4, Title: "Red Lipstick", Price: decimal.RequireFromString("12.99")},
	}
}

func TestFilter_EmptyQueryKeepsOrder(t *testing.T) {
	items := products()
	results := Filter("  ", items)
	require.Len(t, results, len(items))
	for i, r := range results {
		assert.Same(t, items[i], r.Item)
		assert.Equal(t, i, r.Index)
	}
}

func TestFilter_MatchesTitles(t *testing.T) {
	items := products()
	results := Filter("MASC", items)
	require.NotEmpty(t, results)
	assert.Equal(t, 1, results[0].Item.ID)
	assert.Equal(t, 0, results[0].Index)
	assert.NotEmpty(t, results[0].MatchedIndexes)

	assert.Empty(t, Filter("zzzz", items))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := products()
	before := append([]*domain.Product(nil), items...)
	Filter("lip", items)
	assert.Equal(t, before, items)
}

func TestRank(t *testing.T) {
	items := products()

	got := Rank("lipstick", items)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].ID)

	// summary (price) participates in the match
	got = Rank("$14", items)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)

	assert.Equal(t, items, Rank("", items))
	assert.Empty(t, Rank("qqqq", items))
}

func TestRank_Posts(t *testing.T) {
	posts := []*domain.Post{
		{ID: 1, Title: "His mother had always taught him", Body: "not to ever think of himself as better"},
		{ID: 2, Title: "He was an expert but not in a discipline", Body: "anyone could fully appreciate"},
	}
	got := Rank("expert", posts)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}
