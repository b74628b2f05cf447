// Package listview holds the presentation contract shared by the terminal
// and HTML renderers: which controls are enabled, the page label, and the
// card projection of each item. Nothing here keeps state.
package listview

import (
	"fmt"

	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/pager"
)

// Props is everything a renderer needs to draw one list
type Props struct {
	Heading     string
	LoadingText string
	Items       []domain.ListItem
	Offset      int
	PageSize    int
	Total       int
	Loading     bool
}

// Controls is the derived state of the pagination bar
type Controls struct {
	PrevDisabled bool
	NextDisabled bool
	CurrentPage  int
	TotalPages   int
	PrevSkip     int
	NextSkip     int
}

// Label returns "Page X of Y"
func (c Controls) Label() string {
	return fmt.Sprintf("Page %d of %d", c.CurrentPage, c.TotalPages)
}

// Card is the display projection of one item
type Card struct {
	ID        string
	Title     string
	Summary   string
	Thumbnail string
	Counters  []domain.Counter
}

// FromState builds props from a controller snapshot
func FromState[T domain.ListItem](c domain.Collection, s pager.PageState[T]) Props {
	items := make([]domain.ListItem, len(s.Items))
	for i, it := range s.Items {
		items[i] = it
	}
	return Props{
		Heading:     c.Heading(),
		LoadingText: c.LoadingText(),
		Items:       items,
		Offset:      s.Offset,
		PageSize:    s.PageSize,
		Total:       s.Total,
		Loading:     s.Loading,
	}
}

// Controls derives the pagination bar:
// Previous disabled iff offset == 0 or loading;
// Next disabled iff offset+pageSize >= total or loading.
func (p Props) Controls() Controls {
	state := pager.PageState[domain.ListItem]{
		Offset:   p.Offset,
		PageSize: p.PageSize,
		Total:    p.Total,
	}
	return Controls{
		PrevDisabled: !state.HasPrevious() || p.Loading,
		NextDisabled: !state.HasNext() || p.Loading,
		CurrentPage:  state.CurrentPage(),
		TotalPages:   pager.TotalPages(p.Total, p.PageSize),
		PrevSkip:     max(p.Offset-p.PageSize, 0),
		NextSkip:     p.Offset + p.PageSize,
	}
}

// Cards projects the current items. An empty batch yields an empty,
// non-nil slice.
func (p Props) Cards() []Card {
	cards := make([]Card, 0, len(p.Items))
	for _, it := range p.Items {
		if it == nil {
			continue
		}
		cards = append(cards, Card{
			ID:        it.GetID(),
			Title:     it.GetTitle(),
			Summary:   it.GetSummary(),
			Thumbnail: it.GetThumbnail(),
			Counters:  it.GetCounters(),
		})
	}
	return cards
}

// CounterLine joins counters as "Likes: 3  Dislikes: 1"
func (c Card) CounterLine() string {
	line := ""
	for i, ctr := range c.Counters {
		if i > 0 {
			line += "  "
		}
		line += fmt.Sprintf("%s: %d", ctr.Label, ctr.Value)
	}
	return line
}
