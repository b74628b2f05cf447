package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/listview"
	"github.com/mmcdole/storefront/internal/search"
	"github.com/mmcdole/storefront/internal/tui/styles"
)

// Layout constants for the card grid
const (
	// Border adds 1 char on each side
	BorderWidth = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Space between cards in a row
	CardGap = 1

	// Title, summary, counters, thumbnail
	CardLines = 4

	MinCardWidth = 16
)

// ListView renders one paginated collection as a card grid followed by the
// pagination bar. It draws whatever props it is given and keeps only
// presentation state (cursor, filter).
type ListView struct {
	props   listview.Props
	columns int

	// Selection
	cursor int

	// Dimensions
	width  int
	height int

	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	results      []search.Result[domain.ListItem] // nil when no filter is applied
}

// NewListView creates a list view laying cards out in the given number of columns
func NewListView(columns int) ListView {
	if columns < 1 {
		columns = 1
	}
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return ListView{
		columns:     columns,
		filterInput: ti,
	}
}

// SetProps replaces the rendered props. A new batch resets the cursor and
// re-applies the current filter query.
func (v *ListView) SetProps(p listview.Props) {
	batchChanged := p.Offset != v.props.Offset || len(p.Items) != len(v.props.Items)
	v.props = p
	if batchChanged {
		v.cursor = 0
	}
	v.applyFilter()
	v.clampCursor()
}

// Props returns the rendered props
func (v ListView) Props() listview.Props {
	return v.props
}

// Controls returns the pagination bar state
func (v ListView) Controls() listview.Controls {
	return v.props.Controls()
}

// SetSize sets the available area
func (v *ListView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetSpinnerFrame advances the loading spinner
func (v *ListView) SetSpinnerFrame(frame int) {
	v.spinnerFrame = frame
}

// === Filter ===

// StartFilter focuses the filter input
func (v *ListView) StartFilter() tea.Cmd {
	v.filterActive = true
	return v.filterInput.Focus()
}

// FilterActive reports whether the filter input has focus
func (v ListView) FilterActive() bool {
	return v.filterActive
}

// FilterQuery returns the current filter text
func (v ListView) FilterQuery() string {
	return v.filterInput.Value()
}

// AcceptFilter leaves the filter input, keeping the query applied
func (v *ListView) AcceptFilter() {
	v.filterActive = false
	v.filterInput.Blur()
}

// ClearFilter drops the query and shows the whole batch again
func (v *ListView) ClearFilter() {
	v.filterActive = false
	v.filterInput.SetValue("")
	v.filterInput.Blur()
	v.results = nil
	v.clampCursor()
}

// Update forwards input to the filter while it has focus
func (v ListView) Update(msg tea.Msg) (ListView, tea.Cmd) {
	if !v.filterActive {
		return v, nil
	}
	var cmd tea.Cmd
	v.filterInput, cmd = v.filterInput.Update(msg)
	v.applyFilter()
	v.cursor = 0
	return v, cmd
}

func (v *ListView) applyFilter() {
	query := v.filterInput.Value()
	if strings.TrimSpace(query) == "" {
		v.results = nil
		return
	}
	v.results = search.Filter(query, v.props.Items)
}

// === Selection ===

// visible returns the cards currently shown with their title match indexes
func (v ListView) visible() ([]listview.Card, [][]int) {
	if v.results == nil {
		return v.props.Cards(), nil
	}
	items := make([]domain.ListItem, len(v.results))
	matches := make([][]int, len(v.results))
	for i, r := range v.results {
		items[i] = r.Item
		matches[i] = r.MatchedIndexes
	}
	return listview.Props{Items: items}.Cards(), matches
}

// MoveCursor moves the selection by delta cards
func (v *ListView) MoveCursor(delta int) {
	v.cursor += delta
	v.clampCursor()
}

// MoveRow moves the selection by delta grid rows
func (v *ListView) MoveRow(delta int) {
	v.MoveCursor(delta * v.columns)
}

func (v *ListView) clampCursor() {
	cards, _ := v.visible()
	if v.cursor >= len(cards) {
		v.cursor = len(cards) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// Cursor returns the selected position among the visible cards
func (v ListView) Cursor() int {
	return v.cursor
}

// Selected returns the card under the cursor
func (v ListView) Selected() (listview.Card, bool) {
	cards, _ := v.visible()
	if v.props.Loading || v.cursor >= len(cards) {
		return listview.Card{}, false
	}
	return cards[v.cursor], true
}

// === Rendering ===

// View renders heading, grid (or loading placeholder), filter line and
// pagination bar
func (v ListView) View() string {
	var b strings.Builder

	b.WriteString(styles.HeadingStyle.Render(v.props.Heading))
	b.WriteString("\n")

	if v.props.Loading {
		frame := styles.SpinnerFrames[v.spinnerFrame%len(styles.SpinnerFrames)]
		b.WriteString(styles.SpinnerStyle.Render(frame) + " " + styles.SubtitleStyle.Render(v.props.LoadingText))
		b.WriteString("\n")
	} else {
		b.WriteString(v.renderGrid())
	}

	if v.filterActive || v.filterInput.Value() != "" {
		b.WriteString("\n")
		b.WriteString(v.filterInput.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderControls())
	return b.String()
}

func (v ListView) cardWidth() int {
	width := v.width
	if width <= 0 {
		width = 80
	}
	w := (width-(v.columns-1)*CardGap)/v.columns - BorderWidth - HorizontalPadding
	if w < MinCardWidth {
		w = MinCardWidth
	}
	return w
}

func (v ListView) renderGrid() string {
	cards, matches := v.visible()
	if len(cards) == 0 {
		if v.results != nil {
			return styles.DimStyle.Render("No matches in this page") + "\n"
		}
		return ""
	}

	width := v.cardWidth()
	var rows []string
	for start := 0; start < len(cards); start += v.columns {
		end := min(start+v.columns, len(cards))
		var cells []string
		for i := start; i < end; i++ {
			var idx []int
			if matches != nil {
				idx = matches[i]
			}
			cell := renderCard(cards[i], idx, width, i == v.cursor)
			if i > start {
				cell = lipgloss.NewStyle().MarginLeft(CardGap).Render(cell)
			}
			cells = append(cells, cell)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func renderCard(c listview.Card, matched []int, width int, selected bool) string {
	title := styles.Truncate(c.Title, width)
	if len(matched) > 0 && title == c.Title {
		title = styles.HighlightMatches(title, matched)
	}

	lines := []string{styles.CardTitleStyle.Render(title)}
	if len(c.Counters) == 0 {
		// products: price line
		lines = append(lines, styles.CardPriceStyle.Render(styles.Truncate(c.Summary, width)))
	} else {
		lines = append(lines, styles.SubtitleStyle.Render(styles.Truncate(c.Summary, width)))
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(c.CounterLine(), width)))
	}
	if c.Thumbnail != "" {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(c.Thumbnail, width)))
	}

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.Width(width + HorizontalPadding).Height(CardLines).Render(strings.Join(lines, "\n"))
}

func (v ListView) renderControls() string {
	c := v.props.Controls()

	prev := styles.ButtonStyle.Render("◀ Previous")
	if c.PrevDisabled {
		prev = styles.ButtonDisabledStyle.Render("◀ Previous")
	}
	next := styles.ButtonStyle.Render("Next ▶")
	if c.NextDisabled {
		next = styles.ButtonDisabledStyle.Render("Next ▶")
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		prev,
		"   "+styles.SubtitleStyle.Render(c.Label())+"   ",
		next,
	)
	if v.width > 0 {
		return lipgloss.PlaceHorizontal(v.width, lipgloss.Center, bar)
	}
	return bar
}
