package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/storefront/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var content string
	switch {
	case m.Screen == ScreenHome:
		content = m.renderHome()
	case m.list == nil && m.mounting:
		content = RenderSpinner(m.SpinnerFrame) + " " + styles.SubtitleStyle.Render(m.Screen.Collection().LoadingText())
	case m.list == nil:
		content = styles.DimStyle.Render("Nothing to show. Press 1 to go home.")
	default:
		content = m.listView.View()
	}

	body := lipgloss.NewStyle().
		Height(max(m.Height-ChromeHeight, 1)).
		Padding(0, 1).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

// renderHeader renders brand and navigation tabs
func (m Model) renderHeader() string {
	tabs := []string{styles.BrandStyle.Render("My Store")}
	for _, s := range Screens {
		label := s.Title()
		if s == m.Screen {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(label))
		}
	}
	return styles.HeaderStyle.Width(m.Width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderHome() string {
	var b strings.Builder
	b.WriteString(styles.HeadingStyle.Render("Welcome to My Store"))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("Browse the catalog a page at a time."))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentStyle.Render("2") + styles.DimStyle.Render("  Products") + "\n")
	b.WriteString(styles.AccentStyle.Render("3") + styles.DimStyle.Render("  Posts") + "\n")
	return b.String()
}

// renderFooter renders status on the left and key hints on the right
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	} else if m.hostLabel != "" {
		left = styles.DimStyle.Render(m.hostLabel)
	}

	right := styles.AccentStyle.Render("n/p") + styles.DimStyle.Render(" page  ") +
		styles.AccentStyle.Render("/") + styles.DimStyle.Render(" filter  ") +
		styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SCREENS                         PAGES
  1          Home                  n/]/PgDn  Next page
  2          Products              p/[/PgUp  Previous page
  3          Posts
  Tab/S-Tab  Cycle screens

SELECTION                       OTHER
  h/j/k/l    Move between cards    /      Filter this page
  Arrows     Move between cards    Esc    Clear filter
                                   q      Quit
                                   ?      This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
