package components

import (
	"github.com/theirongolddev/wealthpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. notice, when set, replaces
// the right-hand info in the warning color.
func RenderStatusBar(width int, info, notice string, refreshing bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [?]help  [r]efresh  [q]uit"
	right := info
	if refreshing {
		right = "refreshing… "
	}
	rightStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	if notice != "" {
		right = notice + " "
		rightStyle = rightStyle.Foreground(t.Warn)
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	fill := lipgloss.NewStyle().Background(t.Surface).Render(spaces(gap))

	return style.Render(left + fill + rightStyle.Render(right))
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
