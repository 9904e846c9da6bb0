package components

import (
	"fmt"

	"github.com/theirongolddev/wealthpath/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders pct (0-100) as a solid bar in color followed by the
// percentage.
func ProgressBar(pct float64, width int, color lipgloss.Color) string {
	t := theme.Active

	frac := min(max(pct/100, 0), 1)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(frac) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%5.1f%%", min(pct, 999.9)))
}

// JourneyBar renders progress toward the wealth target with a gradient fill.
func JourneyBar(pct float64, width int) string {
	t := theme.Active

	frac := min(max(pct/100, 0), 1)
	bar := progress.New(
		progress.WithGradient(string(t.Accent), string(t.Gold)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(frac) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.2f%%", pct))
}
