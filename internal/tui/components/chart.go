package components

import (
	"math"
	"strings"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		peak = math.Max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		buf.WriteRune(blocks[min(max(idx, 0), len(blocks)-1)])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// BarChart renders a vertical bar chart with a money-labelled Y axis and
// one label per bar. A marker row is drawn at the target value when it
// falls within the chart. Falls back to a sparkline when space is tight.
func BarChart(values []float64, labels []string, target float64, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	n := len(values)
	const yAxisW = 9
	slot := (width - yAxisW) / n
	if slot < 2 || height < 3 {
		return Sparkline(values, color)
	}
	barW := max(slot-1, 1)

	t := theme.Active
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	targetStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	targetRow := -1
	if target > 0 && target <= peak {
		targetRow = int(math.Round(target / peak * float64(height)))
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		label := ""
		switch row {
		case height:
			label = cli.FormatMoney(peak)
		case targetRow:
			label = cli.FormatMoney(target)
		}
		b.WriteString(axisStyle.Render(padLeft(label, yAxisW-1) + "│"))

		for _, v := range values {
			cells := v / peak * float64(height)
			var cell string
			switch {
			case cells >= float64(row):
				cell = barStyle.Render(strings.Repeat("█", barW))
			case cells > float64(row-1):
				frac := cells - float64(row-1)
				idx := min(int(frac*float64(len(blocks))), len(blocks)-1)
				cell = barStyle.Render(strings.Repeat(string(blocks[idx]), barW))
			case row == targetRow:
				cell = targetStyle.Render(strings.Repeat("┄", barW))
			default:
				cell = space.Render(strings.Repeat(" ", barW))
			}
			b.WriteString(cell)
			b.WriteString(space.Render(" "))
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(strings.Repeat(" ", yAxisW-1) + "└" + strings.Repeat("─", n*slot)))
	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(space.Render(strings.Repeat(" ", yAxisW)))
		for _, l := range labels {
			b.WriteString(axisStyle.Render(padRight(truncate(l, slot), slot)))
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func padLeft(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return strings.Repeat(" ", n-w) + s
	}
	return s
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
