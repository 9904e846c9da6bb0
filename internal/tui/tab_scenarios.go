package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/tui/components"
	"github.com/theirongolddev/wealthpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderScenariosTab(cw, h int) string {
	t := theme.Active
	if len(a.scenarios) == 0 {
		return components.ContentCard("Scenarios",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No scenarios configured"), cw)
	}

	selected := a.scenarios[a.scenarioIx]
	list := components.ContentCard("Scenarios", a.renderScenarioList(), cw)

	chartH := max(h-lipgloss.Height(list)-5, 4)
	values := make([]float64, len(selected.Projection))
	labels := make([]string, len(selected.Projection))
	for i, p := range selected.Projection {
		values[i] = p.Value
		labels[i] = p.Label
	}
	chart := components.BarChart(values, labels, a.overview.Metrics.TargetValue,
		scenarioColor(a.scenarioIx), components.CardInnerWidth(cw), chartH)
	title := fmt.Sprintf("%s projection at %s", cli.Title(selected.Name), cli.FormatRate(selected.MonthlyRate))

	return list + "\n" + components.FocusCard(title, chart, cw)
}

func (a App) renderScenarioList() string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("  %-14s %7s %12s %-24s %12s", "Scenario", "Factor", "Rate", "Time to Target", "Final Value")))
	for i, sc := range a.scenarios {
		line := fmt.Sprintf("%s %-14s %6.2fx %12s %-24s %12s",
			cursorMark(i == a.scenarioIx),
			truncStr(cli.Title(sc.Name), 14),
			sc.Factor,
			cli.FormatRate(sc.MonthlyRate),
			cli.FormatHorizon(sc.Horizon),
			cli.FormatMoney(finalValue(sc)))
		b.WriteString("\n")
		if i == a.scenarioIx {
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
	}
	return b.String()
}

func cursorMark(selected bool) string {
	if selected {
		return "▸"
	}
	return " "
}

func finalValue(sc model.Scenario) float64 {
	if len(sc.Projection) == 0 {
		return 0
	}
	return sc.Projection[len(sc.Projection)-1].Value
}

// scenarioColor picks a stable chart color per scenario position.
func scenarioColor(i int) lipgloss.Color {
	t := theme.Active
	palette := []lipgloss.Color{t.Info, t.Accent, t.Gain, t.Gold, t.Warn}
	return palette[i%len(palette)]
}
