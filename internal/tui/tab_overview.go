package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/tracker"
	"github.com/theirongolddev/wealthpath/internal/tui/components"
	"github.com/theirongolddev/wealthpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const upcomingLimit = 5

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	ov := a.overview
	m := ov.Metrics
	now := a.now()

	horizonColor := t.Gain
	if !a.horizon.Reachable() {
		horizonColor = t.Loss
	}
	metrics := []components.Metric{
		{Label: "Net Worth", Value: cli.FormatMoney(m.NetWorth), Hint: cli.FormatDollars(m.NetWorth)},
		{Label: "Target", Value: cli.FormatMoney(m.TargetValue), Hint: cli.FormatPercent(m.JourneyPercent()) + " reached", Color: t.Gold},
		{Label: "Monthly Growth", Value: cli.FormatRate(a.rate), Hint: "stored " + cli.FormatRate(m.MonthlyGrowth)},
		{Label: "Time to Target", Value: cli.FormatHorizon(a.horizon), Hint: "ETA " + cli.FormatETA(a.horizon, now), Color: horizonColor},
	}

	var b strings.Builder
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(metrics[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(metrics[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(metrics, cw))
	}
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	journey := components.JourneyBar(m.JourneyPercent(), max(inner-10, 10))
	b.WriteString(components.ContentCard("Journey to "+cli.FormatMoney(m.TargetValue), journey, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Scenarios", a.renderScenarioSummary(components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("Goals", a.renderGoalCounts(), halves[1]),
	}))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Upcoming Deadlines", a.renderUpcoming(inner), cw))

	return b.String()
}

func (a App) renderScenarioSummary(width int) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	if len(a.scenarios) == 0 {
		return dimStyle.Render("No scenarios")
	}
	nameW := min(14, max(width/3, 8))
	lines := make([]string, 0, len(a.scenarios))
	for _, sc := range a.scenarios {
		lines = append(lines,
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(cli.Title(sc.Name), nameW)))+
				dimStyle.Render(fmt.Sprintf(" %-11s ", cli.FormatRate(sc.MonthlyRate)))+
				valueStyle.Render(cli.FormatHorizon(sc.Horizon)))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderGoalCounts() string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.overview.Goals) == 0 {
		return dimStyle.Render("No goals yet. Add one with `wealthpath goals add`.")
	}
	counts := tracker.Counts(a.overview.Goals)
	lines := make([]string, 0, len(tracker.Statuses))
	for _, s := range tracker.Statuses {
		style := lipgloss.NewStyle().Foreground(t.StatusColor(s)).Background(t.Surface).Bold(true)
		lines = append(lines,
			style.Render(fmt.Sprintf("%3d ", counts[s]))+dimStyle.Render(cli.Title(string(s))))
	}
	return strings.Join(lines, "\n")
}

// renderUpcoming lists the nearest open goals in deadline order.
func (a App) renderUpcoming(width int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var lines []string
	for _, as := range a.overview.Goals {
		if as.Status == tracker.StatusCompleted {
			continue
		}
		statusStyle := lipgloss.NewStyle().Foreground(t.StatusColor(as.Status)).Background(t.Surface)
		nameW := max(width-48, 12)
		lines = append(lines,
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(as.Goal.Name, nameW)))+
				dimStyle.Render(fmt.Sprintf(" %-12s", cli.FormatDays(as.DaysRemaining)))+
				statusStyle.Render(fmt.Sprintf(" %-10s", cli.Title(string(as.Status))))+
				dimStyle.Render(fmt.Sprintf(" %6s", cli.FormatPercent(as.Progress))))
		if len(lines) == upcomingLimit {
			break
		}
	}
	if len(lines) == 0 {
		return dimStyle.Render("Nothing due")
	}
	return strings.Join(lines, "\n")
}
