package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/tracker"
	"github.com/theirongolddev/wealthpath/internal/tui/components"
	"github.com/theirongolddev/wealthpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderGoalsTab(cw, h int) string {
	t := theme.Active
	goals := a.filteredGoals()

	filter := "all"
	if s := goalFilters[a.goalFilter]; s != "" {
		filter = cli.Title(string(s))
	}
	title := fmt.Sprintf("Goals · %s (%d) · [f] filter", filter, len(goals))

	if len(goals) == 0 {
		msg := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No matching goals")
		return components.ContentCard(title, msg, cw)
	}

	if a.isCompactLayout() {
		return components.ContentCard(title, a.renderGoalList(goals, components.CardInnerWidth(cw), h-4), cw)
	}

	widths := []int{cw * 3 / 5, cw - cw*3/5}
	list := components.ContentCard(title, a.renderGoalList(goals, components.CardInnerWidth(widths[0]), h-4), widths[0])
	detail := components.FocusCard("Detail", renderGoalDetail(goals[a.goalCursor], components.CardInnerWidth(widths[1])), widths[1])
	return components.CardRow([]string{list, detail})
}

// renderGoalList renders one row per goal, scrolled so the cursor stays
// inside maxRows.
func (a App) renderGoalList(goals []tracker.Assessment, width, maxRows int) string {
	t := theme.Active
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	maxRows = max(maxRows, 1)
	offset := 0
	if a.goalCursor >= maxRows {
		offset = a.goalCursor - maxRows + 1
	}
	end := min(offset+maxRows, len(goals))

	nameW := max(width-36, 10)
	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		as := goals[i]
		statusStyle := lipgloss.NewStyle().Foreground(t.StatusColor(as.Status)).Background(t.Surface)
		name := fmt.Sprintf("%s %-*s", cursorMark(i == a.goalCursor), nameW, truncStr(as.Goal.Name, nameW))
		if i == a.goalCursor {
			name = selStyle.Render(name)
		} else {
			name = rowStyle.Render(name)
		}
		lines = append(lines, name+
			dimStyle.Render(fmt.Sprintf(" %7s ", cli.FormatPercent(as.Progress)))+
			statusStyle.Render(fmt.Sprintf("%-10s", cli.Title(string(as.Status))))+
			dimStyle.Render(fmt.Sprintf(" %13s", cli.FormatDays(as.DaysRemaining))))
	}
	return strings.Join(lines, "\n")
}

func renderGoalDetail(as tracker.Assessment, width int) string {
	t := theme.Active
	g := as.Goal
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(t.StatusColor(as.Status)).Background(t.Surface).Bold(true)

	rows := [][2]string{
		{"Category", cli.Title(string(g.Category))},
		{"Current", cli.FormatDollars(g.CurrentValue)},
		{"Target", cli.FormatDollars(g.TargetValue)},
		{"Remaining", cli.FormatDollars(max(g.TargetValue-g.CurrentValue, 0))},
		{"Deadline", g.Deadline.Format(model.DateLayout)},
		{"Due", cli.FormatDays(as.DaysRemaining)},
	}

	var b strings.Builder
	b.WriteString(nameStyle.Render(truncStr(g.Name, width)))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(cli.Title(string(as.Status))))
	b.WriteString("\n\n")
	b.WriteString(components.ProgressBar(as.Progress, max(width-8, 4), t.StatusColor(as.Status)))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s ", r[0])))
		b.WriteString(valueStyle.Render(r[1]))
	}
	return b.String()
}
