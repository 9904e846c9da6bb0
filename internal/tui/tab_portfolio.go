package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/portfolio"
	"github.com/theirongolddev/wealthpath/internal/tui/components"
	"github.com/theirongolddev/wealthpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const journeyRows = 6

func (a App) renderPortfolioTab(cw, h int) string {
	t := theme.Active
	sum := a.overview.Portfolio

	profitColor := t.Gain
	if sum.TotalProfit < 0 {
		profitColor = t.Loss
	}
	metrics := []components.Metric{
		{Label: "Portfolio Value", Value: cli.FormatMoney(sum.TotalValue), Hint: cli.FormatDollars(sum.TotalValue)},
		{Label: "Invested", Value: cli.FormatMoney(sum.TotalInvested), Hint: fmt.Sprintf("%d projects", sum.Projects)},
		{Label: "Profit", Value: cli.FormatMoney(sum.TotalProfit), Hint: "ROI " + cli.FormatChange(sum.ROI), Color: profitColor},
		{Label: "Active Projects", Value: strconv.Itoa(sum.ActiveProjects), Hint: "avg " + cli.FormatChange(sum.AverageChange)},
	}

	var cards string
	if a.isCompactLayout() {
		cards = components.MetricCardRow(metrics[:2], cw) + "\n" + components.MetricCardRow(metrics[2:], cw)
	} else {
		cards = components.MetricCardRow(metrics, cw)
	}

	journey := a.renderJourney(components.CardInnerWidth(cw))
	journeyCard := components.ContentCard("Journey", journey, cw)

	listH := max(h-lipgloss.Height(cards)-lipgloss.Height(journeyCard), 6)
	return strings.Join([]string{cards, a.renderHoldings(cw, listH), journeyCard}, "\n")
}

func (a App) renderHoldings(cw, h int) string {
	t := theme.Active
	holdings := a.filteredHoldings()

	filter := "all"
	if s := projectFilters[a.projectFilter]; s != "" {
		filter = cli.Title(string(s))
	}
	title := fmt.Sprintf("Projects · %s (%d) · [f] filter", filter, len(holdings))

	if len(holdings) == 0 {
		msg := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No matching projects")
		return components.ContentCard(title, msg, cw)
	}

	if a.isCompactLayout() {
		return components.ContentCard(title, a.renderHoldingList(holdings, components.CardInnerWidth(cw), h-4), cw)
	}

	widths := []int{cw * 3 / 5, cw - cw*3/5}
	list := components.ContentCard(title, a.renderHoldingList(holdings, components.CardInnerWidth(widths[0]), h-4), widths[0])
	detail := components.FocusCard("Detail", renderHoldingDetail(holdings[a.projectCursor], components.CardInnerWidth(widths[1])), widths[1])
	return components.CardRow([]string{list, detail})
}

// renderHoldingList renders one row per project, scrolled so the cursor
// stays inside maxRows.
func (a App) renderHoldingList(holdings []portfolio.Holding, width, maxRows int) string {
	t := theme.Active
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	maxRows = max(maxRows, 1)
	offset := 0
	if a.projectCursor >= maxRows {
		offset = a.projectCursor - maxRows + 1
	}
	end := min(offset+maxRows, len(holdings))

	nameW := max(width-28, 10)
	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		h := holdings[i]
		trendStyle := lipgloss.NewStyle().Foreground(t.TrendColor(h.Trend)).Background(t.Surface)
		name := fmt.Sprintf("%s %-*s", cursorMark(i == a.projectCursor), nameW, truncStr(h.Project.Name, nameW))
		if i == a.projectCursor {
			name = selStyle.Render(name)
		} else {
			name = rowStyle.Render(name)
		}
		lines = append(lines, name+
			dimStyle.Render(fmt.Sprintf(" %9s ", cli.FormatMoney(h.Project.Value)))+
			dimStyle.Render(fmt.Sprintf("%6s ", cli.FormatPercent(h.Allocation)))+
			trendStyle.Render(fmt.Sprintf("%7s", cli.FormatChange(h.Project.Change))))
	}
	return strings.Join(lines, "\n")
}

func renderHoldingDetail(h portfolio.Holding, width int) string {
	t := theme.Active
	p := h.Project
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	trendStyle := lipgloss.NewStyle().Foreground(t.TrendColor(h.Trend)).Background(t.Surface).Bold(true)

	rows := [][2]string{
		{"Type", p.Type},
		{"Value", cli.FormatDollars(p.Value)},
		{"Invested", cli.FormatDollars(p.Invested)},
		{"Profit", cli.FormatDollars(h.Profit)},
		{"ROI", cli.FormatChange(h.ROI)},
		{"Status", cli.Title(string(p.Status))},
	}

	var b strings.Builder
	b.WriteString(nameStyle.Render(truncStr(p.Name, width)))
	b.WriteString("\n")
	b.WriteString(trendStyle.Render(cli.FormatChange(p.Change)))
	b.WriteString("\n\n")
	b.WriteString(components.ProgressBar(h.Allocation, max(width-8, 4), t.Accent))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s ", r[0])))
		b.WriteString(valueStyle.Render(r[1]))
	}
	return b.String()
}

// renderJourney lists the latest milestones with the growth since the one
// before, followed by the overall growth rate.
func (a App) renderJourney(width int) string {
	t := theme.Active
	j := a.overview.Journey
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	hiStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Bold(true)

	if len(j.Steps) == 0 {
		return dimStyle.Render("No milestones yet")
	}

	steps := j.Steps[max(len(j.Steps)-journeyRows, 0):]
	titleW := max(width-32, 8)
	lines := make([]string, 0, len(steps)+1)
	for _, st := range steps {
		ms := st.Milestone
		style := rowStyle
		if ms.Highlight {
			style = hiStyle
		}
		growth := ""
		if st.Multiple != nil {
			growth = cli.FormatMultiple(*st.Multiple)
		}
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%d  ", ms.Year))+
			style.Render(fmt.Sprintf("%-*s", titleW, truncStr(ms.Title, titleW)))+
			dimStyle.Render(fmt.Sprintf(" %9s %8s", cli.FormatMoney(ms.NetWorth), growth)))
	}

	overall := fmt.Sprintf("Since %d: %s of %s", j.StartYear, cli.FormatMoney(j.NetWorth), cli.FormatMoney(j.Target))
	if j.CAGR != nil {
		overall += " · CAGR " + cli.FormatChange(*j.CAGR)
	}
	lines = append(lines, hiStyle.Render(overall))
	return strings.Join(lines, "\n")
}
