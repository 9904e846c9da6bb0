// Package tui provides the interactive Bubble Tea dashboard for wealthpath.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/config"
	"github.com/theirongolddev/wealthpath/internal/forecast"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/pipeline"
	"github.com/theirongolddev/wealthpath/internal/portfolio"
	"github.com/theirongolddev/wealthpath/internal/tracker"
	"github.com/theirongolddev/wealthpath/internal/tui/components"
	"github.com/theirongolddev/wealthpath/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Source is the store as seen by the dashboard.
type Source interface {
	pipeline.Source
	SetMetrics(ctx context.Context, m model.Metrics) (model.Metrics, error)
	Subscribe(fn func(model.ChangeEvent)) (cancel func())
}

// OverviewLoadedMsg is sent when an overview load or refresh completes.
type OverviewLoadedMsg struct {
	Overview pipeline.Overview
	Err      error
	LoadTime time.Duration
}

// ChangeMsg carries a store mutation observed while the dashboard runs.
type ChangeMsg struct {
	Event model.ChangeEvent
}

// MetricsSavedMsg is sent after the what-if rate or setup answers are stored.
type MetricsSavedMsg struct {
	Metrics model.Metrics
	Err     error
}

type tickMsg struct{}

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160
	minContentHeight = 5

	// What-if rate bounds, in percent per month.
	rateMin  = 1.0
	rateMax  = 30.0
	rateStep = 0.5

	refreshInterval = 60 * time.Second
	changeBuffer    = 16
)

const (
	tabOverview = iota
	tabScenarios
	tabGoals
	tabPortfolio
)

// goalFilters cycles the Goals tab; the empty status means all goals.
var goalFilters = append([]tracker.Status{""}, tracker.Statuses...)

// projectFilters cycles the Portfolio tab the same way.
var projectFilters = append([]model.ProjectStatus{""}, model.ProjectStatuses...)

// App is the root Bubble Tea model.
type App struct {
	src      Source
	cfg      config.Config
	defaults model.Metrics
	now      func() time.Time

	// Data
	overview    pipeline.Overview
	loaded      bool
	loadErr     error
	loadTime    time.Duration
	lastRefresh time.Time
	refreshing  bool

	// What-if state. rate follows the stored growth until the user moves it.
	rate      float64
	rateDirty bool
	horizon   model.Horizon
	scenarios []model.Scenario

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	notice     string
	scenarioIx    int
	goalCursor    int
	goalFilter    int
	projectCursor int
	projectFilter int

	// Store change feed
	changes   chan model.ChangeEvent
	unsubFunc func()

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model
}

// NewApp creates the dashboard over src. Call Close when the program exits.
func NewApp(src Source, cfg config.Config) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	changes := make(chan model.ChangeEvent, changeBuffer)
	cancel := src.Subscribe(func(ev model.ChangeEvent) {
		select {
		case changes <- ev:
		default:
		}
	})

	vals := SetupValuesFrom(cfg)
	return App{
		src:       src,
		cfg:       cfg,
		defaults:  cfg.DefaultMetrics(),
		now:       time.Now,
		changes:   changes,
		unsubFunc: cancel,
		setupVals: &vals,
		needSetup: !config.Exists(),
		spinner:   sp,
	}
}

// Close stops the store subscription.
func (a App) Close() {
	if a.unsubFunc != nil {
		a.unsubFunc()
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.loadCmd(),
		waitForChange(a.changes),
		a.spinner.Tick,
		tickCmd(),
	)
}

func (a App) settings() pipeline.Settings {
	return pipeline.SettingsFrom(a.cfg, a.now())
}

func (a App) loadCmd() tea.Cmd {
	src, defaults, s, now := a.src, a.defaults, a.settings(), a.now()
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ov, err := pipeline.Load(ctx, src, defaults, s, now)
		return OverviewLoadedMsg{Overview: ov, Err: err, LoadTime: time.Since(start)}
	}
}

func (a App) saveMetricsCmd(m model.Metrics) tea.Cmd {
	src := a.src
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		saved, err := src.SetMetrics(ctx, m)
		return MetricsSavedMsg{Metrics: saved, Err: err}
	}
}

func waitForChange(ch <-chan model.ChangeEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ChangeMsg{Event: ev}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// recompute refreshes the what-if horizon and scenarios for the current rate.
func (a *App) recompute() {
	m := a.overview.Metrics
	if !a.rateDirty {
		a.rate = m.MonthlyGrowth
	}
	a.horizon = a.overview.Horizon
	a.scenarios = a.overview.Scenarios
	if a.rateDirty && a.rate != m.MonthlyGrowth {
		if h, err := forecast.MonthsToTarget(m.NetWorth, m.TargetValue, a.rate); err == nil {
			a.horizon = h
		}
		if sc, err := pipeline.ProjectScenarios(m.NetWorth, m.TargetValue, a.rate, a.settings()); err == nil {
			a.scenarios = sc
		}
	}
	a.scenarioIx = min(a.scenarioIx, max(len(a.scenarios)-1, 0))
	a.clampGoalCursor()
	a.clampProjectCursor()
}

func (a *App) clampGoalCursor() {
	n := len(a.filteredGoals())
	if a.goalCursor >= n {
		a.goalCursor = n - 1
	}
	if a.goalCursor < 0 {
		a.goalCursor = 0
	}
}

// filteredGoals applies the Goals tab status filter.
func (a App) filteredGoals() []tracker.Assessment {
	status := goalFilters[a.goalFilter]
	if status == "" {
		return a.overview.Goals
	}
	return pipeline.FilterByStatus(a.overview.Goals, status)
}

func (a *App) clampProjectCursor() {
	a.projectCursor = max(min(a.projectCursor, len(a.filteredHoldings())-1), 0)
}

// filteredHoldings applies the Portfolio tab status filter.
func (a App) filteredHoldings() []portfolio.Holding {
	status := projectFilters[a.projectFilter]
	if status == "" {
		return a.overview.Portfolio.Holdings
	}
	return portfolio.FilterByStatus(a.overview.Portfolio.Holdings, status)
}

// setRate moves the what-if rate, clamped to the slider bounds.
func (a *App) setRate(r float64) {
	r = math.Round(r/rateStep) * rateStep
	a.rate = min(max(r, rateMin), rateMax)
	a.rateDirty = true
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case OverviewLoadedMsg:
		a.refreshing = false
		a.lastRefresh = a.now()
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			a.loadErr = msg.Err
			a.loaded = true
			return a, nil
		}
		a.loadErr = nil
		a.overview = msg.Overview
		a.loaded = true
		a.recompute()

		if a.needSetup && a.setupForm == nil {
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ChangeMsg:
		cmds := []tea.Cmd{waitForChange(a.changes)}
		if !a.refreshing {
			a.refreshing = true
			cmds = append(cmds, a.loadCmd())
		}
		return a, tea.Batch(cmds...)

	case MetricsSavedMsg:
		if msg.Err != nil {
			a.notice = "save failed: " + msg.Err.Error()
			return a, nil
		}
		a.notice = "saved " + cli.FormatRate(msg.Metrics.MonthlyGrowth)
		a.rateDirty = false
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && !a.refreshing && a.now().Sub(a.lastRefresh) >= refreshInterval {
			a.refreshing = true
			cmds = append(cmds, a.loadCmd())
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// First-run setup intercepts all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	a.notice = ""

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, a.loadCmd()
		}
		return a, nil
	case "+", "=", "l":
		a.setRate(a.rate + rateStep)
		return a, nil
	case "-", "_", "h":
		a.setRate(a.rate - rateStep)
		return a, nil
	case "0":
		a.rateDirty = false
		a.recompute()
		return a, nil
	case "w":
		if !a.rateDirty {
			return a, nil
		}
		m := a.overview.Metrics
		m.MonthlyGrowth = a.rate
		return a, a.saveMetricsCmd(m)
	case "j", "down":
		a.moveCursor(1)
		return a, nil
	case "k", "up":
		a.moveCursor(-1)
		return a, nil
	case "f":
		switch a.activeTab {
		case tabGoals:
			a.goalFilter = (a.goalFilter + 1) % len(goalFilters)
			a.goalCursor = 0
		case tabPortfolio:
			a.projectFilter = (a.projectFilter + 1) % len(projectFilters)
			a.projectCursor = 0
		}
		return a, nil
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabScenarios:
		a.scenarioIx = min(max(a.scenarioIx+delta, 0), max(len(a.scenarios)-1, 0))
	case tabGoals:
		a.goalCursor += delta
		a.clampGoalCursor()
	case tabPortfolio:
		a.projectCursor += delta
		a.clampProjectCursor()
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupForm = nil
		a.needSetup = false
		m, err := a.setupVals.Apply(&a.cfg)
		if err != nil {
			a.notice = err.Error()
			return a, nil
		}
		theme.SetActive(a.cfg.Appearance.Theme)
		a.defaults = m
		if err := config.Save(a.cfg); err != nil {
			a.notice = "config not saved: " + err.Error()
		}
		return a, a.saveMetricsCmd(m)
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  wealthpath needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ wealthpath"))
	b.WriteString(subtitleStyle.Render(" · Wealth Journey"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading portfolio..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Info).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"o s g p", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move selection"},
			{"f", "Cycle goal or project filter"},
		}},
		{"What-if", [][2]string{
			{"+ -", fmt.Sprintf("Adjust growth rate by %.1f%%", rateStep)},
			{"0", "Reset to stored rate"},
			{"w", "Save rate as monthly growth"},
		}},
		{"Actions", [][2]string{
			{"r", "Refresh data"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderRateLine(w)

	info := fmt.Sprintf("updated %s · %.0fms ", a.lastRefresh.Format("15:04:05"), float64(a.loadTime.Microseconds())/1000)
	notice := a.notice
	if a.loadErr != nil {
		notice = a.loadErr.Error()
	}
	statusBar := components.RenderStatusBar(w, info, notice, a.refreshing)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabScenarios:
		content = a.renderScenariosTab(cw, contentH)
	case tabGoals:
		content = a.renderGoalsTab(cw, contentH)
	case tabPortfolio:
		content = a.renderPortfolioTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderRateLine shows the what-if rate pill under the tab bar.
func (a App) renderRateLine(w int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	warn := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Bold(true)

	s := dim.Render(" rate ") + accent.Render(cli.FormatRate(a.rate))
	if a.rateDirty {
		s += dim.Render(" │ ") + warn.Render("what-if") +
			dim.Render(" (stored "+cli.FormatRate(a.overview.Metrics.MonthlyGrowth)+", [w] save, [0] reset)")
	}
	s += dim.Render(" │ target ") + accent.Render(cli.FormatMoney(a.overview.Metrics.TargetValue)) + dim.Render(" ")

	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(s)
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
