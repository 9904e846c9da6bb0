package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/wealthpath/internal/config"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/pipeline"
	"github.com/theirongolddev/wealthpath/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeSource struct {
	metrics    model.Metrics
	goals      []model.Goal
	projects   []model.Project
	milestones []model.Milestone
	saved      []model.Metrics
}

func (f *fakeSource) MetricsOr(_ context.Context, _ model.Metrics) (model.Metrics, error) {
	return f.metrics, nil
}

func (f *fakeSource) Goals(_ context.Context) ([]model.Goal, error) {
	return f.goals, nil
}

func (f *fakeSource) Projects(_ context.Context) ([]model.Project, error) {
	return f.projects, nil
}

func (f *fakeSource) Milestones(_ context.Context) ([]model.Milestone, error) {
	return f.milestones, nil
}

func (f *fakeSource) SetMetrics(_ context.Context, m model.Metrics) (model.Metrics, error) {
	f.saved = append(f.saved, m)
	return m, nil
}

func (f *fakeSource) Subscribe(func(model.ChangeEvent)) func() {
	return func() {}
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testGoals() []model.Goal {
	day := 24 * time.Hour
	return []model.Goal{
		{ID: "1", Name: "Seed fund", TargetValue: 100, CurrentValue: 120, Deadline: testNow.Add(90 * day), Category: model.CategoryFinancial},
		{ID: "2", Name: "Old launch", TargetValue: 100, CurrentValue: 50, Deadline: testNow.Add(-3 * day), Category: model.CategoryBusiness},
		{ID: "3", Name: "Marathon", TargetValue: 100, CurrentValue: 10, Deadline: testNow.Add(10 * day), Category: model.CategoryPersonal},
		{ID: "4", Name: "Unicorn", TargetValue: 100, CurrentValue: 10, Deadline: testNow.Add(400 * day), Category: model.CategoryMilestone},
	}
}

func testProjects() []model.Project {
	return []model.Project{
		{ID: "p1", Name: "Titan Real Estate", Type: "Real Estate", Value: 156e6, Invested: 120e6, Change: 2.1, Status: model.ProjectStable},
		{ID: "p2", Name: "Apex Ventures", Type: "Venture Capital", Value: 42.8e6, Invested: 28.5e6, Change: 18.2, Status: model.ProjectActive},
		{ID: "p3", Name: "Green Energy Fund", Type: "Sustainable", Value: 5.8e6, Invested: 6.1e6, Change: -1.2, Status: model.ProjectMonitoring},
	}
}

func testMilestones() []model.Milestone {
	return []model.Milestone{
		{ID: "m1", Year: 2015, Title: "The Beginning", NetWorth: 2_500},
		{ID: "m2", Year: 2018, Title: "First Million", NetWorth: 1_200_000, Highlight: true},
	}
}

func newTestApp(t *testing.T) (App, *fakeSource) {
	t.Helper()
	src := &fakeSource{
		metrics: model.Metrics{NetWorth: 225_234_891, MonthlyGrowth: 12.4, TargetValue: 1e9},
		goals:      testGoals(),
		projects:   testProjects(),
		milestones: testMilestones(),
	}
	a := NewApp(src, config.DefaultConfig())
	a.now = func() time.Time { return testNow }
	a.needSetup = false
	return a, src
}

// loadedApp runs the app's load command and feeds the result back.
func loadedApp(t *testing.T) (App, *fakeSource) {
	t.Helper()
	a, src := newTestApp(t)
	msg := a.loadCmd()()
	loaded, ok := msg.(OverviewLoadedMsg)
	if !ok {
		t.Fatalf("loadCmd returned %T, want OverviewLoadedMsg", msg)
	}
	if loaded.Err != nil {
		t.Fatalf("load: %v", loaded.Err)
	}
	m, _ := a.Update(loaded)
	return m.(App), src
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		a = m.(App)
	}
	return a
}

func TestLoadedOverview(t *testing.T) {
	a, _ := loadedApp(t)

	if !a.loaded {
		t.Fatal("app not loaded")
	}
	if a.rate != 12.4 {
		t.Fatalf("rate = %v, want 12.4", a.rate)
	}
	if len(a.scenarios) != 3 {
		t.Fatalf("scenarios = %d, want 3", len(a.scenarios))
	}
	if len(a.overview.Goals) != 4 {
		t.Fatalf("goals = %d, want 4", len(a.overview.Goals))
	}
	if a.horizon.WholeMonths() != 13 {
		t.Fatalf("horizon whole months = %d, want 13", a.horizon.WholeMonths())
	}
}

func TestRateAdjustment(t *testing.T) {
	a, _ := loadedApp(t)
	stored := a.horizon.Months

	a = press(t, a, "+")
	if a.rate != 13 {
		t.Fatalf("rate after + = %v, want 13", a.rate)
	}
	if !a.rateDirty {
		t.Fatal("rate not marked as what-if")
	}
	if a.horizon.Months >= stored {
		t.Fatalf("horizon = %v, want below %v at a higher rate", a.horizon.Months, stored)
	}
	if a.scenarios[1].MonthlyRate != 13 {
		t.Fatalf("moderate scenario rate = %v, want 13", a.scenarios[1].MonthlyRate)
	}

	a = press(t, a, "-", "-")
	if a.rate != 12 {
		t.Fatalf("rate after -- = %v, want 12", a.rate)
	}

	for range 60 {
		a = press(t, a, "+")
	}
	if a.rate != rateMax {
		t.Fatalf("rate = %v, want clamp at %v", a.rate, rateMax)
	}
	for range 80 {
		a = press(t, a, "-")
	}
	if a.rate != rateMin {
		t.Fatalf("rate = %v, want clamp at %v", a.rate, rateMin)
	}

	a = press(t, a, "0")
	if a.rate != 12.4 || a.rateDirty {
		t.Fatalf("after reset rate = %v dirty = %v, want 12.4 false", a.rate, a.rateDirty)
	}
	if a.horizon.Months != stored {
		t.Fatalf("horizon after reset = %v, want %v", a.horizon.Months, stored)
	}
}

func TestSaveRate(t *testing.T) {
	a, src := loadedApp(t)

	if _, cmd := press(t, a, "w").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")}); cmd != nil {
		t.Fatal("w without a what-if rate should not save")
	}

	a = press(t, a, "+")
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	if cmd == nil {
		t.Fatal("w returned no command")
	}
	msg, ok := cmd().(MetricsSavedMsg)
	if !ok {
		t.Fatal("save command did not return MetricsSavedMsg")
	}
	if msg.Err != nil {
		t.Fatalf("save: %v", msg.Err)
	}
	if len(src.saved) != 1 || src.saved[0].MonthlyGrowth != 13 {
		t.Fatalf("saved = %+v, want one record at 13", src.saved)
	}
	if src.saved[0].NetWorth != 225_234_891 {
		t.Fatalf("saved net worth = %v, want unchanged", src.saved[0].NetWorth)
	}
}

func TestTabKeys(t *testing.T) {
	a, _ := loadedApp(t)

	tests := []struct {
		key  string
		want int
	}{
		{"s", tabScenarios},
		{"g", tabGoals},
		{"p", tabPortfolio},
		{"o", tabOverview},
	}
	for _, tt := range tests {
		a = press(t, a, tt.key)
		if a.activeTab != tt.want {
			t.Fatalf("after %q activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.(App).activeTab; got != tabPortfolio {
		t.Fatalf("left from overview = %d, want %d", got, tabPortfolio)
	}
}

func TestGoalFilterCycle(t *testing.T) {
	a, _ := loadedApp(t)
	a = press(t, a, "g")

	if got := len(a.filteredGoals()); got != 4 {
		t.Fatalf("unfiltered goals = %d, want 4", got)
	}
	for _, want := range tracker.Statuses {
		a = press(t, a, "f")
		goals := a.filteredGoals()
		if len(goals) != 1 {
			t.Fatalf("filter %s: %d goals, want 1", want, len(goals))
		}
		if goals[0].Status != want {
			t.Fatalf("filter %s: got status %s", want, goals[0].Status)
		}
	}
	a = press(t, a, "f")
	if goalFilters[a.goalFilter] != "" {
		t.Fatalf("filter did not wrap to all, got %q", goalFilters[a.goalFilter])
	}
}

func TestGoalCursorClamped(t *testing.T) {
	a, _ := loadedApp(t)
	a = press(t, a, "g")

	a = press(t, a, "j", "j", "j", "j", "j", "j")
	if a.goalCursor != 3 {
		t.Fatalf("goalCursor = %d, want 3", a.goalCursor)
	}
	a = press(t, a, "f")
	if a.goalCursor != 0 {
		t.Fatalf("goalCursor after filter = %d, want 0", a.goalCursor)
	}
	a = press(t, a, "k")
	if a.goalCursor != 0 {
		t.Fatalf("goalCursor = %d, want 0", a.goalCursor)
	}
}

func TestPortfolioFilterAndCursor(t *testing.T) {
	a, _ := loadedApp(t)
	a = press(t, a, "p")

	if got := len(a.filteredHoldings()); got != 3 {
		t.Fatalf("unfiltered holdings = %d, want 3", got)
	}
	a = press(t, a, "j", "j", "j", "j")
	if a.projectCursor != 2 {
		t.Fatalf("projectCursor = %d, want 2", a.projectCursor)
	}

	// First filter step is "active".
	a = press(t, a, "f")
	if a.projectCursor != 0 {
		t.Fatalf("projectCursor after filter = %d, want 0", a.projectCursor)
	}
	holdings := a.filteredHoldings()
	if len(holdings) != 1 || holdings[0].Project.ID != "p2" {
		t.Fatalf("active holdings = %+v, want Apex only", holdings)
	}
	for range model.ProjectStatuses {
		a = press(t, a, "f")
	}
	if projectFilters[a.projectFilter] != "" {
		t.Fatalf("filter did not wrap to all, got %q", projectFilters[a.projectFilter])
	}
	// The goal filter is untouched on the Portfolio tab.
	if a.goalFilter != 0 {
		t.Fatalf("goalFilter = %d, want 0", a.goalFilter)
	}
}

func TestScenarioSelection(t *testing.T) {
	a, _ := loadedApp(t)
	a = press(t, a, "s", "j", "j", "j")
	if a.scenarioIx != 2 {
		t.Fatalf("scenarioIx = %d, want 2", a.scenarioIx)
	}
}

func TestChangeTriggersReload(t *testing.T) {
	a, _ := loadedApp(t)
	m, cmd := a.Update(ChangeMsg{Event: model.ChangeEvent{Table: model.TableGoals, Type: model.ChangeInsert}})
	if !m.(App).refreshing {
		t.Fatal("change did not start a refresh")
	}
	if cmd == nil {
		t.Fatal("change returned no command")
	}
}

func TestLoadError(t *testing.T) {
	a, _ := newTestApp(t)
	m, _ := a.Update(OverviewLoadedMsg{Err: context.DeadlineExceeded})
	got := m.(App)
	if !got.loaded || got.loadErr == nil {
		t.Fatalf("loaded = %v loadErr = %v, want loaded with error", got.loaded, got.loadErr)
	}
}

func TestTabAtX(t *testing.T) {
	a, _ := newTestApp(t)

	tests := []struct {
		x    int
		want int
	}{
		{0, 0},
		{9, 0},
		{10, -1},
		{11, 1},
		{23, 1},
		{25, 2},
		{33, 2},
		{34, -1},
		{35, 3},
		{47, 3},
		{48, -1},
	}
	for _, tt := range tests {
		if got := a.tabAtX(tt.x); got != tt.want {
			t.Fatalf("tabAtX(%d) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestViewRendersTabs(t *testing.T) {
	a, _ := loadedApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	a = m.(App)

	if v := a.View(); !strings.Contains(v, "Net Worth") {
		t.Fatal("overview does not show Net Worth")
	}
	if v := press(t, a, "s").View(); !strings.Contains(v, "Moderate") {
		t.Fatal("scenarios tab does not list Moderate")
	}
	if v := press(t, a, "g").View(); !strings.Contains(v, "Marathon") {
		t.Fatal("goals tab does not list Marathon")
	}
	v := press(t, a, "p").View()
	for _, want := range []string{"Portfolio Value", "Titan Real Estate", "First Million"} {
		if !strings.Contains(v, want) {
			t.Fatalf("portfolio tab does not show %q", want)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a, _ := loadedApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if v := m.(App).View(); !strings.Contains(v, "too narrow") {
		t.Fatalf("View() = %q, want narrow warning", v)
	}
}

func TestSetupApply(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := SetupValues{NetWorth: "$1,000,000", Rate: "2.5%", Target: "5_000_000", Theme: "tokyo-night"}

	m, err := vals.Apply(&cfg)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if m.NetWorth != 1_000_000 || m.MonthlyGrowth != 2.5 || m.TargetValue != 5_000_000 {
		t.Fatalf("metrics = %+v", m)
	}
	if cfg.Appearance.Theme != "tokyo-night" {
		t.Fatalf("theme = %q, want tokyo-night", cfg.Appearance.Theme)
	}

	bad := SetupValues{NetWorth: "lots", Rate: "1", Target: "1"}
	if _, err := bad.Apply(&cfg); err == nil {
		t.Fatal("Apply accepted a non-numeric net worth")
	}
}

func TestSetupValidators(t *testing.T) {
	if err := validatePositive("0"); err == nil {
		t.Fatal("validatePositive accepted 0")
	}
	if err := validatePositive("12,000"); err != nil {
		t.Fatalf("validatePositive(12,000): %v", err)
	}
	if err := validateRate("-100"); err == nil {
		t.Fatal("validateRate accepted -100")
	}
	if err := validateRate("0"); err != nil {
		t.Fatalf("validateRate(0): %v", err)
	}
}

var _ pipeline.Source = (*fakeSource)(nil)
