package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/wealthpath/internal/forecast"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/tracker"
)

var refNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	d, _ := time.Parse(model.DateLayout, s)
	return d
}

func sampleGoals() []model.Goal {
	return []model.Goal{
		{ID: "a", Name: "First $500M", TargetValue: 500e6, CurrentValue: 225e6, Deadline: day("2025-12-31"), Category: model.CategoryFinancial},
		{ID: "b", Name: "10 Active Investments", TargetValue: 10, CurrentValue: 10, Deadline: day("2025-09-30"), Category: model.CategoryBusiness},
		{ID: "c", Name: "Launch Podcast", TargetValue: 1, CurrentValue: 0, Deadline: day("2025-07-01"), Category: model.CategoryPersonal},
		{ID: "d", Name: "Old milestone", TargetValue: 100, CurrentValue: 10, Deadline: day("2025-01-01"), Category: model.CategoryMilestone},
	}
}

func sampleMetrics() model.Metrics {
	return model.Metrics{NetWorth: 225_000_000, MonthlyGrowth: 12.4, TargetValue: 1e9}
}

func TestBuild(t *testing.T) {
	s := DefaultSettings(refNow)
	ov, err := Build(sampleMetrics(), sampleGoals(), s, refNow)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := math.Log(1e9/225e6) / math.Log(1.124)
	if math.Abs(ov.Horizon.Months-want) > 1e-9 {
		t.Fatalf("Horizon = %v, want %v", ov.Horizon.Months, want)
	}
	if ov.ETA == nil || !ov.ETA.Equal(refNow.AddDate(0, 13, 0)) {
		t.Fatalf("ETA = %v, want %v", ov.ETA, refNow.AddDate(0, 13, 0))
	}
	if math.Abs(ov.JourneyPercent-22.5) > 1e-9 {
		t.Fatalf("JourneyPercent = %v, want 22.5", ov.JourneyPercent)
	}

	if len(ov.Scenarios) != 3 {
		t.Fatalf("Scenarios len = %d, want 3", len(ov.Scenarios))
	}
	mod, ok := forecast.Find(ov.Scenarios, forecast.Moderate)
	if !ok {
		t.Fatal("moderate scenario missing")
	}
	if mod.Projection[0].Label != "2025" || mod.Projection[10].Label != "2035" {
		t.Fatalf("labels = %s..%s, want 2025..2035", mod.Projection[0].Label, mod.Projection[10].Label)
	}
	if mod.Projection[10].Value != 2e9 {
		t.Fatalf("last point = %v, want capped at 2e9", mod.Projection[10].Value)
	}

	wantStatus := []tracker.Status{tracker.StatusOnTrack, tracker.StatusCompleted, tracker.StatusAtRisk, tracker.StatusBehind}
	for i, a := range ov.Goals {
		if a.Status != wantStatus[i] {
			t.Fatalf("goal %s status = %s, want %s", a.Goal.ID, a.Status, wantStatus[i])
		}
	}
	for _, st := range tracker.Statuses {
		if ov.StatusCounts[st] != 1 {
			t.Fatalf("StatusCounts[%s] = %d, want 1", st, ov.StatusCounts[st])
		}
	}
}

func TestBuild_Unreachable(t *testing.T) {
	m := sampleMetrics()
	m.MonthlyGrowth = 0
	ov, err := Build(m, nil, DefaultSettings(refNow), refNow)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ov.Horizon.Reachable() || ov.ETA != nil {
		t.Fatalf("Horizon = %v, ETA = %v; want unreachable, nil", ov.Horizon.Months, ov.ETA)
	}
}

func TestBuild_InvalidMetrics(t *testing.T) {
	m := sampleMetrics()
	m.NetWorth = 0
	if _, err := Build(m, nil, DefaultSettings(refNow), refNow); !errors.Is(err, forecast.ErrInvalidArgument) {
		t.Fatalf("Build err = %v, want ErrInvalidArgument", err)
	}
}

func TestFilters(t *testing.T) {
	assessments := tracker.New(tracker.DefaultPolicy()).Assess(sampleGoals(), refNow)
	if got := FilterByStatus(assessments, tracker.StatusBehind); len(got) != 1 || got[0].Goal.ID != "d" {
		t.Fatalf("FilterByStatus(behind) = %+v", got)
	}
	if got := FilterByCategory(assessments, model.CategoryBusiness); len(got) != 1 || got[0].Goal.ID != "b" {
		t.Fatalf("FilterByCategory(business) = %+v", got)
	}
}

type fakeSource struct {
	metrics    *model.Metrics
	goals      []model.Goal
	projects   []model.Project
	milestones []model.Milestone
	err        error
}

func (f fakeSource) MetricsOr(_ context.Context, def model.Metrics) (model.Metrics, error) {
	if f.err != nil {
		return model.Metrics{}, f.err
	}
	if f.metrics == nil {
		return def, nil
	}
	return *f.metrics, nil
}

func (f fakeSource) Goals(context.Context) ([]model.Goal, error) {
	return f.goals, nil
}

func (f fakeSource) Projects(context.Context) ([]model.Project, error) {
	return f.projects, nil
}

func (f fakeSource) Milestones(context.Context) ([]model.Milestone, error) {
	return f.milestones, nil
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	ov, err := Load(ctx, fakeSource{goals: sampleGoals()}, sampleMetrics(), DefaultSettings(refNow), refNow)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ov.Metrics.NetWorth != 225_000_000 || len(ov.Goals) != 4 {
		t.Fatalf("Load = %+v", ov.Metrics)
	}

	if ov.Portfolio.Projects != 0 || len(ov.Journey.Steps) != 0 {
		t.Fatalf("empty portfolio = %+v, journey = %+v", ov.Portfolio, ov.Journey)
	}

	boom := errors.New("boom")
	if _, err := Load(ctx, fakeSource{err: boom}, sampleMetrics(), DefaultSettings(refNow), refNow); !errors.Is(err, boom) {
		t.Fatalf("Load err = %v, want wrapped boom", err)
	}
}

func TestLoad_PortfolioAndJourney(t *testing.T) {
	src := fakeSource{
		goals: sampleGoals(),
		projects: []model.Project{
			{ID: "p1", Name: "Titan Real Estate", Value: 156e6, Invested: 120e6, Change: 2.1, Status: model.ProjectStable},
			{ID: "p2", Name: "Exited", Value: 10e6, Invested: 5e6, Status: model.ProjectCompleted},
		},
		milestones: []model.Milestone{
			{ID: "m2", Year: 2018, Title: "First Million", NetWorth: 1.2e6},
			{ID: "m1", Year: 2015, Title: "The Beginning", NetWorth: 2_500},
		},
	}
	ov, err := Load(context.Background(), src, sampleMetrics(), DefaultSettings(refNow), refNow)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ov.Portfolio.TotalValue != 166e6 || ov.Portfolio.ActiveProjects != 1 {
		t.Fatalf("Portfolio = %+v", ov.Portfolio)
	}
	if ov.Journey.StartYear != 2015 || ov.Journey.Steps[0].Milestone.ID != "m1" {
		t.Fatalf("Journey = %+v", ov.Journey)
	}
	if ov.Journey.NetWorth != ov.Metrics.NetWorth || ov.Journey.CAGR == nil {
		t.Fatalf("Journey totals = %+v", ov.Journey)
	}
}

func BenchmarkBuild(b *testing.B) {
	goals := sampleGoals()
	s := DefaultSettings(refNow)
	for i := 0; i < b.N; i++ {
		if _, err := Build(sampleMetrics(), goals, s, refNow); err != nil {
			b.Fatal(err)
		}
	}
}
