package tracker

import (
	"testing"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"
)

var refNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func billionGoal(current float64, deadline time.Time) model.Goal {
	return model.Goal{
		ID:           "g1",
		Name:         "The Billion",
		TargetValue:  1_000_000,
		CurrentValue: current,
		Deadline:     deadline,
		Category:     model.CategoryMilestone,
	}
}

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		current, target, want float64
	}{
		{0, 100, 0},
		{25, 100, 25},
		{100, 100, 100},
		{250, 100, 100},
		{-5, 100, 0},
		{5, 0, 0},
	}
	for _, tc := range cases {
		g := model.Goal{TargetValue: tc.target, CurrentValue: tc.current}
		if got := ProgressPercent(g); got != tc.want {
			t.Fatalf("ProgressPercent(%v/%v) = %v, want %v", tc.current, tc.target, got, tc.want)
		}
	}
}

func TestDaysRemaining(t *testing.T) {
	cases := []struct {
		deadline time.Time
		want     int
	}{
		{refNow, 0},
		{refNow.AddDate(0, 0, 15), 15},
		{refNow.Add(36 * time.Hour), 2},
		{refNow.Add(-12 * time.Hour), 0},
		{refNow.AddDate(0, 0, -1), -1},
		{refNow.Add(-36 * time.Hour), -1},
	}
	for _, tc := range cases {
		g := billionGoal(0, tc.deadline)
		if got := DaysRemaining(g, refNow); got != tc.want {
			t.Fatalf("DaysRemaining(%s) = %d, want %d", tc.deadline, got, tc.want)
		}
	}
}

func TestStatus_ReferenceScenarios(t *testing.T) {
	tr := New(DefaultPolicy())

	cases := []struct {
		name     string
		current  float64
		deadline time.Time
		want     Status
	}{
		{"complete", 1_000_000, refNow.AddDate(1, 0, 0), StatusCompleted},
		{"overshoot", 1_500_000, refNow.AddDate(0, 0, -10), StatusCompleted},
		{"behind", 999_999, refNow.AddDate(0, 0, -1), StatusBehind},
		{"at risk", 750_000, refNow.AddDate(0, 0, 15), StatusAtRisk},
		{"on track despite short deadline", 850_000, refNow.AddDate(0, 0, 15), StatusOnTrack},
		{"on track far deadline", 10, refNow.AddDate(2, 0, 0), StatusOnTrack},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tr.Status(billionGoal(tc.current, tc.deadline), refNow)
			if got != tc.want {
				t.Fatalf("Status = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestStatus_Boundaries(t *testing.T) {
	tr := New(DefaultPolicy())

	cases := []struct {
		name     string
		current  float64
		deadline time.Time
		want     Status
	}{
		// Exactly 100% progress is completed even after the deadline.
		{"exactly 100 percent", 1_000_000, refNow.AddDate(0, 0, -3), StatusCompleted},
		// 30 days left is not "fewer than 30".
		{"exactly 30 days low progress", 100_000, refNow.AddDate(0, 0, 30), StatusOnTrack},
		{"29 days low progress", 100_000, refNow.AddDate(0, 0, 29), StatusAtRisk},
		// 80% is not "below 80".
		{"exactly 80 percent short deadline", 800_000, refNow.AddDate(0, 0, 5), StatusOnTrack},
		{"just under 80 percent", 799_999, refNow.AddDate(0, 0, 5), StatusAtRisk},
		// A deadline equal to now has not passed yet.
		{"deadline equals now low progress", 100_000, refNow, StatusAtRisk},
		{"deadline equals now high progress", 900_000, refNow, StatusOnTrack},
		{"deadline one nanosecond ago", 900_000, refNow.Add(-time.Nanosecond), StatusOnTrack},
		// Halfway through the deadline day is still day 0.
		{"12h into deadline day", 900_000, refNow.Add(-12 * time.Hour), StatusOnTrack},
		{"12h into deadline day low progress", 100_000, refNow.Add(-12 * time.Hour), StatusAtRisk},
		{"one day ago", 900_000, refNow.AddDate(0, 0, -1), StatusBehind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tr.Status(billionGoal(tc.current, tc.deadline), refNow)
			if got != tc.want {
				t.Fatalf("Status = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestStatus_DeadlineDayIsNotBehind(t *testing.T) {
	tr := New(DefaultPolicy())
	deadline, err := model.ParseDate("2026-10-18", time.UTC)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	g := billionGoal(900_000, deadline)

	morning := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	if days := DaysRemaining(g, morning); days != 0 {
		t.Fatalf("DaysRemaining = %d, want 0", days)
	}
	if got := tr.Status(g, morning); got != StatusOnTrack {
		t.Fatalf("Status on deadline day = %s, want on_track", got)
	}

	nextDay := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	if got := tr.Status(g, nextDay); got != StatusBehind {
		t.Fatalf("Status day after deadline = %s, want behind", got)
	}
}

func TestStatus_CustomPolicy(t *testing.T) {
	tr := New(Policy{AtRiskDays: 90, AtRiskPercent: 50})
	g := billionGoal(600_000, refNow.AddDate(0, 0, 60))
	if got := tr.Status(g, refNow); got != StatusOnTrack {
		t.Fatalf("Status at 60%% = %s, want on_track", got)
	}
	g.CurrentValue = 400_000
	if got := tr.Status(g, refNow); got != StatusAtRisk {
		t.Fatalf("Status at 40%% = %s, want at_risk", got)
	}
}

func TestAssess_PreservesOrderAndCounts(t *testing.T) {
	tr := New(DefaultPolicy())
	goals := []model.Goal{
		billionGoal(1_000_000, refNow.AddDate(0, 0, 100)),
		billionGoal(10, refNow.AddDate(0, 0, -2)),
		billionGoal(10, refNow.AddDate(0, 0, 3)),
		billionGoal(10, refNow.AddDate(1, 0, 0)),
	}
	goals[1].ID, goals[2].ID, goals[3].ID = "g2", "g3", "g4"

	got := tr.Assess(goals, refNow)
	wantStatus := []Status{StatusCompleted, StatusBehind, StatusAtRisk, StatusOnTrack}
	for i, a := range got {
		if a.Goal.ID != goals[i].ID {
			t.Fatalf("assessment[%d] = %s, want %s", i, a.Goal.ID, goals[i].ID)
		}
		if a.Status != wantStatus[i] {
			t.Fatalf("assessment[%d] status = %s, want %s", i, a.Status, wantStatus[i])
		}
	}
	if got[2].DaysRemaining != 3 {
		t.Fatalf("DaysRemaining = %d, want 3", got[2].DaysRemaining)
	}

	counts := Counts(got)
	for _, s := range Statuses {
		if counts[s] != 1 {
			t.Fatalf("counts[%s] = %d, want 1", s, counts[s])
		}
	}
}
