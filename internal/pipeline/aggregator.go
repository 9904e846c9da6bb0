// Package pipeline turns stored metrics, goals, projects and milestones into
// the computed wealth overview shown by every surface.
package pipeline

import (
	"time"

	"github.com/theirongolddev/wealthpath/internal/config"
	"github.com/theirongolddev/wealthpath/internal/forecast"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/portfolio"
	"github.com/theirongolddev/wealthpath/internal/tracker"
)

// Settings controls how an overview is computed.
type Settings struct {
	Multipliers      []model.Multiplier
	Periods          int
	PeriodUnitMonths int
	CapMultiple      float64
	StartYear        int
	Policy           tracker.Policy
}

// SettingsFrom derives overview settings from the loaded config.
func SettingsFrom(cfg config.Config, now time.Time) Settings {
	spec := cfg.SeriesSpec(1)
	return Settings{
		Multipliers:      cfg.Multipliers(),
		Periods:          spec.Periods,
		PeriodUnitMonths: spec.PeriodUnitMonths,
		CapMultiple:      spec.Cap,
		StartYear:        cfg.StartYear(now),
		Policy:           cfg.Policy,
	}
}

// DefaultSettings uses the built-in scenarios, series shape and policy.
func DefaultSettings(now time.Time) Settings {
	return SettingsFrom(config.DefaultConfig(), now)
}

// Series returns the projection shape for a target value.
func (s Settings) Series(target float64) forecast.SeriesSpec {
	return forecast.SeriesSpec{
		Periods:          s.Periods,
		PeriodUnitMonths: s.PeriodUnitMonths,
		Cap:              s.CapMultiple * target,
	}
}

// Overview is the computed state of the journey toward the target.
type Overview struct {
	At             time.Time              `json:"at"`
	Metrics        model.Metrics          `json:"metrics"`
	Horizon        model.Horizon          `json:"horizon"`
	ETA            *time.Time             `json:"eta,omitempty"`
	JourneyPercent float64                `json:"journey_percent"`
	Scenarios      []model.Scenario       `json:"scenarios"`
	Goals          []tracker.Assessment   `json:"goals"`
	StatusCounts   map[tracker.Status]int `json:"status_counts"`
	Portfolio      portfolio.Summary      `json:"portfolio"`
	Journey        portfolio.Journey      `json:"journey"`
}

// Build computes an overview from metrics and goals at now.
func Build(m model.Metrics, goals []model.Goal, s Settings, now time.Time) (Overview, error) {
	horizon, err := forecast.MonthsToTarget(m.NetWorth, m.TargetValue, m.MonthlyGrowth)
	if err != nil {
		return Overview{}, err
	}
	scenarios, err := ProjectScenarios(m.NetWorth, m.TargetValue, m.MonthlyGrowth, s)
	if err != nil {
		return Overview{}, err
	}

	assessments := tracker.New(s.Policy).Assess(goals, now)

	ov := Overview{
		At:             now,
		Metrics:        m,
		Horizon:        horizon,
		JourneyPercent: m.JourneyPercent(),
		Scenarios:      scenarios,
		Goals:          assessments,
		StatusCounts:   tracker.Counts(assessments),
	}
	if eta, ok := horizon.Date(now); ok {
		ov.ETA = &eta
	}
	return ov, nil
}

// ProjectScenarios runs every configured scenario at baseRate, with points
// labelled by calendar year.
func ProjectScenarios(current, target, baseRate float64, s Settings) ([]model.Scenario, error) {
	scenarios, err := forecast.BuildScenarios(current, target, baseRate, s.Multipliers, s.Series(target))
	if err != nil {
		return nil, err
	}
	for i := range scenarios {
		scenarios[i].Projection = forecast.LabelYears(scenarios[i].Projection, s.StartYear, s.PeriodUnitMonths)
	}
	return scenarios, nil
}

// FilterByStatus returns the assessments with the given status.
func FilterByStatus(assessments []tracker.Assessment, status tracker.Status) []tracker.Assessment {
	var out []tracker.Assessment
	for _, a := range assessments {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// FilterByCategory returns the assessments whose goal has the given category.
func FilterByCategory(assessments []tracker.Assessment, c model.Category) []tracker.Assessment {
	var out []tracker.Assessment
	for _, a := range assessments {
		if a.Goal.Category == c {
			out = append(out, a)
		}
	}
	return out
}
