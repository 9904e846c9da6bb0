package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/portfolio"
)

// Source is the read side of the store.
type Source interface {
	MetricsOr(ctx context.Context, def model.Metrics) (model.Metrics, error)
	Goals(ctx context.Context) ([]model.Goal, error)
	Projects(ctx context.Context) ([]model.Project, error)
	Milestones(ctx context.Context) ([]model.Milestone, error)
}

// Load reads every record from src and builds the overview, including the
// portfolio summary and milestone journey. defaults stand in for metrics
// that were never saved.
func Load(ctx context.Context, src Source, defaults model.Metrics, s Settings, now time.Time) (Overview, error) {
	m, err := src.MetricsOr(ctx, defaults)
	if err != nil {
		return Overview{}, fmt.Errorf("loading metrics: %w", err)
	}
	goals, err := src.Goals(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("loading goals: %w", err)
	}
	projects, err := src.Projects(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("loading projects: %w", err)
	}
	milestones, err := src.Milestones(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("loading milestones: %w", err)
	}
	ov, err := Build(m, goals, s, now)
	if err != nil {
		return Overview{}, fmt.Errorf("building overview: %w", err)
	}
	ov.Portfolio = portfolio.Summarize(projects)
	ov.Journey = portfolio.BuildJourney(milestones, m, now.Year())
	return ov, nil
}
