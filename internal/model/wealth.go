package model

import "time"

// Metrics is the headline portfolio record the projections start from.
type Metrics struct {
	NetWorth      float64   `json:"net_worth"`
	MonthlyGrowth float64   `json:"monthly_growth"`
	TargetValue   float64   `json:"target_value"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// JourneyPercent is net worth as a share of the target, in percent.
// It is not capped so overshoot stays visible.
func (m Metrics) JourneyPercent() float64 {
	if m.TargetValue <= 0 {
		return 0
	}
	return m.NetWorth / m.TargetValue * 100
}

// MetricsPatch holds optional metric changes. Nil fields are left untouched.
type MetricsPatch struct {
	NetWorth      *float64
	MonthlyGrowth *float64
	TargetValue   *float64
}

// Apply returns a copy of m with the patch applied.
func (p MetricsPatch) Apply(m Metrics) Metrics {
	if p.NetWorth != nil {
		m.NetWorth = *p.NetWorth
	}
	if p.MonthlyGrowth != nil {
		m.MonthlyGrowth = *p.MonthlyGrowth
	}
	if p.TargetValue != nil {
		m.TargetValue = *p.TargetValue
	}
	return m
}

// Change tables and operations carried by ChangeEvent.
const (
	TableGoals      = "goals"
	TableMetrics    = "metrics"
	TableProjects   = "projects"
	TableMilestones = "milestones"

	ChangeInsert = "insert"
	ChangeUpdate = "update"
	ChangeDelete = "delete"
)

// ChangeEvent describes one committed mutation of the store.
type ChangeEvent struct {
	Table     string     `json:"table"`
	Type      string     `json:"type"`
	ID        string     `json:"id,omitempty"`
	Goal      *Goal      `json:"goal,omitempty"`
	Metrics   *Metrics   `json:"metrics,omitempty"`
	Project   *Project   `json:"project,omitempty"`
	Milestone *Milestone `json:"milestone,omitempty"`
	At        time.Time  `json:"at"`
}
