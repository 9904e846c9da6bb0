// Package tracker derives read-only progress and health values for goals.
// Nothing here is persisted: status is recomputed from the goal and "now" on
// every call.
package tracker

import (
	"math"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"
)

// Status is the derived health of a goal.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusBehind    Status = "behind"
	StatusAtRisk    Status = "at_risk"
	StatusOnTrack   Status = "on_track"
)

// Statuses lists every status in precedence order.
var Statuses = []Status{StatusCompleted, StatusBehind, StatusAtRisk, StatusOnTrack}

// Policy holds the thresholds for the at-risk classification.
type Policy struct {
	// AtRiskDays: goals due in fewer days than this may be at risk.
	AtRiskDays int `toml:"at_risk_days"`
	// AtRiskPercent: goals below this progress may be at risk.
	AtRiskPercent float64 `toml:"at_risk_percent"`
}

// DefaultPolicy is 30 days and 80%.
func DefaultPolicy() Policy {
	return Policy{AtRiskDays: 30, AtRiskPercent: 80}
}

// Tracker classifies goals under a fixed policy.
type Tracker struct {
	policy Policy
}

// New returns a tracker using policy.
func New(policy Policy) *Tracker {
	return &Tracker{policy: policy}
}

// Policy returns the thresholds in use.
func (t *Tracker) Policy() Policy {
	return t.policy
}

// ProgressPercent is current/target as a percentage in [0, 100].
// Overshoot is reported by Status, not here.
func ProgressPercent(g model.Goal) float64 {
	if g.TargetValue <= 0 || g.CurrentValue <= 0 {
		return 0
	}
	return math.Min(100, g.CurrentValue/g.TargetValue*100)
}

// DaysRemaining is the number of days until the deadline, rounded up.
// It is negative once the deadline has passed.
func DaysRemaining(g model.Goal, now time.Time) int {
	days := g.Deadline.Sub(now).Hours() / 24
	return int(math.Ceil(days))
}

// Status classifies g at now. The first matching rule wins:
// completed, behind (negative days remaining), at risk, on track.
// The deadline day itself counts as day 0, so a goal is not behind until
// the day after its deadline.
func (t *Tracker) Status(g model.Goal, now time.Time) Status {
	progress := ProgressPercent(g)
	days := DaysRemaining(g, now)
	switch {
	case progress >= 100:
		return StatusCompleted
	case days < 0:
		return StatusBehind
	case days < t.policy.AtRiskDays && progress < t.policy.AtRiskPercent:
		return StatusAtRisk
	default:
		return StatusOnTrack
	}
}

// Assessment is a goal together with its derived view values.
type Assessment struct {
	Goal          model.Goal `json:"goal"`
	Progress      float64    `json:"progress"`
	DaysRemaining int        `json:"days_remaining"`
	Status        Status     `json:"status"`
}

// Assess evaluates every goal at now, preserving input order.
func (t *Tracker) Assess(goals []model.Goal, now time.Time) []Assessment {
	out := make([]Assessment, len(goals))
	for i, g := range goals {
		out[i] = Assessment{
			Goal:          g,
			Progress:      ProgressPercent(g),
			DaysRemaining: DaysRemaining(g, now),
			Status:        t.Status(g, now),
		}
	}
	return out
}

// Counts tallies assessments by status.
func Counts(assessments []Assessment) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, a := range assessments {
		counts[a.Status]++
	}
	return counts
}
