package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidProject is returned when a project violates its field invariants.
var ErrInvalidProject = errors.New("invalid project")

// ProjectStatus is the lifecycle stage of a portfolio project.
type ProjectStatus string

const (
	ProjectActive     ProjectStatus = "active"
	ProjectGrowth     ProjectStatus = "growth"
	ProjectStable     ProjectStatus = "stable"
	ProjectMonitoring ProjectStatus = "monitoring"
	ProjectCompleted  ProjectStatus = "completed"
)

// ProjectStatuses lists every valid project status in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectActive,
	ProjectGrowth,
	ProjectStable,
	ProjectMonitoring,
	ProjectCompleted,
}

// ParseProjectStatus accepts a status name case-insensitively.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(strings.ToLower(strings.TrimSpace(s)))
	if st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidProject, s)
}

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	for _, known := range ProjectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Open reports whether the project still counts as an active holding.
func (s ProjectStatus) Open() bool {
	return s != ProjectCompleted
}

// Trend is the direction of a project's latest change.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// Project is one holding in the investment portfolio.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Description string        `json:"description,omitempty"`
	Value       float64       `json:"value"`
	Invested    float64       `json:"invested"`
	Change      float64       `json:"change"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Trend derives the direction from the sign of Change.
func (p Project) Trend() Trend {
	switch {
	case p.Change > 0:
		return TrendUp
	case p.Change < 0:
		return TrendDown
	default:
		return TrendNeutral
	}
}

// Validate checks the field invariants of a project.
func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProject)
	}
	if !(p.Value >= 0) || math.IsInf(p.Value, 0) {
		return fmt.Errorf("%w: value must be non-negative, got %v", ErrInvalidProject, p.Value)
	}
	if !(p.Invested >= 0) || math.IsInf(p.Invested, 0) {
		return fmt.Errorf("%w: invested must be non-negative, got %v", ErrInvalidProject, p.Invested)
	}
	if math.IsNaN(p.Change) || math.IsInf(p.Change, 0) {
		return fmt.Errorf("%w: change must be finite, got %v", ErrInvalidProject, p.Change)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidProject, p.Status)
	}
	return nil
}

// ProjectInput holds the caller-supplied fields of a new project.
type ProjectInput struct {
	Name        string
	Type        string
	Description string
	Value       float64
	Invested    float64
	Change      float64
	Status      ProjectStatus
}

// ProjectPatch holds optional field changes for an existing project.
type ProjectPatch struct {
	Name        *string
	Type        *string
	Description *string
	Value       *float64
	Invested    *float64
	Change      *float64
	Status      *ProjectStatus
}

// Empty reports whether the patch changes nothing.
func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.Type == nil && p.Description == nil &&
		p.Value == nil && p.Invested == nil && p.Change == nil && p.Status == nil
}

// Apply returns a copy of pr with the patch applied.
func (p ProjectPatch) Apply(pr Project) Project {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Type != nil {
		pr.Type = *p.Type
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Value != nil {
		pr.Value = *p.Value
	}
	if p.Invested != nil {
		pr.Invested = *p.Invested
	}
	if p.Change != nil {
		pr.Change = *p.Change
	}
	if p.Status != nil {
		pr.Status = *p.Status
	}
	return pr
}
