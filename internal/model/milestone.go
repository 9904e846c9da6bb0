package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidMilestone is returned when a milestone violates its invariants.
var ErrInvalidMilestone = errors.New("invalid milestone")

// Milestone years outside this range are rejected.
const (
	MinMilestoneYear = 1900
	MaxMilestoneYear = 9999
)

// Milestone is a dated point on the wealth journey, recording the net worth
// reached that year.
type Milestone struct {
	ID          string    `json:"id"`
	Year        int       `json:"year"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	NetWorth    float64   `json:"net_worth"`
	Highlight   bool      `json:"highlight"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the field invariants of a milestone.
func (m Milestone) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidMilestone)
	}
	if m.Year < MinMilestoneYear || m.Year > MaxMilestoneYear {
		return fmt.Errorf("%w: year must be between %d and %d, got %d",
			ErrInvalidMilestone, MinMilestoneYear, MaxMilestoneYear, m.Year)
	}
	if !(m.NetWorth >= 0) || math.IsInf(m.NetWorth, 0) {
		return fmt.Errorf("%w: net worth must be non-negative, got %v", ErrInvalidMilestone, m.NetWorth)
	}
	return nil
}

// MilestoneInput holds the caller-supplied fields of a new milestone.
type MilestoneInput struct {
	Year        int
	Title       string
	Description string
	NetWorth    float64
	Highlight   bool
}

// MilestonePatch holds optional field changes for an existing milestone.
type MilestonePatch struct {
	Year        *int
	Title       *string
	Description *string
	NetWorth    *float64
	Highlight   *bool
}

// Empty reports whether the patch changes nothing.
func (p MilestonePatch) Empty() bool {
	return p.Year == nil && p.Title == nil && p.Description == nil &&
		p.NetWorth == nil && p.Highlight == nil
}

// Apply returns a copy of m with the patch applied.
func (p MilestonePatch) Apply(m Milestone) Milestone {
	if p.Year != nil {
		m.Year = *p.Year
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.NetWorth != nil {
		m.NetWorth = *p.NetWorth
	}
	if p.Highlight != nil {
		m.Highlight = *p.Highlight
	}
	return m
}
