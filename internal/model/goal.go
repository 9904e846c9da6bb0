// Package model defines the records shared by the calculator, the store and
// the presentation layers.
package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the on-disk and CLI representation of a calendar date.
const DateLayout = "2006-01-02"

// ErrInvalidGoal is returned when a goal violates its field invariants.
var ErrInvalidGoal = errors.New("invalid goal")

// Category classifies a goal. It has no effect on status derivation.
type Category string

const (
	CategoryFinancial Category = "financial"
	CategoryBusiness  Category = "business"
	CategoryPersonal  Category = "personal"
	CategoryMilestone Category = "milestone"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFinancial,
	CategoryBusiness,
	CategoryPersonal,
	CategoryMilestone,
}

// ParseCategory accepts a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrInvalidGoal, s)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Goal is a user-defined target with a deadline.
type Goal struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TargetValue  float64   `json:"target_value"`
	CurrentValue float64   `json:"current_value"`
	Deadline     time.Time `json:"deadline"`
	Category     Category  `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the field invariants of a goal.
// CurrentValue above TargetValue is valid and means the goal is met.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidGoal)
	}
	if !(g.TargetValue > 0) || math.IsInf(g.TargetValue, 0) {
		return fmt.Errorf("%w: target value must be positive, got %v", ErrInvalidGoal, g.TargetValue)
	}
	if !(g.CurrentValue >= 0) || math.IsInf(g.CurrentValue, 0) {
		return fmt.Errorf("%w: current value must be non-negative, got %v", ErrInvalidGoal, g.CurrentValue)
	}
	if g.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", ErrInvalidGoal)
	}
	if !g.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidGoal, g.Category)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD deadline as midnight in loc, or UTC when loc
// is nil.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return d, nil
}

// GoalInput holds the caller-supplied fields of a new goal.
type GoalInput struct {
	Name         string
	TargetValue  float64
	CurrentValue float64
	Deadline     time.Time
	Category     Category
}

// GoalPatch holds optional field changes for an existing goal.
// Nil fields are left untouched.
type GoalPatch struct {
	Name         *string
	TargetValue  *float64
	CurrentValue *float64
	Deadline     *time.Time
	Category     *Category
}

// Empty reports whether the patch changes nothing.
func (p GoalPatch) Empty() bool {
	return p.Name == nil && p.TargetValue == nil && p.CurrentValue == nil &&
		p.Deadline == nil && p.Category == nil
}

// Apply returns a copy of g with the patch applied.
func (p GoalPatch) Apply(g Goal) Goal {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.TargetValue != nil {
		g.TargetValue = *p.TargetValue
	}
	if p.CurrentValue != nil {
		g.CurrentValue = *p.CurrentValue
	}
	if p.Deadline != nil {
		g.Deadline = *p.Deadline
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	return g
}
