// Package forecast computes compound-growth projections and scenario
// comparisons. Every function is pure and safe for concurrent use.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/theirongolddev/wealthpath/internal/model"
)

// ErrInvalidArgument is returned for inputs outside a function's domain.
// An unreachable target is not an error; see model.Horizon.
var ErrInvalidArgument = errors.New("invalid argument")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MaxSeriesMonths bounds the span of a projection series, periods times the
// period unit.
const MaxSeriesMonths = 1200

// MonthsToTarget solves current*(1+r)^m = target for m, with r the monthly
// rate as a fraction. A value already at or above target needs 0 months; a
// rate <= 0 never gets there.
func MonthsToTarget(current, target, monthlyRatePercent float64) (model.Horizon, error) {
	if !finite(current) || current <= 0 {
		return model.Horizon{}, invalid("current value must be positive, got %v", current)
	}
	if !finite(target) || target <= 0 {
		return model.Horizon{}, invalid("target value must be positive, got %v", target)
	}
	if !finite(monthlyRatePercent) {
		return model.Horizon{}, invalid("monthly rate must be finite, got %v", monthlyRatePercent)
	}

	if current >= target {
		return model.Horizon{Months: 0}, nil
	}
	if monthlyRatePercent <= 0 {
		return model.Unreachable, nil
	}

	r := monthlyRatePercent / 100
	return model.Horizon{Months: math.Log(target/current) / math.Log1p(r)}, nil
}

// ProjectSeries returns periods+1 points where point i is
// current*(1+r)^(i*periodUnitMonths), each clamped to limit. The series may
// span at most MaxSeriesMonths.
func ProjectSeries(current, monthlyRatePercent float64, periods, periodUnitMonths int, limit float64) ([]model.ProjectionPoint, error) {
	if !finite(current) || current <= 0 {
		return nil, invalid("current value must be positive, got %v", current)
	}
	if !finite(monthlyRatePercent) || monthlyRatePercent <= -100 {
		return nil, invalid("monthly rate must be above -100%%, got %v", monthlyRatePercent)
	}
	if periods < 0 {
		return nil, invalid("periods must be non-negative, got %d", periods)
	}
	if periodUnitMonths < 1 {
		return nil, invalid("period unit must be at least one month, got %d", periodUnitMonths)
	}
	if periodUnitMonths > MaxSeriesMonths || periods > MaxSeriesMonths/periodUnitMonths {
		return nil, invalid("series spans more than %d months (%d periods of %d months)", MaxSeriesMonths, periods, periodUnitMonths)
	}
	if !finite(limit) || limit <= 0 {
		return nil, invalid("cap must be positive, got %v", limit)
	}

	growth := 1 + monthlyRatePercent/100
	points := make([]model.ProjectionPoint, periods+1)
	for i := range points {
		v := current * math.Pow(growth, float64(i*periodUnitMonths))
		points[i] = model.ProjectionPoint{
			Period: i,
			Label:  periodLabel(i, periodUnitMonths),
			Value:  min(v, limit),
		}
	}
	return points, nil
}

func periodLabel(i, unitMonths int) string {
	if unitMonths%12 == 0 {
		return "Y" + strconv.Itoa(i*unitMonths/12)
	}
	return "M" + strconv.Itoa(i*unitMonths)
}

// LabelYears relabels a yearly series with calendar years starting at
// startYear. Points are modified in place and returned for chaining.
func LabelYears(points []model.ProjectionPoint, startYear, periodUnitMonths int) []model.ProjectionPoint {
	for i := range points {
		months := points[i].Period * periodUnitMonths
		if months%12 == 0 {
			points[i].Label = strconv.Itoa(startYear + months/12)
		} else {
			points[i].Label = fmt.Sprintf("%d+%dm", startYear+months/12, months%12)
		}
	}
	return points
}
