package forecast

import (
	"strings"

	"github.com/theirongolddev/wealthpath/internal/model"
)

// Default scenario names.
const (
	Conservative = "conservative"
	Moderate     = "moderate"
	Aggressive   = "aggressive"
)

// DefaultMultipliers returns the conservative/moderate/aggressive set.
func DefaultMultipliers() []model.Multiplier {
	return []model.Multiplier{
		{Name: Conservative, Factor: 0.7},
		{Name: Moderate, Factor: 1.0},
		{Name: Aggressive, Factor: 1.3},
	}
}

// SeriesSpec controls the shape of every projection series.
type SeriesSpec struct {
	Periods          int
	PeriodUnitMonths int
	Cap              float64
}

// DefaultSeriesSpec is ten yearly points capped at twice the target.
func DefaultSeriesSpec(target float64) SeriesSpec {
	return SeriesSpec{
		Periods:          10,
		PeriodUnitMonths: 12,
		Cap:              2 * target,
	}
}

// BuildScenarios computes one scenario per multiplier, in input order.
// Each scenario runs at baseMonthlyRatePercent scaled by its factor.
func BuildScenarios(current, target, baseMonthlyRatePercent float64, multipliers []model.Multiplier, spec SeriesSpec) ([]model.Scenario, error) {
	if !finite(baseMonthlyRatePercent) {
		return nil, invalid("base monthly rate must be finite, got %v", baseMonthlyRatePercent)
	}

	scenarios := make([]model.Scenario, 0, len(multipliers))
	for _, m := range multipliers {
		if strings.TrimSpace(m.Name) == "" {
			return nil, invalid("scenario name is required")
		}
		if !finite(m.Factor) {
			return nil, invalid("scenario %q factor must be finite, got %v", m.Name, m.Factor)
		}

		rate := baseMonthlyRatePercent * m.Factor
		horizon, err := MonthsToTarget(current, target, rate)
		if err != nil {
			return nil, err
		}
		series, err := ProjectSeries(current, rate, spec.Periods, spec.PeriodUnitMonths, spec.Cap)
		if err != nil {
			return nil, err
		}

		scenarios = append(scenarios, model.Scenario{
			Name:        m.Name,
			Factor:      m.Factor,
			MonthlyRate: rate,
			Horizon:     horizon,
			Projection:  series,
		})
	}
	return scenarios, nil
}

// Find returns the scenario with the given name.
func Find(scenarios []model.Scenario, name string) (model.Scenario, bool) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return model.Scenario{}, false
}
