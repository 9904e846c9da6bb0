package portfolio

import (
	"math"
	"sort"

	"github.com/theirongolddev/wealthpath/internal/model"
)

// Step is a milestone with the growth achieved since the previous one.
type Step struct {
	Milestone model.Milestone `json:"milestone"`
	// Multiple is net worth relative to the previous milestone; nil for the
	// first step or when the previous net worth was zero.
	Multiple *float64 `json:"multiple,omitempty"`
	// CAGR is the compound annual growth rate since the previous milestone
	// in percent; nil when it is undefined.
	CAGR *float64 `json:"cagr,omitempty"`
}

// Journey is the milestone timeline leading to the current net worth.
type Journey struct {
	Steps     []Step  `json:"steps"`
	StartYear int     `json:"start_year,omitempty"`
	NetWorth  float64 `json:"net_worth"`
	Target    float64 `json:"target"`
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
	// CAGR is the annual growth from the first milestone to the current net
	// worth as of year; nil when it is undefined.
	CAGR *float64 `json:"cagr,omitempty"`
}

// BuildJourney orders milestones by year and relates each one to the
// previous, then to the current metrics as of year.
func BuildJourney(milestones []model.Milestone, m model.Metrics, year int) Journey {
	sorted := append([]model.Milestone(nil), milestones...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	j := Journey{
		Steps:     make([]Step, 0, len(sorted)),
		NetWorth:  m.NetWorth,
		Target:    m.TargetValue,
		Percent:   m.JourneyPercent(),
		Remaining: math.Max(0, m.TargetValue-m.NetWorth),
	}
	for i, ms := range sorted {
		st := Step{Milestone: ms}
		if i > 0 {
			prev := sorted[i-1]
			st.Multiple = multiple(prev.NetWorth, ms.NetWorth)
			st.CAGR = cagr(prev.NetWorth, ms.NetWorth, ms.Year-prev.Year)
		}
		j.Steps = append(j.Steps, st)
	}
	if len(sorted) > 0 {
		first := sorted[0]
		j.StartYear = first.Year
		j.CAGR = cagr(first.NetWorth, m.NetWorth, year-first.Year)
	}
	return j
}

func multiple(from, to float64) *float64 {
	if from <= 0 {
		return nil
	}
	v := to / from
	return &v
}

// cagr is (to/from)^(1/years) - 1 in percent.
func cagr(from, to float64, years int) *float64 {
	if from <= 0 || to <= 0 || years <= 0 {
		return nil
	}
	v := (math.Pow(to/from, 1/float64(years)) - 1) * 100
	return &v
}
