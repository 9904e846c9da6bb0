package model

import (
	"encoding/json"
	"math"
	"time"
)

// ProjectionPoint is one period of a compounding forecast.
type ProjectionPoint struct {
	Period int     `json:"period"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
}

// Horizon is the time needed to reach a target under constant growth.
// Months is +Inf when the target is never reached.
type Horizon struct {
	Months float64
}

// Unreachable is the horizon of growth that never reaches its target.
var Unreachable = Horizon{Months: math.Inf(1)}

// Reachable reports whether the target is reached in finite time.
func (h Horizon) Reachable() bool {
	return !math.IsInf(h.Months, 1) && !math.IsNaN(h.Months)
}

// WholeMonths rounds the horizon up to whole months.
// It returns -1 when the target is unreachable.
func (h Horizon) WholeMonths() int {
	if !h.Reachable() {
		return -1
	}
	return int(math.Ceil(h.Months))
}

// Years converts the fractional month count to years.
func (h Horizon) Years() float64 {
	return h.Months / 12
}

// Date returns the calendar date the target is reached, counting whole
// months from from. ok is false when the target is unreachable.
func (h Horizon) Date(from time.Time) (t time.Time, ok bool) {
	if !h.Reachable() {
		return time.Time{}, false
	}
	return from.AddDate(0, h.WholeMonths(), 0), true
}

type horizonJSON struct {
	Months      *float64 `json:"months"`
	WholeMonths *int     `json:"whole_months"`
	Years       *float64 `json:"years"`
	Reachable   bool     `json:"reachable"`
}

// MarshalJSON encodes an unreachable horizon with null month counts,
// since JSON has no infinity.
func (h Horizon) MarshalJSON() ([]byte, error) {
	out := horizonJSON{Reachable: h.Reachable()}
	if out.Reachable {
		months, whole, years := h.Months, h.WholeMonths(), h.Years()
		out.Months, out.WholeMonths, out.Years = &months, &whole, &years
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (h *Horizon) UnmarshalJSON(data []byte) error {
	var in horizonJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if !in.Reachable || in.Months == nil {
		*h = Unreachable
		return nil
	}
	h.Months = *in.Months
	return nil
}

// Multiplier names a scaling of the base growth rate.
type Multiplier struct {
	Name   string  `json:"name" toml:"name"`
	Factor float64 `json:"factor" toml:"factor"`
}

// Scenario is one named growth-rate variant with its forecast.
type Scenario struct {
	Name        string            `json:"name"`
	Factor      float64           `json:"factor"`
	MonthlyRate float64           `json:"monthly_rate"`
	Horizon     Horizon           `json:"horizon"`
	Projection  []ProjectionPoint `json:"projection"`
}
