package forecast

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestMonthsToTarget_ReferenceExample(t *testing.T) {
	h, err := MonthsToTarget(225_000_000, 1_000_000_000, 12.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := math.Log(1_000_000_000.0/225_000_000.0) / math.Log(1.124)
	if math.Abs(h.Months-want) > 1e-9 {
		t.Fatalf("Months = %.6f, want %.6f", h.Months, want)
	}
	if math.Abs(h.Months-12.76) > 0.01 {
		t.Fatalf("Months = %.4f, want ~12.76", h.Months)
	}
	if h.WholeMonths() != 13 {
		t.Fatalf("WholeMonths = %d, want 13", h.WholeMonths())
	}
	if math.Abs(h.Years()-want/12) > 1e-9 {
		t.Fatalf("Years = %.4f, want %.4f", h.Years(), want/12)
	}
}

func TestMonthsToTarget_ZeroAndNegativeRate(t *testing.T) {
	for _, rate := range []float64{0, -0.5, -50} {
		h, err := MonthsToTarget(100, 200, rate)
		if err != nil {
			t.Fatalf("rate %v: unexpected error: %v", rate, err)
		}
		if !math.IsInf(h.Months, 1) {
			t.Fatalf("rate %v: Months = %v, want +Inf", rate, h.Months)
		}
		if h.Reachable() {
			t.Fatalf("rate %v: Reachable = true, want false", rate)
		}
		if h.WholeMonths() != -1 {
			t.Fatalf("rate %v: WholeMonths = %d, want -1", rate, h.WholeMonths())
		}
		if _, ok := h.Date(time.Now()); ok {
			t.Fatalf("rate %v: Date ok = true, want false", rate)
		}
	}
}

func TestMonthsToTarget_AlreadyThere(t *testing.T) {
	cases := []struct {
		current, target, rate float64
	}{
		{100, 100, 5},
		{150, 100, 5},
		{150, 100, 0},
		{150, 100, -3},
	}
	for _, tc := range cases {
		h, err := MonthsToTarget(tc.current, tc.target, tc.rate)
		if err != nil {
			t.Fatalf("%+v: unexpected error: %v", tc, err)
		}
		if h.Months != 0 {
			t.Fatalf("%+v: Months = %v, want 0", tc, h.Months)
		}
		if h.WholeMonths() != 0 {
			t.Fatalf("%+v: WholeMonths = %d, want 0", tc, h.WholeMonths())
		}
	}
}

func TestMonthsToTarget_Monotonic(t *testing.T) {
	prev := math.Inf(1)
	for rate := 0.5; rate <= 30; rate += 0.5 {
		h, err := MonthsToTarget(1_000, 50_000, rate)
		if err != nil {
			t.Fatalf("rate %v: unexpected error: %v", rate, err)
		}
		if !(h.Months < prev) {
			t.Fatalf("rate %v: Months = %v, not below previous %v", rate, h.Months, prev)
		}
		prev = h.Months
	}
}

func TestMonthsToTarget_InvalidArguments(t *testing.T) {
	cases := []struct {
		name                  string
		current, target, rate float64
	}{
		{"zero current", 0, 100, 5},
		{"negative current", -1, 100, 5},
		{"zero target", 100, 0, 5},
		{"negative target", 100, -10, 5},
		{"nan rate", 100, 200, math.NaN()},
		{"inf current", math.Inf(1), 200, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MonthsToTarget(tc.current, tc.target, tc.rate)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestProjectSeries_RoundTrip(t *testing.T) {
	current := 100.0
	rate := 10.0
	target := current * math.Pow(1.1, 24)

	h, err := MonthsToTarget(current, target, rate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	months := int(math.Round(h.Months))
	if months != 24 {
		t.Fatalf("rounded months = %d, want 24", months)
	}

	// Two yearly periods and 24 monthly periods must both land on target.
	for _, unit := range []int{12, 1} {
		series, err := ProjectSeries(current, rate, months/unit, unit, 2*target)
		if err != nil {
			t.Fatalf("unit %d: unexpected error: %v", unit, err)
		}
		last := series[len(series)-1].Value
		if math.Abs(last-target)/target > 1e-9 {
			t.Fatalf("unit %d: last value = %.6f, want %.6f", unit, last, target)
		}
	}
}

func TestProjectSeries_Shape(t *testing.T) {
	series, err := ProjectSeries(1_000, 2, 10, 12, 1e12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 11 {
		t.Fatalf("len = %d, want 11", len(series))
	}
	if series[0].Value != 1_000 {
		t.Fatalf("period 0 value = %v, want 1000", series[0].Value)
	}
	if series[0].Label != "Y0" || series[10].Label != "Y10" {
		t.Fatalf("labels = %q..%q, want Y0..Y10", series[0].Label, series[10].Label)
	}
	want := 1_000 * math.Pow(1.02, 36)
	if math.Abs(series[3].Value-want) > 1e-6 {
		t.Fatalf("period 3 value = %.6f, want %.6f", series[3].Value, want)
	}

	monthly, err := ProjectSeries(1_000, 2, 3, 1, 1e12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if monthly[2].Label != "M2" {
		t.Fatalf("monthly label = %q, want M2", monthly[2].Label)
	}
}

func TestProjectSeries_ClampsToCap(t *testing.T) {
	limit := 2_000_000_000.0
	series, err := ProjectSeries(225_000_000, 50, 10, 12, limit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range series {
		if p.Value > limit {
			t.Fatalf("period %d value = %v exceeds cap %v", p.Period, p.Value, limit)
		}
	}
	if series[10].Value != limit {
		t.Fatalf("last value = %v, want clamped to %v", series[10].Value, limit)
	}
}

func TestProjectSeries_FlatAndDeclining(t *testing.T) {
	flat, err := ProjectSeries(500, 0, 5, 12, 1_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range flat {
		if p.Value != 500 {
			t.Fatalf("flat period %d = %v, want 500", p.Period, p.Value)
		}
	}

	declining, err := ProjectSeries(500, -5, 5, 12, 1_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(declining); i++ {
		if !(declining[i].Value < declining[i-1].Value) {
			t.Fatalf("period %d = %v not below %v", i, declining[i].Value, declining[i-1].Value)
		}
	}
}

func TestProjectSeries_Deterministic(t *testing.T) {
	a, _ := ProjectSeries(1_234, 3.3, 10, 12, 1e9)
	b, _ := ProjectSeries(1_234, 3.3, 10, 12, 1e9)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestProjectSeries_InvalidArguments(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		rate     float64
		periods  int
		unit     int
		limitCap float64
	}{
		{"zero current", 0, 5, 10, 12, 100},
		{"rate at -100", 10, -100, 10, 12, 100},
		{"negative periods", 10, 5, -1, 12, 100},
		{"zero unit", 10, 5, 10, 0, 100},
		{"zero cap", 10, 5, 10, 12, 0},
		{"infinite cap", 10, 5, 10, 12, math.Inf(1)},
		{"periods overflow", 100, 1, math.MaxInt, 12, 1e6},
		{"unit overflow", 100, 1, 2, math.MaxInt/2 + 1, 1e6},
		{"101 years", 100, 1, 101, 12, 1e6},
		{"1201 months", 100, 1, 1201, 1, 1e6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ProjectSeries(tc.current, tc.rate, tc.periods, tc.unit, tc.limitCap)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestProjectSeries_MaxSpan(t *testing.T) {
	monthly, err := ProjectSeries(100, 1, MaxSeriesMonths, 1, 1e6)
	if err != nil {
		t.Fatalf("1200 monthly periods: unexpected error: %v", err)
	}
	if len(monthly) != MaxSeriesMonths+1 {
		t.Fatalf("len = %d, want %d", len(monthly), MaxSeriesMonths+1)
	}
	if got := monthly[len(monthly)-1].Label; got != "M1200" {
		t.Fatalf("last label = %s, want M1200", got)
	}

	yearly, err := ProjectSeries(100, 1, 100, 12, 1e6)
	if err != nil {
		t.Fatalf("100 yearly periods: unexpected error: %v", err)
	}
	if got := yearly[100].Label; got != "Y100" {
		t.Fatalf("last label = %s, want Y100", got)
	}
}

func TestLabelYears(t *testing.T) {
	series, _ := ProjectSeries(100, 1, 2, 12, 1e6)
	LabelYears(series, 2024, 12)
	if series[0].Label != "2024" || series[2].Label != "2026" {
		t.Fatalf("labels = %q, %q, want 2024, 2026", series[0].Label, series[2].Label)
	}

	half, _ := ProjectSeries(100, 1, 1, 6, 1e6)
	LabelYears(half, 2024, 6)
	if half[1].Label != "2024+6m" {
		t.Fatalf("label = %q, want 2024+6m", half[1].Label)
	}
}
