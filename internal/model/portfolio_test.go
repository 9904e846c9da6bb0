package model

import (
	"errors"
	"math"
	"testing"
)

func TestProjectValidate(t *testing.T) {
	valid := Project{Name: "Apex Ventures", Value: 42.8e6, Invested: 28.5e6, Change: 18.2, Status: ProjectActive}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Project)
	}{
		{"blank name", func(p *Project) { p.Name = "  " }},
		{"negative value", func(p *Project) { p.Value = -1 }},
		{"NaN value", func(p *Project) { p.Value = math.NaN() }},
		{"infinite invested", func(p *Project) { p.Invested = math.Inf(1) }},
		{"NaN change", func(p *Project) { p.Change = math.NaN() }},
		{"unknown status", func(p *Project) { p.Status = "paused" }},
	}
	for _, tt := range tests {
		p := valid
		tt.mutate(&p)
		if err := p.Validate(); !errors.Is(err, ErrInvalidProject) {
			t.Fatalf("%s: Validate = %v, want ErrInvalidProject", tt.name, err)
		}
	}

	// A losing project is still valid.
	valid.Change = -1.2
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate(negative change) = %v", err)
	}
}

func TestProjectTrendAndStatus(t *testing.T) {
	for change, want := range map[float64]Trend{18.2: TrendUp, -1.2: TrendDown, 0: TrendNeutral} {
		if got := (Project{Change: change}).Trend(); got != want {
			t.Fatalf("Trend(%v) = %s, want %s", change, got, want)
		}
	}

	st, err := ParseProjectStatus(" Monitoring ")
	if err != nil || st != ProjectMonitoring {
		t.Fatalf("ParseProjectStatus = %q, %v", st, err)
	}
	if _, err := ParseProjectStatus("paused"); !errors.Is(err, ErrInvalidProject) {
		t.Fatalf("ParseProjectStatus(paused) err = %v, want ErrInvalidProject", err)
	}
	if ProjectCompleted.Open() || !ProjectMonitoring.Open() {
		t.Fatal("only completed projects should be closed")
	}
}

func TestProjectPatchApply(t *testing.T) {
	p := Project{Name: "Neural Labs", Value: 8.2e6, Invested: 4.5e6, Status: ProjectGrowth}
	if !(ProjectPatch{}).Empty() {
		t.Fatal("zero patch not empty")
	}
	value := 9e6
	st := ProjectCompleted
	got := ProjectPatch{Value: &value, Status: &st}.Apply(p)
	if got.Value != 9e6 || got.Status != ProjectCompleted || got.Invested != 4.5e6 || got.Name != "Neural Labs" {
		t.Fatalf("Apply = %+v", got)
	}
	if p.Value != 8.2e6 {
		t.Fatal("Apply mutated its input")
	}
}

func TestMilestoneValidateAndPatch(t *testing.T) {
	m := Milestone{Year: 2018, Title: "First Million", NetWorth: 1.2e6}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}
	for _, bad := range []Milestone{
		{Year: 2018, Title: ""},
		{Year: 1899, Title: "x"},
		{Year: 10000, Title: "x"},
		{Year: 2018, Title: "x", NetWorth: -1},
		{Year: 2018, Title: "x", NetWorth: math.Inf(1)},
	} {
		if err := bad.Validate(); !errors.Is(err, ErrInvalidMilestone) {
			t.Fatalf("Validate(%+v) = %v, want ErrInvalidMilestone", bad, err)
		}
	}

	year, hi := 2019, true
	got := MilestonePatch{Year: &year, Highlight: &hi}.Apply(m)
	if got.Year != 2019 || !got.Highlight || got.Title != "First Million" {
		t.Fatalf("Apply = %+v", got)
	}
	if !(MilestonePatch{}).Empty() {
		t.Fatal("zero patch not empty")
	}
}
