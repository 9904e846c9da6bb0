package portfolio

import (
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"
)

var refNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func sampleProjects() []model.Project {
	return []model.Project{
		{ID: "1", Name: "Apex Ventures", Value: 42_800_000, Invested: 28_500_000, Change: 18.2, Status: model.ProjectActive, CreatedAt: refNow.AddDate(0, -6, 0)},
		{ID: "2", Name: "Neural Labs", Value: 8_200_000, Invested: 4_500_000, Change: 24.5, Status: model.ProjectGrowth, CreatedAt: refNow.AddDate(0, -3, 0)},
		{ID: "3", Name: "Titan Real Estate", Value: 156_000_000, Invested: 120_000_000, Change: 2.1, Status: model.ProjectStable, CreatedAt: refNow.AddDate(-1, 0, 0)},
		{ID: "4", Name: "Quantum Trading", Value: 12_400_000, Invested: 6_200_000, Change: 34.2, Status: model.ProjectActive, CreatedAt: refNow.AddDate(0, -3, 0)},
		{ID: "5", Name: "Green Energy Fund", Value: 5_800_000, Invested: 6_100_000, Change: -1.2, Status: model.ProjectMonitoring, CreatedAt: refNow.AddDate(0, -1, 0)},
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestSummarize(t *testing.T) {
	sum := Summarize(sampleProjects())

	if sum.TotalValue != 225_200_000 {
		t.Fatalf("TotalValue = %v, want 225200000", sum.TotalValue)
	}
	if sum.TotalInvested != 165_300_000 {
		t.Fatalf("TotalInvested = %v, want 165300000", sum.TotalInvested)
	}
	if sum.TotalProfit != 59_900_000 {
		t.Fatalf("TotalProfit = %v, want 59900000", sum.TotalProfit)
	}
	if want := 59_900_000.0 / 165_300_000 * 100; !approx(sum.ROI, want) {
		t.Fatalf("ROI = %v, want %v", sum.ROI, want)
	}
	if !approx(sum.AverageChange, 15.56) {
		t.Fatalf("AverageChange = %v, want 15.56", sum.AverageChange)
	}
	if sum.Projects != 5 || sum.ActiveProjects != 5 {
		t.Fatalf("Projects/ActiveProjects = %d/%d, want 5/5", sum.Projects, sum.ActiveProjects)
	}

	apex := sum.Holdings[0]
	if apex.Profit != 14_300_000 || !approx(apex.ROI, 14.3/28.5*100) {
		t.Fatalf("Apex profit/ROI = %v/%v", apex.Profit, apex.ROI)
	}
	if apex.Trend != model.TrendUp {
		t.Fatalf("Apex trend = %s, want up", apex.Trend)
	}
	titan := sum.Holdings[2]
	if !approx(titan.Allocation, 156.0/225.2*100) {
		t.Fatalf("Titan allocation = %v, want %v", titan.Allocation, 156.0/225.2*100)
	}
	green := sum.Holdings[4]
	if green.Profit != -300_000 || green.ROI >= 0 || green.Trend != model.TrendDown {
		t.Fatalf("Green = %+v, want a loss trending down", green)
	}

	var alloc float64
	for _, h := range sum.Holdings {
		alloc += h.Allocation
	}
	if !approx(alloc, 100) {
		t.Fatalf("allocations sum to %v, want 100", alloc)
	}
}

func TestSummarize_CompletedAndUnfunded(t *testing.T) {
	projects := []model.Project{
		{ID: "a", Name: "Sold", Value: 10, Invested: 5, Status: model.ProjectCompleted},
		{ID: "b", Name: "Sweat equity", Value: 10, Invested: 0, Status: model.ProjectActive},
	}
	sum := Summarize(projects)
	if sum.ActiveProjects != 1 {
		t.Fatalf("ActiveProjects = %d, want 1", sum.ActiveProjects)
	}
	if sum.Holdings[1].ROI != 0 {
		t.Fatalf("unfunded ROI = %v, want 0", sum.Holdings[1].ROI)
	}
	if sum.Holdings[1].Trend != model.TrendNeutral {
		t.Fatalf("zero change trend = %s, want neutral", sum.Holdings[1].Trend)
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)
	if sum.TotalValue != 0 || sum.ROI != 0 || sum.AverageChange != 0 || len(sum.Holdings) != 0 {
		t.Fatalf("Summarize(nil) = %+v, want zero summary", sum)
	}
}

func TestSummarize_CentExactTotals(t *testing.T) {
	projects := []model.Project{
		{Name: "a", Value: 0.1, Invested: 0.1},
		{Name: "b", Value: 0.2, Invested: 0.1},
	}
	sum := Summarize(projects)
	if sum.TotalValue != 0.3 {
		t.Fatalf("TotalValue = %v, want 0.3", sum.TotalValue)
	}
	if sum.TotalProfit != 0.1 {
		t.Fatalf("TotalProfit = %v, want 0.1", sum.TotalProfit)
	}
}

func TestTransactions(t *testing.T) {
	projects := sampleProjects()
	projects[1].Status = model.ProjectCompleted
	projects[1].UpdatedAt = refNow
	projects = append(projects, model.Project{ID: "6", Name: "Unfunded", Status: model.ProjectActive, CreatedAt: refNow})

	txs := Transactions(projects)
	if len(txs) != 6 {
		t.Fatalf("len(txs) = %d, want 6", len(txs))
	}
	if txs[0].Project != "Titan Real Estate" || txs[0].Amount != 120_000_000 || txs[0].Type != TxInvestment {
		t.Fatalf("first tx = %+v, want Titan investment", txs[0])
	}
	// Same date: ordered by project name.
	if txs[2].Project != "Neural Labs" || txs[3].Project != "Quantum Trading" {
		t.Fatalf("tie order = %s, %s", txs[2].Project, txs[3].Project)
	}
	last := txs[len(txs)-1]
	if last.Type != TxExit || last.ProjectID != "2" || last.Amount != 8_200_000 {
		t.Fatalf("last tx = %+v, want Neural Labs exit", last)
	}
	for i := 1; i < len(txs); i++ {
		if txs[i].Date.Before(txs[i-1].Date) {
			t.Fatalf("tx %d out of date order", i)
		}
	}
}

func TestFilterByStatus(t *testing.T) {
	sum := Summarize(sampleProjects())
	active := FilterByStatus(sum.Holdings, model.ProjectActive)
	if len(active) != 2 || active[0].Project.ID != "1" || active[1].Project.ID != "4" {
		t.Fatalf("FilterByStatus(active) = %+v", active)
	}
	if got := FilterByStatus(sum.Holdings, model.ProjectCompleted); len(got) != 0 {
		t.Fatalf("FilterByStatus(completed) len = %d, want 0", len(got))
	}
}
