// Package portfolio derives holdings, returns, the investment ledger and the
// milestone journey from stored projects and milestones.
package portfolio

import (
	"sort"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"

	"github.com/shopspring/decimal"
)

// Holding is a project together with its derived return figures.
type Holding struct {
	Project model.Project `json:"project"`
	Profit  float64       `json:"profit"`
	// ROI is profit over invested capital in percent; 0 when nothing was invested.
	ROI float64 `json:"roi"`
	// Allocation is the project's share of total portfolio value in percent.
	Allocation float64     `json:"allocation"`
	Trend      model.Trend `json:"trend"`
}

// Summary aggregates the whole portfolio.
type Summary struct {
	TotalValue    float64 `json:"total_value"`
	TotalInvested float64 `json:"total_invested"`
	TotalProfit   float64 `json:"total_profit"`
	// ROI is total profit over total invested capital in percent.
	ROI float64 `json:"roi"`
	// AverageChange is the mean of the projects' latest change percentages.
	AverageChange  float64   `json:"average_change"`
	Projects       int       `json:"projects"`
	ActiveProjects int       `json:"active_projects"`
	Holdings       []Holding `json:"holdings"`
}

var hundred = decimal.NewFromInt(100)

// Summarize computes per-project and portfolio totals. Money sums are exact
// to the cent; holdings keep input order.
func Summarize(projects []model.Project) Summary {
	var totalValue, totalInvested, totalChange decimal.Decimal
	sum := Summary{
		Projects: len(projects),
		Holdings: make([]Holding, 0, len(projects)),
	}
	for _, p := range projects {
		totalValue = totalValue.Add(money(p.Value))
		totalInvested = totalInvested.Add(money(p.Invested))
		totalChange = totalChange.Add(decimal.NewFromFloat(p.Change))
		if p.Status.Open() {
			sum.ActiveProjects++
		}
	}

	for _, p := range projects {
		value, invested := money(p.Value), money(p.Invested)
		profit := value.Sub(invested)
		h := Holding{
			Project:    p,
			Profit:     profit.InexactFloat64(),
			ROI:        percentOf(profit, invested),
			Allocation: percentOf(value, totalValue),
			Trend:      p.Trend(),
		}
		sum.Holdings = append(sum.Holdings, h)
	}

	totalProfit := totalValue.Sub(totalInvested)
	sum.TotalValue = totalValue.InexactFloat64()
	sum.TotalInvested = totalInvested.InexactFloat64()
	sum.TotalProfit = totalProfit.InexactFloat64()
	sum.ROI = percentOf(totalProfit, totalInvested)
	if len(projects) > 0 {
		sum.AverageChange = totalChange.Div(decimal.NewFromInt(int64(len(projects)))).InexactFloat64()
	}
	return sum
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Mul(hundred).Div(whole).InexactFloat64()
}

// Transaction is one entry in the investment ledger.
type Transaction struct {
	Date      time.Time `json:"date"`
	ProjectID string    `json:"project_id"`
	Project   string    `json:"project"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
}

// Transaction types and statuses.
const (
	TxInvestment = "investment"
	TxExit       = "exit"

	TxCompleted = "completed"
)

// Transactions derives the ledger: one investment per funded project dated
// at its creation, and one exit at current value for completed projects
// dated at their last update. Entries are ordered by date, then project.
func Transactions(projects []model.Project) []Transaction {
	var out []Transaction
	for _, p := range projects {
		if p.Invested > 0 {
			out = append(out, Transaction{
				Date:      p.CreatedAt,
				ProjectID: p.ID,
				Project:   p.Name,
				Type:      TxInvestment,
				Amount:    money(p.Invested).InexactFloat64(),
				Status:    TxCompleted,
			})
		}
		if p.Status == model.ProjectCompleted && p.Value > 0 {
			out = append(out, Transaction{
				Date:      p.UpdatedAt,
				ProjectID: p.ID,
				Project:   p.Name,
				Type:      TxExit,
				Amount:    money(p.Value).InexactFloat64(),
				Status:    TxCompleted,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Project < out[j].Project
	})
	return out
}

// FilterByStatus returns the holdings whose project has the given status.
func FilterByStatus(holdings []Holding, st model.ProjectStatus) []Holding {
	var out []Holding
	for _, h := range holdings {
		if h.Project.Status == st {
			out = append(out, h)
		}
	}
	return out
}
