// Package export writes the wealth overview, portfolio and ledger as JSON
// reports and CSV tables.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/pipeline"
	"github.com/theirongolddev/wealthpath/internal/portfolio"

	"github.com/shopspring/decimal"
)

// Format selects the export encoding.
type Format string

// Supported formats.
const (
	FormatJSON         Format = "json"
	FormatGoalsCSV     Format = "goals-csv"
	FormatProjection   Format = "projection-csv"
	FormatProjectsCSV  Format = "projects-csv"
	FormatTransactions Format = "transactions-csv"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatGoalsCSV, FormatProjection, FormatProjectsCSV, FormatTransactions}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want one of %s)", s, joinFormats())
}

func joinFormats() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Extension returns the file extension for f.
func (f Format) Extension() string {
	if f == FormatJSON {
		return "json"
	}
	return "csv"
}

// FileName is the default output name for an export made at t.
// e.g., wealthpath-report-2025-06-15.json
func FileName(f Format, t time.Time) string {
	kind := "report"
	switch f {
	case FormatGoalsCSV:
		kind = "goals"
	case FormatProjection:
		kind = "projection"
	case FormatProjectsCSV:
		kind = "projects"
	case FormatTransactions:
		kind = "transactions"
	}
	return fmt.Sprintf("wealthpath-%s-%s.%s", kind, t.Format(model.DateLayout), f.Extension())
}

// Report is the JSON export document.
type Report struct {
	ExportedAt   time.Time               `json:"exported_at"`
	Overview     pipeline.Overview       `json:"overview"`
	Transactions []portfolio.Transaction `json:"transactions"`
}

// Write encodes ov in format f.
func Write(w io.Writer, f Format, ov pipeline.Overview, now time.Time) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, ov, now)
	case FormatGoalsCSV:
		return WriteGoalsCSV(w, ov)
	case FormatProjection:
		return WriteProjectionCSV(w, ov)
	case FormatProjectsCSV:
		return WriteProjectsCSV(w, ov)
	case FormatTransactions:
		return WriteTransactionsCSV(w, ov)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteJSON writes an indented JSON report.
func WriteJSON(w io.Writer, ov pipeline.Overview, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	txs := transactions(ov)
	if txs == nil {
		txs = []portfolio.Transaction{}
	}
	if err := enc.Encode(Report{ExportedAt: now.UTC(), Overview: ov, Transactions: txs}); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteGoalsCSV writes one row per goal with its derived progress and status.
func WriteGoalsCSV(w io.Writer, ov pipeline.Overview) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "name", "category", "target_value", "current_value", "progress_pct", "deadline", "days_remaining", "status"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, a := range ov.Goals {
		g := a.Goal
		row := []string{
			g.ID,
			g.Name,
			string(g.Category),
			formatMoney(g.TargetValue),
			formatMoney(g.CurrentValue),
			strconv.FormatFloat(a.Progress, 'f', 1, 64),
			g.Deadline.Format(model.DateLayout),
			strconv.Itoa(a.DaysRemaining),
			string(a.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing goal %s: %w", g.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProjectionCSV writes one row per period with a value column for each
// scenario.
func WriteProjectionCSV(w io.Writer, ov pipeline.Overview) error {
	cw := csv.NewWriter(w)
	header := []string{"period", "label"}
	for _, s := range ov.Scenarios {
		header = append(header, s.Name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	if len(ov.Scenarios) > 0 {
		for i, p := range ov.Scenarios[0].Projection {
			row := []string{strconv.Itoa(p.Period), p.Label}
			for _, s := range ov.Scenarios {
				row = append(row, formatMoney(s.Projection[i].Value))
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing period %d: %w", p.Period, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProjectsCSV writes one row per project with its derived returns.
func WriteProjectsCSV(w io.Writer, ov pipeline.Overview) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "name", "type", "status", "value", "invested", "profit", "roi_pct", "allocation_pct", "change_pct", "trend"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, h := range ov.Portfolio.Holdings {
		p := h.Project
		row := []string{
			p.ID,
			p.Name,
			p.Type,
			string(p.Status),
			formatMoney(p.Value),
			formatMoney(p.Invested),
			formatMoney(h.Profit),
			formatPercent(h.ROI),
			formatPercent(h.Allocation),
			formatPercent(p.Change),
			string(h.Trend),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing project %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTransactionsCSV writes the investment ledger derived from projects.
func WriteTransactionsCSV(w io.Writer, ov pipeline.Overview) error {
	cw := csv.NewWriter(w)
	header := []string{"date", "project_id", "project", "type", "amount", "status"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, tx := range transactions(ov) {
		row := []string{
			tx.Date.UTC().Format(model.DateLayout),
			tx.ProjectID,
			tx.Project,
			tx.Type,
			formatMoney(tx.Amount),
			tx.Status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing transaction for %s: %w", tx.ProjectID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func transactions(ov pipeline.Overview) []portfolio.Transaction {
	projects := make([]model.Project, len(ov.Portfolio.Holdings))
	for i, h := range ov.Portfolio.Holdings {
		projects[i] = h.Project
	}
	return portfolio.Transactions(projects)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatMoney renders an amount in whole cents.
func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
