package cmd

import (
	"fmt"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/forecast"

	"github.com/spf13/cobra"
)

var (
	flagProjectRate    float64
	flagProjectPeriods int
	flagProjectUnit    int
	flagProjectFrom    float64
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Compound growth projection from current net worth",
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().Float64Var(&flagProjectRate, "rate", 0, "Monthly growth rate in percent (default: stored rate)")
	projectCmd.Flags().IntVar(&flagProjectPeriods, "periods", 0, "Number of periods (default: config)")
	projectCmd.Flags().IntVar(&flagProjectUnit, "unit", 0, "Months per period (default: config)")
	projectCmd.Flags().Float64Var(&flagProjectFrom, "from", 0, "Starting value (default: stored net worth)")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	m, err := s.store.MetricsOr(ctx, s.cfg.DefaultMetrics())
	if err != nil {
		return err
	}

	rate := m.MonthlyGrowth
	if cmd.Flags().Changed("rate") {
		rate = flagProjectRate
	}
	current := m.NetWorth
	if cmd.Flags().Changed("from") {
		current = flagProjectFrom
	}

	set := s.settings()
	if flagProjectPeriods > 0 {
		set.Periods = flagProjectPeriods
	}
	if flagProjectUnit > 0 {
		set.PeriodUnitMonths = flagProjectUnit
	}
	spec := set.Series(m.TargetValue)

	points, err := forecast.ProjectSeries(current, rate, spec.Periods, spec.PeriodUnitMonths, spec.Cap)
	if err != nil {
		return err
	}
	points = forecast.LabelYears(points, set.StartYear, spec.PeriodUnitMonths)
	horizon, err := forecast.MonthsToTarget(current, m.TargetValue, rate)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTION  %s", cli.FormatRate(rate))))
	fmt.Println()

	rows := make([][]string, 0, len(points))
	values := make([]float64, 0, len(points))
	for _, p := range points {
		marker := ""
		if p.Value >= m.TargetValue {
			marker = "✓"
		}
		rows = append(rows, []string{p.Label, cli.FormatDollars(p.Value), cli.FormatMoney(p.Value), marker})
		values = append(values, p.Value)
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Period", "Value", "Short", "Target"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  Trend:          %s\n", cli.RenderSparkline(values))
	fmt.Printf("  Target:         %s\n", cli.RenderMoney(m.TargetValue))
	fmt.Printf("  Time to target: %s\n", cli.FormatHorizon(horizon))
	fmt.Printf("  Projected date: %s\n", cli.FormatETA(horizon, s.now))
	if spec.Cap > 0 {
		fmt.Printf("  Values capped at %s\n", cli.FormatMoney(spec.Cap))
	}
	return nil
}
