package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagMetricsNetWorth float64
	flagMetricsRate     float64
	flagMetricsTarget   float64
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show the stored wealth metrics",
	RunE:  runMetricsShow,
}

var metricsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record net worth, monthly growth or target",
	RunE:  runMetricsSet,
}

func init() {
	metricsSetCmd.Flags().Float64Var(&flagMetricsNetWorth, "net-worth", 0, "Current net worth")
	metricsSetCmd.Flags().Float64Var(&flagMetricsRate, "rate", 0, "Monthly growth rate in percent")
	metricsSetCmd.Flags().Float64Var(&flagMetricsTarget, "target", 0, "Target value")

	metricsCmd.AddCommand(metricsSetCmd)
	rootCmd.AddCommand(metricsCmd)
}

func runMetricsShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	m, ok, err := s.store.Metrics(ctx)
	if err != nil {
		return err
	}
	source := "stored"
	if !ok {
		m = s.cfg.DefaultMetrics()
		source = "config defaults"
	}
	printMetrics(m, source)
	return nil
}

func runMetricsSet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	var patch model.MetricsPatch
	if flags.Changed("net-worth") {
		patch.NetWorth = &flagMetricsNetWorth
	}
	if flags.Changed("rate") {
		patch.MonthlyGrowth = &flagMetricsRate
	}
	if flags.Changed("target") {
		patch.TargetValue = &flagMetricsTarget
	}
	if patch.NetWorth == nil && patch.MonthlyGrowth == nil && patch.TargetValue == nil {
		return errors.New("nothing to set: pass at least one of --net-worth, --rate, --target")
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	current, err := s.store.MetricsOr(ctx, s.cfg.DefaultMetrics())
	if err != nil {
		return err
	}
	saved, err := s.store.SetMetrics(ctx, patch.Apply(current))
	if err != nil {
		return err
	}
	printMetrics(saved, "saved")
	return nil
}

func printMetrics(m model.Metrics, source string) {
	pairs := [][2]string{
		{"Net Worth", cli.FormatDollars(m.NetWorth)},
		{"Monthly Growth", cli.FormatRate(m.MonthlyGrowth)},
		{"Target", cli.FormatDollars(m.TargetValue)},
		{"Journey", cli.FormatPercent(m.JourneyPercent())},
	}
	if !m.UpdatedAt.IsZero() {
		pairs = append(pairs, [2]string{"Updated", m.UpdatedAt.Local().Format("2006-01-02 15:04")})
	}
	fmt.Println()
	fmt.Printf("  Metrics (%s)\n", source)
	fmt.Print(cli.RenderKV(pairs))
}
