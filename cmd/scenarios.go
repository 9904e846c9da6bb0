package cmd

import (
	"fmt"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagScenarioRate float64

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Compare conservative, moderate and aggressive growth",
	RunE:  runScenarios,
}

func init() {
	scenariosCmd.Flags().Float64Var(&flagScenarioRate, "rate", 0, "Base monthly growth rate in percent (default: stored rate)")
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, _ []string) error {
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
		rate = flagScenarioRate
	}

	scenarios, err := pipeline.ProjectScenarios(m.NetWorth, m.TargetValue, rate, s.settings())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SCENARIOS  base %s", cli.FormatRate(rate))))
	fmt.Println()

	rows := make([][]string, 0, len(scenarios))
	for _, sc := range scenarios {
		rows = append(rows, []string{
			cli.Title(sc.Name),
			fmt.Sprintf("%.2fx", sc.Factor),
			cli.FormatRate(sc.MonthlyRate),
			cli.FormatHorizon(sc.Horizon),
			cli.FormatETA(sc.Horizon, s.now),
			cli.FormatMoney(lastValue(sc)),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Scenario", "Factor", "Rate", "Time to Target", "Date", "Final"},
		Rows:    rows,
	}))

	if len(scenarios) == 0 || len(scenarios[0].Projection) == 0 {
		return nil
	}
	fmt.Println()
	headers := []string{"Period"}
	for _, sc := range scenarios {
		headers = append(headers, cli.Title(sc.Name))
	}
	series := make([][]string, len(scenarios[0].Projection))
	for i, p := range scenarios[0].Projection {
		row := []string{p.Label}
		for _, sc := range scenarios {
			row = append(row, cli.FormatMoney(sc.Projection[i].Value))
		}
		series[i] = row
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Projection",
		Headers: headers,
		Rows:    series,
	}))
	return nil
}

func lastValue(sc model.Scenario) float64 {
	if len(sc.Projection) == 0 {
		return 0
	}
	return sc.Projection[len(sc.Projection)-1].Value
}
