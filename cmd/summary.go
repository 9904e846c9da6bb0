package cmd

import (
	"fmt"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/tracker"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Net worth, time to target, goal health and portfolio",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	ov, err := s.overview(ctx)
	if err != nil {
		return err
	}
	m := ov.Metrics

	fmt.Println()
	fmt.Println(cli.RenderTitle("WEALTH JOURNEY"))
	fmt.Println()

	rows := [][]string{
		{"Net Worth", cli.FormatDollars(m.NetWorth)},
		{"Target", cli.FormatDollars(m.TargetValue)},
		{"Journey", cli.FormatPercent(ov.JourneyPercent)},
		{cli.Separator},
		{"Monthly Growth", cli.FormatRate(m.MonthlyGrowth)},
		{"Time to Target", cli.FormatHorizon(ov.Horizon)},
		{"Projected Date", cli.FormatETA(ov.Horizon, ov.At)},
		{cli.Separator},
	}
	for _, sc := range ov.Scenarios {
		rows = append(rows, []string{cli.Title(sc.Name), cli.FormatHorizon(sc.Horizon)})
	}
	rows = append(rows, []string{cli.Separator})
	for _, st := range tracker.Statuses {
		rows = append(rows, []string{"Goals " + cli.Title(string(st)), cli.FormatNumber(int64(ov.StatusCounts[st]))})
	}
	if pf := ov.Portfolio; pf.Projects > 0 {
		rows = append(rows,
			[]string{cli.Separator},
			[]string{"Portfolio Value", cli.FormatDollars(pf.TotalValue)},
			[]string{"Portfolio ROI", cli.FormatChange(pf.ROI)},
			[]string{"Active Projects", cli.FormatNumber(int64(pf.ActiveProjects))},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Println("  " + cli.RenderProgressBar(ov.JourneyPercent, 40))

	if m.UpdatedAt.IsZero() {
		progressf("\n  Metrics are config defaults. Record yours with `wealthpath metrics set`.\n")
	}
	return nil
}
