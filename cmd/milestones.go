package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/portfolio"

	"github.com/spf13/cobra"
)

var (
	flagMilestoneYear      int
	flagMilestoneTitle     string
	flagMilestoneDesc      string
	flagMilestoneNetWorth  float64
	flagMilestoneHighlight bool
)

var milestonesCmd = &cobra.Command{
	Use:     "milestones",
	Aliases: []string{"journey"},
	Short:   "Show and manage the milestone journey",
	RunE:    runMilestonesList,
}

var milestonesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List milestones with growth between them",
	RunE:  runMilestonesList,
}

var milestonesAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a milestone",
	Args:  cobra.ExactArgs(1),
	RunE:  runMilestonesAdd,
}

var milestonesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a milestone",
	Args:  cobra.ExactArgs(1),
	RunE:  runMilestonesUpdate,
}

var milestonesRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a milestone",
	Args:    cobra.ExactArgs(1),
	RunE:    runMilestonesRm,
}

func init() {
	for _, c := range []*cobra.Command{milestonesAddCmd, milestonesUpdateCmd} {
		c.Flags().IntVar(&flagMilestoneYear, "year", 0, "Year reached")
		c.Flags().StringVar(&flagMilestoneDesc, "description", "", "Short description")
		c.Flags().Float64Var(&flagMilestoneNetWorth, "net-worth", 0, "Net worth at the milestone")
		c.Flags().BoolVar(&flagMilestoneHighlight, "highlight", false, "Mark as a highlight")
	}
	_ = milestonesAddCmd.MarkFlagRequired("year")
	_ = milestonesAddCmd.MarkFlagRequired("net-worth")
	milestonesUpdateCmd.Flags().StringVar(&flagMilestoneTitle, "title", "", "New title")

	milestonesCmd.AddCommand(milestonesListCmd, milestonesAddCmd, milestonesUpdateCmd, milestonesRmCmd)
	rootCmd.AddCommand(milestonesCmd)
}

func runMilestonesList(cmd *cobra.Command, _ []string) error {
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
	j := ov.Journey
	if len(j.Steps) == 0 {
		fmt.Println("\n  No milestones yet.")
		fmt.Println("  Add one with `wealthpath milestones add <title> --year YYYY --net-worth N`.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("JOURNEY  SINCE %d", j.StartYear)))
	fmt.Println()
	fmt.Print(cli.RenderTable(journeyTable(j)))
	fmt.Println()

	pairs := [][2]string{
		{"Net Worth", cli.FormatDollars(j.NetWorth)},
		{"Target", cli.FormatDollars(j.Target)},
		{"Remaining", cli.FormatDollars(j.Remaining)},
	}
	if j.CAGR != nil {
		pairs = append(pairs, [2]string{"Annual Growth", cli.FormatChange(*j.CAGR)})
	}
	fmt.Print(cli.RenderKV(pairs))
	fmt.Println()
	fmt.Println("  " + cli.RenderProgressBar(j.Percent, 40))
	return nil
}

func journeyTable(j portfolio.Journey) cli.Table {
	rows := make([][]string, 0, len(j.Steps))
	for _, st := range j.Steps {
		ms := st.Milestone
		title := ms.Title
		if ms.Highlight {
			title += " *"
		}
		multiple, growth := "", ""
		if st.Multiple != nil {
			multiple = cli.FormatMultiple(*st.Multiple)
		}
		if st.CAGR != nil {
			growth = cli.FormatChange(*st.CAGR)
		}
		rows = append(rows, []string{
			strconv.Itoa(ms.Year),
			title,
			cli.FormatMoney(ms.NetWorth),
			multiple,
			growth,
			shortID(ms.ID),
		})
	}
	return cli.Table{
		Headers: []string{"Year", "Milestone", "Net Worth", "Multiple", "Annual", "ID"},
		Rows:    rows,
	}
}

func resolveMilestoneID(milestones []model.Milestone, ref string) (string, error) {
	ids := make([]string, len(milestones))
	for i, m := range milestones {
		ids[i] = m.ID
	}
	return resolveID("milestone", ids, ref)
}

func runMilestonesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	m, err := s.store.AddMilestone(ctx, model.MilestoneInput{
		Year:        flagMilestoneYear,
		Title:       args[0],
		Description: flagMilestoneDesc,
		NetWorth:    flagMilestoneNetWorth,
		Highlight:   flagMilestoneHighlight,
	})
	if err != nil {
		return err
	}
	fmt.Printf("  Added %d %q (%s) · %s\n", m.Year, m.Title, m.ID, cli.FormatMoney(m.NetWorth))
	return nil
}

func runMilestonesUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	var patch model.MilestonePatch
	if flags.Changed("year") {
		patch.Year = &flagMilestoneYear
	}
	if flags.Changed("title") {
		patch.Title = &flagMilestoneTitle
	}
	if flags.Changed("description") {
		patch.Description = &flagMilestoneDesc
	}
	if flags.Changed("net-worth") {
		patch.NetWorth = &flagMilestoneNetWorth
	}
	if flags.Changed("highlight") {
		patch.Highlight = &flagMilestoneHighlight
	}
	if patch.Empty() {
		return errors.New("nothing to update: pass at least one of --year, --title, --description, --net-worth, --highlight")
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	milestones, err := s.store.Milestones(ctx)
	if err != nil {
		return err
	}
	id, err := resolveMilestoneID(milestones, args[0])
	if err != nil {
		return err
	}
	m, err := s.store.UpdateMilestone(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("  Updated %d %q · %s\n", m.Year, m.Title, cli.FormatMoney(m.NetWorth))
	return nil
}

func runMilestonesRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	milestones, err := s.store.Milestones(ctx)
	if err != nil {
		return err
	}
	id, err := resolveMilestoneID(milestones, args[0])
	if err != nil {
		return err
	}
	if err := s.store.DeleteMilestone(ctx, id); err != nil {
		return err
	}
	fmt.Printf("  Deleted milestone %s\n", id)
	return nil
}
