package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/pipeline"
	"github.com/theirongolddev/wealthpath/internal/tracker"

	"github.com/spf13/cobra"
)

var (
	flagGoalStatus   string
	flagGoalCategory string

	flagGoalName     string
	flagGoalTarget   float64
	flagGoalCurrent  float64
	flagGoalDeadline string
	flagGoalAddCat   string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List and manage goals",
	RunE:  runGoalsList,
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with progress and status",
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsAdd,
}

var goalsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsUpdate,
}

var goalsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalsRm,
}

func init() {
	for _, c := range []*cobra.Command{goalsCmd, goalsListCmd} {
		c.Flags().StringVar(&flagGoalStatus, "status", "", "Filter by status (completed, behind, at_risk, on_track)")
		c.Flags().StringVar(&flagGoalCategory, "category", "", "Filter by category")
	}

	goalsAddCmd.Flags().Float64Var(&flagGoalTarget, "target", 0, "Target value")
	goalsAddCmd.Flags().Float64Var(&flagGoalCurrent, "current", 0, "Current value")
	goalsAddCmd.Flags().StringVar(&flagGoalDeadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	goalsAddCmd.Flags().StringVar(&flagGoalAddCat, "category", string(model.CategoryFinancial), "Category (financial, business, personal, milestone)")
	_ = goalsAddCmd.MarkFlagRequired("target")
	_ = goalsAddCmd.MarkFlagRequired("deadline")

	goalsUpdateCmd.Flags().StringVar(&flagGoalName, "name", "", "New name")
	goalsUpdateCmd.Flags().Float64Var(&flagGoalTarget, "target", 0, "New target value")
	goalsUpdateCmd.Flags().Float64Var(&flagGoalCurrent, "current", 0, "New current value")
	goalsUpdateCmd.Flags().StringVar(&flagGoalDeadline, "deadline", "", "New deadline (YYYY-MM-DD)")
	goalsUpdateCmd.Flags().StringVar(&flagGoalCategory, "category", "", "New category")

	goalsCmd.AddCommand(goalsListCmd, goalsAddCmd, goalsUpdateCmd, goalsRmCmd)
	rootCmd.AddCommand(goalsCmd)
}

func parseStatus(s string) (tracker.Status, error) {
	for _, st := range tracker.Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func runGoalsList(cmd *cobra.Command, _ []string) error {
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

	goals := ov.Goals
	if flagGoalStatus != "" {
		st, err := parseStatus(flagGoalStatus)
		if err != nil {
			return err
		}
		goals = pipeline.FilterByStatus(goals, st)
	}
	if flagGoalCategory != "" {
		c, err := model.ParseCategory(flagGoalCategory)
		if err != nil {
			return err
		}
		goals = pipeline.FilterByCategory(goals, c)
	}

	if len(goals) == 0 {
		fmt.Println("\n  No goals found.")
		fmt.Println("  Add one with `wealthpath goals add <name> --target N --deadline YYYY-MM-DD`.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("GOALS  %d", len(goals))))
	fmt.Println()

	rows := make([][]string, 0, len(goals))
	for _, a := range goals {
		rows = append(rows, []string{
			a.Goal.Name,
			cli.Title(string(a.Goal.Category)),
			cli.FormatMoney(a.Goal.CurrentValue) + " / " + cli.FormatMoney(a.Goal.TargetValue),
			cli.RenderProgressBar(a.Progress, 12),
			a.Goal.Deadline.Format(model.DateLayout),
			cli.FormatDays(a.DaysRemaining),
			cli.RenderStatus(string(a.Status)),
			shortID(a.Goal.ID),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Goal", "Category", "Value", "Progress", "Deadline", "Due", "Status", "ID"},
		Rows:    rows,
	}))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveGoalID accepts a full ID or a unique prefix as shown by `goals list`.
func resolveGoalID(goals []model.Goal, ref string) (string, error) {
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	return resolveID("goal", ids, ref)
}

// resolveID matches ref against ids exactly or by a unique prefix of at least
// four characters. Unmatched refs pass through for the store to reject.
func resolveID(kind string, ids []string, ref string) (string, error) {
	var match string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if len(ref) >= 4 && strings.HasPrefix(id, ref) {
			if match != "" {
				return "", fmt.Errorf("%s id %q is ambiguous", kind, ref)
			}
			match = id
		}
	}
	if match == "" {
		return ref, nil
	}
	return match, nil
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	deadline, err := model.ParseDate(flagGoalDeadline, time.UTC)
	if err != nil {
		return err
	}
	category, err := model.ParseCategory(flagGoalAddCat)
	if err != nil {
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.store.AddGoal(ctx, model.GoalInput{
		Name:         args[0],
		TargetValue:  flagGoalTarget,
		CurrentValue: flagGoalCurrent,
		Deadline:     deadline,
		Category:     category,
	})
	if err != nil {
		return err
	}
	st := tracker.New(s.cfg.Policy).Status(g, s.now)
	fmt.Printf("  Added %q (%s) · %s\n", g.Name, g.ID, cli.RenderStatus(string(st)))
	return nil
}

func runGoalsUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	var patch model.GoalPatch
	if flags.Changed("name") {
		patch.Name = &flagGoalName
	}
	if flags.Changed("target") {
		patch.TargetValue = &flagGoalTarget
	}
	if flags.Changed("current") {
		patch.CurrentValue = &flagGoalCurrent
	}
	if flags.Changed("deadline") {
		d, err := model.ParseDate(flagGoalDeadline, time.UTC)
		if err != nil {
			return err
		}
		patch.Deadline = &d
	}
	if flags.Changed("category") {
		c, err := model.ParseCategory(flagGoalCategory)
		if err != nil {
			return err
		}
		patch.Category = &c
	}
	if patch.Empty() {
		return errors.New("nothing to update: pass at least one of --name, --target, --current, --deadline, --category")
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	goals, err := s.store.Goals(ctx)
	if err != nil {
		return err
	}
	id, err := resolveGoalID(goals, args[0])
	if err != nil {
		return err
	}

	g, err := s.store.UpdateGoal(ctx, id, patch)
	if err != nil {
		return err
	}
	a := tracker.New(s.cfg.Policy).Assess([]model.Goal{g}, s.now)[0]
	fmt.Printf("  Updated %q · %s · %s\n", g.Name, cli.FormatPercent(a.Progress), cli.RenderStatus(string(a.Status)))
	return nil
}

func runGoalsRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	goals, err := s.store.Goals(ctx)
	if err != nil {
		return err
	}
	id, err := resolveGoalID(goals, args[0])
	if err != nil {
		return err
	}
	if err := s.store.DeleteGoal(ctx, id); err != nil {
		return err
	}
	fmt.Printf("  Deleted goal %s\n", id)
	return nil
}
