package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/portfolio"

	"github.com/spf13/cobra"
)

var (
	flagProjectStatus   string
	flagProjectName     string
	flagProjectType     string
	flagProjectDesc     string
	flagProjectValue    float64
	flagProjectInvested float64
	flagProjectChange   float64
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"portfolio"},
	Short:   "List and manage portfolio projects",
	RunE:    runProjectsList,
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with returns and allocation",
	RunE:  runProjectsList,
}

var projectsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsAdd,
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsUpdate,
}

var projectsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectsRm,
}

func init() {
	for _, c := range []*cobra.Command{projectsCmd, projectsListCmd} {
		c.Flags().StringVar(&flagProjectStatus, "status", "", "Filter by status (active, growth, stable, monitoring, completed)")
	}

	for _, c := range []*cobra.Command{projectsAddCmd, projectsUpdateCmd} {
		c.Flags().StringVar(&flagProjectType, "type", "", "Project type, e.g. Venture Capital")
		c.Flags().StringVar(&flagProjectDesc, "description", "", "Short description")
		c.Flags().Float64Var(&flagProjectValue, "value", 0, "Current value")
		c.Flags().Float64Var(&flagProjectInvested, "invested", 0, "Capital invested")
		c.Flags().Float64Var(&flagProjectChange, "change", 0, "Latest change in percent")
		c.Flags().StringVar(&flagProjectStatus, "status", "", "Status (active, growth, stable, monitoring, completed)")
	}
	_ = projectsAddCmd.MarkFlagRequired("value")
	projectsUpdateCmd.Flags().StringVar(&flagProjectName, "name", "", "New name")

	projectsCmd.AddCommand(projectsListCmd, projectsAddCmd, projectsUpdateCmd, projectsRmCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjectsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	projects, err := s.store.Projects(ctx)
	if err != nil {
		return err
	}
	sum := portfolio.Summarize(projects)
	holdings := sum.Holdings
	if flagProjectStatus != "" {
		st, err := model.ParseProjectStatus(flagProjectStatus)
		if err != nil {
			return err
		}
		holdings = portfolio.FilterByStatus(holdings, st)
	}

	if len(holdings) == 0 {
		fmt.Println("\n  No projects found.")
		fmt.Println("  Add one with `wealthpath projects add <name> --value N --invested N`.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PORTFOLIO  %s", cli.FormatMoney(sum.TotalValue))))
	fmt.Println()
	fmt.Print(cli.RenderTable(projectTable(holdings)))
	fmt.Println()
	fmt.Print(cli.RenderKV([][2]string{
		{"Invested", cli.FormatDollars(sum.TotalInvested)},
		{"Profit", cli.FormatDollars(sum.TotalProfit)},
		{"ROI", cli.FormatChange(sum.ROI)},
		{"Active Projects", fmt.Sprintf("%d of %d", sum.ActiveProjects, sum.Projects)},
	}))
	return nil
}

func projectTable(holdings []portfolio.Holding) cli.Table {
	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		p := h.Project
		rows = append(rows, []string{
			p.Name,
			p.Type,
			cli.FormatMoney(p.Value),
			cli.FormatMoney(p.Invested),
			cli.FormatMoney(h.Profit),
			cli.FormatChange(h.ROI),
			cli.FormatPercent(h.Allocation),
			cli.RenderChange(p.Change),
			cli.Title(string(p.Status)),
			shortID(p.ID),
		})
	}
	return cli.Table{
		Headers: []string{"Project", "Type", "Value", "Invested", "Profit", "ROI", "Alloc", "Change", "Status", "ID"},
		Rows:    rows,
	}
}

func resolveProjectID(projects []model.Project, ref string) (string, error) {
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return resolveID("project", ids, ref)
}

func runProjectsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	in := model.ProjectInput{
		Name:        args[0],
		Type:        flagProjectType,
		Description: flagProjectDesc,
		Value:       flagProjectValue,
		Invested:    flagProjectInvested,
		Change:      flagProjectChange,
	}
	if flagProjectStatus != "" {
		st, err := model.ParseProjectStatus(flagProjectStatus)
		if err != nil {
			return err
		}
		in.Status = st
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.store.AddProject(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("  Added %q (%s) · %s\n", p.Name, p.ID, cli.FormatMoney(p.Value))
	return nil
}

func projectPatchFromFlags(cmd *cobra.Command) (model.ProjectPatch, error) {
	flags := cmd.Flags()
	var patch model.ProjectPatch
	if flags.Changed("name") {
		patch.Name = &flagProjectName
	}
	if flags.Changed("type") {
		patch.Type = &flagProjectType
	}
	if flags.Changed("description") {
		patch.Description = &flagProjectDesc
	}
	if flags.Changed("value") {
		patch.Value = &flagProjectValue
	}
	if flags.Changed("invested") {
		patch.Invested = &flagProjectInvested
	}
	if flags.Changed("change") {
		patch.Change = &flagProjectChange
	}
	if flags.Changed("status") {
		st, err := model.ParseProjectStatus(flagProjectStatus)
		if err != nil {
			return patch, err
		}
		patch.Status = &st
	}
	if patch.Empty() {
		return patch, errors.New("nothing to update: pass at least one of --name, --type, --description, --value, --invested, --change, --status")
	}
	return patch, nil
}

func runProjectsUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	patch, err := projectPatchFromFlags(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	projects, err := s.store.Projects(ctx)
	if err != nil {
		return err
	}
	id, err := resolveProjectID(projects, args[0])
	if err != nil {
		return err
	}

	p, err := s.store.UpdateProject(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("  Updated %q · %s · %s\n", p.Name, cli.FormatMoney(p.Value), cli.Title(string(p.Status)))
	return nil
}

func runProjectsRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	projects, err := s.store.Projects(ctx)
	if err != nil {
		return err
	}
	id, err := resolveProjectID(projects, args[0])
	if err != nil {
		return err
	}
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	fmt.Printf("  Deleted project %s\n", id)
	return nil
}
