package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/wealthpath/internal/config"
	"github.com/theirongolddev/wealthpath/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	vals := tui.SetupValuesFrom(cfg)
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return err
	}

	m, err := vals.Apply(&cfg)
	if err != nil {
		return err
	}
	if err := config.SaveTo(configPath(), cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	if _, err := s.store.SetMetrics(ctx, m); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", configPath())
	fmt.Println("  Run `wealthpath setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
