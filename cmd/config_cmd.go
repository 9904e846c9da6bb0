package cmd

import (
	"fmt"
	"net/url"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", configPath())
	if config.Exists() || flagConfig != "" {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Growth]")
	fmt.Printf("    Net worth seed:     %s\n", cli.FormatDollars(cfg.Growth.NetWorth))
	fmt.Printf("    Monthly rate:       %s\n", cli.FormatRate(cfg.Growth.MonthlyRatePct))
	fmt.Printf("    Target value:       %s\n", cli.FormatDollars(cfg.Growth.TargetValue))
	spec := cfg.SeriesSpec(cfg.Growth.TargetValue)
	fmt.Printf("    Projection:         %d periods of %d months, capped at %s\n",
		spec.Periods, spec.PeriodUnitMonths, cli.FormatMoney(spec.Cap))
	if cfg.Growth.StartYear > 0 {
		fmt.Printf("    Start year:         %d\n", cfg.Growth.StartYear)
	}
	fmt.Println()

	fmt.Println("  [Scenarios]")
	for _, m := range cfg.Multipliers() {
		fmt.Printf("    %-18s  %.2fx\n", cli.Title(m.Name), m.Factor)
	}
	fmt.Println()

	fmt.Println("  [Policy]")
	fmt.Printf("    At risk under:      %d days and %s progress\n",
		cfg.Policy.AtRiskDays, cli.FormatPercent(cfg.Policy.AtRiskPercent))
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Driver:             %s\n", cfg.Store.Driver)
	fmt.Printf("    DSN:                %s\n", maskDSN(cfg.StoreDSN()))
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:            %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval:           %ds\n", cfg.Daemon.IntervalSec)
	fmt.Printf("    Events buffer:      %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:              %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Locale:             %s\n", cli.Locale())
	fmt.Println()

	fmt.Println("  Run `wealthpath setup` to reconfigure.")
	return nil
}

// maskDSN hides the password of a URL-style DSN.
func maskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
