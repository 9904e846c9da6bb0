// Package cmd implements the wealthpath CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/wealthpath/internal/cli"
	"github.com/theirongolddev/wealthpath/internal/config"
	"github.com/theirongolddev/wealthpath/internal/logger"
	"github.com/theirongolddev/wealthpath/internal/pipeline"
	"github.com/theirongolddev/wealthpath/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagQuiet    bool
	flagLogLevel string
	flagDSN      string
)

var rootCmd = &cobra.Command{
	Use:          "wealthpath",
	Short:        "Wealth journey tracker",
	Long:         "Track net worth against a target: growth projections, scenarios and goal health.",
	RunE:         runSummary,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "Override the store DSN")
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

// loadConfig reads the config, applies the locale and initializes logging.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadFrom(configPath())
	if err != nil {
		return cfg, err
	}
	if flagDSN != "" {
		cfg.Store.DSN = flagDSN
	}

	level := flagLogLevel
	if level == "" {
		level = config.LogLevel()
	}
	if flagQuiet && flagLogLevel == "" {
		level = "error"
	}
	logger.Init(logger.Options{Level: level})
	cli.SetLocale(cfg.Appearance.Locale)
	return cfg, nil
}

// session bundles the loaded config and the open store for one command.
type session struct {
	cfg   config.Config
	store *store.Store
	now   time.Time
}

// openSession is the shared setup path used by every data command.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.StoreDSN())
	if err != nil {
		return nil, err
	}
	logger.Log.Debug("store opened", "driver", st.Driver())
	return &session{cfg: cfg, store: st, now: time.Now()}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		logger.Log.Warn("closing store", "err", err)
	}
}

func (s *session) settings() pipeline.Settings {
	return pipeline.SettingsFrom(s.cfg, s.now)
}

func (s *session) overview(ctx context.Context) (pipeline.Overview, error) {
	return pipeline.Load(ctx, s.store, s.cfg.DefaultMetrics(), s.settings(), s.now)
}

// progressf writes a status line to stderr unless --quiet is set.
func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
