package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/wealthpath/internal/config"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the raw answers of the first-run form.
type SetupValues struct {
	NetWorth string
	Rate     string
	Target   string
	Theme    string
}

// SetupValuesFrom pre-fills the form from an existing config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		NetWorth: formatPlain(cfg.Growth.NetWorth),
		Rate:     formatPlain(cfg.Growth.MonthlyRatePct),
		Target:   formatPlain(cfg.Growth.TargetValue),
		Theme:    theme.ByName(cfg.Appearance.Theme).Name,
	}
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseAmount accepts plain numbers with optional $ and thousands separators.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return 0, errors.New("required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

func validatePositive(s string) error {
	v, err := parseAmount(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}

func validateRate(s string) error {
	v, err := parseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return err
	}
	if v <= -100 {
		return errors.New("must be above -100")
	}
	return nil
}

// NewSetupForm builds the first-run form. Answers are written into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to wealthpath").
				Description("Set your starting point. Everything can be changed later with `wealthpath setup` or `wealthpath metrics set`."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Current net worth").
				Description("In your reporting currency, e.g. 225234891").
				Value(&vals.NetWorth).
				Validate(validatePositive),
			huh.NewInput().
				Title("Monthly growth rate (%)").
				Value(&vals.Rate).
				Validate(validateRate),
			huh.NewInput().
				Title("Target value").
				Value(&vals.Target).
				Validate(validatePositive),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeDracula())
}

// Apply writes the answers into cfg and returns the metrics to store.
func (v SetupValues) Apply(cfg *config.Config) (model.Metrics, error) {
	netWorth, err := parseAmount(v.NetWorth)
	if err != nil {
		return model.Metrics{}, fmt.Errorf("net worth: %w", err)
	}
	rate, err := parseAmount(strings.TrimSuffix(strings.TrimSpace(v.Rate), "%"))
	if err != nil {
		return model.Metrics{}, fmt.Errorf("growth rate: %w", err)
	}
	target, err := parseAmount(v.Target)
	if err != nil {
		return model.Metrics{}, fmt.Errorf("target: %w", err)
	}

	cfg.Growth.NetWorth = netWorth
	cfg.Growth.MonthlyRatePct = rate
	cfg.Growth.TargetValue = target
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	return cfg.DefaultMetrics(), nil
}
