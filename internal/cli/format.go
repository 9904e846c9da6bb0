// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	localeMu sync.RWMutex
	tag      = language.English
	printer  = message.NewPrinter(language.English)
)

// SetLocale selects the locale used for digit grouping and title casing.
// Unparseable tags fall back to English.
func SetLocale(locale string) {
	t, err := language.Parse(locale)
	if err != nil {
		t = language.English
	}
	localeMu.Lock()
	tag = t
	printer = message.NewPrinter(t)
	localeMu.Unlock()
}

// Locale returns the active locale tag.
func Locale() string {
	localeMu.RLock()
	defer localeMu.RUnlock()
	return tag.String()
}

// FormatMoney formats a dollar value with B/M/K suffixes.
// e.g., 2_250_000_000 -> "$2.25B", 225_234_891 -> "$225.2M", 12_400 -> "$12K"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	switch {
	case math.IsInf(v, 1):
		return "∞"
	// Each tier hands over once its rounded value would print as 1000.
	case v >= 1_000_000_000 || math.Round(v/100_000) >= 10_000:
		return fmt.Sprintf("$%.2fB", v/1_000_000_000)
	case v >= 1_000_000 || math.Round(v/1_000) >= 1_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000 || math.Round(v) >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// FormatNumber groups digits for the active locale.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	localeMu.RLock()
	p := printer
	localeMu.RUnlock()
	return p.Sprintf("%d", n)
}

// FormatDollars formats a whole-dollar amount with grouping.
func FormatDollars(v float64) string {
	if v < 0 {
		return "-$" + FormatNumber(int64(math.Round(-v)))
	}
	return "$" + FormatNumber(int64(math.Round(v)))
}

// FormatPercent formats a value already expressed in percent.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatChange formats a signed percentage change.
// e.g., 18.2 -> "+18.2%", -1.2 -> "-1.2%", 0 -> "0.0%"
func FormatChange(pct float64) string {
	if pct > 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatMultiple formats a growth multiple.
// e.g., 18 -> "18.0x", 1234.5 -> "1,234x"
func FormatMultiple(x float64) string {
	if x >= 1000 {
		return FormatNumber(int64(math.Round(x))) + "x"
	}
	return fmt.Sprintf("%.1fx", x)
}

// FormatRate formats a monthly growth rate in percent.
func FormatRate(pct float64) string {
	return fmt.Sprintf("%.1f%%/mo", pct)
}

// FormatHorizon formats months-to-target.
// e.g., 0 -> "reached", 12.76 -> "12.8 months (1.1 yr)", +Inf -> "never"
func FormatHorizon(h model.Horizon) string {
	switch {
	case !h.Reachable():
		return "never"
	case h.Months == 0:
		return "reached"
	case h.Months < 12:
		return fmt.Sprintf("%.1f months", h.Months)
	default:
		return fmt.Sprintf("%.1f months (%.1f yr)", h.Months, h.Years())
	}
}

// FormatETA formats the calendar month a horizon lands on.
func FormatETA(h model.Horizon, from time.Time) string {
	d, ok := h.Date(from)
	if !ok {
		return "—"
	}
	return d.Format("Jan 2006")
}

// FormatDays formats a days-remaining count.
// e.g., 45 -> "45d left", 0 -> "due today", -3 -> "3d overdue"
func FormatDays(days int) string {
	switch {
	case days > 0:
		return fmt.Sprintf("%dd left", days)
	case days == 0:
		return "due today"
	default:
		return fmt.Sprintf("%dd overdue", -days)
	}
}

// Title title-cases a label such as a status or category for the active locale.
// e.g., "at_risk" -> "At Risk"
func Title(s string) string {
	localeMu.RLock()
	t := tag
	localeMu.RUnlock()
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Title(t).String(strings.ReplaceAll(s, "_", " "))
}
