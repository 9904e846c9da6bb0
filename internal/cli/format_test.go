package cli

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{12_400, "$12K"},
		{225_234_891, "$225.2M"},
		{1_000_000_000, "$1.00B"},
		{2_250_000_000, "$2.25B"},
		{-5_000_000, "-$5.0M"},
		{999.4, "$999"},
		{999.6, "$1K"},
		{999_499, "$999K"},
		{999_500, "$1.0M"},
		{999_949_999, "$999.9M"},
		{999_950_000, "$1.00B"},
		{999_999_999, "$1.00B"},
		{math.Inf(1), "∞"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Fatalf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber_Locale(t *testing.T) {
	t.Cleanup(func() { SetLocale("en") })

	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Fatalf("FormatNumber en = %q, want 1,234,567", got)
	}
	SetLocale("de")
	if got := FormatNumber(1234567); got != "1.234.567" {
		t.Fatalf("FormatNumber de = %q, want 1.234.567", got)
	}
	SetLocale("not a locale!")
	if Locale() != "en" {
		t.Fatalf("Locale = %q, want en fallback", Locale())
	}
}

func TestFormatDollars(t *testing.T) {
	if got := FormatDollars(225_234_891.4); got != "$225,234,891" {
		t.Fatalf("FormatDollars = %q", got)
	}
	if got := FormatDollars(-1500); got != "-$1,500" {
		t.Fatalf("FormatDollars negative = %q", got)
	}
}

func TestFormatHorizon(t *testing.T) {
	tests := []struct {
		h    model.Horizon
		want string
	}{
		{model.Horizon{Months: 0}, "reached"},
		{model.Horizon{Months: 7.3}, "7.3 months"},
		{model.Horizon{Months: 30}, "30.0 months (2.5 yr)"},
		{model.Unreachable, "never"},
	}
	for _, tt := range tests {
		if got := FormatHorizon(tt.h); got != tt.want {
			t.Fatalf("FormatHorizon(%v) = %q, want %q", tt.h.Months, got, tt.want)
		}
	}
}

func TestFormatETA(t *testing.T) {
	from := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatETA(model.Horizon{Months: 12.2}, from); got != "Feb 2026" {
		t.Fatalf("FormatETA = %q, want Feb 2026", got)
	}
	if got := FormatETA(model.Unreachable, from); got != "—" {
		t.Fatalf("FormatETA unreachable = %q", got)
	}
}

func TestFormatDays(t *testing.T) {
	tests := map[int]string{45: "45d left", 0: "due today", -3: "3d overdue"}
	for in, want := range tests {
		if got := FormatDays(in); got != want {
			t.Fatalf("FormatDays(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTitle(t *testing.T) {
	if got := Title("at_risk"); got != "At Risk" {
		t.Fatalf("Title = %q, want At Risk", got)
	}
	if got := Title("financial"); got != "Financial" {
		t.Fatalf("Title = %q, want Financial", got)
	}
}

func TestTitle_Concurrent(t *testing.T) {
	t.Cleanup(func() { SetLocale("en") })

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%8 == 0 {
				SetLocale("en-GB")
			}
			if got := Title("on_track"); got != "On Track" {
				errs <- got
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("Title = %q, want On Track", got)
	}
}

func TestFormatChangeAndMultiple(t *testing.T) {
	changes := map[float64]string{18.2: "+18.2%", -1.2: "-1.2%", 0: "0.0%"}
	for in, want := range changes {
		if got := FormatChange(in); got != want {
			t.Fatalf("FormatChange(%v) = %q, want %q", in, got, want)
		}
	}
	multiples := map[float64]string{18: "18.0x", 26.666: "26.7x", 90_080: "90,080x"}
	for in, want := range multiples {
		if got := FormatMultiple(in); got != want {
			t.Fatalf("FormatMultiple(%v) = %q, want %q", in, got, want)
		}
	}
}
