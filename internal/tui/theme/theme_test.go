package theme

import (
	"testing"

	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/tracker"
)

func TestByName(t *testing.T) {
	if got := ByName("tokyo-night"); got.Name != "tokyo-night" {
		t.Fatalf("ByName = %q, want tokyo-night", got.Name)
	}
	if got := ByName("nope"); got.Name != FlexokiDark.Name {
		t.Fatalf("ByName(unknown) = %q, want flexoki-dark", got.Name)
	}
}

func TestStatusColorsDistinct(t *testing.T) {
	for _, th := range All {
		seen := make(map[string]tracker.Status)
		for _, s := range tracker.Statuses {
			c := string(th.StatusColor(s))
			if prev, ok := seen[c]; ok {
				t.Fatalf("%s: %s and %s share color %s", th.Name, prev, s, c)
			}
			seen[c] = s
		}
	}
}

func TestTrendColor(t *testing.T) {
	th := ByName("flexoki-dark")
	if th.TrendColor(model.TrendUp) != th.Gain || th.TrendColor(model.TrendDown) != th.Loss {
		t.Fatalf("TrendColor up/down = %s/%s, want gain/loss", th.TrendColor(model.TrendUp), th.TrendColor(model.TrendDown))
	}
	if th.TrendColor(model.TrendNeutral) != th.TextMuted {
		t.Fatalf("TrendColor neutral = %s, want muted", th.TrendColor(model.TrendNeutral))
	}
}
