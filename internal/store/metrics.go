package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"
)

// The metrics table holds a single row.
const metricsRowID = 1

type metricsRow struct {
	ID            int     `db:"id"`
	NetWorth      float64 `db:"net_worth"`
	MonthlyGrowth float64 `db:"monthly_growth"`
	TargetValue   float64 `db:"target_value"`
	UpdatedAt     string  `db:"updated_at"`
}

// Metrics returns the stored metrics record. ok is false when none has been
// saved yet.
func (s *Store) Metrics(ctx context.Context) (m model.Metrics, ok bool, err error) {
	var r metricsRow
	err = s.db.GetContext(ctx, &r,
		`SELECT id, net_worth, monthly_growth, target_value, updated_at FROM metrics WHERE id = $1`,
		metricsRowID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Metrics{}, false, nil
	}
	if err != nil {
		return model.Metrics{}, false, fmt.Errorf("loading metrics: %w", err)
	}

	updated, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		return model.Metrics{}, false, fmt.Errorf("metrics: bad updated_at %q: %w", r.UpdatedAt, err)
	}
	return model.Metrics{
		NetWorth:      r.NetWorth,
		MonthlyGrowth: r.MonthlyGrowth,
		TargetValue:   r.TargetValue,
		UpdatedAt:     updated,
	}, true, nil
}

// MetricsOr returns the stored metrics, or def when none exist.
func (s *Store) MetricsOr(ctx context.Context, def model.Metrics) (model.Metrics, error) {
	m, ok, err := s.Metrics(ctx)
	if err != nil {
		return model.Metrics{}, err
	}
	if !ok {
		return def, nil
	}
	return m, nil
}

// SetMetrics replaces the metrics record.
func (s *Store) SetMetrics(ctx context.Context, m model.Metrics) (model.Metrics, error) {
	if err := validateMetrics(m); err != nil {
		return model.Metrics{}, err
	}
	m.UpdatedAt = s.now().UTC()

	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO metrics (id, net_worth, monthly_growth, target_value, updated_at)
		 VALUES (:id, :net_worth, :monthly_growth, :target_value, :updated_at)
		 ON CONFLICT (id) DO UPDATE SET
		   net_worth = excluded.net_worth,
		   monthly_growth = excluded.monthly_growth,
		   target_value = excluded.target_value,
		   updated_at = excluded.updated_at`,
		metricsRow{
			ID:            metricsRowID,
			NetWorth:      m.NetWorth,
			MonthlyGrowth: m.MonthlyGrowth,
			TargetValue:   m.TargetValue,
			UpdatedAt:     m.UpdatedAt.Format(time.RFC3339Nano),
		})
	if err != nil {
		return model.Metrics{}, fmt.Errorf("saving metrics: %w", err)
	}

	s.publish(model.ChangeEvent{
		Table:   model.TableMetrics,
		Type:    model.ChangeUpdate,
		Metrics: &m,
		At:      m.UpdatedAt,
	})
	return m, nil
}

// ErrInvalidMetrics is returned by SetMetrics for non-finite values or a
// non-positive net worth or target.
var ErrInvalidMetrics = errors.New("invalid metrics")

func validateMetrics(m model.Metrics) error {
	for _, v := range []float64{m.NetWorth, m.MonthlyGrowth, m.TargetValue} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: values must be finite", ErrInvalidMetrics)
		}
	}
	if m.NetWorth <= 0 {
		return fmt.Errorf("%w: net worth must be positive", ErrInvalidMetrics)
	}
	if m.TargetValue <= 0 {
		return fmt.Errorf("%w: target must be positive", ErrInvalidMetrics)
	}
	return nil
}
