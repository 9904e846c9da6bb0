package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"

	"github.com/google/uuid"
)

type milestoneRow struct {
	ID          string  `db:"id"`
	Year        int     `db:"year"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	NetWorth    float64 `db:"net_worth"`
	Highlight   int     `db:"highlight"`
	CreatedAt   string  `db:"created_at"`
}

func (r milestoneRow) milestone() (model.Milestone, error) {
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return model.Milestone{}, fmt.Errorf("milestone %s: bad created_at %q: %w", r.ID, r.CreatedAt, err)
	}
	return model.Milestone{
		ID:          r.ID,
		Year:        r.Year,
		Title:       r.Title,
		Description: r.Description,
		NetWorth:    r.NetWorth,
		Highlight:   r.Highlight != 0,
		CreatedAt:   created,
	}, nil
}

func rowFromMilestone(m model.Milestone) milestoneRow {
	r := milestoneRow{
		ID:          m.ID,
		Year:        m.Year,
		Title:       m.Title,
		Description: m.Description,
		NetWorth:    m.NetWorth,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if m.Highlight {
		r.Highlight = 1
	}
	return r
}

const milestoneColumns = `id, year, title, description, net_worth, highlight, created_at`

// Milestones returns all milestones in chronological order.
func (s *Store) Milestones(ctx context.Context) ([]model.Milestone, error) {
	var rows []milestoneRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+milestoneColumns+` FROM milestones ORDER BY year, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}

	out := make([]model.Milestone, 0, len(rows))
	for _, r := range rows {
		m, err := r.milestone()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Milestone returns the milestone with the given ID.
func (s *Store) Milestone(ctx context.Context, id string) (model.Milestone, error) {
	var r milestoneRow
	err := s.db.GetContext(ctx, &r,
		`SELECT `+milestoneColumns+` FROM milestones WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Milestone{}, ErrMilestoneNotFound
	}
	if err != nil {
		return model.Milestone{}, fmt.Errorf("loading milestone %s: %w", id, err)
	}
	return r.milestone()
}

// AddMilestone validates and inserts a new milestone with a fresh ID.
func (s *Store) AddMilestone(ctx context.Context, in model.MilestoneInput) (model.Milestone, error) {
	m := model.Milestone{
		ID:          uuid.NewString(),
		Year:        in.Year,
		Title:       in.Title,
		Description: in.Description,
		NetWorth:    in.NetWorth,
		Highlight:   in.Highlight,
		CreatedAt:   s.now().UTC(),
	}
	if err := m.Validate(); err != nil {
		return model.Milestone{}, err
	}

	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO milestones (`+milestoneColumns+`)
		 VALUES (:id, :year, :title, :description, :net_worth, :highlight, :created_at)`,
		rowFromMilestone(m))
	if err != nil {
		return model.Milestone{}, fmt.Errorf("inserting milestone: %w", err)
	}

	s.publish(model.ChangeEvent{
		Table:     model.TableMilestones,
		Type:      model.ChangeInsert,
		ID:        m.ID,
		Milestone: &m,
		At:        s.now().UTC(),
	})
	return m, nil
}

// UpdateMilestone applies patch to the milestone with the given ID.
func (s *Store) UpdateMilestone(ctx context.Context, id string, patch model.MilestonePatch) (model.Milestone, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Milestone{}, fmt.Errorf("beginning update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var r milestoneRow
	err = tx.GetContext(ctx, &r, `SELECT `+milestoneColumns+` FROM milestones WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Milestone{}, ErrMilestoneNotFound
	}
	if err != nil {
		return model.Milestone{}, fmt.Errorf("loading milestone %s: %w", id, err)
	}
	cur, err := r.milestone()
	if err != nil {
		return model.Milestone{}, err
	}

	m := patch.Apply(cur)
	if err := m.Validate(); err != nil {
		return model.Milestone{}, err
	}

	_, err = tx.NamedExecContext(ctx,
		`UPDATE milestones SET year = :year, title = :title, description = :description,
		 net_worth = :net_worth, highlight = :highlight
		 WHERE id = :id`,
		rowFromMilestone(m))
	if err != nil {
		return model.Milestone{}, fmt.Errorf("updating milestone %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Milestone{}, fmt.Errorf("committing update: %w", err)
	}

	s.publish(model.ChangeEvent{
		Table:     model.TableMilestones,
		Type:      model.ChangeUpdate,
		ID:        m.ID,
		Milestone: &m,
		At:        s.now().UTC(),
	})
	return m, nil
}

// DeleteMilestone removes the milestone with the given ID.
func (s *Store) DeleteMilestone(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting milestone %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting milestone %s: %w", id, err)
	}
	if n == 0 {
		return ErrMilestoneNotFound
	}

	s.publish(model.ChangeEvent{
		Table: model.TableMilestones,
		Type:  model.ChangeDelete,
		ID:    id,
		At:    s.now().UTC(),
	})
	return nil
}
