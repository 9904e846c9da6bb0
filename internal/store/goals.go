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

type goalRow struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	TargetValue  float64 `db:"target_value"`
	CurrentValue float64 `db:"current_value"`
	Deadline     string  `db:"deadline"`
	Category     string  `db:"category"`
	CreatedAt    string  `db:"created_at"`
}

func (r goalRow) goal() (model.Goal, error) {
	deadline, err := time.Parse(model.DateLayout, r.Deadline)
	if err != nil {
		return model.Goal{}, fmt.Errorf("goal %s: bad deadline %q: %w", r.ID, r.Deadline, err)
	}
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return model.Goal{}, fmt.Errorf("goal %s: bad created_at %q: %w", r.ID, r.CreatedAt, err)
	}
	return model.Goal{
		ID:           r.ID,
		Name:         r.Name,
		TargetValue:  r.TargetValue,
		CurrentValue: r.CurrentValue,
		Deadline:     deadline,
		Category:     model.Category(r.Category),
		CreatedAt:    created,
	}, nil
}

func rowFromGoal(g model.Goal) goalRow {
	return goalRow{
		ID:           g.ID,
		Name:         g.Name,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		Deadline:     g.Deadline.Format(model.DateLayout),
		Category:     string(g.Category),
		CreatedAt:    g.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

const goalColumns = `id, name, target_value, current_value, deadline, category, created_at`

// Goals returns all goals ordered by deadline, then name.
func (s *Store) Goals(ctx context.Context) ([]model.Goal, error) {
	var rows []goalRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+goalColumns+` FROM goals ORDER BY deadline, name`)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	goals := make([]model.Goal, 0, len(rows))
	for _, r := range rows {
		g, err := r.goal()
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// Goal returns the goal with the given ID.
func (s *Store) Goal(ctx context.Context, id string) (model.Goal, error) {
	var r goalRow
	err := s.db.GetContext(ctx, &r,
		`SELECT `+goalColumns+` FROM goals WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Goal{}, ErrGoalNotFound
	}
	if err != nil {
		return model.Goal{}, fmt.Errorf("loading goal %s: %w", id, err)
	}
	return r.goal()
}

// AddGoal validates and inserts a new goal with a fresh ID.
func (s *Store) AddGoal(ctx context.Context, in model.GoalInput) (model.Goal, error) {
	g := model.Goal{
		ID:           uuid.NewString(),
		Name:         in.Name,
		TargetValue:  in.TargetValue,
		CurrentValue: in.CurrentValue,
		Deadline:     in.Deadline,
		Category:     in.Category,
		CreatedAt:    s.now().UTC(),
	}
	if err := g.Validate(); err != nil {
		return model.Goal{}, err
	}

	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO goals (`+goalColumns+`)
		 VALUES (:id, :name, :target_value, :current_value, :deadline, :category, :created_at)`,
		rowFromGoal(g))
	if err != nil {
		return model.Goal{}, fmt.Errorf("inserting goal: %w", err)
	}

	s.publish(model.ChangeEvent{
		Table: model.TableGoals,
		Type:  model.ChangeInsert,
		ID:    g.ID,
		Goal:  &g,
		At:    s.now().UTC(),
	})
	return g, nil
}

// UpdateGoal applies patch to the goal with the given ID.
func (s *Store) UpdateGoal(ctx context.Context, id string, patch model.GoalPatch) (model.Goal, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Goal{}, fmt.Errorf("beginning update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var r goalRow
	err = tx.GetContext(ctx, &r, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Goal{}, ErrGoalNotFound
	}
	if err != nil {
		return model.Goal{}, fmt.Errorf("loading goal %s: %w", id, err)
	}
	cur, err := r.goal()
	if err != nil {
		return model.Goal{}, err
	}

	g := patch.Apply(cur)
	if err := g.Validate(); err != nil {
		return model.Goal{}, err
	}

	_, err = tx.NamedExecContext(ctx,
		`UPDATE goals SET name = :name, target_value = :target_value,
		 current_value = :current_value, deadline = :deadline, category = :category
		 WHERE id = :id`,
		rowFromGoal(g))
	if err != nil {
		return model.Goal{}, fmt.Errorf("updating goal %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Goal{}, fmt.Errorf("committing update: %w", err)
	}

	s.publish(model.ChangeEvent{
		Table: model.TableGoals,
		Type:  model.ChangeUpdate,
		ID:    g.ID,
		Goal:  &g,
		At:    s.now().UTC(),
	})
	return g, nil
}

// DeleteGoal removes the goal with the given ID.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting goal %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting goal %s: %w", id, err)
	}
	if n == 0 {
		return ErrGoalNotFound
	}

	s.publish(model.ChangeEvent{
		Table: model.TableGoals,
		Type:  model.ChangeDelete,
		ID:    id,
		At:    s.now().UTC(),
	})
	return nil
}
