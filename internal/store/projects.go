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

type projectRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Type        string  `db:"type"`
	Description string  `db:"description"`
	Value       float64 `db:"value"`
	Invested    float64 `db:"invested"`
	Change      float64 `db:"change_pct"`
	Status      string  `db:"status"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

func (r projectRow) project() (model.Project, error) {
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return model.Project{}, fmt.Errorf("project %s: bad created_at %q: %w", r.ID, r.CreatedAt, err)
	}
	updated, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		return model.Project{}, fmt.Errorf("project %s: bad updated_at %q: %w", r.ID, r.UpdatedAt, err)
	}
	return model.Project{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		Description: r.Description,
		Value:       r.Value,
		Invested:    r.Invested,
		Change:      r.Change,
		Status:      model.ProjectStatus(r.Status),
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func rowFromProject(p model.Project) projectRow {
	return projectRow{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Description: p.Description,
		Value:       p.Value,
		Invested:    p.Invested,
		Change:      p.Change,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

const projectColumns = `id, name, type, description, value, invested, change_pct, status, created_at, updated_at`

// Projects returns all projects, largest value first.
func (s *Store) Projects(ctx context.Context) ([]model.Project, error) {
	var rows []projectRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+projectColumns+` FROM projects ORDER BY value DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	projects := make([]model.Project, 0, len(rows))
	for _, r := range rows {
		p, err := r.project()
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Project returns the project with the given ID.
func (s *Store) Project(ctx context.Context, id string) (model.Project, error) {
	var r projectRow
	err := s.db.GetContext(ctx, &r,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, ErrProjectNotFound
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("loading project %s: %w", id, err)
	}
	return r.project()
}

// AddProject validates and inserts a new project with a fresh ID.
func (s *Store) AddProject(ctx context.Context, in model.ProjectInput) (model.Project, error) {
	now := s.now().UTC()
	p := model.Project{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		Value:       in.Value,
		Invested:    in.Invested,
		Change:      in.Change,
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Status == "" {
		p.Status = model.ProjectActive
	}
	if err := p.Validate(); err != nil {
		return model.Project{}, err
	}

	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES (:id, :name, :type, :description, :value, :invested, :change_pct, :status, :created_at, :updated_at)`,
		rowFromProject(p))
	if err != nil {
		return model.Project{}, fmt.Errorf("inserting project: %w", err)
	}

	s.publish(model.ChangeEvent{
		Table:   model.TableProjects,
		Type:    model.ChangeInsert,
		ID:      p.ID,
		Project: &p,
		At:      now,
	})
	return p, nil
}

// UpdateProject applies patch to the project with the given ID and stamps
// UpdatedAt.
func (s *Store) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Project{}, fmt.Errorf("beginning update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var r projectRow
	err = tx.GetContext(ctx, &r, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, ErrProjectNotFound
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("loading project %s: %w", id, err)
	}
	cur, err := r.project()
	if err != nil {
		return model.Project{}, err
	}

	p := patch.Apply(cur)
	if err := p.Validate(); err != nil {
		return model.Project{}, err
	}
	p.UpdatedAt = s.now().UTC()

	_, err = tx.NamedExecContext(ctx,
		`UPDATE projects SET name = :name, type = :type, description = :description,
		 value = :value, invested = :invested, change_pct = :change_pct, status = :status,
		 updated_at = :updated_at
		 WHERE id = :id`,
		rowFromProject(p))
	if err != nil {
		return model.Project{}, fmt.Errorf("updating project %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Project{}, fmt.Errorf("committing update: %w", err)
	}

	s.publish(model.ChangeEvent{
		Table:   model.TableProjects,
		Type:    model.ChangeUpdate,
		ID:      p.ID,
		Project: &p,
		At:      p.UpdatedAt,
	})
	return p, nil
}

// DeleteProject removes the project with the given ID.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	if n == 0 {
		return ErrProjectNotFound
	}

	s.publish(model.ChangeEvent{
		Table: model.TableProjects,
		Type:  model.ChangeDelete,
		ID:    id,
		At:    s.now().UTC(),
	})
	return nil
}
