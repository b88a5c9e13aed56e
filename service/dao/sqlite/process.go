package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
	"github.com/viant/stepflow/service/dao/criteria"
)

// ProcessService implements dao.Service for process instances on top of the
// shared SQLite store.
type ProcessService struct {
	db *sql.DB
}

var _ dao.Service[string, model.Process] = (*ProcessService)(nil)

func (s *ProcessService) Save(ctx context.Context, p *model.Process) error {
	if p == nil {
		return dao.ErrNilEntity
	}
	if p.ID == "" {
		return dao.ErrInvalidID
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO process (id, type, current_state, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET current_state = excluded.current_state,
                               updated_at    = excluded.updated_at`,
		p.ID, p.Type, string(p.CurrentState), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save process %s: %w", p.ID, err)
	}
	return nil
}

func (s *ProcessService) Load(ctx context.Context, id string) (*model.Process, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	row := s.db.QueryRowContext(ctx, `
SELECT id, type, current_state, created_at, updated_at FROM process WHERE id = ?`, id)

	var p model.Process
	var state string
	err := row.Scan(&p.ID, &p.Type, &state, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dao.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load process %s: %w", id, err)
	}
	p.CurrentState = model.State(state)
	return &p, nil
}

func (s *ProcessService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM process WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete process %s: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return dao.ErrNotFound
	}
	return nil
}

func (s *ProcessService) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Process, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, type, current_state, created_at, updated_at FROM process`)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	defer rows.Close()

	var out []*model.Process
	for rows.Next() {
		var p model.Process
		var state string
		if err := rows.Scan(&p.ID, &p.Type, &state, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.CurrentState = model.State(state)
		if !criteria.Matches(&p, parameters) {
			continue
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
