package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/viant/stepflow/internal/clock"
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
)

// FormService implements the append-only form submission log on top of the
// shared SQLite store. Rows are only ever inserted; "latest per step" is a
// MAX(id) reduction at read time.
type FormService struct {
	db *sql.DB
}

var _ dao.FormService = (*FormService)(nil)

func (s *FormService) Save(ctx context.Context, submission *model.Submission) error {
	if submission == nil {
		return dao.ErrNilEntity
	}
	if submission.ProcessID == "" {
		return dao.ErrInvalidID
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = clock.Now()
	}
	payload, err := json.Marshal(submission.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	result, err := s.db.ExecContext(ctx, `
INSERT INTO form_data (process_id, step, payload_json, created_at) VALUES (?, ?, ?, ?)`,
		submission.ProcessID, submission.Step, string(payload), submission.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	submission.ID, err = result.LastInsertId()
	return err
}

func (s *FormService) ListByProcessAndStep(ctx context.Context, processID, step string) ([]*model.Submission, error) {
	if processID == "" {
		return nil, dao.ErrInvalidID
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, process_id, step, payload_json, created_at
FROM form_data
WHERE process_id = ? AND step = ?
ORDER BY id DESC`, processID, step)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()
	return scanSubmissions(rows)
}

func (s *FormService) LatestByProcess(ctx context.Context, processID string) (map[string]*model.Submission, error) {
	if processID == "" {
		return nil, dao.ErrInvalidID
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, process_id, step, payload_json, created_at
FROM form_data
WHERE process_id = ?
  AND id IN (SELECT MAX(id) FROM form_data WHERE process_id = ? GROUP BY step)`,
		processID, processID)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest submissions: %w", err)
	}
	defer rows.Close()

	submissions, err := scanSubmissions(rows)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*model.Submission, len(submissions))
	for _, submission := range submissions {
		out[submission.Step] = submission
	}
	return out, nil
}

func scanSubmissions(rows *sql.Rows) ([]*model.Submission, error) {
	var out []*model.Submission
	for rows.Next() {
		var submission model.Submission
		var payload string
		if err := rows.Scan(&submission.ID, &submission.ProcessID, &submission.Step,
			&payload, &submission.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &submission.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		out = append(out, &submission)
	}
	return out, rows.Err()
}
