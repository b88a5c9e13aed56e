package memory

import (
	"context"
	"sync"

	"github.com/viant/stepflow/internal/clock"
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
)

// Service implements an in-memory, append-only form submission log. Rows are
// never mutated or deleted; "latest per step" is derived from the assigned
// sequence.
type Service struct {
	submissions []*model.Submission
	byProcess   map[string][]*model.Submission
	seq         int64
	mux         sync.RWMutex
}

var _ dao.FormService = (*Service)(nil)

func (s *Service) Save(_ context.Context, submission *model.Submission) error {
	if submission == nil {
		return dao.ErrNilEntity
	}
	if submission.ProcessID == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	s.seq++
	submission.ID = s.seq
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = clock.Now()
	}
	stored := submission.Clone()
	s.submissions = append(s.submissions, stored)
	s.byProcess[stored.ProcessID] = append(s.byProcess[stored.ProcessID], stored)
	return nil
}

func (s *Service) ListByProcessAndStep(_ context.Context, processID, step string) ([]*model.Submission, error) {
	if processID == "" {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	var out []*model.Submission
	rows := s.byProcess[processID]
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Step == step {
			out = append(out, rows[i].Clone())
		}
	}
	return out, nil
}

func (s *Service) LatestByProcess(_ context.Context, processID string) (map[string]*model.Submission, error) {
	if processID == "" {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	out := map[string]*model.Submission{}
	for _, row := range s.byProcess[processID] {
		if latest, ok := out[row.Step]; ok && latest.ID > row.ID {
			continue
		}
		out[row.Step] = row.Clone()
	}
	return out, nil
}

func New() *Service {
	return &Service{byProcess: map[string][]*model.Submission{}}
}
