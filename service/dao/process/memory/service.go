package memory

import (
	"context"
	"sync"

	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
	"github.com/viant/stepflow/service/dao/criteria"
)

// Service implements an in-memory, thread-safe store for process instances.
// All API methods work with copies to eliminate data races between
// goroutines.
type Service struct {
	processes map[string]*model.Process
	mux       sync.RWMutex
}

var _ dao.Service[string, model.Process] = (*Service)(nil)

func (s *Service) Save(_ context.Context, p *model.Process) error {
	if p == nil {
		return dao.ErrNilEntity
	}
	if p.ID == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if existing, ok := s.processes[p.ID]; ok && existing != nil {
		existing.CopyFrom(p)
	} else {
		s.processes[p.ID] = p.Clone()
	}
	return nil
}

func (s *Service) Load(_ context.Context, id string) (*model.Process, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	p, ok := s.processes[id]
	s.mux.RUnlock()

	if !ok {
		return nil, dao.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *Service) Delete(_ context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.processes[id]; !ok {
		return dao.ErrNotFound
	}
	delete(s.processes, id)
	return nil
}

func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*model.Process, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	out := make([]*model.Process, 0, len(s.processes))
	for _, p := range s.processes {
		if !criteria.Matches(p, parameters) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out, nil
}

func New() *Service {
	return &Service{processes: map[string]*model.Process{}}
}
