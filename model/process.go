package model

import (
	"sync"
	"time"
)

// Process represents one running execution of a configured multi-step
// workflow. CurrentState is the single source of truth for workflow position;
// any richer runtime representation is reconstructed from it on each call.
type Process struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	CurrentState State     `json:"currentState"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	mu           sync.RWMutex
}

// NewProcess creates a new process instance at the initial state.
func NewProcess(id, processType string, now time.Time) *Process {
	return &Process{
		ID:           id,
		Type:         processType,
		CurrentState: StateProcessSelection,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// State returns the current state.
func (p *Process) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.CurrentState
}

// SetState updates the current state and refreshes UpdatedAt.
func (p *Process) SetState(state State, now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.CurrentState = state
	p.UpdatedAt = now
}

// Terminated reports whether the instance reached a terminal state.
func (p *Process) Terminated() bool {
	return p.State().Terminal()
}

// CopyFrom overwrites the mutable fields of p with those of src.
func (p *Process) CopyFrom(src *Process) {
	if src == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ID = src.ID
	p.Type = src.Type
	p.CurrentState = src.CurrentState
	p.CreatedAt = src.CreatedAt
	p.UpdatedAt = src.UpdatedAt
}

// Clone returns a copy detached from p.
func (p *Process) Clone() *Process {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &Process{
		ID:           p.ID,
		Type:         p.Type,
		CurrentState: p.CurrentState,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
