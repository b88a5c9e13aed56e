package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProcessSetState(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := NewProcess("p1", "permit", created)
	assert.Equal(t, StateProcessSelection, p.State())
	assert.Equal(t, created, p.UpdatedAt)

	updated := created.Add(time.Minute)
	p.SetState(StateStepOne, updated)
	assert.Equal(t, StateStepOne, p.State())
	assert.Equal(t, updated, p.UpdatedAt)
	assert.Equal(t, created, p.CreatedAt)
	assert.False(t, p.Terminated())

	p.SetState(StateCompleted, updated.Add(time.Minute))
	assert.True(t, p.Terminated())
}

func TestProcessClone(t *testing.T) {
	p := NewProcess("p1", "permit", time.Now())
	clone := p.Clone()
	clone.SetState(StateStepOne, time.Now())
	assert.Equal(t, StateProcessSelection, p.State())
	assert.Equal(t, StateStepOne, clone.State())
}

func TestProcessConfigValidate(t *testing.T) {
	cfg := &ProcessConfig{BusinessKey: "permit_process", Steps: []*StepConfig{
		{Key: "step_one", Title: "Applicant"},
		{Key: "step_one"},
	}}
	issues := cfg.Validate()
	assert.Len(t, issues, 1)

	cfg = &ProcessConfig{}
	assert.Len(t, cfg.Validate(), 1)
}
