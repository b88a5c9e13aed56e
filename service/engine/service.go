package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/stepflow/internal/clock"
	"github.com/viant/stepflow/internal/idgen"
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
	"github.com/viant/stepflow/service/event"
	"github.com/viant/stepflow/service/meta"
	"github.com/viant/stepflow/tracing"
)

// FormDefinition is the display-ready definition of the form for the
// instance's current step, with the most recent prior submission attached.
type FormDefinition struct {
	ProcessID    string                   `json:"processId"`
	ProcessType  string                   `json:"processType"`
	CurrentState model.State              `json:"currentState"`
	Step         string                   `json:"step"`
	Title        string                   `json:"title,omitempty"`
	Fields       []map[string]interface{} `json:"fields,omitempty"`
	Actions      []map[string]interface{} `json:"actions,omitempty"`
	Data         map[string]interface{}   `json:"data,omitempty"`
}

// Service orchestrates process instances: it resolves transitions against the
// state machine definition, persists state changes and coordinates form data
// storage. The service itself is stateless between calls; all durable state
// lives in the DAOs.
type Service struct {
	processDAO dao.Service[string, model.Process]
	formDAO    dao.FormService
	meta       *meta.Service
	publisher  *event.Publisher[event.StateChange]
	locks      sync.Map
}

// StartProcess allocates a new instance for the supplied process type and
// immediately applies the implicit PROCESS_SELECTED event, so a started
// workflow never rests at the selection state.
func (s *Service) StartProcess(ctx context.Context, processType string) (*model.Process, error) {
	ctx, span := tracing.StartSpan(ctx, "engine.StartProcess", "INTERNAL")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	config, err := s.meta.Lookup(ctx, processType)
	if err != nil {
		return nil, err
	}
	if config == nil {
		err = fmt.Errorf("%w: %q", ErrInvalidProcessType, processType)
		return nil, err
	}

	now := clock.Now()
	process := model.NewProcess(idgen.New(), processType, now)
	next, _ := model.Transition(process.State(), model.EventProcessSelected)
	process.SetState(next, now)

	if err = s.processDAO.Save(ctx, process); err != nil {
		return nil, fmt.Errorf("failed to persist process %v: %w", process.ID, err)
	}
	s.publish(ctx, process, model.StateProcessSelection, model.EventProcessSelected)
	span.WithAttributes(map[string]string{"processId": process.ID, "processType": processType})
	return process.Clone(), nil
}

// SubmitStep records the submitted form data and applies the transition the
// event resolves to. Unless the event is BACK the payload is persisted before
// the transition is attempted, so data submitted on an ultimately illegal
// transition is still retained. The persisted state is authoritative: after a
// crash between the form insert and the state update, a retried submit
// re-runs the transition from the stored state and simply appends another
// submission row — latest-wins reads hide the duplicate.
func (s *Service) SubmitStep(ctx context.Context, processID, step, eventName string, formData map[string]interface{}) (*model.Process, error) {
	ctx, span := tracing.StartSpan(ctx, "engine.SubmitStep", "INTERNAL")
	var err error
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"processId": processID, "step": step, "event": eventName})

	unlock := s.lock(processID)
	defer unlock()

	process, err := s.load(ctx, processID)
	if err != nil {
		return nil, err
	}
	if process.Terminated() {
		err = fmt.Errorf("%w: %v is %v", ErrProcessTerminated, processID, process.State())
		return nil, err
	}
	if !process.State().Known() {
		err = s.quarantine(ctx, process)
		return nil, err
	}

	if eventName != string(model.EventBack) {
		submission := &model.Submission{
			ProcessID: processID,
			Step:      step,
			Payload:   formData,
			CreatedAt: clock.Now(),
		}
		if err = s.formDAO.Save(ctx, submission); err != nil {
			return nil, fmt.Errorf("failed to persist form data: %w", err)
		}
	}

	resolved, parseErr := model.ParseEvent(eventName)
	if parseErr != nil {
		err = fmt.Errorf("%w: %q", ErrInvalidEvent, eventName)
		return nil, err
	}

	from := process.State()
	next, ok := model.Transition(from, resolved)
	if !ok {
		err = &TransitionError{State: from, Event: resolved}
		return nil, err
	}

	process.SetState(next, clock.Now())
	if err = s.processDAO.Save(ctx, process); err != nil {
		return nil, fmt.Errorf("failed to persist process %v: %w", processID, err)
	}
	s.publish(ctx, process, from, resolved)
	return process.Clone(), nil
}

// FormDefinition resolves the form presented for the instance's current
// state: step key, configured title/fields/actions and the most recent
// submission for that step, if any. Read-only.
func (s *Service) FormDefinition(ctx context.Context, processID string) (*FormDefinition, error) {
	ctx, span := tracing.StartSpan(ctx, "engine.FormDefinition", "INTERNAL")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	process, err := s.load(ctx, processID)
	if err != nil {
		return nil, err
	}
	step, stepErr := model.StepForState(process.State())
	if stepErr != nil {
		err = fmt.Errorf("%w: %v", ErrNoStepForState, process.State())
		return nil, err
	}

	config, err := s.meta.Lookup(ctx, process.Type)
	if err != nil {
		return nil, err
	}
	if config == nil {
		err = fmt.Errorf("%w: %q", ErrInvalidProcessType, process.Type)
		return nil, err
	}
	stepConfig := config.Step(step)
	if stepConfig == nil {
		err = fmt.Errorf("%w: %q for type %q", ErrStepNotConfigured, step, process.Type)
		return nil, err
	}

	result := &FormDefinition{
		ProcessID:    process.ID,
		ProcessType:  process.Type,
		CurrentState: process.State(),
		Step:         step,
		Title:        stepConfig.Title,
		Fields:       stepConfig.Fields,
		Actions:      stepConfig.Actions,
	}
	previous, err := s.formDAO.ListByProcessAndStep(ctx, processID, step)
	if err != nil {
		return nil, err
	}
	if len(previous) > 0 {
		result.Data = previous[0].Payload
	}
	return result, nil
}

// Process returns the stored instance.
func (s *Service) Process(ctx context.Context, processID string) (*model.Process, error) {
	return s.load(ctx, processID)
}

func (s *Service) load(ctx context.Context, processID string) (*model.Process, error) {
	process, err := s.processDAO.Load(ctx, processID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) || errors.Is(err, dao.ErrInvalidID) {
			return nil, fmt.Errorf("%w: %q", ErrProcessNotFound, processID)
		}
		return nil, err
	}
	return process, nil
}

// quarantine forces an instance whose persisted state fell outside the
// definition table into ERROR.
func (s *Service) quarantine(ctx context.Context, process *model.Process) error {
	corrupt := process.State()
	process.SetState(model.StateError, clock.Now())
	if err := s.processDAO.Save(ctx, process); err != nil {
		return fmt.Errorf("failed to quarantine process %v: %w", process.ID, err)
	}
	return fmt.Errorf("%w: %q", ErrStateCorrupt, corrupt)
}

func (s *Service) publish(ctx context.Context, process *model.Process, from model.State, via model.Event) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, event.NewEvent(event.StateChange{
		ProcessID:   process.ID,
		ProcessType: process.Type,
		From:        from,
		To:          process.State(),
		Event:       via,
	}))
}

// lock serialises mutation per instance; concurrent SubmitStep calls against
// the same ID never interleave between load and save.
func (s *Service) lock(processID string) func() {
	actual, _ := s.locks.LoadOrStore(processID, &sync.Mutex{})
	mu := actual.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// New creates a process engine service.
func New(processDAO dao.Service[string, model.Process], formDAO dao.FormService, metaService *meta.Service, publisher *event.Publisher[event.StateChange]) *Service {
	return &Service{
		processDAO: processDAO,
		formDAO:    formDAO,
		meta:       metaService,
		publisher:  publisher,
	}
}
