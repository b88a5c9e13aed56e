package engine

import (
	"errors"
	"fmt"

	"github.com/viant/stepflow/model"
)

// Engine error taxonomy.  Sentinel variables allow callers to detect each
// condition via errors.Is; none of them is retried by the engine itself.

var (
	// ErrInvalidProcessType is returned when a start is requested for an
	// unconfigured process type.
	ErrInvalidProcessType = errors.New("engine: process type not configured")

	// ErrProcessNotFound is returned when no stored instance matches the
	// supplied ID.
	ErrProcessNotFound = errors.New("engine: process not found")

	// ErrProcessTerminated is returned when an instance already reached a
	// terminal state; no further mutation is attempted.
	ErrProcessTerminated = errors.New("engine: process already terminated")

	// ErrInvalidEvent is returned when the event string does not map onto a
	// known event. Form data persisted before resolution is not rolled back.
	ErrInvalidEvent = errors.New("engine: invalid event")

	// ErrStepNotConfigured indicates the current step is missing from the
	// process-type configuration; a configuration error, not user-recoverable.
	ErrStepNotConfigured = errors.New("engine: step not configured")

	// ErrNoStepForState indicates the current state has no form step.
	ErrNoStepForState = errors.New("engine: no step for state")

	// ErrStateCorrupt indicates a persisted state outside the definition
	// table; the instance is forced to ERROR before this is returned.
	ErrStateCorrupt = errors.New("engine: persisted state not in state machine definition")
)

// TransitionError reports a recognised event that is not legal from the
// instance's current state. The state is included so the caller can decide
// whether to retry with a different event.
type TransitionError struct {
	State model.State
	Event model.Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("engine: event %v not allowed in state %v", e.Event, e.State)
}
