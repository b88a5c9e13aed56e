package model

import "fmt"

// State identifies the workflow position of a process instance. The set is
// closed; every value a store may return is listed here and the engine treats
// anything else as data corruption.
type State string

const (
	StateProcessSelection State = "PROCESS_SELECTION"
	StateStepOne          State = "STEP_ONE"
	StateStepTwo          State = "STEP_TWO"
	StateStepThree        State = "STEP_THREE"
	StateSubmission       State = "SUBMISSION"
	StateCompleted        State = "COMPLETED"
	StateError            State = "ERROR"
)

// Event triggers a state transition.
type Event string

const (
	EventProcessSelected Event = "PROCESS_SELECTED"
	EventStepOneSubmit   Event = "STEP_ONE_SUBMIT"
	EventStepTwoSubmit   Event = "STEP_TWO_SUBMIT"
	EventStepThreeSubmit Event = "STEP_THREE_SUBMIT"
	EventFinalSubmit     Event = "FINAL_SUBMIT"
	EventBack            Event = "BACK"
	EventReset           Event = "RESET"
)

// States lists all defined states.
func States() []State {
	return []State{
		StateProcessSelection,
		StateStepOne,
		StateStepTwo,
		StateStepThree,
		StateSubmission,
		StateCompleted,
		StateError,
	}
}

// Events lists all defined events.
func Events() []Event {
	return []Event{
		EventProcessSelected,
		EventStepOneSubmit,
		EventStepTwoSubmit,
		EventStepThreeSubmit,
		EventFinalSubmit,
		EventBack,
		EventReset,
	}
}

// Terminal reports whether no transition leaves the state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateError
}

// Known reports whether the state belongs to the defined set.
func (s State) Known() bool {
	switch s {
	case StateProcessSelection, StateStepOne, StateStepTwo, StateStepThree,
		StateSubmission, StateCompleted, StateError:
		return true
	}
	return false
}

// ParseEvent maps an inbound event name onto the closed Event set.
func ParseEvent(name string) (Event, error) {
	event := Event(name)
	switch event {
	case EventProcessSelected, EventStepOneSubmit, EventStepTwoSubmit,
		EventStepThreeSubmit, EventFinalSubmit, EventBack, EventReset:
		return event, nil
	}
	return "", fmt.Errorf("unknown event %q", name)
}
