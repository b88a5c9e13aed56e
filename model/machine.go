package model

import "fmt"

// transitionKey identifies one edge of the state machine.
type transitionKey struct {
	From  State
	Event Event
}

// transitions is the complete edge set. Absence of a (state, event) pair means
// the transition is illegal; lookup never mutates shared state.
var transitions = map[transitionKey]State{
	{StateProcessSelection, EventProcessSelected}: StateStepOne,

	{StateStepOne, EventStepOneSubmit}:     StateStepTwo,
	{StateStepTwo, EventStepTwoSubmit}:     StateStepThree,
	{StateStepThree, EventStepThreeSubmit}: StateSubmission,
	{StateSubmission, EventFinalSubmit}:    StateCompleted,

	{StateStepTwo, EventBack}:    StateStepOne,
	{StateStepThree, EventBack}:  StateStepTwo,
	{StateSubmission, EventBack}: StateStepThree,

	{StateStepOne, EventReset}:    StateProcessSelection,
	{StateStepTwo, EventReset}:    StateProcessSelection,
	{StateStepThree, EventReset}:  StateProcessSelection,
	{StateSubmission, EventReset}: StateProcessSelection,
}

// Transition resolves the target state for the supplied (state, event) pair.
// The second return value reports whether the edge is defined.
func Transition(from State, event Event) (State, bool) {
	to, ok := transitions[transitionKey{From: from, Event: event}]
	return to, ok
}

// stepByState maps a workflow state onto the configuration step key presented
// to the user while the instance rests in that state.
var stepByState = map[State]string{
	StateProcessSelection: "selection",
	StateStepOne:          "step_one",
	StateStepTwo:          "step_two",
	StateStepThree:        "step_three",
	StateSubmission:       "submission",
}

// StepForState returns the configuration step key for a state. Terminal
// states have no step.
func StepForState(state State) (string, error) {
	step, ok := stepByState[state]
	if !ok {
		return "", fmt.Errorf("no step for state %v", state)
	}
	return step, nil
}
