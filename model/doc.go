// Package model contains the in-memory representation of process instances,
// form submissions, process-type configuration and the state machine
// definition used by the stepflow engine.
//
// The state machine is pure data: a fixed transition table plus lookup
// helpers. All behaviour (persistence, transition application, summary
// assembly) lives in the service sub-packages.
package model
