// Package engine orchestrates process instances: it validates inbound events
// against the state machine definition, persists state changes and
// coordinates form data storage.  The engine is stateless between calls and
// serialises mutation per instance, so independent workflows can be processed
// concurrently with no coordination.
package engine
