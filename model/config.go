package model

import "fmt"

// ProcessConfig describes one configurable process type: which steps exist,
// their order, and the form definition presented at each step. Field and
// action definitions are opaque configuration consumed, not produced, by the
// engine.
type ProcessConfig struct {
	Name        string        `json:"name,omitempty" yaml:"name,omitempty"`
	BusinessKey string        `json:"businessKey,omitempty" yaml:"businessKey,omitempty"`
	Steps       []*StepConfig `json:"steps" yaml:"steps"`
}

// StepConfig describes a single step; Steps order in ProcessConfig is the
// display order used by the summary.
type StepConfig struct {
	Key     string                   `json:"key" yaml:"key"`
	Title   string                   `json:"title,omitempty" yaml:"title,omitempty"`
	Fields  []map[string]interface{} `json:"fields,omitempty" yaml:"fields,omitempty"`
	Actions []map[string]interface{} `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// Step returns the step configuration for the supplied key.
func (c *ProcessConfig) Step(key string) *StepConfig {
	for _, step := range c.Steps {
		if step.Key == key {
			return step
		}
	}
	return nil
}

// Validate performs a best-effort structural validation of the configuration.
func (c *ProcessConfig) Validate() []error {
	var issues []error
	if len(c.Steps) == 0 {
		issues = append(issues, fmt.Errorf("steps are empty"))
		return issues
	}
	seen := map[string]bool{}
	for i, step := range c.Steps {
		if step == nil || step.Key == "" {
			issues = append(issues, fmt.Errorf("step[%d] has no key", i))
			continue
		}
		if seen[step.Key] {
			issues = append(issues, fmt.Errorf("duplicate step key %s", step.Key))
		}
		seen[step.Key] = true
	}
	return issues
}
