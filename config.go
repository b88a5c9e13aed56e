package stepflow

import "fmt"

// Config is a serialisable representation of the engine configuration. It can
// be populated from JSON, YAML, TOML, environment variables, etc. The
// zero-value is useful – all nested fields inherit their package defaults.

type Config struct {
	Meta  MetaConfig  `json:"meta" yaml:"meta"`
	Queue QueueConfig `json:"queue" yaml:"queue"`
}

// MetaConfig locates process-type configuration documents.
type MetaConfig struct {
	BaseURL string `json:"baseURL" yaml:"baseURL"`
}

// QueueConfig sizes the in-memory state-change event queue.
type QueueConfig struct {
	Buffer int `json:"buffer" yaml:"buffer"`
}

// DefaultConfig returns a Config populated with the same default values the
// constructors would otherwise apply.
func DefaultConfig() *Config {
	return &Config{
		Queue: QueueConfig{Buffer: 100},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Queue.Buffer <= 0 {
		return fmt.Errorf("queue.buffer must be > 0")
	}
	return nil
}
