package stepflow

import (
	"github.com/viant/afs/storage"
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
	"github.com/viant/stepflow/service/event"
	"github.com/viant/stepflow/service/messaging"
	"github.com/viant/stepflow/service/meta"
)

// Option customises the stepflow service.
type Option func(s *Service)

// WithProcessDAO sets the process instance store.
func WithProcessDAO(service dao.Service[string, model.Process]) Option {
	return func(s *Service) {
		s.processDAO = service
	}
}

// WithFormDAO sets the form submission store.
func WithFormDAO(service dao.FormService) Option {
	return func(s *Service) {
		s.formDAO = service
	}
}

// WithMetaService sets the configuration service.
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithMetaBaseURL sets the base URL for process-type configuration documents.
func WithMetaBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.metaBaseURL = baseURL
	}
}

// WithMetaFsOptions sets the storage options for the configuration service.
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithQueue sets the state-change event queue.
func WithQueue(queue messaging.Queue[event.Event[event.StateChange]]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithStateChangeHandler sets the handler notified on every applied
// transition; it replaces the default log listener.
func WithStateChangeHandler(handler func(*event.Event[event.StateChange])) Option {
	return func(s *Service) {
		s.stateChangeHandler = handler
	}
}

// WithConfig applies a serialisable configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}
