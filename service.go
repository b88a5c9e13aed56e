package stepflow

import (
	"context"
	"log"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
	fmemory "github.com/viant/stepflow/service/dao/form/memory"
	pmemory "github.com/viant/stepflow/service/dao/process/memory"
	"github.com/viant/stepflow/service/engine"
	"github.com/viant/stepflow/service/event"
	"github.com/viant/stepflow/service/messaging"
	mmemory "github.com/viant/stepflow/service/messaging/memory"
	"github.com/viant/stepflow/service/meta"
	"github.com/viant/stepflow/service/summary"
)

// Service is the façade over the process engine and summary assembler. The
// zero configuration uses in-memory stores; production embeddings supply
// durable DAO implementations via options.
type Service struct {
	engine             *engine.Service
	summary            *summary.Service
	metaService        *meta.Service
	processDAO         dao.Service[string, model.Process]
	formDAO            dao.FormService
	queue              messaging.Queue[event.Event[event.StateChange]]
	publisher          *event.Publisher[event.StateChange]
	listener           *event.Listener[event.StateChange]
	stateChangeHandler func(*event.Event[event.StateChange])
	config             *Config
	metaBaseURL        string
	metaFsOptions      []storage.Option
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.publisher = event.NewPublisher(s.queue)
	s.engine = engine.New(s.processDAO, s.formDAO, s.metaService, s.publisher)
	s.summary = summary.New(s.processDAO, s.formDAO, s.metaService)

	handler := s.stateChangeHandler
	if handler == nil {
		handler = logStateChange
	}
	s.listener = event.NewListener(s.publisher, handler)
	s.listener.Start()
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.metaBaseURL == "" {
		s.metaBaseURL = s.config.Meta.BaseURL
	}
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	}
	if s.processDAO == nil {
		s.processDAO = pmemory.New()
	}
	if s.formDAO == nil {
		s.formDAO = fmemory.New()
	}
	if s.queue == nil {
		queueConfig := mmemory.DefaultConfig()
		queueConfig.QueueBuffer = s.config.Queue.Buffer
		s.queue = mmemory.NewQueue[event.Event[event.StateChange]](queueConfig)
	}
}

// Engine returns the process engine.
func (s *Service) Engine() *engine.Service {
	return s.engine
}

// Summarizer returns the summary assembler.
func (s *Service) Summarizer() *summary.Service {
	return s.summary
}

// Meta returns the configuration service.
func (s *Service) Meta() *meta.Service {
	return s.metaService
}

// Start starts a new process of the supplied type.
func (s *Service) Start(ctx context.Context, processType string) (*model.Process, error) {
	return s.engine.StartProcess(ctx, processType)
}

// Submit records form data for a step and applies the event's transition.
func (s *Service) Submit(ctx context.Context, processID, step, event string, formData map[string]interface{}) (*model.Process, error) {
	return s.engine.SubmitStep(ctx, processID, step, event, formData)
}

// Form returns the form definition for the instance's current step.
func (s *Service) Form(ctx context.Context, processID string) (*engine.FormDefinition, error) {
	return s.engine.FormDefinition(ctx, processID)
}

// Summary returns the ordered latest-per-step projection of an instance.
func (s *Service) Summary(ctx context.Context, processID string) (*summary.Summary, error) {
	return s.summary.Summary(ctx, processID)
}

// Close stops the state-change listener.
func (s *Service) Close() {
	if s.listener != nil {
		s.listener.Stop()
	}
}

func logStateChange(e *event.Event[event.StateChange]) {
	change := e.Data
	log.Printf("process %s state changed from %v to %v on %v", change.ProcessID, change.From, change.To, change.Event)
}

// New creates a stepflow service.
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}
