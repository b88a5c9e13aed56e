package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
	"github.com/viant/stepflow/service/engine"
	"github.com/viant/stepflow/service/meta"
	"github.com/viant/stepflow/tracing"
)

// Entry is one step's latest submission, keyed by the step's display title.
type Entry struct {
	Title string
	Data  map[string]interface{}
}

// FormData is an insertion-ordered mapping of step title to the latest
// submitted payload. A plain map would lose the configuration-declared step
// order on JSON round-trips, so it marshals as an ordered object.
type FormData []Entry

// MarshalJSON renders the entries as a JSON object in declaration order.
func (f FormData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		title, err := json.Marshal(entry.Title)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(entry.Data)
		if err != nil {
			return nil, err
		}
		buf.Write(title)
		buf.WriteByte(':')
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Summary is the display-ready projection of a process: the latest submission
// per step, ordered by the configuration-declared step order.
type Summary struct {
	ProcessID    string      `json:"processId"`
	ProcessType  string      `json:"processType"`
	CurrentState model.State `json:"currentState"`
	FormData     FormData    `json:"formData"`
}

// Service assembles process summaries. Read-only: it never mutates instances
// or submissions and is safe to call any number of times.
type Service struct {
	processDAO dao.Service[string, model.Process]
	formDAO    dao.FormService
	meta       *meta.Service
}

// Summary joins the latest form data per step with the step ordering and
// titles from configuration. Steps with no submission are omitted entirely.
func (s *Service) Summary(ctx context.Context, processID string) (*Summary, error) {
	ctx, span := tracing.StartSpan(ctx, "summary.Summary", "INTERNAL")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	process, err := s.processDAO.Load(ctx, processID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) || errors.Is(err, dao.ErrInvalidID) {
			err = fmt.Errorf("%w: %q", engine.ErrProcessNotFound, processID)
		}
		return nil, err
	}

	config, err := s.meta.Lookup(ctx, process.Type)
	if err != nil {
		return nil, err
	}
	if config == nil {
		err = fmt.Errorf("%w: %q", engine.ErrInvalidProcessType, process.Type)
		return nil, err
	}

	latest, err := s.formDAO.LatestByProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	result := &Summary{
		ProcessID:    process.ID,
		ProcessType:  process.Type,
		CurrentState: process.State(),
		FormData:     FormData{},
	}
	for _, step := range config.Steps {
		submission, ok := latest[step.Key]
		if !ok {
			continue
		}
		result.FormData = append(result.FormData, Entry{
			Title: titleOf(step),
			Data:  submission.Payload,
		})
	}
	return result, nil
}

// titleOf falls back to a default derived from the step key when no title is
// configured.
func titleOf(step *model.StepConfig) string {
	if step.Title != "" {
		return step.Title
	}
	return strings.ToUpper(strings.ReplaceAll(step.Key, "_", " "))
}

// New creates a summary service.
func New(processDAO dao.Service[string, model.Process], formDAO dao.FormService, metaService *meta.Service) *Service {
	return &Service{processDAO: processDAO, formDAO: formDAO, meta: metaService}
}
