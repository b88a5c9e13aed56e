package event

import (
	"time"

	"github.com/viant/stepflow/model"
)

// StateChange describes one applied transition of a process instance.
type StateChange struct {
	ProcessID   string      `json:"processID"`
	ProcessType string      `json:"processType"`
	From        model.State `json:"from"`
	To          model.State `json:"to"`
	Event       model.Event `json:"event"`
}

// Event wraps a payload with delivery metadata.
type Event[T any] struct {
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](data T) *Event[T] {
	return &Event[T]{
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
