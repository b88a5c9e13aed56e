package stepflow_test

import (
	"context"
	"embed"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	_ "github.com/viant/afs/embed"
	"github.com/viant/stepflow"
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/event"
)

//go:embed testdata/*
var embedFS embed.FS

func TestService(t *testing.T) {
	var mux sync.Mutex
	var changes []event.StateChange
	srv := stepflow.New(
		stepflow.WithMetaFsOptions(&embedFS),
		stepflow.WithMetaBaseURL("embed:///testdata"),
		stepflow.WithStateChangeHandler(func(e *event.Event[event.StateChange]) {
			mux.Lock()
			changes = append(changes, e.Data)
			mux.Unlock()
		}),
	)
	defer srv.Close()
	ctx := context.Background()

	process, err := srv.Start(ctx, "permit")
	assert.Nil(t, err)
	assert.Equal(t, model.StateStepOne, process.State())

	process, err = srv.Submit(ctx, process.ID, "step_one", "STEP_ONE_SUBMIT", map[string]interface{}{"name": "Alice"})
	assert.Nil(t, err)
	assert.Equal(t, model.StateStepTwo, process.State())

	// step back and revisit; earlier data is presented again
	process, err = srv.Submit(ctx, process.ID, "step_two", "BACK", nil)
	assert.Nil(t, err)
	assert.Equal(t, model.StateStepOne, process.State())
	form, err := srv.Form(ctx, process.ID)
	assert.Nil(t, err)
	assert.Equal(t, "step_one", form.Step)
	assert.Equal(t, map[string]interface{}{"name": "Alice"}, form.Data)

	process, err = srv.Submit(ctx, process.ID, "step_one", "STEP_ONE_SUBMIT", map[string]interface{}{"name": "Alice Smith"})
	assert.Nil(t, err)
	process, err = srv.Submit(ctx, process.ID, "step_two", "STEP_TWO_SUBMIT", map[string]interface{}{"city": "Rome"})
	assert.Nil(t, err)
	process, err = srv.Submit(ctx, process.ID, "step_three", "STEP_THREE_SUBMIT", map[string]interface{}{"structure": "garage"})
	assert.Nil(t, err)
	process, err = srv.Submit(ctx, process.ID, "submission", "FINAL_SUBMIT", map[string]interface{}{"confirmed": true})
	assert.Nil(t, err)
	assert.Equal(t, model.StateCompleted, process.State())

	result, err := srv.Summary(ctx, process.ID)
	assert.Nil(t, err)
	assert.Equal(t, model.StateCompleted, result.CurrentState)
	assert.Len(t, result.FormData, 4)
	assert.Equal(t, "Applicant Details", result.FormData[0].Title)
	assert.Equal(t, map[string]interface{}{"name": "Alice Smith"}, result.FormData[0].Data)
	assert.Equal(t, "Review & Submit", result.FormData[3].Title)

	// state changes are delivered asynchronously
	deadline := time.Now().Add(time.Second)
	for {
		mux.Lock()
		count := len(changes)
		mux.Unlock()
		if count >= 7 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	mux.Lock()
	defer mux.Unlock()
	if assert.GreaterOrEqual(t, len(changes), 7) {
		assert.Equal(t, model.StateProcessSelection, changes[0].From)
		assert.Equal(t, model.StateStepOne, changes[0].To)
		last := changes[len(changes)-1]
		assert.Equal(t, model.StateCompleted, last.To)
		assert.Equal(t, model.EventFinalSubmit, last.Event)
	}
}
