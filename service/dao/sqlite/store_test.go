package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "stepflow.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestProcessService(t *testing.T) {
	store := openTestStore(t)
	srv := store.Processes()
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := model.NewProcess("p1", "permit", created)
	assert.NoError(t, srv.Save(ctx, p))

	loaded, err := srv.Load(ctx, "p1")
	assert.Nil(t, err)
	assert.Equal(t, model.StateProcessSelection, loaded.CurrentState)
	assert.Equal(t, "permit", loaded.Type)

	// save is an upsert on state and updatedAt
	p.SetState(model.StateStepOne, created.Add(time.Minute))
	assert.NoError(t, srv.Save(ctx, p))
	loaded, _ = srv.Load(ctx, "p1")
	assert.Equal(t, model.StateStepOne, loaded.CurrentState)

	_, err = srv.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	list, err := srv.List(ctx, dao.NewParameter("Type", "permit"))
	assert.Nil(t, err)
	assert.Len(t, list, 1)
	list, _ = srv.List(ctx, dao.NewParameter("State", string(model.StateCompleted)))
	assert.Len(t, list, 0)

	assert.NoError(t, srv.Delete(ctx, "p1"))
	assert.ErrorIs(t, srv.Delete(ctx, "p1"), dao.ErrNotFound)
}

func TestFormService(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	assert.NoError(t, store.Processes().Save(ctx, model.NewProcess("p1", "permit", time.Now())))
	srv := store.Forms()

	first := &model.Submission{ProcessID: "p1", Step: "step_one", Payload: map[string]interface{}{"name": "Alice"}}
	assert.NoError(t, srv.Save(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	second := &model.Submission{ProcessID: "p1", Step: "step_one", Payload: map[string]interface{}{"name": "Bob"}}
	assert.NoError(t, srv.Save(ctx, second))

	third := &model.Submission{ProcessID: "p1", Step: "step_two", Payload: map[string]interface{}{"city": "Rome"}}
	assert.NoError(t, srv.Save(ctx, third))

	rows, err := srv.ListByProcessAndStep(ctx, "p1", "step_one")
	assert.Nil(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, map[string]interface{}{"name": "Bob"}, rows[0].Payload)

	latest, err := srv.LatestByProcess(ctx, "p1")
	assert.Nil(t, err)
	assert.Len(t, latest, 2)
	assert.Equal(t, second.ID, latest["step_one"].ID)
	assert.Equal(t, third.ID, latest["step_two"].ID)
}
