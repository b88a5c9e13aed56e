package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
)

func TestService(t *testing.T) {
	srv := New()
	ctx := context.Background()

	p := model.NewProcess("p1", "permit", time.Now())
	assert.NoError(t, srv.Save(ctx, p))

	loaded, err := srv.Load(ctx, "p1")
	assert.Nil(t, err)
	assert.Equal(t, "permit", loaded.Type)
	assert.Equal(t, model.StateProcessSelection, loaded.State())

	// loaded copies are detached from the stored instance
	loaded.SetState(model.StateStepOne, time.Now())
	stored, _ := srv.Load(ctx, "p1")
	assert.Equal(t, model.StateProcessSelection, stored.State())

	p.SetState(model.StateStepOne, time.Now())
	assert.NoError(t, srv.Save(ctx, p))
	stored, _ = srv.Load(ctx, "p1")
	assert.Equal(t, model.StateStepOne, stored.State())

	list, err := srv.List(ctx, dao.NewParameter("State", string(model.StateStepOne)))
	assert.Nil(t, err)
	assert.Len(t, list, 1)
	list, _ = srv.List(ctx, dao.NewParameter("Type", "other"))
	assert.Len(t, list, 0)

	_, err = srv.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	_, err = srv.Load(ctx, "")
	assert.ErrorIs(t, err, dao.ErrInvalidID)
	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)

	assert.NoError(t, srv.Delete(ctx, "p1"))
	assert.ErrorIs(t, srv.Delete(ctx, "p1"), dao.ErrNotFound)
}
