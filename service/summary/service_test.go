package summary_test

import (
	"context"
	"embed"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/stepflow/model"
	fmemory "github.com/viant/stepflow/service/dao/form/memory"
	pmemory "github.com/viant/stepflow/service/dao/process/memory"
	"github.com/viant/stepflow/service/engine"
	"github.com/viant/stepflow/service/meta"
	"github.com/viant/stepflow/service/summary"
)

//go:embed testdata/*.yaml
var embedFS embed.FS

func newTestService() (*summary.Service, *pmemory.Service, *fmemory.Service, *meta.Service) {
	processDAO := pmemory.New()
	formDAO := fmemory.New()
	metaService := meta.New(afs.New(), "embed:///testdata", &embedFS)
	return summary.New(processDAO, formDAO, metaService), processDAO, formDAO, metaService
}

func TestServiceSummary(t *testing.T) {
	srv, processDAO, formDAO, _ := newTestService()
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	process := model.NewProcess("p1", "permit", created)
	process.SetState(model.StateStepThree, created.Add(time.Minute))
	assert.NoError(t, processDAO.Save(ctx, process))

	// submitted out of order; the summary follows configuration step order
	assert.NoError(t, formDAO.Save(ctx, &model.Submission{ProcessID: "p1", Step: "step_two",
		Payload: map[string]interface{}{"city": "Rome", "street": "Via Roma 1"}, CreatedAt: created}))
	assert.NoError(t, formDAO.Save(ctx, &model.Submission{ProcessID: "p1", Step: "step_one",
		Payload: map[string]interface{}{"name": "Alice"}, CreatedAt: created}))
	// resubmission; only the latest row per step is projected
	assert.NoError(t, formDAO.Save(ctx, &model.Submission{ProcessID: "p1", Step: "step_one",
		Payload: map[string]interface{}{"name": "Bob"}, CreatedAt: created}))

	result, err := srv.Summary(ctx, "p1")
	assert.Nil(t, err)
	assert.Equal(t, "p1", result.ProcessID)
	assert.Equal(t, "permit", result.ProcessType)
	assert.Equal(t, model.StateStepThree, result.CurrentState)
	// step_three and submission have no rows and are omitted entirely
	assert.Len(t, result.FormData, 2)
	assert.Equal(t, "Applicant Details", result.FormData[0].Title)
	assert.Equal(t, map[string]interface{}{"name": "Bob"}, result.FormData[0].Data)
	assert.Equal(t, "Site Address", result.FormData[1].Title)

	g := goldie.New(t)
	g.AssertJson(t, "summary", result)
}

func TestServiceSummaryTitleFallback(t *testing.T) {
	srv, processDAO, formDAO, metaService := newTestService()
	ctx := context.Background()

	config, err := metaService.DecodeYAML([]byte("businessKey: adhoc\nsteps:\n  - key: step_one\n"))
	assert.Nil(t, err)
	metaService.Upsert("adhoc", config)

	assert.NoError(t, processDAO.Save(ctx, model.NewProcess("p2", "adhoc", time.Now())))
	assert.NoError(t, formDAO.Save(ctx, &model.Submission{ProcessID: "p2", Step: "step_one",
		Payload: map[string]interface{}{"name": "Alice"}}))

	result, err := srv.Summary(ctx, "p2")
	assert.Nil(t, err)
	assert.Len(t, result.FormData, 1)
	assert.Equal(t, "STEP ONE", result.FormData[0].Title)
}

func TestServiceSummaryErrors(t *testing.T) {
	srv, processDAO, _, _ := newTestService()
	ctx := context.Background()

	_, err := srv.Summary(ctx, "missing")
	assert.ErrorIs(t, err, engine.ErrProcessNotFound)

	assert.NoError(t, processDAO.Save(ctx, model.NewProcess("p3", "unknown", time.Now())))
	_, err = srv.Summary(ctx, "p3")
	assert.ErrorIs(t, err, engine.ErrInvalidProcessType)
}
