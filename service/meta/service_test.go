package meta

import (
	"context"
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
)

//go:embed testdata/*
var embedFS embed.FS

func TestService(t *testing.T) {
	srv := New(afs.New(), "embed:///testdata", &embedFS)
	ctx := context.Background()

	config, err := srv.Lookup(ctx, "permit")
	assert.Nil(t, err)
	if !assert.NotNil(t, config) {
		return
	}
	assert.Equal(t, "permit_process", config.BusinessKey)
	assert.Len(t, config.Steps, 4)
	assert.Equal(t, "step_one", config.Steps[0].Key)
	assert.Equal(t, "Applicant Details", config.Steps[0].Title)
	assert.NotNil(t, config.Step("submission"))
	assert.Nil(t, config.Step("step_nine"))

	// unknown type resolves to nil, not an error
	config, err = srv.Lookup(ctx, "unknown")
	assert.Nil(t, err)
	assert.Nil(t, config)
}

func TestServiceUpsert(t *testing.T) {
	srv := New(afs.New(), "embed:///testdata", &embedFS)
	ctx := context.Background()

	config, err := srv.DecodeYAML([]byte("businessKey: adhoc\nsteps:\n  - key: step_one\n"))
	assert.Nil(t, err)
	srv.Upsert("adhoc", config)

	cached, err := srv.Lookup(ctx, "adhoc")
	assert.Nil(t, err)
	assert.Equal(t, config, cached)

	srv.Refresh("adhoc")
	cached, err = srv.Lookup(ctx, "adhoc")
	assert.Nil(t, err)
	assert.Nil(t, cached)
}
