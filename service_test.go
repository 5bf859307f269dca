package stepline_test

import (
	"context"
	"embed"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	_ "github.com/viant/afs/embed"

	"github.com/stepline/stepline"
	"github.com/stepline/stepline/model"
	"github.com/stepline/stepline/runtime/execution"
	"github.com/stepline/stepline/service/event"
)

//go:embed testdata/*
var embedFS embed.FS

func TestService(t *testing.T) {
	os.Setenv("STEPLINE_VERSION", "v1.2.3")
	srv := stepline.New(
		stepline.WithMetaFsOptions(&embedFS),
		stepline.WithMetaBaseURL("embed:///testdata"),
	)

	var collected []string
	srv.RegisterAction("collect", func(ctx context.Context, session *execution.Session) error {
		message, _ := session.Get("message")
		collected = append(collected, message.(string))
		return nil
	})

	ctx := context.Background()
	workflow, err := srv.LoadWorkflow(ctx, "release.yaml")
	assert.Nil(t, err)
	assert.NotNil(t, workflow)
	assert.Equal(t, "release", workflow.Name)

	var kinds []event.Type
	srv.On(event.StepSuccess, func(e *event.Event) { kinds = append(kinds, e.Type) })

	err = srv.Run(ctx, workflow, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"shipping v1.2.3", "shipping v1.2.3"}, collected)
	assert.Equal(t, 3, len(kinds))
}

func TestServiceProgrammaticRun(t *testing.T) {
	srv := stepline.New()
	workflow := model.NewWorkflow("inline")
	workflow.NewStep("only", func(ctx context.Context, session *execution.Session) error {
		return session.Set("done", true)
	})
	assert.NoError(t, srv.Run(context.Background(), workflow, nil))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, stepline.DefaultConfig().Validate())

	bad := stepline.DefaultConfig()
	bad.Backoff.Strategy = "random"
	assert.Error(t, bad.Validate())
}
