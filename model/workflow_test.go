package model

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stepline/stepline/runtime/execution"
)

func noopWork(ctx context.Context, session *execution.Session) error { return nil }

func TestWorkflowBuilders(t *testing.T) {
	workflow := NewWorkflow("deploy").
		WithDescription("deploys the service").
		WithVersion("1.0.0").
		WithInit("target", "staging")

	workflow.NewStep("prepare", noopWork).
		WithRetryLimit(2).
		WithTimeout(500 * time.Millisecond)
	workflow.NewStep("apply", noopWork).
		WithWhen("target == staging")

	assert.Empty(t, workflow.Validate())
	assert.Equal(t, 2, len(workflow.Steps))
	assert.Equal(t, 500, workflow.Steps[0].TimeoutMs)
	assert.Equal(t, 500*time.Millisecond, workflow.Steps[0].Timeout())
	assert.NotNil(t, workflow.LookupStep("apply"))
	assert.Nil(t, workflow.LookupStep("missing"))
}

func TestWorkflowValidate(t *testing.T) {
	testCases := []struct {
		description string
		workflow    *Workflow
		issues      int
	}{
		{
			description: "valid workflow",
			workflow:    NewWorkflow("ok").AddStep(NewStep("one", noopWork)),
			issues:      0,
		},
		{
			description: "empty name",
			workflow:    NewWorkflow("").AddStep(NewStep("one", noopWork)),
			issues:      1,
		},
		{
			description: "no steps",
			workflow:    NewWorkflow("empty"),
			issues:      1,
		},
		{
			description: "duplicate step ids",
			workflow: NewWorkflow("dup").
				AddStep(NewStep("one", noopWork)).
				AddStep(NewStep("one", noopWork)),
			issues: 1,
		},
		{
			description: "missing work function",
			workflow:    NewWorkflow("nowork").AddStep(NewStep("one", nil)),
			issues:      1,
		},
		{
			description: "negative retry limit",
			workflow: NewWorkflow("retry").
				AddStep(NewStep("one", noopWork).WithRetryLimit(-1)),
			issues: 1,
		},
		{
			description: "negative timeout",
			workflow: NewWorkflow("timeout").
				AddStep(NewStep("one", noopWork).WithTimeout(-time.Second)),
			issues: 1,
		},
	}
	for _, testCase := range testCases {
		issues := testCase.workflow.Validate()
		assert.Equal(t, testCase.issues, len(issues), testCase.description)
	}
}

func TestWorkflowClone(t *testing.T) {
	workflow := NewWorkflow("origin").WithInit("key", "value")
	workflow.NewStep("one", noopWork).WithRetryLimit(1)

	clone := workflow.Clone()
	clone.Init["key"] = "changed"
	clone.Steps[0].RetryLimit = 9

	assert.Equal(t, "value", workflow.Init["key"])
	assert.Equal(t, 1, workflow.Steps[0].RetryLimit)
	assert.NotNil(t, clone.Steps[0].Work())
}
