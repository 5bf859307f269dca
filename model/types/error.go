package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/stepline/stepline/internal/clock"
)

// WorkflowError is the workflow-scoped error raised when a run fails.
type WorkflowError struct {
	Workflow  string
	Timestamp time.Time
	Err       error
}

// NewWorkflowError creates a workflow-scoped error wrapping the given cause.
func NewWorkflowError(workflow string, err error) *WorkflowError {
	return &WorkflowError{Workflow: workflow, Timestamp: clock.Now(), Err: err}
}

func (e *WorkflowError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("workflow %q failed", e.Workflow)
	}
	return fmt.Sprintf("workflow %q failed: %v", e.Workflow, e.Err)
}

// Unwrap returns the underlying cause, if any.
func (e *WorkflowError) Unwrap() error { return e.Err }

// StepExecutionError is raised when a step's work function fails for a reason
// other than a timeout, after the retry budget is exhausted.
type StepExecutionError struct {
	Workflow  string
	StepID    string
	Timestamp time.Time
	Err       error
}

// NewStepExecutionError creates a step-scoped error wrapping the given cause.
func NewStepExecutionError(workflow, stepID string, err error) *StepExecutionError {
	return &StepExecutionError{
		Workflow:  workflow,
		StepID:    stepID,
		Timestamp: clock.Now(),
		Err:       err,
	}
}

func (e *StepExecutionError) Error() string {
	return fmt.Sprintf("step %q in workflow %q failed: %v", e.StepID, e.Workflow, e.Err)
}

// Unwrap returns the underlying cause, if any.
func (e *StepExecutionError) Unwrap() error { return e.Err }

// TimeoutError is raised when a step attempt's timer expires before the work
// settles. It carries the configured timeout so that callers can distinguish
// a hang from an ordinary failure.
type TimeoutError struct {
	Workflow  string
	StepID    string
	Timestamp time.Time
	Timeout   time.Duration
}

// NewTimeoutError creates a timeout error for the given step.
func NewTimeoutError(workflow, stepID string, timeout time.Duration) *TimeoutError {
	return &TimeoutError{
		Workflow:  workflow,
		StepID:    stepID,
		Timestamp: clock.Now(),
		Timeout:   timeout,
	}
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("step %q in workflow %q timed out after %s", e.StepID, e.Workflow, e.Timeout)
}

// ValidationError aggregates construction-time issues (bad ids, negative
// retry counts, non-positive timeouts, empty workflows). It is raised
// synchronously before any execution and is never retried.
type ValidationError struct {
	Subject string
	Issues  []error
}

// NewValidationError creates a validation error for the given subject.
func NewValidationError(subject string, issues []error) *ValidationError {
	return &ValidationError{Subject: subject, Issues: issues}
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		messages = append(messages, issue.Error())
	}
	return fmt.Sprintf("invalid %s: %s", e.Subject, strings.Join(messages, "; "))
}
