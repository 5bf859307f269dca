package model

import (
	"fmt"
	"time"

	"github.com/stepline/stepline/model/types"
)

// Step represents a single named unit of work within a workflow. A step
// optionally declares a skip condition, a retry limit and a timeout. Steps
// are immutable once their workflow has been validated.
type Step struct {
	// ID uniquely identifies the step within its workflow
	ID string `json:"id" yaml:"id"`

	// Description provides a human-readable description of the step
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Action names a registered action used to resolve the work function
	// when the step is loaded declaratively
	Action string `json:"action,omitempty" yaml:"action,omitempty"`

	// When holds an optional skip-condition expression evaluated against the
	// session state before the step runs
	When string `json:"when,omitempty" yaml:"when,omitempty"`

	// RetryLimit is the number of additional attempts after a failed first
	// attempt; zero means no retry
	RetryLimit int `json:"retryLimit,omitempty" yaml:"retryLimit,omitempty"`

	// TimeoutMs bounds each attempt in milliseconds; zero means unbounded
	TimeoutMs int `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`

	work      types.Work
	condition types.Condition
}

// NewStep creates a new step with the given id and work function.
func NewStep(id string, work types.Work) *Step {
	return &Step{ID: id, work: work}
}

// WithDescription sets the step description.
func (s *Step) WithDescription(description string) *Step {
	s.Description = description
	return s
}

// WithWork sets the work function. Used by the loader to bind registered
// actions to declaratively defined steps.
func (s *Step) WithWork(work types.Work) *Step {
	s.work = work
	return s
}

// WithCondition sets the skip-condition function. It takes precedence over
// a When expression.
func (s *Step) WithCondition(condition types.Condition) *Step {
	s.condition = condition
	return s
}

// WithWhen sets the skip-condition expression.
func (s *Step) WithWhen(expr string) *Step {
	s.When = expr
	return s
}

// WithRetryLimit sets the number of additional attempts after a failure.
func (s *Step) WithRetryLimit(limit int) *Step {
	s.RetryLimit = limit
	return s
}

// WithTimeout bounds each attempt to the supplied duration.
func (s *Step) WithTimeout(timeout time.Duration) *Step {
	s.TimeoutMs = int(timeout / time.Millisecond)
	return s
}

// Work returns the step's work function.
func (s *Step) Work() types.Work { return s.work }

// Condition returns the step's skip-condition function, if any.
func (s *Step) Condition() types.Condition { return s.condition }

// Timeout returns the per-attempt bound, zero when unbounded.
func (s *Step) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// Validate verifies static properties of the step.
func (s *Step) Validate() []error {
	var issues []error
	if s.ID == "" {
		issues = append(issues, fmt.Errorf("step id cannot be empty"))
	}
	if s.work == nil {
		issues = append(issues, fmt.Errorf("step %q has no work function", s.ID))
	}
	if s.RetryLimit < 0 {
		issues = append(issues, fmt.Errorf("step %q has negative retry limit %d", s.ID, s.RetryLimit))
	}
	if s.TimeoutMs < 0 {
		issues = append(issues, fmt.Errorf("step %q has negative timeout %dms", s.ID, s.TimeoutMs))
	}
	return issues
}

// Clone creates a copy of the step.
func (s *Step) Clone() *Step {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
