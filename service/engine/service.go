package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stepline/stepline/internal/clock"
	"github.com/stepline/stepline/internal/idgen"
	"github.com/stepline/stepline/model"
	"github.com/stepline/stepline/model/types"
	"github.com/stepline/stepline/policy"
	"github.com/stepline/stepline/progress"
	"github.com/stepline/stepline/runtime/evaluator"
	"github.com/stepline/stepline/runtime/execution"
	"github.com/stepline/stepline/service/event"
	"github.com/stepline/stepline/tracing"
)

// Service executes workflows sequentially.
type Service struct {
	events  *event.Service
	backoff *policy.Policy
}

// New creates a new engine. When no event service is supplied a private one
// is created so that On/Off always have a target.
func New(options ...Option) *Service {
	s := &Service{}
	for _, option := range options {
		option(s)
	}
	if s.events == nil {
		s.events = event.New()
	}
	if s.backoff == nil {
		s.backoff = policy.Default()
	}
	return s
}

// Events returns the engine's event service.
func (s *Service) Events() *event.Service {
	return s.events
}

// Run executes the workflow against a fresh session seeded from the
// workflow's init state overlaid with initialData. It returns nil when all
// steps settle, or the first unrecovered error; remaining steps are then
// abandoned. Each run gets its own session; a workflow may be run any
// number of times.
func (s *Service) Run(ctx context.Context, workflow *model.Workflow, initialData map[string]interface{}) (err error) {
	if workflow == nil {
		return fmt.Errorf("workflow cannot be nil")
	}
	if issues := workflow.Validate(); len(issues) > 0 {
		return types.NewValidationError(fmt.Sprintf("workflow %q", workflow.Name), issues)
	}

	runID := workflow.Name + "/" + idgen.New()
	session := execution.NewSession(runID, merge(workflow.Init, initialData))

	ctx, span := tracing.StartSpan(ctx, "workflow.run "+workflow.Name)
	span.WithAttributes(map[string]string{"workflow.name": workflow.Name, "run.id": runID})
	defer func() { tracing.EndSpan(span, err) }()

	ctx, tracker := progress.WithNewTracker(ctx, runID, workflow.Name, nil)
	tracker.Update(progress.Delta{Total: len(workflow.Steps)})

	s.emit(&event.Event{Type: event.WorkflowStart, Workflow: workflow.Name})
	for _, step := range workflow.Steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = types.NewWorkflowError(workflow.Name, ctxErr)
			s.emit(&event.Event{Type: event.WorkflowFail, Workflow: workflow.Name, Err: err})
			return err
		}
		if err = s.runStep(ctx, workflow, step, session); err != nil {
			s.emit(&event.Event{Type: event.WorkflowFail, Workflow: workflow.Name, Err: err})
			return err
		}
	}
	s.emit(&event.Event{Type: event.WorkflowSuccess, Workflow: workflow.Name})
	return nil
}

// runStep drives the per-step lifecycle: condition check, timeout-bounded
// attempts with retry, completion events and error classification.
func (s *Service) runStep(ctx context.Context, workflow *model.Workflow, step *model.Step, session *execution.Session) error {
	skip, err := s.shouldSkip(ctx, step, session)
	if err != nil {
		s.emit(&event.Event{Type: event.StepFail, Workflow: workflow.Name, StepID: step.ID, Err: err})
		progress.UpdateCtx(ctx, progress.Delta{Failed: 1})
		return s.classify(workflow, step, err)
	}
	if skip {
		s.emit(&event.Event{Type: event.StepSkip, Workflow: workflow.Name, StepID: step.ID})
		progress.UpdateCtx(ctx, progress.Delta{Skipped: 1})
		return nil
	}

	s.emit(&event.Event{Type: event.StepStart, Workflow: workflow.Name, StepID: step.ID})
	progress.UpdateCtx(ctx, progress.Delta{Running: 1})
	started := clock.Now()

	stepCtx, span := tracing.StartSpan(ctx, "step.run "+step.ID)
	span.WithAttributes(map[string]string{"step.id": step.ID})
	lastErr := s.attemptLoop(stepCtx, workflow, step, session)
	tracing.EndSpan(span, lastErr)

	durationMs := int(clock.Since(started) / time.Millisecond)
	if lastErr == nil {
		s.emit(&event.Event{
			Type:       event.StepSuccess,
			Workflow:   workflow.Name,
			StepID:     step.ID,
			DurationMs: durationMs,
		})
		progress.UpdateCtx(ctx, progress.Delta{Running: -1, Completed: 1})
		return nil
	}
	s.emit(&event.Event{
		Type:       event.StepFail,
		Workflow:   workflow.Name,
		StepID:     step.ID,
		DurationMs: durationMs,
		Err:        lastErr,
	})
	progress.UpdateCtx(ctx, progress.Delta{Running: -1, Failed: 1})
	return s.classify(workflow, step, lastErr)
}

// shouldSkip evaluates the step's skip condition. A condition function takes
// precedence over a when-expression.
func (s *Service) shouldSkip(ctx context.Context, step *model.Step, session *execution.Session) (bool, error) {
	if condition := step.Condition(); condition != nil {
		ok, err := condition(ctx, session)
		if err != nil {
			return false, fmt.Errorf("condition for step %q failed: %w", step.ID, err)
		}
		return !ok, nil
	}
	if step.When != "" {
		return !evaluator.Evaluate(step.When, session.Snapshot()), nil
	}
	return false, nil
}

// attemptLoop runs up to RetryLimit+1 attempts. Timeout failures are never
// retried: a hang indicates a systemic issue rather than a transient one.
func (s *Service) attemptLoop(ctx context.Context, workflow *model.Workflow, step *model.Step, session *execution.Session) error {
	backoff := s.backoff
	if p := policy.FromContext(ctx); p != nil {
		backoff = p
	}
	var lastErr error
	for attempt := 0; attempt <= step.RetryLimit; attempt++ {
		lastErr = s.attempt(ctx, workflow.Name, step, session)
		if lastErr == nil {
			return nil
		}
		var timeout *types.TimeoutError
		if errors.As(lastErr, &timeout) {
			return lastErr
		}
		if attempt == step.RetryLimit {
			return lastErr
		}
		if err := wait(ctx, backoff.Delay(attempt)); err != nil {
			return err
		}
	}
	return lastErr
}

// attempt executes a single attempt, racing the work against the configured
// timeout. When the timer fires first the logical execution is abandoned:
// its eventual settlement is ignored, though the underlying work is only
// preempted if it honours ctx.
func (s *Service) attempt(ctx context.Context, workflowName string, step *model.Step, session *execution.Session) error {
	timeout := step.Timeout()
	if timeout <= 0 {
		return invoke(ctx, step.Work(), session)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- invoke(attemptCtx, step.Work(), session)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		return types.NewTimeoutError(workflowName, step.ID, timeout)
	}
}

// invoke calls the work function, normalising panics into errors so that
// non-error values are not lost.
func invoke(ctx context.Context, work types.Work, session *execution.Session) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch actual := r.(type) {
			case error:
				err = actual
			default:
				err = fmt.Errorf("%v", actual)
			}
		}
	}()
	return work(ctx, session)
}

// classify implements the error re-wrapping rule: already-typed step or
// timeout errors propagate unchanged, anything else is wrapped into a
// StepExecutionError carrying the step id and workflow name.
func (s *Service) classify(workflow *model.Workflow, step *model.Step, err error) error {
	var stepErr *types.StepExecutionError
	if errors.As(err, &stepErr) {
		return err
	}
	var timeoutErr *types.TimeoutError
	if errors.As(err, &timeoutErr) {
		return err
	}
	return types.NewStepExecutionError(workflow.Name, step.ID, err)
}

// wait blocks for the supplied backoff delay, aborting early when ctx is
// cancelled.
func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) emit(e *event.Event) {
	e.Timestamp = clock.Now()
	s.events.Emit(e)
}

func merge(init, overlay map[string]interface{}) map[string]interface{} {
	if len(init) == 0 {
		return overlay
	}
	merged := make(map[string]interface{}, len(init)+len(overlay))
	for k, v := range init {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}
