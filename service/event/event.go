// Package event implements the lifecycle event channel: typed events keyed
// by kind, with a per-kind listener registry. Listener failures are isolated
// and never affect workflow execution.
package event

import "time"

// Type identifies a lifecycle event kind.
type Type string

const (
	WorkflowStart   Type = "workflow:start"
	WorkflowSuccess Type = "workflow:success"
	WorkflowFail    Type = "workflow:fail"
	StepStart       Type = "step:start"
	StepSuccess     Type = "step:success"
	StepFail        Type = "step:fail"
	StepSkip        Type = "step:skip"
)

// Event is a point-in-time notification describing workflow or step
// progress. Events are transient; they are consumed only by listeners
// registered at emission time.
type Event struct {
	Type       Type      `json:"type"`
	Workflow   string    `json:"workflow"`
	StepID     string    `json:"stepId,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int       `json:"durationMs,omitempty"`
	Err        error     `json:"-"`
}
