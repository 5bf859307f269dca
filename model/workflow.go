package model

import (
	"fmt"

	"github.com/stepline/stepline/model/types"
)

// Source provides information about the origin of a workflow definition.
type Source struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Workflow represents an ordered, immutable sequence of steps sharing one
// execution context, identified by name.
type Workflow struct {
	// Source provides information about the origin of the workflow
	Source *Source `json:"source,omitempty" yaml:"source,omitempty"`

	// Name is the unique identifier for the workflow
	Name string `json:"name" yaml:"name"`

	// Description provides a human-readable description of the workflow
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Version specifies the workflow version
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Init holds initial session state applied at the beginning of every run
	Init map[string]interface{} `json:"init,omitempty" yaml:"init,omitempty"`

	// Steps defines the execution sequence; steps run strictly in order
	Steps []*Step `json:"steps" yaml:"steps"`
}

// NewWorkflow creates a new workflow with the given name.
func NewWorkflow(name string) *Workflow {
	return &Workflow{Name: name}
}

// WithDescription sets the description of the workflow.
func (w *Workflow) WithDescription(description string) *Workflow {
	w.Description = description
	return w
}

// WithVersion sets the version of the workflow.
func (w *Workflow) WithVersion(version string) *Workflow {
	w.Version = version
	return w
}

// WithInit adds an initial state entry applied at the start of every run.
func (w *Workflow) WithInit(name string, value interface{}) *Workflow {
	if w.Init == nil {
		w.Init = make(map[string]interface{})
	}
	w.Init[name] = value
	return w
}

// AddStep appends a step to the workflow.
func (w *Workflow) AddStep(step *Step) *Workflow {
	w.Steps = append(w.Steps, step)
	return w
}

// NewStep creates a new step with the given id and work function, appends it
// to the workflow and returns it for further configuration.
func (w *Workflow) NewStep(id string, work types.Work) *Step {
	step := NewStep(id, work)
	w.Steps = append(w.Steps, step)
	return step
}

// LookupStep returns the step with the given id, or nil.
func (w *Workflow) LookupStep(id string) *Step {
	for _, step := range w.Steps {
		if step.ID == id {
			return step
		}
	}
	return nil
}

// Validate performs structural validation of the workflow. The returned
// slice is empty when the workflow is sound; otherwise it contains
// human-readable error descriptions. The function does not execute any step
// or condition - it only verifies static properties.
func (w *Workflow) Validate() []error {
	var issues []error
	if w.Name == "" {
		issues = append(issues, fmt.Errorf("workflow name cannot be empty"))
	}
	if len(w.Steps) == 0 {
		issues = append(issues, fmt.Errorf("workflow %q has no steps", w.Name))
	}
	seen := map[string]bool{}
	for _, step := range w.Steps {
		issues = append(issues, step.Validate()...)
		if step.ID == "" {
			continue
		}
		if seen[step.ID] {
			issues = append(issues, fmt.Errorf("duplicate step id %q", step.ID))
		}
		seen[step.ID] = true
	}
	return issues
}

// Clone creates a deep copy of the workflow.
func (w *Workflow) Clone() *Workflow {
	if w == nil {
		return nil
	}
	clone := &Workflow{
		Name:        w.Name,
		Description: w.Description,
		Version:     w.Version,
	}
	if w.Source != nil {
		source := *w.Source
		clone.Source = &source
	}
	if w.Init != nil {
		clone.Init = make(map[string]interface{}, len(w.Init))
		for k, v := range w.Init {
			clone.Init[k] = v
		}
	}
	if w.Steps != nil {
		clone.Steps = make([]*Step, len(w.Steps))
		for i, step := range w.Steps {
			clone.Steps[i] = step.Clone()
		}
	}
	return clone
}
