// Package loader reads declarative workflow definitions (YAML) from any
// storage supported by the afs abstraction (file, embed, mem, ...), binding
// each step's work function from the action registry.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"

	"github.com/stepline/stepline/extension"
	"github.com/stepline/stepline/model"
	"github.com/stepline/stepline/model/types"
)

// Service loads workflow definitions.
type Service struct {
	fs        afs.Service
	actions   *extension.Actions
	baseURL   string
	fsOptions []storage.Option
}

// Option customises the loader.
type Option func(s *Service)

// WithBaseURL sets the base URL that relative workflow locations are
// resolved against.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) { s.baseURL = baseURL }
}

// WithFsOptions sets storage options passed on every download, for example
// an embedded file system.
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) { s.fsOptions = options }
}

// New creates a new loader bound to the supplied action registry.
func New(actions *extension.Actions, options ...Option) *Service {
	s := &Service{fs: afs.New(), actions: actions}
	for _, option := range options {
		option(s)
	}
	return s
}

// definition mirrors the YAML document shape.
type definition struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Version     string                 `yaml:"version"`
	Init        map[string]interface{} `yaml:"init"`
	Steps       []stepDefinition       `yaml:"steps"`
}

type stepDefinition struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Action      string `yaml:"action"`
	When        string `yaml:"when"`
	RetryLimit  int    `yaml:"retryLimit"`
	TimeoutMs   int    `yaml:"timeoutMs"`
}

// Load loads a workflow definition from the given location. A missing
// extension defaults to ".yaml"; relative locations resolve against the
// configured base URL.
func (s *Service) Load(ctx context.Context, location string) (*model.Workflow, error) {
	if filepath.Ext(location) == "" {
		location += ".yaml"
	}
	URL := location
	if s.baseURL != "" && url.IsRelative(location) {
		URL = url.Join(s.baseURL, location)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow from %s: %w", URL, err)
	}
	workflow, err := s.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workflow from %s: %w", URL, err)
	}
	if workflow.Name == "" {
		workflow.Name = nameFromURL(URL)
	}
	workflow.Source = &model.Source{URL: URL}
	if issues := workflow.Validate(); len(issues) > 0 {
		return nil, types.NewValidationError(fmt.Sprintf("workflow %q", workflow.Name), issues)
	}
	return workflow, nil
}

// Decode decodes a workflow definition from YAML and binds step work
// functions from the action registry. Steps without an action default to
// "nop".
func (s *Service) Decode(data []byte) (*model.Workflow, error) {
	def := &definition{}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, err
	}
	workflow := model.NewWorkflow(def.Name).
		WithDescription(def.Description).
		WithVersion(def.Version)
	for name, value := range def.Init {
		if text, ok := value.(string); ok {
			value = expandEnvExpr(text)
		}
		workflow.WithInit(name, value)
	}
	for _, stepDef := range def.Steps {
		action := stepDef.Action
		if action == "" {
			action = "nop"
		}
		work, err := s.actions.Lookup(action)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", stepDef.ID, err)
		}
		step := model.NewStep(stepDef.ID, work).
			WithDescription(stepDef.Description).
			WithWhen(stepDef.When).
			WithRetryLimit(stepDef.RetryLimit)
		step.Action = action
		step.TimeoutMs = stepDef.TimeoutMs
		workflow.AddStep(step)
	}
	return workflow, nil
}

// nameFromURL extracts the workflow name from its location (the file name
// without extension).
func nameFromURL(URL string) string {
	base := filepath.Base(URL)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
