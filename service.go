package stepline

import (
	"context"

	"github.com/viant/afs/storage"

	"github.com/stepline/stepline/extension"
	"github.com/stepline/stepline/model"
	"github.com/stepline/stepline/model/types"
	"github.com/stepline/stepline/policy"
	"github.com/stepline/stepline/service/action/nop"
	"github.com/stepline/stepline/service/action/printer"
	"github.com/stepline/stepline/service/engine"
	"github.com/stepline/stepline/service/event"
	"github.com/stepline/stepline/service/loader"
)

// Service is the embeddable façade combining the execution engine, the
// lifecycle event channel, the action registry and the declarative loader.
type Service struct {
	config        *Config
	engine        *engine.Service
	events        *event.Service
	actions       *extension.Actions
	loader        *loader.Service
	backoff       *policy.Policy
	metaBaseURL   string
	metaFsOptions []storage.Option
}

// New creates a new Service.
func New(options ...Option) *Service {
	s := &Service{}
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	return s
}

func (s *Service) ensureBaseSetup() {
	if s.events == nil {
		s.events = event.New()
	}
	if s.actions == nil {
		s.actions = extension.NewActions()
	}
	s.actions.Register(nop.Name, nop.New())
	s.actions.Register(printer.Name, printer.New())
	if s.backoff == nil && s.config != nil {
		s.backoff = policy.FromConfig(s.config.Backoff)
	}
	s.engine = engine.New(
		engine.WithEvents(s.events),
		engine.WithBackoff(s.backoff),
	)
	s.loader = loader.New(s.actions,
		loader.WithBaseURL(s.metaBaseURL),
		loader.WithFsOptions(s.metaFsOptions...),
	)
}

// Run executes the workflow with an optional initial session state. It
// either settles with nil or fails with exactly one typed error.
func (s *Service) Run(ctx context.Context, workflow *model.Workflow, initialData map[string]interface{}) error {
	return s.engine.Run(ctx, workflow, initialData)
}

// LoadWorkflow loads a declarative workflow definition from the given
// location, binding step bodies from the action registry.
func (s *Service) LoadWorkflow(ctx context.Context, location string) (*model.Workflow, error) {
	return s.loader.Load(ctx, location)
}

// On registers a lifecycle event listener.
func (s *Service) On(kind event.Type, listener event.Listener) {
	s.events.On(kind, listener)
}

// Off removes a previously registered lifecycle event listener.
func (s *Service) Off(kind event.Type, listener event.Listener) {
	s.events.Off(kind, listener)
}

// Actions returns the action registry so hosts can register custom actions.
func (s *Service) Actions() *extension.Actions {
	return s.actions
}

// RegisterAction registers a named work function for declarative workflows.
func (s *Service) RegisterAction(name string, work types.Work) {
	s.actions.Register(name, work)
}
