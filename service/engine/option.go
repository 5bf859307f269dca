package engine

import (
	"github.com/stepline/stepline/policy"
	"github.com/stepline/stepline/service/event"
)

// Option customises the engine instance.
type Option func(s *Service)

// WithEvents sets the event service used for lifecycle notifications.
func WithEvents(events *event.Service) Option {
	return func(s *Service) { s.events = events }
}

// WithBackoff sets the default backoff policy applied between retry
// attempts when the run's context carries no policy of its own.
func WithBackoff(p *policy.Policy) Option {
	return func(s *Service) { s.backoff = p }
}
