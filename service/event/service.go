package event

import (
	"log"
	"reflect"
	"sync"
)

// Listener consumes lifecycle events. Listeners must not block for long;
// emission is awaited fully before the engine proceeds.
type Listener func(event *Event)

// Service registers listeners per event kind and broadcasts typed events.
type Service struct {
	mu        sync.RWMutex
	listeners map[Type][]Listener
}

// New creates a new event service.
func New() *Service {
	return &Service{listeners: make(map[Type][]Listener)}
}

// On registers a listener for the given event kind. Registering the same
// listener twice for one kind is a no-op.
func (s *Service) On(kind Type, listener Listener) {
	if listener == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := identity(listener)
	for _, existing := range s.listeners[kind] {
		if identity(existing) == id {
			return
		}
	}
	s.listeners[kind] = append(s.listeners[kind], listener)
}

// Off removes a previously registered listener for the given event kind.
func (s *Service) Off(kind Type, listener Listener) {
	if listener == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := identity(listener)
	registered := s.listeners[kind]
	for i, existing := range registered {
		if identity(existing) == id {
			s.listeners[kind] = append(registered[:i:i], registered[i+1:]...)
			return
		}
	}
}

// Emit invokes every listener currently registered for the event's kind.
// Dispatch is synchronous: the call returns only once all listeners have
// settled, so lifecycle ordering is preserved. A panicking listener is
// recovered and logged; it never affects the workflow outcome.
func (s *Service) Emit(event *Event) {
	if event == nil {
		return
	}
	s.mu.RLock()
	registered := append([]Listener(nil), s.listeners[event.Type]...)
	s.mu.RUnlock()

	for _, listener := range registered {
		s.dispatch(listener, event)
	}
}

func (s *Service) dispatch(listener Listener, event *Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event listener for %s failed: %v", event.Type, r)
		}
	}()
	listener(event)
}

// identity distinguishes listener functions for idempotent registration and
// removal.
func identity(listener Listener) uintptr {
	return reflect.ValueOf(listener).Pointer()
}
