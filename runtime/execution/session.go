// Package execution holds the per-run mutable state shared by all steps of a
// single workflow run.
package execution

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// StateListener is invoked every time Session.Set overwrites an existing key
// or inserts a new one.
type StateListener func(s *Session, key string, oldVal, newVal interface{})

// Session represents the execution context of a single workflow run: a
// mutable key/value store plus a read-only snapshot of the process
// environment taken at construction time. A session is exclusively owned by
// one in-flight run; only the step currently executing mutates it.
type Session struct {
	ID        string
	data      map[string]interface{}
	env       map[string]string
	mu        sync.RWMutex
	listeners []StateListener
}

// NewSession creates a fresh session seeded with the optional initial state.
// The environment snapshot is taken once, at construction.
func NewSession(id string, init map[string]interface{}) *Session {
	data := make(map[string]interface{}, len(init))
	for k, v := range init {
		data[k] = v
	}
	env := make(map[string]string)
	for _, entry := range os.Environ() {
		if idx := strings.Index(entry, "="); idx > 0 {
			env[entry[:idx]] = entry[idx+1:]
		}
	}
	return &Session{ID: id, data: data, env: env}
}

// RegisterListeners attaches callbacks invoked after every Set. Listeners
// run synchronously and must not call back into the session.
func (s *Session) RegisterListeners(fn ...StateListener) {
	if len(fn) == 0 {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn...)
	s.mu.Unlock()
}

// Set adds or updates a value in the session. Empty keys are rejected.
func (s *Session) Set(key string, value interface{}) error {
	if key == "" {
		return fmt.Errorf("session key cannot be empty")
	}
	s.mu.Lock()
	old := s.data[key]
	s.data[key] = value
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(s, key, old, value)
	}
	return nil
}

// Get retrieves a value from the session. The second return value reports
// whether the key was present.
func (s *Session) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok
}

// Has reports whether the key is present.
func (s *Session) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok
}

// Delete removes a key from the session.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

// Clear removes all keys from the session. The environment snapshot is not
// affected.
func (s *Session) Clear() {
	s.mu.Lock()
	s.data = make(map[string]interface{})
	s.mu.Unlock()
}

// Env returns the value of an environment variable captured at session
// construction.
func (s *Session) Env(name string) (string, bool) {
	value, ok := s.env[name]
	return value, ok
}

// Snapshot returns a copy of the current state suitable for read-only
// inspection, for example by condition-expression evaluation.
func (s *Session) Snapshot() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make(map[string]interface{}, len(s.data))
	for k, v := range s.data {
		ret[k] = v
	}
	return ret
}

// Clone returns an independent copy of the session sharing no mutable
// storage with the original. Values are copied by reference; for controlled
// forking of plain data this is sufficient.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data := make(map[string]interface{}, len(s.data))
	for k, v := range s.data {
		data[k] = v
	}
	env := make(map[string]string, len(s.env))
	for k, v := range s.env {
		env[k] = v
	}
	return &Session{ID: s.ID, data: data, env: env}
}
