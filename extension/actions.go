// Package extension holds the action registry used to bind declaratively
// loaded steps to executable work functions.
package extension

import (
	"fmt"
	"sort"
	"sync"

	"github.com/stepline/stepline/model/types"
)

// Actions is a registry of named work functions.
type Actions struct {
	mu       sync.RWMutex
	registry map[string]types.Work
}

// NewActions creates a new action registry.
func NewActions() *Actions {
	return &Actions{registry: make(map[string]types.Work)}
}

// Register adds a work function under the given name, replacing any
// previous registration.
func (a *Actions) Register(name string, work types.Work) {
	if name == "" || work == nil {
		return
	}
	a.mu.Lock()
	a.registry[name] = work
	a.mu.Unlock()
}

// Lookup returns the work function registered under the given name.
func (a *Actions) Lookup(name string) (types.Work, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	work, ok := a.registry[name]
	if !ok {
		return nil, fmt.Errorf("action %q not found", name)
	}
	return work, nil
}

// Names returns the registered action names, sorted.
func (a *Actions) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.registry))
	for name := range a.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
