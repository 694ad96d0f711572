package regdiff

import (
	"sync"

	"github.com/agentstation/regdiff/pkg/names"
)

// Hook function types for session events
type (
	// NameAddedHook is called for every name an apply added to the registry
	NameAddedHook func(name string)

	// AppliedHook is called after an apply wrote the registry
	AppliedHook func(result *ApplyResult)
)

// Hooks registers callbacks for session events.
type Hooks interface {
	// OnNameAdded registers a callback for names added by Apply
	OnNameAdded(fn NameAddedHook)

	// OnApplied registers a callback for completed applies
	OnApplied(fn AppliedHook)
}

// hooks manages event callbacks for registry changes
type hooks struct {
	mu          sync.RWMutex
	onNameAdded []NameAddedHook
	onApplied   []AppliedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnNameAdded registers a callback for when names are added
func (h *hooks) OnNameAdded(fn NameAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onNameAdded = append(h.onNameAdded, fn)
}

// OnApplied registers a callback for when an apply completes
func (h *hooks) OnApplied(fn AppliedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onApplied = append(h.onApplied, fn)
}

// OnNameAdded registers a callback for when names are added
func (c *client) OnNameAdded(fn NameAddedHook) {
	c.hooks.OnNameAdded(fn)
}

// OnApplied registers a callback for when an apply completes
func (c *client) OnApplied(fn AppliedHook) {
	c.hooks.OnApplied(fn)
}

// triggerApplied fires the name hooks once per distinct added name, then
// the applied hooks.
func (h *hooks) triggerApplied(added []string, result *ApplyResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, name := range names.Unique(added) {
		for _, hook := range h.onNameAdded {
			hook(name)
		}
	}
	for _, hook := range h.onApplied {
		hook(result)
	}
}
