package handler

import (
	"context"
	"sort"
	"sync"

	"skilld/internal/skill"
	"skilld/pkg/logging"
)

// Handler is the contract every concrete capability implementation
// satisfies. params is a flat map of already-parsed flags; the handler owns
// its own field validation and all side effects. The passed context is
// cancelled when the dispatcher gives up on the call, so long-running
// handlers should honor it.
type Handler interface {
	Execute(ctx context.Context, params map[string]string, call *skill.CallContext) (*skill.Result, error)
}

// Func adapts a plain function to the Handler interface.
type Func func(ctx context.Context, params map[string]string, call *skill.CallContext) (*skill.Result, error)

func (f Func) Execute(ctx context.Context, params map[string]string, call *skill.CallContext) (*skill.Result, error) {
	return f(ctx, params, call)
}

// Table is the host symbol table mapping handler identifiers to
// implementations. Identifiers are registered explicitly at boot; the
// parser consults the table to decide whether a definition is
// dispatchable. No reflection is involved.
type Table struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewTable creates an empty handler table.
func NewTable() *Table {
	return &Table{handlers: make(map[string]Handler)}
}

// Register adds a handler under the given identifier, replacing any
// previous registration for the same identifier.
func (t *Table) Register(identifier string, h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.handlers[identifier]; exists {
		logging.Warn("HandlerTable", "Replacing existing handler registration: %s", identifier)
	}
	t.handlers[identifier] = h
}

// Resolve returns the handler registered under identifier.
func (t *Table) Resolve(identifier string) (Handler, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.handlers[identifier]
	return h, ok
}

// Known implements skill.Resolver.
func (t *Table) Known(identifier string) bool {
	_, ok := t.Resolve(identifier)
	return ok
}

// Identifiers returns all registered identifiers, sorted.
func (t *Table) Identifiers() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.handlers))
	for id := range t.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
