package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/ports"
)

// Registry routes the action requests emitted by the engine to the handlers
// registered for their type. It is itself an ActionDispatcher.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]ports.ActionDispatcher
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string][]ports.ActionDispatcher),
	}
}

// Register adds a handler for an action type. Handlers of the same type run
// in registration order.
func (r *Registry) Register(actionType string, d ports.ActionDispatcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[actionType] = append(r.handlers[actionType], d)
}

// RegisterFunc is Register for plain functions.
func (r *Registry) RegisterFunc(actionType string, fn func(ctx context.Context, req domain.ActionRequest) error) {
	r.Register(actionType, ports.DispatcherFunc(fn))
}

// Types returns the action types with at least one handler, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Dispatch runs every handler registered for the request type. Requests
// without handlers are ignored. A failing handler does not stop the others.
func (r *Registry) Dispatch(ctx context.Context, req domain.ActionRequest) error {
	r.mu.RLock()
	handlers := append([]ports.ActionDispatcher(nil), r.handlers[req.Type]...)
	r.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h.Dispatch(ctx, req); err != nil {
			errs = append(errs, fmt.Errorf("action %s: %w", req.Type, err))
		}
	}
	return errors.Join(errs...)
}

// DispatchAll dispatches requests in order and stops when ctx is done.
func (r *Registry) DispatchAll(ctx context.Context, reqs []domain.ActionRequest) error {
	var errs []error
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if err := r.Dispatch(ctx, req); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ ports.ActionDispatcher = (*Registry)(nil)
