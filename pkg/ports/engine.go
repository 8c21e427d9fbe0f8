package ports

import (
	"context"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// StatelessEngine defines the interface for grid cores that do not maintain internal state.
// This is the primary interface used by adapters (e.g., HTTP, MCP) that manage state externally or per-request.
type StatelessEngine interface {
	// Start resolves column metadata and returns the initial state of a grid.
	Start(ctx context.Context, gridID string, cfg domain.Config, records []domain.Record) (*domain.State, error)

	// Apply reduces one interaction event into a new state and the side-effects it requests.
	Apply(ctx context.Context, state *domain.State, ev domain.Event) (*domain.State, []domain.ActionRequest, error)

	// Project derives the renderable view of a state.
	Project(ctx context.Context, state *domain.State) *domain.View

	// Outputs computes the host-facing outputs of a state.
	Outputs(state *domain.State) domain.Outputs
}
