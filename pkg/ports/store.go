package ports

import (
	"context"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// StateStore defines the interface for persisting grid state.
// This allows a grid to survive host restarts and to be shared by replicas.
type StateStore interface {
	// Save persists the state for a given grid ID.
	Save(ctx context.Context, gridID string, state *domain.State) error

	// Load retrieves the state for a given grid ID.
	// Returns domain.ErrGridNotFound if the grid does not exist.
	Load(ctx context.Context, gridID string) (*domain.State, error)

	// Delete removes the state for a given grid ID.
	Delete(ctx context.Context, gridID string) error

	// List returns the IDs of all stored grids.
	List(ctx context.Context) ([]string, error)
}
