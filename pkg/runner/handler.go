package runner

import (
	"context"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (REPL) and JSON (structured) modes.
type IOHandler interface {
	// Render presents the current grid view.
	Render(ctx context.Context, view *domain.View) error

	// Actions presents the side-effects requested by the last event.
	Actions(ctx context.Context, actions []domain.ActionRequest) error

	// Outputs presents the host-facing outputs.
	Outputs(ctx context.Context, outputs domain.Outputs) error

	// Input reads the next command. It returns io.EOF when the input is exhausted.
	Input(ctx context.Context) (Command, error)

	// SystemOutput presents a meta-message (errors, help, status), distinct from the grid.
	SystemOutput(ctx context.Context, msg string) error
}

// ViewRenderer turns a view into printable text (e.g. a Markdown table).
type ViewRenderer func(*domain.View) (string, error)
