package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/ports"
	"github.com/aretw0/flowgrid/pkg/session"
)

// Runner drives a grid session from an IOHandler.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// DisableSignals skips SIGINT/SIGTERM handling (tests, embedded use).
	DisableSignals bool

	// Dispatcher, when set, receives every action request after the handler
	// presented it. Its failures are reported, not fatal.
	Dispatcher ports.ActionDispatcher
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithDispatcher forwards action requests to host-side handlers.
func WithDispatcher(d ports.ActionDispatcher) Option {
	return func(r *Runner) {
		r.Dispatcher = d
	}
}

// WithoutSignals disables OS signal handling.
func WithoutSignals() Option {
	return func(r *Runner) {
		r.DisableSignals = true
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	return r
}

// Run loops until the input ends, the user quits or ctx is cancelled. An
// interrupt is a clean exit; the session stays in the store.
func (r *Runner) Run(ctx context.Context, mgr *session.Manager, gridID string) error {
	loopCtx := ctx
	var signals *SignalManager
	if !r.DisableSignals {
		signals = NewSignalManager(ctx)
		defer signals.Stop()
		loopCtx = signals.Context()
	}

	dirty := true
	for {
		if dirty {
			view, err := mgr.View(loopCtx, gridID)
			if err != nil {
				return fmt.Errorf("view error: %w", err)
			}
			if err := r.Handler.Render(loopCtx, view); err != nil {
				return fmt.Errorf("render error: %w", err)
			}
			dirty = false
		}

		cmd, err := r.Handler.Input(loopCtx)
		if err != nil {
			interrupted := signals != nil && signals.Settle()
			if interrupted || errors.Is(err, io.EOF) || loopCtx.Err() != nil {
				r.Logger.Debug("runner stopped", "grid_id", gridID, "err", err)
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		switch cmd.Kind {
		case CommandQuit:
			return nil
		case CommandHelp:
			if err := r.Handler.SystemOutput(loopCtx, Help); err != nil {
				return err
			}
			continue
		case CommandView:
			dirty = true
			continue
		case CommandOutputs:
			out, err := mgr.Outputs(loopCtx, gridID)
			if err != nil {
				return fmt.Errorf("outputs error: %w", err)
			}
			if err := r.Handler.Outputs(loopCtx, out); err != nil {
				return err
			}
			continue
		}

		changed, err := r.apply(loopCtx, mgr, gridID, cmd)
		if err != nil {
			return err
		}
		dirty = changed
	}
}

// apply runs one event. Rejected input is reported to the user, not returned.
func (r *Runner) apply(ctx context.Context, mgr *session.Manager, gridID string, cmd Command) (bool, error) {
	ev := cmd.Event
	if ev.Type == domain.EventTab && !cmd.HasValue {
		value, err := r.cursorValue(ctx, mgr, gridID)
		if err != nil {
			return false, err
		}
		ev.Value = value
	}

	ev, err := SanitizeEvent(ev)
	if err != nil {
		return false, r.Handler.SystemOutput(ctx, fmt.Sprintf("rejected: %v", err))
	}

	update, err := mgr.Apply(ctx, gridID, ev)
	if errors.Is(err, domain.ErrUnknownEvent) {
		return false, r.Handler.SystemOutput(ctx, err.Error())
	}
	if err != nil {
		return false, fmt.Errorf("apply error: %w", err)
	}

	r.Logger.Debug("event applied", "grid_id", gridID, "type", ev.Type, "changed", update.Changed(), "actions", len(update.Actions))
	if err := r.Handler.Actions(ctx, update.Actions); err != nil {
		return false, err
	}
	if r.Dispatcher != nil {
		for _, action := range update.Actions {
			if err := r.Dispatcher.Dispatch(ctx, action); err != nil {
				r.Logger.Warn("action dispatch failed", "grid_id", gridID, "type", action.Type, "err", err)
				if err := r.Handler.SystemOutput(ctx, fmt.Sprintf("action failed: %v", err)); err != nil {
					return false, err
				}
			}
		}
	}
	return update.Changed(), nil
}

// cursorValue returns the effective value of the cell under the cursor, so a
// bare tab commits what is already shown.
func (r *Runner) cursorValue(ctx context.Context, mgr *session.Manager, gridID string) (any, error) {
	view, err := mgr.View(ctx, gridID)
	if err != nil {
		return nil, err
	}
	if view.Editing == nil {
		return nil, nil
	}
	row, ok := view.Row(view.Editing.RecordID)
	if !ok {
		return nil, nil
	}
	cell, _ := row.Cell(view.Editing.Field)
	return cell.Value, nil
}
