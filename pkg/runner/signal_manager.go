package runner

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// settleGrace bounds how long Settle waits for a trailing signal.
const settleGrace = 100 * time.Millisecond

// SignalManager cancels the shell context on SIGINT or SIGTERM.
type SignalManager struct {
	ctx  context.Context
	stop context.CancelFunc
}

// NewSignalManager starts listening for signals on top of parent.
func NewSignalManager(parent context.Context) *SignalManager {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	return &SignalManager{ctx: ctx, stop: stop}
}

// Context is cancelled by a signal or by the parent.
func (sm *SignalManager) Context() context.Context {
	return sm.ctx
}

// Stop releases the signal listener and cancels Context.
func (sm *SignalManager) Stop() {
	sm.stop()
}

// Settle is called after an input error. Ctrl+C can close stdin a moment
// before the signal arrives, so it waits briefly and reports whether the
// context ended.
func (sm *SignalManager) Settle() bool {
	select {
	case <-sm.ctx.Done():
		return true
	case <-time.After(settleGrace):
		return sm.ctx.Err() != nil
	}
}
