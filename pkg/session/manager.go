package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/flowgrid/internal/logging"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a crashed replica can hold a grid.
const DefaultLockTTL = 30 * time.Second

type lockEntry struct {
	mu     sync.Mutex
	refs   int
	unlock ports.UnlockFunc
}

// Update is the result of applying one event to a stored grid.
type Update struct {
	Previous *domain.State
	State    *domain.State
	Actions  []domain.ActionRequest
}

// Changed reports whether the event produced a new snapshot.
func (u *Update) Changed() bool {
	return u.Previous != u.State
}

// Manager serialises access to grid sessions.
type Manager struct {
	engine ports.StatelessEngine
	store  ports.StateStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	newID   func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL for distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithIDGenerator replaces the random grid id generator used by Open.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// NewManager creates a grid session manager.
func NewManager(engine ports.StatelessEngine, store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		engine:  engine,
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) acquire(gridID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[gridID]
	if !ok {
		entry = &lockEntry{}
		m.locks[gridID] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(gridID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[gridID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, gridID)
	}
}

// Open starts a grid and persists its initial state. An empty gridID gets a
// generated one. Opening an existing id replaces the stored session.
func (m *Manager) Open(ctx context.Context, gridID string, cfg domain.Config, records []domain.Record) (*domain.State, error) {
	if gridID == "" {
		gridID = m.newID()
	}

	var state *domain.State
	err := m.WithLock(ctx, gridID, func(ctx context.Context) error {
		var err error
		state, err = m.engine.Start(ctx, gridID, cfg, records)
		if err != nil {
			return err
		}
		if err := m.store.Save(ctx, gridID, state); err != nil {
			return fmt.Errorf("failed to save grid: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("grid opened",
		"grid_id", gridID,
		"object", state.Config.ObjectName,
		"records", len(state.Records),
		"columns", len(state.Columns),
	)
	return state, nil
}

// Load retrieves a grid from the store.
func (m *Manager) Load(ctx context.Context, gridID string) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, gridID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, gridID)
		return err
	})
	return state, err
}

// Apply loads a grid, reduces the event and saves the result when it changed.
func (m *Manager) Apply(ctx context.Context, gridID string, ev domain.Event) (*Update, error) {
	var update *Update
	err := m.WithLock(ctx, gridID, func(ctx context.Context) error {
		prev, err := m.store.Load(ctx, gridID)
		if err != nil {
			return err
		}

		next, actions, err := m.engine.Apply(ctx, prev, ev)
		if err != nil {
			return err
		}

		update = &Update{Previous: prev, State: next, Actions: actions}
		if !update.Changed() {
			return nil
		}
		if err := m.store.Save(ctx, gridID, next); err != nil {
			return fmt.Errorf("failed to save grid: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

// View loads a grid and projects it.
func (m *Manager) View(ctx context.Context, gridID string) (*domain.View, error) {
	state, err := m.Load(ctx, gridID)
	if err != nil {
		return nil, err
	}
	return m.engine.Project(ctx, state), nil
}

// Outputs loads a grid and computes its host outputs.
func (m *Manager) Outputs(ctx context.Context, gridID string) (domain.Outputs, error) {
	state, err := m.Load(ctx, gridID)
	if err != nil {
		return domain.Outputs{}, err
	}
	return m.engine.Outputs(state), nil
}

// Save persists a grid state as is.
func (m *Manager) Save(ctx context.Context, gridID string, state *domain.State) error {
	return m.WithLock(ctx, gridID, func(ctx context.Context) error {
		return m.store.Save(ctx, gridID, state)
	})
}

// Delete removes a grid. Deleting a missing grid is not an error.
func (m *Manager) Delete(ctx context.Context, gridID string) error {
	return m.WithLock(ctx, gridID, func(ctx context.Context) error {
		err := m.store.Delete(ctx, gridID)
		if errors.Is(err, domain.ErrGridNotFound) {
			return nil
		}
		return err
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// Engine returns the engine the manager drives.
func (m *Manager) Engine() ports.StatelessEngine {
	return m.engine
}

// WithLock executes fn while holding the lock for the grid.
func (m *Manager) WithLock(ctx context.Context, gridID string, fn func(context.Context) error) error {
	entry := m.acquire(gridID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(gridID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, gridID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		entry.unlock = unlock
		defer func() {
			entry.unlock = nil
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"grid_id", gridID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
