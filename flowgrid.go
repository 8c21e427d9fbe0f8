package flowgrid

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/flowgrid/internal/runtime"
	loamAdapter "github.com/aretw0/flowgrid/pkg/adapters/loam"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/ports"
	"github.com/aretw0/loam"
)

// Engine is the high-level entry point for the flowgrid library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime  *runtime.Engine
	metadata ports.MetadataProvider
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	location *time.Location
	Name     string
}

var _ ports.StatelessEngine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithMetadataProvider injects a custom metadata source, bypassing the default Loam initialization.
func WithMetadataProvider(p ports.MetadataProvider) Option {
	return func(e *Engine) {
		e.metadata = p
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLocation sets the time zone datetime cells are displayed in (default UTC).
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		e.location = loc
	}
}

// New initializes a new Engine.
// By default, field metadata is read from a Loam repository at repoPath: one
// document per object. If WithMetadataProvider is given, repoPath can be empty.
func New(repoPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.metadata == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no metadata provider is configured")
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)

		// Strict mode keeps numbers as json.Number across formats; the engine
		// never writes metadata, so the repository is opened read-only.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}
		eng.metadata = loamAdapter.New(loam.NewTypedRepository[loamAdapter.ObjectMetadata](repo))
	} else if repoPath != "" {
		eng.Name = filepath.Base(repoPath)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("metadata", eng.Name)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	if eng.location != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithLocation(eng.location))
	}
	eng.runtime = runtime.NewEngine(eng.metadata, runtimeOpts...)

	return eng, nil
}

// Start resolves column metadata and returns the initial state of a grid.
func (e *Engine) Start(ctx context.Context, gridID string, cfg domain.Config, records []domain.Record) (*domain.State, error) {
	return e.runtime.Start(ctx, gridID, cfg, records)
}

// Apply reduces one interaction event.
func (e *Engine) Apply(ctx context.Context, state *domain.State, ev domain.Event) (*domain.State, []domain.ActionRequest, error) {
	return e.runtime.Apply(ctx, state, ev)
}

// Project derives the renderable view of a state.
func (e *Engine) Project(ctx context.Context, state *domain.State) *domain.View {
	return e.runtime.Project(ctx, state)
}

// Outputs computes the host-facing outputs of a state.
func (e *Engine) Outputs(state *domain.State) domain.Outputs {
	return e.runtime.Outputs(state)
}

// Metadata returns the configured metadata provider.
func (e *Engine) Metadata() ports.MetadataProvider {
	return e.metadata
}

// Objects lists the object names the metadata provider knows, when it can enumerate them.
func (e *Engine) Objects(ctx context.Context) ([]string, error) {
	lister, ok := e.metadata.(ports.ObjectLister)
	if !ok {
		return nil, fmt.Errorf("metadata provider %T cannot list objects", e.metadata)
	}
	return lister.ListObjects(ctx)
}

// Format renders a single value the way a cell of the given column would show it.
func (e *Engine) Format(value any, col domain.ColumnDescriptor) string {
	return e.runtime.Formatter().Format(value, col)
}
