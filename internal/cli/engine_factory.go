package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/flowgrid"
	"github.com/aretw0/flowgrid/internal/compiler"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/observability"
)

// loadDefinition parses the grid definition file named in opts.
func loadDefinition(opts RunOptions) (*compiler.Definition, error) {
	if opts.Definition == "" {
		return nil, errors.New("a grid definition file is required")
	}
	return compiler.NewParser().ParseFile(opts.Definition)
}

// createEngine initializes an engine with standard CLI conventions: inline
// metadata from the definition wins over the Loam repository, and debug mode
// logs every lifecycle hook.
func createEngine(opts RunOptions, def *compiler.Definition, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*flowgrid.Engine, error) {
	engineOpts := []flowgrid.Option{flowgrid.WithLogger(logger)}

	if opts.Debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}
	if len(hooks) > 0 {
		engineOpts = append(engineOpts, flowgrid.WithLifecycleHooks(observability.Combine(hooks...)))
	}

	if def != nil && def.HasInlineMetadata() {
		logger.Debug("using inline metadata", "objects", def.ObjectNames())
		engineOpts = append(engineOpts, flowgrid.WithMetadataProvider(def.Metadata()))
	}

	loc, err := loadLocation(opts.Location)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		engineOpts = append(engineOpts, flowgrid.WithLocation(loc))
	}

	engine, err := flowgrid.New(opts.RepoPath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
