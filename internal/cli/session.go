package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/flowgrid"
	"github.com/aretw0/flowgrid/internal/presentation/tui"
	"github.com/aretw0/flowgrid/pkg/adapters/process"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/registry"
	"github.com/aretw0/flowgrid/pkg/runner"
	"github.com/aretw0/flowgrid/pkg/session"
)

// RunSession opens (or resumes) a grid and drives it interactively until
// the input ends or the user quits.
func RunSession(ctx context.Context, opts RunOptions, in io.Reader, out io.Writer) error {
	logger := createLogger(opts)
	quiet := opts.JSON || opts.Headless

	def, err := loadDefinition(opts)
	if err != nil {
		return err
	}
	engine, err := createEngine(opts, def, logger)
	if err != nil {
		return err
	}

	p, err := openPersistence(opts)
	if err != nil {
		return err
	}
	defer p.Close()
	mgr := newManager(engine, p, logger)

	if !quiet && out == os.Stdout && tui.IsTerminal(os.Stdout) {
		tui.PrintBanner(out)
	}

	state, resumed, err := hydrate(ctx, mgr, opts, def.Grid, def.Records)
	if err != nil {
		return fmt.Errorf("failed to init grid: %w", err)
	}
	logger.Info("grid ready", "grid_id", state.GridID, "store", p.Kind, "resumed", resumed, "revision", state.Revision)
	if resumed && !quiet {
		fmt.Fprintf(out, "Resuming grid '%s' at revision %d.\n", state.GridID, state.Revision)
	}

	runnerOpts := []runner.Option{
		runner.WithInputHandler(createHandler(opts, in, out)),
		runner.WithLogger(logger),
	}
	if opts.HooksFile != "" {
		dispatcher, err := createDispatcher(opts, logger)
		if err != nil {
			return err
		}
		runnerOpts = append(runnerOpts, runner.WithDispatcher(dispatcher))
	}
	return runner.NewRunner(runnerOpts...).Run(ctx, mgr, state.GridID)
}

// createDispatcher routes action requests to the processes of the hooks file.
func createDispatcher(opts RunOptions, logger *slog.Logger) (*registry.Registry, error) {
	hooks, err := process.LoadHooks(opts.HooksFile)
	if err != nil {
		return nil, err
	}
	proc := process.NewRunner(
		process.WithHooks(hooks),
		process.WithBaseDir(filepath.Dir(opts.HooksFile)),
		process.WithLogger(logger),
	)
	reg := registry.NewRegistry()
	for _, action := range proc.Actions() {
		reg.Register(action, proc)
	}
	logger.Debug("action hooks loaded", "actions", proc.Actions())
	return reg, nil
}

// hydrate resumes a named session from the store or opens a new one.
func hydrate(ctx context.Context, mgr *session.Manager, opts RunOptions, cfg domain.Config, records []domain.Record) (*domain.State, bool, error) {
	if opts.GridID != "" {
		if opts.Fresh {
			if err := mgr.Delete(ctx, opts.GridID); err != nil {
				return nil, false, err
			}
		} else {
			state, err := mgr.Load(ctx, opts.GridID)
			switch {
			case err == nil:
				return state, true, nil
			case !errors.Is(err, domain.ErrGridNotFound):
				return nil, false, err
			}
		}
	}
	state, err := mgr.Open(ctx, opts.GridID, cfg, records)
	return state, false, err
}

func createHandler(opts RunOptions, in io.Reader, out io.Writer) runner.IOHandler {
	if opts.JSON {
		return runner.NewJSONHandler(in, out)
	}

	var handlerOpts []runner.TextHandlerOption
	if opts.Headless {
		handlerOpts = append(handlerOpts, runner.WithTextHandlerPrompt(""))
	} else {
		handlerOpts = append(handlerOpts, runner.WithTextHandlerPrompt("flowgrid> "))
		if out == os.Stdout && tui.IsTerminal(os.Stdout) {
			if render, err := tui.NewRenderer(); err == nil {
				handlerOpts = append(handlerOpts, runner.WithTextHandlerRenderer(render))
			}
		}
	}
	return runner.NewTextHandler(in, out, handlerOpts...)
}

// Version returns the trimmed module version.
func Version() string {
	return strings.TrimSpace(flowgrid.Version)
}
