package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/flowgrid/internal/compiler"
	httpAdapter "github.com/aretw0/flowgrid/pkg/adapters/http"
	"github.com/aretw0/flowgrid/pkg/adapters/mcp"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/observability"
	"github.com/aretw0/flowgrid/pkg/session"
)

// ServeOptions configure the network servers.
type ServeOptions struct {
	RunOptions
	Port      int
	Transport string
}

// buildManager wires engine, metrics and persistence. A definition, when
// given, is opened as a first grid.
func buildManager(ctx context.Context, opts RunOptions, metrics *observability.Metrics) (*session.Manager, *persistence, error) {
	logger := createLogger(opts)

	var def *compiler.Definition
	if opts.Definition != "" {
		var err error
		if def, err = loadDefinition(opts); err != nil {
			return nil, nil, err
		}
	}

	var hooks []domain.LifecycleHooks
	if metrics != nil {
		hooks = append(hooks, metrics.Hooks())
	}
	engine, err := createEngine(opts, def, logger, hooks...)
	if err != nil {
		return nil, nil, err
	}

	p, err := openPersistence(opts)
	if err != nil {
		return nil, nil, err
	}
	mgr := newManager(engine, p, logger)

	if def != nil {
		gridID := opts.GridID
		if gridID == "" {
			gridID = "default"
		}
		if _, err := mgr.Open(ctx, gridID, def.Grid, def.Records); err != nil {
			p.Close()
			return nil, nil, fmt.Errorf("failed to open grid %s: %w", gridID, err)
		}
	}
	return mgr, p, nil
}

// Serve runs the HTTP API until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := createLogger(opts.RunOptions)
	metrics := observability.NewMetrics(true)

	mgr, p, err := buildManager(ctx, opts.RunOptions, metrics)
	if err != nil {
		return err
	}
	defer p.Close()

	handler, err := httpAdapter.NewHandler(mgr,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(metrics.Handler()),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage("Starting flowgrid server on %s (store: %s)", srv.Addr, p.Kind)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		printSystemMessage("flowgrid server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server over stdio or SSE.
func ServeMCP(ctx context.Context, opts ServeOptions) error {
	logger := createLogger(opts.RunOptions)

	mgr, p, err := buildManager(ctx, opts.RunOptions, nil)
	if err != nil {
		return err
	}
	defer p.Close()

	srv := mcp.NewServer(mgr, logger)
	switch opts.Transport {
	case "", "stdio":
		logger.Info("starting flowgrid MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		err := srv.ServeSSE(ctx, opts.Port)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", opts.Transport)
	}
}
