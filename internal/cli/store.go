package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/flowgrid/internal/adapters/file"
	"github.com/aretw0/flowgrid/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/flowgrid/pkg/adapters/redis"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/persistence/middleware"
	"github.com/aretw0/flowgrid/pkg/ports"
	"github.com/aretw0/flowgrid/pkg/session"
	goredis "github.com/redis/go-redis/v9"
)

// persistence bundles a state store with its optional distributed locker.
type persistence struct {
	Store  ports.StateStore
	Locker ports.DistributedLocker
	Kind   string
	close  func() error
}

func (p *persistence) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// openPersistence picks the store: Redis when a URL is given, files when a
// directory is given or the session is named, memory otherwise.
func openPersistence(opts RunOptions) (*persistence, error) {
	p, err := openStore(opts)
	if err != nil {
		return nil, err
	}
	mws, err := storeMiddlewares(opts)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	p.Store = middleware.Chain(p.Store, mws...)
	return p, nil
}

// storeMiddlewares masks before sealing, so encrypted grids hold masked values.
func storeMiddlewares(opts RunOptions) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(opts.MaskFields) > 0 {
		pii, err := middleware.NewPIIMiddleware(opts.MaskFields)
		if err != nil {
			return nil, err
		}
		mws = append(mws, pii)
	}
	if opts.EncryptionKey != "" {
		cfg := middleware.EncryptionConfig{}
		key, err := middleware.ParseKey(opts.EncryptionKey)
		if err != nil {
			return nil, err
		}
		cfg.ActiveKey = key
		for _, k := range opts.FallbackKeys {
			fk, err := middleware.ParseKey(k)
			if err != nil {
				return nil, fmt.Errorf("fallback key: %w", err)
			}
			cfg.FallbackKeys = append(cfg.FallbackKeys, fk)
		}
		enc, err := middleware.NewEncryptionMiddleware(cfg)
		if err != nil {
			return nil, err
		}
		mws = append(mws, enc)
	}
	return mws, nil
}

func openStore(opts RunOptions) (*persistence, error) {
	switch {
	case opts.RedisURL != "":
		redisOpts, err := goredis.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := goredis.NewClient(redisOpts)
		return &persistence{
			Store:  redisAdapter.NewFromClient(client, redisAdapter.WithTTL(opts.TTL)),
			Locker: redisAdapter.NewLocker(client, "flowgrid:"),
			Kind:   "redis",
			close:  client.Close,
		}, nil
	case opts.StoreDir != "" || opts.GridID != "":
		return &persistence{Store: file.New(opts.StoreDir), Kind: "file"}, nil
	default:
		return &persistence{Store: memory.NewStore(), Kind: "memory"}, nil
	}
}

func newManager(engine ports.StatelessEngine, p *persistence, logger *slog.Logger) *session.Manager {
	opts := []session.Option{session.WithLogger(logger)}
	if p.Locker != nil {
		opts = append(opts, session.WithLocker(p.Locker))
	}
	return session.NewManager(engine, p.Store, opts...)
}

// ListGrids returns the stored session identifiers.
func ListGrids(ctx context.Context, opts RunOptions) ([]string, error) {
	p, err := openPersistence(withDefaultStore(opts))
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.Store.List(ctx)
}

// InspectGrid loads a stored session.
func InspectGrid(ctx context.Context, opts RunOptions, gridID string) (*domain.State, error) {
	p, err := openPersistence(withDefaultStore(opts))
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.Store.Load(ctx, gridID)
}

// RemoveGrids deletes stored sessions, reporting every failure.
func RemoveGrids(ctx context.Context, opts RunOptions, gridIDs ...string) error {
	p, err := openPersistence(withDefaultStore(opts))
	if err != nil {
		return err
	}
	defer p.Close()

	var errs []error
	for _, id := range gridIDs {
		if err := p.Store.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// withDefaultStore makes the management commands look at the file store
// unless Redis was requested.
func withDefaultStore(opts RunOptions) RunOptions {
	if opts.RedisURL == "" && opts.StoreDir == "" {
		opts.StoreDir = file.New("").BasePath
	}
	return opts
}
