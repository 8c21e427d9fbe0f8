package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/flowgrid/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces grid keys.
const DefaultPrefix = "flowgrid:grid:"

// Grids without TTL are indexed with a score far in the future (2100-01-01).
const noExpiryScore = 4102444800

// Store implements ports.StateStore using Redis.
//
// Each grid is a JSON string key. A sorted set indexes grid IDs by expiry so
// List can skip grids whose key already expired.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Store)

// WithTTL sets the expiration for grids. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for grids.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock overrides the time source used for index scores.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a new Redis store connected to address.
func New(address, password string, db int, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Client exposes the underlying client so a Locker can share it.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(gridID string) string {
	return s.prefix + gridID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the state and refreshes its index entry.
func (s *Store) Save(ctx context.Context, gridID string, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal grid %s: %w", gridID, err)
	}

	score := float64(noExpiryScore)
	if s.ttl > 0 {
		score = float64(s.now().Add(s.ttl).Unix())
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(gridID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: gridID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save grid %s to redis: %w", gridID, err)
	}
	return nil
}

// Load retrieves the state from Redis.
func (s *Store) Load(ctx context.Context, gridID string) (*domain.State, error) {
	raw, err := s.client.Get(ctx, s.key(gridID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrGridNotFound
		}
		return nil, fmt.Errorf("failed to get grid %s from redis: %w", gridID, err)
	}

	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grid %s: %w", gridID, err)
	}
	return &state, nil
}

// Delete removes the grid and its index entry.
func (s *Store) Delete(ctx context.Context, gridID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(gridID))
	pipe.ZRem(ctx, s.indexKey(), gridID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete grid %s: %w", gridID, err)
	}
	return nil
}

// List returns live grid IDs, pruning index entries that expired.
func (s *Store) List(ctx context.Context) ([]string, error) {
	cutoff := strconv.FormatInt(s.now().Unix(), 10)
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", "("+cutoff).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired grids: %w", err)
	}

	grids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list grids: %w", err)
	}
	return grids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
