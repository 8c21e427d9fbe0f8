package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/flowgrid/pkg/adapters/redis"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ports.RunStateStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := redis.NewFromClient(client, redis.WithTTL(time.Second), redis.WithClock(clock))
	ctx := context.Background()

	state := domain.NewState("grid-ttl", domain.Config{ObjectName: "Account"}, nil, nil)
	require.NoError(t, store.Save(ctx, "grid-ttl", state))

	grids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, grids, "grid-ttl")

	// Expire the key in Redis and move our clock past the index score.
	mr.FastForward(2 * time.Second)
	now = now.Add(2 * time.Second)

	_, err = store.Load(ctx, "grid-ttl")
	assert.ErrorIs(t, err, domain.ErrGridNotFound)

	grids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, grids, "expired entries are pruned from the index")
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err := store.Save(ctx, "my-grid", domain.NewState("my-grid", domain.Config{ObjectName: "Account"}, nil, nil))
	require.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:my-grid"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"my-grid"}, list)
}

func TestRedisStore_DefaultPrefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, store.Save(context.Background(), "g1", domain.NewState("g1", domain.Config{ObjectName: "Account"}, nil, nil)))
	assert.True(t, mr.Exists(redis.DefaultPrefix+"g1"))
	assert.Equal(t, time.Duration(0), mr.TTL(redis.DefaultPrefix+"g1"), "no TTL by default")
}
