package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken with DistributedLocker.Lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes Apply calls on one grid across replicas that
// share a store. The session manager locks the grid id around each
// load-apply-save cycle.
type DistributedLocker interface {
	// Lock blocks until the key is held or ctx ends. The lock expires after
	// ttl even if never released, so a crashed holder cannot wedge a grid.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
