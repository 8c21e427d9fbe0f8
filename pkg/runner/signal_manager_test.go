package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignalManager_Stop(t *testing.T) {
	sm := NewSignalManager(context.Background())
	assert.NoError(t, sm.Context().Err())

	sm.Stop()
	assert.ErrorIs(t, sm.Context().Err(), context.Canceled)
	assert.True(t, sm.Settle(), "a stopped manager settles immediately")
}

func TestSignalManager_FollowsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	sm := NewSignalManager(parent)
	defer sm.Stop()

	cancel()
	assert.ErrorIs(t, sm.Context().Err(), context.Canceled)
}

func TestSignalManager_SettleWaitsForGrace(t *testing.T) {
	sm := NewSignalManager(context.Background())
	defer sm.Stop()

	start := time.Now()
	assert.False(t, sm.Settle())
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, settleGrace)
	assert.Less(t, elapsed, time.Second)
}
