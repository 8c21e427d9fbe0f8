package http

import (
	"log/slog"
	"sync"

	"github.com/aretw0/flowgrid/internal/logging"
	"github.com/aretw0/flowgrid/pkg/domain"
)

// StreamManager fans output diffs out to the SSE clients of each grid.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *domain.OutputsDiff]struct{}
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan *domain.OutputsDiff]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a client for a grid. The returned func unregisters it
// and closes the channel.
func (sm *StreamManager) Subscribe(gridID string) (<-chan *domain.OutputsDiff, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan *domain.OutputsDiff, 10)
	if _, ok := sm.subscribers[gridID]; !ok {
		sm.subscribers[gridID] = make(map[chan *domain.OutputsDiff]struct{})
	}
	sm.subscribers[gridID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			subs := sm.subscribers[gridID]
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, gridID)
			}
		})
	}
}

// Subscribers returns the number of clients listening on a grid.
func (sm *StreamManager) Subscribers(gridID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[gridID])
}

// Broadcast sends a diff to every client of the grid. Slow clients miss it.
func (sm *StreamManager) Broadcast(gridID string, diff *domain.OutputsDiff) {
	if diff == nil {
		return
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[gridID] {
		select {
		case ch <- diff:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping diff", "grid_id", gridID, "revision", diff.Revision)
		}
	}
}
