package ports_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/ports"
)

// MockStore keeps grids as JSON blobs to simulate serialization.
type MockStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string][]byte),
	}
}

func (m *MockStore) Save(ctx context.Context, gridID string, state *domain.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[gridID] = raw
	return nil
}

func (m *MockStore) Load(ctx context.Context, gridID string) (*domain.State, error) {
	m.mu.Lock()
	raw, ok := m.data[gridID]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrGridNotFound
	}
	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *MockStore) Delete(ctx context.Context, gridID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, gridID)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func TestStateStore_Contract(t *testing.T) {
	// The mock doubles as a reference implementation for adapters.
	ports.RunStateStoreContract(t, NewMockStore())
}

func TestDispatcherFunc(t *testing.T) {
	var got []string
	d := ports.DispatcherFunc(func(ctx context.Context, req domain.ActionRequest) error {
		got = append(got, req.Type)
		return nil
	})

	if err := d.Dispatch(context.Background(), domain.ActionRequest{Type: domain.ActionNavigate}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(got) != 1 || got[0] != domain.ActionNavigate {
		t.Errorf("Expected NAVIGATE to be dispatched, got %v", got)
	}
}
