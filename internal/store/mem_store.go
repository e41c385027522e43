package store

import (
	"sync"

	"github.com/openhlxgo/hlx/internal/model"
)

// MemStore is an in-memory Store for tests that never writes to disk,
// grounded in the teacher's config.MemStore (internal/config/mem_store.go).
type MemStore struct {
	mu     sync.Mutex
	limits model.Limits
	state  *model.State
}

// NewMemStore returns an in-memory store that defaults to
// model.DefaultState(limits) until the first Save.
func NewMemStore(limits model.Limits) *MemStore {
	return &MemStore{limits: limits}
}

// Load returns a copy of the stored state, or model.DefaultState(limits)
// if none has been saved yet.
func (m *MemStore) Load() (*model.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		def := model.DefaultState(m.limits)
		return &def, nil
	}
	cp := m.state.DeepCopy()
	return &cp, nil
}

// Save stores a deep copy of the given state in memory.
func (m *MemStore) Save(state *model.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := state.DeepCopy()
	m.state = &cp
	return nil
}

// Path returns ":memory:" to indicate this is an in-memory store.
func (m *MemStore) Path() string { return ":memory:" }

// Flush is a no-op for in-memory stores.
func (m *MemStore) Flush() error { return nil }

var _ Store = (*MemStore)(nil)
var _ Store = (*JSONStore)(nil)
