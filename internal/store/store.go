// Package store persists a model.State snapshot to a single key-value
// blob (spec.md §6: "load(out blob)->Result, store(blob)->Result...
// format opaque to core"), grounded in the teacher's internal/config
// package (config.Store / JSONStore / MemStore).
package store

import "github.com/openhlxgo/hlx/internal/model"

// Store is the interface for persisting system state.
type Store interface {
	// Load loads the current state. Returns model.DefaultState(limits)
	// if no snapshot exists yet.
	Load() (*model.State, error)

	// Save persists the state. Implementations may debounce rapid saves.
	Save(state *model.State) error

	// Path returns the location used by this store (a filesystem path,
	// or ":memory:" for MemStore).
	Path() string

	// Flush forces an immediate write of any pending state.
	Flush() error
}
