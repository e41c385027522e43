package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
)

const debounceDelay = 500 * time.Millisecond

// JSONStore is an atomic JSON file store with debounced writes, grounded
// in the teacher's config.JSONStore (internal/config/json_store.go).
//
// Unlike the teacher's store, JSONStore also watches its own backing
// file with fsnotify: a write that did not originate from this
// process's own writeAtomic (e.g. field-service tooling editing the
// file directly, or a unit being re-provisioned from a golden config)
// publishes notify.ConfigurationLoaded on bus, if bus is non-nil.
type JSONStore struct {
	mu      sync.Mutex
	path    string
	limits  model.Limits
	bus     *notify.Bus
	timer   *time.Timer
	pending *model.State

	watcher  *fsnotify.Watcher
	ownWrite sync.Mutex
	skipNext bool
}

// NewJSONStore creates a JSON store backed by the file at path. bus may
// be nil, in which case external-edit detection is disabled.
func NewJSONStore(path string, limits model.Limits, bus *notify.Bus) (*JSONStore, error) {
	s := &JSONStore{path: path, limits: limits, bus: bus}

	if bus == nil {
		return s, nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	s.watcher = w
	go s.watchLoop()
	return s, nil
}

// Path returns the file path used by this store.
func (s *JSONStore) Path() string { return s.path }

// Close stops the backing fsnotify watcher, if any.
func (s *JSONStore) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}

// Load reads the state from disk. Returns model.DefaultState(limits) on
// ENOENT or a corrupt file, matching the teacher's fall-back-to-defaults
// behavior (json_store.go's Load).
func (s *JSONStore) Load() (*model.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			def := model.DefaultState(s.limits)
			return &def, nil
		}
		return nil, err
	}

	var st model.State
	if err := json.Unmarshal(data, &st); err != nil {
		slog.Warn("store: corrupt JSON snapshot, using defaults", "path", s.path, "err", err)
		def := model.DefaultState(s.limits)
		return &def, nil
	}

	repair(&st, s.limits)
	return &st, nil
}

// Save schedules a debounced write of the state to disk. The actual
// write happens after 500ms of no further Save calls.
func (s *JSONStore) Save(state *model.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := state.DeepCopy()
	s.pending = &cp

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(debounceDelay, func() {
		s.mu.Lock()
		st := s.pending
		s.mu.Unlock()
		if st != nil {
			if err := s.writeAtomic(st); err != nil {
				slog.Error("store: failed to write snapshot", "path", s.path, "err", err)
			}
		}
	})
	return nil
}

// Flush forces an immediate write of any pending state.
func (s *JSONStore) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	st := s.pending
	s.mu.Unlock()
	if st == nil {
		return nil
	}
	return s.writeAtomic(st)
}

func (s *JSONStore) writeAtomic(state *model.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	// This process's own write is about to fire an fsnotify event for
	// s.path; watchLoop must not mistake it for an external edit.
	s.ownWrite.Lock()
	s.skipNext = true
	s.ownWrite.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// watchLoop drains fsnotify events for the snapshot's directory,
// publishing notify.ConfigurationLoaded for any write or create event
// that targets s.path and was not this store's own writeAtomic.
func (s *JSONStore) watchLoop() {
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			s.ownWrite.Lock()
			own := s.skipNext
			s.skipNext = false
			s.ownWrite.Unlock()
			if own {
				continue
			}

			slog.Info("store: snapshot changed externally, reloading", "path", s.path)
			s.bus.Publish(notify.ConfigurationLoaded{})

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("store: watcher error", "path", s.path, "err", err)
		}
	}
}
