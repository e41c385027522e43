package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
	"github.com/openhlxgo/hlx/internal/store"
)

func newTempPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "hlx-store-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "snapshot.json")
}

func TestJSONStoreLoadMissingFileReturnsDefault(t *testing.T) {
	limits := model.DefaultLimits()
	s, err := store.NewJSONStore(newTempPath(t), limits, nil)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	st, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if len(st.Sources) != int(limits.SourcesMax) {
		t.Errorf("Sources = %d, want %d", len(st.Sources), limits.SourcesMax)
	}
	if len(st.Zones) != int(limits.ZonesMax) {
		t.Errorf("Zones = %d, want %d", len(st.Zones), limits.ZonesMax)
	}
}

func TestJSONStoreSaveLoadRoundTrip(t *testing.T) {
	limits := model.DefaultLimits()
	s, err := store.NewJSONStore(newTempPath(t), limits, nil)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	st := model.DefaultState(limits)
	st.Sources[0].SetName("Turntable")
	st.Zones[0].Volume.SetLevel(-42)

	if err := s.Save(&st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if name, _ := loaded.Sources[0].Name(); name != "Turntable" {
		t.Errorf("Sources[0].Name() = %q, want %q", name, "Turntable")
	}
	if lvl, _ := loaded.Zones[0].Volume.Level(); lvl != -42 {
		t.Errorf("Zones[0].Volume.Level() = %d, want -42", lvl)
	}
}

func TestJSONStoreCorruptJSONReturnsDefault(t *testing.T) {
	path := newTempPath(t)
	limits := model.DefaultLimits()
	s, err := store.NewJSONStore(path, limits, nil)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json!!!"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	st, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if len(st.Sources) != int(limits.SourcesMax) {
		t.Errorf("corrupt file: Sources = %d, want %d (default)", len(st.Sources), limits.SourcesMax)
	}
}

func TestJSONStoreFlushWithoutSaveNoError(t *testing.T) {
	s, err := store.NewJSONStore(newTempPath(t), model.DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Errorf("Flush() with no pending save: error = %v, want nil", err)
	}
}

func TestJSONStoreSaveTwiceStopsOldTimer(t *testing.T) {
	limits := model.DefaultLimits()
	s, err := store.NewJSONStore(newTempPath(t), limits, nil)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	st1 := model.DefaultState(limits)
	st1.Sources[0].SetName("First")
	st2 := model.DefaultState(limits)
	st2.Sources[0].SetName("Second")

	if err := s.Save(&st1); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := s.Save(&st2); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if name, _ := loaded.Sources[0].Name(); name != "Second" {
		t.Errorf("Sources[0].Name() = %q, want %q", name, "Second")
	}
}

func TestJSONStoreMigratesInvalidIdentifiersAndPadsCollections(t *testing.T) {
	path := newTempPath(t)
	limits := model.Limits{SourcesMax: 4, ZonesMax: 2, GroupsMax: 1, FavoritesMax: 1, EqualizerPresetsMax: 1, EqualizerBandsMax: 10}
	s, err := store.NewJSONStore(path, limits, nil)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	raw := `{"Zones":[{"id":99,"name":"Ghost"}]}`
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	st, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Zones) != int(limits.ZonesMax) {
		t.Fatalf("Zones = %d, want %d after repair", len(st.Zones), limits.ZonesMax)
	}
	for i, z := range st.Zones {
		if z.ID() != model.Identifier(i+1) {
			t.Errorf("Zones[%d].ID() = %d, want %d", i, z.ID(), i+1)
		}
	}
}

func TestJSONStoreExternalEditPublishesConfigurationLoaded(t *testing.T) {
	path := newTempPath(t)
	limits := model.DefaultLimits()
	bus := notify.NewBus()

	got := make(chan notify.Notification, 1)
	bus.Subscribe("watch", func(n notify.Notification) { got <- n })

	s, err := store.NewJSONStore(path, limits, bus)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	// Simulate an external writer: a direct WriteFile, not through Save.
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case n := <-got:
		if _, ok := n.(notify.ConfigurationLoaded); !ok {
			t.Fatalf("got %T, want notify.ConfigurationLoaded", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ConfigurationLoaded notification")
	}
}

func TestJSONStoreOwnWriteDoesNotPublishConfigurationLoaded(t *testing.T) {
	path := newTempPath(t)
	limits := model.DefaultLimits()
	bus := notify.NewBus()

	got := make(chan notify.Notification, 4)
	bus.Subscribe("watch", func(n notify.Notification) { got <- n })

	s, err := store.NewJSONStore(path, limits, bus)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	st := model.DefaultState(limits)
	if err := s.Save(&st); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	select {
	case n := <-got:
		t.Fatalf("unexpected notification after own write: %T", n)
	case <-time.After(500 * time.Millisecond):
	}
}
