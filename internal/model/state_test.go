package model_test

import (
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
)

func TestDefaultStateShape(t *testing.T) {
	limits := model.DefaultLimits()
	st := model.DefaultState(limits)

	if len(st.Sources) != int(limits.SourcesMax) {
		t.Fatalf("len(Sources) = %d, want %d", len(st.Sources), limits.SourcesMax)
	}
	if len(st.Zones) != int(limits.ZonesMax) {
		t.Fatalf("len(Zones) = %d, want %d", len(st.Zones), limits.ZonesMax)
	}
	if len(st.EqualizerPresets) != int(limits.EqualizerPresetsMax) {
		t.Fatalf("len(EqualizerPresets) = %d, want %d", len(st.EqualizerPresets), limits.EqualizerPresetsMax)
	}

	for _, src := range st.Sources {
		if _, err := src.Name(); err == nil {
			t.Fatalf("source %d name should be uninitialized in a fresh state", src.ID())
		}
	}
	for _, preset := range st.EqualizerPresets {
		if _, err := preset.Name(); err != nil {
			t.Fatalf("preset %d name should have a default, got err %v", preset.ID(), err)
		}
	}
}

func TestFindHelpers(t *testing.T) {
	st := model.DefaultState(model.DefaultLimits())
	if z := st.FindZone(1); z == nil {
		t.Fatal("FindZone(1) = nil, want a zone")
	}
	if z := st.FindZone(255); z != nil {
		t.Fatal("FindZone(255) = non-nil, want nil")
	}
	if s := st.FindSource(1); s == nil {
		t.Fatal("FindSource(1) = nil, want a source")
	}
}

func TestStateDeepCopyIsolatesSlices(t *testing.T) {
	st := model.DefaultState(model.DefaultLimits())
	cp := st.DeepCopy()

	cp.FindSource(1).SetName("Modified")
	if _, err := st.FindSource(1).Name(); err == nil {
		t.Fatal("mutating the copy's source leaked into the original")
	}

	cp.FindGroup(1).AddMember(2, 32)
	if st.FindGroup(1).HasMember(2) {
		t.Fatal("mutating the copy's group membership leaked into the original")
	}
}
