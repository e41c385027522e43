package model_test

import (
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
)

func TestSoundModeSwitching(t *testing.T) {
	var sm model.SoundMode
	sm.SetToneMode()
	kind, err := sm.Kind()
	if err != nil || kind != model.SoundModeTone {
		t.Fatalf("Kind() = (%v, %v), want (SoundModeTone, nil)", kind, err)
	}

	sm.SetLowpassMode()
	kind, _ = sm.Kind()
	if kind != model.SoundModeLowpass {
		t.Fatalf("Kind() = %v, want SoundModeLowpass", kind)
	}
}

func TestSoundModePresetEqualizerValidatesID(t *testing.T) {
	var sm model.SoundMode
	if _, err := sm.SetPresetEqualizer(20, 8); model.KindOf(err) != model.KindOutOfRange {
		t.Fatalf("SetPresetEqualizer(20, max=8): got err %v, want OutOfRange", err)
	}
	outcome, err := sm.SetPresetEqualizer(3, 8)
	if err != nil {
		t.Fatalf("SetPresetEqualizer(3, 8): unexpected err %v", err)
	}
	if outcome != model.Changed {
		t.Fatalf("outcome = %v, want Changed", outcome)
	}
	if sm.PresetID() != 3 {
		t.Fatalf("PresetID() = %d, want 3", sm.PresetID())
	}
}
