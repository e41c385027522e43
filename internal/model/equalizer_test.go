package model_test

import (
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
)

func TestEqualizerBandLevelClamps(t *testing.T) {
	b := model.NewEqualizerBand(1, 1000)
	b.SetLevel(model.EqualizerBandLevelMax + 5)
	lvl, err := b.Level()
	if err != nil || lvl != model.EqualizerBandLevelMax {
		t.Fatalf("Level() = (%d, %v), want (%d, nil)", lvl, err, model.EqualizerBandLevelMax)
	}
	b.SetLevel(model.EqualizerBandLevelMin - 5)
	lvl, _ = b.Level()
	if lvl != model.EqualizerBandLevelMin {
		t.Fatalf("Level() = %d, want %d", lvl, model.EqualizerBandLevelMin)
	}
}

func TestEqualizerBandFrequencyFixed(t *testing.T) {
	b := model.NewEqualizerBand(3, 500)
	if b.Frequency() != 500 {
		t.Fatalf("Frequency() = %d, want 500", b.Frequency())
	}
}

func TestEqualizerPresetBandLookup(t *testing.T) {
	p := model.NewEqualizerPreset(1, [model.EqualizerBandCount]int{32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000})
	band, err := p.Band(1)
	if err != nil {
		t.Fatalf("Band(1): unexpected err %v", err)
	}
	if band.Frequency() != 32 {
		t.Fatalf("Band(1).Frequency() = %d, want 32", band.Frequency())
	}
	if _, err := p.Band(11); model.KindOf(err) != model.KindOutOfRange {
		t.Fatalf("Band(11): got err %v, want OutOfRange", err)
	}
	if len(p.Bands()) != model.EqualizerBandCount {
		t.Fatalf("len(Bands()) = %d, want %d", len(p.Bands()), model.EqualizerBandCount)
	}
}

func TestNewDefaultEqualizerPresetsNaming(t *testing.T) {
	presets := model.NewDefaultEqualizerPresets(8)
	if len(presets) != 8 {
		t.Fatalf("len(presets) = %d, want 8", len(presets))
	}
	name, err := presets[0].Name()
	if err != nil || name != "Flat" {
		t.Fatalf("presets[0].Name() = (%q, %v), want (\"Flat\", nil)", name, err)
	}
}
