package model

import (
	"encoding/json"
	"fmt"
)

// EqualizerBand bounds, per spec.md §3.
const (
	EqualizerBandLevelMin = -10
	EqualizerBandLevelMax = 10
	EqualizerBandCount    = 10
)

// EqualizerBand is one of the 10 bands of a zone's or preset's equalizer.
// Its center frequency is fixed at construction (hardware-determined) and
// never mutates post-init, per spec.md §3's invariant.
type EqualizerBand struct {
	id        Identifier
	frequency int // Hz, read-only after init
	level     Nullable[int]
}

// NewEqualizerBand constructs a band with a fixed center frequency.
func NewEqualizerBand(id Identifier, frequencyHz int) EqualizerBand {
	return EqualizerBand{id: id, frequency: frequencyHz}
}

// ID returns the band identifier (1..10).
func (b EqualizerBand) ID() Identifier { return b.id }

// Frequency returns the fixed center frequency in Hz.
func (b EqualizerBand) Frequency() int { return b.frequency }

// Level returns the current band level, or ErrNotInitialized.
func (b EqualizerBand) Level() (int, error) { return b.level.Get() }

// SetLevel sets the band level, clamping to [-10, 10] (spec.md §3: "level
// clamps").
func (b *EqualizerBand) SetLevel(level int) SetOutcome {
	if level < EqualizerBandLevelMin {
		level = EqualizerBandLevelMin
	}
	if level > EqualizerBandLevelMax {
		level = EqualizerBandLevelMax
	}
	return b.level.Set(level)
}

func (b EqualizerBand) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        Identifier    `json:"id"`
		Frequency int           `json:"frequency"`
		Level     Nullable[int] `json:"level"`
	}{ID: b.id, Frequency: b.frequency, Level: b.level})
}

func (b *EqualizerBand) UnmarshalJSON(data []byte) error {
	var w struct {
		ID        Identifier    `json:"id"`
		Frequency int           `json:"frequency"`
		Level     Nullable[int] `json:"level"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	b.id, b.frequency, b.level = w.ID, w.Frequency, w.Level
	return nil
}

// EqualizerPreset is a named, 10-band equalizer configuration selectable
// by zones operating in preset mode.
type EqualizerPreset struct {
	id    Identifier
	name  Nullable[string]
	bands [EqualizerBandCount]EqualizerBand
}

// NewEqualizerPreset constructs a preset with its 10 bands' frequencies
// fixed, per the hardware-defined table in equalizer_presets_table.go.
func NewEqualizerPreset(id Identifier, frequencies [EqualizerBandCount]int) EqualizerPreset {
	p := EqualizerPreset{id: id}
	for i, f := range frequencies {
		p.bands[i] = NewEqualizerBand(Identifier(i+1), f)
	}
	return p
}

// ID returns the preset identifier.
func (p EqualizerPreset) ID() Identifier { return p.id }

// Name returns the preset name, or ErrNotInitialized.
func (p EqualizerPreset) Name() (string, error) { return p.name.Get() }

// SetName sets the preset name, validated per ValidateName.
func (p *EqualizerPreset) SetName(name string) (SetOutcome, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}
	return p.name.Set(name), nil
}

// Band returns a pointer to the band with the given identifier (1..10),
// or an error if out of range. Bands' identifiers always equal 1..10
// (spec.md §3 invariant), so this never returns nil without an error.
func (p *EqualizerPreset) Band(id Identifier) (*EqualizerBand, error) {
	if !id.IsValid(EqualizerBandCount) {
		return nil, ErrOutOfRange("band").withMessage(fmt.Sprintf("band id %d out of range [1, %d]", id, EqualizerBandCount))
	}
	return &p.bands[id-1], nil
}

// Bands returns all 10 bands in identifier order.
func (p *EqualizerPreset) Bands() []*EqualizerBand {
	out := make([]*EqualizerBand, EqualizerBandCount)
	for i := range p.bands {
		out[i] = &p.bands[i]
	}
	return out
}

func (p EqualizerPreset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID    Identifier                        `json:"id"`
		Name  Nullable[string]                  `json:"name"`
		Bands [EqualizerBandCount]EqualizerBand `json:"bands"`
	}{ID: p.id, Name: p.name, Bands: p.bands})
}

func (p *EqualizerPreset) UnmarshalJSON(data []byte) error {
	var w struct {
		ID    Identifier                        `json:"id"`
		Name  Nullable[string]                  `json:"name"`
		Bands [EqualizerBandCount]EqualizerBand `json:"bands"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.id, p.name, p.bands = w.ID, w.Name, w.Bands
	return nil
}
