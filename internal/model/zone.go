package model

import (
	"encoding/json"
	"fmt"
)

// Zone is one addressable audio output channel with independent volume,
// mute, tone, and source selection (spec.md §3/GLOSSARY).
type Zone struct {
	id       Identifier
	name     Nullable[string]
	sourceID Nullable[Identifier]

	Volume    Volume
	Balance   Balance
	Tone      Tone
	SoundMode SoundMode
	Lowpass   Crossover
	Highpass  Crossover

	// zoneBands are the zone's own 10-band equalizer, distinct from any
	// EqualizerPreset — selected when SoundMode.Kind() ==
	// SoundModeZoneEqualizer (spec.md §3: "sound mode... zoneEqualizer").
	zoneBands [EqualizerBandCount]EqualizerBand
}

// NewZone constructs a zone with its identifier set, zone-equalizer bands
// carrying the standard frequency ladder, and every other property
// uninitialized.
func NewZone(id Identifier) Zone {
	z := Zone{id: id}
	for i, f := range equalizerPresetFrequencies {
		z.zoneBands[i] = NewEqualizerBand(Identifier(i+1), f)
	}
	return z
}

// ID returns the zone identifier.
func (z Zone) ID() Identifier { return z.id }

// Name returns the zone name, or ErrNotInitialized.
func (z Zone) Name() (string, error) { return z.name.Get() }

// SetName sets the zone name, validated per ValidateName.
func (z *Zone) SetName(name string) (SetOutcome, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}
	return z.name.Set(name), nil
}

// SourceID returns the zone's selected source, or ErrNotInitialized.
func (z Zone) SourceID() (Identifier, error) { return z.sourceID.Get() }

// SetSourceID sets the zone's selected source. Fails OutOfRange if
// outside [1, sourcesMax] (spec.md §3: "source identifier ∈ [1,
// sourcesMax]").
func (z *Zone) SetSourceID(id Identifier, sourcesMax Identifier) (SetOutcome, error) {
	if err := ValidateIdentifier(id, sourcesMax, "sourceID"); err != nil {
		return 0, err
	}
	return z.sourceID.Set(id), nil
}

// ZoneEqualizerBand returns the zone's own equalizer band (1..10),
// independent of any preset's bands.
func (z *Zone) ZoneEqualizerBand(id Identifier) (*EqualizerBand, error) {
	if !id.IsValid(EqualizerBandCount) {
		return nil, ErrOutOfRange("band").withMessage(fmt.Sprintf("band id %d out of range [1, %d]", id, EqualizerBandCount))
	}
	return &z.zoneBands[id-1], nil
}

// ZoneEqualizerBands returns all 10 of the zone's own bands.
func (z *Zone) ZoneEqualizerBands() []*EqualizerBand {
	out := make([]*EqualizerBand, EqualizerBandCount)
	for i := range z.zoneBands {
		out[i] = &z.zoneBands[i]
	}
	return out
}

type wireZone struct {
	ID        Identifier                        `json:"id"`
	Name      Nullable[string]                  `json:"name"`
	SourceID  Nullable[Identifier]              `json:"sourceId"`
	Volume    Volume                            `json:"volume"`
	Balance   Balance                           `json:"balance"`
	Tone      Tone                              `json:"tone"`
	SoundMode SoundMode                         `json:"soundMode"`
	Lowpass   Crossover                         `json:"lowpass"`
	Highpass  Crossover                         `json:"highpass"`
	ZoneBands [EqualizerBandCount]EqualizerBand `json:"zoneBands"`
}

func (z Zone) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireZone{
		ID: z.id, Name: z.name, SourceID: z.sourceID,
		Volume: z.Volume, Balance: z.Balance, Tone: z.Tone,
		SoundMode: z.SoundMode, Lowpass: z.Lowpass, Highpass: z.Highpass,
		ZoneBands: z.zoneBands,
	})
}

func (z *Zone) UnmarshalJSON(data []byte) error {
	var w wireZone
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	z.id, z.name, z.sourceID = w.ID, w.Name, w.SourceID
	z.Volume, z.Balance, z.Tone = w.Volume, w.Balance, w.Tone
	z.SoundMode, z.Lowpass, z.Highpass = w.SoundMode, w.Lowpass, w.Highpass
	z.zoneBands = w.ZoneBands
	return nil
}
