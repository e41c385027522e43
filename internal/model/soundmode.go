package model

import "encoding/json"

// SoundModeKind enumerates a zone's selectable DSP path. Modes are
// mutually exclusive, but switching between them does not destroy the
// per-mode settings (spec.md §3) — a zone keeps its zone-equalizer band
// levels, its tone settings, and its crossover frequencies all at once;
// only the *active* one is named by SoundModeKind.
type SoundModeKind int

const (
	SoundModeDisabled SoundModeKind = iota
	SoundModeZoneEqualizer
	SoundModePresetEqualizer
	SoundModeTone
	SoundModeLowpass
	SoundModeHighpass
)

func (k SoundModeKind) String() string {
	switch k {
	case SoundModeDisabled:
		return "disabled"
	case SoundModeZoneEqualizer:
		return "zoneEqualizer"
	case SoundModePresetEqualizer:
		return "presetEqualizer"
	case SoundModeTone:
		return "tone"
	case SoundModeLowpass:
		return "lowpass"
	case SoundModeHighpass:
		return "highpass"
	default:
		return "unknown"
	}
}

// SoundMode holds the active DSP path selection, plus the preset
// identifier when the active mode is presetEqualizer.
type SoundMode struct {
	kind     Nullable[SoundModeKind]
	presetID Identifier // valid only when kind == SoundModePresetEqualizer
}

// Kind returns the active sound mode, or ErrNotInitialized.
func (s SoundMode) Kind() (SoundModeKind, error) { return s.kind.Get() }

// PresetID returns the selected equalizer preset identifier. Only
// meaningful when Kind() == SoundModePresetEqualizer.
func (s SoundMode) PresetID() Identifier { return s.presetID }

// SetDisabled, SetZoneEqualizer, SetToneMode, SetLowpassMode, and SetHighpassMode
// switch to the named mode without disturbing any other mode's settings.
func (s *SoundMode) SetDisabled() SetOutcome      { return s.kind.Set(SoundModeDisabled) }
func (s *SoundMode) SetZoneEqualizer() SetOutcome { return s.kind.Set(SoundModeZoneEqualizer) }
func (s *SoundMode) SetToneMode() SetOutcome      { return s.kind.Set(SoundModeTone) }
func (s *SoundMode) SetLowpassMode() SetOutcome   { return s.kind.Set(SoundModeLowpass) }
func (s *SoundMode) SetHighpassMode() SetOutcome  { return s.kind.Set(SoundModeHighpass) }

// SetPresetEqualizer switches to preset-equalizer mode selecting preset id.
func (s *SoundMode) SetPresetEqualizer(id Identifier, max Identifier) (SetOutcome, error) {
	if err := ValidateIdentifier(id, max, "presetID"); err != nil {
		return 0, err
	}
	outcome := s.kind.Set(SoundModePresetEqualizer)
	if s.presetID != id {
		s.presetID = id
		outcome = Changed
	}
	return outcome, nil
}

func (s SoundMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     Nullable[SoundModeKind] `json:"kind"`
		PresetID Identifier              `json:"presetId"`
	}{Kind: s.kind, PresetID: s.presetID})
}

func (s *SoundMode) UnmarshalJSON(data []byte) error {
	var w struct {
		Kind     Nullable[SoundModeKind] `json:"kind"`
		PresetID Identifier              `json:"presetId"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.kind, s.presetID = w.Kind, w.PresetID
	return nil
}
