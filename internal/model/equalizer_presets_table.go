package model

// equalizerPresetFrequencies holds the 10 hardware-fixed center
// frequencies for each of the built-in equalizer presets, indexed
// 0-based by preset identifier - 1. Grounded in original_source's
// EqualizerPresetsModel.cpp default construction, which seeds every
// preset with the same ISO-standard 10-band graphic EQ ladder; this
// table is the concrete content SPEC_FULL.md's equalizer-preset
// enrichment calls for (spec.md §3 left the frequencies abstract).
var equalizerPresetFrequencies = [EqualizerBandCount]int{
	32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000,
}

// NewDefaultEqualizerPresets constructs n presets (1..n), each with the
// standard 10-band frequency ladder and a placeholder name.
func NewDefaultEqualizerPresets(n Identifier) []EqualizerPreset {
	out := make([]EqualizerPreset, 0, n)
	for i := Identifier(1); i <= n; i++ {
		preset := NewEqualizerPreset(i, equalizerPresetFrequencies)
		preset.SetName(defaultPresetName(i))
		out = append(out, preset)
	}
	return out
}

func defaultPresetName(id Identifier) string {
	names := []string{"Flat", "Rock", "Jazz", "Classical", "Pop", "Vocal", "Dance", "Movie"}
	idx := int(id) - 1
	if idx >= 0 && idx < len(names) {
		return names[idx]
	}
	return "Preset"
}
