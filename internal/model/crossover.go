package model

import "encoding/json"

// Crossover filter frequency ranges, per filter kind. The original HLX
// firmware (original_source's TestCrossoverModel.cpp) fixes distinct
// ranges for the lowpass and highpass filter — this is a spec.md §3
// supplement noted in SPEC_FULL.md, since the distilled spec only says
// "range carried in the model" without naming it.
const (
	LowpassFreqMin  = 32
	LowpassFreqMax  = 250
	HighpassFreqMin = 32
	HighpassFreqMax = 500
)

// FilterKind distinguishes the two crossover filter ranges.
type FilterKind int

const (
	FilterLowpass FilterKind = iota
	FilterHighpass
)

func (k FilterKind) bounds() (min, max int) {
	if k == FilterHighpass {
		return HighpassFreqMin, HighpassFreqMax
	}
	return LowpassFreqMin, LowpassFreqMax
}

// Crossover is an embedded crossover filter frequency, in Hz.
type Crossover struct {
	kind Nullable[FilterKind]
	freq Nullable[int]
}

// Frequency returns the current crossover frequency, or ErrNotInitialized.
func (c Crossover) Frequency() (int, error) { return c.freq.Get() }

// SetFrequency sets the crossover frequency for the given filter kind.
// Fails with OutOfRange outside that filter's range.
func (c *Crossover) SetFrequency(kind FilterKind, hz int) (SetOutcome, error) {
	min, max := kind.bounds()
	if hz < min || hz > max {
		return 0, ErrOutOfRange("frequency")
	}
	c.kind.Set(kind)
	return c.freq.Set(hz), nil
}

func (c Crossover) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind Nullable[FilterKind] `json:"kind"`
		Freq Nullable[int]        `json:"freq"`
	}{Kind: c.kind, Freq: c.freq})
}

func (c *Crossover) UnmarshalJSON(data []byte) error {
	var w struct {
		Kind Nullable[FilterKind] `json:"kind"`
		Freq Nullable[int]        `json:"freq"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.kind, c.freq = w.Kind, w.Freq
	return nil
}
