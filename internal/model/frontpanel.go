package model

import "encoding/json"

// FrontPanel brightness bounds, per spec.md §3.
const (
	BrightnessMin = 0
	BrightnessMax = 3
)

// FrontPanel models the unit's front-panel brightness and lock state.
// It is a singleton — there is exactly one per application controller,
// queried with "QFP" rather than an identifier (spec.md §4.1).
type FrontPanel struct {
	brightness Nullable[int]
	locked     Nullable[bool]
}

// Brightness returns the current brightness level, or ErrNotInitialized.
func (f FrontPanel) Brightness() (int, error) { return f.brightness.Get() }

// Locked returns the current lock state, or ErrNotInitialized.
func (f FrontPanel) Locked() (bool, error) { return f.locked.Get() }

// SetBrightness sets the brightness level. Fails OutOfRange outside
// [0, 3].
func (f *FrontPanel) SetBrightness(level int) (SetOutcome, error) {
	if level < BrightnessMin || level > BrightnessMax {
		return 0, ErrOutOfRange("brightness")
	}
	return f.brightness.Set(level), nil
}

// SetLocked sets the lock state.
func (f *FrontPanel) SetLocked(locked bool) SetOutcome {
	return f.locked.Set(locked)
}

func (f FrontPanel) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Brightness Nullable[int]  `json:"brightness"`
		Locked     Nullable[bool] `json:"locked"`
	}{Brightness: f.brightness, Locked: f.locked})
}

func (f *FrontPanel) UnmarshalJSON(data []byte) error {
	var w struct {
		Brightness Nullable[int]  `json:"brightness"`
		Locked     Nullable[bool] `json:"locked"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	f.brightness, f.locked = w.Brightness, w.Locked
	return nil
}
