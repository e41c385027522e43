package model

import "encoding/json"

// Volume bounds, per spec.md §3.
const (
	VolumeMin = -80
	VolumeMax = 0
)

// Volume is the embedded volume/mute/fixed triple shared by Zone and,
// derived, by Group. Grounded in original_source's VolumeModel.{hpp,cpp}:
// level and mute are independently nullable; "fixed" (the original calls
// it "locked") gates whether level may be set at all.
type Volume struct {
	level Nullable[int]
	mute  Nullable[bool]
	fixed bool
}

// Level returns the current attenuation in dB, or ErrNotInitialized.
func (v Volume) Level() (int, error) { return v.level.Get() }

// Mute returns the current mute state, or ErrNotInitialized.
func (v Volume) Mute() (bool, error) { return v.mute.Get() }

// Fixed reports whether the volume level is locked against mutation.
func (v Volume) Fixed() bool { return v.fixed }

// SetFixed toggles the fixed/locked flag. This is a configuration-time
// property, not itself subject to VolumeLocked.
func (v *Volume) SetFixed(fixed bool) { v.fixed = fixed }

// SetLevel sets the attenuation level. Fails with VolumeLocked if fixed,
// OutOfRange if outside [-80, 0].
func (v *Volume) SetLevel(db int) (SetOutcome, error) {
	if v.fixed {
		return 0, ErrVolumeLocked
	}
	if db < VolumeMin || db > VolumeMax {
		return 0, ErrOutOfRange("level")
	}
	return v.level.Set(db), nil
}

// Adjust applies a relative delta to the level, clamping to range. Used
// for the wire "U"/"D" (up/down) adjust operations (spec.md §6).
func (v *Volume) Adjust(delta int) (SetOutcome, int, error) {
	cur, err := v.level.Get()
	if err != nil {
		cur = VolumeMin
	}
	next := cur + delta
	if next > VolumeMax {
		next = VolumeMax
	}
	if next < VolumeMin {
		next = VolumeMin
	}
	outcome, err := v.SetLevel(next)
	return outcome, next, err
}

// SetMute sets the mute flag.
func (v *Volume) SetMute(mute bool) SetOutcome {
	return v.mute.Set(mute)
}

// ToggleMute flips the mute flag and returns the new state.
func (v *Volume) ToggleMute() bool {
	cur, _ := v.mute.Get()
	next := !cur
	v.mute.Set(next)
	return next
}

type wireVolume struct {
	Level Nullable[int]  `json:"level"`
	Mute  Nullable[bool] `json:"mute"`
	Fixed bool           `json:"fixed"`
}

// MarshalJSON exposes Volume's unexported fields for store.JSONStore's
// snapshot persistence without relaxing the package's invariant
// enforcement (callers outside this package still go through SetLevel/
// SetMute/SetFixed).
func (v Volume) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireVolume{Level: v.level, Mute: v.mute, Fixed: v.fixed})
}

// UnmarshalJSON parses the wire form written by MarshalJSON.
func (v *Volume) UnmarshalJSON(data []byte) error {
	var w wireVolume
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	v.level, v.mute, v.fixed = w.Level, w.Mute, w.Fixed
	return nil
}
