package model_test

import (
	"encoding/json"
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
)

func TestZoneSetNameAndSourceID(t *testing.T) {
	z := model.NewZone(3)
	if _, err := z.Name(); model.KindOf(err) != model.KindNotInitialized {
		t.Fatalf("Name() on fresh zone: got err %v, want NotInitialized", err)
	}

	if _, err := z.SetSourceID(9, 4); model.KindOf(err) != model.KindOutOfRange {
		t.Fatalf("SetSourceID(9, max=4) = %v, want OutOfRange", err)
	}
	if _, err := z.SetSourceID(2, 4); err != nil {
		t.Fatalf("SetSourceID(2, max=4) error = %v", err)
	}
	if id, err := z.SourceID(); err != nil || id != 2 {
		t.Fatalf("SourceID() = (%d, %v), want (2, nil)", id, err)
	}
}

func TestZoneJSONRoundTrip(t *testing.T) {
	z := model.NewZone(5)
	z.SetName("Kitchen")
	z.SetSourceID(1, 8)
	z.Volume.SetLevel(-20)
	z.Volume.SetMute(true)
	if _, err := z.ZoneEqualizerBand(1); err != nil {
		t.Fatalf("ZoneEqualizerBand(1) error = %v", err)
	}
	band, _ := z.ZoneEqualizerBand(1)
	band.SetLevel(4)

	data, err := json.Marshal(z)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var back model.Zone
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if back.ID() != 5 {
		t.Fatalf("ID() = %d, want 5", back.ID())
	}
	if name, err := back.Name(); err != nil || name != "Kitchen" {
		t.Fatalf("Name() = (%q, %v), want (\"Kitchen\", nil)", name, err)
	}
	if sid, err := back.SourceID(); err != nil || sid != 1 {
		t.Fatalf("SourceID() = (%d, %v), want (1, nil)", sid, err)
	}
	if lvl, err := back.Volume.Level(); err != nil || lvl != -20 {
		t.Fatalf("Volume.Level() = (%d, %v), want (-20, nil)", lvl, err)
	}
	if mute, err := back.Volume.Mute(); err != nil || !mute {
		t.Fatalf("Volume.Mute() = (%v, %v), want (true, nil)", mute, err)
	}
	backBand, err := back.ZoneEqualizerBand(1)
	if err != nil {
		t.Fatalf("ZoneEqualizerBand(1) on round-tripped zone: %v", err)
	}
	if lvl, err := backBand.Level(); err != nil || lvl != 4 {
		t.Fatalf("ZoneEqualizerBand(1).Level() = (%d, %v), want (4, nil)", lvl, err)
	}
	if backBand.Frequency() != band.Frequency() {
		t.Fatalf("ZoneEqualizerBand(1).Frequency() = %d, want %d (fixed ladder must survive round-trip)", backBand.Frequency(), band.Frequency())
	}
}
