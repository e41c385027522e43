package protocol_test

import (
	"testing"

	"github.com/openhlxgo/hlx/internal/protocol"
)

// TestWorkedExamples exercises the exact wire examples from the
// protocol's worked-examples table: query zone, set zone volume,
// increase volume, mute/unmute/toggle, set source, set balance, group
// volume fan-out, group mixed source, and query network.
func TestWorkedExamples(t *testing.T) {
	table := protocol.BuildRequestTable()

	tests := []struct {
		name    string
		payload string
		wantOp  protocol.Op
	}{
		{"zoneQuery", "QO3", protocol.OpZoneQuery},
		{"zoneVolumeSet", "VO3R-30", protocol.OpZoneVolumeSet},
		{"zoneVolumeUp", "VO3U", protocol.OpZoneVolumeIncrease},
		{"zoneMute", "VMO1", protocol.OpZoneMute},
		{"zoneUnmute", "VUMO1", protocol.OpZoneUnmute},
		{"zoneMuteToggle", "VMTO1", protocol.OpZoneMuteToggle},
		{"zoneSourceSet", "CO2I5", protocol.OpZoneSourceSet},
		{"zoneBalanceLeft", "BO2L20", protocol.OpZoneBalanceSet},
		{"groupVolumeSet", "VG4R-10", protocol.OpGroupVolumeSet},
		{"groupSourceMixed", "CG4IX", protocol.OpGroupSourceSet},
		{"networkQuery", "QE", protocol.OpNetworkQuery},
		{"save", "SAVE", protocol.OpSave},
		{"reset", "RESET", protocol.OpReset},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := table.MatchFrame(tc.payload)
			if !ok {
				t.Fatalf("MatchFrame(%q) did not match any pattern", tc.payload)
			}
			if m.Op != tc.wantOp {
				t.Fatalf("MatchFrame(%q).Op = %v, want %v", tc.payload, m.Op, tc.wantOp)
			}
		})
	}
}

func TestMatchFrameCaptures(t *testing.T) {
	table := protocol.BuildRequestTable()
	m, ok := table.MatchFrame("VO3R-30")
	if !ok {
		t.Fatal("MatchFrame did not match")
	}
	if len(m.Captures) != 2 || m.Captures[0] != "3" || m.Captures[1] != "-30" {
		t.Fatalf("Captures = %v, want [3 -30]", m.Captures)
	}
}

func TestMatchFrameUnknownCommand(t *testing.T) {
	table := protocol.BuildRequestTable()
	if _, ok := table.MatchFrame("NOT A REAL COMMAND"); ok {
		t.Fatal("MatchFrame matched garbage input, want no match")
	}
}

// TestZoneSourceRejectsX confirms "X" does not leak into
// unrelated operand positions (e.g. a zone source set, which has no
// "mixed" concept).
func TestZoneSourceRejectsX(t *testing.T) {
	table := protocol.BuildRequestTable()
	if _, ok := table.MatchFrame("CO2IX"); ok {
		t.Fatal(`MatchFrame("CO2IX") matched, want no match (zone source has no "mixed" value)`)
	}
}
