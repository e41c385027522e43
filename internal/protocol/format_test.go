package protocol_test

import (
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/protocol"
)

func TestFormatZoneVolumeSetMatchesWorkedExample(t *testing.T) {
	got := protocol.FormatZoneVolumeSet(3, -30)
	if got != "VO3R-30" {
		t.Fatalf("FormatZoneVolumeSet(3, -30) = %q, want VO3R-30", got)
	}
}

func TestFormatZoneMuteToggleRoundTrips(t *testing.T) {
	got := protocol.FormatZoneMuteToggle(1)
	table := protocol.BuildRequestTable()
	m, ok := table.MatchFrame(got)
	if !ok || m.Op != protocol.OpZoneMuteToggle {
		t.Fatalf("FormatZoneMuteToggle output %q did not round-trip through the request table", got)
	}
}

func TestFormatGroupSourceReportMixed(t *testing.T) {
	got := protocol.FormatGroupSourceReport(4, nil)
	if got != "CG4IX" {
		t.Fatalf("FormatGroupSourceReport(4, nil) = %q, want CG4IX", got)
	}
}

func TestFormatGroupSourceReportShared(t *testing.T) {
	src := model.Identifier(7)
	got := protocol.FormatGroupSourceReport(4, &src)
	if got != "CG4I7" {
		t.Fatalf("FormatGroupSourceReport(4, &7) = %q, want CG4I7", got)
	}
}

func TestFormatNeverEmitsTrailingWhitespace(t *testing.T) {
	outputs := []string{
		protocol.FormatZoneVolumeSet(1, 0),
		protocol.FormatZoneNameSet(1, "Kitchen"),
		protocol.FormatFrontPanelBrightnessSet(2),
	}
	for _, s := range outputs {
		if len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
			t.Fatalf("output %q has trailing whitespace", s)
		}
	}
}

func TestFormatFrontPanelLockedDialect(t *testing.T) {
	bug := protocol.FormatFrontPanelLockedSet(protocol.DefaultDialect(), true)
	if bug != "FPL1" {
		t.Fatalf("buggy dialect form = %q, want FPL1", bug)
	}
	documented := protocol.FormatFrontPanelLockedSet(protocol.Dialect{EmitDocumentedFrontPanelQuery: true}, true)
	if documented != "FPL1QFPL" {
		t.Fatalf("documented dialect form = %q, want FPL1QFPL", documented)
	}
}
