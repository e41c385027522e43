package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/openhlxgo/hlx/internal/model"
)

// Format renders a frame's payload (the bytes that go between the
// enclosing brackets) for the given operation and operands. It is a
// pure function: same inputs always produce the same bytes, no trailing
// whitespace, no alternate numeric radixes, and signed integers carry a
// "-" only when negative (spec.md §4.1's "byte-exactness" requirement).
//
// Format does not validate operand ranges; callers are expected to have
// already validated via the model package before formatting a response
// or request, since Format's job is purely textual.

func FormatZoneQuery(zone model.Identifier) string {
	return fmt.Sprintf("Q%s%d", tagZone, zone)
}

func FormatZoneVolumeSet(zone model.Identifier, level int) string {
	return fmt.Sprintf("V%s%dR%d", tagZone, zone, level)
}

func FormatZoneVolumeIncrease(zone model.Identifier) string {
	return fmt.Sprintf("V%s%dU", tagZone, zone)
}

func FormatZoneVolumeDecrease(zone model.Identifier) string {
	return fmt.Sprintf("V%s%dD", tagZone, zone)
}

func FormatZoneMute(zone model.Identifier, mute bool) string {
	if mute {
		return fmt.Sprintf("VM%s%d", tagZone, zone)
	}
	return fmt.Sprintf("VUM%s%d", tagZone, zone)
}

func FormatZoneMuteToggle(zone model.Identifier) string {
	return fmt.Sprintf("VMT%s%d", tagZone, zone)
}

func FormatZoneSourceSet(zone, source model.Identifier) string {
	return fmt.Sprintf("C%s%d%s%d", tagZone, zone, tagSource, source)
}

// FormatZoneBalanceSet renders the tagged wire form for a continuous
// model bias, delegating the L/R conversion to EncodeBalance.
func FormatZoneBalanceSet(zone model.Identifier, bias int) string {
	return fmt.Sprintf("B%s%d%s", tagZone, zone, EncodeBalance(bias))
}

func FormatZoneToneSet(zone model.Identifier, bass, treble int) string {
	return fmt.Sprintf("T%s%d%d%d", tagZone, zone, bass, treble)
}

func FormatZoneNameSet(zone model.Identifier, name string) string {
	return fmt.Sprintf(`N%s%d"%s"`, tagZone, zone, name)
}

func FormatZoneLowpassSet(zone model.Identifier, hz int) string {
	return fmt.Sprintf("XL%s%d%d", tagZone, zone, hz)
}

func FormatZoneHighpassSet(zone model.Identifier, hz int) string {
	return fmt.Sprintf("XH%s%d%d", tagZone, zone, hz)
}

func FormatZoneEqualizerBandSet(zone, band model.Identifier, level int) string {
	return fmt.Sprintf("E%s%dB%d%d", tagZone, zone, band, level)
}

func FormatZoneSoundModeSet(zone model.Identifier, kind model.SoundModeKind, presetID model.Identifier) string {
	return fmt.Sprintf("M%s%d%s", tagZone, zone, soundModeToken(kind, presetID))
}

func soundModeToken(kind model.SoundModeKind, presetID model.Identifier) string {
	switch kind {
	case model.SoundModeZoneEqualizer:
		return "ZONE"
	case model.SoundModeTone:
		return "TONE"
	case model.SoundModeLowpass:
		return "LOWPASS"
	case model.SoundModeHighpass:
		return "HIGHPASS"
	case model.SoundModePresetEqualizer:
		return fmt.Sprintf("EQ%d", presetID)
	default:
		return "DISABLED"
	}
}

// ParseSoundModeToken is soundModeToken's inverse, decoding the capture
// group matched by the OpZoneSoundModeSet pattern. presetID is only
// meaningful when the returned kind is SoundModePresetEqualizer.
func ParseSoundModeToken(token string) (kind model.SoundModeKind, presetID model.Identifier, err error) {
	switch {
	case token == "DISABLED":
		return model.SoundModeDisabled, 0, nil
	case token == "ZONE":
		return model.SoundModeZoneEqualizer, 0, nil
	case token == "TONE":
		return model.SoundModeTone, 0, nil
	case token == "LOWPASS":
		return model.SoundModeLowpass, 0, nil
	case token == "HIGHPASS":
		return model.SoundModeHighpass, 0, nil
	case strings.HasPrefix(token, "EQ"):
		n, err := strconv.Atoi(token[2:])
		if err != nil {
			return 0, 0, fmt.Errorf("protocol: malformed sound mode token %q: %w", token, err)
		}
		return model.SoundModePresetEqualizer, model.Identifier(n), nil
	default:
		return 0, 0, fmt.Errorf("protocol: unrecognized sound mode token %q", token)
	}
}

func FormatGroupQuery(group model.Identifier) string {
	return fmt.Sprintf("Q%s%d", tagGroup, group)
}

func FormatGroupVolumeSet(group model.Identifier, level int) string {
	return fmt.Sprintf("V%s%dR%d", tagGroup, group, level)
}

func FormatGroupMute(group model.Identifier, mute bool) string {
	if mute {
		return fmt.Sprintf("VM%s%d", tagGroup, group)
	}
	return fmt.Sprintf("VUM%s%d", tagGroup, group)
}

// FormatGroupSourceReport renders a group's source-state report, which
// is "X" when the membership is mixed (spec.md §6: "[CG<g>IX]") and the
// source identifier otherwise. This shape is response/report-only; "X"
// is never accepted as an input operand (spec.md §6: "it is never valid
// as an input"). The request and response tables share the
// OpGroupSourceSet pattern, so the request table does match an "X"
// operand; the server and proxy request handlers reject it.
func FormatGroupSourceReport(group model.Identifier, source *model.Identifier) string {
	if source == nil {
		return fmt.Sprintf("C%s%d%sX", tagGroup, group, tagSource)
	}
	return fmt.Sprintf("C%s%d%s%d", tagGroup, group, tagSource, *source)
}

func FormatGroupNameSet(group model.Identifier, name string) string {
	return fmt.Sprintf(`N%s%d"%s"`, tagGroup, group, name)
}

func FormatGroupZoneAdd(group, zone model.Identifier) string {
	return fmt.Sprintf("AG%d%s%d", group, tagZone, zone)
}

func FormatGroupZoneRemove(group, zone model.Identifier) string {
	return fmt.Sprintf("RG%d%s%d", group, tagZone, zone)
}

func FormatSourceQuery(source model.Identifier) string {
	return fmt.Sprintf("Q%s%d", tagSource, source)
}

func FormatSourceNameSet(source model.Identifier, name string) string {
	return fmt.Sprintf(`N%s%d"%s"`, tagSource, source, name)
}

func FormatFavoriteQuery(favorite model.Identifier) string {
	return fmt.Sprintf("Q%s%d", tagFavorite, favorite)
}

func FormatFavoriteNameSet(favorite model.Identifier, name string) string {
	return fmt.Sprintf(`N%s%d"%s"`, tagFavorite, favorite, name)
}

func FormatEqualizerPresetQuery(preset model.Identifier) string {
	return fmt.Sprintf("Q%s%d", tagEqualizerPreset, preset)
}

func FormatEqualizerPresetNameSet(preset model.Identifier, name string) string {
	return fmt.Sprintf(`N%s%d"%s"`, tagEqualizerPreset, preset, name)
}

func FormatEqualizerPresetBandSet(preset, band model.Identifier, level int) string {
	return fmt.Sprintf("%s%dB%d%d", tagEqualizerPreset, preset, band, level)
}

func FormatFrontPanelQuery() string {
	return fmt.Sprintf("Q%s", tagFrontPanel)
}

func FormatFrontPanelBrightnessSet(level int) string {
	return fmt.Sprintf("B%s%d", tagFrontPanel, level)
}

// FormatFrontPanelLockedRequest renders the lock-state request a client
// sends ("LFP<0|1>"), distinct from FormatFrontPanelLockedSet which
// renders the state-report shape a server echoes back (and which, per
// Dialect, may use the preserved "FPL<0|1>" wire bug instead).
func FormatFrontPanelLockedRequest(locked bool) string {
	return fmt.Sprintf("L%s%s", tagFrontPanel, boolDigit(locked))
}

// FormatFrontPanelLockedSet renders the lock-state report, honoring
// Dialect's preserved-bug switch.
func FormatFrontPanelLockedSet(d Dialect, locked bool) string {
	bit := 0
	if locked {
		bit = 1
	}
	if d.EmitDocumentedFrontPanelQuery {
		return fmt.Sprintf("FPL%dQ%sL", bit, tagFrontPanel)
	}
	return fmt.Sprintf("FPL%d", bit)
}

func FormatNetworkQuery() string {
	return fmt.Sprintf("Q%s", tagNetwork)
}

func FormatNetworkDHCPv4(on bool) string {
	return fmt.Sprintf("DHCP%s", boolDigit(on))
}

func FormatNetworkSDDP(on bool) string {
	return fmt.Sprintf("SDDP%s", boolDigit(on))
}

func FormatNetworkEUI48(mac model.EUI48) string {
	return "MAC" + mac.String()
}

func FormatNetworkHostAddress(addr model.Address) string {
	return "IP" + addr.String()
}

func FormatNetworkRouterAddress(addr model.Address) string {
	return "GW" + addr.String()
}

func FormatNetworkNetmask(addr model.Address) string {
	return "NM" + addr.String()
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

const (
	FormatSave    = "SAVE"
	FormatSaving  = "SAVING..."
	FormatLoad    = "LOAD"
	FormatReset   = "RESET"
	FormatError   = "ERROR"
)
