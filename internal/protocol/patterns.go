package protocol

import "regexp"

// Wire object-class tags, reproduced from spec.md §6's worked examples
// rather than its abstract tag list in §4.1 — the two disagree (the
// abstract list names "E" for equalizer preset, but the worked example
// "[QE]" for network query clearly ties "E" to network/Ethernet). Where
// they conflict this codec follows the concrete wire examples, since
// those are actual byte sequences and the abstract list is a gloss on
// top of them. Equalizer presets get the tag "EQ" to stay unambiguous.
const (
	tagZone            = "O"
	tagGroup           = "G"
	tagSource          = "I"
	tagFavorite        = "F"
	tagEqualizerPreset = "EQ"
	tagFrontPanel      = "FP"
	tagNetwork         = "E"
)

// id matches a dense, non-negative wire identifier: ASCII decimal, no
// leading zeros except the literal "0" (spec.md §6). Identifiers are
// never emitted as 0 on the wire (0 is the model's uninitialized
// sentinel only), but the grammar still has to parse what hardware
// sends without crashing on something unexpected.
const idPattern = `(0|[1-9][0-9]*)`

// signedInt matches a signed decimal with no leading zeros, used for
// volume/tone/crossover/balance-magnitude operands.
const signedIntPattern = `(-?(?:0|[1-9][0-9]*))`

func mustCompile(expr string) *regexp.Regexp {
	return regexp.MustCompile("^" + expr + "$")
}

// buildCommonPatterns returns the patterns identical on both the request
// and response side: anything that is simply echoed back verbatim by
// the server (volume set, mute, balance, tone, source select, name set,
// crossover, equalizer band, group membership) shares one Pattern
// between tables rather than being declared twice.
func buildCommonPatterns() []Pattern {
	return []Pattern{
		// Zone volume.
		{OpZoneVolumeSet, mustCompile(`V` + tagZone + idPattern + `R` + signedIntPattern), 2},
		{OpZoneVolumeIncrease, mustCompile(`V` + tagZone + idPattern + `U`), 1},
		{OpZoneVolumeDecrease, mustCompile(`V` + tagZone + idPattern + `D`), 1},
		{OpZoneMute, mustCompile(`VM` + tagZone + idPattern), 1},
		{OpZoneUnmute, mustCompile(`VUM` + tagZone + idPattern), 1},
		{OpZoneMuteToggle, mustCompile(`VMT` + tagZone + idPattern), 1},

		// Zone source selection: "C" + zone tag + id + "I" + source id.
		{OpZoneSourceSet, mustCompile(`C` + tagZone + idPattern + tagSource + idPattern), 2},

		// Zone balance: "B" + zone tag + id + (L|R) + magnitude.
		{OpZoneBalanceSet, mustCompile(`B` + tagZone + idPattern + `([LR])([0-9]+)`), 3},

		// Zone tone: bass and treble set atomically.
		{OpZoneToneSet, mustCompile(`T` + tagZone + idPattern + signedIntPattern + signedIntPattern), 3},

		// Zone name.
		{OpZoneNameSet, mustCompile(`N` + tagZone + idPattern + `"([^"\[\]]+)"`), 2},

		// Zone crossover.
		{OpZoneLowpassSet, mustCompile(`XL` + tagZone + idPattern + `([0-9]+)`), 2},
		{OpZoneHighpassSet, mustCompile(`XH` + tagZone + idPattern + `([0-9]+)`), 2},

		// Zone sound mode: one of disabled/zoneEqualizer/tone/lowpass/
		// highpass/presetEqualizer(<preset id>).
		{OpZoneSoundModeSet, mustCompile(`M` + tagZone + idPattern + `(DISABLED|ZONE|TONE|LOWPASS|HIGHPASS|EQ` + idPattern + `)`), 3},

		// Zone equalizer band: "E" + zone tag + zone id + "B" + band id
		// + level.
		{OpZoneEqualizerBandSet, mustCompile(`E` + tagZone + idPattern + `B` + idPattern + signedIntPattern), 3},

		// Group volume, mute, source, name, membership.
		{OpGroupVolumeSet, mustCompile(`V` + tagGroup + idPattern + `R` + signedIntPattern), 2},
		{OpGroupVolumeIncrease, mustCompile(`V` + tagGroup + idPattern + `U`), 1},
		{OpGroupVolumeDecrease, mustCompile(`V` + tagGroup + idPattern + `D`), 1},
		{OpGroupMute, mustCompile(`VM` + tagGroup + idPattern), 1},
		{OpGroupUnmute, mustCompile(`VUM` + tagGroup + idPattern), 1},
		{OpGroupMuteToggle, mustCompile(`VMT` + tagGroup + idPattern), 1},
		{OpGroupSourceSet, mustCompile(`C` + tagGroup + idPattern + tagSource + `(X|[0-9]+)`), 2},
		{OpGroupNameSet, mustCompile(`N` + tagGroup + idPattern + `"([^"\[\]]+)"`), 2},
		{OpGroupZoneAdd, mustCompile(`AG` + idPattern + tagZone + idPattern), 2},
		{OpGroupZoneRemove, mustCompile(`RG` + idPattern + tagZone + idPattern), 2},

		// Source and favorite names.
		{OpSourceNameSet, mustCompile(`N` + tagSource + idPattern + `"([^"\[\]]+)"`), 2},
		{OpFavoriteNameSet, mustCompile(`N` + tagFavorite + idPattern + `"([^"\[\]]+)"`), 2},

		// Equalizer preset name and band.
		{OpEqualizerPresetNameSet, mustCompile(`N` + tagEqualizerPreset + idPattern + `"([^"\[\]]+)"`), 2},
		{OpEqualizerPresetBandSet, mustCompile(tagEqualizerPreset + idPattern + `B` + idPattern + signedIntPattern), 3},

		// Front panel.
		{OpFrontPanelBrightnessSet, mustCompile(`B` + tagFrontPanel + `([0-3])`), 1},
		{OpFrontPanelLockedSet, mustCompile(`L` + tagFrontPanel + `([01])`), 1},

		// Network.
		{OpNetworkDHCPv4Set, mustCompile(`DHCP([01])`), 1},
		{OpNetworkSDDPSet, mustCompile(`SDDP([01])`), 1},
		{OpNetworkEUI48Report, mustCompile(`MAC([0-9A-Fa-f:]{17})`), 1},
		{OpNetworkHostAddressReport, mustCompile(`IP([0-9A-Fa-f.:]+)`), 1},
		{OpNetworkRouterAddressReport, mustCompile(`GW([0-9A-Fa-f.:]+)`), 1},
		{OpNetworkNetmaskReport, mustCompile(`NM([0-9A-Fa-f.:]+)`), 1},

		// Singletons.
		{OpSave, mustCompile(`SAVE`), 0},
		{OpSaving, mustCompile(`SAVING\.\.\.`), 0},
		{OpLoad, mustCompile(`LOAD`), 0},
		{OpReset, mustCompile(`RESET`), 0},
		{OpError, mustCompile(`ERROR`), 0},
	}
}

// buildQueryPatterns returns the query patterns, identical in shape on
// request and response sides (a query's "response" is the matcher for
// an echoed re-query, used by the exchange engine to recognize a
// server's unsolicited full-state dump after e.g. RESET).
func buildQueryPatterns() []Pattern {
	return []Pattern{
		{OpZoneQuery, mustCompile(`Q` + tagZone + idPattern), 1},
		{OpGroupQuery, mustCompile(`Q` + tagGroup + idPattern), 1},
		{OpSourceQuery, mustCompile(`Q` + tagSource + idPattern), 1},
		{OpFavoriteQuery, mustCompile(`Q` + tagFavorite + idPattern), 1},
		{OpEqualizerPresetQuery, mustCompile(`Q` + tagEqualizerPreset + idPattern), 1},
		{OpFrontPanelQuery, mustCompile(`Q` + tagFrontPanel), 0},
		{OpNetworkQuery, mustCompile(`Q` + tagNetwork), 0},
	}
}

// BuildRequestTable returns the dispatch table the server matches
// inbound request frames against.
func BuildRequestTable() *Table {
	patterns := append(buildCommonPatterns(), buildQueryPatterns()...)
	return NewTable(patterns)
}

// BuildResponseTable returns the dispatch table the client matches
// inbound response/notification frames against. Response frames share
// the same shapes as requests (the server echoes mutations back
// byte-for-byte, spec.md §6), plus the two front-panel state-report
// shapes that never appear as requests.
func BuildResponseTable() *Table {
	patterns := append(buildCommonPatterns(), buildQueryPatterns()...)
	patterns = append(patterns, frontPanelReportPatterns()...)
	return NewTable(patterns)
}

// frontPanelReportPatterns returns the front-panel query-response
// shapes, including the preserved wire bug (spec.md §6/§9): the actual
// hardware emits "FPL<0|1>" for the lock-state half of a front-panel
// query response (reusing the lock-set command's "L" mnemonic
// ambiguously) rather than the documented "FPL<0|1>QFPL" form. Dialect
// controls which form is emitted; both are always *parseable* here so a
// client built against either firmware revision still works.
func frontPanelReportPatterns() []Pattern {
	return []Pattern{
		{OpFrontPanelLockedSet, mustCompile(`FPL([01])`), 1},
		{OpFrontPanelLockedSet, mustCompile(`FPL([01])Q` + tagFrontPanel + `L`), 1},
	}
}
