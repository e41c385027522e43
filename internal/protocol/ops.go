package protocol

// Op identifies a decoded operation once a frame has matched a Pattern.
// It is the dispatch key the client's response matcher and the server's
// request handler switch on.
type Op int

const (
	OpUnknown Op = iota

	OpZoneQuery
	OpZoneVolumeSet
	OpZoneVolumeIncrease
	OpZoneVolumeDecrease
	OpZoneMute
	OpZoneUnmute
	OpZoneMuteToggle
	OpZoneSourceSet
	OpZoneBalanceSet
	OpZoneToneSet
	OpZoneNameSet
	OpZoneLowpassSet
	OpZoneHighpassSet
	OpZoneSoundModeSet
	OpZoneEqualizerBandSet

	OpGroupQuery
	OpGroupVolumeSet
	OpGroupVolumeIncrease
	OpGroupVolumeDecrease
	OpGroupMute
	OpGroupUnmute
	OpGroupMuteToggle
	OpGroupSourceSet
	OpGroupNameSet
	OpGroupZoneAdd
	OpGroupZoneRemove

	OpSourceQuery
	OpSourceNameSet

	OpFavoriteQuery
	OpFavoriteNameSet

	OpEqualizerPresetQuery
	OpEqualizerPresetNameSet
	OpEqualizerPresetBandSet

	OpFrontPanelQuery
	OpFrontPanelBrightnessSet
	OpFrontPanelLockedSet

	OpNetworkQuery
	OpNetworkDHCPv4Set
	OpNetworkSDDPSet
	OpNetworkEUI48Report
	OpNetworkHostAddressReport
	OpNetworkRouterAddressReport
	OpNetworkNetmaskReport

	OpSave
	OpSaving
	OpLoad
	OpReset
	OpError
)

// Match is the result of successfully matching a frame against the
// dispatch table: the operation it names, plus its captured operands in
// pattern order (identifiers, then command-specific operands).
type Match struct {
	Op       Op
	Captures []string
}
