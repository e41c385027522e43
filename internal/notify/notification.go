// Package notify implements the state-change notification bus: a
// synchronous, single-run-context publish mechanism carrying a tagged
// sum type of flat, identifier-carrying variants (spec.md §4.3).
package notify

import "github.com/openhlxgo/hlx/internal/model"

// Notification is the sealed interface every variant implements. It is
// a marker method rather than any shared behavior, since variants share
// no fields in common beyond "carries an identifier" (spec.md §4.3:
// "variants are flat, never nested").
type Notification interface {
	isNotification()
}

type ZoneVolume struct {
	Zone  model.Identifier
	Level int
}

type ZoneMute struct {
	Zone model.Identifier
	Mute bool
}

type ZoneSource struct {
	Zone   model.Identifier
	Source model.Identifier
}

type ZoneName struct {
	Zone model.Identifier
	Name string
}

type ZoneBalance struct {
	Zone model.Identifier
	Bias int
}

type ZoneTone struct {
	Zone         model.Identifier
	Bass, Treble int
}

type ZoneSoundMode struct {
	Zone     model.Identifier
	Kind     model.SoundModeKind
	PresetID model.Identifier
}

type ZoneEqualizerBand struct {
	Zone, Band model.Identifier
	Level      int
}

type ZoneHighpass struct {
	Zone      model.Identifier
	Frequency int
}

type ZoneLowpass struct {
	Zone      model.Identifier
	Frequency int
}

// ZoneEqualizerPreset fires when a zone's active preset selection
// changes while its sound mode remains presetEqualizer, distinct from
// ZoneSoundMode which fires on a mode-kind transition (spec.md §4.3
// lists them as separate variants).
type ZoneEqualizerPreset struct {
	Zone, Preset model.Identifier
}

type GroupName struct {
	Group model.Identifier
	Name  string
}

// GroupSource carries nil Source when the group's membership has mixed
// sources (spec.md §3's "mixed" derived state).
type GroupSource struct {
	Group  model.Identifier
	Source *model.Identifier
}

type GroupMute struct {
	Group model.Identifier
	Mute  bool
}

type GroupVolume struct {
	Group model.Identifier
	Level int
}

type GroupZoneAdded struct {
	Group, Zone model.Identifier
}

type GroupZoneRemoved struct {
	Group, Zone model.Identifier
}

type SourceName struct {
	Source model.Identifier
	Name   string
}

type FavoriteName struct {
	Favorite model.Identifier
	Name     string
}

type EqualizerPresetName struct {
	Preset model.Identifier
	Name   string
}

type EqualizerPresetBand struct {
	Preset, Band model.Identifier
	Level        int
}

type FrontPanelBrightness struct {
	Level int
}

type FrontPanelLocked struct {
	Locked bool
}

type NetworkDHCPv4Enabled struct {
	Enabled bool
}

type NetworkSDDPEnabled struct {
	Enabled bool
}

type NetworkEthernetEUI48 struct {
	MAC model.EUI48
}

type NetworkHostAddress struct {
	Address model.Address
}

type NetworkDefaultRouterAddress struct {
	Address model.Address
}

type NetworkNetmask struct {
	Address model.Address
}

// ConfigurationLoaded, ConfigurationSaved, ConfigurationReset, and
// ConfigurationSaving are the configuration-lifecycle notifications
// (spec.md §4.4's dirty-flag/save-timer cycle); none carries an
// identifier since configuration is a singleton.
type ConfigurationLoaded struct{}
type ConfigurationSaved struct{}
type ConfigurationReset struct{}
type ConfigurationSaving struct{}

// ProtocolError reports a protocol-level error detected on the client
// side (spec.md §7's "Protocol errors" class: Malformed, UnknownCommand,
// FrameOverflow, UnexpectedResponse). The connection survives; this is
// purely informational.
type ProtocolError struct {
	Kind    model.Kind
	Message string
}

// RefreshProgress reports completion of the client application
// controller's refresh() sweep (spec.md §4.4): Percent is floor-rounded
// (completed / total) · 100, with partial progress within a
// sub-controller weighted linearly.
type RefreshProgress struct {
	Percent int
}

// Refreshed is the terminal notification of a refresh() sweep. It is
// strictly the last notification delivered for its refresh batch;
// group-derived notifications are published before it (spec.md §4.4).
type Refreshed struct{}

func (RefreshProgress) isNotification() {}
func (Refreshed) isNotification()       {}
func (ProtocolError) isNotification()   {}

func (ZoneVolume) isNotification()                  {}
func (ZoneMute) isNotification()                    {}
func (ZoneSource) isNotification()                  {}
func (ZoneName) isNotification()                    {}
func (ZoneBalance) isNotification()                 {}
func (ZoneTone) isNotification()                    {}
func (ZoneSoundMode) isNotification()                {}
func (ZoneEqualizerBand) isNotification()            {}
func (ZoneHighpass) isNotification()                {}
func (ZoneLowpass) isNotification()                  {}
func (ZoneEqualizerPreset) isNotification()          {}
func (GroupName) isNotification()                    {}
func (GroupSource) isNotification()                  {}
func (GroupMute) isNotification()                    {}
func (GroupVolume) isNotification()                  {}
func (GroupZoneAdded) isNotification()               {}
func (GroupZoneRemoved) isNotification()             {}
func (SourceName) isNotification()                   {}
func (FavoriteName) isNotification()                 {}
func (EqualizerPresetName) isNotification()          {}
func (EqualizerPresetBand) isNotification()          {}
func (FrontPanelBrightness) isNotification()         {}
func (FrontPanelLocked) isNotification()             {}
func (NetworkDHCPv4Enabled) isNotification()         {}
func (NetworkSDDPEnabled) isNotification()           {}
func (NetworkEthernetEUI48) isNotification()         {}
func (NetworkHostAddress) isNotification()           {}
func (NetworkDefaultRouterAddress) isNotification()  {}
func (NetworkNetmask) isNotification()               {}
func (ConfigurationLoaded) isNotification()          {}
func (ConfigurationSaved) isNotification()           {}
func (ConfigurationReset) isNotification()           {}
func (ConfigurationSaving) isNotification()          {}
