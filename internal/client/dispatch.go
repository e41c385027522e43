package client

import (
	"fmt"
	"strconv"

	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
	"github.com/openhlxgo/hlx/internal/protocol"
)

// applyMatch mutates c.state to reflect an inbound frame and publishes
// the corresponding notify.Notification. It is used both for unsolicited
// updates (another client's mutation echoed to us) and for every frame
// of a query's property burst (spec.md §4.4), since a query response has
// no single expected operation for the exchange engine to match against.
func (c *Controller) applyMatch(m protocol.Match) error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	switch m.Op {
	case protocol.OpZoneVolumeSet:
		return c.applyZoneVolumeSet(m)
	case protocol.OpZoneVolumeIncrease, protocol.OpZoneVolumeDecrease:
		// Relative adjust echoes carry no level operand; the absolute
		// level is reported separately via OpZoneVolumeSet on real
		// hardware. Nothing to apply here beyond acknowledging receipt.
		return nil
	case protocol.OpZoneMute:
		return c.applyZoneMute(m, true)
	case protocol.OpZoneUnmute:
		return c.applyZoneMute(m, false)
	case protocol.OpZoneMuteToggle:
		return c.applyZoneMuteToggle(m)
	case protocol.OpZoneSourceSet:
		return c.applyZoneSourceSet(m)
	case protocol.OpZoneBalanceSet:
		return c.applyZoneBalanceSet(m)
	case protocol.OpZoneToneSet:
		return c.applyZoneToneSet(m)
	case protocol.OpZoneNameSet:
		return c.applyZoneNameSet(m)
	case protocol.OpZoneLowpassSet:
		return c.applyZoneCrossoverSet(m, model.FilterLowpass)
	case protocol.OpZoneHighpassSet:
		return c.applyZoneCrossoverSet(m, model.FilterHighpass)
	case protocol.OpZoneSoundModeSet:
		return c.applyZoneSoundModeSet(m)
	case protocol.OpZoneEqualizerBandSet:
		return c.applyZoneEqualizerBandSet(m)

	case protocol.OpGroupVolumeSet:
		return c.applyGroupVolumeSet(m)
	case protocol.OpGroupVolumeIncrease, protocol.OpGroupVolumeDecrease:
		return nil
	case protocol.OpGroupMute:
		return c.applyGroupMute(m, true)
	case protocol.OpGroupUnmute:
		return c.applyGroupMute(m, false)
	case protocol.OpGroupMuteToggle:
		return nil
	case protocol.OpGroupSourceSet:
		return c.applyGroupSourceReport(m)
	case protocol.OpGroupNameSet:
		return c.applyGroupNameSet(m)
	case protocol.OpGroupZoneAdd:
		return c.applyGroupZoneAdd(m)
	case protocol.OpGroupZoneRemove:
		return c.applyGroupZoneRemove(m)

	case protocol.OpSourceNameSet:
		return c.applySourceNameSet(m)

	case protocol.OpFavoriteNameSet:
		return c.applyFavoriteNameSet(m)

	case protocol.OpEqualizerPresetNameSet:
		return c.applyEqualizerPresetNameSet(m)
	case protocol.OpEqualizerPresetBandSet:
		return c.applyEqualizerPresetBandSet(m)

	case protocol.OpFrontPanelBrightnessSet:
		return c.applyFrontPanelBrightnessSet(m)
	case protocol.OpFrontPanelLockedSet:
		return c.applyFrontPanelLockedSet(m)

	case protocol.OpNetworkDHCPv4Set:
		return c.applyNetworkDHCPv4Set(m)
	case protocol.OpNetworkSDDPSet:
		return c.applyNetworkSDDPSet(m)
	case protocol.OpNetworkEUI48Report:
		return c.applyNetworkEUI48Report(m)
	case protocol.OpNetworkHostAddressReport:
		return c.applyNetworkHostAddressReport(m)
	case protocol.OpNetworkRouterAddressReport:
		return c.applyNetworkRouterAddressReport(m)
	case protocol.OpNetworkNetmaskReport:
		return c.applyNetworkNetmaskReport(m)

	case protocol.OpSave, protocol.OpLoad, protocol.OpReset:
		return c.applyConfigurationLifecycle(m)
	case protocol.OpSaving:
		c.publish(notify.ConfigurationSaving{})
		return nil
	case protocol.OpError:
		return model.NewError(model.KindUnknownCommand, "peer reported ERROR")

	case protocol.OpZoneQuery, protocol.OpGroupQuery, protocol.OpSourceQuery,
		protocol.OpFavoriteQuery, protocol.OpEqualizerPresetQuery,
		protocol.OpFrontPanelQuery, protocol.OpNetworkQuery:
		// An echoed query with no further captures; the properties that
		// make up its response arrive as the subsequent burst of frames
		// handled by the cases above.
		return nil

	default:
		return model.NewError(model.KindUnknownCommand, fmt.Sprintf("unhandled op %d", m.Op))
	}
}

func atoiID(s string) model.Identifier {
	n, _ := strconv.Atoi(s)
	return model.Identifier(n)
}

func atoiInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func (c *Controller) applyZoneVolumeSet(m protocol.Match) error {
	zid := atoiID(m.Captures[0])
	level := atoiInt(m.Captures[1])
	z := c.state.FindZone(zid)
	if z == nil {
		return nil
	}
	outcome, err := z.Volume.SetLevel(level)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneVolume{Zone: zid, Level: level})
	}
	return nil
}

func (c *Controller) applyZoneMute(m protocol.Match, mute bool) error {
	zid := atoiID(m.Captures[0])
	z := c.state.FindZone(zid)
	if z == nil {
		return nil
	}
	if z.Volume.SetMute(mute) == model.Changed {
		c.publish(notify.ZoneMute{Zone: zid, Mute: mute})
	}
	return nil
}

func (c *Controller) applyZoneMuteToggle(m protocol.Match) error {
	zid := atoiID(m.Captures[0])
	z := c.state.FindZone(zid)
	if z == nil {
		return nil
	}
	next := z.Volume.ToggleMute()
	c.publish(notify.ZoneMute{Zone: zid, Mute: next})
	return nil
}

func (c *Controller) applyZoneSourceSet(m protocol.Match) error {
	zid := atoiID(m.Captures[0])
	sid := atoiID(m.Captures[1])
	z := c.state.FindZone(zid)
	if z == nil {
		return nil
	}
	outcome, err := z.SetSourceID(sid, c.limits.SourcesMax)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneSource{Zone: zid, Source: sid})
	}
	return nil
}

func (c *Controller) applyZoneBalanceSet(m protocol.Match) error {
	zid := atoiID(m.Captures[0])
	tag := m.Captures[1]
	magnitude := atoiInt(m.Captures[2])
	bias := magnitude
	if tag == "L" {
		bias = -magnitude
	}
	z := c.state.FindZone(zid)
	if z == nil {
		return nil
	}
	outcome, err := z.Balance.SetBias(bias)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneBalance{Zone: zid, Bias: bias})
	}
	return nil
}

func (c *Controller) applyZoneToneSet(m protocol.Match) error {
	zid := atoiID(m.Captures[0])
	bass := atoiInt(m.Captures[1])
	treble := atoiInt(m.Captures[2])
	z := c.state.FindZone(zid)
	if z == nil {
		return nil
	}
	outcome, err := z.Tone.SetTone(bass, treble)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneTone{Zone: zid, Bass: bass, Treble: treble})
	}
	return nil
}

func (c *Controller) applyZoneNameSet(m protocol.Match) error {
	zid := atoiID(m.Captures[0])
	name := m.Captures[1]
	z := c.state.FindZone(zid)
	if z == nil {
		return nil
	}
	outcome, err := z.SetName(name)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneName{Zone: zid, Name: name})
	}
	return nil
}

func (c *Controller) applyZoneCrossoverSet(m protocol.Match, kind model.FilterKind) error {
	zid := atoiID(m.Captures[0])
	hz := atoiInt(m.Captures[1])
	z := c.state.FindZone(zid)
	if z == nil {
		return nil
	}
	if kind == model.FilterLowpass {
		outcome, err := z.Lowpass.SetFrequency(kind, hz)
		if err != nil {
			return err
		}
		if outcome == model.Changed {
			c.publish(notify.ZoneLowpass{Zone: zid, Frequency: hz})
		}
		return nil
	}
	outcome, err := z.Highpass.SetFrequency(kind, hz)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneHighpass{Zone: zid, Frequency: hz})
	}
	return nil
}

func (c *Controller) applyZoneSoundModeSet(m protocol.Match) error {
	zid := atoiID(m.Captures[0])
	token := m.Captures[1]
	kind, presetID, err := protocol.ParseSoundModeToken(token)
	if err != nil {
		return err
	}
	z := c.state.FindZone(zid)
	if z == nil {
		return nil
	}
	prevKind, _ := z.SoundMode.Kind()
	var outcome model.SetOutcome
	switch kind {
	case model.SoundModeDisabled:
		outcome = z.SoundMode.SetDisabled()
	case model.SoundModeZoneEqualizer:
		outcome = z.SoundMode.SetZoneEqualizer()
	case model.SoundModeTone:
		outcome = z.SoundMode.SetToneMode()
	case model.SoundModeLowpass:
		outcome = z.SoundMode.SetLowpassMode()
	case model.SoundModeHighpass:
		outcome = z.SoundMode.SetHighpassMode()
	case model.SoundModePresetEqualizer:
		outcome, err = z.SoundMode.SetPresetEqualizer(presetID, c.limits.EqualizerPresetsMax)
		if err != nil {
			return err
		}
	}
	if outcome != model.Changed {
		return nil
	}
	if kind == model.SoundModePresetEqualizer && prevKind == model.SoundModePresetEqualizer {
		c.publish(notify.ZoneEqualizerPreset{Zone: zid, Preset: presetID})
		return nil
	}
	c.publish(notify.ZoneSoundMode{Zone: zid, Kind: kind, PresetID: presetID})
	return nil
}

func (c *Controller) applyZoneEqualizerBandSet(m protocol.Match) error {
	zid := atoiID(m.Captures[0])
	bid := atoiID(m.Captures[1])
	level := atoiInt(m.Captures[2])
	z := c.state.FindZone(zid)
	if z == nil {
		return nil
	}
	band, err := z.ZoneEqualizerBand(bid)
	if err != nil {
		return err
	}
	if band.SetLevel(level) == model.Changed {
		c.publish(notify.ZoneEqualizerBand{Zone: zid, Band: bid, Level: level})
	}
	return nil
}

func (c *Controller) applyGroupVolumeSet(m protocol.Match) error {
	gid := atoiID(m.Captures[0])
	level := atoiInt(m.Captures[1])
	c.publish(notify.GroupVolume{Group: gid, Level: level})
	return nil
}

func (c *Controller) applyGroupMute(m protocol.Match, mute bool) error {
	gid := atoiID(m.Captures[0])
	c.publish(notify.GroupMute{Group: gid, Mute: mute})
	return nil
}

func (c *Controller) applyGroupSourceReport(m protocol.Match) error {
	gid := atoiID(m.Captures[0])
	token := m.Captures[1]
	if token == "X" {
		c.publish(notify.GroupSource{Group: gid, Source: nil})
		return nil
	}
	sid := atoiID(token)
	c.publish(notify.GroupSource{Group: gid, Source: &sid})
	return nil
}

func (c *Controller) applyGroupNameSet(m protocol.Match) error {
	gid := atoiID(m.Captures[0])
	name := m.Captures[1]
	g := c.state.FindGroup(gid)
	if g == nil {
		return nil
	}
	outcome, err := g.SetName(name)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.GroupName{Group: gid, Name: name})
	}
	return nil
}

func (c *Controller) applyGroupZoneAdd(m protocol.Match) error {
	gid := atoiID(m.Captures[0])
	zid := atoiID(m.Captures[1])
	g := c.state.FindGroup(gid)
	if g == nil {
		return nil
	}
	outcome, err := g.AddMember(zid, c.limits.ZonesMax)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.GroupZoneAdded{Group: gid, Zone: zid})
	}
	return nil
}

func (c *Controller) applyGroupZoneRemove(m protocol.Match) error {
	gid := atoiID(m.Captures[0])
	zid := atoiID(m.Captures[1])
	g := c.state.FindGroup(gid)
	if g == nil {
		return nil
	}
	if g.RemoveMember(zid) == model.Changed {
		c.publish(notify.GroupZoneRemoved{Group: gid, Zone: zid})
	}
	return nil
}

func (c *Controller) applySourceNameSet(m protocol.Match) error {
	sid := atoiID(m.Captures[0])
	name := m.Captures[1]
	s := c.state.FindSource(sid)
	if s == nil {
		return nil
	}
	outcome, err := s.SetName(name)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.SourceName{Source: sid, Name: name})
	}
	return nil
}

func (c *Controller) applyFavoriteNameSet(m protocol.Match) error {
	fid := atoiID(m.Captures[0])
	name := m.Captures[1]
	f := c.state.FindFavorite(fid)
	if f == nil {
		return nil
	}
	outcome, err := f.SetName(name)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.FavoriteName{Favorite: fid, Name: name})
	}
	return nil
}

func (c *Controller) applyEqualizerPresetNameSet(m protocol.Match) error {
	pid := atoiID(m.Captures[0])
	name := m.Captures[1]
	p := c.state.FindEqualizerPreset(pid)
	if p == nil {
		return nil
	}
	outcome, err := p.SetName(name)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.EqualizerPresetName{Preset: pid, Name: name})
	}
	return nil
}

func (c *Controller) applyEqualizerPresetBandSet(m protocol.Match) error {
	pid := atoiID(m.Captures[0])
	bid := atoiID(m.Captures[1])
	level := atoiInt(m.Captures[2])
	p := c.state.FindEqualizerPreset(pid)
	if p == nil {
		return nil
	}
	band, err := p.Band(bid)
	if err != nil {
		return err
	}
	if band.SetLevel(level) == model.Changed {
		c.publish(notify.EqualizerPresetBand{Preset: pid, Band: bid, Level: level})
	}
	return nil
}

func (c *Controller) applyFrontPanelBrightnessSet(m protocol.Match) error {
	level := atoiInt(m.Captures[0])
	outcome, err := c.state.FrontPanel.SetBrightness(level)
	if err != nil {
		return err
	}
	if outcome == model.Changed {
		c.publish(notify.FrontPanelBrightness{Level: level})
	}
	return nil
}

func (c *Controller) applyFrontPanelLockedSet(m protocol.Match) error {
	locked := m.Captures[0] == "1"
	if c.state.FrontPanel.SetLocked(locked) == model.Changed {
		c.publish(notify.FrontPanelLocked{Locked: locked})
	}
	return nil
}

func (c *Controller) applyNetworkDHCPv4Set(m protocol.Match) error {
	on := m.Captures[0] == "1"
	if c.state.Network.SetDHCPv4(on) == model.Changed {
		c.publish(notify.NetworkDHCPv4Enabled{Enabled: on})
	}
	return nil
}

func (c *Controller) applyNetworkSDDPSet(m protocol.Match) error {
	on := m.Captures[0] == "1"
	if c.state.Network.SetSDDP(on) == model.Changed {
		c.publish(notify.NetworkSDDPEnabled{Enabled: on})
	}
	return nil
}

func (c *Controller) applyNetworkEUI48Report(m protocol.Match) error {
	mac, err := model.ParseEUI48(m.Captures[0])
	if err != nil {
		return err
	}
	if c.state.Network.SetEUI48(mac) == model.Changed {
		c.publish(notify.NetworkEthernetEUI48{MAC: mac})
	}
	return nil
}

func (c *Controller) applyNetworkHostAddressReport(m protocol.Match) error {
	addr, err := model.ParseAddress(m.Captures[0])
	if err != nil {
		return err
	}
	if c.state.Network.SetHostAddress(addr) == model.Changed {
		c.publish(notify.NetworkHostAddress{Address: addr})
	}
	return nil
}

func (c *Controller) applyNetworkRouterAddressReport(m protocol.Match) error {
	addr, err := model.ParseAddress(m.Captures[0])
	if err != nil {
		return err
	}
	if c.state.Network.SetDefaultRouterAddress(addr) == model.Changed {
		c.publish(notify.NetworkDefaultRouterAddress{Address: addr})
	}
	return nil
}

func (c *Controller) applyNetworkNetmaskReport(m protocol.Match) error {
	addr, err := model.ParseAddress(m.Captures[0])
	if err != nil {
		return err
	}
	if c.state.Network.SetNetmask(addr) == model.Changed {
		c.publish(notify.NetworkNetmask{Address: addr})
	}
	return nil
}

func (c *Controller) applyConfigurationLifecycle(m protocol.Match) error {
	switch m.Op {
	case protocol.OpSave:
		c.publish(notify.ConfigurationSaved{})
	case protocol.OpLoad:
		c.publish(notify.ConfigurationLoaded{})
	case protocol.OpReset:
		c.publish(notify.ConfigurationReset{})
	}
	return nil
}
