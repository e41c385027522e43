package proxy

import (
	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/protocol"
)

// dump* helpers answer a downstream QUERY straight from the upstream
// controller's mirror, parallel to internal/server's query.go but
// reading a client.Controller.State() snapshot instead of a
// store-backed model.State.

func (pr *peer) dumpZone(zid model.Identifier) ([]string, bool, error) {
	st := pr.proxy.upstream.State()
	z := st.FindZone(zid)
	if z == nil {
		return nil, false, model.ErrOutOfRange("zone")
	}
	return dumpZoneFrames(z), false, nil
}

func dumpZoneFrames(z *model.Zone) []string {
	var frames []string
	if lvl, err := z.Volume.Level(); err == nil {
		frames = append(frames, protocol.FormatZoneVolumeSet(z.ID(), lvl))
	}
	if mute, err := z.Volume.Mute(); err == nil {
		frames = append(frames, protocol.FormatZoneMute(z.ID(), mute))
	}
	if sid, err := z.SourceID(); err == nil {
		frames = append(frames, protocol.FormatZoneSourceSet(z.ID(), sid))
	}
	if bias, err := z.Balance.Bias(); err == nil {
		frames = append(frames, protocol.FormatZoneBalanceSet(z.ID(), bias))
	}
	if bass, errB := z.Tone.Bass(); errB == nil {
		if treble, errT := z.Tone.Treble(); errT == nil {
			frames = append(frames, protocol.FormatZoneToneSet(z.ID(), bass, treble))
		}
	}
	if name, err := z.Name(); err == nil {
		frames = append(frames, protocol.FormatZoneNameSet(z.ID(), name))
	}
	if hz, err := z.Lowpass.Frequency(); err == nil {
		frames = append(frames, protocol.FormatZoneLowpassSet(z.ID(), hz))
	}
	if hz, err := z.Highpass.Frequency(); err == nil {
		frames = append(frames, protocol.FormatZoneHighpassSet(z.ID(), hz))
	}
	if kind, err := z.SoundMode.Kind(); err == nil {
		frames = append(frames, protocol.FormatZoneSoundModeSet(z.ID(), kind, z.SoundMode.PresetID()))
	}
	for _, band := range z.ZoneEqualizerBands() {
		if level, err := band.Level(); err == nil {
			frames = append(frames, protocol.FormatZoneEqualizerBandSet(z.ID(), band.ID(), level))
		}
	}
	return frames
}

func (pr *peer) dumpGroup(gid model.Identifier) ([]string, bool, error) {
	st := pr.proxy.upstream.State()
	g := st.FindGroup(gid)
	if g == nil {
		return nil, false, model.ErrOutOfRange("group")
	}
	var frames []string
	if name, err := g.Name(); err == nil {
		frames = append(frames, protocol.FormatGroupNameSet(gid, name))
	}
	d := g.Derived()
	if d.Defined {
		frames = append(frames, protocol.FormatGroupVolumeSet(gid, d.Volume))
		frames = append(frames, protocol.FormatGroupMute(gid, d.Mute))
		frames = append(frames, protocol.FormatGroupSourceReport(gid, d.SourceID))
	}
	return frames, false, nil
}

func (pr *peer) dumpSource(sid model.Identifier) ([]string, bool, error) {
	st := pr.proxy.upstream.State()
	s := st.FindSource(sid)
	if s == nil {
		return nil, false, model.ErrOutOfRange("source")
	}
	var frames []string
	if name, err := s.Name(); err == nil {
		frames = append(frames, protocol.FormatSourceNameSet(sid, name))
	}
	return frames, false, nil
}

func (pr *peer) dumpFavorite(fid model.Identifier) ([]string, bool, error) {
	st := pr.proxy.upstream.State()
	f := st.FindFavorite(fid)
	if f == nil {
		return nil, false, model.ErrOutOfRange("favorite")
	}
	var frames []string
	if name, err := f.Name(); err == nil {
		frames = append(frames, protocol.FormatFavoriteNameSet(fid, name))
	}
	return frames, false, nil
}

func (pr *peer) dumpEqualizerPreset(pid model.Identifier) ([]string, bool, error) {
	st := pr.proxy.upstream.State()
	p := st.FindEqualizerPreset(pid)
	if p == nil {
		return nil, false, model.ErrOutOfRange("preset")
	}
	var frames []string
	if name, err := p.Name(); err == nil {
		frames = append(frames, protocol.FormatEqualizerPresetNameSet(pid, name))
	}
	for _, band := range p.Bands() {
		if level, err := band.Level(); err == nil {
			frames = append(frames, protocol.FormatEqualizerPresetBandSet(pid, band.ID(), level))
		}
	}
	return frames, false, nil
}

func (pr *peer) dumpFrontPanel() ([]string, bool, error) {
	st := pr.proxy.upstream.State()
	var frames []string
	if level, err := st.FrontPanel.Brightness(); err == nil {
		frames = append(frames, protocol.FormatFrontPanelBrightnessSet(level))
	}
	if locked, err := st.FrontPanel.Locked(); err == nil {
		frames = append(frames, protocol.FormatFrontPanelLockedSet(protocol.Dialect{}, locked))
	}
	return frames, false, nil
}

func (pr *peer) dumpNetwork() ([]string, bool, error) {
	st := pr.proxy.upstream.State()
	var frames []string
	if on, err := st.Network.DHCPv4(); err == nil {
		frames = append(frames, protocol.FormatNetworkDHCPv4(on))
	}
	if on, err := st.Network.SDDP(); err == nil {
		frames = append(frames, protocol.FormatNetworkSDDP(on))
	}
	if mac, err := st.Network.EUI48(); err == nil {
		frames = append(frames, protocol.FormatNetworkEUI48(mac))
	}
	if addr, err := st.Network.HostAddress(); err == nil {
		frames = append(frames, protocol.FormatNetworkHostAddress(addr))
	}
	if addr, err := st.Network.DefaultRouterAddress(); err == nil {
		frames = append(frames, protocol.FormatNetworkRouterAddress(addr))
	}
	if addr, err := st.Network.Netmask(); err == nil {
		frames = append(frames, protocol.FormatNetworkNetmask(addr))
	}
	return frames, false, nil
}

// echoFor re-derives the single wire frame that corresponds to a
// just-forwarded mutating request, reading the (now up to date) upstream
// mirror rather than trusting the request's own operands, since a
// fan-out or clamp upstream may have settled on a different value than
// what was requested (e.g. an absolute volume clamped to a limit).
func (pr *peer) echoFor(m protocol.Match) ([]string, bool, error) {
	st := pr.proxy.upstream.State()

	switch m.Op {
	case protocol.OpZoneVolumeSet, protocol.OpZoneVolumeIncrease, protocol.OpZoneVolumeDecrease:
		z := st.FindZone(atoiID(m.Captures[0]))
		lvl, err := z.Volume.Level()
		return wrap(protocol.FormatZoneVolumeSet(z.ID(), lvl), err)
	case protocol.OpZoneMute, protocol.OpZoneUnmute, protocol.OpZoneMuteToggle:
		z := st.FindZone(atoiID(m.Captures[0]))
		mute, err := z.Volume.Mute()
		return wrap(protocol.FormatZoneMute(z.ID(), mute), err)
	case protocol.OpZoneSourceSet:
		z := st.FindZone(atoiID(m.Captures[0]))
		sid, err := z.SourceID()
		return wrap(protocol.FormatZoneSourceSet(z.ID(), sid), err)
	case protocol.OpZoneBalanceSet:
		z := st.FindZone(atoiID(m.Captures[0]))
		bias, err := z.Balance.Bias()
		return wrap(protocol.FormatZoneBalanceSet(z.ID(), bias), err)
	case protocol.OpZoneToneSet:
		z := st.FindZone(atoiID(m.Captures[0]))
		bass, err := z.Tone.Bass()
		if err != nil {
			return nil, false, err
		}
		treble, err := z.Tone.Treble()
		return wrap(protocol.FormatZoneToneSet(z.ID(), bass, treble), err)
	case protocol.OpZoneNameSet:
		z := st.FindZone(atoiID(m.Captures[0]))
		name, err := z.Name()
		return wrap(protocol.FormatZoneNameSet(z.ID(), name), err)
	case protocol.OpZoneLowpassSet:
		z := st.FindZone(atoiID(m.Captures[0]))
		hz, err := z.Lowpass.Frequency()
		return wrap(protocol.FormatZoneLowpassSet(z.ID(), hz), err)
	case protocol.OpZoneHighpassSet:
		z := st.FindZone(atoiID(m.Captures[0]))
		hz, err := z.Highpass.Frequency()
		return wrap(protocol.FormatZoneHighpassSet(z.ID(), hz), err)
	case protocol.OpZoneSoundModeSet:
		z := st.FindZone(atoiID(m.Captures[0]))
		kind, err := z.SoundMode.Kind()
		return wrap(protocol.FormatZoneSoundModeSet(z.ID(), kind, z.SoundMode.PresetID()), err)
	case protocol.OpZoneEqualizerBandSet:
		z := st.FindZone(atoiID(m.Captures[0]))
		band, err := z.ZoneEqualizerBand(atoiID(m.Captures[1]))
		if err != nil {
			return nil, false, err
		}
		level, err := band.Level()
		return wrap(protocol.FormatZoneEqualizerBandSet(z.ID(), band.ID(), level), err)
	case protocol.OpGroupVolumeSet, protocol.OpGroupVolumeIncrease, protocol.OpGroupVolumeDecrease:
		g := st.FindGroup(atoiID(m.Captures[0]))
		d := g.Derived()
		return wrap(protocol.FormatGroupVolumeSet(g.ID(), d.Volume), nil)
	case protocol.OpGroupMute, protocol.OpGroupUnmute, protocol.OpGroupMuteToggle:
		g := st.FindGroup(atoiID(m.Captures[0]))
		d := g.Derived()
		return wrap(protocol.FormatGroupMute(g.ID(), d.Mute), nil)
	case protocol.OpGroupSourceSet:
		g := st.FindGroup(atoiID(m.Captures[0]))
		d := g.Derived()
		return wrap(protocol.FormatGroupSourceReport(g.ID(), d.SourceID), nil)
	case protocol.OpGroupNameSet:
		g := st.FindGroup(atoiID(m.Captures[0]))
		name, err := g.Name()
		return wrap(protocol.FormatGroupNameSet(g.ID(), name), err)
	case protocol.OpGroupZoneAdd:
		return wrap(protocol.FormatGroupZoneAdd(atoiID(m.Captures[0]), atoiID(m.Captures[1])), nil)
	case protocol.OpGroupZoneRemove:
		return wrap(protocol.FormatGroupZoneRemove(atoiID(m.Captures[0]), atoiID(m.Captures[1])), nil)
	case protocol.OpSourceNameSet:
		s := st.FindSource(atoiID(m.Captures[0]))
		name, err := s.Name()
		return wrap(protocol.FormatSourceNameSet(s.ID(), name), err)
	case protocol.OpFavoriteNameSet:
		f := st.FindFavorite(atoiID(m.Captures[0]))
		name, err := f.Name()
		return wrap(protocol.FormatFavoriteNameSet(f.ID(), name), err)
	case protocol.OpEqualizerPresetNameSet:
		p := st.FindEqualizerPreset(atoiID(m.Captures[0]))
		name, err := p.Name()
		return wrap(protocol.FormatEqualizerPresetNameSet(p.ID(), name), err)
	case protocol.OpEqualizerPresetBandSet:
		p := st.FindEqualizerPreset(atoiID(m.Captures[0]))
		band, err := p.Band(atoiID(m.Captures[1]))
		if err != nil {
			return nil, false, err
		}
		level, err := band.Level()
		return wrap(protocol.FormatEqualizerPresetBandSet(p.ID(), band.ID(), level), err)
	case protocol.OpFrontPanelBrightnessSet:
		level, err := st.FrontPanel.Brightness()
		return wrap(protocol.FormatFrontPanelBrightnessSet(level), err)
	case protocol.OpFrontPanelLockedSet:
		locked, err := st.FrontPanel.Locked()
		return wrap(protocol.FormatFrontPanelLockedSet(protocol.Dialect{}, locked), err)
	case protocol.OpNetworkDHCPv4Set:
		on, err := st.Network.DHCPv4()
		return wrap(protocol.FormatNetworkDHCPv4(on), err)
	case protocol.OpNetworkSDDPSet:
		on, err := st.Network.SDDP()
		return wrap(protocol.FormatNetworkSDDP(on), err)
	default:
		return nil, false, model.NewError(model.KindUnknownCommand, "no echo for op")
	}
}

func wrap(frame string, err error) ([]string, bool, error) {
	if err != nil {
		return nil, false, err
	}
	return []string{frame}, true, nil
}
