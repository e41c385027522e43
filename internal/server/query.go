package server

import (
	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/protocol"
)

// A QUERY's response is not one frame but the burst of every property
// currently initialized on the entity (spec.md §6), answered only to
// the requester (queries are reads, not mutations, and so never
// broadcast). Each dump* helper below appends a frame per initialized
// property, skipping anything still ErrNotInitialized — mirroring
// DefaultState's "identifiers pre-exist; the properties they carry do
// not" rule: a freshly provisioned entity answers a query with nothing
// but its bare existence.

func (c *Controller) handleZoneQuery(m protocol.Match) (result, error) {
	zid := atoiID(m.Captures[0])
	c.mu.Lock()
	z := c.state.FindZone(zid)
	if z == nil {
		c.mu.Unlock()
		return result{}, model.ErrOutOfRange("zone")
	}
	frames := dumpZone(z)
	c.mu.Unlock()
	return result{frames: frames}, nil
}

func dumpZone(z *model.Zone) []string {
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

func (c *Controller) handleGroupQuery(m protocol.Match) (result, error) {
	gid := atoiID(m.Captures[0])
	c.mu.Lock()
	g := c.state.FindGroup(gid)
	if g == nil {
		c.mu.Unlock()
		return result{}, model.ErrOutOfRange("group")
	}
	frames := dumpGroup(g)
	c.mu.Unlock()
	return result{frames: frames}, nil
}

func dumpGroup(g *model.Group) []string {
	var frames []string
	if name, err := g.Name(); err == nil {
		frames = append(frames, protocol.FormatGroupNameSet(g.ID(), name))
	}
	d := g.Derived()
	if d.Defined {
		frames = append(frames, protocol.FormatGroupVolumeSet(g.ID(), d.Volume))
		frames = append(frames, protocol.FormatGroupMute(g.ID(), d.Mute))
		frames = append(frames, protocol.FormatGroupSourceReport(g.ID(), d.SourceID))
	}
	return frames
}

func (c *Controller) handleSourceQuery(m protocol.Match) (result, error) {
	sid := atoiID(m.Captures[0])
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state.FindSource(sid)
	if s == nil {
		return result{}, model.ErrOutOfRange("source")
	}
	var frames []string
	if name, err := s.Name(); err == nil {
		frames = append(frames, protocol.FormatSourceNameSet(sid, name))
	}
	return result{frames: frames}, nil
}

func (c *Controller) handleFavoriteQuery(m protocol.Match) (result, error) {
	fid := atoiID(m.Captures[0])
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.state.FindFavorite(fid)
	if f == nil {
		return result{}, model.ErrOutOfRange("favorite")
	}
	var frames []string
	if name, err := f.Name(); err == nil {
		frames = append(frames, protocol.FormatFavoriteNameSet(fid, name))
	}
	return result{frames: frames}, nil
}

func (c *Controller) handleEqualizerPresetQuery(m protocol.Match) (result, error) {
	pid := atoiID(m.Captures[0])
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.state.FindEqualizerPreset(pid)
	if p == nil {
		return result{}, model.ErrOutOfRange("preset")
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
	return result{frames: frames}, nil
}

func (c *Controller) handleFrontPanelQuery() (result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var frames []string
	if level, err := c.state.FrontPanel.Brightness(); err == nil {
		frames = append(frames, protocol.FormatFrontPanelBrightnessSet(level))
	}
	if locked, err := c.state.FrontPanel.Locked(); err == nil {
		frames = append(frames, protocol.FormatFrontPanelLockedSet(c.dialect, locked))
	}
	return result{frames: frames}, nil
}

func (c *Controller) handleNetworkQuery() (result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var frames []string
	if on, err := c.state.Network.DHCPv4(); err == nil {
		frames = append(frames, protocol.FormatNetworkDHCPv4(on))
	}
	if on, err := c.state.Network.SDDP(); err == nil {
		frames = append(frames, protocol.FormatNetworkSDDP(on))
	}
	if mac, err := c.state.Network.EUI48(); err == nil {
		frames = append(frames, protocol.FormatNetworkEUI48(mac))
	}
	if addr, err := c.state.Network.HostAddress(); err == nil {
		frames = append(frames, protocol.FormatNetworkHostAddress(addr))
	}
	if addr, err := c.state.Network.DefaultRouterAddress(); err == nil {
		frames = append(frames, protocol.FormatNetworkRouterAddress(addr))
	}
	if addr, err := c.state.Network.Netmask(); err == nil {
		frames = append(frames, protocol.FormatNetworkNetmask(addr))
	}
	return result{frames: frames}, nil
}
