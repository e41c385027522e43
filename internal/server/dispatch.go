package server

import (
	"fmt"
	"strconv"

	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
	"github.com/openhlxgo/hlx/internal/protocol"
)

// result is what handling one inbound request frame produces: the
// frame(s) to write back to the requester, and whether those frames
// should also be broadcast to every other connected session. Queries
// answer only the requester; mutations echo to everyone (spec.md §6:
// another client's mutation arrives at every other peer as an
// unsolicited frame).
type result struct {
	frames    []string
	broadcast bool
}

func single(frame string, broadcast bool) (result, error) {
	return result{frames: []string{frame}, broadcast: broadcast}, nil
}

// handleRequest mutates state (when m is a mutating operation) and
// returns the frame(s) to send back. It is the server-side mirror of
// internal/client's applyMatch switch, addressed by the same protocol.Op
// values but moving state in the opposite direction: a client's request
// becomes this server's mutation, not a read-back of one.
func (c *Controller) handleRequest(m protocol.Match) (result, error) {
	switch m.Op {
	case protocol.OpZoneVolumeSet:
		return c.handleZoneVolumeSet(m)
	case protocol.OpZoneVolumeIncrease:
		return c.handleZoneVolumeAdjust(m, 1)
	case protocol.OpZoneVolumeDecrease:
		return c.handleZoneVolumeAdjust(m, -1)
	case protocol.OpZoneMute:
		return c.handleZoneMute(m, true)
	case protocol.OpZoneUnmute:
		return c.handleZoneMute(m, false)
	case protocol.OpZoneMuteToggle:
		return c.handleZoneMuteToggle(m)
	case protocol.OpZoneSourceSet:
		return c.handleZoneSourceSet(m)
	case protocol.OpZoneBalanceSet:
		return c.handleZoneBalanceSet(m)
	case protocol.OpZoneToneSet:
		return c.handleZoneToneSet(m)
	case protocol.OpZoneNameSet:
		return c.handleZoneNameSet(m)
	case protocol.OpZoneLowpassSet:
		return c.handleZoneCrossoverSet(m, model.FilterLowpass)
	case protocol.OpZoneHighpassSet:
		return c.handleZoneCrossoverSet(m, model.FilterHighpass)
	case protocol.OpZoneSoundModeSet:
		return c.handleZoneSoundModeSet(m)
	case protocol.OpZoneEqualizerBandSet:
		return c.handleZoneEqualizerBandSet(m)

	case protocol.OpGroupVolumeSet:
		return c.handleGroupVolumeSet(m)
	case protocol.OpGroupVolumeIncrease:
		return c.handleGroupVolumeAdjust(m, 1)
	case protocol.OpGroupVolumeDecrease:
		return c.handleGroupVolumeAdjust(m, -1)
	case protocol.OpGroupMute:
		return c.handleGroupMute(m, true)
	case protocol.OpGroupUnmute:
		return c.handleGroupMute(m, false)
	case protocol.OpGroupMuteToggle:
		return c.handleGroupMuteToggle(m)
	case protocol.OpGroupSourceSet:
		return c.handleGroupSourceSet(m)
	case protocol.OpGroupNameSet:
		return c.handleGroupNameSet(m)
	case protocol.OpGroupZoneAdd:
		return c.handleGroupZoneAdd(m)
	case protocol.OpGroupZoneRemove:
		return c.handleGroupZoneRemove(m)

	case protocol.OpSourceNameSet:
		return c.handleSourceNameSet(m)
	case protocol.OpFavoriteNameSet:
		return c.handleFavoriteNameSet(m)
	case protocol.OpEqualizerPresetNameSet:
		return c.handleEqualizerPresetNameSet(m)
	case protocol.OpEqualizerPresetBandSet:
		return c.handleEqualizerPresetBandSet(m)

	case protocol.OpFrontPanelBrightnessSet:
		return c.handleFrontPanelBrightnessSet(m)
	case protocol.OpFrontPanelLockedSet:
		return c.handleFrontPanelLockedSet(m)

	case protocol.OpNetworkDHCPv4Set:
		return c.handleNetworkDHCPv4Set(m)
	case protocol.OpNetworkSDDPSet:
		return c.handleNetworkSDDPSet(m)

	case protocol.OpZoneQuery:
		return c.handleZoneQuery(m)
	case protocol.OpGroupQuery:
		return c.handleGroupQuery(m)
	case protocol.OpSourceQuery:
		return c.handleSourceQuery(m)
	case protocol.OpFavoriteQuery:
		return c.handleFavoriteQuery(m)
	case protocol.OpEqualizerPresetQuery:
		return c.handleEqualizerPresetQuery(m)
	case protocol.OpFrontPanelQuery:
		return c.handleFrontPanelQuery()
	case protocol.OpNetworkQuery:
		return c.handleNetworkQuery()

	case protocol.OpSave:
		if err := c.saveNow(); err != nil {
			return result{}, err
		}
		return single(protocol.FormatSave, true)
	case protocol.OpLoad:
		if err := c.loadNow(); err != nil {
			return result{}, err
		}
		return single(protocol.FormatLoad, true)
	case protocol.OpReset:
		if err := c.resetNow(); err != nil {
			return result{}, err
		}
		return single(protocol.FormatReset, true)

	default:
		return result{}, model.NewError(model.KindUnknownCommand, fmt.Sprintf("unhandled op %d", m.Op))
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

func findZoneOrErr(st *model.State, id model.Identifier) (*model.Zone, error) {
	z := st.FindZone(id)
	if z == nil {
		return nil, model.ErrOutOfRange("zone").WithField("zone")
	}
	return z, nil
}

func findGroupOrErr(st *model.State, id model.Identifier) (*model.Group, error) {
	g := st.FindGroup(id)
	if g == nil {
		return nil, model.ErrOutOfRange("group").WithField("group")
	}
	return g, nil
}

func (c *Controller) handleZoneVolumeSet(m protocol.Match) (result, error) {
	zid := atoiID(m.Captures[0])
	level := atoiInt(m.Captures[1])
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		z, err := findZoneOrErr(st, zid)
		if err != nil {
			return err
		}
		outcome, err = z.Volume.SetLevel(level)
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneVolume{Zone: zid, Level: level})
	}
	return single(protocol.FormatZoneVolumeSet(zid, level), true)
}

// handleZoneVolumeAdjust applies a relative U/D step and responds with
// the resulting absolute level (spec.md §6: the response to an adjust
// request is the absolute-level report, not an echo of the adjust verb
// itself — mirrored from internal/client's own comment on why it treats
// OpZoneVolumeIncrease/Decrease as carrying no operand of their own).
func (c *Controller) handleZoneVolumeAdjust(m protocol.Match, sign int) (result, error) {
	zid := atoiID(m.Captures[0])
	var next int
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		z, err := findZoneOrErr(st, zid)
		if err != nil {
			return err
		}
		o, n, err := z.Volume.Adjust(sign)
		outcome, next = o, n
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneVolume{Zone: zid, Level: next})
	}
	return single(protocol.FormatZoneVolumeSet(zid, next), true)
}

func (c *Controller) handleZoneMute(m protocol.Match, mute bool) (result, error) {
	zid := atoiID(m.Captures[0])
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		z, err := findZoneOrErr(st, zid)
		if err != nil {
			return err
		}
		outcome = z.Volume.SetMute(mute)
		return nil
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneMute{Zone: zid, Mute: mute})
	}
	return single(protocol.FormatZoneMute(zid, mute), true)
}

func (c *Controller) handleZoneMuteToggle(m protocol.Match) (result, error) {
	zid := atoiID(m.Captures[0])
	var next bool
	if err := c.apply(func(st *model.State) error {
		z, err := findZoneOrErr(st, zid)
		if err != nil {
			return err
		}
		next = z.Volume.ToggleMute()
		return nil
	}); err != nil {
		return result{}, err
	}
	c.publish(notify.ZoneMute{Zone: zid, Mute: next})
	return single(protocol.FormatZoneMute(zid, next), true)
}

func (c *Controller) handleZoneSourceSet(m protocol.Match) (result, error) {
	zid := atoiID(m.Captures[0])
	sid := atoiID(m.Captures[1])
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		z, err := findZoneOrErr(st, zid)
		if err != nil {
			return err
		}
		outcome, err = z.SetSourceID(sid, c.limits.SourcesMax)
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneSource{Zone: zid, Source: sid})
	}
	return single(protocol.FormatZoneSourceSet(zid, sid), true)
}

func (c *Controller) handleZoneBalanceSet(m protocol.Match) (result, error) {
	zid := atoiID(m.Captures[0])
	tag := m.Captures[1]
	magnitude := atoiInt(m.Captures[2])
	bias := magnitude
	if tag == "L" {
		bias = -magnitude
	}
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		z, err := findZoneOrErr(st, zid)
		if err != nil {
			return err
		}
		outcome, err = z.Balance.SetBias(bias)
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneBalance{Zone: zid, Bias: bias})
	}
	return single(protocol.FormatZoneBalanceSet(zid, bias), true)
}

func (c *Controller) handleZoneToneSet(m protocol.Match) (result, error) {
	zid := atoiID(m.Captures[0])
	bass := atoiInt(m.Captures[1])
	treble := atoiInt(m.Captures[2])
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		z, err := findZoneOrErr(st, zid)
		if err != nil {
			return err
		}
		outcome, err = z.Tone.SetTone(bass, treble)
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneTone{Zone: zid, Bass: bass, Treble: treble})
	}
	return single(protocol.FormatZoneToneSet(zid, bass, treble), true)
}

func (c *Controller) handleZoneNameSet(m protocol.Match) (result, error) {
	zid := atoiID(m.Captures[0])
	name := m.Captures[1]
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		z, err := findZoneOrErr(st, zid)
		if err != nil {
			return err
		}
		outcome, err = z.SetName(name)
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneName{Zone: zid, Name: name})
	}
	return single(protocol.FormatZoneNameSet(zid, name), true)
}

func (c *Controller) handleZoneCrossoverSet(m protocol.Match, kind model.FilterKind) (result, error) {
	zid := atoiID(m.Captures[0])
	hz := atoiInt(m.Captures[1])
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		z, err := findZoneOrErr(st, zid)
		if err != nil {
			return err
		}
		if kind == model.FilterLowpass {
			outcome, err = z.Lowpass.SetFrequency(kind, hz)
		} else {
			outcome, err = z.Highpass.SetFrequency(kind, hz)
		}
		return err
	}); err != nil {
		return result{}, err
	}
	if kind == model.FilterLowpass {
		if outcome == model.Changed {
			c.publish(notify.ZoneLowpass{Zone: zid, Frequency: hz})
		}
		return single(protocol.FormatZoneLowpassSet(zid, hz), true)
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneHighpass{Zone: zid, Frequency: hz})
	}
	return single(protocol.FormatZoneHighpassSet(zid, hz), true)
}

func (c *Controller) handleZoneSoundModeSet(m protocol.Match) (result, error) {
	zid := atoiID(m.Captures[0])
	kind, presetID, err := protocol.ParseSoundModeToken(m.Captures[1])
	if err != nil {
		return result{}, err
	}
	var outcome model.SetOutcome
	var prevKind model.SoundModeKind
	if err := c.apply(func(st *model.State) error {
		z, err := findZoneOrErr(st, zid)
		if err != nil {
			return err
		}
		prevKind, _ = z.SoundMode.Kind()
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
		}
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		if kind == model.SoundModePresetEqualizer && prevKind == model.SoundModePresetEqualizer {
			c.publish(notify.ZoneEqualizerPreset{Zone: zid, Preset: presetID})
		} else {
			c.publish(notify.ZoneSoundMode{Zone: zid, Kind: kind, PresetID: presetID})
		}
	}
	return single(protocol.FormatZoneSoundModeSet(zid, kind, presetID), true)
}

func (c *Controller) handleZoneEqualizerBandSet(m protocol.Match) (result, error) {
	zid := atoiID(m.Captures[0])
	bid := atoiID(m.Captures[1])
	level := atoiInt(m.Captures[2])
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		z, err := findZoneOrErr(st, zid)
		if err != nil {
			return err
		}
		band, err := z.ZoneEqualizerBand(bid)
		if err != nil {
			return err
		}
		outcome = band.SetLevel(level)
		return nil
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.ZoneEqualizerBand{Zone: zid, Band: bid, Level: level})
	}
	return single(protocol.FormatZoneEqualizerBandSet(zid, bid, level), true)
}

// forEachMember runs fn against every member zone of the group gid,
// inside the same apply call (spec.md §3/§6: "mutations addressed to a
// group fan out to each member zone"). Fails EmptyGroup if the group has
// no members, per spec.md §3. The returned SetOutcome aggregates across
// every member: Changed if at least one member zone's fn actually
// changed something, AlreadySet if the fan-out was a complete no-op.
func (c *Controller) forEachMember(gid model.Identifier, fn func(z *model.Zone) (model.SetOutcome, error)) (model.SetOutcome, error) {
	outcome := model.AlreadySet
	err := c.apply(func(st *model.State) error {
		g, err := findGroupOrErr(st, gid)
		if err != nil {
			return err
		}
		members := g.Members()
		if len(members) == 0 {
			return model.ErrEmptyGroup
		}
		for _, zid := range members {
			z := st.FindZone(zid)
			if z == nil {
				continue
			}
			o, err := fn(z)
			if err != nil {
				return err
			}
			if o == model.Changed {
				outcome = model.Changed
			}
		}
		return nil
	})
	return outcome, err
}

func (c *Controller) handleGroupVolumeSet(m protocol.Match) (result, error) {
	gid := atoiID(m.Captures[0])
	level := atoiInt(m.Captures[1])
	outcome, err := c.forEachMember(gid, func(z *model.Zone) (model.SetOutcome, error) {
		o, err := z.Volume.SetLevel(level)
		if model.KindOf(err) == model.KindVolumeLocked {
			return model.AlreadySet, nil // a fixed-volume member simply doesn't move
		}
		return o, err
	})
	if err != nil {
		return result{}, err
	}
	d := c.deriveOne(gid)
	if outcome == model.Changed {
		c.publish(notify.GroupVolume{Group: gid, Level: d.Volume})
	}
	return single(protocol.FormatGroupVolumeSet(gid, d.Volume), true)
}

func (c *Controller) handleGroupVolumeAdjust(m protocol.Match, sign int) (result, error) {
	gid := atoiID(m.Captures[0])
	outcome, err := c.forEachMember(gid, func(z *model.Zone) (model.SetOutcome, error) {
		o, _, err := z.Volume.Adjust(sign)
		if model.KindOf(err) == model.KindVolumeLocked {
			return model.AlreadySet, nil
		}
		return o, err
	})
	if err != nil {
		return result{}, err
	}
	d := c.deriveOne(gid)
	if outcome == model.Changed {
		c.publish(notify.GroupVolume{Group: gid, Level: d.Volume})
	}
	return single(protocol.FormatGroupVolumeSet(gid, d.Volume), true)
}

func (c *Controller) handleGroupMute(m protocol.Match, mute bool) (result, error) {
	gid := atoiID(m.Captures[0])
	outcome, err := c.forEachMember(gid, func(z *model.Zone) (model.SetOutcome, error) {
		return z.Volume.SetMute(mute), nil
	})
	if err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.GroupMute{Group: gid, Mute: mute})
	}
	return single(protocol.FormatGroupMute(gid, mute), true)
}

func (c *Controller) handleGroupMuteToggle(m protocol.Match) (result, error) {
	gid := atoiID(m.Captures[0])
	d := c.deriveOne(gid)
	next := !d.Mute
	outcome, err := c.forEachMember(gid, func(z *model.Zone) (model.SetOutcome, error) {
		return z.Volume.SetMute(next), nil
	})
	if err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.GroupMute{Group: gid, Mute: next})
	}
	return single(protocol.FormatGroupMute(gid, next), true)
}

// handleGroupSourceSet fans a source selection out to every member zone.
// A request carrying the "X" mixed token is rejected: spec.md §9
// explicitly calls the mixed emission "ambiguous... treat as read-only
// on the wire and reject on input," and the request grammar only
// accepts "X" because the request/response pattern for this op is
// shared (buildCommonPatterns) — this handler is where the read-only
// rule is actually enforced.
func (c *Controller) handleGroupSourceSet(m protocol.Match) (result, error) {
	gid := atoiID(m.Captures[0])
	token := m.Captures[1]
	if token == "X" {
		return result{}, model.ErrInvalidArgument("group source \"X\" is read-only")
	}
	sid := atoiID(token)
	outcome, err := c.forEachMember(gid, func(z *model.Zone) (model.SetOutcome, error) {
		return z.SetSourceID(sid, c.limits.SourcesMax)
	})
	if err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.GroupSource{Group: gid, Source: &sid})
	}
	return single(protocol.FormatGroupSourceReport(gid, &sid), true)
}

func (c *Controller) handleGroupNameSet(m protocol.Match) (result, error) {
	gid := atoiID(m.Captures[0])
	name := m.Captures[1]
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		g, err := findGroupOrErr(st, gid)
		if err != nil {
			return err
		}
		outcome, err = g.SetName(name)
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.GroupName{Group: gid, Name: name})
	}
	return single(protocol.FormatGroupNameSet(gid, name), true)
}

func (c *Controller) handleGroupZoneAdd(m protocol.Match) (result, error) {
	gid := atoiID(m.Captures[0])
	zid := atoiID(m.Captures[1])
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		g, err := findGroupOrErr(st, gid)
		if err != nil {
			return err
		}
		outcome, err = g.AddMember(zid, c.limits.ZonesMax)
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.GroupZoneAdded{Group: gid, Zone: zid})
	}
	return single(protocol.FormatGroupZoneAdd(gid, zid), true)
}

func (c *Controller) handleGroupZoneRemove(m protocol.Match) (result, error) {
	gid := atoiID(m.Captures[0])
	zid := atoiID(m.Captures[1])
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		g, err := findGroupOrErr(st, gid)
		if err != nil {
			return err
		}
		outcome = g.RemoveMember(zid)
		return nil
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.GroupZoneRemoved{Group: gid, Zone: zid})
	}
	return single(protocol.FormatGroupZoneRemove(gid, zid), true)
}

// deriveOne recomputes and stores one group's derived state from the
// current zone snapshot, returning the result. Called after any
// fan-out mutation that could move the group's volume/mute/source triple
// (spec.md §3: "after fan-out the controller recomputes the derived
// triple").
func (c *Controller) deriveOne(gid model.Identifier) model.DerivedState {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := c.state.FindGroup(gid)
	if g == nil {
		return model.DerivedState{}
	}
	zoneVolume := make(map[model.Identifier]int)
	zoneMute := make(map[model.Identifier]bool)
	zoneSource := make(map[model.Identifier]model.Identifier)
	for _, z := range c.state.Zones {
		if lvl, err := z.Volume.Level(); err == nil {
			zoneVolume[z.ID()] = lvl
		}
		if mute, err := z.Volume.Mute(); err == nil {
			zoneMute[z.ID()] = mute
		}
		if sid, err := z.SourceID(); err == nil {
			zoneSource[z.ID()] = sid
		}
	}
	d := model.DeriveGroup(g.Members(), zoneVolume, zoneMute, zoneSource)
	g.SetDerived(d)
	return d
}

func (c *Controller) handleSourceNameSet(m protocol.Match) (result, error) {
	sid := atoiID(m.Captures[0])
	name := m.Captures[1]
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		s := st.FindSource(sid)
		if s == nil {
			return model.ErrOutOfRange("source")
		}
		var err error
		outcome, err = s.SetName(name)
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.SourceName{Source: sid, Name: name})
	}
	return single(protocol.FormatSourceNameSet(sid, name), true)
}

func (c *Controller) handleFavoriteNameSet(m protocol.Match) (result, error) {
	fid := atoiID(m.Captures[0])
	name := m.Captures[1]
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		f := st.FindFavorite(fid)
		if f == nil {
			return model.ErrOutOfRange("favorite")
		}
		var err error
		outcome, err = f.SetName(name)
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.FavoriteName{Favorite: fid, Name: name})
	}
	return single(protocol.FormatFavoriteNameSet(fid, name), true)
}

func (c *Controller) handleEqualizerPresetNameSet(m protocol.Match) (result, error) {
	pid := atoiID(m.Captures[0])
	name := m.Captures[1]
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		p := st.FindEqualizerPreset(pid)
		if p == nil {
			return model.ErrOutOfRange("preset")
		}
		var err error
		outcome, err = p.SetName(name)
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.EqualizerPresetName{Preset: pid, Name: name})
	}
	return single(protocol.FormatEqualizerPresetNameSet(pid, name), true)
}

func (c *Controller) handleEqualizerPresetBandSet(m protocol.Match) (result, error) {
	pid := atoiID(m.Captures[0])
	bid := atoiID(m.Captures[1])
	level := atoiInt(m.Captures[2])
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		p := st.FindEqualizerPreset(pid)
		if p == nil {
			return model.ErrOutOfRange("preset")
		}
		band, err := p.Band(bid)
		if err != nil {
			return err
		}
		outcome = band.SetLevel(level)
		return nil
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.EqualizerPresetBand{Preset: pid, Band: bid, Level: level})
	}
	return single(protocol.FormatEqualizerPresetBandSet(pid, bid, level), true)
}

func (c *Controller) handleFrontPanelBrightnessSet(m protocol.Match) (result, error) {
	level := atoiInt(m.Captures[0])
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		var err error
		outcome, err = st.FrontPanel.SetBrightness(level)
		return err
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.FrontPanelBrightness{Level: level})
	}
	return single(protocol.FormatFrontPanelBrightnessSet(level), true)
}

func (c *Controller) handleFrontPanelLockedSet(m protocol.Match) (result, error) {
	locked := m.Captures[0] == "1"
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		outcome = st.FrontPanel.SetLocked(locked)
		return nil
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.FrontPanelLocked{Locked: locked})
	}
	return single(protocol.FormatFrontPanelLockedSet(c.dialect, locked), true)
}

func (c *Controller) handleNetworkDHCPv4Set(m protocol.Match) (result, error) {
	on := m.Captures[0] == "1"
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		outcome = st.Network.SetDHCPv4(on)
		return nil
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.NetworkDHCPv4Enabled{Enabled: on})
	}
	return single(protocol.FormatNetworkDHCPv4(on), true)
}

func (c *Controller) handleNetworkSDDPSet(m protocol.Match) (result, error) {
	on := m.Captures[0] == "1"
	var outcome model.SetOutcome
	if err := c.apply(func(st *model.State) error {
		outcome = st.Network.SetSDDP(on)
		return nil
	}); err != nil {
		return result{}, err
	}
	if outcome == model.Changed {
		c.publish(notify.NetworkSDDPEnabled{Enabled: on})
	}
	return single(protocol.FormatNetworkSDDP(on), true)
}
