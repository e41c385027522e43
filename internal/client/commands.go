package client

import (
	"context"

	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/protocol"
)

// The Set* methods below issue a mutating wire command and block for its
// echo via the exchange engine (spec.md §4.2), returning once the peer
// has confirmed the change. State is not mutated here directly: the
// run loop applies the echoed frame through the same applyMatch path
// used for unsolicited updates, so a caller's own request and another
// client's concurrent mutation are indistinguishable once on the wire
// (spec.md §6).

func (c *Controller) SetZoneVolume(ctx context.Context, zone model.Identifier, level int) error {
	_, err := c.submit(ctx, protocol.OpZoneVolumeSet, protocol.FormatZoneVolumeSet(zone, level))
	return err
}

func (c *Controller) AdjustZoneVolumeUp(ctx context.Context, zone model.Identifier) error {
	_, err := c.submit(ctx, protocol.OpZoneVolumeIncrease, protocol.FormatZoneVolumeIncrease(zone))
	return err
}

func (c *Controller) AdjustZoneVolumeDown(ctx context.Context, zone model.Identifier) error {
	_, err := c.submit(ctx, protocol.OpZoneVolumeDecrease, protocol.FormatZoneVolumeDecrease(zone))
	return err
}

func (c *Controller) SetZoneMute(ctx context.Context, zone model.Identifier, mute bool) error {
	op := protocol.OpZoneUnmute
	if mute {
		op = protocol.OpZoneMute
	}
	_, err := c.submit(ctx, op, protocol.FormatZoneMute(zone, mute))
	return err
}

func (c *Controller) ToggleZoneMute(ctx context.Context, zone model.Identifier) error {
	_, err := c.submit(ctx, protocol.OpZoneMuteToggle, protocol.FormatZoneMuteToggle(zone))
	return err
}

func (c *Controller) SetZoneSource(ctx context.Context, zone, source model.Identifier) error {
	_, err := c.submit(ctx, protocol.OpZoneSourceSet, protocol.FormatZoneSourceSet(zone, source))
	return err
}

func (c *Controller) SetZoneBalance(ctx context.Context, zone model.Identifier, bias int) error {
	_, err := c.submit(ctx, protocol.OpZoneBalanceSet, protocol.FormatZoneBalanceSet(zone, bias))
	return err
}

func (c *Controller) SetZoneTone(ctx context.Context, zone model.Identifier, bass, treble int) error {
	_, err := c.submit(ctx, protocol.OpZoneToneSet, protocol.FormatZoneToneSet(zone, bass, treble))
	return err
}

func (c *Controller) SetZoneName(ctx context.Context, zone model.Identifier, name string) error {
	_, err := c.submit(ctx, protocol.OpZoneNameSet, protocol.FormatZoneNameSet(zone, name))
	return err
}

func (c *Controller) SetZoneLowpass(ctx context.Context, zone model.Identifier, hz int) error {
	_, err := c.submit(ctx, protocol.OpZoneLowpassSet, protocol.FormatZoneLowpassSet(zone, hz))
	return err
}

func (c *Controller) SetZoneHighpass(ctx context.Context, zone model.Identifier, hz int) error {
	_, err := c.submit(ctx, protocol.OpZoneHighpassSet, protocol.FormatZoneHighpassSet(zone, hz))
	return err
}

func (c *Controller) SetZoneSoundMode(ctx context.Context, zone model.Identifier, kind model.SoundModeKind, presetID model.Identifier) error {
	_, err := c.submit(ctx, protocol.OpZoneSoundModeSet, protocol.FormatZoneSoundModeSet(zone, kind, presetID))
	return err
}

func (c *Controller) SetZoneEqualizerBand(ctx context.Context, zone, band model.Identifier, level int) error {
	_, err := c.submit(ctx, protocol.OpZoneEqualizerBandSet, protocol.FormatZoneEqualizerBandSet(zone, band, level))
	return err
}

func (c *Controller) SetGroupVolume(ctx context.Context, group model.Identifier, level int) error {
	_, err := c.submit(ctx, protocol.OpGroupVolumeSet, protocol.FormatGroupVolumeSet(group, level))
	return err
}

func (c *Controller) SetGroupMute(ctx context.Context, group model.Identifier, mute bool) error {
	op := protocol.OpGroupUnmute
	if mute {
		op = protocol.OpGroupMute
	}
	_, err := c.submit(ctx, op, protocol.FormatGroupMute(group, mute))
	return err
}

func (c *Controller) SetGroupName(ctx context.Context, group model.Identifier, name string) error {
	_, err := c.submit(ctx, protocol.OpGroupNameSet, protocol.FormatGroupNameSet(group, name))
	return err
}

func (c *Controller) AddGroupZone(ctx context.Context, group, zone model.Identifier) error {
	_, err := c.submit(ctx, protocol.OpGroupZoneAdd, protocol.FormatGroupZoneAdd(group, zone))
	return err
}

func (c *Controller) RemoveGroupZone(ctx context.Context, group, zone model.Identifier) error {
	_, err := c.submit(ctx, protocol.OpGroupZoneRemove, protocol.FormatGroupZoneRemove(group, zone))
	return err
}

func (c *Controller) SetSourceName(ctx context.Context, source model.Identifier, name string) error {
	_, err := c.submit(ctx, protocol.OpSourceNameSet, protocol.FormatSourceNameSet(source, name))
	return err
}

func (c *Controller) SetFavoriteName(ctx context.Context, favorite model.Identifier, name string) error {
	_, err := c.submit(ctx, protocol.OpFavoriteNameSet, protocol.FormatFavoriteNameSet(favorite, name))
	return err
}

func (c *Controller) SetEqualizerPresetName(ctx context.Context, preset model.Identifier, name string) error {
	_, err := c.submit(ctx, protocol.OpEqualizerPresetNameSet, protocol.FormatEqualizerPresetNameSet(preset, name))
	return err
}

func (c *Controller) SetEqualizerPresetBand(ctx context.Context, preset, band model.Identifier, level int) error {
	_, err := c.submit(ctx, protocol.OpEqualizerPresetBandSet, protocol.FormatEqualizerPresetBandSet(preset, band, level))
	return err
}

func (c *Controller) SetFrontPanelBrightness(ctx context.Context, level int) error {
	_, err := c.submit(ctx, protocol.OpFrontPanelBrightnessSet, protocol.FormatFrontPanelBrightnessSet(level))
	return err
}

func (c *Controller) SetFrontPanelLocked(ctx context.Context, locked bool) error {
	_, err := c.submit(ctx, protocol.OpFrontPanelLockedSet, protocol.FormatFrontPanelLockedRequest(locked))
	return err
}

func (c *Controller) SetNetworkDHCPv4(ctx context.Context, on bool) error {
	_, err := c.submit(ctx, protocol.OpNetworkDHCPv4Set, protocol.FormatNetworkDHCPv4(on))
	return err
}

func (c *Controller) SetNetworkSDDP(ctx context.Context, on bool) error {
	_, err := c.submit(ctx, protocol.OpNetworkSDDPSet, protocol.FormatNetworkSDDP(on))
	return err
}

// Save, Load, and Reset issue the three configuration-lifecycle
// bypass commands (spec.md line 126: they bypass the dirty-flag/timer
// cycle the server otherwise applies).
func (c *Controller) Save(ctx context.Context) error {
	_, err := c.submit(ctx, protocol.OpSave, "SAVE")
	return err
}

func (c *Controller) Load(ctx context.Context) error {
	_, err := c.submit(ctx, protocol.OpLoad, "LOAD")
	return err
}

func (c *Controller) Reset(ctx context.Context) error {
	_, err := c.submit(ctx, protocol.OpReset, "RESET")
	return err
}
