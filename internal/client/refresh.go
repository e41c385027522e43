package client

import (
	"context"
	"time"

	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
	"github.com/openhlxgo/hlx/internal/protocol"
)

// Per-entity settlement tuning for Refresh's query bursts. A query's
// response is not one frame but several — one per property (spec.md
// §6) — and none of them is necessarily tagged with the query's own
// operation, so the exchange engine's head-of-queue single-Op matching
// (internal/exchange) cannot recognize when a given entity's burst is
// done. Refresh instead sends each query directly over the transport,
// bypassing the engine entirely, and watches the activity signal
// applyMatch raises on every applied frame: once refreshQuiescence
// elapses with no further activity, the burst is declared settled. This
// mirrors store.JSONStore's write debounce inverted — "wait for things
// to go quiet" instead of "wait for writes to stop coming" — and is
// documented as a deliberate departure from per-property sub-exchanges
// in DESIGN.md. refreshEntityCap is the hard ceiling in case a peer
// never stops chattering (or never responds at all), echoing
// exchange.DefaultTimeout's order of magnitude.
const (
	refreshQuiescence = 50 * time.Millisecond
	refreshEntityCap  = 2 * time.Second
)

// Refresh issues one query per entity across the fixed sub-controller
// order network, front panel, sources, favorites, equalizer presets,
// zones, groups (spec.md §4.4), publishing notify.RefreshProgress as
// each entity's burst settles. Once every sub-controller has been
// swept, every group's derived state is recomputed and its
// notifications published before the terminal notify.Refreshed
// (load-bearing ordering, spec.md §4.4).
func (c *Controller) Refresh(ctx context.Context) error {
	total := 2 +
		int(c.limits.SourcesMax) +
		int(c.limits.FavoritesMax) +
		int(c.limits.EqualizerPresetsMax) +
		int(c.limits.ZonesMax) +
		int(c.limits.GroupsMax)
	completed := 0

	step := func(payload string) error {
		if err := c.send(payload); err != nil {
			return model.NewError(model.KindTransportError, err.Error())
		}
		if err := c.awaitSettled(ctx, refreshQuiescence, refreshEntityCap); err != nil {
			return err
		}
		completed++
		c.publish(notify.RefreshProgress{Percent: (completed * 100) / total})
		return nil
	}

	if err := step(protocol.FormatNetworkQuery()); err != nil {
		return err
	}
	if err := step(protocol.FormatFrontPanelQuery()); err != nil {
		return err
	}
	for i := model.Identifier(1); i <= c.limits.SourcesMax; i++ {
		if err := step(protocol.FormatSourceQuery(i)); err != nil {
			return err
		}
	}
	for i := model.Identifier(1); i <= c.limits.FavoritesMax; i++ {
		if err := step(protocol.FormatFavoriteQuery(i)); err != nil {
			return err
		}
	}
	for i := model.Identifier(1); i <= c.limits.EqualizerPresetsMax; i++ {
		if err := step(protocol.FormatEqualizerPresetQuery(i)); err != nil {
			return err
		}
	}
	for i := model.Identifier(1); i <= c.limits.ZonesMax; i++ {
		if err := step(protocol.FormatZoneQuery(i)); err != nil {
			return err
		}
	}
	for i := model.Identifier(1); i <= c.limits.GroupsMax; i++ {
		if err := step(protocol.FormatGroupQuery(i)); err != nil {
			return err
		}
	}

	c.deriveGroups()
	c.publish(notify.Refreshed{})
	return nil
}

// awaitSettled blocks until refreshQuiescence has elapsed with no
// activity ping, hardCap is reached, ctx is cancelled, or the connection
// closes.
func (c *Controller) awaitSettled(ctx context.Context, quiescence, hardCap time.Duration) error {
	deadline := time.Now().Add(hardCap)
	timer := time.NewTimer(quiescence)
	defer timer.Stop()

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}
		wait := quiescence
		if remaining < wait {
			wait = remaining
		}
		timer.Reset(wait)

		select {
		case <-c.activity:
			if !timer.Stop() {
				<-timer.C
			}
			continue
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return model.NewError(model.KindCancelled, ctx.Err().Error())
		case <-c.done:
			return model.NewError(model.KindDisconnected, "connection closed")
		}
	}
}

// deriveGroups recomputes every group's DerivedState from the current
// zone snapshot and publishes the resulting notifications, mirroring
// the teacher's updateGroupAggregates fan-out but computed from model
// state rather than a hardware read-back (spec.md §3).
func (c *Controller) deriveGroups() {
	c.stateMu.Lock()
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

	type derivedResult struct {
		id      model.Identifier
		derived model.DerivedState
	}
	results := make([]derivedResult, 0, len(c.state.Groups))
	for i := range c.state.Groups {
		g := &c.state.Groups[i]
		d := model.DeriveGroup(g.Members(), zoneVolume, zoneMute, zoneSource)
		g.SetDerived(d)
		results = append(results, derivedResult{id: g.ID(), derived: d})
	}
	c.stateMu.Unlock()

	for _, r := range results {
		if !r.derived.Defined {
			continue
		}
		c.publish(notify.GroupVolume{Group: r.id, Level: r.derived.Volume})
		c.publish(notify.GroupMute{Group: r.id, Mute: r.derived.Mute})
		c.publish(notify.GroupSource{Group: r.id, Source: r.derived.SourceID})
	}
}
