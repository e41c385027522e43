// Package proxy wires a client-role internal/client.Controller (talking
// to a real matrix controller or a simulator) into a server-role TCP
// front, so many downstream peers can share one upstream connection the
// way the original hlxproxyd daemon sat in front of a physical unit
// (original_source's ApplicationControllerDelegate.hpp: a single
// top-level controller fielding both client-facing accept events and
// server-facing connect events). Unlike internal/server, a Proxy keeps
// no model.State of its own and writes nothing to a store.Store — state
// lives exclusively in the upstream Controller's mirror; the proxy's
// job is translation, not persistence.
package proxy

import (
	"context"
	"log/slog"
	"net"
	"sync"

	"github.com/openhlxgo/hlx/internal/client"
	"github.com/openhlxgo/hlx/internal/connection"
	"github.com/openhlxgo/hlx/internal/notify"
	"github.com/openhlxgo/hlx/internal/protocol"
	"github.com/openhlxgo/hlx/internal/transport"
)

// Proxy relays one upstream matrix-controller connection to an
// arbitrary number of downstream peers.
type Proxy struct {
	upstream *client.Controller

	fsm *connection.Server
	ln  net.Listener

	peersMu sync.Mutex
	peers   map[*peer]struct{}

	subID string
}

// New constructs a Proxy that drives upstream. Callers are responsible
// for calling upstream.Connect and upstream.Refresh before Serve, so
// the first downstream QUERY sees settled state rather than the
// limits-only default.
func New(upstream *client.Controller) *Proxy {
	return &Proxy{
		upstream: upstream,
		fsm:      connection.NewServer(nil),
		peers:    make(map[*peer]struct{}),
		subID:    "proxy-broadcast",
	}
}

// Serve binds addr and relays downstream connections until ctx is
// cancelled. It also subscribes to the upstream controller's bus for
// the lifetime of the call, broadcasting every unsolicited change to
// every connected peer.
func (p *Proxy) Serve(ctx context.Context, bus *notify.Bus, addr string) error {
	bus.Subscribe(p.subID, p.onUpstreamNotification)
	defer bus.Unsubscribe(p.subID)

	if err := p.fsm.Listen(); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		_ = p.fsm.ListenFailed(err)
		return err
	}
	p.ln = ln
	if err := p.fsm.ListenSucceeded(); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				_ = p.fsm.StopListening()
				return nil
			default:
				return err
			}
		}
		if err := p.fsm.ConnectionAccepted(); err != nil {
			slog.Warn("proxy: connection-accepted transition failed", "err", err)
		}
		pr := newPeer(p, transport.NewTCPFromConn(conn))
		p.register(pr)
		go func() {
			pr.serve()
			p.unregister(pr)
			if err := p.fsm.ConnectionClosed(); err != nil {
				slog.Warn("proxy: connection-closed transition failed", "err", err)
			}
		}()
	}
}

// Close stops accepting new downstream connections.
func (p *Proxy) Close() error {
	if p.ln == nil {
		return nil
	}
	return p.ln.Close()
}

func (p *Proxy) register(pr *peer) {
	p.peersMu.Lock()
	p.peers[pr] = struct{}{}
	p.peersMu.Unlock()
}

func (p *Proxy) unregister(pr *peer) {
	p.peersMu.Lock()
	delete(p.peers, pr)
	p.peersMu.Unlock()
}

// broadcast writes payload to every connected downstream peer except
// from (from is nil for upstream-originated relays, which have no
// originating peer to exclude).
func (p *Proxy) broadcast(from *peer, payload string) {
	p.peersMu.Lock()
	targets := make([]*peer, 0, len(p.peers))
	for pr := range p.peers {
		if pr != from {
			targets = append(targets, pr)
		}
	}
	p.peersMu.Unlock()

	for _, pr := range targets {
		pr.writeFrame(payload)
	}
}

// onUpstreamNotification renders the upstream bus's tagged notification
// as a wire frame and relays it to every downstream peer. Lifecycle and
// progress notifications (Refreshed, RefreshProgress, Configuration*)
// carry nothing wire-representable and are dropped here.
func (p *Proxy) onUpstreamNotification(n notify.Notification) {
	frame, ok := formatNotification(n)
	if !ok {
		return
	}
	p.broadcast(nil, frame)
}

// formatNotification is the inverse of internal/server's per-field
// publish calls: given a notify.Notification, render the single wire
// frame spec.md §4.3 says corresponds to it.
func formatNotification(n notify.Notification) (string, bool) {
	switch v := n.(type) {
	case notify.ZoneVolume:
		return protocol.FormatZoneVolumeSet(v.Zone, v.Level), true
	case notify.ZoneMute:
		return protocol.FormatZoneMute(v.Zone, v.Mute), true
	case notify.ZoneSource:
		return protocol.FormatZoneSourceSet(v.Zone, v.Source), true
	case notify.ZoneName:
		return protocol.FormatZoneNameSet(v.Zone, v.Name), true
	case notify.ZoneBalance:
		return protocol.FormatZoneBalanceSet(v.Zone, v.Bias), true
	case notify.ZoneTone:
		return protocol.FormatZoneToneSet(v.Zone, v.Bass, v.Treble), true
	case notify.ZoneSoundMode:
		return protocol.FormatZoneSoundModeSet(v.Zone, v.Kind, v.PresetID), true
	case notify.ZoneEqualizerBand:
		return protocol.FormatZoneEqualizerBandSet(v.Zone, v.Band, v.Level), true
	case notify.ZoneLowpass:
		return protocol.FormatZoneLowpassSet(v.Zone, v.Frequency), true
	case notify.ZoneHighpass:
		return protocol.FormatZoneHighpassSet(v.Zone, v.Frequency), true
	case notify.GroupName:
		return protocol.FormatGroupNameSet(v.Group, v.Name), true
	case notify.GroupSource:
		return protocol.FormatGroupSourceReport(v.Group, v.Source), true
	case notify.GroupMute:
		return protocol.FormatGroupMute(v.Group, v.Mute), true
	case notify.GroupVolume:
		return protocol.FormatGroupVolumeSet(v.Group, v.Level), true
	case notify.GroupZoneAdded:
		return protocol.FormatGroupZoneAdd(v.Group, v.Zone), true
	case notify.GroupZoneRemoved:
		return protocol.FormatGroupZoneRemove(v.Group, v.Zone), true
	case notify.SourceName:
		return protocol.FormatSourceNameSet(v.Source, v.Name), true
	case notify.FavoriteName:
		return protocol.FormatFavoriteNameSet(v.Favorite, v.Name), true
	case notify.EqualizerPresetName:
		return protocol.FormatEqualizerPresetNameSet(v.Preset, v.Name), true
	case notify.EqualizerPresetBand:
		return protocol.FormatEqualizerPresetBandSet(v.Preset, v.Band, v.Level), true
	case notify.FrontPanelBrightness:
		return protocol.FormatFrontPanelBrightnessSet(v.Level), true
	case notify.FrontPanelLocked:
		return protocol.FormatFrontPanelLockedSet(protocol.Dialect{}, v.Locked), true
	case notify.NetworkDHCPv4Enabled:
		return protocol.FormatNetworkDHCPv4(v.Enabled), true
	case notify.NetworkSDDPEnabled:
		return protocol.FormatNetworkSDDP(v.Enabled), true
	case notify.NetworkEthernetEUI48:
		return protocol.FormatNetworkEUI48(v.MAC), true
	case notify.NetworkHostAddress:
		return protocol.FormatNetworkHostAddress(v.Address), true
	case notify.NetworkDefaultRouterAddress:
		return protocol.FormatNetworkRouterAddress(v.Address), true
	case notify.NetworkNetmask:
		return protocol.FormatNetworkNetmask(v.Address), true
	default:
		return "", false
	}
}
