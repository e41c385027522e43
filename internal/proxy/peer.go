package proxy

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/openhlxgo/hlx/internal/client"
	"github.com/openhlxgo/hlx/internal/connection"
	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/protocol"
)

// forwardTimeout bounds how long a downstream mutation waits on the
// upstream exchange before the peer gives up and reports an error back
// to its own requester.
const forwardTimeout = 5 * time.Second

// peer is one downstream connection. It has no state of its own: every
// mutating request is translated into the matching internal/client
// command and forwarded upstream; every query is answered directly from
// the upstream controller's current mirror.
type peer struct {
	proxy     *Proxy
	transport connection.Transport
	table     *protocol.Table
	framer    *protocol.Framer

	writeMu sync.Mutex
}

func newPeer(p *Proxy, transport connection.Transport) *peer {
	return &peer{
		proxy:     p,
		transport: transport,
		table:     protocol.BuildRequestTable(),
		framer:    protocol.NewFramer(),
	}
}

func (pr *peer) serve() {
	defer pr.transport.Close()
	buf := make([]byte, 4096)
	for {
		n, err := pr.transport.Recv(buf)
		if err != nil {
			return
		}
		pr.ingest(buf[:n])
	}
}

func (pr *peer) ingest(data []byte) {
	frames, overflowed := pr.framer.Feed(data)
	if overflowed > 0 {
		slog.Warn("proxy: discarded oversized frame(s)", "count", overflowed)
	}
	for _, f := range frames {
		m, ok := pr.table.MatchFrame(string(f))
		if !ok {
			slog.Warn("proxy: unrecognized frame", "payload", string(f))
			pr.writeFrame(protocol.FormatError)
			continue
		}
		respFrames, broadcast, err := pr.handle(m)
		if err != nil {
			slog.Warn("proxy: failed to forward request", "op", m.Op, "err", err)
			pr.writeFrame(protocol.FormatError)
			continue
		}
		for _, frame := range respFrames {
			pr.writeFrame(frame)
		}
		if broadcast {
			for _, frame := range respFrames {
				pr.proxy.broadcast(pr, frame)
			}
		}
	}
}

// handle forwards a mutating request to the upstream controller and
// renders its echo, or answers a query from the upstream mirror
// in-process. Unlike internal/server, the echo frame comes from the
// upstream notification that the forwarded command provokes, not from a
// value computed locally — but since the command call blocks on the
// upstream exchange until that echo has already been applied to the
// mirror (internal/client.Controller's Set* wrappers), re-deriving the
// frame from the now-current mirror is equivalent and avoids a second
// round of bus plumbing just for this one response.
func (pr *peer) handle(m protocol.Match) ([]string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
	defer cancel()

	switch m.Op {
	case protocol.OpZoneQuery:
		return pr.dumpZone(atoiID(m.Captures[0]))
	case protocol.OpGroupQuery:
		return pr.dumpGroup(atoiID(m.Captures[0]))
	case protocol.OpSourceQuery:
		return pr.dumpSource(atoiID(m.Captures[0]))
	case protocol.OpFavoriteQuery:
		return pr.dumpFavorite(atoiID(m.Captures[0]))
	case protocol.OpEqualizerPresetQuery:
		return pr.dumpEqualizerPreset(atoiID(m.Captures[0]))
	case protocol.OpFrontPanelQuery:
		return pr.dumpFrontPanel()
	case protocol.OpNetworkQuery:
		return pr.dumpNetwork()
	}

	u := pr.proxy.upstream
	var err error
	switch m.Op {
	case protocol.OpZoneVolumeSet:
		err = u.SetZoneVolume(ctx, atoiID(m.Captures[0]), atoiInt(m.Captures[1]))
	case protocol.OpZoneVolumeIncrease:
		err = u.AdjustZoneVolumeUp(ctx, atoiID(m.Captures[0]))
	case protocol.OpZoneVolumeDecrease:
		err = u.AdjustZoneVolumeDown(ctx, atoiID(m.Captures[0]))
	case protocol.OpZoneMute:
		err = u.SetZoneMute(ctx, atoiID(m.Captures[0]), true)
	case protocol.OpZoneUnmute:
		err = u.SetZoneMute(ctx, atoiID(m.Captures[0]), false)
	case protocol.OpZoneMuteToggle:
		err = u.ToggleZoneMute(ctx, atoiID(m.Captures[0]))
	case protocol.OpZoneSourceSet:
		err = u.SetZoneSource(ctx, atoiID(m.Captures[0]), atoiID(m.Captures[1]))
	case protocol.OpZoneBalanceSet:
		var bias int
		bias, err = protocol.DecodeBalance(m.Captures[1][0], atoiInt(m.Captures[2]))
		if err == nil {
			err = u.SetZoneBalance(ctx, atoiID(m.Captures[0]), bias)
		}
	case protocol.OpZoneToneSet:
		err = u.SetZoneTone(ctx, atoiID(m.Captures[0]), atoiInt(m.Captures[1]), atoiInt(m.Captures[2]))
	case protocol.OpZoneNameSet:
		err = u.SetZoneName(ctx, atoiID(m.Captures[0]), m.Captures[1])
	case protocol.OpZoneLowpassSet:
		err = u.SetZoneLowpass(ctx, atoiID(m.Captures[0]), atoiInt(m.Captures[1]))
	case protocol.OpZoneHighpassSet:
		err = u.SetZoneHighpass(ctx, atoiID(m.Captures[0]), atoiInt(m.Captures[1]))
	case protocol.OpZoneSoundModeSet:
		var kind model.SoundModeKind
		var presetID model.Identifier
		kind, presetID, err = protocol.ParseSoundModeToken(m.Captures[1])
		if err == nil {
			err = u.SetZoneSoundMode(ctx, atoiID(m.Captures[0]), kind, presetID)
		}
	case protocol.OpZoneEqualizerBandSet:
		err = u.SetZoneEqualizerBand(ctx, atoiID(m.Captures[0]), atoiID(m.Captures[1]), atoiInt(m.Captures[2]))
	case protocol.OpGroupVolumeSet:
		err = u.SetGroupVolume(ctx, atoiID(m.Captures[0]), atoiInt(m.Captures[1]))
	case protocol.OpGroupVolumeIncrease:
		err = pr.adjustGroupVolume(ctx, atoiID(m.Captures[0]), 1)
	case protocol.OpGroupVolumeDecrease:
		err = pr.adjustGroupVolume(ctx, atoiID(m.Captures[0]), -1)
	case protocol.OpGroupMute:
		err = u.SetGroupMute(ctx, atoiID(m.Captures[0]), true)
	case protocol.OpGroupUnmute:
		err = u.SetGroupMute(ctx, atoiID(m.Captures[0]), false)
	case protocol.OpGroupMuteToggle:
		err = pr.toggleGroupMute(ctx, atoiID(m.Captures[0]))
	case protocol.OpGroupSourceSet:
		if m.Captures[1] == "X" {
			return nil, false, model.ErrInvalidArgument("group source \"X\" is read-only")
		}
		err = forwardGroupSource(ctx, u, atoiID(m.Captures[0]), atoiID(m.Captures[1]))
	case protocol.OpGroupNameSet:
		err = u.SetGroupName(ctx, atoiID(m.Captures[0]), m.Captures[1])
	case protocol.OpGroupZoneAdd:
		err = u.AddGroupZone(ctx, atoiID(m.Captures[0]), atoiID(m.Captures[1]))
	case protocol.OpGroupZoneRemove:
		err = u.RemoveGroupZone(ctx, atoiID(m.Captures[0]), atoiID(m.Captures[1]))
	case protocol.OpSourceNameSet:
		err = u.SetSourceName(ctx, atoiID(m.Captures[0]), m.Captures[1])
	case protocol.OpFavoriteNameSet:
		err = u.SetFavoriteName(ctx, atoiID(m.Captures[0]), m.Captures[1])
	case protocol.OpEqualizerPresetNameSet:
		err = u.SetEqualizerPresetName(ctx, atoiID(m.Captures[0]), m.Captures[1])
	case protocol.OpEqualizerPresetBandSet:
		err = u.SetEqualizerPresetBand(ctx, atoiID(m.Captures[0]), atoiID(m.Captures[1]), atoiInt(m.Captures[2]))
	case protocol.OpFrontPanelBrightnessSet:
		err = u.SetFrontPanelBrightness(ctx, atoiInt(m.Captures[0]))
	case protocol.OpFrontPanelLockedSet:
		err = u.SetFrontPanelLocked(ctx, m.Captures[0] == "1")
	case protocol.OpNetworkDHCPv4Set:
		err = u.SetNetworkDHCPv4(ctx, m.Captures[0] == "1")
	case protocol.OpNetworkSDDPSet:
		err = u.SetNetworkSDDP(ctx, m.Captures[0] == "1")
	case protocol.OpSave:
		err = u.Save(ctx)
		return []string{protocol.FormatSave}, true, err
	case protocol.OpLoad:
		err = u.Load(ctx)
		return []string{protocol.FormatLoad}, true, err
	case protocol.OpReset:
		err = u.Reset(ctx)
		return []string{protocol.FormatReset}, true, err
	default:
		return nil, false, model.NewError(model.KindUnknownCommand, "unhandled op")
	}
	if err != nil {
		return nil, false, err
	}
	return pr.echoFor(m)
}

// adjustGroupVolume and toggleGroupMute have no single-exchange upstream
// primitive (the client's command set has no group-adjust/group-toggle
// wrapper, since spec.md's group fan-out is a server-side concept); the
// proxy instead reads the derived state off the upstream mirror and
// issues the equivalent absolute SetGroupVolume/SetGroupMute command.
func (pr *peer) adjustGroupVolume(ctx context.Context, gid model.Identifier, sign int) error {
	st := pr.proxy.upstream.State()
	g := st.FindGroup(gid)
	if g == nil {
		return model.ErrOutOfRange("group")
	}
	d := g.Derived()
	if !d.Defined {
		return model.NewError(model.KindNotInitialized, "group volume not initialized")
	}
	return pr.proxy.upstream.SetGroupVolume(ctx, gid, d.Volume+sign)
}

func (pr *peer) toggleGroupMute(ctx context.Context, gid model.Identifier) error {
	st := pr.proxy.upstream.State()
	g := st.FindGroup(gid)
	if g == nil {
		return model.ErrOutOfRange("group")
	}
	d := g.Derived()
	if !d.Defined {
		return model.NewError(model.KindNotInitialized, "group mute not initialized")
	}
	return pr.proxy.upstream.SetGroupMute(ctx, gid, !d.Mute)
}

// forwardGroupSource has no client command wrapper either (group source
// is itself a fan-out concept); the proxy instead drives every member
// zone's SetZoneSource individually, mirroring internal/server's
// forEachMember fan-out but over the wire instead of in-process.
func forwardGroupSource(ctx context.Context, u *client.Controller, gid, sid model.Identifier) error {
	st := u.State()
	g := st.FindGroup(gid)
	if g == nil {
		return model.ErrOutOfRange("group")
	}
	for _, zid := range g.Members() {
		if err := u.SetZoneSource(ctx, zid, sid); err != nil {
			return err
		}
	}
	return nil
}

func (pr *peer) writeFrame(payload string) {
	pr.writeMu.Lock()
	defer pr.writeMu.Unlock()
	if err := pr.transport.Send(protocol.Wrap(payload)); err != nil {
		slog.Warn("proxy: write failed", "err", err)
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
