package server_test

import (
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
	"github.com/openhlxgo/hlx/internal/protocol"
	"github.com/openhlxgo/hlx/internal/server"
	"github.com/openhlxgo/hlx/internal/store"
	"github.com/openhlxgo/hlx/internal/transport"
)

func testLimits() model.Limits {
	return model.Limits{
		SourcesMax:          2,
		ZonesMax:            2,
		GroupsMax:           1,
		FavoritesMax:        1,
		EqualizerPresetsMax: 3,
		EqualizerBandsMax:   10,
	}
}

// newController builds a running Controller over a MemStore with a
// one-hour save interval, so the periodic save never fires during a
// test, and closes it on cleanup.
func newController(t *testing.T) (*server.Controller, *notify.Bus) {
	t.Helper()
	bus := notify.NewBus()
	ctrl, err := server.New(store.NewMemStore(testLimits()), testLimits(), bus, time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctrl.Run()
	t.Cleanup(func() { ctrl.Close() })
	return ctrl, bus
}

func dialServer(t *testing.T, ln *server.Listener, addr string) net.Conn {
	t.Helper()
	var conn net.Conn
	var err error
	for i := 0; i < 50; i++ {
		conn, err = net.Dial("tcp", addr)
		if err == nil {
			return conn
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("dial %s: %v", addr, err)
	return nil
}

func TestServerEchoesZoneVolumeSetAndUpdatesState(t *testing.T) {
	ctrl, _ := newController(t)
	ln := server.NewListener(ctrl, nil)

	listening := make(chan string, 1)
	go func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Errorf("listen: %v", err)
			return
		}
		listening <- l.Addr().String()
		l.Close()
	}()
	addr := <-listening

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- ln.Serve(ctx, addr) }()
	defer ln.Close()

	conn := dialServer(t, ln, addr)
	defer conn.Close()

	if _, err := conn.Write(protocol.Wrap("VO1R-20")); err != nil {
		t.Fatalf("write: %v", err)
	}

	buf := make([]byte, 256)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	framer := protocol.NewFramer()
	frames, _ := framer.Feed(buf[:n])
	if len(frames) != 1 || string(frames[0]) != "VO1R-20" {
		t.Fatalf("got frames %v, want [VO1R-20]", frames)
	}

	st := ctrl.State()
	lvl, err := st.FindZone(1).Volume.Level()
	if err != nil || lvl != -20 {
		t.Fatalf("zone 1 level = (%d, %v), want (-20, nil)", lvl, err)
	}
}

func TestServerGroupVolumeFanOutAndDerivedEcho(t *testing.T) {
	ctrl, _ := newController(t)

	// Build membership directly through the wire to exercise the fan-out
	// path end to end: add zone 1 and zone 2 to group 1, then move the
	// group's volume and confirm both zones followed.
	a, b := net.Pipe()
	tr := transport.NewTCPFromConn(a)
	peer := b

	done := make(chan struct{})
	go func() {
		defer close(done)
		framer := protocol.NewFramer()
		buf := make([]byte, 256)
		for {
			n, err := peer.Read(buf)
			if err != nil {
				return
			}
			framer.Feed(buf[:n])
		}
	}()

	sess := server.NewTestSession(ctrl, tr)
	go sess.Serve()

	write(t, peer, "AG1O1")
	write(t, peer, "AG1O2")
	write(t, peer, "VG1R-30")

	time.Sleep(100 * time.Millisecond)
	a.Close()
	peer.Close()
	<-done

	st := ctrl.State()
	for _, zid := range []model.Identifier{1, 2} {
		lvl, err := st.FindZone(zid).Volume.Level()
		if err != nil || lvl != -30 {
			t.Fatalf("zone %d level = (%d, %v), want (-30, nil)", zid, lvl, err)
		}
	}
	g := st.FindGroup(1)
	if !g.Derived().Defined || g.Derived().Volume != -30 {
		t.Fatalf("group 1 derived = %+v, want Defined with Volume -30", g.Derived())
	}
}

func TestServerSuppressesNotificationOnAlreadySet(t *testing.T) {
	ctrl, bus := newController(t)
	a, b := net.Pipe()
	tr := transport.NewTCPFromConn(a)
	sess := server.NewTestSession(ctrl, tr)
	go sess.Serve()
	defer a.Close()
	defer b.Close()

	var mu sync.Mutex
	count := 0
	bus.Subscribe("t", func(n notify.Notification) {
		if _, ok := n.(notify.ZoneVolume); ok {
			mu.Lock()
			count++
			mu.Unlock()
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		framer := protocol.NewFramer()
		buf := make([]byte, 256)
		for i := 0; i < 2; i++ {
			b.SetReadDeadline(time.Now().Add(2 * time.Second))
			n, err := b.Read(buf)
			if err != nil {
				return
			}
			framer.Feed(buf[:n])
		}
	}()

	write(t, b, "VO1R-20")
	write(t, b, "VO1R-20")
	<-done

	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Fatalf("ZoneVolume notification count = %d, want 1 (repeated identical set must not publish twice)", count)
	}
}

func TestServerEmitsZoneEqualizerPresetOnPresetOnlyChange(t *testing.T) {
	ctrl, bus := newController(t)
	a, b := net.Pipe()
	tr := transport.NewTCPFromConn(a)
	sess := server.NewTestSession(ctrl, tr)
	go sess.Serve()
	defer a.Close()
	defer b.Close()

	var mu sync.Mutex
	var modes []notify.ZoneSoundMode
	var presets []notify.ZoneEqualizerPreset
	bus.Subscribe("t", func(n notify.Notification) {
		mu.Lock()
		defer mu.Unlock()
		switch v := n.(type) {
		case notify.ZoneSoundMode:
			modes = append(modes, v)
		case notify.ZoneEqualizerPreset:
			presets = append(presets, v)
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		framer := protocol.NewFramer()
		buf := make([]byte, 256)
		for i := 0; i < 2; i++ {
			b.SetReadDeadline(time.Now().Add(2 * time.Second))
			n, err := b.Read(buf)
			if err != nil {
				return
			}
			framer.Feed(buf[:n])
		}
	}()

	// First selects presetEqualizer mode with preset 2 (a mode
	// transition); second stays in presetEqualizer but moves to preset 3
	// (a preset-only change, spec.md §4.3's ZoneEqualizerPreset case).
	write(t, b, "MO1EQ2")
	write(t, b, "MO1EQ3")
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(modes) != 1 || modes[0].Kind != model.SoundModePresetEqualizer || modes[0].PresetID != 2 {
		t.Fatalf("ZoneSoundMode notifications = %+v, want exactly one with PresetID 2", modes)
	}
	if len(presets) != 1 || presets[0].Preset != 3 {
		t.Fatalf("ZoneEqualizerPreset notifications = %+v, want exactly one with Preset 3", presets)
	}
}

func TestServerZoneQueryAnswersOnlyInitializedProperties(t *testing.T) {
	ctrl, _ := newController(t)
	a, b := net.Pipe()
	tr := transport.NewTCPFromConn(a)
	sess := server.NewTestSession(ctrl, tr)
	go sess.Serve()
	defer a.Close()
	defer b.Close()

	write(t, b, "VO1R-15")

	b.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 256)
	n, err := b.Read(buf)
	if err != nil {
		t.Fatalf("read echo: %v", err)
	}
	framer := protocol.NewFramer()
	framer.Feed(buf[:n])

	write(t, b, "QO1")
	b.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err = b.Read(buf)
	if err != nil {
		t.Fatalf("read query response: %v", err)
	}
	frames, _ := framer.Feed(buf[:n])
	found := false
	for _, f := range frames {
		if strings.HasPrefix(string(f), "VO1R") {
			found = true
		}
	}
	if !found {
		t.Fatalf("query response %v missing volume frame", frames)
	}
}

func TestServerSaveBypassesDirtyTimer(t *testing.T) {
	bus := notify.NewBus()
	st := store.NewMemStore(testLimits())
	ctrl, err := server.New(st, testLimits(), bus, time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctrl.Run()
	defer ctrl.Close()

	saved := make(chan struct{}, 1)
	bus.Subscribe("t", func(n notify.Notification) {
		if _, ok := n.(notify.ConfigurationSaved); ok {
			select {
			case saved <- struct{}{}:
			default:
			}
		}
	})

	a, b := net.Pipe()
	tr := transport.NewTCPFromConn(a)
	sess := server.NewTestSession(ctrl, tr)
	go sess.Serve()
	defer a.Close()
	defer b.Close()

	write(t, b, "VO1R-5")
	write(t, b, "SAVE")

	select {
	case <-saved:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ConfigurationSaved")
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lvl, err := loaded.FindZone(1).Volume.Level()
	if err != nil || lvl != -5 {
		t.Fatalf("persisted zone 1 level = (%d, %v), want (-5, nil)", lvl, err)
	}
}

func write(t *testing.T, conn net.Conn, payload string) {
	t.Helper()
	if _, err := conn.Write(protocol.Wrap(payload)); err != nil {
		t.Fatalf("write %q: %v", payload, err)
	}
}
