package server

import (
	"log/slog"
	"sync"

	"github.com/openhlxgo/hlx/internal/connection"
	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/protocol"
)

// Session is one accepted peer connection. Unlike internal/client's
// Controller, a server fields an arbitrary number of concurrent peers,
// so each Session drives its own dedicated blocking read goroutine
// rather than sharing one reactor across every connection — the same
// "no fd, no epoll, drive it from a goroutine instead" fallback
// transport.Serial and connection/reactor_other.go already document,
// applied here by choice (one reactor per socket would work too, but
// multiplies epoll instances for no benefit when every Session's own
// goroutine already serializes its own reads).
type Session struct {
	ctrl      *Controller
	transport connection.Transport
	table     *protocol.Table
	framer    *protocol.Framer

	writeMu sync.Mutex
	done    chan struct{}
}

func newSession(ctrl *Controller, transport connection.Transport) *Session {
	return &Session{
		ctrl:      ctrl,
		transport: transport,
		table:     protocol.BuildRequestTable(),
		framer:    protocol.NewFramer(),
		done:      make(chan struct{}),
	}
}

// serve drives the session's read loop until the peer disconnects or
// the transport errors. It blocks; callers run it in its own goroutine.
func (s *Session) serve() {
	s.ctrl.registerSession(s)
	defer s.ctrl.unregisterSession(s)
	defer s.transport.Close()
	defer close(s.done)

	buf := make([]byte, 4096)
	for {
		n, err := s.transport.Recv(buf)
		if err != nil {
			return
		}
		s.ingest(buf[:n])
	}
}

func (s *Session) ingest(data []byte) {
	frames, overflowed := s.framer.Feed(data)
	if overflowed > 0 {
		slog.Warn("server: discarded oversized frame(s)", "count", overflowed)
	}
	for _, f := range frames {
		m, ok := s.table.MatchFrame(string(f))
		if !ok {
			slog.Warn("server: unrecognized frame", "payload", string(f))
			s.writeFrame(protocol.FormatError)
			continue
		}
		res, err := s.ctrl.handleRequest(m)
		if err != nil {
			slog.Warn("server: failed to handle request", "op", m.Op, "err", err)
			s.writeFrame(errorReply(err))
			continue
		}
		for _, frame := range res.frames {
			s.writeFrame(frame)
		}
		if res.broadcast {
			for _, frame := range res.frames {
				s.ctrl.broadcast(s, frame)
			}
		}
	}
}

// errorReply renders the wire-level ERROR reply. spec.md §6 defines no
// structured error payload — a bare "ERROR" frame is the whole contract
// — so the underlying model.Error's Kind is only ever logged, never
// sent.
func errorReply(err error) string {
	_ = model.KindOf(err)
	return protocol.FormatError
}

func (s *Session) writeFrame(payload string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.transport.Send(protocol.Wrap(payload)); err != nil {
		slog.Warn("server: write failed", "err", err)
	}
}
