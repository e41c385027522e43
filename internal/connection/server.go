package connection

import (
	"errors"
	"fmt"
	"sync"

	"github.com/looplab/fsm"
)

// Server states, per spec.md §4.5: "idle → listening → accepting →
// connected (n connections) → idle (server role)". The FSM collapses
// "connected (n connections)" to a single Connected state; n is tracked
// alongside it, since looplab/fsm has no parameterized states.
const (
	ServerIdle      = "idle"
	ServerListening = "listening"
	ServerAccepting = "accepting"
	ServerConnected = "connected"
)

const (
	evStartListen        = "startListen"
	evListenSucceeded    = "listenSucceeded"
	evListenFailed       = "listenFailed"
	evConnectionAccepted = "connectionAccepted"
	evConnectionClosed   = "connectionClosed"
	evStopListening      = "stopListening"
)

// Server drives the server-role connection lifecycle across an
// arbitrary number of concurrently accepted peers.
type Server struct {
	mu    sync.Mutex
	m     *fsm.FSM
	h     Handler
	conns int
}

// NewServer constructs a Server in the idle state, reporting lifecycle
// transitions to h.
func NewServer(h Handler) *Server {
	s := &Server{h: h}
	s.m = fsm.NewFSM(
		ServerIdle,
		fsm.Events{
			{Name: evStartListen, Src: []string{ServerIdle}, Dst: ServerListening},
			{Name: evListenSucceeded, Src: []string{ServerListening}, Dst: ServerAccepting},
			{Name: evListenFailed, Src: []string{ServerListening}, Dst: ServerIdle},
			{Name: evConnectionAccepted, Src: []string{ServerAccepting, ServerConnected}, Dst: ServerConnected},
			{Name: evConnectionClosed, Src: []string{ServerConnected}, Dst: ServerConnected},
			{Name: evStopListening, Src: []string{ServerListening, ServerAccepting, ServerConnected}, Dst: ServerIdle},
		},
		fsm.Callbacks{
			fmt.Sprintf("enter_%s", ServerListening):   func(e *fsm.Event) { s.h.fire(StageListen, Will, nil) },
			fmt.Sprintf("after_%s", evListenSucceeded):  func(e *fsm.Event) { s.h.fire(StageListen, Did, nil) },
			fmt.Sprintf("enter_%s", ServerConnected): func(e *fsm.Event) {
				if e.Src == ServerAccepting {
					s.h.fire(StageAccept, Did, nil)
				}
			},
		},
	)
	return s
}

// Current returns the machine's current state.
func (s *Server) Current() string { return s.m.Current() }

// ConnectionCount returns the number of currently accepted peer
// connections.
func (s *Server) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

// Listen begins binding the listening socket, transitioning idle →
// listening and firing will(listen).
func (s *Server) Listen() error { return s.m.Event(evStartListen) }

// ListenSucceeded reports the bind completed, transitioning listening →
// accepting and firing did(listen).
func (s *Server) ListenSucceeded() error { return s.m.Event(evListenSucceeded) }

// ListenFailed reports the bind failed with err, transitioning
// listening → idle and firing didNot(listen, err).
func (s *Server) ListenFailed(err error) error {
	if fErr := s.m.Event(evListenFailed); fErr != nil {
		return fErr
	}
	s.h.fire(StageListen, DidNot, err)
	return nil
}

// ConnectionAccepted reports a newly accepted peer, transitioning
// accepting → connected (or connected → connected for the second and
// later peer) and firing did(accept). The accept stage itself has no
// separate "will" moment: the accept() call is the transport's, not the
// manager's, to announce.
func (s *Server) ConnectionAccepted() error {
	if err := s.m.Event(evConnectionAccepted); err != nil {
		// connected → connected is a self-transition: looplab/fsm reports
		// it as NoTransitionError and skips enter_connected.
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return err
		}
		s.h.fire(StageAccept, Did, nil)
	}
	s.mu.Lock()
	s.conns++
	s.mu.Unlock()
	return nil
}

// ConnectionClosed reports one peer disconnecting. It never transitions
// the machine out of Connected on its own: spec.md §4.5 collapses the
// "connected (n connections)" phase into one state regardless of n, and
// only an explicit StopListening ends the server's run.
func (s *Server) ConnectionClosed() error {
	if err := s.m.Event(evConnectionClosed); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return err
		}
	}
	s.mu.Lock()
	if s.conns > 0 {
		s.conns--
	}
	s.mu.Unlock()
	return nil
}

// StopListening tears the listener down from any active state,
// transitioning to idle and firing will/did(disconnect) bracketing the
// shutdown.
func (s *Server) StopListening() error {
	s.h.fire(StageDisconnect, Will, nil)
	if err := s.m.Event(evStopListening); err != nil {
		return err
	}
	s.mu.Lock()
	s.conns = 0
	s.mu.Unlock()
	s.h.fire(StageDisconnect, Did, nil)
	return nil
}
