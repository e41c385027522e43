package server

import "github.com/openhlxgo/hlx/internal/connection"

// NewTestSession exposes the unexported session constructor to
// server_test so external tests can drive a Session directly over a
// net.Pipe without going through a real Listener.
func NewTestSession(ctrl *Controller, transport connection.Transport) *Session {
	return newSession(ctrl, transport)
}

// Serve exposes the unexported read loop for server_test.
func (s *Session) Serve() {
	s.serve()
}
