package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/openhlxgo/hlx/internal/connection"
	"github.com/openhlxgo/hlx/internal/transport"
)

// Listener accepts matrix-controller connections on a TCP socket and
// hands each one to the Controller as a Session, tracking the aggregate
// accept lifecycle through a connection.Server state machine (spec.md
// §4.5's "idle → listening → accepting → connected(n) → idle" server
// role).
type Listener struct {
	ctrl *Controller
	fsm  *connection.Server
	ln   net.Listener
}

// NewListener constructs a Listener bound to ctrl, reporting lifecycle
// events through h (may be nil).
func NewListener(ctrl *Controller, h connection.Handler) *Listener {
	return &Listener{ctrl: ctrl, fsm: connection.NewServer(h)}
}

// Serve binds addr (defaulting the port to transport.DefaultTCPPort if
// omitted) and accepts connections until ctx is cancelled or Close is
// called. Each accepted connection is served on its own goroutine.
func (l *Listener) Serve(ctx context.Context, addr string) error {
	if err := l.fsm.Listen(); err != nil {
		return err
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = fmt.Sprintf("%s:%d", addr, transport.DefaultTCPPort)
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		_ = l.fsm.ListenFailed(err)
		return err
	}
	l.ln = ln
	if err := l.fsm.ListenSucceeded(); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		l.ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				_ = l.fsm.StopListening()
				return nil
			default:
				return err
			}
		}
		if err := l.fsm.ConnectionAccepted(); err != nil {
			slog.Warn("server: connection-accepted transition failed", "err", err)
		}
		tr := transport.NewTCPFromConn(conn)
		sess := newSession(l.ctrl, tr)
		go func() {
			sess.serve()
			if err := l.fsm.ConnectionClosed(); err != nil {
				slog.Warn("server: connection-closed transition failed", "err", err)
			}
		}()
	}
}

// Close stops accepting new connections.
func (l *Listener) Close() error {
	if l.ln == nil {
		return nil
	}
	return l.ln.Close()
}
