package connection

import (
	"fmt"

	"github.com/looplab/fsm"
)

// Client states, per spec.md §4.5: "idle → resolving → connecting →
// connected → disconnecting → idle (client role)".
const (
	ClientIdle          = "idle"
	ClientResolving     = "resolving"
	ClientConnecting    = "connecting"
	ClientConnected     = "connected"
	ClientDisconnecting = "disconnecting"
)

const (
	evStartResolve      = "startResolve"
	evResolveSucceeded  = "resolveSucceeded"
	evResolveFailed     = "resolveFailed"
	evConnectSucceeded  = "connectSucceeded"
	evConnectFailed     = "connectFailed"
	evStartDisconnect   = "startDisconnect"
	evDisconnectSettled = "disconnectSettled"
)

// Client drives the client-role connection lifecycle. It does not
// touch a socket; callers report the outcome of each phase (name
// resolution succeeded, dial succeeded, and so on) and Client emits the
// corresponding will/did/didNot event to h.
type Client struct {
	m *fsm.FSM
	h Handler
}

// NewClient constructs a Client in the idle state, reporting lifecycle
// transitions to h (which may be nil to discard them).
func NewClient(h Handler) *Client {
	c := &Client{h: h}
	c.m = fsm.NewFSM(
		ClientIdle,
		fsm.Events{
			{Name: evStartResolve, Src: []string{ClientIdle}, Dst: ClientResolving},
			{Name: evResolveSucceeded, Src: []string{ClientResolving}, Dst: ClientConnecting},
			{Name: evResolveFailed, Src: []string{ClientResolving}, Dst: ClientIdle},
			{Name: evConnectSucceeded, Src: []string{ClientConnecting}, Dst: ClientConnected},
			{Name: evConnectFailed, Src: []string{ClientConnecting}, Dst: ClientIdle},
			{Name: evStartDisconnect, Src: []string{ClientConnected}, Dst: ClientDisconnecting},
			{Name: evDisconnectSettled, Src: []string{ClientDisconnecting}, Dst: ClientIdle},
		},
		fsm.Callbacks{
			fmt.Sprintf("enter_%s", ClientResolving):     func(e *fsm.Event) { c.h.fire(StageResolve, Will, nil) },
			fmt.Sprintf("enter_%s", ClientConnecting):    func(e *fsm.Event) { c.h.fire(StageConnect, Will, nil) },
			fmt.Sprintf("enter_%s", ClientDisconnecting): func(e *fsm.Event) { c.h.fire(StageDisconnect, Will, nil) },
			fmt.Sprintf("before_%s", evResolveSucceeded): func(e *fsm.Event) { c.h.fire(StageResolve, Did, nil) },
			fmt.Sprintf("after_%s", evConnectSucceeded):  func(e *fsm.Event) { c.h.fire(StageConnect, Did, nil) },
			fmt.Sprintf("after_%s", evDisconnectSettled): func(e *fsm.Event) { c.h.fire(StageDisconnect, Did, nil) },
		},
	)
	return c
}

// Current returns the machine's current state.
func (c *Client) Current() string { return c.m.Current() }

// Resolve begins name resolution, transitioning idle → resolving and
// firing will(resolve).
func (c *Client) Resolve() error { return c.m.Event(evStartResolve) }

// ResolveSucceeded reports that name resolution completed, transitioning
// resolving → connecting and firing did(resolve).
func (c *Client) ResolveSucceeded() error { return c.m.Event(evResolveSucceeded) }

// ResolveFailed reports that name resolution failed with err,
// transitioning resolving → idle and firing didNot(resolve, err).
func (c *Client) ResolveFailed(err error) error {
	if fErr := c.m.Event(evResolveFailed); fErr != nil {
		return fErr
	}
	c.h.fire(StageResolve, DidNot, err)
	return nil
}

// ConnectSucceeded reports that the dial completed, transitioning
// connecting → connected and firing did(connect).
func (c *Client) ConnectSucceeded() error { return c.m.Event(evConnectSucceeded) }

// ConnectFailed reports that the dial failed with err, transitioning
// connecting → idle and firing didNot(connect, err).
func (c *Client) ConnectFailed(err error) error {
	if fErr := c.m.Event(evConnectFailed); fErr != nil {
		return fErr
	}
	c.h.fire(StageConnect, DidNot, err)
	return nil
}

// Disconnect begins an orderly teardown, transitioning connected →
// disconnecting and firing will(disconnect).
func (c *Client) Disconnect() error { return c.m.Event(evStartDisconnect) }

// DisconnectSettled reports that the transport finished closing,
// transitioning disconnecting → idle and firing did(disconnect).
func (c *Client) DisconnectSettled() error { return c.m.Event(evDisconnectSettled) }
