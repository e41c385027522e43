// Package client implements the client-role application controller: the
// personality that dials a matrix controller, keeps a local mirror of
// its state, issues commands, and orchestrates the startup refresh
// sweep (spec.md §4.4/§6). It owns exactly one connection.Reactor and
// runs its own single run-loop goroutine, mirroring the teacher's
// controller.go apply-copy-publish primitive but driven by wire frames
// rather than a local hardware.Driver.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/openhlxgo/hlx/internal/connection"
	"github.com/openhlxgo/hlx/internal/exchange"
	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
	"github.com/openhlxgo/hlx/internal/protocol"
)

// Controller is a single connection to a matrix controller, presenting
// the decoded model.State plus a notify.Bus of live change events.
type Controller struct {
	transport connection.Transport
	fsm       *connection.Client
	reactor   connection.Reactor
	engine    *exchange.Engine
	table     *protocol.Table
	bus       *notify.Bus
	limits    model.Limits

	stateMu sync.RWMutex
	state   model.State

	framer *protocol.Framer

	activity chan struct{} // pinged after every applied frame, for refresh settlement

	readCh chan readResult
	done   chan struct{}
	wg     sync.WaitGroup
}

type readResult struct {
	data []byte
	err  error
}

// New constructs a Controller bound to transport, with state seeded to
// limits' defaults and lifecycle/notification events reported through
// bus.
func New(transport connection.Transport, limits model.Limits, bus *notify.Bus) *Controller {
	c := &Controller{
		transport: transport,
		reactor:   nil,
		engine:    exchange.NewEngine(exchange.DefaultTimeout),
		table:     protocol.BuildResponseTable(),
		bus:       bus,
		limits:    limits,
		state:     model.DefaultState(limits),
		framer:    protocol.NewFramer(),
		activity:  make(chan struct{}, 1),
		readCh:    make(chan readResult, 8),
		done:      make(chan struct{}),
	}
	c.fsm = connection.NewClient(func(e connection.Event) {
		slog.Debug("client: lifecycle", "stage", e.Stage, "outcome", e.Outcome, "err", e.Err)
	})
	return c
}

// Connect dials the transport, transitions the lifecycle state machine,
// and starts the run loop. It does not perform a refresh; callers
// invoke Refresh explicitly once Connect returns.
func (c *Controller) Connect(ctx context.Context) error {
	if err := c.fsm.Resolve(); err != nil {
		return err
	}
	if err := c.fsm.ResolveSucceeded(); err != nil {
		return err
	}
	if err := c.transport.Open(ctx); err != nil {
		return c.fsm.ConnectFailed(err)
	}
	if err := c.fsm.ConnectSucceeded(); err != nil {
		return err
	}

	reactor, err := connection.NewReactor()
	if err != nil {
		return err
	}
	c.reactor = reactor

	c.wg.Add(1)
	go c.runLoop()
	return nil
}

// Close tears the connection down, cancels every in-flight exchange, and
// stops the run loop.
func (c *Controller) Close() error {
	close(c.done)
	c.engine.CancelAll(model.NewError(model.KindDisconnected, "connection closed"))
	err := c.transport.Close()
	c.wg.Wait()
	if c.reactor != nil {
		c.reactor.Close()
	}
	_ = c.fsm.Disconnect()
	_ = c.fsm.DisconnectSettled()
	return err
}

// State returns a deep copy of the controller's current view of system
// state, safe for the caller to read at leisure.
func (c *Controller) State() model.State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state.DeepCopy()
}

// send formats and writes a request frame, used both directly (queries,
// which bypass the exchange engine) and as the send callback handed to
// exchange.Engine.Submit.
func (c *Controller) send(payload string) error {
	return c.transport.Send(protocol.Wrap(payload))
}

// submit issues request expecting a response tagged op, matched by the
// exchange engine against the head of its queue (spec.md §4.2). Used for
// every mutating (SET-style) command, where the server echoes exactly
// one frame of the same operation back.
func (c *Controller) submit(ctx context.Context, op protocol.Op, request string) (protocol.Match, error) {
	return c.engine.Submit(ctx, op, request, c.send)
}

// runLoop is the controller's single run-loop goroutine (spec.md §5: "no
// entity is visible to two threads"). On Linux it registers the
// transport's fd with the epoll-backed reactor and blocks in Wait;
// elsewhere (connection/reactor_other.go's documented fallback)
// RegisterReadable returns ErrUnsupported and a dedicated blocking-read
// goroutine feeds readCh instead.
func (c *Controller) runLoop() {
	defer c.wg.Done()

	useReactor := false
	if fd := c.transport.Fd(); fd >= 0 {
		if _, err := c.reactor.RegisterReadable(fd); err == nil {
			useReactor = true
		}
	}
	if !useReactor {
		c.wg.Add(1)
		go c.readPump()
	}

	buf := make([]byte, 4096)
	for {
		select {
		case <-c.done:
			return
		default:
		}

		if useReactor {
			_, ok, err := c.reactor.Wait(200 * time.Millisecond)
			if err != nil {
				c.onDisconnect(err)
				return
			}
			if !ok {
				continue
			}
			n, err := c.transport.Recv(buf)
			if err != nil {
				c.onDisconnect(err)
				return
			}
			c.ingest(buf[:n])
			continue
		}

		select {
		case res, ok := <-c.readCh:
			if !ok {
				return
			}
			if res.err != nil {
				c.onDisconnect(res.err)
				return
			}
			c.ingest(res.data)
		case <-c.done:
			return
		}
	}
}

// readPump drives transport.Recv from a dedicated goroutine when the
// platform reactor has no readable-fd backend, per
// connection/reactor_other.go's documented portable fallback.
func (c *Controller) readPump() {
	defer c.wg.Done()
	buf := make([]byte, 4096)
	for {
		n, err := c.transport.Recv(buf)
		if err != nil {
			select {
			case c.readCh <- readResult{err: err}:
			case <-c.done:
			}
			return
		}
		cp := make([]byte, n)
		copy(cp, buf[:n])
		select {
		case c.readCh <- readResult{data: cp}:
		case <-c.done:
			return
		}
	}
}

func (c *Controller) onDisconnect(err error) {
	slog.Warn("client: transport disconnected", "err", err)
	c.engine.CancelAll(model.NewError(model.KindDisconnected, err.Error()))
}

// ingest feeds data through the framer and dispatches every complete
// frame. Every frame is applied to state the same way regardless of
// whether it also happens to be the response a pending exchange is
// waiting on: applyMatch updates the model and publishes its
// notification, and engine.Complete independently unblocks whichever
// Submit call queued the matching operation (spec.md §4.2). A frame
// satisfies either both or just the former (an unsolicited update
// from another client's mutation).
func (c *Controller) ingest(data []byte) {
	frames, overflowed := c.framer.Feed(data)
	if overflowed > 0 {
		slog.Warn("client: discarded oversized frame(s)", "count", overflowed)
	}
	for _, f := range frames {
		m, ok := c.table.MatchFrame(string(f))
		if !ok {
			slog.Warn("client: unrecognized frame", "payload", string(f))
			c.publish(notify.ProtocolError{Kind: model.KindUnknownCommand, Message: string(f)})
			continue
		}
		if err := c.applyMatch(m); err != nil {
			slog.Warn("client: failed to apply frame", "op", fmt.Sprint(m.Op), "err", err)
		}
		c.engine.Complete(m)
		c.pingActivity()
	}
}

func (c *Controller) pingActivity() {
	select {
	case c.activity <- struct{}{}:
	default:
	}
}

func (c *Controller) publish(n notify.Notification) {
	if c.bus != nil {
		c.bus.Publish(n)
	}
}
