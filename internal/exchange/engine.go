package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/protocol"
)

// DefaultTimeout is used when Submit is not given an explicit per-call
// timeout (spec.md §4.2: "default: same timeout used for the
// connection").
const DefaultTimeout = 5 * time.Second

// Engine is one connection's exchange queue. At most one exchange is
// in flight in the sense that responses are matched against the
// head-of-queue entry (spec.md §4.2); multiple exchanges may still be
// queued awaiting their turn. A mutex guards the queue because the
// per-exchange timer fires on its own goroutine (time.AfterFunc),
// concurrently with whatever goroutine feeds it inbound frames — the
// "single run context" spec.md §5 describes is per-connection, not
// lock-free against Go's runtime-scheduled timers.
type Engine struct {
	mu      sync.Mutex
	queue   []*pending
	timeout time.Duration
}

// NewEngine constructs an Engine with the given default per-exchange
// timeout.
func NewEngine(defaultTimeout time.Duration) *Engine {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultTimeout
	}
	return &Engine{timeout: defaultTimeout}
}

// Submit enqueues request (already formatted wire text, without
// brackets) expecting a response matching op, and blocks until a
// matching response arrives, the exchange times out, ctx is cancelled,
// or the connection disconnects (CancelAll). send is called once the
// exchange is queued, with the engine's internal lock released, so the
// caller can safely write to the transport from within it.
func (e *Engine) Submit(ctx context.Context, op protocol.Op, request string, send func(string) error) (protocol.Match, error) {
	return e.submitWithTimeout(ctx, op, request, e.timeout, send)
}

// SubmitWithTimeout is Submit with an explicit per-call timeout
// overriding the engine's default.
func (e *Engine) SubmitWithTimeout(ctx context.Context, op protocol.Op, request string, timeout time.Duration, send func(string) error) (protocol.Match, error) {
	return e.submitWithTimeout(ctx, op, request, timeout, send)
}

func (e *Engine) submitWithTimeout(ctx context.Context, op protocol.Op, request string, timeout time.Duration, send func(string) error) (protocol.Match, error) {
	p := &pending{
		id:      NewID(),
		op:      op,
		request: request,
		result:  make(chan Result, 1),
	}

	e.mu.Lock()
	e.queue = append(e.queue, p)
	p.timer = time.AfterFunc(timeout, func() { e.timeoutExchange(p) })
	e.mu.Unlock()

	if send != nil {
		if err := send(request); err != nil {
			e.removeAndStop(p)
			return protocol.Match{}, model.NewError(model.KindTransportError, err.Error())
		}
	}

	select {
	case res := <-p.result:
		return res.Match, res.Err
	case <-ctx.Done():
		e.removeAndStop(p)
		return protocol.Match{}, model.NewError(model.KindCancelled, ctx.Err().Error())
	}
}

// Complete matches an inbound response frame against the head of the
// queue. If m's operation matches the head exchange's expected
// operation, that exchange completes successfully and Complete returns
// true. Otherwise Complete returns false, and the caller should treat m
// as an unsolicited notification (spec.md §4.2).
func (e *Engine) Complete(m protocol.Match) bool {
	e.mu.Lock()
	if len(e.queue) == 0 || e.queue[0].op != m.Op {
		e.mu.Unlock()
		return false
	}
	p := e.queue[0]
	e.queue = e.queue[1:]
	e.mu.Unlock()

	p.timer.Stop()
	p.result <- Result{Match: m}
	return true
}

// CancelAll fails every queued and in-flight exchange with err
// (spec.md §4.2: "Disconnect cancels every queued and in-flight
// exchange with Cancelled").
func (e *Engine) CancelAll(err error) {
	e.mu.Lock()
	queued := e.queue
	e.queue = nil
	e.mu.Unlock()

	for _, p := range queued {
		p.timer.Stop()
		p.result <- Result{Err: err}
	}
}

// Len reports the number of exchanges currently queued (including the
// in-flight head).
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) timeoutExchange(p *pending) {
	e.mu.Lock()
	idx := -1
	for i, q := range e.queue {
		if q == p {
			idx = i
			break
		}
	}
	if idx == -1 {
		e.mu.Unlock()
		return // already completed or cancelled
	}
	e.queue = append(e.queue[:idx], e.queue[idx+1:]...)
	e.mu.Unlock()

	p.result <- Result{Err: model.NewError(model.KindTimeout, "exchange timed out")}
}

func (e *Engine) removeAndStop(p *pending) {
	e.mu.Lock()
	for i, q := range e.queue {
		if q == p {
			e.queue = append(e.queue[:i], e.queue[i+1:]...)
			break
		}
	}
	e.mu.Unlock()
	p.timer.Stop()
}
