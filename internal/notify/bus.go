package notify

import "sync"

// Handler receives a notification synchronously on the publisher's own
// call stack (spec.md §4.3/§5: "delivery is synchronous on the owning
// run context"). A Handler that performs a further mutation leading to
// a re-entrant Publish must tolerate being invoked again before its own
// call returns.
type Handler func(Notification)

// Bus is a synchronous publish-subscribe notification bus. Unlike the
// teacher's events.Bus (chan-based, drops on a full buffer — correct
// for bridging into an async SSE client), Bus here calls every handler
// directly and in order: the core run loop is single-threaded by
// design (spec.md §5), so there is no slow consumer to protect against
// and a dropped notification would be an observable correctness bug,
// not a best-effort convenience.
type Bus struct {
	mu   sync.Mutex
	subs map[string]Handler
	seq  []string // subscription order, for deterministic delivery
}

// NewBus constructs an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]Handler)}
}

// Subscribe registers a handler under id, replacing any existing
// subscription with that id. Grounded in the teacher's id-keyed
// Subscribe/Unsubscribe shape (events.Bus), generalized from a fixed
// per-connection id to any caller-chosen string key (for example the
// proxy's fixed "proxy-broadcast").
func (b *Bus) Subscribe(id string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.subs[id]; !exists {
		b.seq = append(b.seq, id)
	}
	b.subs[id] = h
}

// Unsubscribe removes the handler registered under id, if any.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[id]; !ok {
		return
	}
	delete(b.subs, id)
	for i, sub := range b.seq {
		if sub == id {
			b.seq = append(b.seq[:i], b.seq[i+1:]...)
			break
		}
	}
}

// Publish delivers n to every current subscriber, in subscription
// order. The subscriber list is snapshotted before delivery begins so a
// handler that subscribes or unsubscribes during its own invocation
// (re-entrant Publish) cannot corrupt this delivery pass; it takes
// effect starting with the next Publish call.
func (b *Bus) Publish(n Notification) {
	b.mu.Lock()
	order := append([]string(nil), b.seq...)
	handlers := make(map[string]Handler, len(b.subs))
	for id, h := range b.subs {
		handlers[id] = h
	}
	b.mu.Unlock()

	for _, id := range order {
		if h, ok := handlers[id]; ok {
			h(n)
		}
	}
}

// SubscriberCount returns the current number of subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
