// Package server implements the server-role application controller: the
// personality that accepts matrix-controller connections, owns the
// authoritative model.State, applies inbound requests, fans group
// mutations out to member zones, and runs the configuration-lifecycle
// dirty-flag/save-timer cycle (spec.md §4.4). It never dials out; it is
// the teacher's controller.go apply-and-publish primitive (mutating in
// place under a lock rather than copying, see apply) driven by wire
// requests instead of hardware read-backs, paired with the
// teacher's JSONStore debounce idiom generalized to a dirty-flag poll.
package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
	"github.com/openhlxgo/hlx/internal/protocol"
	"github.com/openhlxgo/hlx/internal/store"
)

// DefaultSaveInterval is the dirty-flag poll period (spec.md §4.4's 30s
// persistence cycle, generalized from the teacher's 500ms debounce).
const DefaultSaveInterval = 30 * time.Second

// Controller is the authoritative system-state owner for the server
// (and, when embedded by a simulator binary, the simulator) personality.
// Exactly one goroutine (saveLoop) besides each Session's own read loop
// touches it directly; every request-driven mutation goes through apply,
// which is guarded by mu the same way internal/client.Controller guards
// its state mirror, while LOAD and RESET (loadNow, resetNow) replace the
// whole state under mu directly.
type Controller struct {
	mu    sync.Mutex
	state model.State

	store   store.Store
	bus     *notify.Bus
	limits  model.Limits
	dialect protocol.Dialect

	saveInterval time.Duration
	dirty        bool

	sessionsMu sync.Mutex
	sessions   map[*Session]struct{}

	done chan struct{}
	wg   sync.WaitGroup
}

// New loads state from st (falling back to model.DefaultState(limits) if
// the store has nothing yet, per store.Store.Load's contract) and
// constructs a Controller ready to have sessions registered and Run
// called.
func New(st store.Store, limits model.Limits, bus *notify.Bus, saveInterval time.Duration) (*Controller, error) {
	loaded, err := st.Load()
	if err != nil {
		return nil, err
	}
	if saveInterval <= 0 {
		saveInterval = DefaultSaveInterval
	}
	return &Controller{
		state:        *loaded,
		store:        st,
		bus:          bus,
		limits:       limits,
		saveInterval: saveInterval,
		sessions:     make(map[*Session]struct{}),
		done:         make(chan struct{}),
	}, nil
}

// Run starts the dirty-flag save-timer loop. Callers stop it with Close.
func (c *Controller) Run() {
	c.wg.Add(1)
	go c.saveLoop()
}

// Close stops the save loop and flushes any pending dirty state to the
// store before returning.
func (c *Controller) Close() error {
	close(c.done)
	c.wg.Wait()
	return c.store.Flush()
}

// State returns a deep copy of the current system state.
func (c *Controller) State() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.DeepCopy()
}

// saveLoop wakes every saveInterval and, if a mutation has landed since
// the last wake, asks the store to persist the current state and clears
// the flag. This is the dirty-flag half of spec.md §4.4's lifecycle;
// SAVE/LOAD/RESET (saveNow/loadNow/resetNow below) bypass it entirely.
func (c *Controller) saveLoop() {
	defer c.wg.Done()
	t := time.NewTicker(c.saveInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.flushIfDirty()
		case <-c.done:
			return
		}
	}
}

func (c *Controller) flushIfDirty() {
	c.mu.Lock()
	if !c.dirty {
		c.mu.Unlock()
		return
	}
	snapshot := c.state.DeepCopy()
	c.mu.Unlock()

	c.publish(notify.ConfigurationSaving{})
	if err := c.store.Save(&snapshot); err != nil {
		slog.Error("server: periodic save failed, will retry next tick", "err", err)
		return
	}

	c.mu.Lock()
	c.dirty = false
	c.mu.Unlock()
}

// apply runs fn with the write lock held, marks the state dirty for the
// next save-timer sweep, and returns whatever fn returns. It is the
// server-side counterpart of internal/client.Controller's applyMatch:
// same in-place-under-lock mutation style (rather than the teacher's
// whole-state deep copy per call), since a single zone/group field
// mutation deep-copying every other zone on every command does not
// scale past a handful of zones and internal/client already established
// the lighter-weight convention this repo follows.
func (c *Controller) apply(fn func(*model.State) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := fn(&c.state); err != nil {
		return err
	}
	c.dirty = true
	return nil
}

func (c *Controller) publish(n notify.Notification) {
	if c.bus != nil {
		c.bus.Publish(n)
	}
}

// registerSession and unregisterSession maintain the broadcast set every
// mutation's echo fans out to besides the requester (spec.md §6: other
// connected clients see another client's mutation as an unsolicited
// frame).
func (c *Controller) registerSession(s *Session) {
	c.sessionsMu.Lock()
	c.sessions[s] = struct{}{}
	c.sessionsMu.Unlock()
}

func (c *Controller) unregisterSession(s *Session) {
	c.sessionsMu.Lock()
	delete(c.sessions, s)
	c.sessionsMu.Unlock()
}

// broadcast writes payload to every registered session except from,
// wrapping it as a frame. Used so that a mutation's echo reaches every
// other currently connected peer, not only the one that requested it.
func (c *Controller) broadcast(from *Session, payload string) {
	c.sessionsMu.Lock()
	targets := make([]*Session, 0, len(c.sessions))
	for s := range c.sessions {
		if s != from {
			targets = append(targets, s)
		}
	}
	c.sessionsMu.Unlock()

	for _, s := range targets {
		s.writeFrame(payload)
	}
}

// saveNow, loadNow, and resetNow implement the SAVE/LOAD/RESET bypass
// commands (spec.md line 126): they act immediately, ignoring the
// dirty flag and save-timer cycle entirely.
func (c *Controller) saveNow() error {
	c.mu.Lock()
	snapshot := c.state.DeepCopy()
	c.dirty = false
	c.mu.Unlock()

	if err := c.store.Save(&snapshot); err != nil {
		return err
	}
	if err := c.store.Flush(); err != nil {
		return err
	}
	c.publish(notify.ConfigurationSaved{})
	return nil
}

func (c *Controller) loadNow() error {
	loaded, err := c.store.Load()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state = *loaded
	c.dirty = false
	c.mu.Unlock()
	c.publish(notify.ConfigurationLoaded{})
	return nil
}

func (c *Controller) resetNow() error {
	c.mu.Lock()
	c.state = model.DefaultState(c.limits)
	c.dirty = true
	c.mu.Unlock()
	c.publish(notify.ConfigurationReset{})
	return nil
}
