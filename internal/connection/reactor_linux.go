//go:build linux

package connection

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// epollReactor is the Linux backend for Reactor, grounded on the
// teacher's only other direct golang.org/x/sys/unix use (the I2C ioctl
// driver in internal/hardware/i2c.go) for the general shape of wrapping
// a raw syscall fd in a small Go type with its own mutex.
type epollReactor struct {
	mu        sync.Mutex
	epfd      int
	nextToken Token
	fds       map[Token]int // token -> registered fd
	deadlines []deadline
}

type deadline struct {
	tok Token
	at  time.Time
}

// NewReactor constructs the platform's Reactor implementation.
func NewReactor() (Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &epollReactor{epfd: epfd, fds: make(map[Token]int)}, nil
}

func (r *epollReactor) RegisterReadable(fd int) (Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tok := r.newToken()
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return 0, err
	}
	r.fds[tok] = fd
	return tok, nil
}

func (r *epollReactor) Deadline(at time.Time) Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	tok := r.newToken()
	r.deadlines = append(r.deadlines, deadline{tok: tok, at: at})
	sort.Slice(r.deadlines, func(i, j int) bool { return r.deadlines[i].at.Before(r.deadlines[j].at) })
	return tok
}

func (r *epollReactor) Deregister(tok Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fd, ok := r.fds[tok]; ok {
		delete(r.fds, tok)
		return unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	}
	for i, d := range r.deadlines {
		if d.tok == tok {
			r.deadlines = append(r.deadlines[:i], r.deadlines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *epollReactor) Wait(timeout time.Duration) (Event, bool, error) {
	waitMS := int(timeout / time.Millisecond)

	r.mu.Lock()
	if len(r.deadlines) > 0 {
		untilNext := int(time.Until(r.deadlines[0].at) / time.Millisecond)
		if untilNext < 0 {
			untilNext = 0
		}
		if waitMS < 0 || untilNext < waitMS {
			waitMS = untilNext
		}
	}
	r.mu.Unlock()

	events := make([]unix.EpollEvent, 16)
	n, err := unix.EpollWait(r.epfd, events, waitMS)
	if err != nil {
		if err == unix.EINTR {
			return Event{}, false, nil
		}
		return Event{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Expired deadlines take priority over readiness: a timer firing is
	// usually the exchange-timeout path, which must not starve behind a
	// chatty socket.
	if len(r.deadlines) > 0 && !r.deadlines[0].at.After(timeNow()) {
		d := r.deadlines[0]
		r.deadlines = r.deadlines[1:]
		return Event{Token: d.tok, Kind: EventDeadline}, true, nil
	}

	if n > 0 {
		fd := int(events[0].Fd)
		for tok, registeredFd := range r.fds {
			if registeredFd == fd {
				return Event{Token: tok, Kind: EventReadable}, true, nil
			}
		}
	}

	return Event{}, false, nil
}

func (r *epollReactor) Close() error {
	return unix.Close(r.epfd)
}

func (r *epollReactor) newToken() Token {
	r.nextToken++
	return r.nextToken
}

// timeNow is a thin indirection so tests could stub it; production code
// always uses the real clock.
var timeNow = time.Now
