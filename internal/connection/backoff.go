package connection

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
	"golang.org/x/time/rate"
)

// Reconnector paces repeated client-role connect attempts: an
// exponential backoff sets the delay between attempts, and a token
// bucket caps the long-run attempt rate so a persistently unreachable
// peer cannot spin the run loop. Neither the state machine in client.go
// nor spec.md §4.5 mandates a specific retry policy; this is the
// "resolve/connect adapter" 10%-budget component's reconnect behavior,
// grounded in the teacher's hand-rolled alsaloop supervisor backoff
// (internal/streams/alsa.go) but built on the real jpillora/backoff and
// golang.org/x/time/rate libraries the teacher's go.mod already carries
// for other subsystems.
type Reconnector struct {
	b       *backoff.Backoff
	limiter *rate.Limiter
}

// NewReconnector builds a Reconnector with exponential delay bounded to
// [min, max], and an attempt rate of at most one per interval sustained
// long-term (the rate.Limiter's refill period), with up to burst
// attempts allowed back to back.
func NewReconnector(min, max time.Duration, burst int, interval time.Duration) *Reconnector {
	return &Reconnector{
		b: &backoff.Backoff{
			Min:    min,
			Max:    max,
			Factor: 2,
			Jitter: true,
		},
		limiter: rate.NewLimiter(rate.Every(interval), burst),
	}
}

// Reset clears the backoff sequence after a successful connect, so the
// next failure starts again at Min.
func (r *Reconnector) Reset() { r.b.Reset() }

// Wait blocks for the next backoff interval, further delayed if
// necessary by the attempt-rate limiter, or returns ctx.Err() if ctx is
// cancelled first.
func (r *Reconnector) Wait(ctx context.Context) error {
	delay := r.b.Duration()
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}

// Attempt returns the 1-based count of attempts made since the last
// Reset, for diagnostics.
func (r *Reconnector) Attempt() float64 { return r.b.Attempt() }
