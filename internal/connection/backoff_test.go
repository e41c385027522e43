package connection_test

import (
	"context"
	"testing"
	"time"

	"github.com/openhlxgo/hlx/internal/connection"
)

func TestReconnectorWaitGrowsWithAttempts(t *testing.T) {
	r := connection.NewReconnector(5*time.Millisecond, time.Second, 100, time.Millisecond)

	start := time.Now()
	if err := r.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	first := time.Since(start)

	start = time.Now()
	if err := r.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	second := time.Since(start)

	if second < first {
		t.Fatalf("second wait (%v) shorter than first (%v), want non-decreasing backoff", second, first)
	}
	if r.Attempt() < 2 {
		t.Fatalf("Attempt() = %v, want >= 2 after two waits", r.Attempt())
	}
}

func TestReconnectorResetRestartsSequence(t *testing.T) {
	r := connection.NewReconnector(5*time.Millisecond, time.Second, 100, time.Millisecond)
	_ = r.Wait(context.Background())
	_ = r.Wait(context.Background())
	r.Reset()
	if r.Attempt() != 0 {
		t.Fatalf("Attempt() after Reset = %v, want 0", r.Attempt())
	}
}

func TestReconnectorWaitRespectsContextCancellation(t *testing.T) {
	r := connection.NewReconnector(time.Second, 10*time.Second, 100, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Wait(ctx); err == nil {
		t.Fatal("Wait with a cancelled context returned nil error")
	}
}
