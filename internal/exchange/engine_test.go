package exchange_test

import (
	"context"
	"testing"
	"time"

	"github.com/openhlxgo/hlx/internal/exchange"
	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/protocol"
)

func TestSubmitCompletesOnMatchingResponse(t *testing.T) {
	e := exchange.NewEngine(time.Second)

	resultCh := make(chan protocol.Match, 1)
	errCh := make(chan error, 1)
	go func() {
		m, err := e.Submit(context.Background(), protocol.OpZoneVolumeSet, "VO3R-25", nil)
		resultCh <- m
		errCh <- err
	}()

	// Wait for the exchange to be enqueued before completing it.
	waitUntil(t, func() bool { return e.Len() == 1 })

	ok := e.Complete(protocol.Match{Op: protocol.OpZoneVolumeSet, Captures: []string{"3", "-25"}})
	if !ok {
		t.Fatal("Complete returned false for a matching head-of-queue exchange")
	}

	if err := <-errCh; err != nil {
		t.Fatalf("Submit returned err = %v, want nil", err)
	}
	m := <-resultCh
	if m.Op != protocol.OpZoneVolumeSet || len(m.Captures) != 2 || m.Captures[1] != "-25" {
		t.Fatalf("Submit result = %+v", m)
	}
}

func TestCompleteOnEmptyQueueIsUnsolicited(t *testing.T) {
	e := exchange.NewEngine(time.Second)
	if ok := e.Complete(protocol.Match{Op: protocol.OpZoneVolumeSet}); ok {
		t.Fatal("Complete on an empty queue returned true, want false (unsolicited)")
	}
}

func TestCompleteMismatchedOpIsUnsolicited(t *testing.T) {
	e := exchange.NewEngine(time.Second)

	errCh := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background(), protocol.OpZoneVolumeSet, "VO3R-25", nil)
		errCh <- err
	}()
	waitUntil(t, func() bool { return e.Len() == 1 })

	if ok := e.Complete(protocol.Match{Op: protocol.OpZoneMute, Captures: []string{"1"}}); ok {
		t.Fatal("Complete with a mismatched op returned true, want false")
	}
	if e.Len() != 1 {
		t.Fatal("head-of-queue exchange was consumed by a mismatched Complete")
	}

	// Clean up the still-pending exchange so the goroutine doesn't leak
	// past the test.
	e.Complete(protocol.Match{Op: protocol.OpZoneVolumeSet, Captures: []string{"3", "-25"}})
	<-errCh
}

func TestSubmitTimesOut(t *testing.T) {
	e := exchange.NewEngine(20 * time.Millisecond)
	_, err := e.Submit(context.Background(), protocol.OpZoneVolumeSet, "VO3R-25", nil)
	if model.KindOf(err) != model.KindTimeout {
		t.Fatalf("Submit error = %v, want Timeout", err)
	}
}

func TestCancelAllFailsQueuedExchanges(t *testing.T) {
	e := exchange.NewEngine(time.Second)

	errCh := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background(), protocol.OpZoneVolumeSet, "VO3R-25", nil)
		errCh <- err
	}()
	waitUntil(t, func() bool { return e.Len() == 1 })

	e.CancelAll(model.NewError(model.KindCancelled, "disconnect"))

	if model.KindOf(<-errCh) != model.KindCancelled {
		t.Fatal("CancelAll did not fail the queued exchange with Cancelled")
	}
	if e.Len() != 0 {
		t.Fatal("queue not drained after CancelAll")
	}
}

func TestSubmitContextCancellation(t *testing.T) {
	e := exchange.NewEngine(time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := e.Submit(ctx, protocol.OpZoneVolumeSet, "VO3R-25", nil)
		errCh <- err
	}()
	waitUntil(t, func() bool { return e.Len() == 1 })
	cancel()

	if model.KindOf(<-errCh) != model.KindCancelled {
		t.Fatal("Submit did not fail with Cancelled after context cancellation")
	}
}

func TestSubmitSendFailurePropagatesTransportError(t *testing.T) {
	e := exchange.NewEngine(time.Second)
	sendErr := fakeSendError{}
	_, err := e.Submit(context.Background(), protocol.OpZoneVolumeSet, "VO3R-25", func(string) error {
		return sendErr
	})
	if model.KindOf(err) != model.KindTransportError {
		t.Fatalf("Submit error = %v, want TransportError", err)
	}
}

type fakeSendError struct{}

func (fakeSendError) Error() string { return "write failed" }

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
