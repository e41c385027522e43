//go:build linux

package connection_test

import (
	"os"
	"testing"
	"time"

	"github.com/openhlxgo/hlx/internal/connection"
)

func TestReactorRegisterReadableFiresOnWrite(t *testing.T) {
	r, err := connection.NewReactor()
	if err != nil {
		t.Fatalf("NewReactor: %v", err)
	}
	defer r.Close()

	readEnd, writeEnd, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer readEnd.Close()
	defer writeEnd.Close()

	tok, err := r.RegisterReadable(int(readEnd.Fd()))
	if err != nil {
		t.Fatalf("RegisterReadable: %v", err)
	}

	if _, err := writeEnd.Write([]byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	ev, ok, err := r.Wait(time.Second)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !ok || ev.Token != tok || ev.Kind != connection.EventReadable {
		t.Fatalf("Wait() = %+v ok=%v, want readable event for token %d", ev, ok, tok)
	}
}
