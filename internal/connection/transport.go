package connection

import "context"

// Transport is the injected byte-stream collaborator the connection
// manager adapts: "the manager does not own sockets directly; it
// adapts an injected transport interface (open, close, send, recv,
// local/peer address)" (spec.md §4.5). spec.md §1 places the concrete
// TCP/Telnet transport out of scope as an external collaborator;
// internal/transport supplies the concrete implementations (TCP and
// RS-232 serial) against this interface.
type Transport interface {
	// Open establishes the underlying connection (dial for a client,
	// nothing for an already-accepted server peer).
	Open(ctx context.Context) error

	// Close tears the connection down. Close is idempotent.
	Close() error

	// Send writes p in full or returns an error; partial writes are
	// not exposed to callers above this layer.
	Send(p []byte) error

	// Recv reads whatever is currently available into p, returning the
	// number of bytes read. It returns io.EOF when the peer has closed
	// its write side.
	Recv(p []byte) (int, error)

	// Fd returns the underlying file descriptor for reactor
	// registration, or -1 if the transport has none to register (the
	// portable reactor, or a transport that drives its own read
	// goroutine instead).
	Fd() int

	// LocalAddr and PeerAddr report the two ends of the connection,
	// for diagnostics.
	LocalAddr() string
	PeerAddr() string
}
