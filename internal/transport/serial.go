package transport

import (
	"context"
	"fmt"
	"sync"

	"go.bug.st/serial"
)

// DefaultSerialBaud matches the rate the teacher's firmware address
// assignment handshake uses (internal/hardware/i2c.go's UART write);
// adopted here as the default for the wire protocol's RS-232 transport
// since original_source documents the same controller family exposing
// its bracket-framed protocol over both Ethernet and a serial port at
// this rate.
const DefaultSerialBaud = 9600

// Serial is a connection.Transport over an RS-232 port (SPEC_FULL.md's
// supplemented alternate wire). Unlike TCP there is no listen/accept
// role: a serial port is always a single point-to-point link, so Serial
// is only ever used in the client role (or as the sole peer of a
// server personality bound to a physical port instead of a socket).
type Serial struct {
	mu     sync.Mutex
	dev    string
	mode   *serial.Mode
	port   serial.Port
}

// NewSerial returns a Serial transport that opens dev (e.g.
// "/dev/ttyUSB0") at baud when Open is called.
func NewSerial(dev string, baud int) *Serial {
	if baud <= 0 {
		baud = DefaultSerialBaud
	}
	return &Serial{
		dev: dev,
		mode: &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		},
	}
}

func (s *Serial) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port != nil {
		return nil
	}
	port, err := serial.Open(s.dev, s.mode)
	if err != nil {
		return fmt.Errorf("transport: serial: open %s: %w", s.dev, err)
	}
	s.port = port
	return nil
}

func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

func (s *Serial) Send(p []byte) error {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()
	if port == nil {
		return fmt.Errorf("transport: serial: not open")
	}
	_, err := port.Write(p)
	return err
}

func (s *Serial) Recv(p []byte) (int, error) {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()
	if port == nil {
		return 0, fmt.Errorf("transport: serial: not open")
	}
	return port.Read(p)
}

// Fd always returns -1: go.bug.st/serial does not expose the
// underlying descriptor, so a Serial transport is read from a
// dedicated blocking goroutine rather than registered with a reactor.
func (s *Serial) Fd() int { return -1 }

func (s *Serial) LocalAddr() string { return "" }

func (s *Serial) PeerAddr() string { return s.dev }
