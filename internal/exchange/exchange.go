// Package exchange implements the request/response exchange engine: a
// per-connection FIFO queue pairing an outbound request with its
// expected response pattern, with per-exchange timeout and disconnect
// cancellation (spec.md §4.2).
package exchange

import (
	"time"

	"github.com/google/uuid"

	"github.com/openhlxgo/hlx/internal/protocol"
)

// Result is what Submit eventually resolves to: either a matching
// response or an error (Timeout, Cancelled, or TransportError per
// spec.md §4.2's failure model).
type Result struct {
	Match protocol.Match
	Err   error
}

// pending is one queued exchange: a submitted request awaiting its
// response, carrying the correlation id used purely for diagnostics
// (the FIFO position, not the id, determines which response it binds
// to — spec.md §4.2 has no correlation-id concept on the wire itself).
type pending struct {
	id      uuid.UUID
	op      protocol.Op
	request string
	result  chan Result
	timer   *time.Timer
}

// NewID returns a fresh correlation id for a submitted exchange, for
// callers that want to log or trace a request end-to-end.
func NewID() uuid.UUID { return uuid.New() }
