// Package protocol implements the HLX wire codec: the bracket-framed
// byte-stream splitter, the regular-expression dispatch table shared by
// client and server, the formatter that renders operations back to
// bytes, and the balance tagged/continuous conversion.
package protocol

import "github.com/openhlxgo/hlx/internal/model"

// MaxFrameBytes is the hard cap on a single frame's payload, not
// counting the enclosing brackets (spec.md §4.1: "a hard cap of 256
// bytes per frame").
const MaxFrameBytes = 256

type framerState int

const (
	stateIdle framerState = iota
	stateInFrame
	stateOverflow
)

// Framer splits an inbound byte stream into complete `[...]` frames. It
// is state-machine-driven with states {idle, in_frame, overflow}
// (spec.md §4.1), scanning for a '[' to start a frame and the matching
// ']' to close it. Bytes outside any frame are discarded as connection
// chatter. Frames that exceed MaxFrameBytes are discarded and counted in
// Feed's overflowed result rather than returned as frames.
type Framer struct {
	state  framerState
	buf    []byte
	frames [][]byte
}

// NewFramer constructs a Framer ready to consume bytes.
func NewFramer() *Framer {
	return &Framer{state: stateIdle}
}

// Feed appends data to the framer and returns every complete frame
// payload found (without the enclosing brackets), plus the number of
// frames discarded for exceeding MaxFrameBytes.
func (f *Framer) Feed(data []byte) (frames [][]byte, overflowed int) {
	for _, b := range data {
		switch f.state {
		case stateIdle:
			if b == '[' {
				f.state = stateInFrame
				f.buf = f.buf[:0]
			}
			// any other byte outside a frame is discarded chatter.

		case stateInFrame:
			if b == ']' {
				out := make([]byte, len(f.buf))
				copy(out, f.buf)
				frames = append(frames, out)
				f.state = stateIdle
				f.buf = f.buf[:0]
				continue
			}
			if b == '[' {
				// A stray open bracket before the matching close restarts
				// the frame rather than nesting — brackets never appear
				// inside a payload per spec.md §4.1.
				f.buf = f.buf[:0]
				continue
			}
			f.buf = append(f.buf, b)
			if len(f.buf) > MaxFrameBytes {
				f.state = stateOverflow
				overflowed++
			}

		case stateOverflow:
			if b == ']' {
				f.state = stateIdle
				f.buf = f.buf[:0]
			}
			// Inside an overflowed frame, keep discarding until the
			// frame closes; the frame itself is never returned.
		}
	}
	return frames, overflowed
}

// ErrFrameOverflow constructs the protocol-level error for a frame that exceeded
// MaxFrameBytes, for callers that want to surface it through the model
// error taxonomy.
func ErrFrameOverflow() *model.Error {
	return model.NewError(model.KindFrameOverflow, "frame exceeded maximum size")
}

// Wrap brackets payload for transmission, the inverse of what Feed
// strips off an inbound frame.
func Wrap(payload string) []byte {
	out := make([]byte, 0, len(payload)+2)
	out = append(out, '[')
	out = append(out, payload...)
	out = append(out, ']')
	return out
}
