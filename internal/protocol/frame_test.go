package protocol_test

import (
	"bytes"
	"testing"

	"github.com/openhlxgo/hlx/internal/protocol"
)

func TestFramerSingleFrame(t *testing.T) {
	f := protocol.NewFramer()
	frames, overflowed := f.Feed([]byte("[VO3R-25]"))
	if overflowed != 0 {
		t.Fatalf("overflowed = %d, want 0", overflowed)
	}
	if len(frames) != 1 || string(frames[0]) != "VO3R-25" {
		t.Fatalf("frames = %v, want [VO3R-25]", framesAsStrings(frames))
	}
}

func TestFramerMultipleFramesAcrossFeeds(t *testing.T) {
	f := protocol.NewFramer()
	frames1, _ := f.Feed([]byte("[VO3R-25"))
	if len(frames1) != 0 {
		t.Fatalf("partial feed yielded %d frames, want 0", len(frames1))
	}
	frames2, _ := f.Feed([]byte("][VMO1]"))
	if len(frames2) != 2 {
		t.Fatalf("frames = %v, want 2 frames", framesAsStrings(frames2))
	}
	if string(frames2[0]) != "VO3R-25" || string(frames2[1]) != "VMO1" {
		t.Fatalf("frames = %v", framesAsStrings(frames2))
	}
}

func TestFramerDiscardsChatterOutsideFrame(t *testing.T) {
	f := protocol.NewFramer()
	frames, _ := f.Feed([]byte("garbage\r\n[QO1]more garbage"))
	if len(frames) != 1 || string(frames[0]) != "QO1" {
		t.Fatalf("frames = %v, want [QO1]", framesAsStrings(frames))
	}
}

func TestFramerOverflowDiscardsFrame(t *testing.T) {
	f := protocol.NewFramer()
	big := bytes.Repeat([]byte("a"), protocol.MaxFrameBytes+10)
	input := append([]byte("["), big...)
	input = append(input, ']')
	input = append(input, []byte("[QO1]")...)

	frames, overflowed := f.Feed(input)
	if overflowed != 1 {
		t.Fatalf("overflowed = %d, want 1", overflowed)
	}
	if len(frames) != 1 || string(frames[0]) != "QO1" {
		t.Fatalf("frames = %v, want only [QO1] to survive", framesAsStrings(frames))
	}
}

func TestFramerStrayOpenBracketRestartsFrame(t *testing.T) {
	f := protocol.NewFramer()
	frames, _ := f.Feed([]byte("[VO1[VO2R-10]"))
	if len(frames) != 1 || string(frames[0]) != "VO2R-10" {
		t.Fatalf("frames = %v, want [VO2R-10]", framesAsStrings(frames))
	}
}

func framesAsStrings(frames [][]byte) []string {
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = string(f)
	}
	return out
}
