package protocol_test

import (
	"testing"

	"github.com/openhlxgo/hlx/internal/protocol"
)

func TestEncodeBalance(t *testing.T) {
	tests := []struct {
		bias int
		want string
	}{
		{-80, "L80"},
		{-1, "L1"},
		{0, "R0"},
		{1, "R1"},
		{80, "R80"},
	}
	for _, tc := range tests {
		if got := protocol.EncodeBalance(tc.bias); got != tc.want {
			t.Errorf("EncodeBalance(%d) = %q, want %q", tc.bias, got, tc.want)
		}
	}
}

func TestDecodeBalanceRoundTrip(t *testing.T) {
	for bias := -80; bias <= 80; bias++ {
		encoded := protocol.EncodeBalance(bias)
		tag, mag := encoded[0], 0
		for _, r := range encoded[1:] {
			mag = mag*10 + int(r-'0')
		}
		got, err := protocol.DecodeBalance(tag, mag)
		if err != nil {
			t.Fatalf("DecodeBalance(%q): unexpected err %v", encoded, err)
		}
		if got != bias {
			t.Fatalf("round trip of %d through %q = %d", bias, encoded, got)
		}
	}
}

func TestDecodeBalanceZeroEitherTag(t *testing.T) {
	l, err := protocol.DecodeBalance('L', 0)
	if err != nil || l != 0 {
		t.Fatalf("DecodeBalance('L', 0) = (%d, %v), want (0, nil)", l, err)
	}
	r, err := protocol.DecodeBalance('R', 0)
	if err != nil || r != 0 {
		t.Fatalf("DecodeBalance('R', 0) = (%d, %v), want (0, nil)", r, err)
	}
}

func TestDecodeBalanceInvalidTag(t *testing.T) {
	if _, err := protocol.DecodeBalance('X', 10); err == nil {
		t.Fatal("DecodeBalance with invalid tag = nil error, want error")
	}
}

func TestDecodeBalanceOutOfRange(t *testing.T) {
	if _, err := protocol.DecodeBalance('L', 81); err == nil {
		t.Fatal("DecodeBalance(81) = nil error, want OutOfRange")
	}
}
