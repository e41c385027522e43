package model_test

import (
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
)

func TestParseAddressV4(t *testing.T) {
	a, err := model.ParseAddress("192.168.1.1")
	if err != nil {
		t.Fatalf("ParseAddress: unexpected err %v", err)
	}
	if !a.IsV4() {
		t.Fatal("IsV4() = false, want true")
	}
	if a.String() != "192.168.1.1" {
		t.Fatalf("String() = %q, want 192.168.1.1", a.String())
	}
}

func TestParseAddressV6(t *testing.T) {
	a, err := model.ParseAddress("2001:db8::1")
	if err != nil {
		t.Fatalf("ParseAddress: unexpected err %v", err)
	}
	if a.IsV4() {
		t.Fatal("IsV4() = true, want false")
	}
}

func TestParseAddressInvalid(t *testing.T) {
	if _, err := model.ParseAddress("not-an-address"); model.KindOf(err) != model.KindInvalidArgument {
		t.Fatalf("ParseAddress(invalid): got err %v, want InvalidArgument", err)
	}
}

func TestAddressZeroValue(t *testing.T) {
	var a model.Address
	if !a.IsZero() {
		t.Fatal("zero-value Address.IsZero() = false, want true")
	}
}

func TestAddressComparable(t *testing.T) {
	a, _ := model.ParseAddress("10.0.0.1")
	b, _ := model.ParseAddress("10.0.0.1")
	c, _ := model.ParseAddress("10.0.0.2")
	if a != b {
		t.Fatal("two parses of the same address should compare equal")
	}
	if a == c {
		t.Fatal("different addresses should not compare equal")
	}
}

func TestNullableAddress(t *testing.T) {
	var n model.Nullable[model.Address]
	a, _ := model.ParseAddress("172.16.0.1")
	if outcome := n.Set(a); outcome != model.Changed {
		t.Fatalf("Set outcome = %v, want Changed", outcome)
	}
	if outcome := n.Set(a); outcome != model.AlreadySet {
		t.Fatalf("repeat Set outcome = %v, want AlreadySet", outcome)
	}
}

func TestParseEUI48(t *testing.T) {
	mac, err := model.ParseEUI48("DE:AD:BE:EF:00:01")
	if err != nil {
		t.Fatalf("ParseEUI48: unexpected err %v", err)
	}
	if got := mac.String(); got != "DE:AD:BE:EF:00:01" {
		t.Fatalf("String() = %q, want DE:AD:BE:EF:00:01", got)
	}
}
