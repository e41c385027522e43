package model_test

import (
	"encoding/json"
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
)

func TestNullableUnsetGet(t *testing.T) {
	var n model.Nullable[int]
	if _, err := n.Get(); model.KindOf(err) != model.KindNotInitialized {
		t.Fatalf("Get() on unset Nullable: got err %v, want NotInitialized", err)
	}
	if n.IsInitialized() {
		t.Fatal("IsInitialized() = true on unset Nullable")
	}
}

func TestNullableSetOutcome(t *testing.T) {
	var n model.Nullable[int]
	if outcome := n.Set(5); outcome != model.Changed {
		t.Fatalf("first Set() = %v, want Changed", outcome)
	}
	if outcome := n.Set(5); outcome != model.AlreadySet {
		t.Fatalf("repeat Set(5) = %v, want AlreadySet", outcome)
	}
	if outcome := n.Set(6); outcome != model.Changed {
		t.Fatalf("Set(6) = %v, want Changed", outcome)
	}
	v, err := n.Get()
	if err != nil || v != 6 {
		t.Fatalf("Get() = (%d, %v), want (6, nil)", v, err)
	}
}

func TestNullableClear(t *testing.T) {
	var n model.Nullable[int]
	n.Set(5)
	n.Clear()
	if n.IsInitialized() {
		t.Fatal("IsInitialized() = true after Clear()")
	}
}

// An unset Nullable must round-trip as JSON null, not as the zero
// value, or a reloaded snapshot would silently fabricate a Changed
// property that was never actually reported.
func TestNullableJSONDistinguishesUnsetFromZeroValue(t *testing.T) {
	var unset model.Nullable[int]
	data, err := json.Marshal(unset)
	if err != nil {
		t.Fatalf("Marshal(unset) error = %v", err)
	}
	if string(data) != "null" {
		t.Fatalf("Marshal(unset) = %s, want null", data)
	}

	var zero model.Nullable[int]
	zero.Set(0)
	data, err = json.Marshal(zero)
	if err != nil {
		t.Fatalf("Marshal(zero) error = %v", err)
	}
	if string(data) != "0" {
		t.Fatalf("Marshal(zero-valued-but-set) = %s, want 0", data)
	}

	var back model.Nullable[int]
	if err := json.Unmarshal([]byte("null"), &back); err != nil {
		t.Fatalf("Unmarshal(null) error = %v", err)
	}
	if back.IsInitialized() {
		t.Fatal("Unmarshal(null) left Nullable initialized")
	}

	if err := json.Unmarshal([]byte("0"), &back); err != nil {
		t.Fatalf("Unmarshal(0) error = %v", err)
	}
	if v, err := back.Get(); err != nil || v != 0 {
		t.Fatalf("Unmarshal(0).Get() = (%d, %v), want (0, nil)", v, err)
	}
}
