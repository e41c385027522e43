package model

import "encoding/json"

// SetOutcome is the result of a property set operation, per spec.md §2's
// "get/set returns one of {changed, already-set, error}" contract.
type SetOutcome int

const (
	Changed SetOutcome = iota
	AlreadySet
)

// Nullable wraps a scalar property with an initialized/not-initialized
// bit, distinguishing "never heard from the device" from "the value
// happens to equal the zero value" (spec.md §3). The teacher represents
// this with *T sparingly on request/update DTOs (models/requests.go);
// here every entity property needs it, so it is pulled out once as a
// small generic instead of being hand-rolled per field.
type Nullable[T comparable] struct {
	value T
	set   bool
}

// Get returns the current value, or ErrNotInitialized if never set.
func (n Nullable[T]) Get() (T, error) {
	if !n.set {
		var zero T
		return zero, ErrNotInitialized("")
	}
	return n.value, nil
}

// MustGet returns the current value, or the zero value if unset. Intended
// for internal computation (e.g. group derivation) where the caller has
// already established the property is initialized.
func (n Nullable[T]) MustGet() T {
	return n.value
}

// IsInitialized reports whether the property has ever been set.
func (n Nullable[T]) IsInitialized() bool {
	return n.set
}

// Set assigns v, returning AlreadySet (no-op) if the property already
// holds v, or Changed otherwise.
func (n *Nullable[T]) Set(v T) SetOutcome {
	if n.set && n.value == v {
		return AlreadySet
	}
	n.value = v
	n.set = true
	return Changed
}

// Clear marks the property as uninitialized again.
func (n *Nullable[T]) Clear() {
	var zero T
	n.value = zero
	n.set = false
}

// MarshalJSON renders the wrapped value, or null if never set, so a
// persisted snapshot distinguishes "property not yet reported" from
// "property reported as its zero value" (store.JSONStore relies on
// this to avoid synthesizing false Changed outcomes on Load).
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// UnmarshalJSON parses the wire form written by MarshalJSON.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Clear()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.value = v
	n.set = true
	return nil
}
