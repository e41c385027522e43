package model

import (
	"encoding/json"
	"fmt"
	"net"
)

// Address is an IPv4 or IPv6 address value type. spec.md §3 calls for a
// dedicated address type for Network's IP fields rather than a bare
// string; original_source carries a parallel IPAddress.{hpp,cpp} value
// type for exactly this reason (it needs to tell v4 from v6 to select a
// wire grammar). The Open Question in spec.md §9 about whether hardware
// ever emits IPv6 is resolved in DESIGN.md: both forms are supported.
//
// The 16-byte array (rather than net.IP's []byte) keeps Address
// comparable, which lets it plug directly into Nullable[Address] without
// a special-cased equality method.
type Address struct {
	bytes [16]byte
	isV4  bool
	set   bool
}

// ParseAddress parses a dotted-quad or RFC 5952 textual address.
func ParseAddress(s string) (Address, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return Address{}, ErrInvalidArgument(fmt.Sprintf("invalid IP address %q", s))
	}
	var a Address
	copy(a.bytes[:], ip.To16())
	a.isV4 = ip.To4() != nil
	a.set = true
	return a, nil
}

// IsZero reports whether the address was never assigned. The Go zero
// value of Address (no ParseAddress call) satisfies this by
// construction, matching Nullable's own notion of "never set".
func (a Address) IsZero() bool { return !a.set }

// IsV4 reports whether the address is an IPv4 address.
func (a Address) IsV4() bool { return a.set && a.isV4 }

// String renders the address in its canonical textual form.
func (a Address) String() string {
	if !a.set {
		return ""
	}
	ip := net.IP(a.bytes[:])
	if a.isV4 {
		return ip.To4().String()
	}
	return ip.String()
}

// MarshalJSON renders the address as its textual form, or null when
// unset, so it round-trips through store.JSONStore's snapshot file as
// plain text rather than the internal byte layout.
func (a Address) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON parses the textual form written by MarshalJSON.
func (a *Address) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Address{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// EUI48 is a 48-bit Ethernet MAC address.
type EUI48 [6]byte

// ParseEUI48 parses a colon-separated MAC address, e.g. "DE:AD:BE:EF:00:01".
func ParseEUI48(s string) (EUI48, error) {
	hw, err := net.ParseMAC(s)
	if err != nil || len(hw) != 6 {
		return EUI48{}, ErrInvalidArgument(fmt.Sprintf("invalid EUI-48 %q", s))
	}
	var out EUI48
	copy(out[:], hw)
	return out, nil
}

func (m EUI48) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", m[0], m[1], m[2], m[3], m[4], m[5])
}

// MarshalJSON renders the MAC in colon-separated form.
func (m EUI48) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON parses the colon-separated form written by MarshalJSON.
func (m *EUI48) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseEUI48(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
