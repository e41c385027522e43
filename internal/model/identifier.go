package model

import "fmt"

// Identifier is a 1-based entity identifier (zone, source, group, equalizer
// preset, equalizer band, favorite). 0 is the reserved "invalid/null"
// sentinel, used only as an uninitialized marker — never a valid wire
// value (spec.md §3, grounded in original_source's IdentifierModel.hpp,
// which types identifiers as uint8_t with the same null-at-zero
// convention).
type Identifier uint8

// InvalidIdentifier is the reserved sentinel.
const InvalidIdentifier Identifier = 0

// IsValid reports whether id falls within [1, max].
func (id Identifier) IsValid(max Identifier) bool {
	return id >= 1 && id <= max
}

// Limits carries the hardware-fixed maxima for each identifier class.
// spec.md §3: "the specific maxima are carried as configuration, not
// magic numbers." A concrete matrix controller fixes these per model
// number; HLX does not hard-code a single SKU.
type Limits struct {
	SourcesMax          Identifier
	ZonesMax            Identifier
	GroupsMax           Identifier
	FavoritesMax        Identifier
	EqualizerPresetsMax Identifier
	EqualizerBandsMax   Identifier // always 10 on real hardware
}

// DefaultLimits returns the limits of the reference 8-source/32-zone HLX
// matrix controller (the configuration original_source ships defaults
// for in its test fixtures).
func DefaultLimits() Limits {
	return Limits{
		SourcesMax:          8,
		ZonesMax:            32,
		GroupsMax:           32,
		FavoritesMax:        48,
		EqualizerPresetsMax: 8,
		EqualizerBandsMax:   10,
	}
}

// ValidateIdentifier returns ErrOutOfRange if id is not in [1, max].
func ValidateIdentifier(id Identifier, max Identifier, field string) error {
	if !id.IsValid(max) {
		return ErrOutOfRange(field).withMessage(fmt.Sprintf("identifier %d out of range [1, %d]", id, max))
	}
	return nil
}

func (e *Error) withMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}
