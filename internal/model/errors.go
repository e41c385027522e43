// Package model defines the HLX data model: identifiers, nullable scalar
// properties, entities (sources, zones, groups, equalizer presets and
// bands, favorites, front panel, network), their invariants, and the
// derived-state rules for groups.
package model

// Kind is the error taxonomy described in spec.md §7. It replaces the
// teacher's HTTP-status-carrying AppError with a status-free kind, since
// this core has no HTTP control plane — the kind alone is enough for a
// caller to decide whether to retry, reconnect, or give up.
type Kind int

const (
	_ Kind = iota

	// Programmer errors — surfaced synchronously, never retried.
	KindInvalidArgument
	KindNotInitialized
	KindOutOfRange

	// Protocol errors — logged, surfaced as an error notification; the
	// connection survives.
	KindMalformed
	KindUnknownCommand
	KindFrameOverflow
	KindUnexpectedResponse

	// Transport errors — fail all pending exchanges; the connection
	// transitions to idle.
	KindTransportError
	KindTimeout
	KindCancelled
	KindDisconnected

	// Semantic errors — surfaced to the caller; no state is mutated.
	KindVolumeLocked
	KindEmptyGroup
	KindDuplicateName
	KindAlreadySet

	// Persistence errors.
	KindStorageUnavailable
	KindStorageCorrupt
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindNotInitialized:
		return "NotInitialized"
	case KindOutOfRange:
		return "OutOfRange"
	case KindMalformed:
		return "Malformed"
	case KindUnknownCommand:
		return "UnknownCommand"
	case KindFrameOverflow:
		return "FrameOverflow"
	case KindUnexpectedResponse:
		return "UnexpectedResponse"
	case KindTransportError:
		return "TransportError"
	case KindTimeout:
		return "Timeout"
	case KindCancelled:
		return "Cancelled"
	case KindDisconnected:
		return "Disconnected"
	case KindVolumeLocked:
		return "VolumeLocked"
	case KindEmptyGroup:
		return "EmptyGroup"
	case KindDuplicateName:
		return "DuplicateName"
	case KindAlreadySet:
		return "AlreadySet"
	case KindStorageUnavailable:
		return "StorageUnavailable"
	case KindStorageCorrupt:
		return "StorageCorrupt"
	default:
		return "Unknown"
	}
}

// Error is a structured model-layer error carrying the taxonomy kind.
type Error struct {
	Kind    Kind
	Message string
	Field   string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

// NewError constructs an *Error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// WithField returns a copy of the error annotated with the offending field.
func (e *Error) WithField(field string) *Error {
	cp := *e
	cp.Field = field
	return &cp
}

// KindOf extracts the Kind from err, or 0 if err is not *Error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}

// Convenience constructors mirroring the teacher's ErrNotFound/ErrBadRequest
// style (models/errors.go), minus the HTTP status.
var (
	ErrNotInitialized = func(field string) *Error {
		return &Error{Kind: KindNotInitialized, Message: "property not initialized", Field: field}
	}
	ErrOutOfRange = func(field string) *Error {
		return &Error{Kind: KindOutOfRange, Message: "value out of range", Field: field}
	}
	ErrInvalidArgument = func(msg string) *Error {
		return &Error{Kind: KindInvalidArgument, Message: msg}
	}
	ErrVolumeLocked = &Error{Kind: KindVolumeLocked, Message: "volume is fixed"}
	ErrEmptyGroup   = &Error{Kind: KindEmptyGroup, Message: "group has no members"}
	ErrDuplicateName = func(msg string) *Error {
		return &Error{Kind: KindDuplicateName, Message: msg}
	}
	ErrAlreadySet = &Error{Kind: KindAlreadySet, Message: "value already set"}
)
