package cbor

import "fmt"

// Code classifies why Load failed.
type Code uint8

const (
	// ErrNone indicates success; it is never present on a returned LoadError.
	ErrNone Code = iota

	// ErrNoData means the input was empty.
	ErrNoData

	// ErrNotEnoughData means the stream decoder ran out of bytes while
	// reading a head, an inline argument, or a definite string's payload.
	// The caller may supply more bytes and retry from the same position
	// for a truly streaming source; Load itself does not retry.
	ErrNotEnoughData

	// ErrMalformed means the stream decoder rejected the input outright:
	// a reserved additional-info value, or an indefinite-length marker on
	// a major type that doesn't support one.
	ErrMalformed

	// ErrMemory means a builder callback could not allocate the storage
	// it needed (see Allocator).
	ErrMemory

	// ErrSyntax means the byte stream was well-formed CBOR heads but the
	// sequence of events violated the container grammar: a break outside
	// an open indefinite container, a chunk of the wrong major type inside
	// an indefinite string, or an odd number of entries in an indefinite
	// map at break.
	ErrSyntax
)

func (c Code) String() string {
	switch c {
	case ErrNone:
		return "no error"
	case ErrNoData:
		return "no data"
	case ErrNotEnoughData:
		return "not enough data"
	case ErrMalformed:
		return "malformed"
	case ErrMemory:
		return "memory error"
	case ErrSyntax:
		return "syntax error"
	default:
		return fmt.Sprintf("Code(%d)", uint8(c))
	}
}

// LoadError reports why Load failed and the byte offset at which parsing
// stopped. A zero-value LoadError (Code == ErrNone) is never returned by
// Load; Load's two outcomes -- a non-nil *Item with a zero LoadError, or a
// nil *Item with a non-zero LoadError -- are mutually exclusive.
type LoadError struct {
	Code     Code
	Position int
}

func (e LoadError) Error() string {
	return fmt.Sprintf("cbor: %s at position %d", e.Code, e.Position)
}

// IsZero reports whether e represents "no error".
func (e LoadError) IsZero() bool {
	return e.Code == ErrNone
}
