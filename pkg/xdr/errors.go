package xdr

import (
	"errors"
	"fmt"
)

// Decode errors
var (
	// ErrTruncated is returned when a read would run past the end of the
	// input buffer. The input is malformed and decoding cannot continue.
	ErrTruncated = errors.New("xdr: truncated input")

	// ErrNegativeLength is returned for a string length prefix below zero.
	ErrNegativeLength = errors.New("xdr: negative length")

	// ErrLengthExceedsLimit is returned when a length prefix is larger than
	// the reader's configured maximum.
	ErrLengthExceedsLimit = errors.New("xdr: length exceeds limit")
)

// Value errors
var (
	ErrInvalidEnumValue = errors.New("xdr: invalid enum value")
	ErrTypeMismatch     = errors.New("xdr: value type does not match codec")
	ErrValueOutOfRange  = errors.New("xdr: value out of range")
	ErrMissingField     = errors.New("xdr: missing struct field")
	ErrSizeMismatch     = errors.New("xdr: payload larger than declared size")
)

// Schema errors
var (
	ErrUnknownType       = errors.New("xdr: unknown type")
	ErrDuplicateType     = errors.New("xdr: type already registered")
	ErrInvalidName       = errors.New("xdr: invalid name")
	ErrDuplicateField    = errors.New("xdr: duplicate struct field")
	ErrDuplicateEnumName = errors.New("xdr: duplicate enum name")
	ErrDuplicateEnumCode = errors.New("xdr: duplicate enum code")
	ErrNotSized          = errors.New("xdr: type does not accept an explicit size")
)

// ErrFinalized is returned when a Writer is used after Bytes or WriteTo.
var ErrFinalized = errors.New("xdr: writer already finalized")

// DecodeError describes a failed Reader.Decode call. The cursor is left at
// Offset, where the failed value started.
type DecodeError struct {
	Type   string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("xdr: decode %s at offset %d: %v", e.Type, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
