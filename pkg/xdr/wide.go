package xdr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ============================================================================
// Wide Integers (hyper / uhyper)
// ============================================================================
//
// On the wire a hyper is two consecutive 32-bit big-endian words, high word
// first, 8 bytes in total with no padding.
//
// The registered "hyper" and "uhyper" codecs decode into Hyper and UHyper,
// which mark values whose high word falls outside ±2^21: such values cannot
// be reconstructed exactly as a 53-bit safe integer by peers that carry
// numbers as IEEE-754 doubles. The marker is explicit instead of a sentinel
// value, and the exact wire bits are kept so re-encoding stays lossless.

// safeHighWord bounds the high word of a value inside the safe integer range.
const safeHighWord = 1 << 21

// Hyper is a decoded signed 64-bit integer.
type Hyper struct {
	// Value is the decoded integer. Only meaningful when Valid is true.
	Value int64

	// Valid reports whether the value fits the 53-bit safe integer range.
	Valid bool

	// Raw holds the 8 wire bytes as read, high word first.
	Raw uint64
}

// HyperOf wraps v for encoding.
func HyperOf(v int64) Hyper {
	return Hyper{Value: v, Valid: true, Raw: uint64(v)}
}

// Int64 returns the value and whether it is within the safe range.
func (h Hyper) Int64() (int64, bool) {
	return h.Value, h.Valid
}

func (h Hyper) String() string {
	if !h.Valid {
		return fmt.Sprintf("hyper(unrepresentable 0x%016x)", h.Raw)
	}
	return fmt.Sprintf("%d", h.Value)
}

// exact reports whether Value holds the integer to encode. A literal built
// without Valid and without Raw is taken at its Value.
func (h Hyper) exact() bool {
	return h.Valid || h.Raw == 0
}

// bits returns the two's complement wire form of h.
func (h Hyper) bits() uint64 {
	if h.exact() {
		return uint64(h.Value)
	}
	return h.Raw
}

// UHyper is a decoded unsigned 64-bit integer.
type UHyper struct {
	// Value is the decoded integer. Only meaningful when Valid is true.
	Value uint64

	// Valid reports whether the value fits the 53-bit safe integer range.
	Valid bool

	// Raw holds the 8 wire bytes as read, high word first.
	Raw uint64
}

// UHyperOf wraps v for encoding.
func UHyperOf(v uint64) UHyper {
	return UHyper{Value: v, Valid: true, Raw: v}
}

// Uint64 returns the value and whether it is within the safe range.
func (u UHyper) Uint64() (uint64, bool) {
	return u.Value, u.Valid
}

func (u UHyper) String() string {
	if !u.Valid {
		return fmt.Sprintf("uhyper(unrepresentable 0x%016x)", u.Raw)
	}
	return fmt.Sprintf("%d", u.Value)
}

func (u UHyper) exact() bool {
	return u.Valid || u.Raw == 0
}

func (u UHyper) bits() uint64 {
	if u.exact() {
		return u.Value
	}
	return u.Raw
}

// hyperFromWire reconstructs high*2^32 + low with a signed high word.
func hyperFromWire(raw uint64) Hyper {
	high := int32(raw >> 32)
	low := uint32(raw)
	if high <= -safeHighWord || high >= safeHighWord {
		return Hyper{Raw: raw}
	}
	return Hyper{Value: int64(high)*(1<<32) + int64(low), Valid: true, Raw: raw}
}

// uhyperFromWire reconstructs high*2^32 + low with an unsigned high word.
func uhyperFromWire(raw uint64) UHyper {
	high := uint32(raw >> 32)
	low := uint32(raw)
	if high >= safeHighWord {
		return UHyper{Raw: raw}
	}
	return UHyper{Value: uint64(high)*(1<<32) + uint64(low), Valid: true, Raw: raw}
}

// putWords writes the high and low words of bits. Negative signed values
// arrive here already in two's complement form: uint64(int64) complements
// and carries across the full 8 bytes exactly as byte-wise negation would.
func putWords(dst []byte, bits uint64) {
	binary.BigEndian.PutUint32(dst[0:4], uint32(bits>>32))
	binary.BigEndian.PutUint32(dst[4:8], uint32(bits))
}

// hyperBits converts an encodable value to the signed wire form.
func hyperBits(v any) (uint64, error) {
	switch h := v.(type) {
	case Hyper:
		return h.bits(), nil
	case UHyper:
		if h.exact() && h.Value > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows hyper", ErrValueOutOfRange, h.Value)
		}
		return h.bits(), nil
	}
	i, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	return uint64(i), nil
}

// uhyperBits converts an encodable value to the unsigned wire form.
func uhyperBits(v any) (uint64, error) {
	switch u := v.(type) {
	case UHyper:
		return u.bits(), nil
	case Hyper:
		if u.exact() && u.Value < 0 {
			return 0, fmt.Errorf("%w: %d is negative", ErrValueOutOfRange, u.Value)
		}
		return u.bits(), nil
	}
	return toUint64(v)
}

type hyperCodec struct{ signed bool }

func (c hyperCodec) Name() string {
	if c.signed {
		return "hyper"
	}
	return "uhyper"
}

func (hyperCodec) Kind() Kind      { return KindWide }
func (hyperCodec) fixedWidth() int { return 8 }

func (c hyperCodec) Width(v any) (int, error) {
	if _, err := c.bits(v); err != nil {
		return 0, err
	}
	return 8, nil
}

func (c hyperCodec) Put(dst []byte, v any) error {
	bits, err := c.bits(v)
	if err != nil {
		return err
	}
	putWords(dst, bits)
	return nil
}

func (c hyperCodec) Get(r *Reader) (any, error) {
	if c.signed {
		return r.ReadHyper()
	}
	return r.ReadUHyper()
}

func (c hyperCodec) bits(v any) (uint64, error) {
	if c.signed {
		return hyperBits(v)
	}
	return uhyperBits(v)
}
