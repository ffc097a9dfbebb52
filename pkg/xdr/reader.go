package xdr

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/marmos91/xdrkit/pkg/metrics"
)

// ============================================================================
// Reader - Wire Format → Go Values
// ============================================================================

// Reader is a decode cursor over an existing buffer.
//
// Each read consumes bytes from the current offset and advances it by the
// number of bytes consumed: the fixed width for scalars, or prefix + payload
// + padding for variable-length data. A read that would run past the end of
// the buffer fails with ErrTruncated and leaves the cursor untouched.
//
// A Reader is owned by a single caller and is not safe for concurrent use.
type Reader struct {
	reg          *Registry
	buf          []byte
	off          int
	maxLength    int
	lenientEnums bool
	metrics      metrics.CodecMetrics
}

// NewReader returns a Reader over buf that resolves only the builtin types.
// Use Registry.NewReader to decode structs and enums.
func NewReader(buf []byte) *Reader {
	return builtins.NewReader(buf)
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// Done reports whether the whole buffer has been consumed.
func (r *Reader) Done() bool {
	return r.off == len(r.buf)
}

// Decode reads one value of the named registered type.
//
// On failure the cursor is restored to where the value started and the
// error is a *DecodeError wrapping the cause (ErrTruncated,
// ErrInvalidEnumValue, ...).
func (r *Reader) Decode(name string) (any, error) {
	c, err := r.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	return r.run(name, func() (any, error) { return c.Get(r) })
}

// DecodeSized reads one value of the named type whose payload size is fixed
// by the schema rather than by a length prefix on the wire.
func (r *Reader) DecodeSized(name string, size int) (any, error) {
	c, err := r.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	sc, ok := c.(SizedCodec)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotSized, name)
	}
	return r.run(name, func() (any, error) { return sc.GetSized(r, size) })
}

// run executes one top-level decode, restoring the cursor on failure.
func (r *Reader) run(name string, get func() (any, error)) (any, error) {
	start := r.off
	v, err := get()
	if err != nil {
		r.off = start
		metrics.RecordError(r.metrics, "decode", name)
		return nil, &DecodeError{Type: name, Offset: start, Err: err}
	}
	metrics.ObserveDecode(r.metrics, name, r.off-start)
	return v, nil
}

// next returns the following n bytes and advances the cursor.
func (r *Reader) next(n int) ([]byte, error) {
	if n < 0 || n > len(r.buf)-r.off {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrTruncated, n, r.off, len(r.buf)-r.off)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// skip advances past n padding bytes without inspecting them.
func (r *Reader) skip(n int) error {
	_, err := r.next(n)
	return err
}

// ============================================================================
// Fixed-Width Scalars
// ============================================================================

// ReadUint32 decodes a 32-bit unsigned integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadInt32 decodes a 32-bit two's complement integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint16 decodes a 16-bit unsigned integer (2 bytes, unpadded).
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadInt16 decodes a 16-bit two's complement integer (2 bytes, unpadded).
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadFloat32 decodes an IEEE-754 single precision float.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 decodes an IEEE-754 double precision float.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBool decodes a boolean. Only the value 1 decodes as true; every other
// value, including 2 or 0xFFFFFFFF, decodes as false.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadInt32()
	return v == 1, err
}

// ============================================================================
// 64-bit Integers
// ============================================================================

// ReadUint64 decodes an unsigned hyper exactly, as a native uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// ReadInt64 decodes a signed hyper exactly, as a native int64.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadHyper decodes a signed hyper and reports whether it lies within the
// 53-bit safe integer range. See Hyper.
func (r *Reader) ReadHyper() (Hyper, error) {
	raw, err := r.ReadUint64()
	if err != nil {
		return Hyper{}, err
	}
	return hyperFromWire(raw), nil
}

// ReadUHyper decodes an unsigned hyper and reports whether it lies within
// the 53-bit safe integer range. See UHyper.
func (r *Reader) ReadUHyper() (UHyper, error) {
	raw, err := r.ReadUint64()
	if err != nil {
		return UHyper{}, err
	}
	return uhyperFromWire(raw), nil
}

// ============================================================================
// Variable-Length Data
// ============================================================================

// ReadOpaque decodes variable-length opaque data.
//
// Per RFC 4506 Section 4.10 (Variable-Length Opaque Data):
// Format: [length:uint32][data:length bytes][padding:0-3 bytes]
//
// The returned slice is a copy; the padding is skipped without validation.
func (r *Reader) ReadOpaque() ([]byte, error) {
	length, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("read opaque length: %w", err)
	}
	if uint64(length) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: opaque length %d", ErrLengthExceedsLimit, length)
	}
	if err := r.checkLength(int(length)); err != nil {
		return nil, err
	}
	return r.ReadFixedOpaque(int(length))
}

// ReadFixedOpaque decodes fixed-length opaque data whose size is known from
// the schema.
//
// Per RFC 4506 Section 4.9 (Fixed-Length Opaque Data):
// Format: [data:size bytes][padding:0-3 bytes]
func (r *Reader) ReadFixedOpaque(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: opaque size %d", ErrNegativeLength, size)
	}
	data, err := r.next(size)
	if err != nil {
		return nil, fmt.Errorf("read opaque data: %w", err)
	}
	if err := r.skip(PaddingLength(size)); err != nil {
		return nil, fmt.Errorf("skip padding: %w", err)
	}
	return bytes.Clone(data), nil
}

// ReadString decodes a length-prefixed string.
//
// Per RFC 4506 Section 4.11 (String):
// Format: [length:int32][data:length bytes][padding:0-3 bytes]
//
// The bytes are returned verbatim; invalid UTF-8 is not rejected so that a
// decoded string always re-encodes to the same bytes.
func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadInt32()
	if err != nil {
		return "", fmt.Errorf("read string length: %w", err)
	}
	if length < 0 {
		return "", fmt.Errorf("%w: string length %d", ErrNegativeLength, length)
	}
	if err := r.checkLength(int(length)); err != nil {
		return "", err
	}
	data, err := r.next(int(length))
	if err != nil {
		return "", fmt.Errorf("read string data: %w", err)
	}
	if err := r.skip(PaddingLength(int(length))); err != nil {
		return "", fmt.Errorf("skip padding: %w", err)
	}
	return string(data), nil
}

// checkLength enforces the reader's length limit before any payload is read.
func (r *Reader) checkLength(n int) error {
	if r.maxLength > 0 && n > r.maxLength {
		return fmt.Errorf("%w: length %d exceeds maximum %d", ErrLengthExceedsLimit, n, r.maxLength)
	}
	return nil
}
