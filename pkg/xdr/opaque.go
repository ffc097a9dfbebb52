package xdr

import (
	"encoding/binary"
	"fmt"
)

// ============================================================================
// Variable-Length Data
// ============================================================================

// putPayload copies p into dst and zero fills the rest of dst, which covers
// both the alignment padding and any slack up to a declared fixed size.
func putPayload(dst []byte, p []byte) {
	n := copy(dst, p)
	clear(dst[n:])
}

// opaqueCodec encodes byte blocks. Without an explicit size the payload is
// prefixed with its length:
//
//	[]byte{0x01, 0x02, 0x03} → [00 00 00 03][01 02 03][00] (8 bytes total)
//
// With an explicit size only the payload and its padding are written:
//
//	size=3 → [01 02 03][00] (4 bytes total)
type opaqueCodec struct{}

func (opaqueCodec) Name() string    { return "opaque" }
func (opaqueCodec) Kind() Kind      { return KindOpaque }
func (opaqueCodec) fixedWidth() int { return -1 }

func (opaqueCodec) Width(v any) (int, error) {
	n, err := payloadLen(v)
	if err != nil {
		return 0, err
	}
	return 4 + Align(n), nil
}

func (opaqueCodec) Put(dst []byte, v any) error {
	p, err := toBytes(v)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(dst[0:4], uint32(len(p)))
	putPayload(dst[4:], p)
	return nil
}

func (opaqueCodec) Get(r *Reader) (any, error) {
	return r.ReadOpaque()
}

func (opaqueCodec) SizedWidth(v any, size int) (int, error) {
	if size < 0 {
		return 0, fmt.Errorf("%w: opaque size %d", ErrNegativeLength, size)
	}
	n, err := payloadLen(v)
	if err != nil {
		return 0, err
	}
	if n > size {
		return 0, fmt.Errorf("%w: %d bytes into opaque[%d]", ErrSizeMismatch, n, size)
	}
	return Align(size), nil
}

func (opaqueCodec) PutSized(dst []byte, v any, size int) error {
	p, err := toBytes(v)
	if err != nil {
		return err
	}
	if len(p) > size {
		return fmt.Errorf("%w: %d bytes into opaque[%d]", ErrSizeMismatch, len(p), size)
	}
	putPayload(dst, p)
	return nil
}

func (opaqueCodec) GetSized(r *Reader, size int) (any, error) {
	return r.ReadFixedOpaque(size)
}

// stringCodec encodes length-prefixed strings. The prefix counts UTF-8 bytes,
// not characters:
//
//	"三" → [00 00 00 03][e4 b8 89][00] (8 bytes total)
type stringCodec struct{}

func (stringCodec) Name() string    { return "string" }
func (stringCodec) Kind() Kind      { return KindString }
func (stringCodec) fixedWidth() int { return -1 }

func (stringCodec) Width(v any) (int, error) {
	n, err := payloadLen(v)
	if err != nil {
		return 0, err
	}
	if int64(n) > 1<<31-1 {
		return 0, fmt.Errorf("%w: string of %d bytes", ErrValueOutOfRange, n)
	}
	return 4 + Align(n), nil
}

func (stringCodec) Put(dst []byte, v any) error {
	var p []byte
	switch s := v.(type) {
	case string:
		binary.BigEndian.PutUint32(dst[0:4], uint32(int32(len(s))))
		n := copy(dst[4:], s)
		clear(dst[4+n:])
		return nil
	case []byte:
		p = s
	default:
		return fmt.Errorf("%w: %T is not a string", ErrTypeMismatch, v)
	}
	binary.BigEndian.PutUint32(dst[0:4], uint32(int32(len(p))))
	putPayload(dst[4:], p)
	return nil
}

func (stringCodec) Get(r *Reader) (any, error) {
	return r.ReadString()
}
