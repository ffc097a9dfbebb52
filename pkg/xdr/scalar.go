package xdr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ============================================================================
// Fixed-Width Scalars
// ============================================================================

// scalarCodec is a fixed-width codec: the width never depends on the value.
// check validates and normalizes a value, put writes the normalized form.
type scalarCodec struct {
	name  string
	width int
	check func(v any) (any, error)
	put   func(dst []byte, v any)
	get   func(r *Reader) (any, error)
}

func (c *scalarCodec) Name() string    { return c.name }
func (c *scalarCodec) Kind() Kind      { return KindScalar }
func (c *scalarCodec) fixedWidth() int { return c.width }

func (c *scalarCodec) Width(v any) (int, error) {
	if _, err := c.check(v); err != nil {
		return 0, err
	}
	return c.width, nil
}

func (c *scalarCodec) Put(dst []byte, v any) error {
	n, err := c.check(v)
	if err != nil {
		return err
	}
	c.put(dst, n)
	return nil
}

func (c *scalarCodec) Get(r *Reader) (any, error) {
	return c.get(r)
}

var (
	intCodec = &scalarCodec{
		name:  "int",
		width: 4,
		check: func(v any) (any, error) { return toRangedInt(v, math.MinInt32, math.MaxInt32) },
		put: func(dst []byte, v any) {
			binary.BigEndian.PutUint32(dst, uint32(int32(v.(int64))))
		},
		get: func(r *Reader) (any, error) { return r.ReadInt32() },
	}

	uintCodec = &scalarCodec{
		name:  "uint",
		width: 4,
		check: func(v any) (any, error) { return toRangedUint(v, math.MaxUint32) },
		put: func(dst []byte, v any) {
			binary.BigEndian.PutUint32(dst, uint32(v.(uint64)))
		},
		get: func(r *Reader) (any, error) { return r.ReadUint32() },
	}

	shortCodec = &scalarCodec{
		name:  "short",
		width: 2,
		check: func(v any) (any, error) { return toRangedInt(v, math.MinInt16, math.MaxInt16) },
		put: func(dst []byte, v any) {
			binary.BigEndian.PutUint16(dst, uint16(int16(v.(int64))))
		},
		get: func(r *Reader) (any, error) { return r.ReadInt16() },
	}

	ushortCodec = &scalarCodec{
		name:  "ushort",
		width: 2,
		check: func(v any) (any, error) { return toRangedUint(v, math.MaxUint16) },
		put: func(dst []byte, v any) {
			binary.BigEndian.PutUint16(dst, uint16(v.(uint64)))
		},
		get: func(r *Reader) (any, error) { return r.ReadUint16() },
	}

	floatCodec = &scalarCodec{
		name:  "float",
		width: 4,
		check: func(v any) (any, error) {
			if f, ok := v.(float32); ok {
				return f, nil
			}
			f, err := toFloat64(v)
			if err != nil {
				return nil, err
			}
			if math.IsInf(float64(float32(f)), 0) && !math.IsInf(f, 0) {
				return nil, fmt.Errorf("%w: %g overflows float", ErrValueOutOfRange, f)
			}
			return float32(f), nil
		},
		put: func(dst []byte, v any) {
			binary.BigEndian.PutUint32(dst, math.Float32bits(v.(float32)))
		},
		get: func(r *Reader) (any, error) { return r.ReadFloat32() },
	}

	doubleCodec = &scalarCodec{
		name:  "double",
		width: 8,
		check: func(v any) (any, error) { return toFloat64(v) },
		put: func(dst []byte, v any) {
			binary.BigEndian.PutUint64(dst, math.Float64bits(v.(float64)))
		},
		get: func(r *Reader) (any, error) { return r.ReadFloat64() },
	}

	// Per RFC 4506 Section 4.4 (Boolean): false = 0, true = 1.
	boolCodec = &scalarCodec{
		name:  "bool",
		width: 4,
		check: func(v any) (any, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %T is not a bool", ErrTypeMismatch, v)
			}
			return b, nil
		},
		put: func(dst []byte, v any) {
			var n uint32
			if v.(bool) {
				n = 1
			}
			binary.BigEndian.PutUint32(dst, n)
		},
		get: func(r *Reader) (any, error) { return r.ReadBool() },
	}

	hyperCodecSigned   = hyperCodec{signed: true}
	hyperCodecUnsigned = hyperCodec{signed: false}
)
