package xdr

import (
	"fmt"
	"math"
)

// maxSafeInteger is the largest magnitude a float64 carries exactly (2^53).
// Integer values arriving as float64 (decoded JSON or YAML) must stay within it.
const maxSafeInteger = 1 << 53

// toInt64 converts any Go integer, or an integral float within the safe
// integer range, to int64.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	default:
		return 0, fmt.Errorf("%w: %T is not an integer", ErrTypeMismatch, v)
	}
}

// toUint64 is toInt64 for unsigned targets; negative values are rejected.
func toUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	}
	i, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrValueOutOfRange, i)
	}
	return uint64(i), nil
}

func uintToInt64(n uint64) (int64, error) {
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d overflows int64", ErrValueOutOfRange, n)
	}
	return int64(n), nil
}

func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrTypeMismatch, f)
	}
	if f > maxSafeInteger || f < -maxSafeInteger {
		return 0, fmt.Errorf("%w: %v is outside the safe integer range", ErrValueOutOfRange, f)
	}
	return int64(f), nil
}

// toRangedInt converts v and checks it against [lo, hi].
func toRangedInt(v any, lo, hi int64) (int64, error) {
	i, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	if i < lo || i > hi {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrValueOutOfRange, i, lo, hi)
	}
	return i, nil
}

// toRangedUint converts v and checks it against [0, hi].
func toRangedUint(v any, hi uint64) (uint64, error) {
	u, err := toUint64(v)
	if err != nil {
		return 0, err
	}
	if u > hi {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrValueOutOfRange, u, hi)
	}
	return u, nil
}

// toFloat64 accepts floats and integers.
func toFloat64(v any) (float64, error) {
	switch f := v.(type) {
	case float32:
		return float64(f), nil
	case float64:
		return f, nil
	}
	i, err := toInt64(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %T is not a number", ErrTypeMismatch, v)
	}
	return float64(i), nil
}

// toBytes accepts []byte and string payloads.
func toBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("%w: %T is not a byte payload", ErrTypeMismatch, v)
	}
}

// payloadLen returns the byte length of a []byte or string payload without
// copying it.
func payloadLen(v any) (int, error) {
	switch b := v.(type) {
	case []byte:
		return len(b), nil
	case string:
		return len(b), nil
	default:
		return 0, fmt.Errorf("%w: %T is not a byte payload", ErrTypeMismatch, v)
	}
}
