// Package bytesize parses and prints the human-readable sizes used for
// decode limits in configuration files and command-line flags.
package bytesize

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
	"unicode"
)

// ByteSize is a size in bytes that unmarshals from strings like "1Mi",
// "64KiB", "500KB" or plain numbers.
//
// Supported suffixes (case-insensitive):
//   - none or B: bytes
//   - Ki/KiB, Mi/MiB, Gi/GiB: binary multiples of 1024
//   - K/KB, M/MB, G/GB: decimal multiples of 1000
//
// Fractions are accepted and truncated to whole bytes: "1.5Ki" is 1536.
type ByteSize uint64

const (
	B  ByteSize = 1
	KB ByteSize = 1000
	MB ByteSize = 1000 * KB
	GB ByteSize = 1000 * MB

	KiB ByteSize = 1024
	MiB ByteSize = 1024 * KiB
	GiB ByteSize = 1024 * MiB
)

var (
	ErrEmpty    = errors.New("bytesize: empty value")
	ErrSyntax   = errors.New("bytesize: invalid syntax")
	ErrUnit     = errors.New("bytesize: unknown unit")
	ErrOverflow = errors.New("bytesize: value out of range")
)

var units = map[string]ByteSize{
	"": B, "b": B,
	"k": KB, "kb": KB,
	"m": MB, "mb": MB,
	"g": GB, "gb": GB,
	"ki": KiB, "kib": KiB,
	"mi": MiB, "mib": MiB,
	"gi": GiB, "gib": GiB,
}

// Parse converts a human-readable size into a ByteSize.
func Parse(s string) (ByteSize, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmpty
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	num, unit := s, ""
	if split >= 0 {
		num, unit = s[:split], strings.TrimSpace(s[split:])
	}
	if num == "" {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
	}

	mult, ok := units[strings.ToLower(unit)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnit, unit)
	}

	if strings.Contains(num, ".") {
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		v := f * float64(mult)
		if v >= math.MaxUint64 {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		return ByteSize(v), nil
	}

	n, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	hi, lo := bits.Mul64(n, uint64(mult))
	if hi != 0 {
		return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return ByteSize(lo), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so ByteSize fields
// decode directly from YAML, environment variables and flags.
func (b *ByteSize) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// MarshalText implements encoding.TextMarshaler using String.
func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// String returns the shortest exact form that Parse accepts: the largest
// binary unit dividing the value evenly, or plain bytes.
func (b ByteSize) String() string {
	for _, u := range []struct {
		size   ByteSize
		suffix string
	}{{GiB, "Gi"}, {MiB, "Mi"}, {KiB, "Ki"}} {
		if b >= u.size && b%u.size == 0 {
			return strconv.FormatUint(uint64(b/u.size), 10) + u.suffix
		}
	}
	return strconv.FormatUint(uint64(b), 10)
}

// Int returns the size as an int, failing when it does not fit.
func (b ByteSize) Int() (int, error) {
	if uint64(b) > math.MaxInt {
		return 0, fmt.Errorf("%w: %d", ErrOverflow, uint64(b))
	}
	return int(b), nil
}
