// Package valuefmt converts between decoded XDR values and the plain trees
// that JSON and YAML can carry.
//
// Conversion is directed by the registered type, because the same Go value
// means different things on different types: a decoded uint32 may be a
// plain uint or an enum code, and a JSON string may be text or hex-encoded
// opaque data.
//
// Display forms:
//
//	opaque         lowercase hex string
//	enum           member name, or the code when it is not a member
//	hyper/uhyper   integer; a decimal string outside the 53-bit safe range
//	float/double   number; "NaN", "+Inf" or "-Inf" for non-finite values
//	struct         ordered mapping
//
// Parse accepts the same forms, so displaying and parsing round-trips.
package valuefmt

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/marmos91/xdrkit/pkg/xdr"
)

// Display converts v, a value decoded as typeName, into its display form.
func Display(reg *xdr.Registry, typeName string, v any) (any, error) {
	c, err := reg.Lookup(typeName)
	if err != nil {
		return nil, err
	}
	return display(reg, c, v)
}

func display(reg *xdr.Registry, c xdr.Codec, v any) (any, error) {
	switch t := c.(type) {
	case *xdr.StructCodec:
		rec, ok := v.(*xdr.Record)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a record, got %T", xdr.ErrTypeMismatch, t.Name(), v)
		}
		out := xdr.NewRecord()
		for _, m := range t.Members() {
			fv, ok := rec.Get(m.Name)
			if !ok {
				return nil, fmt.Errorf("%s.%s: %w", t.Name(), m.Name, xdr.ErrMissingField)
			}
			mc, err := reg.Lookup(m.Type)
			if err != nil {
				return nil, err
			}
			dv, err := display(reg, mc, fv)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.Name(), m.Name, err)
			}
			out.Set(m.Name, dv)
		}
		return out, nil
	case *xdr.EnumCodec:
		code, ok := v.(uint32)
		if !ok {
			return v, nil
		}
		if name, ok := t.NameOf(code); ok {
			return name, nil
		}
		return code, nil
	}

	switch x := v.(type) {
	case xdr.Hyper:
		if x.Valid {
			return x.Value, nil
		}
		return strconv.FormatInt(int64(x.Raw), 10), nil
	case xdr.UHyper:
		if x.Valid {
			return x.Value, nil
		}
		return strconv.FormatUint(x.Raw, 10), nil
	case []byte:
		return hex.EncodeToString(x), nil
	case float32:
		if s, ok := nonFinite(float64(x)); ok {
			return s, nil
		}
		return x, nil
	case float64:
		if s, ok := nonFinite(x); ok {
			return s, nil
		}
		return x, nil
	}
	return v, nil
}

func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "+Inf", true
	case math.IsInf(f, -1):
		return "-Inf", true
	}
	return "", false
}

// ParseJSON decodes a JSON document into a value encodable as typeName.
// Numbers keep full precision, so 64-bit integers survive.
func ParseJSON(reg *xdr.Registry, typeName string, data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse value: trailing data after JSON value")
	}
	return Parse(reg, typeName, tree)
}

// Parse converts a tree decoded from JSON or YAML into a value encodable as
// typeName.
func Parse(reg *xdr.Registry, typeName string, tree any) (any, error) {
	c, err := reg.Lookup(typeName)
	if err != nil {
		return nil, err
	}
	return parse(reg, c, tree)
}

func parse(reg *xdr.Registry, c xdr.Codec, tree any) (any, error) {
	switch t := c.(type) {
	case *xdr.StructCodec:
		return parseStruct(reg, t, tree)
	case *xdr.EnumCodec:
		if s, ok := tree.(string); ok {
			return s, nil
		}
		return parseUint(tree, 32)
	}

	switch c.Name() {
	case "int", "short", "hyper":
		return parseInt(tree)
	case "uint", "ushort":
		return parseUint(tree, 32)
	case "uhyper":
		return parseUint(tree, 64)
	case "float", "double":
		return parseFloat(tree)
	case "bool":
		b, ok := tree.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: bool expects true or false, got %T", xdr.ErrTypeMismatch, tree)
		}
		return b, nil
	case "opaque":
		s, ok := tree.(string)
		if !ok {
			return nil, fmt.Errorf("%w: opaque expects a hex string, got %T", xdr.ErrTypeMismatch, tree)
		}
		b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
		if err != nil {
			return nil, fmt.Errorf("%w: opaque: %v", xdr.ErrTypeMismatch, err)
		}
		return b, nil
	case "string":
		s, ok := tree.(string)
		if !ok {
			return nil, fmt.Errorf("%w: string expects a string, got %T", xdr.ErrTypeMismatch, tree)
		}
		return s, nil
	}
	return tree, nil
}

func parseStruct(reg *xdr.Registry, s *xdr.StructCodec, tree any) (any, error) {
	fields, ok := asMap(tree)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects an object, got %T", xdr.ErrTypeMismatch, s.Name(), tree)
	}

	known := make(map[string]bool, len(fields))
	rec := xdr.NewRecord()
	for _, m := range s.Members() {
		known[m.Name] = true
		fv, ok := fields[m.Name]
		if !ok {
			continue
		}
		mc, err := reg.Lookup(m.Type)
		if err != nil {
			return nil, err
		}
		pv, err := parse(reg, mc, fv)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", s.Name(), m.Name, err)
		}
		rec.Set(m.Name, pv)
	}
	for name := range fields {
		if !known[name] {
			return nil, fmt.Errorf("%s: unknown field %q", s.Name(), name)
		}
	}
	return rec, nil
}

func asMap(tree any) (map[string]any, bool) {
	switch m := tree.(type) {
	case map[string]any:
		return m, true
	case *xdr.Record:
		return m.Map(), true
	}
	return nil, false
}

func parseInt(tree any) (int64, error) {
	switch n := tree.(type) {
	case json.Number:
		return strconv.ParseInt(n.String(), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", xdr.ErrValueOutOfRange, n)
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, fmt.Errorf("%w: %v is not an exact integer", xdr.ErrValueOutOfRange, n)
		}
		return int64(n), nil
	}
	return 0, fmt.Errorf("%w: expected an integer, got %T", xdr.ErrTypeMismatch, tree)
}

func parseUint(tree any, bits int) (uint64, error) {
	var s string
	switch n := tree.(type) {
	case json.Number:
		s = n.String()
	case string:
		s = n
	case int:
		s = strconv.Itoa(n)
	case int64:
		s = strconv.FormatInt(n, 10)
	case uint64:
		s = strconv.FormatUint(n, 10)
	case float64:
		if n < 0 || n != math.Trunc(n) || n > 1<<53 {
			return 0, fmt.Errorf("%w: %v is not an exact unsigned integer", xdr.ErrValueOutOfRange, n)
		}
		s = strconv.FormatFloat(n, 'f', 0, 64)
	default:
		return 0, fmt.Errorf("%w: expected an unsigned integer, got %T", xdr.ErrTypeMismatch, tree)
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", xdr.ErrValueOutOfRange, err)
	}
	return v, nil
}

func parseFloat(tree any) (float64, error) {
	switch n := tree.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		switch n {
		case "NaN":
			return math.NaN(), nil
		case "+Inf", "Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("%w: expected a number, got %T", xdr.ErrTypeMismatch, tree)
}

// Flatten lists the leaves of a display value as dotted-path and text
// pairs, for key/value tables. A non-record value yields one pair with an
// empty key.
func Flatten(v any) [][2]string {
	var out [][2]string
	flatten("", v, &out)
	return out
}

func flatten(prefix string, v any, out *[][2]string) {
	rec, ok := v.(*xdr.Record)
	if !ok {
		*out = append(*out, [2]string{prefix, fmt.Sprint(v)})
		return
	}
	for _, name := range rec.Fields() {
		fv, _ := rec.Get(name)
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		flatten(key, fv, out)
	}
}
