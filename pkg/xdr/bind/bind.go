// Package bind maps decoded XDR structs onto tagged Go structs and back.
//
// Fields are matched by the `xdr` struct tag, falling back to the field name
// (case-insensitive) when the tag is absent. Nested XDR structs bind to
// nested Go structs:
//
//	type Point struct {
//		X     int32  `xdr:"x"`
//		Y     int32  `xdr:"y"`
//		Label string `xdr:"label"`
//	}
//
//	var p Point
//	err := bind.Unmarshal(reg, "point", buf, &p)
//
// Wide integers bind to int64 and uint64 fields exactly, regardless of the
// 53-bit safe range, or to xdr.Hyper and xdr.UHyper fields unchanged.
package bind

import (
	"fmt"
	"reflect"

	"github.com/marmos91/xdrkit/pkg/xdr"
	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag consulted for field names.
const TagName = "xdr"

var (
	hyperType  = reflect.TypeOf(xdr.Hyper{})
	uhyperType = reflect.TypeOf(xdr.UHyper{})
)

// Decode copies a decoded record into out, which must be a pointer to a
// struct. Record fields without a matching Go field are ignored; Go fields
// without a matching record field keep their values.
func Decode(rec *xdr.Record, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    TagName,
		Result:     out,
		DecodeHook: wideIntHook,
	})
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	if err := dec.Decode(toMap(rec)); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	return nil
}

// Record converts a tagged Go struct (or pointer to one) into a record whose
// field order follows the struct declaration. Nested structs become nested
// records; xdr.Hyper and xdr.UHyper fields are kept as values.
func Record(in any) (*xdr.Record, error) {
	v := reflect.Indirect(reflect.ValueOf(in))
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind: expected struct, got %T", in)
	}
	return structRecord(v), nil
}

// Unmarshal decodes typeName from buf and binds it to out.
func Unmarshal(reg *xdr.Registry, typeName string, buf []byte, out any) error {
	v, err := reg.NewReader(buf).Decode(typeName)
	if err != nil {
		return err
	}
	rec, ok := v.(*xdr.Record)
	if !ok {
		return fmt.Errorf("bind: %s decodes to %T, not a struct", typeName, v)
	}
	return Decode(rec, out)
}

// Marshal converts in to a record and encodes it as typeName.
func Marshal(reg *xdr.Registry, typeName string, in any) ([]byte, error) {
	rec, err := Record(in)
	if err != nil {
		return nil, err
	}
	return reg.NewWriter().Encode(typeName, rec).Bytes()
}

// toMap flattens nested records into maps for mapstructure.
func toMap(rec *xdr.Record) map[string]any {
	m := make(map[string]any, rec.Len())
	for _, name := range rec.Fields() {
		v, _ := rec.Get(name)
		if nested, ok := v.(*xdr.Record); ok {
			v = toMap(nested)
		}
		m[name] = v
	}
	return m
}

func structRecord(v reflect.Value) *xdr.Record {
	rec := xdr.NewRecord()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := fieldName(f)
		if !f.IsExported() || name == "-" {
			continue
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Struct && fv.Type() != hyperType && fv.Type() != uhyperType {
			rec.Set(name, structRecord(fv))
			continue
		}
		rec.Set(name, fv.Interface())
	}
	return rec
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get(TagName)
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			tag = tag[:i]
			break
		}
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

// wideIntHook lets Hyper and UHyper values land in plain integer fields.
// 64-bit targets take the raw wire bits when the value is outside the safe
// range, so they bind exactly.
func wideIntHook(from, to reflect.Type, data any) (any, error) {
	switch from {
	case hyperType:
		if to == hyperType {
			return data, nil
		}
		h := data.(xdr.Hyper)
		if to.Kind() == reflect.Int64 || to.Kind() == reflect.Int {
			if h.Valid {
				return h.Value, nil
			}
			return int64(h.Raw), nil
		}
		if !h.Valid {
			return nil, fmt.Errorf("%w: %s", xdr.ErrValueOutOfRange, h)
		}
		return h.Value, nil
	case uhyperType:
		if to == uhyperType {
			return data, nil
		}
		u := data.(xdr.UHyper)
		if to.Kind() == reflect.Uint64 || to.Kind() == reflect.Uint {
			if u.Valid {
				return u.Value, nil
			}
			return u.Raw, nil
		}
		if !u.Valid {
			return nil, fmt.Errorf("%w: %s", xdr.ErrValueOutOfRange, u)
		}
		return u.Value, nil
	}
	return data, nil
}
