package xdr

import (
	"bytes"
	"encoding/json"
	"maps"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"
)

// Record is an ordered mapping from field name to value. Struct codecs
// decode into a *Record whose field order is the struct's declared member
// order, and accept one (by pointer or value, or a plain map) when encoding.
type Record struct {
	names  []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// RecordOf builds a record from alternating name, value pairs. It panics if
// kv has odd length or a name is not a string, so it is meant for literals.
func RecordOf(kv ...any) *Record {
	if len(kv)%2 != 0 {
		panic("xdr: RecordOf requires name/value pairs")
	}
	r := NewRecord()
	for i := 0; i < len(kv); i += 2 {
		r.Set(kv[i].(string), kv[i+1])
	}
	return r
}

// Set assigns a field, appending it to the field order if it is new.
func (r *Record) Set(name string, v any) *Record {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
	return r
}

// Get returns a field value.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Fields returns the field names in order.
func (r *Record) Fields() []string {
	return slices.Clone(r.names)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.names)
}

// Map returns the fields as an unordered map. Nested records are left as
// *Record values.
func (r *Record) Map() map[string]any {
	return maps.Clone(r.values)
}

// Equal reports whether both records hold the same fields, in the same
// order, with deeply equal values.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if !slices.Equal(r.names, o.names) {
		return false
	}
	for _, name := range r.names {
		a, b := r.values[name], o.values[name]
		if ra, ok := a.(*Record); ok {
			rb, ok := b.(*Record)
			if !ok || !ra.Equal(rb) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(a, b) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the record as a JSON object with fields in order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a YAML mapping with fields in order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range r.names {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		val := &yaml.Node{}
		if err := val.Encode(r.values[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

// fieldSource returns a lookup function over a struct value.
func fieldSource(v any) (func(string) (any, bool), bool) {
	switch rec := v.(type) {
	case *Record:
		if rec == nil {
			return nil, false
		}
		return rec.Get, true
	case Record:
		return rec.Get, true
	case map[string]any:
		return func(name string) (any, bool) {
			x, ok := rec[name]
			return x, ok
		}, true
	default:
		return nil, false
	}
}
