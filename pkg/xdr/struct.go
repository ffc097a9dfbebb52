package xdr

import (
	"fmt"
)

// Member declares one struct field: its name and registered type.
type Member struct {
	Name string
	Type string
}

type structField struct {
	name  string
	codec Codec
}

// StructCodec encodes a record as the concatenation of its members in
// declared order. The order is part of the wire contract; nothing else
// frames the members.
//
//	struct point { int x; string label; }
//	{x: 1, label: "A"} → [00 00 00 01][00 00 00 01][41 00 00 00]
type StructCodec struct {
	name   string
	fields []structField
}

func (s *StructCodec) Name() string { return s.name }
func (s *StructCodec) Kind() Kind   { return KindStruct }

// Members returns the declared members in order.
func (s *StructCodec) Members() []Member {
	out := make([]Member, len(s.fields))
	for i, f := range s.fields {
		out[i] = Member{Name: f.name, Type: f.codec.Name()}
	}
	return out
}

func (s *StructCodec) fixedWidth() int {
	total := 0
	for _, f := range s.fields {
		w := FixedWidth(f.codec)
		if w < 0 {
			return -1
		}
		total += w
	}
	return total
}

// Width sums the member widths, validating every member on the way.
func (s *StructCodec) Width(v any) (int, error) {
	get, err := s.source(v)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, f := range s.fields {
		val, ok := get(f.name)
		if !ok {
			return 0, fmt.Errorf("%w: %s.%s", ErrMissingField, s.name, f.name)
		}
		w, err := f.codec.Width(val)
		if err != nil {
			return 0, fmt.Errorf("%s.%s: %w", s.name, f.name, err)
		}
		total += w
	}
	return total, nil
}

func (s *StructCodec) Put(dst []byte, v any) error {
	get, err := s.source(v)
	if err != nil {
		return err
	}
	off := 0
	for _, f := range s.fields {
		val, ok := get(f.name)
		if !ok {
			return fmt.Errorf("%w: %s.%s", ErrMissingField, s.name, f.name)
		}
		w, err := f.codec.Width(val)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", s.name, f.name, err)
		}
		if err := f.codec.Put(dst[off:off+w], val); err != nil {
			return fmt.Errorf("%s.%s: %w", s.name, f.name, err)
		}
		off += w
	}
	return nil
}

// Get decodes the members in declared order into a *Record.
func (s *StructCodec) Get(r *Reader) (any, error) {
	rec := &Record{
		names:  make([]string, 0, len(s.fields)),
		values: make(map[string]any, len(s.fields)),
	}
	for _, f := range s.fields {
		val, err := f.codec.Get(r)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", s.name, f.name, err)
		}
		rec.Set(f.name, val)
	}
	return rec, nil
}

func (s *StructCodec) source(v any) (func(string) (any, bool), error) {
	get, ok := fieldSource(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a record for struct %s", ErrTypeMismatch, v, s.name)
	}
	return get, nil
}

// newStructCodec resolves every member type against lookup.
func newStructCodec(name string, members []Member, lookup func(string) (Codec, error)) (*StructCodec, error) {
	s := &StructCodec{name: name, fields: make([]structField, 0, len(members))}
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if m.Name == "" {
			return nil, fmt.Errorf("%w: empty member name in struct %s", ErrInvalidName, name)
		}
		if _, dup := seen[m.Name]; dup {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateField, name, m.Name)
		}
		seen[m.Name] = struct{}{}

		c, err := lookup(m.Type)
		if err != nil {
			return nil, fmt.Errorf("struct %s member %s: %w", name, m.Name, err)
		}
		s.fields = append(s.fields, structField{name: m.Name, codec: c})
	}
	return s, nil
}
