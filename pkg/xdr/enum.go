package xdr

import (
	"encoding/binary"
	"fmt"
)

// EnumMember binds a symbolic name to its wire code.
type EnumMember struct {
	Name string
	Code uint32
}

// EnumCodec encodes symbolic names as 4-byte unsigned codes.
//
// Encoding accepts the symbolic name or a member code and fails with
// ErrInvalidEnumValue for anything else, before any byte is queued.
// Decoding returns the raw uint32 code. Unless the registry was built with
// WithLenientEnums, a decoded code that is not a member also fails with
// ErrInvalidEnumValue.
type EnumCodec struct {
	name    string
	members []EnumMember
	byName  map[string]uint32
	byCode  map[uint32]string
}

func (e *EnumCodec) Name() string    { return e.name }
func (e *EnumCodec) Kind() Kind      { return KindEnum }
func (e *EnumCodec) fixedWidth() int { return 4 }

// Members returns the declared members in order.
func (e *EnumCodec) Members() []EnumMember {
	return append([]EnumMember(nil), e.members...)
}

// CodeOf returns the code registered for a symbolic name.
func (e *EnumCodec) CodeOf(name string) (uint32, bool) {
	c, ok := e.byName[name]
	return c, ok
}

// NameOf returns the symbolic name registered for a code.
func (e *EnumCodec) NameOf(code uint32) (string, bool) {
	n, ok := e.byCode[code]
	return n, ok
}

func (e *EnumCodec) Width(v any) (int, error) {
	if _, err := e.code(v); err != nil {
		return 0, err
	}
	return 4, nil
}

func (e *EnumCodec) Put(dst []byte, v any) error {
	c, err := e.code(v)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(dst, c)
	return nil
}

func (e *EnumCodec) Get(r *Reader) (any, error) {
	c, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if !r.lenientEnums {
		if _, ok := e.byCode[c]; !ok {
			return nil, fmt.Errorf("%w: code %d is not a member of %s", ErrInvalidEnumValue, c, e.name)
		}
	}
	return c, nil
}

// code resolves a symbolic name or member code.
func (e *EnumCodec) code(v any) (uint32, error) {
	if name, ok := v.(string); ok {
		c, ok := e.byName[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q is not a member of %s", ErrInvalidEnumValue, name, e.name)
		}
		return c, nil
	}
	n, err := toUint64(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v (%T) for %s", ErrInvalidEnumValue, v, v, e.name)
	}
	if _, ok := e.byCode[uint32(n)]; !ok || n > 1<<32-1 {
		return 0, fmt.Errorf("%w: code %d is not a member of %s", ErrInvalidEnumValue, n, e.name)
	}
	return uint32(n), nil
}

func newEnumCodec(name string, members []EnumMember) (*EnumCodec, error) {
	e := &EnumCodec{
		name:    name,
		members: append([]EnumMember(nil), members...),
		byName:  make(map[string]uint32, len(members)),
		byCode:  make(map[uint32]string, len(members)),
	}
	for _, m := range members {
		if m.Name == "" {
			return nil, fmt.Errorf("%w: empty member name in enum %s", ErrInvalidName, name)
		}
		if _, dup := e.byName[m.Name]; dup {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateEnumName, name, m.Name)
		}
		if prev, dup := e.byCode[m.Code]; dup {
			return nil, fmt.Errorf("%w: %s.%s and %s.%s share code %d",
				ErrDuplicateEnumCode, name, prev, name, m.Name, m.Code)
		}
		e.byName[m.Name] = m.Code
		e.byCode[m.Code] = m.Name
	}
	return e, nil
}
