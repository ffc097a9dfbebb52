package xdr

import (
	"fmt"
	"slices"
	"sync"

	"github.com/marmos91/xdrkit/pkg/metrics"
)

// ============================================================================
// Registry
// ============================================================================

// Registry maps type names to codecs. Every registry starts with the builtin
// types (int, uint, short, ushort, float, double, bool, hyper, uhyper,
// opaque, string); callers add structs and enums once, at schema definition
// time, and then create Writer and Reader sessions from it.
//
// Independent registries share nothing, so schemas compiled separately
// cannot collide. Lookups are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec

	lenientEnums bool
	maxLength    int
	metrics      metrics.CodecMetrics
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLenientEnums makes enum decoding return any code found on the wire
// instead of rejecting codes that are not registered members. Encoding is
// always strict.
func WithLenientEnums() RegistryOption {
	return func(r *Registry) { r.lenientEnums = true }
}

// WithMaxLength caps the length prefix readers accept for opaque data and
// strings. Zero means no limit.
func WithMaxLength(n int) RegistryOption {
	return func(r *Registry) { r.maxLength = n }
}

// WithMetrics attaches codec metrics to every session created from the
// registry. A nil value disables collection.
func WithMetrics(m metrics.CodecMetrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// builtins resolves builtin types for the package-level NewWriter and
// NewReader. It is never mutated after initialization.
var builtins = NewRegistry()

// NewRegistry returns a registry holding the builtin types.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{codecs: make(map[string]Codec, 16)}
	for _, c := range []Codec{
		intCodec, uintCodec, shortCodec, ushortCodec,
		floatCodec, doubleCodec, boolCodec,
		hyperCodecSigned, hyperCodecUnsigned,
		opaqueCodec{}, stringCodec{},
	} {
		r.codecs[c.Name()] = c
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a codec under its own name.
func (r *Registry) Register(c Codec) error {
	if c == nil || c.Name() == "" {
		return fmt.Errorf("%w: codec must have a name", ErrInvalidName)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(c)
}

// DefineStruct registers a struct type whose members are encoded in the
// given order. Every member type must already be registered; it is
// resolved now, so later registrations never change this struct.
func (r *Registry) DefineStruct(name string, members ...Member) error {
	if name == "" {
		return fmt.Errorf("%w: empty struct name", ErrInvalidName)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := newStructCodec(name, members, r.lookupLocked)
	if err != nil {
		return err
	}
	return r.addLocked(s)
}

// DefineEnum registers an enum type. Names and codes must both be unique.
func (r *Registry) DefineEnum(name string, members ...EnumMember) error {
	if name == "" {
		return fmt.Errorf("%w: empty enum name", ErrInvalidName)
	}
	e, err := newEnumCodec(name, members)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(e)
}

// Lookup returns the codec registered under name.
func (r *Registry) Lookup(name string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(name)
}

// Struct returns the struct codec registered under name.
func (r *Registry) Struct(name string) (*StructCodec, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	s, ok := c.(*StructCodec)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s, not a struct", ErrTypeMismatch, name, c.Kind())
	}
	return s, nil
}

// Enum returns the enum codec registered under name.
func (r *Registry) Enum(name string) (*EnumCodec, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	e, ok := c.(*EnumCodec)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s, not an enum", ErrTypeMismatch, name, c.Kind())
	}
	return e, nil
}

// Names returns every registered type name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// TypeInfo summarizes a registered type for listings.
type TypeInfo struct {
	Name    string   `json:"name" yaml:"name"`
	Kind    string   `json:"kind" yaml:"kind"`
	Width   int      `json:"width" yaml:"width"` // -1 when variable
	Members []string `json:"members,omitempty" yaml:"members,omitempty"`
}

// Describe returns a TypeInfo for name.
func (r *Registry) Describe(name string) (TypeInfo, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return TypeInfo{}, err
	}
	info := TypeInfo{Name: name, Kind: c.Kind().String(), Width: FixedWidth(c)}
	switch t := c.(type) {
	case *StructCodec:
		for _, m := range t.Members() {
			info.Members = append(info.Members, m.Name+":"+m.Type)
		}
	case *EnumCodec:
		for _, m := range t.Members() {
			info.Members = append(info.Members, fmt.Sprintf("%s=%d", m.Name, m.Code))
		}
	}
	return info, nil
}

// NewWriter starts an encode session.
func (r *Registry) NewWriter() *Writer {
	return &Writer{reg: r, metrics: r.metrics}
}

// NewReader starts a decode session over buf.
func (r *Registry) NewReader(buf []byte) *Reader {
	return &Reader{
		reg:          r,
		buf:          buf,
		maxLength:    r.maxLength,
		lenientEnums: r.lenientEnums,
		metrics:      r.metrics,
	}
}

func (r *Registry) lookupLocked(name string) (Codec, error) {
	c, ok := r.codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return c, nil
}

func (r *Registry) addLocked(c Codec) error {
	if _, exists := r.codecs[c.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateType, c.Name())
	}
	r.codecs[c.Name()] = c
	return nil
}
