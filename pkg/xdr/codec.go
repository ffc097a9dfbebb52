package xdr

// ============================================================================
// Codec Contract
// ============================================================================

// Kind classifies a codec. The set is closed: every registered type is one
// of these variants.
type Kind int

const (
	KindScalar Kind = iota // fixed-width int, uint, short, ushort, float, double, bool
	KindWide               // hyper, uhyper
	KindOpaque             // opaque byte blocks
	KindString             // length-prefixed UTF-8 strings
	KindStruct             // ordered member lists
	KindEnum               // symbolic name ↔ code mappings
	KindCustom             // codecs registered by callers
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindWide:
		return "wide"
	case KindOpaque:
		return "opaque"
	case KindString:
		return "string"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Codec is the contract every registered type implements.
//
// Width must validate v completely: a Writer calls Width when a value is
// queued and reports any error at that point, so Put is only ever handed
// values Width accepted. Put must write every byte of dst (padding
// included), because the destination may be a reused pooled buffer.
type Codec interface {
	// Name is the registry key of the type.
	Name() string

	// Kind reports which codec variant this is.
	Kind() Kind

	// Width returns the encoded size of v in bytes, including any length
	// prefix and padding.
	Width(v any) (int, error)

	// Put writes v into dst, which is exactly Width(v) bytes long.
	Put(dst []byte, v any) error

	// Get reads one value from r, advancing its cursor.
	Get(r *Reader) (any, error)
}

// SizedCodec is implemented by codecs whose payload size can be fixed by the
// schema instead of a length prefix (fixed-length opaque data).
type SizedCodec interface {
	Codec

	// SizedWidth returns size plus padding after checking that v fits.
	SizedWidth(v any, size int) (int, error)

	// PutSized writes v into dst, zero filling up to size and padding.
	PutSized(dst []byte, v any, size int) error

	// GetSized reads exactly size bytes plus padding.
	GetSized(r *Reader, size int) (any, error)
}

// fixedWidther is implemented by codecs whose width does not depend on the
// value. It returns -1 for variable-width types.
type fixedWidther interface {
	fixedWidth() int
}

// FixedWidth returns the constant encoded width of c, or -1 when the width
// depends on the value.
func FixedWidth(c Codec) int {
	if fw, ok := c.(fixedWidther); ok {
		return fw.fixedWidth()
	}
	return -1
}
