package xdr

import (
	"fmt"
	"io"
	"time"

	"github.com/marmos91/xdrkit/pkg/bufpool"
	"github.com/marmos91/xdrkit/pkg/metrics"
)

// ============================================================================
// Writer - Go Values → Wire Format
// ============================================================================

// op is one deferred write: the bytes it will occupy (padding included),
// the function that fills them, and the value to encode.
type op struct {
	width int
	put   func(dst []byte, v any) error
	value any
}

// Writer is a single-use encode session.
//
// Encoding is done in two passes. Every Encode call only measures its value
// and queues an op; Bytes then allocates one buffer of exactly the measured
// total and replays the ops in order. The buffer is never grown or copied
// and has no trailing slack.
//
// Calls are chainable. The first error is kept and turns every later call
// into a no-op, so a chain can be checked once:
//
//	buf, err := reg.NewWriter().
//		Encode("int", 1).
//		Encode("string", "A").
//		Bytes()
//
// A Writer is owned by a single caller and is not safe for concurrent use.
type Writer struct {
	reg     *Registry
	ops     []op
	total   int
	err     error
	done    bool
	metrics metrics.CodecMetrics
}

// NewWriter returns a Writer that resolves only the builtin types.
// Use Registry.NewWriter to encode structs and enums.
func NewWriter() *Writer {
	return builtins.NewWriter()
}

// Len returns the number of bytes queued so far.
func (w *Writer) Len() int {
	return w.total
}

// Err returns the first error recorded by the session, if any.
func (w *Writer) Err() error {
	return w.err
}

// Encode queues v as the named registered type. Nothing is written until
// Bytes or WriteTo; an invalid value (unknown enum name, out-of-range
// integer, missing struct field) fails here and queues nothing.
func (w *Writer) Encode(name string, v any) *Writer {
	if !w.ready() {
		return w
	}
	c, err := w.reg.Lookup(name)
	if err != nil {
		return w.fail(name, err)
	}
	return w.encode(c, v)
}

// EncodeSized queues v as the named type with a payload size fixed by the
// schema instead of a length prefix. The session grows by size plus padding
// regardless of len(v); shorter payloads are zero filled.
func (w *Writer) EncodeSized(name string, v any, size int) *Writer {
	if !w.ready() {
		return w
	}
	c, err := w.reg.Lookup(name)
	if err != nil {
		return w.fail(name, err)
	}
	sc, ok := c.(SizedCodec)
	if !ok {
		return w.fail(name, fmt.Errorf("%w: %s", ErrNotSized, name))
	}
	width, err := sc.SizedWidth(v, size)
	if err != nil {
		return w.fail(name, err)
	}
	w.enqueue(width, func(dst []byte, v any) error { return sc.PutSized(dst, v, size) }, v)
	return w
}

func (w *Writer) encode(c Codec, v any) *Writer {
	if !w.ready() {
		return w
	}
	width, err := c.Width(v)
	if err != nil {
		return w.fail(c.Name(), err)
	}
	w.enqueue(width, c.Put, v)
	return w
}

func (w *Writer) enqueue(width int, put func([]byte, any) error, v any) {
	w.ops = append(w.ops, op{width: width, put: put, value: v})
	w.total += width
}

func (w *Writer) ready() bool {
	if w.err != nil {
		return false
	}
	if w.done {
		w.err = ErrFinalized
		return false
	}
	return true
}

func (w *Writer) fail(name string, err error) *Writer {
	metrics.RecordError(w.metrics, "encode", name)
	w.err = fmt.Errorf("encode %s: %w", name, err)
	return w
}

// ============================================================================
// Typed Shorthands
// ============================================================================

// WriteInt32 queues a 32-bit signed integer.
func (w *Writer) WriteInt32(v int32) *Writer { return w.encode(intCodec, v) }

// WriteUint32 queues a 32-bit unsigned integer.
func (w *Writer) WriteUint32(v uint32) *Writer { return w.encode(uintCodec, v) }

// WriteInt16 queues a 16-bit signed integer (2 bytes).
func (w *Writer) WriteInt16(v int16) *Writer { return w.encode(shortCodec, v) }

// WriteUint16 queues a 16-bit unsigned integer (2 bytes).
func (w *Writer) WriteUint16(v uint16) *Writer { return w.encode(ushortCodec, v) }

// WriteFloat32 queues an IEEE-754 single precision float.
func (w *Writer) WriteFloat32(v float32) *Writer { return w.encode(floatCodec, v) }

// WriteFloat64 queues an IEEE-754 double precision float.
func (w *Writer) WriteFloat64(v float64) *Writer { return w.encode(doubleCodec, v) }

// WriteBool queues a boolean as a 4-byte 0 or 1.
func (w *Writer) WriteBool(v bool) *Writer { return w.encode(boolCodec, v) }

// WriteInt64 queues a signed hyper.
func (w *Writer) WriteInt64(v int64) *Writer { return w.encode(hyperCodecSigned, v) }

// WriteUint64 queues an unsigned hyper.
func (w *Writer) WriteUint64(v uint64) *Writer { return w.encode(hyperCodecUnsigned, v) }

// WriteOpaque queues length-prefixed opaque data.
func (w *Writer) WriteOpaque(v []byte) *Writer { return w.encode(opaqueCodec{}, v) }

// WriteFixedOpaque queues opaque data of a schema-defined size, without a
// length prefix.
func (w *Writer) WriteFixedOpaque(v []byte, size int) *Writer {
	return w.EncodeSized("opaque", v, size)
}

// WriteString queues a length-prefixed string.
func (w *Writer) WriteString(v string) *Writer { return w.encode(stringCodec{}, v) }

// ============================================================================
// Finalization
// ============================================================================

// Bytes finalizes the session: it allocates one buffer of exactly Len()
// bytes and replays every queued op into it, in order. A Writer can be
// finalized once; later calls return ErrFinalized.
func (w *Writer) Bytes() ([]byte, error) {
	if !w.ready() {
		return nil, w.err
	}
	buf := make([]byte, w.total)
	if err := w.materialize(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteTo finalizes the session into a pooled buffer and writes it to dst.
// The pooled buffer is sliced to exactly Len() bytes and returned to the
// pool afterwards.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	if !w.ready() {
		return 0, w.err
	}
	buf := bufpool.Get(w.total)
	defer bufpool.Put(buf)

	if err := w.materialize(buf); err != nil {
		return 0, err
	}
	n, err := dst.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("write encoded buffer: %w", err)
	}
	return int64(n), nil
}

// materialize replays the queued ops into buf, which must be Len() bytes.
func (w *Writer) materialize(buf []byte) error {
	start := time.Now()
	w.done = true

	off := 0
	for _, o := range w.ops {
		if err := o.put(buf[off:off+o.width], o.value); err != nil {
			w.err = fmt.Errorf("materialize at offset %d: %w", off, err)
			return w.err
		}
		off += o.width
	}
	count := len(w.ops)
	w.ops = nil

	metrics.ObserveEncode(w.metrics, len(buf), count, time.Since(start))
	return nil
}
