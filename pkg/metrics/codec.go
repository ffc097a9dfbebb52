package metrics

import (
	"time"
)

// CodecMetrics provides observability for XDR encode and decode sessions.
//
// This interface is optional - pass nil to disable metrics collection with
// zero overhead.
//
// Example usage:
//
//	// With metrics enabled
//	metrics.InitRegistry()
//	reg := xdr.NewRegistry(xdr.WithMetrics(prometheus.NewCodecMetrics()))
//
//	// Without metrics
//	reg := xdr.NewRegistry()
type CodecMetrics interface {
	// ObserveEncode records a finalized writer session.
	//
	// Parameters:
	//   - bytes: Size of the materialized buffer
	//   - ops: Number of queued write operations replayed into the buffer
	//   - duration: Time spent materializing the buffer
	ObserveEncode(bytes int, ops int, duration time.Duration)

	// ObserveDecode records a successful Reader.Decode call.
	//
	// Parameters:
	//   - typeName: Registered type name (e.g., "int", "string", "point")
	//   - bytes: Bytes consumed, including length prefix and padding
	ObserveDecode(typeName string, bytes int)

	// RecordError counts a failed encode or decode.
	//
	// Parameters:
	//   - op: "encode" or "decode"
	//   - typeName: Registered type name
	RecordError(op string, typeName string)
}

// ObserveEncode records a finalized writer session if m is non-nil.
func ObserveEncode(m CodecMetrics, bytes int, ops int, duration time.Duration) {
	if m != nil {
		m.ObserveEncode(bytes, ops, duration)
	}
}

// ObserveDecode records a successful decode if m is non-nil.
func ObserveDecode(m CodecMetrics, typeName string, bytes int) {
	if m != nil {
		m.ObserveDecode(typeName, bytes)
	}
}

// RecordError counts a codec failure if m is non-nil.
func RecordError(m CodecMetrics, op string, typeName string) {
	if m != nil {
		m.RecordError(op, typeName)
	}
}
