// Package prometheus implements the metrics interfaces with
// prometheus/client_golang collectors.
package prometheus

import (
	"time"

	"github.com/marmos91/xdrkit/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// codecMetrics is the Prometheus implementation of metrics.CodecMetrics.
type codecMetrics struct {
	encodeSessions prometheus.Counter
	encodeBytes    prometheus.Histogram
	encodeOps      prometheus.Histogram
	encodeDuration prometheus.Histogram
	decodeTotal    *prometheus.CounterVec
	decodeBytes    *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
}

// NewCodecMetrics creates a Prometheus-backed CodecMetrics on the global
// registry.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewCodecMetrics() metrics.CodecMetrics {
	if !metrics.IsEnabled() {
		return nil
	}
	return NewCodecMetricsWith(metrics.GetRegistry())
}

// NewCodecMetricsWith registers the codec collectors on reg.
func NewCodecMetricsWith(reg prometheus.Registerer) metrics.CodecMetrics {
	return &codecMetrics{
		encodeSessions: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "xdrkit_encode_sessions_total",
				Help: "Total number of finalized writer sessions",
			},
		),
		encodeBytes: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "xdrkit_encode_bytes",
				Help: "Distribution of materialized buffer sizes",
				Buckets: []float64{
					4,      // single scalar
					16,     // small record
					64,     // 64B
					256,    // 256B
					1024,   // 1KB
					8192,   // 8KB
					65536,  // 64KB
					262144, // 256KB - bulk payloads
				},
			},
		),
		encodeOps: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "xdrkit_encode_operations",
				Help:    "Distribution of queued write operations per session",
				Buckets: prometheus.ExponentialBuckets(1, 4, 7),
			},
		),
		encodeDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "xdrkit_encode_duration_microseconds",
				Help: "Time spent materializing writer buffers in microseconds",
				Buckets: []float64{
					1,    // 1us - scalars
					5,    // 5us
					25,   // 25us
					100,  // 100us
					500,  // 500us
					2500, // 2.5ms - large batches
				},
			},
		),
		decodeTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "xdrkit_decode_total",
				Help: "Total number of successful decodes by type",
			},
			[]string{"type"},
		),
		decodeBytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "xdrkit_decode_bytes_total",
				Help: "Total bytes consumed by decodes, including prefixes and padding",
			},
			[]string{"type"},
		),
		errorsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "xdrkit_codec_errors_total",
				Help: "Total number of failed encodes and decodes by operation and type",
			},
			[]string{"op", "type"},
		),
	}
}

func (m *codecMetrics) ObserveEncode(bytes int, ops int, duration time.Duration) {
	m.encodeSessions.Inc()
	m.encodeBytes.Observe(float64(bytes))
	m.encodeOps.Observe(float64(ops))
	m.encodeDuration.Observe(float64(duration.Microseconds()))
}

func (m *codecMetrics) ObserveDecode(typeName string, bytes int) {
	m.decodeTotal.WithLabelValues(typeName).Inc()
	m.decodeBytes.WithLabelValues(typeName).Add(float64(bytes))
}

func (m *codecMetrics) RecordError(op string, typeName string) {
	m.errorsTotal.WithLabelValues(op, typeName).Inc()
}
