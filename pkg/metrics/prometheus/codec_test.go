package prometheus

import (
	"testing"
	"time"

	"github.com/marmos91/xdrkit/pkg/metrics"
	"github.com/marmos91/xdrkit/pkg/xdr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodecMetrics(t *testing.T) {
	t.Run("NilWhenDisabled", func(t *testing.T) {
		metrics.Reset()
		assert.Nil(t, NewCodecMetrics())
	})

	t.Run("UsesGlobalRegistry", func(t *testing.T) {
		reg := metrics.InitRegistry()
		defer metrics.Reset()

		m := NewCodecMetrics()
		require.NotNil(t, m)
		m.RecordError("decode", "int")

		n, err := testutil.GatherAndCount(reg, "xdrkit_codec_errors_total")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestCodecMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCodecMetricsWith(reg).(*codecMetrics)

	m.ObserveEncode(12, 3, 2*time.Microsecond)
	m.ObserveDecode("point", 12)
	m.ObserveDecode("point", 8)
	m.RecordError("encode", "color")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.encodeSessions))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.decodeTotal.WithLabelValues("point")))
	assert.Equal(t, 20.0, testutil.ToFloat64(m.decodeBytes.WithLabelValues("point")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("encode", "color")))
}

// ============================================================================
// Session Integration
// ============================================================================

func TestCodecMetricsFromSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCodecMetricsWith(reg).(*codecMetrics)

	xreg := xdr.NewRegistry(xdr.WithMetrics(m))
	buf, err := xreg.NewWriter().WriteInt32(7).WriteString("abc").Bytes()
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.encodeSessions))

	r := xreg.NewReader(buf)
	_, err = r.Decode("int")
	require.NoError(t, err)
	_, err = r.Decode("string")
	require.NoError(t, err)
	_, err = r.Decode("int")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodeTotal.WithLabelValues("int")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.decodeBytes.WithLabelValues("string")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("decode", "int")))
}
