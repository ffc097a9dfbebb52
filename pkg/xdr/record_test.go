package xdr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRecord(t *testing.T) {
	t.Run("KeepsInsertionOrder", func(t *testing.T) {
		r := NewRecord().Set("b", 1).Set("a", 2).Set("b", 3)
		assert.Equal(t, []string{"b", "a"}, r.Fields())
		assert.Equal(t, 2, r.Len())

		v, ok := r.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 3, v)
	})

	t.Run("FieldsAreCopies", func(t *testing.T) {
		r := RecordOf("x", 1)
		f := r.Fields()
		f[0] = "y"
		assert.Equal(t, []string{"x"}, r.Fields())

		m := r.Map()
		m["z"] = 2
		_, ok := r.Get("z")
		assert.False(t, ok)
	})

	t.Run("EqualIsOrderSensitive", func(t *testing.T) {
		a := RecordOf("x", 1, "y", 2)
		b := RecordOf("y", 2, "x", 1)
		assert.False(t, a.Equal(b))
		assert.True(t, a.Equal(RecordOf("x", 1, "y", 2)))
		assert.True(t, RecordOf("n", RecordOf("x", 1)).Equal(RecordOf("n", RecordOf("x", 1))))

		var nilRec *Record
		assert.True(t, nilRec.Equal(nil))
		assert.False(t, a.Equal(nil))
	})

	t.Run("RecordOfRequiresPairs", func(t *testing.T) {
		assert.Panics(t, func() { RecordOf("x") })
	})
}

func TestRecordMarshal(t *testing.T) {
	rec := RecordOf("zeta", int32(1), "alpha", "A", "inner", RecordOf("b", true, "a", uint32(2)))

	t.Run("JSONKeepsFieldOrder", func(t *testing.T) {
		out, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.Equal(t, `{"zeta":1,"alpha":"A","inner":{"b":true,"a":2}}`, string(out))
	})

	t.Run("EmptyJSON", func(t *testing.T) {
		out, err := json.Marshal(NewRecord())
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(out))
	})

	t.Run("YAMLKeepsFieldOrder", func(t *testing.T) {
		out, err := yaml.Marshal(rec)
		require.NoError(t, err)
		assert.Equal(t, "zeta: 1\nalpha: A\ninner:\n    b: true\n    a: 2\n", string(out))
	})
}
