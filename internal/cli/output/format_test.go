package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "table", input: "table", want: FormatTable},
		{name: "empty defaults to table", input: "", want: FormatTable},
		{name: "json", input: "json", want: FormatJSON},
		{name: "JSON uppercase", input: "JSON", want: FormatJSON},
		{name: "yaml", input: "yaml", want: FormatYAML},
		{name: "yml alias", input: "yml", want: FormatYAML},
		{name: "whitespace trimmed", input: "  table  ", want: FormatTable},
		{name: "invalid format", input: "xdr", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ============================================================================
// Printer Tests
// ============================================================================

type hexString string

func (h hexString) String() string { return "0x" + string(h) }

func TestPrinterTableFormat(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, nil, FormatTable, false).Print("00000001"))
		assert.Equal(t, "00000001\n", buf.String())
	})

	t.Run("Stringer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, nil, FormatTable, false).Print(hexString("ff")))
		assert.Equal(t, "0xff\n", buf.String())
	})

	t.Run("FallsBackToJSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, nil, FormatTable, false).Print([]int{1, 2}))
		assert.JSONEq(t, `[1,2]`, buf.String())
	})

	t.Run("Table", func(t *testing.T) {
		var buf bytes.Buffer
		td := NewTableData("name", "kind")
		td.AddRow("int", "scalar")
		require.NoError(t, NewPrinter(&buf, nil, FormatTable, false).Print(td))
		assert.Contains(t, buf.String(), "NAME")
		assert.Contains(t, buf.String(), "scalar")
	})
}

func TestPrinterStructuredFormats(t *testing.T) {
	data := map[string]any{"name": "a<b", "width": 4}

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, nil, FormatJSON, false).Print(data))
		assert.Contains(t, buf.String(), `"a<b"`)

		var back map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
		assert.Equal(t, float64(4), back["width"])
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, nil, FormatYAML, false).Print(data))

		var back map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
		assert.Equal(t, 4, back["width"])
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		assert.Error(t, NewPrinter(new(bytes.Buffer), nil, Format("xml"), false).Print(data))
	})
}

func TestPrinterWarnings(t *testing.T) {
	var out, diag bytes.Buffer
	p := NewPrinter(&out, &diag, FormatJSON, false)

	p.Warnf("%d trailing bytes", 4)
	assert.Empty(t, out.String())
	assert.Equal(t, "warning: 4 trailing bytes\n", diag.String())

	diag.Reset()
	NewPrinter(&out, &diag, FormatJSON, true).Warnf("x")
	assert.Contains(t, diag.String(), "\033[33m")
}
