package cmdutil

import (
	"bytes"
	"testing"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
		wantErr  bool
	}{
		{name: "plain", input: "0000002a", expected: []byte{0, 0, 0, 0x2a}},
		{name: "prefixed", input: "0x0000002a", expected: []byte{0, 0, 0, 0x2a}},
		{name: "grouped words", input: "00000001 41000000", expected: []byte{0, 0, 0, 1, 0x41, 0, 0, 0}},
		{name: "colon separated", input: "de:ad:be:ef", expected: []byte{0xde, 0xad, 0xbe, 0xef}},
		{name: "multi line", input: "dead\nbeef\n", expected: []byte{0xde, 0xad, 0xbe, 0xef}},
		{name: "empty", input: "", expected: []byte{}},
		{name: "odd length", input: "abc", wantErr: true},
		{name: "not hex", input: "zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DecodeHex(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("DecodeHex(%q) expected error, got %x", tt.input, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeHex(%q) unexpected error: %v", tt.input, err)
			}
			if !bytes.Equal(result, tt.expected) {
				t.Errorf("DecodeHex(%q) = %x, want %x", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEmptyOr(t *testing.T) {
	tests := []struct {
		value    string
		fallback string
		expected string
	}{
		{"", "-", "-"},
		{"value", "-", "value"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := EmptyOr(tt.value, tt.fallback); result != tt.expected {
				t.Errorf("EmptyOr(%q, %q) = %q, want %q", tt.value, tt.fallback, result, tt.expected)
			}
		})
	}
}

func TestColorEnabled(t *testing.T) {
	saved := *Flags
	t.Cleanup(func() { *Flags = saved })

	Flags.NoColor = true
	if ColorEnabled() {
		t.Error("ColorEnabled() = true with --no-color")
	}

	Flags.NoColor = false
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled() {
		t.Error("ColorEnabled() = true with NO_COLOR set")
	}
}
