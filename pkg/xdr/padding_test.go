package xdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaddingLength(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 3},
		{2, 2},
		{3, 1},
		{4, 0},
		{5, 3},
		{8, 0},
		{1023, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PaddingLength(tt.n), "PaddingLength(%d)", tt.n)
		assert.Zero(t, Align(tt.n)%4, "Align(%d) must be 4-byte aligned", tt.n)
		assert.Equal(t, tt.n+tt.want, Align(tt.n))
	}
}
