package global

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.005, 1.0},  // 1.005 is stored just below 1.005
		{1.015, 1.01}, // same binary-representation effect
		{16.9915, 16.99},
		{45.125, 45.13},
		{90.0, 90.0},
	}

	for _, tt := range tests {
		require.InDelta(t, tt.want, Round2(tt.in), 1e-9, "Round2(%v)", tt.in)
	}
}
