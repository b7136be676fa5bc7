package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCore_FormatRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0 B/s"},
		{12.34, "12.3 B/s"},
		{99.94, "99.9 B/s"},
		{512, "512 B/s"},
		{1023, "1023 B/s"},
		{1024, "1.0 KB/s"},
		{1536, "1.5 KB/s"},
		{153600, "150 KB/s"},
		{1048575, "1024 KB/s"},
		{1048576, "1.0 MB/s"},
		{1_048_000, "1023 KB/s"},
		{2_048_000, "2.0 MB/s"},
		{10 * 1024 * 1024, "10.0 MB/s"},
		{1024 * 1024 * 1024, "1.0 GB/s"},
		{250 * 1024 * 1024 * 1024, "250 GB/s"},
		{100.5, "101 B/s"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatRate(tt.in), "FormatRate(%v)", tt.in)
	}
}

func TestCore_FormatRate_Idempotent(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0, 1023, 1024, 153600, 7_777_777} {
		require.Equal(t, FormatRate(v), FormatRate(v))
	}
}
