package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	require.Equal(t, "CenterTable", KindCenterTable.String())
	require.Equal(t, "PolyFit", KindPolyFit.String())
	require.Equal(t, "Unknown", Kind(0).String())
}

func TestCompressionTypeString(t *testing.T) {
	tests := map[CompressionType]string{
		CompressionNone:     "None",
		CompressionZstd:     "Zstd",
		CompressionS2:       "S2",
		CompressionLZ4:      "LZ4",
		CompressionType(99): "Unknown",
	}

	for c, want := range tests {
		require.Equal(t, want, c.String())
	}
}
