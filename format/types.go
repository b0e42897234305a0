// Package format defines the enumerations stored in trapdc archive headers.
package format

type (
	// Kind identifies what an archive payload holds.
	Kind uint8
	// CompressionType identifies the codec applied to an archive payload.
	CompressionType uint8
)

const (
	KindCenterTable Kind = 0x1 // KindCenterTable is a 2 x N center lookup table.
	KindPolyFit     Kind = 0x2 // KindPolyFit is a fitted polynomial: orders then coefficients.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (k Kind) String() string {
	switch k {
	case KindCenterTable:
		return "CenterTable"
	case KindPolyFit:
		return "PolyFit"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
