package compress

import (
	"fmt"

	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/format"
)

// maxDecompressedSize caps the output of a single Decompress call.
const maxDecompressedSize = 128 * 1024 * 1024

// Compressor compresses archive payloads.
type Compressor interface {
	// Compress returns the compressed form of data.
	//
	// The input is not modified. The result may alias data for codecs that do not
	// transform it (CompressionNone).
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores payloads written by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original bytes of data, or an error if data is corrupt or
	// was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression run, as reported by Measure.
type CompressionStats struct {
	// Algorithm identifies the codec used.
	Algorithm format.CompressionType
	// OriginalSize is the input size in bytes.
	OriginalSize int64
	// CompressedSize is the output size in bytes.
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, 0 for empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses data with the codec for compressionType and reports the sizes.
func Measure(compressionType format.CompressionType, data []byte) (CompressionStats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return CompressionStats{}, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return CompressionStats{}, err
	}

	return CompressionStats{
		Algorithm:      compressionType,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(out)),
	}, nil
}

// CreateCodec creates a new Codec for compressionType.
//
// Parameters:
//   - compressionType: None, Zstd, S2 or LZ4
//   - target: What the codec is for, used in the error message
//
// Returns:
//   - Codec: The codec
//   - error: ErrInvalidPayload for an unknown compression type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression: %s", errs.ErrInvalidPayload, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type: %s", errs.ErrInvalidPayload, compressionType)
}
