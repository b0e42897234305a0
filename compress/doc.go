// Package compress provides the payload codecs of trapdc archives.
//
// Each codec is selected by a format.CompressionType stored in the archive header:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	stored, err := codec.Compress(payload)
//
// Available codecs:
//   - None: payload stored as is
//   - Zstd: best ratio, the default for archives. Built on klauspost/compress; building
//     with cgo and the gozstd tag switches to the valyala/gozstd binding.
//   - S2: fast Snappy-compatible compression from klauspost/compress
//   - LZ4: fast block compression from pierrec/lz4
//
// Float64 payloads of smooth tracks compress modestly; tables with repeated values
// (clamped ends, zero coefficients) compress well.
//
// All codecs are stateless values and safe for concurrent use.
package compress
