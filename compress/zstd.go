package compress

// ZstdCompressor is the Zstandard codec, the archive default.
//
// The implementation is chosen at build time: klauspost/compress by default, or the
// cgo valyala/gozstd binding when built with cgo and the gozstd tag. Both produce
// standard zstd frames, so archives are readable by either build.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstandard codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
