// Package section defines the fixed 32-byte header at the start of every trapdc archive.
//
// Layout (multi-byte fields use the byte order selected by the endianness bit, except
// the options field which is always little-endian so the bit can be read first):
//
//	offset  size  field
//	0       2     options: magic number (bits 4-15), endianness (bit 1)
//	2       1     kind (format.Kind)
//	3       1     compression (format.CompressionType)
//	4       4     dims: table rows or polynomial axes
//	8       4     count: table columns or polynomial coefficients
//	12      4     raw payload size in bytes
//	16      4     stored (compressed) payload size in bytes
//	20      4     reserved, zero
//	24      8     xxHash64 checksum of the raw payload
package section

import (
	"fmt"

	"github.com/arloliu/trapdc/endian"
	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/format"
)

// Header is the archive header.
type Header struct {
	// Options packs the magic number and the endianness flag.
	Options uint16 // byte offset 0-1
	// Kind is the payload kind.
	Kind format.Kind // byte offset 2
	// Compression is the payload codec.
	Compression format.CompressionType // byte offset 3
	// Dims is the number of rows (center table) or axes (polynomial).
	Dims uint32 // byte offset 4-7
	// Count is the number of columns (center table) or coefficients (polynomial).
	Count uint32 // byte offset 8-11
	// RawSize is the payload size before compression.
	RawSize uint32 // byte offset 12-15
	// StoredSize is the payload size as stored after the header.
	StoredSize uint32 // byte offset 16-19
	// Checksum is the xxHash64 of the raw payload.
	Checksum uint64 // byte offset 24-31
}

// NewHeader creates a little-endian header for kind and compression.
func NewHeader(kind format.Kind, compression format.CompressionType) *Header {
	return &Header{
		Options:     MagicArchiveV1,
		Kind:        kind,
		Compression: compression,
	}
}

// IsBigEndian reports whether payload fields are big-endian.
func (h *Header) IsBigEndian() bool {
	return h.Options&EndiannessMask != 0
}

// WithBigEndian switches the header and payload byte order to big-endian.
func (h *Header) WithBigEndian() {
	h.Options |= EndiannessMask
}

// WithLittleEndian switches the header and payload byte order to little-endian.
func (h *Header) WithLittleEndian() {
	h.Options &^= EndiannessMask
}

// GetEndianEngine returns the engine for the header's byte order.
func (h *Header) GetEndianEngine() endian.EndianEngine {
	return endian.FromFlag(h.IsBigEndian())
}

// Validate checks the magic number, reserved bits, kind and compression.
func (h *Header) Validate() error {
	if h.Options&MagicNumberMask != MagicArchiveV1 {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, h.Options&MagicNumberMask)
	}
	if h.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bits set (0x%04X)", errs.ErrInvalidMagicNumber, h.Options)
	}

	switch h.Kind {
	case format.KindCenterTable, format.KindPolyFit:
	default:
		return fmt.Errorf("%w: kind 0x%02X", errs.ErrUnsupportedKind, uint8(h.Kind))
	}

	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("%w: compression 0x%02X", errs.ErrInvalidPayload, uint8(h.Compression))
	}

	return nil
}

// Parse parses the header from exactly HeaderSize bytes.
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or Validate errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	h.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Kind = format.Kind(data[2])
	h.Compression = format.CompressionType(data[3])

	engine := h.GetEndianEngine()
	h.Dims = engine.Uint32(data[4:8])
	h.Count = engine.Uint32(data[8:12])
	h.RawSize = engine.Uint32(data[12:16])
	h.StoredSize = engine.Uint32(data[16:20])
	h.Checksum = engine.Uint64(data[24:32])

	return h.Validate()
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Options)
	b[1] = byte(h.Options >> 8)
	b[2] = byte(h.Kind)
	b[3] = byte(h.Compression)

	engine := h.GetEndianEngine()
	engine.PutUint32(b[4:8], h.Dims)
	engine.PutUint32(b[8:12], h.Count)
	engine.PutUint32(b[12:16], h.RawSize)
	engine.PutUint32(b[16:20], h.StoredSize)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// ParseHeader parses a Header from the start of data.
//
// Returns:
//   - Header: Parsed header
//   - error: ErrInvalidHeaderSize if data is shorter than HeaderSize, or Validate errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes, want at least %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
