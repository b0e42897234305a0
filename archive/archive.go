// Package archive persists center tables and fitted polynomials in a compact binary form.
//
// An archive is a 32-byte section.Header followed by the stored payload. The raw payload
// is a sequence of fixed-width fields in the header's byte order:
//
//   - Center table: row 0 then row 1, N float64 values each.
//   - Polynomial: one uint32 order per axis, then prod(orders+1) float64 coefficients.
//
// The raw payload is compressed with the header's codec and protected by an xxHash64
// checksum, verified on decode.
//
//	data, err := archive.EncodeCenterTable(table, archive.WithCompression(format.CompressionZstd))
//	if err != nil {
//	    return err
//	}
//	table, err = archive.DecodeCenterTable(data)
package archive

import (
	"fmt"
	"math"

	"github.com/arloliu/trapdc/centers"
	"github.com/arloliu/trapdc/compress"
	"github.com/arloliu/trapdc/encoding"
	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/fitting"
	"github.com/arloliu/trapdc/format"
	"github.com/arloliu/trapdc/index"
	"github.com/arloliu/trapdc/internal/hash"
	"github.com/arloliu/trapdc/section"
)

// EncodeCenterTable serializes table.
//
// Parameters:
//   - table: The table to store
//   - opts: WithCompression, WithBigEndian, WithLittleEndian
//
// Returns:
//   - []byte: The archive
//   - error: ErrInvalidOption for bad options, or codec errors
func EncodeCenterTable(table *centers.Table, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	header := cfg.header(format.KindCenterTable)
	enc := encoding.NewFloat64Encoder(header.GetEndianEngine())
	defer enc.Finish()

	for i := range 2 {
		row, err := table.Row(i)
		if err != nil {
			return nil, err
		}
		enc.WriteSlice(row)
	}

	header.Dims = 2
	header.Count = uint32(table.Len())

	return seal(header, enc.Bytes())
}

// DecodeCenterTable restores a table written by EncodeCenterTable.
//
// Returns:
//   - *centers.Table: The table
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber, ErrUnsupportedKind,
//     ErrInvalidPayload or ErrChecksumMismatch for malformed archives
func DecodeCenterTable(data []byte) (*centers.Table, error) {
	header, raw, err := open(data, format.KindCenterTable)
	if err != nil {
		return nil, err
	}

	n := int(header.Count)
	if header.Dims != 2 || n == 0 || len(raw) != 2*n*8 {
		return nil, fmt.Errorf("%w: center table of %d x %d in %d bytes",
			errs.ErrInvalidPayload, header.Dims, header.Count, len(raw))
	}

	values := make([]float64, 2*n)
	dec := encoding.NewFloat64Decoder(header.GetEndianEngine())
	if err := dec.DecodeTo(values, raw); err != nil {
		return nil, err
	}

	return centers.NewTable(values[:n], values[n:])
}

// EncodePolyFit serializes a fitted polynomial.
//
// Parameters:
//   - result: The polynomial to store
//   - opts: WithCompression, WithBigEndian, WithLittleEndian
//
// Returns:
//   - []byte: The archive
//   - error: ErrInvalidOption for bad options, or codec errors
func EncodePolyFit(result *fitting.PolyFitResult, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	header := cfg.header(format.KindPolyFit)
	enc := encoding.NewFloat64Encoder(header.GetEndianEngine())
	defer enc.Finish()

	orders := result.Orders()
	for _, o := range orders {
		if uint64(o) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: order %d does not fit the archive format", errs.ErrInvalidShape, o)
		}
		enc.WriteUint32(uint32(o))
	}
	enc.WriteSlice(result.Coefficients())

	header.Dims = uint32(len(orders))
	header.Count = uint32(result.NumTerms())

	return seal(header, enc.Bytes())
}

// DecodePolyFit restores a polynomial written by EncodePolyFit.
//
// Returns:
//   - *fitting.PolyFitResult: The polynomial
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber, ErrUnsupportedKind,
//     ErrInvalidPayload or ErrChecksumMismatch for malformed archives
func DecodePolyFit(data []byte) (*fitting.PolyFitResult, error) {
	header, raw, err := open(data, format.KindPolyFit)
	if err != nil {
		return nil, err
	}

	ndim, count := int(header.Dims), int(header.Count)
	if ndim == 0 || len(raw) != ndim*4+count*8 {
		return nil, fmt.Errorf("%w: polynomial of %d axes and %d terms in %d bytes",
			errs.ErrInvalidPayload, ndim, count, len(raw))
	}

	dec := encoding.NewFloat64Decoder(header.GetEndianEngine())
	orders := make(index.Shape, ndim)
	for axis := range orders {
		o, _ := dec.Uint32(raw, axis*4)
		orders[axis] = int(o)
	}

	terms, err := fitting.NumTerms(orders)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}
	if terms != count {
		return nil, fmt.Errorf("%w: orders %s need %d coefficients, archive holds %d",
			errs.ErrInvalidPayload, orders, terms, count)
	}

	coeffs := make([]float64, count)
	if err := dec.DecodeTo(coeffs, raw[ndim*4:]); err != nil {
		return nil, err
	}

	result, err := fitting.NewPolyFitResult(orders, coeffs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}

	return result, nil
}

// seal checksums and compresses raw, returning header bytes followed by the payload.
func seal(header *section.Header, raw []byte) ([]byte, error) {
	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, err
	}

	stored, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress %s payload: %w", header.Kind, err)
	}
	if uint64(len(raw)) > math.MaxUint32 || uint64(len(stored)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %s payload of %d bytes is too large", errs.ErrInvalidPayload, header.Kind, len(raw))
	}

	header.RawSize = uint32(len(raw))
	header.StoredSize = uint32(len(stored))
	header.Checksum = hash.Checksum(raw)

	out := make([]byte, 0, section.HeaderSize+len(stored))
	out = append(out, header.Bytes()...)
	out = append(out, stored...)

	return out, nil
}

// open parses and verifies an archive of the wanted kind and returns its raw payload.
func open(data []byte, want format.Kind) (section.Header, []byte, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return section.Header{}, nil, err
	}
	if header.Kind != want {
		return section.Header{}, nil, fmt.Errorf("%w: archive holds %s, want %s", errs.ErrUnsupportedKind, header.Kind, want)
	}

	stored := data[section.PayloadOffset:]
	if len(stored) != int(header.StoredSize) {
		return section.Header{}, nil, fmt.Errorf("%w: stored payload is %d bytes, header says %d",
			errs.ErrInvalidPayload, len(stored), header.StoredSize)
	}

	raw, err := decompress(header, stored)
	if err != nil {
		return section.Header{}, nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}
	if len(raw) != int(header.RawSize) {
		return section.Header{}, nil, fmt.Errorf("%w: raw payload is %d bytes, header says %d",
			errs.ErrInvalidPayload, len(raw), header.RawSize)
	}
	if sum := hash.Checksum(raw); sum != header.Checksum {
		return section.Header{}, nil, fmt.Errorf("%w: got 0x%016X, want 0x%016X", errs.ErrChecksumMismatch, sum, header.Checksum)
	}

	return header, raw, nil
}

func decompress(header section.Header, stored []byte) ([]byte, error) {
	// LZ4 blocks do not carry their size; the header does.
	if header.Compression == format.CompressionLZ4 {
		return compress.NewLZ4Compressor().DecompressSize(stored, int(header.RawSize))
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(stored)
}
