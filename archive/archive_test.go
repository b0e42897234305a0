package archive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/trapdc/centers"
	"github.com/arloliu/trapdc/encoding"
	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/fitting"
	"github.com/arloliu/trapdc/format"
	"github.com/arloliu/trapdc/index"
	"github.com/arloliu/trapdc/section"
)

var compressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func testTable(t *testing.T, n int) *centers.Table {
	t.Helper()

	ys := make([]float64, n)
	zs := make([]float64, n)
	for i := range n {
		x := float64(i) / float64(n)
		ys[i] = 0.02 * math.Sin(4*x)
		zs[i] = 0.07 + 0.001*x*x
	}

	table, err := centers.NewTable(ys, zs)
	require.NoError(t, err)

	return table
}

func testPoly(t *testing.T) *fitting.PolyFitResult {
	t.Helper()

	orders := index.Shape{3, 2, 1}
	coeffs := make([]float64, orders.AddScalar(1).Len())
	for k := range coeffs {
		coeffs[k] = float64(k%5) - 1.75
	}

	r, err := fitting.NewPolyFitResult(orders, coeffs)
	require.NoError(t, err)

	return r
}

func TestCenterTableRoundTrip(t *testing.T) {
	table := testTable(t, 500)
	wantY, err := table.Row(0)
	require.NoError(t, err)
	wantZ, err := table.Row(1)
	require.NoError(t, err)

	for _, ct := range compressions {
		for _, big := range []bool{false, true} {
			name := ct.String() + "/little"
			opts := []Option{WithCompression(ct)}
			if big {
				name = ct.String() + "/big"
				opts = append(opts, WithBigEndian())
			}

			t.Run(name, func(t *testing.T) {
				data, err := EncodeCenterTable(table, opts...)
				require.NoError(t, err)

				header, err := section.ParseHeader(data)
				require.NoError(t, err)
				require.Equal(t, format.KindCenterTable, header.Kind)
				require.Equal(t, ct, header.Compression)
				require.Equal(t, big, header.IsBigEndian())
				require.Equal(t, uint32(500), header.Count)

				got, err := DecodeCenterTable(data)
				require.NoError(t, err)
				require.Equal(t, table.Len(), got.Len())

				gotY, err := got.Row(0)
				require.NoError(t, err)
				gotZ, err := got.Row(1)
				require.NoError(t, err)
				require.Equal(t, wantY, gotY)
				require.Equal(t, wantZ, gotZ)

				y, z := got.Get(123.4)
				wy, wz := table.Get(123.4)
				require.Equal(t, wy, y)
				require.Equal(t, wz, z)
			})
		}
	}
}

func TestPolyFitRoundTrip(t *testing.T) {
	poly := testPoly(t)

	for _, ct := range compressions {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := EncodePolyFit(poly, WithCompression(ct), WithBigEndian(), WithLittleEndian())
			require.NoError(t, err)

			header, err := section.ParseHeader(data)
			require.NoError(t, err)
			require.False(t, header.IsBigEndian())
			require.Equal(t, uint32(3), header.Dims)
			require.Equal(t, uint32(24), header.Count)

			got, err := DecodePolyFit(data)
			require.NoError(t, err)
			require.Equal(t, poly.Orders(), got.Orders())
			require.Equal(t, poly.Coefficients(), got.Coefficients())

			want, err := poly.Eval(0.3, -1.2, 2)
			require.NoError(t, err)
			v, err := got.Eval(0.3, -1.2, 2)
			require.NoError(t, err)
			require.Equal(t, want, v)
		})
	}
}

func TestDefaultCompressionIsZstd(t *testing.T) {
	data, err := EncodePolyFit(testPoly(t))
	require.NoError(t, err)

	header, err := section.ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, header.Compression)
}

func TestDecodeErrors(t *testing.T) {
	table := testTable(t, 64)
	data, err := EncodeCenterTable(table, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	t.Run("short", func(t *testing.T) {
		_, err := DecodeCenterTable(data[:16])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[1] ^= 0xFF
		_, err := DecodeCenterTable(bad)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("wrong kind", func(t *testing.T) {
		_, err := DecodePolyFit(data)
		require.ErrorIs(t, err, errs.ErrUnsupportedKind)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := DecodeCenterTable(data[:len(data)-8])
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("checksum", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[section.PayloadOffset+17] ^= 0x01
		_, err := DecodeCenterTable(bad)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("corrupt compressed payload", func(t *testing.T) {
		zdata, err := EncodeCenterTable(table, WithCompression(format.CompressionS2))
		require.NoError(t, err)

		bad := append([]byte(nil), zdata...)
		for i := section.PayloadOffset; i < len(bad); i++ {
			bad[i] = 0xFF
		}
		_, err = DecodeCenterTable(bad)
		require.Error(t, err)
	})
}

// polyArchive seals a polynomial payload with arbitrary orders and coefficients.
func polyArchive(t *testing.T, orders []uint32, coeffs []float64) []byte {
	t.Helper()

	header := section.NewHeader(format.KindPolyFit, format.CompressionNone)
	enc := encoding.NewFloat64Encoder(header.GetEndianEngine())
	defer enc.Finish()

	for _, o := range orders {
		enc.WriteUint32(o)
	}
	enc.WriteSlice(coeffs)
	header.Dims = uint32(len(orders))
	header.Count = uint32(len(coeffs))

	data, err := seal(header, enc.Bytes())
	require.NoError(t, err)

	return data
}

func TestDecodePolyFitTermCount(t *testing.T) {
	t.Run("huge orders", func(t *testing.T) {
		data := polyArchive(t, []uint32{1 << 31, 1 << 31}, []float64{1})
		require.NotPanics(t, func() {
			_, err := DecodePolyFit(data)
			require.ErrorIs(t, err, errs.ErrInvalidPayload)
			require.ErrorIs(t, err, errs.ErrInvalidShape)
		})
	})

	t.Run("count mismatch", func(t *testing.T) {
		data := polyArchive(t, []uint32{1, 1}, []float64{1, 2, 3})
		_, err := DecodePolyFit(data)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
		require.ErrorContains(t, err, "need 4 coefficients")
	})

	t.Run("consistent", func(t *testing.T) {
		data := polyArchive(t, []uint32{1, 1}, []float64{1, 2, 3, 4})
		got, err := DecodePolyFit(data)
		require.NoError(t, err)
		require.Equal(t, index.Shape{1, 1}, got.Orders())
	})
}

func TestInvalidCompressionOption(t *testing.T) {
	_, err := EncodeCenterTable(testTable(t, 4), WithCompression(format.CompressionType(9)))
	require.ErrorIs(t, err, errs.ErrInvalidOption)

	_, err = EncodePolyFit(testPoly(t), WithCompression(0))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}
