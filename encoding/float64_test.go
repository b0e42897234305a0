package encoding

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/trapdc/endian"
	"github.com/arloliu/trapdc/errs"
)

var testValues = []float64{0, 1.5, -2.25, math.Pi, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(-1)}

func engines() map[string]endian.EndianEngine {
	return map[string]endian.EndianEngine{
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}
}

func TestFloat64EncoderDecoder(t *testing.T) {
	for name, engine := range engines() {
		t.Run(name, func(t *testing.T) {
			enc := NewFloat64Encoder(engine)
			defer enc.Finish()

			enc.Write(testValues[0])
			enc.WriteSlice(testValues[1:])
			require.Equal(t, len(testValues), enc.Len())
			require.Equal(t, 8*len(testValues), enc.Size())

			payload := slices.Clone(enc.Bytes())
			dec := NewFloat64Decoder(engine)

			got := make([]float64, len(testValues))
			require.NoError(t, dec.DecodeTo(got, payload))
			require.Equal(t, testValues, got)

			require.Equal(t, testValues, slices.Collect(dec.All(payload, len(testValues))))

			v, ok := dec.At(payload, 3, len(testValues))
			require.True(t, ok)
			require.Equal(t, math.Pi, v)

			_, ok = dec.At(payload, len(testValues), len(testValues))
			require.False(t, ok)
		})
	}
}

func TestFloat64ByteOrder(t *testing.T) {
	le := NewFloat64Encoder(endian.GetLittleEndianEngine())
	defer le.Finish()
	be := NewFloat64Encoder(endian.GetBigEndianEngine())
	defer be.Finish()

	le.Write(1)
	be.Write(1)

	// 1.0 is 0x3FF0000000000000.
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xF0, 0x3F}, le.Bytes())
	require.Equal(t, []byte{0x3F, 0xF0, 0, 0, 0, 0, 0, 0}, be.Bytes())
}

func TestFloat64Uint32Fields(t *testing.T) {
	for name, engine := range engines() {
		t.Run(name, func(t *testing.T) {
			enc := NewFloat64Encoder(engine)
			defer enc.Finish()

			enc.WriteUint32(3)
			enc.WriteUint32(7)
			enc.Write(2.5)
			require.Equal(t, 1, enc.Len())
			require.Equal(t, 16, enc.Size())

			dec := NewFloat64Decoder(engine)
			payload := enc.Bytes()

			o, ok := dec.Uint32(payload, 0)
			require.True(t, ok)
			require.Equal(t, uint32(3), o)
			o, ok = dec.Uint32(payload, 4)
			require.True(t, ok)
			require.Equal(t, uint32(7), o)
			_, ok = dec.Uint32(payload, 14)
			require.False(t, ok)

			got := make([]float64, 1)
			require.NoError(t, dec.DecodeTo(got, payload[8:]))
			require.Equal(t, 2.5, got[0])
		})
	}
}

func TestFloat64DecodeUnaligned(t *testing.T) {
	engine := endian.Native()
	enc := NewFloat64Encoder(engine)
	defer enc.Finish()
	enc.WriteSlice(testValues)

	shifted := append([]byte{0xFF}, enc.Bytes()...)
	got := make([]float64, len(testValues))
	require.NoError(t, NewFloat64Decoder(engine).DecodeTo(got, shifted[1:]))
	require.Equal(t, testValues, got)
}

func TestFloat64DecodeShortPayload(t *testing.T) {
	dec := NewFloat64Decoder(endian.GetLittleEndianEngine())

	err := dec.DecodeTo(make([]float64, 2), make([]byte, 15))
	require.ErrorIs(t, err, errs.ErrInvalidPayload)

	require.Empty(t, slices.Collect(dec.All(make([]byte, 15), 2)))
	require.NoError(t, dec.DecodeTo(nil, nil))
}

func TestFloat64EncoderLifecycle(t *testing.T) {
	enc := NewFloat64Encoder(endian.GetLittleEndianEngine())
	enc.WriteSlice([]float64{1, 2})
	enc.Reset()
	require.Equal(t, 0, enc.Len())
	require.Equal(t, 0, enc.Size())

	enc.Finish()
	require.Nil(t, enc.Bytes())
	require.Equal(t, 0, enc.Size())
	require.Panics(t, func() { enc.Write(1) })
	require.Panics(t, func() { enc.WriteSlice([]float64{1}) })
	require.Panics(t, func() { enc.WriteUint32(1) })
}
