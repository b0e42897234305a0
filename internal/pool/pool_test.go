package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFloat64Slice(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetFloat64Slice(100)
		defer cleanup()

		require.Len(t, slice, 100)
		require.GreaterOrEqual(t, cap(slice), 100)
	})

	t.Run("returned slice is zeroed", func(t *testing.T) {
		slice, cleanup := GetFloat64Slice(16)
		for i := range slice {
			slice[i] = float64(i + 1)
		}
		cleanup()

		again, cleanup2 := GetFloat64Slice(8)
		defer cleanup2()
		for _, v := range again {
			require.Zero(t, v)
		}
	})

	t.Run("grows when capacity is insufficient", func(t *testing.T) {
		_, cleanup := GetFloat64Slice(4)
		cleanup()

		slice, cleanup2 := GetFloat64Slice(1000)
		defer cleanup2()
		require.Len(t, slice, 1000)
	})
}

func TestByteBuffer(t *testing.T) {
	t.Run("extend and write", func(t *testing.T) {
		bb := GetBuffer()
		defer PutBuffer(bb)

		require.Equal(t, 0, bb.Len())
		tail := bb.Extend(4)
		copy(tail, []byte{1, 2, 3, 4})
		n, err := bb.Write([]byte{5, 6})
		require.NoError(t, err)
		require.Equal(t, 2, n)
		require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, bb.Bytes())
	})

	t.Run("grow beyond default size", func(t *testing.T) {
		bb := &ByteBuffer{}
		bb.Grow(ArchiveBufferDefaultSize * 2)
		require.GreaterOrEqual(t, cap(bb.B), ArchiveBufferDefaultSize*2)
		require.Equal(t, 0, bb.Len())
	})

	t.Run("reset keeps capacity", func(t *testing.T) {
		bb := &ByteBuffer{}
		bb.Extend(100)
		c := cap(bb.B)
		bb.Reset()
		require.Equal(t, 0, bb.Len())
		require.Equal(t, c, cap(bb.B))
	})

	t.Run("oversized buffers are not pooled", func(t *testing.T) {
		bb := &ByteBuffer{B: make([]byte, 0, ArchiveBufferMaxThreshold+1)}
		require.NotPanics(t, func() { PutBuffer(bb) })
		require.NotPanics(t, func() { PutBuffer(nil) })
	})
}
