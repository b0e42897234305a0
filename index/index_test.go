package index

import (
	"fmt"
	"slices"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/trapdc/errs"
)

func TestShape(t *testing.T) {
	t.Run("Len is the product of dimensions", func(t *testing.T) {
		require.Equal(t, 2, Shape{2}.Len())
		require.Equal(t, 8, Shape{2, 4}.Len())
		require.Equal(t, 24, Shape{2, 3, 4}.Len())
		require.Equal(t, 0, Shape{}.Len())
	})

	t.Run("Validate rejects empty and non-positive shapes", func(t *testing.T) {
		require.NoError(t, Shape{1, 2}.Validate())
		require.ErrorIs(t, Shape{}.Validate(), errs.ErrInvalidShape)
		require.ErrorIs(t, Shape{2, 0}.Validate(), errs.ErrInvalidShape)
		require.ErrorIs(t, Shape{-1}.Validate(), errs.ErrInvalidShape)
	})

	t.Run("helpers", func(t *testing.T) {
		s := Shape{1, 2, 3}
		require.Equal(t, Shape{3, 2, 1}, s.Reversed())
		require.Equal(t, Shape{2, 3, 4}, s.AddScalar(1))
		require.Equal(t, Shape{1, 2, 3}, s, "helpers must not mutate the receiver")
		require.Equal(t, "(1, 2, 3)", s.String())
		require.True(t, s.Equal(Shape{1, 2, 3}))
		require.False(t, s.Equal(Shape{1, 2}))
	})
}

func TestLinearIndices(t *testing.T) {
	t.Run("one axis", func(t *testing.T) {
		lidx, err := NewLinearIndices(Shape{2})
		require.NoError(t, err)
		require.Equal(t, 2, lidx.Len())

		v, err := lidx.At(0)
		require.NoError(t, err)
		require.Equal(t, 0, v)
		v, err = lidx.At(1)
		require.NoError(t, err)
		require.Equal(t, 1, v)

		require.Equal(t, []int{0, 1}, slices.Collect(lidx.All()))
		require.Equal(t, []int{1, 0}, slices.Collect(lidx.Backward()))
	})

	t.Run("two axes", func(t *testing.T) {
		lidx, err := NewLinearIndices(Shape{2, 4})
		require.NoError(t, err)
		require.Equal(t, 8, lidx.Len())

		for i := range 8 {
			v, err := lidx.At(i)
			require.NoError(t, err)
			require.Equal(t, i, v)
		}
		for i := range 2 {
			for j := range 4 {
				v, err := lidx.Offset(i, j)
				require.NoError(t, err)
				require.Equal(t, i*4+j, v)
			}
		}
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, slices.Collect(lidx.All()))
		require.Equal(t, []int{7, 6, 5, 4, 3, 2, 1, 0}, slices.Collect(lidx.Backward()))
	})

	t.Run("three axes", func(t *testing.T) {
		lidx, err := NewLinearIndices(Shape{2, 3, 4})
		require.NoError(t, err)
		require.Equal(t, 24, lidx.Len())

		for i := range 2 {
			for j := range 3 {
				for k := range 4 {
					v, err := lidx.Offset(i, j, k)
					require.NoError(t, err)
					require.Equal(t, i*3*4+j*4+k, v)
				}
			}
		}

		forward := slices.Collect(lidx.All())
		backward := slices.Collect(lidx.Backward())
		slices.Reverse(backward)
		require.Equal(t, forward, backward)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := NewLinearIndices(Shape{})
		require.ErrorIs(t, err, errs.ErrInvalidShape)

		lidx, err := NewLinearIndices(Shape{2, 3})
		require.NoError(t, err)

		_, err = lidx.At(6)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		_, err = lidx.At(-1)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		_, err = lidx.Offset(2, 0)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		_, err = lidx.Offset(1)
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})
}

func TestCartesianIndices(t *testing.T) {
	t.Run("row-major order", func(t *testing.T) {
		cidx, err := NewCartesianIndices(Shape{2, 3})
		require.NoError(t, err)

		var got [][]int
		for _, idx := range cidx.All() {
			got = append(got, idx)
		}
		want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
		if diff := pretty.Compare(got, want); diff != "" {
			t.Errorf("forward iteration mismatch (-got +want):\n%s", diff)
		}
	})

	t.Run("iteration matches At", func(t *testing.T) {
		cidx, err := NewCartesianIndices(Shape{3, 1, 2})
		require.NoError(t, err)

		for flat, idx := range cidx.All() {
			want, err := cidx.At(flat)
			require.NoError(t, err)
			require.Equal(t, want, idx)
		}
		for flat, idx := range cidx.Backward() {
			want, err := cidx.At(flat)
			require.NoError(t, err)
			require.Equal(t, want, idx)
		}
	})

	t.Run("errors", func(t *testing.T) {
		_, err := NewCartesianIndices(Shape{3, 0})
		require.ErrorIs(t, err, errs.ErrInvalidShape)

		cidx, err := NewCartesianIndices(Shape{2, 2})
		require.NoError(t, err)
		_, err = cidx.At(4)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		require.ErrorIs(t, cidx.AtTo(make([]int, 3), 0), errs.ErrShapeMismatch)
	})
}

func TestEnumeratorsAgree(t *testing.T) {
	shapes := []Shape{{2}, {2, 4}, {2, 3, 4}, {5, 1, 3, 2}}

	for _, shape := range shapes {
		t.Run(shape.String(), func(t *testing.T) {
			lidx, err := NewLinearIndices(shape)
			require.NoError(t, err)
			cidx, err := NewCartesianIndices(shape)
			require.NoError(t, err)

			require.Equal(t, shape.Len(), lidx.Len())
			require.Equal(t, shape.Len(), cidx.Len())

			for k := range cidx.Len() {
				multi, err := cidx.At(k)
				require.NoError(t, err)
				flat, err := lidx.Offset(multi...)
				require.NoError(t, err)
				require.Equal(t, k, flat, "round trip of %v", multi)
			}

			var forward, backward [][]int
			for _, idx := range cidx.All() {
				forward = append(forward, idx)
			}
			for _, idx := range cidx.Backward() {
				backward = append(backward, idx)
			}
			slices.Reverse(backward)
			if diff := pretty.Compare(backward, forward); diff != "" {
				t.Errorf("reversed iteration is not the reverse of forward iteration:\n%s", diff)
			}
		})
	}
}

func TestCartesianIndices_EarlyStop(t *testing.T) {
	cidx, err := NewCartesianIndices(Shape{4, 4})
	require.NoError(t, err)

	count := 0
	for flat := range cidx.All() {
		if flat == 5 {
			break
		}
		count++
	}
	require.Equal(t, 5, count)
}

func ExampleCartesianIndices_All() {
	cidx, _ := NewCartesianIndices(Shape{2, 2})
	for flat, idx := range cidx.All() {
		fmt.Println(flat, idx)
	}

	// Output:
	// 0 [0 0]
	// 1 [0 1]
	// 2 [1 0]
	// 3 [1 1]
}
