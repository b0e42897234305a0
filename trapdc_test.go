package trapdc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/fitting"
	"github.com/arloliu/trapdc/grid"
	"github.com/arloliu/trapdc/index"
)

// TestFindFlatPoint verifies the wrapper solves a simple paraboloid
func TestFindFlatPoint(t *testing.T) {
	data, err := grid.Generate(index.Shape{10, 12}, func(idx []int) float64 {
		dx, dy := float64(idx[0])-3.25, float64(idx[1])-7.5
		return dx*dx + 2*dy*dy
	})
	require.NoError(t, err)

	pt, err := FindFlatPoint(data, nil)
	require.NoError(t, err)
	require.InDelta(t, 3.25, pt[0], 1e-8)
	require.InDelta(t, 7.5, pt[1], 1e-8)
}

// TestTrajectoryToCenterTable runs the full path from a stack of slices to a lookup table
func TestTrajectoryToCenterTable(t *testing.T) {
	const layers = 20
	center := func(z int) (float64, float64) {
		return 4 + 0.1*float64(z), 5 - 0.05*float64(z)
	}

	stack, err := grid.Generate(index.Shape{layers, 9, 11}, func(idx []int) float64 {
		y0, z0 := center(idx[0])
		dy, dz := float64(idx[1])-y0, float64(idx[2])-z0

		return dy*dy + 0.5*dz*dz
	})
	require.NoError(t, err)

	track, err := FindAllFlatPoints(stack, nil)
	require.NoError(t, err)

	table, err := NewCenterTableFromTrajectory(track)
	require.NoError(t, err)
	require.Equal(t, layers, table.Len())

	for _, x := range []float64{0, 3, 7.5, 19} {
		y, z := table.Get(x)
		require.InDelta(t, 4+0.1*x, y, 1e-7)
		require.InDelta(t, 5-0.05*x, z, 1e-7)
	}
}

// TestNewPolyFitter verifies options pass through the wrapper
func TestNewPolyFitter(t *testing.T) {
	fitter, err := NewPolyFitter(index.Shape{2, 2}, fitting.WithSizes(5, 7))
	require.NoError(t, err)
	require.Equal(t, index.Shape{5, 7}, fitter.Sizes())

	_, err = NewPolyFitter(index.Shape{3, 3}, fitting.WithSizes(3, 8))
	require.ErrorIs(t, err, errs.ErrDegenerateFit)
}

// TestNewPolyFitResult verifies the zero polynomial and coefficient layout
func TestNewPolyFitResult(t *testing.T) {
	zero, err := NewPolyFitResult(index.Shape{1, 1}, nil)
	require.NoError(t, err)
	v, err := zero.Eval(3, 4)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)

	_, err = NewPolyFitResult(index.Shape{1, 1}, []float64{1, 2})
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

// TestNewCenterTable verifies construction errors surface unchanged
func TestNewCenterTable(t *testing.T) {
	table, err := NewCenterTable([]float64{0, 1}, []float64{2, 4})
	require.NoError(t, err)
	y, z := table.Get(0.5)
	require.InDelta(t, 0.5, y, 1e-12)
	require.InDelta(t, 3, z, 1e-12)

	_, err = NewCenterTable([]float64{0}, nil)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}
