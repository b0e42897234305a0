// Package trapdc locates flat points (zeros of the gradient) of sampled trap
// potentials by fitting local multivariate polynomials.
//
// A potential sampled on a regular grid is fitted with a polynomial whose per-axis
// degree is bounded, and the gradient of that polynomial is driven to zero with a
// damped Newton iteration. Stacking many 2-D or 3-D slices along a leading axis and
// solving each one in turn yields the trajectory of the trap center along that axis,
// which can be stored in a centers.Table for interpolated lookup.
//
// # Core Features
//
//   - Tensor-product polynomial fitting with pseudo-inverse least squares (fitting)
//   - Polynomial algebra: evaluation, partial derivatives, translation
//   - Flat point search for one slice or a whole stack of slices (solutions)
//   - Linear interpolation of precomputed centers (centers)
//   - Compressed binary archives for tables and polynomials (archive)
//
// # Basic Usage
//
// Finding the minimum of a single slice:
//
//	import "github.com/arloliu/trapdc"
//
//	data, _ := grid.Generate(index.Shape{10, 12}, func(idx []int) float64 {
//	    dx, dy := float64(idx[0])-3.25, float64(idx[1])-7.5
//	    return dx*dx + dy*dy
//	})
//	pt, err := trapdc.FindFlatPoint(data, nil)
//	// pt is approximately [3.25, 7.5]
//
// Tracking the center through a stack and building a lookup table:
//
//	track, err := trapdc.FindAllFlatPoints(stack, nil)
//	if err != nil {
//	    return err
//	}
//	table, err := trapdc.NewCenterTableFromTrajectory(track)
//	y, z := table.Get(12.5)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the fitting, solutions
// and centers packages. For solver tuning (iteration limits, tolerance, concurrency,
// logging) use solutions.NewSolver directly.
package trapdc

import (
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/trapdc/centers"
	"github.com/arloliu/trapdc/fitting"
	"github.com/arloliu/trapdc/grid"
	"github.com/arloliu/trapdc/index"
	"github.com/arloliu/trapdc/solutions"
)

// NewPolyFitter creates a polynomial fitter with the given per-axis orders.
//
// Parameters:
//   - orders: Maximum exponent per axis
//   - opts: fitting.WithSizes, fitting.WithCenter
//
// Returns:
//   - *fitting.PolyFitter: The fitter, safe for concurrent use
//   - error: ErrInvalidShape, ErrShapeMismatch or ErrDegenerateFit
//
// Example:
//
//	fitter, err := trapdc.NewPolyFitter(index.Shape{3, 3}, fitting.WithSizes(9, 11))
//	cache, err := fitter.Fit(samples)
//	gx, err := cache.Gradient(0, 4.2, 5)
func NewPolyFitter(orders index.Shape, opts ...fitting.FitterOption) (*fitting.PolyFitter, error) {
	return fitting.NewPolyFitter(orders, opts...)
}

// NewPolyFitResult creates a polynomial from its coefficients. A nil coeffs slice
// yields the zero polynomial.
func NewPolyFitResult(orders index.Shape, coeffs []float64) (*fitting.PolyFitResult, error) {
	return fitting.NewPolyFitResult(orders, coeffs)
}

// FindFlatPoint finds a point where the gradient of a cubic fit of data vanishes.
//
// Parameters:
//   - data: N-dimensional samples
//   - init: Starting point in grid-index coordinates, or nil for the grid center
//
// Returns:
//   - []float64: The flat point in grid-index coordinates
//   - error: ErrRootNotFound if the iteration does not converge, or a fitting error
func FindFlatPoint(data grid.Array, init []float64) ([]float64, error) {
	return solutions.FindFlatPoint(data, init)
}

// FindAllFlatPoints solves every slice along the leading axis of all, seeding each
// slice with the previous result.
//
// Returns:
//   - *mat.Dense: (N-1) x layers matrix; column i is the flat point of slice i
//   - error: The first failing slice wrapped with its layer number
func FindAllFlatPoints(all grid.Array, init []float64) (*mat.Dense, error) {
	return solutions.FindAllFlatPoints(all, init)
}

// NewCenterTable creates an interpolating table from two coordinate tracks.
func NewCenterTable(ys, zs []float64) (*centers.Table, error) {
	return centers.NewTable(ys, zs)
}

// NewCenterTableFromTrajectory creates a table from a 2 x N trajectory as returned by
// FindAllFlatPoints on a stack of 2-D slices.
func NewCenterTableFromTrajectory(track mat.Matrix) (*centers.Table, error) {
	return centers.NewTableFromTrajectory(track)
}
