package fitting

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/grid"
	"github.com/arloliu/trapdc/index"
	"github.com/arloliu/trapdc/internal/hash"
)

// PolyFitter is the scaled monomial basis of a polynomial fit over a sample grid.
//
// A PolyFitter is built once per grid geometry and then fits any number of sample
// arrays of that geometry. It is read-only after construction and safe for concurrent
// use.
type PolyFitter struct {
	terms  *termTable
	sizes  index.Shape
	center []float64
	scales []float64
	// design maps scaled term coefficients to sample values: one row per grid point
	// (row-major over sizes), one column per term.
	design *mat.Dense
	// pinv is the minimum-norm least-squares pseudo-inverse of design.
	pinv *mat.Dense
	key  uint64
}

// NewPolyFitter builds the basis for a polynomial of per-axis degree orders.
//
// Each term's basis column is normalized by 1 / prod(max((sizes[axis]-1)/2, 1)^exponent)
// so that basis values stay close to unity on large grids.
//
// Parameters:
//   - orders: Polynomial degree along each axis (non-negative)
//   - opts: WithSizes and WithCenter to override the default grid geometry
//
// Returns:
//   - *PolyFitter: The fitter
//   - error: ErrInvalidShape for invalid orders or sizes, ErrShapeMismatch if sizes or
//     center have the wrong number of axes, ErrDegenerateFit if sizes[i] <= orders[i]
//
// Example:
//
//	fitter, err := fitting.NewPolyFitter(index.Shape{3, 3}, fitting.WithSizes(10, 12))
//	if err != nil {
//	    return err
//	}
//	cache, err := fitter.Fit(samples)
func NewPolyFitter(orders index.Shape, opts ...FitterOption) (*PolyFitter, error) {
	cfg, err := resolveFitterConfig(orders, opts...)
	if err != nil {
		return nil, err
	}

	return newPolyFitter(cfg)
}

func newPolyFitter(cfg *fitterConfig) (*PolyFitter, error) {
	terms, err := newTermTable(cfg.orders)
	if err != nil {
		return nil, err
	}

	points, err := index.NewCartesianIndices(cfg.sizes)
	if err != nil {
		return nil, err
	}

	f := &PolyFitter{
		terms:  terms,
		sizes:  cfg.sizes.Clone(),
		center: slices.Clone(cfg.center),
		scales: make([]float64, terms.n),
		key:    hash.Geometry(cfg.orders, cfg.sizes, cfg.center),
	}

	for k := range terms.n {
		scale := 1.0
		for axis, e := range terms.exponents(k) {
			halfWidth := max(float64(f.sizes[axis]-1)/2, 1)
			scale *= math.Pow(halfWidth, float64(e))
		}
		f.scales[k] = 1 / scale
	}

	f.design = mat.NewDense(points.Len(), terms.n, nil)
	powers := make([]float64, terms.powerTableSize())
	pos := make([]float64, terms.ndim)
	for row, idx := range points.All() {
		for axis, i := range idx {
			pos[axis] = float64(i) - f.center[axis]
		}
		terms.fillPowers(powers, pos)
		for k := range terms.n {
			f.design.Set(row, k, f.scales[k]*terms.monomial(powers, k))
		}
	}

	f.pinv, err = pseudoInverse(f.design)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// pseudoInverse returns the Moore-Penrose pseudo-inverse of a through a thin SVD.
//
// Singular values below max(rows, cols) * eps * s_max are treated as zero, which gives
// the minimum-norm least-squares solution for rank-deficient systems.
func pseudoInverse(a *mat.Dense) (*mat.Dense, error) {
	rows, cols := a.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: SVD of %dx%d design matrix did not converge", errs.ErrDegenerateFit, rows, cols)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	cutoff := 0.0
	if len(values) > 0 {
		cutoff = values[0] * float64(max(rows, cols)) * 0x1p-52
	}

	vr, vc := v.Dims()
	vs := mat.NewDense(vr, vc, nil)
	for j, s := range values {
		if s <= cutoff {
			continue
		}
		for i := range vr {
			vs.Set(i, j, v.At(i, j)/s)
		}
	}

	pinv := mat.NewDense(cols, rows, nil)
	pinv.Mul(vs, u.T())

	return pinv, nil
}

// Orders returns a copy of the per-axis polynomial degrees.
func (f *PolyFitter) Orders() index.Shape {
	return f.terms.orders.Clone()
}

// Sizes returns a copy of the sample grid extent.
func (f *PolyFitter) Sizes() index.Shape {
	return f.sizes.Clone()
}

// Center returns a copy of the grid coordinate used as the polynomial origin.
func (f *PolyFitter) Center() []float64 {
	return slices.Clone(f.center)
}

// Scales returns a copy of the per-term normalization factors.
func (f *PolyFitter) Scales() []float64 {
	return slices.Clone(f.scales)
}

// NumTerms returns the number of polynomial terms, prod(orders+1).
func (f *PolyFitter) NumTerms() int {
	return f.terms.n
}

// Design returns the design matrix: one row per grid point, one column per term.
//
// The returned matrix shares storage with the fitter and must not be modified.
func (f *PolyFitter) Design() mat.Matrix {
	return f.design
}

// Key returns the geometry key used by Registry.
func (f *PolyFitter) Key() uint64 {
	return f.key
}

// Fit solves the least-squares problem for samples, which must have shape Sizes().
//
// This is equivalent to NewPolyFitCache(f, samples).
func (f *PolyFitter) Fit(samples grid.Array) (*PolyFitCache, error) {
	return NewPolyFitCache(f, samples)
}

// sameGeometry reports whether the fitter was built for exactly cfg.
func (f *PolyFitter) sameGeometry(cfg *fitterConfig) bool {
	return f.terms.orders.Equal(cfg.orders) &&
		f.sizes.Equal(cfg.sizes) &&
		slices.Equal(f.center, cfg.center)
}
