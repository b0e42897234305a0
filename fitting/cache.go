package fitting

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/grid"
	"github.com/arloliu/trapdc/internal/pool"
)

// PolyFitCache is the least-squares fit of one sample array against a PolyFitter.
//
// Coordinates passed to Value and Gradient are grid-index coordinates of the sampled
// array, the same units the flat-point solver works in. They may lie off-grid or outside
// the sampled extent; the model simply extrapolates.
//
// A PolyFitCache is read-only after construction and safe for concurrent use.
type PolyFitCache struct {
	fitter *PolyFitter
	// coeffs are the raw least-squares coefficients of the scaled basis.
	coeffs []float64
	// folded are coeffs multiplied by the per-term scales, i.e. the coefficients of the
	// plain monomials in centered coordinates.
	folded   []float64
	rSquared float64
	rmse     float64
}

// NewPolyFitCache fits samples against fitter.
//
// The solution is the minimum-norm least-squares solution of design · c ≈ samples.
//
// Parameters:
//   - fitter: The basis to fit against
//   - samples: Sample values on the fitter's grid; Shape must equal fitter.Sizes()
//
// Returns:
//   - *PolyFitCache: The fitted model
//   - error: ErrShapeMismatch if the sample shape differs from the fitter grid
func NewPolyFitCache(fitter *PolyFitter, samples grid.Array) (*PolyFitCache, error) {
	if !samples.Shape.Equal(fitter.sizes) || len(samples.Data) != fitter.sizes.Len() {
		return nil, fmt.Errorf("%w: samples of shape %s for fitter grid %s",
			errs.ErrShapeMismatch, samples.Shape, fitter.sizes)
	}

	n := fitter.terms.n
	coeffs := make([]float64, n)
	c := mat.NewVecDense(n, coeffs)
	c.MulVec(fitter.pinv, mat.NewVecDense(len(samples.Data), samples.Data))

	folded := make([]float64, n)
	for k, v := range coeffs {
		folded[k] = v * fitter.scales[k]
	}

	predicted, cleanup := pool.GetFloat64Slice(len(samples.Data))
	defer cleanup()
	p := mat.NewVecDense(len(predicted), predicted)
	p.MulVec(fitter.design, c)

	return &PolyFitCache{
		fitter:   fitter,
		coeffs:   coeffs,
		folded:   folded,
		rSquared: calculateRSquared(samples.Data, predicted),
		rmse:     calculateRMSE(samples.Data, predicted),
	}, nil
}

// Fitter returns the basis this cache was fit against.
func (c *PolyFitCache) Fitter() *PolyFitter {
	return c.fitter
}

// Ndim returns the number of axes.
func (c *PolyFitCache) Ndim() int {
	return c.fitter.terms.ndim
}

// Value evaluates the fitted model at pos.
//
// Returns:
//   - float64: The modeled sample value
//   - error: ErrShapeMismatch if len(pos) != Ndim()
func (c *PolyFitCache) Value(pos ...float64) (float64, error) {
	t := c.fitter.terms
	if len(pos) != t.ndim {
		return 0, fmt.Errorf("%w: got %d coordinates for %d axes", errs.ErrShapeMismatch, len(pos), t.ndim)
	}

	scratch, cleanup := pool.GetFloat64Slice(t.ndim + t.powerTableSize())
	defer cleanup()
	centered, powers := c.center(scratch, pos)

	return t.evaluate(c.folded, powers, centered), nil
}

// Gradient evaluates the partial derivative of the model along axis at pos.
//
// Returns:
//   - float64: The gradient component
//   - error: ErrIndexOutOfRange for a bad axis, ErrShapeMismatch if len(pos) != Ndim()
func (c *PolyFitCache) Gradient(axis int, pos ...float64) (float64, error) {
	t := c.fitter.terms
	if axis < 0 || axis >= t.ndim {
		return 0, fmt.Errorf("%w: axis %d not in [0, %d)", errs.ErrIndexOutOfRange, axis, t.ndim)
	}
	if len(pos) != t.ndim {
		return 0, fmt.Errorf("%w: got %d coordinates for %d axes", errs.ErrShapeMismatch, len(pos), t.ndim)
	}

	scratch, cleanup := pool.GetFloat64Slice(t.ndim + t.powerTableSize())
	defer cleanup()
	centered, powers := c.center(scratch, pos)

	return t.derivative(c.folded, powers, axis, centered), nil
}

// GradientTo writes every gradient component at pos into dst.
//
// dst and pos must both have length Ndim(). This is the allocation-free path used by
// the flat-point solver.
func (c *PolyFitCache) GradientTo(dst, pos []float64) error {
	t := c.fitter.terms
	if len(pos) != t.ndim || len(dst) != t.ndim {
		return fmt.Errorf("%w: got %d coordinates and %d outputs for %d axes",
			errs.ErrShapeMismatch, len(pos), len(dst), t.ndim)
	}

	scratch, cleanup := pool.GetFloat64Slice(t.ndim + t.powerTableSize())
	defer cleanup()
	centered, powers := c.center(scratch, pos)

	for axis := range dst {
		dst[axis] = t.derivative(c.folded, powers, axis, centered)
	}

	return nil
}

// center splits scratch into the centered coordinate and the power table.
func (c *PolyFitCache) center(scratch, pos []float64) ([]float64, []float64) {
	ndim := c.fitter.terms.ndim
	centered := scratch[:ndim]
	for axis, x := range pos {
		centered[axis] = x - c.fitter.center[axis]
	}

	return centered, scratch[ndim:]
}

// Coefficients returns a copy of the raw least-squares coefficients of the scaled basis.
func (c *PolyFitCache) Coefficients() []float64 {
	out := make([]float64, len(c.coeffs))
	copy(out, c.coeffs)

	return out
}

// Result returns the fitted polynomial in centered coordinates.
//
// The per-term scales are folded into the coefficients, so
// Result().Eval(x - Center()) equals Value(x). Shift by -Center() to get a polynomial in
// grid-index coordinates.
func (c *PolyFitCache) Result() *PolyFitResult {
	out := make([]float64, len(c.folded))
	copy(out, c.folded)

	return &PolyFitResult{terms: c.fitter.terms, coeffs: out}
}

// RSquared returns the coefficient of determination of the fit over the sampled grid.
//
// Returns 0 when the samples are constant.
func (c *PolyFitCache) RSquared() float64 {
	return c.rSquared
}

// RMSE returns the root mean square residual over the sampled grid.
func (c *PolyFitCache) RMSE() float64 {
	return c.rmse
}
