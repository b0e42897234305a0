package solutions

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/arloliu/trapdc/fitting"
)

const (
	maxBacktracks = 30
	armijo        = 1e-4
	// maxExtrapolation bounds the search region, in grid extents around the fit center.
	// Roots of round-off sized high-order terms lie far outside it.
	maxExtrapolation = 10
)

// Method names reported by rootResult.
const (
	methodNewton = "newton"
	methodBFGS   = "bfgs+newton"
)

type rootResult struct {
	x          []float64
	iterations int
	method     string
}

// gradientField is the vector field whose zero the solver looks for.
type gradientField struct {
	cache    *fitting.PolyFitCache
	n        int
	center   []float64
	radius   []float64
	jacobian *mat.Dense
	settings *fd.JacobianSettings
	// err holds the first model evaluation error. fd.Jacobian and optimize take
	// error-free callbacks, so eval records it and poisons the output with NaN.
	err error
}

func newGradientField(cache *fitting.PolyFitCache) *gradientField {
	n := cache.Ndim()
	fitter := cache.Fitter()

	radius := make([]float64, n)
	for axis, size := range fitter.Sizes() {
		radius[axis] = maxExtrapolation * float64(size)
	}

	return &gradientField{
		cache:    cache,
		n:        n,
		center:   fitter.Center(),
		radius:   radius,
		jacobian: mat.NewDense(n, n, nil),
		settings: &fd.JacobianSettings{Formula: fd.Central},
	}
}

// inRange reports whether x is finite and inside the search region.
func (g *gradientField) inRange(x []float64) bool {
	if !allFinite(x) {
		return false
	}
	for axis, v := range x {
		if math.Abs(v-g.center[axis]) > g.radius[axis] {
			return false
		}
	}

	return true
}

func (g *gradientField) eval(dst, x []float64) {
	if err := g.cache.GradientTo(dst, x); err != nil {
		if g.err == nil {
			g.err = err
		}
		for i := range dst {
			dst[i] = math.NaN()
		}
	}
}

// jacobianAt estimates the Hessian of the fitted model by central differences.
func (g *gradientField) jacobianAt(x []float64) *mat.Dense {
	fd.Jacobian(g.jacobian, g.eval, x, g.settings)

	return g.jacobian
}

// converged reports whether a Newton step of length stepNorm taken at x is within
// tolerance. The bound is relative to |x| with a floor of xtol grid steps, so roots at
// or near the origin converge once the step is at round-off level.
func converged(stepNorm float64, x []float64, xtol float64) bool {
	return stepNorm <= xtol*(1+floats.Norm(x, 2))
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

// newton runs damped Newton iterations from x0 and reports whether the step
// tolerance was reached.
//
// The step is backtracked until |g| decreases by the Armijo factor. A singular Jacobian
// or a failed line search stops the iteration without convergence.
func (g *gradientField) newton(x0 []float64, maxIter int, xtol float64) ([]float64, int, bool) {
	n := g.n
	x := slices.Clone(x0)
	grad := make([]float64, n)
	trial := make([]float64, n)
	trialGrad := make([]float64, n)
	step := mat.NewVecDense(n, nil)

	g.eval(grad, x)
	for iter := 1; iter <= maxIter; iter++ {
		if !g.inRange(x) || !allFinite(grad) {
			return x, iter, false
		}

		if err := step.SolveVec(g.jacobianAt(x), mat.NewVecDense(n, grad)); err != nil {
			return x, iter, false
		}
		s := step.RawVector().Data
		if !allFinite(s) {
			return x, iter, false
		}

		stepNorm := floats.Norm(s, 2)
		if converged(stepNorm, x, xtol) {
			floats.Sub(x, s)
			return x, iter, g.inRange(x)
		}

		fnorm := floats.Norm(grad, 2)
		lambda := 1.0
		accepted := false
		for range maxBacktracks {
			floats.AddScaledTo(trial, x, -lambda, s)
			g.eval(trialGrad, trial)
			if allFinite(trialGrad) && floats.Norm(trialGrad, 2) <= (1-armijo*lambda)*fnorm {
				accepted = true
				break
			}
			lambda /= 2
		}
		if !accepted {
			return x, iter, false
		}

		copy(x, trial)
		copy(grad, trialGrad)

		if converged(lambda*stepNorm, x, xtol) {
			return x, iter, g.inRange(x)
		}
	}

	return x, maxIter, false
}

// minimizeResidual minimizes 0.5*|g|^2 with BFGS, using J^T g as its gradient.
func (g *gradientField) minimizeResidual(x0 []float64, maxIter int) []float64 {
	fval := make([]float64, g.n)
	gval := make([]float64, g.n)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			g.eval(fval, x)
			return 0.5 * floats.Dot(fval, fval)
		},
		Grad: func(dst, x []float64) {
			g.eval(gval, x)
			jac := g.jacobianAt(x)
			d := mat.NewVecDense(len(dst), dst)
			d.MulVec(jac.T(), mat.NewVecDense(len(gval), gval))
		},
	}

	settings := &optimize.Settings{
		GradientThreshold: 1e-14,
		MajorIterations:   maxIter,
	}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.BFGS{})
	if result == nil || (err != nil && len(result.X) == 0) {
		return x0
	}

	return result.X
}

// findRoot locates a zero of the model gradient starting from init.
//
// The error is non-nil only when the model itself cannot be evaluated; a search that
// simply fails to converge reports ok == false.
func findRoot(cache *fitting.PolyFitCache, init []float64, maxIter int, xtol float64) (rootResult, bool, error) {
	field := newGradientField(cache)

	x, iters, ok := field.newton(init, maxIter, xtol)
	if field.err != nil {
		return rootResult{x: x, iterations: iters}, false, field.err
	}
	if ok {
		return rootResult{x: x, iterations: iters, method: methodNewton}, true, nil
	}

	start := field.minimizeResidual(init, 10*maxIter)
	if field.err != nil {
		return rootResult{x: x, iterations: iters}, false, field.err
	}
	if !field.inRange(start) {
		return rootResult{x: x, iterations: iters}, false, nil
	}

	polished, more, ok := field.newton(start, maxIter, xtol)
	res := rootResult{x: polished, iterations: iters + more, method: methodBFGS}

	return res, ok, field.err
}
