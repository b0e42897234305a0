package solutions

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/fitting"
	"github.com/arloliu/trapdc/grid"
	"github.com/arloliu/trapdc/index"
	"github.com/arloliu/trapdc/internal/options"
)

// Solver locates zero-gradient points of sampled potentials.
//
// A Solver is safe for concurrent use. Fitters are shared through its registry, so a
// multi-layer run over slices of one geometry builds the least-squares basis once.
type Solver struct {
	cfg *config
}

// NewSolver creates a solver.
//
// Parameters:
//   - opts: WithMaxIterations, WithTolerance, WithFitOrder, WithConcurrency, WithLogger,
//     WithRegistry
//
// Returns:
//   - *Solver: The solver
//   - error: ErrInvalidOption if any option value is rejected
func NewSolver(opts ...Option) (*Solver, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.registry == nil {
		cfg.registry = fitting.NewRegistry(cfg.logger)
	}

	return &Solver{cfg: cfg}, nil
}

var defaultSolver = sync.OnceValue(func() *Solver {
	s, _ := NewSolver()
	return s
})

// FindFlatPoint finds a zero-gradient point of one slice with the default solver.
//
// See Solver.FindFlatPoint.
func FindFlatPoint(data grid.Array, init []float64) ([]float64, error) {
	return defaultSolver().FindFlatPoint(data, init)
}

// FindAllFlatPoints tracks the zero-gradient point across layers with the default solver.
//
// See Solver.FindAllFlatPoints.
func FindAllFlatPoints(all grid.Array, init []float64) (*mat.Dense, error) {
	return defaultSolver().FindAllFlatPoints(all, init)
}

// FindFlatPoint fits a local polynomial to data and returns the point where its
// gradient vanishes.
//
// The local model has the configured fit order (3 by default) on every axis, so every
// axis of data must be longer than that order.
//
// Parameters:
//   - data: One N-dimensional slice of potential samples
//   - init: Initial guess in grid-index coordinates; nil starts at the grid center
//
// Returns:
//   - []float64: The N grid-index coordinates of the flat point
//   - error: ErrDegenerateFit if an axis is too short for the fit order,
//     ErrShapeMismatch if len(init) != N, ErrRootNotFound if the solve fails
func (s *Solver) FindFlatPoint(data grid.Array, init []float64) ([]float64, error) {
	res, err := s.solve(data, init)
	if err != nil {
		return nil, err
	}

	return res.x, nil
}

// FindAllFlatPoints tracks the flat point through every layer of all.
//
// The leading axis of all indexes layers. Layers are solved in ascending order and each
// solution seeds the next layer, which keeps the track on one continuous branch when
// several extrema exist. With WithConcurrency(n), the layers are split into n contiguous
// chunks, each seeded with init.
//
// Parameters:
//   - all: Samples with shape (layers, s1, ..., sN)
//   - init: Initial guess for the first layer of each chunk; nil uses the grid center
//
// Returns:
//   - *mat.Dense: Shape (N, layers); column i holds layer i's flat point
//   - error: The first layer failure, wrapped with its layer index
func (s *Solver) FindAllFlatPoints(all grid.Array, init []float64) (*mat.Dense, error) {
	if all.Ndim() < 2 {
		return nil, fmt.Errorf("%w: layered data needs at least 2 axes, got %d", errs.ErrShapeMismatch, all.Ndim())
	}
	if err := all.Shape.Validate(); err != nil {
		return nil, err
	}
	if len(all.Data) != all.Shape.Len() {
		return nil, fmt.Errorf("%w: %d samples for shape %s", errs.ErrShapeMismatch, len(all.Data), all.Shape)
	}

	layers := all.Layers()
	out := mat.NewDense(all.Ndim()-1, layers, nil)

	chunks := min(s.cfg.concurrency, layers)
	if chunks == 1 {
		if err := s.track(context.Background(), all, init, 0, layers, out); err != nil {
			return nil, err
		}

		return out, nil
	}

	g, ctx := errgroup.WithContext(context.Background())
	size := (layers + chunks - 1) / chunks
	for lo := 0; lo < layers; lo += size {
		hi := min(lo+size, layers)
		g.Go(func() error {
			return s.track(ctx, all, init, lo, hi, out)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// track solves layers [lo, hi) in order, seeding each with the previous solution.
//
// Different chunks write disjoint columns of out.
func (s *Solver) track(ctx context.Context, all grid.Array, init []float64, lo, hi int, out *mat.Dense) error {
	seed := init
	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		layer, err := all.Layer(i)
		if err != nil {
			return err
		}

		res, err := s.solve(layer, seed)
		if err != nil {
			s.cfg.logger.WithFields(logrus.Fields{
				"layer": i,
				"init":  seed,
			}).Warn("flat point tracking failed")

			return fmt.Errorf("layer %d: %w", i, err)
		}

		s.cfg.logger.WithFields(logrus.Fields{
			"layer":      i,
			"iterations": res.iterations,
			"method":     res.method,
			"point":      res.x,
		}).Debug("flat point solved")

		out.SetCol(i, res.x)
		seed = res.x
	}

	return nil
}

func (s *Solver) solve(data grid.Array, init []float64) (rootResult, error) {
	ndim := data.Ndim()
	if err := data.Shape.Validate(); err != nil {
		return rootResult{}, err
	}

	orders := make(index.Shape, ndim)
	for axis := range orders {
		orders[axis] = s.cfg.fitOrder
	}

	fitter, err := s.cfg.registry.Get(orders, fitting.WithSizes(data.Shape...))
	if err != nil {
		return rootResult{}, err
	}

	if init == nil {
		init = fitter.Center()
	} else if len(init) != ndim {
		return rootResult{}, fmt.Errorf("%w: initial guess has %d coordinates for %d axes", errs.ErrShapeMismatch, len(init), ndim)
	}

	cache, err := fitter.Fit(data)
	if err != nil {
		return rootResult{}, err
	}

	res, ok, err := findRoot(cache, init, s.cfg.maxIterations, s.cfg.tolerance)
	if err != nil {
		return rootResult{}, fmt.Errorf("evaluate fitted gradient: %w", err)
	}
	if !ok {
		return rootResult{}, fmt.Errorf("%w: no zero-gradient point from %v after %d iterations",
			errs.ErrRootNotFound, slices.Clone(init), res.iterations)
	}

	return res, nil
}
