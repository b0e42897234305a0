package solutions

import (
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/fitting"
	"github.com/arloliu/trapdc/internal/options"
)

const (
	// DefaultMaxIterations bounds the Newton iterations of a single solve.
	DefaultMaxIterations = 100
	// DefaultTolerance is the relative step tolerance, sqrt of float64 machine epsilon.
	DefaultTolerance = 1.49012e-8
	// DefaultFitOrder is the per-axis polynomial degree of the local model.
	DefaultFitOrder = 3
)

// config holds the solver configuration.
type config struct {
	maxIterations int
	tolerance     float64
	fitOrder      int
	concurrency   int
	logger        logrus.FieldLogger
	registry      *fitting.Registry
}

// Option is a functional option for NewSolver.
type Option = options.Option[*config]

func defaultConfig() *config {
	return &config{
		maxIterations: DefaultMaxIterations,
		tolerance:     DefaultTolerance,
		fitOrder:      DefaultFitOrder,
		concurrency:   1,
		logger:        discardLogger(),
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// WithMaxIterations bounds the Newton iterations of each solve.
//
// The BFGS fallback, when it runs, gets ten times this many iterations.
func WithMaxIterations(n int) Option {
	return options.New(func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: max iterations must be positive, got %d", errs.ErrInvalidOption, n)
		}
		cfg.maxIterations = n

		return nil
	})
}

// WithTolerance sets the step tolerance.
//
// A solve converges when the last step satisfies |dx| <= tol * (1 + |x|), i.e. relative
// to |x| with a floor of tol grid steps near the origin.
func WithTolerance(tol float64) Option {
	return options.New(func(cfg *config) error {
		if !(tol > 0) || math.IsInf(tol, 1) {
			return fmt.Errorf("%w: tolerance must be positive and finite, got %v", errs.ErrInvalidOption, tol)
		}
		cfg.tolerance = tol

		return nil
	})
}

// WithFitOrder sets the per-axis degree of the local polynomial model.
//
// Every slice axis must be strictly longer than the order. Orders below 2 cannot
// represent an extremum and are rejected.
func WithFitOrder(order int) Option {
	return options.New(func(cfg *config) error {
		if order < 2 {
			return fmt.Errorf("%w: fit order must be at least 2, got %d", errs.ErrInvalidOption, order)
		}
		cfg.fitOrder = order

		return nil
	})
}

// WithConcurrency splits layer tracking into n contiguous chunks solved in parallel.
//
// Each chunk starts from the caller's initial guess (or the grid center) instead of
// the previous chunk's last solution, so warm starting only holds within a chunk.
// The default of 1 keeps the strict layer-to-layer seeding chain.
func WithConcurrency(n int) Option {
	return options.New(func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("%w: concurrency must be at least 1, got %d", errs.ErrInvalidOption, n)
		}
		cfg.concurrency = n

		return nil
	})
}

// WithLogger sets the logger for per-layer progress. Nil restores the silent default.
func WithLogger(logger logrus.FieldLogger) Option {
	return options.NoError(func(cfg *config) {
		if logger == nil {
			logger = discardLogger()
		}
		cfg.logger = logger
	})
}

// WithRegistry shares a fitter registry between solvers.
func WithRegistry(reg *fitting.Registry) Option {
	return options.NoError(func(cfg *config) {
		cfg.registry = reg
	})
}
