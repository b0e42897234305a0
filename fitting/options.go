package fitting

import (
	"fmt"
	"slices"

	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/index"
	"github.com/arloliu/trapdc/internal/options"
)

// fitterConfig holds the geometry of a PolyFitter before the basis is built.
type fitterConfig struct {
	orders index.Shape
	sizes  index.Shape
	center []float64
}

// FitterOption is a functional option for NewPolyFitter and Registry.Get.
type FitterOption = options.Option[*fitterConfig]

// WithSizes sets the sample grid extent along each axis.
//
// The default is orders+1 on every axis, the smallest grid that determines the fit.
func WithSizes(sizes ...int) FitterOption {
	return options.New(func(cfg *fitterConfig) error {
		s := index.Shape(sizes)
		if err := s.Validate(); err != nil {
			return err
		}
		cfg.sizes = s.Clone()

		return nil
	})
}

// WithCenter sets the grid coordinate used as the polynomial origin.
//
// The default is (sizes-1)/2 on every axis, the middle of the grid.
func WithCenter(center ...float64) FitterOption {
	return options.NoError(func(cfg *fitterConfig) {
		cfg.center = slices.Clone(center)
	})
}

// resolveFitterConfig applies opts on top of the defaults and validates the result.
func resolveFitterConfig(orders index.Shape, opts ...FitterOption) (*fitterConfig, error) {
	if err := validateOrders(orders); err != nil {
		return nil, err
	}

	cfg := &fitterConfig{orders: orders.Clone()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	ndim := len(orders)
	if cfg.sizes == nil {
		cfg.sizes = orders.AddScalar(1)
	}
	if len(cfg.sizes) != ndim {
		return nil, fmt.Errorf("%w: %d sizes for %d orders", errs.ErrShapeMismatch, len(cfg.sizes), ndim)
	}
	for axis := range ndim {
		if cfg.sizes[axis] <= cfg.orders[axis] {
			return nil, fmt.Errorf("%w: axis %d has size %d for order %d",
				errs.ErrDegenerateFit, axis, cfg.sizes[axis], cfg.orders[axis])
		}
	}

	if cfg.center == nil {
		cfg.center = make([]float64, ndim)
		for axis, s := range cfg.sizes {
			cfg.center[axis] = float64(s-1) / 2
		}
	}
	if len(cfg.center) != ndim {
		return nil, fmt.Errorf("%w: center has %d coordinates for %d axes", errs.ErrShapeMismatch, len(cfg.center), ndim)
	}

	return cfg, nil
}
