package fitting

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/trapdc/index"
	"github.com/arloliu/trapdc/internal/hash"
)

// Registry memoizes PolyFitters by grid geometry.
//
// Building a fitter costs an SVD of the design matrix, while fitting against an existing
// one is a single matrix-vector product, so layer-by-layer solvers share one Registry.
// Fitters are keyed by an xxhash of (orders, sizes, center). A key hit whose stored
// geometry differs is a hash collision: the fitter is built but not cached.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu         sync.Mutex
	fitters    map[uint64]*PolyFitter
	collisions int
	logger     logrus.FieldLogger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger logrus.FieldLogger) *Registry {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	return &Registry{
		fitters: make(map[uint64]*PolyFitter),
		logger:  logger,
	}
}

// Get returns the fitter for orders and opts, building it on first use.
//
// Options are resolved before hashing, so WithSizes(4, 4) and the default sizes of
// orders {3, 3} share one entry.
func (r *Registry) Get(orders index.Shape, opts ...FitterOption) (*PolyFitter, error) {
	cfg, err := resolveFitterConfig(orders, opts...)
	if err != nil {
		return nil, err
	}
	key := hash.Geometry(cfg.orders, cfg.sizes, cfg.center)

	r.mu.Lock()
	defer r.mu.Unlock()

	cached, ok := r.fitters[key]
	if ok && cached.sameGeometry(cfg) {
		return cached, nil
	}

	fitter, err := newPolyFitter(cfg)
	if err != nil {
		return nil, err
	}

	if ok {
		r.collisions++
		r.logger.WithField("key", key).Warn("fitter geometry hash collision, not caching")

		return fitter, nil
	}

	r.fitters[key] = fitter
	r.logger.WithFields(logrus.Fields{
		"orders": cfg.orders.String(),
		"sizes":  cfg.sizes.String(),
		"terms":  fitter.NumTerms(),
	}).Debug("built polynomial fitter")

	return fitter, nil
}

// Len returns the number of cached fitters.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.fitters)
}

// Collisions returns how many lookups hit a key held by a different geometry.
func (r *Registry) Collisions() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.collisions
}
