package archive

import (
	"fmt"

	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/format"
	"github.com/arloliu/trapdc/internal/options"
	"github.com/arloliu/trapdc/section"
)

type config struct {
	compression format.CompressionType
	bigEndian   bool
}

// Option configures archive encoding.
type Option = options.Option[*config]

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{compression: format.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) header(kind format.Kind) *section.Header {
	h := section.NewHeader(kind, c.compression)
	if c.bigEndian {
		h.WithBigEndian()
	}

	return h
}

// WithCompression selects the payload codec. The default is format.CompressionZstd.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = compression
			return nil
		default:
			return fmt.Errorf("%w: compression %s", errs.ErrInvalidOption, compression)
		}
	})
}

// WithBigEndian writes header fields and payload big-endian.
func WithBigEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.bigEndian = true
	})
}

// WithLittleEndian writes header fields and payload little-endian, the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.bigEndian = false
	})
}
