// Package options implements the generic functional-option pattern shared by the
// public configuration surfaces (fitter, solver and archive options).
package options

// Option configures a target of type T and may reject the value it carries.
type Option[T any] interface {
	apply(T) error
}

// funcOption adapts a plain function to the Option interface.
type funcOption[T any] func(T) error

func (f funcOption[T]) apply(target T) error {
	return f(target)
}

// New creates an option from a function that may fail.
func New[T any](fn func(T) error) Option[T] {
	return funcOption[T](fn)
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return funcOption[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target in order and stops at the first error.
//
// Nil options are skipped so callers can build option lists conditionally.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
