package index

import (
	"fmt"
	"slices"

	"github.com/arloliu/trapdc/errs"
)

// Shape is the extent along each axis of an N-dimensional grid.
//
// The same type is used for sample grids and for polynomial order tuples.
type Shape []int

// Validate checks that the shape has at least one axis and that every dimension is positive.
//
// Returns:
//   - error: ErrInvalidShape if the shape is empty or any dimension is <= 0
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: shape must have at least one axis", errs.ErrInvalidShape)
	}

	for axis, n := range s {
		if n <= 0 {
			return fmt.Errorf("%w: dimension %d of axis %d must be positive", errs.ErrInvalidShape, n, axis)
		}
	}

	return nil
}

// Len returns the product of all dimensions.
//
// An empty shape has length 0. Call Validate first when the shape comes from user input.
func (s Shape) Len() int {
	if len(s) == 0 {
		return 0
	}

	n := 1
	for _, d := range s {
		n *= d
	}

	return n
}

// Ndim returns the number of axes.
func (s Shape) Ndim() int {
	return len(s)
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Reversed returns a copy of the shape with the axis order reversed.
func (s Shape) Reversed() Shape {
	r := slices.Clone(s)
	slices.Reverse(r)

	return r
}

// AddScalar returns a copy of the shape with v added to every dimension.
//
// This is how term shapes are derived from polynomial orders: orders+1.
func (s Shape) AddScalar(v int) Shape {
	r := make(Shape, len(s))
	for i, d := range s {
		r[i] = d + v
	}

	return r
}

// String returns the shape formatted as a tuple, e.g. "(2, 3, 4)".
func (s Shape) String() string {
	b := make([]byte, 0, 4*len(s)+2)
	b = append(b, '(')
	for i, d := range s {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = fmt.Appendf(b, "%d", d)
	}
	b = append(b, ')')

	return string(b)
}

// rowMajorStrides returns the row-major (last axis fastest) strides for the shape.
func rowMajorStrides(s Shape) []int {
	strides := make([]int, len(s))
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= s[i]
	}

	return strides
}
