package index

import (
	"fmt"
	"iter"

	"github.com/arloliu/trapdc/errs"
)

// CartesianIndices enumerates the multi-indices of a shape in row-major order.
//
// The multi-index at flat offset k is the mixed-radix decomposition of k using the
// shape as radices, with the first axis varying slowest. Values are computed on demand;
// nothing proportional to Len() is allocated.
type CartesianIndices struct {
	shape   Shape
	strides []int
	n       int
}

// NewCartesianIndices creates a Cartesian enumerator for the given shape.
//
// Parameters:
//   - shape: Extent along each axis (at least one axis, all dimensions positive)
//
// Returns:
//   - *CartesianIndices: The enumerator
//   - error: ErrInvalidShape if the shape is empty or has a non-positive dimension
func NewCartesianIndices(shape Shape) (*CartesianIndices, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	s := shape.Clone()

	return &CartesianIndices{
		shape:   s,
		strides: rowMajorStrides(s),
		n:       s.Len(),
	}, nil
}

// Shape returns a copy of the enumerated shape.
func (c *CartesianIndices) Shape() Shape {
	return c.shape.Clone()
}

// Ndim returns the number of axes of each multi-index.
func (c *CartesianIndices) Ndim() int {
	return len(c.shape)
}

// Len returns the number of multi-indices, the product of all dimensions.
func (c *CartesianIndices) Len() int {
	return c.n
}

// At returns the multi-index at flat offset flat as a newly allocated slice.
//
// Returns:
//   - []int: The multi-index, one coordinate per axis
//   - error: ErrIndexOutOfRange if flat is outside [0, Len())
func (c *CartesianIndices) At(flat int) ([]int, error) {
	dst := make([]int, len(c.shape))
	if err := c.AtTo(dst, flat); err != nil {
		return nil, err
	}

	return dst, nil
}

// AtTo writes the multi-index at flat offset flat into dst.
//
// dst must have exactly Ndim() elements. This is the allocation-free variant of At used
// by hot loops.
func (c *CartesianIndices) AtTo(dst []int, flat int) error {
	if flat < 0 || flat >= c.n {
		return fmt.Errorf("%w: flat index %d not in [0, %d)", errs.ErrIndexOutOfRange, flat, c.n)
	}
	if len(dst) != len(c.shape) {
		return fmt.Errorf("%w: destination has %d coordinates for %d axes", errs.ErrShapeMismatch, len(dst), len(c.shape))
	}

	for axis := len(c.shape) - 1; axis >= 0; axis-- {
		d := c.shape[axis]
		dst[axis] = flat % d
		flat /= d
	}

	return nil
}

// Offset returns the flat offset of a multi-index, the inverse of At.
func (c *CartesianIndices) Offset(idx ...int) (int, error) {
	return offset(c.shape, c.strides, idx)
}

// All returns an iterator over (flat offset, multi-index) pairs in ascending flat order.
//
// Each yielded multi-index is a fresh slice that the caller may retain.
func (c *CartesianIndices) All() iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		cur := make([]int, len(c.shape))
		for flat := range c.n {
			if !yield(flat, append([]int(nil), cur...)) {
				return
			}
			c.increment(cur)
		}
	}
}

// Backward returns an iterator over (flat offset, multi-index) pairs in descending flat order.
func (c *CartesianIndices) Backward() iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		if c.n == 0 {
			return
		}
		cur := make([]int, len(c.shape))
		for axis, d := range c.shape {
			cur[axis] = d - 1
		}
		for flat := c.n - 1; flat >= 0; flat-- {
			if !yield(flat, append([]int(nil), cur...)) {
				return
			}
			c.decrement(cur)
		}
	}
}

// increment advances cur to the next multi-index in row-major order (odometer style).
func (c *CartesianIndices) increment(cur []int) {
	for axis := len(cur) - 1; axis >= 0; axis-- {
		cur[axis]++
		if cur[axis] < c.shape[axis] {
			return
		}
		cur[axis] = 0
	}
}

func (c *CartesianIndices) decrement(cur []int) {
	for axis := len(cur) - 1; axis >= 0; axis-- {
		cur[axis]--
		if cur[axis] >= 0 {
			return
		}
		cur[axis] = c.shape[axis] - 1
	}
}
