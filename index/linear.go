package index

import (
	"fmt"
	"iter"

	"github.com/arloliu/trapdc/errs"
)

// LinearIndices enumerates the flat offsets of a shape.
//
// At is the identity on [0, Len()). Offset computes the flat offset of a multi-index
// using row-major strides, which gives the enumerator the same multi-subscript access
// as CartesianIndices.
type LinearIndices struct {
	shape   Shape
	strides []int
	n       int
}

// NewLinearIndices creates a linear enumerator for the given shape.
//
// Parameters:
//   - shape: Extent along each axis (at least one axis, all dimensions positive)
//
// Returns:
//   - *LinearIndices: The enumerator
//   - error: ErrInvalidShape if the shape is empty or has a non-positive dimension
func NewLinearIndices(shape Shape) (*LinearIndices, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	s := shape.Clone()

	return &LinearIndices{
		shape:   s,
		strides: rowMajorStrides(s),
		n:       s.Len(),
	}, nil
}

// Shape returns a copy of the enumerated shape.
func (l *LinearIndices) Shape() Shape {
	return l.shape.Clone()
}

// Len returns the number of flat offsets, the product of all dimensions.
func (l *LinearIndices) Len() int {
	return l.n
}

// At returns the flat offset at position flat, which is flat itself.
//
// Returns:
//   - int: The flat offset
//   - error: ErrIndexOutOfRange if flat is outside [0, Len())
func (l *LinearIndices) At(flat int) (int, error) {
	if flat < 0 || flat >= l.n {
		return 0, fmt.Errorf("%w: flat index %d not in [0, %d)", errs.ErrIndexOutOfRange, flat, l.n)
	}

	return flat, nil
}

// Offset returns the flat offset of a multi-index using row-major strides.
//
// For shape (2, 3, 4), Offset(i, j, k) == i*12 + j*4 + k.
//
// Returns:
//   - int: The flat offset
//   - error: ErrShapeMismatch if the number of coordinates differs from the number of axes,
//     ErrIndexOutOfRange if any coordinate falls outside its axis
func (l *LinearIndices) Offset(idx ...int) (int, error) {
	return offset(l.shape, l.strides, idx)
}

// All returns an iterator over every flat offset in ascending order.
func (l *LinearIndices) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range l.n {
			if !yield(i) {
				return
			}
		}
	}
}

// Backward returns an iterator over every flat offset in descending order.
func (l *LinearIndices) Backward() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := l.n - 1; i >= 0; i-- {
			if !yield(i) {
				return
			}
		}
	}
}

func offset(shape Shape, strides []int, idx []int) (int, error) {
	if len(idx) != len(shape) {
		return 0, fmt.Errorf("%w: got %d coordinates for %d axes", errs.ErrShapeMismatch, len(idx), len(shape))
	}

	flat := 0
	for axis, i := range idx {
		if i < 0 || i >= shape[axis] {
			return 0, fmt.Errorf("%w: coordinate %d of axis %d not in [0, %d)",
				errs.ErrIndexOutOfRange, i, axis, shape[axis])
		}
		flat += i * strides[axis]
	}

	return flat, nil
}
