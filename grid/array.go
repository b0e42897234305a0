// Package grid provides a minimal N-dimensional float64 array used to pass sampled
// potential data into the fitting and solving packages.
//
// Data is stored flat in row-major order (last axis fastest), the same layout as a
// C-ordered numeric array, so slicing along the leading axis is a zero-copy view.
package grid

import (
	"fmt"

	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/index"
)

// Array is an N-dimensional array of float64 samples in row-major order.
type Array struct {
	// Shape is the extent along each axis.
	Shape index.Shape
	// Data holds Shape.Len() samples, last axis fastest.
	Data []float64
}

// NewArray wraps data as an array of the given shape without copying.
//
// Parameters:
//   - shape: Extent along each axis
//   - data: Row-major samples; must hold exactly shape.Len() values
//
// Returns:
//   - Array: The wrapped array
//   - error: ErrInvalidShape for an invalid shape, ErrShapeMismatch if len(data) != shape.Len()
func NewArray(shape index.Shape, data []float64) (Array, error) {
	if err := shape.Validate(); err != nil {
		return Array{}, err
	}
	if len(data) != shape.Len() {
		return Array{}, fmt.Errorf("%w: %d samples for shape %s", errs.ErrShapeMismatch, len(data), shape)
	}

	return Array{Shape: shape.Clone(), Data: data}, nil
}

// Generate builds an array by evaluating fn at every multi-index of shape.
//
// This is the usual way to sample an analytic field on a grid:
//
//	arr, _ := grid.Generate(index.Shape{10, 12}, func(idx []int) float64 {
//	    x, y := float64(idx[0]), float64(idx[1])
//	    return (x-4)*(x-4) + (y-5)*(y-5)
//	})
func Generate(shape index.Shape, fn func(idx []int) float64) (Array, error) {
	cidx, err := index.NewCartesianIndices(shape)
	if err != nil {
		return Array{}, err
	}

	data := make([]float64, cidx.Len())
	for flat, idx := range cidx.All() {
		data[flat] = fn(idx)
	}

	return Array{Shape: shape.Clone(), Data: data}, nil
}

// Ndim returns the number of axes.
func (a Array) Ndim() int {
	return len(a.Shape)
}

// Len returns the total number of samples.
func (a Array) Len() int {
	return len(a.Data)
}

// At returns the sample at the given multi-index.
func (a Array) At(idx ...int) (float64, error) {
	lidx, err := index.NewLinearIndices(a.Shape)
	if err != nil {
		return 0, err
	}

	flat, err := lidx.Offset(idx...)
	if err != nil {
		return 0, err
	}

	return a.Data[flat], nil
}

// Layers returns the extent of the leading axis.
func (a Array) Layers() int {
	if len(a.Shape) == 0 {
		return 0
	}

	return a.Shape[0]
}

// Layer returns the i-th slice along the leading axis as a view sharing a's storage.
//
// The returned array has one axis fewer than a.
//
// Returns:
//   - Array: The slice view
//   - error: ErrShapeMismatch if a has fewer than two axes, ErrIndexOutOfRange if i is
//     outside [0, Layers())
func (a Array) Layer(i int) (Array, error) {
	if len(a.Shape) < 2 {
		return Array{}, fmt.Errorf("%w: layered array needs at least 2 axes, got %d", errs.ErrShapeMismatch, len(a.Shape))
	}
	if i < 0 || i >= a.Shape[0] {
		return Array{}, fmt.Errorf("%w: layer %d not in [0, %d)", errs.ErrIndexOutOfRange, i, a.Shape[0])
	}

	sub := a.Shape[1:].Clone()
	n := sub.Len()

	return Array{Shape: sub, Data: a.Data[i*n : (i+1)*n : (i+1)*n]}, nil
}
