// Package centers provides linear lookup of precomputed transverse trap centers
// (for example the RF null y/z position) as a function of a fractional axial index.
package centers

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/trapdc/errs"
)

// Table maps a fractional layer index to a 2-component center.
//
// The backing storage is a 2 x N matrix: row 0 holds the first transverse coordinate
// and row 1 the second, one column per integer layer index. Lookups interpolate
// linearly between neighboring columns and clamp to [0, N-1].
//
// A Table is immutable and safe for concurrent use.
type Table struct {
	data *mat.Dense
	n    int
}

// NewTable creates a table from the two coordinate tracks.
//
// Parameters:
//   - ys: First coordinate per integer index
//   - zs: Second coordinate per integer index; must have the same length as ys
//
// Returns:
//   - *Table: The table; the inputs are copied
//   - error: ErrInvalidShape if the tracks are empty, ErrShapeMismatch if their
//     lengths differ
func NewTable(ys, zs []float64) (*Table, error) {
	if len(ys) == 0 {
		return nil, fmt.Errorf("%w: center table needs at least one entry", errs.ErrInvalidShape)
	}
	if len(ys) != len(zs) {
		return nil, fmt.Errorf("%w: %d first coordinates and %d second coordinates", errs.ErrShapeMismatch, len(ys), len(zs))
	}

	n := len(ys)
	data := mat.NewDense(2, n, nil)
	data.SetRow(0, ys)
	data.SetRow(1, zs)

	return &Table{data: data, n: n}, nil
}

// NewTableFromTrajectory creates a table from a 2 x N matrix, such as the output of
// solutions.FindAllFlatPoints on two-axis slices.
//
// The matrix is copied.
func NewTableFromTrajectory(m mat.Matrix) (*Table, error) {
	rows, cols := m.Dims()
	if rows != 2 {
		return nil, fmt.Errorf("%w: trajectory has %d rows, want 2", errs.ErrShapeMismatch, rows)
	}
	if cols == 0 {
		return nil, fmt.Errorf("%w: center table needs at least one entry", errs.ErrInvalidShape)
	}

	data := mat.DenseCopyOf(m)

	return &Table{data: data, n: cols}, nil
}

// Len returns the number of integer entries.
func (t *Table) Len() int {
	return t.n
}

// Row returns a copy of coordinate track i (0 or 1).
func (t *Table) Row(i int) ([]float64, error) {
	if i < 0 || i > 1 {
		return nil, fmt.Errorf("%w: row %d not in [0, 2)", errs.ErrIndexOutOfRange, i)
	}

	return slices.Clone(t.data.RawRowView(i)), nil
}

// Get returns the interpolated center at fractional index x.
//
// x is clamped to [0, Len()-1]; NaN is treated as 0. Between integer indices lo and
// lo+1 the result is (1-w)*table[lo] + w*table[lo+1] with w = x - lo.
func (t *Table) Get(x float64) (float64, float64) {
	last := float64(t.n - 1)
	switch {
	case math.IsNaN(x) || x <= 0:
		x = 0
	case x >= last:
		x = last
	}

	lo := int(math.Floor(x))
	hi := int(math.Ceil(x))
	w := x - float64(lo)

	y := (1-w)*t.data.At(0, lo) + w*t.data.At(0, hi)
	z := (1-w)*t.data.At(1, lo) + w*t.data.At(1, hi)

	return y, z
}
