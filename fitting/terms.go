package fitting

import (
	"fmt"

	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/index"
)

// termTable enumerates the monomials of a polynomial with per-axis maximum degree orders.
//
// Term k has exponents exps[k*ndim : (k+1)*ndim]. Axis 0 varies fastest, so the flat
// term index is e[0] + (orders[0]+1)*(e[1] + (orders[1]+1)*(e[2] + ...)). Read as a
// row-major multi-index, the subscript of a term lists exponents from the last axis
// to the first.
type termTable struct {
	orders  index.Shape
	ndim    int
	n       int
	maxExp  int
	strides []int
	exps    []int
}

// MaxTermEntries bounds prod(orders+1) * len(orders), the size of a polynomial's
// exponent table.
const MaxTermEntries = 1 << 24

func validateOrders(orders index.Shape) error {
	if len(orders) == 0 {
		return fmt.Errorf("%w: orders must have at least one axis", errs.ErrInvalidShape)
	}
	for axis, o := range orders {
		if o < 0 {
			return fmt.Errorf("%w: order %d of axis %d is negative", errs.ErrInvalidShape, o, axis)
		}
	}

	if _, err := NumTerms(orders); err != nil {
		return err
	}

	return nil
}

// NumTerms returns prod(orders+1), the number of terms of a polynomial with the given
// per-axis degrees.
//
// Returns ErrInvalidShape for negative orders or when the exponent table would exceed
// MaxTermEntries.
func NumTerms(orders index.Shape) (int, error) {
	limit := MaxTermEntries / max(len(orders), 1)
	n := 1
	for axis, o := range orders {
		if o < 0 {
			return 0, fmt.Errorf("%w: order %d of axis %d is negative", errs.ErrInvalidShape, o, axis)
		}
		if o >= limit || n > limit/(o+1) {
			return 0, fmt.Errorf("%w: orders %s exceed %d exponent entries", errs.ErrInvalidShape, orders, MaxTermEntries)
		}
		n *= o + 1
	}

	return n, nil
}

func newTermTable(orders index.Shape) (*termTable, error) {
	if err := validateOrders(orders); err != nil {
		return nil, err
	}

	ndim := len(orders)
	t := &termTable{
		orders:  orders.Clone(),
		ndim:    ndim,
		strides: make([]int, ndim),
	}

	n := 1
	for axis, o := range orders {
		t.strides[axis] = n
		n *= o + 1
		t.maxExp = max(t.maxExp, o)
	}
	t.n = n

	// The reversed term shape read in row-major order is exactly the axis-0-fastest layout.
	cidx, err := index.NewCartesianIndices(orders.AddScalar(1).Reversed())
	if err != nil {
		return nil, err
	}

	t.exps = make([]int, n*ndim)
	for k, sub := range cidx.All() {
		for j, e := range sub {
			t.exps[k*ndim+ndim-1-j] = e
		}
	}

	return t, nil
}

// exponents returns the exponent slice of term k. The slice must not be modified.
func (t *termTable) exponents(k int) []int {
	return t.exps[k*t.ndim : (k+1)*t.ndim]
}

// offsetOf returns the flat term index of a per-axis exponent tuple.
func (t *termTable) offsetOf(exps []int) int {
	k := 0
	for axis, e := range exps {
		k += e * t.strides[axis]
	}

	return k
}

// subscriptOffset maps a last-axis-first subscript to a flat term index.
func (t *termTable) subscriptOffset(sub []int) (int, error) {
	if len(sub) != t.ndim {
		return 0, fmt.Errorf("%w: got %d subscripts for %d axes", errs.ErrShapeMismatch, len(sub), t.ndim)
	}

	k := 0
	for j, e := range sub {
		axis := t.ndim - 1 - j
		if e < 0 || e > t.orders[axis] {
			return 0, fmt.Errorf("%w: exponent %d on axis %d not in [0, %d]",
				errs.ErrIndexOutOfRange, e, axis, t.orders[axis])
		}
		k += e * t.strides[axis]
	}

	return k, nil
}

// fillPowers writes pos[axis]^p into powers[axis*(maxExp+1)+p] for p in [0, maxExp].
func (t *termTable) fillPowers(powers, pos []float64) {
	stride := t.maxExp + 1
	for axis, x := range pos {
		row := powers[axis*stride : (axis+1)*stride]
		row[0] = 1
		for p := 1; p < stride; p++ {
			row[p] = row[p-1] * x
		}
	}
}

// monomial returns the value of term k given a filled power table.
func (t *termTable) monomial(powers []float64, k int) float64 {
	stride := t.maxExp + 1
	v := 1.0
	for axis, e := range t.exponents(k) {
		v *= powers[axis*stride+e]
	}

	return v
}

// evaluate returns sum_k coeffs[k] * monomial_k(pos).
func (t *termTable) evaluate(coeffs []float64, powers []float64, pos []float64) float64 {
	t.fillPowers(powers, pos)

	sum := 0.0
	for k, c := range coeffs {
		if c == 0 {
			continue
		}
		sum += c * t.monomial(powers, k)
	}

	return sum
}

// derivative returns d/d(pos[axis]) of sum_k coeffs[k] * monomial_k(pos).
func (t *termTable) derivative(coeffs []float64, powers []float64, axis int, pos []float64) float64 {
	t.fillPowers(powers, pos)

	stride := t.maxExp + 1
	sum := 0.0
	for k, c := range coeffs {
		exps := t.exponents(k)
		ea := exps[axis]
		if c == 0 || ea == 0 {
			continue
		}

		v := c * float64(ea)
		for b, e := range exps {
			if b == axis {
				v *= powers[b*stride+e-1]
			} else {
				v *= powers[b*stride+e]
			}
		}
		sum += v
	}

	return sum
}

// powerTableSize is the scratch length fillPowers needs.
func (t *termTable) powerTableSize() int {
	return t.ndim * (t.maxExp + 1)
}
