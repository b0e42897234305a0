package fitting

import (
	"fmt"
	"slices"

	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/index"
	"github.com/arloliu/trapdc/internal/pool"
)

// PolyFitResult is a multivariate polynomial with per-axis maximum degree Orders().
//
// Coefficients are stored one per term with axis 0 varying fastest. Term and SetTerm
// address a coefficient by its exponents listed from the last axis to the first: for a
// two-axis polynomial in (x, y), Term(p, q) is the coefficient of x^q * y^p.
//
// SetTerm mutates the receiver in place. Every other operation returns a new result,
// except Pos which returns the receiver itself.
type PolyFitResult struct {
	terms  *termTable
	coeffs []float64
}

// NewPolyFitResult creates a polynomial of the given orders.
//
// Parameters:
//   - orders: Polynomial degree along each axis (non-negative)
//   - coeffs: Term coefficients, axis 0 fastest; nil creates the zero polynomial.
//     The slice is copied.
//
// Returns:
//   - *PolyFitResult: The polynomial
//   - error: ErrInvalidShape for invalid orders, ErrShapeMismatch if len(coeffs) is not
//     prod(orders+1)
//
// Example:
//
//	// 1 + 2x + x^3
//	p, _ := fitting.NewPolyFitResult(index.Shape{3}, []float64{1, 2, 0, 1})
//	v, _ := p.Eval(2) // 13
func NewPolyFitResult(orders index.Shape, coeffs []float64) (*PolyFitResult, error) {
	terms, err := newTermTable(orders)
	if err != nil {
		return nil, err
	}

	if coeffs == nil {
		return &PolyFitResult{terms: terms, coeffs: make([]float64, terms.n)}, nil
	}
	if len(coeffs) != terms.n {
		return nil, fmt.Errorf("%w: %d coefficients for orders %s (%d terms)",
			errs.ErrShapeMismatch, len(coeffs), orders, terms.n)
	}

	return &PolyFitResult{terms: terms, coeffs: slices.Clone(coeffs)}, nil
}

func (r *PolyFitResult) derive(coeffs []float64) *PolyFitResult {
	return &PolyFitResult{terms: r.terms, coeffs: coeffs}
}

// Orders returns a copy of the per-axis polynomial degrees.
func (r *PolyFitResult) Orders() index.Shape {
	return r.terms.orders.Clone()
}

// Ndim returns the number of variables.
func (r *PolyFitResult) Ndim() int {
	return r.terms.ndim
}

// NumTerms returns the number of coefficients, prod(orders+1).
func (r *PolyFitResult) NumTerms() int {
	return r.terms.n
}

// Coefficients returns a copy of the coefficient vector, axis 0 fastest.
func (r *PolyFitResult) Coefficients() []float64 {
	return slices.Clone(r.coeffs)
}

// Exponents returns the per-axis exponents of term k, axis 0 first.
func (r *PolyFitResult) Exponents(k int) ([]int, error) {
	if k < 0 || k >= r.terms.n {
		return nil, fmt.Errorf("%w: term %d not in [0, %d)", errs.ErrIndexOutOfRange, k, r.terms.n)
	}

	return slices.Clone(r.terms.exponents(k)), nil
}

// Clone returns an independent copy.
func (r *PolyFitResult) Clone() *PolyFitResult {
	return r.derive(slices.Clone(r.coeffs))
}

// Pos is unary plus. It returns r itself.
func (r *PolyFitResult) Pos() *PolyFitResult {
	return r
}

// Neg returns -r.
func (r *PolyFitResult) Neg() *PolyFitResult {
	return r.Scale(-1)
}

// Add returns r + other.
//
// Returns:
//   - *PolyFitResult: The element-wise coefficient sum
//   - error: ErrShapeMismatch if the orders differ
func (r *PolyFitResult) Add(other *PolyFitResult) (*PolyFitResult, error) {
	if err := r.checkOrders(other); err != nil {
		return nil, err
	}

	out := slices.Clone(r.coeffs)
	for k, c := range other.coeffs {
		out[k] += c
	}

	return r.derive(out), nil
}

// Sub returns r - other.
//
// Returns:
//   - *PolyFitResult: The element-wise coefficient difference
//   - error: ErrShapeMismatch if the orders differ
func (r *PolyFitResult) Sub(other *PolyFitResult) (*PolyFitResult, error) {
	if err := r.checkOrders(other); err != nil {
		return nil, err
	}

	out := slices.Clone(r.coeffs)
	for k, c := range other.coeffs {
		out[k] -= c
	}

	return r.derive(out), nil
}

// Scale returns c * r.
func (r *PolyFitResult) Scale(c float64) *PolyFitResult {
	out := make([]float64, len(r.coeffs))
	for k, v := range r.coeffs {
		out[k] = v * c
	}

	return r.derive(out)
}

// Div returns r / c, defined as r.Scale(1/c).
func (r *PolyFitResult) Div(c float64) *PolyFitResult {
	return r.Scale(1 / c)
}

func (r *PolyFitResult) checkOrders(other *PolyFitResult) error {
	if !r.terms.orders.Equal(other.terms.orders) {
		return fmt.Errorf("%w: orders %s and %s", errs.ErrShapeMismatch, r.terms.orders, other.terms.orders)
	}

	return nil
}

// Eval evaluates the polynomial at pos, one coordinate per axis.
//
// Returns:
//   - float64: sum over terms of coefficient * prod(pos[axis]^exponent[axis])
//   - error: ErrShapeMismatch if len(pos) != Ndim()
func (r *PolyFitResult) Eval(pos ...float64) (float64, error) {
	if err := r.checkPos(pos); err != nil {
		return 0, err
	}

	powers, cleanup := pool.GetFloat64Slice(r.terms.powerTableSize())
	defer cleanup()

	return r.terms.evaluate(r.coeffs, powers, pos), nil
}

// Partial evaluates the partial derivative with respect to axis at pos.
//
// Returns:
//   - float64: d/d(pos[axis]) of the polynomial
//   - error: ErrIndexOutOfRange for a bad axis, ErrShapeMismatch if len(pos) != Ndim()
func (r *PolyFitResult) Partial(axis int, pos ...float64) (float64, error) {
	if err := r.checkAxis(axis); err != nil {
		return 0, err
	}
	if err := r.checkPos(pos); err != nil {
		return 0, err
	}

	powers, cleanup := pool.GetFloat64Slice(r.terms.powerTableSize())
	defer cleanup()

	return r.terms.derivative(r.coeffs, powers, axis, pos), nil
}

func (r *PolyFitResult) checkPos(pos []float64) error {
	if len(pos) != r.terms.ndim {
		return fmt.Errorf("%w: got %d coordinates for %d axes", errs.ErrShapeMismatch, len(pos), r.terms.ndim)
	}

	return nil
}

func (r *PolyFitResult) checkAxis(axis int) error {
	if axis < 0 || axis >= r.terms.ndim {
		return fmt.Errorf("%w: axis %d not in [0, %d)", errs.ErrIndexOutOfRange, axis, r.terms.ndim)
	}

	return nil
}

// Term returns the coefficient addressed by sub, exponents listed from the last axis
// to the first.
func (r *PolyFitResult) Term(sub ...int) (float64, error) {
	k, err := r.terms.subscriptOffset(sub)
	if err != nil {
		return 0, err
	}

	return r.coeffs[k], nil
}

// SetTerm overwrites the coefficient addressed by sub in place.
//
// The subscript order is the same as for Term.
func (r *PolyFitResult) SetTerm(value float64, sub ...int) error {
	k, err := r.terms.subscriptOffset(sub)
	if err != nil {
		return err
	}
	r.coeffs[k] = value

	return nil
}

// Derivative returns the partial derivative polynomial with respect to axis.
//
// The result keeps the same orders; its highest-degree terms along axis are zero.
func (r *PolyFitResult) Derivative(axis int) (*PolyFitResult, error) {
	if err := r.checkAxis(axis); err != nil {
		return nil, err
	}

	out := make([]float64, len(r.coeffs))
	stride := r.terms.strides[axis]
	for k, c := range r.coeffs {
		e := r.terms.exponents(k)[axis]
		if e == 0 || c == 0 {
			continue
		}
		out[k-stride] = float64(e) * c
	}

	return r.derive(out), nil
}

// Shift re-centers the polynomial by offset.
//
// The returned polynomial s satisfies s(x - offset) == r(x) for every x, that is
// s(y) = r(y + offset). Shifts compose additively. Each monomial is expanded with the
// binomial theorem per axis, so the orders are unchanged.
//
// Returns:
//   - *PolyFitResult: The shifted polynomial
//   - error: ErrShapeMismatch if len(offset) != Ndim()
func (r *PolyFitResult) Shift(offset ...float64) (*PolyFitResult, error) {
	if err := r.checkPos(offset); err != nil {
		return nil, err
	}

	t := r.terms
	binom := binomialTable(t.maxExp)
	powers := make([]float64, t.powerTableSize())
	t.fillPowers(powers, offset)
	stride := t.maxExp + 1

	out := make([]float64, t.n)
	for src, c := range r.coeffs {
		if c == 0 {
			continue
		}
		from := t.exponents(src)
		for dst := 0; dst <= src; dst++ {
			to := t.exponents(dst)
			w := c
			for axis, e := range from {
				k := to[axis]
				if k > e {
					w = 0
					break
				}
				w *= binom[e][k] * powers[axis*stride+e-k]
			}
			if w != 0 {
				out[dst] += w
			}
		}
	}

	return r.derive(out), nil
}

// binomialTable returns Pascal's triangle up to row n.
func binomialTable(n int) [][]float64 {
	rows := make([][]float64, n+1)
	for i := range rows {
		rows[i] = make([]float64, i+1)
		rows[i][0], rows[i][i] = 1, 1
		for j := 1; j < i; j++ {
			rows[i][j] = rows[i-1][j-1] + rows[i-1][j]
		}
	}

	return rows
}
