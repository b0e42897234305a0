// Package fitting builds local multivariate polynomial models of sampled fields.
//
// # Overview
//
// A PolyFitter describes the geometry of a fit: per-axis polynomial orders, the sample
// grid extent and the grid coordinate used as polynomial origin. It precomputes the
// scaled monomial design matrix and its pseudo-inverse once; every subsequent fit
// against a sample array of that geometry is a single matrix-vector product.
//
//	fitter, err := fitting.NewPolyFitter(index.Shape{3, 3}, fitting.WithSizes(10, 12))
//	if err != nil {
//	    return err
//	}
//
//	cache, err := fitter.Fit(samples) // samples.Shape == {10, 12}
//	if err != nil {
//	    return err
//	}
//
//	v, _ := cache.Value(4.2, 5.7)       // model value at a grid-index coordinate
//	gx, _ := cache.Gradient(0, 4.2, 5.7) // d/dx at the same point
//
// # Basis Scaling
//
// Each term's basis column is divided by prod(max((sizes[axis]-1)/2, 1)^exponent),
// which keeps basis magnitudes near unity for large grids and the least-squares
// problem well conditioned.
//
// # Polynomial Algebra
//
// PolyFitResult is the polynomial value object: Add, Sub, Neg, Scale, Div, Eval,
// Partial, Derivative, Shift and per-term access via Term and SetTerm. The cache's
// Result method converts a fit into a PolyFitResult in centered coordinates.
//
// # Term Ordering
//
// Coefficients are stored with axis 0 varying fastest. Term and SetTerm take exponents
// from the last axis to the first, so for two axes (x, y) Term(p, q) addresses x^q*y^p.
package fitting
