// Package solutions locates flat points (zero-gradient extrema and saddles) of sampled
// trap potentials.
//
// Each slice is fit with a local polynomial model (package fitting, order 3 per axis by
// default) and the model gradient is driven to zero with a damped Newton iteration on a
// central-difference Jacobian. When Newton stalls, BFGS minimizes |grad|^2 and Newton
// polishes the result. A solve that still does not converge returns errs.ErrRootNotFound;
// the solver never substitutes its initial guess.
//
// FindAllFlatPoints walks the layers of an (L, s1, ..., sN) array in order, seeding each
// layer with the previous layer's solution:
//
//	track, err := solutions.FindAllFlatPoints(samples, nil)
//	if err != nil {
//	    return err
//	}
//	y, z := track.At(0, layer), track.At(1, layer)
//
// All coordinates are grid-index coordinates of the slice.
package solutions
