// Package units holds the physical constants and grid units used to interpret
// potential data.
//
// Potential grids are sampled in millimeters and solved per unit electrode voltage.
// The table is computed once on first use and is read-only afterwards.
package units

import (
	"fmt"
	"math"
	"sync"

	"github.com/arloliu/trapdc/errs"
)

const (
	// ElementaryCharge in coulomb.
	ElementaryCharge = 1.602176634e-19
	// AtomicMassUnit in kilogram.
	AtomicMassUnit = 1.66053906660e-27
	// ElectronMass in kilogram.
	ElectronMass = 9.1093837015e-31

	yb171AtomicMass = 170.9363315
)

// Table is the unit system of a potential grid.
type Table struct {
	// Charge of the trapped ion in coulomb.
	Charge float64
	// Mass of the trapped ion in kilogram.
	Mass float64
	// Length is the grid length unit in meter.
	Length float64
	// Voltage is the electrode voltage unit in volt.
	Voltage float64
}

var defaultTable = sync.OnceValue(func() Table {
	return Table{
		Charge:  ElementaryCharge,
		Mass:    yb171AtomicMass*AtomicMassUnit - ElectronMass,
		Length:  1e-3,
		Voltage: 1,
	}
})

// Default returns the units for a singly charged 171Yb+ ion in a millimeter grid.
func Default() Table {
	return defaultTable()
}

// HarmonicFrequency converts a quadratic potential coefficient c2, so that
// V(x) = c2 * x^2 in grid units, to the secular frequency in Hz.
//
// Returns ErrInvalidOption for a non-confining (negative) or non-finite coefficient.
func (t Table) HarmonicFrequency(c2 float64) (float64, error) {
	if c2 < 0 || math.IsNaN(c2) || math.IsInf(c2, 0) {
		return 0, fmt.Errorf("%w: quadratic coefficient %g is not confining", errs.ErrInvalidOption, c2)
	}

	k := 2 * t.Charge * c2 * t.Voltage / (t.Length * t.Length)

	return math.Sqrt(k/t.Mass) / (2 * math.Pi), nil
}

// QuadraticCoefficient is the inverse of HarmonicFrequency.
func (t Table) QuadraticCoefficient(freq float64) float64 {
	omega := 2 * math.Pi * freq
	return omega * omega * t.Mass * t.Length * t.Length / (2 * t.Charge * t.Voltage)
}

// Axis maps physical positions along one grid axis to fractional grid indices.
type Axis struct {
	// Origin is the position of index 0 in meter.
	Origin float64
	// Step is the grid spacing in meter.
	Step float64
}

// NewAxis creates an axis. step must be positive and finite.
func NewAxis(origin, step float64) (Axis, error) {
	if !(step > 0) || math.IsInf(step, 0) || math.IsNaN(origin) || math.IsInf(origin, 0) {
		return Axis{}, fmt.Errorf("%w: axis origin %g step %g", errs.ErrInvalidOption, origin, step)
	}

	return Axis{Origin: origin, Step: step}, nil
}

// ToIndex returns the fractional grid index of position pos in meter.
func (a Axis) ToIndex(pos float64) float64 {
	return (pos - a.Origin) / a.Step
}

// ToPosition returns the position in meter of fractional index idx.
func (a Axis) ToPosition(idx float64) float64 {
	return a.Origin + idx*a.Step
}
