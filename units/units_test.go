package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/trapdc/errs"
)

func TestDefault(t *testing.T) {
	u := Default()
	require.Equal(t, ElementaryCharge, u.Charge)
	require.Equal(t, 1e-3, u.Length)
	require.Equal(t, 1.0, u.Voltage)
	require.InEpsilon(t, 2.8384e-25, u.Mass, 1e-4)

	require.Equal(t, u, Default())
}

func TestHarmonicFrequency(t *testing.T) {
	u := Default()

	f, err := u.HarmonicFrequency(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, f)

	// 1 V/mm^2 gives k = 2 e 1e6 N/m/C.
	f, err = u.HarmonicFrequency(1)
	require.NoError(t, err)
	want := math.Sqrt(2*ElementaryCharge*1e6/u.Mass) / (2 * math.Pi)
	require.InEpsilon(t, want, f, 1e-12)
	require.InDelta(t, 170e3, f, 5e3)

	// Frequency scales with the square root of curvature.
	f4, err := u.HarmonicFrequency(4)
	require.NoError(t, err)
	require.InEpsilon(t, 2*f, f4, 1e-12)

	require.InEpsilon(t, 4.0, u.QuadraticCoefficient(f4), 1e-12)

	for _, c2 := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := u.HarmonicFrequency(c2)
		require.ErrorIs(t, err, errs.ErrInvalidOption)
	}
}

func TestAxis(t *testing.T) {
	a, err := NewAxis(-0.5e-3, 5e-6)
	require.NoError(t, err)

	require.InDelta(t, 100, a.ToIndex(0), 1e-9)
	require.InDelta(t, 0, a.ToIndex(-0.5e-3), 1e-12)
	require.InDelta(t, 2e-6, a.ToPosition(a.ToIndex(2e-6)), 1e-15)

	_, err = NewAxis(0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidOption)
	_, err = NewAxis(math.NaN(), 1)
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}
