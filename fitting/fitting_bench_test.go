package fitting

import (
	"testing"

	"github.com/arloliu/trapdc/grid"
	"github.com/arloliu/trapdc/index"
)

func benchSamples(b *testing.B, sizes index.Shape) grid.Array {
	b.Helper()

	arr, err := grid.Generate(sizes, func(idx []int) float64 {
		return referencePoly(float64(idx[0]), float64(idx[1]))
	})
	if err != nil {
		b.Fatal(err)
	}

	return arr
}

func BenchmarkNewPolyFitter(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		if _, err := NewPolyFitter(index.Shape{3, 3}, WithSizes(10, 12)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFit(b *testing.B) {
	f, err := NewPolyFitter(index.Shape{3, 3}, WithSizes(10, 12))
	if err != nil {
		b.Fatal(err)
	}
	samples := benchSamples(b, index.Shape{10, 12})

	b.ReportAllocs()
	for b.Loop() {
		if _, err := f.Fit(samples); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGradientTo(b *testing.B) {
	f, err := NewPolyFitter(index.Shape{3, 3}, WithSizes(10, 12))
	if err != nil {
		b.Fatal(err)
	}
	cache, err := f.Fit(benchSamples(b, index.Shape{10, 12}))
	if err != nil {
		b.Fatal(err)
	}

	pos := []float64{4.3, 5.1}
	dst := make([]float64, 2)

	b.ReportAllocs()
	for b.Loop() {
		if err := cache.GradientTo(dst, pos); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkShift(b *testing.B) {
	coeffs := make([]float64, 64)
	for k := range coeffs {
		coeffs[k] = float64(k%7) - 3
	}
	r, err := NewPolyFitResult(index.Shape{3, 3, 3}, coeffs)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := r.Shift(0.5, -1, 2); err != nil {
			b.Fatal(err)
		}
	}
}
