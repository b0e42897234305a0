// Package pool provides sync.Pool backed scratch storage for hot numeric loops and
// archive encoding.
package pool

import "sync"

var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves a zeroed float64 slice of length size from the pool.
//
// The caller must call the returned cleanup function to return the slice to the pool.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []float64: A zeroed slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer)
//
// Example:
//
//	powers, cleanup := pool.GetFloat64Slice(ndim * (order + 1))
//	defer cleanup()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)

	slice := *ptr
	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
		clear(slice)
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}
