// Package index provides bijective mappings between flat 0-based offsets and
// N-dimensional multi-indices over a Shape.
//
// Two enumerators are provided:
//
//   - LinearIndices maps a flat offset to itself and computes flat offsets from
//     multi-indices using row-major strides.
//   - CartesianIndices decomposes a flat offset into a multi-index by mixed-radix
//     decomposition, first axis varying slowest.
//
// Both enumerators are immutable, compute every value on demand and iterate in
// ascending flat order (All) or descending flat order (Backward):
//
//	ci, _ := index.NewCartesianIndices(index.Shape{2, 3})
//	for flat, idx := range ci.All() {
//	    fmt.Println(flat, idx) // 0 [0 0], 1 [0 1], 2 [0 2], 3 [1 0], ...
//	}
//
// # Thread Safety
//
// All types in this package are read-only after construction and safe for concurrent use.
package index
