// Package hash provides the xxHash64-based keys and checksums used across trapdc.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Checksum computes the xxHash64 of a payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Geometry computes a key identifying a fit geometry: polynomial orders, grid sizes and
// grid center.
//
// Each section is length-prefixed so that, for example, orders (1, 2) with sizes (3)
// never hashes the same byte stream as orders (1) with sizes (2, 3).
func Geometry(orders, sizes []int, center []float64) uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	writeU64(uint64(len(orders)))
	for _, o := range orders {
		writeU64(uint64(o))
	}
	writeU64(uint64(len(sizes)))
	for _, s := range sizes {
		writeU64(uint64(s))
	}
	writeU64(uint64(len(center)))
	for _, c := range center {
		writeU64(math.Float64bits(c))
	}

	return d.Sum64()
}
