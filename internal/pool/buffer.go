package pool

import "sync"

const (
	// ArchiveBufferDefaultSize is the initial capacity of buffers handed out for archive encoding.
	ArchiveBufferDefaultSize = 1024 * 16 // 16KiB
	// ArchiveBufferMaxThreshold is the largest buffer capacity kept in the pool.
	ArchiveBufferMaxThreshold = 1024 * 1024 // 1MiB
)

// ByteBuffer is a growable byte slice that can be recycled through a pool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer but keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow ensures the buffer can take n more bytes without reallocating.
//
// Small buffers grow by ArchiveBufferDefaultSize, larger ones by 25% of their capacity.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := ArchiveBufferDefaultSize
	if cap(bb.B) > 4*ArchiveBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	growBy = max(growBy, n)

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Extend grows the buffer if needed and lengthens it by n bytes, returning the new tail.
func (bb *ByteBuffer) Extend(n int) []byte {
	bb.Grow(n)
	start := len(bb.B)
	bb.B = bb.B[:start+n]

	return bb.B[start : start+n]
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

var archiveBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, ArchiveBufferDefaultSize)}
	},
}

// GetBuffer retrieves an empty ByteBuffer from the pool.
func GetBuffer() *ByteBuffer {
	bb, _ := archiveBufferPool.Get().(*ByteBuffer)
	return bb
}

// PutBuffer returns a ByteBuffer to the pool.
//
// Buffers above ArchiveBufferMaxThreshold are dropped to avoid retaining large allocations.
func PutBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > ArchiveBufferMaxThreshold {
		return
	}

	bb.Reset()
	archiveBufferPool.Put(bb)
}
