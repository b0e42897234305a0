package encoding

import (
	"fmt"
	"iter"
	"math"
	"unsafe"

	"github.com/arloliu/trapdc/endian"
	"github.com/arloliu/trapdc/errs"
	"github.com/arloliu/trapdc/internal/pool"
)

// Float64Encoder appends fixed-width values to a pooled buffer.
//
// The encoder is not safe for concurrent use. Call Finish to return its buffer to
// the pool; Bytes must not be used afterwards.
type Float64Encoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

// NewFloat64Encoder creates an encoder writing in engine's byte order.
func NewFloat64Encoder(engine endian.EndianEngine) *Float64Encoder {
	return &Float64Encoder{
		engine: engine,
		buf:    pool.GetBuffer(),
	}
}

// Write appends one float64.
//
// Panics if Finish has been called.
func (e *Float64Encoder) Write(val float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.engine.PutUint64(e.buf.Extend(8), math.Float64bits(val))
}

// WriteSlice appends every value of values, growing the buffer once.
//
// Panics if Finish has been called.
func (e *Float64Encoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(values) == 0 {
		return
	}

	e.count += len(values)
	dst := e.buf.Extend(len(values) * 8)
	for i, v := range values {
		e.engine.PutUint64(dst[i*8:i*8+8], math.Float64bits(v))
	}
}

// WriteUint32 appends a 4-byte unsigned field such as a polynomial order.
//
// It does not count toward Len.
func (e *Float64Encoder) WriteUint32(v uint32) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.engine.PutUint32(e.buf.Extend(4), v)
}

// Bytes returns the encoded payload. The slice aliases the internal buffer and is
// valid until the next write, Reset or Finish.
func (e *Float64Encoder) Bytes() []byte {
	if e.buf == nil {
		return nil
	}

	return e.buf.Bytes()
}

// Len returns the number of float64 values written.
func (e *Float64Encoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
func (e *Float64Encoder) Size() int {
	if e.buf == nil {
		return 0
	}

	return e.buf.Len()
}

// Reset discards the written values but keeps the buffer.
func (e *Float64Encoder) Reset() {
	if e.buf != nil {
		e.buf.Reset()
	}
	e.count = 0
}

// Finish returns the buffer to the pool.
func (e *Float64Encoder) Finish() {
	pool.PutBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// Float64Decoder reads payloads produced by Float64Encoder.
//
// Decoders are stateless values and safe for concurrent use.
type Float64Decoder struct {
	engine endian.EndianEngine
}

// NewFloat64Decoder creates a decoder for engine's byte order.
func NewFloat64Decoder(engine endian.EndianEngine) Float64Decoder {
	return Float64Decoder{engine: engine}
}

// At returns value index of a payload holding count float64 values.
//
// The bool is false when index is outside [0, count) or the payload is too short.
func (d Float64Decoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	start := index * 8
	if start+8 > len(data) {
		return 0, false
	}

	return math.Float64frombits(d.engine.Uint64(data[start : start+8])), true
}

// All yields the first count float64 values of data.
//
// Nothing is yielded if data holds fewer than count values.
func (d Float64Decoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 || len(data) < count*8 {
			return
		}

		for i := range count {
			if !yield(math.Float64frombits(d.engine.Uint64(data[i*8 : i*8+8]))) {
				return
			}
		}
	}
}

// Uint32 reads the 4-byte field at byte offset off.
func (d Float64Decoder) Uint32(data []byte, off int) (uint32, bool) {
	if off < 0 || off+4 > len(data) {
		return 0, false
	}

	return d.engine.Uint32(data[off : off+4]), true
}

// DecodeTo fills dst with the first len(dst) float64 values of data.
//
// When the payload byte order is native and data is 8-byte aligned, the values are
// copied straight out of the payload memory.
//
// Returns:
//   - error: ErrInvalidPayload if data holds fewer than len(dst) values
func (d Float64Decoder) DecodeTo(dst []float64, data []byte) error {
	n := len(dst)
	if len(data) < n*8 {
		return fmt.Errorf("%w: %d bytes for %d float64 values", errs.ErrInvalidPayload, len(data), n)
	}
	if n == 0 {
		return nil
	}

	if endian.IsNative(d.engine) && uintptr(unsafe.Pointer(&data[0]))%unsafe.Alignof(float64(0)) == 0 {
		copy(dst, unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), n))
		return nil
	}

	for i := range dst {
		dst[i] = math.Float64frombits(d.engine.Uint64(data[i*8 : i*8+8]))
	}

	return nil
}
