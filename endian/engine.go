// Package endian selects the byte order used for archive payloads.
//
// An EndianEngine combines binary.ByteOrder and binary.AppendByteOrder, so archive
// encoders can both patch fixed offsets and append values with one handle:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, math.Float64bits(v))
//
// Archives are little-endian unless written with archive.WithBigEndian. All functions
// are safe for concurrent use; engines are stateless.
package endian

import (
	"encoding/binary"
	"sync"
	"unsafe"
)

// EndianEngine is a byte order usable for both fixed-offset and append-style encoding.
//
// binary.LittleEndian and binary.BigEndian satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var native = sync.OnceValue(func() EndianEngine {
	// 0x0100 stores 0x01 first only on big-endian hosts.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
})

// Native returns the host byte order.
func Native() EndianEngine {
	return native()
}

// IsNative reports whether engine matches the host byte order, in which case float64
// payloads can be reinterpreted in place instead of decoded value by value.
func IsNative(engine EndianEngine) bool {
	return engine == Native()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// FromFlag returns the big-endian engine when bigEndian is set, else little-endian.
func FromFlag(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
