// Package endian provides the byte order abstraction used by the MCLP and MLIB
// wire formats.
//
// EndianEngine combines encoding/binary's ByteOrder and AppendByteOrder so one
// value can both patch fixed offsets in place and append to a growing buffer.
// Both on-disk formats are little-endian; the big-endian engine exists for tests
// and tooling that inspect foreign dumps.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, frameCount)
//	buf = endian.AppendFloat32(engine, buf, fps)
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// PutFloat32 stores the IEEE-754 bits of v into b[0:4].
func PutFloat32(engine EndianEngine, b []byte, v float32) {
	engine.PutUint32(b, math.Float32bits(v))
}

// Float32 reads an IEEE-754 float32 from b[0:4].
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}

// AppendFloat32 appends the IEEE-754 bits of v to b.
func AppendFloat32(engine EndianEngine, b []byte, v float32) []byte {
	return engine.AppendUint32(b, math.Float32bits(v))
}

// PutInt32 stores a signed 32-bit value into b[0:4].
func PutInt32(engine EndianEngine, b []byte, v int32) {
	engine.PutUint32(b, uint32(v)) //nolint: gosec
}

// Int32 reads a signed 32-bit value from b[0:4].
func Int32(engine EndianEngine, b []byte) int32 {
	return int32(engine.Uint32(b)) //nolint: gosec
}
