package section

import (
	"math/bits"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/arloliu/mclip/endian"
	"github.com/arloliu/mclip/format"
)

// TrackInfo is the 32-byte descriptor of one node track.
type TrackInfo struct {
	Min      mgl32.Vec3 // byte offset 0x00
	Max      mgl32.Vec3 // byte offset 0x0C
	SrcMask  uint8      // byte offset 0x18
	DataMask uint8      // byte offset 0x19
	Stride   uint8      // byte offset 0x1A
}

// StrideOf returns the number of interleaved floats per frame for a data mask.
func StrideOf(dataMask uint8) int {
	return bits.OnesCount8(dataMask & AxisMask)
}

// HasSource reports whether any axis of the track has a source channel.
func (t *TrackInfo) HasSource() bool {
	return t.SrcMask&AxisMask != 0
}

// IsAnimated reports whether any axis of the track varies.
func (t *TrackInfo) IsAnimated() bool {
	return t.DataMask&AxisMask != 0
}

// Channels returns the number of sourced axes.
func (t *TrackInfo) Channels() int {
	return bits.OnesCount8(t.SrcMask & AxisMask)
}

// Curves returns the number of sourced axes that vary.
func (t *TrackInfo) Curves() int {
	return bits.OnesCount8(t.SrcMask & t.DataMask & AxisMask)
}

// WriteToSlice serializes the track info at data[offset:] and returns the next position.
func (t *TrackInfo) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	b := data[offset : offset+TrackInfoSize]
	for i := range 3 {
		endian.PutFloat32(engine, b[TrackMinOffset+i*4:], t.Min[i])
		endian.PutFloat32(engine, b[TrackMaxOffset+i*4:], t.Max[i])
	}
	b[TrackSrcMaskOffset] = t.SrcMask
	b[TrackDataMaskOffset] = t.DataMask
	b[TrackStrideOffset] = t.Stride
	clear(b[TrackStrideOffset+1:])

	return offset + TrackInfoSize
}

// ParseTrackInfo parses a TrackInfo from data[0:TrackInfoSize].
func ParseTrackInfo(data []byte, engine endian.EndianEngine) TrackInfo {
	var t TrackInfo
	for i := range 3 {
		t.Min[i] = endian.Float32(engine, data[TrackMinOffset+i*4:])
		t.Max[i] = endian.Float32(engine, data[TrackMaxOffset+i*4:])
	}
	t.SrcMask = data[TrackSrcMaskOffset]
	t.DataMask = data[TrackDataMaskOffset]
	t.Stride = data[TrackStrideOffset]

	return t
}

// NodeRecord is the fixed 0xB0-byte record describing one node.
type NodeRecord struct {
	Name       string                           // byte offset 0x00, fixed string
	DataOffset [format.TrackKindCount]uint32    // byte offset 0x40, 0 for tracks without samples
	XformOrder format.TransformOrder            // byte offset 0x4C
	RotOrder   format.RotationOrder             // byte offset 0x4D
	Tracks     [format.TrackKindCount]TrackInfo // byte offset 0x50
}

// DataOffsetPos returns the position of the data offset field of the given kind,
// relative to the record start. The encoder back-patches these fields.
func DataOffsetPos(kind format.TrackKind) int {
	return NodeDataOffset + int(kind)*4
}

// TrackInfoPos returns the position of the track info of the given kind,
// relative to the record start.
func TrackInfoPos(kind format.TrackKind) int {
	return NodeTrackInfoOffset + int(kind)*TrackInfoSize
}

// WriteToSlice serializes the record at data[offset:].
//
// Returns:
//   - int: Next write position (offset + NodeRecordSize)
//   - bool: true if the name was truncated to fit the fixed string
func (r *NodeRecord) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) (int, bool) {
	b := data[offset : offset+NodeRecordSize]
	truncated := PutFixStr(b[NodeNameOffset:], r.Name)
	for k := range format.TrackKindCount {
		engine.PutUint32(b[DataOffsetPos(format.TrackKind(k)):], r.DataOffset[k])
	}
	b[NodeXformOrdOffset] = uint8(r.XformOrder)
	b[NodeRotOrdOffset] = uint8(r.RotOrder)
	b[NodeRotOrdOffset+1] = 0
	b[NodeRotOrdOffset+2] = 0

	pos := NodeTrackInfoOffset
	for k := range format.TrackKindCount {
		pos = r.Tracks[k].WriteToSlice(b, pos, engine)
	}

	return offset + NodeRecordSize, truncated
}

// ParseNodeRecord parses a NodeRecord from data[0:NodeRecordSize].
// The caller guarantees the slice length.
func ParseNodeRecord(data []byte, engine endian.EndianEngine) NodeRecord {
	r := NodeRecord{
		Name:       FixStr(data[NodeNameOffset:]),
		XformOrder: format.TransformOrder(data[NodeXformOrdOffset]),
		RotOrder:   format.RotationOrder(data[NodeRotOrdOffset]),
	}
	for k := range format.TrackKindCount {
		kind := format.TrackKind(k)
		r.DataOffset[k] = engine.Uint32(data[DataOffsetPos(kind):])
		r.Tracks[k] = ParseTrackInfo(data[TrackInfoPos(kind):], engine)
	}

	return r
}
