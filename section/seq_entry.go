package section

import (
	"github.com/arloliu/mclip/endian"
)

// SeqEntry tells a runtime where the samples of one channel live.
//
// An animated channel points at its first sample with Stride floats between
// frames. A constant channel points at its min component in the track info with
// Stride 0. A channel without a source has Offset 0 and Stride 0.
type SeqEntry struct {
	Offset  int32 // byte offset 0, relative to the clip start
	Node    uint16
	Channel uint8
	Stride  uint8
}

// IsSourced reports whether the entry refers to stored data.
func (e SeqEntry) IsSourced() bool {
	return e.Offset != 0
}

// IsConstant reports whether the entry refers to a single value.
func (e SeqEntry) IsConstant() bool {
	return e.Offset != 0 && e.Stride == 0
}

// AppendTo appends the 8-byte entry to dst.
func (e SeqEntry) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, uint32(e.Offset)) //nolint: gosec
	dst = engine.AppendUint16(dst, e.Node)

	return append(dst, e.Channel, e.Stride)
}

// ParseSeqEntry parses an entry from data[0:SeqEntrySize].
func ParseSeqEntry(data []byte, engine endian.EndianEngine) SeqEntry {
	return SeqEntry{
		Offset:  endian.Int32(engine, data[0:4]),
		Node:    engine.Uint16(data[4:6]),
		Channel: data[6],
		Stride:  data[7],
	}
}
