package section

import (
	"fmt"

	"github.com/arloliu/mclip/endian"
	"github.com/arloliu/mclip/errs"
)

// ClipHeader is the fixed 0x60-byte header at the start of every MCLP clip.
//
// All offsets are relative to the first byte of the clip.
type ClipHeader struct {
	// Size is the total byte length of the clip.
	Size uint32 // byte offset 0x04
	// FPS is the sample rate of all tracks.
	FPS float32 // byte offset 0x08
	// FrameCount is the number of samples per animated axis.
	FrameCount int32 // byte offset 0x0C
	// NodeCount is the number of node records following the header.
	NodeCount int32 // byte offset 0x10
	// HashOffset points at the ascending node-name hash array.
	HashOffset uint32 // byte offset 0x14
	// EvalOffset points at the eval table.
	EvalOffset uint32 // byte offset 0x18
	// SeqOffset points at the sequence table.
	SeqOffset uint32 // byte offset 0x1C
	// Name is the source clip name.
	Name string // byte offset 0x20, fixed string
}

// WriteToSlice serializes the header into data[offset:offset+ClipHeaderSize].
//
// Parameters:
//   - data: Pre-allocated byte slice
//   - offset: Starting position in data slice
//   - engine: Endian engine for byte order
//
// Returns:
//   - int: Next write position (offset + ClipHeaderSize)
//   - bool: true if the name was truncated to fit the fixed string
func (h *ClipHeader) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) (int, bool) {
	b := data[offset : offset+ClipHeaderSize]
	engine.PutUint32(b[ClipMagicOffset:], MagicClip)
	engine.PutUint32(b[ClipSizeOffset:], h.Size)
	endian.PutFloat32(engine, b[ClipFPSOffset:], h.FPS)
	endian.PutInt32(engine, b[ClipFrameCountOffset:], h.FrameCount)
	endian.PutInt32(engine, b[ClipNodeCountOffset:], h.NodeCount)
	engine.PutUint32(b[ClipHashOffset:], h.HashOffset)
	engine.PutUint32(b[ClipEvalOffset:], h.EvalOffset)
	engine.PutUint32(b[ClipSeqOffset:], h.SeqOffset)
	truncated := PutFixStr(b[ClipNameOffset:], h.Name)

	return offset + ClipHeaderSize, truncated
}

// Bytes serializes the header into a new ClipHeaderSize byte slice.
func (h *ClipHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, ClipHeaderSize)
	h.WriteToSlice(b, 0, engine)

	return b
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice starting at the clip (must be at least ClipHeaderSize bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is too short, ErrInvalidFormat on a bad magic
func (h *ClipHeader) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < ClipHeaderSize {
		return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrInvalidHeaderSize, ClipHeaderSize, len(data))
	}

	if magic := engine.Uint32(data[ClipMagicOffset:]); magic != MagicClip {
		return fmt.Errorf("%w: bad clip magic 0x%08X", errs.ErrInvalidFormat, magic)
	}

	h.Size = engine.Uint32(data[ClipSizeOffset:])
	h.FPS = endian.Float32(engine, data[ClipFPSOffset:])
	h.FrameCount = endian.Int32(engine, data[ClipFrameCountOffset:])
	h.NodeCount = endian.Int32(engine, data[ClipNodeCountOffset:])
	h.HashOffset = engine.Uint32(data[ClipHashOffset:])
	h.EvalOffset = engine.Uint32(data[ClipEvalOffset:])
	h.SeqOffset = engine.Uint32(data[ClipSeqOffset:])
	h.Name = FixStr(data[ClipNameOffset:])

	return nil
}

// ParseClipHeader parses a ClipHeader from the start of data.
//
// Returns:
//   - ClipHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or ErrInvalidFormat
func ParseClipHeader(data []byte, engine endian.EndianEngine) (ClipHeader, error) {
	h := ClipHeader{}
	if err := h.Parse(data, engine); err != nil {
		return ClipHeader{}, err
	}

	return h, nil
}
