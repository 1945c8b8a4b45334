package section

import (
	"fmt"

	"github.com/arloliu/mclip/endian"
	"github.com/arloliu/mclip/errs"
	"github.com/arloliu/mclip/format"
)

// Library header flags.
const (
	LibFlagChecksums uint8 = 0x01 // directory entries carry xxHash64 checksums
)

// LibHeader is the fixed 32-byte header of an MLIB clip library.
type LibHeader struct {
	Size          uint32                 // byte offset 4: total library size
	ClipCount     uint32                 // byte offset 8
	RawSize       uint32                 // byte offset 12: uncompressed payload size
	Compression   format.CompressionType // byte offset 16
	Flags         uint8                  // byte offset 17
	DirOffset     uint32                 // byte offset 20: -> directory
	NamesOffset   uint32                 // byte offset 24: -> names payload
	PayloadOffset uint32                 // byte offset 28: -> clip payload
}

// HasChecksums reports whether directory checksums are populated.
func (h LibHeader) HasChecksums() bool {
	return h.Flags&LibFlagChecksums != 0
}

// Bytes serializes the header into a new LibHeaderSize byte slice.
func (h *LibHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, LibHeaderSize)
	engine.PutUint32(b[0:4], MagicLibrary)
	engine.PutUint32(b[4:8], h.Size)
	engine.PutUint32(b[8:12], h.ClipCount)
	engine.PutUint32(b[12:16], h.RawSize)
	b[16] = uint8(h.Compression)
	b[17] = h.Flags
	engine.PutUint32(b[20:24], h.DirOffset)
	engine.PutUint32(b[24:28], h.NamesOffset)
	engine.PutUint32(b[28:32], h.PayloadOffset)

	return b
}

// ParseLibHeader parses a LibHeader from the start of data.
//
// Returns:
//   - LibHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize, ErrInvalidFormat on a bad magic or unknown compression
func ParseLibHeader(data []byte, engine endian.EndianEngine) (LibHeader, error) {
	if len(data) < LibHeaderSize {
		return LibHeader{}, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrInvalidHeaderSize, LibHeaderSize, len(data))
	}

	if magic := engine.Uint32(data[0:4]); magic != MagicLibrary {
		return LibHeader{}, fmt.Errorf("%w: bad library magic 0x%08X", errs.ErrInvalidFormat, magic)
	}

	h := LibHeader{
		Size:          engine.Uint32(data[4:8]),
		ClipCount:     engine.Uint32(data[8:12]),
		RawSize:       engine.Uint32(data[12:16]),
		Compression:   format.CompressionType(data[16]),
		Flags:         data[17],
		DirOffset:     engine.Uint32(data[20:24]),
		NamesOffset:   engine.Uint32(data[24:28]),
		PayloadOffset: engine.Uint32(data[28:32]),
	}

	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return LibHeader{}, fmt.Errorf("%w: unknown compression %d", errs.ErrInvalidFormat, h.Compression)
	}

	return h, nil
}

// LibEntry is a 24-byte library directory record locating one clip inside the
// uncompressed payload.
type LibEntry struct {
	ClipID   uint64 // byte offset 0: xxHash64 of the clip name
	Offset   uint32 // byte offset 8: relative to the uncompressed payload
	Size     uint32 // byte offset 12
	Checksum uint64 // byte offset 16: xxHash64 of the clip bytes, 0 when disabled
}

// WriteToSlice serializes the entry at data[offset:] and returns the next position.
func (e *LibEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], e.ClipID)
	engine.PutUint32(data[offset+8:offset+12], e.Offset)
	engine.PutUint32(data[offset+12:offset+16], e.Size)
	engine.PutUint64(data[offset+16:offset+24], e.Checksum)

	return offset + LibEntrySize
}

// ParseLibEntry parses a LibEntry from data[0:LibEntrySize].
func ParseLibEntry(data []byte, engine endian.EndianEngine) (LibEntry, error) {
	if len(data) < LibEntrySize {
		return LibEntry{}, fmt.Errorf("%w: library entry needs %d bytes, have %d", errs.ErrTruncatedData, LibEntrySize, len(data))
	}

	return LibEntry{
		ClipID:   engine.Uint64(data[0:8]),
		Offset:   engine.Uint32(data[8:12]),
		Size:     engine.Uint32(data[12:16]),
		Checksum: engine.Uint64(data[16:24]),
	}, nil
}
