package section

// Magic numbers, stored little-endian so the first four bytes spell the FourCC.
const (
	MagicClip    = 0x504C434D // "MCLP"
	MagicLibrary = 0x42494C4D // "MLIB"
)

// Clip header field offsets.
const (
	ClipMagicOffset      = 0x00
	ClipSizeOffset       = 0x04
	ClipFPSOffset        = 0x08
	ClipFrameCountOffset = 0x0C
	ClipNodeCountOffset  = 0x10
	ClipHashOffset       = 0x14
	ClipEvalOffset       = 0x18
	ClipSeqOffset        = 0x1C
	ClipNameOffset       = 0x20
)

// Node record field offsets, relative to the record start.
const (
	NodeNameOffset      = 0x00
	NodeDataOffset      = 0x40 // three uint32 data offsets: pos, rot, scl
	NodeXformOrdOffset  = 0x4C
	NodeRotOrdOffset    = 0x4D
	NodeTrackInfoOffset = 0x50
)

// Track info field offsets, relative to the block start.
const (
	TrackMinOffset      = 0x00
	TrackMaxOffset      = 0x0C
	TrackSrcMaskOffset  = 0x18
	TrackDataMaskOffset = 0x19
	TrackStrideOffset   = 0x1A
)

// Section sizes.
const (
	FixStrSize      = 0x40                                 // fixed string: length byte, up to 62 chars, zero padding
	FixStrMaxLen    = FixStrSize - 2                       // longest name that keeps a terminating zero
	ClipHeaderSize  = 0x60                                 // clip header including the source name
	TrackInfoSize   = 0x20                                 // min, max, masks, stride, reserved
	NodeRecordSize  = NodeTrackInfoOffset + 3*TrackInfoSize // 0xB0
	HashEntrySize   = 4                                    // uint32 name hash per node
	EvalCountsSize  = 9 * 4                                // track, channel and curve counts per kind
	EvalEntrySize   = 4                                    // node uint16, kind byte, channel byte
	SeqEntrySize    = 8                                    // offset int32, node uint16, channel byte, stride byte
	SampleSize      = 4                                    // float32 per animated axis per frame
	MaxNodeCount    = 0xFFFF                               // node index is stored as uint16
	LibHeaderSize   = 32                                   // library header
	LibEntrySize    = 24                                   // library directory entry
	LibMaxClipCount = 0xFFFF                               // clip names are stored in a uint16-counted list
)

// Mask bits for the x, y and z axes of a track.
const (
	AxisX    uint8 = 1 << 0
	AxisY    uint8 = 1 << 1
	AxisZ    uint8 = 1 << 2
	AxisMask uint8 = AxisX | AxisY | AxisZ
)
