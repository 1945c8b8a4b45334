// Package section defines the fixed-layout binary structures of the MCLP motion
// clip and MLIB clip library formats.
//
// Every multi-byte field is little-endian and every offset stored inside a clip is
// relative to the first byte of that clip, so clips can be concatenated into a
// larger stream and still be read in place.
//
// # Clip Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ ClipHeader (0x60 bytes)                                 │
//	├─────────────────────────────────────────────────────────┤
//	│ NodeRecord × nodes (0xB0 bytes each)                    │
//	│  - name, data offsets, orders, 3 × TrackInfo            │
//	├─────────────────────────────────────────────────────────┤
//	│ Hash array (uint32 × nodes, ascending)                  │
//	├─────────────────────────────────────────────────────────┤
//	│ Track data (float32, animated axes interleaved)         │
//	├─────────────────────────────────────────────────────────┤
//	│ Eval table (EvalCounts + EvalEntry × channels)          │
//	├─────────────────────────────────────────────────────────┤
//	│ Seq table (SeqEntry × 3 × sourced tracks)               │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field       | Type    | Description
//	-------|-------------|---------|----------------------------------
//	0x00   | Magic       | uint32  | "MCLP"
//	0x04   | Size        | uint32  | total clip size in bytes
//	0x08   | FPS         | float32 | sample rate
//	0x0C   | FrameCount  | int32   | frames per track
//	0x10   | NodeCount   | int32   | node records
//	0x14   | HashOffset  | uint32  | -> hash array
//	0x18   | EvalOffset  | uint32  | -> eval table
//	0x1C   | SeqOffset   | uint32  | -> seq table
//	0x20   | Name        | fixstr  | source clip name
//
// # Node Record Format
//
//	Bytes  | Field       | Type    | Description
//	-------|-------------|---------|----------------------------------
//	0x00   | Name        | fixstr  | node name
//	0x40   | PosData     | uint32  | -> position samples, 0 if constant
//	0x44   | RotData     | uint32  | -> rotation samples, 0 if constant
//	0x48   | SclData     | uint32  | -> scale samples, 0 if constant
//	0x4C   | XformOrd    | uint8   | transform order
//	0x4D   | RotOrd      | uint8   | Euler rotation order
//	0x4E   | reserved    | 2 bytes |
//	0x50   | Tracks      | 3 × 32  | position, rotation, scale TrackInfo
//
// # Track Info Format
//
//	Bytes  | Field       | Type    | Description
//	-------|-------------|---------|----------------------------------
//	0x00   | Min         | vec3    | per-axis minimum
//	0x0C   | Max         | vec3    | per-axis maximum
//	0x18   | SrcMask     | uint8   | axes with a source channel
//	0x19   | DataMask    | uint8   | axes whose value varies
//	0x1A   | Stride      | uint8   | popcount(DataMask)
//	0x1B   | reserved    | 5 bytes |
//
// # Fixed Strings
//
// Names are stored in 64-byte fields: a length byte, at most 62 characters and
// zero padding, so a runtime can also treat them as NUL-terminated strings.
//
// # Library Structure
//
// An MLIB library is a 32-byte LibHeader, a directory of 24-byte LibEntry
// records, a names payload and a (possibly compressed) payload that holds the
// concatenated MCLP clips.
package section
