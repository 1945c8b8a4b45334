package format

type (
	// TrackKind identifies one of the three transform tracks of a node.
	TrackKind uint8
	// RotationOrder is the Euler axis order used to compose a rotation.
	RotationOrder uint8
	// TransformOrder is the order in which scale, rotation and translation compose.
	TransformOrder uint8
	// DumpMode selects how rotations are written when a clip is dumped as text.
	DumpMode uint8
	// CompressionType is the payload compression of a clip library.
	CompressionType uint8
)

const (
	TrackPosition TrackKind = 0 // TrackPosition is the translation track.
	TrackRotation TrackKind = 1 // TrackRotation is the rotation track, stored as log vectors.
	TrackScale    TrackKind = 2 // TrackScale is the scale track.

	TrackKindCount = 3 // TrackKindCount is the number of track kinds per node.
)

const (
	RotXYZ RotationOrder = iota
	RotXZY
	RotYXZ
	RotYZX
	RotZXY
	RotZYX

	RotationOrderCount = 6
)

const (
	XformSRT TransformOrder = iota
	XformSTR
	XformRST
	XformRTS
	XformTSR
	XformTRS

	TransformOrderCount = 6
)

const (
	DumpDefault DumpMode = iota // DumpDefault writes rotations as Euler degrees.
	DumpLogVecs                 // DumpLogVecs writes rotations as three log vector channels.
	DumpQuats                   // DumpQuats writes rotations as four quaternion channels.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Letter returns the channel prefix letter used in text clips: t, r or s.
func (k TrackKind) Letter() byte {
	switch k {
	case TrackPosition:
		return 't'
	case TrackRotation:
		return 'r'
	case TrackScale:
		return 's'
	default:
		return '?'
	}
}

// Default returns the per-axis value of an axis that has no source channel.
func (k TrackKind) Default() float32 {
	if k == TrackScale {
		return 1
	}

	return 0
}

func (k TrackKind) String() string {
	switch k {
	case TrackPosition:
		return "Position"
	case TrackRotation:
		return "Rotation"
	case TrackScale:
		return "Scale"
	default:
		return "Unknown"
	}
}

// IsValid reports whether o is one of the six rotation orders.
func (o RotationOrder) IsValid() bool {
	return o < RotationOrderCount
}

func (o RotationOrder) String() string {
	switch o {
	case RotXYZ:
		return "XYZ"
	case RotXZY:
		return "XZY"
	case RotYXZ:
		return "YXZ"
	case RotYZX:
		return "YZX"
	case RotZXY:
		return "ZXY"
	case RotZYX:
		return "ZYX"
	default:
		return "Unknown"
	}
}

// IsValid reports whether o is one of the six transform orders.
func (o TransformOrder) IsValid() bool {
	return o < TransformOrderCount
}

func (o TransformOrder) String() string {
	switch o {
	case XformSRT:
		return "SRT"
	case XformSTR:
		return "STR"
	case XformRST:
		return "RST"
	case XformRTS:
		return "RTS"
	case XformTSR:
		return "TSR"
	case XformTRS:
		return "TRS"
	default:
		return "Unknown"
	}
}

func (m DumpMode) String() string {
	switch m {
	case DumpDefault:
		return "Default"
	case DumpLogVecs:
		return "LogVecs"
	case DumpQuats:
		return "Quats"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a lower-case codec name to its CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
