package clip

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/arloliu/mclip/format"
	"github.com/arloliu/mclip/quat"
	"github.com/arloliu/mclip/section"
)

// Track is one classified node track: its range, masks and per-frame samples.
//
// Samples holds one vector per frame when any axis is animated; constant axes
// carry their Min value in every sample. Rotation samples are log vectors.
type Track struct {
	Kind    format.TrackKind
	Info    section.TrackInfo
	Samples []mgl32.Vec3
}

// HasSource reports whether any axis has a source channel.
func (t *Track) HasSource() bool {
	return t.Info.HasSource()
}

// IsAnimated reports whether any axis varies across frames.
func (t *Track) IsAnimated() bool {
	return t.Info.IsAnimated()
}

// Value returns the track value at a frame.
//
// Animated axes read the sample; constant axes and out-of-range frames read Min.
// Position and scale axes without a source return the kind default (0 or 1).
// Rotation axes always read stored data, because a log vector component can be
// non-zero even when its Euler channel is absent.
func (t *Track) Value(frame int) mgl32.Vec3 {
	inRange := frame >= 0 && frame < len(t.Samples)
	def := t.Kind.Default()

	var v mgl32.Vec3
	for i := range 3 {
		bit := uint8(1) << i
		switch {
		case inRange && t.Info.DataMask&bit != 0:
			v[i] = t.Samples[frame][i]
		case t.Info.SrcMask&bit != 0 || t.Kind == format.TrackRotation:
			v[i] = t.Info.Min[i]
		default:
			v[i] = def
		}
	}

	return v
}

// Node is one animated object of a clip with its three tracks.
type Node struct {
	Name       string
	Index      int
	XformOrder format.TransformOrder
	RotOrder   format.RotationOrder

	tracks     [format.TrackKindCount]Track
	frameCount int
}

// Track returns the track of the given kind.
func (n *Node) Track(kind format.TrackKind) *Track {
	return &n.tracks[kind]
}

// FrameCount returns the number of frames of the owning clip.
func (n *Node) FrameCount() int {
	return n.frameCount
}

// Position returns the translation at a frame.
func (n *Node) Position(frame int) mgl32.Vec3 {
	return n.tracks[format.TrackPosition].Value(frame)
}

// Scale returns the scale at a frame; a node without scale channels returns (1, 1, 1).
func (n *Node) Scale(frame int) mgl32.Vec3 {
	t := &n.tracks[format.TrackScale]
	if !t.HasSource() {
		return mgl32.Vec3{1, 1, 1}
	}

	return t.Value(frame)
}

// LogVector returns the rotation log vector at a frame.
func (n *Node) LogVector(frame int) mgl32.Vec3 {
	return n.tracks[format.TrackRotation].Value(frame)
}

// Quat returns the rotation quaternion at a frame.
func (n *Node) Quat(frame int) mgl32.Quat {
	return quat.FromLogVector(n.LogVector(frame))
}

// Radians returns the rotation at a frame as Euler angles in the node's rotation order.
func (n *Node) Radians(frame int) mgl32.Vec3 {
	return quat.ToEuler(n.Quat(frame), n.RotOrder)
}

// Degrees returns the rotation at a frame as Euler degrees in the node's rotation order.
func (n *Node) Degrees(frame int) mgl32.Vec3 {
	return quat.ToDegrees(n.Quat(frame), n.RotOrder)
}

func (n *Node) record() section.NodeRecord {
	rec := section.NodeRecord{
		Name:       n.Name,
		XformOrder: n.XformOrder,
		RotOrder:   n.RotOrder,
	}
	for k := range format.TrackKindCount {
		rec.Tracks[k] = n.tracks[k].Info
	}

	return rec
}
