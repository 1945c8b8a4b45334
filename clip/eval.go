package clip

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/arloliu/mclip/format"
	"github.com/arloliu/mclip/quat"
)

// frameInfo locates a fractional frame between two stored frames.
type frameInfo struct {
	fno  int
	next int
	t    float32
}

// locate wraps frame into [0, frames) and splits it into a frame number, the
// following frame (wrapping to 0 after the last) and the blend factor.
// Negative frames are mirrored.
func locate(frame float32, frames int) frameInfo {
	if frames <= 0 {
		return frameInfo{}
	}

	f := math.Mod(math.Abs(float64(frame)), float64(frames))
	fi := frameInfo{fno: int(f)}
	fi.t = float32(f - float64(fi.fno))
	if fi.fno < frames-1 {
		fi.next = fi.fno + 1
	}

	return fi
}

func (n *Node) evalVec(frame float32, get func(int) mgl32.Vec3) mgl32.Vec3 {
	fi := locate(frame, n.frameCount)
	v := get(fi.fno)
	if fi.t != 0 {
		v = lerp(v, get(fi.next), fi.t)
	}

	return v
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// EvalPosition returns the translation at a fractional, wrapping frame.
func (n *Node) EvalPosition(frame float32) mgl32.Vec3 {
	return n.evalVec(frame, n.Position)
}

// EvalScale returns the scale at a fractional, wrapping frame.
func (n *Node) EvalScale(frame float32) mgl32.Vec3 {
	return n.evalVec(frame, n.Scale)
}

// EvalQuat returns the rotation at a fractional, wrapping frame by blending
// neighbouring log vectors.
func (n *Node) EvalQuat(frame float32) mgl32.Quat {
	return quat.FromLogVector(n.evalVec(frame, n.LogVector))
}

// EvalQuatSlerp is EvalQuat with spherical interpolation between the
// neighbouring quaternions.
func (n *Node) EvalQuatSlerp(frame float32) mgl32.Quat {
	fi := locate(frame, n.frameCount)
	q := n.Quat(fi.fno)
	if fi.t != 0 {
		q = quat.Slerp(q, n.Quat(fi.next), fi.t)
	}

	return q
}

// EvalRadians returns EvalQuat as Euler radians in the node's rotation order.
func (n *Node) EvalRadians(frame float32) mgl32.Vec3 {
	return quat.ToEuler(n.EvalQuat(frame), n.RotOrder)
}

// EvalDegrees returns EvalQuat as Euler degrees in the node's rotation order.
func (n *Node) EvalDegrees(frame float32) mgl32.Vec3 {
	return quat.ToDegrees(n.EvalQuat(frame), n.RotOrder)
}

// transformSteps lists, per transform order, which of scale (0), rotation (1)
// and translation (2) applies first, second and third.
var transformSteps = [format.TransformOrderCount][3]int{
	{0, 1, 2}, // SRT
	{0, 2, 1}, // STR
	{1, 0, 2}, // RST
	{1, 2, 0}, // RTS
	{2, 0, 1}, // TSR
	{2, 1, 0}, // TRS
}

// EvalTransform returns the local transform of the node at a fractional frame,
// composed for column vectors in the node's transform order.
//
// Tracks without a source contribute identity. When the node has no position
// channels, defaultTranslation, if non-nil, is used instead. A node without any
// track and without a default translation yields the identity matrix.
func (n *Node) EvalTransform(frame float32, defaultTranslation *mgl32.Vec3) mgl32.Mat4 {
	steps := [3]mgl32.Mat4{mgl32.Ident4(), mgl32.Ident4(), mgl32.Ident4()}

	switch {
	case n.tracks[format.TrackPosition].HasSource():
		t := n.EvalPosition(frame)
		steps[2] = mgl32.Translate3D(t[0], t[1], t[2])
	case defaultTranslation != nil:
		steps[2] = mgl32.Translate3D(defaultTranslation[0], defaultTranslation[1], defaultTranslation[2])
	}
	if n.tracks[format.TrackRotation].HasSource() {
		steps[1] = n.EvalQuat(frame).Mat4()
	}
	if n.tracks[format.TrackScale].HasSource() {
		s := n.EvalScale(frame)
		steps[0] = mgl32.Scale3D(s[0], s[1], s[2])
	}

	order := n.XformOrder
	if !order.IsValid() {
		order = format.XformSRT
	}
	seq := transformSteps[order]

	return steps[seq[2]].Mul4(steps[seq[1]]).Mul4(steps[seq[0]])
}
