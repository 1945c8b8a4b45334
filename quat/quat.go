// Package quat implements the rotation math of the clip compiler on top of
// mgl32 quaternions.
//
// Quaternions are unit mgl32.Quat values (W plus vector part V). Euler angles are
// radians in mgl32.Vec3 ordered (x, y, z) regardless of the composition order;
// the RotationOrder only decides how the three axis rotations are multiplied.
//
// A log vector is the quaternion axis scaled by the half rotation angle, so a
// rotation by θ about unit axis n maps to n·θ/2. Log vectors of neighbouring
// frames can be linearly interpolated, which is how the runtime blends rotation
// keys.
package quat

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/arloliu/mclip/format"
)

const (
	// AxisEpsilon is the magnitude under which a quaternion component counts as zero
	// when detecting single-axis rotations.
	AxisEpsilon = 1e-6
	// SincEpsilon is the |x| under which Sinc returns exactly 1.
	SincEpsilon = 1e-4

	twoPI = 2 * math.Pi
)

// composeOrder lists, per rotation order, the axis indices (i2, i1, i0) of the
// composition q = axis[i0] * axis[i1] * axis[i2].
var composeOrder = [format.RotationOrderCount * 3]int{
	0, 1, 2, // XYZ
	0, 2, 1, // XZY
	1, 0, 2, // YXZ
	1, 2, 0, // YZX
	2, 0, 1, // ZXY
	2, 1, 0, // ZYX
}

// extractOrder lists, per rotation order, the matrix row permutation (i0, i1, i2)
// and the parity of the permutation (1 even, 0 odd).
var extractOrder = [format.RotationOrderCount * 4]int{
	0, 1, 2, 1, // XYZ
	0, 2, 1, 0, // XZY
	1, 0, 2, 0, // YXZ
	1, 2, 0, 1, // YZX
	2, 0, 1, 1, // ZXY
	2, 1, 0, 0, // ZYX
}

// Mul returns the Hamilton product q*r.
func Mul(q, r mgl32.Quat) mgl32.Quat {
	return q.Mul(r)
}

// LimitPI wraps an angle in radians into [-π, π].
func LimitPI(rad float32) float32 {
	r := math.Mod(float64(rad), twoPI)
	if math.Abs(r) > math.Pi {
		if r < 0 {
			r += twoPI
		} else {
			r -= twoPI
		}
	}

	return float32(r)
}

// Sinc returns sin(x)/x, or 1 when |x| is below SincEpsilon.
func Sinc(x float32) float32 {
	if math.Abs(float64(x)) < SincEpsilon {
		return 1
	}

	return float32(math.Sin(float64(x)) / float64(x))
}

func axisQuat(axis int, rad float32) mgl32.Quat {
	half := float64(rad) * 0.5
	q := mgl32.Quat{W: float32(math.Cos(half))}
	q.V[axis] = float32(math.Sin(half))

	return q
}

// FromEuler builds a unit quaternion from Euler angles in radians.
//
// Each axis angle is turned into a half-angle axis quaternion and the three are
// composed in the given order. An invalid order falls back to XYZ.
func FromEuler(r mgl32.Vec3, order format.RotationOrder) mgl32.Quat {
	if !order.IsValid() {
		order = format.RotXYZ
	}

	axes := [3]mgl32.Quat{
		axisQuat(0, r[0]),
		axisQuat(1, r[1]),
		axisQuat(2, r[2]),
	}

	base := int(order) * 3
	i2, i1, i0 := composeOrder[base], composeOrder[base+1], composeOrder[base+2]

	q := axes[i0]
	q = q.Mul(axes[i1])
	q = q.Mul(axes[i2])

	return q
}

// FromDegrees is FromEuler with angles given in degrees.
func FromDegrees(d mgl32.Vec3, order format.RotationOrder) mgl32.Quat {
	return FromEuler(mgl32.Vec3{
		mgl32.DegToRad(d[0]),
		mgl32.DegToRad(d[1]),
		mgl32.DegToRad(d[2]),
	}, order)
}

// ToEuler recovers Euler angles in radians, each wrapped into [-π, π].
//
// Rotations about a single principal axis take a direct path through the
// quaternion's scalar part; everything else goes through the rotation matrix.
func ToEuler(q mgl32.Quat, order format.RotationOrder) mgl32.Vec3 {
	if !order.IsValid() {
		order = format.RotXYZ
	}

	x, y, z, w := float64(q.V[0]), float64(q.V[1]), float64(q.V[2]), float64(q.W)

	mask := 0
	if math.Abs(x) < AxisEpsilon {
		mask |= 1
	}
	if math.Abs(y) < AxisEpsilon {
		mask |= 2
	}
	if math.Abs(z) < AxisEpsilon {
		mask |= 4
	}
	if math.Abs(w) < AxisEpsilon {
		mask |= 8
	}

	var r mgl32.Vec3
	switch mask {
	case 7:
		return r
	case 6:
		r[0] = singleAxis(w, x)
		return r
	case 5:
		r[1] = singleAxis(w, y)
		return r
	case 3:
		r[2] = singleAxis(w, z)
		return r
	}

	m := [3][3]float64{
		{1 - 2*y*y - 2*z*z, 2*x*y + 2*w*z, 2*x*z - 2*w*y},
		{2*x*y - 2*w*z, 1 - 2*x*x - 2*z*z, 2*y*z + 2*w*x},
		{2*x*z + 2*w*y, 2*y*z - 2*w*x, 1 - 2*x*x - 2*y*y},
	}

	base := int(order) * 4
	i0, i1, i2 := extractOrder[base], extractOrder[base+1], extractOrder[base+2]
	sgn := -1.0
	if extractOrder[base+3] != 0 {
		sgn = 1.0
	}

	rm0 := [3]float64{m[i0][i0], m[i0][i1], m[i0][i2]}
	rm1 := [3]float64{m[i1][i0], m[i1][i1], m[i1][i2]}
	rm2 := [3]float64{m[i2][i0], m[i2][i1], m[i2][i2]}

	var a [3]float64
	a[i0] = math.Atan2(rm1[2], rm2[2])
	a[i1] = math.Atan2(-rm0[2], math.Sqrt(rm0[0]*rm0[0]+rm0[1]*rm0[1]))
	s, c := math.Sincos(a[i0])
	a[i2] = math.Atan2(s*rm2[0]-c*rm1[0], c*rm1[1]-s*rm2[1])

	for i := range a {
		r[i] = LimitPI(float32(a[i] * sgn))
	}

	return r
}

func singleAxis(w, component float64) float32 {
	ang := math.Acos(clamp(w, -1, 1)) * 2
	if component < 0 {
		ang = -ang
	}

	return LimitPI(float32(ang))
}

// ToDegrees is ToEuler with the result converted to degrees.
func ToDegrees(q mgl32.Quat, order format.RotationOrder) mgl32.Vec3 {
	r := ToEuler(q, order)

	return mgl32.Vec3{mgl32.RadToDeg(r[0]), mgl32.RadToDeg(r[1]), mgl32.RadToDeg(r[2])}
}

// LogVector maps a unit quaternion to its axis scaled by the half rotation angle.
// The identity maps to the zero vector.
func LogVector(q mgl32.Quat) mgl32.Vec3 {
	half := math.Acos(clamp(float64(q.W), -1, 1))
	norm := float64(q.V.Len())

	s := 0.0
	if norm != 0 {
		s = half / norm
	}

	return mgl32.Vec3{
		float32(float64(q.V[0]) * s),
		float32(float64(q.V[1]) * s),
		float32(float64(q.V[2]) * s),
	}
}

// FromLogVector is the inverse of LogVector; the result is normalized.
func FromLogVector(v mgl32.Vec3) mgl32.Quat {
	half := v.Len()
	s := Sinc(half)
	q := mgl32.Quat{
		W: float32(math.Cos(float64(half))),
		V: v.Mul(s),
	}

	return q.Normalize()
}

// ContinuityFix flips quaternion signs in place so that consecutive elements never
// have a negative dot product. q and -q encode the same rotation, so the sequence
// is unchanged as rotations but becomes safe to interpolate.
func ContinuityFix(qs []mgl32.Quat) {
	if len(qs) < 2 {
		return
	}

	flip := false
	prev := qs[0]
	for i := 1; i < len(qs); i++ {
		cur := qs[i]
		// parity of sign changes between the unflipped inputs
		if cur.Dot(prev) < 0 {
			flip = !flip
		}
		if flip {
			qs[i] = cur.Scale(-1)
		}
		prev = cur
	}
}

// Slerp interpolates along the shorter arc between q1 and q2.
func Slerp(q1, q2 mgl32.Quat, t float32) mgl32.Quat {
	if q1.Dot(q2) < 0 {
		q2 = q2.Scale(-1)
	}

	return mgl32.QuatSlerp(q1, q2, t)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
