package quat

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mclip/format"
)

const tol = 1e-4

func requireQuatNear(t *testing.T, want, got mgl32.Quat) {
	t.Helper()
	require.InDelta(t, want.W, got.W, tol)
	require.InDelta(t, want.V[0], got.V[0], tol)
	require.InDelta(t, want.V[1], got.V[1], tol)
	require.InDelta(t, want.V[2], got.V[2], tol)
}

func requireVecNear(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		require.InDelta(t, want[i], got[i], delta, "axis %d", i)
	}
}

func TestMul(t *testing.T) {
	ident := mgl32.QuatIdent()
	q := mgl32.Quat{W: 0.5, V: mgl32.Vec3{0.5, 0.5, 0.5}}

	requireQuatNear(t, q, Mul(ident, q))
	requireQuatNear(t, q, Mul(q, ident))

	// i*j = k
	i := mgl32.Quat{V: mgl32.Vec3{1, 0, 0}}
	j := mgl32.Quat{V: mgl32.Vec3{0, 1, 0}}
	requireQuatNear(t, mgl32.Quat{V: mgl32.Vec3{0, 0, 1}}, Mul(i, j))
	requireQuatNear(t, mgl32.Quat{V: mgl32.Vec3{0, 0, -1}}, Mul(j, i))
}

func TestFromEuler_KnownValues(t *testing.T) {
	r := mgl32.Vec3{0.3, 0.2, 0.1}
	tests := []struct {
		order format.RotationOrder
		want  mgl32.Quat
	}{
		{format.RotXYZ, mgl32.Quat{W: 0.983347, V: mgl32.Vec3{0.143572, 0.106021, 0.034271}}},
		{format.RotXZY, mgl32.Quat{W: 0.981856, V: mgl32.Vec3{0.153439, 0.106021, 0.034271}}},
		{format.RotYXZ, mgl32.Quat{W: 0.981856, V: mgl32.Vec3{0.143572, 0.106021, 0.064071}}},
		{format.RotYZX, mgl32.Quat{W: 0.983347, V: mgl32.Vec3{0.143572, 0.091158, 0.064071}}},
		{format.RotZXY, mgl32.Quat{W: 0.983347, V: mgl32.Vec3{0.153439, 0.091158, 0.034271}}},
		{format.RotZYX, mgl32.Quat{W: 0.981856, V: mgl32.Vec3{0.153439, 0.091158, 0.064071}}},
	}
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			requireQuatNear(t, tt.want, FromEuler(r, tt.order))
		})
	}
}

func TestFromEuler_Unit(t *testing.T) {
	for o := range format.RotationOrderCount {
		q := FromEuler(mgl32.Vec3{1.1, -0.4, 2.7}, format.RotationOrder(o))
		require.InDelta(t, 1.0, q.Len(), tol)
	}
}

func TestEulerRoundTrip(t *testing.T) {
	angles := []mgl32.Vec3{
		{0.3, 0.2, 0.1},
		{-1.1, 0.7, 0.25},
		{0.9, -1.2, -0.6},
		{0.01, 0.02, -0.03},
	}
	for o := range format.RotationOrderCount {
		order := format.RotationOrder(o)
		t.Run(order.String(), func(t *testing.T) {
			for _, r := range angles {
				got := ToEuler(FromEuler(r, order), order)
				requireVecNear(t, r, got, 1e-3)
			}
		})
	}
}

func TestToEuler_SingleAxis(t *testing.T) {
	for axis := range 3 {
		for _, ang := range []float32{0.5, -0.5, 2.5, -3.0} {
			var r mgl32.Vec3
			r[axis] = ang
			got := ToEuler(FromEuler(r, format.RotZYX), format.RotZYX)
			requireVecNear(t, r, got, 1e-4)
		}
	}

	require.Equal(t, mgl32.Vec3{}, ToEuler(mgl32.QuatIdent(), format.RotXYZ))
}

func TestDegrees(t *testing.T) {
	d := mgl32.Vec3{30, -45, 60}
	q := FromDegrees(d, format.RotXYZ)
	requireQuatNear(t, FromEuler(mgl32.Vec3{
		float32(math.Pi / 6), float32(-math.Pi / 4), float32(math.Pi / 3),
	}, format.RotXYZ), q)
	requireVecNear(t, d, ToDegrees(q, format.RotXYZ), 1e-2)
}

func TestLimitPI(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{1, 1},
		{-1, -1},
		{float32(math.Pi) + 0.5, -float32(math.Pi) + 0.5},
		{-float32(math.Pi) - 0.5, float32(math.Pi) - 0.5},
		{float32(4 * math.Pi), 0},
		{float32(5*math.Pi) / 2, float32(math.Pi) / 2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, LimitPI(tt.in), 1e-5, "LimitPI(%v)", tt.in)
	}
}

func TestSinc(t *testing.T) {
	require.Equal(t, float32(1), Sinc(0))
	require.Equal(t, float32(1), Sinc(5e-5))
	require.InDelta(t, math.Sin(0.5)/0.5, Sinc(0.5), 1e-6)
	require.InDelta(t, math.Sin(-2)/-2, Sinc(-2), 1e-6)
}

func TestLogVector(t *testing.T) {
	require.Equal(t, mgl32.Vec3{}, LogVector(mgl32.QuatIdent()))

	// 0.5 rad about X is a half angle of 0.25
	q := FromEuler(mgl32.Vec3{0.5, 0, 0}, format.RotXYZ)
	requireVecNear(t, mgl32.Vec3{0.25, 0, 0}, LogVector(q), 1e-5)

	lv := LogVector(FromEuler(mgl32.Vec3{0.3, 0.2, 0.1}, format.RotXYZ))
	requireVecNear(t, mgl32.Vec3{0.144374, 0.106613, 0.034462}, lv, 1e-4)
}

func TestLogVectorRoundTrip(t *testing.T) {
	for o := range format.RotationOrderCount {
		q := FromEuler(mgl32.Vec3{0.8, -0.3, 1.4}, format.RotationOrder(o))
		requireQuatNear(t, q, FromLogVector(LogVector(q)))
	}

	requireQuatNear(t, mgl32.QuatIdent(), FromLogVector(mgl32.Vec3{}))
}

func TestContinuityFix(t *testing.T) {
	a := FromEuler(mgl32.Vec3{0.1, 0, 0}, format.RotXYZ)
	b := FromEuler(mgl32.Vec3{0.2, 0, 0}, format.RotXYZ)
	c := FromEuler(mgl32.Vec3{0.3, 0, 0}, format.RotXYZ)

	qs := []mgl32.Quat{a, b.Scale(-1), c.Scale(-1), c}
	ContinuityFix(qs)

	requireQuatNear(t, a, qs[0])
	requireQuatNear(t, b, qs[1])
	requireQuatNear(t, c, qs[2])
	requireQuatNear(t, c, qs[3])
	for i := 1; i < len(qs); i++ {
		require.GreaterOrEqual(t, qs[i].Dot(qs[i-1]), float32(0))
	}

	ContinuityFix(nil)
	single := []mgl32.Quat{a.Scale(-1)}
	ContinuityFix(single)
	requireQuatNear(t, a.Scale(-1), single[0])
}

func TestSlerp(t *testing.T) {
	a := FromEuler(mgl32.Vec3{0, 0, 0.2}, format.RotXYZ)
	b := FromEuler(mgl32.Vec3{0, 0, 1.0}, format.RotXYZ)

	requireQuatNear(t, a, Slerp(a, b, 0))
	requireQuatNear(t, b, Slerp(a, b, 1))
	requireQuatNear(t, FromEuler(mgl32.Vec3{0, 0, 0.6}, format.RotXYZ), Slerp(a, b, 0.5))
	// sign of the target must not matter
	requireQuatNear(t, FromEuler(mgl32.Vec3{0, 0, 0.6}, format.RotXYZ), Slerp(a, b.Scale(-1), 0.5))
}

func BenchmarkFromEuler(b *testing.B) {
	r := mgl32.Vec3{0.3, 0.2, 0.1}
	for b.Loop() {
		FromEuler(r, format.RotZXY)
	}
}

func BenchmarkToEuler(b *testing.B) {
	q := FromEuler(mgl32.Vec3{0.3, 0.2, 0.1}, format.RotZXY)
	for b.Loop() {
		ToEuler(q, format.RotZXY)
	}
}
