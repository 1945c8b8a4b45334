package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	b := make([]byte, 4)
	engine.PutUint32(b, 0x504C434D)
	require.Equal(t, []byte("MCLP"), b, "magic must read as MCLP in little-endian")
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.BigEndian, engine)

	b := make([]byte, 2)
	engine.PutUint16(b, 0x0102)
	require.Equal(t, byte(0x01), b[0])
	require.Equal(t, byte(0x02), b[1])
}

func TestFloat32(t *testing.T) {
	values := []float32{0, 1, -1, 30, 0.5, math.MaxFloat32, -math.SmallestNonzeroFloat32}

	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		for _, v := range values {
			b := make([]byte, 4)
			PutFloat32(engine, b, v)
			require.Equal(t, v, Float32(engine, b))

			appended := AppendFloat32(engine, nil, v)
			require.Equal(t, b, appended)
		}
	}
}

func TestFloat32Layout(t *testing.T) {
	b := make([]byte, 4)
	PutFloat32(GetLittleEndianEngine(), b, 1.0)
	require.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, b)
}

func TestInt32(t *testing.T) {
	engine := GetLittleEndianEngine()
	for _, v := range []int32{0, 1, -1, math.MaxInt32, math.MinInt32, 0x60} {
		b := make([]byte, 4)
		PutInt32(engine, b, v)
		require.Equal(t, v, Int32(engine, b))
	}

	b := make([]byte, 4)
	PutInt32(engine, b, -1)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, b)
}
