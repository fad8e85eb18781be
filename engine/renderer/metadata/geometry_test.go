package metadata

import (
	"encoding/binary"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	amath "github.com/spaghettifunk/aurora/engine/math"
)

func readFloat32(buf []byte) float32 {
	return gomath.Float32frombits(binary.LittleEndian.Uint32(buf))
}

func TestFullScreenQuadCoversClipSpace(t *testing.T) {
	vertices := FullScreenQuadVertices()
	require.Len(t, vertices, 6)

	minX, minY := float32(1), float32(1)
	maxX, maxY := float32(-1), float32(-1)
	for _, v := range vertices {
		if v.Position.X < minX {
			minX = v.Position.X
		}
		if v.Position.Y < minY {
			minY = v.Position.Y
		}
		if v.Position.X > maxX {
			maxX = v.Position.X
		}
		if v.Position.Y > maxY {
			maxY = v.Position.Y
		}
		assert.Equal(t, float32(0), v.Position.Z)
	}
	assert.Equal(t, float32(-1), minX)
	assert.Equal(t, float32(-1), minY)
	assert.Equal(t, float32(1), maxX)
	assert.Equal(t, float32(1), maxY)
}

func TestFullScreenQuadUVsFlipVertically(t *testing.T) {
	// Clip-space bottom (-1) carries V=1, top (+1) carries V=0, so
	// sampled images read top to bottom.
	for _, v := range FullScreenQuadVertices() {
		if v.Position.Y < 0 {
			assert.Equal(t, float32(1), v.UV.Y)
		} else {
			assert.Equal(t, float32(0), v.UV.Y)
		}
	}
}

func TestPosTexVerticesBytesLayout(t *testing.T) {
	vertices := []PosTexVertex{
		{Position: amath.NewVec3(1, 2, 3), UV: amath.NewVec2(4, 5)},
		{Position: amath.NewVec3(-1, -2, -3), UV: amath.NewVec2(0.5, 0.25)},
	}
	buf := PosTexVerticesBytes(vertices)
	require.Len(t, buf, 2*int(POS_TEX_VERTEX_STRIDE))

	assert.Equal(t, float32(1), readFloat32(buf[0:]))
	assert.Equal(t, float32(2), readFloat32(buf[4:]))
	assert.Equal(t, float32(3), readFloat32(buf[8:]))
	assert.Equal(t, float32(4), readFloat32(buf[12:]))
	assert.Equal(t, float32(5), readFloat32(buf[16:]))
	assert.Equal(t, float32(-1), readFloat32(buf[20:]))
	assert.Equal(t, float32(0.25), readFloat32(buf[36:]))
}

func TestModelVerticesBytesLayout(t *testing.T) {
	vertices := CubeModelVertices()
	buf := ModelVerticesBytes(vertices)
	require.Len(t, buf, len(vertices)*int(MODEL_VERTEX_STRIDE))

	first := vertices[0]
	assert.Equal(t, first.Position.X, readFloat32(buf[0:]))
	assert.Equal(t, first.Color.X, readFloat32(buf[12:]))
	assert.Equal(t, first.UV.X, readFloat32(buf[24:]))
}

func TestMat4BytesColumnOrder(t *testing.T) {
	m := amath.Mat4{}
	for i := range m.Data {
		m.Data[i] = float32(i)
	}
	buf := Mat4Bytes(m)
	require.Len(t, buf, 64)
	for i := 0; i < 16; i++ {
		assert.Equal(t, float32(i), readFloat32(buf[i*4:]))
	}
}

func TestModelInstancesBytes(t *testing.T) {
	instances := []ModelInstance{
		{Transform: amath.NewMat4Identity()},
		{Transform: amath.NewMat4Translation(amath.NewVec3(7, 8, 9))},
	}
	buf := ModelInstancesBytes(instances)
	require.Len(t, buf, 2*int(MODEL_INSTANCE_STRIDE))

	// Second instance, translation column.
	second := buf[MODEL_INSTANCE_STRIDE:]
	assert.Equal(t, float32(7), readFloat32(second[12*4:]))
	assert.Equal(t, float32(8), readFloat32(second[13*4:]))
	assert.Equal(t, float32(9), readFloat32(second[14*4:]))
}
