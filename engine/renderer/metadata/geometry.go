package metadata

import (
	"encoding/binary"
	gomath "math"

	amath "github.com/spaghettifunk/aurora/engine/math"
)

const (
	/** @brief The byte stride of one PosTexVertex (3 + 2 floats). */
	POS_TEX_VERTEX_STRIDE uint64 = 5 * 4
	/** @brief The byte stride of one ModelVertex (3 + 3 + 2 floats). */
	MODEL_VERTEX_STRIDE uint64 = 8 * 4
	/** @brief The byte stride of one ModelInstance (a 4x4 float matrix). */
	MODEL_INSTANCE_STRIDE uint64 = 16 * 4
)

/**
 * @brief A vertex carrying a position and a texture coordinate. Used by
 * every screen-space pass.
 */
type PosTexVertex struct {
	Position amath.Vec3
	UV       amath.Vec2
}

/**
 * @brief A vertex carrying a position, a flat color and a texture
 * coordinate. Used by the model pass.
 */
type ModelVertex struct {
	Position amath.Vec3
	Color    amath.Vec3
	UV       amath.Vec2
}

/**
 * @brief Per-instance data for one drawn model: its world transform.
 */
type ModelInstance struct {
	Transform amath.Mat4
}

// FullScreenQuadVertices returns the two clip-space triangles covering
// the whole surface, with the V coordinate flipped so image data reads
// top to bottom.
func FullScreenQuadVertices() []PosTexVertex {
	return []PosTexVertex{
		{Position: amath.NewVec3(-1.0, -1.0, 0.0), UV: amath.NewVec2(0.0, 1.0)},
		{Position: amath.NewVec3(1.0, -1.0, 0.0), UV: amath.NewVec2(1.0, 1.0)},
		{Position: amath.NewVec3(1.0, 1.0, 0.0), UV: amath.NewVec2(1.0, 0.0)},

		{Position: amath.NewVec3(1.0, 1.0, 0.0), UV: amath.NewVec2(1.0, 0.0)},
		{Position: amath.NewVec3(-1.0, 1.0, 0.0), UV: amath.NewVec2(0.0, 0.0)},
		{Position: amath.NewVec3(-1.0, -1.0, 0.0), UV: amath.NewVec2(0.0, 1.0)},
	}
}

// CubeModelVertices returns the built-in model geometry: two colored
// faces of a unit cube centered on the origin.
func CubeModelVertices() []ModelVertex {
	red := amath.NewVec3(1.0, 0.0, 0.0)
	green := amath.NewVec3(0.0, 1.0, 0.0)
	return []ModelVertex{
		// Front
		{Position: amath.NewVec3(-0.5, -0.5, 0.5), Color: red, UV: amath.NewVec2(0.0, 1.0)},
		{Position: amath.NewVec3(0.5, -0.5, 0.5), Color: red, UV: amath.NewVec2(1.0, 1.0)},
		{Position: amath.NewVec3(0.5, 0.5, 0.5), Color: red, UV: amath.NewVec2(1.0, 0.0)},

		{Position: amath.NewVec3(0.5, 0.5, 0.5), Color: red, UV: amath.NewVec2(1.0, 0.0)},
		{Position: amath.NewVec3(-0.5, 0.5, 0.5), Color: red, UV: amath.NewVec2(0.0, 0.0)},
		{Position: amath.NewVec3(-0.5, -0.5, 0.5), Color: red, UV: amath.NewVec2(0.0, 1.0)},

		// Back, wound for back-face visibility
		{Position: amath.NewVec3(0.5, 0.5, -0.5), Color: green, UV: amath.NewVec2(1.0, 0.0)},
		{Position: amath.NewVec3(0.5, -0.5, -0.5), Color: green, UV: amath.NewVec2(1.0, 1.0)},
		{Position: amath.NewVec3(-0.5, -0.5, -0.5), Color: green, UV: amath.NewVec2(0.0, 1.0)},

		{Position: amath.NewVec3(-0.5, -0.5, -0.5), Color: green, UV: amath.NewVec2(0.0, 1.0)},
		{Position: amath.NewVec3(-0.5, 0.5, -0.5), Color: green, UV: amath.NewVec2(0.0, 0.0)},
		{Position: amath.NewVec3(0.5, 0.5, -0.5), Color: green, UV: amath.NewVec2(1.0, 0.0)},
	}
}

func putFloat32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, gomath.Float32bits(v))
}

// PosTexVerticesBytes serializes vertices into the little-endian layout
// the vertex shader expects.
func PosTexVerticesBytes(vertices []PosTexVertex) []byte {
	buf := make([]byte, uint64(len(vertices))*POS_TEX_VERTEX_STRIDE)
	offset := 0
	for _, v := range vertices {
		putFloat32(buf[offset:], v.Position.X)
		putFloat32(buf[offset+4:], v.Position.Y)
		putFloat32(buf[offset+8:], v.Position.Z)
		putFloat32(buf[offset+12:], v.UV.X)
		putFloat32(buf[offset+16:], v.UV.Y)
		offset += int(POS_TEX_VERTEX_STRIDE)
	}
	return buf
}

// ModelVerticesBytes serializes vertices into the little-endian layout
// the model vertex shader expects.
func ModelVerticesBytes(vertices []ModelVertex) []byte {
	buf := make([]byte, uint64(len(vertices))*MODEL_VERTEX_STRIDE)
	offset := 0
	for _, v := range vertices {
		putFloat32(buf[offset:], v.Position.X)
		putFloat32(buf[offset+4:], v.Position.Y)
		putFloat32(buf[offset+8:], v.Position.Z)
		putFloat32(buf[offset+12:], v.Color.X)
		putFloat32(buf[offset+16:], v.Color.Y)
		putFloat32(buf[offset+20:], v.Color.Z)
		putFloat32(buf[offset+24:], v.UV.X)
		putFloat32(buf[offset+28:], v.UV.Y)
		offset += int(MODEL_VERTEX_STRIDE)
	}
	return buf
}

// Mat4Bytes serializes a matrix column by column, the order uniform and
// instance buffers consume.
func Mat4Bytes(m amath.Mat4) []byte {
	buf := make([]byte, 16*4)
	for i, v := range m.Data {
		putFloat32(buf[i*4:], v)
	}
	return buf
}

// ModelInstancesBytes serializes per-instance transforms into the
// instance-stepped vertex stream consumed by the model pipeline.
func ModelInstancesBytes(instances []ModelInstance) []byte {
	buf := make([]byte, 0, uint64(len(instances))*MODEL_INSTANCE_STRIDE)
	for _, inst := range instances {
		buf = append(buf, Mat4Bytes(inst.Transform)...)
	}
	return buf
}
