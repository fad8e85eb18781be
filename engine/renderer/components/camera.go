package components

import (
	"github.com/spaghettifunk/aurora/engine/math"
)

/**
 * @brief Anything able to produce a canonical view-projection matrix.
 * The view-projection is the only camera state the renderer consumes.
 */
type Camera interface {
	ViewProjection() math.Mat4
}

/**
 * @brief A camera defined by an eye point looking at a target point.
 */
type LookAtCamera struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	Aspect      float32
	FovYDegrees float32
	Near        float32
	Far         float32
}

// ViewProjection composes the right-handed look-at view with a
// perspective projection remapped to the [0,1] depth range.
func (c *LookAtCamera) ViewProjection() math.Mat4 {
	view := math.NewMat4LookAt(c.Eye, c.Target, c.Up)
	proj := math.NewMat4Perspective(math.DegToRad(c.FovYDegrees), c.Aspect, c.Near, c.Far)
	return math.NewMat4DepthRemap().Mul(proj).Mul(view)
}

// Pitch is limited to keep the view from flipping over the vertical.
const maxPitchDegrees float32 = 89.0

/**
 * @brief A camera defined by a world position and Euler rotation
 * (degrees, applied X then Y then Z). The view matrix is the inverse of
 * the camera's world transform. Pitch is clamped to ±89 degrees.
 */
type PositionRotationCamera struct {
	Position math.Vec3
	Rotation math.Vec3

	Aspect      float32
	FovYDegrees float32
	Near        float32
	Far         float32
}

func (c *PositionRotationCamera) ViewProjection() math.Mat4 {
	pitch := math.Clamp(c.Rotation.X, -maxPitchDegrees, maxPitchDegrees)
	world := math.NewMat4Translation(c.Position).Mul(math.NewMat4EulerXYZ(
		math.DegToRad(pitch),
		math.DegToRad(c.Rotation.Y),
		math.DegToRad(c.Rotation.Z),
	))
	view := world.Inverse()
	proj := math.NewMat4Perspective(math.DegToRad(c.FovYDegrees), c.Aspect, c.Near, c.Far)
	return math.NewMat4DepthRemap().Mul(proj).Mul(view)
}

/**
 * @brief A camera whose view-projection was extracted from a scene
 * document ahead of time.
 */
type SceneCamera struct {
	Matrix math.Mat4
}

func (c *SceneCamera) ViewProjection() math.Mat4 {
	return c.Matrix
}
