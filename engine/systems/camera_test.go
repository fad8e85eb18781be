package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	amath "github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/components"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

func perspectiveCameraNode(name string, translation amath.Vec3) *metadata.SceneNode {
	return &metadata.SceneNode{
		Name:      name,
		Transform: amath.NewMat4Translation(translation),
		Camera: &metadata.SceneCameraDef{
			Name:        name,
			Projection:  metadata.SceneProjectionPerspective,
			YFovRadians: amath.DegToRad(45),
			ZNear:       0.1,
			ZFar:        100,
		},
	}
}

func TestCameraSystemGenerationAdvances(t *testing.T) {
	cs := NewCameraSystem(&components.SceneCamera{Matrix: amath.NewMat4Identity()})

	_, firstGen := cs.ViewProjection()
	_, sameGen := cs.ViewProjection()
	assert.Equal(t, firstGen, sameGen)

	cs.SetCamera(&components.SceneCamera{Matrix: amath.NewMat4Identity()})
	_, nextGen := cs.ViewProjection()
	assert.Greater(t, nextGen, firstGen)

	cs.Invalidate()
	_, bumpedGen := cs.ViewProjection()
	assert.Greater(t, bumpedGen, nextGen)
}

func TestCameraSystemAcquireIsRefCounted(t *testing.T) {
	cs := NewCameraSystem(&components.SceneCamera{Matrix: amath.NewMat4Identity()})

	first := cs.Acquire("chase")
	second := cs.Acquire("chase")
	assert.Same(t, first, second)

	cs.Release("chase")
	// One reference still held, the entry survives.
	assert.Same(t, first, cs.Acquire("chase"))
	cs.Release("chase")
	cs.Release("chase")

	// Fully released, a fresh acquire creates a new camera.
	assert.NotSame(t, first, cs.Acquire("chase"))
}

func TestCameraSystemReleaseOfActiveRevertsToDefault(t *testing.T) {
	def := &components.SceneCamera{Matrix: amath.NewMat4Translation(amath.NewVec3(1, 2, 3))}
	cs := NewCameraSystem(def)

	chase := cs.Acquire("chase")
	cs.SetCamera(chase)
	_, activeGen := cs.ViewProjection()

	cs.Release("chase")
	matrix, gen := cs.ViewProjection()
	assert.Greater(t, gen, activeGen)
	assert.True(t, matrix.Compare(def.Matrix, 0))
}

func TestCameraSystemDefaultNameResolvesToFallback(t *testing.T) {
	def := &components.SceneCamera{Matrix: amath.NewMat4Identity()}
	cs := NewCameraSystem(def)

	assert.Same(t, components.Camera(def), cs.Acquire(DefaultCameraName))
	assert.Same(t, components.Camera(def), cs.Default())
	// Releasing the default is a no-op.
	cs.Release(DefaultCameraName)
	assert.Same(t, components.Camera(def), cs.Acquire(DefaultCameraName))
}

func TestDeriveSceneViewProjectionNoCamera(t *testing.T) {
	scene := &metadata.SceneResourceData{
		RootNodes: []*metadata.SceneNode{
			{Name: "empty", Transform: amath.NewMat4Identity()},
		},
	}
	_, err := DeriveSceneViewProjection(scene, 1.0)
	assert.ErrorIs(t, err, ErrNoSceneCamera)
}

func TestDeriveSceneViewProjectionAccumulatesTransforms(t *testing.T) {
	// A camera nested two levels deep picks up both ancestor
	// translations before the projection applies.
	leaf := perspectiveCameraNode("cam", amath.NewVec3(0, 0, 1))
	scene := &metadata.SceneResourceData{
		RootNodes: []*metadata.SceneNode{
			{
				Name:      "root",
				Transform: amath.NewMat4Translation(amath.NewVec3(1, 0, 0)),
				Children: []*metadata.SceneNode{
					{
						Name:      "mid",
						Transform: amath.NewMat4Translation(amath.NewVec3(0, 2, 0)),
						Children:  []*metadata.SceneNode{leaf},
					},
				},
			},
		},
	}

	got, err := DeriveSceneViewProjection(scene, 1.0)
	require.NoError(t, err)

	accumulated := amath.NewMat4Translation(amath.NewVec3(1, 0, 0)).
		Mul(amath.NewMat4Translation(amath.NewVec3(0, 2, 0))).
		Mul(amath.NewMat4Translation(amath.NewVec3(0, 0, 1)))
	projection := amath.NewMat4DepthRemap().Mul(amath.NewMat4Perspective(amath.DegToRad(45), 1.0, 0.1, 100))
	want := accumulated.Mul(projection)
	assert.True(t, got.Compare(want, 1e-5))
}

func TestDeriveSceneViewProjectionLastCameraWins(t *testing.T) {
	first := perspectiveCameraNode("first", amath.NewVec3(1, 0, 0))
	second := perspectiveCameraNode("second", amath.NewVec3(2, 0, 0))
	scene := &metadata.SceneResourceData{
		RootNodes: []*metadata.SceneNode{first, second},
	}

	got, err := DeriveSceneViewProjection(scene, 1.0)
	require.NoError(t, err)

	projection := amath.NewMat4DepthRemap().Mul(amath.NewMat4Perspective(amath.DegToRad(45), 1.0, 0.1, 100))
	wantSecond := amath.NewMat4Translation(amath.NewVec3(2, 0, 0)).Mul(projection)
	assert.True(t, got.Compare(wantSecond, 1e-5))

	wantFirst := amath.NewMat4Translation(amath.NewVec3(1, 0, 0)).Mul(projection)
	assert.False(t, got.Compare(wantFirst, 1e-5))
}

func TestDeriveSceneViewProjectionLastSiblingBranchWins(t *testing.T) {
	// Both cameras hang under one root; the branch visited last in
	// document order provides the result.
	root := &metadata.SceneNode{
		Name:      "root",
		Transform: amath.NewMat4Identity(),
		Children: []*metadata.SceneNode{
			perspectiveCameraNode("first", amath.NewVec3(1, 0, 0)),
			perspectiveCameraNode("second", amath.NewVec3(5, 0, 0)),
		},
	}
	scene := &metadata.SceneResourceData{RootNodes: []*metadata.SceneNode{root}}

	got, err := DeriveSceneViewProjection(scene, 1.0)
	require.NoError(t, err)

	projection := amath.NewMat4DepthRemap().Mul(amath.NewMat4Perspective(amath.DegToRad(45), 1.0, 0.1, 100))
	want := amath.NewMat4Translation(amath.NewVec3(5, 0, 0)).Mul(projection)
	assert.True(t, got.Compare(want, 1e-5))
}

func TestDeriveSceneViewProjectionCameraTerminatesBranch(t *testing.T) {
	// A camera node's children are never visited: a deeper camera
	// below it cannot override it.
	parent := perspectiveCameraNode("outer", amath.NewVec3(1, 0, 0))
	parent.Children = []*metadata.SceneNode{
		perspectiveCameraNode("inner", amath.NewVec3(9, 9, 9)),
	}
	scene := &metadata.SceneResourceData{RootNodes: []*metadata.SceneNode{parent}}

	got, err := DeriveSceneViewProjection(scene, 1.0)
	require.NoError(t, err)

	projection := amath.NewMat4DepthRemap().Mul(amath.NewMat4Perspective(amath.DegToRad(45), 1.0, 0.1, 100))
	want := amath.NewMat4Translation(amath.NewVec3(1, 0, 0)).Mul(projection)
	assert.True(t, got.Compare(want, 1e-5))
}

func TestDeriveSceneViewProjectionOrthographic(t *testing.T) {
	node := &metadata.SceneNode{
		Name:      "ortho",
		Transform: amath.NewMat4Identity(),
		Camera: &metadata.SceneCameraDef{
			Projection: metadata.SceneProjectionOrthographic,
			XMag:       2.0,
			YMag:       1.0,
			ZNear:      0.1,
			ZFar:       10,
		},
	}
	scene := &metadata.SceneResourceData{RootNodes: []*metadata.SceneNode{node}}

	got, err := DeriveSceneViewProjection(scene, 1.0)
	require.NoError(t, err)

	want := amath.NewMat4DepthRemap().Mul(amath.NewMat4Orthographic(-2, 2, -1, 1, 0.1, 10))
	assert.True(t, got.Compare(want, 1e-5))

	// The orthographic parameters actually shape the projection: a
	// frustum corner lands on the clip boundary.
	corner := want.TransformPoint(amath.NewVec3(2, 1, -10))
	assert.InDelta(t, 1.0, float64(corner.X), 1e-4)
	assert.InDelta(t, 1.0, float64(corner.Y), 1e-4)
	assert.InDelta(t, 1.0, float64(corner.Z), 1e-4)
}

func TestDeriveSceneViewProjectionDefaultFarPlane(t *testing.T) {
	node := perspectiveCameraNode("cam", amath.NewVec3Zero())
	node.Camera.ZFar = 0
	scene := &metadata.SceneResourceData{RootNodes: []*metadata.SceneNode{node}}

	got, err := DeriveSceneViewProjection(scene, 1.0)
	require.NoError(t, err)

	want := amath.NewMat4DepthRemap().Mul(
		amath.NewMat4Perspective(amath.DegToRad(45), 1.0, 0.1, defaultSceneCameraFar))
	assert.True(t, got.Compare(want, 1e-5))
}
