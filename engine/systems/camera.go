package systems

import (
	"errors"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/components"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

// ErrNoSceneCamera is returned when a scene description contains no
// camera node anywhere in its hierarchy.
var ErrNoSceneCamera = errors.New("scene contains no camera")

// When a perspective scene camera declares no far plane, use this.
const defaultSceneCameraFar float32 = 10000.0

/** @brief The name reserved for the fallback camera. */
const DefaultCameraName = "default"

type cameraEntry struct {
	camera     components.Camera
	references int
}

/**
 * @brief Tracks the frame's active camera and a generation counter.
 * Downstream consumers compare generations to decide whether the
 * camera uniform needs re-uploading; an unchanged generation means an
 * unchanged view-projection.
 *
 * Named cameras are reference counted; the default camera always
 * exists and is never released.
 */
type CameraSystem struct {
	active     components.Camera
	generation uint64

	defaultCamera components.Camera
	registered    map[string]*cameraEntry
}

func NewCameraSystem(defaultCamera components.Camera) *CameraSystem {
	return &CameraSystem{
		active:        defaultCamera,
		generation:    1,
		defaultCamera: defaultCamera,
		registered:    make(map[string]*cameraEntry),
	}
}

// Acquire returns the camera registered under name, creating one on
// first use. Each acquire must be paired with a Release. The default
// camera name always resolves to the fallback camera.
func (cs *CameraSystem) Acquire(name string) components.Camera {
	if name == DefaultCameraName {
		return cs.defaultCamera
	}
	if entry, ok := cs.registered[name]; ok {
		entry.references++
		return entry.camera
	}
	camera := &components.PositionRotationCamera{
		Position:    math.NewVec3(0, 0, 5),
		Aspect:      16.0 / 9.0,
		FovYDegrees: 45.0,
		Near:        0.1,
		Far:         1000.0,
	}
	cs.registered[name] = &cameraEntry{camera: camera, references: 1}
	return camera
}

// Release drops one reference to a named camera, removing it once the
// last reference is gone. Releasing the removed camera while it is
// active reverts to the default camera.
func (cs *CameraSystem) Release(name string) {
	if name == DefaultCameraName {
		core.LogWarn("the default camera cannot be released")
		return
	}
	entry, ok := cs.registered[name]
	if !ok {
		core.LogWarn("releasing unknown camera %s", name)
		return
	}
	entry.references--
	if entry.references > 0 {
		return
	}
	delete(cs.registered, name)
	if cs.active == entry.camera {
		cs.SetCamera(cs.defaultCamera)
	}
}

// Default returns the fallback camera.
func (cs *CameraSystem) Default() components.Camera {
	return cs.defaultCamera
}

// SetCamera replaces the active camera and advances the generation.
func (cs *CameraSystem) SetCamera(camera components.Camera) {
	cs.active = camera
	cs.generation++
}

// Invalidate advances the generation without replacing the camera.
// Call it after mutating the active camera in place.
func (cs *CameraSystem) Invalidate() {
	cs.generation++
}

// ViewProjection returns the active camera's matrix together with the
// generation it belongs to.
func (cs *CameraSystem) ViewProjection() (math.Mat4, uint64) {
	return cs.active.ViewProjection(), cs.generation
}

// DeriveSceneViewProjection scans a scene description for a camera
// node. Traversal is depth-first in document order, accumulating local
// transforms; a node carrying a camera terminates its branch. When
// several branches carry cameras, the one visited last wins. This is a
// deliberate, documented tie-break: scene authors list the intended
// camera last.
func DeriveSceneViewProjection(scene *metadata.SceneResourceData, aspect float32) (math.Mat4, error) {
	result := math.NewMat4Identity()
	found := false

	for _, root := range scene.RootNodes {
		if matrix, ok := findCameraMatrix(root, math.NewMat4Identity(), aspect); ok {
			result = matrix
			found = true
		}
	}
	if !found {
		return math.NewMat4Identity(), ErrNoSceneCamera
	}
	return result, nil
}

func findCameraMatrix(node *metadata.SceneNode, parent math.Mat4, aspect float32) (math.Mat4, bool) {
	accumulated := parent.Mul(node.Transform)

	if node.Camera != nil {
		return accumulated.Mul(sceneCameraProjection(node.Camera, aspect)), true
	}

	result := math.Mat4{}
	found := false
	for _, child := range node.Children {
		if matrix, ok := findCameraMatrix(child, accumulated, aspect); ok {
			result = matrix
			found = true
		}
	}
	return result, found
}

// sceneCameraProjection builds the projection half of a scene camera,
// remapped to the [0,1] depth range.
func sceneCameraProjection(camera *metadata.SceneCameraDef, aspect float32) math.Mat4 {
	switch camera.Projection {
	case metadata.SceneProjectionOrthographic:
		return math.NewMat4DepthRemap().Mul(math.NewMat4Orthographic(
			-camera.XMag, camera.XMag,
			-camera.YMag, camera.YMag,
			camera.ZNear, camera.ZFar,
		))
	default:
		far := camera.ZFar
		if far == 0 {
			core.LogDebug("scene camera %s has no far plane, using %v", camera.Name, defaultSceneCameraFar)
			far = defaultSceneCameraFar
		}
		return math.NewMat4DepthRemap().Mul(math.NewMat4Perspective(
			camera.YFovRadians, aspect, camera.ZNear, far,
		))
	}
}
