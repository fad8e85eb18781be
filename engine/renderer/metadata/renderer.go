package metadata

import (
	"github.com/spaghettifunk/aurora/engine/math"
)

/** @brief Known render view types, which have logic associated with them. */
type RenderViewKnownType int

const (
	/** @brief A view which fills the offscreen target with a cached texture. */
	RENDERER_VIEW_KNOWN_TYPE_BACKGROUND RenderViewKnownType = 0x01
	/** @brief A view which draws instanced 3d geometry over the offscreen target. */
	RENDERER_VIEW_KNOWN_TYPE_MODEL RenderViewKnownType = 0x02
	/** @brief A view which resolves the offscreen target to the surface and presents. */
	RENDERER_VIEW_KNOWN_TYPE_POSTPROCESS RenderViewKnownType = 0x03
)

/**
 * @brief A structure which is generated by the application and sent once
 * to the renderer to render a given frame. It carries everything the
 * frame needs; the renderer holds no reference back into application
 * state.
 */
type RenderPacket struct {
	DeltaTime float64
	/** @brief The manifest name of the texture the background view samples. */
	BackgroundTextureName string
	/** @brief The view-projection matrix of the frame's active camera. */
	CameraViewProjection math.Mat4
	/** @brief Bumped whenever the camera changes; unchanged generations skip the uniform upload. */
	CameraGeneration uint64
	/** @brief The world transforms of every model instance drawn this frame. */
	ModelInstances []ModelInstance
}

/**
 * @brief A packet for and generated by a render view, which contains
 * data about what is to be rendered.
 */
type RenderViewPacket struct {
	/** @brief The known type of the view this packet belongs to. */
	RenderViewType RenderViewKnownType
	/** @brief The manifest texture name, for views that sample one. */
	TextureName string
	/** @brief The camera view-projection, for views that project geometry. */
	ViewProjection math.Mat4
	/** @brief The camera generation the ViewProjection was derived from. */
	CameraGeneration uint64
	/** @brief The instances to draw, for views that draw geometry. */
	Instances []ModelInstance
}
