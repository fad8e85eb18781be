package metadata

import (
	"github.com/spaghettifunk/aurora/engine/math"
)

/** @brief The projection kinds a scene camera may declare. */
type SceneProjectionType int

const (
	SceneProjectionPerspective SceneProjectionType = iota
	SceneProjectionOrthographic
)

/**
 * @brief Camera parameters attached to a scene node.
 */
type SceneCameraDef struct {
	/** @brief The camera Name from the document, if any. */
	Name string
	/** @brief The projection kind. */
	Projection SceneProjectionType
	/** @brief The vertical field of view in radians. Perspective only. */
	YFovRadians float32
	/** @brief The near clipping plane distance. */
	ZNear float32
	/** @brief The far clipping plane distance. Zero means unbounded. */
	ZFar float32
	/** @brief The orthographic half extents. Orthographic only. */
	XMag float32
	YMag float32
}

/**
 * @brief One node of a loaded scene hierarchy. Transform is the node's
 * local transform relative to its parent.
 */
type SceneNode struct {
	/** @brief The node Name from the document, if any. */
	Name string
	/** @brief The node's local transform. */
	Transform math.Mat4
	/** @brief The Camera attached to this node, if any. */
	Camera *SceneCameraDef
	/** @brief The child nodes, in document order. */
	Children []*SceneNode
}

/**
 * @brief A resource data payload describing a loaded scene: the root
 * nodes of every scene in the document, in document order.
 */
type SceneResourceData struct {
	RootNodes []*SceneNode
}
