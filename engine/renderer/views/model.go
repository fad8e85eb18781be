package views

import (
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

/**
 * @brief The model view draws instanced 3d geometry over whatever the
 * background view produced, loading the offscreen target rather than
 * clearing it.
 */
type ModelView struct{}

func NewModelView() *ModelView {
	return &ModelView{}
}

func (v *ModelView) OnBuildPacket(packet *metadata.RenderPacket) *metadata.RenderViewPacket {
	return &metadata.RenderViewPacket{
		RenderViewType:   metadata.RENDERER_VIEW_KNOWN_TYPE_MODEL,
		ViewProjection:   packet.CameraViewProjection,
		CameraGeneration: packet.CameraGeneration,
		Instances:        packet.ModelInstances,
	}
}
