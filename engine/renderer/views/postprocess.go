package views

import (
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

/**
 * @brief The post-process view resolves the offscreen target to the
 * surface and presents it. Presenting is the frame's terminal side
 * effect, so this view always runs last.
 */
type PostProcessView struct{}

func NewPostProcessView() *PostProcessView {
	return &PostProcessView{}
}

func (v *PostProcessView) OnBuildPacket(packet *metadata.RenderPacket) *metadata.RenderViewPacket {
	return &metadata.RenderViewPacket{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_POSTPROCESS,
	}
}
