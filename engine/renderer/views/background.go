package views

import (
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

/**
 * @brief The background view fills the offscreen target with a cached
 * texture selected by name every frame. It always runs first and
 * always clears.
 */
type BackgroundView struct{}

func NewBackgroundView() *BackgroundView {
	return &BackgroundView{}
}

func (v *BackgroundView) OnBuildPacket(packet *metadata.RenderPacket) *metadata.RenderViewPacket {
	return &metadata.RenderViewPacket{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_BACKGROUND,
		TextureName:    packet.BackgroundTextureName,
	}
}
