package engine

import (
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown

	// Populated by the engine before FnInitialize runs.
	Systems *Systems
}

type Initialize func() error
type Update func(deltaTime float64) error

// Render fills the packet with everything the frame needs: which
// background texture to sample, the camera view-projection and the
// model instances to draw.
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
