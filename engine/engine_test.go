package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

// stubBackend counts presented frames without touching a GPU.
type stubBackend struct {
	frames int
}

func (b *stubBackend) Initialize(appName string, appWidth, appHeight uint32) error { return nil }
func (b *stubBackend) Shutdown() error                                             { return nil }
func (b *stubBackend) Resized(width, height uint32) error                          { return nil }
func (b *stubBackend) TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	return nil
}
func (b *stubBackend) TextureDestroy(texture *metadata.Texture) error { return nil }
func (b *stubBackend) BackgroundPassRender(texture *metadata.Texture) error {
	return nil
}
func (b *stubBackend) ModelPassRender(viewProjection [16]float32, cameraGeneration uint64, instances []metadata.ModelInstance) error {
	return nil
}
func (b *stubBackend) PostProcessPassRender() error {
	b.frames++
	return nil
}

type stubResolver struct{}

func (r *stubResolver) Acquire(name string) (*metadata.Texture, error) {
	return &metadata.Texture{Name: name}, nil
}

func newRedrawTestEngine(backend *stubBackend) *Engine {
	game := &Game{
		ApplicationConfig: DefaultApplicationConfig(),
		FnRender: func(packet *metadata.RenderPacket, deltaTime float64) error {
			packet.BackgroundTextureName = metadata.BACKGROUND_TEXTURE_NAME
			return nil
		},
	}
	return &Engine{
		gameInstance: game,
		renderer:     renderer.New(backend, &stubResolver{}),
		isRunning:    true,
	}
}

func TestRedrawRequestDrawsFrame(t *testing.T) {
	backend := &stubBackend{}
	e := newRedrawTestEngine(backend)

	handled := e.onRedrawRequested(core.EventContext{Type: core.EVENT_CODE_REDRAW_REQUESTED})

	assert.True(t, handled)
	assert.Equal(t, 1, backend.frames)
}

func TestRedrawRequestIgnoredWhileSuspended(t *testing.T) {
	backend := &stubBackend{}
	e := newRedrawTestEngine(backend)
	e.isSuspended = true

	handled := e.onRedrawRequested(core.EventContext{Type: core.EVENT_CODE_REDRAW_REQUESTED})

	assert.False(t, handled)
	assert.Equal(t, 0, backend.frames)
}

func TestRedrawRequestIgnoredBeforeRendererExists(t *testing.T) {
	e := newRedrawTestEngine(&stubBackend{})
	e.renderer = nil

	handled := e.onRedrawRequested(core.EventContext{Type: core.EVENT_CODE_REDRAW_REQUESTED})

	assert.False(t, handled)
}
