package renderer

import (
	"errors"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/renderer/views"
)

/**
 * @brief The contract every rendering backend fulfills. All GPU
 * resources are created during Initialize and torn down during
 * Shutdown; nothing is created lazily mid-frame except transient
 * per-frame bind groups and encoders inside the pass methods.
 */
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	// Resized reconfigures the surface and the offscreen target.
	// Zero-size requests are rejected by the frontend before this is
	// reached.
	Resized(width, height uint32) error
	// TextureCreate uploads pixels and fills texture.InternalData.
	TextureCreate(pixels []uint8, texture *metadata.Texture) error
	TextureDestroy(texture *metadata.Texture) error
	// BackgroundPassRender clears the offscreen target and fills it
	// with the given texture. Submits one command buffer.
	BackgroundPassRender(texture *metadata.Texture) error
	// ModelPassRender draws instanced geometry over the offscreen
	// target without clearing it. The camera uniform is re-uploaded
	// only when cameraGeneration has advanced. Submits one command
	// buffer.
	ModelPassRender(viewProjection [16]float32, cameraGeneration uint64, instances []metadata.ModelInstance) error
	// PostProcessPassRender resolves the offscreen target to the
	// surface and presents it. Returns core.ErrSurfaceOutdated when
	// the surface image could not be acquired this frame.
	PostProcessPassRender() error
}

// TextureResolver turns a logical texture name into a GPU texture,
// loading it on first use.
type TextureResolver interface {
	Acquire(name string) (*metadata.Texture, error)
}

// Consecutive surface acquisition failures tolerated before the
// condition is treated as fatal.
const maxSurfaceFailures = 3

/**
 * @brief The renderer frontend. It owns the backend, the render views
 * and the per-frame orchestration: pending resize first, then the
 * background, model and post-process views in that exact order.
 */
type Renderer struct {
	backend  RendererBackend
	textures TextureResolver

	backgroundView  *views.BackgroundView
	modelView       *views.ModelView
	postProcessView *views.PostProcessView

	pendingResizeWidth  uint32
	pendingResizeHeight uint32
	hasPendingResize    bool

	surfaceFailures int
	frameNumber     uint64
}

func New(backend RendererBackend, textures TextureResolver) *Renderer {
	return &Renderer{
		backend:         backend,
		textures:        textures,
		backgroundView:  views.NewBackgroundView(),
		modelView:       views.NewModelView(),
		postProcessView: views.NewPostProcessView(),
	}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := r.backend.Initialize(appName, appWidth, appHeight); err != nil {
		return err
	}
	core.LogInfo("renderer initialized at %dx%d", appWidth, appHeight)
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

// OnResize records the new drawable size. The surface is reconfigured
// at the top of the next DrawFrame, never mid-frame. Degenerate sizes
// are ignored and the last valid configuration kept.
func (r *Renderer) OnResize(width, height uint32) {
	if width == 0 || height == 0 {
		core.LogDebug("ignoring degenerate resize request %dx%d", width, height)
		return
	}
	r.pendingResizeWidth = width
	r.pendingResizeHeight = height
	r.hasPendingResize = true
}

func (r *Renderer) TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	return r.backend.TextureCreate(pixels, texture)
}

func (r *Renderer) TextureDestroy(texture *metadata.Texture) error {
	return r.backend.TextureDestroy(texture)
}

// DrawFrame renders one frame from the packet. Asset failures skip the
// affected view's draw and are returned after the frame completes, so
// one missing texture never blacks out the whole frame. A recoverable
// surface miss skips the frame; repeated misses escalate to
// core.ErrSurfaceLost.
func (r *Renderer) DrawFrame(packet *metadata.RenderPacket) error {
	if r.hasPendingResize {
		if err := r.backend.Resized(r.pendingResizeWidth, r.pendingResizeHeight); err != nil {
			return err
		}
		r.hasPendingResize = false
	}

	r.frameNumber++
	var assetErr error

	backgroundPacket := r.backgroundView.OnBuildPacket(packet)
	if err := r.renderBackground(backgroundPacket); err != nil {
		if isAssetError(err) {
			core.LogWarn("background view skipped: %s", err)
			assetErr = err
		} else {
			return err
		}
	}

	modelPacket := r.modelView.OnBuildPacket(packet)
	if err := r.backend.ModelPassRender(modelPacket.ViewProjection.Data, modelPacket.CameraGeneration, modelPacket.Instances); err != nil {
		return err
	}

	if err := r.backend.PostProcessPassRender(); err != nil {
		if errors.Is(err, core.ErrSurfaceOutdated) {
			r.surfaceFailures++
			if r.surfaceFailures >= maxSurfaceFailures {
				return core.ErrSurfaceLost
			}
			core.LogWarn("surface outdated, skipping frame %d", r.frameNumber)
			return err
		}
		return err
	}
	r.surfaceFailures = 0

	return assetErr
}

func (r *Renderer) renderBackground(packet *metadata.RenderViewPacket) error {
	texture, err := r.textures.Acquire(packet.TextureName)
	if err != nil {
		return err
	}
	return r.backend.BackgroundPassRender(texture)
}

// isAssetError reports whether err belongs to the asset failure class:
// a missing manifest entry, an unreadable file or an undecodable one.
func isAssetError(err error) bool {
	var ioErr *core.IOError
	var decodeErr *core.DecodeError
	return errors.Is(err, core.ErrNameNotInManifest) ||
		errors.As(err, &ioErr) ||
		errors.As(err, &decodeErr)
}
