package webgpu

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/platform"
)

// The pixel format of the offscreen target every pass renders through.
const offscreenFormat = wgpu.TextureFormatRGBA8UnormSrgb

/**
 * @brief Owns the WebGPU device, queue and presentable surface, plus
 * the offscreen texture the background and model passes render into.
 * Everything is created once during initialization; the surface
 * configuration is the only field mutated afterwards, on resize.
 */
type Context struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceConfig *wgpu.SurfaceConfiguration

	offscreenTexture *wgpu.Texture
	offscreenView    *wgpu.TextureView
}

// NewContext opens a device compatible with the window's surface and
// configures the surface at the current drawable size. There is no
// software fallback: failure here is fatal to startup.
func NewContext(p *platform.Platform) (*Context, error) {
	width, height := p.DrawableSize()
	if width == 0 || height == 0 {
		return nil, errors.New("cannot create gpu context for a zero-size drawable")
	}

	ctx := &Context{}
	ctx.instance = wgpu.CreateInstance(nil)

	ctx.surface = ctx.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(p.Window))

	adapter, err := ctx.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: ctx.surface,
	})
	if err != nil {
		ctx.Release()
		return nil, err
	}
	ctx.adapter = adapter

	device, err := ctx.adapter.RequestDevice(nil)
	if err != nil {
		ctx.Release()
		return nil, err
	}
	ctx.device = device
	ctx.queue = device.GetQueue()

	caps := ctx.surface.GetCapabilities(ctx.adapter)
	ctx.surfaceConfig = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	ctx.surface.Configure(ctx.adapter, ctx.device, ctx.surfaceConfig)

	if err := ctx.createOffscreenTarget(width, height); err != nil {
		ctx.Release()
		return nil, err
	}

	core.LogInfo("gpu context ready: surface %dx%d format %v", width, height, ctx.surfaceConfig.Format)
	return ctx, nil
}

func (ctx *Context) createOffscreenTarget(width, height uint32) error {
	texture, err := ctx.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Offscreen Target",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        offscreenFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return err
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return err
	}
	ctx.offscreenTexture = texture
	ctx.offscreenView = view
	return nil
}

// Resize reconfigures the surface and rebuilds the offscreen target at
// the new size. Callers guarantee both dimensions are non-zero.
func (ctx *Context) Resize(width, height uint32) error {
	ctx.surfaceConfig.Width = width
	ctx.surfaceConfig.Height = height
	ctx.surface.Configure(ctx.adapter, ctx.device, ctx.surfaceConfig)

	ctx.releaseOffscreenTarget()
	return ctx.createOffscreenTarget(width, height)
}

// Reconfigure reapplies the current surface configuration. Used after a
// stale-surface acquisition miss.
func (ctx *Context) Reconfigure() {
	ctx.surface.Configure(ctx.adapter, ctx.device, ctx.surfaceConfig)
}

// AcquireSurfaceTexture returns the next presentable surface image.
func (ctx *Context) AcquireSurfaceTexture() (*wgpu.Texture, error) {
	return ctx.surface.GetCurrentTexture()
}

func (ctx *Context) SurfaceSize() (uint32, uint32) {
	return ctx.surfaceConfig.Width, ctx.surfaceConfig.Height
}

func (ctx *Context) releaseOffscreenTarget() {
	if ctx.offscreenView != nil {
		ctx.offscreenView.Release()
		ctx.offscreenView = nil
	}
	if ctx.offscreenTexture != nil {
		ctx.offscreenTexture.Release()
		ctx.offscreenTexture = nil
	}
}

func (ctx *Context) Release() {
	ctx.releaseOffscreenTarget()
	if ctx.queue != nil {
		ctx.queue.Release()
		ctx.queue = nil
	}
	if ctx.device != nil {
		ctx.device.Release()
		ctx.device = nil
	}
	if ctx.adapter != nil {
		ctx.adapter.Release()
		ctx.adapter = nil
	}
	if ctx.surface != nil {
		ctx.surface.Release()
		ctx.surface = nil
	}
	if ctx.instance != nil {
		ctx.instance.Release()
		ctx.instance = nil
	}
}
