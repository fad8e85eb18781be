package webgpu

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/spaghettifunk/aurora/engine/core"
	amath "github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/platform"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

/**
 * @brief The WebGPU rendering backend. Owns the GPU context and all
 * pass resources. Everything except per-frame bind groups, encoders
 * and the instance buffer is created in Initialize.
 */
type Renderer struct {
	platform *platform.Platform
	context  *Context

	backgroundPass  passResources
	modelPass       passResources
	postProcessPass passResources

	sampler *wgpu.Sampler

	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup

	modelVertexCount uint32

	lastCameraGeneration uint64
	cameraUploaded       bool
}

func New(p *platform.Platform) *Renderer {
	return &Renderer{
		platform: p,
	}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	ctx, err := NewContext(r.platform)
	if err != nil {
		return err
	}
	r.context = ctx

	if err := r.createSampler(); err != nil {
		r.Shutdown()
		return err
	}
	if err := r.createBackgroundPass(); err != nil {
		r.Shutdown()
		return err
	}
	if err := r.createModelPass(); err != nil {
		r.Shutdown()
		return err
	}
	if err := r.createPostProcessPass(); err != nil {
		r.Shutdown()
		return err
	}

	core.LogInfo("webgpu backend initialized for %s", appName)
	return nil
}

func (r *Renderer) Shutdown() error {
	if r.cameraBindGroup != nil {
		r.cameraBindGroup.Release()
		r.cameraBindGroup = nil
	}
	if r.cameraBuffer != nil {
		r.cameraBuffer.Release()
		r.cameraBuffer = nil
	}
	r.backgroundPass.release()
	r.modelPass.release()
	r.postProcessPass.release()
	if r.sampler != nil {
		r.sampler.Release()
		r.sampler = nil
	}
	if r.context != nil {
		r.context.Release()
		r.context = nil
	}
	return nil
}

func (r *Renderer) Resized(width, height uint32) error {
	core.LogDebug("surface resize to %dx%d", width, height)
	return r.context.Resize(width, height)
}

// BackgroundPassRender clears the offscreen target to transparent and
// draws the given texture across it.
func (r *Renderer) BackgroundPassRender(texture *metadata.Texture) error {
	data, ok := texture.InternalData.(*textureData)
	if !ok || data == nil {
		return errors.New("background texture has no gpu data")
	}

	bindGroup, err := r.context.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Background Bind Group",
		Layout: r.backgroundPass.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: data.view},
			{Binding: 1, Sampler: r.sampler},
		},
	})
	if err != nil {
		return err
	}
	defer bindGroup.Release()

	encoder, err := r.context.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Background Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       r.context.offscreenView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	pass.SetPipeline(r.backgroundPass.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.SetVertexBuffer(0, r.backgroundPass.vertexBuffer, 0, wgpu.WholeSize)
	pass.Draw(6, 1, 0, 0)
	pass.End()
	pass.Release()

	return r.finishAndSubmit(encoder)
}

// ModelPassRender draws the instanced geometry over the offscreen
// target. The camera uniform is only rewritten when the generation
// advanced since the previous upload.
func (r *Renderer) ModelPassRender(viewProjection [16]float32, cameraGeneration uint64, instances []metadata.ModelInstance) error {
	if !r.cameraUploaded || cameraGeneration != r.lastCameraGeneration {
		vp := amath.Mat4{Data: viewProjection}
		if err := r.context.queue.WriteBuffer(r.cameraBuffer, 0, metadata.Mat4Bytes(vp)); err != nil {
			return err
		}
		r.lastCameraGeneration = cameraGeneration
		r.cameraUploaded = true
	}

	// Nothing to draw leaves the background pass output untouched.
	if len(instances) == 0 {
		return nil
	}

	instanceBuffer, err := r.context.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Model Instance Buffer",
		Contents: metadata.ModelInstancesBytes(instances),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return err
	}
	defer instanceBuffer.Release()

	encoder, err := r.context.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Model Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    r.context.offscreenView,
			LoadOp:  wgpu.LoadOpLoad,
			StoreOp: wgpu.StoreOpStore,
		}},
	})
	pass.SetPipeline(r.modelPass.pipeline)
	pass.SetBindGroup(0, r.cameraBindGroup, nil)
	pass.SetVertexBuffer(0, r.modelPass.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, instanceBuffer, 0, wgpu.WholeSize)
	pass.Draw(r.modelVertexCount, uint32(len(instances)), 0, 0)
	pass.End()
	pass.Release()

	return r.finishAndSubmit(encoder)
}

// PostProcessPassRender resolves the offscreen target onto the next
// surface image and presents it. A failed acquisition reconfigures the
// surface and reports core.ErrSurfaceOutdated so the orchestrator can
// skip the frame.
func (r *Renderer) PostProcessPassRender() error {
	surfaceTexture, err := r.context.AcquireSurfaceTexture()
	if err != nil {
		core.LogWarn("surface texture acquisition failed: %s", err)
		r.context.Reconfigure()
		return core.ErrSurfaceOutdated
	}
	defer surfaceTexture.Release()

	surfaceView, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer surfaceView.Release()

	bindGroup, err := r.context.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Post Process Bind Group",
		Layout: r.postProcessPass.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: r.context.offscreenView},
			{Binding: 1, Sampler: r.sampler},
		},
	})
	if err != nil {
		return err
	}
	defer bindGroup.Release()

	encoder, err := r.context.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Post Process Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       surfaceView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(r.postProcessPass.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.SetVertexBuffer(0, r.postProcessPass.vertexBuffer, 0, wgpu.WholeSize)
	pass.Draw(6, 1, 0, 0)
	pass.End()
	pass.Release()

	if err := r.finishAndSubmit(encoder); err != nil {
		return err
	}

	// Presenting is the frame's terminal side effect.
	r.context.surface.Present()
	return nil
}

func (r *Renderer) finishAndSubmit(encoder *wgpu.CommandEncoder) error {
	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()
	r.context.queue.Submit(commandBuffer)
	return nil
}
