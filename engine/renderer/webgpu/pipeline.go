package webgpu

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

//go:embed shaders/background.wgsl
var backgroundShaderSource string

//go:embed shaders/model.wgsl
var modelShaderSource string

//go:embed shaders/postprocess.wgsl
var postProcessShaderSource string

// passResources bundles the immutable pieces of one render pass: its
// pipeline, the layout per-frame bind groups are built against, and the
// pass's static vertex buffer.
type passResources struct {
	pipeline        *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	vertexBuffer    *wgpu.Buffer
}

func (pr *passResources) release() {
	if pr.vertexBuffer != nil {
		pr.vertexBuffer.Release()
		pr.vertexBuffer = nil
	}
	if pr.bindGroupLayout != nil {
		pr.bindGroupLayout.Release()
		pr.bindGroupLayout = nil
	}
	if pr.pipeline != nil {
		pr.pipeline.Release()
		pr.pipeline = nil
	}
}

func posTexVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: metadata.POS_TEX_VERTEX_STRIDE,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
		},
	}
}

func modelVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: metadata.MODEL_VERTEX_STRIDE,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}

// modelInstanceLayout exposes one 4x4 transform per instance as four
// column vectors.
func modelInstanceLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: metadata.MODEL_INSTANCE_STRIDE,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 6},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 7},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 8},
		},
	}
}

// sampledTextureBindGroupLayout is the shared fragment-stage layout for
// passes that sample one texture: binding 0 the view, binding 1 the
// sampler.
func (r *Renderer) sampledTextureBindGroupLayout(label string) (*wgpu.BindGroupLayout, error) {
	return r.context.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
}

func (r *Renderer) createBackgroundPass() error {
	shader, err := r.context.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Background Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: backgroundShaderSource},
	})
	if err != nil {
		return err
	}
	defer shader.Release()

	layout, err := r.sampledTextureBindGroupLayout("Background Bind Group Layout")
	if err != nil {
		return err
	}

	pipeline, err := r.createQuadPipeline("Background", shader, layout, offscreenFormat)
	if err != nil {
		layout.Release()
		return err
	}

	vertexBuffer, err := r.context.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Full Screen Quad Vertex Buffer",
		Contents: metadata.PosTexVerticesBytes(metadata.FullScreenQuadVertices()),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		layout.Release()
		pipeline.Release()
		return err
	}

	r.backgroundPass = passResources{
		pipeline:        pipeline,
		bindGroupLayout: layout,
		vertexBuffer:    vertexBuffer,
	}
	return nil
}

func (r *Renderer) createPostProcessPass() error {
	shader, err := r.context.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Post Process Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: postProcessShaderSource},
	})
	if err != nil {
		return err
	}
	defer shader.Release()

	layout, err := r.sampledTextureBindGroupLayout("Post Process Bind Group Layout")
	if err != nil {
		return err
	}

	pipeline, err := r.createQuadPipeline("Post Process", shader, layout, r.context.surfaceConfig.Format)
	if err != nil {
		layout.Release()
		return err
	}

	// The quad vertex data is shared with the background pass, but each
	// pass owns its buffer so teardown stays per-pass.
	vertexBuffer, err := r.context.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Post Process Quad Vertex Buffer",
		Contents: metadata.PosTexVerticesBytes(metadata.FullScreenQuadVertices()),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		layout.Release()
		pipeline.Release()
		return err
	}

	r.postProcessPass = passResources{
		pipeline:        pipeline,
		bindGroupLayout: layout,
		vertexBuffer:    vertexBuffer,
	}
	return nil
}

// createQuadPipeline builds the pipeline shared in shape by both
// screen-space passes; they differ only in shader and target format.
func (r *Renderer) createQuadPipeline(label string, shader *wgpu.ShaderModule, layout *wgpu.BindGroupLayout, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	pipelineLayout, err := r.context.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label + " Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return nil, err
	}
	defer pipelineLayout.Release()

	return r.context.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{posTexVertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

func (r *Renderer) createModelPass() error {
	shader, err := r.context.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Model Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: modelShaderSource},
	})
	if err != nil {
		return err
	}
	defer shader.Release()

	layout, err := r.context.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Model Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return err
	}

	pipelineLayout, err := r.context.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Model Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		layout.Release()
		return err
	}
	defer pipelineLayout.Release()

	pipeline, err := r.context.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Model Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				modelVertexLayout(),
				modelInstanceLayout(),
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    offscreenFormat,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		layout.Release()
		return err
	}

	vertexBuffer, err := r.context.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Model Vertex Buffer",
		Contents: metadata.ModelVerticesBytes(metadata.CubeModelVertices()),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		layout.Release()
		pipeline.Release()
		return err
	}
	r.modelVertexCount = uint32(len(metadata.CubeModelVertices()))

	cameraBuffer, err := r.context.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Camera Uniform Buffer",
		Contents: make([]byte, 16*4),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		layout.Release()
		pipeline.Release()
		vertexBuffer.Release()
		return err
	}

	cameraBindGroup, err := r.context.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  cameraBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		layout.Release()
		pipeline.Release()
		vertexBuffer.Release()
		cameraBuffer.Release()
		return err
	}

	r.modelPass = passResources{
		pipeline:        pipeline,
		bindGroupLayout: layout,
		vertexBuffer:    vertexBuffer,
	}
	r.cameraBuffer = cameraBuffer
	r.cameraBindGroup = cameraBindGroup
	return nil
}

// createSampler builds the single shared edge-clamped nearest sampler.
func (r *Renderer) createSampler() error {
	sampler, err := r.context.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shared Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return err
	}
	r.sampler = sampler
	return nil
}
