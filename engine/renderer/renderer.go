package renderer

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/rxhxm/rc-car-3d-experience/common"
	"github.com/rxhxm/rc-car-3d-experience/engine/model"
)

// drawUniforms is the GPU-side uniform block for a single draw: the combined
// model-view-projection matrix, the model's base color, and the textured flag
// in Flags[0]. Layout matches the WGSL Uniforms struct (96 bytes).
type drawUniforms struct {
	MVP       [16]float32
	BaseColor [4]float32
	Flags     [4]float32
}

// meshResources holds the GPU resources created for one registered model.
type meshResources struct {
	vertexBuffer  *wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	indexCount    uint32
	uniformBuffer *wgpu.Buffer
	bindGroup     *wgpu.BindGroup
	baseColor     [4]float32
	textured      bool
}

type rendererImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor
	presentMode          wgpu.PresentMode
	clearColor           wgpu.Color
	forceFallbackAdapter bool

	pipeline        *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	defaultSampler  *wgpu.Sampler
	whiteTexView    *wgpu.TextureView

	meshes         map[string]*meshResources
	viewProjection [16]float32

	// Frame state for batched draws between BeginFrame and Present.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	width, height int
}

// Renderer owns the GPU device, a single lit render pipeline, and the
// per-model GPU resources. Models are registered once; each frame the caller
// brackets draws with BeginFrame/EndFrame and presents the result.
//
// Because every registered model owns one uniform buffer, a model may be drawn
// at most once per frame; distinct objects need distinct model names.
type Renderer interface {
	// RegisterModel uploads the model's mesh and optional texture to the GPU
	// and creates its uniform buffer and bind group. Registering an existing
	// name replaces the prior resources.
	//
	// Parameters:
	//   - m: the model to register (must carry a non-empty mesh)
	//
	// Returns:
	//   - error: an error if GPU resource creation fails
	RegisterModel(m model.Model) error

	// UpdateCamera stores the view-projection matrix used for draws this frame.
	//
	// Parameters:
	//   - viewProjection: column-major combined view-projection matrix
	UpdateCamera(viewProjection [16]float32)

	// BeginFrame acquires the next surface texture and opens the render pass.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	BeginFrame() error

	// Draw encodes an indexed draw of a registered model with the given
	// world transform. Must be called between BeginFrame and EndFrame.
	//
	// Parameters:
	//   - name: the registered model name
	//   - modelMatrix: column-major world transform
	//
	// Returns:
	//   - error: an error if the model is not registered
	Draw(name string, modelMatrix [16]float32) error

	// EndFrame closes the render pass and submits the command buffer.
	EndFrame()

	// Present presents the rendered frame to the surface.
	Present()

	// Resize reconfigures the surface and depth texture for a new window size.
	//
	// Parameters:
	//   - width: new surface width in pixels
	//   - height: new surface height in pixels
	Resize(width, height int)

	// Release destroys all GPU resources owned by the renderer.
	Release()
}

var _ Renderer = &rendererImpl{}

// NewRenderer creates the GPU device for the given surface, builds the render
// pipeline, and configures the surface at the given size.
//
// Parameters:
//   - surfaceDescriptor: the window surface to render into
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: an error if device or pipeline creation fails
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererOption) (Renderer, error) {
	r := &rendererImpl{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
		clearColor:  wgpu.Color{R: 0.53, G: 0.73, B: 0.92, A: 1.0},
		meshes:      make(map[string]*meshResources),
		width:       width,
		height:      height,
	}
	common.Identity(r.viewProjection[:])
	for _, option := range options {
		option(r)
	}

	r.instance = wgpu.CreateInstance(nil)
	r.surface = r.instance.CreateSurface(surfaceDescriptor)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	r.device = device
	r.queue = device.GetQueue()

	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = capabilities.Formats[0]

	if err := r.initPipeline(); err != nil {
		return nil, err
	}
	if err := r.initSharedResources(); err != nil {
		return nil, err
	}
	r.configureSurface(width, height)

	return r, nil
}

func (r *rendererImpl) initPipeline() error {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Scene Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: sceneShaderSource},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	defer module.Release()

	layout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Scene Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	r.bindGroupLayout = layout

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Scene Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	vertexSize := uint64(12 + 12 + 8 + 16)
	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Scene Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: vertexSize,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    r.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	r.pipeline = pipeline
	return nil
}

// initSharedResources creates the default sampler and the 1x1 white texture
// bound for untextured models so a single pipeline serves every draw.
func (r *rendererImpl) initSharedResources() error {
	sampler, err := r.createSampler(common.SamplerStagingData{})
	if err != nil {
		return err
	}
	r.defaultSampler = sampler

	white := &common.TextureStagingData{
		Pixels: []byte{255, 255, 255, 255},
		Width:  1,
		Height: 1,
	}
	view, err := r.createTextureView("White Fallback", white)
	if err != nil {
		return err
	}
	r.whiteTexView = view
	return nil
}

func (r *rendererImpl) createSampler(staging common.SamplerStagingData) (*wgpu.Sampler, error) {
	return r.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Scene Sampler",
		AddressModeU:  common.Coalesce(staging.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(staging.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(staging.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(staging.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(staging.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: common.Coalesce(staging.MaxAnisotropy, 1),
	})
}

func (r *rendererImpl) createTextureView(label string, staging *common.TextureStagingData) (*wgpu.TextureView, error) {
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label,
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              staging.Width,
			Height:             staging.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		staging.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  staging.Width * 4,
			RowsPerImage: staging.Height,
		},
		&wgpu.Extent3D{
			Width:              staging.Width,
			Height:             staging.Height,
			DepthOrArrayLayers: 1,
		},
	)

	return tex.CreateView(nil)
}

func (r *rendererImpl) configureSurface(width, height int) {
	capabilities := r.surface.GetCapabilities(r.adapter)

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	depthTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	r.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	r.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       nil, // set per-frame to the swapchain view
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	r.width = width
	r.height = height
}

func (r *rendererImpl) RegisterModel(m model.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mesh := m.Mesh()
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return fmt.Errorf("model %q has no mesh data", m.Name())
	}

	res := &meshResources{
		indexCount: uint32(len(mesh.Indices)),
		baseColor:  m.BaseColor(),
	}

	vertexData := common.SliceToBytes(mesh.Vertices)
	vbuf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	r.queue.WriteBuffer(vbuf, 0, vertexData)
	res.vertexBuffer = vbuf

	indexData := common.SliceToBytes(mesh.Indices)
	ibuf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	r.queue.WriteBuffer(ibuf, 0, indexData)
	res.indexBuffer = ibuf

	ubuf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Uniform Buffer",
		Size:  uint64(96),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	res.uniformBuffer = ubuf

	texView := r.whiteTexView
	if staged := m.Texture(); staged != nil {
		view, err := r.createTextureView(m.Name()+" Texture", staged)
		if err != nil {
			return err
		}
		texView = view
		res.textured = true
	}

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  m.Name() + " Bind Group",
		Layout: r.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: ubuf, Size: wgpu.WholeSize},
			{Binding: 1, Sampler: r.defaultSampler},
			{Binding: 2, TextureView: texView},
		},
	})
	if err != nil {
		return err
	}
	res.bindGroup = bindGroup

	r.meshes[m.Name()] = res
	return nil
}

func (r *rendererImpl) UpdateCamera(viewProjection [16]float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewProjection = viewProjection
}

func (r *rendererImpl) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Avoid acquiring a second surface image if the previous frame was
	// never presented.
	if r.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	r.renderPassDescriptor.ColorAttachments[0].View = view
	pass := encoder.BeginRenderPass(r.renderPassDescriptor)

	r.frameEncoder = encoder
	r.framePass = pass
	r.frameSurface = surfaceTexture
	r.frameView = view

	return nil
}

func (r *rendererImpl) Draw(name string, modelMatrix [16]float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.meshes[name]
	if !ok {
		return fmt.Errorf("model %q not registered", name)
	}
	if r.framePass == nil {
		return fmt.Errorf("Draw called outside BeginFrame/EndFrame")
	}

	uniforms := drawUniforms{
		BaseColor: res.baseColor,
	}
	common.Mul4(uniforms.MVP[:], r.viewProjection[:], modelMatrix[:])
	if res.textured {
		uniforms.Flags[0] = 1
	}
	r.queue.WriteBuffer(res.uniformBuffer, 0, common.StructToBytes(&uniforms))

	r.framePass.SetPipeline(r.pipeline)
	r.framePass.SetBindGroup(0, res.bindGroup, nil)
	r.framePass.SetVertexBuffer(0, res.vertexBuffer, 0, wgpu.WholeSize)
	r.framePass.SetIndexBuffer(res.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	r.framePass.DrawIndexed(res.indexCount, 1, 0, 0, 0)
	return nil
}

func (r *rendererImpl) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.framePass == nil {
		return
	}
	r.framePass.End()

	commandBuffer, err := r.frameEncoder.Finish(nil)
	if err != nil {
		r.frameEncoder.Release()
		r.frameView.Release()
		r.frameSurface.Release()
		r.frameEncoder = nil
		r.framePass = nil
		r.frameSurface = nil
		r.frameView = nil
		return
	}

	r.queue.Submit(commandBuffer)

	commandBuffer.Release()
	r.frameEncoder.Release()
	r.frameEncoder = nil
	r.framePass = nil
}

func (r *rendererImpl) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameSurface == nil {
		return
	}

	r.surface.Present()

	if r.frameView != nil {
		r.frameView.Release()
		r.frameView = nil
	}
	r.frameSurface.Release()
	r.frameSurface = nil
}

func (r *rendererImpl) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	if r.depthTextureView != nil {
		r.depthTextureView.Release()
	}
	r.configureSurface(width, height)
}

func (r *rendererImpl) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range r.meshes {
		if res.bindGroup != nil {
			res.bindGroup.Release()
		}
		if res.uniformBuffer != nil {
			res.uniformBuffer.Release()
		}
		if res.indexBuffer != nil {
			res.indexBuffer.Release()
		}
		if res.vertexBuffer != nil {
			res.vertexBuffer.Release()
		}
	}
	r.meshes = make(map[string]*meshResources)

	if r.whiteTexView != nil {
		r.whiteTexView.Release()
	}
	if r.defaultSampler != nil {
		r.defaultSampler.Release()
	}
	if r.depthTextureView != nil {
		r.depthTextureView.Release()
	}
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.bindGroupLayout != nil {
		r.bindGroupLayout.Release()
	}
	if r.device != nil {
		r.device.Release()
	}
}
