package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/lumen-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer manages a cache of pipelines keyed by name and exposes an explicit pass model: a frame
// is opened with BeginFrame, any number of passes are recorded with BeginPass/Draw/EndPass against
// offscreen targets or the swapchain, and the frame is submitted with EndFrame and shown with Present.
// The Renderer also implements a backend which allows for multiple backend API implementations to exist.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines registers one or more pipelines by creating the corresponding GPU
	// pipeline objects via the backend, then caching them by PipelineKey.
	// Pipelines whose keys are already registered are skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SurfaceFormat returns the configured swapchain texture format.
	//
	// Returns:
	//   - wgpu.TextureFormat: the swapchain format
	SurfaceFormat() wgpu.TextureFormat

	// SurfaceSize returns the configured swapchain dimensions in pixels.
	//
	// Returns:
	//   - width: the surface width
	//   - height: the surface height
	SurfaceSize() (width, height uint32)

	// SampleCount returns the MSAA sample count used for swapchain passes.
	//
	// Returns:
	//   - MSAASampleCount: the sample count
	SampleCount() MSAASampleCount

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given Binding for later use in draw calls.
	//
	// Parameters:
	//   - bnd: the Binding to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(bnd binding.Binding, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates GPU buffers and a bind group from a layout descriptor and stores them
	// on the given Binding. Textures and samplers must be present on the Binding before calling
	// this method. Buffer usage and size can be overridden per binding.
	//
	// Parameters:
	//   - bnd: the Binding to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//   - bufferUsageOverrides: additional buffer usage flags to OR into the derived usage, keyed by binding index (nil safe)
	//   - bufferSizeOverrides: custom buffer sizes to use instead of MinBindingSize, keyed by binding index (nil safe)
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(bnd binding.Binding, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// InitTextureView creates a GPU texture from staging data and stores the resulting texture view
	// on the given Binding at the specified binding index. Must be called before InitBindGroup
	// for any texture bindings not sourced from render targets.
	//
	// Parameters:
	//   - bnd: the Binding to store the created texture view on
	//   - bindingKey: the binding index for this texture
	//   - stagingData: the pixel data and dimensions for the texture
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitTextureView(bnd binding.Binding, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a GPU sampler from staging data and stores it on the given Binding
	// at the specified binding index. Must be called before InitBindGroup for any sampler bindings.
	//
	// Parameters:
	//   - bnd: the Binding to store the created sampler on
	//   - bindingKey: the binding index for this sampler
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(bnd binding.Binding, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a specific buffer on a Binding at a given binding index and offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []binding.BufferWrite)

	// CreateColorTarget creates an offscreen color texture that passes can render into and
	// later passes can sample.
	//
	// Parameters:
	//   - label: a debug label for the texture
	//   - width: texture width in pixels
	//   - height: texture height in pixels
	//   - format: the texture format
	//
	// Returns:
	//   - *RenderTarget: the created target (caller must release when done)
	//   - error: an error if texture creation fails
	CreateColorTarget(label string, width, height uint32, format wgpu.TextureFormat) (*RenderTarget, error)

	// CreateDepthStencilTarget creates a Depth24PlusStencil8 depth/stencil attachment texture.
	//
	// Parameters:
	//   - label: a debug label for the texture
	//   - width: texture width in pixels
	//   - height: texture height in pixels
	//
	// Returns:
	//   - *RenderTarget: the created target (caller must release when done)
	//   - error: an error if texture creation fails
	CreateDepthStencilTarget(label string, width, height uint32) (*RenderTarget, error)

	// CreateDepthArrayTarget creates a square Depth32Float texture array for cascaded shadow
	// maps, with one single-layer view per cascade for rendering and one array view for sampling.
	//
	// Parameters:
	//   - label: a debug label for the texture
	//   - size: edge length of each layer in texels
	//   - layers: number of array layers (one per cascade)
	//
	// Returns:
	//   - *DepthArrayTarget: the created target (caller must release when done)
	//   - error: an error if texture or view creation fails
	CreateDepthArrayTarget(label string, size, layers uint32) (*DepthArrayTarget, error)

	// CreateComparisonSampler creates a comparison sampler suitable for PCF shadow mapping.
	//
	// Returns:
	//   - *wgpu.Sampler: the comparison sampler
	//   - error: an error if sampler creation fails
	CreateComparisonSampler() (*wgpu.Sampler, error)

	// BeginFrame acquires the swapchain texture and creates the frame's command encoder.
	// Must be paired with EndFrame after all passes within a single frame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// SurfaceAttachment builds a color attachment targeting the swapchain for the current
	// frame, routing through the MSAA texture with a resolve when MSAA is enabled.
	//
	// Parameters:
	//   - load: preserve existing contents instead of clearing
	//   - clear: the clear color used when load is false
	//
	// Returns:
	//   - ColorAttachment: the attachment for use in a PassConfig
	SurfaceAttachment(load bool, clear wgpu.Color) ColorAttachment

	// BeginPass opens a render pass with the given attachments. Must be called between
	// BeginFrame and EndFrame, and paired with EndPass.
	//
	// Parameters:
	//   - cfg: the pass configuration
	//
	// Returns:
	//   - error: an error if no frame is active or a pass is already open
	BeginPass(cfg PassConfig) error

	// SetStencilReference sets the stencil reference value for subsequent draws in the
	// current pass.
	//
	// Parameters:
	//   - ref: the stencil reference value
	SetStencilReference(ref uint32)

	// Draw encodes a single instanced indexed draw within the current pass.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached Pipeline to use
	//   - mesh: the Binding holding vertex and index buffers
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: Bindings whose bind groups are set on the pass in group order
	//
	// Returns:
	//   - error: an error if the pipeline is not found
	Draw(pipelineKey string, mesh binding.Binding, instanceCount uint32, bindGroups []binding.Binding) error

	// DrawFullscreen encodes a single 3-vertex draw with no vertex buffers, for
	// fullscreen-triangle passes whose vertex shader derives positions from the vertex index.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached Pipeline to use
	//   - bindGroups: Bindings whose bind groups are set on the pass in group order
	//
	// Returns:
	//   - error: an error if the pipeline is not found
	DrawFullscreen(pipelineKey string, bindGroups []binding.Binding) error

	// EndPass ends the current render pass.
	EndPass()

	// EndFrame finishes the frame encoder and submits the command buffer to the GPU.
	// Does not present the surface — call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type and window.
// The window provides the platform-specific surface descriptor for surface creation.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the Window whose surface the renderer presents to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAAOff // default; offscreen deferred passes run at sample count 1
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SurfaceFormat() wgpu.TextureFormat {
	return r.backend.SurfaceFormat()
}

func (r *renderer) SurfaceSize() (uint32, uint32) {
	return r.backend.SurfaceSize()
}

func (r *renderer) SampleCount() MSAASampleCount {
	return r.backend.SampleCount()
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(bnd binding.Binding, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(bnd, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(bnd binding.Binding, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(bnd, descriptor, bufferUsageOverrides, bufferSizeOverrides)
}

func (r *renderer) InitTextureView(bnd binding.Binding, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(bnd, bindingKey, stagingData)
}

func (r *renderer) InitSampler(bnd binding.Binding, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(bnd, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []binding.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.WriteBuffers(writes)
}

func (r *renderer) CreateColorTarget(label string, width, height uint32, format wgpu.TextureFormat) (*RenderTarget, error) {
	return r.backend.CreateColorTarget(label, width, height, format)
}

func (r *renderer) CreateDepthStencilTarget(label string, width, height uint32) (*RenderTarget, error) {
	return r.backend.CreateDepthStencilTarget(label, width, height)
}

func (r *renderer) CreateDepthArrayTarget(label string, size, layers uint32) (*DepthArrayTarget, error) {
	return r.backend.CreateDepthArrayTarget(label, size, layers)
}

func (r *renderer) CreateComparisonSampler() (*wgpu.Sampler, error) {
	return r.backend.CreateComparisonSampler()
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) SurfaceAttachment(load bool, clear wgpu.Color) ColorAttachment {
	return r.backend.SurfaceAttachment(load, clear)
}

func (r *renderer) BeginPass(cfg PassConfig) error {
	return r.backend.BeginPass(cfg)
}

func (r *renderer) SetStencilReference(ref uint32) {
	r.backend.SetStencilReference(ref)
}

func (r *renderer) Draw(pipelineKey string, mesh binding.Binding, instanceCount uint32, bindGroups []binding.Binding) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}

	r.backend.Draw(p, mesh, instanceCount, bindGroups)
	return nil
}

func (r *renderer) DrawFullscreen(pipelineKey string, bindGroups []binding.Binding) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}

	r.backend.DrawFullscreen(p, bindGroups)
	return nil
}

func (r *renderer) EndPass() {
	r.backend.EndPass()
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}
