package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the WGSL sources, layout descriptors, and fixed-function state needed
// to create the underlying WebGPU render pipeline, plus the created pipeline object.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// WGSL sources and entry points. A vertex stage is always required; the
	// fragment stage is optional (depth-only and stencil-only pipelines omit it).
	vertexSource, fragmentSource string
	vertexEntry, fragmentEntry   string

	// bindGroupLayouts describes the bind group layouts by group index, in order.
	bindGroupLayouts []wgpu.BindGroupLayoutDescriptor
	// vertexBuffers describes the vertex buffer layouts consumed by the vertex stage.
	vertexBuffers []wgpu.VertexBufferLayout
	// colorTargets describes the color attachments this pipeline renders into,
	// including per-target format, blend state, and write mask. Empty for
	// depth/stencil-only pipelines.
	colorTargets []wgpu.ColorTargetState

	// renderPipeline is the created pipeline, nil until registered with the renderer.
	renderPipeline *wgpu.RenderPipeline

	// Fixed-function state applied at pipeline creation.

	depthFormat         wgpu.TextureFormat // TextureFormatUndefined = no depth attachment
	depthWriteEnabled   bool
	depthCompare        wgpu.CompareFunction
	depthBias           int32
	depthBiasSlopeScale float32
	stencilFront        wgpu.StencilFaceState
	stencilBack         wgpu.StencilFaceState
	stencilReadMask     uint32
	stencilWriteMask    uint32
	cullMode            wgpu.CullMode
	topology            wgpu.PrimitiveTopology
	frontFace           wgpu.FrontFace
	sampleCount         uint32
}

// Pipeline defines the interface for a GPU render pipeline. It carries the WGSL
// sources, bind group layout descriptors, vertex layouts, color target states,
// and depth/stencil configuration needed to create the WebGPU pipeline object,
// and holds that object once the renderer registers it.
//
// The deferred frame uses several pipeline shapes this interface must express:
// multi-target geometry pipelines (G-buffer), depth-only pipelines with no
// fragment stage (cascade depth), stencil-only pipelines with no color writes
// (light volume marking), and additive single-target pipelines (light
// accumulation).
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for
	// caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// VertexSource returns the WGSL source for the vertex stage.
	//
	// Returns:
	//   - string: the vertex shader source
	VertexSource() string

	// VertexEntry returns the vertex stage entry point name.
	//
	// Returns:
	//   - string: the entry point (defaults to "vs_main")
	VertexEntry() string

	// FragmentSource returns the WGSL source for the fragment stage, or the
	// empty string for pipelines without one.
	//
	// Returns:
	//   - string: the fragment shader source, or ""
	FragmentSource() string

	// FragmentEntry returns the fragment stage entry point name.
	//
	// Returns:
	//   - string: the entry point (defaults to "fs_main")
	FragmentEntry() string

	// BindGroupLayouts returns the bind group layout descriptors by group index.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutDescriptor: the layout descriptors in group order
	BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor

	// VertexBuffers returns the vertex buffer layouts for the vertex stage.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexBuffers() []wgpu.VertexBufferLayout

	// ColorTargets returns the color target states this pipeline renders into.
	//
	// Returns:
	//   - []wgpu.ColorTargetState: the color targets, empty for depth-only pipelines
	ColorTargets() []wgpu.ColorTargetState

	// Pipeline returns the created WebGPU render pipeline, or nil if the
	// pipeline has not been registered with the renderer yet.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the underlying pipeline object or nil
	Pipeline() *wgpu.RenderPipeline

	// DepthFormat returns the depth/stencil attachment format, or
	// wgpu.TextureFormatUndefined when the pipeline has no depth attachment.
	//
	// Returns:
	//   - wgpu.TextureFormat: the depth/stencil format
	DepthFormat() wgpu.TextureFormat

	// DepthWriteEnabled returns whether depth writing is enabled.
	//
	// Returns:
	//   - bool: true if depth writes are enabled
	DepthWriteEnabled() bool

	// DepthCompare returns the depth comparison function.
	//
	// Returns:
	//   - wgpu.CompareFunction: the depth compare function
	DepthCompare() wgpu.CompareFunction

	// DepthBias returns the constant depth bias.
	//
	// Returns:
	//   - int32: the depth bias value
	DepthBias() int32

	// DepthBiasSlopeScale returns the slope-scaled depth bias.
	//
	// Returns:
	//   - float32: the depth bias slope scale
	DepthBiasSlopeScale() float32

	// StencilFront returns the stencil face state for front-facing primitives.
	//
	// Returns:
	//   - wgpu.StencilFaceState: the front face stencil state
	StencilFront() wgpu.StencilFaceState

	// StencilBack returns the stencil face state for back-facing primitives.
	//
	// Returns:
	//   - wgpu.StencilFaceState: the back face stencil state
	StencilBack() wgpu.StencilFaceState

	// StencilMasks returns the stencil read and write masks.
	//
	// Returns:
	//   - read: the stencil read mask
	//   - write: the stencil write mask
	StencilMasks() (read, write uint32)

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// SampleCount returns the multisample count this pipeline renders at.
	//
	// Returns:
	//   - uint32: the sample count (1 for all offscreen deferred passes)
	SampleCount() uint32

	// SetRenderPipeline stores the created WebGPU render pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline interface. The vertex
// source is required; everything else is configured through builder options.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		vertexEntry:       "vs_main",
		fragmentEntry:     "fs_main",
		depthFormat:       wgpu.TextureFormatUndefined,
		depthWriteEnabled: true,
		depthCompare:      wgpu.CompareFunctionLess,
		stencilFront:      defaultStencilFace(),
		stencilBack:       defaultStencilFace(),
		stencilReadMask:   0xFFFFFFFF,
		stencilWriteMask:  0xFFFFFFFF,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		sampleCount:       1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// defaultStencilFace returns a pass-through stencil face state.
func defaultStencilFace() wgpu.StencilFaceState {
	return wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) VertexSource() string {
	return p.vertexSource
}

func (p *pipeline) VertexEntry() string {
	return p.vertexEntry
}

func (p *pipeline) FragmentSource() string {
	return p.fragmentSource
}

func (p *pipeline) FragmentEntry() string {
	return p.fragmentEntry
}

func (p *pipeline) BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	return p.bindGroupLayouts
}

func (p *pipeline) VertexBuffers() []wgpu.VertexBufferLayout {
	return p.vertexBuffers
}

func (p *pipeline) ColorTargets() []wgpu.ColorTargetState {
	return p.colorTargets
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthFormat() wgpu.TextureFormat {
	return p.depthFormat
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	return p.depthCompare
}

func (p *pipeline) DepthBias() int32 {
	return p.depthBias
}

func (p *pipeline) DepthBiasSlopeScale() float32 {
	return p.depthBiasSlopeScale
}

func (p *pipeline) StencilFront() wgpu.StencilFaceState {
	return p.stencilFront
}

func (p *pipeline) StencilBack() wgpu.StencilFaceState {
	return p.stencilBack
}

func (p *pipeline) StencilMasks() (read, write uint32) {
	return p.stencilReadMask, p.stencilWriteMask
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) SampleCount() uint32 {
	return p.sampleCount
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
