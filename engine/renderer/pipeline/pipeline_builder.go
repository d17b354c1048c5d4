package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption defines the signature for builder options used when creating a new Pipeline.
type PipelineBuilderOption func(*pipeline)

// WithVertexSource sets the WGSL vertex shader source and entry point.
//
// Parameters:
//   - source: the WGSL source containing the vertex stage
//   - entry: the vertex entry point name, "" keeps the default "vs_main"
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithVertexSource(source, entry string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexSource = source
		if entry != "" {
			p.vertexEntry = entry
		}
	}
}

// WithFragmentSource sets the WGSL fragment shader source and entry point.
// Pipelines that never set a fragment source are created without a fragment
// stage (depth-only and stencil-only passes).
//
// Parameters:
//   - source: the WGSL source containing the fragment stage
//   - entry: the fragment entry point name, "" keeps the default "fs_main"
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithFragmentSource(source, entry string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentSource = source
		if entry != "" {
			p.fragmentEntry = entry
		}
	}
}

// WithBindGroupLayouts sets the bind group layout descriptors in group order.
//
// Parameters:
//   - layouts: the bind group layout descriptors, index i becomes @group(i)
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithBindGroupLayouts(layouts ...wgpu.BindGroupLayoutDescriptor) PipelineBuilderOption {
	return func(p *pipeline) {
		p.bindGroupLayouts = layouts
	}
}

// WithVertexBuffers sets the vertex buffer layouts consumed by the vertex stage.
//
// Parameters:
//   - layouts: the vertex buffer layouts
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithVertexBuffers(layouts ...wgpu.VertexBufferLayout) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexBuffers = layouts
	}
}

// WithColorTargets sets the color target states for the fragment stage.
//
// Parameters:
//   - targets: the color target states, one per attachment
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithColorTargets(targets ...wgpu.ColorTargetState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.colorTargets = targets
	}
}

// WithDepthFormat sets the depth/stencil attachment format. Pipelines that
// never set a depth format are created without a depth/stencil attachment.
//
// Parameters:
//   - format: the depth/stencil texture format
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithDepthFormat(format wgpu.TextureFormat) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthFormat = format
	}
}

// WithDepthWriteEnabled sets whether the pipeline writes depth. Defaults to
// true; lighting and composition passes that only test depth disable it.
//
// Parameters:
//   - enabled: true to write depth
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithDepthCompare sets the depth comparison function. Defaults to Less.
//
// Parameters:
//   - compare: the depth compare function
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithDepthCompare(compare wgpu.CompareFunction) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthCompare = compare
	}
}

// WithDepthBias sets the constant and slope-scaled depth bias, used by the
// shadow depth pipeline to combat acne.
//
// Parameters:
//   - bias: the constant depth bias
//   - slopeScale: the slope-scaled depth bias
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithDepthBias(bias int32, slopeScale float32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthBias = bias
		p.depthBiasSlopeScale = slopeScale
	}
}

// WithStencil sets the per-face stencil states and masks. The stencil mark and
// shade pipelines of the light volume pass use asymmetric front/back states.
//
// Parameters:
//   - front: the stencil state for front-facing primitives
//   - back: the stencil state for back-facing primitives
//   - readMask: the stencil read mask
//   - writeMask: the stencil write mask
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithStencil(front, back wgpu.StencilFaceState, readMask, writeMask uint32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.stencilFront = front
		p.stencilBack = back
		p.stencilReadMask = readMask
		p.stencilWriteMask = writeMask
	}
}

// WithCullMode sets the face culling mode. Defaults to none.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology. Defaults to triangle list.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the front face winding order. Defaults to counter-clockwise.
//
// Parameters:
//   - face: the front face winding order
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithFrontFace(face wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = face
	}
}

// WithSampleCount sets the multisample count for pipelines that render to the
// swapchain when MSAA is configured. Offscreen deferred passes stay at 1.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithSampleCount(count uint32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.sampleCount = count
	}
}
