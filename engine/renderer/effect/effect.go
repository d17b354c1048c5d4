// Package effect defines the render pipelines of the deferred frame: the
// geometry buffer fill, cascade shadow depth, deferred lighting, composition,
// and forward passes. Each pipeline carries its WGSL source, bind group
// layouts, and fixed-function state; the scene renderer registers them once
// and drives them with pass configs and draws.
package effect

import (
	_ "embed"

	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline cache keys for the deferred frame.
const (
	PipelineGBuffer             = "gbuffer"
	PipelineShadowDepth         = "shadow_depth"
	PipelineDirectionalLight    = "light_directional"
	PipelineVolumeStencil       = "light_volume_stencil"
	PipelineVolumeShade         = "light_volume_shade"
	PipelineVolumeShadeShadowed = "light_volume_shade_shadowed"
	PipelineCompose             = "compose"
	PipelineForward             = "forward"
)

// Texture formats of the deferred frame's targets.
const (
	// FormatAlbedo holds base color and alpha.
	FormatAlbedo = wgpu.TextureFormatRGBA8Unorm
	// FormatNormal holds the signed world-space normal.
	FormatNormal = wgpu.TextureFormatRGBA16Float
	// FormatDepthChannel mirrors clip-space depth into a loadable color channel.
	FormatDepthChannel = wgpu.TextureFormatR32Float
	// FormatExtra holds emissive color and per-pixel material flags.
	FormatExtra = wgpu.TextureFormatRGBA8Unorm
	// FormatHDR is the open-ended light accumulation target.
	FormatHDR = wgpu.TextureFormatRGBA16Float
	// FormatDepthStencil is the main depth buffer with the stencil aspect the
	// light volume passes mark.
	FormatDepthStencil = wgpu.TextureFormatDepth24PlusStencil8
	// FormatShadowDepth is the cascade shadow map format.
	FormatShadowDepth = wgpu.TextureFormatDepth32Float
)

//go:embed assets/gbuffer.wgsl
var gbufferWGSL string

//go:embed assets/shadow_depth.wgsl
var shadowDepthWGSL string

//go:embed assets/light_directional.wgsl
var lightDirectionalWGSL string

//go:embed assets/light_stencil.wgsl
var lightStencilWGSL string

//go:embed assets/light_volume.wgsl
var lightVolumeWGSL string

//go:embed assets/light_volume_shadow.wgsl
var lightVolumeShadowWGSL string

//go:embed assets/compose.wgsl
var composeWGSL string

//go:embed assets/forward.wgsl
var forwardWGSL string

// VertexLayout returns the vertex buffer layout every mesh-consuming pipeline
// expects: position at location 0, normal at 1, uv at 2, interleaved at a
// 32-byte stride.
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 32,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 20, ShaderLocation: 2},
		},
	}
}

func additiveBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

func alphaBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// GBufferPipeline fills the four geometry buffer attachments and the main
// depth buffer with opaque scene geometry.
func GBufferPipeline() pipeline.Pipeline {
	target := func(format wgpu.TextureFormat) wgpu.ColorTargetState {
		return wgpu.ColorTargetState{Format: format, WriteMask: wgpu.ColorWriteMaskAll}
	}
	return pipeline.NewPipeline(PipelineGBuffer,
		pipeline.WithVertexSource(gbufferWGSL, ""),
		pipeline.WithFragmentSource(gbufferWGSL, ""),
		pipeline.WithBindGroupLayouts(CameraLayout(), ObjectLayout()),
		pipeline.WithVertexBuffers(VertexLayout()),
		pipeline.WithColorTargets(
			target(FormatAlbedo),
			target(FormatNormal),
			target(FormatDepthChannel),
			target(FormatExtra),
		),
		pipeline.WithDepthFormat(FormatDepthStencil),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
}

// ShadowDepthPipeline renders depth-only cascade shadow maps. Front-face
// culling and a slope-scaled bias reduce self-shadowing on closed meshes.
func ShadowDepthPipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(PipelineShadowDepth,
		pipeline.WithVertexSource(shadowDepthWGSL, ""),
		pipeline.WithBindGroupLayouts(ShadowPassLayout(), ObjectLayout()),
		pipeline.WithVertexBuffers(VertexLayout()),
		pipeline.WithDepthFormat(FormatShadowDepth),
		pipeline.WithDepthBias(2, 2.0),
		pipeline.WithCullMode(wgpu.CullModeFront),
	)
}

// DirectionalLightPipeline accumulates one directional light over the whole
// screen into the HDR target, sampling the cascade shadow maps with PCF.
func DirectionalLightPipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(PipelineDirectionalLight,
		pipeline.WithVertexSource(lightDirectionalWGSL, ""),
		pipeline.WithFragmentSource(lightDirectionalWGSL, ""),
		pipeline.WithBindGroupLayouts(
			FrameLayout((&light.GPUDeferredFrame{}).Size()),
			GBufferTexturesLayout(),
			DirectionalLightLayout((&light.GPUDirectionalLight{}).Size()),
		),
		pipeline.WithColorTargets(wgpu.ColorTargetState{
			Format:    FormatHDR,
			Blend:     additiveBlend(),
			WriteMask: wgpu.ColorWriteMaskAll,
		}),
	)
}

// VolumeStencilPipeline marks the stencil buffer where a light's proxy volume
// encloses scene geometry, using the two-sided depth-fail counting scheme:
// back faces failing the depth test increment, front faces failing decrement,
// leaving nonzero stencil exactly on enclosed pixels.
func VolumeStencilPipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(PipelineVolumeStencil,
		pipeline.WithVertexSource(lightStencilWGSL, ""),
		pipeline.WithBindGroupLayouts(VolumeLightLayout((&light.GPUVolumeLight{}).Size())),
		pipeline.WithVertexBuffers(VertexLayout()),
		pipeline.WithDepthFormat(FormatDepthStencil),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithDepthCompare(wgpu.CompareFunctionLess),
		pipeline.WithStencil(
			wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationDecrementWrap,
				PassOp:      wgpu.StencilOperationKeep,
			},
			wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationIncrementWrap,
				PassOp:      wgpu.StencilOperationKeep,
			},
			0xFF, 0xFF,
		),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
}

// VolumeShadePipeline shades the pixels the stencil pass marked, drawing the
// proxy volume's back faces so the pass also works with the camera inside the
// volume. Passing pixels are zeroed (reference 0, replace on pass) so the
// stencil is clean for the next light.
func VolumeShadePipeline() pipeline.Pipeline {
	shadeFace := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionNotEqual,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationReplace,
	}
	return pipeline.NewPipeline(PipelineVolumeShade,
		pipeline.WithVertexSource(lightVolumeWGSL, ""),
		pipeline.WithFragmentSource(lightVolumeWGSL, ""),
		pipeline.WithBindGroupLayouts(
			FrameLayout((&light.GPUDeferredFrame{}).Size()),
			GBufferTexturesLayout(),
			VolumeLightLayout((&light.GPUVolumeLight{}).Size()),
		),
		pipeline.WithVertexBuffers(VertexLayout()),
		pipeline.WithColorTargets(wgpu.ColorTargetState{
			Format:    FormatHDR,
			Blend:     additiveBlend(),
			WriteMask: wgpu.ColorWriteMaskAll,
		}),
		pipeline.WithDepthFormat(FormatDepthStencil),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithDepthCompare(wgpu.CompareFunctionAlways),
		pipeline.WithStencil(shadeFace, shadeFace, 0xFF, 0xFF),
		pipeline.WithCullMode(wgpu.CullModeFront),
	)
}

// VolumeShadeShadowedPipeline is the VolumeShadePipeline variant for lights
// that rendered a shadow map this frame: identical fixed state plus a fourth
// bind group carrying the light's depth layers, comparison sampler, and
// per-layer view projections.
func VolumeShadeShadowedPipeline() pipeline.Pipeline {
	shadeFace := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionNotEqual,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationReplace,
	}
	return pipeline.NewPipeline(PipelineVolumeShadeShadowed,
		pipeline.WithVertexSource(lightVolumeShadowWGSL, ""),
		pipeline.WithFragmentSource(lightVolumeShadowWGSL, ""),
		pipeline.WithBindGroupLayouts(
			FrameLayout((&light.GPUDeferredFrame{}).Size()),
			GBufferTexturesLayout(),
			VolumeLightLayout((&light.GPUVolumeLight{}).Size()),
			VolumeShadowLayout((&light.GPUVolumeShadow{}).Size()),
		),
		pipeline.WithVertexBuffers(VertexLayout()),
		pipeline.WithColorTargets(wgpu.ColorTargetState{
			Format:    FormatHDR,
			Blend:     additiveBlend(),
			WriteMask: wgpu.ColorWriteMaskAll,
		}),
		pipeline.WithDepthFormat(FormatDepthStencil),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithDepthCompare(wgpu.CompareFunctionAlways),
		pipeline.WithStencil(shadeFace, shadeFace, 0xFF, 0xFF),
		pipeline.WithCullMode(wgpu.CullModeFront),
	)
}

// ComposePipeline resolves the frame to the swapchain: emissive, hemispheric
// ambient, and HDR light accumulation scaled by albedo, then fogged.
func ComposePipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(PipelineCompose,
		pipeline.WithVertexSource(composeWGSL, ""),
		pipeline.WithFragmentSource(composeWGSL, ""),
		pipeline.WithBindGroupLayouts(
			ComposeFrameLayout((&light.GPUDeferredFrame{}).Size(), (&light.GPUComposeData{}).Size()),
			GBufferTexturesLayout(),
			HDRTextureLayout(),
		),
		pipeline.WithColorTargets(wgpu.ColorTargetState{
			// Undefined resolves to the swapchain format at registration.
			Format:    wgpu.TextureFormatUndefined,
			WriteMask: wgpu.ColorWriteMaskAll,
		}),
	)
}

// ForwardPipeline draws translucent and unlit geometry over the composed
// frame, alpha blended and depth tested read-only against the main depth.
func ForwardPipeline() pipeline.Pipeline {
	readOnlyFace := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}
	return pipeline.NewPipeline(PipelineForward,
		pipeline.WithVertexSource(forwardWGSL, ""),
		pipeline.WithFragmentSource(forwardWGSL, ""),
		pipeline.WithBindGroupLayouts(CameraLayout(), ObjectLayout()),
		pipeline.WithVertexBuffers(VertexLayout()),
		pipeline.WithColorTargets(wgpu.ColorTargetState{
			Format:    wgpu.TextureFormatUndefined,
			Blend:     alphaBlend(),
			WriteMask: wgpu.ColorWriteMaskAll,
		}),
		pipeline.WithDepthFormat(FormatDepthStencil),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithDepthCompare(wgpu.CompareFunctionLess),
		// Stencil writes stay off so the attachment can bind read-only.
		pipeline.WithStencil(readOnlyFace, readOnlyFace, 0xFF, 0),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
}
