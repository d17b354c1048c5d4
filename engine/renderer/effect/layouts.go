package effect

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group layouts for the deferred frame. Bind groups created against these
// descriptors must match them exactly, so passes that share a group (the
// per-object group, the geometry buffer textures) share one layout function.

// CameraLayout is group 0 of the geometry, shadow, and forward pipelines:
// the per-frame camera uniform.
func CameraLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64((&GPUCameraData{}).Size()),
				},
			},
		},
	}
}

// ObjectLayout is group 1 of the geometry, shadow, and forward pipelines:
// the per-object uniform plus the albedo texture and its sampler. The shadow
// pipeline binds the same group even though its vertex-only stage ignores the
// texture entries; sharing the layout lets one bind group serve all three.
func ObjectLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Object Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64((&GPUObjectData{}).Size()),
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// FrameLayout is group 0 of the lighting pipelines: the frame uniform carrying
// the inverse view-projection, camera position, and screen size used to
// reconstruct world positions from the depth channel.
//
// Parameters:
//   - frameSize: byte size of the frame uniform struct
func FrameLayout(frameSize int) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(frameSize),
				},
			},
		},
	}
}

// ComposeFrameLayout is group 0 of the compose pipeline: the frame uniform
// plus the compose uniform with hemisphere and fog parameters.
//
// Parameters:
//   - frameSize: byte size of the frame uniform struct
//   - composeSize: byte size of the compose uniform struct
func ComposeFrameLayout(frameSize, composeSize int) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Compose Frame Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(frameSize),
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(composeSize),
				},
			},
		},
	}
}

// GBufferTexturesLayout is group 1 of the lighting and compose pipelines: the
// four geometry buffer attachments read with textureLoad at pixel coordinates.
// The depth channel is R32Float, which is not filterable, so it binds as an
// unfilterable float texture; no sampler is needed anywhere in the group.
func GBufferTexturesLayout() wgpu.BindGroupLayoutDescriptor {
	tex := func(binding uint32, sampleType wgpu.TextureSampleType) wgpu.BindGroupLayoutEntry {
		return wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    sampleType,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		}
	}
	return wgpu.BindGroupLayoutDescriptor{
		Label: "GBuffer Textures Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			tex(0, wgpu.TextureSampleTypeUnfilterableFloat), // albedo
			tex(1, wgpu.TextureSampleTypeUnfilterableFloat), // normal
			tex(2, wgpu.TextureSampleTypeUnfilterableFloat), // depth channel
			tex(3, wgpu.TextureSampleTypeUnfilterableFloat), // extra
		},
	}
}

// DirectionalLightLayout is group 2 of the directional light pipeline: the
// light uniform, the cascade shadow map array, and the comparison sampler.
//
// Parameters:
//   - lightSize: byte size of the directional light uniform struct
func DirectionalLightLayout(lightSize int) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Directional Light Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(lightSize),
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2DArray,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeComparison,
				},
			},
		},
	}
}

// VolumeLightLayout is the proxy volume light uniform group: group 0 of the
// stencil mark pipeline and group 2 of the volume shade pipeline. The uniform
// is read by both stages since the vertex shader applies the volume transform.
//
// Parameters:
//   - lightSize: byte size of the volume light uniform struct
func VolumeLightLayout(lightSize int) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Volume Light Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(lightSize),
				},
			},
		},
	}
}

// VolumeShadowLayout is group 3 of the shadowed volume shade pipeline: the
// per-layer view-projection uniform, the light's shadow depth array, and the
// comparison sampler.
//
// Parameters:
//   - shadowSize: byte size of the volume shadow uniform struct
func VolumeShadowLayout(shadowSize int) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Volume Shadow Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(shadowSize),
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2DArray,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeComparison,
				},
			},
		},
	}
}

// ShadowPassLayout is group 0 of the shadow depth pipeline: one cascade's
// view-projection uniform.
func ShadowPassLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Shadow Pass Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 64,
				},
			},
		},
	}
}

// HDRTextureLayout is group 2 of the compose pipeline: the light accumulation
// texture read with textureLoad.
func HDRTextureLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "HDR Texture Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeUnfilterableFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
		},
	}
}
