package material

import (
	"github.com/Carmen-Shannon/lumen-go/common"
)

type MaterialBuilderOption func(*materialImpl)

// WithName sets the material's identifier.
//
// Parameters:
//   - name: the name to assign
//
// Returns:
//   - MaterialBuilderOption: a function that sets the material name
func WithName(name string) MaterialBuilderOption {
	return func(m *materialImpl) {
		m.name = name
	}
}

// WithBaseColor sets the albedo RGBA multiplier. Defaults to opaque white.
//
// Parameters:
//   - color: the base color as RGBA values
//
// Returns:
//   - MaterialBuilderOption: a function that sets the base color
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *materialImpl) {
		m.baseColor = color
	}
}

// WithEmissive sets the emissive RGBA color added after lighting.
//
// Parameters:
//   - color: the emissive color
//
// Returns:
//   - MaterialBuilderOption: a function that sets the emissive color
func WithEmissive(color [4]float32) MaterialBuilderOption {
	return func(m *materialImpl) {
		m.emissive = color
	}
}

// WithAlbedoTexture supplies staged albedo texture data for the material.
//
// Parameters:
//   - texture: the staged texture pixels and dimensions
//
// Returns:
//   - MaterialBuilderOption: a function that sets the albedo texture
func WithAlbedoTexture(texture common.TextureStagingData) MaterialBuilderOption {
	return func(m *materialImpl) {
		m.albedoTexture = &texture
	}
}

// WithAlbedoSampler supplies sampler settings for the albedo texture instead
// of the default linear/repeat sampler.
//
// Parameters:
//   - sampler: the sampler configuration
//
// Returns:
//   - MaterialBuilderOption: a function that sets the albedo sampler
func WithAlbedoSampler(sampler common.SamplerStagingData) MaterialBuilderOption {
	return func(m *materialImpl) {
		m.albedoSampler = &sampler
	}
}

// WithTransparency marks the material for the forward pass.
//
// Parameters:
//   - transparent: true to render in the forward pass
//
// Returns:
//   - MaterialBuilderOption: a function that sets the transparency flag
func WithTransparency(transparent bool) MaterialBuilderOption {
	return func(m *materialImpl) {
		m.transparent = transparent
	}
}
