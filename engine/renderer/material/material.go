package material

import (
	"github.com/Carmen-Shannon/lumen-go/common"
)

// materialImpl is the implementation of the Material interface.
type materialImpl struct {
	name          string
	baseColor     [4]float32
	emissive      [4]float32
	albedoTexture *common.TextureStagingData
	albedoSampler *common.SamplerStagingData
	transparent   bool
}

// Material describes a drawable's surface: the base color multiplied with the
// albedo texture, an emissive color added after lighting, and whether the
// surface is transparent. Opaque materials render through the geometry buffer
// and receive deferred lighting; transparent ones render unlit in the forward
// pass after composition.
//
// Materials are plain value carriers. GPU resources (the object uniform,
// texture, and sampler) live on the model's binding and are created from this
// data during model initialization.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo RGBA multiplier.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Emissive retrieves the emissive RGBA color. The RGB channels are added
	// to the lit result during composition; alpha is unused.
	//
	// Returns:
	//   - [4]float32: the emissive color
	Emissive() [4]float32

	// AlbedoTexture retrieves the staged albedo texture data, or nil when the
	// material is untextured. Untextured materials upload a 1x1 white pixel so
	// every object shares the same bind group layout.
	//
	// Returns:
	//   - *common.TextureStagingData: the staged texture, or nil
	AlbedoTexture() *common.TextureStagingData

	// AlbedoSampler retrieves the sampler configuration for the albedo
	// texture, or nil to use the default linear/repeat sampler. Model files
	// can carry their own sampler settings (e.g. glTF samplers).
	//
	// Returns:
	//   - *common.SamplerStagingData: the sampler configuration, or nil
	AlbedoSampler() *common.SamplerStagingData

	// Transparent reports whether this material routes through the forward
	// pass instead of the geometry buffer.
	//
	// Returns:
	//   - bool: true for forward-pass materials
	Transparent() bool
}

var _ Material = &materialImpl{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &materialImpl{
		baseColor: [4]float32{1, 1, 1, 1},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// WhiteTexture returns the 1x1 white staging texture used for untextured
// materials.
//
// Returns:
//   - common.TextureStagingData: a single opaque white pixel
func WhiteTexture() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: []byte{255, 255, 255, 255},
		Width:  1,
		Height: 1,
	}
}

func (m *materialImpl) Name() string {
	return m.name
}

func (m *materialImpl) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *materialImpl) Emissive() [4]float32 {
	return m.emissive
}

func (m *materialImpl) AlbedoTexture() *common.TextureStagingData {
	return m.albedoTexture
}

func (m *materialImpl) AlbedoSampler() *common.SamplerStagingData {
	return m.albedoSampler
}

func (m *materialImpl) Transparent() bool {
	return m.transparent
}
