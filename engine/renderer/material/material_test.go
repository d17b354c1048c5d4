package material

import (
	"testing"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterial_Defaults(t *testing.T) {
	m := NewMaterial()

	assert.Equal(t, "", m.Name())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.BaseColor())
	assert.Equal(t, [4]float32{}, m.Emissive())
	assert.Nil(t, m.AlbedoTexture())
	assert.Nil(t, m.AlbedoSampler())
	assert.False(t, m.Transparent())
}

func TestNewMaterial_Options(t *testing.T) {
	tex := common.TextureStagingData{
		Pixels: []byte{10, 20, 30, 255},
		Width:  1,
		Height: 1,
	}
	sampler := common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeNearest,
	}

	m := NewMaterial(
		WithName("glass"),
		WithBaseColor([4]float32{0.2, 0.5, 0.9, 0.35}),
		WithEmissive([4]float32{0.1, 0, 0, 0}),
		WithAlbedoTexture(tex),
		WithAlbedoSampler(sampler),
		WithTransparency(true),
	)

	assert.Equal(t, "glass", m.Name())
	assert.Equal(t, [4]float32{0.2, 0.5, 0.9, 0.35}, m.BaseColor())
	assert.Equal(t, [4]float32{0.1, 0, 0, 0}, m.Emissive())
	require.NotNil(t, m.AlbedoTexture())
	assert.Equal(t, tex, *m.AlbedoTexture())
	require.NotNil(t, m.AlbedoSampler())
	assert.Equal(t, wgpu.AddressModeClampToEdge, m.AlbedoSampler().AddressModeU)
	assert.True(t, m.Transparent())
}

func TestWhiteTexture(t *testing.T) {
	tex := WhiteTexture()

	assert.Equal(t, uint32(1), tex.Width)
	assert.Equal(t, uint32(1), tex.Height)
	assert.Equal(t, []byte{255, 255, 255, 255}, tex.Pixels)
}
