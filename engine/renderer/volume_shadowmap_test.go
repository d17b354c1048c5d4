package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/shadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVolumeShadowMap_LayerCounts(t *testing.T) {
	f := newFakeRenderer()

	spot, err := NewVolumeShadowMap(f, light.LightTypeSpot, DefaultVolumeShadowMapSize)
	require.NoError(t, err)
	defer spot.Release()
	assert.Equal(t, 1, spot.LayerCount())

	point, err := NewVolumeShadowMap(f, light.LightTypePoint, DefaultVolumeShadowMapSize)
	require.NoError(t, err)
	defer point.Release()
	assert.Equal(t, shadow.PointShadowFaces, point.LayerCount())
}

func TestNewVolumeShadowMap_RejectsDirectional(t *testing.T) {
	_, err := NewVolumeShadowMap(newFakeRenderer(), light.LightTypeDirectional, DefaultVolumeShadowMapSize)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "point and spot")
}

func TestVolumeShadowMap_LayerPassConfig(t *testing.T) {
	f := newFakeRenderer()

	point, err := NewVolumeShadowMap(f, light.LightTypePoint, 512)
	require.NoError(t, err)
	defer point.Release()

	for i := 0; i < point.LayerCount(); i++ {
		cfg := point.LayerPass(i)
		assert.Contains(t, cfg.Label, "point shadow face")
		require.NotNil(t, cfg.DepthStencil)
		assert.True(t, cfg.DepthStencil.DepthStore)
		assert.Equal(t, float32(1), cfg.DepthStencil.DepthClearValue)
	}

	spot, err := NewVolumeShadowMap(f, light.LightTypeSpot, 512)
	require.NoError(t, err)
	defer spot.Release()
	assert.Equal(t, "spot shadow", spot.LayerPass(0).Label)
}

func TestVolumeShadowMap_WritesLayersAndShadeUniform(t *testing.T) {
	f := newFakeRenderer()

	spotMap, err := NewVolumeShadowMap(f, light.LightTypeSpot, 512)
	require.NoError(t, err)
	defer spotMap.Release()

	spot := light.NewLight(light.LightTypeSpot,
		light.WithPosition(0, 4, 0),
		light.WithDirection(0, -1, 0),
		light.WithRange(8),
		light.WithSpotCone(15, 25),
	)

	// One depth-pass write per layer, then the shade uniform last.
	writes := spotMap.Writes(spot)
	require.Len(t, writes, 2)
	assert.Same(t, spotMap.LayerBinding(0), writes[0].Target)
	assert.Len(t, writes[0].Data, 64)
	assert.Same(t, spotMap.ShadeBinding(), writes[1].Target)
	assert.Len(t, writes[1].Data, (&light.GPUVolumeShadow{}).Size())

	pointMap, err := NewVolumeShadowMap(f, light.LightTypePoint, 512)
	require.NoError(t, err)
	defer pointMap.Release()

	point := light.NewLight(light.LightTypePoint,
		light.WithPosition(1, 2, 3),
		light.WithRange(6),
	)
	writes = pointMap.Writes(point)
	require.Len(t, writes, shadow.PointShadowFaces+1)
	for i := 0; i < shadow.PointShadowFaces; i++ {
		assert.Same(t, pointMap.LayerBinding(i), writes[i].Target)
		assert.Len(t, writes[i].Data, 64)
	}
	assert.Same(t, pointMap.ShadeBinding(), writes[shadow.PointShadowFaces].Target)
}

func TestVolumeShadowMap_ShadeBindingDistinctFromLayers(t *testing.T) {
	f := newFakeRenderer()

	m, err := NewVolumeShadowMap(f, light.LightTypePoint, 512)
	require.NoError(t, err)
	defer m.Release()

	require.NotNil(t, m.ShadeBinding())
	for i := 0; i < m.LayerCount(); i++ {
		assert.NotSame(t, m.ShadeBinding(), m.LayerBinding(i))
	}
}
