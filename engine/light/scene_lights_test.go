package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneLights_BudgetsEnforced(t *testing.T) {
	s := NewSceneLights()

	for i := 0; i < MaxDirectionalLights; i++ {
		require.NoError(t, s.AddLight(NewLight(LightTypeDirectional)))
	}
	assert.Error(t, s.AddLight(NewLight(LightTypeDirectional)))

	for i := 0; i < MaxPointLights; i++ {
		require.NoError(t, s.AddLight(NewLight(LightTypePoint)))
	}
	assert.Error(t, s.AddLight(NewLight(LightTypePoint)))

	for i := 0; i < MaxSpotLights; i++ {
		require.NoError(t, s.AddLight(NewLight(LightTypeSpot)))
	}
	assert.Error(t, s.AddLight(NewLight(LightTypeSpot)))
}

func TestSceneLights_RemoveFreesBudget(t *testing.T) {
	s := NewSceneLights()

	lights := make([]Light, MaxDirectionalLights)
	for i := range lights {
		lights[i] = NewLight(LightTypeDirectional)
		require.NoError(t, s.AddLight(lights[i]))
	}
	require.Error(t, s.AddLight(NewLight(LightTypeDirectional)))

	s.RemoveLight(lights[1])
	assert.Len(t, s.Directional(), MaxDirectionalLights-1)
	assert.NoError(t, s.AddLight(NewLight(LightTypeDirectional)))
}

func TestSceneLights_DisabledLightsFiltered(t *testing.T) {
	s := NewSceneLights()
	on := NewLight(LightTypePoint)
	off := NewLight(LightTypePoint, WithEnabled(false))
	require.NoError(t, s.AddLight(on))
	require.NoError(t, s.AddLight(off))

	got := s.Point()
	require.Len(t, got, 1)
	assert.Same(t, on, got[0])

	// Toggling at runtime changes the filtered view without re-registration.
	off.SetEnabled(true)
	assert.Len(t, s.Point(), 2)
}

func TestSceneLights_ShadowCaster(t *testing.T) {
	s := NewSceneLights()
	assert.Nil(t, s.ShadowCaster())

	fill := NewLight(LightTypeDirectional)
	sun := NewLight(LightTypeDirectional, WithCastsShadows(true))
	require.NoError(t, s.AddLight(fill))
	require.NoError(t, s.AddLight(sun))

	assert.Same(t, sun, s.ShadowCaster())

	// A disabled caster must not drive the shadow pass.
	sun.SetEnabled(false)
	assert.Nil(t, s.ShadowCaster())
}

func TestSceneLights_Options(t *testing.T) {
	s := NewSceneLights(
		WithHemisphere(mgl32.Vec3{0.2, 0.3, 0.5}, mgl32.Vec3{0.1, 0.1, 0.05}, 0.8),
		WithFog(mgl32.Vec3{0.7, 0.7, 0.8}, 20, 120),
	)

	h := s.Hemisphere()
	assert.Equal(t, mgl32.Vec3{0.2, 0.3, 0.5}, h.SkyColor)
	assert.Equal(t, float32(0.8), h.Intensity)

	f := s.Fog()
	assert.True(t, f.Enabled)
	assert.Equal(t, float32(20), f.Start)
	assert.Equal(t, float32(120), f.End)
}
