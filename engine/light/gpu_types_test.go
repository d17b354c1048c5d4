package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/shadow"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSizesMatchDeclaredLayouts(t *testing.T) {
	assert.Equal(t, 96, (&GPUDeferredFrame{}).Size())
	assert.Equal(t, 96, len((&GPUDeferredFrame{}).Marshal()))
	assert.Equal(t, 176, (&GPUDirectionalLight{}).Size())
	assert.Equal(t, 176, len((&GPUDirectionalLight{}).Marshal()))
	assert.Equal(t, 144, (&GPUVolumeLight{}).Size())
	assert.Equal(t, 144, len((&GPUVolumeLight{}).Marshal()))
	assert.Equal(t, 64, (&GPUComposeData{}).Size())
	assert.Equal(t, 64, len((&GPUComposeData{}).Marshal()))
	assert.Equal(t, 400, (&GPUVolumeShadow{}).Size())
	assert.Equal(t, 400, len((&GPUVolumeShadow{}).Marshal()))
}

func TestGPUDirectionalLight_FieldOffsets(t *testing.T) {
	d := GPUDirectionalLight{
		Direction:    [3]float32{0, -1, 0},
		CastsShadows: 1,
		Intensity:    2.5,
		CascadeCount: 3,
		Specular:     [3]float32{0.25, 0.5, 0.75},
	}
	buf := d.Marshal()

	assert.Equal(t, math.Float32bits(-1), binary.LittleEndian.Uint32(buf[116:120]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[124:128]))
	assert.Equal(t, math.Float32bits(2.5), binary.LittleEndian.Uint32(buf[140:144]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(buf[144:148]))
	assert.Equal(t, math.Float32bits(0.25), binary.LittleEndian.Uint32(buf[160:164]))
	assert.Equal(t, math.Float32bits(0.75), binary.LittleEndian.Uint32(buf[168:172]))
}

func TestSpecularColorReachesGPUStructs(t *testing.T) {
	sun := NewLight(LightTypeDirectional,
		WithDirection(0, -1, 0),
		WithSpecularColor(0.2, 0.4, 0.6),
	)
	d := ToGPUDirectionalLight(sun, nil)
	assert.Equal(t, [3]float32{0.2, 0.4, 0.6}, d.Specular)

	// Unset specular defaults to white.
	point := ToGPUVolumeLight(NewLight(LightTypePoint), mgl32.Ident4())
	assert.Equal(t, [3]float32{1, 1, 1}, point.Specular)

	spot := NewLight(LightTypeSpot, WithSpecularColor(0, 0, 1))
	v := ToGPUVolumeLight(spot, mgl32.Ident4())
	assert.Equal(t, [3]float32{0, 0, 1}, v.Specular)

	buf := v.Marshal()
	assert.Equal(t, math.Float32bits(1), binary.LittleEndian.Uint32(buf[136:140]))
}

func TestToGPUDirectionalLight_WithoutCascades(t *testing.T) {
	sun := NewLight(LightTypeDirectional,
		WithDirection(0, -1, 0),
		WithCastsShadows(true),
	)

	d := ToGPUDirectionalLight(sun, nil)
	assert.Equal(t, uint32(0), d.CastsShadows)
	assert.Equal(t, uint32(0), d.CascadeCount)
}

func TestToGPUDirectionalLight_WithCascades(t *testing.T) {
	cs := shadow.NewCascadeSet([]float32{1, 10, 50, 200})
	cs.Update(shadow.CameraPose{
		Position:  mgl32.Vec3{0, 2, 0},
		Direction: mgl32.Vec3{0, 0, -1},
		Up:        mgl32.Vec3{0, 1, 0},
		FovY:      mgl32.DegToRad(60),
		Aspect:    16.0 / 9.0,
	}, mgl32.Vec3{0, -1, 0})

	sun := NewLight(LightTypeDirectional,
		WithDirection(0, -1, 0),
		WithCastsShadows(true),
	)

	d := ToGPUDirectionalLight(sun, cs)
	require.Equal(t, uint32(1), d.CastsShadows)
	assert.Equal(t, uint32(3), d.CascadeCount)
	assert.Equal(t, float32(shadow.DefaultMapSize), d.MapSize)
	assert.Equal(t, [16]float32(cs.WorldToShadow()), d.WorldToShadow)
	assert.Greater(t, d.NormalBias, float32(0))

	// A light that opts out of shadows carries no cascade data even when a
	// cascade set exists.
	fill := NewLight(LightTypeDirectional, WithDirection(1, -1, 0))
	d = ToGPUDirectionalLight(fill, cs)
	assert.Equal(t, uint32(0), d.CastsShadows)
}

func TestVolumeTransform_PointCoversRange(t *testing.T) {
	l := NewLight(LightTypePoint,
		WithPosition(5, 1, -3),
		WithRange(4),
	)

	m := VolumeTransform(l)

	// The unit sphere's center lands on the light, its surface at or beyond
	// the attenuation range.
	center := common.TransformPoint(m, mgl32.Vec3{0, 0, 0})
	assert.InDelta(t, 5, float64(center.X()), 1e-5)
	assert.InDelta(t, 1, float64(center.Y()), 1e-5)
	assert.InDelta(t, -3, float64(center.Z()), 1e-5)

	surface := common.TransformPoint(m, mgl32.Vec3{1, 0, 0})
	assert.GreaterOrEqual(t, surface.Sub(center).Len(), float32(4))
}

func TestVolumeTransform_SpotApexAndAxis(t *testing.T) {
	dir := mgl32.Vec3{1, 0, 0}
	l := NewLight(LightTypeSpot,
		WithPosition(0, 3, 0),
		WithDirection(dir.X(), dir.Y(), dir.Z()),
		WithRange(10),
		WithSpotCone(20, 30),
	)

	m := VolumeTransform(l)

	// Cone apex (unit mesh origin) sits on the light position.
	apex := common.TransformPoint(m, mgl32.Vec3{0, 0, 0})
	assert.InDelta(t, 0, float64(apex.X()), 1e-5)
	assert.InDelta(t, 3, float64(apex.Y()), 1e-5)

	// The unit base center (0,0,1) lands along the light direction at or
	// beyond the range.
	base := common.TransformPoint(m, mgl32.Vec3{0, 0, 1})
	axis := base.Sub(apex)
	assert.GreaterOrEqual(t, axis.Len(), float32(10))
	assert.InDelta(t, 1, float64(axis.Normalize().Dot(dir)), 1e-5)
}

func TestToGPUVolumeLight_TypeTag(t *testing.T) {
	vp := mgl32.Ident4()

	point := ToGPUVolumeLight(NewLight(LightTypePoint), vp)
	assert.Equal(t, uint32(LightTypePoint), point.LightType)

	spot := ToGPUVolumeLight(NewLight(LightTypeSpot), vp)
	assert.Equal(t, uint32(LightTypeSpot), spot.LightType)
}
