package shadow

import (
	"testing"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPose() CameraPose {
	return CameraPose{
		Position:  mgl32.Vec3{0, 2, 0},
		Direction: mgl32.Vec3{0, 0, -1},
		Up:        mgl32.Vec3{0, 1, 0},
		FovY:      math32.Pi / 3,
		Aspect:    16.0 / 9.0,
	}
}

var testLightDir = mgl32.Vec3{0, -1, 0}

func TestNewCascadeSet_RangesDefineCascadeCount(t *testing.T) {
	cs := NewCascadeSet([]float32{1, 10, 50, 200})

	assert.Equal(t, 3, cs.TotalCascades())
	assert.Equal(t, []float32{1, 10, 50, 200}, cs.Ranges())
	assert.Equal(t, DefaultMapSize, cs.MapSize())
	assert.True(t, cs.AntiFlicker())
}

func TestNewCascadeSet_InvalidRangesPanic(t *testing.T) {
	require.Panics(t, func() { NewCascadeSet([]float32{1}) })
	require.Panics(t, func() { NewCascadeSet([]float32{1, 10, 10, 200}) })
	require.Panics(t, func() { NewCascadeSet([]float32{1, 10, 5}) })
	require.Panics(t, func() { NewCascadeSet([]float32{1, 2, 3, 4, 5, 6}) })
}

func TestNewCascadeSet_Options(t *testing.T) {
	cs := NewCascadeSet([]float32{1, 100},
		WithMapSize(1024),
		WithAntiFlicker(false),
	)

	assert.Equal(t, 1024, cs.MapSize())
	assert.False(t, cs.AntiFlicker())
}

func TestCascadeForDepth(t *testing.T) {
	cs := NewCascadeSet([]float32{1, 10, 50, 200})

	// A fragment at view depth 5 falls in the first cascade.
	assert.Equal(t, 0, cs.CascadeForDepth(5))
	assert.Equal(t, 1, cs.CascadeForDepth(10))
	assert.Equal(t, 1, cs.CascadeForDepth(49))
	assert.Equal(t, 2, cs.CascadeForDepth(150))
	assert.Equal(t, -1, cs.CascadeForDepth(200))
	assert.Equal(t, -1, cs.CascadeForDepth(0.5))
}

func TestUpdate_BoundRadiiNeverShrink(t *testing.T) {
	cs := NewCascadeSet([]float32{1, 10, 50, 200})
	pose := testPose()

	// Widen the field of view, then narrow it back down. The persisted radii
	// must track the widest fit seen so far and never move backwards.
	fovs := []float32{math32.Pi / 4, math32.Pi / 3, math32.Pi / 2, math32.Pi / 3, math32.Pi / 6}

	prevWhole := float32(0)
	prev := make([]float32, cs.TotalCascades())
	for _, fov := range fovs {
		pose.FovY = fov
		cs.Update(pose, testLightDir)

		assert.GreaterOrEqual(t, cs.ShadowBoundRadius(), prevWhole)
		prevWhole = cs.ShadowBoundRadius()
		for i := 0; i < cs.TotalCascades(); i++ {
			assert.GreaterOrEqual(t, cs.CascadeBoundRadius(i), prev[i])
			prev[i] = cs.CascadeBoundRadius(i)
		}
	}
}

func TestUpdate_SliceMapsIntoCascadeClipSquare(t *testing.T) {
	for _, antiFlicker := range []bool{true, false} {
		cs := NewCascadeSet([]float32{1, 10, 50, 200}, WithAntiFlicker(antiFlicker))
		pose := testPose()
		cs.Update(pose, testLightDir)

		// Every corner of every cascade's frustum slice must land inside that
		// cascade's [-1,1] clip square, or the lighting shader would sample
		// outside the layer.
		for i := 0; i < cs.TotalCascades(); i++ {
			m := cs.CascadeViewProj(i)
			corners := common.FrustumCorners(pose.Position, pose.Direction, pose.Up,
				pose.FovY, pose.Aspect, cs.Ranges()[i], cs.Ranges()[i+1])
			for _, corner := range corners {
				p := common.TransformPoint(m, corner)
				assert.LessOrEqual(t, math32.Abs(p.X()), float32(1.0001),
					"cascade %d antiFlicker=%v", i, antiFlicker)
				assert.LessOrEqual(t, math32.Abs(p.Y()), float32(1.0001),
					"cascade %d antiFlicker=%v", i, antiFlicker)
			}
		}
	}
}

func TestUpdate_OffsetScaleMatchesMatrix(t *testing.T) {
	cs := NewCascadeSet([]float32{1, 10, 50, 200})
	pose := testPose()
	cs.Update(pose, testLightDir)

	// The packed offset/scale vectors are the shader-side form of
	// CascadeViewProj; both must place a world point at the same cascade UV.
	offX, offY, scale := cs.CascadeVectors()
	point := mgl32.Vec3{3, 0, -25}
	shadow := common.TransformPoint(cs.WorldToShadow(), point)

	for i := 0; i < cs.TotalCascades(); i++ {
		viaMatrix := common.TransformPoint(cs.CascadeViewProj(i), point)
		assert.InDelta(t, float64(shadow.X()*scale[i]+offX[i]), float64(viaMatrix.X()), 1e-4)
		assert.InDelta(t, float64(shadow.Y()*scale[i]+offY[i]), float64(viaMatrix.Y()), 1e-4)
	}
}

func TestUpdate_SubTexelMovementLeavesCentersAlone(t *testing.T) {
	cs := NewCascadeSet([]float32{1, 10, 50, 200})
	pose := testPose()
	cs.Update(pose, testLightDir)

	centers := make([]mgl32.Vec3, cs.TotalCascades())
	for i := range centers {
		centers[i] = cs.CascadeBoundCenter(i)
	}

	// Glide the camera by far less than half a texel of the smallest cascade.
	pose.Position = pose.Position.Add(mgl32.Vec3{0.0005, 0, 0})
	cs.Update(pose, testLightDir)

	for i := 0; i < cs.TotalCascades(); i++ {
		assert.Equal(t, centers[i], cs.CascadeBoundCenter(i), "cascade %d", i)
	}
}

func TestUpdate_CentersSnapInWholeTexels(t *testing.T) {
	cs := NewCascadeSet([]float32{1, 10, 50, 200})
	pose := testPose()
	cs.Update(pose, testLightDir)

	before := make([]mgl32.Vec3, cs.TotalCascades())
	for i := range before {
		before[i] = cs.CascadeBoundCenter(i)
	}

	pose.Position = pose.Position.Add(mgl32.Vec3{1.5, 0, 0.7})
	cs.Update(pose, testLightDir)

	rot := cs.ShadowView().Mat3()
	for i := 0; i < cs.TotalCascades(); i++ {
		texelSize := 2 * cs.CascadeBoundRadius(i) / float32(cs.MapSize())
		delta := rot.Mul3x1(cs.CascadeBoundCenter(i).Sub(before[i]))

		// Movement happens only on the shadow map's own axes, in whole texels.
		tx := delta.X() / texelSize
		ty := delta.Y() / texelSize
		assert.InDelta(t, float64(math32.Round(tx)), float64(tx), 1e-3, "cascade %d x", i)
		assert.InDelta(t, float64(math32.Round(ty)), float64(ty), 1e-3, "cascade %d y", i)
		assert.InDelta(t, 0, float64(delta.Z()), 1e-4, "cascade %d z", i)
	}
}

func TestUpdate_RotationOnlyOrbitKeepsShadowFrame(t *testing.T) {
	cs := NewCascadeSet([]float32{1, 10, 50, 200})
	pose := testPose()
	cs.Update(pose, testLightDir)

	// The shadow camera's orientation follows the light, not the camera. Any
	// camera rotation must leave the shadow view rotation untouched.
	rotBefore := cs.ShadowView().Mat3()

	pose.Direction = mgl32.Vec3{1, 0, -1}.Normalize()
	cs.Update(pose, testLightDir)

	rotAfter := cs.ShadowView().Mat3()
	for i := range rotBefore {
		assert.InDelta(t, float64(rotBefore[i]), float64(rotAfter[i]), 1e-5)
	}
}
