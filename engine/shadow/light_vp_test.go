package shadow

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clipOf projects a world point and returns NDC x, y and depth after the
// perspective divide.
func clipOf(vp mgl32.Mat4, p mgl32.Vec3) (float32, float32, float32) {
	c := vp.Mul4x1(p.Vec4(1))
	return c.X() / c.W(), c.Y() / c.W(), c.Z() / c.W()
}

func TestSpotViewProj_AxisPointProjectsToCenter(t *testing.T) {
	pos := mgl32.Vec3{2, 5, -1}
	dir := mgl32.Vec3{0, -1, 0}
	vp := SpotViewProj(pos, dir, 0.866, 10) // ~30 degree half-angle

	// A point halfway down the cone axis lands at screen center with a depth
	// strictly inside (0, 1).
	x, y, z := clipOf(vp, pos.Add(dir.Mul(5)))
	assert.InDelta(t, 0, x, 1e-4)
	assert.InDelta(t, 0, y, 1e-4)
	assert.Greater(t, z, float32(0))
	assert.Less(t, z, float32(1))

	// A point at the full range resolves to the far plane.
	_, _, zFar := clipOf(vp, pos.Add(dir.Mul(10)))
	assert.InDelta(t, 1, zFar, 1e-4)
}

func TestSpotViewProj_OuterConeEdgeIsFrustumEdge(t *testing.T) {
	// 45 degree half-angle: the cone edge coincides with the frustum edge, so
	// a point on the edge projects to |y| == 1.
	vp := SpotViewProj(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 0.7071, 20)

	_, y, _ := clipOf(vp, mgl32.Vec3{0, 5, -5})
	assert.InDelta(t, 1, math32.Abs(y), 1e-3)
}

func TestSpotViewProj_DegenerateInputsStayFinite(t *testing.T) {
	// Cosines at or beyond the valid range and a zero range still produce a
	// usable matrix.
	vp := SpotViewProj(mgl32.Vec3{}, mgl32.Vec3{0, -1, 0}, 1.5, 0)

	for _, v := range vp {
		assert.False(t, math32.IsNaN(v), "matrix contains NaN")
	}
}

func TestPointFaceViewProjs_FaceOrder(t *testing.T) {
	pos := mgl32.Vec3{1, 2, 3}
	vps := PointFaceViewProjs(pos, 10)

	// Each face's axis point projects to the center of exactly that face.
	axes := [PointShadowFaces]mgl32.Vec3{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
	}
	for face, axis := range axes {
		x, y, z := clipOf(vps[face], pos.Add(axis.Mul(5)))
		assert.InDelta(t, 0, x, 1e-4, "face %d", face)
		assert.InDelta(t, 0, y, 1e-4, "face %d", face)
		assert.Greater(t, z, float32(0), "face %d", face)
		assert.Less(t, z, float32(1), "face %d", face)
	}
}

func TestPointFaceViewProjs_RangeHitsFarPlane(t *testing.T) {
	vps := PointFaceViewProjs(mgl32.Vec3{}, 25)

	_, _, z := clipOf(vps[0], mgl32.Vec3{25, 0, 0})
	require.InDelta(t, 1, z, 1e-4)
}
