package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testViewProj looks down -Z from the origin with a 90 degree vertical fov.
func testViewProj() mgl32.Mat4 {
	proj := PerspectiveZO(math32.Pi/2, 1, 1, 100)
	view := LookAtDir(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func TestExtractFrustum_PlanesAreNormalized(t *testing.T) {
	f := ExtractFrustum(testViewProj())

	for i := range f.Planes {
		assert.InDelta(t, 1.0, f.Planes[i].Normal.Len(), 1e-5, "plane %d", i)
	}
}

func TestFrustum_ContainsPoint(t *testing.T) {
	f := ExtractFrustum(testViewProj())

	assert.True(t, f.ContainsPoint(mgl32.Vec3{0, 0, -10}))
	assert.True(t, f.ContainsPoint(mgl32.Vec3{5, 5, -10}))

	// Behind the camera, beyond the far plane, and outside the side planes.
	assert.False(t, f.ContainsPoint(mgl32.Vec3{0, 0, 5}))
	assert.False(t, f.ContainsPoint(mgl32.Vec3{0, 0, -150}))
	assert.False(t, f.ContainsPoint(mgl32.Vec3{50, 0, -10}))
}

func TestFrustum_IntersectsSphere(t *testing.T) {
	f := ExtractFrustum(testViewProj())

	inside := BoundingSphere{Center: mgl32.Vec3{0, 0, -50}, Radius: 1}
	assert.True(t, f.IntersectsSphere(inside))

	// Center outside the right plane but the radius reaches back in.
	straddling := BoundingSphere{Center: mgl32.Vec3{12, 0, -10}, Radius: 5}
	assert.True(t, f.IntersectsSphere(straddling))

	farOut := BoundingSphere{Center: mgl32.Vec3{0, 0, -200}, Radius: 10}
	assert.False(t, f.IntersectsSphere(farOut))
}

func TestFrustumCorners(t *testing.T) {
	// 90 degree fov at aspect 1: half extent equals the plane distance.
	corners := FrustumCorners(
		mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0},
		math32.Pi/2, 1, 1, 10,
	)

	near := corners[0]
	assert.InDelta(t, -1, near.X(), 1e-5)
	assert.InDelta(t, -1, near.Y(), 1e-5)
	assert.InDelta(t, -1, near.Z(), 1e-5)

	farTopRight := corners[6]
	assert.InDelta(t, 10, farTopRight.X(), 1e-4)
	assert.InDelta(t, 10, farTopRight.Y(), 1e-4)
	assert.InDelta(t, -10, farTopRight.Z(), 1e-4)
}

func TestSliceBoundingSphere_EnclosesAllCorners(t *testing.T) {
	pos := mgl32.Vec3{3, 2, 1}
	dir := mgl32.Vec3{0, 0, -1}
	up := mgl32.Vec3{0, 1, 0}

	sphere := SliceBoundingSphere(pos, dir, up, math32.Pi/3, 16.0/9.0, 5, 50)
	corners := FrustumCorners(pos, dir, up, math32.Pi/3, 16.0/9.0, 5, 50)

	require.Greater(t, sphere.Radius, float32(0))
	for i, c := range corners {
		assert.LessOrEqual(t, c.Sub(sphere.Center).Len(), sphere.Radius*(1+1e-5), "corner %d", i)
	}
}

func TestPerspectiveZO_DepthRange(t *testing.T) {
	proj := PerspectiveZO(math32.Pi/2, 1, 1, 100)

	// WebGPU clip space maps near to 0 and far to 1 after the perspective divide.
	nearClip := proj.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	assert.InDelta(t, 0, nearClip.Z()/nearClip.W(), 1e-5)

	farClip := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
	assert.InDelta(t, 1, farClip.Z()/farClip.W(), 1e-5)
}

func TestOrthoZO_DepthRange(t *testing.T) {
	proj := OrthoZO(-10, 10, -10, 10, 1, 100)

	nearClip := proj.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	assert.InDelta(t, 0, nearClip.Z(), 1e-5)

	farClip := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
	assert.InDelta(t, 1, farClip.Z(), 1e-5)
}

func TestStableUpFor(t *testing.T) {
	// A straight-down direction still yields a valid perpendicular up.
	up := StableUpFor(mgl32.Vec3{0, -1, 0})
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, up)

	// Directions parallel to world right use the +Y fallback axis.
	up = StableUpFor(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, up.Dot(mgl32.Vec3{1, 0, 0}), 1e-6)
	assert.InDelta(t, 1, up.Len(), 1e-6)
}
