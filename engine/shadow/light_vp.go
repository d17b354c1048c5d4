package shadow

import (
	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PointShadowFaces is the number of depth layers a point light shadow map
// carries, one per cube face.
const PointShadowFaces = 6

// lightShadowNear is the near plane distance shared by spot and point light
// shadow projections. Light ranges below this render an empty depth map.
const lightShadowNear = 0.1

// pointFaceDirections and pointFaceUps follow the cube face order
// +X, -X, +Y, -Y, +Z, -Z. The shading side selects a face by the dominant
// axis of the fragment-to-light vector, so the order here is the contract.
var pointFaceDirections = [PointShadowFaces]mgl32.Vec3{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

var pointFaceUps = [PointShadowFaces]mgl32.Vec3{
	{0, -1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
	{0, -1, 0},
	{0, -1, 0},
}

// SpotViewProj builds the depth-pass view-projection for a spot light: a
// square perspective frustum looking along the cone axis whose vertical field
// of view covers the outer cone and whose far plane sits at the light range.
//
// Parameters:
//   - position: the light position in world space
//   - direction: the cone axis; does not need to be normalized
//   - outerConeCos: the cosine of the outer cone half-angle
//   - rng: the light range in world units
//
// Returns:
//   - mgl32.Mat4: the light's view-projection matrix
func SpotViewProj(position, direction mgl32.Vec3, outerConeCos, rng float32) mgl32.Mat4 {
	dir := direction.Normalize()
	up := common.StableUpFor(dir)

	// The fov spans the full cone. Clamping the cosine keeps Acos defined and
	// bounds the frustum away from degenerate zero or reflex angles.
	fov := 2 * math32.Acos(min(max(outerConeCos, 0.01), 0.9999))
	far := max(rng, lightShadowNear*2)

	view := common.LookAtDir(position, dir, up)
	proj := common.PerspectiveZO(fov, 1, lightShadowNear, far)
	return proj.Mul4(view)
}

// PointFaceViewProjs builds the six depth-pass view-projections for a point
// light, one 90 degree square frustum per cube face, far plane at the light
// range.
//
// Parameters:
//   - position: the light position in world space
//   - rng: the light range in world units
//
// Returns:
//   - [PointShadowFaces]mgl32.Mat4: the per-face view-projection matrices
func PointFaceViewProjs(position mgl32.Vec3, rng float32) [PointShadowFaces]mgl32.Mat4 {
	far := max(rng, lightShadowNear*2)
	proj := common.PerspectiveZO(math32.Pi/2, 1, lightShadowNear, far)

	var out [PointShadowFaces]mgl32.Mat4
	for i := range out {
		view := common.LookAtDir(position, pointFaceDirections[i], pointFaceUps[i])
		out[i] = proj.Mul4(view)
	}
	return out
}
