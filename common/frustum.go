package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// SignedDistance returns the signed distance from a point to the plane.
// Positive values are on the normal side of the plane.
//
// Parameters:
//   - p: the world-space point
//
// Returns:
//   - float32: the signed distance
func (pl Plane) SignedDistance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// Frustum plane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustum extracts frustum planes from a combined view-projection matrix
// using the Gribb/Hartmann method.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined View * Projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	// For a column-major matrix, row i is (viewProj[i], viewProj[4+i],
	// viewProj[8+i], viewProj[12+i]).
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{viewProj[i], viewProj[4+i], viewProj[8+i], viewProj[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	set := func(idx int, v mgl32.Vec4) {
		f.Planes[idx] = Plane{
			Normal:   mgl32.Vec3{v.X(), v.Y(), v.Z()},
			Distance: v.W(),
		}
	}
	set(FrustumLeft, r3.Add(r0))
	set(FrustumRight, r3.Sub(r0))
	set(FrustumBottom, r3.Add(r1))
	set(FrustumTop, r3.Sub(r1))
	// WebGPU clip space has Z in [0, 1], so the near plane is row2 alone.
	set(FrustumNear, r2)
	set(FrustumFar, r3.Sub(r2))

	for i := range f.Planes {
		f.normalizePlane(i)
	}
	return f
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := p.Normal.Len()
	if length > 0 {
		inv := 1.0 / length
		p.Normal = p.Normal.Mul(inv)
		p.Distance *= inv
	}
}

// IntersectsSphere reports whether a bounding sphere is at least partially inside
// the frustum. Conservative: may return true for spheres slightly outside.
//
// Parameters:
//   - s: the bounding sphere to test
//
// Returns:
//   - bool: false only if the sphere is fully outside some frustum plane
func (f *Frustum) IntersectsSphere(s BoundingSphere) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether a world-space point is inside the frustum.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - bool: true if the point is on the inner side of all six planes
func (f *Frustum) ContainsPoint(p mgl32.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(p) < 0 {
			return false
		}
	}
	return true
}

// FrustumCorners computes the 8 world-space corner points of a perspective
// frustum slice between the given near and far distances. Corners are ordered
// near plane first (bottom-left, bottom-right, top-right, top-left), then the
// far plane in the same order.
//
// Parameters:
//   - position: camera position in world space
//   - direction: normalized camera viewing direction
//   - up: normalized camera up vector
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near distance of the slice (world units along direction)
//   - far: far distance of the slice
//
// Returns:
//   - [8]mgl32.Vec3: the world-space corners of the slice
func FrustumCorners(position, direction, up mgl32.Vec3, fovY, aspect, near, far float32) [8]mgl32.Vec3 {
	right := direction.Cross(up).Normalize()
	trueUp := right.Cross(direction).Normalize()

	tanHalf := math32.Tan(fovY / 2.0)

	var corners [8]mgl32.Vec3
	for i, dist := range [2]float32{near, far} {
		halfH := tanHalf * dist
		halfW := halfH * aspect
		center := position.Add(direction.Mul(dist))

		u := trueUp.Mul(halfH)
		r := right.Mul(halfW)

		corners[i*4+0] = center.Sub(u).Sub(r) // bottom-left
		corners[i*4+1] = center.Sub(u).Add(r) // bottom-right
		corners[i*4+2] = center.Add(u).Add(r) // top-right
		corners[i*4+3] = center.Add(u).Sub(r) // top-left
	}
	return corners
}

// SliceBoundingSphere computes a bounding sphere for a frustum slice. The center
// sits on the camera view axis at the midpoint of the slice range; the radius is
// the distance from that center to a far-plane corner (the farthest corner from
// any on-axis point).
//
// Parameters:
//   - position, direction, up: camera pose (direction and up normalized)
//   - fovY, aspect: perspective parameters
//   - near, far: slice distance range
//
// Returns:
//   - BoundingSphere: a sphere enclosing all 8 slice corners
func SliceBoundingSphere(position, direction, up mgl32.Vec3, fovY, aspect, near, far float32) BoundingSphere {
	corners := FrustumCorners(position, direction, up, fovY, aspect, near, far)
	center := position.Add(direction.Mul((near + far) * 0.5))

	radius := float32(0)
	for i := 4; i < 8; i++ {
		if d := corners[i].Sub(center).Len(); d > radius {
			radius = d
		}
	}
	return BoundingSphere{Center: center, Radius: radius}
}
