package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Coalesce returns the first non-zero value from the provided values, or the zero
// value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// PerspectiveZO builds a perspective projection matrix for WebGPU clip space:
// X/Y in [-1, 1], Z in [0, 1] (zero-to-one depth, hence the ZO suffix).
// mgl32.Perspective targets OpenGL's [-1, 1] depth range, which halves effective
// depth precision on WebGPU and breaks depth-as-color reconstruction, so the
// renderer uses this variant everywhere.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)
	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1.0
	m[14] = (near * far) / (near - far)
	return m
}

// OrthoZO builds an orthographic projection matrix for WebGPU clip space:
// X/Y in [-1, 1], Z in [0, 1].
//
// Parameters:
//   - left, right, bottom, top: extents of the view volume on the near plane
//   - near, far: depth extents of the view volume
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func OrthoZO(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near

	m := mgl32.Ident4()
	m[0] = 2.0 / rl
	m[5] = 2.0 / tb
	m[10] = -1.0 / fn
	m[12] = -(right + left) / rl
	m[13] = -(top + bottom) / tb
	m[14] = -near / fn
	return m
}

// LookAtDir builds a right-handed view matrix from an eye position and a viewing
// direction (rather than a target point).
//
// Parameters:
//   - eye: camera position in world space
//   - dir: normalized viewing direction
//   - up: up vector (must not be parallel to dir)
//
// Returns:
//   - mgl32.Mat4: the view matrix transforming world space to view space
func LookAtDir(eye, dir, up mgl32.Vec3) mgl32.Mat4 {
	center := eye.Add(dir)
	return mgl32.LookAtV(eye, center, up)
}

// StableUpFor picks an up vector for a view aligned with dir that is never
// parallel to it. Prefers the normalized cross product of dir with world right
// (+X); when dir is nearly parallel to +X it falls back to crossing with world
// up (+Y).
//
// Parameters:
//   - dir: normalized direction the view looks along
//
// Returns:
//   - mgl32.Vec3: a unit-length up vector perpendicular to dir
func StableUpFor(dir mgl32.Vec3) mgl32.Vec3 {
	right := mgl32.Vec3{1, 0, 0}
	if math32.Abs(dir.Dot(right)) > 0.99 {
		right = mgl32.Vec3{0, 1, 0}
	}
	return dir.Cross(right).Normalize()
}

// TransformPoint applies a 4x4 matrix to a 3D point (w = 1) and returns the
// transformed point after perspective division.
//
// Parameters:
//   - m: the transform to apply
//   - p: the point to transform
//
// Returns:
//   - mgl32.Vec3: the transformed point
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v.W() != 0 && v.W() != 1 {
		inv := 1.0 / v.W()
		return mgl32.Vec3{v.X() * inv, v.Y() * inv, v.Z() * inv}
	}
	return v.Vec3()
}

// TransformDirection applies only the rotational part of a 4x4 matrix to a 3D
// direction (w = 0).
//
// Parameters:
//   - m: the transform whose upper-left 3x3 is applied
//   - d: the direction to transform
//
// Returns:
//   - mgl32.Vec3: the rotated direction
func TransformDirection(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(d.Vec4(0))
	return v.Vec3()
}
