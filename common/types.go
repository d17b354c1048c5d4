// package common contains common types that are used throughout this engine. They
// are not interface-wrapped structs, just plain structs that express commonly used
// data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture.
	// It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for
	// texture coordinates outside the [0, 1] range in each dimension.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail.
	LodMinClamp, LodMaxClamp float32
	// Compare specifies the comparison function for comparison samplers, used in
	// shadow mapping and similar techniques.
	Compare wgpu.CompareFunction
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// BoundingSphere is a world-space sphere used for culling tests and shadow-camera
// fitting.
type BoundingSphere struct {
	// Center is the sphere center in world space.
	Center mgl32.Vec3
	// Radius is the sphere radius in world units.
	Radius float32
}

// Contains reports whether a point lies inside (or on) the sphere.
//
// Parameters:
//   - p: the world-space point to test
//
// Returns:
//   - bool: true if the point is within Radius of Center
func (s BoundingSphere) Contains(p mgl32.Vec3) bool {
	d := p.Sub(s.Center)
	return d.Dot(d) <= s.Radius*s.Radius
}

// Merge returns the smallest sphere enclosing both s and other.
//
// Parameters:
//   - other: the sphere to merge with
//
// Returns:
//   - BoundingSphere: the enclosing sphere
func (s BoundingSphere) Merge(other BoundingSphere) BoundingSphere {
	d := other.Center.Sub(s.Center)
	dist := d.Len()

	// One sphere already contains the other.
	if dist+other.Radius <= s.Radius {
		return s
	}
	if dist+s.Radius <= other.Radius {
		return other
	}

	newRadius := (dist + s.Radius + other.Radius) * 0.5
	t := (newRadius - s.Radius) / dist
	return BoundingSphere{
		Center: s.Center.Add(d.Mul(t)),
		Radius: newRadius,
	}
}

// GameTime carries per-frame timing for draw and culling paths.
type GameTime struct {
	// Delta is the time elapsed since the previous frame, in seconds.
	Delta float32
	// Total is the time elapsed since engine start, in seconds.
	Total float32
}
