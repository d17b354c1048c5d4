package renderer

import (
	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/chewxy/math32"
)

// Vertex is the interleaved vertex format shared by scene meshes and light
// proxy volumes: position, normal, and texture coordinates.
// Layout must match effect.VertexLayout and the WGSL vertex inputs.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexStride is the byte size of one Vertex.
const VertexStride = 32

// MarshalVertices returns the raw bytes of a vertex slice for GPU upload.
//
// Parameters:
//   - vertices: the vertices to marshal
//
// Returns:
//   - []byte: the interleaved vertex data
func MarshalVertices(vertices []Vertex) []byte {
	return common.SliceToBytes(vertices)
}

// MarshalIndices returns the raw bytes of an index slice for GPU upload.
//
// Parameters:
//   - indices: the uint32 indices to marshal
//
// Returns:
//   - []byte: the index data
func MarshalIndices(indices []uint32) []byte {
	return common.SliceToBytes(indices)
}

// UnitSphereMesh generates a UV sphere of radius 1 centered at the origin,
// used as the proxy volume for point lights. The volume transform scales it
// to the light's padded range.
//
// Parameters:
//   - rings: number of latitude subdivisions (minimum 3)
//   - segments: number of longitude subdivisions (minimum 3)
//
// Returns:
//   - []Vertex: the sphere vertices
//   - []uint32: the triangle list indices with counter-clockwise winding viewed from outside
func UnitSphereMesh(rings, segments int) ([]Vertex, []uint32) {
	if rings < 3 {
		rings = 3
	}
	if segments < 3 {
		segments = 3
	}

	vertices := make([]Vertex, 0, (rings+1)*(segments+1))
	for r := 0; r <= rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		y := math32.Cos(phi)
		ringRadius := math32.Sin(phi)
		for s := 0; s <= segments; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(segments)
			x := ringRadius * math32.Cos(theta)
			z := ringRadius * math32.Sin(theta)
			vertices = append(vertices, Vertex{
				Position: [3]float32{x, y, z},
				Normal:   [3]float32{x, y, z},
				UV:       [2]float32{float32(s) / float32(segments), float32(r) / float32(rings)},
			})
		}
	}

	indices := make([]uint32, 0, rings*segments*6)
	stride := uint32(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			indices = append(indices,
				a, a+1, b,
				a+1, b+1, b,
			)
		}
	}

	return vertices, indices
}

// UnitConeMesh generates a cone with its apex at the origin opening toward +Z,
// height 1 and base radius 1, capped at the base. Used as the proxy volume for
// spot lights; the volume transform scales height to the light's padded range
// and the base to the padded cone radius, then orients it along the light
// direction.
//
// Parameters:
//   - segments: number of radial subdivisions (minimum 3)
//
// Returns:
//   - []Vertex: the cone vertices
//   - []uint32: the triangle list indices with counter-clockwise winding viewed from outside
func UnitConeMesh(segments int) ([]Vertex, []uint32) {
	if segments < 3 {
		segments = 3
	}

	// Side normals lean outward at 45 degrees for the unit cone; exact shading
	// normals don't matter for a proxy volume, only coverage does.
	invSqrt2 := float32(1) / math32.Sqrt(2)

	vertices := make([]Vertex, 0, segments*2+2)
	// Apex, duplicated per segment would be needed for exact normals; one
	// shared apex vertex is enough for a proxy.
	vertices = append(vertices, Vertex{
		Position: [3]float32{0, 0, 0},
		Normal:   [3]float32{0, 0, -1},
		UV:       [2]float32{0.5, 0},
	})
	apex := uint32(0)

	// Base rim, used by both the side surface and the cap.
	rimStart := uint32(len(vertices))
	for s := 0; s < segments; s++ {
		theta := 2 * math32.Pi * float32(s) / float32(segments)
		x := math32.Cos(theta)
		y := math32.Sin(theta)
		vertices = append(vertices, Vertex{
			Position: [3]float32{x, y, 1},
			Normal:   [3]float32{x * invSqrt2, y * invSqrt2, -invSqrt2},
			UV:       [2]float32{float32(s) / float32(segments), 1},
		})
	}

	// Base cap center.
	center := uint32(len(vertices))
	vertices = append(vertices, Vertex{
		Position: [3]float32{0, 0, 1},
		Normal:   [3]float32{0, 0, 1},
		UV:       [2]float32{0.5, 1},
	})

	indices := make([]uint32, 0, segments*6)
	for s := 0; s < segments; s++ {
		curr := rimStart + uint32(s)
		next := rimStart + uint32((s+1)%segments)
		// Side triangle. With +Z pointing away from the viewer at the apex,
		// outside-CCW winding runs apex -> next -> curr.
		indices = append(indices, apex, next, curr)
		// Cap triangle, facing +Z.
		indices = append(indices, center, curr, next)
	}

	return vertices, indices
}

// UnitCubeMesh generates an axis-aligned cube spanning [-1,1] on each axis,
// useful as a simple test mesh and for debug volumes.
//
// Returns:
//   - []Vertex: the cube vertices, four per face
//   - []uint32: the triangle list indices with counter-clockwise winding viewed from outside
func UnitCubeMesh() ([]Vertex, []uint32) {
	type face struct {
		normal [3]float32
		corner [4][3]float32
	}
	faces := []face{
		{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	}

	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for i, c := range f.corner {
			vertices = append(vertices, Vertex{Position: c, Normal: f.normal, UV: uvs[i]})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return vertices, indices
}
