// gltf_mesh_extractor.go converts glTF mesh primitives into engine vertex data.
// Internal to the loader package.
package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
	"github.com/chewxy/math32"
)

// glTF attribute semantic names consumed by the static mesh path.
const (
	gltfAttrPosition = "POSITION"
	gltfAttrNormal   = "NORMAL"
	gltfAttrTexCoord = "TEXCOORD_0"
)

// gltfExtractPrimitive converts one glTF primitive into an ImportedMesh.
// Only triangle primitives are supported. Normals are generated when the
// primitive does not carry them; missing UVs default to (0, 0).
//
// Parameters:
//   - p: the parser holding the loaded document
//   - prim: the primitive to extract
//   - name: the mesh name to assign
//
// Returns:
//   - ImportedMesh: the extracted mesh data
//   - error: error if extraction fails
func gltfExtractPrimitive(p gltfParser, prim gltfPrimitive, name string) (ImportedMesh, error) {
	if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
		return ImportedMesh{}, fmt.Errorf("unsupported primitive mode %d (only triangles are supported)", *prim.Mode)
	}

	posIdx, ok := prim.Attributes[gltfAttrPosition]
	if !ok {
		return ImportedMesh{}, fmt.Errorf("primitive %q has no POSITION attribute", name)
	}

	positions, err := p.ReadVec3Accessor(posIdx)
	if err != nil {
		return ImportedMesh{}, fmt.Errorf("failed to read positions: %w", err)
	}

	var normals [][3]float32
	if normIdx, ok := prim.Attributes[gltfAttrNormal]; ok {
		normals, err = p.ReadVec3Accessor(normIdx)
		if err != nil {
			return ImportedMesh{}, fmt.Errorf("failed to read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if uvIdx, ok := prim.Attributes[gltfAttrTexCoord]; ok {
		uvs, err = p.ReadVec2Accessor(uvIdx)
		if err != nil {
			return ImportedMesh{}, fmt.Errorf("failed to read texture coordinates: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = p.ReadIndicesAccessor(*prim.Indices)
		if err != nil {
			return ImportedMesh{}, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		// Non-indexed primitive: synthesize a sequential index list.
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	vertices := make([]renderer.Vertex, len(positions))
	for i, pos := range positions {
		vertices[i].Position = pos
		if i < len(normals) {
			vertices[i].Normal = normals[i]
		}
		if i < len(uvs) {
			vertices[i].UV = uvs[i]
		}
	}

	if len(normals) == 0 {
		generateNormals(vertices, indices)
	}

	materialIndex := -1
	if prim.Material != nil {
		materialIndex = *prim.Material
	}

	bmin, bmax := gltfCalculateBounds(vertices)

	return ImportedMesh{
		Name:          name,
		Vertices:      vertices,
		Indices:       indices,
		MaterialIndex: materialIndex,
		BoundingMin:   bmin,
		BoundingMax:   bmax,
	}, nil
}

// generateNormals computes smooth per-vertex normals by accumulating
// area-weighted face normals. Vertices not referenced by any triangle (or
// only by degenerate triangles) get an up-facing normal.
func generateNormals(vertices []renderer.Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = [3]float32{}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= len(vertices) || int(i1) >= len(vertices) || int(i2) >= len(vertices) {
			continue
		}

		p0 := vertices[i0].Position
		p1 := vertices[i1].Position
		p2 := vertices[i2].Position

		e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}

		// Unnormalized cross product: magnitude is proportional to triangle
		// area, which gives the area weighting for free.
		face := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}

		for _, idx := range []uint32{i0, i1, i2} {
			vertices[idx].Normal[0] += face[0]
			vertices[idx].Normal[1] += face[1]
			vertices[idx].Normal[2] += face[2]
		}
	}

	for i := range vertices {
		n := vertices[i].Normal
		length := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if length > 1e-6 {
			vertices[i].Normal = [3]float32{n[0] / length, n[1] / length, n[2] / length}
		} else {
			vertices[i].Normal = [3]float32{0, 1, 0}
		}
	}
}

// gltfCalculateBounds returns the axis-aligned bounding box of the vertex
// positions. Returns zero bounds for an empty vertex list.
func gltfCalculateBounds(vertices []renderer.Vertex) (bmin, bmax [3]float32) {
	if len(vertices) == 0 {
		return bmin, bmax
	}

	bmin = vertices[0].Position
	bmax = vertices[0].Position
	for _, v := range vertices[1:] {
		for c := 0; c < 3; c++ {
			bmin[c] = min(bmin[c], v.Position[c])
			bmax[c] = max(bmax[c], v.Position[c])
		}
	}

	return bmin, bmax
}
