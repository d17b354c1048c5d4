package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleBuffer packs three vec3 positions followed by three uint16 indices,
// matching the accessor layout used by the test documents below.
func triangleBuffer(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	positions := [][3]float32{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	}
	for _, p := range positions {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, p))
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, []uint16{0, 1, 2}))
	return buf.Bytes()
}

// triangleGLTF returns a minimal glTF JSON document with one triangle, one
// material, and the binary payload embedded as a data URI.
func triangleGLTF(t *testing.T) string {
	t.Helper()

	payload := triangleBuffer(t)
	return fmt.Sprintf(`{
		"asset": {"version": "2.0"},
		"scene": 0,
		"scenes": [{"name": "tri_scene", "nodes": [0]}],
		"nodes": [{"mesh": 0}],
		"meshes": [{
			"name": "tri",
			"primitives": [{
				"attributes": {"POSITION": 0},
				"indices": 1,
				"material": 0
			}]
		}],
		"materials": [{
			"name": "red",
			"pbrMetallicRoughness": {"baseColorFactor": [0.8, 0.1, 0.1, 1.0]},
			"emissiveFactor": [0.2, 0.0, 0.0],
			"alphaMode": "BLEND"
		}],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
		],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			{"buffer": 0, "byteOffset": 36, "byteLength": 6}
		],
		"buffers": [{
			"byteLength": %d,
			"uri": "data:application/octet-stream;base64,%s"
		}]
	}`, len(payload), base64.StdEncoding.EncodeToString(payload))
}

// triangleGLB wraps the same triangle in a GLB container with the payload in
// the binary chunk instead of a data URI.
func triangleGLB(t *testing.T) []byte {
	t.Helper()

	payload := triangleBuffer(t)
	jsonChunk := []byte(fmt.Sprintf(`{
		"asset": {"version": "2.0"},
		"meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
		],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			{"buffer": 0, "byteOffset": 36, "byteLength": 6}
		],
		"buffers": [{"byteLength": %d}]
	}`, len(payload)))

	// Chunks are padded to 4-byte alignment (spaces for JSON, zeros for BIN).
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}
	binChunk := append([]byte(nil), payload...)
	for len(binChunk)%4 != 0 {
		binChunk = append(binChunk, 0)
	}

	var out bytes.Buffer
	total := 12 + 8 + len(jsonChunk) + 8 + len(binChunk)
	require.NoError(t, binary.Write(&out, binary.LittleEndian, gltfGLBHeader{
		Magic:   gltfGLBMagic,
		Version: gltfGLBVersion,
		Length:  uint32(total),
	}))
	require.NoError(t, binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{
		ChunkLength: uint32(len(jsonChunk)),
		ChunkType:   gltfGLBChunkJSON,
	}))
	out.Write(jsonChunk)
	require.NoError(t, binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{
		ChunkLength: uint32(len(binChunk)),
		ChunkType:   gltfGLBChunkBIN,
	}))
	out.Write(binChunk)

	return out.Bytes()
}

func TestGLTFImporter_ImportReaderJSON(t *testing.T) {
	imp := newGLTFImporter()

	imported, err := imp.ImportReader("", strings.NewReader(triangleGLTF(t)), false)
	require.NoError(t, err)

	// The default scene's name wins over the fallback name.
	assert.Equal(t, "tri_scene", imported.Name)
	require.Len(t, imported.Meshes, 1)

	mesh := imported.Meshes[0]
	assert.Equal(t, "tri", mesh.Name)
	require.Len(t, mesh.Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.Equal(t, 0, mesh.MaterialIndex)
	assert.Equal(t, [3]float32{0, 0, 0}, mesh.BoundingMin)
	assert.Equal(t, [3]float32{1, 1, 0}, mesh.BoundingMax)

	// No NORMAL attribute: normals are generated. The triangle lies in the
	// XY plane wound counter-clockwise, so they face +Z.
	for _, v := range mesh.Vertices {
		assert.InDelta(t, 0, v.Normal[0], 1e-6)
		assert.InDelta(t, 0, v.Normal[1], 1e-6)
		assert.InDelta(t, 1, v.Normal[2], 1e-6)
	}

	require.Len(t, imported.Materials, 1)
	mat := imported.Materials[0]
	assert.Equal(t, "red", mat.Name)
	assert.Equal(t, [4]float32{0.8, 0.1, 0.1, 1}, mat.BaseColor)
	assert.Equal(t, [4]float32{0.2, 0, 0, 0}, mat.Emissive)
	assert.True(t, mat.Transparent)
	assert.Nil(t, mat.AlbedoTexture)
}

func TestGLTFImporter_ImportReaderGLB(t *testing.T) {
	imp := newGLTFImporter()

	imported, err := imp.ImportReader("glb_tri", bytes.NewReader(triangleGLB(t)), true)
	require.NoError(t, err)

	assert.Equal(t, "glb_tri", imported.Name)
	require.Len(t, imported.Meshes, 1)
	assert.Len(t, imported.Meshes[0].Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, imported.Meshes[0].Indices)
	assert.Equal(t, -1, imported.Meshes[0].MaterialIndex)
}

func TestGLTFImporter_RejectsInvalidVersion(t *testing.T) {
	imp := newGLTFImporter()

	_, err := imp.ImportReader("bad", strings.NewReader(`{"asset": {"version": "1.0"}}`), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, errInvalidGLTFVersion)
}

func TestGLTFImporter_RejectsEmptyModel(t *testing.T) {
	imp := newGLTFImporter()

	_, err := imp.ImportReader("empty", strings.NewReader(`{"asset": {"version": "2.0"}}`), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no triangle meshes")
}

func TestGenerateNormals_DegenerateTriangle(t *testing.T) {
	vertices := []renderer.Vertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{0, 0, 0}},
	}

	generateNormals(vertices, []uint32{0, 1, 2})

	// Zero-area triangles fall back to an up-facing normal.
	for _, v := range vertices {
		assert.Equal(t, [3]float32{0, 1, 0}, v.Normal)
	}
}

func TestGLTFDecodeDataURI(t *testing.T) {
	data, mime, err := gltfDecodeDataURI("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("abc")))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
	assert.Equal(t, "image/png", mime)

	_, _, err = gltfDecodeDataURI("data:image/png;base64")
	require.Error(t, err)
}

func TestImportedTexture_Decode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})

	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))

	tex := &ImportedTexture{Name: "strip", MimeType: "image/png", Data: encoded.Bytes()}
	staged, err := tex.Decode()
	require.NoError(t, err)

	assert.Equal(t, uint32(2), staged.Width)
	assert.Equal(t, uint32(1), staged.Height)
	require.Len(t, staged.Pixels, 8)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 255, 0, 255}, staged.Pixels)
}

func TestImportedToModel_CombinesPrimitives(t *testing.T) {
	imported := &ImportedModel{
		Name: "combined",
		Meshes: []ImportedMesh{
			{
				Vertices: []renderer.Vertex{
					{Position: [3]float32{0, 0, 0}},
					{Position: [3]float32{1, 0, 0}},
					{Position: [3]float32{0, 1, 0}},
				},
				Indices:       []uint32{0, 1, 2},
				MaterialIndex: -1,
				BoundingMax:   [3]float32{1, 1, 0},
			},
			{
				Vertices: []renderer.Vertex{
					{Position: [3]float32{0, 0, 2}},
					{Position: [3]float32{1, 0, 2}},
					{Position: [3]float32{0, 1, 2}},
				},
				Indices:       []uint32{0, 1, 2},
				MaterialIndex: 0,
				BoundingMin:   [3]float32{0, 0, 2},
				BoundingMax:   [3]float32{1, 1, 2},
			},
		},
		Materials: []ImportedMaterial{{
			Name:      "shared",
			BaseColor: [4]float32{0.5, 0.5, 0.5, 1},
		}},
	}

	mdl, err := importedToModel(imported)
	require.NoError(t, err)

	assert.Equal(t, "combined", mdl.Name())
	// The second primitive's indices are rebased past the first's vertices.
	assert.Equal(t, "shared", mdl.Material().Name())
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 1}, mdl.Material().BaseColor())
	assert.InDelta(t, math.Sqrt(1+1+4), float64(mdl.BoundingRadius()), 1e-6)
	assert.False(t, mdl.Ready())
}

func TestLoader_CachesByName(t *testing.T) {
	l := NewLoader()

	first, err := l.LoadReader("tri_scene", strings.NewReader(triangleGLTF(t)), false)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Loading the same asset again returns the cached model.
	second, err := l.LoadReader("tri_scene", strings.NewReader(triangleGLTF(t)), false)
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.Same(t, first, l.Model("tri_scene"))
	assert.Len(t, l.Models(), 1)
	assert.Nil(t, l.Model("missing"))
}
