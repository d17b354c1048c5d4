package loader

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	// Registered decoders for glTF texture payloads (PNG and JPEG per the
	// glTF 2.0 core spec).
	_ "image/jpeg"
	_ "image/png"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
)

// ImportedModel is the intermediate result of importing a model file, before
// it is converted into a renderable model. Meshes reference materials by
// index into Materials.
type ImportedModel struct {
	// Name is the model name, taken from the scene or derived from the file name.
	Name string

	// Meshes are the extracted mesh primitives.
	Meshes []ImportedMesh

	// Materials are the extracted materials referenced by the meshes.
	Materials []ImportedMaterial
}

// ImportedMesh is one extracted mesh primitive: deduplicated vertex data plus
// a triangle index list.
type ImportedMesh struct {
	// Name is the mesh name from the source file.
	Name string

	// Vertices is the vertex data (position, normal, UV).
	Vertices []renderer.Vertex

	// Indices is the triangle index list into Vertices.
	Indices []uint32

	// MaterialIndex is the index into the model's Materials, or -1 when the
	// primitive has no material.
	MaterialIndex int

	// BoundingMin and BoundingMax are the axis-aligned bounds of the vertex
	// positions in model space.
	BoundingMin [3]float32
	BoundingMax [3]float32
}

// ImportedMaterial is one extracted material: the subset of glTF material
// data the deferred pipeline consumes.
type ImportedMaterial struct {
	// Name is the material name from the source file.
	Name string

	// BaseColor is the albedo RGBA multiplier.
	BaseColor [4]float32

	// Emissive is the emissive color added after lighting (alpha unused).
	Emissive [4]float32

	// Transparent marks materials with alpha mode BLEND; these render in the
	// forward pass instead of the geometry buffer.
	Transparent bool

	// AlbedoTexture is the base color texture, or nil when untextured.
	AlbedoTexture *ImportedTexture

	// AlbedoSampler carries the source file's sampler settings for the albedo
	// texture, or nil when the file specifies none.
	AlbedoSampler *common.SamplerStagingData
}

// ImportedTexture is raw encoded texture data pulled out of a model file.
// The bytes are still in their source encoding (PNG or JPEG); call Decode to
// obtain RGBA pixels ready for upload.
type ImportedTexture struct {
	// Name is the texture or image name from the source file.
	Name string

	// MimeType is the declared MIME type, e.g. "image/png". May be empty for
	// textures loaded from external files.
	MimeType string

	// Data is the encoded image bytes.
	Data []byte
}

// Decode decodes the encoded image bytes into tightly packed RGBA pixels
// suitable for texture upload.
//
// Returns:
//   - common.TextureStagingData: the decoded pixels and dimensions
//   - error: error if the image cannot be decoded
func (t *ImportedTexture) Decode() (common.TextureStagingData, error) {
	img, _, err := image.Decode(bytes.NewReader(t.Data))
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode texture %q: %w", t.Name, err)
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 {
		converted := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(converted, converted.Bounds(), img, bounds.Min, draw.Src)
		rgba = converted
	}

	return common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}
