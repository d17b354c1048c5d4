// gltf_importer.go drives the glTF import pipeline: parse the document, then
// extract meshes and materials into loader types. Internal to the loader
// package.
package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct {
	parser gltfParser
}

// gltfImporter imports glTF/GLB files into ImportedModel data.
type gltfImporter interface {
	// Import loads a glTF or GLB file from the given path and extracts its
	// meshes and materials.
	//
	// Parameters:
	//   - path: path to the glTF or GLB file
	//
	// Returns:
	//   - *ImportedModel: the imported model data
	//   - error: error if importing fails
	Import(path string) (*ImportedModel, error)

	// ImportReader imports glTF data from a reader. External resource URIs
	// cannot be resolved in this mode; use GLB or data URIs for textures.
	//
	// Parameters:
	//   - name: the model name to assign
	//   - r: reader containing glTF JSON or GLB data
	//   - isGLB: true if the data is in GLB format
	//
	// Returns:
	//   - *ImportedModel: the imported model data
	//   - error: error if importing fails
	ImportReader(name string, r io.Reader, isGLB bool) (*ImportedModel, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer instance.
//
// Returns:
//   - gltfImporter: a new importer instance
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{
		parser: newGLTFParser(),
	}
}

func (imp *gltfImporterImpl) Import(path string) (*ImportedModel, error) {
	if err := imp.parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	return imp.extract(gltfExtractModelName(imp.parser.Document(), path))
}

func (imp *gltfImporterImpl) ImportReader(name string, r io.Reader, isGLB bool) (*ImportedModel, error) {
	if err := imp.parser.ParseReader(r, isGLB); err != nil {
		return nil, fmt.Errorf("failed to parse model data: %w", err)
	}

	if name == "" {
		name = gltfExtractModelName(imp.parser.Document(), "")
	}
	return imp.extract(name)
}

// extract walks the parsed document and converts every triangle primitive and
// every referenced material.
func (imp *gltfImporterImpl) extract(name string) (*ImportedModel, error) {
	doc := imp.parser.Document()

	result := &ImportedModel{Name: name}

	// Materials are extracted up front so mesh material indices stay valid.
	result.Materials = make([]ImportedMaterial, len(doc.Materials))
	for i := range doc.Materials {
		mat, err := gltfExtractMaterial(imp.parser, i)
		if err != nil {
			return nil, err
		}
		result.Materials[i] = mat
	}

	for mi, mesh := range doc.Meshes {
		meshName := mesh.Name
		if meshName == "" {
			meshName = fmt.Sprintf("%s_mesh_%d", name, mi)
		}

		for pi, prim := range mesh.Primitives {
			primName := meshName
			if len(mesh.Primitives) > 1 {
				primName = fmt.Sprintf("%s_%d", meshName, pi)
			}

			extracted, err := gltfExtractPrimitive(imp.parser, prim, primName)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: %w", primName, err)
			}
			result.Meshes = append(result.Meshes, extracted)
		}
	}

	if len(result.Meshes) == 0 {
		return nil, fmt.Errorf("model %q contains no triangle meshes", name)
	}

	return result, nil
}

// gltfExtractModelName picks a model name from the document's default scene,
// falling back to the file name without extension, then to "model".
func gltfExtractModelName(doc *gltfDocument, path string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}

	if path != "" {
		base := filepath.Base(path)
		if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
			return name
		}
	}

	return "model"
}
