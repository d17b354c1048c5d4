package loader

import "io"

// gltfLoaderBackend is the glTF/GLB implementation of loaderBackend.
// It delegates to a fresh importer per load so parser state never leaks
// between files.
type gltfLoaderBackend struct{}

var _ loaderBackend = &gltfLoaderBackend{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - loaderBackend: a new glTF backend instance
func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackend{}
}

func (b *gltfLoaderBackend) Load(path string) (*ImportedModel, error) {
	return newGLTFImporter().Import(path)
}

func (b *gltfLoaderBackend) LoadReader(name string, r io.Reader, isBinary bool) (*ImportedModel, error) {
	return newGLTFImporter().ImportReader(name, r, isBinary)
}
