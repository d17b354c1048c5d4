package loader

import (
	"fmt"
	"io"
	"sync"

	"github.com/Carmen-Shannon/lumen-go/engine/model"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/material"
	"github.com/chewxy/math32"
)

// loaderImpl is the implementation of the Loader interface.
type loaderImpl struct {
	mu sync.Mutex

	renderer renderer.Renderer
	backend  loaderBackend

	// cache maps model name to the loaded model so repeated loads of the same
	// asset reuse the existing GPU resources.
	cache map[string]model.Model
}

// Loader imports model files (glTF/GLB) and converts them into renderable
// models. When constructed with a renderer, loaded models have their GPU
// resources initialized immediately; otherwise initialization is deferred to
// scene registration.
type Loader interface {
	// Load imports the model file at the given path. The result is cached by
	// model name; loading the same asset again returns the cached model.
	//
	// Parameters:
	//   - path: path to the model file
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports model data from a reader, e.g. an embedded resource.
	// External resource URIs cannot be resolved in this mode.
	//
	// Parameters:
	//   - name: the model name to assign (used as the cache key)
	//   - r: reader containing the model data
	//   - isBinary: true if the data is in the binary container format (GLB)
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isBinary bool) (model.Model, error)

	// Model retrieves a previously loaded model by name.
	//
	// Parameters:
	//   - name: the model name
	//
	// Returns:
	//   - model.Model: the cached model, or nil if not loaded
	Model(name string) model.Model

	// Models returns all loaded models.
	//
	// Returns:
	//   - []model.Model: the cached models
	Models() []model.Model

	// Release releases the GPU resources of all cached models and clears the
	// cache.
	Release()
}

var _ Loader = &loaderImpl{}

// NewLoader creates a new Loader instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of LoaderBuilderOption functions to configure the loader
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loaderImpl{
		backend: newGLTFLoaderBackend(),
		cache:   make(map[string]model.Model),
	}

	for _, opt := range options {
		opt(l)
	}

	return l
}

func (l *loaderImpl) Load(path string) (model.Model, error) {
	imported, err := l.backend.Load(path)
	if err != nil {
		return nil, err
	}

	return l.register(imported)
}

func (l *loaderImpl) LoadReader(name string, r io.Reader, isBinary bool) (model.Model, error) {
	imported, err := l.backend.LoadReader(name, r, isBinary)
	if err != nil {
		return nil, err
	}

	return l.register(imported)
}

func (l *loaderImpl) Model(name string) model.Model {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache[name]
}

func (l *loaderImpl) Models() []model.Model {
	l.mu.Lock()
	defer l.mu.Unlock()

	models := make([]model.Model, 0, len(l.cache))
	for _, m := range l.cache {
		models = append(models, m)
	}
	return models
}

func (l *loaderImpl) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for name, m := range l.cache {
		m.Release()
		delete(l.cache, name)
	}
}

// register converts imported data into a model, initializes it when a
// renderer is attached, and stores it in the cache.
func (l *loaderImpl) register(imported *ImportedModel) (model.Model, error) {
	l.mu.Lock()
	if cached, ok := l.cache[imported.Name]; ok {
		l.mu.Unlock()
		return cached, nil
	}
	l.mu.Unlock()

	mdl, err := importedToModel(imported)
	if err != nil {
		return nil, err
	}

	if l.renderer != nil {
		if err := mdl.Init(l.renderer); err != nil {
			return nil, fmt.Errorf("failed to initialize model %q: %w", imported.Name, err)
		}
	}

	l.mu.Lock()
	l.cache[imported.Name] = mdl
	l.mu.Unlock()

	return mdl, nil
}

// importedToModel combines all imported mesh primitives into a single vertex
// and index buffer and builds a model from them. Multi-material files are
// flattened: the first referenced material drives the whole model's surface.
func importedToModel(imported *ImportedModel) (model.Model, error) {
	var vertices []renderer.Vertex
	var indices []uint32
	materialIndex := -1

	for _, mesh := range imported.Meshes {
		base := uint32(len(vertices))
		vertices = append(vertices, mesh.Vertices...)
		for _, idx := range mesh.Indices {
			indices = append(indices, base+idx)
		}
		if materialIndex < 0 && mesh.MaterialIndex >= 0 {
			materialIndex = mesh.MaterialIndex
		}
	}

	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("model %q has no geometry", imported.Name)
	}

	mat, err := importedToMaterial(imported, materialIndex)
	if err != nil {
		return nil, err
	}

	return model.NewModel(
		model.WithName(imported.Name),
		model.WithMesh(vertices, indices),
		model.WithMaterial(mat),
		model.WithBoundingRadius(boundingRadius(imported.Meshes)),
	), nil
}

// importedToMaterial builds a material from the imported material at the
// given index, decoding the albedo texture when present. A negative index
// yields the default white material.
func importedToMaterial(imported *ImportedModel, materialIndex int) (material.Material, error) {
	if materialIndex < 0 || materialIndex >= len(imported.Materials) {
		return material.NewMaterial(material.WithName(imported.Name + " material")), nil
	}

	src := imported.Materials[materialIndex]
	options := []material.MaterialBuilderOption{
		material.WithName(src.Name),
		material.WithBaseColor(src.BaseColor),
		material.WithEmissive(src.Emissive),
		material.WithTransparency(src.Transparent),
	}

	if src.AlbedoTexture != nil {
		staged, err := src.AlbedoTexture.Decode()
		if err != nil {
			return nil, err
		}
		options = append(options, material.WithAlbedoTexture(staged))
	}
	if src.AlbedoSampler != nil {
		options = append(options, material.WithAlbedoSampler(*src.AlbedoSampler))
	}

	return material.NewMaterial(options...), nil
}

// boundingRadius returns the distance from the origin to the farthest corner
// of the combined mesh bounds. Model-space bounds are used because the model
// scales the radius by its own transform at draw time.
func boundingRadius(meshes []ImportedMesh) float32 {
	var radiusSq float32
	for _, mesh := range meshes {
		var cornerSq float32
		for c := 0; c < 3; c++ {
			extent := max(math32.Abs(mesh.BoundingMin[c]), math32.Abs(mesh.BoundingMax[c]))
			cornerSq += extent * extent
		}
		radiusSq = max(radiusSq, cornerSq)
	}
	return math32.Sqrt(radiusSq)
}
