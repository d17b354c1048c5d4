package loader

import "io"

// loaderBackend abstracts the file-format-specific import step. Each backend
// turns a model file into format-neutral ImportedModel data; the Loader then
// converts that into a renderable model. Internal to the loader package.
type loaderBackend interface {
	// Load imports a model file from the given path.
	//
	// Parameters:
	//   - path: path to the model file
	//
	// Returns:
	//   - *ImportedModel: the imported model data
	//   - error: error if importing fails
	Load(path string) (*ImportedModel, error)

	// LoadReader imports model data from a reader.
	//
	// Parameters:
	//   - name: the model name to assign
	//   - r: reader containing the model data
	//   - isBinary: true if the data is in the format's binary container
	//
	// Returns:
	//   - *ImportedModel: the imported model data
	//   - error: error if importing fails
	LoadReader(name string, r io.Reader, isBinary bool) (*ImportedModel, error)
}
