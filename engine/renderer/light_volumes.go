package renderer

import (
	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
)

// Proxy mesh tessellation. Coverage only needs to be watertight; the volume
// transforms pad the light bound so these counts stay modest.
const (
	sphereRings    = 16
	sphereSegments = 24
	coneSegments   = 24
)

// lightVolumesImpl is the implementation of the LightVolumes interface.
type lightVolumesImpl struct {
	sphere binding.Binding
	cone   binding.Binding
}

// LightVolumes owns the shared unit proxy meshes that point and spot lights
// are rasterized with: a unit sphere and a unit cone. Every light of a given
// type draws the same mesh; the per-light volume transform in its uniform
// stretches it over the light's area of effect.
type LightVolumes interface {
	// MeshFor returns the proxy mesh binding for a light type, or nil for
	// types that have no proxy volume (directional lights).
	//
	// Parameters:
	//   - t: the light type
	//
	// Returns:
	//   - binding.Binding: the sphere for point lights, the cone for spot lights, nil otherwise
	MeshFor(t light.LightType) binding.Binding

	// Release releases both proxy mesh buffers.
	Release()
}

var _ LightVolumes = &lightVolumesImpl{}

// NewLightVolumes creates and uploads the unit sphere and unit cone proxy
// meshes.
//
// Parameters:
//   - r: the renderer that owns the GPU device
//
// Returns:
//   - LightVolumes: the created proxy mesh set
//   - error: an error if buffer creation fails
func NewLightVolumes(r Renderer) (LightVolumes, error) {
	v := &lightVolumesImpl{
		sphere: binding.NewBinding("light volume sphere"),
		cone:   binding.NewBinding("light volume cone"),
	}

	verts, indices := UnitSphereMesh(sphereRings, sphereSegments)
	if err := r.InitMeshBuffers(v.sphere, MarshalVertices(verts), MarshalIndices(indices), len(indices)); err != nil {
		return nil, err
	}

	verts, indices = UnitConeMesh(coneSegments)
	if err := r.InitMeshBuffers(v.cone, MarshalVertices(verts), MarshalIndices(indices), len(indices)); err != nil {
		v.sphere.Release()
		return nil, err
	}

	return v, nil
}

func (v *lightVolumesImpl) MeshFor(t light.LightType) binding.Binding {
	switch t {
	case light.LightTypePoint:
		return v.sphere
	case light.LightTypeSpot:
		return v.cone
	default:
		return nil
	}
}

func (v *lightVolumesImpl) Release() {
	if v.sphere != nil {
		v.sphere.Release()
		v.sphere = nil
	}
	if v.cone != nil {
		v.cone.Release()
		v.cone = nil
	}
}
