package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/effect"
	"github.com/Carmen-Shannon/lumen-go/engine/shadow"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultVolumeShadowMapSize is the resolution of spot and point light shadow
// maps in texels per side.
const DefaultVolumeShadowMapSize = 1024

// volumeShadowMapImpl is the implementation of the VolumeShadowMap interface.
type volumeShadowMapImpl struct {
	lightType light.LightType
	size      uint32
	target    *DepthArrayTarget
	sampler   *wgpu.Sampler

	// layerBindings holds one view-projection uniform bind group per depth
	// layer, matching effect.ShadowPassLayout.
	layerBindings []binding.Binding

	// shade is the bind group the shadowed volume shade pass samples the map
	// through, matching effect.VolumeShadowLayout.
	shade binding.Binding
}

// VolumeShadowMap owns the GPU side of shadow mapping for one point or spot
// light. A spot light renders into a single depth layer behind a perspective
// frustum covering its cone; a point light renders into six layers, one per
// cube face. The light view-projection math lives in shadow.SpotViewProj and
// shadow.PointFaceViewProjs. The shade pass samples the layers back through
// ShadeBinding.
type VolumeShadowMap interface {
	// LayerCount returns the number of depth layers: 1 for spot lights,
	// shadow.PointShadowFaces for point lights.
	//
	// Returns:
	//   - int: the layer count
	LayerCount() int

	// LayerBinding returns the view-projection uniform binding for one
	// layer's depth pass.
	//
	// Parameters:
	//   - idx: the layer index in [0, LayerCount())
	//
	// Returns:
	//   - binding.Binding: the layer's uniform binding
	LayerBinding(idx int) binding.Binding

	// LayerPass returns the depth-only pass configuration for one layer:
	// depth cleared to 1 and stored for sampling.
	//
	// Parameters:
	//   - idx: the layer index in [0, LayerCount())
	//
	// Returns:
	//   - PassConfig: the layer's depth pass configuration
	LayerPass(idx int) PassConfig

	// ArrayView returns the 2d-array view over all depth layers.
	//
	// Returns:
	//   - *wgpu.TextureView: the array view
	ArrayView() *wgpu.TextureView

	// ShadeBinding returns the bind group the shadowed volume shade pass
	// samples this map through: the per-layer view projections, the depth
	// array, and the comparison sampler (group 3 of the shadowed shade
	// pipeline).
	//
	// Returns:
	//   - binding.Binding: the shade-facing binding
	ShadeBinding() binding.Binding

	// Writes stages one view-projection upload per layer computed from the
	// light's current position, direction, cone, and range, plus the shade
	// uniform the lighting pass projects fragments with.
	//
	// Parameters:
	//   - l: the light to read transforms from; its type must match the map's
	//
	// Returns:
	//   - []binding.BufferWrite: the staged uniform writes
	Writes(l light.Light) []binding.BufferWrite

	// Release releases the depth array, its views, and all layer bindings.
	Release()
}

var _ VolumeShadowMap = &volumeShadowMapImpl{}

// NewVolumeShadowMap creates the depth layers and per-layer uniform bindings
// for one point or spot light shadow map.
//
// Parameters:
//   - r: the renderer that owns the GPU device
//   - lightType: light.LightTypeSpot or light.LightTypePoint
//   - size: the map resolution in texels per side
//
// Returns:
//   - VolumeShadowMap: the created shadow map
//   - error: an error if the light type is directional or a GPU resource
//     fails to create
func NewVolumeShadowMap(r Renderer, lightType light.LightType, size uint32) (VolumeShadowMap, error) {
	var label string
	var layers uint32
	switch lightType {
	case light.LightTypeSpot:
		label, layers = "spot shadow", 1
	case light.LightTypePoint:
		label, layers = "point shadow", shadow.PointShadowFaces
	default:
		return nil, fmt.Errorf("volume shadow maps serve point and spot lights, not light type %d", lightType)
	}

	m := &volumeShadowMapImpl{lightType: lightType, size: size}

	var err error
	m.target, err = r.CreateDepthArrayTarget(label, size, layers)
	if err != nil {
		return nil, err
	}
	m.sampler, err = r.CreateComparisonSampler()
	if err != nil {
		m.Release()
		return nil, err
	}

	for i := uint32(0); i < layers; i++ {
		bnd := binding.NewBinding(fmt.Sprintf("%s layer %d", label, i))
		if err = r.InitBindGroup(bnd, effect.ShadowPassLayout(), nil, nil); err != nil {
			m.Release()
			return nil, err
		}
		m.layerBindings = append(m.layerBindings, bnd)
	}

	m.shade = binding.NewBinding(fmt.Sprintf("%s shade", label))
	m.shade.SetTextureView(1, m.target.ArrayView)
	m.shade.SetSampler(2, m.sampler)
	if err = r.InitBindGroup(m.shade, effect.VolumeShadowLayout((&light.GPUVolumeShadow{}).Size()), nil, nil); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

func (m *volumeShadowMapImpl) LayerCount() int {
	return len(m.layerBindings)
}

func (m *volumeShadowMapImpl) LayerBinding(idx int) binding.Binding {
	return m.layerBindings[idx]
}

func (m *volumeShadowMapImpl) LayerPass(idx int) PassConfig {
	label := "spot shadow"
	if m.lightType == light.LightTypePoint {
		label = fmt.Sprintf("point shadow face %d", idx)
	}
	return PassConfig{
		Label: label,
		DepthStencil: &DepthStencilConfig{
			View:            m.target.LayerViews[idx],
			DepthStore:      true, // sampled by the lighting pass
			DepthClearValue: 1,
		},
	}
}

func (m *volumeShadowMapImpl) ArrayView() *wgpu.TextureView {
	if m.target == nil {
		return nil
	}
	return m.target.ArrayView
}

func (m *volumeShadowMapImpl) ShadeBinding() binding.Binding {
	return m.shade
}

func (m *volumeShadowMapImpl) Writes(l light.Light) []binding.BufferWrite {
	writes := make([]binding.BufferWrite, 0, len(m.layerBindings)+1)
	shade := light.GPUVolumeShadow{
		Bias:    light.DefaultShadowBias,
		MapSize: float32(m.size),
	}
	if m.lightType == light.LightTypeSpot {
		vp := shadow.SpotViewProj(l.Position(), l.Direction(), l.OuterCone(), l.Range())
		shade.FaceViewProj[0] = [16]float32(vp)
		writes = append(writes, binding.BufferWrite{
			Target:  m.layerBindings[0],
			Binding: 0,
			Data:    (&effect.GPUCameraData{ViewProj: [16]float32(vp)}).Marshal(),
		})
	} else {
		faces := shadow.PointFaceViewProjs(l.Position(), l.Range())
		for i := range m.layerBindings {
			shade.FaceViewProj[i] = [16]float32(faces[i])
			writes = append(writes, binding.BufferWrite{
				Target:  m.layerBindings[i],
				Binding: 0,
				Data:    (&effect.GPUCameraData{ViewProj: [16]float32(faces[i])}).Marshal(),
			})
		}
	}
	return append(writes, binding.BufferWrite{Target: m.shade, Binding: 0, Data: shade.Marshal()})
}

func (m *volumeShadowMapImpl) Release() {
	if m.shade != nil {
		m.shade.Release()
		m.shade = nil
	}
	for _, bnd := range m.layerBindings {
		bnd.Release()
	}
	m.layerBindings = nil
	if m.sampler != nil {
		m.sampler.Release()
		m.sampler = nil
	}
	if m.target != nil {
		m.target.Release()
		m.target = nil
	}
}
