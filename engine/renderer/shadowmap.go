package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/effect"
	"github.com/Carmen-Shannon/lumen-go/engine/shadow"
	"github.com/cogentcore/webgpu/wgpu"
)

// shadowMapImpl is the implementation of the ShadowMap interface.
type shadowMapImpl struct {
	target  *DepthArrayTarget
	sampler *wgpu.Sampler

	// cascadeBindings holds one view-projection uniform bind group per
	// cascade layer, matching effect.ShadowPassLayout.
	cascadeBindings []binding.Binding
}

// ShadowMap owns the GPU side of cascaded shadow mapping: a depth texture
// array with one layer per cascade, per-layer views for rendering, an array
// view plus comparison sampler for the lighting pass, and one view-projection
// uniform bind group per cascade. The cascade math itself lives in
// shadow.CascadeSet.
type ShadowMap interface {
	// CascadeCount returns the number of cascade layers.
	//
	// Returns:
	//   - int: the layer count
	CascadeCount() int

	// CascadeBinding returns the view-projection uniform binding for one
	// cascade's depth pass.
	//
	// Parameters:
	//   - idx: the cascade index in [0, CascadeCount())
	//
	// Returns:
	//   - binding.Binding: the cascade's uniform binding
	CascadeBinding(idx int) binding.Binding

	// CascadePass returns the depth-only pass configuration for one cascade
	// layer: depth cleared to 1 and stored for sampling.
	//
	// Parameters:
	//   - idx: the cascade index in [0, CascadeCount())
	//
	// Returns:
	//   - PassConfig: the cascade depth pass configuration
	CascadePass(idx int) PassConfig

	// ArrayView returns the 2d-array view over all cascade layers, bound by
	// the directional light shader for comparison sampling.
	//
	// Returns:
	//   - *wgpu.TextureView: the array view
	ArrayView() *wgpu.TextureView

	// Sampler returns the comparison sampler used for PCF shadow lookups.
	//
	// Returns:
	//   - *wgpu.Sampler: the comparison sampler
	Sampler() *wgpu.Sampler

	// Writes stages one view-projection upload per cascade from the set's
	// last Update.
	//
	// Parameters:
	//   - cascades: the cascade set to read transforms from
	//
	// Returns:
	//   - []binding.BufferWrite: the staged uniform writes
	Writes(cascades shadow.CascadeSet) []binding.BufferWrite

	// Release releases the depth array, its views, the sampler, and all
	// cascade bindings.
	Release()
}

var _ ShadowMap = &shadowMapImpl{}

// NewShadowMap creates the cascade depth texture array sized from the cascade
// set, plus the comparison sampler and per-cascade uniform bindings.
//
// Parameters:
//   - r: the renderer that owns the GPU device
//   - cascades: the cascade set defining layer count and resolution
//
// Returns:
//   - ShadowMap: the created shadow map
//   - error: an error if any GPU resource fails to create
func NewShadowMap(r Renderer, cascades shadow.CascadeSet) (ShadowMap, error) {
	m := &shadowMapImpl{}

	var err error
	m.target, err = r.CreateDepthArrayTarget("shadow cascades", uint32(cascades.MapSize()), uint32(cascades.TotalCascades()))
	if err != nil {
		return nil, err
	}
	m.sampler, err = r.CreateComparisonSampler()
	if err != nil {
		m.Release()
		return nil, err
	}

	for i := 0; i < cascades.TotalCascades(); i++ {
		bnd := binding.NewBinding(fmt.Sprintf("shadow cascade %d", i))
		if err = r.InitBindGroup(bnd, effect.ShadowPassLayout(), nil, nil); err != nil {
			m.Release()
			return nil, err
		}
		m.cascadeBindings = append(m.cascadeBindings, bnd)
	}
	return m, nil
}

func (m *shadowMapImpl) CascadeCount() int {
	return len(m.cascadeBindings)
}

func (m *shadowMapImpl) CascadeBinding(idx int) binding.Binding {
	return m.cascadeBindings[idx]
}

func (m *shadowMapImpl) CascadePass(idx int) PassConfig {
	return PassConfig{
		Label: fmt.Sprintf("shadow cascade %d", idx),
		DepthStencil: &DepthStencilConfig{
			View:            m.target.LayerViews[idx],
			DepthStore:      true, // sampled by the lighting pass
			DepthClearValue: 1,
		},
	}
}

func (m *shadowMapImpl) ArrayView() *wgpu.TextureView {
	if m.target == nil {
		return nil
	}
	return m.target.ArrayView
}

func (m *shadowMapImpl) Sampler() *wgpu.Sampler {
	return m.sampler
}

func (m *shadowMapImpl) Writes(cascades shadow.CascadeSet) []binding.BufferWrite {
	writes := make([]binding.BufferWrite, 0, len(m.cascadeBindings))
	for i := range m.cascadeBindings {
		vp := effect.GPUCameraData{ViewProj: [16]float32(cascades.CascadeViewProj(i))}
		writes = append(writes, binding.BufferWrite{
			Target:  m.cascadeBindings[i],
			Binding: 0,
			Data:    vp.Marshal(),
		})
	}
	return writes
}

func (m *shadowMapImpl) Release() {
	for _, bnd := range m.cascadeBindings {
		bnd.Release()
	}
	m.cascadeBindings = nil
	if m.sampler != nil {
		m.sampler.Release()
		m.sampler = nil
	}
	m.target.Release()
	m.target = nil
}
