package renderer

import (
	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/effect"
	"github.com/cogentcore/webgpu/wgpu"
)

// composerImpl is the implementation of the Composer interface.
type composerImpl struct {
	// bnd holds the frame uniform (binding 0) and the compose uniform with
	// hemisphere and fog parameters (binding 1).
	bnd binding.Binding
}

// Composer owns the final phase of the frame: the full-screen compose pass
// that scales emissive, hemispheric ambient, and the HDR light accumulation by
// surface albedo, paints sky and fog over the background, and writes to the
// swapchain, plus the forward pass that draws non-deferred geometry on top
// with the scene depth attached read-only.
type Composer interface {
	// Binding returns the compose uniform binding (group 0 of the compose
	// pipeline). Matches effect.ComposeFrameLayout.
	//
	// Returns:
	//   - binding.Binding: the frame plus compose uniform binding
	Binding() binding.Binding

	// Writes stages the per-frame uploads for both compose uniforms.
	//
	// Parameters:
	//   - frame: the shared per-frame uniform values
	//   - data: the hemisphere and fog parameters
	//
	// Returns:
	//   - []binding.BufferWrite: the staged uniform writes
	Writes(frame light.GPUDeferredFrame, data light.GPUComposeData) []binding.BufferWrite

	// ComposePass returns the pass configuration for the full-screen
	// composition draw into the given swapchain attachment.
	//
	// Parameters:
	//   - target: the swapchain color attachment
	//
	// Returns:
	//   - PassConfig: the compose pass configuration
	ComposePass(target ColorAttachment) PassConfig

	// ForwardPass returns the pass configuration for non-deferred geometry:
	// the scene depth/stencil attached read-only so forward draws depth-test
	// against opaque geometry without writing. The target loads when the
	// compose pass already filled the swapchain this frame and clears when
	// the deferred phase was skipped.
	//
	// Parameters:
	//   - target: the swapchain color attachment
	//   - depthStencil: the main depth/stencil view from the geometry buffer
	//
	// Returns:
	//   - PassConfig: the forward pass configuration
	ForwardPass(target ColorAttachment, depthStencil *wgpu.TextureView) PassConfig

	// Release releases the uniform buffers and bind group.
	Release()
}

var _ Composer = &composerImpl{}

// NewComposer creates the compose uniform bind group.
//
// Parameters:
//   - r: the renderer that owns the GPU device
//
// Returns:
//   - Composer: the created composer
//   - error: an error if bind group creation fails
func NewComposer(r Renderer) (Composer, error) {
	c := &composerImpl{bnd: binding.NewBinding("composer")}
	frameSize := (&light.GPUDeferredFrame{}).Size()
	composeSize := (&light.GPUComposeData{}).Size()
	if err := r.InitBindGroup(c.bnd, effect.ComposeFrameLayout(frameSize, composeSize), nil, nil); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *composerImpl) Binding() binding.Binding {
	return c.bnd
}

func (c *composerImpl) Writes(frame light.GPUDeferredFrame, data light.GPUComposeData) []binding.BufferWrite {
	return []binding.BufferWrite{
		{Target: c.bnd, Binding: 0, Data: frame.Marshal()},
		{Target: c.bnd, Binding: 1, Data: data.Marshal()},
	}
}

func (c *composerImpl) ComposePass(target ColorAttachment) PassConfig {
	return PassConfig{
		Label:  "compose",
		Colors: []ColorAttachment{target},
	}
}

func (c *composerImpl) ForwardPass(target ColorAttachment, depthStencil *wgpu.TextureView) PassConfig {
	return PassConfig{
		Label:  "forward",
		Colors: []ColorAttachment{target},
		DepthStencil: &DepthStencilConfig{
			View:            depthStencil,
			DepthReadOnly:   true,
			HasStencil:      true,
			StencilReadOnly: true,
		},
	}
}

func (c *composerImpl) Release() {
	if c.bnd != nil {
		c.bnd.Release()
		c.bnd = nil
	}
}
