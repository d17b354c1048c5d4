package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTarget is an offscreen texture that render passes draw into and later
// passes sample. The geometry buffer attachments, the HDR accumulation buffer,
// and the main depth/stencil buffer are all RenderTargets.
type RenderTarget struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Format  wgpu.TextureFormat
	Width   uint32
	Height  uint32
}

// Release releases the GPU texture and view held by this target.
func (rt *RenderTarget) Release() {
	if rt == nil {
		return
	}
	if rt.View != nil {
		rt.View.Release()
		rt.View = nil
	}
	if rt.Texture != nil {
		rt.Texture.Release()
		rt.Texture = nil
	}
}

// DepthArrayTarget is a layered depth texture used for cascaded shadow maps.
// Each cascade renders into its own layer view; the lighting pass samples the
// whole texture through the array view with a comparison sampler.
type DepthArrayTarget struct {
	Texture *wgpu.Texture

	// ArrayView covers all layers as a 2d-array view for shader sampling.
	ArrayView *wgpu.TextureView
	// LayerViews are single-layer 2d views, one per cascade, used as the
	// depth attachment of each cascade's render pass.
	LayerViews []*wgpu.TextureView

	Format wgpu.TextureFormat
	Size   uint32
	Layers uint32
}

// Release releases the GPU texture and all views held by this target.
func (dt *DepthArrayTarget) Release() {
	if dt == nil {
		return
	}
	for i, v := range dt.LayerViews {
		if v != nil {
			v.Release()
			dt.LayerViews[i] = nil
		}
	}
	if dt.ArrayView != nil {
		dt.ArrayView.Release()
		dt.ArrayView = nil
	}
	if dt.Texture != nil {
		dt.Texture.Release()
		dt.Texture = nil
	}
}

// ColorAttachment describes one color attachment of a render pass.
type ColorAttachment struct {
	// View is the texture view to render into.
	View *wgpu.TextureView
	// ResolveTarget receives the resolved output when View is multisampled, nil otherwise.
	ResolveTarget *wgpu.TextureView
	// Load preserves the existing attachment contents instead of clearing.
	Load bool
	// ClearColor is the clear value used when Load is false.
	ClearColor wgpu.Color
}

// DepthStencilConfig describes the depth/stencil attachment of a render pass.
type DepthStencilConfig struct {
	// View is the depth or depth/stencil texture view to attach.
	View *wgpu.TextureView

	// DepthLoad preserves existing depth instead of clearing to DepthClearValue.
	DepthLoad bool
	// DepthStore keeps depth after the pass; depth-only shadow passes must store.
	DepthStore bool
	// DepthClearValue is the clear depth used when DepthLoad is false.
	DepthClearValue float32
	// DepthReadOnly attaches depth for testing without writes. Lighting passes
	// that depth-test proxy volumes against the scene set this.
	DepthReadOnly bool

	// HasStencil must be set when View has a stencil aspect, so the pass
	// configures stencil ops. Required for Depth24PlusStencil8 views.
	HasStencil bool
	// StencilLoad preserves existing stencil instead of clearing to StencilClearValue.
	StencilLoad bool
	// StencilClearValue is the clear stencil used when StencilLoad is false.
	StencilClearValue uint32
	// StencilReadOnly attaches stencil for testing without writes.
	StencilReadOnly bool
}

// PassConfig describes a render pass: its color attachments and optional
// depth/stencil attachment. A pass with no color attachments is valid and used
// for depth-only shadow rendering and stencil marking.
type PassConfig struct {
	Label        string
	Colors       []ColorAttachment
	DepthStencil *DepthStencilConfig
}
