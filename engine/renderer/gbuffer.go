package renderer

import (
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/effect"
	"github.com/cogentcore/webgpu/wgpu"
)

// gBufferImpl is the implementation of the GBuffer interface.
type gBufferImpl struct {
	albedo       *RenderTarget
	normal       *RenderTarget
	depthChannel *RenderTarget
	extra        *RenderTarget
	depthStencil *RenderTarget

	// textures is the bind group the lighting and compose passes use to read
	// the four color attachments with textureLoad.
	textures binding.Binding

	width  uint32
	height uint32
}

// GBuffer owns the geometry buffer: four color attachments (albedo, world
// normal, clip-space depth mirrored into a loadable channel, emissive) plus
// the main depth/stencil buffer. The geometry pass renders into all five; the
// lighting and compose passes read the color attachments through a single
// bind group and depth-test proxy volumes against the depth/stencil view.
type GBuffer interface {
	// Width returns the buffer width in pixels.
	//
	// Returns:
	//   - uint32: the width
	Width() uint32

	// Height returns the buffer height in pixels.
	//
	// Returns:
	//   - uint32: the height
	Height() uint32

	// Textures returns the Binding whose bind group exposes the four color
	// attachments to lighting and compose shaders. Matches
	// effect.GBufferTexturesLayout.
	//
	// Returns:
	//   - binding.Binding: the G-buffer textures binding
	Textures() binding.Binding

	// DepthStencilView returns the main depth/stencil attachment view. Light
	// volume passes attach it read-only for depth testing and writable for
	// stencil marking.
	//
	// Returns:
	//   - *wgpu.TextureView: the depth/stencil view
	DepthStencilView() *wgpu.TextureView

	// GeometryPass returns the pass configuration for the geometry phase:
	// all four color attachments cleared, depth cleared to 1 and stored for
	// the lighting phase, stencil cleared to 0.
	//
	// Returns:
	//   - PassConfig: the geometry pass configuration
	GeometryPass() PassConfig

	// Resize recreates all attachments and the textures bind group at a new
	// size. Contents are discarded.
	//
	// Parameters:
	//   - r: the renderer that owns the GPU device
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if any target or the bind group fails to create
	Resize(r Renderer, width, height uint32) error

	// Release releases all GPU textures, views, and the textures bind group.
	Release()
}

var _ GBuffer = &gBufferImpl{}

// NewGBuffer creates the geometry buffer attachments and the textures bind
// group at the given size.
//
// Parameters:
//   - r: the renderer that owns the GPU device
//   - width: buffer width in pixels
//   - height: buffer height in pixels
//
// Returns:
//   - GBuffer: the created geometry buffer
//   - error: an error if any target or the bind group fails to create
func NewGBuffer(r Renderer, width, height uint32) (GBuffer, error) {
	g := &gBufferImpl{}
	if err := g.create(r, width, height); err != nil {
		g.Release()
		return nil, err
	}
	return g, nil
}

func (g *gBufferImpl) create(r Renderer, width, height uint32) error {
	var err error
	if g.albedo, err = r.CreateColorTarget("gbuffer albedo", width, height, effect.FormatAlbedo); err != nil {
		return err
	}
	if g.normal, err = r.CreateColorTarget("gbuffer normal", width, height, effect.FormatNormal); err != nil {
		return err
	}
	if g.depthChannel, err = r.CreateColorTarget("gbuffer depth channel", width, height, effect.FormatDepthChannel); err != nil {
		return err
	}
	if g.extra, err = r.CreateColorTarget("gbuffer extra", width, height, effect.FormatExtra); err != nil {
		return err
	}
	if g.depthStencil, err = r.CreateDepthStencilTarget("gbuffer depth stencil", width, height); err != nil {
		return err
	}

	g.textures = binding.NewBinding("gbuffer textures")
	g.textures.SetTextureView(0, g.albedo.View)
	g.textures.SetTextureView(1, g.normal.View)
	g.textures.SetTextureView(2, g.depthChannel.View)
	g.textures.SetTextureView(3, g.extra.View)
	if err = r.InitBindGroup(g.textures, effect.GBufferTexturesLayout(), nil, nil); err != nil {
		return err
	}

	g.width = width
	g.height = height
	return nil
}

func (g *gBufferImpl) Width() uint32 {
	return g.width
}

func (g *gBufferImpl) Height() uint32 {
	return g.height
}

func (g *gBufferImpl) Textures() binding.Binding {
	return g.textures
}

func (g *gBufferImpl) DepthStencilView() *wgpu.TextureView {
	if g.depthStencil == nil {
		return nil
	}
	return g.depthStencil.View
}

func (g *gBufferImpl) GeometryPass() PassConfig {
	// The depth channel clears to 1 so unwritten pixels read as background
	// (depth >= 1) in the lighting and compose shaders. The other attachments
	// clear to zero; compose paints the actual background color.
	return PassConfig{
		Label: "gbuffer",
		Colors: []ColorAttachment{
			{View: g.albedo.View},
			{View: g.normal.View},
			{View: g.depthChannel.View, ClearColor: wgpu.Color{R: 1}},
			{View: g.extra.View},
		},
		DepthStencil: &DepthStencilConfig{
			View:            g.depthStencil.View,
			DepthStore:      true, // light volumes depth-test against it later
			DepthClearValue: 1,
			HasStencil:      true,
		},
	}
}

func (g *gBufferImpl) Resize(r Renderer, width, height uint32) error {
	g.Release()
	return g.create(r, width, height)
}

func (g *gBufferImpl) Release() {
	if g.textures != nil {
		g.textures.Release()
		g.textures = nil
	}
	g.albedo.Release()
	g.normal.Release()
	g.depthChannel.Release()
	g.extra.Release()
	g.depthStencil.Release()
	g.albedo, g.normal, g.depthChannel, g.extra, g.depthStencil = nil, nil, nil, nil, nil
}
