package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/effect"
	"github.com/cogentcore/webgpu/wgpu"
)

// lightBufferImpl is the implementation of the LightBuffer interface.
type lightBufferImpl struct {
	hdr *RenderTarget

	// frame is group 0 of every lighting pass: the inverse view-projection
	// and camera data used to reconstruct world positions.
	frame binding.Binding

	// directional holds one uniform bind group per directional light slot,
	// each also referencing the shadow map array view and comparison sampler.
	directional []binding.Binding

	// volume holds one uniform bind group per point/spot light slot, shared
	// by the stencil mark and shade passes.
	volume []binding.Binding

	// hdrTexture exposes the accumulation target to the compose pass.
	hdrTexture binding.Binding
}

// LightBuffer owns the HDR light accumulation phase: the RGBA16Float target
// all lights add into, the shared frame uniform, per-light uniform bind
// groups, and the binding the compose pass reads the result through.
// Directional lights accumulate in one full-screen pass each; point and spot
// lights render stencil-marked proxy volumes in pass pairs.
type LightBuffer interface {
	// FrameBinding returns the shared per-frame uniform binding (group 0 of
	// the directional, volume shade, and compose-adjacent lighting passes).
	//
	// Returns:
	//   - binding.Binding: the frame uniform binding
	FrameBinding() binding.Binding

	// DirectionalBinding returns the uniform binding for one directional
	// light slot.
	//
	// Parameters:
	//   - idx: the slot index in [0, light.MaxDirectionalLights)
	//
	// Returns:
	//   - binding.Binding: the slot's binding
	DirectionalBinding(idx int) binding.Binding

	// VolumeBinding returns the uniform binding for one proxy volume light
	// slot. Point and spot lights share the slot pool.
	//
	// Parameters:
	//   - idx: the slot index in [0, light.MaxPointLights+light.MaxSpotLights)
	//
	// Returns:
	//   - binding.Binding: the slot's binding
	VolumeBinding(idx int) binding.Binding

	// HDRBinding returns the Binding exposing the accumulation texture to the
	// compose pass. Matches effect.HDRTextureLayout.
	//
	// Returns:
	//   - binding.Binding: the HDR texture binding
	HDRBinding() binding.Binding

	// DirectionalPass returns the pass configuration that clears the HDR
	// target and accumulates all directional lights additively. Runs every
	// frame even with zero lights so the compose pass reads defined contents.
	//
	// Returns:
	//   - PassConfig: the directional accumulation pass configuration
	DirectionalPass() PassConfig

	// VolumeStencilPass returns the pass configuration that marks the stencil
	// buffer where one light's proxy volume encloses scene geometry. Depth is
	// attached read-only; stencil clears to 0 at pass start.
	//
	// Parameters:
	//   - depthStencil: the main depth/stencil view from the geometry buffer
	//
	// Returns:
	//   - PassConfig: the stencil mark pass configuration
	VolumeStencilPass(depthStencil *wgpu.TextureView) PassConfig

	// VolumeShadePass returns the pass configuration that shades the pixels
	// the preceding stencil pass marked, adding into the HDR target. Depth is
	// attached read-only; stencil is loaded and writable so the shade draw
	// resets marked values through its pass op.
	//
	// Parameters:
	//   - depthStencil: the main depth/stencil view from the geometry buffer
	//
	// Returns:
	//   - PassConfig: the volume shade pass configuration
	VolumeShadePass(depthStencil *wgpu.TextureView) PassConfig

	// Resize recreates the HDR target and its compose-facing binding at a new
	// size. Contents are discarded.
	//
	// Parameters:
	//   - r: the renderer that owns the GPU device
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the target or bind group fails to create
	Resize(r Renderer, width, height uint32) error

	// Release releases the HDR target and all bindings.
	Release()
}

var _ LightBuffer = &lightBufferImpl{}

// NewLightBuffer creates the HDR accumulation target and all lighting-phase
// bind groups. The shadow map provides the array view and comparison sampler
// referenced by every directional light slot.
//
// Parameters:
//   - r: the renderer that owns the GPU device
//   - width: accumulation target width in pixels
//   - height: accumulation target height in pixels
//   - shadowMap: the cascade shadow map sampled by directional lights
//
// Returns:
//   - LightBuffer: the created light buffer
//   - error: an error if any GPU resource fails to create
func NewLightBuffer(r Renderer, width, height uint32, shadowMap ShadowMap) (LightBuffer, error) {
	lb := &lightBufferImpl{}

	if err := lb.createHDR(r, width, height); err != nil {
		return nil, err
	}

	frameSize := (&light.GPUDeferredFrame{}).Size()
	lb.frame = binding.NewBinding("deferred frame")
	if err := r.InitBindGroup(lb.frame, effect.FrameLayout(frameSize), nil, nil); err != nil {
		lb.Release()
		return nil, err
	}

	dirSize := (&light.GPUDirectionalLight{}).Size()
	for i := 0; i < light.MaxDirectionalLights; i++ {
		bnd := binding.NewBinding(fmt.Sprintf("directional light %d", i))
		bnd.SetTextureView(1, shadowMap.ArrayView())
		bnd.SetSampler(2, shadowMap.Sampler())
		if err := r.InitBindGroup(bnd, effect.DirectionalLightLayout(dirSize), nil, nil); err != nil {
			lb.Release()
			return nil, err
		}
		lb.directional = append(lb.directional, bnd)
	}

	volSize := (&light.GPUVolumeLight{}).Size()
	for i := 0; i < light.MaxPointLights+light.MaxSpotLights; i++ {
		bnd := binding.NewBinding(fmt.Sprintf("volume light %d", i))
		if err := r.InitBindGroup(bnd, effect.VolumeLightLayout(volSize), nil, nil); err != nil {
			lb.Release()
			return nil, err
		}
		lb.volume = append(lb.volume, bnd)
	}

	return lb, nil
}

func (lb *lightBufferImpl) createHDR(r Renderer, width, height uint32) error {
	var err error
	if lb.hdr, err = r.CreateColorTarget("hdr accumulation", width, height, effect.FormatHDR); err != nil {
		return err
	}
	lb.hdrTexture = binding.NewBinding("hdr texture")
	lb.hdrTexture.SetTextureView(0, lb.hdr.View)
	return r.InitBindGroup(lb.hdrTexture, effect.HDRTextureLayout(), nil, nil)
}

func (lb *lightBufferImpl) FrameBinding() binding.Binding {
	return lb.frame
}

func (lb *lightBufferImpl) DirectionalBinding(idx int) binding.Binding {
	return lb.directional[idx]
}

func (lb *lightBufferImpl) VolumeBinding(idx int) binding.Binding {
	return lb.volume[idx]
}

func (lb *lightBufferImpl) HDRBinding() binding.Binding {
	return lb.hdrTexture
}

func (lb *lightBufferImpl) DirectionalPass() PassConfig {
	return PassConfig{
		Label: "light accumulation",
		Colors: []ColorAttachment{
			{View: lb.hdr.View}, // clear to black, lights add on top
		},
	}
}

func (lb *lightBufferImpl) VolumeStencilPass(depthStencil *wgpu.TextureView) PassConfig {
	return PassConfig{
		Label: "volume stencil",
		DepthStencil: &DepthStencilConfig{
			View:          depthStencil,
			DepthReadOnly: true,
			HasStencil:    true,
		},
	}
}

func (lb *lightBufferImpl) VolumeShadePass(depthStencil *wgpu.TextureView) PassConfig {
	return PassConfig{
		Label: "volume shade",
		Colors: []ColorAttachment{
			{View: lb.hdr.View, Load: true},
		},
		DepthStencil: &DepthStencilConfig{
			View:          depthStencil,
			DepthReadOnly: true,
			HasStencil:    true,
			StencilLoad:   true, // keep the marks from the stencil pass
		},
	}
}

func (lb *lightBufferImpl) Resize(r Renderer, width, height uint32) error {
	if lb.hdrTexture != nil {
		lb.hdrTexture.Release()
		lb.hdrTexture = nil
	}
	lb.hdr.Release()
	lb.hdr = nil
	return lb.createHDR(r, width, height)
}

func (lb *lightBufferImpl) Release() {
	if lb.frame != nil {
		lb.frame.Release()
		lb.frame = nil
	}
	for _, bnd := range lb.directional {
		bnd.Release()
	}
	lb.directional = nil
	for _, bnd := range lb.volume {
		bnd.Release()
	}
	lb.volume = nil
	if lb.hdrTexture != nil {
		lb.hdrTexture.Release()
		lb.hdrTexture = nil
	}
	lb.hdr.Release()
	lb.hdr = nil
}
