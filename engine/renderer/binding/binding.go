package binding

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// binding is the unexported implementation of Binding.
type binding struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no
	// longer needed. They are populated by the Renderer during initialization, not
	// by user-creation.

	// bindGroup is the GPU bind group created for this binding, or nil if not initialized.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the GPU bind group layout created for this binding, or nil if not initialized.
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the GPU buffers created for this binding, keyed by binding index.
	buffers map[int]*wgpu.Buffer
	// textureViews holds the GPU texture views for this binding, keyed by binding index.
	textureViews map[int]*wgpu.TextureView
	// samplers holds the GPU samplers for this binding, keyed by binding index.
	samplers map[int]*wgpu.Sampler

	// The following fields stage mesh geometry for draw calls.

	// vertexBuffer is the GPU vertex buffer, or nil if not initialized.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the GPU index buffer, or nil if not initialized.
	indexBuffer *wgpu.Buffer
	// indexCount is the number of indices for DrawIndexed calls.
	indexCount int
}

// Binding describes a component's GPU binding requirements and owns the GPU
// resources created to satisfy them: a bind group with its layout, uniform or
// storage buffers, texture views and samplers, and optionally a mesh's vertex
// and index buffers.
//
// Usage pattern:
//  1. Component creates a Binding with a debug label
//  2. Renderer.InitBindGroup / InitMeshBuffers create GPU resources onto it
//  3. Renderer.WriteBuffers streams per-frame uniform data into its buffers
//  4. Draw calls reference it for bind groups and geometry
//
// Texture views stored on a Binding may be owned elsewhere (e.g. render target
// views owned by the G-buffer); owned views are the ones created by
// Renderer.InitTextureView. Release only releases buffers, bind group, and
// layout — never texture views or samplers it did not create.
type Binding interface {
	// Release releases the GPU buffers, bind group, and bind group layout held
	// by this binding. Texture views and samplers are left untouched; their
	// owners release them.
	Release()

	// Label returns the debug label for this binding.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding, or nil if
	// GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout, or nil if GPU
	// resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the GPU buffer at a binding index, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the GPU texture view at a binding index, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view or nil
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the GPU sampler at a binding index, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler or nil
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetBindGroup stores the bind group after GPU initialization.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the bind group layout after GPU initialization.
	//
	// Parameters:
	//   - bgl: the created bind group layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores a GPU buffer at a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTextureView stores a GPU texture view at a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tv: the texture view to store
	SetTextureView(binding int, tv *wgpu.TextureView)

	// SetSampler stores a GPU sampler at a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - s: the sampler to store
	SetSampler(binding int, s *wgpu.Sampler)

	// SetVertexBuffer stores the GPU vertex buffer after creation.
	//
	// Parameters:
	//   - buf: the created vertex buffer
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the GPU index buffer after creation.
	//
	// Parameters:
	//   - buf: the created index buffer
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount sets the number of indices for draw calls.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)
}

// Compile-time check that binding implements Binding
var _ Binding = &binding{}

// NewBinding creates a new Binding with the given debug label.
//
// Parameters:
//   - label: a debug label used for GPU resource labels and profiling
//
// Returns:
//   - Binding: a new empty Binding
func NewBinding(label string) Binding {
	return &binding{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
}

func (b *binding) Label() string {
	return b.label
}

func (b *binding) BindGroup() *wgpu.BindGroup {
	return b.bindGroup
}

func (b *binding) BindGroupLayout() *wgpu.BindGroupLayout {
	return b.bindGroupLayout
}

func (b *binding) Buffer(binding int) *wgpu.Buffer {
	return b.buffers[binding]
}

func (b *binding) TextureView(binding int) *wgpu.TextureView {
	return b.textureViews[binding]
}

func (b *binding) Sampler(binding int) *wgpu.Sampler {
	return b.samplers[binding]
}

func (b *binding) VertexBuffer() *wgpu.Buffer {
	return b.vertexBuffer
}

func (b *binding) IndexBuffer() *wgpu.Buffer {
	return b.indexBuffer
}

func (b *binding) IndexCount() int {
	return b.indexCount
}

func (b *binding) SetBindGroup(bg *wgpu.BindGroup) {
	b.bindGroup = bg
}

func (b *binding) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	b.bindGroupLayout = bgl
}

func (b *binding) SetBuffer(binding int, buf *wgpu.Buffer) {
	b.buffers[binding] = buf
}

func (b *binding) SetTextureView(binding int, tv *wgpu.TextureView) {
	b.textureViews[binding] = tv
}

func (b *binding) SetSampler(binding int, s *wgpu.Sampler) {
	b.samplers[binding] = s
}

func (b *binding) SetVertexBuffer(buf *wgpu.Buffer) {
	b.vertexBuffer = buf
}

func (b *binding) SetIndexBuffer(buf *wgpu.Buffer) {
	b.indexBuffer = buf
}

func (b *binding) Release() {
	for i, buf := range b.buffers {
		if buf != nil {
			buf.Release()
			delete(b.buffers, i)
		}
	}
	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
	if b.vertexBuffer != nil {
		b.vertexBuffer.Release()
		b.vertexBuffer = nil
	}
	if b.indexBuffer != nil {
		b.indexBuffer.Release()
		b.indexBuffer = nil
	}
}

func (b *binding) SetIndexCount(count int) {
	b.indexCount = count
}
