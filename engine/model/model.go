package model

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/effect"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	mu *sync.Mutex

	name string

	vertices []renderer.Vertex
	indices  []uint32

	mat material.Material

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	boundingRadius float32
	castsShadow    bool
	deferred       bool

	mesh   binding.Binding
	object binding.Binding
	ready  bool
}

// Model is a placeable mesh instance: geometry, a material, and a world
// transform. It implements renderer.Drawable, so once initialized it can be
// handed to the SceneRenderer, which culls it against the camera frustum,
// renders it into the shadow cascades and the geometry buffer (or the forward
// pass when the material is transparent), and uploads its per-object uniform
// each frame.
//
// Init must be called before the model is drawn; until then Ready reports
// false and the SceneRenderer skips it.
type Model interface {
	renderer.Drawable

	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Material retrieves the model's material.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// Position retrieves the world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation retrieves the world-space orientation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation quaternion
	Rotation() mgl32.Quat

	// Scale retrieves the per-axis scale factors.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// BoundingRadius returns the local-space bounding sphere radius, measured
	// as the maximum vertex distance from the origin before scaling.
	//
	// Returns:
	//   - float32: the local bounding radius
	BoundingRadius() float32

	// Init creates the model's GPU resources: vertex and index buffers, the
	// albedo texture (or a 1x1 white fallback when the material is untextured),
	// a sampler, and the per-object bind group. Safe to call once; subsequent
	// calls are no-ops.
	//
	// Parameters:
	//   - r: the renderer used to create GPU resources
	//
	// Returns:
	//   - error: an error if any GPU resource creation fails
	Init(r renderer.Renderer) error

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - position: the position to set
	SetPosition(position mgl32.Vec3)

	// SetRotation sets the world-space orientation.
	//
	// Parameters:
	//   - rotation: the orientation quaternion to set
	SetRotation(rotation mgl32.Quat)

	// SetScale sets the per-axis scale factors.
	//
	// Parameters:
	//   - scale: the scale to set
	SetScale(scale mgl32.Vec3)

	// SetMaterial replaces the model's material. Base color, emissive, and
	// transparency changes take effect next frame; a new albedo texture only
	// takes effect before Init.
	//
	// Parameters:
	//   - mat: the material to set
	SetMaterial(mat material.Material)

	// SetCastsShadow sets whether the model renders into the shadow cascades.
	//
	// Parameters:
	//   - castsShadow: true to cast shadows
	SetCastsShadow(castsShadow bool)

	// SetDeferred sets whether the model renders through the geometry buffer.
	// Opaque models that opt out are forward-shaded after composition.
	//
	// Parameters:
	//   - deferred: true for the deferred path
	SetDeferred(deferred bool)

	// Release frees the model's GPU resources. The model reports not ready
	// afterward and must be re-initialized before drawing again.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// The bounding radius is computed from the mesh vertices unless overridden
// with WithBoundingRadius.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		mu:          &sync.Mutex{},
		rotation:    mgl32.QuatIdent(),
		scale:       mgl32.Vec3{1, 1, 1},
		castsShadow: true,
		deferred:    true,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.mat == nil {
		m.mat = material.NewMaterial()
	}
	if m.boundingRadius == 0 {
		m.boundingRadius = ComputeBoundingRadius(m.vertices)
	}
	return m
}

// ComputeBoundingRadius returns the maximum vertex distance from the local
// origin, used as a conservative bounding sphere radius for culling.
//
// Parameters:
//   - vertices: the mesh vertices to measure
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []renderer.Vertex) float32 {
	var maxSq float32
	for _, v := range vertices {
		d := v.Position[0]*v.Position[0] + v.Position[1]*v.Position[1] + v.Position[2]*v.Position[2]
		if d > maxSq {
			maxSq = d
		}
	}
	return math32.Sqrt(maxSq)
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Material() material.Material {
	return m.mat
}

func (m *model) Position() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *model) Rotation() mgl32.Quat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rotation
}

func (m *model) Scale() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scale
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Init(r renderer.Renderer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ready {
		return nil
	}
	if len(m.vertices) == 0 || len(m.indices) == 0 {
		return fmt.Errorf("model %q has no mesh data", m.name)
	}

	mesh := binding.NewBinding(fmt.Sprintf("%s mesh", m.name))
	if err := r.InitMeshBuffers(mesh, renderer.MarshalVertices(m.vertices), renderer.MarshalIndices(m.indices), len(m.indices)); err != nil {
		return fmt.Errorf("failed to init mesh buffers for model %q: %w", m.name, err)
	}

	object := binding.NewBinding(fmt.Sprintf("%s object", m.name))
	albedo := material.WhiteTexture()
	if tex := m.mat.AlbedoTexture(); tex != nil {
		albedo = *tex
	}
	if err := r.InitTextureView(object, 1, albedo); err != nil {
		return fmt.Errorf("failed to init albedo texture for model %q: %w", m.name, err)
	}
	sampler := defaultSampler()
	if s := m.mat.AlbedoSampler(); s != nil {
		sampler = *s
	}
	if err := r.InitSampler(object, 2, sampler); err != nil {
		return fmt.Errorf("failed to init sampler for model %q: %w", m.name, err)
	}
	if err := r.InitBindGroup(object, effect.ObjectLayout(), nil, nil); err != nil {
		return fmt.Errorf("failed to init object bind group for model %q: %w", m.name, err)
	}

	m.mesh = mesh
	m.object = object
	m.ready = true
	return nil
}

func (m *model) Mesh() binding.Binding {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mesh
}

func (m *model) Object() binding.Binding {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.object
}

func (m *model) ObjectData() effect.GPUObjectData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return effect.GPUObjectData{
		Model:     [16]float32(m.modelMatrix()),
		BaseColor: m.mat.BaseColor(),
		Emissive:  m.mat.Emissive(),
	}
}

func (m *model) BoundingSphere() common.BoundingSphere {
	m.mu.Lock()
	defer m.mu.Unlock()
	return common.BoundingSphere{
		Center: m.position,
		Radius: m.boundingRadius * max(m.scale.X(), m.scale.Y(), m.scale.Z()),
	}
}

func (m *model) CastsShadow() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.castsShadow
}

func (m *model) Transparent() bool {
	return m.mat.Transparent()
}

func (m *model) DeferredEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deferred
}

func (m *model) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

func (m *model) SetPosition(position mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = position
}

func (m *model) SetRotation(rotation mgl32.Quat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotation = rotation
}

func (m *model) SetScale(scale mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scale = scale
}

func (m *model) SetMaterial(mat material.Material) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mat != nil {
		m.mat = mat
	}
}

func (m *model) SetCastsShadow(castsShadow bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.castsShadow = castsShadow
}

func (m *model) SetDeferred(deferred bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deferred = deferred
}

func (m *model) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mesh != nil {
		m.mesh.Release()
		m.mesh = nil
	}
	if m.object != nil {
		m.object.Release()
		m.object = nil
	}
	m.ready = false
}

// modelMatrix builds the world transform as translate * rotate * scale.
// Caller must hold the mutex.
func (m *model) modelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(m.position.X(), m.position.Y(), m.position.Z()).
		Mul4(m.rotation.Mat4()).
		Mul4(mgl32.Scale3D(m.scale.X(), m.scale.Y(), m.scale.Z()))
}

func defaultSampler() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}
