package model

import (
	"testing"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInitRenderer records the GPU init calls a model makes. The embedded
// interface panics on any other method, which keeps the fake honest about
// what Init actually touches.
type fakeInitRenderer struct {
	renderer.Renderer

	meshBindings   []binding.Binding
	indexCounts    []int
	textures       []common.TextureStagingData
	samplers       []common.SamplerStagingData
	bindGroupCalls int
}

func (f *fakeInitRenderer) InitMeshBuffers(bnd binding.Binding, vertexData, indexData []byte, indexCount int) error {
	f.meshBindings = append(f.meshBindings, bnd)
	f.indexCounts = append(f.indexCounts, indexCount)
	return nil
}

func (f *fakeInitRenderer) InitTextureView(bnd binding.Binding, bindingKey int, stagingData common.TextureStagingData) error {
	f.textures = append(f.textures, stagingData)
	return nil
}

func (f *fakeInitRenderer) InitSampler(bnd binding.Binding, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	f.samplers = append(f.samplers, samplerStagingData)
	return nil
}

func (f *fakeInitRenderer) InitBindGroup(bnd binding.Binding, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	f.bindGroupCalls++
	return nil
}

func triangleMesh() ([]renderer.Vertex, []uint32) {
	return []renderer.Vertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 1, 0}},
	}, []uint32{0, 1, 2}
}

func TestNewModel_Defaults(t *testing.T) {
	verts, idx := triangleMesh()
	m := NewModel(WithName("tri"), WithMesh(verts, idx))

	assert.Equal(t, "tri", m.Name())
	assert.Equal(t, mgl32.Vec3{}, m.Position())
	assert.Equal(t, mgl32.QuatIdent(), m.Rotation())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.Scale())
	assert.True(t, m.CastsShadow())
	assert.True(t, m.DeferredEnabled())
	assert.False(t, m.Transparent())
	assert.False(t, m.Ready())
	require.NotNil(t, m.Material())
	// Bounding radius defaults to the farthest vertex from the origin.
	assert.InDelta(t, 1.0, m.BoundingRadius(), 1e-6)
}

func TestComputeBoundingRadius(t *testing.T) {
	verts := []renderer.Vertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{3, 4, 0}},
		{Position: [3]float32{-1, 0, 0}},
	}

	assert.InDelta(t, 5.0, ComputeBoundingRadius(verts), 1e-6)
	assert.Equal(t, float32(0), ComputeBoundingRadius(nil))
}

func TestModel_ObjectData(t *testing.T) {
	verts, idx := triangleMesh()
	m := NewModel(
		WithMesh(verts, idx),
		WithPosition(mgl32.Vec3{1, 2, 3}),
		WithScale(mgl32.Vec3{2, 2, 2}),
		WithMaterial(material.NewMaterial(
			material.WithBaseColor([4]float32{0.5, 0.25, 0.125, 1}),
			material.WithEmissive([4]float32{1, 0, 0, 0}),
		)),
	)

	data := m.ObjectData()

	expected := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	assert.Equal(t, [16]float32(expected), data.Model)
	assert.Equal(t, [4]float32{0.5, 0.25, 0.125, 1}, data.BaseColor)
	assert.Equal(t, [4]float32{1, 0, 0, 0}, data.Emissive)
}

func TestModel_BoundingSphereScalesWithTransform(t *testing.T) {
	verts, idx := triangleMesh()
	m := NewModel(
		WithMesh(verts, idx),
		WithPosition(mgl32.Vec3{5, 0, 0}),
		WithScale(mgl32.Vec3{1, 3, 2}),
		WithBoundingRadius(2),
	)

	sphere := m.BoundingSphere()

	assert.Equal(t, mgl32.Vec3{5, 0, 0}, sphere.Center)
	// The radius is scaled by the largest axis scale to stay conservative
	// under non-uniform scaling.
	assert.InDelta(t, 6.0, sphere.Radius, 1e-6)
}

func TestModel_InitCreatesBindings(t *testing.T) {
	verts, idx := triangleMesh()
	m := NewModel(WithName("tri"), WithMesh(verts, idx))

	r := &fakeInitRenderer{}
	require.NoError(t, m.Init(r))

	assert.True(t, m.Ready())
	require.Len(t, r.meshBindings, 1)
	assert.Equal(t, []int{3}, r.indexCounts)
	assert.Equal(t, 1, r.bindGroupCalls)
	require.NotNil(t, m.Mesh())
	require.NotNil(t, m.Object())

	// Untextured models upload the shared white pixel.
	require.Len(t, r.textures, 1)
	assert.Equal(t, material.WhiteTexture(), r.textures[0])

	// A second Init is a no-op.
	require.NoError(t, m.Init(r))
	assert.Len(t, r.meshBindings, 1)
}

func TestModel_InitUsesMaterialSampler(t *testing.T) {
	verts, idx := triangleMesh()
	m := NewModel(
		WithMesh(verts, idx),
		WithMaterial(material.NewMaterial(
			material.WithAlbedoSampler(common.SamplerStagingData{
				AddressModeU: wgpu.AddressModeClampToEdge,
				MagFilter:    wgpu.FilterModeNearest,
			}),
		)),
	)

	r := &fakeInitRenderer{}
	require.NoError(t, m.Init(r))

	require.Len(t, r.samplers, 1)
	assert.Equal(t, wgpu.AddressModeClampToEdge, r.samplers[0].AddressModeU)
	assert.Equal(t, wgpu.FilterModeNearest, r.samplers[0].MagFilter)
}

func TestModel_InitWithoutMeshFails(t *testing.T) {
	m := NewModel(WithName("empty"))

	err := m.Init(&fakeInitRenderer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mesh data")
	assert.False(t, m.Ready())
}

func TestModel_DeferredOptOut(t *testing.T) {
	verts, idx := triangleMesh()
	m := NewModel(WithMesh(verts, idx), WithDeferred(false))

	assert.False(t, m.DeferredEnabled())

	m.SetDeferred(true)
	assert.True(t, m.DeferredEnabled())
}

func TestModel_TransparentFollowsMaterial(t *testing.T) {
	verts, idx := triangleMesh()
	m := NewModel(WithMesh(verts, idx))

	assert.False(t, m.Transparent())

	m.SetMaterial(material.NewMaterial(material.WithTransparency(true)))
	assert.True(t, m.Transparent())
}
