package model

import (
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
// The name is used for GPU debug labels on the model's buffers and bind group.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh is an option builder that sets the model's geometry.
//
// Parameters:
//   - vertices: the mesh vertices
//   - indices: the triangle list indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(vertices []renderer.Vertex, indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.vertices = vertices
		m.indices = indices
	}
}

// WithMaterial is an option builder that sets the model's material.
// Models without a material default to an opaque white one.
//
// Parameters:
//   - mat: the material to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the material option to a model
func WithMaterial(mat material.Material) ModelBuilderOption {
	return func(m *model) {
		m.mat = mat
	}
}

// WithPosition is an option builder that sets the model's world-space position.
//
// Parameters:
//   - position: the position to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the position option to a model
func WithPosition(position mgl32.Vec3) ModelBuilderOption {
	return func(m *model) {
		m.position = position
	}
}

// WithRotation is an option builder that sets the model's orientation.
//
// Parameters:
//   - rotation: the orientation quaternion to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the rotation option to a model
func WithRotation(rotation mgl32.Quat) ModelBuilderOption {
	return func(m *model) {
		m.rotation = rotation
	}
}

// WithScale is an option builder that sets the model's per-axis scale factors.
//
// Parameters:
//   - scale: the scale to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the scale option to a model
func WithScale(scale mgl32.Vec3) ModelBuilderOption {
	return func(m *model) {
		m.scale = scale
	}
}

// WithBoundingRadius is an option builder that manually sets the local bounding
// sphere radius. Use this to override the auto-computed value from
// ComputeBoundingRadius when a manually tuned conservative bound is preferred.
//
// Parameters:
//   - radius: the bounding radius to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounding radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}

// WithCastsShadow is an option builder that sets whether the model renders
// into the shadow cascades. Defaults to true.
//
// Parameters:
//   - castsShadow: true to cast shadows
//
// Returns:
//   - ModelBuilderOption: a function that applies the shadow option to a model
func WithCastsShadow(castsShadow bool) ModelBuilderOption {
	return func(m *model) {
		m.castsShadow = castsShadow
	}
}

// WithDeferred is an option builder that sets whether the model renders
// through the geometry buffer. Defaults to true; opaque models that opt out
// are forward-shaded after composition.
//
// Parameters:
//   - deferred: true for the deferred path
//
// Returns:
//   - ModelBuilderOption: a function that applies the deferred option to a model
func WithDeferred(deferred bool) ModelBuilderOption {
	return func(m *model) {
		m.deferred = deferred
	}
}
