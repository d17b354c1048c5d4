package renderer

import (
	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/effect"
)

// Drawable is anything the SceneRenderer can cull and draw: a mesh with its
// per-object bind group and enough metadata to route it through the deferred
// frame. Opaque deferred drawables go through the geometry buffer; transparent
// or non-deferred ones are drawn in the forward pass after composition.
type Drawable interface {
	// Mesh returns the Binding holding the vertex and index buffers.
	//
	// Returns:
	//   - binding.Binding: the mesh binding
	Mesh() binding.Binding

	// Object returns the Binding holding the per-object uniform, albedo
	// texture, and sampler. Its bind group must match effect.ObjectLayout.
	//
	// Returns:
	//   - binding.Binding: the per-object binding
	Object() binding.Binding

	// ObjectData returns the current per-object uniform contents. The
	// SceneRenderer uploads this into Object's buffer each frame.
	//
	// Returns:
	//   - effect.GPUObjectData: the per-object uniform values
	ObjectData() effect.GPUObjectData

	// BoundingSphere returns the world-space bounding sphere used for camera
	// and shadow cascade culling.
	//
	// Returns:
	//   - common.BoundingSphere: the world-space bounds
	BoundingSphere() common.BoundingSphere

	// CastsShadow reports whether this drawable renders into the cascade
	// shadow maps.
	//
	// Returns:
	//   - bool: true if the drawable casts shadows
	CastsShadow() bool

	// Transparent reports whether this drawable is drawn in the forward pass
	// instead of the geometry buffer.
	//
	// Returns:
	//   - bool: true for forward-pass drawables
	Transparent() bool

	// DeferredEnabled reports whether this drawable participates in the
	// deferred phase. Opaque drawables that opt out are forward-shaded
	// directly to the backbuffer after composition, the same path transparent
	// drawables take.
	//
	// Returns:
	//   - bool: true for geometry-buffer drawables
	DeferredEnabled() bool

	// Ready reports whether the drawable's GPU resources are initialized.
	// Drawables that are not ready are skipped without error.
	//
	// Returns:
	//   - bool: true when mesh buffers and the object bind group exist
	Ready() bool
}
