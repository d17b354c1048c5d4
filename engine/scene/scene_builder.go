package scene

import (
	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithDrawables adds initial drawables to the scene's registry.
// Model drawables added this way are initialized lazily on first Add; options
// run before the scene renderer exists, so GPU init is deferred to Add calls
// made after construction. Drawables supplied here must already be initialized
// by the caller.
//
// Parameters:
//   - drawables: the drawables to register
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDrawables(drawables ...renderer.Drawable) SceneBuilderOption {
	return func(s *scene) {
		for _, d := range drawables {
			if d == nil {
				continue
			}
			s.registry[s.nextID] = d
			s.nextID++
		}
	}
}

// WithSceneLights supplies a pre-built light registry instead of the default
// empty one.
//
// Parameters:
//   - lights: the light registry to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSceneLights(lights light.SceneLights) SceneBuilderOption {
	return func(s *scene) {
		if lights != nil {
			s.lights = lights
		}
	}
}

// WithSceneRendererOptions forwards builder options to the SceneRenderer the
// scene creates, e.g. renderer.WithCascades or renderer.WithCullWorkers.
//
// Parameters:
//   - options: the SceneRenderer options to forward
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSceneRendererOptions(options ...renderer.SceneRendererBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.srOptions = append(s.srOptions, options...)
	}
}

// WithSceneRenderer supplies a pre-built SceneRenderer instead of letting the
// scene create one. Useful for tests and for sharing a renderer configuration
// across scenes.
//
// Parameters:
//   - sr: the SceneRenderer to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSceneRenderer(sr renderer.SceneRenderer) SceneBuilderOption {
	return func(s *scene) {
		if sr != nil {
			s.sr = sr
		}
	}
}
