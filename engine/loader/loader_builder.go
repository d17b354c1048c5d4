package loader

import (
	"github.com/Carmen-Shannon/lumen-go/engine/model"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
)

// LoaderBuilderOption is a functional option for configuring a Loader.
// Use the With* functions to create options.
type LoaderBuilderOption func(*loaderImpl)

// WithRenderer attaches a renderer so loaded models have their GPU resources
// initialized immediately. Without a renderer, initialization is deferred to
// scene registration.
//
// Parameters:
//   - r: the renderer to attach
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) LoaderBuilderOption {
	return func(l *loaderImpl) {
		l.renderer = r
	}
}

// WithModel seeds the loader cache with a pre-built model, keyed by the
// model's name. Useful for procedural geometry that should be retrievable
// alongside loaded assets.
//
// Parameters:
//   - m: the model to cache
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithModel(m model.Model) LoaderBuilderOption {
	return func(l *loaderImpl) {
		if m != nil {
			l.cache[m.Name()] = m
		}
	}
}
