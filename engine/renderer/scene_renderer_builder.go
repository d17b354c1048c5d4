package renderer

import (
	"github.com/Carmen-Shannon/lumen-go/engine/profiler"
	"github.com/Carmen-Shannon/lumen-go/engine/shadow"
)

// SceneRendererBuilderOption is a functional option for configuring a
// SceneRenderer during creation.
type SceneRendererBuilderOption func(*sceneRendererImpl)

// WithCascades supplies a custom cascade set instead of the default built
// from DefaultCascadeRanges. The shadow map is sized from this set.
//
// Parameters:
//   - cascades: the cascade set to use
//
// Returns:
//   - SceneRendererBuilderOption: the option to apply
func WithCascades(cascades shadow.CascadeSet) SceneRendererBuilderOption {
	return func(s *sceneRendererImpl) {
		if cascades != nil {
			s.cascades = cascades
		}
	}
}

// WithCullWorkers overrides the number of worker goroutines used for the
// parallel CPU frustum cull. Defaults to NumCPU-1 with a minimum of 1.
//
// Parameters:
//   - workers: the worker count (values below 1 are clamped to 1)
//
// Returns:
//   - SceneRendererBuilderOption: the option to apply
func WithCullWorkers(workers int) SceneRendererBuilderOption {
	return func(s *sceneRendererImpl) {
		s.cullWorkers = max(workers, 1)
	}
}

// WithFrameCollector attaches a profiler collector that receives every
// frame's pass trace and draw-call counts. Without one, tracing is disabled
// and costs nothing per frame.
//
// Parameters:
//   - c: the collector to report passes to
//
// Returns:
//   - SceneRendererBuilderOption: the option to apply
func WithFrameCollector(c profiler.Collector) SceneRendererBuilderOption {
	return func(s *sceneRendererImpl) {
		s.collector = c
	}
}
