package light

import "github.com/go-gl/mathgl/mgl32"

// SceneLightsBuilderOption is a function that configures a SceneLights instance
// during construction.
type SceneLightsBuilderOption func(*sceneLightsImpl)

// WithHemisphere is an option builder that sets the hemispheric ambient lighting
// applied during final composition.
//
// Parameters:
//   - sky: ambient RGB for upward-facing surfaces
//   - ground: ambient RGB for downward-facing surfaces
//   - intensity: scalar multiplier on the blended ambient term
//
// Returns:
//   - SceneLightsBuilderOption: a function that applies the hemisphere option to a sceneLightsImpl
func WithHemisphere(sky, ground mgl32.Vec3, intensity float32) SceneLightsBuilderOption {
	return func(s *sceneLightsImpl) {
		s.hemisphere = Hemisphere{SkyColor: sky, GroundColor: ground, Intensity: intensity}
	}
}

// WithFog is an option builder that enables distance fog with the given color and
// range. Fragments closer than start are unfogged; fragments beyond end take the
// fog color entirely.
//
// Parameters:
//   - color: the fog RGB color
//   - start: view distance where fog begins, in world units
//   - end: view distance where fog saturates
//
// Returns:
//   - SceneLightsBuilderOption: a function that applies the fog option to a sceneLightsImpl
func WithFog(color mgl32.Vec3, start, end float32) SceneLightsBuilderOption {
	return func(s *sceneLightsImpl) {
		s.fog = Fog{Enabled: true, Color: color, Start: start, End: end}
	}
}
