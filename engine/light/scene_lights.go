package light

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Per-type light budgets. The deferred lighting phase draws one full-screen pass
// per directional light and one stencil-marked volume per point/spot light, so
// these caps bound the per-frame pass count rather than a GPU buffer size.
const (
	// MaxDirectionalLights is the maximum number of directional lights a scene
	// may register.
	MaxDirectionalLights = 3
	// MaxPointLights is the maximum number of point lights a scene may register.
	MaxPointLights = 16
	// MaxSpotLights is the maximum number of spot lights a scene may register.
	MaxSpotLights = 16
)

// Fog describes the scene's distance fog, applied during final composition.
type Fog struct {
	// Enabled toggles fog blending in the composition pass.
	Enabled bool
	// Color is the fog RGB color fragments fade toward.
	Color mgl32.Vec3
	// Start is the view distance where fog begins, in world units.
	Start float32
	// End is the view distance where fog fully obscures geometry.
	End float32
}

// Hemisphere describes the two-tone ambient lighting applied during final
// composition: surfaces facing up receive SkyColor, surfaces facing down
// GroundColor, with a smooth blend between.
type Hemisphere struct {
	// SkyColor is the ambient RGB contribution for upward-facing surfaces.
	SkyColor mgl32.Vec3
	// GroundColor is the ambient RGB contribution for downward-facing surfaces.
	GroundColor mgl32.Vec3
	// Intensity is the scalar multiplier applied to the blended ambient term.
	Intensity float32
}

// sceneLightsImpl is the implementation of the SceneLights interface.
type sceneLightsImpl struct {
	mu          sync.Mutex
	directional []Light
	point       []Light
	spot        []Light
	hemisphere  Hemisphere
	fog         Fog
}

// SceneLights is the per-scene registry of light sources plus the scene-wide
// ambient and fog settings consumed by the composition pass.
//
// The registry enforces per-type budgets at registration time so the renderer
// never has to truncate mid-frame. All methods are safe for concurrent use.
type SceneLights interface {
	// AddLight registers a light. Fails when the per-type budget for the
	// light's type is exhausted.
	//
	// Parameters:
	//   - l: the light to register
	//
	// Returns:
	//   - error: nil on success, or an error naming the exhausted budget
	AddLight(l Light) error

	// RemoveLight unregisters a previously added light. Unknown lights are
	// ignored.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l Light)

	// Directional returns the enabled directional lights.
	//
	// Returns:
	//   - []Light: enabled directional lights in registration order
	Directional() []Light

	// Point returns the enabled point lights.
	//
	// Returns:
	//   - []Light: enabled point lights in registration order
	Point() []Light

	// Spot returns the enabled spot lights.
	//
	// Returns:
	//   - []Light: enabled spot lights in registration order
	Spot() []Light

	// ShadowCaster returns the first enabled directional light that casts
	// shadows, or nil when no light drives the shadow depth pass this frame.
	//
	// Returns:
	//   - Light: the shadow-casting directional light, or nil
	ShadowCaster() Light

	// Hemisphere returns the scene's hemispheric ambient settings.
	//
	// Returns:
	//   - Hemisphere: the current ambient configuration
	Hemisphere() Hemisphere

	// SetHemisphere replaces the scene's hemispheric ambient settings.
	//
	// Parameters:
	//   - h: the new ambient configuration
	SetHemisphere(h Hemisphere)

	// Fog returns the scene's fog settings.
	//
	// Returns:
	//   - Fog: the current fog configuration
	Fog() Fog

	// SetFog replaces the scene's fog settings.
	//
	// Parameters:
	//   - f: the new fog configuration
	SetFog(f Fog)
}

var _ SceneLights = &sceneLightsImpl{}

// NewSceneLights creates an empty SceneLights registry with any provided options
// applied. The default ambient is a neutral gray hemisphere and fog is disabled.
//
// Parameters:
//   - opts: variadic list of SceneLightsBuilderOption functions
//
// Returns:
//   - SceneLights: a new SceneLights instance
func NewSceneLights(opts ...SceneLightsBuilderOption) SceneLights {
	s := &sceneLightsImpl{
		hemisphere: Hemisphere{
			SkyColor:    mgl32.Vec3{0.15, 0.15, 0.18},
			GroundColor: mgl32.Vec3{0.05, 0.05, 0.04},
			Intensity:   1.0,
		},
		fog: Fog{
			Enabled: false,
			Color:   mgl32.Vec3{0.5, 0.6, 0.7},
			Start:   50,
			End:     200,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sceneLightsImpl) AddLight(l Light) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch l.Type() {
	case LightTypeDirectional:
		if len(s.directional) >= MaxDirectionalLights {
			return fmt.Errorf("light: directional budget exhausted (%d)", MaxDirectionalLights)
		}
		s.directional = append(s.directional, l)
	case LightTypePoint:
		if len(s.point) >= MaxPointLights {
			return fmt.Errorf("light: point budget exhausted (%d)", MaxPointLights)
		}
		s.point = append(s.point, l)
	case LightTypeSpot:
		if len(s.spot) >= MaxSpotLights {
			return fmt.Errorf("light: spot budget exhausted (%d)", MaxSpotLights)
		}
		s.spot = append(s.spot, l)
	default:
		return fmt.Errorf("light: unknown light type %d", l.Type())
	}
	return nil
}

func (s *sceneLightsImpl) RemoveLight(l Light) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remove := func(list []Light) []Light {
		for i, candidate := range list {
			if candidate == l {
				return append(list[:i], list[i+1:]...)
			}
		}
		return list
	}
	switch l.Type() {
	case LightTypeDirectional:
		s.directional = remove(s.directional)
	case LightTypePoint:
		s.point = remove(s.point)
	case LightTypeSpot:
		s.spot = remove(s.spot)
	}
}

func (s *sceneLightsImpl) Directional() []Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return enabledOnly(s.directional)
}

func (s *sceneLightsImpl) Point() []Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return enabledOnly(s.point)
}

func (s *sceneLightsImpl) Spot() []Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return enabledOnly(s.spot)
}

func (s *sceneLightsImpl) ShadowCaster() Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.directional {
		if l.Enabled() && l.CastsShadows() {
			return l
		}
	}
	return nil
}

func (s *sceneLightsImpl) Hemisphere() Hemisphere {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hemisphere
}

func (s *sceneLightsImpl) SetHemisphere(h Hemisphere) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hemisphere = h
}

func (s *sceneLightsImpl) Fog() Fog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fog
}

func (s *sceneLightsImpl) SetFog(f Fog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fog = f
}

// enabledOnly filters a light list down to enabled entries. Always returns a
// fresh slice so callers never alias registry state.
func enabledOnly(list []Light) []Light {
	out := make([]Light, 0, len(list))
	for _, l := range list {
		if l.Enabled() {
			out = append(out, l)
		}
	}
	return out
}
