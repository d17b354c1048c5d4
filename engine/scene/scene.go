package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/lumen-go/engine/camera"
	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/model"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
)

// Scene manages a registry of Drawables and a SceneLights registry, with a
// Camera and SceneRenderer for rendering. Each RenderFrame call updates the
// camera, snapshots the drawable list, and hands both to the SceneRenderer,
// which culls, draws the shadow cascades and geometry buffer, accumulates
// lighting, and composes the frame to the swapchain.
// Scenes can be hot-swapped via the Active flag to switch between different
// views or levels. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// SceneRenderer returns the deferred frame renderer driving this scene.
	//
	// Returns:
	//   - renderer.SceneRenderer: the scene renderer
	SceneRenderer() renderer.SceneRenderer

	// Count returns the number of Drawables in the scene's registry.
	//
	// Returns:
	//   - int: count of registered Drawables
	Count() int

	// Add registers a Drawable with the scene and assigns it an ID. If the
	// drawable is a model.Model that has not been initialized yet, its GPU
	// resources are created first.
	//
	// Panics if GPU resource creation for a model fails.
	//
	// Parameters:
	//   - d: the Drawable to add
	//
	// Returns:
	//   - uint64: the assigned drawable ID
	Add(d renderer.Drawable) uint64

	// Get retrieves a registered Drawable by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the drawable's unique ID
	//
	// Returns:
	//   - renderer.Drawable: the drawable or nil
	Get(id uint64) renderer.Drawable

	// Remove removes a Drawable from the registry by ID.
	// Does not release the drawable's GPU resources.
	//
	// Parameters:
	//   - id: the drawable's unique ID
	Remove(id uint64)

	// Clear removes all Drawables from the scene.
	// Does not release GPU resources.
	Clear()

	// Lights returns the scene's light registry. Lights, hemispheric ambient,
	// and fog settings added here are consumed during RenderFrame.
	//
	// Returns:
	//   - light.SceneLights: the light registry
	Lights() light.SceneLights

	// AddLight adds a light source to the scene's light registry.
	//
	// Parameters:
	//   - l: the Light to add
	//
	// Returns:
	//   - error: an error if the per-type light budget is exceeded
	AddLight(l light.Light) error

	// RemoveLight removes a light source from the scene's light registry.
	//
	// Parameters:
	//   - l: the Light to remove
	RemoveLight(l light.Light)

	// RenderFrame updates the camera from its controller and renders one
	// complete deferred frame: shadow cascades, geometry buffer, light
	// accumulation, composition, and the forward pass for transparents.
	//
	// Returns:
	//   - error: an error if frame rendering fails
	RenderFrame() error

	// Stats returns the renderer's statistics from the most recent frame.
	//
	// Returns:
	//   - renderer.FrameStats: cull and draw counts from the last RenderFrame
	Stats() renderer.FrameStats

	// Resize updates the camera aspect ratio and resizes the renderer's
	// screen-sized targets. Call when the window surface size changes.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	//
	// Returns:
	//   - error: an error if target recreation fails
	Resize(width, height uint32) error

	// Release frees the scene renderer's GPU resources. Drawables remain
	// registered and keep their own resources.
	Release()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	registry map[uint64]renderer.Drawable
	nextID   uint64

	cam    camera.Camera
	r      renderer.Renderer
	sr     renderer.SceneRenderer
	lights light.SceneLights

	// srOptions are forwarded to NewSceneRenderer when the scene creates its
	// own SceneRenderer.
	srOptions []renderer.SceneRendererBuilderOption

	// drawPool is reused each frame to snapshot the registry without allocating.
	drawPool []renderer.Drawable
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera and renderer. Both are
// required and NewScene panics if either is nil or if the SceneRenderer's GPU
// resources cannot be created.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		active:   false,
		cam:      cam,
		r:        r,
		registry: make(map[uint64]renderer.Drawable),
		nextID:   1,
	}

	for _, option := range options {
		option(s)
	}

	if s.lights == nil {
		s.lights = light.NewSceneLights()
	}

	if s.sr == nil {
		sr, err := renderer.NewSceneRenderer(r, s.srOptions...)
		if err != nil {
			panic(fmt.Sprintf("scene: failed to create scene renderer: %v", err))
		}
		s.sr = sr
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cam != nil {
		s.cam = cam
	}
}

func (s *scene) SceneRenderer() renderer.SceneRenderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sr
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(d renderer.Drawable) uint64 {
	if d == nil {
		return 0
	}

	// Initialize model GPU resources lazily so callers can build scenes before
	// the renderer exists.
	if mdl, ok := d.(model.Model); ok && !mdl.Ready() {
		if err := mdl.Init(s.r); err != nil {
			panic(fmt.Sprintf("scene: failed to init model %q: %v", mdl.Name(), err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.registry[id] = d
	return id
}

func (s *scene) Get(id uint64) renderer.Drawable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]renderer.Drawable)
}

func (s *scene) Lights() light.SceneLights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lights
}

func (s *scene) AddLight(l light.Light) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lights.AddLight(l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.lights.RemoveLight(l)
}

func (s *scene) RenderFrame() error {
	s.mu.Lock()
	s.cam.Update()
	s.drawPool = s.drawPool[:0]
	for _, d := range s.registry {
		s.drawPool = append(s.drawPool, d)
	}
	input := renderer.FrameInput{
		Pose:      s.cam.Pose(),
		Near:      s.cam.Near(),
		Far:       s.cam.Far(),
		Lights:    s.lights,
		Drawables: s.drawPool,
	}
	sr := s.sr
	s.mu.Unlock()

	return sr.RenderFrame(input)
}

func (s *scene) Stats() renderer.FrameStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sr.Stats()
}

func (s *scene) Resize(width, height uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if height > 0 {
		s.cam.SetAspect(float32(width) / float32(height))
	}
	return s.sr.Resize(width, height)
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sr != nil {
		s.sr.Release()
	}
}
