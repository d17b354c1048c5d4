package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// orbitController is the implementation of the CameraController interface.
// The camera position is derived from the target and the spherical offset
// (radius, yaw, pitch); every mutation recomputes it.
type orbitController struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3

	radius float32
	yaw    float32 // angle around the world Y axis
	pitch  float32 // angle above the horizontal plane, clamped

	minRadius float32
	maxRadius float32
	minPitch  float32
	maxPitch  float32

	dragSensitivity float32
	zoomSpeed       float32
	panSpeed        float32
}

// CameraController owns the camera's positional state. The Camera reads
// position and target from it each Update and builds the view matrix; input
// handlers drive it through Orbit, Dolly, and Pan.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// Target returns the look-at point the camera orbits.
	//
	// Returns:
	//   - mgl32.Vec3: the target position
	Target() mgl32.Vec3

	// SetTarget moves the orbit pivot and recomputes the camera position.
	//
	// Parameters:
	//   - target: the world-space pivot point
	SetTarget(target mgl32.Vec3)

	// Orbit rotates the camera around the target. Yaw is unbounded; pitch is
	// clamped to the configured limits.
	//
	// Parameters:
	//   - dYaw: yaw change in radians
	//   - dPitch: pitch change in radians
	Orbit(dYaw, dPitch float32)

	// Dolly moves the camera along the view ray by delta times the zoom
	// speed. Positive delta moves toward the target. The radius stays within
	// the configured limits.
	//
	// Parameters:
	//   - delta: dolly amount, typically a scroll wheel step
	Dolly(delta float32)

	// Pan shifts both the target and the camera along the camera's local
	// right and up axes, preserving the orbit offset.
	//
	// Parameters:
	//   - dx: movement along the local right axis, scaled by the pan speed
	//   - dy: movement along the local up axis, scaled by the pan speed
	Pan(dx, dy float32)

	// Radius returns the current distance from the target.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// SetRadius sets the orbit distance, clamped to the configured limits.
	//
	// Parameters:
	//   - radius: the distance from the target
	SetRadius(radius float32)

	// Yaw returns the current angle around the world Y axis in radians.
	//
	// Returns:
	//   - float32: the yaw angle
	Yaw() float32

	// SetYaw sets the yaw angle and recomputes the camera position.
	//
	// Parameters:
	//   - yaw: the angle in radians
	SetYaw(yaw float32)

	// Pitch returns the current angle above the horizontal plane in radians.
	//
	// Returns:
	//   - float32: the pitch angle
	Pitch() float32

	// SetPitch sets the pitch angle, clamped to the configured limits.
	//
	// Parameters:
	//   - pitch: the angle in radians
	SetPitch(pitch float32)

	// DragSensitivity returns the radians-per-pixel factor input handlers
	// should apply to mouse drag deltas before calling Orbit.
	//
	// Returns:
	//   - float32: the drag sensitivity
	DragSensitivity() float32

	// ZoomSpeed returns the world units moved per Dolly step.
	//
	// Returns:
	//   - float32: the zoom speed
	ZoomSpeed() float32

	// PanSpeed returns the world units moved per Pan unit.
	//
	// Returns:
	//   - float32: the pan speed
	PanSpeed() float32
}

var _ CameraController = &orbitController{}

// NewOrbitController creates a camera controller with defaults sized for a
// scene a few dozen units across.
//
// Parameters:
//   - options: a variadic list of CameraControllerOption functions to configure the controller
//
// Returns:
//   - CameraController: a new controller with the provided options applied
func NewOrbitController(options ...CameraControllerOption) CameraController {
	c := &orbitController{
		mu: &sync.Mutex{},

		radius: 12,
		pitch:  math32.Pi / 6,

		minRadius: 0.5,
		maxRadius: 400,
		minPitch:  0.05,
		maxPitch:  math32.Pi/2 - 0.05,

		dragSensitivity: 0.005,
		zoomSpeed:       1.5,
		panSpeed:        1,
	}
	for _, opt := range options {
		opt(c)
	}
	c.pitch = clamp(c.pitch, c.minPitch, c.maxPitch)
	c.radius = clamp(c.radius, c.minRadius, c.maxRadius)
	c.recompute()
	return c
}

// recompute derives the camera position from the target and the spherical
// offset. Caller must hold the mutex.
func (c *orbitController) recompute() {
	cosPitch := math32.Cos(c.pitch)
	c.position = c.target.Add(mgl32.Vec3{
		c.radius * cosPitch * math32.Sin(c.yaw),
		c.radius * math32.Sin(c.pitch),
		c.radius * cosPitch * math32.Cos(c.yaw),
	})
}

// axes returns the camera's local right and up vectors, consistent with a
// look-at view using the world up. Caller must hold the mutex.
func (c *orbitController) axes() (right, up mgl32.Vec3) {
	back := c.position.Sub(c.target)
	if back.Len() < 1e-6 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	back = back.Normalize()
	right = mgl32.Vec3{0, 1, 0}.Cross(back)
	if right.Len() < 1e-6 {
		// Looking straight along Y; any horizontal right works.
		right = mgl32.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	up = back.Cross(right)
	return right, up
}

func (c *orbitController) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *orbitController) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *orbitController) SetTarget(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.recompute()
}

func (c *orbitController) Orbit(dYaw, dPitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw += dYaw
	c.pitch = clamp(c.pitch+dPitch, c.minPitch, c.maxPitch)
	c.recompute()
}

func (c *orbitController) Dolly(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.radius = clamp(c.radius-delta*c.zoomSpeed, c.minRadius, c.maxRadius)
	c.recompute()
}

func (c *orbitController) Pan(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	right, up := c.axes()
	offset := right.Mul(dx * c.panSpeed).Add(up.Mul(dy * c.panSpeed))
	c.target = c.target.Add(offset)
	c.position = c.position.Add(offset)
}

func (c *orbitController) Radius() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.radius
}

func (c *orbitController) SetRadius(radius float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.radius = clamp(radius, c.minRadius, c.maxRadius)
	c.recompute()
}

func (c *orbitController) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *orbitController) SetYaw(yaw float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = yaw
	c.recompute()
}

func (c *orbitController) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *orbitController) SetPitch(pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch = clamp(pitch, c.minPitch, c.maxPitch)
	c.recompute()
}

func (c *orbitController) DragSensitivity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragSensitivity
}

func (c *orbitController) ZoomSpeed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoomSpeed
}

func (c *orbitController) PanSpeed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panSpeed
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
