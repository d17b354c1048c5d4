package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a
// CameraController via NewOrbitController.
type CameraControllerOption func(*orbitController)

// WithTarget is an option builder that sets the orbit pivot point.
//
// Parameters:
//   - x: the x target component
//   - y: the y target component
//   - z: the z target component
//
// Returns:
//   - CameraControllerOption: a function that applies the target option to a controller
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(c *orbitController) {
		c.target = mgl32.Vec3{x, y, z}
	}
}

// WithRadius is an option builder that sets the initial distance from the target.
//
// Parameters:
//   - radius: the orbit radius
//
// Returns:
//   - CameraControllerOption: a function that applies the radius option to a controller
func WithRadius(radius float32) CameraControllerOption {
	return func(c *orbitController) {
		c.radius = radius
	}
}

// WithYaw is an option builder that sets the initial angle around the world Y
// axis. Zero looks down the +Z axis toward the target.
//
// Parameters:
//   - yaw: the angle in radians
//
// Returns:
//   - CameraControllerOption: a function that applies the yaw option to a controller
func WithYaw(yaw float32) CameraControllerOption {
	return func(c *orbitController) {
		c.yaw = yaw
	}
}

// WithPitch is an option builder that sets the initial angle above the
// horizontal plane.
//
// Parameters:
//   - pitch: the angle in radians
//
// Returns:
//   - CameraControllerOption: a function that applies the pitch option to a controller
func WithPitch(pitch float32) CameraControllerOption {
	return func(c *orbitController) {
		c.pitch = pitch
	}
}

// WithRadiusLimits is an option builder that bounds how close and how far the
// camera can dolly.
//
// Parameters:
//   - minRadius: the closest allowed distance
//   - maxRadius: the farthest allowed distance
//
// Returns:
//   - CameraControllerOption: a function that applies the radius limits to a controller
func WithRadiusLimits(minRadius, maxRadius float32) CameraControllerOption {
	return func(c *orbitController) {
		c.minRadius = minRadius
		c.maxRadius = maxRadius
	}
}

// WithPitchLimits is an option builder that bounds the pitch angle, keeping
// the camera off the poles where the view basis degenerates.
//
// Parameters:
//   - minPitch: the lowest allowed angle in radians
//   - maxPitch: the highest allowed angle in radians
//
// Returns:
//   - CameraControllerOption: a function that applies the pitch limits to a controller
func WithPitchLimits(minPitch, maxPitch float32) CameraControllerOption {
	return func(c *orbitController) {
		c.minPitch = minPitch
		c.maxPitch = maxPitch
	}
}

// WithDragSensitivity is an option builder that sets the radians-per-pixel
// factor for mouse-driven orbiting.
//
// Parameters:
//   - sensitivity: the drag sensitivity
//
// Returns:
//   - CameraControllerOption: a function that applies the sensitivity option to a controller
func WithDragSensitivity(sensitivity float32) CameraControllerOption {
	return func(c *orbitController) {
		c.dragSensitivity = sensitivity
	}
}

// WithZoomSpeed is an option builder that sets the world units moved per
// Dolly step.
//
// Parameters:
//   - speed: the zoom speed
//
// Returns:
//   - CameraControllerOption: a function that applies the zoom speed option to a controller
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(c *orbitController) {
		c.zoomSpeed = speed
	}
}

// WithPanSpeed is an option builder that sets the world units moved per Pan unit.
//
// Parameters:
//   - speed: the pan speed
//
// Returns:
//   - CameraControllerOption: a function that applies the pan speed option to a controller
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(c *orbitController) {
		c.panSpeed = speed
	}
}
