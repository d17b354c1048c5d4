package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewOrbitController_PositionFromSphericalOffset(t *testing.T) {
	c := NewOrbitController(
		WithTarget(0, 1, 0),
		WithRadius(10),
		WithYaw(0),
		WithPitch(0),
		WithPitchLimits(0, math32.Pi/2),
	)

	// Yaw 0, pitch 0 places the camera on the +Z side of the target.
	pos := c.Position()
	assert.InDelta(t, 0, float64(pos.X()), 1e-5)
	assert.InDelta(t, 1, float64(pos.Y()), 1e-5)
	assert.InDelta(t, 10, float64(pos.Z()), 1e-5)
}

func TestOrbitController_OrbitClampsPitch(t *testing.T) {
	c := NewOrbitController(WithPitchLimits(0.1, 1.2), WithPitch(0.5))

	c.Orbit(0, 10)
	assert.InDelta(t, 1.2, float64(c.Pitch()), 1e-6)

	c.Orbit(0, -10)
	assert.InDelta(t, 0.1, float64(c.Pitch()), 1e-6)

	// Yaw is unbounded.
	c.Orbit(7, 0)
	assert.InDelta(t, 7, float64(c.Yaw()), 1e-6)
}

func TestOrbitController_DollyClampsRadius(t *testing.T) {
	c := NewOrbitController(
		WithRadius(10),
		WithRadiusLimits(2, 20),
		WithZoomSpeed(1),
	)

	c.Dolly(100)
	assert.InDelta(t, 2, float64(c.Radius()), 1e-6)

	c.Dolly(-100)
	assert.InDelta(t, 20, float64(c.Radius()), 1e-6)

	// The distance to the target tracks the clamped radius.
	assert.InDelta(t, 20, float64(c.Position().Sub(c.Target()).Len()), 1e-4)
}

func TestOrbitController_PanMovesTargetAndPositionTogether(t *testing.T) {
	c := NewOrbitController(WithRadius(8), WithPanSpeed(1))

	before := c.Position().Sub(c.Target())
	c.Pan(3, -2)
	after := c.Position().Sub(c.Target())

	// Panning translates both endpoints, so the orbit offset is unchanged.
	assert.InDelta(t, float64(before.X()), float64(after.X()), 1e-5)
	assert.InDelta(t, float64(before.Y()), float64(after.Y()), 1e-5)
	assert.InDelta(t, float64(before.Z()), float64(after.Z()), 1e-5)
	assert.NotEqual(t, mgl32.Vec3{}, c.Target())
}

func TestOrbitController_SetTargetRecomputesPosition(t *testing.T) {
	c := NewOrbitController(WithRadius(5), WithYaw(0), WithPitch(0.3))

	offset := c.Position()
	c.SetTarget(mgl32.Vec3{10, 0, -4})
	moved := c.Position().Sub(c.Target())

	// The spherical offset is preserved across target moves.
	assert.InDelta(t, float64(offset.X()), float64(moved.X()), 1e-4)
	assert.InDelta(t, float64(offset.Y()), float64(moved.Y()), 1e-4)
	assert.InDelta(t, float64(offset.Z()), float64(moved.Z()), 1e-4)
	assert.InDelta(t, 5, float64(moved.Len()), 1e-4)
}

func TestOrbitController_SpeedAccessors(t *testing.T) {
	c := NewOrbitController(
		WithDragSensitivity(0.01),
		WithZoomSpeed(2.5),
		WithPanSpeed(0.75),
	)

	assert.Equal(t, float32(0.01), c.DragSensitivity())
	assert.Equal(t, float32(2.5), c.ZoomSpeed())
	assert.Equal(t, float32(0.75), c.PanSpeed())
}
