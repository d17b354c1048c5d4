package shadow

// CascadeSetBuilderOption is a function that configures a CascadeSet instance during
// construction.
type CascadeSetBuilderOption func(*cascadeSetImpl)

// WithMapSize is an option builder that sets the per-layer shadow map resolution in
// texels. Values below 1 are ignored.
//
// Parameters:
//   - size: the shadow map width/height in texels
//
// Returns:
//   - CascadeSetBuilderOption: a function that applies the map size option to a cascadeSetImpl
func WithMapSize(size int) CascadeSetBuilderOption {
	return func(c *cascadeSetImpl) {
		if size > 0 {
			c.mapSize = size
		}
	}
}

// WithAntiFlicker is an option builder that toggles texel-snapped cascade
// stabilization. Enabled by default; disabling switches each cascade to a tight
// per-frame fit of its frustum slice, which maximizes shadow map utilization but
// lets shadow edges shimmer while the camera moves.
//
// Parameters:
//   - enabled: true to stabilize cascades, false for the tight fit
//
// Returns:
//   - CascadeSetBuilderOption: a function that applies the anti-flicker option to a cascadeSetImpl
func WithAntiFlicker(enabled bool) CascadeSetBuilderOption {
	return func(c *cascadeSetImpl) {
		c.antiFlicker = enabled
	}
}

// WithDepthExtent is an option builder that sets the depth extent of the shadow
// volume on either side of the shadow camera plane, in world units. When unset the
// extent defaults to twice the whole-range bound radius, which keeps casters behind
// the camera frustum inside the shadow volume.
//
// Parameters:
//   - extent: the half-depth of the shadow volume in world units
//
// Returns:
//   - CascadeSetBuilderOption: a function that applies the depth extent option to a cascadeSetImpl
func WithDepthExtent(extent float32) CascadeSetBuilderOption {
	return func(c *cascadeSetImpl) {
		c.depthExtent = extent
	}
}
