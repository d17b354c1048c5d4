package shadow

import (
	"fmt"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxCascades is the maximum number of directional shadow cascades. The
// per-cascade offset/scale vectors are packed into vec4 uniforms, which fixes
// the ceiling at 4.
const MaxCascades = 4

// DefaultMapSize is the default width and height in texels of each cascade
// layer in the shadow depth texture array.
const DefaultMapSize = 2048

// CameraPose is the minimal camera state the cascade math needs. It is a plain
// value copied out of the camera each frame so the cascade set never holds a
// reference into live camera state.
type CameraPose struct {
	// Position is the camera position in world space.
	Position mgl32.Vec3
	// Direction is the normalized viewing direction.
	Direction mgl32.Vec3
	// Up is the normalized camera up vector.
	Up mgl32.Vec3
	// FovY is the vertical field of view in radians.
	FovY float32
	// Aspect is the viewport aspect ratio (width/height).
	Aspect float32
}

// cascadeSetImpl is the implementation of the CascadeSet interface.
type cascadeSetImpl struct {
	totalCascades int
	ranges        []float32 // len == totalCascades+1, strictly increasing
	mapSize       int
	antiFlicker   bool
	depthExtent   float32 // 0 = derive from shadow bound radius

	// Persisted across updates. Radii only ever grow; shrinking them as the
	// camera turns makes shadow texel density oscillate frame-to-frame, which
	// shows up as shimmering shadow edges.
	shadowBoundRadius float32
	boundCenter       []mgl32.Vec3
	boundRadius       []float32
	seeded            []bool

	// Outputs of the last Update.
	shadowView         mgl32.Mat4
	worldToShadow      mgl32.Mat4
	worldToCascadeProj []mgl32.Mat4
	offsetX            [MaxCascades]float32
	offsetY            [MaxCascades]float32
	scale              [MaxCascades]float32
}

// CascadeSet computes and caches the per-cascade transforms for a cascaded
// directional shadow map.
//
// A cascade set splits the camera's depth range into slices, each rendered into
// its own layer of a shared shadow depth texture array. Near slices get a small
// world-space footprint (high effective resolution), far slices a large one.
// The set owns only math state — depth textures belong to the renderer's
// shadow map.
//
// Bound radii are persisted and monotonically non-decreasing across updates,
// and with anti-flicker enabled (the default) cascade centers move only in
// whole-texel increments in shadow view space, so shadow edges stay put while
// the camera moves continuously.
type CascadeSet interface {
	// TotalCascades returns the number of cascades in the set.
	//
	// Returns:
	//   - int: the cascade count (1–MaxCascades)
	TotalCascades() int

	// Ranges returns the cascade distance ranges. The slice has
	// TotalCascades()+1 entries: [near, r0, ..., far], strictly increasing.
	// The returned slice must not be modified.
	//
	// Returns:
	//   - []float32: the cascade split distances
	Ranges() []float32

	// MapSize returns the per-layer shadow map resolution in texels.
	//
	// Returns:
	//   - int: the shadow map width/height
	MapSize() int

	// AntiFlicker returns whether texel-snapped stabilization is enabled.
	//
	// Returns:
	//   - bool: true if anti-flicker stabilization is on
	AntiFlicker() bool

	// Update recomputes all cascade transforms for the given camera pose and
	// light direction. Must be called once per frame before the shadow depth
	// pass uses CascadeViewProj or the lighting pass uses the offset/scale
	// vectors.
	//
	// Parameters:
	//   - pose: the camera pose driving the cascade fit
	//   - lightDir: normalized direction the light travels (from light toward scene)
	Update(pose CameraPose, lightDir mgl32.Vec3)

	// ShadowView returns the world→shadow-camera view matrix from the last
	// Update. Zero value before the first Update.
	//
	// Returns:
	//   - mgl32.Mat4: the shadow view matrix
	ShadowView() mgl32.Mat4

	// WorldToShadow returns the combined world→shadow clip-space matrix
	// (shadow view followed by the global orthographic projection sized to the
	// whole-range shadow bound).
	//
	// Returns:
	//   - mgl32.Mat4: the world-to-shadow-space matrix
	WorldToShadow() mgl32.Mat4

	// CascadeViewProj returns the matrix that maps world space into cascade
	// idx's [-1,1]² clip slice. The shadow depth pass renders layer idx with
	// this matrix, and the lighting shader uses the equivalent offset/scale
	// form to sample it.
	//
	// Parameters:
	//   - idx: the cascade index in [0, TotalCascades())
	//
	// Returns:
	//   - mgl32.Mat4: the world-to-cascade projection matrix
	CascadeViewProj(idx int) mgl32.Mat4

	// CascadeVectors returns the packed per-cascade mapping vectors consumed
	// by the light accumulation shader: for cascade i,
	// xy' = worldToShadow(p).xy * scale[i] + (offsetX[i], offsetY[i]).
	//
	// Returns:
	//   - offsetX: per-cascade X offsets
	//   - offsetY: per-cascade Y offsets
	//   - scale: per-cascade uniform scales
	CascadeVectors() (offsetX, offsetY, scale [MaxCascades]float32)

	// ShadowBoundRadius returns the persisted whole-range bound radius.
	// Monotonically non-decreasing across updates.
	//
	// Returns:
	//   - float32: the shadow bound radius in world units
	ShadowBoundRadius() float32

	// CascadeBoundRadius returns the persisted bound radius for one cascade.
	// Monotonically non-decreasing across updates.
	//
	// Parameters:
	//   - idx: the cascade index in [0, TotalCascades())
	//
	// Returns:
	//   - float32: the cascade bound radius in world units
	CascadeBoundRadius(idx int) float32

	// CascadeBoundCenter returns the persisted world-space bound center for
	// one cascade (texel-snapped when anti-flicker is on).
	//
	// Parameters:
	//   - idx: the cascade index in [0, TotalCascades())
	//
	// Returns:
	//   - mgl32.Vec3: the cascade bound center
	CascadeBoundCenter(idx int) mgl32.Vec3

	// CascadeForDepth returns the index of the cascade whose distance range
	// contains the given view depth, or -1 when the depth lies beyond the last
	// cascade (fully lit).
	//
	// Parameters:
	//   - depth: distance from the camera along its view direction
	//
	// Returns:
	//   - int: the containing cascade index, or -1
	CascadeForDepth(depth float32) int
}

var _ CascadeSet = &cascadeSetImpl{}

// NewCascadeSet creates a CascadeSet for the given distance ranges with any
// provided options applied. The ranges slice must have between 2 and
// MaxCascades+1 entries and be strictly increasing; violating either is a
// programmer error and panics.
//
// Parameters:
//   - ranges: cascade split distances [near, r0, ..., far]
//   - opts: variadic list of CascadeSetBuilderOption functions
//
// Returns:
//   - CascadeSet: a new CascadeSet instance
func NewCascadeSet(ranges []float32, opts ...CascadeSetBuilderOption) CascadeSet {
	if len(ranges) < 2 || len(ranges) > MaxCascades+1 {
		panic(fmt.Sprintf("shadow: NewCascadeSet requires 2-%d range entries, got %d", MaxCascades+1, len(ranges)))
	}
	for i := 1; i < len(ranges); i++ {
		if ranges[i] <= ranges[i-1] {
			panic(fmt.Sprintf("shadow: cascade ranges must be strictly increasing, got %v", ranges))
		}
	}

	total := len(ranges) - 1
	c := &cascadeSetImpl{
		totalCascades:      total,
		ranges:             append([]float32(nil), ranges...),
		mapSize:            DefaultMapSize,
		antiFlicker:        true,
		boundCenter:        make([]mgl32.Vec3, total),
		boundRadius:        make([]float32, total),
		seeded:             make([]bool, total),
		worldToCascadeProj: make([]mgl32.Mat4, total),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *cascadeSetImpl) TotalCascades() int {
	return c.totalCascades
}

func (c *cascadeSetImpl) Ranges() []float32 {
	return c.ranges
}

func (c *cascadeSetImpl) MapSize() int {
	return c.mapSize
}

func (c *cascadeSetImpl) AntiFlicker() bool {
	return c.antiFlicker
}

func (c *cascadeSetImpl) ShadowView() mgl32.Mat4 {
	return c.shadowView
}

func (c *cascadeSetImpl) WorldToShadow() mgl32.Mat4 {
	return c.worldToShadow
}

func (c *cascadeSetImpl) CascadeViewProj(idx int) mgl32.Mat4 {
	return c.worldToCascadeProj[idx]
}

func (c *cascadeSetImpl) CascadeVectors() (offsetX, offsetY, scale [MaxCascades]float32) {
	return c.offsetX, c.offsetY, c.scale
}

func (c *cascadeSetImpl) ShadowBoundRadius() float32 {
	return c.shadowBoundRadius
}

func (c *cascadeSetImpl) CascadeBoundRadius(idx int) float32 {
	return c.boundRadius[idx]
}

func (c *cascadeSetImpl) CascadeBoundCenter(idx int) mgl32.Vec3 {
	return c.boundCenter[idx]
}

func (c *cascadeSetImpl) CascadeForDepth(depth float32) int {
	for i := 0; i < c.totalCascades; i++ {
		if depth >= c.ranges[i] && depth < c.ranges[i+1] {
			return i
		}
	}
	return -1
}

func (c *cascadeSetImpl) Update(pose CameraPose, lightDir mgl32.Vec3) {
	lightDir = lightDir.Normalize()

	// Stable shadow camera: eye halfway into the cascade range along the view
	// direction, looking along the light. The up vector depends only on the
	// light direction, so camera rotation never rolls the shadow frame.
	near := c.ranges[0]
	far := c.ranges[c.totalCascades]
	eye := pose.Position.Add(pose.Direction.Mul((far - near) * 0.5))
	up := common.StableUpFor(lightDir)
	c.shadowView = common.LookAtDir(eye, lightDir, up)

	// Whole-range bounding sphere; the persisted radius only grows.
	whole := common.SliceBoundingSphere(pose.Position, pose.Direction, pose.Up, pose.FovY, pose.Aspect, near, far)
	if whole.Radius > c.shadowBoundRadius {
		c.shadowBoundRadius = whole.Radius
	}
	r := c.shadowBoundRadius

	depthExtent := c.depthExtent
	if depthExtent <= 0 {
		depthExtent = 2 * r
	}
	proj := common.OrthoZO(-r, r, -r, r, -depthExtent, depthExtent)
	c.worldToShadow = proj.Mul4(c.shadowView)

	for i := 0; i < c.totalCascades; i++ {
		if c.antiFlicker {
			c.fitCascadeStable(i, pose)
		} else {
			c.fitCascadeTight(i, pose)
		}
	}
}

// fitCascadeStable fits cascade i using the persisted bounding sphere with
// texel-quantized center movement.
func (c *cascadeSetImpl) fitCascadeStable(i int, pose CameraPose) {
	sphere := common.SliceBoundingSphere(pose.Position, pose.Direction, pose.Up, pose.FovY, pose.Aspect, c.ranges[i], c.ranges[i+1])

	if !c.seeded[i] {
		c.boundCenter[i] = sphere.Center
		c.seeded[i] = true
	}
	if sphere.Radius > c.boundRadius[i] {
		c.boundRadius[i] = sphere.Radius
	}
	radius := c.boundRadius[i]

	// Compare the new and persisted centers in the shadow camera's view space.
	// The offset between them is rotation-invariant there: a camera orbit that
	// leaves the cascade footprint in place produces a zero delta, while any
	// real translation shows up on the shadow map's own X/Y axes.
	texelsPerUnit := float32(c.mapSize) / (2 * radius)
	newVS := common.TransformPoint(c.shadowView, sphere.Center)
	oldVS := common.TransformPoint(c.shadowView, c.boundCenter[i])
	dx := (newVS.X() - oldVS.X()) * texelsPerUnit
	dy := (newVS.Y() - oldVS.Y()) * texelsPerUnit

	// Move the persisted center only by whole texels. Sub-texel movement is
	// swallowed, so a continuously gliding camera produces stepwise cascade
	// bounds and the rasterized shadow texels never swim.
	if math32.Abs(dx) >= 0.5 || math32.Abs(dy) >= 0.5 {
		snapX := math32.Floor(dx+0.5) / texelsPerUnit
		snapY := math32.Floor(dy+0.5) / texelsPerUnit

		// The snap offset lives on the shadow view's X/Y axes; rotate it back
		// into world space. The view rotation is orthonormal, so its inverse
		// is the transpose.
		invRot := c.shadowView.Mat3().Transpose()
		offWorld := invRot.Mul3x1(mgl32.Vec3{snapX, snapY, 0})
		c.boundCenter[i] = c.boundCenter[i].Add(offWorld)
	}

	c.applyCascadeFit(i, c.boundCenter[i], radius)
}

// fitCascadeTight fits cascade i to the axis-aligned shadow-space bound of the
// 8 cascade frustum corners. No persistence: tracks the frustum exactly at the
// cost of per-frame jitter.
func (c *cascadeSetImpl) fitCascadeTight(i int, pose CameraPose) {
	corners := common.FrustumCorners(pose.Position, pose.Direction, pose.Up, pose.FovY, pose.Aspect, c.ranges[i], c.ranges[i+1])

	minX, minY := math32.Inf(1), math32.Inf(1)
	maxX, maxY := math32.Inf(-1), math32.Inf(-1)
	for _, corner := range corners {
		p := common.TransformPoint(c.worldToShadow, corner)
		minX = math32.Min(minX, p.X())
		maxX = math32.Max(maxX, p.X())
		minY = math32.Min(minY, p.Y())
		maxY = math32.Max(maxY, p.Y())
	}

	// Uniform scale: the looser axis wins so both stay within the slice.
	scale := math32.Min(2/(maxX-minX), 2/(maxY-minY))
	cx := (minX + maxX) * 0.5
	cy := (minY + maxY) * 0.5

	c.offsetX[i] = -cx * scale
	c.offsetY[i] = -cy * scale
	c.scale[i] = scale
	c.worldToCascadeProj[i] = mgl32.Translate3D(c.offsetX[i], c.offsetY[i], 0).
		Mul4(mgl32.Scale3D(scale, scale, 1)).
		Mul4(c.worldToShadow)
}

// applyCascadeFit derives the offset/scale mapping and the combined matrix for
// a cascade fitted to a world-space sphere.
func (c *cascadeSetImpl) applyCascadeFit(i int, center mgl32.Vec3, radius float32) {
	// Cascade center in shadow clip space. The global projection maps
	// ±shadowBoundRadius to ±1, so the cascade occupies a sub-square of
	// half-size radius/shadowBoundRadius around it.
	p := common.TransformPoint(c.worldToShadow, center)
	scale := c.shadowBoundRadius / radius

	c.offsetX[i] = -p.X() * scale
	c.offsetY[i] = -p.Y() * scale
	c.scale[i] = scale
	c.worldToCascadeProj[i] = mgl32.Translate3D(c.offsetX[i], c.offsetY[i], 0).
		Mul4(mgl32.Scale3D(scale, scale, 1)).
		Mul4(c.worldToShadow)
}
