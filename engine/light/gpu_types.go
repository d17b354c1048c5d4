package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/shadow"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001

// DefaultShadowNormalBiasScale is the multiplier applied to the shadow map
// texel world-size to compute the normal-offset bias. Higher values push
// the shadow sample point further along the surface normal, reducing
// self-shadowing on concave geometry at the cost of slight shadow
// detachment from contact points. Typical values are 2.0–4.0.
const DefaultShadowNormalBiasScale float32 = 3.0

// volumePadding inflates proxy volume transforms slightly so the tessellated
// unit meshes never clip the analytic light bound they approximate.
const volumePadding float32 = 1.05

// GPUDeferredFrameSource is the canonical WGSL definition of the DeferredFrame struct.
// Matches GPUDeferredFrame layout exactly (96 bytes, std430 aligned).
//
//go:embed assets/deferred_frame.wgsl
var GPUDeferredFrameSource string

// GPUDeferredFrame is the GPU-aligned per-frame uniform shared by every
// lighting-phase pass: the inverse view-projection for reconstructing world
// positions from G-buffer depth, the camera position, and the viewport size.
// Matches the WGSL DeferredFrame struct layout exactly (see GPUDeferredFrameSource).
// Size: 96 bytes (std430 / WGSL aligned).
//
// Layout:
//
//	mat4x4<f32> inv_view_proj  (64 bytes, offset  0)
//	vec3<f32>   camera_pos     (12 bytes, offset 64)
//	f32         _pad0          ( 4 bytes, offset 76)
//	vec2<f32>   screen_size    ( 8 bytes, offset 80)
//	f32         near           ( 4 bytes, offset 88)
//	f32         far            ( 4 bytes, offset 92)
type GPUDeferredFrame struct {
	InvViewProj [16]float32 // inverse of the camera view-projection matrix
	CameraPos   [3]float32  // world-space camera position
	_pad0       float32
	ScreenSize  [2]float32 // viewport size in pixels
	Near        float32    // camera near plane distance
	Far         float32    // camera far plane distance
}

// Size returns the size of the GPUDeferredFrame struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (f *GPUDeferredFrame) Size() int {
	return int(unsafe.Sizeof(*f))
}

// Marshal serializes the GPUDeferredFrame struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload
func (f *GPUDeferredFrame) Marshal() []byte {
	buf := make([]byte, 96)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(f.InvViewProj[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(f.CameraPos[0]))
	binary.LittleEndian.PutUint32(buf[68:72], math.Float32bits(f.CameraPos[1]))
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(f.CameraPos[2]))
	binary.LittleEndian.PutUint32(buf[76:80], 0) // padding
	binary.LittleEndian.PutUint32(buf[80:84], math.Float32bits(f.ScreenSize[0]))
	binary.LittleEndian.PutUint32(buf[84:88], math.Float32bits(f.ScreenSize[1]))
	binary.LittleEndian.PutUint32(buf[88:92], math.Float32bits(f.Near))
	binary.LittleEndian.PutUint32(buf[92:96], math.Float32bits(f.Far))
	return buf
}

// GPUDirectionalLightSource is the canonical WGSL definition of the DirectionalLight
// struct. Matches GPUDirectionalLight layout exactly (176 bytes, std430 aligned).
//
//go:embed assets/directional_light.wgsl
var GPUDirectionalLightSource string

// GPUDirectionalLight is the GPU-aligned uniform for one full-screen directional
// light accumulation pass, including the cascaded shadow mapping parameters.
// Matches the WGSL DirectionalLight struct layout exactly (see GPUDirectionalLightSource).
// Size: 176 bytes (std430 / WGSL aligned).
//
// Layout:
//
//	mat4x4<f32> world_to_shadow   (64 bytes, offset   0)
//	vec4<f32>   cascade_offset_x  (16 bytes, offset  64)
//	vec4<f32>   cascade_offset_y  (16 bytes, offset  80)
//	vec4<f32>   cascade_scale     (16 bytes, offset  96)
//	vec3<f32>   direction         (12 bytes, offset 112)
//	u32         casts_shadows     ( 4 bytes, offset 124)
//	vec3<f32>   color             (12 bytes, offset 128)
//	f32         intensity         ( 4 bytes, offset 140)
//	u32         cascade_count     ( 4 bytes, offset 144)
//	f32         map_size          ( 4 bytes, offset 148)
//	f32         bias              ( 4 bytes, offset 152)
//	f32         normal_bias       ( 4 bytes, offset 156)
//	vec3<f32>   specular          (12 bytes, offset 160)
//	f32         _pad0             ( 4 bytes, offset 172)
type GPUDirectionalLight struct {
	WorldToShadow  [16]float32 // world space to shadow clip space
	CascadeOffsetX [4]float32  // per-cascade X offsets into the shadow clip square
	CascadeOffsetY [4]float32  // per-cascade Y offsets
	CascadeScale   [4]float32  // per-cascade uniform scales
	Direction      [3]float32  // normalized direction the light travels
	CastsShadows   uint32      // 1 = sample the cascade array, 0 = fully lit
	Color          [3]float32  // diffuse RGB color
	Intensity      float32     // scalar multiplier
	CascadeCount   uint32      // number of active cascades
	MapSize        float32     // per-layer shadow map resolution in texels
	Bias           float32     // depth comparison bias
	NormalBias     float32     // world-space normal-offset distance
	Specular       [3]float32  // specular highlight RGB color
	_pad0          float32
}

// Size returns the size of the GPUDirectionalLight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (176)
func (d *GPUDirectionalLight) Size() int {
	return int(unsafe.Sizeof(*d))
}

// Marshal serializes the GPUDirectionalLight struct into a byte buffer suitable
// for GPU uniform upload.
//
// Returns:
//   - []byte: 176-byte buffer ready for GPU upload
func (d *GPUDirectionalLight) Marshal() []byte {
	buf := make([]byte, 176)
	off := 0
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(d.WorldToShadow[i]))
		off += 4
	}
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(d.CascadeOffsetX[i]))
		off += 4
	}
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(d.CascadeOffsetY[i]))
		off += 4
	}
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(d.CascadeScale[i]))
		off += 4
	}
	binary.LittleEndian.PutUint32(buf[112:116], math.Float32bits(d.Direction[0]))
	binary.LittleEndian.PutUint32(buf[116:120], math.Float32bits(d.Direction[1]))
	binary.LittleEndian.PutUint32(buf[120:124], math.Float32bits(d.Direction[2]))
	binary.LittleEndian.PutUint32(buf[124:128], d.CastsShadows)
	binary.LittleEndian.PutUint32(buf[128:132], math.Float32bits(d.Color[0]))
	binary.LittleEndian.PutUint32(buf[132:136], math.Float32bits(d.Color[1]))
	binary.LittleEndian.PutUint32(buf[136:140], math.Float32bits(d.Color[2]))
	binary.LittleEndian.PutUint32(buf[140:144], math.Float32bits(d.Intensity))
	binary.LittleEndian.PutUint32(buf[144:148], d.CascadeCount)
	binary.LittleEndian.PutUint32(buf[148:152], math.Float32bits(d.MapSize))
	binary.LittleEndian.PutUint32(buf[152:156], math.Float32bits(d.Bias))
	binary.LittleEndian.PutUint32(buf[156:160], math.Float32bits(d.NormalBias))
	binary.LittleEndian.PutUint32(buf[160:164], math.Float32bits(d.Specular[0]))
	binary.LittleEndian.PutUint32(buf[164:168], math.Float32bits(d.Specular[1]))
	binary.LittleEndian.PutUint32(buf[168:172], math.Float32bits(d.Specular[2]))
	// trailing padding left zeroed
	return buf
}

// GPUVolumeLightSource is the canonical WGSL definition of the VolumeLight struct.
// Matches GPUVolumeLight layout exactly (144 bytes, std430 aligned).
//
//go:embed assets/volume_light.wgsl
var GPUVolumeLightSource string

// GPUVolumeLight is the GPU-aligned uniform for one stencil-marked light volume.
// Point and spot lights share the layout; LightType selects the attenuation model
// in the shader. The same uniform drives both the stencil marking pass (which only
// reads VolumeTransform) and the additive shading pass.
// Matches the WGSL VolumeLight struct layout exactly (see GPUVolumeLightSource).
// Size: 144 bytes (std430 / WGSL aligned).
//
// Layout:
//
//	mat4x4<f32> volume_transform  (64 bytes, offset   0)
//	vec3<f32>   position          (12 bytes, offset  64)
//	f32         range             ( 4 bytes, offset  76)
//	vec3<f32>   color             (12 bytes, offset  80)
//	f32         intensity         ( 4 bytes, offset  92)
//	vec3<f32>   direction         (12 bytes, offset  96)
//	u32         light_type        ( 4 bytes, offset 108)
//	f32         inner_cone        ( 4 bytes, offset 112)
//	f32         outer_cone        ( 4 bytes, offset 116)
//	vec2<f32>   _pad0             ( 8 bytes, offset 120)
//	vec3<f32>   specular          (12 bytes, offset 128)
//	f32         _pad1             ( 4 bytes, offset 140)
type GPUVolumeLight struct {
	VolumeTransform [16]float32 // viewProj * model for the unit proxy mesh
	Position        [3]float32  // world-space light position
	Range           float32     // attenuation cutoff distance
	Color           [3]float32  // diffuse RGB color
	Intensity       float32     // scalar multiplier
	Direction       [3]float32  // cone axis (spot) or unused (point)
	LightType       uint32      // 1 = point, 2 = spot
	InnerCone       float32     // cos(inner half-angle) for spot
	OuterCone       float32     // cos(outer half-angle) for spot
	_pad0           [2]float32
	Specular        [3]float32 // specular highlight RGB color
	_pad1           float32
}

// Size returns the size of the GPUVolumeLight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (v *GPUVolumeLight) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the GPUVolumeLight struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (v *GPUVolumeLight) Marshal() []byte {
	buf := make([]byte, 144)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(v.VolumeTransform[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[68:72], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[76:80], math.Float32bits(v.Range))
	binary.LittleEndian.PutUint32(buf[80:84], math.Float32bits(v.Color[0]))
	binary.LittleEndian.PutUint32(buf[84:88], math.Float32bits(v.Color[1]))
	binary.LittleEndian.PutUint32(buf[88:92], math.Float32bits(v.Color[2]))
	binary.LittleEndian.PutUint32(buf[92:96], math.Float32bits(v.Intensity))
	binary.LittleEndian.PutUint32(buf[96:100], math.Float32bits(v.Direction[0]))
	binary.LittleEndian.PutUint32(buf[100:104], math.Float32bits(v.Direction[1]))
	binary.LittleEndian.PutUint32(buf[104:108], math.Float32bits(v.Direction[2]))
	binary.LittleEndian.PutUint32(buf[108:112], v.LightType)
	binary.LittleEndian.PutUint32(buf[112:116], math.Float32bits(v.InnerCone))
	binary.LittleEndian.PutUint32(buf[116:120], math.Float32bits(v.OuterCone))
	binary.LittleEndian.PutUint32(buf[120:124], 0) // padding
	binary.LittleEndian.PutUint32(buf[124:128], 0)
	binary.LittleEndian.PutUint32(buf[128:132], math.Float32bits(v.Specular[0]))
	binary.LittleEndian.PutUint32(buf[132:136], math.Float32bits(v.Specular[1]))
	binary.LittleEndian.PutUint32(buf[136:140], math.Float32bits(v.Specular[2]))
	// trailing padding left zeroed
	return buf
}

// GPUVolumeShadowSource is the canonical WGSL definition of the VolumeShadow
// struct. Matches GPUVolumeShadow layout exactly (400 bytes, std430 aligned).
//
//go:embed assets/volume_shadow.wgsl
var GPUVolumeShadowSource string

// GPUVolumeShadow is the GPU-aligned uniform the shadowed volume shade pass
// uses to project fragments into a point or spot light's shadow map. Spot
// lights fill only FaceViewProj[0]; point lights fill all six cube faces in
// shadow.PointFaceViewProjs order (+X, -X, +Y, -Y, +Z, -Z).
// Matches the WGSL VolumeShadow struct layout exactly (see GPUVolumeShadowSource).
// Size: 400 bytes (std430 / WGSL aligned).
//
// Layout:
//
//	array<mat4x4<f32>, 6> face_vp   (384 bytes, offset   0)
//	f32                   bias      (  4 bytes, offset 384)
//	f32                   map_size  (  4 bytes, offset 388)
//	vec2<f32>             _pad0     (  8 bytes, offset 392)
type GPUVolumeShadow struct {
	FaceViewProj [6][16]float32 // per-layer light view-projection matrices
	Bias         float32        // depth comparison bias
	MapSize      float32        // shadow map resolution in texels
	_pad0        [2]float32
}

// Size returns the size of the GPUVolumeShadow struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (400)
func (s *GPUVolumeShadow) Size() int {
	return int(unsafe.Sizeof(*s))
}

// Marshal serializes the GPUVolumeShadow struct into a byte buffer suitable
// for GPU uniform upload.
//
// Returns:
//   - []byte: 400-byte buffer ready for GPU upload
func (s *GPUVolumeShadow) Marshal() []byte {
	buf := make([]byte, 400)
	off := 0
	for f := 0; f < 6; f++ {
		for i := 0; i < 16; i++ {
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(s.FaceViewProj[f][i]))
			off += 4
		}
	}
	binary.LittleEndian.PutUint32(buf[384:388], math.Float32bits(s.Bias))
	binary.LittleEndian.PutUint32(buf[388:392], math.Float32bits(s.MapSize))
	// trailing padding left zeroed
	return buf
}

// GPUComposeDataSource is the canonical WGSL definition of the ComposeData struct.
// Matches GPUComposeData layout exactly (64 bytes, std430 aligned).
//
//go:embed assets/compose_data.wgsl
var GPUComposeDataSource string

// GPUComposeData is the GPU-aligned uniform for the final composition pass:
// hemispheric ambient lighting plus distance fog.
// Matches the WGSL ComposeData struct layout exactly (see GPUComposeDataSource).
// Size: 64 bytes (std430 / WGSL aligned).
//
// Layout:
//
//	vec3<f32> sky_color             (12 bytes, offset  0)
//	f32       hemisphere_intensity  ( 4 bytes, offset 12)
//	vec3<f32> ground_color          (12 bytes, offset 16)
//	f32       fog_start             ( 4 bytes, offset 28)
//	vec3<f32> fog_color             (12 bytes, offset 32)
//	f32       fog_end               ( 4 bytes, offset 44)
//	u32       fog_enabled           ( 4 bytes, offset 48)
//	vec3<f32> _pad0                 (12 bytes, offset 52)
type GPUComposeData struct {
	SkyColor            [3]float32 // ambient RGB for upward-facing surfaces
	HemisphereIntensity float32    // scalar multiplier on the blended ambient term
	GroundColor         [3]float32 // ambient RGB for downward-facing surfaces
	FogStart            float32    // view distance where fog begins
	FogColor            [3]float32 // fog RGB
	FogEnd              float32    // view distance where fog saturates
	FogEnabled          uint32     // 1 = blend fog, 0 = skip
	_pad0               [3]float32
}

// Size returns the size of the GPUComposeData struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (c *GPUComposeData) Size() int {
	return int(unsafe.Sizeof(*c))
}

// Marshal serializes the GPUComposeData struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (c *GPUComposeData) Marshal() []byte {
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(c.SkyColor[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(c.SkyColor[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(c.SkyColor[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(c.HemisphereIntensity))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(c.GroundColor[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(c.GroundColor[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(c.GroundColor[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(c.FogStart))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(c.FogColor[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(c.FogColor[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(c.FogColor[2]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(c.FogEnd))
	binary.LittleEndian.PutUint32(buf[48:52], c.FogEnabled)
	// trailing padding left zeroed
	return buf
}

// ToGPUDirectionalLight builds the uniform for a directional light's full-screen
// accumulation pass. When cascades is non-nil and the light casts shadows, the
// cascade transforms from the set's last Update are included; otherwise the
// shadow fields are zeroed and casts_shadows is 0.
//
// Parameters:
//   - l: the directional light to convert
//   - cascades: the cascade set rendered for this light, or nil
//
// Returns:
//   - GPUDirectionalLight: the GPU-aligned representation
func ToGPUDirectionalLight(l Light, cascades shadow.CascadeSet) GPUDirectionalLight {
	dir := l.Direction()
	color := l.Color()
	spec := l.SpecularColor()
	d := GPUDirectionalLight{
		Direction: [3]float32{dir.X(), dir.Y(), dir.Z()},
		Color:     [3]float32{color.X(), color.Y(), color.Z()},
		Intensity: l.Intensity(),
		Specular:  [3]float32{spec.X(), spec.Y(), spec.Z()},
	}
	if cascades == nil || !l.CastsShadows() {
		return d
	}

	d.CastsShadows = 1
	d.WorldToShadow = [16]float32(cascades.WorldToShadow())
	d.CascadeOffsetX, d.CascadeOffsetY, d.CascadeScale = cascades.CascadeVectors()
	d.CascadeCount = uint32(cascades.TotalCascades())
	d.MapSize = float32(cascades.MapSize())
	d.Bias = DefaultShadowBias
	d.NormalBias = DefaultShadowNormalBiasScale * 2 * cascades.ShadowBoundRadius() / float32(cascades.MapSize())
	return d
}

// ToGPUVolumeLight builds the uniform for a point or spot light's stencil-marked
// volume passes. The volume transform maps the renderer's unit proxy mesh (sphere
// for point lights, cone for spot lights) into clip space, inflated slightly so
// the tessellated mesh fully covers the analytic bound.
//
// Parameters:
//   - l: the point or spot light to convert
//   - viewProj: the camera view-projection matrix
//
// Returns:
//   - GPUVolumeLight: the GPU-aligned representation
func ToGPUVolumeLight(l Light, viewProj mgl32.Mat4) GPUVolumeLight {
	pos := l.Position()
	dir := l.Direction()
	color := l.Color()
	spec := l.SpecularColor()
	v := GPUVolumeLight{
		Position:  [3]float32{pos.X(), pos.Y(), pos.Z()},
		Range:     l.Range(),
		Color:     [3]float32{color.X(), color.Y(), color.Z()},
		Intensity: l.Intensity(),
		Direction: [3]float32{dir.X(), dir.Y(), dir.Z()},
		LightType: uint32(l.Type()),
		InnerCone: l.InnerCone(),
		OuterCone: l.OuterCone(),
		Specular:  [3]float32{spec.X(), spec.Y(), spec.Z()},
	}
	v.VolumeTransform = [16]float32(viewProj.Mul4(VolumeTransform(l)))
	return v
}

// VolumeTransform builds the world-space model matrix that maps the renderer's
// unit proxy mesh onto the light's area of effect. Point lights scale a unit
// sphere by range; spot lights orient a unit cone (apex at origin, opening
// toward +Z with unit height and unit base radius) along the light direction and
// scale it to the cone's range and outer angle.
//
// Parameters:
//   - l: the point or spot light
//
// Returns:
//   - mgl32.Mat4: the model matrix for the proxy mesh
func VolumeTransform(l Light) mgl32.Mat4 {
	pos := l.Position()
	r := l.Range() * volumePadding

	if l.Type() == LightTypePoint {
		return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(mgl32.Scale3D(r, r, r))
	}

	// Base radius from the outer cone cosine: tan(acos(c)) = sqrt(1-c²)/c.
	c := l.OuterCone()
	if c < 0.01 {
		c = 0.01
	}
	baseRadius := r * math32.Sqrt(1-c*c) / c

	dir := l.Direction()
	up := common.StableUpFor(dir)
	right := up.Cross(dir).Normalize()
	orient := mgl32.Mat4FromCols(
		right.Vec4(0),
		up.Vec4(0),
		dir.Vec4(0),
		pos.Vec4(1),
	)
	return orient.Mul4(mgl32.Scale3D(baseRadius, baseRadius, r))
}
