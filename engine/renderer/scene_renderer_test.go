package renderer

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/profiler"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/effect"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/lumen-go/engine/shadow"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawRecord captures one draw call and the pass it was recorded in.
type drawRecord struct {
	pass        string
	pipelineKey string
	mesh        binding.Binding
	fullscreen  bool
}

// fakeRenderer records the pass and draw sequence without touching a GPU.
type fakeRenderer struct {
	registered  []string
	passLabels  []string
	draws       []drawRecord
	stencilRefs []uint32

	currentPass string
	frames      int
	presented   int
}

var _ Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{}
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline { return nil }

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		f.registered = append(f.registered, p.PipelineKey())
	}
	return nil
}

func (f *fakeRenderer) Resize(width, height int)          {}
func (f *fakeRenderer) SetPresentMode(mode PresentMode)   {}
func (f *fakeRenderer) SurfaceFormat() wgpu.TextureFormat { return wgpu.TextureFormatBGRA8Unorm }
func (f *fakeRenderer) SurfaceSize() (uint32, uint32)     { return 800, 600 }
func (f *fakeRenderer) SampleCount() MSAASampleCount      { return MSAAOff }

func (f *fakeRenderer) InitMeshBuffers(bnd binding.Binding, vertexData, indexData []byte, indexCount int) error {
	bnd.SetIndexCount(indexCount)
	return nil
}

func (f *fakeRenderer) InitBindGroup(bnd binding.Binding, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return nil
}

func (f *fakeRenderer) InitTextureView(bnd binding.Binding, bindingKey int, stagingData common.TextureStagingData) error {
	return nil
}

func (f *fakeRenderer) InitSampler(bnd binding.Binding, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []binding.BufferWrite) {}

func (f *fakeRenderer) CreateColorTarget(label string, width, height uint32, format wgpu.TextureFormat) (*RenderTarget, error) {
	return &RenderTarget{Format: format, Width: width, Height: height}, nil
}

func (f *fakeRenderer) CreateDepthStencilTarget(label string, width, height uint32) (*RenderTarget, error) {
	return &RenderTarget{Format: effect.FormatDepthStencil, Width: width, Height: height}, nil
}

func (f *fakeRenderer) CreateDepthArrayTarget(label string, size, layers uint32) (*DepthArrayTarget, error) {
	return &DepthArrayTarget{
		LayerViews: make([]*wgpu.TextureView, layers),
		Format:     effect.FormatShadowDepth,
		Size:       size,
		Layers:     layers,
	}, nil
}

func (f *fakeRenderer) CreateComparisonSampler() (*wgpu.Sampler, error) { return nil, nil }

func (f *fakeRenderer) BeginFrame() error {
	f.frames++
	return nil
}

func (f *fakeRenderer) SurfaceAttachment(load bool, clear wgpu.Color) ColorAttachment {
	return ColorAttachment{Load: load, ClearColor: clear}
}

func (f *fakeRenderer) BeginPass(cfg PassConfig) error {
	f.passLabels = append(f.passLabels, cfg.Label)
	f.currentPass = cfg.Label
	return nil
}

func (f *fakeRenderer) SetStencilReference(ref uint32) {
	f.stencilRefs = append(f.stencilRefs, ref)
}

func (f *fakeRenderer) Draw(pipelineKey string, mesh binding.Binding, instanceCount uint32, bindGroups []binding.Binding) error {
	f.draws = append(f.draws, drawRecord{pass: f.currentPass, pipelineKey: pipelineKey, mesh: mesh})
	return nil
}

func (f *fakeRenderer) DrawFullscreen(pipelineKey string, bindGroups []binding.Binding) error {
	f.draws = append(f.draws, drawRecord{pass: f.currentPass, pipelineKey: pipelineKey, fullscreen: true})
	return nil
}

func (f *fakeRenderer) EndPass()  { f.currentPass = "" }
func (f *fakeRenderer) EndFrame() {}
func (f *fakeRenderer) Present()  { f.presented++ }

func (f *fakeRenderer) drawsIn(pass string) []drawRecord {
	var out []drawRecord
	for _, d := range f.draws {
		if d.pass == pass {
			out = append(out, d)
		}
	}
	return out
}

// fakeDrawable is a minimal Drawable with fixed bounds and flags.
type fakeDrawable struct {
	mesh        binding.Binding
	object      binding.Binding
	bounds      common.BoundingSphere
	transparent bool
	castsShadow bool
	deferred    bool
	ready       bool
}

var _ Drawable = &fakeDrawable{}

func newFakeDrawable(center mgl32.Vec3, radius float32) *fakeDrawable {
	return &fakeDrawable{
		mesh:        binding.NewBinding("test mesh"),
		object:      binding.NewBinding("test object"),
		bounds:      common.BoundingSphere{Center: center, Radius: radius},
		castsShadow: true,
		deferred:    true,
		ready:       true,
	}
}

func (d *fakeDrawable) Mesh() binding.Binding                 { return d.mesh }
func (d *fakeDrawable) Object() binding.Binding               { return d.object }
func (d *fakeDrawable) ObjectData() effect.GPUObjectData      { return effect.GPUObjectData{} }
func (d *fakeDrawable) BoundingSphere() common.BoundingSphere { return d.bounds }
func (d *fakeDrawable) CastsShadow() bool                     { return d.castsShadow }
func (d *fakeDrawable) Transparent() bool                     { return d.transparent }
func (d *fakeDrawable) DeferredEnabled() bool                 { return d.deferred }
func (d *fakeDrawable) Ready() bool                           { return d.ready }

func testFrameInput(lights light.SceneLights, drawables ...Drawable) FrameInput {
	return FrameInput{
		Pose: shadow.CameraPose{
			Position:  mgl32.Vec3{0, 0, 0},
			Direction: mgl32.Vec3{0, 0, -1},
			Up:        mgl32.Vec3{0, 1, 0},
			FovY:      math32.Pi / 3,
			Aspect:    800.0 / 600.0,
		},
		Near:      0.1,
		Far:       500,
		Lights:    lights,
		Drawables: drawables,
	}
}

func shadowCastingSun(t *testing.T) light.SceneLights {
	t.Helper()
	lights := light.NewSceneLights()
	sun := light.NewLight(light.LightTypeDirectional,
		light.WithDirection(0.3, -1, 0.2),
		light.WithCastsShadows(true),
	)
	require.NoError(t, lights.AddLight(sun))
	return lights
}

func TestNewSceneRenderer_RegistersAllPipelines(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	assert.ElementsMatch(t, []string{
		effect.PipelineGBuffer,
		effect.PipelineShadowDepth,
		effect.PipelineDirectionalLight,
		effect.PipelineVolumeStencil,
		effect.PipelineVolumeShade,
		effect.PipelineVolumeShadeShadowed,
		effect.PipelineCompose,
		effect.PipelineForward,
	}, f.registered)
}

func TestRenderFrame_PassOrder(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	lights := shadowCastingSun(t)
	point := light.NewLight(light.LightTypePoint,
		light.WithPosition(0, 0, -5),
		light.WithRange(3),
	)
	require.NoError(t, lights.AddLight(point))

	opaque := newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1)
	glass := newFakeDrawable(mgl32.Vec3{0, 0, -8}, 1)
	glass.transparent = true

	require.NoError(t, sr.RenderFrame(testFrameInput(lights, opaque, glass)))

	// Three default cascades, then geometry, lighting, one volume pass pair,
	// compose, forward.
	assert.Equal(t, []string{
		"shadow cascade 0",
		"shadow cascade 1",
		"shadow cascade 2",
		"gbuffer",
		"light accumulation",
		"volume stencil",
		"volume shade",
		"compose",
		"forward",
	}, f.passLabels)
	assert.Equal(t, 1, f.frames)
	assert.Equal(t, 1, f.presented)
}

func TestRenderFrame_DrawsRouteToExpectedPipelines(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	lights := shadowCastingSun(t)
	opaque := newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1)
	glass := newFakeDrawable(mgl32.Vec3{0, 0, -8}, 1)
	glass.transparent = true

	require.NoError(t, sr.RenderFrame(testFrameInput(lights, opaque, glass)))

	gbufferDraws := f.drawsIn("gbuffer")
	require.Len(t, gbufferDraws, 1)
	assert.Equal(t, effect.PipelineGBuffer, gbufferDraws[0].pipelineKey)

	lightDraws := f.drawsIn("light accumulation")
	require.Len(t, lightDraws, 1)
	assert.Equal(t, effect.PipelineDirectionalLight, lightDraws[0].pipelineKey)
	assert.True(t, lightDraws[0].fullscreen)

	composeDraws := f.drawsIn("compose")
	require.Len(t, composeDraws, 1)
	assert.Equal(t, effect.PipelineCompose, composeDraws[0].pipelineKey)
	assert.True(t, composeDraws[0].fullscreen)

	forwardDraws := f.drawsIn("forward")
	require.Len(t, forwardDraws, 1)
	assert.Equal(t, effect.PipelineForward, forwardDraws[0].pipelineKey)
}

func TestRenderFrame_CullsDrawablesOutsideFrustum(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	visible := newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1)
	visible.castsShadow = false
	behind := newFakeDrawable(mgl32.Vec3{0, 0, 50}, 1) // camera looks toward -Z
	behind.castsShadow = false
	notReady := newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1)
	notReady.ready = false

	require.NoError(t, sr.RenderFrame(testFrameInput(light.NewSceneLights(), visible, behind, notReady)))

	assert.Len(t, f.drawsIn("gbuffer"), 1)
	stats := sr.Stats()
	assert.Equal(t, 1, stats.VisibleDrawables)
	assert.Equal(t, 1, stats.CulledDrawables)
}

func TestRenderFrame_NoShadowCasterSkipsShadowPasses(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	// A directional light that does not cast shadows still accumulates, but
	// no cascade passes run.
	lights := light.NewSceneLights()
	sun := light.NewLight(light.LightTypeDirectional, light.WithDirection(0, -1, 0))
	require.NoError(t, lights.AddLight(sun))

	opaque := newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1)
	require.NoError(t, sr.RenderFrame(testFrameInput(lights, opaque)))

	for _, label := range f.passLabels {
		assert.NotContains(t, label, "shadow cascade")
	}
	assert.Len(t, f.drawsIn("light accumulation"), 1)
	assert.Equal(t, 0, sr.Stats().ShadowDrawCalls)
}

func TestRenderFrame_ShadowPassesDrawCasters(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	caster := newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1)
	noShadow := newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1)
	noShadow.castsShadow = false

	require.NoError(t, sr.RenderFrame(testFrameInput(shadowCastingSun(t), caster, noShadow)))

	// The near drawable sits inside every cascade's bound sphere, so it is
	// drawn once per cascade; the non-caster never is.
	assert.Equal(t, 3, sr.Stats().ShadowDrawCalls)
	for i := 0; i < 3; i++ {
		draws := f.drawsIn(f.passLabels[i])
		require.Len(t, draws, 1)
		assert.Equal(t, effect.PipelineShadowDepth, draws[0].pipelineKey)
	}
}

func TestRenderFrame_VolumeLightOutsideFrustumSkipped(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	lights := light.NewSceneLights()
	inView := light.NewLight(light.LightTypePoint, light.WithPosition(0, 0, -10), light.WithRange(2))
	behind := light.NewLight(light.LightTypePoint, light.WithPosition(0, 0, 100), light.WithRange(2))
	require.NoError(t, lights.AddLight(inView))
	require.NoError(t, lights.AddLight(behind))

	require.NoError(t, sr.RenderFrame(testFrameInput(lights, newFakeDrawable(mgl32.Vec3{0, 0, -10}, 1))))

	stencilPasses := 0
	for _, label := range f.passLabels {
		if label == "volume stencil" {
			stencilPasses++
		}
	}
	assert.Equal(t, 1, stencilPasses)
	assert.Equal(t, 1, sr.Stats().VolumeLightsDrawn)
}

func TestRenderFrame_VolumeShadeUsesStencilReferenceZero(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	lights := light.NewSceneLights()
	spot := light.NewLight(light.LightTypeSpot,
		light.WithPosition(0, 2, -6),
		light.WithDirection(0, -1, 0),
		light.WithRange(5),
		light.WithSpotCone(20, 30),
	)
	require.NoError(t, lights.AddLight(spot))

	require.NoError(t, sr.RenderFrame(testFrameInput(lights, newFakeDrawable(mgl32.Vec3{0, 0, -6}, 1))))

	require.Len(t, f.stencilRefs, 1)
	assert.Equal(t, uint32(0), f.stencilRefs[0])

	shadeDraws := f.drawsIn("volume shade")
	require.Len(t, shadeDraws, 1)
	assert.Equal(t, effect.PipelineVolumeShade, shadeDraws[0].pipelineKey)
}

func TestRenderFrame_NoTransparentSkipsForwardPass(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	require.NoError(t, sr.RenderFrame(testFrameInput(light.NewSceneLights(), newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1))))

	assert.NotContains(t, f.passLabels, "forward")
	// Compose still runs; the HDR clear pass runs even without lights.
	assert.Contains(t, f.passLabels, "compose")
	assert.Contains(t, f.passLabels, "light accumulation")
	assert.Empty(t, f.drawsIn("light accumulation"))
}

func TestRenderFrame_NoVisibleDrawablesSkipsLightingAndCompose(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	// A lit but empty scene: no deferred geometry means no light
	// accumulation and no composition, only the clearing passes.
	lights := light.NewSceneLights()
	sun := light.NewLight(light.LightTypeDirectional, light.WithDirection(0, -1, 0))
	require.NoError(t, lights.AddLight(sun))

	require.NoError(t, sr.RenderFrame(testFrameInput(lights)))

	assert.NotContains(t, f.passLabels, "light accumulation")
	assert.NotContains(t, f.passLabels, "compose")
	assert.Empty(t, f.drawsIn("gbuffer"))
	assert.Equal(t, 0, sr.Stats().DrawCalls)

	// The frame still presents: the forward pass clears the swapchain.
	assert.Contains(t, f.passLabels, "forward")
	assert.Equal(t, 1, f.presented)
}

func TestRenderFrame_ShadowsRequireOpaqueVisible(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	glass := newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1)
	glass.transparent = true

	require.NoError(t, sr.RenderFrame(testFrameInput(shadowCastingSun(t), glass)))

	// A shadow-casting sun with nothing opaque to receive it renders no
	// cascade passes at all.
	for _, label := range f.passLabels {
		assert.NotContains(t, label, "shadow cascade")
	}
	assert.Equal(t, 0, sr.Stats().ShadowDrawCalls)
	assert.Len(t, f.drawsIn("forward"), 1)
}

func TestRenderFrame_DeferredDisabledRoutesForward(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	sprite := newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1)
	sprite.deferred = false

	require.NoError(t, sr.RenderFrame(testFrameInput(light.NewSceneLights(), sprite)))

	assert.Empty(t, f.drawsIn("gbuffer"))
	assert.NotContains(t, f.passLabels, "compose")

	forwardDraws := f.drawsIn("forward")
	require.Len(t, forwardDraws, 1)
	assert.Equal(t, effect.PipelineForward, forwardDraws[0].pipelineKey)
}

func TestRenderFrame_TransparentDrawnBackToFront(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	near := newFakeDrawable(mgl32.Vec3{0, 0, -4}, 1)
	near.transparent = true
	far := newFakeDrawable(mgl32.Vec3{0, 0, -40}, 1)
	far.transparent = true

	// Register near first; the forward pass must still draw far first.
	require.NoError(t, sr.RenderFrame(testFrameInput(light.NewSceneLights(), near, far)))

	forwardDraws := f.drawsIn("forward")
	require.Len(t, forwardDraws, 2)
	assert.Same(t, far.mesh, forwardDraws[0].mesh)
	assert.Same(t, near.mesh, forwardDraws[1].mesh)
}

func TestRenderFrame_SpotCasterRendersShadowMap(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	lights := light.NewSceneLights()
	spot := light.NewLight(light.LightTypeSpot,
		light.WithPosition(0, 2, -6),
		light.WithDirection(0, -1, 0),
		light.WithRange(5),
		light.WithSpotCone(20, 30),
		light.WithCastsShadows(true),
	)
	require.NoError(t, lights.AddLight(spot))

	caster := newFakeDrawable(mgl32.Vec3{0, 0, -6}, 1)
	require.NoError(t, sr.RenderFrame(testFrameInput(lights, caster)))

	assert.Contains(t, f.passLabels, "spot shadow")
	draws := f.drawsIn("spot shadow")
	require.Len(t, draws, 1)
	assert.Equal(t, effect.PipelineShadowDepth, draws[0].pipelineKey)
	assert.Equal(t, 1, sr.Stats().ShadowDrawCalls)
}

func TestRenderFrame_PointCasterRendersSixFaces(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	lights := light.NewSceneLights()
	point := light.NewLight(light.LightTypePoint,
		light.WithPosition(0, 0, -5),
		light.WithRange(4),
		light.WithCastsShadows(true),
	)
	require.NoError(t, lights.AddLight(point))

	caster := newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1)
	farAway := newFakeDrawable(mgl32.Vec3{0, 0, -100}, 1)
	require.NoError(t, sr.RenderFrame(testFrameInput(lights, caster, farAway)))

	facePasses := 0
	for _, label := range f.passLabels {
		if strings.HasPrefix(label, "point shadow face") {
			facePasses++
		}
	}
	assert.Equal(t, 6, facePasses)
	// Only the drawable inside the light's bounding sphere draws, once per face.
	assert.Equal(t, 6, sr.Stats().ShadowDrawCalls)
}

func TestRenderFrame_VolumeCasterShadesWithShadowedPipeline(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	lights := light.NewSceneLights()
	spot := light.NewLight(light.LightTypeSpot,
		light.WithPosition(0, 2, -6),
		light.WithDirection(0, -1, 0),
		light.WithRange(5),
		light.WithSpotCone(20, 30),
		light.WithCastsShadows(true),
	)
	require.NoError(t, lights.AddLight(spot))

	require.NoError(t, sr.RenderFrame(testFrameInput(lights, newFakeDrawable(mgl32.Vec3{0, 0, -6}, 1))))

	// The caster's shade draw samples its freshly rendered shadow map.
	shadeDraws := f.drawsIn("volume shade")
	require.Len(t, shadeDraws, 1)
	assert.Equal(t, effect.PipelineVolumeShadeShadowed, shadeDraws[0].pipelineKey)
}

func TestRenderFrame_VolumeCasterOutsideFrustumSkipsShadowMap(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	lights := light.NewSceneLights()
	behind := light.NewLight(light.LightTypePoint,
		light.WithPosition(0, 0, 100),
		light.WithRange(3),
		light.WithCastsShadows(true),
	)
	require.NoError(t, lights.AddLight(behind))

	require.NoError(t, sr.RenderFrame(testFrameInput(lights, newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1))))

	for _, label := range f.passLabels {
		assert.NotContains(t, label, "point shadow")
	}
	assert.Equal(t, 0, sr.Stats().ShadowDrawCalls)
}

func TestRenderFrame_CollectorReceivesPassTrace(t *testing.T) {
	f := newFakeRenderer()
	trace := profiler.NewFrameTrace()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2), WithFrameCollector(trace))
	require.NoError(t, err)
	defer sr.Release()

	opaque := newFakeDrawable(mgl32.Vec3{0, 0, -5}, 1)
	glass := newFakeDrawable(mgl32.Vec3{0, 0, -8}, 1)
	glass.transparent = true

	require.NoError(t, sr.RenderFrame(testFrameInput(shadowCastingSun(t), opaque, glass)))

	assert.Equal(t, uint64(1), trace.Frames())

	// The trace mirrors the recorded pass order exactly.
	samples := trace.Passes()
	require.Len(t, samples, len(f.passLabels))
	for i, s := range samples {
		assert.Equal(t, f.passLabels[i], s.Name, "pass %d", i)
	}

	stats := sr.Stats()
	assert.Equal(t, stats.DrawCalls+stats.ShadowDrawCalls, trace.DrawCalls())
}

func TestSceneRenderer_CascadeDefaultsMatchRanges(t *testing.T) {
	f := newFakeRenderer()
	sr, err := NewSceneRenderer(f, WithCullWorkers(2))
	require.NoError(t, err)
	defer sr.Release()

	assert.Equal(t, 3, sr.Cascades().TotalCascades())
	assert.Equal(t, DefaultCascadeRanges, sr.Cascades().Ranges())
}
