package renderer

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/profiler"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/effect"
	"github.com/Carmen-Shannon/lumen-go/engine/shadow"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultCascadeRanges is the cascade split used when no cascade set is
// supplied: three cascades covering 1 to 200 world units.
var DefaultCascadeRanges = []float32{1, 10, 50, 200}

// FrameInput carries everything one frame needs: the camera pose and depth
// range, the scene's lights, and the drawables to cull and render.
type FrameInput struct {
	// Pose is the camera pose the frame is rendered from.
	Pose shadow.CameraPose
	// Near is the camera near plane distance.
	Near float32
	// Far is the camera far plane distance.
	Far float32
	// Lights is the scene's light registry.
	Lights light.SceneLights
	// Drawables are the candidate drawables; the renderer culls and routes them.
	Drawables []Drawable
}

// FrameStats reports what the last RenderFrame actually did.
type FrameStats struct {
	// VisibleDrawables is the number of drawables that passed camera culling.
	VisibleDrawables int
	// CulledDrawables is the number of ready drawables rejected by camera culling.
	CulledDrawables int
	// DrawCalls counts geometry, lighting, compose, and forward draws.
	DrawCalls int
	// ShadowDrawCalls counts draws into the cascade, spot, and point shadow
	// maps.
	ShadowDrawCalls int
	// VolumeLightsDrawn is the number of point/spot lights that survived culling.
	VolumeLightsDrawn int
}

// sceneRendererImpl is the implementation of the SceneRenderer interface.
type sceneRendererImpl struct {
	mu sync.Mutex

	r Renderer

	gbuffer     GBuffer
	shadowMap   ShadowMap
	spotShadow  VolumeShadowMap
	pointShadow VolumeShadowMap
	lightBuffer LightBuffer
	volumes     LightVolumes
	composer    Composer

	cascades shadow.CascadeSet

	// collector, when set, receives the pass trace of every frame.
	collector profiler.Collector

	// camera is group 0 of the geometry, shadow-independent forward, and
	// geometry-phase draws.
	camera binding.Binding

	// cullPool runs the per-frame CPU frustum cull in parallel. Workers
	// persist across frames.
	cullPool    worker.DynamicWorkerPool
	cullWorkers int

	// Reused across frames to avoid per-frame allocations.
	writePool []binding.BufferWrite

	stats FrameStats
}

// SceneRenderer drives the deferred frame: cascade shadow depth passes, depth
// passes for shadow-casting spot and point lights, the
// geometry buffer pass, HDR light accumulation (full-screen directional
// lights, then stencil-marked proxy volumes for point and spot lights), the
// full-screen composition to the swapchain, and a final forward pass for
// transparent and deferred-disabled drawables. One RenderFrame call records,
// submits, and presents a complete frame.
//
// Each phase is gated on having work: shadow maps render only when a
// shadow-casting light and an opaque visible drawable both exist, the
// lighting and compose passes run only when at least one visible drawable
// took the deferred path, and the forward pass always comes last so blending
// against the composited opaque scene is correct.
type SceneRenderer interface {
	// RenderFrame culls, uploads uniforms, and records all passes for one
	// frame, then submits and presents it.
	//
	// Parameters:
	//   - in: the frame's camera, lights, and drawables
	//
	// Returns:
	//   - error: an error if the swapchain or a pass fails
	RenderFrame(in FrameInput) error

	// Cascades returns the cascade set driving the shadow math. Callers may
	// inspect it; RenderFrame owns calling Update.
	//
	// Returns:
	//   - shadow.CascadeSet: the cascade set
	Cascades() shadow.CascadeSet

	// Stats returns the statistics of the last rendered frame.
	//
	// Returns:
	//   - FrameStats: the last frame's counters
	Stats() FrameStats

	// Resize recreates the size-dependent offscreen targets. Call after
	// Renderer.Resize when the surface size changes.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if target recreation fails
	Resize(width, height uint32) error

	// Release releases all GPU resources owned by the frame graph.
	Release()
}

var _ SceneRenderer = &sceneRendererImpl{}

// NewSceneRenderer creates the full deferred frame graph on the given
// renderer: registers all pipelines, creates the geometry buffer, shadow map,
// light buffer, proxy volumes, and composer sized to the current surface.
//
// Parameters:
//   - r: the renderer to build the frame graph on
//   - options: functional options to further configure the scene renderer
//
// Returns:
//   - SceneRenderer: the created scene renderer
//   - error: an error if pipeline registration or resource creation fails
func NewSceneRenderer(r Renderer, options ...SceneRendererBuilderOption) (SceneRenderer, error) {
	s := &sceneRendererImpl{
		r:           r,
		cullWorkers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(s)
	}
	if s.cascades == nil {
		s.cascades = shadow.NewCascadeSet(DefaultCascadeRanges)
	}
	s.cullPool = worker.NewDynamicWorkerPool(s.cullWorkers, 256, 1*time.Second)

	if err := r.RegisterPipelines(
		effect.GBufferPipeline(),
		effect.ShadowDepthPipeline(),
		effect.DirectionalLightPipeline(),
		effect.VolumeStencilPipeline(),
		effect.VolumeShadePipeline(),
		effect.VolumeShadeShadowedPipeline(),
		effect.ComposePipeline(),
		effect.ForwardPipeline(),
	); err != nil {
		return nil, err
	}

	width, height := r.SurfaceSize()
	var err error
	if s.gbuffer, err = NewGBuffer(r, width, height); err != nil {
		return nil, err
	}
	if s.shadowMap, err = NewShadowMap(r, s.cascades); err != nil {
		s.Release()
		return nil, err
	}
	if s.spotShadow, err = NewVolumeShadowMap(r, light.LightTypeSpot, DefaultVolumeShadowMapSize); err != nil {
		s.Release()
		return nil, err
	}
	if s.pointShadow, err = NewVolumeShadowMap(r, light.LightTypePoint, DefaultVolumeShadowMapSize); err != nil {
		s.Release()
		return nil, err
	}
	if s.lightBuffer, err = NewLightBuffer(r, width, height, s.shadowMap); err != nil {
		s.Release()
		return nil, err
	}
	if s.volumes, err = NewLightVolumes(r); err != nil {
		s.Release()
		return nil, err
	}
	if s.composer, err = NewComposer(r); err != nil {
		s.Release()
		return nil, err
	}

	s.camera = binding.NewBinding("camera")
	if err = r.InitBindGroup(s.camera, effect.CameraLayout(), nil, nil); err != nil {
		s.Release()
		return nil, err
	}

	return s, nil
}

// volumeDraw is one culled point or spot light queued for its stencil/shade
// pass pair.
type volumeDraw struct {
	slot  int
	mesh  binding.Binding
	light light.Light
}

func (s *sceneRendererImpl) RenderFrame(in FrameInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := FrameStats{}

	view := common.LookAtDir(in.Pose.Position, in.Pose.Direction, in.Pose.Up)
	proj := common.PerspectiveZO(in.Pose.FovY, in.Pose.Aspect, in.Near, in.Far)
	viewProj := proj.Mul4(view)
	invViewProj := viewProj.Inv()
	frustum := common.ExtractFrustum(viewProj)

	// Parallel CPU frustum cull. Each worker fills a disjoint slice range, so
	// no synchronization is needed beyond the barrier.
	visible := s.cullVisible(&frustum, in.Drawables)

	// Route visible drawables: opaque deferred drawables fill the geometry
	// buffer, everything else (transparent or deferred-disabled) goes through
	// the forward pass after composition.
	var deferred, forward []Drawable
	opaqueVisible := 0
	for i, d := range in.Drawables {
		if !d.Ready() {
			continue
		}
		if !visible[i] {
			stats.CulledDrawables++
			continue
		}
		stats.VisibleDrawables++
		if !d.Transparent() {
			opaqueVisible++
		}
		if d.Transparent() || !d.DeferredEnabled() {
			forward = append(forward, d)
		} else {
			deferred = append(deferred, d)
		}
	}
	// The deferred phase runs only when it has geometry; composition reads
	// its targets, so it is skipped together with it.
	deferredRan := len(deferred) > 0

	var caster light.Light
	if in.Lights != nil {
		caster = in.Lights.ShadowCaster()
	}
	// Shadow maps render only when something opaque can receive them. With
	// shadows skipped, the lights upload with casts_shadows zeroed, so every
	// cascade lookup short-circuits to fully lit.
	drawShadows := caster != nil && opaqueVisible > 0
	if drawShadows {
		s.cascades.Update(in.Pose, caster.Direction())
	}

	// Stage every uniform upload for the frame, then flush once.
	width, height := s.gbuffer.Width(), s.gbuffer.Height()
	frame := light.GPUDeferredFrame{
		InvViewProj: [16]float32(invViewProj),
		CameraPos:   [3]float32{in.Pose.Position.X(), in.Pose.Position.Y(), in.Pose.Position.Z()},
		ScreenSize:  [2]float32{float32(width), float32(height)},
		Near:        in.Near,
		Far:         in.Far,
	}

	writes := s.writePool[:0]
	cam := effect.GPUCameraData{ViewProj: [16]float32(viewProj)}
	writes = append(writes, binding.BufferWrite{Target: s.camera, Binding: 0, Data: cam.Marshal()})
	writes = append(writes, binding.BufferWrite{Target: s.lightBuffer.FrameBinding(), Binding: 0, Data: frame.Marshal()})
	writes = append(writes, s.composer.Writes(frame, composeData(in.Lights))...)

	if drawShadows {
		writes = append(writes, s.shadowMap.Writes(s.cascades)...)
	}

	// Off-screen drawables can still cast shadows into view, so object
	// uniforms upload for every ready drawable, not just visible ones.
	for _, d := range in.Drawables {
		if !d.Ready() {
			continue
		}
		data := d.ObjectData()
		writes = append(writes, binding.BufferWrite{Target: d.Object(), Binding: 0, Data: data.Marshal()})
	}

	// Light uniforms upload only when the deferred phase consumes them.
	var directionals []light.Light
	if deferredRan && in.Lights != nil {
		directionals = in.Lights.Directional()
		if len(directionals) > light.MaxDirectionalLights {
			directionals = directionals[:light.MaxDirectionalLights]
		}
	}
	for i, l := range directionals {
		var cs shadow.CascadeSet
		if drawShadows && l == caster {
			cs = s.cascades
		}
		d := light.ToGPUDirectionalLight(l, cs)
		writes = append(writes, binding.BufferWrite{Target: s.lightBuffer.DirectionalBinding(i), Binding: 0, Data: d.Marshal()})
	}

	// The first shadow-casting spot and point light that survive culling get
	// their shadow maps rendered this frame and shade through the shadowed
	// pipeline variant.
	var spotCaster, pointCaster light.Light
	var volumeDraws []volumeDraw
	if deferredRan && in.Lights != nil {
		slot := 0
		for _, l := range append(in.Lights.Point(), in.Lights.Spot()...) {
			if slot >= light.MaxPointLights+light.MaxSpotLights {
				break
			}
			center, radius := l.BoundingSphere()
			if !frustum.IntersectsSphere(common.BoundingSphere{Center: center, Radius: radius}) {
				continue
			}
			if l.CastsShadows() {
				switch {
				case l.Type() == light.LightTypeSpot && spotCaster == nil:
					spotCaster = l
				case l.Type() == light.LightTypePoint && pointCaster == nil:
					pointCaster = l
				}
			}
			v := light.ToGPUVolumeLight(l, viewProj)
			writes = append(writes, binding.BufferWrite{Target: s.lightBuffer.VolumeBinding(slot), Binding: 0, Data: v.Marshal()})
			volumeDraws = append(volumeDraws, volumeDraw{slot: slot, mesh: s.volumes.MeshFor(l.Type()), light: l})
			slot++
		}
	}
	stats.VolumeLightsDrawn = len(volumeDraws)

	if spotCaster != nil {
		writes = append(writes, s.spotShadow.Writes(spotCaster)...)
	}
	if pointCaster != nil {
		writes = append(writes, s.pointShadow.Writes(pointCaster)...)
	}

	s.writePool = writes
	s.r.WriteBuffers(writes)

	if err := s.r.BeginFrame(); err != nil {
		return err
	}
	if s.collector != nil {
		s.collector.FrameBegin()
	}

	// Shadow phase: one depth-only pass per cascade, culled against the
	// cascade's persisted bound sphere.
	if drawShadows {
		for i := 0; i < s.cascades.TotalCascades(); i++ {
			cfg := s.shadowMap.CascadePass(i)
			if err := s.r.BeginPass(cfg); err != nil {
				return err
			}
			bound := common.BoundingSphere{
				Center: s.cascades.CascadeBoundCenter(i),
				Radius: s.cascades.CascadeBoundRadius(i),
			}
			drawn := 0
			for _, d := range in.Drawables {
				if !d.Ready() || !d.CastsShadow() || d.Transparent() {
					continue
				}
				sphere := d.BoundingSphere()
				if sphere.Center.Sub(bound.Center).Len() > sphere.Radius+bound.Radius {
					continue
				}
				if err := s.r.Draw(effect.PipelineShadowDepth, d.Mesh(), 1, []binding.Binding{s.shadowMap.CascadeBinding(i), d.Object()}); err != nil {
					return err
				}
				drawn++
			}
			s.r.EndPass()
			s.tracePass(cfg.Label, drawn)
			stats.ShadowDrawCalls += drawn
		}
	}

	// Spot and point shadow casters each render their own depth layers,
	// culled against the light's bounding sphere.
	if spotCaster != nil {
		drawn, err := s.renderVolumeShadow(s.spotShadow, spotCaster, in.Drawables)
		if err != nil {
			return err
		}
		stats.ShadowDrawCalls += drawn
	}
	if pointCaster != nil {
		drawn, err := s.renderVolumeShadow(s.pointShadow, pointCaster, in.Drawables)
		if err != nil {
			return err
		}
		stats.ShadowDrawCalls += drawn
	}

	// Geometry phase. The pass itself always runs so the depth buffer the
	// forward pass tests against is defined; draws happen only for deferred
	// geometry.
	if err := s.r.BeginPass(s.gbuffer.GeometryPass()); err != nil {
		return err
	}
	for _, d := range deferred {
		if err := s.r.Draw(effect.PipelineGBuffer, d.Mesh(), 1, []binding.Binding{s.camera, d.Object()}); err != nil {
			return err
		}
		stats.DrawCalls++
	}
	s.r.EndPass()
	s.tracePass("gbuffer", len(deferred))

	depthStencil := s.gbuffer.DepthStencilView()
	if deferredRan {
		// Lighting phase: directional accumulation runs first so the HDR
		// target is cleared even when the scene has no directional lights.
		if err := s.r.BeginPass(s.lightBuffer.DirectionalPass()); err != nil {
			return err
		}
		for i := range directionals {
			if err := s.r.DrawFullscreen(effect.PipelineDirectionalLight, []binding.Binding{
				s.lightBuffer.FrameBinding(), s.gbuffer.Textures(), s.lightBuffer.DirectionalBinding(i),
			}); err != nil {
				return err
			}
			stats.DrawCalls++
		}
		s.r.EndPass()
		s.tracePass("light accumulation", len(directionals))

		// Each volume light is a pass pair: mark the stencil where the proxy
		// volume encloses geometry, then shade exactly those pixels additively.
		for _, vd := range volumeDraws {
			if err := s.r.BeginPass(s.lightBuffer.VolumeStencilPass(depthStencil)); err != nil {
				return err
			}
			if err := s.r.Draw(effect.PipelineVolumeStencil, vd.mesh, 1, []binding.Binding{s.lightBuffer.VolumeBinding(vd.slot)}); err != nil {
				return err
			}
			s.r.EndPass()
			s.tracePass("volume stencil", 1)

			if err := s.r.BeginPass(s.lightBuffer.VolumeShadePass(depthStencil)); err != nil {
				return err
			}
			// Reference 0 with a NotEqual test shades marked pixels and the
			// Replace pass op resets them for the next light.
			s.r.SetStencilReference(0)
			pipe := effect.PipelineVolumeShade
			binds := []binding.Binding{
				s.lightBuffer.FrameBinding(), s.gbuffer.Textures(), s.lightBuffer.VolumeBinding(vd.slot),
			}
			switch vd.light {
			case spotCaster:
				pipe = effect.PipelineVolumeShadeShadowed
				binds = append(binds, s.spotShadow.ShadeBinding())
			case pointCaster:
				pipe = effect.PipelineVolumeShadeShadowed
				binds = append(binds, s.pointShadow.ShadeBinding())
			}
			if err := s.r.Draw(pipe, vd.mesh, 1, binds); err != nil {
				return err
			}
			s.r.EndPass()
			s.tracePass("volume shade", 1)
			stats.DrawCalls += 2
		}

		// Compose phase: full-screen resolve to the swapchain.
		if err := s.r.BeginPass(s.composer.ComposePass(s.r.SurfaceAttachment(false, wgpu.Color{}))); err != nil {
			return err
		}
		if err := s.r.DrawFullscreen(effect.PipelineCompose, []binding.Binding{
			s.composer.Binding(), s.gbuffer.Textures(), s.lightBuffer.HDRBinding(),
		}); err != nil {
			return err
		}
		stats.DrawCalls++
		s.r.EndPass()
		s.tracePass("compose", 1)
	}

	// Forward phase: non-deferred drawables back-to-front over the composed
	// image, depth-tested against opaque geometry without writing. When the
	// deferred phase was skipped the forward pass clears the swapchain
	// instead of loading it, so the frame still presents defined contents.
	if len(forward) > 0 || !deferredRan {
		sort.Slice(forward, func(a, b int) bool {
			da := forward[a].BoundingSphere().Center.Sub(in.Pose.Position).LenSqr()
			db := forward[b].BoundingSphere().Center.Sub(in.Pose.Position).LenSqr()
			return da > db
		})
		if err := s.r.BeginPass(s.composer.ForwardPass(s.r.SurfaceAttachment(deferredRan, wgpu.Color{}), depthStencil)); err != nil {
			return err
		}
		for _, d := range forward {
			if err := s.r.Draw(effect.PipelineForward, d.Mesh(), 1, []binding.Binding{s.camera, d.Object()}); err != nil {
				return err
			}
			stats.DrawCalls++
		}
		s.r.EndPass()
		s.tracePass("forward", len(forward))
	}

	if s.collector != nil {
		s.collector.FrameEnd()
	}
	s.r.EndFrame()
	s.r.Present()

	s.stats = stats
	return nil
}

// renderVolumeShadow records the depth-only passes for one shadow-casting
// point or spot light, culling casters against the light's bounding sphere.
// Returns the number of draws recorded.
func (s *sceneRendererImpl) renderVolumeShadow(m VolumeShadowMap, caster light.Light, drawables []Drawable) (int, error) {
	center, radius := caster.BoundingSphere()
	total := 0
	for i := 0; i < m.LayerCount(); i++ {
		cfg := m.LayerPass(i)
		if err := s.r.BeginPass(cfg); err != nil {
			return total, err
		}
		drawn := 0
		for _, d := range drawables {
			if !d.Ready() || !d.CastsShadow() || d.Transparent() {
				continue
			}
			sphere := d.BoundingSphere()
			if sphere.Center.Sub(center).Len() > sphere.Radius+radius {
				continue
			}
			if err := s.r.Draw(effect.PipelineShadowDepth, d.Mesh(), 1, []binding.Binding{m.LayerBinding(i), d.Object()}); err != nil {
				return total, err
			}
			drawn++
		}
		s.r.EndPass()
		s.tracePass(cfg.Label, drawn)
		total += drawn
	}
	return total, nil
}

// tracePass reports one completed pass to the frame collector, if any.
func (s *sceneRendererImpl) tracePass(name string, draws int) {
	if s.collector != nil {
		s.collector.Pass(name, draws)
	}
}

// cullVisible tests every drawable's bounding sphere against the view frustum
// across the worker pool and returns a per-drawable visibility flag. Entries
// for drawables that are not ready are false.
func (s *sceneRendererImpl) cullVisible(frustum *common.Frustum, drawables []Drawable) []bool {
	visible := make([]bool, len(drawables))
	if len(drawables) == 0 {
		return visible
	}

	chunk := (len(drawables) + s.cullWorkers - 1) / s.cullWorkers
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(drawables); start += chunk {
		end := min(start+chunk, len(drawables))
		wg.Add(1)
		lo, hi := start, end
		id := taskID
		taskID++
		s.cullPool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					d := drawables[i]
					visible[i] = d.Ready() && frustum.IntersectsSphere(d.BoundingSphere())
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
	return visible
}

// composeData builds the compose uniform from the scene's hemisphere and fog
// settings, with neutral defaults when no light registry is supplied.
func composeData(lights light.SceneLights) light.GPUComposeData {
	if lights == nil {
		return light.GPUComposeData{}
	}
	hemi := lights.Hemisphere()
	fog := lights.Fog()
	data := light.GPUComposeData{
		SkyColor:            [3]float32{hemi.SkyColor.X(), hemi.SkyColor.Y(), hemi.SkyColor.Z()},
		HemisphereIntensity: hemi.Intensity,
		GroundColor:         [3]float32{hemi.GroundColor.X(), hemi.GroundColor.Y(), hemi.GroundColor.Z()},
		FogColor:            [3]float32{fog.Color.X(), fog.Color.Y(), fog.Color.Z()},
		FogStart:            fog.Start,
		FogEnd:              fog.End,
	}
	if fog.Enabled {
		data.FogEnabled = 1
	}
	return data
}

func (s *sceneRendererImpl) Cascades() shadow.CascadeSet {
	return s.cascades
}

func (s *sceneRendererImpl) Stats() FrameStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *sceneRendererImpl) Resize(width, height uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gbuffer.Resize(s.r, width, height); err != nil {
		return err
	}
	return s.lightBuffer.Resize(s.r, width, height)
}

func (s *sceneRendererImpl) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.camera != nil {
		s.camera.Release()
		s.camera = nil
	}
	if s.composer != nil {
		s.composer.Release()
		s.composer = nil
	}
	if s.volumes != nil {
		s.volumes.Release()
		s.volumes = nil
	}
	if s.lightBuffer != nil {
		s.lightBuffer.Release()
		s.lightBuffer = nil
	}
	if s.pointShadow != nil {
		s.pointShadow.Release()
		s.pointShadow = nil
	}
	if s.spotShadow != nil {
		s.spotShadow.Release()
		s.spotShadow = nil
	}
	if s.shadowMap != nil {
		s.shadowMap.Release()
		s.shadowMap = nil
	}
	if s.gbuffer != nil {
		s.gbuffer.Release()
		s.gbuffer = nil
	}
}
