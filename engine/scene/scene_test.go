package scene

import (
	"testing"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/camera"
	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/effect"
	"github.com/Carmen-Shannon/lumen-go/engine/shadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSceneRenderer records the frame inputs handed to it so tests can verify
// what the scene snapshots each frame.
type fakeSceneRenderer struct {
	frames   []renderer.FrameInput
	resizes  [][2]uint32
	released bool
	stats    renderer.FrameStats
}

var _ renderer.SceneRenderer = &fakeSceneRenderer{}

func (f *fakeSceneRenderer) RenderFrame(in renderer.FrameInput) error {
	f.frames = append(f.frames, in)
	return nil
}

func (f *fakeSceneRenderer) Cascades() shadow.CascadeSet { return nil }
func (f *fakeSceneRenderer) Stats() renderer.FrameStats  { return f.stats }
func (f *fakeSceneRenderer) Release()                    { f.released = true }

func (f *fakeSceneRenderer) Resize(width, height uint32) error {
	f.resizes = append(f.resizes, [2]uint32{width, height})
	return nil
}

// stubRenderer satisfies the Renderer parameter of NewScene. Scenes built
// with WithSceneRenderer never touch it; any unexpected call panics through
// the embedded nil interface.
type stubRenderer struct {
	renderer.Renderer
}

// fakeDrawable is a minimal opaque drawable.
type fakeDrawable struct {
	name string
}

var _ renderer.Drawable = &fakeDrawable{}

func (d *fakeDrawable) Mesh() binding.Binding            { return nil }
func (d *fakeDrawable) Object() binding.Binding          { return nil }
func (d *fakeDrawable) ObjectData() effect.GPUObjectData { return effect.GPUObjectData{} }
func (d *fakeDrawable) BoundingSphere() common.BoundingSphere {
	return common.BoundingSphere{Radius: 1}
}
func (d *fakeDrawable) CastsShadow() bool     { return true }
func (d *fakeDrawable) Transparent() bool     { return false }
func (d *fakeDrawable) DeferredEnabled() bool { return true }
func (d *fakeDrawable) Ready() bool           { return true }

func newTestScene(t *testing.T, options ...SceneBuilderOption) (Scene, *fakeSceneRenderer) {
	t.Helper()
	sr := &fakeSceneRenderer{}
	options = append([]SceneBuilderOption{WithSceneRenderer(sr)}, options...)
	s := NewScene("test", camera.NewCamera(), &stubRenderer{}, options...)
	return s, sr
}

func TestNewScene_RequiresCameraAndRenderer(t *testing.T) {
	require.Panics(t, func() { NewScene("s", nil, &stubRenderer{}) })
	require.Panics(t, func() { NewScene("s", camera.NewCamera(), nil) })
}

func TestScene_Registry(t *testing.T) {
	s, _ := newTestScene(t)

	a := &fakeDrawable{name: "a"}
	b := &fakeDrawable{name: "b"}

	idA := s.Add(a)
	idB := s.Add(b)

	assert.NotEqual(t, idA, idB)
	assert.Equal(t, 2, s.Count())
	assert.Same(t, a, s.Get(idA))
	assert.Same(t, b, s.Get(idB))

	s.Remove(idA)
	assert.Equal(t, 1, s.Count())
	assert.Nil(t, s.Get(idA))

	s.Clear()
	assert.Equal(t, 0, s.Count())
}

func TestScene_AddNilReturnsZero(t *testing.T) {
	s, _ := newTestScene(t)

	assert.Equal(t, uint64(0), s.Add(nil))
	assert.Equal(t, 0, s.Count())
}

func TestScene_ActiveFlag(t *testing.T) {
	s, _ := newTestScene(t)
	assert.False(t, s.Active())

	s.SetActive(true)
	assert.True(t, s.Active())

	s2, _ := newTestScene(t, WithActive(true))
	assert.True(t, s2.Active())
}

func TestScene_RenderFrameSnapshotsState(t *testing.T) {
	s, sr := newTestScene(t)
	s.Add(&fakeDrawable{name: "a"})
	s.Add(&fakeDrawable{name: "b"})

	sun := light.NewLight(light.LightTypeDirectional, light.WithCastsShadows(true))
	require.NoError(t, s.AddLight(sun))

	require.NoError(t, s.RenderFrame())

	require.Len(t, sr.frames, 1)
	in := sr.frames[0]
	assert.Len(t, in.Drawables, 2)
	assert.Same(t, s.Lights(), in.Lights)
	assert.Equal(t, s.Camera().Near(), in.Near)
	assert.Equal(t, s.Camera().Far(), in.Far)
	assert.NotZero(t, in.Pose.FovY)
}

func TestScene_ResizeUpdatesCameraAspect(t *testing.T) {
	s, sr := newTestScene(t)

	require.NoError(t, s.Resize(800, 400))

	assert.InDelta(t, 2.0, s.Camera().Aspect(), 1e-6)
	require.Len(t, sr.resizes, 1)
	assert.Equal(t, [2]uint32{800, 400}, sr.resizes[0])

	// Zero height leaves the aspect untouched but still resizes targets.
	require.NoError(t, s.Resize(800, 0))
	assert.InDelta(t, 2.0, s.Camera().Aspect(), 1e-6)
}

func TestScene_LightsRoundTrip(t *testing.T) {
	s, _ := newTestScene(t)

	l := light.NewLight(light.LightTypePoint, light.WithRange(5))
	require.NoError(t, s.AddLight(l))
	assert.Len(t, s.Lights().Point(), 1)

	s.RemoveLight(l)
	assert.Empty(t, s.Lights().Point())
}

func TestScene_Release(t *testing.T) {
	s, sr := newTestScene(t)

	s.Release()
	assert.True(t, sr.released)
}
