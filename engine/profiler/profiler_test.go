package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiler_TickBelowIntervalEmitsNothing(t *testing.T) {
	var emitted []Sample
	p := NewProfiler(
		WithInterval(time.Hour),
		WithSink(func(s Sample) { emitted = append(emitted, s) }),
	)

	for i := 0; i < 10; i++ {
		_, ok := p.Tick()
		assert.False(t, ok)
	}
	assert.Empty(t, emitted)
}

func TestProfiler_EmitsSampleAfterInterval(t *testing.T) {
	var emitted []Sample
	p := NewProfiler(
		WithInterval(time.Nanosecond),
		WithSink(func(s Sample) { emitted = append(emitted, s) }),
	)

	time.Sleep(time.Millisecond)
	s, ok := p.Tick()

	require.True(t, ok)
	require.Len(t, emitted, 1)
	assert.Equal(t, s, emitted[0])
	assert.Greater(t, s.FPS, 0.0)
	assert.Greater(t, s.HeapMB, 0.0)
	assert.Greater(t, s.SysMB, 0.0)
}

func TestProfiler_WindowResetsAfterEmit(t *testing.T) {
	p := NewProfiler(WithInterval(time.Millisecond), WithSink(func(Sample) {}))

	time.Sleep(2 * time.Millisecond)
	first, ok := p.Tick()
	require.True(t, ok)

	// The frame counter restarts, so an immediate second window reports a
	// rate from one frame, not two.
	time.Sleep(2 * time.Millisecond)
	second, ok := p.Tick()
	require.True(t, ok)
	assert.LessOrEqual(t, second.FPS, first.FPS*2)
}

func TestProfiler_NilSinkStillReturnsSample(t *testing.T) {
	p := NewProfiler(WithInterval(time.Nanosecond), WithSink(nil))

	time.Sleep(time.Millisecond)
	s, ok := p.Tick()

	require.True(t, ok)
	assert.Greater(t, s.FPS, 0.0)
}
