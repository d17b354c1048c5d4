package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameTrace_Empty(t *testing.T) {
	trace := NewFrameTrace()

	assert.Empty(t, trace.Passes())
	assert.Equal(t, 0, trace.DrawCalls())
	assert.Equal(t, uint64(0), trace.Frames())
}

func TestFrameTrace_RecordsPassOrderAndDraws(t *testing.T) {
	trace := NewFrameTrace()

	trace.FrameBegin()
	trace.Pass("shadow cascade 0", 4)
	trace.Pass("gbuffer", 10)
	trace.Pass("compose", 1)
	trace.FrameEnd()

	require.Equal(t, []PassSample{
		{Name: "shadow cascade 0", Draws: 4},
		{Name: "gbuffer", Draws: 10},
		{Name: "compose", Draws: 1},
	}, trace.Passes())
	assert.Equal(t, 15, trace.DrawCalls())
	assert.Equal(t, uint64(1), trace.Frames())
}

func TestFrameTrace_NewFrameReplacesLast(t *testing.T) {
	trace := NewFrameTrace()

	trace.FrameBegin()
	trace.Pass("gbuffer", 8)
	trace.FrameEnd()

	trace.FrameBegin()
	trace.Pass("gbuffer", 2)
	trace.Pass("forward", 1)
	trace.FrameEnd()

	require.Len(t, trace.Passes(), 2)
	assert.Equal(t, 3, trace.DrawCalls())
	assert.Equal(t, uint64(2), trace.Frames())
}

func TestFrameTrace_ReadersSeeCompletedFrameOnly(t *testing.T) {
	trace := NewFrameTrace()

	trace.FrameBegin()
	trace.Pass("gbuffer", 5)
	trace.FrameEnd()

	// A frame still recording does not leak into Passes.
	trace.FrameBegin()
	trace.Pass("gbuffer", 99)

	require.Len(t, trace.Passes(), 1)
	assert.Equal(t, 5, trace.Passes()[0].Draws)
	assert.Equal(t, uint64(1), trace.Frames())
}

func TestFrameTrace_PassesReturnsCopy(t *testing.T) {
	trace := NewFrameTrace()

	trace.FrameBegin()
	trace.Pass("gbuffer", 1)
	trace.FrameEnd()

	got := trace.Passes()
	got[0].Draws = 42

	assert.Equal(t, 1, trace.Passes()[0].Draws)
}
