package profiler

import "sync"

// PassSample is one recorded render pass: its label and the number of draw
// calls it issued.
type PassSample struct {
	Name  string
	Draws int
}

// Collector receives the pass trace of each rendered frame. The scene
// renderer reports every pass in execution order between FrameBegin and
// FrameEnd. Attaching a collector is optional; rendering never requires one.
type Collector interface {
	// FrameBegin marks the start of a frame trace.
	FrameBegin()

	// Pass records one completed pass and its draw-call count. Passes arrive
	// in the order they executed.
	//
	// Parameters:
	//   - name: the pass label
	//   - draws: the number of draw calls the pass issued
	Pass(name string, draws int)

	// FrameEnd marks the end of a frame trace.
	FrameEnd()
}

// frameTraceImpl is the implementation of the FrameTrace interface.
type frameTraceImpl struct {
	mu sync.Mutex

	current []PassSample
	last    []PassSample
	frames  uint64
}

// FrameTrace is a Collector that keeps the pass trace of the last completed
// frame for inspection. Samples are read from the most recent FrameEnd, so
// readers never observe a frame mid-recording.
type FrameTrace interface {
	Collector

	// Passes returns the pass samples of the last completed frame in
	// execution order.
	//
	// Returns:
	//   - []PassSample: a copy of the last frame's samples
	Passes() []PassSample

	// DrawCalls returns the total draw calls across the last completed
	// frame's passes.
	//
	// Returns:
	//   - int: the draw-call total
	DrawCalls() int

	// Frames returns how many frames have completed recording.
	//
	// Returns:
	//   - uint64: the completed frame count
	Frames() uint64
}

var _ FrameTrace = &frameTraceImpl{}

// NewFrameTrace creates an empty frame trace collector.
//
// Returns:
//   - FrameTrace: the created collector
func NewFrameTrace() FrameTrace {
	return &frameTraceImpl{}
}

func (f *frameTraceImpl) FrameBegin() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = f.current[:0]
}

func (f *frameTraceImpl) Pass(name string, draws int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = append(f.current, PassSample{Name: name, Draws: draws})
}

func (f *frameTraceImpl) FrameEnd() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = append(f.last[:0], f.current...)
	f.frames++
}

func (f *frameTraceImpl) Passes() []PassSample {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]PassSample(nil), f.last...)
}

func (f *frameTraceImpl) DrawCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, s := range f.last {
		total += s.Draws
	}
	return total
}

func (f *frameTraceImpl) Frames() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}
