package profiler

import (
	"log"
	"runtime"
	"time"
)

// Sample is one aggregated runtime measurement window.
type Sample struct {
	// FPS is the frame rate averaged over the window.
	FPS float64

	// HeapMB is the live heap size in megabytes at the end of the window.
	HeapMB float64

	// AllocRateMB is the heap allocation churn in megabytes per second.
	AllocRateMB float64

	// SysMB is the total memory obtained from the OS in megabytes.
	SysMB float64

	// GCCycles is the cumulative garbage collection count.
	GCCycles uint32

	// LastPause is the most recent GC stop-the-world pause.
	LastPause time.Duration

	// WorstPause is the longest GC pause observed during the window.
	WorstPause time.Duration
}

// Profiler aggregates frame timing and Go runtime memory statistics over a
// fixed interval and hands each completed window to a sink. The default sink
// writes one log line per window.
type Profiler struct {
	interval time.Duration
	sink     func(Sample)

	frames     int
	windowFrom time.Time

	mem            runtime.MemStats
	lastGCCycles   uint32
	lastTotalAlloc uint64
}

// ProfilerOption is a functional option for configuring a Profiler via NewProfiler.
type ProfilerOption func(*Profiler)

// WithInterval is an option builder that sets the aggregation window length.
// Defaults to one second.
//
// Parameters:
//   - interval: the window length
//
// Returns:
//   - ProfilerOption: a function that applies the interval option to a profiler
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithSink is an option builder that replaces the default log sink with a
// custom receiver for completed samples.
//
// Parameters:
//   - sink: the function receiving each completed Sample
//
// Returns:
//   - ProfilerOption: a function that applies the sink option to a profiler
func WithSink(sink func(Sample)) ProfilerOption {
	return func(p *Profiler) {
		p.sink = sink
	}
}

// NewProfiler creates a profiler with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ProfilerOption functions to configure the profiler
//
// Returns:
//   - *Profiler: the created profiler
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		interval:   time.Second,
		sink:       logSample,
		windowFrom: time.Now(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick records one rendered frame. When the aggregation window has elapsed it
// reads the runtime memory stats, emits the sample to the sink, and starts a
// new window.
//
// Returns:
//   - Sample: the completed sample, zero when the window is still open
//   - bool: true when a sample was emitted this call
func (p *Profiler) Tick() (Sample, bool) {
	p.frames++
	now := time.Now()
	elapsed := now.Sub(p.windowFrom)
	if elapsed < p.interval {
		return Sample{}, false
	}

	runtime.ReadMemStats(&p.mem)
	s := Sample{
		FPS:      float64(p.frames) / elapsed.Seconds(),
		HeapMB:   float64(p.mem.Alloc) / (1 << 20),
		SysMB:    float64(p.mem.Sys) / (1 << 20),
		GCCycles: p.mem.NumGC,
	}
	// TotalAlloc only grows, so the delta over the window is the churn.
	s.AllocRateMB = float64(p.mem.TotalAlloc-p.lastTotalAlloc) / (1 << 20) / elapsed.Seconds()
	s.LastPause, s.WorstPause = p.pauses()

	p.frames = 0
	p.windowFrom = now
	p.lastGCCycles = p.mem.NumGC
	p.lastTotalAlloc = p.mem.TotalAlloc

	if p.sink != nil {
		p.sink(s)
	}
	return s, true
}

// pauses extracts the most recent GC pause and the worst pause since the last
// emitted sample from the runtime's circular pause buffer.
func (p *Profiler) pauses() (last, worst time.Duration) {
	count := p.mem.NumGC
	if count == 0 {
		return 0, 0
	}
	last = time.Duration(p.mem.PauseNs[(count-1)%uint32(len(p.mem.PauseNs))])

	from := p.lastGCCycles
	if count-from > uint32(len(p.mem.PauseNs)) {
		from = count - uint32(len(p.mem.PauseNs))
	}
	for i := from; i < count; i++ {
		if pause := time.Duration(p.mem.PauseNs[i%uint32(len(p.mem.PauseNs))]); pause > worst {
			worst = pause
		}
	}
	return last, worst
}

func logSample(s Sample) {
	log.Printf("profiler: fps %.1f | heap %.1f MB | alloc %.2f MB/s | gc %d (last %s, worst %s) | sys %.1f MB",
		s.FPS, s.HeapMB, s.AllocRateMB, s.GCCycles, s.LastPause, s.WorstPause, s.SysMB)
}
