package framestat

import (
	"time"
)

// GPUInfo is the capability info reported by a rendering surface.
type GPUInfo struct {
	Vendor   string
	Renderer string
}

// Snapshot is the immutable result of one reporting window.
type Snapshot struct {
	// FPS is the number of ticks per second observed over the window.
	FPS int
	// FrameTime is the delta between the last two ticks of the window.
	// It is not an average; see FrameTimeMean for that.
	FrameTime time.Duration
	// SamplingOverhead is the time spent building this snapshot.
	SamplingOverhead time.Duration
	// SurfaceCount is the number of registered surfaces at report time.
	SurfaceCount int
	// GPU is only meaningful when HasGPU is set.
	GPU    GPUInfo
	HasGPU bool

	// Window counts reporting windows since Start, starting at 1.
	Window uint64
	// Frames counts ticks since Start.
	Frames uint64
	// FrameTimeMean and FrameTimeStdDev cover the most recent inter-tick deltas.
	FrameTimeMean   time.Duration
	FrameTimeStdDev time.Duration
	// At is the clock reading the window closed on.
	At time.Time
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FrameTimeMs returns FrameTime in fractional milliseconds.
func (s Snapshot) FrameTimeMs() float64 {
	return durationMs(s.FrameTime)
}

// SamplingOverheadMs returns SamplingOverhead in fractional milliseconds.
func (s Snapshot) SamplingOverheadMs() float64 {
	return durationMs(s.SamplingOverhead)
}
