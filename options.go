package framestat

import "time"

// ReportInterval is the default reporting window.
const ReportInterval = 1000 * time.Millisecond

// GPUPolicy decides what happens to GPU info when a window's scan finds none.
type GPUPolicy int

const (
	// GPURetainLastKnown keeps the previous GPU info while any surface is
	// registered. It is cleared when the registry is empty.
	GPURetainLastKnown GPUPolicy = iota
	// GPUResetEachWindow reports only what the current window found.
	GPUResetEachWindow
)

type settings struct {
	interval    time.Duration
	clock       Clock
	historySize int
	gpuPolicy   GPUPolicy
}

func defaultSettings() settings {
	return settings{
		interval:    ReportInterval,
		clock:       SystemClock{},
		historySize: DefaultHistorySize,
		gpuPolicy:   GPURetainLastKnown,
	}
}

// Option configures a Sampler.
type Option func(*settings)

// WithReportInterval sets the reporting window length.
func WithReportInterval(d time.Duration) Option {
	return func(s *settings) { s.interval = d }
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *settings) { s.clock = c }
}

// WithHistorySize sets how many inter-tick deltas feed FrameTimeMean.
func WithHistorySize(n int) Option {
	return func(s *settings) { s.historySize = n }
}

// WithGPUPolicy selects the GPU info policy.
func WithGPUPolicy(p GPUPolicy) Option {
	return func(s *settings) { s.gpuPolicy = p }
}
