// Package framestat implements a frame-rate sampling loop.
//
// A Sampler counts ticks delivered by a FrameScheduler, and once per
// reporting window derives FPS and frame time, queries the registered
// rendering surfaces for GPU info, and publishes an immutable Snapshot.
package framestat

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

type state int

const (
	stateInit state = iota
	stateRun  state = iota
	stateStop state = iota
)

// SampleWindow is the tick accumulator for the current reporting window.
type SampleWindow struct {
	// FrameCount is the number of ticks since the last report.
	FrameCount int
	// WindowStart is when the last report happened (or Start, before the first).
	WindowStart time.Time
	// LastFrame is when the previous tick ran.
	LastFrame time.Time
}

// Sampler is the sampling loop.
type Sampler struct {
	sched FrameScheduler
	reg   *Registry
	cfg   settings

	mu        sync.Mutex
	curState  state
	pending   FrameHandle
	window    SampleWindow
	history   statWindow
	frames    uint64
	windows   uint64
	lastGPU   *GPUInfo
	lastFault error
	done      chan struct{}
	heartbeat chan Snapshot

	current atomic.Pointer[Snapshot]
	faults  atomic.Uint64
}

// NewSampler creates a sampler that ticks on sched and queries reg.
// A nil reg gets a fresh empty Registry.
func NewSampler(sched FrameScheduler, reg *Registry, opts ...Option) (*Sampler, error) {
	cfg := defaultSettings()
	for _, o := range opts {
		o(&cfg)
	}

	// Input validation.
	if sched == nil {
		return nil, wrapSampleError(nil, TokenLoop, "scheduler can't be nil")
	}
	if cfg.interval <= 0 {
		return nil, wrapSampleError(nil, TokenLoop, "report interval can't be lte 0")
	}
	if cfg.clock == nil {
		return nil, wrapSampleError(nil, TokenLoop, "clock can't be nil")
	}
	if cfg.historySize <= 0 {
		return nil, wrapSampleError(nil, TokenLoop, "history size can't be lte 0")
	}
	if reg == nil {
		reg = NewRegistry()
	}

	s := &Sampler{
		sched:     sched,
		reg:       reg,
		cfg:       cfg,
		history:   newStatWindow(cfg.historySize),
		done:      make(chan struct{}),
		heartbeat: make(chan Snapshot),
		curState:  stateInit,
	}
	s.current.Store(&Snapshot{})
	return s, nil
}

// Registry returns the registry the sampler queries.
func (s *Sampler) Registry() *Registry {
	return s.reg
}

// Start begins sampling. It does not block.
// A sampler can only be started once.
func (s *Sampler) Start() error {
	s.mu.Lock()
	if s.curState != stateInit {
		s.mu.Unlock()
		return wrapSampleError(nil, TokenLoop, "Sampler is already running or is done")
	}
	s.curState = stateRun

	now := s.cfg.clock.Now()
	s.window = SampleWindow{WindowStart: now, LastFrame: now}
	s.pending = s.sched.RequestFrame(s.tick)
	s.mu.Unlock()

	Logger().Info("framestat: sampler started", "interval", s.cfg.interval)
	return nil
}

// Stop cancels the pending tick and prevents any further ticks.
// A tick that is already running completes first. Safe to call repeatedly,
// and before Start.
func (s *Sampler) Stop() {
	s.mu.Lock()
	if s.curState == stateStop {
		s.mu.Unlock()
		return
	}
	s.curState = stateStop
	if s.pending != 0 {
		s.sched.CancelFrame(s.pending)
		s.pending = 0
	}
	close(s.done)
	close(s.heartbeat)
	frames, windows := s.frames, s.windows
	s.mu.Unlock()

	Logger().Info("framestat: sampler stopped", "frames", frames, "windows", windows)
}

// Done is closed once the sampler is stopped.
func (s *Sampler) Done() <-chan struct{} {
	return s.done
}

// Running reports whether the sampler has been started and not stopped.
func (s *Sampler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.curState == stateRun
}

// Heartbeat delivers each published snapshot to a waiting receiver.
// Snapshots nobody is waiting for are dropped. Closed on Stop.
func (s *Sampler) Heartbeat() <-chan Snapshot {
	return s.heartbeat
}

// Snapshot returns the current snapshot. Before the first report it is
// the zero Snapshot.
func (s *Sampler) Snapshot() Snapshot {
	return *s.current.Load()
}

// Window returns a copy of the current accumulator.
func (s *Sampler) Window() SampleWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// Faults returns how many tick or surface faults were recovered.
func (s *Sampler) Faults() uint64 {
	return s.faults.Load()
}

// LastFault returns the most recently recovered fault, or nil.
func (s *Sampler) LastFault() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFault
}

// windowScan is what a closing window learns outside the lock.
type windowScan struct {
	now          time.Time
	fps          int
	frameTime    time.Duration
	surfaceCount int
	gpu          *GPUInfo
	overhead     time.Duration
}

// tick runs one sampling pass. Only the accumulator work holds s.mu:
// surfaces and the log handler are called unlocked, so they may call back
// into the sampler, Stop included. At most one tick is in flight because the
// next frame is only requested at the end of this one.
func (s *Sampler) tick() {
	s.mu.Lock()
	if s.curState != stateRun {
		s.mu.Unlock()
		return
	}
	s.pending = 0
	scan, closed, fault := s.advance()
	s.mu.Unlock()

	if fault != nil {
		s.logFault(*fault)
	}
	if closed {
		s.survey(&scan)
	}

	s.mu.Lock()
	if fault == nil {
		if closed {
			s.publish(scan)
		}
		s.window.LastFrame = scan.now
	}
	// A tick that was already running when Stop landed still publishes,
	// but never asks for another frame.
	if s.curState == stateRun {
		s.pending = s.sched.RequestFrame(s.tick)
	}
	s.mu.Unlock()
}

// advance counts the tick and, when the window has closed, computes FPS and
// frame time. Called with s.mu held.
func (s *Sampler) advance() (scan windowScan, closed bool, fault *SampleError) {
	defer func() {
		if r := recover(); r != nil {
			e := recoveredError(r, TokenTick)
			s.faults.Add(1)
			s.lastFault = e
			closed, fault = false, &e
		}
	}()

	now := s.cfg.clock.Now()
	scan.now = now
	s.frames++
	s.window.FrameCount++
	s.history.AddSample(now.Sub(s.window.LastFrame))

	elapsed := now.Sub(s.window.WindowStart)
	if elapsed < s.cfg.interval {
		return scan, false, nil
	}
	scan.fps = int(math.Round(float64(s.window.FrameCount) / elapsed.Seconds()))
	scan.frameTime = now.Sub(s.window.LastFrame)
	return scan, true, nil
}

// survey counts the registered surfaces and queries them for GPU info, then
// takes the overhead reading. Called without s.mu.
func (s *Sampler) survey(scan *windowScan) {
	defer func() {
		if r := recover(); r != nil {
			e := recoveredError(r, TokenTick)
			s.faults.Add(1)
			s.mu.Lock()
			s.lastFault = e
			s.mu.Unlock()
		}
	}()

	surfaces := s.reg.Surfaces()
	scan.surfaceCount = len(surfaces)
	if len(surfaces) == 0 {
		Logger().Debug("framestat: empty window scan", "err", ErrNoSurfaces)
	} else {
		scan.gpu = s.firstGPU(surfaces)
	}
	if overhead := s.cfg.clock.Now().Sub(scan.now); overhead > 0 {
		scan.overhead = overhead
	}
}

// publish applies the GPU policy, stores the snapshot and resets the
// window. Called with s.mu held.
func (s *Sampler) publish(scan windowScan) {
	gpu := scan.gpu
	switch {
	case scan.surfaceCount == 0:
		gpu = nil
		s.lastGPU = nil
	case gpu != nil:
		s.lastGPU = gpu
	case s.cfg.gpuPolicy == GPURetainLastKnown:
		gpu = s.lastGPU
	}

	mean, stdDev := s.history.Report()
	s.windows++
	snap := &Snapshot{
		FPS:              scan.fps,
		FrameTime:        scan.frameTime,
		SamplingOverhead: scan.overhead,
		SurfaceCount:     scan.surfaceCount,
		Window:           s.windows,
		Frames:           s.frames,
		FrameTimeMean:    mean,
		FrameTimeStdDev:  stdDev,
		At:               scan.now,
	}
	if gpu != nil {
		snap.GPU = *gpu
		snap.HasGPU = true
	}

	s.window.FrameCount = 0
	s.window.WindowStart = scan.now

	s.current.Store(snap)
	if s.curState != stateRun {
		return
	}
	select {
	case s.heartbeat <- *snap:
	default: // Throw it away if no one is listening.
	}
}

// firstGPU returns the GPU info of the first surface that has any.
func (s *Sampler) firstGPU(surfaces []Surface) *GPUInfo {
	for i, surf := range surfaces {
		info, err := s.query(surf)
		if err == nil {
			return &info
		}
		if errors.Is(err, ErrCapabilityUnavailable) {
			Logger().Debug("framestat: surface has no capability info", "index", i)
			continue
		}
		var serr SampleError
		if errors.As(err, &serr) {
			s.logFault(serr)
			continue
		}
		Logger().Warn("framestat: surface query failed", "index", i, "err", err)
	}
	return nil
}

func (s *Sampler) query(surf Surface) (info GPUInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			e := recoveredError(r, TokenSurface)
			s.faults.Add(1)
			s.mu.Lock()
			s.lastFault = e
			s.mu.Unlock()
			err = e
		}
	}()
	return surf.Capabilities()
}

func (s *Sampler) logFault(err SampleError) {
	Logger().Warn("framestat: recovered fault", "source", err.ErrorSource, "err", err)
}
