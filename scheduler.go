package framestat

import (
	"sync"
	"time"
)

// Hz60Delay is 1/60th of a second.
const Hz60Delay time.Duration = time.Duration(int64(time.Second) / 60)

// FrameCallback runs once, just before a redraw.
type FrameCallback func()

// FrameHandle identifies a pending frame request. The zero handle is never issued.
type FrameHandle uint64

// FrameScheduler runs single-shot callbacks in step with a host's redraws.
// A callback that wants to keep running requests another frame.
type FrameScheduler interface {
	RequestFrame(cb FrameCallback) FrameHandle
	CancelFrame(h FrameHandle)
}

// frameQueue holds at most one pending callback per handle.
type frameQueue struct {
	mu      sync.Mutex
	nextID  uint64
	pending map[FrameHandle]FrameCallback
	order   []FrameHandle
}

func (q *frameQueue) request(cb FrameCallback) FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending == nil {
		q.pending = make(map[FrameHandle]FrameCallback)
	}
	q.nextID++
	h := FrameHandle(q.nextID)
	q.pending[h] = cb
	q.order = append(q.order, h)
	return h
}

func (q *frameQueue) cancel(h FrameHandle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, h)
}

// take dequeues every callback requested before the call.
// Callbacks requested while they run wait for the next redraw.
func (q *frameQueue) take() []FrameCallback {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.order) == 0 {
		return nil
	}
	cbs := make([]FrameCallback, 0, len(q.order))
	for _, h := range q.order {
		if cb, ok := q.pending[h]; ok {
			cbs = append(cbs, cb)
			delete(q.pending, h)
		}
	}
	q.order = q.order[:0]
	return cbs
}

func (q *frameQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// FramePump is a FrameScheduler driven by its host: call Fire once per redraw.
// The zero value is ready to use.
type FramePump struct {
	q frameQueue
}

// NewFramePump returns an empty pump.
func NewFramePump() *FramePump {
	return &FramePump{}
}

// RequestFrame queues cb for the next Fire.
func (p *FramePump) RequestFrame(cb FrameCallback) FrameHandle {
	return p.q.request(cb)
}

// CancelFrame drops a pending request. Unknown or spent handles are ignored.
func (p *FramePump) CancelFrame(h FrameHandle) {
	p.q.cancel(h)
}

// Fire runs the pending callbacks and returns how many ran.
func (p *FramePump) Fire() int {
	cbs := p.q.take()
	for _, cb := range cbs {
		cb()
	}
	return len(cbs)
}

// Pending returns the number of queued callbacks.
func (p *FramePump) Pending() int {
	return p.q.size()
}

// TickerScheduler fires pending callbacks from its own goroutine at a fixed
// cadence. It stands in for a display when there is none.
type TickerScheduler struct {
	Delay time.Duration

	q      frameQueue
	mu     sync.Mutex
	done   chan struct{}
	closed bool
	// maxLag is the worst delay between a tick and the end of its callbacks
	// since Latency was last read.
	maxLag time.Duration
}

// NewTickerScheduler starts a scheduler that fires every delay.
func NewTickerScheduler(delay time.Duration) (*TickerScheduler, error) {
	if delay <= 0 {
		return nil, wrapSampleError(nil, TokenScheduler, "delay can't be lte 0")
	}
	t := &TickerScheduler{
		Delay: delay,
		done:  make(chan struct{}),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		tick := time.NewTicker(delay)
		defer tick.Stop()
		wg.Done()
		for {
			select {
			case <-t.done:
				return
			case due := <-tick.C:
				for _, cb := range t.q.take() {
					cb()
				}
				t.observeLag(time.Since(due))
			}
		}
	}()
	// Don't return until the ticker goroutine is running.
	wg.Wait()
	return t, nil
}

// RequestFrame queues cb for the next tick.
func (t *TickerScheduler) RequestFrame(cb FrameCallback) FrameHandle {
	return t.q.request(cb)
}

// CancelFrame drops a pending request.
func (t *TickerScheduler) CancelFrame(h FrameHandle) {
	t.q.cancel(h)
}

func (t *TickerScheduler) observeLag(lag time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if lag > t.maxLag {
		t.maxLag = lag
	}
}

// Latency returns the longest time any tick's callbacks ran past the tick's
// due time since the previous call, and starts a new measurement.
// A value near Delay means the callbacks are eating the whole frame budget.
func (t *TickerScheduler) Latency() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	lag := t.maxLag
	t.maxLag = 0
	return lag
}

// Close stops the ticker goroutine. Safe to call more than once.
func (t *TickerScheduler) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		close(t.done)
	}
}

// Done is closed once Close has been called.
func (t *TickerScheduler) Done() <-chan struct{} {
	return t.done
}
