package framestat_test

import (
	"testing"
	"time"

	"github.com/erinpentecost/framestat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramePumpSingleShot(t *testing.T) {
	pump := framestat.NewFramePump()
	calls := 0
	pump.RequestFrame(func() { calls++ })
	assert.Equal(t, 1, pump.Fire())
	assert.Equal(t, 0, pump.Fire())
	assert.Equal(t, 1, calls)
}

func TestFramePumpReschedulesForNextFire(t *testing.T) {
	pump := framestat.NewFramePump()
	calls := 0
	var cb framestat.FrameCallback
	cb = func() {
		calls++
		pump.RequestFrame(cb)
	}
	pump.RequestFrame(cb)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 1, pump.Fire())
	}
	assert.Equal(t, 5, calls)
	assert.Equal(t, 1, pump.Pending())
}

func TestFramePumpCancel(t *testing.T) {
	pump := framestat.NewFramePump()
	h := pump.RequestFrame(func() { t.Fatal("cancelled frame ran") })
	assert.NotEqual(t, framestat.FrameHandle(0), h)
	pump.CancelFrame(h)
	pump.CancelFrame(h)
	assert.Equal(t, 0, pump.Pending())
	assert.Equal(t, 0, pump.Fire())
}

func TestTickerSchedulerInitializationError(t *testing.T) {
	sched, err := framestat.NewTickerScheduler(0)
	assert.NotNil(t, err)
	assert.Nil(t, sched)
}

func TestTickerSchedulerFires(t *testing.T) {
	sched, err := framestat.NewTickerScheduler(time.Millisecond)
	require.Nil(t, err)
	defer sched.Close()

	fired := make(chan struct{})
	sched.RequestFrame(func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("frame never fired")
	}
	assert.True(t, sched.Latency() < time.Second)
}

func TestTickerSchedulerDoubleClose(t *testing.T) {
	sched, err := framestat.NewTickerScheduler(framestat.Hz60Delay)
	require.Nil(t, err)
	assert.NotPanics(t, func() {
		sched.Close()
		sched.Close()
	})
	<-sched.Done()
}

func TestTickerSchedulerLatencyTracksSlowCallbacks(t *testing.T) {
	sched, err := framestat.NewTickerScheduler(5 * time.Millisecond)
	require.Nil(t, err)
	defer sched.Close()

	slow := make(chan struct{})
	sched.RequestFrame(func() {
		time.Sleep(20 * time.Millisecond)
		close(slow)
	})
	<-slow

	// The slow tick's lag is recorded before any later tick runs.
	next := make(chan struct{})
	sched.RequestFrame(func() { close(next) })
	<-next

	assert.True(t, sched.Latency() >= 20*time.Millisecond)
}
