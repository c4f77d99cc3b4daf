package framestat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatWindowEmpty(t *testing.T) {
	w := newStatWindow(4)
	mean, stdDev := w.Report()
	assert.Equal(t, time.Duration(0), mean)
	assert.Equal(t, time.Duration(0), stdDev)
}

func TestStatWindowPartial(t *testing.T) {
	w := newStatWindow(4)
	w.AddSample(10 * time.Millisecond)
	w.AddSample(20 * time.Millisecond)
	mean, stdDev := w.Report()
	assert.Equal(t, 15*time.Millisecond, mean)
	assert.Equal(t, 5*time.Millisecond, stdDev)
}

func TestStatWindowWraps(t *testing.T) {
	w := newStatWindow(2)
	w.AddSample(100 * time.Millisecond)
	w.AddSample(10 * time.Millisecond)
	w.AddSample(10 * time.Millisecond)
	mean, stdDev := w.Report()
	assert.Equal(t, 10*time.Millisecond, mean)
	assert.Equal(t, time.Duration(0), stdDev)
}
