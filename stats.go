package framestat

import (
	"math"
	"time"
)

// DefaultHistorySize is how many inter-tick deltas feed the mean and stddev.
const DefaultHistorySize = 120

// statWindow is a ring of the most recent samples.
type statWindow struct {
	samples  []time.Duration
	curIndex int
	filled   int
}

func newStatWindow(samples int) statWindow {
	return statWindow{
		samples:  make([]time.Duration, samples),
		curIndex: 0,
	}
}

func (p *statWindow) AddSample(sample time.Duration) {
	p.samples[p.curIndex] = sample
	p.curIndex = (p.curIndex + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

// Report returns the mean and population standard deviation of the samples
// seen so far. Both are zero for an empty window.
func (p *statWindow) Report() (mean, stdDev time.Duration) {
	if p.filled == 0 {
		return 0, 0
	}
	n := float64(p.filled)
	sum := 0.0
	for _, s := range p.samples[:p.filled] {
		sum += float64(s)
	}
	m := sum / n
	varNumerator := 0.0
	for _, s := range p.samples[:p.filled] {
		d := float64(s) - m
		varNumerator += d * d
	}
	mean = time.Duration(m)
	stdDev = time.Duration(math.Sqrt(varNumerator / n))
	return
}
