package framestat

import (
	"fmt"
	"sync/atomic"
)

// OverlayTitle heads the overlay text.
const OverlayTitle = "Performance Monitor"

// Overlay is the display-side state: whether the panel is collapsed.
// Collapsing never affects sampling.
type Overlay struct {
	collapsed atomic.Bool
}

// NewOverlay returns an overlay in the given state.
func NewOverlay(collapsed bool) *Overlay {
	o := &Overlay{}
	o.collapsed.Store(collapsed)
	return o
}

// ToggleCollapsed flips the collapsed state and returns the new value.
func (o *Overlay) ToggleCollapsed() bool {
	for {
		old := o.collapsed.Load()
		if o.collapsed.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Collapsed reports the current state.
func (o *Overlay) Collapsed() bool {
	return o.collapsed.Load()
}

// Header returns the title line with its expand marker.
func (o *Overlay) Header() string {
	if o.Collapsed() {
		return "▶ " + OverlayTitle
	}
	return "▼ " + OverlayTitle
}

// Lines renders snap as display text. Collapsed overlays show only the header.
func (o *Overlay) Lines(snap Snapshot) []string {
	lines := []string{o.Header()}
	if o.Collapsed() {
		return lines
	}
	lines = append(lines,
		fmt.Sprintf("FPS: %d", snap.FPS),
		fmt.Sprintf("Frame Time: %.2f ms", snap.FrameTimeMs()),
		fmt.Sprintf("CPU Time: %.2f ms", snap.SamplingOverheadMs()),
		fmt.Sprintf("Surface Count: %d", snap.SurfaceCount),
	)
	if snap.HasGPU {
		lines = append(lines,
			"GPU: "+snap.GPU.Vendor,
			"Renderer: "+snap.GPU.Renderer,
		)
	}
	return lines
}
