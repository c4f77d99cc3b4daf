package framestat

import (
	"sync"
)

// Surface is a rendering surface owned by some graphics host.
type Surface interface {
	// Capabilities returns the surface's GPU info, or ErrCapabilityUnavailable
	// when it exposes none.
	Capabilities() (GPUInfo, error)
}

// SurfaceFunc adapts a plain function to Surface.
type SurfaceFunc func() (GPUInfo, error)

// Capabilities calls f.
func (f SurfaceFunc) Capabilities() (GPUInfo, error) {
	return f()
}

type registration struct {
	id      uint64
	surface Surface
}

// Registry is the ordered set of live rendering surfaces.
// Surfaces register on creation and unregister on teardown.
// The zero value is ready to use.
type Registry struct {
	mu      sync.Mutex
	nextID  uint64
	entries []registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends s and returns a function that removes it again.
// The returned function may be called any number of times.
func (r *Registry) Register(s Surface) (unregister func()) {
	if s == nil {
		return func() {}
	}
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.entries = append(r.entries, registration{id: id, surface: s})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(id) })
	}
}

func (r *Registry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Surfaces returns the registered surfaces in registration order.
func (r *Registry) Surfaces() []Surface {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Surface, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.surface
	}
	return out
}

// Len returns the number of registered surfaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
