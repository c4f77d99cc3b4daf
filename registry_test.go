package framestat_test

import (
	"testing"

	"github.com/erinpentecost/framestat"
	"github.com/stretchr/testify/assert"
)

func namedSurface(name string) framestat.Surface {
	return framestat.SurfaceFunc(func() (framestat.GPUInfo, error) {
		return framestat.GPUInfo{Vendor: name}, nil
	})
}

func vendors(t *testing.T, reg *framestat.Registry) []string {
	var out []string
	for _, s := range reg.Surfaces() {
		info, err := s.Capabilities()
		assert.Nil(t, err)
		out = append(out, info.Vendor)
	}
	return out
}

func TestRegistryOrder(t *testing.T) {
	var reg framestat.Registry
	reg.Register(namedSurface("a"))
	unregisterB := reg.Register(namedSurface("b"))
	reg.Register(namedSurface("c"))
	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"a", "b", "c"}, vendors(t, &reg))

	unregisterB()
	assert.Equal(t, []string{"a", "c"}, vendors(t, &reg))

	reg.Register(namedSurface("d"))
	assert.Equal(t, []string{"a", "c", "d"}, vendors(t, &reg))
}

func TestRegistryUnregisterIdempotent(t *testing.T) {
	reg := framestat.NewRegistry()
	unregister := reg.Register(namedSurface("a"))
	reg.Register(namedSurface("a"))
	unregister()
	unregister()
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryNilSurface(t *testing.T) {
	reg := framestat.NewRegistry()
	unregister := reg.Register(nil)
	assert.Equal(t, 0, reg.Len())
	assert.NotPanics(t, unregister)
}

func TestRegistrySurfacesIsCopy(t *testing.T) {
	reg := framestat.NewRegistry()
	reg.Register(namedSurface("a"))
	got := reg.Surfaces()
	got[0] = nil
	assert.NotNil(t, reg.Surfaces()[0])
}
