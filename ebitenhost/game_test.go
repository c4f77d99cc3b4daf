package ebitenhost

import (
	"testing"
	"time"

	"github.com/erinpentecost/framestat"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceCapabilities(t *testing.T) {
	s := &Surface{Name: "cone", readDebugInfo: func(d *ebiten.DebugInfo) {
		d.GraphicsLibrary = ebiten.GraphicsLibraryOpenGL
	}}
	info, err := s.Capabilities()
	require.Nil(t, err)
	assert.Equal(t, Vendor, info.Vendor)
	assert.Equal(t, ebiten.GraphicsLibraryOpenGL.String(), info.Renderer)
}

func TestSurfaceBeforeGameStarts(t *testing.T) {
	s := &Surface{Name: "cone", readDebugInfo: func(d *ebiten.DebugInfo) {
		d.GraphicsLibrary = ebiten.GraphicsLibraryUnknown
	}}
	_, err := s.Capabilities()
	assert.ErrorIs(t, err, framestat.ErrCapabilityUnavailable)
}

func TestNewGameRequiresPage(t *testing.T) {
	g, err := NewGame(Options{Width: 640, Height: 480})
	assert.NotNil(t, err)
	assert.Nil(t, g)
}

func TestSwitchPageMovesSurface(t *testing.T) {
	cone := &PolygonPage{Title: "cone", Resolution: 6}
	sphere := &PolygonPage{Title: "sphere", Resolution: 24}
	g, err := NewGame(Options{Width: 640, Height: 480}, cone, sphere)
	require.Nil(t, err)
	var names []string
	g.newSurface = func(name string) framestat.Surface {
		names = append(names, name)
		return framestat.SurfaceFunc(func() (framestat.GPUInfo, error) {
			return framestat.GPUInfo{}, framestat.ErrCapabilityUnavailable
		})
	}

	reg := g.Sampler.Registry()
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, "cone", g.Page().Name())

	g.SwitchPage(1)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, "sphere", g.Page().Name())
	assert.Equal(t, []string{"sphere"}, names)

	g.SwitchPage(1)
	g.SwitchPage(7)
	assert.Equal(t, []string{"sphere"}, names)

	g.Close()
	assert.Equal(t, 0, reg.Len())
	assert.False(t, g.Sampler.Running())
}

func TestHeaderHit(t *testing.T) {
	left := 640 - overlayMargin - overlayWidth
	assert.True(t, headerHit(left+1, overlayMargin+1, 640))
	assert.False(t, headerHit(left-1, overlayMargin+1, 640))
	assert.False(t, headerHit(left+1, overlayMargin+overlayPadding+lineHeight, 640))
}

func TestPolygonResolutionClamped(t *testing.T) {
	p := &PolygonPage{}
	p.SetResolution(1)
	assert.Equal(t, minResolution, p.Resolution)
	p.SetResolution(1000)
	assert.Equal(t, maxResolution, p.Resolution)
	assert.Len(t, p.vertices(0, 0, 1), maxResolution)
}

func TestBlinkPageStartsStopped(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewBlinkPage("blink", 500*time.Millisecond)
	p.now = func() time.Time { return now }

	now = now.Add(2 * time.Second)
	assert.Nil(t, p.Update())
	assert.False(t, p.Blinking())
	assert.False(t, p.Lit())
}

func TestBlinkPageToggles(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewBlinkPage("blink", 500*time.Millisecond)
	p.now = func() time.Time { return now }

	assert.True(t, p.ToggleBlinking())
	assert.Nil(t, p.Update())
	assert.False(t, p.Lit())

	now = now.Add(499 * time.Millisecond)
	assert.Nil(t, p.Update())
	assert.False(t, p.Lit())

	now = now.Add(time.Millisecond)
	assert.Nil(t, p.Update())
	assert.True(t, p.Lit())

	now = now.Add(500 * time.Millisecond)
	assert.Nil(t, p.Update())
	assert.False(t, p.Lit())

	now = now.Add(500 * time.Millisecond)
	assert.Nil(t, p.Update())
	assert.True(t, p.Lit())

	// Stopping restores the base color and freezes it there.
	assert.False(t, p.ToggleBlinking())
	assert.False(t, p.Lit())
	now = now.Add(time.Second)
	assert.Nil(t, p.Update())
	assert.False(t, p.Lit())
}

func TestSidebarMarksActivePage(t *testing.T) {
	g, err := NewGame(Options{Width: 640, Height: 480},
		&PolygonPage{Title: "cone", Resolution: 6},
		&PolygonPage{Title: "sphere", Resolution: 24},
		NewBlinkPage("blink", time.Second))
	require.Nil(t, err)
	defer g.Close()

	assert.Equal(t, []string{"v Pages [tab]", "* 1 cone", "  2 sphere", "  3 blink"}, g.sidebarLines())

	g.SwitchPage(2)
	assert.Equal(t, []string{"v Pages [tab]", "  1 cone", "  2 sphere", "* 3 blink"}, g.sidebarLines())
}

func TestSidebarCollapses(t *testing.T) {
	g, err := NewGame(Options{Width: 640, Height: 480}, &PolygonPage{Title: "cone", Resolution: 6})
	require.Nil(t, err)
	defer g.Close()

	assert.False(t, g.ToggleSidebar())
	assert.Equal(t, []string{"> Pages [tab]"}, g.sidebarLines())
	assert.True(t, g.ToggleSidebar())
	assert.Len(t, g.sidebarLines(), 2)
}

func TestPageKeysFollowPageCount(t *testing.T) {
	g, err := NewGame(Options{Width: 640, Height: 480},
		&PolygonPage{Title: "cone", Resolution: 6},
		&PolygonPage{Title: "sphere", Resolution: 24},
		NewBlinkPage("blink", time.Second))
	require.Nil(t, err)
	defer g.Close()

	assert.Equal(t, []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}, g.pageKeys)
}

func TestRepresentationCycles(t *testing.T) {
	r := RepresentationSurface
	var seen []string
	for i := 0; i < 4; i++ {
		seen = append(seen, r.String())
		r = r.Next()
	}
	assert.Equal(t, []string{"surface", "wireframe", "points", "surface"}, seen)
	assert.Equal(t, "unknown", Representation(7).String())
}
