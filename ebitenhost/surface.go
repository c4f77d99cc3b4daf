package ebitenhost

import (
	"github.com/erinpentecost/framestat"
	"github.com/hajimehoshi/ebiten/v2"
)

// Vendor is the vendor name reported for ebiten surfaces.
const Vendor = "Ebitengine"

// Surface is a page's drawable area inside the ebiten window.
// Its capability info is the graphics library ebiten picked, which is
// unknown until the game loop has started.
type Surface struct {
	Name string

	readDebugInfo func(*ebiten.DebugInfo)
}

// NewSurface returns a surface backed by the running ebiten game.
func NewSurface(name string) *Surface {
	return &Surface{Name: name, readDebugInfo: ebiten.ReadDebugInfo}
}

// Capabilities implements framestat.Surface.
func (s *Surface) Capabilities() (framestat.GPUInfo, error) {
	var d ebiten.DebugInfo
	s.readDebugInfo(&d)
	if d.GraphicsLibrary == ebiten.GraphicsLibraryUnknown || d.GraphicsLibrary == ebiten.GraphicsLibraryAuto {
		return framestat.GPUInfo{}, framestat.ErrCapabilityUnavailable
	}
	return framestat.GPUInfo{
		Vendor:   Vendor,
		Renderer: d.GraphicsLibrary.String(),
	}, nil
}
