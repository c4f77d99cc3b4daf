// Package ebitenhost runs a framestat sampler inside an ebiten window.
//
// The game's Draw call is the redraw cadence: every Draw fires the frame
// pump once, so the sampler ticks exactly as often as the window repaints.
// The overlay is drawn in the top-right corner and collapses when its
// header is clicked (or P is pressed). The page list sits on the left and
// collapses with Tab.
package ebitenhost

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/erinpentecost/framestat"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	overlayMargin  = 25
	overlayPadding = 10
	overlayWidth   = 200
	lineHeight     = 16
	sidebarWidth   = 140
)

var (
	overlayBackground = color.RGBA{A: 0xb3}
	sidebarHighlight  = color.RGBA{R: 0x4a, G: 0x90, B: 0xe2, A: 0x80}
	digitKeys         = []ebiten.Key{
		ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
		ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
		ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
	// The debug font only covers ASCII.
	asciiMarkers = strings.NewReplacer("▶", ">", "▼", "v")
)

// Options configures a Game.
type Options struct {
	Title     string
	Width     int
	Height    int
	Collapsed bool
	Sampler   []framestat.Option
}

// Game is an ebiten.Game hosting demo pages and the performance overlay.
type Game struct {
	Pump    *framestat.FramePump
	Sampler *framestat.Sampler
	Overlay *framestat.Overlay

	opts       Options
	pages      []Page
	pageKeys   []ebiten.Key
	page       int
	sidebar    bool
	unregister func()
	newSurface func(name string) framestat.Surface
}

// NewGame builds a game over pages. The first page is active.
func NewGame(opts Options, pages ...Page) (*Game, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("ebitenhost: at least one page is required")
	}
	pump := framestat.NewFramePump()
	sampler, err := framestat.NewSampler(pump, framestat.NewRegistry(), opts.Sampler...)
	if err != nil {
		return nil, err
	}
	g := &Game{
		Pump:       pump,
		Sampler:    sampler,
		Overlay:    framestat.NewOverlay(opts.Collapsed),
		opts:       opts,
		pages:      pages,
		pageKeys:   digitKeys[:min(len(pages), len(digitKeys))],
		page:       -1,
		sidebar:    true,
		newSurface: func(name string) framestat.Surface { return NewSurface(name) },
	}
	g.SwitchPage(0)
	return g, nil
}

// Page returns the active page.
func (g *Game) Page() Page {
	return g.pages[g.page]
}

// SwitchPage activates page i, moving the registered surface with it.
// Out of range indexes are ignored.
func (g *Game) SwitchPage(i int) {
	if i < 0 || i >= len(g.pages) || i == g.page {
		return
	}
	if g.unregister != nil {
		g.unregister()
	}
	g.page = i
	g.unregister = g.Sampler.Registry().Register(g.newSurface(g.pages[i].Name()))
	framestat.Logger().Debug("ebitenhost: page", "name", g.pages[i].Name())
}

// ToggleSidebar shows or hides the page list and returns whether it is
// now shown.
func (g *Game) ToggleSidebar() bool {
	g.sidebar = !g.sidebar
	return g.sidebar
}

// sidebarLines renders the page list. The active entry is marked, and a
// hidden list keeps only its header.
func (g *Game) sidebarLines() []string {
	if !g.sidebar {
		return []string{"> Pages [tab]"}
	}
	lines := make([]string, 0, len(g.pages)+1)
	lines = append(lines, "v Pages [tab]")
	for i, p := range g.pages {
		marker := " "
		if i == g.page {
			marker = "*"
		}
		key := " "
		if i < len(g.pageKeys) {
			key = fmt.Sprint(i + 1)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", marker, key, p.Name()))
	}
	return lines
}

// Close unregisters the active surface and stops the sampler.
func (g *Game) Close() {
	if g.unregister != nil {
		g.unregister()
		g.unregister = nil
	}
	g.Sampler.Stop()
}

// headerHit reports whether (x, y) falls on the overlay header for a
// screen w pixels wide.
func headerHit(x, y, w int) bool {
	left := w - overlayMargin - overlayWidth
	top := overlayMargin
	return x >= left && x < left+overlayWidth && y >= top && y < top+overlayPadding+lineHeight
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	for i, k := range g.pageKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.SwitchPage(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.ToggleSidebar()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.Overlay.ToggleCollapsed()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if headerHit(x, y, g.opts.Width) {
			g.Overlay.ToggleCollapsed()
		}
	}
	return g.Page().Update()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Pump.Fire()
	g.Page().Draw(screen)
	g.drawSidebar(screen)
	g.drawOverlay(screen)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	lines := g.Overlay.Lines(g.Sampler.Snapshot())
	w := screen.Bounds().Dx()
	x := w - overlayMargin - overlayWidth
	h := overlayPadding*2 + len(lines)*lineHeight
	vector.DrawFilledRect(screen, float32(x), overlayMargin, overlayWidth, float32(h), overlayBackground, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, asciiMarkers.Replace(line), x+overlayPadding, overlayMargin+overlayPadding+i*lineHeight)
	}
}

func (g *Game) drawSidebar(screen *ebiten.Image) {
	lines := g.sidebarLines()
	h := overlayPadding*2 + len(lines)*lineHeight
	vector.DrawFilledRect(screen, overlayMargin, overlayMargin, sidebarWidth, float32(h), overlayBackground, false)
	for i, line := range lines {
		y := overlayMargin + overlayPadding + i*lineHeight
		if i > 0 && i-1 == g.page {
			vector.DrawFilledRect(screen, overlayMargin, float32(y-2), sidebarWidth, lineHeight, sidebarHighlight, false)
		}
		ebitenutil.DebugPrintAt(screen, line, overlayMargin+overlayPadding, y)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width, g.opts.Height
}

// Run opens the window and blocks until it closes. The sampler runs for
// exactly as long as the window is open.
func Run(g *Game) error {
	if err := g.Sampler.Start(); err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetVsyncEnabled(true)
	return ebiten.RunGame(g)
}
