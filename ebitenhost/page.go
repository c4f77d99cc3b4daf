package ebitenhost

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Page is one selectable scene in the demo window.
type Page interface {
	Name() string
	Update() error
	Draw(screen *ebiten.Image)
}

// Representation selects how a polygon page is drawn.
type Representation int

const (
	// RepresentationSurface fills the polygon.
	RepresentationSurface Representation = iota
	// RepresentationWireframe strokes the polygon's edges.
	RepresentationWireframe
	// RepresentationPoints marks only the vertices.
	RepresentationPoints

	representationCount = iota
)

// Next returns the representation R cycles to.
func (r Representation) Next() Representation {
	return (r + 1) % representationCount
}

func (r Representation) String() string {
	switch r {
	case RepresentationSurface:
		return "surface"
	case RepresentationWireframe:
		return "wireframe"
	case RepresentationPoints:
		return "points"
	}
	return "unknown"
}

const (
	minResolution = 3
	maxResolution = 60
)

var shapeColor = color.RGBA{R: 0x4a, G: 0x90, B: 0xe2, A: 0xff}

// PolygonPage draws a regular polygon whose resolution and representation
// can be changed from the keyboard (Up/Down, R).
type PolygonPage struct {
	Title          string
	Resolution     int
	Representation Representation
	Spin           bool

	angle float64
}

// Name implements Page.
func (p *PolygonPage) Name() string { return p.Title }

// SetResolution clamps n into the supported range.
func (p *PolygonPage) SetResolution(n int) {
	p.Resolution = min(max(n, minResolution), maxResolution)
}

// Update implements Page.
func (p *PolygonPage) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		p.SetResolution(p.Resolution + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		p.SetResolution(p.Resolution - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		p.Representation = p.Representation.Next()
	}
	if p.Spin {
		p.angle += math.Pi / 180
	}
	return nil
}

func (p *PolygonPage) vertices(cx, cy, r float64) [][2]float32 {
	n := max(p.Resolution, minResolution)
	out := make([][2]float32, n)
	for i := range out {
		a := p.angle + 2*math.Pi*float64(i)/float64(n)
		out[i] = [2]float32{float32(cx + r*math.Cos(a)), float32(cy + r*math.Sin(a))}
	}
	return out
}

// Draw implements Page.
func (p *PolygonPage) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	r := math.Min(cx, cy) * 0.6
	vs := p.vertices(cx, cy, r)

	switch p.Representation {
	case RepresentationPoints:
		for _, v := range vs {
			vector.DrawFilledCircle(screen, v[0], v[1], 3, shapeColor, true)
		}
	case RepresentationWireframe:
		for i, v := range vs {
			w := vs[(i+1)%len(vs)]
			vector.StrokeLine(screen, v[0], v[1], w[0], w[1], 2, shapeColor, true)
		}
	default:
		var path vector.Path
		path.MoveTo(vs[0][0], vs[0][1])
		for _, v := range vs[1:] {
			path.LineTo(v[0], v[1])
		}
		path.Close()
		fillPath(screen, &path, shapeColor)
	}
}

// whitePixel is the source texture for filled triangles. Created on first use
// from Draw.
var whitePixel *ebiten.Image

func fillPath(dst *ebiten.Image, path *vector.Path, clr color.RGBA) {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(clr.R) / 0xff
		vs[i].ColorG = float32(clr.G) / 0xff
		vs[i].ColorB = float32(clr.B) / 0xff
		vs[i].ColorA = float32(clr.A) / 0xff
	}
	dst.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

var blinkColor = color.RGBA{R: 0xff, G: 0xff, A: 0xff}

// BlinkPage shows a square that, once started with Space, alternates between
// its base and blink colors every Interval. Stopping restores the base color.
type BlinkPage struct {
	Title    string
	Interval time.Duration

	blinking   bool
	lit        bool
	lastToggle time.Time
	now        func() time.Time
}

// NewBlinkPage returns a stopped blink page using the wall clock.
func NewBlinkPage(title string, interval time.Duration) *BlinkPage {
	return &BlinkPage{Title: title, Interval: interval, now: time.Now}
}

// Name implements Page.
func (p *BlinkPage) Name() string { return p.Title }

// Blinking reports whether the timer is running.
func (p *BlinkPage) Blinking() bool { return p.blinking }

// Lit reports whether the square currently shows the blink color.
func (p *BlinkPage) Lit() bool { return p.lit }

// ToggleBlinking starts or stops the timer and returns the new state.
func (p *BlinkPage) ToggleBlinking() bool {
	p.blinking = !p.blinking
	p.lit = false
	p.lastToggle = p.now()
	return p.blinking
}

// Update implements Page.
func (p *BlinkPage) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.ToggleBlinking()
	}
	p.advance()
	return nil
}

func (p *BlinkPage) advance() {
	if !p.blinking {
		return
	}
	now := p.now()
	if now.Sub(p.lastToggle) >= p.Interval {
		p.lit = !p.lit
		p.lastToggle = now
	}
}

// Draw implements Page.
func (p *BlinkPage) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	side := float32(min(b.Dx(), b.Dy())) / 3
	x := float32(b.Dx())/2 - side/2
	y := float32(b.Dy())/2 - side/2
	clr := shapeColor
	if p.lit {
		clr = blinkColor
	}
	vector.DrawFilledRect(screen, x, y, side, side, clr, false)

	label := "[space] start"
	if p.blinking {
		label = "[space] stop"
	}
	ebitenutil.DebugPrintAt(screen, label, int(x), int(y+side)+lineHeight)
}
