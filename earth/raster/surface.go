package raster

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// DefaultBackground is what Clear paints when no background is set.
var DefaultBackground = color.NRGBA{R: 6, G: 6, B: 18, A: 255}

// Surface is a 2D drawing context over an RGBA framebuffer, backed by a gg
// context. Drawing coordinates are logical units; the context transform
// multiplies them by the device pixel ratio. Line widths, dashes and
// gradients are scaled the same way before they reach gg.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	Background color.NRGBA

	img   *image.RGBA
	dc    *gg.Context
	scale float64

	subpaths int
	open     bool
}

// New returns a surface drawing into img at the given device pixel ratio.
func New(img *image.RGBA, scale float64) *Surface {
	s := &Surface{Background: DefaultBackground}
	s.Attach(img, scale)
	return s
}

// Attach points the surface at a new framebuffer, e.g. after a resize. Any
// path under construction is discarded.
func (s *Surface) Attach(img *image.RGBA, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.img = img
	s.scale = scale
	s.dc = nil
	if img != nil && !img.Rect.Empty() {
		dc := gg.NewContextForRGBA(img)
		dc.Scale(scale, scale)
		dc.SetLineCapButt()
		dc.SetLineJoinRound()
		s.dc = dc
	}
	s.subpaths, s.open = 0, false
}

func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Scale() float64 { return s.scale }

// LogicalSize returns the surface size in logical units.
func (s *Surface) LogicalSize() (w, h float64) {
	if s.img == nil {
		return 0, 0
	}
	return float64(s.img.Rect.Dx()) / s.scale, float64(s.img.Rect.Dy()) / s.scale
}

func (s *Surface) width() int {
	if s.img == nil {
		return 0
	}
	return s.img.Rect.Dx()
}

func (s *Surface) height() int {
	if s.img == nil {
		return 0
	}
	return s.img.Rect.Dy()
}

// Clear fills the whole framebuffer with the background color.
func (s *Surface) Clear() {
	if s.dc == nil {
		return
	}
	s.dc.SetColor(s.Background)
	s.dc.Clear()
}

// BeginPath discards the current path.
func (s *Surface) BeginPath() {
	if s.dc != nil {
		s.dc.ClearPath()
	}
	s.subpaths, s.open = 0, false
}

// MoveTo starts a new subpath at (x, y).
func (s *Surface) MoveTo(x, y float64) {
	if s.dc == nil {
		return
	}
	s.dc.MoveTo(x, y)
	s.subpaths++
	s.open = true
}

// LineTo extends the open subpath to (x, y). Without an open subpath it
// behaves like MoveTo.
func (s *Surface) LineTo(x, y float64) {
	if s.dc == nil {
		return
	}
	if !s.open {
		s.MoveTo(x, y)
		return
	}
	s.dc.LineTo(x, y)
}

// ClosePath closes the open subpath. The next LineTo starts a new one.
func (s *Surface) ClosePath() {
	if s.dc == nil || !s.open {
		return
	}
	s.dc.ClosePath()
	s.dc.NewSubPath()
	s.open = false
}

// Arc adds a full circle of radius r around (cx, cy) as its own closed
// subpath.
func (s *Surface) Arc(cx, cy, r float64) {
	if s.dc == nil || r <= 0 {
		return
	}
	s.dc.DrawCircle(cx, cy, r)
	s.dc.NewSubPath()
	s.subpaths++
	s.open = false
}

// Subpaths reports how many subpaths the current path holds.
func (s *Surface) Subpaths() int { return s.subpaths }

// Fill paints the inside of the current path with p, nonzero winding. Open
// subpaths are closed implicitly. The path is kept.
func (s *Surface) Fill(p Paint) {
	if s.dc == nil || p == nil {
		return
	}
	s.dc.SetFillStyle(p.pattern(s.scale))
	s.dc.FillPreserve()
}

// FillRect paints the rectangle with p. It discards the current path.
func (s *Surface) FillRect(x, y, w, h float64, p Paint) {
	if s.dc == nil || p == nil {
		return
	}
	s.BeginPath()
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetFillStyle(p.pattern(s.scale))
	s.dc.Fill()
}
