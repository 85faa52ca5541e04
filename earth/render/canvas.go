package render

import (
	"image/color"

	"globe/earth/raster"
)

// Canvas is the drawing surface a frame is rendered onto. Coordinates are
// logical units. *raster.Surface implements it.
type Canvas interface {
	Clear()
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(cx, cy, r float64)
	Stroke(st raster.StrokeStyle)
	Fill(p raster.Paint)
	FillRect(x, y, w, h float64, p raster.Paint)
	FillText(text string, x, y float64, c color.NRGBA)
}

var _ Canvas = (*raster.Surface)(nil)

// Viewport is the logical size of the surface and its device pixel ratio.
type Viewport struct {
	Width, Height float64
	DPR           float64
}

func (v Viewport) Empty() bool { return v.Width <= 0 || v.Height <= 0 }
