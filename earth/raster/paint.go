package raster

import (
	"image/color"

	"github.com/fogleman/gg"
)

// Paint is a fill or stroke source. Coordinates are logical surface units.
type Paint interface {
	pattern(scale float64) gg.Pattern
}

var transparent = gg.NewSolidPattern(color.Transparent)

// Solid paints one color everywhere.
type Solid color.NRGBA

func (s Solid) pattern(float64) gg.Pattern { return gg.NewSolidPattern(color.NRGBA(s)) }

// Stop is one color stop of a gradient. Offsets run from 0 to 1.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Linear is a gradient along the line from (X0, Y0) to (X1, Y1). Pixels
// before the start or past the end take the color of the nearest stop. A
// gradient whose endpoints coincide paints nothing.
type Linear struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

func (l Linear) pattern(k float64) gg.Pattern {
	if len(l.Stops) == 0 || (l.X0 == l.X1 && l.Y0 == l.Y1) {
		return transparent
	}
	g := gg.NewLinearGradient(l.X0*k, l.Y0*k, l.X1*k, l.Y1*k)
	addStops(g, l.Stops)
	return g
}

// Radial is a gradient between two concentric circles centered at (CX, CY).
// Inside R0 the first stop applies, outside R1 the last one.
type Radial struct {
	CX, CY float64
	R0, R1 float64
	Stops  []Stop
}

func (r Radial) pattern(k float64) gg.Pattern {
	if len(r.Stops) == 0 || r.R0 == r.R1 {
		return transparent
	}
	g := gg.NewRadialGradient(r.CX*k, r.CY*k, r.R0*k, r.CX*k, r.CY*k, r.R1*k)
	addStops(g, r.Stops)
	return g
}

func addStops(g gg.Gradient, stops []Stop) {
	for _, s := range stops {
		g.AddColorStop(s.Offset, s.Color)
	}
}
