package render

import (
	"image/color"

	"globe/earth/raster"
	"globe/earth/sphere"
)

const (
	RadiusFactor = 0.38
	FOV          = 600
	ArcSegments  = 60
)

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

var transparent = color.NRGBA{}

// Layer styles.
var (
	gridColor  = rgba(100, 130, 255, 0.06)
	landColor  = rgba(150, 130, 255, 0.5)
	outline    = rgba(130, 100, 255, 0.25)
	borderA    = rgba(200, 120, 255, 0.85)
	borderB    = rgba(80, 200, 255, 0.85)
	highlight  = rgba(180, 160, 255, 1)
	dotColor   = rgba(255, 255, 255, 1)
	arcMidTone = rgba(140, 160, 255, 0.9)
)

const (
	gridWidth    = 0.5
	landWidth    = 1.1
	borderWidth  = 1.8
	outlineWidth = 1.5
	arcWidth     = 2
)

var arcDash = []float64{4, 6}

// dashLength is one full period of arcDash.
const dashLength = 10

// Marker is a labeled point on the globe.
type Marker struct {
	Label string
	Pos   sphere.LatLng
	Color color.NRGBA
	Pulse color.NRGBA
}

var (
	Tashkent = sphere.LatLng{Lat: 41.2995, Lng: 69.2401}
	Seoul    = sphere.LatLng{Lat: 37.5665, Lng: 126.978}
)

// SourceMarker is where the arc starts.
func SourceMarker(label string) Marker {
	return Marker{Label: label, Pos: Tashkent, Color: rgba(200, 120, 255, 1), Pulse: rgba(200, 120, 255, 0.3)}
}

// DestinationMarker is where the arc ends.
func DestinationMarker(label string) Marker {
	return Marker{Label: label, Pos: Seoul, Color: rgba(80, 200, 255, 1), Pulse: rgba(80, 200, 255, 0.3)}
}

func glowPaint(cx, cy, r float64) raster.Paint {
	return raster.Radial{CX: cx, CY: cy, R0: r * 0.5, R1: r * 1.5, Stops: []raster.Stop{
		{Offset: 0, Color: rgba(120, 80, 255, 0.08)},
		{Offset: 0.5, Color: rgba(80, 120, 255, 0.04)},
		{Offset: 1, Color: transparent},
	}}
}

func atmospherePaint(cx, cy, r float64) raster.Paint {
	return raster.Radial{CX: cx, CY: cy, R0: r * 0.9, R1: r * 1.1, Stops: []raster.Stop{
		{Offset: 0, Color: rgba(100, 140, 255, 0)},
		{Offset: 0.5, Color: rgba(100, 140, 255, 0.06)},
		{Offset: 1, Color: rgba(100, 140, 255, 0)},
	}}
}

func fadePaint(x, y, r float64, c color.NRGBA) raster.Paint {
	return raster.Radial{CX: x, CY: y, R0: 0, R1: r, Stops: []raster.Stop{
		{Offset: 0, Color: c},
		{Offset: 1, Color: transparent},
	}}
}

func arcPaint(from, to sphere.Projected, src, dst color.NRGBA) raster.Paint {
	src.A, dst.A = arcMidTone.A, arcMidTone.A
	return raster.Linear{X0: from.X, Y0: from.Y, X1: to.X, Y1: to.Y, Stops: []raster.Stop{
		{Offset: 0, Color: src},
		{Offset: 0.5, Color: arcMidTone},
		{Offset: 1, Color: dst},
	}}
}
