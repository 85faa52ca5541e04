// Package hud draws a small status overlay in the top-left corner of the
// frame.
package hud

import (
	"fmt"
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"globe/earth/geodata"
)

// Display is what the overlay draws on. *raster.Surface implements it.
type Display interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Info is the state shown on the overlay.
type Info struct {
	Title    string
	Ticks    uint64
	TPS      float64
	Rotation float64
	Tilt     float64
	Dragging bool
	Dropped  uint64
	Layers   []geodata.LayerStatus
}

const (
	lineHeight = 10
	fontOffset = 7
	pad        = 3
	maxCols    = 40
)

var (
	fg      = color.RGBA{R: 200, G: 210, B: 255, A: 255}
	dim     = color.RGBA{R: 120, G: 130, B: 170, A: 255}
	bg      = color.RGBA{R: 0, G: 0, B: 0, A: 150}
	okColor = color.RGBA{R: 120, G: 230, B: 150, A: 255}
)

// Overlay renders Info as lines of text over a translucent box.
type Overlay struct {
	font  tinyfont.Fonter
	width int16
}

func New() *Overlay {
	f := &proggy.TinySZ8pt7b
	_, cw := tinyfont.LineWidth(f, "0")
	return &Overlay{font: f, width: int16(cw) * maxCols}
}

type line struct {
	text string
	c    color.RGBA
}

// Lines formats info the way Draw shows it.
func Lines(info Info) []string {
	ls := lines(info)
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.text
	}
	return out
}

func lines(info Info) []line {
	drag := "idle"
	if info.Dragging {
		drag = "dragging"
	}
	out := []line{
		{info.Title, fg},
		{fmt.Sprintf("tick %d  %.0f/s", info.Ticks, info.TPS), dim},
		{fmt.Sprintf("rot %6.1f  tilt %5.1f", deg(info.Rotation), deg(info.Tilt)), fg},
		{fmt.Sprintf("input %s  dropped %d", drag, info.Dropped), dim},
	}
	for _, l := range info.Layers {
		c := dim
		text := fmt.Sprintf("%-9s %s", l.Layer, l.Status)
		if l.State == geodata.Loaded {
			c = okColor
			text = fmt.Sprintf("%-9s %d rings", l.Layer, l.Rings)
		}
		out = append(out, line{text, c})
	}
	return out
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }

// Draw paints the overlay. Every font pixel becomes a scale×scale block so
// the text keeps its size on dense displays.
func (o *Overlay) Draw(d Display, scale int16, info Info) {
	if scale < 1 {
		scale = 1
	}
	ls := lines(info)
	w := (o.width + 2*pad) * scale
	h := (int16(len(ls))*lineHeight + 2*pad) * scale
	_ = d.FillRectangle(0, 0, w, h, bg)

	bd := blockDisplay{d: d, k: scale}
	for i, l := range ls {
		text := truncateToWidth(o.font, l.text, int(o.width))
		tinyfont.WriteLine(bd, o.font, pad, pad+int16(i)*lineHeight+fontOffset, text, l.c)
	}
}

// blockDisplay scales a Display down by k so tinyfont can draw on it.
type blockDisplay struct {
	d Display
	k int16
}

func (b blockDisplay) Size() (x, y int16) {
	w, h := b.d.Size()
	return w / b.k, h / b.k
}

func (b blockDisplay) SetPixel(x, y int16, c color.RGBA) {
	_ = b.d.FillRectangle(x*b.k, y*b.k, b.k, b.k, c)
}

func (b blockDisplay) Display() error { return b.d.Display() }

func truncateToWidth(f tinyfont.Fonter, s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	w, _ := tinyfont.LineWidth(f, s)
	if int(w) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		w, _ = tinyfont.LineWidth(f, string(r)+"~")
		if int(w) <= maxW {
			return string(r) + "~"
		}
	}
	return ""
}
