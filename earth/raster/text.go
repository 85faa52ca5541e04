package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// LabelFont is the font FillText draws with.
var LabelFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// TextWidth returns the width of text in logical units at scale 1.
func TextWidth(text string) float64 {
	_, w := tinyfont.LineWidth(LabelFont, text)
	return float64(w)
}

// FillText draws text centered horizontally on x with its baseline at y.
// Glyphs are scaled by whole device pixels so they stay crisp.
func (s *Surface) FillText(text string, x, y float64, c color.NRGBA) {
	if s.img == nil || text == "" {
		return
	}
	k := int16(math.Max(1, math.Round(s.scale)))
	d := blockDisplay{s: s, k: k}
	_, w := tinyfont.LineWidth(LabelFont, text)
	gx := int16(math.Round(x*s.scale/float64(k))) - int16(w/2)
	gy := int16(math.Round(y * s.scale / float64(k)))
	tinyfont.WriteLine(d, LabelFont, gx, gy, text, color.RGBA(c))
}

// blockDisplay draws every glyph pixel as a k×k block of device pixels.
type blockDisplay struct {
	s *Surface
	k int16
}

func (d blockDisplay) Size() (x, y int16) {
	w, h := d.s.Size()
	return w / d.k, h / d.k
}

func (d blockDisplay) SetPixel(x, y int16, c color.RGBA) {
	_ = d.s.FillRectangle(x*d.k, y*d.k, d.k, d.k, c)
}

func (d blockDisplay) Display() error { return nil }

// Size implements drivers.Displayer in device pixels.
func (s *Surface) Size() (x, y int16) {
	return int16(min(s.width(), math.MaxInt16)), int16(min(s.height(), math.MaxInt16))
}

// SetPixel blends c over the device pixel at (x, y). The color is treated as
// non-premultiplied; A is its opacity.
func (s *Surface) SetPixel(x, y int16, c color.RGBA) {
	_ = s.FillRectangle(x, y, 1, 1, c)
}

// Display is a no-op; the host presents the framebuffer.
func (s *Surface) Display() error { return nil }

// FillRectangle blends c over a rectangle of device pixels.
func (s *Surface) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if s.img == nil || c.A == 0 {
		return nil
	}
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).Intersect(s.img.Rect)
	if r.Empty() {
		return nil
	}
	src := image.NewUniform(color.NRGBA(c))
	draw.Draw(s.img, r, src, image.Point{}, draw.Over)
	return nil
}

// SetScroll is a no-op; terminals on a Surface use software scroll.
func (s *Surface) SetScroll(line int16) {}

func (s *Surface) SetRotation(rotation drivers.Rotation) error { return nil }
