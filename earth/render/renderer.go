package render

import (
	"math"
	"time"

	"github.com/paulmach/orb"

	"globe/earth/geodata"
	"globe/earth/raster"
	"globe/earth/sphere"
	"globe/earth/view"
)

// Stats describes what one frame drew.
type Stats struct {
	Skipped    bool // empty viewport, nothing drawn
	Subpaths   int  // visible runs stroked across grid, land and borders
	Markers    int
	Arc        bool
	Highlight  bool
	RingsDrawn int
}

// Renderer draws the globe scene. It holds no per-frame state; everything
// that changes between frames is passed to Frame.
type Renderer struct {
	source, dest Marker
	grid         []orb.Ring
}

// New returns a renderer for an arc from source to dest.
func New(source, dest Marker) *Renderer {
	lines := sphere.Graticule()
	grid := make([]orb.Ring, len(lines))
	for i, line := range lines {
		r := make(orb.Ring, len(line))
		for j, ll := range line {
			r[j] = orb.Point{ll.Lng, ll.Lat}
		}
		grid[i] = r
	}
	return &Renderer{source: source, dest: dest, grid: grid}
}

// Frame draws one frame of the scene onto c. It advances the ambient
// rotation of st unless a drag is in progress. Layers that are not loaded are
// left out. An empty viewport draws nothing and leaves st untouched.
func (r *Renderer) Frame(c Canvas, st *view.State, layers *geodata.Layers, vp Viewport, now time.Time) Stats {
	var stats Stats
	if vp.Empty() {
		stats.Skipped = true
		return stats
	}

	c.Clear()
	st.Advance()

	cam := sphere.Camera{
		CX:       vp.Width / 2,
		CY:       vp.Height / 2,
		Radius:   math.Min(vp.Width, vp.Height) * RadiusFactor,
		FOV:      FOV,
		Rotation: st.Rotation,
		Tilt:     st.Tilt,
	}
	sec := seconds(now)

	r.drawBackdrop(c, vp, cam)

	for _, ring := range r.grid {
		stats.add(r.drawRing(c, cam, ring, raster.Solid(gridColor), gridWidth))
	}
	if layers != nil {
		for _, l := range []struct {
			slot  *geodata.Slot
			color raster.Solid
			width float64
		}{
			{&layers.Land, raster.Solid(landColor), landWidth},
			{&layers.CountryA, raster.Solid(borderA), borderWidth},
			{&layers.CountryB, raster.Solid(borderB), borderWidth},
		} {
			rings, ok := l.slot.Rings()
			if !ok {
				continue
			}
			for _, ring := range rings {
				stats.add(r.drawRing(c, cam, ring, l.color, l.width))
			}
		}
	}

	srcP := cam.Transform(r.source.Pos)
	dstP := cam.Transform(r.dest.Pos)
	if r.drawMarker(c, dstP, r.dest, sec) {
		stats.Markers++
	}
	if r.drawMarker(c, srcP, r.source, sec) {
		stats.Markers++
	}

	if srcP.Front() || dstP.Front() {
		stats.Arc = r.drawArc(c, cam, srcP, dstP, sec)
		stats.Highlight = r.drawHighlight(c, cam, sec)
	}
	return stats
}

func (s *Stats) add(runs int) {
	if runs > 0 {
		s.RingsDrawn++
		s.Subpaths += runs
	}
}

func (r *Renderer) drawBackdrop(c Canvas, vp Viewport, cam sphere.Camera) {
	c.FillRect(0, 0, vp.Width, vp.Height, glowPaint(cam.CX, cam.CY, cam.Radius))

	c.BeginPath()
	c.Arc(cam.CX, cam.CY, cam.Radius)
	c.Stroke(raster.StrokeStyle{Paint: raster.Solid(outline), Width: outlineWidth})

	c.BeginPath()
	c.Arc(cam.CX, cam.CY, cam.Radius*1.1)
	c.Fill(atmospherePaint(cam.CX, cam.CY, cam.Radius))
}

// drawRing strokes the front-facing runs of ring as separate subpaths. A
// back-facing vertex ends the current run. It returns the number of runs
// with at least two vertices; rings with fewer than two points and rings
// with no visible run issue no draw calls at all.
func (r *Renderer) drawRing(c Canvas, cam sphere.Camera, ring orb.Ring, color raster.Solid, width float64) int {
	if len(ring) < 2 {
		return 0
	}

	runs, n := 0, 0
	begun := false
	for _, pt := range ring {
		p := cam.Transform(sphere.LatLng{Lat: pt[1], Lng: pt[0]})
		if !p.Front() {
			if n >= 2 {
				runs++
			}
			n = 0
			continue
		}
		if !begun {
			c.BeginPath()
			begun = true
		}
		if n == 0 {
			c.MoveTo(p.X, p.Y)
		} else {
			c.LineTo(p.X, p.Y)
		}
		n++
	}
	if n >= 2 {
		runs++
	}
	if runs > 0 {
		c.Stroke(raster.StrokeStyle{Paint: color, Width: width})
	}
	return runs
}

// drawMarker draws m at p if p is on the front hemisphere.
func (r *Renderer) drawMarker(c Canvas, p sphere.Projected, m Marker, sec float64) bool {
	if !p.Front() {
		return false
	}

	c.BeginPath()
	c.Arc(p.X, p.Y, PulseRadius(sec))
	c.Stroke(raster.StrokeStyle{Paint: raster.Solid(m.Pulse), Width: 1})

	c.BeginPath()
	c.Arc(p.X, p.Y, 20)
	c.Fill(fadePaint(p.X, p.Y, 20, m.Color))

	c.BeginPath()
	c.Arc(p.X, p.Y, 4)
	c.Fill(raster.Solid(m.Color))

	if m.Label != "" {
		c.FillText(m.Label, p.X, p.Y-18, m.Color)
	}
	return true
}

// drawArc strokes the lifted path from source to destination as one dashed
// path. Back-facing samples are skipped without breaking the path.
func (r *Renderer) drawArc(c Canvas, cam sphere.Camera, srcP, dstP sphere.Projected, sec float64) bool {
	c.BeginPath()
	drawn := 0
	for i := 0; i <= ArcSegments; i++ {
		f := float64(i) / ArcSegments
		p := cam.TransformAt(sphere.Lerp(r.source.Pos, r.dest.Pos, f), sphere.ArcLift(f))
		if !p.Front() {
			continue
		}
		if drawn == 0 {
			c.MoveTo(p.X, p.Y)
		} else {
			c.LineTo(p.X, p.Y)
		}
		drawn++
	}
	if drawn < 2 {
		return false
	}
	c.Stroke(raster.StrokeStyle{
		Paint:      arcPaint(srcP, dstP, r.source.Color, r.dest.Color),
		Width:      arcWidth,
		Dash:       arcDash,
		DashOffset: DashOffset(sec),
	})
	return true
}

func (r *Renderer) drawHighlight(c Canvas, cam sphere.Camera, sec float64) bool {
	f := HighlightFraction(sec)
	p := cam.TransformAt(sphere.Lerp(r.source.Pos, r.dest.Pos, f), sphere.ArcLift(f))
	if !p.Front() {
		return false
	}

	c.BeginPath()
	c.Arc(p.X, p.Y, 12)
	c.Fill(fadePaint(p.X, p.Y, 12, highlight))

	c.BeginPath()
	c.Arc(p.X, p.Y, 3)
	c.Fill(raster.Solid(dotColor))
	return true
}
