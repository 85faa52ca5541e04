package raster

import "math"

// StrokeStyle describes how Stroke draws the current path. Width, Dash and
// DashOffset are in logical units. A nil or all-zero Dash draws solid lines;
// an odd-length Dash is repeated to make it even.
type StrokeStyle struct {
	Paint      Paint
	Width      float64
	Dash       []float64
	DashOffset float64
}

// Stroke draws every subpath of the current path with st. The path is kept.
// Lines have butt caps, so single-point subpaths draw nothing.
func (s *Surface) Stroke(st StrokeStyle) {
	if s.dc == nil || st.Paint == nil || st.Width <= 0 {
		return
	}
	s.dc.SetStrokeStyle(st.Paint.pattern(s.scale))
	s.dc.SetLineWidth(st.Width * s.scale)
	s.dc.SetDash(s.dashPattern(st.Dash)...)
	s.dc.SetDashOffset(st.DashOffset * s.scale)
	s.dc.StrokePreserve()
}

// dashPattern returns dash in device pixels, or nil for a solid line. gg
// never advances through a pattern with no length, so such patterns are
// dropped here.
func (s *Surface) dashPattern(dash []float64) []float64 {
	sum := 0.0
	for _, v := range dash {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		sum += v
	}
	if sum == 0 {
		return nil
	}
	out := make([]float64, 0, 2*len(dash))
	for _, v := range dash {
		out = append(out, v*s.scale)
	}
	if len(dash)%2 == 1 {
		out = append(out, out...)
	}
	return out
}
