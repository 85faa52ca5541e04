package render

import (
	"math"
	"time"
)

// Animation periods in seconds.
const (
	DashPeriod      = 1.2
	HighlightPeriod = 4.0
)

func seconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}

func mod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// DashOffset is the arc's dash offset at time sec, in [0, dashLength). The
// pattern shifts by one full length every DashPeriod.
func DashOffset(sec float64) float64 {
	o := mod(-mod(sec, DashPeriod)/DashPeriod*dashLength, dashLength)
	if o == 0 || o >= dashLength {
		return 0
	}
	return o
}

// HighlightFraction is where the traveling highlight sits along the arc at
// time sec, in [0, 1).
func HighlightFraction(sec float64) float64 {
	return mod(sec, HighlightPeriod) / HighlightPeriod
}

// PulseRadius is the radius of a marker's pulse ring at time sec.
func PulseRadius(sec float64) float64 {
	return 2 * (6 + 3*math.Sin(3*sec))
}
