package sphere

// Graticule spacing, in degrees.
const (
	ParallelStep   = 10
	ParallelMax    = 75
	MeridianStep   = 15
	GraticuleStep  = 2
	graticuleLines = (2*ParallelMax)/ParallelStep + 1 + 360/MeridianStep
)

// Graticule returns the reference grid as a list of polylines: parallels every
// 10° from -75° to 75° sampled every 2° of longitude, then meridians every 15°
// sampled every 2° of latitude from pole to pole.
func Graticule() [][]LatLng {
	lines := make([][]LatLng, 0, graticuleLines)
	for lat := -ParallelMax; lat <= ParallelMax; lat += ParallelStep {
		line := make([]LatLng, 0, 360/GraticuleStep+1)
		for lng := -180; lng <= 180; lng += GraticuleStep {
			line = append(line, LatLng{Lat: float64(lat), Lng: float64(lng)})
		}
		lines = append(lines, line)
	}
	for lng := -180; lng < 180; lng += MeridianStep {
		line := make([]LatLng, 0, 180/GraticuleStep+1)
		for lat := -90; lat <= 90; lat += GraticuleStep {
			line = append(line, LatLng{Lat: float64(lat), Lng: float64(lng)})
		}
		lines = append(lines, line)
	}
	return lines
}
