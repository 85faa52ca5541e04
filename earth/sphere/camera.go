package sphere

import "math"

// ArcHeight is how far the midpoint of a flight arc rises above the surface,
// as a fraction of the globe radius.
const ArcHeight = 0.15

// Camera bundles everything needed to take a geographic position to the screen
// for one frame.
type Camera struct {
	CX, CY   float64
	Radius   float64
	FOV      float64
	Rotation float64
	Tilt     float64
}

// Transform projects a position on the globe surface.
func (c Camera) Transform(ll LatLng) Projected {
	return c.TransformAt(ll, 1)
}

// TransformAt projects a position on a sphere whose radius is scaled by lift.
func (c Camera) TransformAt(ll LatLng, lift float64) Projected {
	p := ToCartesian(ll.Lat, ll.Lng, c.Radius*lift)
	return Project(Orient(p, c.Rotation, c.Tilt), c.CX, c.CY, c.FOV)
}

// Lerp interpolates latitude and longitude independently. It is not a great
// circle; the arc only needs to look like a flight path.
func Lerp(a, b LatLng, f float64) LatLng {
	return LatLng{
		Lat: a.Lat + (b.Lat-a.Lat)*f,
		Lng: a.Lng + (b.Lng-a.Lng)*f,
	}
}

// ArcLift returns the radius multiplier at fraction f along an arc: 1 at both
// ends, 1+ArcHeight at the midpoint.
func ArcLift(f float64) float64 {
	return 1 + math.Sin(f*math.Pi)*ArcHeight
}
