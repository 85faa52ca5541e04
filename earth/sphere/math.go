package sphere

import "math"

// Vec3 is a point in model space. +Y is up and the viewer looks along +Z.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func Len(v Vec3) float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat, Lng float64
}

func Rad(deg float64) float64 { return deg * math.Pi / 180 }

// ToCartesian places a geographic position on a sphere of the given radius.
//
// Longitude is mapped through theta = -lng + 180 so that a zero rotation shows
// the globe facing the usual map direction.
func ToCartesian(lat, lng, radius float64) Vec3 {
	phi := Rad(90 - lat)
	theta := Rad(-lng + 180)
	sp, cp := math.Sincos(phi)
	st, ct := math.Sincos(theta)
	return Vec3{
		X: -(radius * sp * ct),
		Y: radius * cp,
		Z: radius * sp * st,
	}
}

// RotateY rotates p about the vertical axis.
func RotateY(p Vec3, angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: p.X*c + p.Z*s,
		Y: p.Y,
		Z: -p.X*s + p.Z*c,
	}
}

// RotateX rotates p about the horizontal axis.
func RotateX(p Vec3, angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: p.X,
		Y: p.Y*c - p.Z*s,
		Z: p.Y*s + p.Z*c,
	}
}

// Orient applies the view orientation: rotation (yaw) first, tilt (pitch)
// second. The order matters and must not be swapped.
func Orient(p Vec3, rotation, tilt float64) Vec3 {
	return RotateX(RotateY(p, rotation), tilt)
}

// Projected is a screen position plus the depth it was projected from.
type Projected struct {
	X, Y  float64
	Scale float64
	Z     float64
}

// Front reports whether the point faces the viewer.
func (p Projected) Front() bool { return p.Z < 0 }

// Project maps an oriented point to screen space around (cx, cy).
func Project(p Vec3, cx, cy, fov float64) Projected {
	scale := fov / (fov + p.Z)
	return Projected{
		X:     cx + p.X*scale,
		Y:     cy - p.Y*scale,
		Scale: scale,
		Z:     p.Z,
	}
}
