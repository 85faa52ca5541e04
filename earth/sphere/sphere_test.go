package sphere

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearVec(a, b Vec3) bool { return Len(a.Sub(b)) < eps }

func TestToCartesianAxes(t *testing.T) {
	cases := []struct {
		name string
		lat  float64
		lng  float64
		want Vec3
	}{
		{"null island", 0, 0, V3(1, 0, 0)},
		{"north pole", 90, 0, V3(0, 1, 0)},
		{"south pole", -90, 0, V3(0, -1, 0)},
		{"east 90", 0, 90, V3(0, 0, 1)},
		{"west 90", 0, -90, V3(0, 0, -1)},
		{"antimeridian", 0, 180, V3(-1, 0, 0)},
	}
	for _, tc := range cases {
		got := ToCartesian(tc.lat, tc.lng, 1)
		if !nearVec(got, tc.want) {
			t.Fatalf("%s: ToCartesian(%v, %v) = %+v, want %+v", tc.name, tc.lat, tc.lng, got, tc.want)
		}
	}
}

func TestToCartesianRadius(t *testing.T) {
	for _, r := range []float64{1, 120.5, 600} {
		p := ToCartesian(41.2995, 69.2401, r)
		if got := Len(p); math.Abs(got-r) > 1e-9*r {
			t.Fatalf("|p| = %v, want %v", got, r)
		}
	}
}

func TestRotationsPreserveLength(t *testing.T) {
	p := ToCartesian(37.5665, 126.978, 200)
	for _, a := range []float64{-3, -0.5, 0.1, 1, 7.5} {
		if got := Len(RotateY(p, a)); math.Abs(got-200) > 1e-9 {
			t.Fatalf("RotateY length = %v", got)
		}
		if got := Len(RotateX(p, a)); math.Abs(got-200) > 1e-9 {
			t.Fatalf("RotateX length = %v", got)
		}
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	got := RotateY(V3(1, 0, 0), math.Pi/2)
	if !nearVec(got, V3(0, 0, -1)) {
		t.Fatalf("RotateY(+X, 90°) = %+v", got)
	}
}

func TestRotateXQuarterTurn(t *testing.T) {
	got := RotateX(V3(0, 1, 0), math.Pi/2)
	if !nearVec(got, V3(0, 0, 1)) {
		t.Fatalf("RotateX(+Y, 90°) = %+v", got)
	}
}

func TestOrientOrderMatters(t *testing.T) {
	points := []Vec3{
		ToCartesian(41.2995, 69.2401, 1),
		ToCartesian(37.5665, 126.978, 1),
		V3(0.3, 0.4, 0.866),
	}
	rotation, tilt := 0.8, -0.3
	for _, p := range points {
		yawFirst := Orient(p, rotation, tilt)
		pitchFirst := RotateY(RotateX(p, tilt), rotation)
		if nearVec(yawFirst, pitchFirst) {
			t.Fatalf("rotation order made no difference for %+v", p)
		}
		if !nearVec(yawFirst, RotateX(RotateY(p, rotation), tilt)) {
			t.Fatalf("Orient is not RotateX(RotateY(p))")
		}
	}
}

func TestOrientZeroTiltIsYawOnly(t *testing.T) {
	p := ToCartesian(10, 20, 1)
	if !nearVec(Orient(p, 1.2, 0), RotateY(p, 1.2)) {
		t.Fatalf("tilt 0 should leave yaw result unchanged")
	}
}

func TestProject(t *testing.T) {
	got := Project(V3(10, 20, -100), 200, 150, 600)
	scale := 600.0 / 500.0
	if !near(got.Scale, scale) || !near(got.X, 200+10*scale) || !near(got.Y, 150-20*scale) {
		t.Fatalf("Project = %+v", got)
	}
	if !got.Front() {
		t.Fatalf("z<0 should be front facing")
	}
}

func TestProjectFrontBack(t *testing.T) {
	front := Project(V3(5, 5, -1e-6), 0, 0, 600)
	if !front.Front() {
		t.Fatalf("z<0 classified back facing")
	}
	if math.IsInf(front.X, 0) || math.IsNaN(front.X) || math.IsInf(front.Y, 0) || math.IsNaN(front.Y) {
		t.Fatalf("front point projected to non-finite %+v", front)
	}
	for _, z := range []float64{0, 1e-9, 50} {
		if Project(V3(5, 5, z), 0, 0, 600).Front() {
			t.Fatalf("z=%v classified front facing", z)
		}
	}
}

func TestCameraTransformAtLift(t *testing.T) {
	cam := Camera{CX: 100, CY: 100, Radius: 50, FOV: 600}
	ll := LatLng{Lat: 0, Lng: -90}
	base := cam.Transform(ll)
	lifted := cam.TransformAt(ll, 1.15)
	if !base.Front() || !lifted.Front() {
		t.Fatalf("expected lng -90 to face the viewer at rotation 0")
	}
	if !(lifted.Z < base.Z) {
		t.Fatalf("lifted point should be closer to the viewer: %v vs %v", lifted.Z, base.Z)
	}
}

func TestArcLift(t *testing.T) {
	if !near(ArcLift(0), 1) || !near(ArcLift(1), 1) {
		t.Fatalf("arc ends should sit on the surface")
	}
	if !near(ArcLift(0.5), 1+ArcHeight) {
		t.Fatalf("ArcLift(0.5) = %v", ArcLift(0.5))
	}
}

func TestLerp(t *testing.T) {
	a := LatLng{Lat: 41.2995, Lng: 69.2401}
	b := LatLng{Lat: 37.5665, Lng: 126.978}
	if got := Lerp(a, b, 0); got != a {
		t.Fatalf("Lerp(0) = %+v", got)
	}
	mid := Lerp(a, b, 0.5)
	if !near(mid.Lat, (a.Lat+b.Lat)/2) || !near(mid.Lng, (a.Lng+b.Lng)/2) {
		t.Fatalf("Lerp(0.5) = %+v", mid)
	}
}

func TestGraticuleShape(t *testing.T) {
	lines := Graticule()
	parallels := (2*ParallelMax)/ParallelStep + 1
	meridians := 360 / MeridianStep
	if len(lines) != parallels+meridians {
		t.Fatalf("got %d lines, want %d", len(lines), parallels+meridians)
	}
	first := lines[0]
	if first[0] != (LatLng{Lat: -75, Lng: -180}) || first[len(first)-1] != (LatLng{Lat: -75, Lng: 180}) {
		t.Fatalf("first parallel spans %+v..%+v", first[0], first[len(first)-1])
	}
	if len(first) != 181 {
		t.Fatalf("parallel has %d samples, want 181", len(first))
	}
	lastParallel := lines[parallels-1]
	if lastParallel[0].Lat != 75 {
		t.Fatalf("last parallel at %v", lastParallel[0].Lat)
	}
	m := lines[parallels]
	if len(m) != 91 || m[0] != (LatLng{Lat: -90, Lng: -180}) || m[len(m)-1].Lat != 90 {
		t.Fatalf("first meridian malformed: %d samples", len(m))
	}
	if lines[len(lines)-1][0].Lng != 165 {
		t.Fatalf("last meridian at %v, want 165", lines[len(lines)-1][0].Lng)
	}
}
