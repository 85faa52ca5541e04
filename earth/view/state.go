package view

import "math"

// Orientation limits and rates.
const (
	RotationSensitivity = 0.004 // radians per pixel of horizontal drag
	TiltSensitivity     = 0.003 // radians per pixel of vertical drag
	TiltMin             = -0.5
	TiltMax             = 0.3
	AutoRotateStep      = 0.001 // radians per tick while idle

	InitialRotation = math.Pi - 0.6
	InitialTilt     = -0.15
)

// State is the globe's view state, owned by the loop and passed by pointer to
// the input controller and the renderer.
//
// Rotation is never normalized. Tilt always stays within [TiltMin, TiltMax].
type State struct {
	Rotation float64
	Tilt     float64

	Dragging     bool
	LastX, LastY float64

	Hovering       bool
	HoverX, HoverY float64
}

// NewState returns the state a freshly mounted globe starts with.
func NewState() *State {
	return &State{
		Rotation: InitialRotation,
		Tilt:     InitialTilt,
	}
}

// Advance applies one tick of ambient rotation. It does nothing while a drag
// is in progress and reports whether the rotation changed.
func (s *State) Advance() bool {
	if s.Dragging {
		return false
	}
	s.Rotation += AutoRotateStep
	return true
}

// ClampTilt limits t to [TiltMin, TiltMax].
func ClampTilt(t float64) float64 {
	return math.Max(TiltMin, math.Min(TiltMax, t))
}
