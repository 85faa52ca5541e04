// Package sphere holds the projection math for the globe view.
//
// Positions on the globe are given as latitude/longitude in degrees. They are
// placed on a sphere centered at the origin, oriented by the current view
// (yaw first, then pitch) and projected onto the screen with a simple
// perspective divide:
//
//	LatLng → ToCartesian → RotateY(rotation) → RotateX(tilt) → Project.
//
// The depth coordinate of an oriented point decides visibility everywhere in
// the renderer: Z < 0 faces the viewer, Z >= 0 is hidden behind the sphere.
//
// All functions are pure and allocation free.
package sphere
