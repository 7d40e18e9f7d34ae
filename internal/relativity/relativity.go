// Package relativity implements the kinematics for 2D spacetime diagrams:
// Lorentz transforms, constant-proper-acceleration worldline segments,
// piecewise worldlines, inertial frames, and intersection solving.
//
// Units follow the usual diagram convention: c = 1, so velocities satisfy
// |v| < 1 and light rays run at 45 degrees.
package relativity

import "math"

// Coord is an event in the rest frame: position X, time T.
type Coord struct {
	X float64
	T float64
}

// Add returns c shifted by d.
func (c Coord) Add(d Coord) Coord { return Coord{c.X + d.X, c.T + d.T} }

// Sub returns c shifted by -d.
func (c Coord) Sub(d Coord) Coord { return Coord{c.X - d.X, c.T - d.T} }

// Scale returns c scaled by k.
func (c Coord) Scale(k float64) Coord { return Coord{c.X * k, c.T * k} }

// Gamma returns the Lorentz factor 1/sqrt(1-v^2).
// NaN and |v| >= 1 propagate as NaN/Inf per IEEE semantics.
func Gamma(v float64) float64 {
	return 1 / math.Sqrt(1-v*v)
}

// VPrime is relativistic velocity composition: the velocity of an object
// moving at v2 within a frame itself moving at v1.
func VPrime(v1, v2 float64) float64 {
	return (v1 + v2) / (1 + v1*v2)
}

// VToXAngle returns the angle in degrees that the x axis of a frame moving
// at v makes with the rest x axis. At v = 1 the angle is 45.
func VToXAngle(v float64) float64 {
	return math.Atan(v) * 180 / math.Pi
}

// VToTAngle returns the angle in degrees that the t axis (equivalently, the
// worldline) of a frame moving at v makes with the rest x axis. At v = 0 the
// t axis is vertical (90); as v approaches 1 it closes on 45.
func VToTAngle(v float64) float64 {
	return 90 - math.Atan(v)*180/math.Pi
}

// ToFrame transforms a rest-frame event into the coordinates of frame f.
func ToFrame(c Coord, f Frame) Coord {
	dx := c.X - f.Origin.X
	dt := c.T - f.Origin.T
	g := Gamma(f.V)
	return Coord{
		X: g * (dx - f.V*dt),
		T: g * (dt - f.V*dx),
	}
}

// FromFrame transforms an event given in the coordinates of frame f back
// into the rest frame.
func FromFrame(c Coord, f Frame) Coord {
	g := Gamma(f.V)
	return Coord{
		X: f.Origin.X + g*(c.X+f.V*c.T),
		T: f.Origin.T + g*(c.T+f.V*c.X),
	}
}
