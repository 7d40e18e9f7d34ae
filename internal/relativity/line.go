package relativity

import "math"

// Line is an infinite straight line on the diagram, defined by the angle in
// degrees it makes with the rest x axis and one point it passes through.
// Angles are normalized into (-90, 90].
type Line struct {
	Angle float64
	Point Coord
}

// NewLine builds a line from an angle in degrees and a point, normalizing
// the angle into (-90, 90].
func NewLine(angle float64, point Coord) Line {
	angle = math.Mod(angle, 180)
	if angle <= -90 {
		angle += 180
	} else if angle > 90 {
		angle -= 180
	}
	return Line{Angle: angle, Point: point}
}

// Direction returns the line's unit direction vector.
func (l Line) Direction() Coord {
	rad := l.Angle * math.Pi / 180
	return Coord{X: math.Cos(rad), T: math.Sin(rad)}
}

// Contains reports whether the event lies on the line, within tolerance.
func (l Line) Contains(c Coord, tol float64) bool {
	d := l.Direction()
	r := c.Sub(l.Point)
	// Cross product of direction and offset is zero on the line.
	return math.Abs(d.X*r.T-d.T*r.X) <= tol
}

// Path is an ordered list of events, drawn as a connected polyline.
type Path []Coord
