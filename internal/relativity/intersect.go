package relativity

import "math"

const intersectTol = 1e-9

// IntersectLines solves two linear constraints in closed form.
//
// Parallel non-identical lines have no intersection (ok == false). Identical
// lines are ambiguous; the first line's defining point is returned as the
// documented representative.
func IntersectLines(l1, l2 Line) (Coord, bool) {
	d1 := l1.Direction()
	d2 := l2.Direction()
	cross := d1.X*d2.T - d1.T*d2.X
	if math.Abs(cross) < intersectTol {
		if l1.Contains(l2.Point, intersectTol) {
			return l1.Point, true
		}
		return Coord{}, false
	}
	r := l2.Point.Sub(l1.Point)
	s := (r.X*d2.T - r.T*d2.X) / cross
	return l1.Point.Add(d1.Scale(s)), true
}

// ParallelLines reports whether two lines are parallel (including identical).
func ParallelLines(l1, l2 Line) bool {
	d1 := l1.Direction()
	d2 := l2.Direction()
	return math.Abs(d1.X*d2.T-d1.T*d2.X) < intersectTol
}

// IntersectLineObserver checks the line against each worldline segment in
// temporal order and returns the first segment's earliest intersection.
// ok == false when the line never crosses the worldline.
func IntersectLineObserver(l Line, o *Observer) (Coord, bool) {
	for _, s := range o.Segments() {
		if c, ok := intersectLineSegment(l, s); ok {
			return c, true
		}
	}
	return Coord{}, false
}

// IntersectObservers checks each segment of the first worldline, in order,
// against each segment of the second, and returns the first intersection
// found under that traversal order. For simple worldlines this coincides
// with the chronologically earliest intersection.
func IntersectObservers(o1, o2 *Observer) (Coord, bool) {
	for _, s1 := range o1.Segments() {
		for _, s2 := range o2.Segments() {
			if c, ok := intersectSegments(s1, s2); ok {
				return c, true
			}
		}
	}
	return Coord{}, false
}

// segmentLine is the straight line carrying a uniform segment's trajectory.
func segmentLine(s WorldlineSegment) Line {
	return NewLine(VToTAngle(s.Min.V), s.Min.Coord())
}

// intersectLineSegment intersects a line with one worldline segment and
// returns the earliest covered solution.
func intersectLineSegment(l Line, s WorldlineSegment) (Coord, bool) {
	if s.A == 0 {
		p, ok := IntersectLines(l, segmentLine(s))
		if !ok || !s.covers(p.T, s.Min.T, s.Max.T) {
			return Coord{}, false
		}
		return p, true
	}
	return intersectLineHyperbola(l, s)
}

// intersectLineHyperbola solves the line against the segment's hyperbola
// branch: (x-cx)^2 - (t-ct)^2 = 1/A^2 with sign(x-cx) == sign(A).
// Parameterizing the line as p + s*dir gives a quadratic in s.
func intersectLineHyperbola(l Line, seg WorldlineSegment) (Coord, bool) {
	c := seg.HyperbolaCenter()
	dir := l.Direction()
	rx := l.Point.X - c.X
	rt := l.Point.T - c.T
	k := 1 / (seg.A * seg.A)

	qa := dir.X*dir.X - dir.T*dir.T
	qb := 2 * (rx*dir.X - rt*dir.T)
	qc := rx*rx - rt*rt - k

	var roots []float64
	if math.Abs(qa) < intersectTol {
		// Light-like line: the quadratic degenerates to a linear equation.
		if math.Abs(qb) < intersectTol {
			return Coord{}, false
		}
		roots = []float64{-qc / qb}
	} else {
		disc := qb*qb - 4*qa*qc
		if disc < 0 {
			return Coord{}, false
		}
		sq := math.Sqrt(disc)
		roots = []float64{(-qb - sq) / (2 * qa), (-qb + sq) / (2 * qa)}
	}

	best := Coord{}
	found := false
	for _, r := range roots {
		p := l.Point.Add(dir.Scale(r))
		// The motion occupies only one branch of the hyperbola.
		if math.Signbit(p.X-c.X) != math.Signbit(seg.A) {
			continue
		}
		if !seg.covers(p.T, seg.Min.T, seg.Max.T) {
			continue
		}
		if !found || p.T < best.T {
			best = p
			found = true
		}
	}
	return best, found
}

// intersectSegments intersects two worldline segments.
func intersectSegments(s1, s2 WorldlineSegment) (Coord, bool) {
	switch {
	case s1.A == 0 && s2.A == 0:
		return intersectUniformUniform(s1, s2)
	case s1.A == 0:
		p, ok := intersectLineHyperbola(segmentLine(s1), s2)
		if !ok || !s1.covers(p.T, s1.Min.T, s1.Max.T) {
			return Coord{}, false
		}
		return p, true
	case s2.A == 0:
		p, ok := intersectLineHyperbola(segmentLine(s2), s1)
		if !ok || !s2.covers(p.T, s2.Min.T, s2.Max.T) {
			return Coord{}, false
		}
		return p, true
	default:
		return intersectHyperbolaHyperbola(s1, s2)
	}
}

func intersectUniformUniform(s1, s2 WorldlineSegment) (Coord, bool) {
	l1 := segmentLine(s1)
	l2 := segmentLine(s2)
	if ParallelLines(l1, l2) {
		if !l1.Contains(l2.Point, intersectTol) {
			return Coord{}, false
		}
		// Coincident trajectories: the first shared covered event, when one
		// exists, is where the later segment begins.
		return coincidentStart(s1, s2)
	}
	p, ok := IntersectLines(l1, l2)
	if !ok {
		return Coord{}, false
	}
	if !s1.covers(p.T, s1.Min.T, s1.Max.T) || !s2.covers(p.T, s2.Min.T, s2.Max.T) {
		return Coord{}, false
	}
	return p, true
}

// coincidentStart resolves overlapping identical trajectories: the overlap
// begins at the later of the two segment starts. Two infinite-past segments
// have no first shared event.
func coincidentStart(s1, s2 WorldlineSegment) (Coord, bool) {
	switch {
	case s1.InfinitePast && s2.InfinitePast:
		return Coord{}, false
	case s1.InfinitePast:
		if s1.covers(s2.Min.T, s1.Min.T, s1.Max.T) {
			return s2.Min.Coord(), true
		}
	case s2.InfinitePast:
		if s2.covers(s1.Min.T, s2.Min.T, s2.Max.T) {
			return s1.Min.Coord(), true
		}
	default:
		start := s1.Min
		if s2.Min.T > start.T {
			start = s2.Min
		}
		if s1.covers(start.T, s1.Min.T, s1.Max.T) && s2.covers(start.T, s2.Min.T, s2.Max.T) {
			return start.Coord(), true
		}
	}
	return Coord{}, false
}

// intersectHyperbolaHyperbola subtracts the two hyperbola equations, which
// eliminates the quadratic terms and leaves the radical line; the problem
// then reduces to a line-hyperbola solve verified against both segments.
func intersectHyperbolaHyperbola(s1, s2 WorldlineSegment) (Coord, bool) {
	c1 := s1.HyperbolaCenter()
	c2 := s2.HyperbolaCenter()
	k1 := 1 / (s1.A * s1.A)
	k2 := 1 / (s2.A * s2.A)

	la := 2 * (c2.X - c1.X)
	lb := -2 * (c2.T - c1.T)
	lc := k1 - k2 - (c1.X*c1.X - c2.X*c2.X) + (c1.T*c1.T - c2.T*c2.T)

	if math.Abs(la) < intersectTol && math.Abs(lb) < intersectTol {
		// Concentric congruent hyperbolas: same worldline curve when the
		// branches match; the first shared event is the later start.
		if math.Abs(k1-k2) > intersectTol || math.Signbit(s1.A) != math.Signbit(s2.A) {
			return Coord{}, false
		}
		return coincidentStart(s1, s2)
	}

	radical := lineFromEquation(la, lb, lc)
	p, ok := intersectLineHyperbola(radical, s2)
	if !ok {
		return Coord{}, false
	}
	// Verify the solution lies on segment 1 as well.
	m1, err := oneSegmentStateAtT(s1, p.T)
	if err != nil || math.Abs(m1.X-p.X) > 1e-6 {
		return Coord{}, false
	}
	return p, true
}

// lineFromEquation converts a*x + b*t = c into angle/point form.
func lineFromEquation(a, b, c float64) Line {
	angle := math.Atan2(-a, b) * 180 / math.Pi
	var point Coord
	if math.Abs(b) >= math.Abs(a) {
		point = Coord{X: 0, T: c / b}
	} else {
		point = Coord{X: c / a, T: 0}
	}
	return NewLine(angle, point)
}

func oneSegmentStateAtT(s WorldlineSegment, t float64) (Moment, error) {
	if m, ok := s.StateAtT(t); ok {
		return m, nil
	}
	return Moment{}, &NoSolutionError{Query: "t", Value: t}
}
