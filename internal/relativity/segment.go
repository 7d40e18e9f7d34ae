package relativity

import "math"

// LimitType selects which quantity bounds a worldline segment's extent.
type LimitType int

const (
	LimitT   LimitType = iota // bounded by elapsed rest-frame time
	LimitTau                  // bounded by elapsed proper time
	LimitD                    // bounded by distance traveled
)

func (l LimitType) String() string {
	switch l {
	case LimitT:
		return "t"
	case LimitTau:
		return "tau"
	case LimitD:
		return "d"
	default:
		return "unknown"
	}
}

// Moment is the full kinematic state at one event on a worldline.
type Moment struct {
	V   float64 // velocity
	X   float64 // rest-frame position
	T   float64 // rest-frame time
	Tau float64 // proper time
	D   float64 // cumulative distance traveled
}

// Coord returns the event coordinate of the moment.
func (m Moment) Coord() Coord { return Coord{m.X, m.T} }

// WorldlineSegment is motion over one contiguous interval with a single
// constant proper acceleration A (uniform velocity when A == 0).
//
// Min is the segment's starting state, Max the analytically derived end
// state; Min.T <= Max.T always. InfinitePast/InfiniteFuture extend the
// motion law beyond Min/Max on the first/last segment of a worldline.
//
// For A != 0 the motion is hyperbolic and is parameterized internally by
// rapidity phi = atanh(v): with the anchor state at phi0,
//
//	t(phi)   = t0 + (sinh phi - sinh phi0)/a
//	x(phi)   = x0 + (cosh phi - cosh phi0)/a
//	tau(phi) = tau0 + (phi - phi0)/a
//	d(phi)   = d0 + (C(phi) - C(phi0))/a,  C(u) = sign(u)*(cosh u - 1)
//	v(phi)   = tanh phi
//
// t, tau and d are each strictly monotonic in time, so the inverse queries
// below are well-defined wherever the segment covers the requested value.
type WorldlineSegment struct {
	A     float64
	Limit LimitType
	Delta float64

	Min Moment
	Max Moment

	InfinitePast   bool
	InfiniteFuture bool
}

// distC is the antiderivative of |sinh|, used for the distance law.
func distC(phi float64) float64 {
	if phi < 0 {
		return -(math.Cosh(phi) - 1)
	}
	return math.Cosh(phi) - 1
}

// invDistC inverts distC; distC is an odd increasing bijection on the reals.
func invDistC(y float64) float64 {
	if y < 0 {
		return -math.Acosh(-y + 1)
	}
	return math.Acosh(y + 1)
}

// NewSegment builds a segment from its starting state, acceleration, and
// extent. The Max endpoint is derived from the closed-form motion laws.
// delta must be non-negative; callers constructing from user input validate
// before reaching here. A zero-velocity, zero-acceleration segment limited
// by distance never advances; its extent is infinite in rest time.
func NewSegment(a float64, limit LimitType, delta float64, min Moment) WorldlineSegment {
	seg := WorldlineSegment{A: a, Limit: limit, Delta: delta, Min: min}
	seg.Max = seg.advance(delta)
	return seg
}

// advance returns the state delta units past Min, measured by the segment's
// limit type.
func (s WorldlineSegment) advance(delta float64) Moment {
	if s.A == 0 {
		return s.advanceUniform(delta)
	}
	phi0 := math.Atanh(s.Min.V)
	var phi1 float64
	switch s.Limit {
	case LimitTau:
		phi1 = phi0 + s.A*delta
	case LimitT:
		phi1 = math.Asinh(math.Sinh(phi0) + s.A*delta)
	case LimitD:
		phi1 = invDistC(distC(phi0) + s.A*delta)
	}
	return s.stateAtPhi(phi1)
}

func (s WorldlineSegment) advanceUniform(delta float64) Moment {
	v := s.Min.V
	g := Gamma(v)
	var dt float64
	switch s.Limit {
	case LimitT:
		dt = delta
	case LimitTau:
		dt = g * delta
	case LimitD:
		if v == 0 {
			if delta == 0 {
				dt = 0
			} else {
				dt = math.Inf(1)
			}
		} else {
			dt = delta / math.Abs(v)
		}
	}
	return Moment{
		V:   v,
		X:   s.Min.X + v*dt,
		T:   s.Min.T + dt,
		Tau: s.Min.Tau + dt/g,
		D:   s.Min.D + math.Abs(v)*dt,
	}
}

// stateAtPhi evaluates the hyperbolic motion laws at rapidity phi.
// Only valid for A != 0.
func (s WorldlineSegment) stateAtPhi(phi float64) Moment {
	phi0 := math.Atanh(s.Min.V)
	return Moment{
		V:   math.Tanh(phi),
		X:   s.Min.X + (math.Cosh(phi)-math.Cosh(phi0))/s.A,
		T:   s.Min.T + (math.Sinh(phi)-math.Sinh(phi0))/s.A,
		Tau: s.Min.Tau + (phi-phi0)/s.A,
		D:   s.Min.D + (distC(phi)-distC(phi0))/s.A,
	}
}

// covers reports whether a temporally monotonic quantity q with segment
// bounds [lo, hi] is answered by this segment.
func (s WorldlineSegment) covers(q, lo, hi float64) bool {
	if q < lo && !s.InfinitePast {
		return false
	}
	if q > hi && !s.InfiniteFuture {
		return false
	}
	return true
}

// phiAtT, phiAtTau, phiAtD invert the motion laws. Only valid for A != 0.

func (s WorldlineSegment) phiAtT(t float64) float64 {
	phi0 := math.Atanh(s.Min.V)
	return math.Asinh(math.Sinh(phi0) + s.A*(t-s.Min.T))
}

func (s WorldlineSegment) phiAtTau(tau float64) float64 {
	phi0 := math.Atanh(s.Min.V)
	return phi0 + s.A*(tau-s.Min.Tau)
}

func (s WorldlineSegment) phiAtD(d float64) float64 {
	phi0 := math.Atanh(s.Min.V)
	return invDistC(distC(phi0) + s.A*(d-s.Min.D))
}

// StateAtT returns the full state at rest time t, or ok == false when the
// segment does not cover t.
func (s WorldlineSegment) StateAtT(t float64) (Moment, bool) {
	if !s.covers(t, s.Min.T, s.Max.T) {
		return Moment{}, false
	}
	if s.A == 0 {
		v := s.Min.V
		dt := t - s.Min.T
		return Moment{
			V:   v,
			X:   s.Min.X + v*dt,
			T:   t,
			Tau: s.Min.Tau + dt/Gamma(v),
			D:   s.Min.D + math.Abs(v)*dt,
		}, true
	}
	return s.stateAtPhi(s.phiAtT(t)), true
}

// StateAtTau returns the full state at proper time tau, or ok == false when
// the segment does not cover tau.
func (s WorldlineSegment) StateAtTau(tau float64) (Moment, bool) {
	if !s.covers(tau, s.Min.Tau, s.Max.Tau) {
		return Moment{}, false
	}
	if s.A == 0 {
		v := s.Min.V
		dt := Gamma(v) * (tau - s.Min.Tau)
		return Moment{
			V:   v,
			X:   s.Min.X + v*dt,
			T:   s.Min.T + dt,
			Tau: tau,
			D:   s.Min.D + math.Abs(v)*dt,
		}, true
	}
	return s.stateAtPhi(s.phiAtTau(tau)), true
}

// StateAtD returns the full state at cumulative distance d, or ok == false
// when the segment does not cover d. An at-rest uniform segment only answers
// for its own D.
func (s WorldlineSegment) StateAtD(d float64) (Moment, bool) {
	if !s.covers(d, s.Min.D, s.Max.D) {
		return Moment{}, false
	}
	if s.A == 0 {
		v := s.Min.V
		if v == 0 {
			if d != s.Min.D {
				return Moment{}, false
			}
			return s.Min, true
		}
		dt := (d - s.Min.D) / math.Abs(v)
		return Moment{
			V:   v,
			X:   s.Min.X + v*dt,
			T:   s.Min.T + dt,
			Tau: s.Min.Tau + dt/Gamma(v),
			D:   d,
		}, true
	}
	return s.stateAtPhi(s.phiAtD(d)), true
}

// StateAtV returns the state where the segment's velocity equals v, or
// ok == false. A uniform segment answers with its starting state only when
// v matches exactly.
func (s WorldlineSegment) StateAtV(v float64) (Moment, bool) {
	if s.A == 0 {
		if v != s.Min.V {
			return Moment{}, false
		}
		return s.Min, true
	}
	phi := math.Atanh(v)
	// Velocity is monotonic in proper time when accelerating; reuse the tau
	// coverage check.
	tau := s.Min.Tau + (phi-math.Atanh(s.Min.V))/s.A
	if !s.covers(tau, s.Min.Tau, s.Max.Tau) {
		return Moment{}, false
	}
	return s.stateAtPhi(phi), true
}

// HyperbolaCenter returns the center of the segment's hyperbola in the rest
// frame. Only meaningful for A != 0; the segment's events satisfy
// (x-cx)^2 - (t-ct)^2 = 1/A^2 with sign(x-cx) == sign(A).
func (s WorldlineSegment) HyperbolaCenter() Coord {
	phi0 := math.Atanh(s.Min.V)
	return Coord{
		X: s.Min.X - math.Cosh(phi0)/s.A,
		T: s.Min.T - math.Sinh(phi0)/s.A,
	}
}
