package relativity

import (
	"fmt"
	"math"
)

// NoSolutionError reports a worldline query no segment can answer: the
// observer never reaches the requested t, tau, d, or v.
type NoSolutionError struct {
	Query string
	Value float64
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("no matching value: observer never reaches %s = %g", e.Query, e.Value)
}

// AccelClause is one "acceleration a for <limit> <delta>" step of an
// observer declaration.
type AccelClause struct {
	A     float64
	Limit LimitType
	Delta float64
}

// Observer is a worldline with its declared starting conditions attached.
// Observers are immutable once built; InFrame produces a new Observer.
type Observer struct {
	Origin Coord
	Tau0   float64
	D0     float64
	V0     float64

	clauses  []AccelClause
	finalA   float64
	segments []WorldlineSegment
}

// NewObserver builds an observer from its origin event, initial proper time,
// initial distance, initial velocity, a sequence of bounded acceleration
// clauses, and the acceleration that continues into the infinite future.
//
// The first segment is extended into the infinite past, the last into the
// infinite future; consecutive segments share their boundary state.
func NewObserver(origin Coord, tau0, d0, v0 float64, clauses []AccelClause, finalA float64) *Observer {
	obs := &Observer{
		Origin:  origin,
		Tau0:    tau0,
		D0:      d0,
		V0:      v0,
		clauses: append([]AccelClause(nil), clauses...),
		finalA:  finalA,
	}

	state := Moment{V: v0, X: origin.X, T: origin.T, Tau: tau0, D: d0}
	for _, c := range clauses {
		seg := NewSegment(c.A, c.Limit, c.Delta, state)
		obs.segments = append(obs.segments, seg)
		state = seg.Max
	}
	// Closing segment: carries the final acceleration forever.
	obs.segments = append(obs.segments, NewSegment(finalA, LimitTau, 0, state))

	obs.segments[0].InfinitePast = true
	obs.segments[len(obs.segments)-1].InfiniteFuture = true
	return obs
}

// Segments returns the observer's worldline segments in temporal order.
func (o *Observer) Segments() []WorldlineSegment {
	return o.segments
}

// Clauses returns the declared bounded acceleration clauses.
func (o *Observer) Clauses() []AccelClause {
	return append([]AccelClause(nil), o.clauses...)
}

// FinalA returns the acceleration carried into the infinite future.
func (o *Observer) FinalA() float64 {
	return o.finalA
}

// Dispatch: scan segments in temporal order and return the first answer.
// Segment counts are small and monotonicity across segments makes the first
// hit correct, so a linear scan keeps the boundary handling auditable.

// StateAtT resolves the observer's full state at rest time t.
func (o *Observer) StateAtT(t float64) (Moment, error) {
	for _, s := range o.segments {
		if m, ok := s.StateAtT(t); ok {
			return m, nil
		}
	}
	return Moment{}, &NoSolutionError{Query: "t", Value: t}
}

// StateAtTau resolves the observer's full state at proper time tau.
func (o *Observer) StateAtTau(tau float64) (Moment, error) {
	for _, s := range o.segments {
		if m, ok := s.StateAtTau(tau); ok {
			return m, nil
		}
	}
	return Moment{}, &NoSolutionError{Query: "tau", Value: tau}
}

// StateAtD resolves the observer's full state at cumulative distance d.
func (o *Observer) StateAtD(d float64) (Moment, error) {
	for _, s := range o.segments {
		if m, ok := s.StateAtD(d); ok {
			return m, nil
		}
	}
	return Moment{}, &NoSolutionError{Query: "d", Value: d}
}

// StateAtV resolves the observer's state at the first event where its
// velocity equals v.
func (o *Observer) StateAtV(v float64) (Moment, error) {
	for _, s := range o.segments {
		if m, ok := s.StateAtV(v); ok {
			return m, nil
		}
	}
	return Moment{}, &NoSolutionError{Query: "v", Value: v}
}

// InFrame returns a new observer describing the same worldline relative to
// frame f. Proper accelerations and proper-time extents are invariant, so
// every bounded clause is re-expressed as a proper-time clause before the
// worldline is rebuilt from the transformed starting conditions.
func (o *Observer) InFrame(f Frame) *Observer {
	clauses := make([]AccelClause, 0, len(o.clauses))
	for i, c := range o.clauses {
		seg := o.segments[i]
		clauses = append(clauses, AccelClause{
			A:     c.A,
			Limit: LimitTau,
			Delta: seg.Max.Tau - seg.Min.Tau,
		})
	}
	return NewObserver(
		ToFrame(o.Origin, f),
		o.Tau0,
		o.D0,
		VPrime(o.V0, -f.V),
		clauses,
		o.finalA,
	)
}

// TangentLineAt returns the line tangent to the worldline at the given state.
func TangentLineAt(m Moment) Line {
	return Line{Angle: VToTAngle(m.V), Point: m.Coord()}
}

// uniformDirection is the diagram-space direction of a uniform segment.
func uniformDirection(v float64) Coord {
	n := math.Hypot(v, 1)
	return Coord{X: v / n, T: 1 / n}
}
