package relativity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserverSingleSegment(t *testing.T) {
	// No bounded clauses: one uniform segment covering all of time.
	o := NewObserver(Coord{X: 1, T: 0}, 0, 0, 0.5, nil, 0)

	require.Len(t, o.Segments(), 1)
	assert.True(t, o.Segments()[0].InfinitePast)
	assert.True(t, o.Segments()[0].InfiniteFuture)

	m, err := o.StateAtT(-4)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, m.X, 1e-12)
	assert.InDelta(t, -4/Gamma(0.5), m.Tau, 1e-12)
}

func TestObserverSegmentContinuity(t *testing.T) {
	clauses := []AccelClause{
		{A: 1, Limit: LimitTau, Delta: 1},
		{A: -1, Limit: LimitT, Delta: 2},
		{A: 0, Limit: LimitD, Delta: 0.5},
	}
	o := NewObserver(Coord{}, 0, 0, 0, clauses, 0.25)

	segs := o.Segments()
	require.Len(t, segs, 4)
	for i := 1; i < len(segs); i++ {
		assert.Equal(t, segs[i-1].Max, segs[i].Min, "segment %d boundary", i)
	}
	assert.True(t, segs[0].InfinitePast)
	assert.True(t, segs[3].InfiniteFuture)
	for i := 1; i < 3; i++ {
		assert.False(t, segs[i].InfinitePast)
		assert.False(t, segs[i].InfiniteFuture)
	}
}

func TestObserverDispatchFirstHit(t *testing.T) {
	// Accelerate right, then coast. A time that both the extended first
	// segment and the coast could answer must come from the earlier segment.
	clauses := []AccelClause{{A: 1, Limit: LimitTau, Delta: 1}}
	o := NewObserver(Coord{}, 0, 0, 0, clauses, 0)

	boundary := o.Segments()[0].Max
	m, err := o.StateAtT(boundary.T / 2)
	require.NoError(t, err)
	assert.Less(t, m.Tau, boundary.Tau)
	assert.Greater(t, m.V, 0.0)
}

func TestObserverStateQueriesAgree(t *testing.T) {
	clauses := []AccelClause{
		{A: 0.5, Limit: LimitTau, Delta: 2},
		{A: -0.5, Limit: LimitTau, Delta: 1},
	}
	o := NewObserver(Coord{X: -1, T: 1}, 0.25, 0, 0.1, clauses, 0)

	ref, err := o.StateAtTau(1.5)
	require.NoError(t, err)

	byT, err := o.StateAtT(ref.T)
	require.NoError(t, err)
	byD, err := o.StateAtD(ref.D)
	require.NoError(t, err)

	assert.InDelta(t, ref.X, byT.X, 1e-9)
	assert.InDelta(t, ref.Tau, byT.Tau, 1e-9)
	assert.InDelta(t, ref.T, byD.T, 1e-9)
}

func TestObserverNoSolution(t *testing.T) {
	// A forever-resting observer never reaches v = 0.5 or d = 1.
	o := NewObserver(Coord{}, 0, 0, 0, nil, 0)

	_, err := o.StateAtV(0.5)
	var nse *NoSolutionError
	require.ErrorAs(t, err, &nse)
	assert.Equal(t, "v", nse.Query)
	assert.Equal(t, 0.5, nse.Value)

	_, err = o.StateAtD(1)
	require.ErrorAs(t, err, &nse)
	assert.Equal(t, "d", nse.Query)
}

func TestObserverInFrameOwnRestFrame(t *testing.T) {
	// Re-expressing a uniform observer in its own instantaneous frame leaves
	// it at rest at the frame origin.
	o := NewObserver(Coord{X: 2, T: 1}, 0, 0, 0.6, nil, 0)
	f, err := FrameOfObserver(o, AtTau, 0)
	require.NoError(t, err)

	rel := o.InFrame(f)
	assert.InDelta(t, 0.0, rel.V0, 1e-12)

	m, err := rel.StateAtTau(0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, m.X, 1e-9)
	assert.InDelta(t, 0.0, m.T, 1e-9)
}

func TestObserverInFramePreservesProperTime(t *testing.T) {
	clauses := []AccelClause{{A: 1, Limit: LimitT, Delta: 2}}
	o := NewObserver(Coord{}, 0, 0, 0, clauses, 0)
	f := Frame{Origin: Coord{X: 1, T: -1}, V: 0.3}

	rel := o.InFrame(f)
	require.Len(t, rel.Segments(), len(o.Segments()))
	for i, s := range o.Segments() {
		// Proper acceleration and proper-time extent are invariants.
		assert.InDelta(t, s.A, rel.Segments()[i].A, 1e-12)
		assert.InDelta(t, s.Max.Tau-s.Min.Tau, rel.Segments()[i].Max.Tau-rel.Segments()[i].Min.Tau, 1e-9)
	}
}

func TestTangentLineAt(t *testing.T) {
	l := TangentLineAt(Moment{V: 0, X: 3, T: 2})
	assert.InDelta(t, 90.0, l.Angle, 1e-12)
	assert.Equal(t, Coord{X: 3, T: 2}, l.Point)

	l = TangentLineAt(Moment{V: 1, X: 0, T: 0})
	assert.InDelta(t, 45.0, l.Angle, 1e-12)
}

func TestFrameOfObserverRestIdentity(t *testing.T) {
	o := NewObserver(Coord{}, 0, 0, 0, nil, 0)
	f, err := FrameOfObserver(o, AtTau, 0)
	require.NoError(t, err)
	assert.Equal(t, Coord{}, f.Origin)
	assert.Equal(t, 0.0, f.V)
}

func TestFrameOfObserverTauZeroAtEvent(t *testing.T) {
	// Anchoring at tau = 0 puts the frame origin exactly at the event.
	o := NewObserver(Coord{X: 5, T: -2}, 0, 0, 0.7, nil, 0)
	f, err := FrameOfObserver(o, AtTau, 0)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, f.Origin.X, 1e-12)
	assert.InDelta(t, -2.0, f.Origin.T, 1e-12)
	assert.InDelta(t, 0.7, f.V, 1e-12)
}

func TestFrameOfObserverPropagatesNoSolution(t *testing.T) {
	o := NewObserver(Coord{}, 0, 0, 0, nil, 0)
	_, err := FrameOfObserver(o, AtV, 0.9)
	var nse *NoSolutionError
	assert.ErrorAs(t, err, &nse)
}

func TestAxisLine(t *testing.T) {
	f := Frame{Origin: Coord{X: 1, T: 1}, V: 0}

	x := AxisLine(AxisX, f, 2)
	assert.InDelta(t, 0.0, x.Angle, 1e-12)
	assert.InDelta(t, 3.0, x.Point.T, 1e-12)

	tt := AxisLine(AxisT, f, -1)
	assert.InDelta(t, 90.0, tt.Angle, 1e-12)
	assert.InDelta(t, 0.0, tt.Point.X, 1e-12)

	// For a moving frame the axes tilt toward the light cone.
	moving := Frame{V: 0.5}
	assert.InDelta(t, VToXAngle(0.5), AxisLine(AxisX, moving, 0).Angle, 1e-12)
	assert.InDelta(t, VToTAngle(0.5), AxisLine(AxisT, moving, 0).Angle, 1e-12)
	assert.True(t, math.Abs(AxisLine(AxisX, moving, 0).Angle) < 45)
}
