package relativity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restStart() Moment {
	return Moment{V: 0, X: 0, T: 0, Tau: 0, D: 0}
}

func TestUniformSegmentStateAtT(t *testing.T) {
	v := 0.6
	seg := NewSegment(0, LimitT, 10, Moment{V: v})

	m, ok := seg.StateAtT(5)
	require.True(t, ok)
	assert.InDelta(t, 3.0, m.X, 1e-12)
	assert.InDelta(t, 5.0, m.T, 1e-12)
	assert.InDelta(t, 5.0/Gamma(v), m.Tau, 1e-12)
	assert.InDelta(t, 3.0, m.D, 1e-12)
	assert.InDelta(t, v, m.V, 1e-12)
}

func TestUniformSegmentLimits(t *testing.T) {
	tests := []struct {
		name  string
		limit LimitType
		delta float64
		v     float64
		wantT float64
	}{
		{name: "time limit", limit: LimitT, delta: 4, v: 0.5, wantT: 4},
		{name: "proper time limit", limit: LimitTau, delta: 4, v: 0.6, wantT: 4 * Gamma(0.6)},
		{name: "distance limit", limit: LimitD, delta: 3, v: 0.5, wantT: 6},
		{name: "distance limit negative velocity", limit: LimitD, delta: 3, v: -0.5, wantT: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := NewSegment(0, tt.limit, tt.delta, Moment{V: tt.v})
			assert.InDelta(t, tt.wantT, seg.Max.T, 1e-12)
		})
	}
}

func TestRestSegmentDistanceLimitNeverAdvances(t *testing.T) {
	seg := NewSegment(0, LimitD, 5, restStart())
	assert.True(t, math.IsInf(seg.Max.T, 1))

	_, ok := seg.StateAtD(2)
	assert.False(t, ok, "a resting observer never covers any distance")
}

func TestAcceleratedSegmentClosedForms(t *testing.T) {
	a := 1.0
	seg := NewSegment(a, LimitTau, 2, restStart())

	// From rest, rapidity equals a*tau.
	phi := 2.0
	assert.InDelta(t, math.Tanh(phi), seg.Max.V, 1e-12)
	assert.InDelta(t, math.Sinh(phi), seg.Max.T, 1e-12)
	assert.InDelta(t, math.Cosh(phi)-1, seg.Max.X, 1e-12)
	assert.InDelta(t, 2.0, seg.Max.Tau, 1e-12)
	assert.InDelta(t, math.Cosh(phi)-1, seg.Max.D, 1e-12)
}

func TestAcceleratedSegmentQueryConsistency(t *testing.T) {
	seg := NewSegment(0.5, LimitTau, 3, Moment{V: 0.2, X: 1, T: 2, Tau: 0.5, D: 4})

	ref, ok := seg.StateAtTau(2)
	require.True(t, ok)

	byT, ok := seg.StateAtT(ref.T)
	require.True(t, ok)
	byD, ok := seg.StateAtD(ref.D)
	require.True(t, ok)
	byV, ok := seg.StateAtV(ref.V)
	require.True(t, ok)

	for _, m := range []Moment{byT, byD, byV} {
		assert.InDelta(t, ref.V, m.V, 1e-9)
		assert.InDelta(t, ref.X, m.X, 1e-9)
		assert.InDelta(t, ref.T, m.T, 1e-9)
		assert.InDelta(t, ref.Tau, m.Tau, 1e-9)
		assert.InDelta(t, ref.D, m.D, 1e-9)
	}
}

func TestDecelerationAccumulatesDistance(t *testing.T) {
	// Start moving right, accelerate left through the turnaround: distance
	// keeps growing while position comes back.
	seg := NewSegment(-1, LimitTau, 2, Moment{V: 0.6})

	turn, ok := seg.StateAtV(0)
	require.True(t, ok)

	after, ok := seg.StateAtTau(turn.Tau + 0.5)
	require.True(t, ok)
	assert.Less(t, after.X, turn.X, "position retreats after turnaround")
	assert.Greater(t, after.D, turn.D, "distance keeps accumulating")
}

func TestSegmentCoverage(t *testing.T) {
	seg := NewSegment(1, LimitTau, 1, restStart())

	_, ok := seg.StateAtT(-0.1)
	assert.False(t, ok)
	_, ok = seg.StateAtT(seg.Max.T + 0.1)
	assert.False(t, ok)

	seg.InfinitePast = true
	m, ok := seg.StateAtT(-5)
	require.True(t, ok)
	assert.Less(t, m.Tau, 0.0)

	seg.InfiniteFuture = true
	_, ok = seg.StateAtT(100)
	assert.True(t, ok)
}

func TestUniformStateAtVRequiresExactMatch(t *testing.T) {
	seg := NewSegment(0, LimitT, 10, Moment{V: 0.5})

	_, ok := seg.StateAtV(0.4)
	assert.False(t, ok)

	m, ok := seg.StateAtV(0.5)
	require.True(t, ok)
	assert.Equal(t, seg.Min, m)
}

func TestHyperbolaCenter(t *testing.T) {
	a := 2.0
	seg := NewSegment(a, LimitTau, 1.5, restStart())
	c := seg.HyperbolaCenter()
	assert.InDelta(t, -0.5, c.X, 1e-12)
	assert.InDelta(t, 0.0, c.T, 1e-12)

	// Every covered state satisfies the hyperbola equation.
	for _, tau := range []float64{0, 0.5, 1, 1.5} {
		m, ok := seg.StateAtTau(tau)
		require.True(t, ok)
		lhs := (m.X-c.X)*(m.X-c.X) - (m.T-c.T)*(m.T-c.T)
		assert.InDelta(t, 1/(a*a), lhs, 1e-9)
	}
}
