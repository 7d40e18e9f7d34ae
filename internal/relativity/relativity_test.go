package relativity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamma(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{name: "at rest", v: 0, want: 1},
		{name: "half light speed", v: 0.5, want: 1 / math.Sqrt(0.75)},
		{name: "negative velocity", v: -0.8, want: 1 / math.Sqrt(1-0.64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Gamma(tt.v), 1e-12)
		})
	}
}

func TestVPrime(t *testing.T) {
	tests := []struct {
		name   string
		v1, v2 float64
		want   float64
	}{
		{name: "compose with rest", v1: 0.5, v2: 0, want: 0.5},
		{name: "symmetric composition", v1: 0.5, v2: 0.5, want: 0.8},
		{name: "opposing velocities cancel", v1: 0.5, v2: -0.5, want: 0},
		{name: "light speed is invariant", v1: 1, v2: 0.3, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, VPrime(tt.v1, tt.v2), 1e-12)
		})
	}

	t.Run("never exceeds light speed", func(t *testing.T) {
		assert.Less(t, VPrime(0.9, 0.9), 1.0)
	})
}

func TestVelocityAngles(t *testing.T) {
	assert.InDelta(t, 0.0, VToXAngle(0), 1e-12)
	assert.InDelta(t, 90.0, VToTAngle(0), 1e-12)
	assert.InDelta(t, 45.0, VToXAngle(1), 1e-12)
	assert.InDelta(t, 45.0, VToTAngle(1), 1e-12)

	// The two axes close symmetrically onto the light cone.
	v := 0.6
	assert.InDelta(t, VToXAngle(v), 90-VToTAngle(v), 1e-12)
}

func TestLorentzRoundTrip(t *testing.T) {
	f := Frame{Origin: Coord{X: 2, T: -1}, V: 0.6}
	events := []Coord{{0, 0}, {2, -1}, {-3.5, 7}, {1e3, -1e3}}

	for _, e := range events {
		back := FromFrame(ToFrame(e, f), f)
		assert.InDelta(t, e.X, back.X, 1e-9)
		assert.InDelta(t, e.T, back.T, 1e-9)
	}
}

func TestToFrameOriginMapsToZero(t *testing.T) {
	f := Frame{Origin: Coord{X: 4, T: 3}, V: -0.25}
	got := ToFrame(f.Origin, f)
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 0, got.T, 1e-12)
}

func TestToFrameIntervalInvariant(t *testing.T) {
	// The spacetime interval between two events is frame independent.
	a := Coord{X: 1, T: 2}
	b := Coord{X: -3, T: 5}
	f := Frame{Origin: Coord{X: 0.5, T: -2}, V: 0.72}

	interval := func(p, q Coord) float64 {
		dx := p.X - q.X
		dt := p.T - q.T
		return dt*dt - dx*dx
	}

	require.InDelta(t, interval(a, b), interval(ToFrame(a, f), ToFrame(b, f)), 1e-9)
}
