package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freixas/gamma-sub005/internal/relativity"
)

func sampleDiagram() *Diagram {
	return &Diagram{
		Commands: []Command{
			{Kind: "axes", Args: []Arg{{Key: "frame", Val: FrameArgOf(relativity.Frame{V: 0.5})}}},
			{Kind: "event", Style: "flash", Args: []Arg{
				{Key: "coord", Val: CoordArg(relativity.Coord{X: 1, T: 2})},
				{Key: "text", Val: StringArg("bang")},
			}},
		},
		Prints:   []string{"hello"},
		Controls: []Control{{Name: "v", Kind: "range", Min: 0, Max: 0.9, Number: 0.5}},
	}
}

func TestMarshalCanonicalDeterministic(t *testing.T) {
	d := sampleDiagram()

	first, err := d.MarshalCanonical()
	require.NoError(t, err)
	second, err := sampleDiagram().MarshalCanonical()
	require.NoError(t, err)
	assert.Equal(t, first, second, "equal diagrams encode identically")
}

func TestHashDetectsChanges(t *testing.T) {
	d := sampleDiagram()
	h1, err := d.Hash()
	require.NoError(t, err)

	same, err := sampleDiagram().Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, same)

	changed := sampleDiagram()
	changed.Commands[0].Args[0].Val.Frame.V = 0.6
	h2, err := changed.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	// Prints participate in the hash too: a changed print is a redraw.
	reprinted := sampleDiagram()
	reprinted.Prints = []string{"goodbye"}
	h3, err := reprinted.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestArgConstructors(t *testing.T) {
	assert.Equal(t, KindNumber, NumberArg(3).Kind)
	assert.Equal(t, 3.0, *NumberArg(3).Number)
	assert.Equal(t, "x", *StringArg("x").String)
	assert.True(t, *BoolArg(true).Bool)

	iv := IntervalArgOf(1, 2)
	assert.Equal(t, KindInterval, iv.Kind)
	assert.Equal(t, 1.0, iv.Interval.Min)

	path := PathArg(relativity.Path{{X: 1}})
	require.Len(t, path.Path, 1)

	obs := ObserverArgOf(relativity.NewObserver(relativity.Coord{}, 0, 0, 0.5, nil, 0))
	require.Len(t, obs.Observer.Segments, 1)
	assert.True(t, obs.Observer.Segments[0].InfinitePast)
	assert.True(t, obs.Observer.Segments[0].InfiniteFuture)
	assert.Equal(t, 0.5, obs.Observer.Segments[0].Min.V)
}
