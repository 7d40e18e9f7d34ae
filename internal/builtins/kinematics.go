package builtins

import (
	"github.com/freixas/gamma-sub005/internal/relativity"
	"github.com/freixas/gamma-sub005/internal/value"
)

// registerKinematics wires the relativity converters, the worldline inverse
// queries, and intersect.
func registerKinematics(r *Registry) {
	num := []value.Tag{value.TagNumber}
	num2 := []value.Tag{value.TagNumber, value.TagNumber}
	obsNum := []value.Tag{value.TagObserver, value.TagNumber}

	r.add("gamma", num, func(args []value.Value) (value.Value, error) {
		v, _ := args[0].AsNumber()
		return value.Number(relativity.Gamma(v)), nil
	})
	r.add("vPrime", num2, func(args []value.Value) (value.Value, error) {
		v1, _ := args[0].AsNumber()
		v2, _ := args[1].AsNumber()
		return value.Number(relativity.VPrime(v1, v2)), nil
	})
	r.add("vToXAngle", num, func(args []value.Value) (value.Value, error) {
		v, _ := args[0].AsNumber()
		return value.Number(relativity.VToXAngle(v)), nil
	})
	r.add("vToTAngle", num, func(args []value.Value) (value.Value, error) {
		v, _ := args[0].AsNumber()
		return value.Number(relativity.VToTAngle(v)), nil
	})

	// Worldline inverse queries: (observer, value) -> number. A query the
	// worldline never answers surfaces as the kinematics no-solution error.
	type selector func(*relativity.Observer, float64) (relativity.Moment, error)
	byD := (*relativity.Observer).StateAtD
	byT := (*relativity.Observer).StateAtT
	byTau := (*relativity.Observer).StateAtTau

	query := func(name string, sel selector, pick func(relativity.Moment) float64) {
		r.add(name, obsNum, func(args []value.Value) (value.Value, error) {
			obs, _ := args[0].AsObserver()
			in, _ := args[1].AsNumber()
			m, err := sel(obs, in)
			if err != nil {
				return value.Null, err
			}
			return value.Number(pick(m)), nil
		})
	}

	v := func(m relativity.Moment) float64 { return m.V }
	x := func(m relativity.Moment) float64 { return m.X }
	t := func(m relativity.Moment) float64 { return m.T }
	tau := func(m relativity.Moment) float64 { return m.Tau }
	d := func(m relativity.Moment) float64 { return m.D }

	query("dToV", byD, v)
	query("dToX", byD, x)
	query("dToT", byD, t)
	query("dToTau", byD, tau)
	query("tToV", byT, v)
	query("tToX", byT, x)
	query("tToTau", byT, tau)
	query("tToD", byT, d)
	query("tauToV", byTau, v)
	query("tauToX", byTau, x)
	query("tauToT", byTau, t)
	query("tauToD", byTau, d)

	r.add("intersect", []value.Tag{value.TagAny, value.TagAny}, intersect)
}

// intersect resolves the intersection of two lines, a line and a worldline,
// or two worldlines.
//
// Parallel non-identical lines are a degenerate arithmetic failure; a
// worldline that never meets the other operand yields null.
func intersect(args []value.Value) (value.Value, error) {
	a, b := args[0], args[1]
	switch {
	case a.Tag == value.TagLine && b.Tag == value.TagLine:
		l1, _ := a.AsLine()
		l2, _ := b.AsLine()
		p, ok := relativity.IntersectLines(l1, l2)
		if !ok {
			return value.Null, &ArithmeticError{Msg: "intersect: lines are parallel"}
		}
		return value.CoordVal(p), nil
	case a.Tag == value.TagLine && b.Tag == value.TagObserver:
		l, _ := a.AsLine()
		o, _ := b.AsObserver()
		if p, ok := relativity.IntersectLineObserver(l, o); ok {
			return value.CoordVal(p), nil
		}
		return value.Null, nil
	case a.Tag == value.TagObserver && b.Tag == value.TagLine:
		o, _ := a.AsObserver()
		l, _ := b.AsLine()
		if p, ok := relativity.IntersectLineObserver(l, o); ok {
			return value.CoordVal(p), nil
		}
		return value.Null, nil
	case a.Tag == value.TagObserver && b.Tag == value.TagObserver:
		o1, _ := a.AsObserver()
		o2, _ := b.AsObserver()
		if p, ok := relativity.IntersectObservers(o1, o2); ok {
			return value.CoordVal(p), nil
		}
		return value.Null, nil
	default:
		return value.Null, &ArgError{
			Fn:  "intersect",
			Msg: "arguments must be lines or observers, got " + a.Tag.String() + " and " + b.Tag.String(),
		}
	}
}
