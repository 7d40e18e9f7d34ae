package engine

import (
	"github.com/freixas/gamma-sub005/internal/hcode"
	"github.com/freixas/gamma-sub005/internal/relativity"
	"github.com/freixas/gamma-sub005/internal/value"
)

// Builders for the physics value literals. Operands were compiled in
// declaration order, so they pop in reverse.

func (p *pass) popNumber(in hcode.Instr, what string) (float64, error) {
	v := p.pop()
	f, ok := v.AsNumber()
	if !ok {
		return 0, p.fail(in, "%s must be a number, got %s", what, v.Tag)
	}
	return f, nil
}

func (p *pass) popCoord(in hcode.Instr, what string) (relativity.Coord, error) {
	v := p.pop()
	c, ok := v.AsCoord()
	if !ok {
		return relativity.Coord{}, p.fail(in, "%s must be a coordinate, got %s", what, v.Tag)
	}
	return c, nil
}

func (p *pass) buildCoord(in hcode.Instr) error {
	t, err := p.popNumber(in, "coordinate t")
	if err != nil {
		return err
	}
	x, err := p.popNumber(in, "coordinate x")
	if err != nil {
		return err
	}
	p.push(value.CoordVal(relativity.Coord{X: x, T: t}))
	return nil
}

func (p *pass) buildInterval(in hcode.Instr) error {
	max, err := p.popNumber(in, "interval max")
	if err != nil {
		return err
	}
	min, err := p.popNumber(in, "interval min")
	if err != nil {
		return err
	}
	if min > max {
		return p.fail(in, "interval min %g exceeds max %g", min, max)
	}
	p.push(value.IntervalVal(value.Interval{Min: min, Max: max}))
	return nil
}

func (p *pass) buildPath(in hcode.Instr) error {
	pts := make(relativity.Path, in.N)
	for i := in.N - 1; i >= 0; i-- {
		c, err := p.popCoord(in, "path point")
		if err != nil {
			return err
		}
		pts[i] = c
	}
	p.push(value.PathVal(pts))
	return nil
}

func (p *pass) buildLine(in hcode.Instr) error {
	spec := in.LineSpec
	switch spec.Kind {
	case hcode.LineAngle:
		point, err := p.popCoord(in, "line point")
		if err != nil {
			return err
		}
		angle, err := p.popNumber(in, "line angle")
		if err != nil {
			return err
		}
		p.push(value.LineVal(relativity.NewLine(angle, point)))
		return nil

	case hcode.LineAxis:
		offset, err := p.popNumber(in, "axis offset")
		if err != nil {
			return err
		}
		f, err := value.FrameOf(p.pop())
		if err != nil {
			return p.failErr(in, err)
		}
		p.push(value.LineVal(relativity.AxisLine(spec.Axis, f, offset)))
		return nil

	default: // hcode.LineObserver
		sel, err := p.popNumber(in, "selector value")
		if err != nil {
			return err
		}
		obs, ok := p.pop().AsObserver()
		if !ok {
			return p.fail(in, "line observer form requires an observer")
		}
		m, err := observerStateAt(obs, spec.At, sel)
		if err != nil {
			return p.failErr(in, err)
		}
		p.push(value.LineVal(relativity.TangentLineAt(m)))
		return nil
	}
}

func (p *pass) buildFrame(in hcode.Instr) error {
	spec := in.Frame
	if spec.Kind == hcode.FrameObserver {
		sel, err := p.popNumber(in, "selector value")
		if err != nil {
			return err
		}
		obs, ok := p.pop().AsObserver()
		if !ok {
			return p.fail(in, "frame observer form requires an observer")
		}
		f, err := relativity.FrameOfObserver(obs, spec.At, sel)
		if err != nil {
			return p.failErr(in, err)
		}
		p.push(value.FrameVal(f))
		return nil
	}

	f := relativity.Frame{}
	if spec.HasVelocity {
		v, err := p.popNumber(in, "frame velocity")
		if err != nil {
			return err
		}
		f.V = v
	}
	if spec.HasOrigin {
		c, err := p.popCoord(in, "frame origin")
		if err != nil {
			return err
		}
		f.Origin = c
	}
	p.push(value.FrameVal(f))
	return nil
}

func (p *pass) buildObserver(in hcode.Instr) error {
	spec := in.Observer

	finalA := 0.0
	if spec.HasFinalA {
		a, err := p.popNumber(in, "final acceleration")
		if err != nil {
			return err
		}
		finalA = a
	}

	clauses := make([]relativity.AccelClause, len(spec.Clauses))
	for i := len(spec.Clauses) - 1; i >= 0; i-- {
		delta, err := p.popNumber(in, "acceleration extent")
		if err != nil {
			return err
		}
		if delta < 0 {
			return p.fail(in, "acceleration clause extent must be non-negative, got %g", delta)
		}
		a, err := p.popNumber(in, "acceleration")
		if err != nil {
			return err
		}
		clauses[i] = relativity.AccelClause{A: a, Limit: spec.Clauses[i].Limit, Delta: delta}
	}

	d0 := 0.0
	if spec.HasDistance {
		d, err := p.popNumber(in, "observer distance")
		if err != nil {
			return err
		}
		d0 = d
	}
	tau0 := 0.0
	if spec.HasTau {
		t, err := p.popNumber(in, "observer tau")
		if err != nil {
			return err
		}
		tau0 = t
	}
	v0 := 0.0
	if spec.HasVelocity {
		v, err := p.popNumber(in, "observer velocity")
		if err != nil {
			return err
		}
		v0 = v
	}
	origin := relativity.Coord{}
	if spec.HasOrigin {
		c, err := p.popCoord(in, "observer origin")
		if err != nil {
			return err
		}
		origin = c
	}

	p.push(value.ObserverVal(relativity.NewObserver(origin, tau0, d0, v0, clauses, finalA)))
	return nil
}

func observerStateAt(o *relativity.Observer, at relativity.AtType, val float64) (relativity.Moment, error) {
	switch at {
	case relativity.AtT:
		return o.StateAtT(val)
	case relativity.AtTau:
		return o.StateAtTau(val)
	case relativity.AtD:
		return o.StateAtD(val)
	default:
		return o.StateAtV(val)
	}
}
