package engine

import (
	"math"

	"github.com/freixas/gamma-sub005/internal/hcode"
	"github.com/freixas/gamma-sub005/internal/relativity"
	"github.com/freixas/gamma-sub005/internal/value"
)

// unary applies - or ! to the top of stack.
func (p *pass) unary(in hcode.Instr) error {
	v := p.pop()
	switch in.Name {
	case "-":
		switch v.Tag {
		case value.TagNumber:
			f, _ := v.AsNumber()
			p.push(value.Number(-f))
			return nil
		case value.TagCoord:
			c, _ := v.AsCoord()
			p.push(value.CoordVal(c.Scale(-1)))
			return nil
		}
		return p.fail(in, "cannot negate %s", v.Tag)
	case "!":
		b, ok := v.AsBool()
		if !ok {
			return p.fail(in, "cannot apply ! to %s", v.Tag)
		}
		p.push(value.Bool(!b))
		return nil
	}
	return p.fail(in, "unknown unary operator %q", in.Name)
}

// binary applies an infix operator to the top two stack values.
//
// Arithmetic works on numbers, with coordinate addition/subtraction and
// coordinate-by-number scaling as the only mixed forms. '+' concatenates
// when either side is a string. Ordering is numeric for numbers and lexical
// for strings; everything else is a type error.
func (p *pass) binary(in hcode.Instr) error {
	b := p.pop()
	a := p.pop()

	switch in.Name {
	case "+":
		if a.Tag == value.TagString || b.Tag == value.TagString {
			p.push(value.String(a.Format() + b.Format()))
			return nil
		}
		if fa, ok := a.AsNumber(); ok {
			if fb, ok := b.AsNumber(); ok {
				p.push(value.Number(fa + fb))
				return nil
			}
		}
		if ca, ok := a.AsCoord(); ok {
			if cb, ok := b.AsCoord(); ok {
				p.push(value.CoordVal(ca.Add(cb)))
				return nil
			}
		}
	case "-":
		if fa, ok := a.AsNumber(); ok {
			if fb, ok := b.AsNumber(); ok {
				p.push(value.Number(fa - fb))
				return nil
			}
		}
		if ca, ok := a.AsCoord(); ok {
			if cb, ok := b.AsCoord(); ok {
				p.push(value.CoordVal(ca.Sub(cb)))
				return nil
			}
		}
	case "*":
		if fa, ok := a.AsNumber(); ok {
			if fb, ok := b.AsNumber(); ok {
				p.push(value.Number(fa * fb))
				return nil
			}
			if cb, ok := b.AsCoord(); ok {
				p.push(value.CoordVal(cb.Scale(fa)))
				return nil
			}
		}
		if ca, ok := a.AsCoord(); ok {
			if fb, ok := b.AsNumber(); ok {
				p.push(value.CoordVal(ca.Scale(fb)))
				return nil
			}
		}
	case "/":
		if fa, ok := a.AsNumber(); ok {
			if fb, ok := b.AsNumber(); ok {
				p.push(value.Number(fa / fb))
				return nil
			}
		}
		if ca, ok := a.AsCoord(); ok {
			if fb, ok := b.AsNumber(); ok {
				p.push(value.CoordVal(ca.Scale(1 / fb)))
				return nil
			}
		}
	case "^":
		if fa, ok := a.AsNumber(); ok {
			if fb, ok := b.AsNumber(); ok {
				p.push(value.Number(math.Pow(fa, fb)))
				return nil
			}
		}
	case "<", "<=", ">", ">=":
		return p.compare(in, a, b)
	case "==", "!=":
		eq, err := value.Equal(a, b)
		if err != nil {
			return p.failErr(in, err)
		}
		if in.Name == "!=" {
			eq = !eq
		}
		p.push(value.Bool(eq))
		return nil
	case "&&", "||":
		ba, okA := a.AsBool()
		bb, okB := b.AsBool()
		if !okA || !okB {
			return p.fail(in, "%s requires booleans, got %s and %s", in.Name, a.Tag, b.Tag)
		}
		if in.Name == "&&" {
			p.push(value.Bool(ba && bb))
		} else {
			p.push(value.Bool(ba || bb))
		}
		return nil
	default:
		return p.fail(in, "unknown operator %q", in.Name)
	}
	return p.fail(in, "cannot apply %s to %s and %s", in.Name, a.Tag, b.Tag)
}

func (p *pass) compare(in hcode.Instr, a, b value.Value) error {
	var cmp int
	switch {
	case a.Tag == value.TagNumber && b.Tag == value.TagNumber:
		fa, _ := a.AsNumber()
		fb, _ := b.AsNumber()
		switch {
		case fa < fb:
			cmp = -1
		case fa > fb:
			cmp = 1
		}
	case a.Tag == value.TagString && b.Tag == value.TagString:
		sa, _ := a.AsString()
		sb, _ := b.AsString()
		switch {
		case sa < sb:
			cmp = -1
		case sa > sb:
			cmp = 1
		}
	default:
		return p.fail(in, "cannot order %s and %s", a.Tag, b.Tag)
	}

	var res bool
	switch in.Name {
	case "<":
		res = cmp < 0
	case "<=":
		res = cmp <= 0
	case ">":
		res = cmp > 0
	case ">=":
		res = cmp >= 0
	}
	p.push(value.Bool(res))
	return nil
}

// boost applies the Lorentz operators: coord -> frame transforms into the
// frame, coord <- frame transforms frame-local coordinates back out.
// Observers on the right coerce to their instantaneous frame at tau = 0.
func (p *pass) boost(in hcode.Instr) error {
	rhs := p.pop()
	lhs := p.pop()

	c, ok := lhs.AsCoord()
	if !ok {
		return p.fail(in, "boost requires a coordinate on the left, got %s", lhs.Tag)
	}
	f, err := value.FrameOf(rhs)
	if err != nil {
		return p.failErr(in, err)
	}

	if in.N == hcode.BoostInto {
		p.push(value.CoordVal(relativity.ToFrame(c, f)))
	} else {
		p.push(value.CoordVal(relativity.FromFrame(c, f)))
	}
	return nil
}
