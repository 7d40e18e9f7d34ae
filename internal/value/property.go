package value

import (
	"fmt"

	"github.com/freixas/gamma-sub005/internal/relativity"
)

// PropertyError reports access to an unknown property or a wrong-typed set.
type PropertyError struct {
	Tag  Tag
	Name string
	Msg  string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("%s on %s value: %s", e.Name, e.Tag, e.Msg)
}

func unknownProperty(tag Tag, name string) error {
	return &PropertyError{Tag: tag, Name: name, Msg: "unknown property"}
}

// GetProperty reads a named property from the tags that declare properties.
//
//	coordinate: x, t
//	interval:   min, max
//	line:       angle, point
//	path:       length
//	frame:      v, origin
//	observer:   origin, v, tau, d
func GetProperty(v Value, name string) (Value, error) {
	switch v.Tag {
	case TagCoord:
		c, _ := v.AsCoord()
		switch name {
		case "x":
			return Number(c.X), nil
		case "t":
			return Number(c.T), nil
		}
	case TagInterval:
		iv, _ := v.AsInterval()
		switch name {
		case "min":
			return Number(iv.Min), nil
		case "max":
			return Number(iv.Max), nil
		}
	case TagLine:
		l, _ := v.AsLine()
		switch name {
		case "angle":
			return Number(l.Angle), nil
		case "point":
			return CoordVal(l.Point), nil
		}
	case TagPath:
		p, _ := v.AsPath()
		if name == "length" {
			return Number(float64(len(p))), nil
		}
	case TagFrame:
		f, _ := v.AsFrame()
		switch name {
		case "v":
			return Number(f.V), nil
		case "origin":
			return CoordVal(f.Origin), nil
		}
	case TagObserver:
		o, _ := v.AsObserver()
		switch name {
		case "origin":
			return CoordVal(o.Origin), nil
		case "v":
			return Number(o.V0), nil
		case "tau":
			return Number(o.Tau0), nil
		case "d":
			return Number(o.D0), nil
		}
	default:
		return Null, &PropertyError{Tag: v.Tag, Name: name, Msg: "type has no properties"}
	}
	return Null, unknownProperty(v.Tag, name)
}

// SetProperty writes a named property, validating the new value's type.
// Observers rebuild their worldline from the changed starting conditions;
// everything else mutates the (copied) payload in place. Paths declare no
// settable properties.
func SetProperty(v *Value, name string, nv Value) error {
	wrongType := func(want Tag) error {
		return &PropertyError{Tag: v.Tag, Name: name, Msg: fmt.Sprintf("expected %s, got %s", want, nv.Tag)}
	}
	switch v.Tag {
	case TagCoord:
		c, _ := v.AsCoord()
		f, ok := nv.AsNumber()
		if !ok {
			return wrongType(TagNumber)
		}
		switch name {
		case "x":
			c.X = f
		case "t":
			c.T = f
		default:
			return unknownProperty(v.Tag, name)
		}
		v.Data = c
		return nil
	case TagInterval:
		iv, _ := v.AsInterval()
		f, ok := nv.AsNumber()
		if !ok {
			return wrongType(TagNumber)
		}
		switch name {
		case "min":
			iv.Min = f
		case "max":
			iv.Max = f
		default:
			return unknownProperty(v.Tag, name)
		}
		v.Data = iv
		return nil
	case TagLine:
		l, _ := v.AsLine()
		switch name {
		case "angle":
			f, ok := nv.AsNumber()
			if !ok {
				return wrongType(TagNumber)
			}
			l = relativity.NewLine(f, l.Point)
		case "point":
			c, ok := nv.AsCoord()
			if !ok {
				return wrongType(TagCoord)
			}
			l.Point = c
		default:
			return unknownProperty(v.Tag, name)
		}
		v.Data = l
		return nil
	case TagFrame:
		fr, _ := v.AsFrame()
		switch name {
		case "v":
			f, ok := nv.AsNumber()
			if !ok {
				return wrongType(TagNumber)
			}
			fr.V = f
		case "origin":
			c, ok := nv.AsCoord()
			if !ok {
				return wrongType(TagCoord)
			}
			fr.Origin = c
		default:
			return unknownProperty(v.Tag, name)
		}
		v.Data = fr
		return nil
	case TagObserver:
		o, _ := v.AsObserver()
		origin, tau0, d0, v0 := o.Origin, o.Tau0, o.D0, o.V0
		switch name {
		case "origin":
			c, ok := nv.AsCoord()
			if !ok {
				return wrongType(TagCoord)
			}
			origin = c
		case "v":
			f, ok := nv.AsNumber()
			if !ok {
				return wrongType(TagNumber)
			}
			v0 = f
		case "tau":
			f, ok := nv.AsNumber()
			if !ok {
				return wrongType(TagNumber)
			}
			tau0 = f
		case "d":
			f, ok := nv.AsNumber()
			if !ok {
				return wrongType(TagNumber)
			}
			d0 = f
		default:
			return unknownProperty(v.Tag, name)
		}
		v.Data = relativity.NewObserver(origin, tau0, d0, v0, o.Clauses(), o.FinalA())
		return nil
	default:
		return &PropertyError{Tag: v.Tag, Name: name, Msg: "type has no properties"}
	}
}
