package builtins

import (
	"fmt"
	"math"
	"strconv"

	"github.com/freixas/gamma-sub005/internal/value"
)

// registerMisc wires formatting helpers and the style color constructor.
func registerMisc(r *Registry) {
	r.add("toString", []value.Tag{value.TagAny}, func(args []value.Value) (value.Value, error) {
		return value.String(args[0].Format()), nil
	})

	r.add("format", []value.Tag{value.TagNumber, value.TagNumber}, func(args []value.Value) (value.Value, error) {
		f, _ := args[0].AsNumber()
		dec, _ := args[1].AsNumber()
		if dec < 0 || dec != math.Trunc(dec) {
			return value.Null, &ArgError{Fn: "format", Msg: "decimal count must be a non-negative integer"}
		}
		return value.String(strconv.FormatFloat(f, 'f', int(dec), 64)), nil
	})

	// rgb returns a style color tag; components are 0-255 and are clamped.
	r.add("rgb", []value.Tag{value.TagNumber, value.TagNumber, value.TagNumber}, func(args []value.Value) (value.Value, error) {
		comp := func(v value.Value) int {
			f, _ := v.AsNumber()
			n := int(math.Round(f))
			if n < 0 {
				n = 0
			}
			if n > 255 {
				n = 255
			}
			return n
		}
		return value.String(fmt.Sprintf("#%02x%02x%02x", comp(args[0]), comp(args[1]), comp(args[2]))), nil
	})

	r.add("point", []value.Tag{value.TagPath, value.TagNumber}, func(args []value.Value) (value.Value, error) {
		p, _ := args[0].AsPath()
		idx, _ := args[1].AsNumber()
		i := int(idx)
		if idx != math.Trunc(idx) || i < 0 || i >= len(p) {
			return value.Null, &ArgError{
				Fn:  "point",
				Msg: fmt.Sprintf("index %g out of range for path of %d points", idx, len(p)),
			}
		}
		return value.CoordVal(p[i]), nil
	})
}
