package builtins

import (
	"math"

	"github.com/freixas/gamma-sub005/internal/value"
)

// registerMath wires the numeric functions. All trigonometry is in radians;
// IEEE semantics apply throughout (NaN propagates, it is never clamped).
func registerMath(r *Registry) {
	num := []value.Tag{value.TagNumber}
	num2 := []value.Tag{value.TagNumber, value.TagNumber}

	unary := func(name string, fn func(float64) float64) {
		r.add(name, num, func(args []value.Value) (value.Value, error) {
			f, _ := args[0].AsNumber()
			return value.Number(fn(f)), nil
		})
	}
	binary := func(name string, fn func(float64, float64) float64) {
		r.add(name, num2, func(args []value.Value) (value.Value, error) {
			a, _ := args[0].AsNumber()
			b, _ := args[1].AsNumber()
			return value.Number(fn(a, b)), nil
		})
	}

	unary("abs", math.Abs)
	unary("acos", math.Acos)
	unary("asin", math.Asin)
	unary("atan", math.Atan)
	unary("ceil", math.Ceil)
	unary("cos", math.Cos)
	unary("cosh", math.Cosh)
	unary("exp", math.Exp)
	unary("floor", math.Floor)
	unary("log", math.Log)
	unary("round", math.Round)
	unary("sin", math.Sin)
	unary("sinh", math.Sinh)
	unary("sqrt", math.Sqrt)
	unary("tan", math.Tan)
	unary("tanh", math.Tanh)
	unary("sign", func(f float64) float64 {
		switch {
		case f > 0:
			return 1
		case f < 0:
			return -1
		default:
			return f
		}
	})

	binary("atan2", math.Atan2)
	binary("max", math.Max)
	binary("min", math.Min)
	binary("pow", math.Pow)
}
