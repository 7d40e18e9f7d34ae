// Package engine executes compiled HCode against a variable environment and
// produces the resolved drawing-command list.
//
// One Execute call is one synchronous pass: a fresh environment, a single
// walk over the instruction sequence, and either a complete diagram or a
// single terminal error. Statics are the only state that survives between
// passes, and they live on the Engine instance, never in package globals.
package engine

import (
	"fmt"

	"github.com/freixas/gamma-sub005/internal/builtins"
	"github.com/freixas/gamma-sub005/internal/diagram"
	"github.com/freixas/gamma-sub005/internal/hcode"
	"github.com/freixas/gamma-sub005/internal/relativity"
	"github.com/freixas/gamma-sub005/internal/value"
)

// DefaultBudget caps instructions per pass, guarding unbounded loops.
const DefaultBudget = 1_000_000

// Bindings carries the host's current control values: bool for toggle,
// float64 for range/animate, int for choice.
type Bindings map[string]any

// Option configures an Engine.
type Option func(*Engine)

// WithBudget overrides the per-pass instruction budget.
func WithBudget(n int) Option {
	return func(e *Engine) { e.budget = n }
}

// WithRegistry substitutes the built-in function table.
func WithRegistry(r *builtins.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// Engine executes programs. An Engine is not safe for concurrent use; run
// independent scripts on independent instances.
type Engine struct {
	registry *builtins.Registry
	statics  map[string]value.Value
	budget   int
}

// New builds an engine with its own registry and empty static state.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: builtins.NewRegistry(),
		statics:  make(map[string]value.Value),
		budget:   DefaultBudget,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ResetStatics clears persisted static variables, as when a new script is
// loaded.
func (e *Engine) ResetStatics() {
	e.statics = make(map[string]value.Value)
}

// pass is the per-execution state.
type pass struct {
	eng      *Engine
	prog     *hcode.Program
	bindings Bindings
	env      *environment
	stack    []value.Value
	out      *diagram.Diagram
}

// Execute runs one pass and returns the resolved diagram. On failure the
// returned error is a single *ExecError carrying the script position; no
// partial diagram is produced.
func (e *Engine) Execute(prog *hcode.Program, bindings Bindings) (*diagram.Diagram, error) {
	p := &pass{
		eng:      e,
		prog:     prog,
		bindings: bindings,
		env:      newEnvironment(),
		out:      &diagram.Diagram{},
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.out, nil
}

func (p *pass) run() error {
	executed := 0
	pc := 0
	for pc < len(p.prog.Instrs) {
		executed++
		if executed > p.eng.budget {
			in := p.prog.Instrs[pc]
			return p.fail(in, "instruction budget of %d exceeded; does the script loop forever?", p.eng.budget)
		}

		in := p.prog.Instrs[pc]
		next := pc + 1
		switch in.Op {
		case hcode.OpPush:
			p.push(in.Val.(value.Value))

		case hcode.OpLoad:
			v, ok := p.env.lookup(in.Name)
			if !ok {
				v, ok = p.eng.statics[in.Name]
			}
			if !ok {
				return p.failSuggest(in, p.env.names(),
					"variable %q referenced before assignment", in.Name)
			}
			p.push(v)

		case hcode.OpStore:
			v := p.pop()
			if _, inEnv := p.env.lookup(in.Name); !inEnv {
				if _, isStatic := p.eng.statics[in.Name]; isStatic {
					p.eng.statics[in.Name] = v
					break
				}
			}
			p.env.assign(in.Name, v)

		case hcode.OpSkipStatic:
			if _, ok := p.eng.statics[in.Name]; ok {
				next = in.N
			}

		case hcode.OpStoreStatic:
			p.eng.statics[in.Name] = p.pop()

		case hcode.OpDeclControl:
			if err := p.declControl(in); err != nil {
				return err
			}

		case hcode.OpPropGet:
			obj := p.pop()
			v, err := value.GetProperty(obj, in.Name)
			if err != nil {
				return p.failErr(in, err)
			}
			p.push(v)

		case hcode.OpPropSet:
			nv := p.pop()
			obj, ok := p.env.lookup(in.Sym)
			isStatic := false
			if !ok {
				obj, isStatic = p.eng.statics[in.Sym]
				if !isStatic {
					return p.failSuggest(in, p.env.names(),
						"variable %q referenced before assignment", in.Sym)
				}
			}
			if err := value.SetProperty(&obj, in.Name, nv); err != nil {
				return p.failErr(in, err)
			}
			if isStatic {
				p.eng.statics[in.Sym] = obj
			} else {
				p.env.assign(in.Sym, obj)
			}

		case hcode.OpUnary:
			if err := p.unary(in); err != nil {
				return err
			}

		case hcode.OpBinary:
			if err := p.binary(in); err != nil {
				return err
			}

		case hcode.OpBoost:
			if err := p.boost(in); err != nil {
				return err
			}

		case hcode.OpCall:
			if err := p.call(in); err != nil {
				return err
			}

		case hcode.OpJump:
			next = in.N

		case hcode.OpJumpIfFalse:
			cond, err := p.pop().Truthy()
			if err != nil {
				return p.failErr(in, err)
			}
			if !cond {
				next = in.N
			}

		case hcode.OpEnterScope:
			p.env.push()

		case hcode.OpExitScope:
			p.env.pop()

		case hcode.OpCoord:
			if err := p.buildCoord(in); err != nil {
				return err
			}

		case hcode.OpInterval:
			if err := p.buildInterval(in); err != nil {
				return err
			}

		case hcode.OpPath:
			if err := p.buildPath(in); err != nil {
				return err
			}

		case hcode.OpLineLit:
			if err := p.buildLine(in); err != nil {
				return err
			}

		case hcode.OpFrameLit:
			if err := p.buildFrame(in); err != nil {
				return err
			}

		case hcode.OpObserverLit:
			if err := p.buildObserver(in); err != nil {
				return err
			}

		case hcode.OpCommand:
			if err := p.command(in); err != nil {
				return err
			}

		case hcode.OpPrint:
			args := p.popN(in.N)
			line := ""
			for i, v := range args {
				if i > 0 {
					line += " "
				}
				line += v.Format()
			}
			p.out.Prints = append(p.out.Prints, line)

		case hcode.OpThrow:
			msg := p.pop()
			if s, ok := msg.AsString(); ok {
				return p.fail(in, "%s", s)
			}
			return p.fail(in, "%s", msg.Format())
		}
		pc = next
	}
	return nil
}

// stack helpers

func (p *pass) push(v value.Value) { p.stack = append(p.stack, v) }

func (p *pass) pop() value.Value {
	v := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return v
}

// popN removes the top n values and returns them in evaluation order.
func (p *pass) popN(n int) []value.Value {
	vals := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		vals[i] = p.pop()
	}
	return vals
}

// error helpers

func (p *pass) fail(in hcode.Instr, format string, args ...any) error {
	return &ExecError{
		Kind:    KindExecution,
		Message: fmt.Sprintf(format, args...),
		Line:    in.Line,
		Column:  in.Col,
	}
}

func (p *pass) failSuggest(in hcode.Instr, candidates []string, format string, args ...any) error {
	return &ExecError{
		Kind:       KindExecution,
		Message:    fmt.Sprintf(format, args...),
		Line:       in.Line,
		Column:     in.Col,
		Suggestion: closestMatch(in.Name, candidates),
	}
}

// failErr wraps an error from the value or kinematics layers, classifying
// no-solution and degenerate-math failures as arithmetic.
func (p *pass) failErr(in hcode.Instr, err error) error {
	kind := KindExecution
	switch err.(type) {
	case *relativity.NoSolutionError, *builtins.ArithmeticError:
		kind = KindArithmetic
	}
	return &ExecError{
		Kind:    kind,
		Message: err.Error(),
		Line:    in.Line,
		Column:  in.Col,
	}
}

// call validates and invokes a built-in function.
func (p *pass) call(in hcode.Instr) error {
	b, ok := p.eng.registry.Lookup(in.Name)
	if !ok {
		return p.failSuggest(in, p.eng.registry.Names(), "unknown function %q", in.Name)
	}
	args := p.popN(in.N)
	res, err := p.eng.registry.Call(b, args)
	if err != nil {
		return p.failErr(in, err)
	}
	p.push(res)
	return nil
}

// declControl evaluates a control declaration's metadata, binds the
// control's current value, and records it in the diagram output.
func (p *pass) declControl(in hcode.Instr) error {
	spec := in.Control
	ops := p.popN(spec.Operands())

	nums := make([]float64, len(ops))
	for i, v := range ops {
		if spec.Kind == hcode.ControlToggle {
			break
		}
		f, ok := v.AsNumber()
		if !ok {
			return p.fail(in, "%s %s: declaration values must be numbers, got %s",
				spec.Kind, in.Name, v.Tag)
		}
		nums[i] = f
	}

	ctl := diagram.Control{Name: in.Name, Kind: spec.Kind.String()}
	var bound value.Value

	switch spec.Kind {
	case hcode.ControlToggle:
		def, ok := ops[0].AsBool()
		if !ok {
			return p.fail(in, "toggle %s: default must be boolean, got %s", in.Name, ops[0].Tag)
		}
		val := def
		if raw, present := p.bindings[in.Name]; present {
			b, ok := raw.(bool)
			if !ok {
				return p.fail(in, "toggle %s: binding must be boolean", in.Name)
			}
			val = b
		}
		ctl.Bool = val
		bound = value.Bool(val)

	case hcode.ControlRange:
		def, min, max := nums[0], nums[1], nums[2]
		if min > max {
			return p.fail(in, "range %s: min %g exceeds max %g", in.Name, min, max)
		}
		val := clamp(def, min, max)
		if raw, present := p.bindings[in.Name]; present {
			f, ok := asFloat(raw)
			if !ok {
				return p.fail(in, "range %s: binding must be numeric", in.Name)
			}
			val = clamp(f, min, max)
		}
		ctl.Min, ctl.Max, ctl.Number = min, max, val
		bound = value.Number(val)

	case hcode.ControlAnimate:
		start, end, step := nums[0], nums[1], nums[2]
		val := start
		if raw, present := p.bindings[in.Name]; present {
			f, ok := asFloat(raw)
			if !ok {
				return p.fail(in, "animate %s: binding must be numeric", in.Name)
			}
			val = f
		}
		ctl.Min, ctl.Max, ctl.Step, ctl.Number = start, end, step, val
		bound = value.Number(val)

	case hcode.ControlChoice:
		idx := int(nums[0])
		if raw, present := p.bindings[in.Name]; present {
			i, ok := asInt(raw)
			if !ok {
				return p.fail(in, "choice %s: binding must be an integer", in.Name)
			}
			idx = i
		}
		if idx < 0 || idx >= len(spec.Choices) {
			return p.fail(in, "choice %s: index %d out of range (%d choices)",
				in.Name, idx, len(spec.Choices))
		}
		ctl.Index = idx
		ctl.Choices = spec.Choices
		bound = value.Number(float64(idx))
	}

	p.out.Controls = append(p.out.Controls, ctl)
	p.env.assign(in.Name, bound)
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func asFloat(raw any) (float64, bool) {
	switch f := raw.(type) {
	case float64:
		return f, true
	case int:
		return float64(f), true
	default:
		return 0, false
	}
}

func asInt(raw any) (int, bool) {
	switch i := raw.(type) {
	case int:
		return i, true
	case float64:
		if i == float64(int(i)) {
			return int(i), true
		}
	}
	return 0, false
}
