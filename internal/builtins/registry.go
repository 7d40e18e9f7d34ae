// Package builtins is the fixed table of built-in script functions. Each
// entry declares its arity and accepted argument tags; the execution engine
// validates a call against this metadata before the function body runs.
//
// The registry is an explicit value constructed at engine start; separate
// engine instances never share mutable registry state.
package builtins

import (
	"fmt"
	"sort"

	"github.com/freixas/gamma-sub005/internal/value"
)

// Func is a built-in function body. Functions are pure with respect to the
// environment: they never mutate caller variables.
type Func func(args []value.Value) (value.Value, error)

// Builtin couples a function body with its declared signature. Params has
// one entry per argument; value.TagAny accepts any tag.
type Builtin struct {
	Name   string
	Params []value.Tag
	Fn     Func
}

// ArgError reports an arity or argument-type mismatch detected before the
// function body runs.
type ArgError struct {
	Fn  string
	Msg string
}

func (e *ArgError) Error() string { return fmt.Sprintf("%s: %s", e.Fn, e.Msg) }

// ArithmeticError reports a well-formed call whose math has no answer, such
// as a degenerate intersection.
type ArithmeticError struct {
	Msg string
}

func (e *ArithmeticError) Error() string { return e.Msg }

// Registry maps names to built-ins.
type Registry struct {
	fns map[string]*Builtin
}

// NewRegistry builds the full built-in table.
func NewRegistry() *Registry {
	r := &Registry{fns: make(map[string]*Builtin)}
	registerMath(r)
	registerKinematics(r)
	registerMisc(r)
	return r
}

func (r *Registry) add(name string, params []value.Tag, fn Func) {
	r.fns[name] = &Builtin{Name: name, Params: params, Fn: fn}
}

// Lookup returns the builtin for a name.
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	b, ok := r.fns[name]
	return b, ok
}

// Names returns all registered names, sorted, for suggestion ranking.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fns))
	for n := range r.fns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Call validates the arguments against the builtin's signature and invokes
// it. Validation failures are *ArgError.
func (r *Registry) Call(b *Builtin, args []value.Value) (value.Value, error) {
	if len(args) != len(b.Params) {
		return value.Null, &ArgError{
			Fn:  b.Name,
			Msg: fmt.Sprintf("expects %d argument(s), got %d", len(b.Params), len(args)),
		}
	}
	for i, want := range b.Params {
		if want == value.TagAny {
			continue
		}
		if args[i].Tag != want {
			return value.Null, &ArgError{
				Fn:  b.Name,
				Msg: fmt.Sprintf("argument %d must be %s, got %s", i+1, want, args[i].Tag),
			}
		}
	}
	return b.Fn(args)
}
