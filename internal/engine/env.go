package engine

import "github.com/freixas/gamma-sub005/internal/value"

// environment is a chain of block scopes. Outer declarations are visible to
// inner blocks unless shadowed; assignment updates the nearest existing
// binding, or creates one in the innermost scope.
type environment struct {
	scopes []map[string]value.Value
}

func newEnvironment() *environment {
	return &environment{scopes: []map[string]value.Value{{}}}
}

func (e *environment) push() {
	e.scopes = append(e.scopes, map[string]value.Value{})
}

func (e *environment) pop() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

func (e *environment) lookup(name string) (value.Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, true
		}
	}
	return value.Null, false
}

func (e *environment) assign(name string, v value.Value) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = v
			return
		}
	}
	e.scopes[len(e.scopes)-1][name] = v
}

// names returns every visible variable name, for suggestion ranking.
func (e *environment) names() []string {
	var out []string
	seen := map[string]bool{}
	for i := len(e.scopes) - 1; i >= 0; i-- {
		for n := range e.scopes[i] {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}
