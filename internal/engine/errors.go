package engine

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrorKind classifies an execution failure.
type ErrorKind int

const (
	// KindExecution covers undefined variables, type mismatches, and bad
	// function arguments.
	KindExecution ErrorKind = iota
	// KindArithmetic covers kinematics queries with no solution and
	// degenerate intersections.
	KindArithmetic
)

func (k ErrorKind) String() string {
	if k == KindArithmetic {
		return "arithmetic error"
	}
	return "execution error"
}

// ExecError aborts an execution pass. It carries the originating source
// position and, for unresolved names, a fuzzy "did you mean" suggestion.
type ExecError struct {
	Kind       ErrorKind
	Message    string
	Line       int
	Column     int
	Suggestion string
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// closestMatch ranks candidates by fuzzy distance and returns the best, or
// "" when nothing is close.
func closestMatch(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
