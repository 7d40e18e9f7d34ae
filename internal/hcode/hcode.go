// Package hcode defines the compiled intermediate instruction sequence the
// execution engine interprets. A program is produced once per script load
// and re-executed unchanged on every animation pass; only control-variable
// bindings change between executions.
package hcode

import (
	"fmt"
	"strings"

	"github.com/freixas/gamma-sub005/internal/relativity"
)

// Op tags one instruction.
type Op int

const (
	OpPush        Op = iota // push literal Val
	OpLoad                  // push variable Name
	OpStore                 // pop value, bind Name in the current scope chain
	OpStoreStatic           // pop value, bind static Name on the engine
	OpSkipStatic            // jump to N when static Name already exists
	OpDeclControl           // pop control metadata per Control, bind Name
	OpPropGet               // pop object, push property Name
	OpPropSet               // pop value, set property Name on variable Sym
	OpUnary                 // pop one, apply operator Name, push
	OpBinary                // pop two, apply operator Name, push
	OpBoost                 // pop frame then coordinate, transform; N is direction
	OpCall                  // pop N args, call function Name, push result
	OpJump                  // jump to N
	OpJumpIfFalse           // pop condition, jump to N when false
	OpEnterScope            // open a block scope
	OpExitScope             // close the innermost block scope
	OpCoord                 // pop t then x, push coordinate
	OpInterval              // pop max then min, push interval
	OpPath                  // pop N coordinates, push path
	OpLineLit               // build line per Line spec
	OpFrameLit              // build frame per Frame spec
	OpObserverLit           // build observer per Observer spec
	OpCommand               // pop command arguments, emit drawing command Name
	OpPrint                 // pop N values, append to print output
	OpThrow                 // pop message, abort the pass with an execution error
)

// Boost directions for OpBoost.
const (
	BoostInto  = 0 // coord -> frame
	BoostOutOf = 1 // coord <- frame
)

// Instr is one instruction. Fields beyond Op are used per the Op comments
// above; Line and Col locate the originating source for error reporting.
type Instr struct {
	Op   Op
	Name string
	Sym  string
	Val  any
	N    int

	// 1-based source position for error reporting.
	Line int
	Col  int

	Control  *ControlSpec
	Command  *CommandSpec
	Frame    *FrameSpec
	LineSpec *LineSpec
	Observer *ObserverSpec
}

// ControlKind enumerates the user-control declaration forms.
type ControlKind int

const (
	ControlToggle ControlKind = iota
	ControlRange
	ControlChoice
	ControlAnimate
)

func (k ControlKind) String() string {
	switch k {
	case ControlToggle:
		return "toggle"
	case ControlRange:
		return "range"
	case ControlChoice:
		return "choice"
	case ControlAnimate:
		return "animate"
	default:
		return "unknown"
	}
}

// ControlSpec describes a control declaration. The operand expressions are
// compiled ahead of the instruction and popped in declaration order:
// toggle pops default; range pops default, min, max; animate pops start,
// end, step; choice pops the default index (choices are literal strings).
type ControlSpec struct {
	Kind    ControlKind
	Choices []string
}

// Operands returns how many stack operands the declaration consumes.
func (c *ControlSpec) Operands() int {
	switch c.Kind {
	case ControlToggle, ControlChoice:
		return 1
	case ControlRange, ControlAnimate:
		return 3
	default:
		return 0
	}
}

// CommandSpec describes a drawing command's arguments: Positional operand
// expressions are compiled first, then one expression per Named key, all
// popped in reverse.
type CommandSpec struct {
	Positional int
	Named      []string
}

// FrameKind selects the frame-literal form.
type FrameKind int

const (
	FrameDirect   FrameKind = iota // [frame origin ..., velocity ...]
	FrameObserver                  // [frame observer obs at ...]
)

// FrameSpec describes a frame literal. Direct frames pop velocity then
// origin when present; observer frames pop the selector value then the
// observer.
type FrameSpec struct {
	Kind        FrameKind
	HasOrigin   bool
	HasVelocity bool
	At          relativity.AtType
}

// LineKind selects the line-literal form.
type LineKind int

const (
	LineAngle    LineKind = iota // [line angle n through (x, t)]
	LineAxis                     // [line axis x|t frame offset n]
	LineObserver                 // [line observer obs at ...]
)

// LineSpec describes a line literal. Angle lines pop point then angle; axis
// lines pop offset then frame; observer lines pop the selector value then
// the observer.
type LineSpec struct {
	Kind LineKind
	Axis relativity.Axis
	At   relativity.AtType
}

// ObserverClause mirrors one "acceleration ... for ..." clause; its two
// operand expressions (acceleration, delta) are compiled in order.
type ObserverClause struct {
	Limit relativity.LimitType
}

// ObserverSpec describes an observer literal. Operands are compiled in
// declaration order: origin, velocity, tau, distance when present, then two
// per clause, then the final acceleration when present.
type ObserverSpec struct {
	HasOrigin   bool
	HasVelocity bool
	HasTau      bool
	HasDistance bool
	Clauses     []ObserverClause
	HasFinalA   bool
}

// Program is the executable result of compiling one script.
type Program struct {
	Instrs []Instr
	Source string // original script text, kept for error snippets
}

// Disassemble renders a human-readable instruction listing.
func (p *Program) Disassemble() string {
	var b strings.Builder
	for i, in := range p.Instrs {
		fmt.Fprintf(&b, "%4d  %s", i, opName(in.Op))
		if in.Name != "" {
			fmt.Fprintf(&b, " %s", in.Name)
		}
		if in.Sym != "" {
			fmt.Fprintf(&b, " sym=%s", in.Sym)
		}
		if in.Val != nil {
			fmt.Fprintf(&b, " %v", in.Val)
		}
		switch in.Op {
		case OpJump, OpJumpIfFalse, OpSkipStatic:
			fmt.Fprintf(&b, " -> %d", in.N)
		case OpCall, OpPrint, OpPath, OpBoost, OpCommand:
			fmt.Fprintf(&b, " n=%d", in.N)
		}
		fmt.Fprintf(&b, "  ; line %d\n", in.Line)
	}
	return b.String()
}

func opName(op Op) string {
	switch op {
	case OpPush:
		return "PUSH"
	case OpLoad:
		return "LOAD"
	case OpStore:
		return "STORE"
	case OpStoreStatic:
		return "STORE_STATIC"
	case OpSkipStatic:
		return "SKIP_STATIC"
	case OpDeclControl:
		return "DECL_CONTROL"
	case OpPropGet:
		return "PROP_GET"
	case OpPropSet:
		return "PROP_SET"
	case OpUnary:
		return "UNARY"
	case OpBinary:
		return "BINARY"
	case OpBoost:
		return "BOOST"
	case OpCall:
		return "CALL"
	case OpJump:
		return "JUMP"
	case OpJumpIfFalse:
		return "JUMP_IF_FALSE"
	case OpEnterScope:
		return "ENTER_SCOPE"
	case OpExitScope:
		return "EXIT_SCOPE"
	case OpCoord:
		return "COORD"
	case OpInterval:
		return "INTERVAL"
	case OpPath:
		return "PATH"
	case OpLineLit:
		return "LINE"
	case OpFrameLit:
		return "FRAME"
	case OpObserverLit:
		return "OBSERVER"
	case OpCommand:
		return "COMMAND"
	case OpPrint:
		return "PRINT"
	case OpThrow:
		return "THROW"
	default:
		return "UNKNOWN"
	}
}
