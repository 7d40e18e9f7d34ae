package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freixas/gamma-sub005/internal/hcode"
	"github.com/freixas/gamma-sub005/internal/lexer"
	"github.com/freixas/gamma-sub005/internal/value"
)

func compileOps(t *testing.T, src string) []hcode.Op {
	t.Helper()
	prog, err := Compile(src)
	require.NoError(t, err)
	ops := make([]hcode.Op, len(prog.Instrs))
	for i, in := range prog.Instrs {
		ops[i] = in.Op
	}
	return ops
}

func TestCompileAssignment(t *testing.T) {
	prog, err := Compile("x = 2 + 3;")
	require.NoError(t, err)

	require.Len(t, prog.Instrs, 4)
	assert.Equal(t, hcode.OpPush, prog.Instrs[0].Op)
	assert.Equal(t, hcode.OpPush, prog.Instrs[1].Op)
	assert.Equal(t, hcode.OpBinary, prog.Instrs[2].Op)
	assert.Equal(t, "+", prog.Instrs[2].Name)
	assert.Equal(t, hcode.OpStore, prog.Instrs[3].Op)
	assert.Equal(t, "x", prog.Instrs[3].Name)
}

func TestCompilePrecedence(t *testing.T) {
	// 1 + 2 * 3 multiplies before adding.
	prog, err := Compile("x = 1 + 2 * 3;")
	require.NoError(t, err)

	var names []string
	for _, in := range prog.Instrs {
		if in.Op == hcode.OpBinary {
			names = append(names, in.Name)
		}
	}
	assert.Equal(t, []string{"*", "+"}, names)
}

func TestCompilePowerRightAssociative(t *testing.T) {
	// 2 ^ 3 ^ 2 compiles as 2 ^ (3 ^ 2): push 2, push 3, push 2, ^, ^.
	prog, err := Compile("x = 2 ^ 3 ^ 2;")
	require.NoError(t, err)

	assert.Equal(t, []hcode.Op{
		hcode.OpPush, hcode.OpPush, hcode.OpPush,
		hcode.OpBinary, hcode.OpBinary, hcode.OpStore,
	}, opsOf(prog))
}

func TestCompileUnaryBindsTighterThanPower(t *testing.T) {
	prog, err := Compile("x = -2 ^ 2;")
	require.NoError(t, err)

	// Unary minus applies to the whole power: push 2, push 2, ^, negate.
	assert.Equal(t, []hcode.Op{
		hcode.OpPush, hcode.OpPush, hcode.OpBinary, hcode.OpUnary, hcode.OpStore,
	}, opsOf(prog))
}

func opsOf(prog *hcode.Program) []hcode.Op {
	ops := make([]hcode.Op, len(prog.Instrs))
	for i, in := range prog.Instrs {
		ops[i] = in.Op
	}
	return ops
}

func TestCompileBoostPrecedence(t *testing.T) {
	// Additive binds tighter than boost: (a + b) -> f.
	prog, err := Compile("x = a + b -> f;")
	require.NoError(t, err)

	assert.Equal(t, []hcode.Op{
		hcode.OpLoad, hcode.OpLoad, hcode.OpBinary, hcode.OpLoad,
		hcode.OpBoost, hcode.OpStore,
	}, opsOf(prog))
	assert.Equal(t, hcode.BoostInto, prog.Instrs[4].N)

	prog, err = Compile("x = e <- f;")
	require.NoError(t, err)
	assert.Equal(t, hcode.BoostOutOf, prog.Instrs[2].N)
}

func TestCompileCoordVsParen(t *testing.T) {
	assert.Contains(t, compileOps(t, "p = (1, 2);"), hcode.OpCoord)
	assert.NotContains(t, compileOps(t, "p = (1 + 2);"), hcode.OpCoord)
}

func TestCompilePropertyAccess(t *testing.T) {
	prog, err := Compile("x = p.t;")
	require.NoError(t, err)

	require.Equal(t, hcode.OpPropGet, prog.Instrs[1].Op)
	assert.Equal(t, "t", prog.Instrs[1].Name)
}

func TestCompilePropertyAssignment(t *testing.T) {
	prog, err := Compile("p.x = 5;")
	require.NoError(t, err)

	last := prog.Instrs[len(prog.Instrs)-1]
	assert.Equal(t, hcode.OpPropSet, last.Op)
	assert.Equal(t, "x", last.Name)
	assert.Equal(t, "p", last.Sym)
}

func TestCompileCall(t *testing.T) {
	prog, err := Compile("x = atan2(1, 2);")
	require.NoError(t, err)

	call := prog.Instrs[2]
	assert.Equal(t, hcode.OpCall, call.Op)
	assert.Equal(t, "atan2", call.Name)
	assert.Equal(t, 2, call.N)
}

func TestCompileIfElse(t *testing.T) {
	src := `
if x > 0 {
	y = 1;
} else {
	y = 2;
}
`
	prog, err := Compile(src)
	require.NoError(t, err)

	var condJump, endJump hcode.Instr
	for _, in := range prog.Instrs {
		switch in.Op {
		case hcode.OpJumpIfFalse:
			condJump = in
		case hcode.OpJump:
			endJump = in
		}
	}
	// The false branch lands past the end-jump, the end-jump past everything.
	assert.Equal(t, hcode.OpEnterScope, prog.Instrs[condJump.N].Op)
	assert.Equal(t, len(prog.Instrs), endJump.N)
}

func TestCompileWhileLoopsBack(t *testing.T) {
	prog, err := Compile("while x < 3 { x = x + 1; }")
	require.NoError(t, err)

	var backJump hcode.Instr
	for _, in := range prog.Instrs {
		if in.Op == hcode.OpJump {
			backJump = in
		}
	}
	assert.Equal(t, 0, backJump.N, "loop jumps back to the condition")
}

func TestCompileThrow(t *testing.T) {
	assert.Equal(t, []hcode.Op{hcode.OpPush, hcode.OpThrow},
		compileOps(t, "throw \"bad input\";"))

	_, err := Compile("throw 1")
	require.Error(t, err)
}

func TestCompileStatic(t *testing.T) {
	prog, err := Compile("static n = 0;")
	require.NoError(t, err)

	skip := prog.Instrs[0]
	require.Equal(t, hcode.OpSkipStatic, skip.Op)
	assert.Equal(t, "n", skip.Name)
	assert.Equal(t, len(prog.Instrs), skip.N, "skip lands past the initializer")
	assert.Equal(t, hcode.OpStoreStatic, prog.Instrs[len(prog.Instrs)-1].Op)
}

func TestCompileControls(t *testing.T) {
	tests := []struct {
		name         string
		src          string
		wantKind     hcode.ControlKind
		wantOperands int
	}{
		{name: "toggle", src: "toggle grid_on = true;", wantKind: hcode.ControlToggle, wantOperands: 1},
		{name: "range", src: "range v = 0.5 from 0 to 0.99;", wantKind: hcode.ControlRange, wantOperands: 3},
		{name: "animate", src: "animate tick = 0 to 10 step 0.5;", wantKind: hcode.ControlAnimate, wantOperands: 3},
		{name: "choice", src: `choice view = 0 of "rest", "moving";`, wantKind: hcode.ControlChoice, wantOperands: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Compile(tt.src)
			require.NoError(t, err)

			var decl hcode.Instr
			for _, in := range prog.Instrs {
				if in.Op == hcode.OpDeclControl {
					decl = in
				}
			}
			require.NotNil(t, decl.Control)
			assert.Equal(t, tt.wantKind, decl.Control.Kind)
			assert.Equal(t, tt.wantOperands, decl.Control.Operands())
		})
	}

	t.Run("choice records strings", func(t *testing.T) {
		prog, err := Compile(`choice view = 0 of "rest", "moving";`)
		require.NoError(t, err)
		assert.Equal(t, []string{"rest", "moving"}, prog.Instrs[1].Control.Choices)
	})
}

func TestCompileCommands(t *testing.T) {
	tests := []struct {
		name           string
		src            string
		wantCmd        string
		wantPositional int
		wantNamed      []string
	}{
		{name: "axes bare", src: "axes;", wantCmd: "axes", wantPositional: 0},
		{name: "axes with frame", src: "axes f;", wantCmd: "axes", wantPositional: 1},
		{name: "worldline styled", src: `worldline obs, style: "red";`, wantCmd: "worldline", wantPositional: 1, wantNamed: []string{"style"}},
		{name: "event with text", src: `event (1, 2), text: "boom";`, wantCmd: "event", wantPositional: 1, wantNamed: []string{"text"}},
		{name: "label", src: `label (0, 0), text: "origin";`, wantCmd: "label", wantPositional: 1, wantNamed: []string{"text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Compile(tt.src)
			require.NoError(t, err)

			last := prog.Instrs[len(prog.Instrs)-1]
			require.Equal(t, hcode.OpCommand, last.Op)
			assert.Equal(t, tt.wantCmd, last.Name)
			assert.Equal(t, tt.wantPositional, last.Command.Positional)
			assert.Equal(t, tt.wantNamed, last.Command.Named)
		})
	}
}

func TestCompileCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "too many arguments", src: "axes a, b;", want: "too many arguments"},
		{name: "missing required positional", src: "worldline;", want: "requires 1 argument"},
		{name: "unknown named argument", src: `axes color: "red";`, want: "no argument named"},
		{name: "duplicate named argument", src: `event (0,0), text: "a", text: "b";`, want: "duplicate argument"},
		{name: "label requires text", src: "label (0, 0);", want: "requires a text: argument"},
		{name: "positional after named", src: `event (0,0), text: "a", (1,1);`, want: "named argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.src)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Message, tt.want)
		})
	}
}

func TestCompileObserverLiteral(t *testing.T) {
	src := `o = [observer origin (1, 0), velocity 0.5, tau 1, distance 2,
		acceleration 1 for tau 2, acceleration -1 for t 3, acceleration 0.5];`
	prog, err := Compile(src)
	require.NoError(t, err)

	var lit hcode.Instr
	for _, in := range prog.Instrs {
		if in.Op == hcode.OpObserverLit {
			lit = in
		}
	}
	require.NotNil(t, lit.Observer)
	assert.True(t, lit.Observer.HasOrigin)
	assert.True(t, lit.Observer.HasVelocity)
	assert.True(t, lit.Observer.HasTau)
	assert.True(t, lit.Observer.HasDistance)
	assert.True(t, lit.Observer.HasFinalA)
	require.Len(t, lit.Observer.Clauses, 2)
	assert.Equal(t, "tau", lit.Observer.Clauses[0].Limit.String())
	assert.Equal(t, "t", lit.Observer.Clauses[1].Limit.String())
}

func TestCompileObserverClauseOrder(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "origin after velocity", src: "o = [observer velocity 0.5, origin (0,0)];", want: "out of order"},
		{name: "tau after distance", src: "o = [observer distance 1, tau 2];", want: "out of order"},
		{name: "clause after final acceleration", src: "o = [observer acceleration 1, velocity 0.5];", want: "final acceleration"},
		{name: "unknown clause", src: "o = [observer speed 0.5];", want: "unknown observer clause"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.src)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Message, tt.want)
		})
	}
}

func TestCompileFrameLiterals(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		prog, err := Compile("f = [frame origin (1, 2), velocity 0.5];")
		require.NoError(t, err)
		lit := findOp(t, prog, hcode.OpFrameLit)
		assert.Equal(t, hcode.FrameDirect, lit.Frame.Kind)
		assert.True(t, lit.Frame.HasOrigin)
		assert.True(t, lit.Frame.HasVelocity)
	})

	t.Run("velocity only", func(t *testing.T) {
		prog, err := Compile("f = [frame velocity 0.5];")
		require.NoError(t, err)
		lit := findOp(t, prog, hcode.OpFrameLit)
		assert.False(t, lit.Frame.HasOrigin)
		assert.True(t, lit.Frame.HasVelocity)
	})

	t.Run("empty defaults", func(t *testing.T) {
		prog, err := Compile("f = [frame];")
		require.NoError(t, err)
		lit := findOp(t, prog, hcode.OpFrameLit)
		assert.False(t, lit.Frame.HasOrigin)
		assert.False(t, lit.Frame.HasVelocity)
	})

	t.Run("from observer", func(t *testing.T) {
		prog, err := Compile("f = [frame observer o at tau 2];")
		require.NoError(t, err)
		lit := findOp(t, prog, hcode.OpFrameLit)
		assert.Equal(t, hcode.FrameObserver, lit.Frame.Kind)
		assert.Equal(t, "tau", lit.Frame.At.String())
	})
}

func TestCompileLineLiterals(t *testing.T) {
	t.Run("angle through", func(t *testing.T) {
		prog, err := Compile("l = [line angle 45 through (0, 0)];")
		require.NoError(t, err)
		lit := findOp(t, prog, hcode.OpLineLit)
		assert.Equal(t, hcode.LineAngle, lit.LineSpec.Kind)
	})

	t.Run("axis with default offset", func(t *testing.T) {
		prog, err := Compile("l = [line axis x f];")
		require.NoError(t, err)
		lit := findOp(t, prog, hcode.OpLineLit)
		assert.Equal(t, hcode.LineAxis, lit.LineSpec.Kind)

		// The implicit offset 0 is pushed before the literal op.
		var pushes []value.Value
		for _, in := range prog.Instrs {
			if in.Op == hcode.OpPush {
				pushes = append(pushes, in.Val.(value.Value))
			}
		}
		require.NotEmpty(t, pushes)
		n, ok := pushes[len(pushes)-1].AsNumber()
		require.True(t, ok)
		assert.Equal(t, 0.0, n)
	})

	t.Run("observer tangent", func(t *testing.T) {
		prog, err := Compile("l = [line observer o at v 0.5];")
		require.NoError(t, err)
		lit := findOp(t, prog, hcode.OpLineLit)
		assert.Equal(t, hcode.LineObserver, lit.LineSpec.Kind)
		assert.Equal(t, "v", lit.LineSpec.At.String())
	})

	t.Run("bad axis", func(t *testing.T) {
		_, err := Compile("l = [line axis q f];")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Message, "axis must be x or t")
	})
}

func TestCompilePathAndInterval(t *testing.T) {
	prog, err := Compile("p = [path (0,0), (1,1), (2,0)];")
	require.NoError(t, err)
	lit := findOp(t, prog, hcode.OpPath)
	assert.Equal(t, 3, lit.N)

	prog, err = Compile("i = [interval 0, 10];")
	require.NoError(t, err)
	findOp(t, prog, hcode.OpInterval)
}

func TestCompileReservedNames(t *testing.T) {
	for _, src := range []string{
		"true = 1;",
		"null = 2;",
		"axes = 3;",
		"static false = 1;",
		"toggle event = true;",
	} {
		_, err := Compile(src)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, "source %q", src)
	}
}

func TestCompileErrorPositions(t *testing.T) {
	_, err := Compile("x = 1;\ny = ;")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Token.Line)
	assert.Equal(t, 5, perr.Token.Column)
	assert.Contains(t, perr.Error(), "-->")
}

func TestCompileLexErrorsPassThrough(t *testing.T) {
	_, err := Compile("x = 1.2.3;")
	var scanErr *lexer.ScanError
	assert.ErrorAs(t, err, &scanErr)
}

func TestCompileUnmatchedBrace(t *testing.T) {
	_, err := Compile("if x > 0 { y = 1;")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "unmatched '{'")
}

func findOp(t *testing.T, prog *hcode.Program, op hcode.Op) hcode.Instr {
	t.Helper()
	for _, in := range prog.Instrs {
		if in.Op == op {
			return in
		}
	}
	t.Fatalf("no %v instruction in program", op)
	return hcode.Instr{}
}
