// Package parser compiles script text into an HCode instruction sequence.
//
// Compilation is a single pass: statements and expressions are recognized
// with standard precedence and emitted directly as flattened,
// order-of-evaluation instructions. No constant folding happens here; all
// evaluation belongs to the execution engine.
package parser

import (
	"github.com/freixas/gamma-sub005/internal/hcode"
	"github.com/freixas/gamma-sub005/internal/lexer"
	"github.com/freixas/gamma-sub005/internal/relativity"
	"github.com/freixas/gamma-sub005/internal/value"
)

// Compile tokenizes and compiles a script. Lexical errors surface as
// *lexer.ScanError, grammar errors as *ParseError.
func Compile(src string) (*hcode.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{input: src, toks: toks}
	if err := p.parseScript(); err != nil {
		return nil, err
	}
	return &hcode.Program{Instrs: p.out, Source: src}, nil
}

type parser struct {
	input string
	toks  []lexer.Token
	pos   int
	out   []hcode.Instr
}

// commandSig declares a drawing command's argument shape.
type commandSig struct {
	positional int // required positional arguments
	optional   int // additional optional positional arguments
	named      []string
	required   []string
}

var commands = map[string]commandSig{
	"axes":      {0, 1, []string{"style"}, nil},
	"grid":      {0, 1, []string{"style"}, nil},
	"hypergrid": {0, 0, []string{"style"}, nil},
	"worldline": {1, 0, []string{"style"}, nil},
	"event":     {1, 0, []string{"text", "style"}, nil},
	"line":      {1, 0, []string{"style"}, nil},
	"path":      {1, 0, []string{"style"}, nil},
	"label":     {1, 0, []string{"text", "style"}, []string{"text"}},
}

// token access

func (p *parser) current() lexer.Token { return p.toks[p.pos] }

func (p *parser) peek() lexer.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) atDelim(s string) bool {
	t := p.current()
	return t.Type == lexer.DELIMITER && t.Text == s
}

func (p *parser) atOp(s string) bool {
	t := p.current()
	return t.Type == lexer.OPERATOR && t.Text == s
}

func (p *parser) atName(s string) bool {
	t := p.current()
	return t.Type == lexer.NAME && t.Text == s
}

func (p *parser) matchDelim(s string) bool {
	if p.atDelim(s) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) matchOp(s string) bool {
	if p.atOp(s) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) matchName(s string) bool {
	if p.atName(s) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectDelim(s string) error {
	if !p.matchDelim(s) {
		return p.unexpected("'" + s + "'")
	}
	return nil
}

func (p *parser) expectName() (lexer.Token, error) {
	if p.current().Type != lexer.NAME {
		return lexer.Token{}, p.unexpected("a name")
	}
	return p.advance(), nil
}

// emit appends an instruction stamped with the token's position and returns
// its index for backpatching.
func (p *parser) emit(in hcode.Instr, at lexer.Token) int {
	in.Line = at.Line
	in.Col = at.Column
	p.out = append(p.out, in)
	return len(p.out) - 1
}

func (p *parser) patch(idx, target int) { p.out[idx].N = target }

func (p *parser) here() int { return len(p.out) }

// statements

func (p *parser) parseScript() error {
	for p.current().Type != lexer.EOF {
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseStatement() error {
	tok := p.current()
	if tok.Type == lexer.DELIMITER && tok.Text == "{" {
		return p.parseBlock()
	}
	if tok.Type != lexer.NAME {
		return p.unexpected("a statement")
	}

	switch tok.Text {
	case "if":
		return p.parseIf()
	case "while":
		return p.parseWhile()
	case "static":
		return p.parseStatic()
	case "print":
		return p.parsePrint()
	case "throw":
		return p.parseThrow()
	case "toggle", "range", "choice", "animate":
		return p.parseControl(tok.Text)
	}
	if _, isCmd := commands[tok.Text]; isCmd {
		return p.parseCommand()
	}
	return p.parseAssignment()
}

func (p *parser) parseBlock() error {
	open := p.current()
	if err := p.expectDelim("{"); err != nil {
		return err
	}
	p.emit(hcode.Instr{Op: hcode.OpEnterScope}, open)
	for !p.atDelim("}") {
		if p.current().Type == lexer.EOF {
			return p.errorf(open, "unmatched '{'")
		}
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	closing := p.advance()
	p.emit(hcode.Instr{Op: hcode.OpExitScope}, closing)
	return nil
}

func (p *parser) parseIf() error {
	kw := p.advance() // if
	if err := p.parseExpr(); err != nil {
		return err
	}
	elseJump := p.emit(hcode.Instr{Op: hcode.OpJumpIfFalse}, kw)
	if err := p.parseBlock(); err != nil {
		return err
	}
	if p.atName("else") {
		elseTok := p.advance()
		endJump := p.emit(hcode.Instr{Op: hcode.OpJump}, elseTok)
		p.patch(elseJump, p.here())
		var err error
		if p.atName("if") {
			err = p.parseIf()
		} else {
			err = p.parseBlock()
		}
		if err != nil {
			return err
		}
		p.patch(endJump, p.here())
		return nil
	}
	p.patch(elseJump, p.here())
	return nil
}

func (p *parser) parseWhile() error {
	kw := p.advance() // while
	top := p.here()
	if err := p.parseExpr(); err != nil {
		return err
	}
	exitJump := p.emit(hcode.Instr{Op: hcode.OpJumpIfFalse}, kw)
	if err := p.parseBlock(); err != nil {
		return err
	}
	p.emit(hcode.Instr{Op: hcode.OpJump, N: top}, kw)
	p.patch(exitJump, p.here())
	return nil
}

func (p *parser) parseStatic() error {
	p.advance() // static
	name, err := p.expectName()
	if err != nil {
		return err
	}
	if err := p.reserveCheck(name); err != nil {
		return err
	}
	if !p.matchOp("=") {
		return p.unexpected("'='")
	}
	skip := p.emit(hcode.Instr{Op: hcode.OpSkipStatic, Name: name.Text}, name)
	if err := p.parseExpr(); err != nil {
		return err
	}
	p.emit(hcode.Instr{Op: hcode.OpStoreStatic, Name: name.Text}, name)
	p.patch(skip, p.here())
	return p.expectDelim(";")
}

func (p *parser) parsePrint() error {
	kw := p.advance() // print
	n := 0
	for {
		if err := p.parseExpr(); err != nil {
			return err
		}
		n++
		if !p.matchDelim(",") {
			break
		}
	}
	p.emit(hcode.Instr{Op: hcode.OpPrint, N: n}, kw)
	return p.expectDelim(";")
}

func (p *parser) parseThrow() error {
	kw := p.advance() // throw
	if err := p.parseExpr(); err != nil {
		return err
	}
	p.emit(hcode.Instr{Op: hcode.OpThrow}, kw)
	return p.expectDelim(";")
}

func (p *parser) parseControl(kind string) error {
	p.advance() // keyword
	name, err := p.expectName()
	if err != nil {
		return err
	}
	if err := p.reserveCheck(name); err != nil {
		return err
	}
	if !p.matchOp("=") {
		return p.unexpected("'='")
	}

	spec := &hcode.ControlSpec{}
	switch kind {
	case "toggle":
		spec.Kind = hcode.ControlToggle
		if err := p.parseExpr(); err != nil {
			return err
		}
	case "range":
		// range name = default from min to max;
		spec.Kind = hcode.ControlRange
		if err := p.parseExpr(); err != nil {
			return err
		}
		if !p.matchName("from") {
			return p.unexpected("'from'")
		}
		if err := p.parseExpr(); err != nil {
			return err
		}
		if !p.matchName("to") {
			return p.unexpected("'to'")
		}
		if err := p.parseExpr(); err != nil {
			return err
		}
	case "animate":
		// animate name = start to end step delta;
		spec.Kind = hcode.ControlAnimate
		if err := p.parseExpr(); err != nil {
			return err
		}
		if !p.matchName("to") {
			return p.unexpected("'to'")
		}
		if err := p.parseExpr(); err != nil {
			return err
		}
		if !p.matchName("step") {
			return p.unexpected("'step'")
		}
		if err := p.parseExpr(); err != nil {
			return err
		}
	case "choice":
		// choice name = index of "a", "b", ...;
		spec.Kind = hcode.ControlChoice
		if err := p.parseExpr(); err != nil {
			return err
		}
		if !p.matchName("of") {
			return p.unexpected("'of'")
		}
		for {
			c := p.current()
			if c.Type != lexer.STRING {
				return p.unexpected("a choice string")
			}
			p.advance()
			spec.Choices = append(spec.Choices, c.Text)
			if !p.matchDelim(",") {
				break
			}
		}
	}
	p.emit(hcode.Instr{Op: hcode.OpDeclControl, Name: name.Text, Control: spec}, name)
	return p.expectDelim(";")
}

func (p *parser) parseCommand() error {
	kw := p.advance()
	sig := commands[kw.Text]
	spec := &hcode.CommandSpec{}

	if !p.atDelim(";") {
		for {
			// Named argument: NAME ':' expr
			if p.current().Type == lexer.NAME &&
				p.peek().Type == lexer.DELIMITER && p.peek().Text == ":" {
				key := p.advance()
				p.advance() // ':'
				if !contains(sig.named, key.Text) {
					return p.errorf(key, "command %s has no argument named %q", kw.Text, key.Text)
				}
				if contains(spec.Named, key.Text) {
					return p.errorf(key, "duplicate argument %q", key.Text)
				}
				if err := p.parseExpr(); err != nil {
					return err
				}
				spec.Named = append(spec.Named, key.Text)
			} else {
				if len(spec.Named) > 0 {
					return p.unexpected("a named argument")
				}
				if spec.Positional == sig.positional+sig.optional {
					return p.errorf(p.current(), "too many arguments to %s", kw.Text)
				}
				if err := p.parseExpr(); err != nil {
					return err
				}
				spec.Positional++
			}
			if !p.matchDelim(",") {
				break
			}
		}
	}

	if spec.Positional < sig.positional {
		return p.errorf(kw, "%s requires %d argument(s)", kw.Text, sig.positional)
	}
	for _, req := range sig.required {
		if !contains(spec.Named, req) {
			return p.errorf(kw, "%s requires a %s: argument", kw.Text, req)
		}
	}

	p.emit(hcode.Instr{Op: hcode.OpCommand, Name: kw.Text, Command: spec}, kw)
	return p.expectDelim(";")
}

func (p *parser) parseAssignment() error {
	name := p.advance()

	// Property assignment: name.prop = expr;
	if p.atOp(".") {
		p.advance()
		prop, err := p.expectName()
		if err != nil {
			return err
		}
		if !p.matchOp("=") {
			return p.unexpected("'='")
		}
		if err := p.parseExpr(); err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpPropSet, Name: prop.Text, Sym: name.Text}, name)
		return p.expectDelim(";")
	}

	if err := p.reserveCheck(name); err != nil {
		return err
	}
	if !p.matchOp("=") {
		return p.unexpected("'='")
	}
	if err := p.parseExpr(); err != nil {
		return err
	}
	p.emit(hcode.Instr{Op: hcode.OpStore, Name: name.Text}, name)
	return p.expectDelim(";")
}

func (p *parser) reserveCheck(name lexer.Token) error {
	switch name.Text {
	case "true", "false", "null":
		return p.errorf(name, "%q is reserved", name.Text)
	}
	if _, isCmd := commands[name.Text]; isCmd {
		return p.errorf(name, "%q is a command name and cannot be assigned", name.Text)
	}
	return nil
}

// expressions, loosest binding first

func (p *parser) parseExpr() error { return p.parseOr() }

func (p *parser) parseOr() error {
	if err := p.parseAnd(); err != nil {
		return err
	}
	for p.atOp("||") {
		op := p.advance()
		if err := p.parseAnd(); err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpBinary, Name: "||"}, op)
	}
	return nil
}

func (p *parser) parseAnd() error {
	if err := p.parseEquality(); err != nil {
		return err
	}
	for p.atOp("&&") {
		op := p.advance()
		if err := p.parseEquality(); err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpBinary, Name: "&&"}, op)
	}
	return nil
}

func (p *parser) parseEquality() error {
	if err := p.parseRelational(); err != nil {
		return err
	}
	for p.atOp("==") || p.atOp("!=") {
		op := p.advance()
		if err := p.parseRelational(); err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpBinary, Name: op.Text}, op)
	}
	return nil
}

func (p *parser) parseRelational() error {
	if err := p.parseBoost(); err != nil {
		return err
	}
	for p.atOp("<") || p.atOp("<=") || p.atOp(">") || p.atOp(">=") {
		op := p.advance()
		if err := p.parseBoost(); err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpBinary, Name: op.Text}, op)
	}
	return nil
}

func (p *parser) parseBoost() error {
	if err := p.parseAdditive(); err != nil {
		return err
	}
	for p.atOp("->") || p.atOp("<-") {
		op := p.advance()
		if err := p.parseAdditive(); err != nil {
			return err
		}
		dir := hcode.BoostInto
		if op.Text == "<-" {
			dir = hcode.BoostOutOf
		}
		p.emit(hcode.Instr{Op: hcode.OpBoost, N: dir}, op)
	}
	return nil
}

func (p *parser) parseAdditive() error {
	if err := p.parseMultiplicative(); err != nil {
		return err
	}
	for p.atOp("+") || p.atOp("-") {
		op := p.advance()
		if err := p.parseMultiplicative(); err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpBinary, Name: op.Text}, op)
	}
	return nil
}

func (p *parser) parseMultiplicative() error {
	if err := p.parseUnary(); err != nil {
		return err
	}
	for p.atOp("*") || p.atOp("/") {
		op := p.advance()
		if err := p.parseUnary(); err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpBinary, Name: op.Text}, op)
	}
	return nil
}

func (p *parser) parseUnary() error {
	if p.atOp("-") || p.atOp("!") {
		op := p.advance()
		if err := p.parseUnary(); err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpUnary, Name: op.Text}, op)
		return nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() error {
	if err := p.parsePostfix(); err != nil {
		return err
	}
	if p.atOp("^") {
		op := p.advance()
		// Right associative.
		if err := p.parseUnary(); err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpBinary, Name: "^"}, op)
	}
	return nil
}

func (p *parser) parsePostfix() error {
	if err := p.parsePrimary(); err != nil {
		return err
	}
	for p.atOp(".") {
		p.advance()
		prop, err := p.expectName()
		if err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpPropGet, Name: prop.Text}, prop)
	}
	return nil
}

func (p *parser) parsePrimary() error {
	tok := p.current()
	switch {
	case tok.Type == lexer.NUMBER:
		p.advance()
		p.emit(hcode.Instr{Op: hcode.OpPush, Val: value.Number(tok.Number)}, tok)
		return nil
	case tok.Type == lexer.STRING:
		p.advance()
		p.emit(hcode.Instr{Op: hcode.OpPush, Val: value.String(tok.Text)}, tok)
		return nil
	case tok.Type == lexer.NAME:
		switch tok.Text {
		case "true":
			p.advance()
			p.emit(hcode.Instr{Op: hcode.OpPush, Val: value.Bool(true)}, tok)
			return nil
		case "false":
			p.advance()
			p.emit(hcode.Instr{Op: hcode.OpPush, Val: value.Bool(false)}, tok)
			return nil
		case "null":
			p.advance()
			p.emit(hcode.Instr{Op: hcode.OpPush, Val: value.Null}, tok)
			return nil
		}
		// Function call or variable load.
		if p.peek().Type == lexer.DELIMITER && p.peek().Text == "(" {
			return p.parseCall()
		}
		p.advance()
		p.emit(hcode.Instr{Op: hcode.OpLoad, Name: tok.Text}, tok)
		return nil
	case tok.Type == lexer.DELIMITER && tok.Text == "(":
		return p.parseParenOrCoord()
	case tok.Type == lexer.DELIMITER && tok.Text == "[":
		return p.parseObjectLiteral()
	default:
		return p.unexpected("an expression")
	}
}

func (p *parser) parseCall() error {
	name := p.advance()
	p.advance() // '('
	argc := 0
	if !p.atDelim(")") {
		for {
			if err := p.parseExpr(); err != nil {
				return err
			}
			argc++
			if !p.matchDelim(",") {
				break
			}
		}
	}
	if err := p.expectDelim(")"); err != nil {
		return err
	}
	p.emit(hcode.Instr{Op: hcode.OpCall, Name: name.Text, N: argc}, name)
	return nil
}

// parseParenOrCoord disambiguates a parenthesized expression from a
// coordinate literal (x, t) by whether a comma follows the first expression.
func (p *parser) parseParenOrCoord() error {
	open := p.advance() // '('
	if err := p.parseExpr(); err != nil {
		return err
	}
	if p.matchDelim(",") {
		if err := p.parseExpr(); err != nil {
			return err
		}
		if err := p.expectDelim(")"); err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpCoord}, open)
		return nil
	}
	return p.expectDelim(")")
}

// object literals

func (p *parser) parseObjectLiteral() error {
	open := p.advance() // '['
	kind, err := p.expectName()
	if err != nil {
		return err
	}
	switch kind.Text {
	case "observer":
		return p.parseObserverLiteral(open)
	case "frame":
		return p.parseFrameLiteral(open)
	case "line":
		return p.parseLineLiteral(open)
	case "path":
		return p.parsePathLiteral(open)
	case "interval":
		return p.parseIntervalLiteral(open)
	default:
		return p.errorf(kind, "unknown object kind %q", kind.Text)
	}
}

// parseObserverLiteral compiles
//
//	[observer origin (x,t), velocity v, tau n, distance n,
//	          acceleration a for tau n, ..., acceleration a]
//
// Clauses are optional but must appear in that order; a trailing
// acceleration without 'for' continues into the infinite future.
func (p *parser) parseObserverLiteral(open lexer.Token) error {
	spec := &hcode.ObserverSpec{}
	const (
		stageOrigin = iota
		stageVelocity
		stageTau
		stageDistance
		stageAccel
	)
	stage := stageOrigin
	first := true

	for !p.atDelim("]") {
		if !first {
			if err := p.expectDelim(","); err != nil {
				return err
			}
		}
		first = false
		word, err := p.expectName()
		if err != nil {
			return err
		}
		if spec.HasFinalA {
			return p.errorf(word, "no clause may follow a final acceleration")
		}
		switch word.Text {
		case "origin":
			if stage > stageOrigin {
				return p.errorf(word, "origin clause out of order")
			}
			stage = stageVelocity
			if err := p.parseExpr(); err != nil {
				return err
			}
			spec.HasOrigin = true
		case "velocity":
			if stage > stageVelocity {
				return p.errorf(word, "velocity clause out of order")
			}
			stage = stageTau
			if err := p.parseExpr(); err != nil {
				return err
			}
			spec.HasVelocity = true
		case "tau":
			if stage > stageTau {
				return p.errorf(word, "tau clause out of order")
			}
			stage = stageDistance
			if err := p.parseExpr(); err != nil {
				return err
			}
			spec.HasTau = true
		case "distance":
			if stage > stageDistance {
				return p.errorf(word, "distance clause out of order")
			}
			stage = stageAccel
			if err := p.parseExpr(); err != nil {
				return err
			}
			spec.HasDistance = true
		case "acceleration":
			stage = stageAccel
			if err := p.parseExpr(); err != nil {
				return err
			}
			if p.matchName("for") {
				limit, err := p.parseLimitType()
				if err != nil {
					return err
				}
				if err := p.parseExpr(); err != nil {
					return err
				}
				spec.Clauses = append(spec.Clauses, hcode.ObserverClause{Limit: limit})
			} else {
				spec.HasFinalA = true
			}
		default:
			return p.errorf(word, "unknown observer clause %q", word.Text)
		}
	}
	p.advance() // ']'
	p.emit(hcode.Instr{Op: hcode.OpObserverLit, Observer: spec}, open)
	return nil
}

func (p *parser) parseFrameLiteral(open lexer.Token) error {
	spec := &hcode.FrameSpec{}

	if p.atName("observer") {
		p.advance()
		spec.Kind = hcode.FrameObserver
		if err := p.parseExpr(); err != nil {
			return err
		}
		if !p.matchName("at") {
			return p.unexpected("'at'")
		}
		at, err := p.parseAtType()
		if err != nil {
			return err
		}
		spec.At = at
		if err := p.parseExpr(); err != nil {
			return err
		}
		if err := p.expectDelim("]"); err != nil {
			return err
		}
		p.emit(hcode.Instr{Op: hcode.OpFrameLit, Frame: spec}, open)
		return nil
	}

	spec.Kind = hcode.FrameDirect
	if p.matchName("origin") {
		if err := p.parseExpr(); err != nil {
			return err
		}
		spec.HasOrigin = true
		if !p.atDelim("]") {
			if err := p.expectDelim(","); err != nil {
				return err
			}
		}
	}
	if p.matchName("velocity") {
		if err := p.parseExpr(); err != nil {
			return err
		}
		spec.HasVelocity = true
	}
	if err := p.expectDelim("]"); err != nil {
		return err
	}
	p.emit(hcode.Instr{Op: hcode.OpFrameLit, Frame: spec}, open)
	return nil
}

func (p *parser) parseLineLiteral(open lexer.Token) error {
	spec := &hcode.LineSpec{}
	form, err := p.expectName()
	if err != nil {
		return err
	}
	switch form.Text {
	case "angle":
		spec.Kind = hcode.LineAngle
		if err := p.parseExpr(); err != nil {
			return err
		}
		if !p.matchName("through") {
			return p.unexpected("'through'")
		}
		if err := p.parseExpr(); err != nil {
			return err
		}
	case "axis":
		spec.Kind = hcode.LineAxis
		axis, err := p.expectName()
		if err != nil {
			return err
		}
		switch axis.Text {
		case "x":
			spec.Axis = relativity.AxisX
		case "t":
			spec.Axis = relativity.AxisT
		default:
			return p.errorf(axis, "axis must be x or t, got %q", axis.Text)
		}
		if err := p.parseExpr(); err != nil {
			return err
		}
		if p.matchName("offset") {
			if err := p.parseExpr(); err != nil {
				return err
			}
		} else {
			p.emit(hcode.Instr{Op: hcode.OpPush, Val: value.Number(0)}, p.current())
		}
	case "observer":
		spec.Kind = hcode.LineObserver
		if err := p.parseExpr(); err != nil {
			return err
		}
		if !p.matchName("at") {
			return p.unexpected("'at'")
		}
		at, err := p.parseAtType()
		if err != nil {
			return err
		}
		spec.At = at
		if err := p.parseExpr(); err != nil {
			return err
		}
	default:
		return p.errorf(form, "line must be angle, axis, or observer form, got %q", form.Text)
	}
	if err := p.expectDelim("]"); err != nil {
		return err
	}
	p.emit(hcode.Instr{Op: hcode.OpLineLit, LineSpec: spec}, open)
	return nil
}

func (p *parser) parsePathLiteral(open lexer.Token) error {
	n := 0
	for {
		if err := p.parseExpr(); err != nil {
			return err
		}
		n++
		if !p.matchDelim(",") {
			break
		}
	}
	if err := p.expectDelim("]"); err != nil {
		return err
	}
	p.emit(hcode.Instr{Op: hcode.OpPath, N: n}, open)
	return nil
}

func (p *parser) parseIntervalLiteral(open lexer.Token) error {
	if err := p.parseExpr(); err != nil {
		return err
	}
	if err := p.expectDelim(","); err != nil {
		return err
	}
	if err := p.parseExpr(); err != nil {
		return err
	}
	if err := p.expectDelim("]"); err != nil {
		return err
	}
	p.emit(hcode.Instr{Op: hcode.OpInterval}, open)
	return nil
}

func (p *parser) parseLimitType() (relativity.LimitType, error) {
	word, err := p.expectName()
	if err != nil {
		return 0, err
	}
	switch word.Text {
	case "t":
		return relativity.LimitT, nil
	case "tau":
		return relativity.LimitTau, nil
	case "d":
		return relativity.LimitD, nil
	default:
		return 0, p.errorf(word, "limit must be t, tau, or d, got %q", word.Text)
	}
}

func (p *parser) parseAtType() (relativity.AtType, error) {
	word, err := p.expectName()
	if err != nil {
		return 0, err
	}
	switch word.Text {
	case "t":
		return relativity.AtT, nil
	case "tau":
		return relativity.AtTau, nil
	case "d":
		return relativity.AtD, nil
	case "v":
		return relativity.AtV, nil
	default:
		return 0, p.errorf(word, "selector must be t, tau, d, or v, got %q", word.Text)
	}
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
