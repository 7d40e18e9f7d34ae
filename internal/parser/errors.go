package parser

import (
	"fmt"
	"strings"

	"github.com/freixas/gamma-sub005/internal/lexer"
)

// ParseError is a compilation error with location and context information.
type ParseError struct {
	Message string
	Token   lexer.Token
	Input   string
}

// Error returns the message with line/column and a caret snippet.
func (e *ParseError) Error() string {
	snippet := e.snippet()
	if snippet == "" {
		return fmt.Sprintf("parse error at %d:%d: %s", e.Token.Line, e.Token.Column, e.Message)
	}
	return fmt.Sprintf("parse error: %s\n%s", e.Message, snippet)
}

// snippet renders the offending source line with a caret under the token.
func (e *ParseError) snippet() string {
	if e.Input == "" || e.Token.Line == 0 {
		return ""
	}
	lines := strings.Split(e.Input, "\n")
	if e.Token.Line > len(lines) {
		return ""
	}
	lineContent := lines[e.Token.Line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "  --> %d:%d\n", e.Token.Line, e.Token.Column)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%2d | %s\n", e.Token.Line, lineContent)
	b.WriteString("   | ")
	if e.Token.Column > 0 && e.Token.Column <= len(lineContent)+1 {
		b.WriteString(strings.Repeat(" ", e.Token.Column-1) + "^")
	}
	return b.String()
}

func (p *parser) errorf(tok lexer.Token, format string, args ...any) error {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Token:   tok,
		Input:   p.input,
	}
}

func (p *parser) unexpected(expected string) error {
	tok := p.current()
	got := tok.Type.String()
	if tok.Text != "" {
		got = fmt.Sprintf("%q", tok.Text)
	}
	return p.errorf(tok, "expected %s, got %s", expected, got)
}
