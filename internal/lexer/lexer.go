// Package lexer converts script source text into a token stream, tracking
// line and column for diagnostics.
package lexer

import (
	"fmt"
	"strconv"
)

// ScanError is a lexical error with its 1-based source position.
type ScanError struct {
	Msg    string
	Line   int
	Column int
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Tokenize scans the whole source into tokens, ending with an EOF token.
// Comments ('#' to end of line, '/* ... */') and whitespace are stripped;
// positions are tracked exactly so later errors point at the right place.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{input: src, line: 1, column: 1}
	return l.run()
}

type lexer struct {
	input  string
	pos    int
	line   int
	column int
	tokens []Token
}

func (l *lexer) run() ([]Token, error) {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()
		case c == '\n':
			l.advance()
		case c == '#':
			l.skipLineComment()
		case c == '/' && l.peek(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return nil, err
			}
		case c >= '0' && c <= '9', c == '.' && isDigit(l.peek(1)):
			if err := l.lexNumber(); err != nil {
				return nil, err
			}
		case c == '"' || c == '\'':
			l.lexString(c)
		case isNameStart(c):
			l.lexName()
		case singleDelims[c]:
			l.emit(DELIMITER, string(c), 0)
			l.advance()
		default:
			if two := l.peekTwo(); twoCharOps[two] {
				l.emit(OPERATOR, two, 0)
				l.advance()
				l.advance()
				break
			}
			if singleOps[c] {
				l.emit(OPERATOR, string(c), 0)
				l.advance()
				break
			}
			return nil, &ScanError{
				Msg:    fmt.Sprintf("unrecognized character %q", c),
				Line:   l.line,
				Column: l.column,
			}
		}
	}
	l.emit(EOF, "", 0)
	return l.tokens, nil
}

func (l *lexer) advance() {
	if l.pos < len(l.input) && l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func (l *lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *lexer) peekTwo() string {
	if l.pos+1 >= len(l.input) {
		return ""
	}
	return l.input[l.pos : l.pos+2]
}

func (l *lexer) emit(t TokenType, text string, num float64) {
	l.tokens = append(l.tokens, Token{
		Type:   t,
		Text:   text,
		Number: num,
		Line:   l.line,
		Column: l.column,
	})
}

func (l *lexer) skipLineComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
}

func (l *lexer) skipBlockComment() error {
	startLine, startCol := l.line, l.column
	l.advance() // '/'
	l.advance() // '*'
	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.peek(1) == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return &ScanError{Msg: "unterminated block comment", Line: startLine, Column: startCol}
}

func (l *lexer) lexNumber() error {
	startLine, startCol := l.line, l.column
	start := l.pos
	sawDot := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if isDigit(c) {
			l.advance()
			continue
		}
		if c == '.' {
			if isNameStart(l.peek(1)) {
				// Property access on a number literal; leave the dot alone.
				break
			}
			if sawDot {
				return &ScanError{
					Msg:    "malformed number: more than one decimal point",
					Line:   startLine,
					Column: startCol,
				}
			}
			sawDot = true
			l.advance()
			continue
		}
		break
	}
	text := l.input[start:l.pos]
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return &ScanError{Msg: fmt.Sprintf("malformed number %q", text), Line: startLine, Column: startCol}
	}
	l.tokens = append(l.tokens, Token{Type: NUMBER, Text: text, Number: num, Line: startLine, Column: startCol})
	return nil
}

// lexString scans a quoted string with backslash escapes. An unterminated
// string at end of input truncates to what was collected rather than
// erroring.
func (l *lexer) lexString(quote byte) {
	startLine, startCol := l.line, l.column
	l.advance() // opening quote
	var out []byte
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == quote {
			l.advance()
			break
		}
		if c == '\\' && l.pos+1 < len(l.input) {
			esc := l.peek(1)
			l.advance()
			switch esc {
			case 'n':
				out = append(out, '\n')
			case '\\', '"', '\'':
				out = append(out, esc)
			default:
				out = append(out, '\\', esc)
			}
			l.advance()
			continue
		}
		out = append(out, c)
		l.advance()
	}
	l.tokens = append(l.tokens, Token{Type: STRING, Text: string(out), Line: startLine, Column: startCol})
}

func (l *lexer) lexName() {
	startLine, startCol := l.line, l.column
	start := l.pos
	for l.pos < len(l.input) && isNamePart(l.input[l.pos]) {
		l.advance()
	}
	l.tokens = append(l.tokens, Token{
		Type:   NAME,
		Text:   l.input[start:l.pos],
		Line:   startLine,
		Column: startCol,
	})
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNamePart(c byte) bool { return isNameStart(c) || isDigit(c) }
