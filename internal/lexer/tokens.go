package lexer

// TokenType classifies a lexical token. Keyword recognition happens in the
// parser; the lexer only classifies shape.
type TokenType int

const (
	EOF TokenType = iota
	NUMBER
	STRING
	NAME
	OPERATOR
	DELIMITER
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case NAME:
		return "NAME"
	case OPERATOR:
		return "OPERATOR"
	case DELIMITER:
		return "DELIMITER"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexical token with its 1-based source position.
type Token struct {
	Type   TokenType
	Text   string
	Number float64 // parsed value for NUMBER tokens
	Line   int
	Column int
}

// singleDelims are the one-character delimiters.
var singleDelims = map[byte]bool{
	'(': true, ')': true, '[': true, ']': true,
	'{': true, '}': true, ',': true, ';': true, ':': true,
}

// twoCharOps are the two-character operators, checked before single ones.
var twoCharOps = map[string]bool{
	"->": true, "<-": true,
	"==": true, "!=": true, "<=": true, ">=": true,
	"&&": true, "||": true,
}

// singleOps are the one-character operators.
var singleOps = map[byte]bool{
	'+': true, '-': true, '*': true, '/': true, '^': true,
	'<': true, '>': true, '=': true, '!': true, '.': true,
}
