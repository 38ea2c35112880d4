package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Literals
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	STRING TokenType = "STRING"
	REGEX  TokenType = "REGEX"

	// Operators
	ASSIGN   TokenType = "="
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	LT       TokenType = "<"
	LTE      TokenType = "<="
	GT       TokenType = ">"
	GTE      TokenType = ">="
	AT       TokenType = "@"
	AMP      TokenType = "&"
	AND      TokenType = "&&"
	OR       TokenType = "||"
	DOLLAR   TokenType = "$"
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	POWER    TokenType = "**"
	BANG     TokenType = "!"
	QUESTION TokenType = "?"

	// Delimiters
	COLON    TokenType = ":"
	COMMA    TokenType = ","
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
)

// Token is a lexical unit with its position in the source (1-based).
type Token struct {
	Type    TokenType
	Lexeme  string      // the source text of the token
	Literal interface{} // decoded literal for STRING and REGEX, else the lexeme
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// IsBinaryOperator reports whether the token can join a binary chain.
func (t TokenType) IsBinaryOperator() bool {
	switch t {
	case ASSIGN, EQ, NOT_EQ, LT, LTE, GT, GTE, AT, AMP, AND, OR, DOLLAR,
		PLUS, MINUS, ASTERISK, SLASH, PERCENT, POWER:
		return true
	}
	return false
}

// EndsOperand reports whether a token of this type can end an operand.
// A slash after such a token divides; anywhere else it opens a regex.
func (t TokenType) EndsOperand() bool {
	switch t {
	case IDENT, INT, FLOAT, STRING, REGEX, RPAREN, RBRACKET, RBRACE:
		return true
	}
	return false
}
