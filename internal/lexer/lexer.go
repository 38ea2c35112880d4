package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/rush/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
	prev         token.TokenType
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0, prev: token.ILLEGAL}
	l.readChar()
	return l
}

// Tokenize returns every token of the input, ending with EOF.
// Lexing stops at the first ILLEGAL token, which is returned last.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF || tok.Type == token.ILLEGAL {
			return tokens
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	tok := l.nextToken()
	l.prev = tok.Type
	return tok
}

func (l *Lexer) nextToken() token.Token {
	l.skipWhitespace()

	line, column := l.line, l.column
	two := func(t token.TokenType) token.Token {
		lexeme := string(l.ch) + string(l.peekChar())
		l.readChar()
		l.readChar()
		return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column}
	}
	one := func(t token.TokenType) token.Token {
		lexeme := string(l.ch)
		l.readChar()
		return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column}
	}

	switch l.ch {
	case 0:
		if l.position >= len(l.input) {
			return token.Token{Type: token.EOF, Line: line, Column: column}
		}
		return l.illegal(line, column, "unexpected NUL character")
	case '=':
		if l.peekChar() == '=' {
			return two(token.EQ)
		}
		return one(token.ASSIGN)
	case '!':
		if l.peekChar() == '=' {
			return two(token.NOT_EQ)
		}
		return one(token.BANG)
	case '<':
		if l.peekChar() == '=' {
			return two(token.LTE)
		}
		return one(token.LT)
	case '>':
		if l.peekChar() == '=' {
			return two(token.GTE)
		}
		return one(token.GT)
	case '&':
		if l.peekChar() == '&' {
			return two(token.AND)
		}
		return one(token.AMP)
	case '|':
		if l.peekChar() == '|' {
			return two(token.OR)
		}
		return l.illegal(line, column, "unexpected character '|' (did you mean '||'?)")
	case '*':
		if l.peekChar() == '*' {
			return two(token.POWER)
		}
		return one(token.ASTERISK)
	case '/':
		if l.startsRegex() {
			return l.readRegex(line, column)
		}
		return one(token.SLASH)
	case '@':
		return one(token.AT)
	case '$':
		return one(token.DOLLAR)
	case '+':
		return one(token.PLUS)
	case '-':
		return one(token.MINUS)
	case '%':
		return one(token.PERCENT)
	case '?':
		return one(token.QUESTION)
	case ':':
		return one(token.COLON)
	case ',':
		return one(token.COMMA)
	case '(':
		return one(token.LPAREN)
	case ')':
		return one(token.RPAREN)
	case '[':
		return one(token.LBRACKET)
	case ']':
		return one(token.RBRACKET)
	case '{':
		return one(token.LBRACE)
	case '}':
		return one(token.RBRACE)
	case '"', '\'':
		return l.readString(line, column)
	}

	if isIdentStart(l.ch) {
		start := l.position
		for isIdentStart(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		ident := l.input[start:l.position]
		return token.Token{Type: token.IDENT, Lexeme: ident, Literal: ident, Line: line, Column: column}
	}
	if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
		return l.readNumber(line, column)
	}
	return l.illegal(line, column, fmt.Sprintf("unexpected character %q", l.ch))
}

func (l *Lexer) illegal(line, column int, msg string) token.Token {
	return token.Token{Type: token.ILLEGAL, Lexeme: string(l.ch), Literal: msg, Line: line, Column: column}
}

func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// startsRegex decides whether the slash under the cursor opens a regex
// literal rather than being the division operator. A regex cannot start
// with whitespace or ')', which keeps (/) and (/ 2) usable as curried
// division.
func (l *Lexer) startsRegex() bool {
	if l.prev.EndsOperand() {
		return false
	}
	next := l.peekChar()
	return next != ')' && !unicode.IsSpace(next) && next != 0
}

func (l *Lexer) readNumber(line, column int) token.Token {
	start := l.position
	typ := token.INT
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		typ = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		rest := l.input[l.readPosition:]
		if len(rest) > 0 && (isDigit(rune(rest[0])) ||
			(len(rest) > 1 && (rest[0] == '+' || rest[0] == '-') && isDigit(rune(rest[1])))) {
			typ = token.FLOAT
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	lexeme := l.input[start:l.position]
	return token.Token{Type: typ, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column}
}

func (l *Lexer) readString(line, column int) token.Token {
	quote := l.ch
	start := l.position
	l.readChar()

	var sb strings.Builder
	for l.ch != quote {
		if l.ch == 0 && l.position >= len(l.input) {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:], Literal: "unterminated string literal", Line: line, Column: column}
		}
		if l.ch == '\\' {
			l.readChar()
			r, ok := unescape(l.ch)
			if !ok {
				return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.readPosition], Literal: fmt.Sprintf("invalid escape sequence \\%c", l.ch), Line: line, Column: column}
			}
			sb.WriteRune(r)
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar()
	return token.Token{Type: token.STRING, Lexeme: l.input[start:l.position], Literal: sb.String(), Line: line, Column: column}
}

func unescape(ch rune) (rune, bool) {
	switch ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '"', '\'':
		return ch, true
	}
	return 0, false
}

// readRegex reads /pattern/. Only an escaped slash is unescaped;
// other backslash sequences belong to the pattern.
func (l *Lexer) readRegex(line, column int) token.Token {
	start := l.position
	l.readChar()

	var sb strings.Builder
	for l.ch != '/' {
		if l.ch == 0 && l.position >= len(l.input) {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:], Literal: "unterminated regular expression", Line: line, Column: column}
		}
		if l.ch == '\\' && l.peekChar() == '/' {
			l.readChar()
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar()
	return token.Token{Type: token.REGEX, Lexeme: l.input[start:l.position], Literal: sb.String(), Line: line, Column: column}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
