// Package parser turns a token stream into an expression tree.
//
// Operators of equal precedence are collected into flat ast.BinaryOp
// chains rather than nested binary nodes, so that the evaluator can
// decide the fold direction and short-circuit per chain.
package parser

import (
	"fmt"

	"github.com/funvibe/rush/internal/ast"
	"github.com/funvibe/rush/internal/lexer"
	"github.com/funvibe/rush/internal/pipeline"
	"github.com/funvibe/rush/internal/token"
)

// Error is a syntax error at a 1-based source position.
type Error struct {
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	errors []error
}

func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF && tokens[len(tokens)-1].Type != token.ILLEGAL {
		tokens = append(tokens, token.Token{Type: token.EOF})
	}
	p := &Parser{tokens: tokens, pos: -1}
	p.nextToken()
	return p
}

// Parse lexes and parses a single expression.
func Parse(input string) (ast.Expression, error) {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(pipeline.NewContext(input))
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors[0]
	}
	return ctx.AstRoot, nil
}

// ParseExpression parses the whole token stream as one expression.
func (p *Parser) ParseExpression() ast.Expression {
	if p.curTokenIs(token.EOF) {
		p.errorf(p.curToken, "empty expression")
		return nil
	}
	exp := p.parseExpression()
	if exp != nil && !p.curTokenIs(token.EOF) {
		p.unexpected(p.curToken)
		return nil
	}
	if len(p.errors) > 0 {
		return nil
	}
	return exp
}

func (p *Parser) Errors() []error {
	return p.errors
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.curToken = p.tokens[p.pos]
	p.peekToken = p.tokenAt(p.pos + 1)
}

func (p *Parser) tokenAt(i int) token.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

// expect consumes the current token if it has type t.
func (p *Parser) expect(t token.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	if p.curTokenIs(token.ILLEGAL) {
		p.unexpected(p.curToken)
		return false
	}
	p.errorf(p.curToken, "expected %q, got %s", string(t), describe(p.curToken))
	return false
}

func (p *Parser) errorf(tok token.Token, format string, args ...interface{}) {
	// Keep the first error only.
	if len(p.errors) > 0 {
		return
	}
	p.errors = append(p.errors, &Error{Line: tok.Line, Column: tok.Column, Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) unexpected(tok token.Token) {
	if tok.Type == token.ILLEGAL {
		p.errorf(tok, "%s", tok.Literal)
		return
	}
	p.errorf(tok, "unexpected %s", describe(tok))
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT, token.INT, token.FLOAT, token.STRING, token.REGEX:
		return fmt.Sprintf("%s %s", tok.Type, tok.Lexeme)
	}
	return fmt.Sprintf("%q", tok.Lexeme)
}
