package parser

import (
	"github.com/funvibe/rush/internal/ast"
	"github.com/funvibe/rush/internal/token"
)

// level is one precedence tier of binary operators.
type level struct {
	assoc ast.Associativity
	ops   []token.TokenType
}

// Tiers from loosest to tightest. The conditional sits between the
// functional and logical tiers and is handled by parseConditional.
var (
	assignmentLevel = level{ast.Right, []token.TokenType{token.ASSIGN}}
	functionalLevel = level{ast.Left, []token.TokenType{token.AMP, token.DOLLAR}}
	logicalLevel    = level{ast.Left, []token.TokenType{token.AND, token.OR}}
	comparisonLevel = level{ast.Left, []token.TokenType{token.LT, token.LTE, token.GT, token.GTE, token.EQ, token.NOT_EQ, token.AT}}
	additiveLevel   = level{ast.Left, []token.TokenType{token.PLUS, token.MINUS}}
	termLevel       = level{ast.Left, []token.TokenType{token.ASTERISK, token.SLASH, token.PERCENT}}
	powerLevel      = level{ast.Right, []token.TokenType{token.POWER}}
)

func (l level) has(t token.TokenType) bool {
	for _, op := range l.ops {
		if op == t {
			return true
		}
	}
	return false
}

func (p *Parser) parseExpression() ast.Expression {
	return p.parseChain(assignmentLevel, p.parseFunctional)
}

func (p *Parser) parseFunctional() ast.Expression {
	return p.parseChain(functionalLevel, p.parseConditional)
}

func (p *Parser) parseLogical() ast.Expression {
	return p.parseChain(logicalLevel, p.parseComparison)
}

func (p *Parser) parseComparison() ast.Expression {
	return p.parseChain(comparisonLevel, p.parseAdditive)
}

func (p *Parser) parseAdditive() ast.Expression {
	return p.parseChain(additiveLevel, p.parseTerm)
}

func (p *Parser) parseTerm() ast.Expression {
	return p.parseChain(termLevel, p.parsePower)
}

func (p *Parser) parsePower() ast.Expression {
	return p.parseChain(powerLevel, p.parseUnary)
}

// parseChain collects operand (op operand)* for one tier into a flat
// chain. A single operand is returned as is.
func (p *Parser) parseChain(l level, operand func() ast.Expression) ast.Expression {
	first := operand()
	if first == nil {
		return nil
	}
	operands := []ast.Expression{first}
	var ops []string
	for l.has(p.curToken.Type) {
		ops = append(ops, p.curToken.Lexeme)
		p.nextToken()
		next := operand()
		if next == nil {
			return nil
		}
		operands = append(operands, next)
	}
	if len(ops) == 0 {
		return first
	}
	return ast.NewChain(l.assoc, operands, ops)
}

// parseConditional parses cond ? then : else. The else branch nests to
// the right: a ? b : c ? d : e is a ? b : (c ? d : e).
func (p *Parser) parseConditional() ast.Expression {
	cond := p.parseLogical()
	if cond == nil || !p.curTokenIs(token.QUESTION) {
		return cond
	}
	p.nextToken()
	then := p.parseExpression()
	if then == nil || !p.expect(token.COLON) {
		return nil
	}
	els := p.parseConditional()
	if els == nil {
		return nil
	}
	return &ast.Conditional{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.curToken.Type {
	case token.MINUS, token.PLUS, token.BANG:
		op := p.curToken.Lexeme
		p.nextToken()
		arg := p.parseUnary()
		if arg == nil {
			return nil
		}
		return &ast.UnaryOp{Op: op, Arg: arg}
	}
	return p.parsePostfix()
}

// parsePostfix parses an atom followed by any number of subscripts and
// call argument lists.
func (p *Parser) parsePostfix() ast.Expression {
	exp := p.parseAtom()
	for exp != nil {
		switch p.curToken.Type {
		case token.LBRACKET:
			exp = p.parseSubscript(exp)
		case token.LPAREN:
			exp = p.parseCall(exp)
		default:
			return exp
		}
	}
	return nil
}

func (p *Parser) parseSubscript(object ast.Expression) ast.Expression {
	p.nextToken() // [

	var lo ast.Expression
	if !p.curTokenIs(token.COLON) {
		lo = p.parseExpression()
		if lo == nil {
			return nil
		}
		if p.curTokenIs(token.RBRACKET) {
			p.nextToken()
			return &ast.Subscript{Object: object, Index: &ast.PointIndex{Index: lo}}
		}
	}
	if !p.expect(token.COLON) {
		return nil
	}

	var hi ast.Expression
	if !p.curTokenIs(token.RBRACKET) {
		hi = p.parseExpression()
		if hi == nil {
			return nil
		}
	}
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return &ast.Subscript{Object: object, Index: &ast.RangeIndex{Lo: lo, Hi: hi}}
}

func (p *Parser) parseCall(fn ast.Expression) ast.Expression {
	p.nextToken() // (
	args := p.parseList(token.RPAREN)
	if args == nil {
		return nil
	}
	return &ast.FunctionCall{Func: fn, Args: args}
}

// parseList parses comma separated expressions up to and including the
// closing token. A trailing comma is allowed. The result is non-nil on
// success, even when empty.
func (p *Parser) parseList(end token.TokenType) []ast.Expression {
	list := []ast.Expression{}
	for !p.curTokenIs(end) {
		exp := p.parseExpression()
		if exp == nil {
			return nil
		}
		list = append(list, exp)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expect(end) {
		return nil
	}
	return list
}
