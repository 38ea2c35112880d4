package parser

import (
	"strconv"

	"github.com/funvibe/rush/internal/ast"
	"github.com/funvibe/rush/internal/config"
	"github.com/funvibe/rush/internal/token"
	"github.com/funvibe/rush/internal/value"
)

func (p *Parser) parseAtom() ast.Expression {
	tok := p.curToken
	switch tok.Type {
	case token.INT:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.errorf(tok, "integer literal %s out of range", tok.Lexeme)
			return nil
		}
		p.nextToken()
		return ast.NewScalar(value.Integer(n))
	case token.FLOAT:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.errorf(tok, "invalid float literal %s", tok.Lexeme)
			return nil
		}
		p.nextToken()
		return ast.NewScalar(value.Float(f))
	case token.STRING:
		p.nextToken()
		return ast.NewScalar(value.String(tok.Literal.(string)))
	case token.REGEX:
		re, err := value.NewRegex(tok.Literal.(string))
		if err != nil {
			p.errorf(tok, "invalid regular expression %s", tok.Lexeme)
			return nil
		}
		p.nextToken()
		return ast.NewScalar(re)
	case token.IDENT:
		p.nextToken()
		switch tok.Lexeme {
		case config.TrueLiteral:
			return ast.NewScalar(value.Boolean(true))
		case config.FalseLiteral:
			return ast.NewScalar(value.Boolean(false))
		case config.NilLiteral:
			return ast.NewScalar(value.Nil)
		}
		return ast.NewScalar(value.Symbol(tok.Lexeme))
	case token.LBRACKET:
		p.nextToken()
		elems := p.parseList(token.RBRACKET)
		if elems == nil {
			return nil
		}
		return &ast.ArrayLiteral{Elements: elems}
	case token.LBRACE:
		return p.parseObject()
	case token.LPAREN:
		return p.parseParen()
	}
	p.unexpected(tok)
	return nil
}

func (p *Parser) parseObject() ast.Expression {
	p.nextToken() // {
	obj := &ast.ObjectLiteral{}
	for !p.curTokenIs(token.RBRACE) {
		key := p.parseExpression()
		if key == nil || !p.expect(token.COLON) {
			return nil
		}
		val := p.parseExpression()
		if val == nil {
			return nil
		}
		obj.Attributes = append(obj.Attributes, ast.Attribute{Key: key, Value: val})
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	return obj
}

// parseParen parses a parenthesized expression or one of the curried
// operator forms (op), (op x) and (x op). Since - and + are also prefix
// operators, (- x) and (+ x) are plain parenthesized expressions.
func (p *Parser) parseParen() ast.Expression {
	open := p.curToken
	p.nextToken() // (

	if op := p.curToken; op.Type.IsBinaryOperator() {
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			p.nextToken()
			return p.curried(op, nil, nil)
		}
		if op.Type != token.MINUS && op.Type != token.PLUS {
			p.nextToken()
			right := p.parseUnary()
			if right == nil || !p.expect(token.RPAREN) {
				return nil
			}
			return p.curried(op, nil, right)
		}
	}

	if p.leftSection() {
		left := p.parseUnary()
		if left == nil {
			return nil
		}
		op := p.curToken
		if !op.Type.IsBinaryOperator() {
			p.unexpected(op)
			return nil
		}
		p.nextToken()
		if !p.expect(token.RPAREN) {
			return nil
		}
		return p.curried(op, left, nil)
	}

	if p.curTokenIs(token.RPAREN) {
		p.errorf(open, "empty parentheses")
		return nil
	}
	exp := p.parseExpression()
	if exp == nil || !p.expect(token.RPAREN) {
		return nil
	}
	return exp
}

// leftSection reports whether the parenthesized group starting at the
// current token ends with a binary operator right before its closing
// parenthesis, as in (x op).
func (p *Parser) leftSection() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RBRACKET, token.RBRACE:
			depth--
		case token.RPAREN:
			if depth == 0 {
				return i > p.pos && p.tokens[i-1].Type.IsBinaryOperator()
			}
			depth--
		case token.EOF, token.ILLEGAL:
			return false
		}
	}
	return false
}

func (p *Parser) curried(op token.Token, left, right ast.Expression) ast.Expression {
	if op.Type == token.ASSIGN {
		p.errorf(op, "operator %q cannot be curried", op.Lexeme)
		return nil
	}
	return &ast.CurriedBinaryOp{Op: op.Lexeme, Left: left, Right: right}
}
