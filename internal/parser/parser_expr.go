package parser

import (
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/lexer"
)

// parseExpr is the entry point for the 13-level precedence climb of
// spec.md section 4.3, lowest precedence first.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseLogicalOr()
	if _, ok := p.accept(lexer.ASSIGN); ok {
		tok := left.Token()
		right := p.parseAssignment() // right-associative
		e := &ast.AssignExpr{Target: left, Value: right}
		e.Tok = tok
		p.setParent(left, e)
		p.setParent(right, e)
		return e
	}
	return left
}

func (p *Parser) binaryLevel(next func() ast.Expr, ops ...lexer.Kind) ast.Expr {
	left := next()
	for {
		matched := false
		for _, op := range ops {
			if p.at(op) {
				tok := p.advance()
				right := next()
				e := &ast.BinaryExpr{Op: op, Left: left, Right: right}
				e.Tok = tok
				p.setParent(left, e)
				p.setParent(right, e)
				left = e
				matched = true
				break
			}
		}
		if !matched {
			return left
		}
	}
}

func (p *Parser) parseLogicalOr() ast.Expr {
	return p.binaryLevel(p.parseLogicalAnd, lexer.OROR)
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	return p.binaryLevel(p.parseEquality, lexer.ANDAND)
}

func (p *Parser) parseEquality() ast.Expr {
	return p.binaryLevel(p.parseRelational, lexer.EQEQ, lexer.NEQ)
}

func (p *Parser) parseRelational() ast.Expr {
	return p.binaryLevel(p.parseShift, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE)
}

func (p *Parser) parseShift() ast.Expr {
	return p.binaryLevel(p.parseAdditive, lexer.SHL, lexer.SHR)
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.binaryLevel(p.parseMultiplicative, lexer.PLUS, lexer.MINUS)
}

func (p *Parser) parseMultiplicative() ast.Expr {
	return p.binaryLevel(p.parseBitAnd, lexer.STAR, lexer.SLASH, lexer.PERCENT)
}

func (p *Parser) parseBitAnd() ast.Expr {
	return p.binaryLevel(p.parseBitOr, lexer.AMP)
}

func (p *Parser) parseBitOr() ast.Expr {
	return p.binaryLevel(p.parseBitXor, lexer.PIPE)
}

func (p *Parser) parseBitXor() ast.Expr {
	return p.binaryLevel(p.parseUnary, lexer.CARET)
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case lexer.PLUS, lexer.MINUS, lexer.NOT, lexer.TILDE, lexer.QUESTION, lexer.AT:
		tok := p.advance()
		operand := p.parseUnary()
		e := &ast.UnaryExpr{Op: tok.Kind, Operand: operand}
		e.Tok = tok
		p.setParent(operand, e)
		return e
	default:
		return p.parsePostfix()
	}
}

// isAsKeyword reports whether tok is the soft keyword `as` used for
// cast expressions; `as` is not a reserved word, so it must be
// recognized by literal spelling at the IDENT position.
func isAsKeyword(tok lexer.Token) bool {
	return tok.Kind == lexer.IDENT && tok.Literal == "as"
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.at(lexer.LPAREN):
			expr = p.parseCall(expr, nil)
		case p.at(lexer.LT) && p.looksLikeTypeArgCall():
			typeArgs := p.parseTypeArgList()
			expr = p.parseCall(expr, typeArgs)
		case p.at(lexer.LBRACKET):
			tok := p.advance()
			idx := p.parseExpr()
			p.expect(lexer.RBRACKET, "to close index expression")
			e := &ast.IndexExpr{Target: expr, Index: idx}
			e.Tok = tok
			p.setParent(expr, e)
			p.setParent(idx, e)
			expr = e
		case p.at(lexer.DOT):
			tok := p.advance()
			name := p.expect(lexer.IDENT, "after '.'")
			e := &ast.MemberExpr{Target: expr, Field: name.Literal}
			e.Tok = tok
			p.setParent(expr, e)
			expr = e
		case isAsKeyword(p.cur()):
			tok := p.advance()
			typ := p.parseTypeExpr()
			e := &ast.CastExpr{Value: expr, Type: typ}
			e.Tok = tok
			p.setParent(expr, e)
			p.setParent(typ, e)
			expr = e
		default:
			return expr
		}
	}
}

// looksLikeTypeArgCall peeks past a `<...>` run to see whether it is
// followed by `(`, disambiguating `f<T>(x)` from `a < b > (c)`.
func (p *Parser) looksLikeTypeArgCall() bool {
	depth := 0
	for i := 0; ; i++ {
		tok := p.peekAt(i)
		switch tok.Kind {
		case lexer.LT:
			depth++
		case lexer.GT:
			depth--
			if depth == 0 {
				return p.peekAt(i + 1).Kind == lexer.LPAREN
			}
		case lexer.SEMI, lexer.LBRACE, lexer.EOF:
			return false
		}
		if i > 64 {
			return false
		}
	}
}

func (p *Parser) parseTypeArgList() []ast.TypeExpr {
	p.expect(lexer.LT, "to open type argument list")
	var args []ast.TypeExpr
	if !p.at(lexer.GT) {
		args = append(args, p.parseTypeExpr())
		for {
			if _, ok := p.accept(lexer.COMMA); !ok {
				break
			}
			args = append(args, p.parseTypeExpr())
		}
	}
	p.expect(lexer.GT, "to close type argument list")
	return args
}

func (p *Parser) parseCall(callee ast.Expr, typeArgs []ast.TypeExpr) ast.Expr {
	tok := p.expect(lexer.LPAREN, "to open call arguments")
	var args []ast.Expr
	if !p.at(lexer.RPAREN) {
		args = append(args, p.parseExpr())
		for {
			if _, ok := p.accept(lexer.COMMA); !ok {
				break
			}
			args = append(args, p.parseExpr())
		}
	}
	p.expect(lexer.RPAREN, "to close call arguments")
	e := &ast.CallExpr{TypeArgs: typeArgs, Callee: callee, Args: args}
	e.Tok = tok
	p.setParent(callee, e)
	for _, a := range args {
		p.setParent(a, e)
	}
	return e
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case lexer.IDENT:
		p.advance()
		e := &ast.Identifier{Name: tok.Literal}
		e.Tok = tok
		return e
	case lexer.INT:
		p.advance()
		e := &ast.Literal{Kind: ast.IntLit, Value: tok.Literal}
		e.Tok = tok
		return e
	case lexer.FLOAT:
		p.advance()
		e := &ast.Literal{Kind: ast.FloatLit, Value: tok.Literal}
		e.Tok = tok
		return e
	case lexer.CHAR:
		p.advance()
		e := &ast.Literal{Kind: ast.CharLit, Value: tok.Literal}
		e.Tok = tok
		return e
	case lexer.STRING:
		p.advance()
		e := &ast.Literal{Kind: ast.StringLit, Value: tok.Literal}
		e.Tok = tok
		return e
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(lexer.RPAREN, "to close parenthesized expression")
		return inner
	case lexer.KW_NEW:
		return p.parseNewExpr()
	default:
		p.advance()
		return p.errorExpr(diag.PAR001, tok, "expected expression, found "+tok.Kind.String())
	}
}

func (p *Parser) parseNewExpr() ast.Expr {
	tok := p.expect(lexer.KW_NEW, "")
	typ := p.parseTypeExpr()
	p.expect(lexer.LBRACE, "to open composite literal")
	var fields []*ast.FieldInit
	for !p.at(lexer.RBRACE) && !p.atEnd() {
		name := p.expect(lexer.IDENT, "field name")
		p.expect(lexer.COLON, "after field name")
		value := p.parseExpr()
		fields = append(fields, &ast.FieldInit{Name: name.Literal, Value: value})
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
	}
	p.expect(lexer.RBRACE, "to close composite literal")
	e := &ast.NewExpr{Type: typ, Fields: fields}
	e.Tok = tok
	p.setParent(typ, e)
	for _, f := range fields {
		p.setParent(f.Value, e)
	}
	return e
}
