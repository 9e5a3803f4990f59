package parser

import (
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/lexer"
)

// parseTypeExpr parses one syntactic type: `?T` pointer, `[T]`/`[T; N]`
// array, `fun(...) -> T` function type, `str`/`uni` inline declarations,
// or a plain or generic type name.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	switch p.cur().Kind {
	case lexer.QUESTION:
		tok := p.advance()
		base := p.parseTypeExpr()
		t := &ast.PointerType{Base: base}
		t.Tok = tok
		p.setParent(base, t)
		return t

	case lexer.LBRACKET:
		tok := p.advance()
		elem := p.parseTypeExpr()
		var size ast.Expr
		if _, ok := p.accept(lexer.SEMI); ok {
			size = p.parseExpr()
		}
		p.expect(lexer.RBRACKET, "to close array type")
		t := &ast.ArrayType{Element: elem, Size: size}
		t.Tok = tok
		p.setParent(elem, t)
		p.setParent(size, t)
		return t

	case lexer.KW_FUN:
		return p.parseFuncType()

	case lexer.KW_STR:
		return p.parseStructType(false)

	case lexer.KW_UNI:
		return p.parseUnionType(false)

	case lexer.IDENT:
		tok := p.advance()
		if p.at(lexer.LT) {
			args := p.parseTypeArgList()
			t := &ast.GenericType{Name: tok.Literal, Args: args}
			t.Tok = tok
			return t
		}
		t := &ast.TypeName{Name: tok.Literal}
		t.Tok = tok
		return t

	default:
		tok := p.advance()
		p.errorfCode(diag.PAR005, tok, "expected type expression, found %s", tok.Kind)
		t := &ast.TypeName{Name: "<error>"}
		t.Tok = tok
		return t
	}
}

// isEllipsis consumes three consecutive `.` tokens (the lexer has no
// single compound token for `...`) and reports whether it found one.
func (p *Parser) isEllipsis() bool {
	if p.cur().Kind == lexer.DOT && p.peekAt(1).Kind == lexer.DOT && p.peekAt(2).Kind == lexer.DOT {
		p.advance()
		p.advance()
		p.advance()
		return true
	}
	return false
}

func (p *Parser) parseFuncType() ast.TypeExpr {
	tok := p.expect(lexer.KW_FUN, "")
	p.expect(lexer.LPAREN, "to open function type parameters")
	var params []ast.TypeExpr
	variadic := false
	if !p.at(lexer.RPAREN) {
		for {
			if p.isEllipsis() {
				variadic = true
				break
			}
			params = append(params, p.parseTypeExpr())
			if _, ok := p.accept(lexer.COMMA); !ok {
				break
			}
		}
	}
	p.expect(lexer.RPAREN, "to close function type parameters")
	var ret ast.TypeExpr
	if _, ok := p.accept(lexer.ARROW); ok {
		ret = p.parseTypeExpr()
	} else {
		void := &ast.TypeName{Name: "void"}
		void.Tok = p.cur()
		ret = void
	}
	t := &ast.FuncType{Params: params, Return: ret, Variadic: variadic}
	t.Tok = tok
	for _, param := range params {
		p.setParent(param, t)
	}
	p.setParent(ret, t)
	return t
}

func (p *Parser) parseTypeParamList() []string {
	if !p.at(lexer.LT) {
		return nil
	}
	p.advance()
	var names []string
	for !p.at(lexer.GT) && !p.atEnd() {
		names = append(names, p.expect(lexer.IDENT, "type parameter name").Literal)
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
	}
	p.expect(lexer.GT, "to close type parameter list")
	return names
}

func (p *Parser) parseFieldList() []*ast.StructTypeField {
	p.expect(lexer.LBRACE, "to open field list")
	var fields []*ast.StructTypeField
	for !p.at(lexer.RBRACE) && !p.atEnd() {
		name := p.expect(lexer.IDENT, "field name")
		p.expect(lexer.COLON, "after field name")
		typ := p.parseTypeExpr()
		p.expect(lexer.SEMI, "after field declaration")
		fields = append(fields, &ast.StructTypeField{Name: name.Literal, Type: typ})
	}
	p.expect(lexer.RBRACE, "to close field list")
	return fields
}

func (p *Parser) parseStructType(named bool) ast.TypeExpr {
	tok := p.expect(lexer.KW_STR, "")
	var name string
	if named || p.at(lexer.IDENT) {
		if tok2, ok := p.accept(lexer.IDENT); ok {
			name = tok2.Literal
		}
	}
	typeParams := p.parseTypeParamList()
	fields := p.parseFieldList()
	t := &ast.StructType{Name: name, TypeParams: typeParams, Fields: fields}
	t.Tok = tok
	return t
}

func (p *Parser) parseUnionType(named bool) ast.TypeExpr {
	tok := p.expect(lexer.KW_UNI, "")
	var name string
	if named || p.at(lexer.IDENT) {
		if tok2, ok := p.accept(lexer.IDENT); ok {
			name = tok2.Literal
		}
	}
	typeParams := p.parseTypeParamList()
	fields := p.parseFieldList()
	t := &ast.UnionType{Name: name, TypeParams: typeParams, Fields: fields}
	t.Tok = tok
	return t
}
