package parser

import (
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/lexer"
)

// parseTopLevelStmt dispatches on the top-level statement set of
// spec.md section 4.3: use, val, var, def, fun, ext, str, uni.
func (p *Parser) parseTopLevelStmt() ast.Stmt {
	switch p.cur().Kind {
	case lexer.KW_USE:
		return p.parseUseDecl()
	case lexer.KW_VAL:
		return p.parseValDecl()
	case lexer.KW_VAR:
		return p.parseVarDecl()
	case lexer.KW_DEF:
		return p.parseDefDecl()
	case lexer.KW_FUN:
		return p.parseFunDecl()
	case lexer.KW_EXT:
		return p.parseExtDecl()
	case lexer.KW_STR:
		t := p.parseStructType(true)
		p.accept(lexer.SEMI)
		d := &ast.TypeDecl{Type: t}
		d.Tok = t.Token()
		return d
	case lexer.KW_UNI:
		t := p.parseUnionType(true)
		p.accept(lexer.SEMI)
		d := &ast.TypeDecl{Type: t}
		d.Tok = t.Token()
		return d
	case lexer.KW_OR:
		tok := p.advance()
		return p.errorStmt(diag.PAR004, tok, "'or' without a leading 'if'")
	default:
		tok := p.cur()
		p.advance()
		return p.errorStmt(diag.PAR001, tok, "unexpected token at top level: "+tok.Kind.String())
	}
}

func (p *Parser) parseUseDecl() ast.Stmt {
	tok := p.expect(lexer.KW_USE, "")
	var alias string
	if p.at(lexer.IDENT) && p.peekAt(1).Kind == lexer.COLON {
		alias = p.advance().Literal
		p.advance() // ':'
	}
	var path []string
	path = append(path, p.expect(lexer.IDENT, "in use path").Literal)
	for {
		if _, ok := p.accept(lexer.DOT); !ok {
			break
		}
		path = append(path, p.expect(lexer.IDENT, "in use path").Literal)
	}
	p.expect(lexer.SEMI, "after use declaration")
	d := &ast.UseDecl{Path: path, Alias: alias}
	d.Tok = tok
	if len(path) == 0 || path[0] == "" {
		p.errorfCode(diag.PAR006, tok, "invalid use declaration")
	}
	return d
}

func (p *Parser) parseValDecl() ast.Stmt {
	tok := p.expect(lexer.KW_VAL, "")
	name := p.expect(lexer.IDENT, "in val declaration")
	var typ ast.TypeExpr
	if _, ok := p.accept(lexer.COLON); ok {
		typ = p.parseTypeExpr()
	}
	p.expect(lexer.ASSIGN, "in val declaration (vals require an initializer)")
	value := p.parseExpr()
	p.expect(lexer.SEMI, "after val declaration")
	d := &ast.ValDecl{Name: name.Literal, Type: typ, Value: value}
	d.Tok = tok
	p.setParent(typ, d)
	p.setParent(value, d)
	return d
}

func (p *Parser) parseVarDecl() ast.Stmt {
	tok := p.expect(lexer.KW_VAR, "")
	name := p.expect(lexer.IDENT, "in var declaration")
	var typ ast.TypeExpr
	if _, ok := p.accept(lexer.COLON); ok {
		typ = p.parseTypeExpr()
	}
	var value ast.Expr
	if _, ok := p.accept(lexer.ASSIGN); ok {
		value = p.parseExpr()
	}
	p.expect(lexer.SEMI, "after var declaration")
	d := &ast.VarDecl{Name: name.Literal, Type: typ, Value: value}
	d.Tok = tok
	p.setParent(typ, d)
	p.setParent(value, d)
	return d
}

func (p *Parser) parseDefDecl() ast.Stmt {
	tok := p.expect(lexer.KW_DEF, "")
	name := p.expect(lexer.IDENT, "in def declaration")
	p.expect(lexer.COLON, "after def name")
	typ := p.parseTypeExpr()
	p.expect(lexer.SEMI, "after def declaration")
	d := &ast.DefDecl{Name: name.Literal, Type: typ}
	d.Tok = tok
	p.setParent(typ, d)
	return d
}

func (p *Parser) parseParamList() []*ast.Param {
	p.expect(lexer.LPAREN, "to open parameter list")
	var params []*ast.Param
	if !p.at(lexer.RPAREN) {
		for {
			name := p.expect(lexer.IDENT, "parameter name")
			p.expect(lexer.COLON, "after parameter name")
			typ := p.parseTypeExpr()
			params = append(params, &ast.Param{Name: name.Literal, Type: typ})
			if _, ok := p.accept(lexer.COMMA); !ok {
				break
			}
		}
	}
	p.expect(lexer.RPAREN, "to close parameter list")
	return params
}

func (p *Parser) parseFunDecl() ast.Stmt {
	tok := p.expect(lexer.KW_FUN, "")
	name := p.expect(lexer.IDENT, "in function declaration")
	typeParams := p.parseTypeParamList()
	params := p.parseParamList()
	var ret ast.TypeExpr
	if _, ok := p.accept(lexer.COLON); ok {
		ret = p.parseTypeExpr()
	}
	body := p.parseBlockStmt()
	d := &ast.FunDecl{
		Name:       name.Literal,
		TypeParams: typeParams,
		Params:     params,
		Return:     ret,
		Body:       body,
		IsExport:   len(name.Literal) > 0 && name.Literal[0] != '_',
	}
	d.Tok = tok
	p.setParent(ret, d)
	p.setParent(body, d)
	return d
}

func (p *Parser) parseExtDecl() ast.Stmt {
	tok := p.expect(lexer.KW_EXT, "")
	name := p.expect(lexer.IDENT, "in external declaration")
	p.expect(lexer.LPAREN, "to open external parameter list")
	var params []*ast.Param
	variadic := false
	if !p.at(lexer.RPAREN) {
		for {
			if p.isEllipsis() {
				variadic = true
				break
			}
			pname := p.expect(lexer.IDENT, "parameter name")
			p.expect(lexer.COLON, "after parameter name")
			typ := p.parseTypeExpr()
			params = append(params, &ast.Param{Name: pname.Literal, Type: typ})
			if _, ok := p.accept(lexer.COMMA); !ok {
				break
			}
		}
	}
	p.expect(lexer.RPAREN, "to close external parameter list")
	var ret ast.TypeExpr
	if _, ok := p.accept(lexer.COLON); ok {
		ret = p.parseTypeExpr()
	}
	p.expect(lexer.SEMI, "after external declaration")
	d := &ast.ExtDecl{Name: name.Literal, CName: name.Literal, Params: params, Return: ret, Variadic: variadic}
	d.Tok = tok
	p.setParent(ret, d)
	return d
}

// ---------------------------------------------------------------------
// Function-body statements
// ---------------------------------------------------------------------

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	tok := p.expect(lexer.LBRACE, "to open block")
	b := &ast.BlockStmt{}
	b.Tok = tok
	for !p.at(lexer.RBRACE) && !p.atEnd() {
		stmt := p.parseStmt()
		if stmt == nil {
			continue
		}
		p.setParent(stmt, b)
		b.Stmts = append(b.Stmts, stmt)
	}
	p.expect(lexer.RBRACE, "to close block")
	return b
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case lexer.KW_VAL:
		return p.parseValDecl()
	case lexer.KW_VAR:
		return p.parseVarDecl()
	case lexer.KW_DEF:
		return p.parseDefDecl()
	case lexer.KW_IF:
		return p.parseIfStmt()
	case lexer.KW_OR:
		tok := p.advance()
		return p.errorStmt(diag.PAR004, tok, "'or' without a leading 'if'")
	case lexer.KW_FOR:
		return p.parseForStmt()
	case lexer.KW_BRK:
		tok := p.advance()
		p.expect(lexer.SEMI, "after 'brk'")
		s := &ast.BrkStmt{}
		s.Tok = tok
		return s
	case lexer.KW_CNT:
		tok := p.advance()
		p.expect(lexer.SEMI, "after 'cnt'")
		s := &ast.CntStmt{}
		s.Tok = tok
		return s
	case lexer.KW_RET:
		return p.parseRetStmt()
	case lexer.KW_ASM:
		return p.parseAsmStmt()
	case lexer.LBRACE:
		return p.parseBlockStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseIfStmt parses `if cond { } (or cond { })* (or { })?`. Each `or`
// with a condition becomes a nested IfStmt hung off the previous
// clause's Or field; a final bare `or { }` is the else branch.
func (p *Parser) parseIfStmt() ast.Stmt {
	tok := p.expect(lexer.KW_IF, "")
	cond := p.parseExpr()
	then := p.parseBlockStmt()
	root := &ast.IfStmt{Cond: cond, Then: then}
	root.Tok = tok
	p.setParent(cond, root)
	p.setParent(then, root)

	cur := root
	for {
		orTok, ok := p.accept(lexer.KW_OR)
		if !ok {
			break
		}
		if p.at(lexer.LBRACE) {
			block := p.parseBlockStmt()
			p.setParent(block, cur)
			cur.Or = block
			break
		}
		cond2 := p.parseExpr()
		then2 := p.parseBlockStmt()
		next := &ast.IfStmt{Cond: cond2, Then: then2}
		next.Tok = orTok
		p.setParent(cond2, next)
		p.setParent(then2, next)
		p.setParent(next, cur)
		cur.Or = next
		cur = next
	}
	return root
}

func (p *Parser) parseForStmt() ast.Stmt {
	tok := p.expect(lexer.KW_FOR, "")
	p.expect(lexer.LPAREN, "to open for-clause")

	var init ast.Stmt
	if !p.at(lexer.SEMI) {
		init = p.parseSimpleStmt()
	}
	p.expect(lexer.SEMI, "after for-init")

	var cond ast.Expr
	if !p.at(lexer.SEMI) {
		cond = p.parseExpr()
	}
	p.expect(lexer.SEMI, "after for-condition")

	var post ast.Stmt
	if !p.at(lexer.RPAREN) {
		post = p.parseSimpleStmt()
	}
	p.expect(lexer.RPAREN, "to close for-clause")

	body := p.parseBlockStmt()
	s := &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: body}
	s.Tok = tok
	p.setParent(init, s)
	p.setParent(cond, s)
	p.setParent(post, s)
	p.setParent(body, s)
	return s
}

// parseSimpleStmt parses the restricted statement forms legal in a
// for-clause: a val/var declaration or a bare expression, without a
// trailing semicolon (the caller consumes the clause's separators).
func (p *Parser) parseSimpleStmt() ast.Stmt {
	switch p.cur().Kind {
	case lexer.KW_VAL:
		tok := p.expect(lexer.KW_VAL, "")
		name := p.expect(lexer.IDENT, "in val declaration")
		p.expect(lexer.ASSIGN, "in val declaration")
		value := p.parseExpr()
		d := &ast.ValDecl{Name: name.Literal, Value: value}
		d.Tok = tok
		p.setParent(value, d)
		return d
	case lexer.KW_VAR:
		tok := p.expect(lexer.KW_VAR, "")
		name := p.expect(lexer.IDENT, "in var declaration")
		var value ast.Expr
		if _, ok := p.accept(lexer.ASSIGN); ok {
			value = p.parseExpr()
		}
		d := &ast.VarDecl{Name: name.Literal, Value: value}
		d.Tok = tok
		p.setParent(value, d)
		return d
	default:
		tok := p.cur()
		x := p.parseExpr()
		s := &ast.ExprStmt{X: x}
		s.Tok = tok
		p.setParent(x, s)
		return s
	}
}

func (p *Parser) parseRetStmt() ast.Stmt {
	tok := p.expect(lexer.KW_RET, "")
	var value ast.Expr
	if !p.at(lexer.SEMI) {
		value = p.parseExpr()
	}
	p.expect(lexer.SEMI, "after 'ret'")
	s := &ast.RetStmt{Value: value}
	s.Tok = tok
	p.setParent(value, s)
	return s
}

// parseAsmStmt captures an inline-assembly block's contents verbatim as
// the joined literal text of the tokens between its braces; the body is
// opaque to the semantic pipeline and handed to the backend as-is.
func (p *Parser) parseAsmStmt() ast.Stmt {
	tok := p.expect(lexer.KW_ASM, "")
	p.expect(lexer.LBRACE, "to open asm block")
	body := ""
	for !p.at(lexer.RBRACE) && !p.atEnd() {
		if body != "" {
			body += " "
		}
		body += p.advance().Literal
	}
	p.expect(lexer.RBRACE, "to close asm block")
	p.expect(lexer.SEMI, "after asm block")
	s := &ast.AsmStmt{Body: body}
	s.Tok = tok
	return s
}

func (p *Parser) parseExprStmt() ast.Stmt {
	tok := p.cur()
	x := p.parseExpr()
	p.expect(lexer.SEMI, "after expression statement")
	s := &ast.ExprStmt{X: x}
	s.Tok = tok
	p.setParent(x, s)
	return s
}
