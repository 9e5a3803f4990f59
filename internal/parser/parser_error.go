package parser

import (
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/lexer"
)

func (p *Parser) errorf(tok lexer.Token, format string, args ...any) {
	p.sink.Errorf(diag.PAR001, p.file, tok, format, args...)
}

func (p *Parser) errorfCode(code string, tok lexer.Token, format string, args ...any) {
	p.sink.Errorf(code, p.file, tok, format, args...)
}

// synchronize discards tokens up to and including the next statement
// boundary (`;` or `}`), or EOF, so a single malformed statement does
// not prevent the rest of the file from parsing.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		tok := p.advance()
		if tok.Kind == lexer.SEMI || tok.Kind == lexer.RBRACE {
			return
		}
	}
}

// errorStmt records a parse error and returns an ErrorStmt node after
// resynchronizing.
func (p *Parser) errorStmt(code string, tok lexer.Token, msg string) *ast.ErrorStmt {
	p.errorfCode(code, tok, "%s", msg)
	stmt := &ast.ErrorStmt{Message: msg}
	stmt.Tok = tok
	p.synchronize()
	return stmt
}

// errorExpr records a parse error and returns an ErrorExpr node in
// place, without resynchronizing (the caller is mid-expression).
func (p *Parser) errorExpr(code string, tok lexer.Token, msg string) *ast.ErrorExpr {
	p.errorfCode(code, tok, "%s", msg)
	expr := &ast.ErrorExpr{Message: msg}
	expr.Tok = tok
	return expr
}
