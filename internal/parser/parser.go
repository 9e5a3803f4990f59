// Package parser turns a mach token stream into an AST, recovering from
// syntax errors by recording an error node and resynchronizing at the
// next statement boundary rather than abandoning the file.
package parser

import (
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/lexer"
)

// Parser is a single-file recursive-descent/Pratt parser. It is not
// reusable across files; construct a fresh one per source file.
type Parser struct {
	toks []lexer.Token
	pos  int
	file string
	sink *diag.Sink
}

// New builds a Parser over a pre-scanned token stream.
func New(toks []lexer.Token, file string, sink *diag.Sink) *Parser {
	return &Parser{toks: toks, file: file, sink: sink}
}

// NewFromSource lexes src and builds a Parser over the result.
func NewFromSource(src []byte, file string, sink *diag.Sink) *Parser {
	return New(lexer.New(src, file).Tokens(), file, sink)
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(off int) lexer.Token {
	i := p.pos + off
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) atEnd() bool { return p.cur().Kind == lexer.EOF }

// accept consumes the current token and returns true if it matches k.
func (p *Parser) accept(k lexer.Kind) (lexer.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

// expect consumes the current token, recording PAR001 if it does not
// match k, and returns it regardless (so callers can keep building a
// partial node).
func (p *Parser) expect(k lexer.Kind, context string) lexer.Token {
	if tok, ok := p.accept(k); ok {
		return tok
	}
	tok := p.cur()
	p.errorf(tok, "expected %s %s, found %s", k, context, tok.Kind)
	return tok
}

func (p *Parser) setParent(child, parent ast.Node) {
	if child != nil {
		child.SetParent(parent)
	}
}

// ParseFile consumes the entire token stream, producing a File whose
// Stmts may include *ast.ErrorStmt nodes for any statements that failed
// to parse.
func (p *Parser) ParseFile(path string) *ast.File {
	f := &ast.File{Path: path}
	for !p.atEnd() {
		stmt := p.parseTopLevelStmt()
		if stmt == nil {
			continue
		}
		p.setParent(stmt, f)
		f.Stmts = append(f.Stmts, stmt)
	}
	return f
}
