// Package ast defines the mach abstract syntax tree: a tagged-union Node
// per spec.md's Data Model, one Go struct per concrete kind. Every node
// carries its source token for diagnostics and a non-owning parent link;
// after type checking, expression nodes additionally carry a resolved
// Type and (where applicable) a Symbol binding.
package ast

import (
	"fmt"
	"strings"

	"github.com/octalide/mach/internal/lexer"
	"github.com/octalide/mach/internal/types"
)

// SymbolRef is the minimal view of a scope.Symbol that ast needs, kept
// here (rather than importing internal/scope) to avoid an import cycle:
// scope.Symbol implements this interface.
type SymbolRef interface {
	SymbolKind() string
	SymbolName() string
}

// Node is the base interface every AST node implements.
type Node interface {
	Token() lexer.Token
	SetParent(Node)
	Parent() Node
	String() string
}

// base is embedded by every concrete node to provide the common fields.
type base struct {
	Tok    lexer.Token
	parent Node
}

func (b *base) Token() lexer.Token { return b.Tok }
func (b *base) SetParent(p Node)   { b.parent = p }
func (b *base) Parent() Node       { return b.parent }

// Expr is any node that type-checks to a value (or void).
type Expr interface {
	Node
	exprNode()
	ResolvedType() types.Type
	SetResolvedType(types.Type)
	BoundSymbol() SymbolRef
	SetBoundSymbol(SymbolRef)
}

// exprBase gives Expr implementations the resolved-type/symbol bookkeeping
// the type checker attaches post-analysis.
type exprBase struct {
	base
	typ types.Type
	sym SymbolRef
}

func (e *exprBase) exprNode()                   {}
func (e *exprBase) ResolvedType() types.Type    { return e.typ }
func (e *exprBase) SetResolvedType(t types.Type) { e.typ = t }
func (e *exprBase) BoundSymbol() SymbolRef       { return e.sym }
func (e *exprBase) SetBoundSymbol(s SymbolRef)   { e.sym = s }

// Stmt is any top-level or block-level statement.
type Stmt interface {
	Node
	stmtNode()
}

type stmtBase struct{ base }

func (s *stmtBase) stmtNode() {}

// TypeExpr is a syntactic type expression (before resolution to a
// types.Type by the checker).
type TypeExpr interface {
	Node
	typeExprNode()
}

type typeExprBase struct{ base }

func (t *typeExprBase) typeExprNode() {}

// ---------------------------------------------------------------------
// Program root
// ---------------------------------------------------------------------

// File is the parsed contents of a single source file.
type File struct {
	base
	Path  string
	Stmts []Stmt
}

func (f *File) String() string {
	parts := make([]string, len(f.Stmts))
	for i, s := range f.Stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}

// ---------------------------------------------------------------------
// Identifiers and literals
// ---------------------------------------------------------------------

type Identifier struct {
	exprBase
	Name string
}

func (i *Identifier) String() string { return i.Name }

type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	CharLit
	StringLit
)

type Literal struct {
	exprBase
	Kind  LiteralKind
	Value string // raw lexeme, interpreted by the type checker/codegen
}

func (l *Literal) String() string { return l.Value }

// ---------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------

type BinaryExpr struct {
	exprBase
	Op    lexer.Kind
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

type UnaryExpr struct {
	exprBase
	Op      lexer.Kind
	Operand Expr
}

func (u *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand)
}

type AssignExpr struct {
	exprBase
	Target Expr
	Value  Expr
}

func (a *AssignExpr) String() string {
	return fmt.Sprintf("(%s = %s)", a.Target, a.Value)
}

// ---------------------------------------------------------------------
// Postfix forms
// ---------------------------------------------------------------------

type MemberExpr struct {
	exprBase
	Target Expr
	Field  string
}

func (m *MemberExpr) String() string { return fmt.Sprintf("%s.%s", m.Target, m.Field) }

type IndexExpr struct {
	exprBase
	Target Expr
	Index  Expr
}

func (i *IndexExpr) String() string { return fmt.Sprintf("%s[%s]", i.Target, i.Index) }

type CallExpr struct {
	exprBase
	TypeArgs []TypeExpr // explicit f<A,B>(...) instantiation, may be empty
	Callee   Expr
	Args     []Expr
}

func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}

type CastExpr struct {
	exprBase
	Value Expr
	Type  TypeExpr
}

func (c *CastExpr) String() string { return fmt.Sprintf("(%s as %s)", c.Value, c.Type) }

// NewExpr is a composite literal: `new T { a: 1, b: 2 }`.
type NewExpr struct {
	exprBase
	Type   TypeExpr
	Fields []*FieldInit
}

type FieldInit struct {
	Name  string
	Value Expr
}

func (n *NewExpr) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Value)
	}
	return fmt.Sprintf("new %s{ %s }", n.Type, strings.Join(parts, ", "))
}

// ---------------------------------------------------------------------
// Error node (parse-error recovery placeholder)
// ---------------------------------------------------------------------

type ErrorExpr struct {
	exprBase
	Message string
}

func (e *ErrorExpr) String() string { return fmt.Sprintf("<error: %s>", e.Message) }

type ErrorStmt struct {
	stmtBase
	Message string
}

func (e *ErrorStmt) String() string { return fmt.Sprintf("<error: %s>", e.Message) }

// ---------------------------------------------------------------------
// Type expressions
// ---------------------------------------------------------------------

type TypeName struct {
	typeExprBase
	Name string
}

func (t *TypeName) String() string { return t.Name }

type PointerType struct {
	typeExprBase
	Base TypeExpr // nil means untyped `ptr`
}

func (p *PointerType) String() string {
	if p.Base == nil {
		return "?ptr"
	}
	return "?" + p.Base.String()
}

type ArrayType struct {
	typeExprBase
	Element TypeExpr
	Size    Expr // nil means unbounded (-1)
}

func (a *ArrayType) String() string {
	if a.Size == nil {
		return fmt.Sprintf("[%s]", a.Element)
	}
	return fmt.Sprintf("[%s; %s]", a.Element, a.Size)
}

type FuncType struct {
	typeExprBase
	Params   []TypeExpr
	Return   TypeExpr
	Variadic bool
}

func (f *FuncType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fun(%s) -> %s", strings.Join(parts, ", "), f.Return)
}

type GenericType struct {
	typeExprBase
	Name string
	Args []TypeExpr
}

func (g *GenericType) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", g.Name, strings.Join(parts, ", "))
}

type StructTypeField struct {
	Name string
	Type TypeExpr
}

type StructType struct {
	typeExprBase
	Name       string
	TypeParams []string
	Fields     []*StructTypeField
}

func (s *StructType) String() string { return "str " + s.Name }

type UnionType struct {
	typeExprBase
	Name       string
	TypeParams []string
	Fields     []*StructTypeField
}

func (u *UnionType) String() string { return "uni " + u.Name }
