package ast

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------
// Bindings: val / var
// ---------------------------------------------------------------------

type ValDecl struct {
	stmtBase
	Name  string
	Type  TypeExpr // optional explicit annotation
	Value Expr
}

func (v *ValDecl) String() string { return fmt.Sprintf("val %s = %s;", v.Name, v.Value) }

type VarDecl struct {
	stmtBase
	Name  string
	Type  TypeExpr
	Value Expr // optional initializer
}

func (v *VarDecl) String() string {
	if v.Value != nil {
		return fmt.Sprintf("var %s = %s;", v.Name, v.Value)
	}
	return fmt.Sprintf("var %s: %s;", v.Name, v.Type)
}

// DefDecl declares a transparent type alias: `def Name: Target;`
type DefDecl struct {
	stmtBase
	Name string
	Type TypeExpr
}

func (d *DefDecl) String() string { return fmt.Sprintf("def %s: %s;", d.Name, d.Type) }

// ---------------------------------------------------------------------
// Modules
// ---------------------------------------------------------------------

// UseDecl imports a module. Alias == "" means `use path;` (flatten public
// symbols into scope); Alias != "" means `use alias: path;` (bind the
// module itself under Alias).
type UseDecl struct {
	stmtBase
	Path  []string // dotted path segments, e.g. ["std", "io"]
	Alias string
}

func (u *UseDecl) String() string {
	path := strings.Join(u.Path, ".")
	if u.Alias != "" {
		return fmt.Sprintf("use %s: %s;", u.Alias, path)
	}
	return fmt.Sprintf("use %s;", path)
}

// ---------------------------------------------------------------------
// Functions
// ---------------------------------------------------------------------

type Param struct {
	Name string
	Type TypeExpr
}

type FunDecl struct {
	stmtBase
	Name       string
	TypeParams []string
	Params     []*Param
	Return     TypeExpr // nil means void
	Body       *BlockStmt
	IsExport   bool
}

func (f *FunDecl) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	return fmt.Sprintf("fun %s(%s) { ... }", f.Name, strings.Join(params, ", "))
}

// ExtDecl declares an externally-defined function (no body), optionally
// with a calling-convention hint and an explicit C-level symbol name.
type ExtDecl struct {
	stmtBase
	Name       string
	CName      string // linkage name, defaults to Name
	CConv      string // optional calling-convention hint
	Params     []*Param
	Return     TypeExpr
	Variadic   bool
}

func (e *ExtDecl) String() string { return fmt.Sprintf("ext %s(...);", e.Name) }

// TypeDecl wraps a top-level `str`/`uni` declaration so it can sit
// alongside other statements in a File's Stmts; Type is always a
// *StructType or *UnionType.
type TypeDecl struct {
	stmtBase
	Type TypeExpr
}

func (t *TypeDecl) String() string { return t.Type.String() + ";" }

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

type BlockStmt struct {
	stmtBase
	Stmts []Stmt
}

func (b *BlockStmt) String() string {
	parts := make([]string, len(b.Stmts))
	for i, s := range b.Stmts {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

type ExprStmt struct {
	stmtBase
	X Expr
}

func (e *ExprStmt) String() string { return e.X.String() + ";" }

// IfStmt chains its `or` branches: Or may itself contain an If (else-if)
// or a bare block (else), mirroring source `if / or cond / or / end`.
type IfStmt struct {
	stmtBase
	Cond Expr
	Then *BlockStmt
	Or   Node // *IfStmt, *BlockStmt, or nil
}

func (i *IfStmt) String() string {
	if i.Or != nil {
		return fmt.Sprintf("if %s %s or %s", i.Cond, i.Then, i.Or)
	}
	return fmt.Sprintf("if %s %s", i.Cond, i.Then)
}

type ForStmt struct {
	stmtBase
	Init Stmt // optional
	Cond Expr // optional
	Post Stmt // optional
	Body *BlockStmt
}

func (f *ForStmt) String() string { return fmt.Sprintf("for %s", f.Body) }

type BrkStmt struct{ stmtBase }

func (b *BrkStmt) String() string { return "brk;" }

type CntStmt struct{ stmtBase }

func (c *CntStmt) String() string { return "cnt;" }

type RetStmt struct {
	stmtBase
	Value Expr // nil for bare `ret;`
}

func (r *RetStmt) String() string {
	if r.Value != nil {
		return fmt.Sprintf("ret %s;", r.Value)
	}
	return "ret;"
}

// AsmStmt is an inline-assembly block; its contents are opaque to the
// semantic pipeline and are handed to the backend verbatim.
type AsmStmt struct {
	stmtBase
	Body string
}

func (a *AsmStmt) String() string { return "asm { ... };" }
