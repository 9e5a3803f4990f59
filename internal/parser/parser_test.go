package parser_test

import (
	"testing"

	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/parser"
	"github.com/stretchr/testify/require"
)

func parseFile(t *testing.T, src string) (*ast.File, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	p := parser.NewFromSource([]byte(src), "test.mach", sink)
	f := p.ParseFile("test.mach")
	return f, sink
}

func TestParseMinimalFunction(t *testing.T) {
	f, sink := parseFile(t, "fun main(): i32 {\n    ret 0;\n}\n")
	require.False(t, sink.HasErrors())
	require.Len(t, f.Stmts, 1)

	fn, ok := f.Stmts[0].(*ast.FunDecl)
	require.True(t, ok)
	require.Equal(t, "main", fn.Name)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestParseValAndVarDecl(t *testing.T) {
	f, sink := parseFile(t, "val x: i32 = 1;\nvar y = 2;\n")
	require.False(t, sink.HasErrors())
	require.Len(t, f.Stmts, 2)
	_, ok := f.Stmts[0].(*ast.ValDecl)
	require.True(t, ok)
	_, ok = f.Stmts[1].(*ast.VarDecl)
	require.True(t, ok)
}

func TestParseStructDecl(t *testing.T) {
	f, sink := parseFile(t, "str S { a: u8; b: u32; }\n")
	require.False(t, sink.HasErrors())
	td, ok := f.Stmts[0].(*ast.TypeDecl)
	require.True(t, ok)
	st, ok := td.Type.(*ast.StructType)
	require.True(t, ok)
	require.Equal(t, "S", st.Name)
	require.Len(t, st.Fields, 2)
}

func TestParseGenericFuncAndCall(t *testing.T) {
	f, sink := parseFile(t, "fun id<T>(x: T): T { ret x; }\nval a: i32 = id<i32>(3);\n")
	require.False(t, sink.HasErrors())

	fn := f.Stmts[0].(*ast.FunDecl)
	require.Equal(t, []string{"T"}, fn.TypeParams)

	val := f.Stmts[1].(*ast.ValDecl)
	call := val.Value.(*ast.CallExpr)
	require.Len(t, call.TypeArgs, 1)
}

func TestPrecedenceBindsTighterThanComparison(t *testing.T) {
	f, _ := parseFile(t, "val x = 1 + 2 == 3;\n")
	val := f.Stmts[0].(*ast.ValDecl)
	bin, ok := val.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, "==", bin.Op.String())

	left, ok := bin.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, "+", left.Op.String())
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	f, sink := parseFile(t, "fun f() { x = y = 1; }\n")
	require.False(t, sink.HasErrors())
	fn := f.Stmts[0].(*ast.FunDecl)
	exprStmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	outer := exprStmt.X.(*ast.AssignExpr)
	_, ok := outer.Value.(*ast.AssignExpr)
	require.True(t, ok)
}

func TestOrWithoutIfIsParseError(t *testing.T) {
	_, sink := parseFile(t, "fun f() { or {} }\n")
	require.True(t, sink.HasErrors())
}

func TestIfOrChain(t *testing.T) {
	f, sink := parseFile(t, "fun f() { if 1 {} or 2 {} or {} }\n")
	require.False(t, sink.HasErrors())
	fn := f.Stmts[0].(*ast.FunDecl)
	ifs := fn.Body.Stmts[0].(*ast.IfStmt)
	require.NotNil(t, ifs.Or)
	_, ok := ifs.Or.(*ast.IfStmt)
	require.True(t, ok)
}

func TestForLoopWithBreakAndContinue(t *testing.T) {
	src := "fun f() { for (var i = 0; i < 10; i = i + 1) { brk; cnt; } }\n"
	f, sink := parseFile(t, src)
	require.False(t, sink.HasErrors())
	fn := f.Stmts[0].(*ast.FunDecl)
	forStmt := fn.Body.Stmts[0].(*ast.ForStmt)
	require.NotNil(t, forStmt.Init)
	require.NotNil(t, forStmt.Cond)
	require.NotNil(t, forStmt.Post)
	require.Len(t, forStmt.Body.Stmts, 2)
}

func TestCastExpression(t *testing.T) {
	f, sink := parseFile(t, "val x = 1 as i64;\n")
	require.False(t, sink.HasErrors())
	val := f.Stmts[0].(*ast.ValDecl)
	_, ok := val.Value.(*ast.CastExpr)
	require.True(t, ok)
}

func TestPointerAndArrayTypeExpr(t *testing.T) {
	f, sink := parseFile(t, "var p: ?i32;\nvar a: [u8; 4];\n")
	require.False(t, sink.HasErrors())
	pd := f.Stmts[0].(*ast.VarDecl)
	_, ok := pd.Type.(*ast.PointerType)
	require.True(t, ok)

	ad := f.Stmts[1].(*ast.VarDecl)
	_, ok = ad.Type.(*ast.ArrayType)
	require.True(t, ok)
}

func TestParseErrorRecoversAtNextStatement(t *testing.T) {
	f, sink := parseFile(t, "val x = ;\nval y = 1;\n")
	require.True(t, sink.HasErrors())
	require.Len(t, f.Stmts, 2)
	_, ok := f.Stmts[1].(*ast.ValDecl)
	require.True(t, ok)
}

func TestUseDeclWithAndWithoutAlias(t *testing.T) {
	f, sink := parseFile(t, "use std.io;\nuse io: std.io;\n")
	require.False(t, sink.HasErrors())
	u1 := f.Stmts[0].(*ast.UseDecl)
	require.Equal(t, []string{"std", "io"}, u1.Path)
	require.Equal(t, "", u1.Alias)

	u2 := f.Stmts[1].(*ast.UseDecl)
	require.Equal(t, "io", u2.Alias)
}
