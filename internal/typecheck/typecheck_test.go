package typecheck_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/mono"
	"github.com/octalide/mach/internal/parser"
	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/target"
	"github.com/octalide/mach/internal/typecheck"
	"github.com/octalide/mach/internal/types"
	"github.com/stretchr/testify/require"
)

// checked parses and fully type-checks a single module, draining any
// queued generic specializations, mirroring the order a real build
// driver would run RegisterFile, CheckFile and Drain in.
func checked(t *testing.T, src string) (*ast.File, *typecheck.Checker, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	p := parser.NewFromSource([]byte(src), "test.mach", sink)
	f := p.ParseFile("test.mach")

	tg, err := target.Parse("linux/x64")
	require.NoError(t, err)

	c := typecheck.NewChecker(tg, types.NewInterner(tg), mono.NewCoordinator(), sink)
	global := scope.NewGlobal()
	modScope := c.RegisterFile(f, global, "test", "test.mach")
	c.CheckFile(f, modScope, "test", "test.mach")
	require.NoError(t, c.Mono.Drain(c.ProcessSpecialization))
	return f, c, sink
}

func TestMinimalFunctionTypeChecksClean(t *testing.T) {
	f, _, sink := checked(t, "fun main(): i32 { ret 0; }\n")
	require.False(t, sink.HasErrors())

	fn := f.Stmts[0].(*ast.FunDecl)
	ret := fn.Body.Stmts[0].(*ast.RetStmt)
	lit := ret.Value.(*ast.Literal)
	require.Equal(t, types.I32, lit.ResolvedType())
}

func TestForwardReferenceWithinModule(t *testing.T) {
	_, _, sink := checked(t, "fun a(): i32 { ret b(); }\nfun b(): i32 { ret 42; }\n")
	require.False(t, sink.HasErrors())
}

func TestIntLiteralRefinesToExpectedWidth(t *testing.T) {
	f, _, sink := checked(t, "val x: u8 = 200;\n")
	require.False(t, sink.HasErrors())
	val := f.Stmts[0].(*ast.ValDecl)
	lit := val.Value.(*ast.Literal)
	require.Equal(t, types.U8, lit.ResolvedType())
}

func TestIntLiteralOverflowingTargetIsTypeError(t *testing.T) {
	_, _, sink := checked(t, "val x: u8 = 300;\n")
	require.True(t, sink.HasErrors())
}

func TestAssignToValIsNotAnLvalue(t *testing.T) {
	_, _, sink := checked(t, "fun f() { val x: i32 = 1; x = 2; }\n")
	require.True(t, sink.HasErrors())
	foundTC004 := false
	for _, d := range sink.Records() {
		if d.Code == diag.TC004 {
			foundTC004 = true
		}
	}
	require.True(t, foundTC004)
}

func TestAssignToVarIsLvalue(t *testing.T) {
	_, _, sink := checked(t, "fun f() { var x: i32 = 1; x = 2; }\n")
	require.False(t, sink.HasErrors())
}

func TestBrkOutsideLoopIsError(t *testing.T) {
	_, _, sink := checked(t, "fun f() { brk; }\n")
	require.True(t, sink.HasErrors())
}

func TestBrkInsideForLoopIsClean(t *testing.T) {
	_, _, sink := checked(t, "fun f() { for (var i = 0; i < 10; i = i + 1) { brk; } }\n")
	require.False(t, sink.HasErrors())
}

func TestCallArityMismatchIsError(t *testing.T) {
	_, _, sink := checked(t, "fun add(a: i32, b: i32): i32 { ret a + b; }\nfun f() { add(1); }\n")
	require.True(t, sink.HasErrors())
}

func TestStructFieldAccessAndNewLiteral(t *testing.T) {
	_, _, sink := checked(t, "str P { x: i32; y: i32; }\nval p: P = new P{ x: 1, y: 2 };\nval a: i32 = p.x;\n")
	require.False(t, sink.HasErrors())
}

func TestUnknownFieldOnStructIsError(t *testing.T) {
	_, _, sink := checked(t, "str P { x: i32; }\nval p: P = new P{ x: 1 };\nval a: i32 = p.z;\n")
	require.True(t, sink.HasErrors())
}

func TestDereferenceNonPointerIsError(t *testing.T) {
	_, _, sink := checked(t, "fun f() { val x: i32 = 1; val y: i32 = @x; }\n")
	require.True(t, sink.HasErrors())
}

func TestAddressOfThenDereferenceRoundTrips(t *testing.T) {
	_, _, sink := checked(t, "fun f() { var x: i32 = 1; val p = ?x; val y: i32 = @p; }\n")
	require.False(t, sink.HasErrors())
}

func TestCastBetweenNumericTypes(t *testing.T) {
	f, _, sink := checked(t, "val x: i64 = 1 as i64;\n")
	require.False(t, sink.HasErrors())
	val := f.Stmts[0].(*ast.ValDecl)
	cast := val.Value.(*ast.CastExpr)
	require.Equal(t, types.I64, cast.ResolvedType())
}

func TestSizeOfBuiltinFoldsToConstant(t *testing.T) {
	_, _, sink := checked(t, "val n: i32 = size_of(i64);\n")
	require.False(t, sink.HasErrors())
}

func TestArraySizeFromSizeOfBuiltin(t *testing.T) {
	_, _, sink := checked(t, "var buf: [u8; size_of(i64)];\n")
	require.False(t, sink.HasErrors())
}

func TestGenericIdentitySpecializesDistinctlyPerTypeArgument(t *testing.T) {
	f, _, sink := checked(t, "fun id<T>(x: T): T { ret x; }\nval a: i32 = id<i32>(3);\nval b: i64 = id<i64>(4);\n")
	require.False(t, sink.HasErrors())

	valA := f.Stmts[1].(*ast.ValDecl)
	callA := valA.Value.(*ast.CallExpr)
	symA := callA.BoundSymbol()
	require.NotNil(t, symA)

	valB := f.Stmts[2].(*ast.ValDecl)
	callB := valB.Value.(*ast.CallExpr)
	symB := callB.BoundSymbol()
	require.NotNil(t, symB)

	require.NotSame(t, symA, symB)
	require.Equal(t, types.I32, callA.ResolvedType())
	require.Equal(t, types.I64, callB.ResolvedType())
}

func TestGenericCallWrongTypeArgumentArityIsError(t *testing.T) {
	_, _, sink := checked(t, "fun id<T>(x: T): T { ret x; }\nval a: i32 = id(3);\n")
	require.True(t, sink.HasErrors())
}

func TestStringLiteralMismatchReportsCaretAtLiteral(t *testing.T) {
	_, _, sink := checked(t, "val x: i32 = \"hello\";\n")
	require.True(t, sink.HasErrors())

	recs := sink.Records()
	require.NotEmpty(t, recs)
	line, col := recs[0].Tok.Position([]byte("val x: i32 = \"hello\";\n"))
	require.Equal(t, 1, line)
	require.Equal(t, 14, col)
}

func TestUnknownIdentifierIsError(t *testing.T) {
	_, _, sink := checked(t, "val x: i32 = undeclared;\n")
	require.True(t, sink.HasErrors())
}

func TestGenericStructSpecializationsHaveDistinctFieldShapes(t *testing.T) {
	f, _, sink := checked(t, "str Box<T> { v: T; }\nval a: Box<i32> = new Box<i32>{ v: 1 };\nval b: Box<i64> = new Box<i64>{ v: 2 };\n")
	require.False(t, sink.HasErrors())

	valA := f.Stmts[1].(*ast.ValDecl)
	stA, ok := types.Unwrap(valA.Value.ResolvedType()).(*types.StructType)
	require.True(t, ok)

	valB := f.Stmts[2].(*ast.ValDecl)
	stB, ok := types.Unwrap(valB.Value.ResolvedType()).(*types.StructType)
	require.True(t, ok)

	fieldA, ok := stA.FieldByName("v")
	require.True(t, ok)
	fieldB, ok := stB.FieldByName("v")
	require.True(t, ok)

	if diff := cmp.Diff(types.I32, fieldA.Type); diff != "" {
		t.Errorf("Box<i32>.v field type mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(types.I64, fieldB.Type); diff != "" {
		t.Errorf("Box<i64>.v field type mismatch (-want +got):\n%s", diff)
	}
	require.NotEmpty(t, cmp.Diff(fieldA.Type, fieldB.Type))
}

func TestModuleNameIsNotAValueOutsideMemberAccess(t *testing.T) {
	sink := diag.NewSink()
	p := parser.NewFromSource([]byte("use io: std.io;\nval x: i32 = io;\n"), "test.mach", sink)
	f := p.ParseFile("test.mach")
	require.False(t, sink.HasErrors())

	tg, err := target.Parse("linux/x64")
	require.NoError(t, err)
	c := typecheck.NewChecker(tg, types.NewInterner(tg), mono.NewCoordinator(), sink)
	global := scope.NewGlobal()

	stdio := scope.New(global, "std.io", true)
	_ = stdio.Declare(&scope.Symbol{Name: "read", SymKind: scope.KindFunc, Type: types.VOID, Func: &scope.FuncPayload{}})
	c.Modules["std.io"] = stdio

	modScope := c.RegisterFile(f, global, "test", "test.mach")
	c.CheckFile(f, modScope, "test", "test.mach")
	require.True(t, sink.HasErrors())
}

func TestComparingPointersToDifferentBasesIsError(t *testing.T) {
	_, _, sink := checked(t, "fun f() { var a: i32 = 1; var b: u8 = 2; val pa = ?a; val pb = ?b; val eq = pa == pb; }\n")
	require.True(t, sink.HasErrors())
}

func TestComparingUntypedPointerToTypedPointerIsClean(t *testing.T) {
	_, _, sink := checked(t, "fun f() { var a: i32 = 1; val pa = ?a; val n: ptr = pa; val eq = n == pa; }\n")
	require.False(t, sink.HasErrors())
}

func TestSysArchConstantFoldsAsArraySize(t *testing.T) {
	_, _, sink := checked(t, "var buf: [u8; __SYS_ARCH__];\n")
	require.False(t, sink.HasErrors())
}
