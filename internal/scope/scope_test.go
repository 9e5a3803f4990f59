package scope_test

import (
	"testing"

	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/types"
	"github.com/stretchr/testify/require"
)

func TestDeclareAndLookup(t *testing.T) {
	s := scope.New(nil, "file", false)
	require.NoError(t, s.Declare(&scope.Symbol{Name: "x", SymKind: scope.KindVal, Type: types.I32}))

	sym, ok := s.Lookup("x")
	require.True(t, ok)
	require.Equal(t, "x", sym.Name)
}

func TestRedeclarationInSameScopeErrors(t *testing.T) {
	s := scope.New(nil, "file", false)
	require.NoError(t, s.Declare(&scope.Symbol{Name: "x", SymKind: scope.KindVal}))
	err := s.Declare(&scope.Symbol{Name: "x", SymKind: scope.KindVar})
	require.Error(t, err)
	var redecl *scope.RedeclarationError
	require.ErrorAs(t, err, &redecl)
}

func TestShadowingInNestedScopeIsAllowed(t *testing.T) {
	outer := scope.New(nil, "outer", false)
	require.NoError(t, outer.Declare(&scope.Symbol{Name: "x", SymKind: scope.KindVal, Type: types.I32}))

	inner := scope.New(outer, "inner", false)
	require.NoError(t, inner.Declare(&scope.Symbol{Name: "x", SymKind: scope.KindVal, Type: types.F64}))

	sym, _ := inner.Lookup("x")
	require.Equal(t, types.F64, sym.Type)

	outerSym, _ := outer.Lookup("x")
	require.Equal(t, types.I32, outerSym.Type)
}

func TestLookupLocalDoesNotSearchAncestors(t *testing.T) {
	outer := scope.New(nil, "outer", false)
	_ = outer.Declare(&scope.Symbol{Name: "x", SymKind: scope.KindVal})
	inner := scope.New(outer, "inner", false)

	_, ok := inner.LookupLocal("x")
	require.False(t, ok)

	_, ok = inner.Lookup("x")
	require.True(t, ok)
}

func TestPublicNameRule(t *testing.T) {
	require.True(t, scope.IsPublicName("foo"))
	require.False(t, scope.IsPublicName("_foo"))
}

func TestFlattenCopiesOnlyPublicSymbols(t *testing.T) {
	mod := scope.New(nil, "mod", true)
	_ = mod.Declare(&scope.Symbol{Name: "Public", SymKind: scope.KindFunc})
	_ = mod.Declare(&scope.Symbol{Name: "_private", SymKind: scope.KindFunc})

	dst := scope.New(nil, "importer", false)
	require.NoError(t, scope.Flatten(mod, dst))

	_, ok := dst.LookupLocal("Public")
	require.True(t, ok)
	_, ok = dst.LookupLocal("_private")
	require.False(t, ok)
}

func TestGlobalScopeSeedsBuiltins(t *testing.T) {
	g := scope.NewGlobal()

	u32, ok := g.LookupLocal("u32")
	require.True(t, ok)
	require.Equal(t, types.U32, u32.Type)

	for _, name := range []string{scope.BuiltinSizeOf, scope.BuiltinAlignOf, scope.BuiltinOffsetOf} {
		sym, ok := g.LookupLocal(name)
		require.True(t, ok, "missing builtin %s", name)
		require.Equal(t, scope.KindFunc, sym.SymKind)
	}

	_, ok = g.LookupLocal(scope.BuiltinArch)
	require.True(t, ok)
	_, ok = g.LookupLocal(scope.BuiltinPlatform)
	require.True(t, ok)
}
