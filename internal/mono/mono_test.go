package mono_test

import (
	"testing"

	"github.com/octalide/mach/internal/mono"
	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/types"
	"github.com/stretchr/testify/require"
)

func TestRequestCachesByStructuralTypeTuple(t *testing.T) {
	c := mono.NewCoordinator()
	generic := &scope.Symbol{Name: "id", SymKind: scope.KindFunc, IsGeneric: true}

	a, fresh1 := c.Request(mono.KindFunction, "main", generic, []types.Type{types.I32}, nil)
	require.True(t, fresh1)

	b, fresh2 := c.Request(mono.KindFunction, "main", generic, []types.Type{types.I32}, nil)
	require.False(t, fresh2)
	require.Same(t, a, b)

	d, fresh3 := c.Request(mono.KindFunction, "main", generic, []types.Type{types.I64}, nil)
	require.True(t, fresh3)
	require.NotSame(t, a, d)
}

func TestRequestEnqueuesExactlyOncePerKey(t *testing.T) {
	c := mono.NewCoordinator()
	generic := &scope.Symbol{Name: "id", SymKind: scope.KindFunc, IsGeneric: true}

	c.Request(mono.KindFunction, "main", generic, []types.Type{types.I32}, nil)
	c.Request(mono.KindFunction, "main", generic, []types.Type{types.I32}, nil)
	c.Request(mono.KindFunction, "main", generic, []types.Type{types.I64}, nil)

	require.Equal(t, 2, c.Pending())
}

func TestMangleIsTotalAndDeterministic(t *testing.T) {
	a := mono.Mangle("main", "id", "fn", []types.Type{types.I32})
	b := mono.Mangle("main", "id", "fn", []types.Type{types.I32})
	require.Equal(t, a, b)

	c := mono.Mangle("main", "id", "fn", []types.Type{types.I64})
	require.NotEqual(t, a, c)
}

func TestBindingCtxLookupFallsThroughParent(t *testing.T) {
	outer := mono.NewBindingCtx(nil, []string{"T"}, []types.Type{types.I32})
	inner := mono.NewBindingCtx(outer, []string{"U"}, []types.Type{types.F64})

	tv, ok := inner.Lookup("T")
	require.True(t, ok)
	require.Equal(t, types.I32, tv)

	uv, ok := inner.Lookup("U")
	require.True(t, ok)
	require.Equal(t, types.F64, uv)

	_, ok = inner.Lookup("V")
	require.False(t, ok)
}

func TestDrainProcessesFIFOAndStopsAtFixedPoint(t *testing.T) {
	c := mono.NewCoordinator()
	generic := &scope.Symbol{Name: "id", SymKind: scope.KindFunc, IsGeneric: true}
	other := &scope.Symbol{Name: "wrap", SymKind: scope.KindFunc, IsGeneric: true}

	c.Request(mono.KindFunction, "main", generic, []types.Type{types.I32}, nil)

	var order []string
	first := true
	err := c.Drain(func(req mono.InstantiationRequest) error {
		order = append(order, req.Generic.Name)
		if first {
			first = false
			c.Request(mono.KindFunction, "main", other, []types.Type{types.I32}, nil)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"id", "wrap"}, order)
	require.Equal(t, 0, c.Pending())
}
