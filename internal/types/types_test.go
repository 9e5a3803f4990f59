package types_test

import (
	"testing"

	"github.com/octalide/mach/internal/target"
	"github.com/octalide/mach/internal/types"
	"github.com/stretchr/testify/require"
)

func mustTarget(t *testing.T) target.Target {
	t.Helper()
	tg, err := target.Parse("linux/x64")
	require.NoError(t, err)
	return tg
}

func TestStructLayoutMixedAlignment(t *testing.T) {
	// struct S { a: u8; b: i32; c: i32 }: a@0, b aligned up to 4, c@8;
	// size_of(S)=12, align_of(S)=4.
	tg := mustTarget(t)
	s := types.NewStruct("S", []types.Field{
		{Name: "a", Type: types.U8},
		{Name: "b", Type: types.I32},
		{Name: "c", Type: types.I32},
	})
	_ = tg
	require.Equal(t, 12, s.Size())
	require.Equal(t, 4, s.Align())

	fa, _ := s.FieldByName("a")
	fb, _ := s.FieldByName("b")
	fc, _ := s.FieldByName("c")
	require.Equal(t, 0, fa.Offset)
	require.Equal(t, 4, fb.Offset)
	require.Equal(t, 8, fc.Offset)
}

func TestUnionLayoutSharesOffsetZero(t *testing.T) {
	u := types.NewUnion("U", []types.Field{
		{Name: "a", Type: types.U8},
		{Name: "b", Type: types.I64},
	})
	require.Equal(t, 8, u.Size())
	require.Equal(t, 8, u.Align())
	for _, f := range u.Fields {
		require.Equal(t, 0, f.Offset)
	}
}

func TestAliasTransparentForEquality(t *testing.T) {
	alias := &types.AliasType{Name: "byte_t", Target: types.U8}
	require.True(t, types.Equal(alias, types.U8))
	require.True(t, types.Equal(types.U8, alias))
}

func TestAssignabilityWidening(t *testing.T) {
	require.True(t, types.Assignable(types.U8, types.U32))
	require.False(t, types.Assignable(types.U32, types.U8))
	require.False(t, types.Assignable(types.I32, types.U32))
	require.True(t, types.Assignable(types.F32, types.F64))
}

func TestAssignabilityUntypedPointer(t *testing.T) {
	tg := mustTarget(t)
	untyped := types.NewPointer(nil, tg)
	typed := types.NewPointer(types.I32, tg)
	require.True(t, types.Assignable(untyped, typed))
	require.True(t, types.Assignable(typed, untyped))
}

func TestCommonTypePromotion(t *testing.T) {
	require.Equal(t, types.U32, types.CommonType(types.U8, types.U32))
	require.Equal(t, types.F64, types.CommonType(types.I32, types.F64))
	require.Nil(t, types.CommonType(types.I32, types.U32))
}

func TestCommonTypePointerUnification(t *testing.T) {
	tg := mustTarget(t)
	untyped := types.NewPointer(nil, tg)
	toI32 := types.NewPointer(types.I32, tg)
	toU8 := types.NewPointer(types.U8, tg)

	require.Equal(t, toI32, types.CommonType(untyped, toI32))
	require.Equal(t, toI32, types.CommonType(toI32, untyped))
	require.Nil(t, types.CommonType(toI32, toU8))
}

func TestInternerDeduplicates(t *testing.T) {
	tg := mustTarget(t)
	in := types.NewInterner(tg)
	p1 := in.Pointer(types.I32)
	p2 := in.Pointer(types.I32)
	require.Same(t, p1, p2)

	a1 := in.Array(types.U8, 4)
	a2 := in.Array(types.U8, 4)
	require.Same(t, a1, a2)
}

func TestPointerSizeTracksTarget(t *testing.T) {
	tg64 := mustTarget(t)
	p := types.NewPointer(types.I32, tg64)
	require.Equal(t, 8, p.Size())

	tg32, err := target.Parse("linux/x86")
	require.NoError(t, err)
	p32 := types.NewPointer(types.I32, tg32)
	require.Equal(t, 4, p32.Size())
}
