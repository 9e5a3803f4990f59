package typecheck

import (
	"strconv"

	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/mono"
	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/types"
)

// ResolveType turns a syntactic ast.TypeExpr into a types.Type, consulting
// the active binding context first (a type-parameter name shadows an
// ordinary scope lookup per spec.md section 4.7) and the interner for
// every composite it builds.
func (c *Checker) ResolveType(ctx Context, te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case *ast.TypeName:
		return c.resolveTypeName(ctx, t)

	case *ast.PointerType:
		if t.Base == nil {
			return c.Interner.Pointer(nil)
		}
		return c.Interner.Pointer(c.ResolveType(ctx, t.Base))

	case *ast.ArrayType:
		elem := c.ResolveType(ctx, t.Element)
		count := -1
		if t.Size != nil {
			if n, ok := c.evalConstInt(ctx, t.Size); ok {
				count = n
			} else {
				c.errf(ctx, diag.TC002, t.Size.Token(), "array size must be a constant integer expression")
			}
		}
		return c.Interner.Array(elem, count)

	case *ast.FuncType:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.ResolveType(ctx, p)
		}
		ret := types.Type(types.VOID)
		if t.Return != nil {
			ret = c.ResolveType(ctx, t.Return)
		}
		return c.Interner.Func(params, ret, t.Variadic)

	case *ast.GenericType:
		return c.resolveGenericType(ctx, t)

	default:
		c.errf(ctx, diag.TC002, te.Token(), "invalid type expression")
		return types.VOID
	}
}

func (c *Checker) resolveTypeName(ctx Context, t *ast.TypeName) types.Type {
	if ctx.Bindings != nil {
		if bound, ok := ctx.Bindings.Lookup(t.Name); ok {
			return bound
		}
	}

	sym, ok := ctx.Scope.Lookup(t.Name)
	if !ok {
		c.errf(ctx, diag.TC002, t.Token(), "unknown type %q", t.Name)
		return types.VOID
	}
	if sym.SymKind != scope.KindType {
		c.errf(ctx, diag.TC002, t.Token(), "%q is not a type", t.Name)
		return types.VOID
	}
	if t.Name == "ptr" {
		return c.Interner.Pointer(nil)
	}
	return sym.Type
}

// resolveGenericType handles a `Box<A, B>` type expression: the generic
// struct/union symbol is looked up, its type arguments resolved, and the
// instantiation requested from the monomorphizer. The specialization's
// eventual struct/union type is computed eagerly from the generic's
// declared fields substituted under a fresh BindingCtx — only the body
// (there is none, for a type) would need deferred analysis, so there is
// nothing left for the drain queue to do here beyond bookkeeping the
// request for the backend's specialization list.
func (c *Checker) resolveGenericType(ctx Context, t *ast.GenericType) types.Type {
	sym, ok := ctx.Scope.Lookup(t.Name)
	if !ok {
		c.errf(ctx, diag.TC002, t.Token(), "unknown type %q", t.Name)
		return types.VOID
	}
	if !sym.IsGeneric {
		c.errf(ctx, diag.TC002, t.Token(), "%q is not generic", t.Name)
		return types.VOID
	}
	if len(t.Args) != len(sym.TypeParams) {
		c.errf(ctx, diag.MONO002, t.Token(), "%q expects %d type argument(s), got %d", t.Name, len(sym.TypeParams), len(t.Args))
	}

	args := make([]types.Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = c.ResolveType(ctx, a)
	}

	kind := kindOfGenericType(sym)
	spec, fresh := c.Mono.Request(kind, ctx.Module, sym, args, t)
	if fresh {
		c.specializeType(ctx, sym, spec, args)
	}
	return spec.Type
}

// specializeType substitutes a generic struct/union's declared field
// types under a BindingCtx binding its type parameters to args, then
// attaches the resulting types.StructType/UnionType to the placeholder
// specialization symbol. Unlike a generic function's body, a type's
// shape has no statements to defer to the drain queue.
func (c *Checker) specializeType(ctx Context, generic, spec *scope.Symbol, args []types.Type) {
	decl, ok := generic.Decl.(ast.TypeExpr)
	if !ok {
		return
	}
	bindings := newTypeParamBindings(generic.TypeParams, args)
	specCtx := ctx.WithBindings(bindings)

	switch td := decl.(type) {
	case *ast.StructType:
		fields := make([]types.Field, len(td.Fields))
		for i, f := range td.Fields {
			fields[i] = types.Field{Name: f.Name, Type: c.ResolveType(specCtx, f.Type)}
		}
		spec.Type = types.NewStruct(spec.Name, fields)
	case *ast.UnionType:
		fields := make([]types.Field, len(td.Fields))
		for i, f := range td.Fields {
			fields[i] = types.Field{Name: f.Name, Type: c.ResolveType(specCtx, f.Type)}
		}
		spec.Type = types.NewUnion(spec.Name, fields)
	}
}

func kindOfGenericType(sym *scope.Symbol) mono.Kind {
	if _, isUnion := sym.Decl.(*ast.UnionType); isUnion {
		return mono.KindUnion
	}
	return mono.KindStruct
}

// evalConstInt folds the handful of expression shapes that are legal in a
// constant position (array sizes, size_of/align_of/offset_of operands):
// integer literals, the three reflection builtins, and the
// __SYS_ARCH__/__SYS_PLAT__ target constants.
func (c *Checker) evalConstInt(ctx Context, e ast.Expr) (int, bool) {
	switch v := e.(type) {
	case *ast.Literal:
		if v.Kind != ast.IntLit {
			return 0, false
		}
		n, err := strconv.ParseInt(v.Value, 0, 64)
		if err != nil {
			return 0, false
		}
		return int(n), true
	case *ast.CallExpr:
		if n, ok := c.evalBuiltinCall(ctx, v); ok {
			return n, true
		}
	case *ast.Identifier:
		if n, ok := c.sysConstValue(v.Name); ok {
			return n, true
		}
	}
	return 0, false
}
