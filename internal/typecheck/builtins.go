package typecheck

import (
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/types"
)

// builtinName reports whether call invokes size_of/align_of/offset_of by
// an unqualified identifier callee, returning its name.
func builtinName(callee ast.Expr) (string, bool) {
	id, ok := callee.(*ast.Identifier)
	if !ok {
		return "", false
	}
	switch id.Name {
	case scope.BuiltinSizeOf, scope.BuiltinAlignOf, scope.BuiltinOffsetOf:
		return id.Name, true
	}
	return "", false
}

// resolveTypeFromExpr interprets an expression-shaped argument (an
// identifier, as the call grammar offers no dedicated type-argument
// position) as a type name and resolves it.
func (c *Checker) resolveTypeFromExpr(ctx Context, e ast.Expr) (types.Type, bool) {
	id, ok := e.(*ast.Identifier)
	if !ok {
		return nil, false
	}
	if ctx.Bindings != nil {
		if bound, ok := ctx.Bindings.Lookup(id.Name); ok {
			return bound, true
		}
	}
	sym, ok := ctx.Scope.Lookup(id.Name)
	if !ok || sym.SymKind != scope.KindType {
		return nil, false
	}
	if id.Name == "ptr" {
		return c.Interner.Pointer(nil), true
	}
	return sym.Type, true
}

// sysConstValue folds __SYS_ARCH__/__SYS_PLAT__ to the checker's target
// enum value (spec.md section 4.6); it reports false for every other
// name so callers can fall through to ordinary identifier handling.
func (c *Checker) sysConstValue(name string) (int, bool) {
	switch name {
	case scope.BuiltinArch:
		return int(c.Target.Architecture), true
	case scope.BuiltinPlatform:
		return int(c.Target.Platform), true
	}
	return 0, false
}

// evalBuiltinCall folds size_of/align_of/offset_of to a compile-time
// integer constant. It reports false (without a diagnostic) when call
// does not name one of the three builtins, so callers can fall through
// to ordinary call-expression handling.
func (c *Checker) evalBuiltinCall(ctx Context, call *ast.CallExpr) (int, bool) {
	name, ok := builtinName(call.Callee)
	if !ok {
		return 0, false
	}

	switch name {
	case scope.BuiltinSizeOf, scope.BuiltinAlignOf:
		if len(call.Args) != 1 {
			c.errf(ctx, diag.TC003, call.Token(), "%s expects exactly one type argument", name)
			return 0, true
		}
		t, ok := c.resolveTypeFromExpr(ctx, call.Args[0])
		if !ok {
			c.errf(ctx, diag.TC002, call.Args[0].Token(), "%s argument must name a type", name)
			return 0, true
		}
		if name == scope.BuiltinSizeOf {
			return t.Size(), true
		}
		return t.Align(), true

	case scope.BuiltinOffsetOf:
		if len(call.Args) != 1 {
			c.errf(ctx, diag.TC003, call.Token(), "offset_of expects exactly one struct.field argument")
			return 0, true
		}
		member, ok := call.Args[0].(*ast.MemberExpr)
		if !ok {
			c.errf(ctx, diag.TC002, call.Args[0].Token(), "offset_of argument must be struct.field")
			return 0, true
		}
		owner, ok := c.resolveTypeFromExpr(ctx, member.Target)
		if !ok {
			c.errf(ctx, diag.TC002, member.Token(), "offset_of target must name a struct or union type")
			return 0, true
		}
		switch st := types.Unwrap(owner).(type) {
		case *types.StructType:
			if f, ok := st.FieldByName(member.Field); ok {
				return f.Offset, true
			}
		case *types.UnionType:
			if f, ok := st.FieldByName(member.Field); ok {
				return f.Offset, true
			}
		}
		c.errf(ctx, diag.TC008, member.Token(), "unknown field %q", member.Field)
		return 0, true
	}
	return 0, false
}
