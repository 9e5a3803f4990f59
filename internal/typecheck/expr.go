package typecheck

import (
	"strconv"

	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/lexer"
	"github.com/octalide/mach/internal/mono"
	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/types"
)

// checkExprExpected type-checks e the way checkExpr does, except an
// integer literal whose value fits the expected integer type refines to
// that type directly instead of defaulting to i32 (spec.md section 4.6's
// literal refinement rule).
func (c *Checker) checkExprExpected(ctx Context, e ast.Expr, expected types.Type) types.Type {
	if lit, ok := e.(*ast.Literal); ok && expected != nil && lit.Kind == ast.IntLit {
		if it, ok := types.Unwrap(expected).(*types.IntType); ok {
			if n, err := strconv.ParseInt(lit.Value, 0, 64); err == nil && fitsInt(n, it) {
				lit.SetResolvedType(it)
				return it
			}
		}
	}
	return c.checkExpr(ctx, e)
}

func fitsInt(n int64, it *types.IntType) bool {
	if it.Width >= 64 {
		if it.Unsigned {
			return n >= 0
		}
		return true
	}
	if it.Unsigned {
		if n < 0 {
			return false
		}
		max := int64(1)<<uint(it.Width) - 1
		return n <= max
	}
	min := -(int64(1) << uint(it.Width-1))
	max := int64(1)<<uint(it.Width-1) - 1
	return n >= min && n <= max
}

func isPointer(t types.Type) bool {
	_, ok := types.Unwrap(t).(*types.PointerType)
	return ok
}

func isBoolable(t types.Type) bool {
	return types.IsNumeric(t) || isPointer(t)
}

// checkExpr type-checks e against no particular expectation and attaches
// the resolved type (and, where applicable, the bound symbol) to e.
func (c *Checker) checkExpr(ctx Context, e ast.Expr) types.Type {
	switch v := e.(type) {
	case *ast.Literal:
		return c.checkLiteral(ctx, v)
	case *ast.Identifier:
		return c.checkIdentifier(ctx, v)
	case *ast.MemberExpr:
		return c.checkMember(ctx, v)
	case *ast.IndexExpr:
		return c.checkIndex(ctx, v)
	case *ast.CallExpr:
		return c.checkCall(ctx, v)
	case *ast.CastExpr:
		return c.checkCast(ctx, v)
	case *ast.UnaryExpr:
		return c.checkUnary(ctx, v)
	case *ast.BinaryExpr:
		return c.checkBinary(ctx, v)
	case *ast.AssignExpr:
		return c.checkAssign(ctx, v)
	case *ast.NewExpr:
		return c.checkNew(ctx, v)
	case *ast.ErrorExpr:
		v.SetResolvedType(types.VOID)
		return types.VOID
	default:
		return types.VOID
	}
}

func (c *Checker) checkLiteral(ctx Context, l *ast.Literal) types.Type {
	var t types.Type
	switch l.Kind {
	case ast.IntLit:
		t = types.I32
	case ast.FloatLit:
		t = types.F64
	case ast.CharLit:
		t = types.U8
	case ast.StringLit:
		t = c.Interner.Pointer(types.U8)
	default:
		t = types.VOID
	}
	l.SetResolvedType(t)
	return t
}

func (c *Checker) checkIdentifier(ctx Context, id *ast.Identifier) types.Type {
	sym, ok := ctx.Scope.Lookup(id.Name)
	if !ok {
		c.errf(ctx, diag.SCP002, id.Token(), "unknown identifier %q", id.Name)
		id.SetResolvedType(types.VOID)
		return types.VOID
	}
	id.SetBoundSymbol(sym)

	switch sym.SymKind {
	case scope.KindVar, scope.KindVal, scope.KindFunc, scope.KindParam:
		t := sym.Type
		if t == nil {
			t = types.VOID // forward-referenced top-level val whose initializer hasn't been checked yet
		}
		id.SetResolvedType(t)
		return t
	case scope.KindModule:
		// only legal to the left of a member access; checkMember handles
		// the module case directly and never delegates to checkIdentifier
		// for it, so reaching here means a bare module-name expression.
		c.errf(ctx, diag.TC001, id.Token(), "module %q is not a value", id.Name)
		id.SetResolvedType(types.VOID)
		return types.VOID
	default:
		c.errf(ctx, diag.TC001, id.Token(), "%q is not a value", id.Name)
		id.SetResolvedType(types.VOID)
		return types.VOID
	}
}

func (c *Checker) checkMember(ctx Context, m *ast.MemberExpr) types.Type {
	if id, ok := m.Target.(*ast.Identifier); ok {
		if sym, ok2 := ctx.Scope.Lookup(id.Name); ok2 && sym.SymKind == scope.KindModule {
			id.SetBoundSymbol(sym)
			id.SetResolvedType(types.VOID)

			memSym, ok3 := sym.Module.ModuleScope.LookupLocal(m.Field)
			if !ok3 || !scope.IsPublicName(m.Field) {
				c.errf(ctx, diag.TC008, m.Token(), "unknown member %q of module %q", m.Field, id.Name)
				m.SetResolvedType(types.VOID)
				return types.VOID
			}
			m.SetBoundSymbol(memSym)
			t := memSym.Type
			if t == nil {
				t = types.VOID
			}
			m.SetResolvedType(t)
			return t
		}
	}

	targetType := c.checkExpr(ctx, m.Target)
	switch st := types.Unwrap(targetType).(type) {
	case *types.StructType:
		f, ok := st.FieldByName(m.Field)
		if !ok {
			c.errf(ctx, diag.TC008, m.Token(), "%s has no field %q", st.String(), m.Field)
			m.SetResolvedType(types.VOID)
			return types.VOID
		}
		m.SetResolvedType(f.Type)
		return f.Type
	case *types.UnionType:
		f, ok := st.FieldByName(m.Field)
		if !ok {
			c.errf(ctx, diag.TC008, m.Token(), "%s has no field %q", st.String(), m.Field)
			m.SetResolvedType(types.VOID)
			return types.VOID
		}
		m.SetResolvedType(f.Type)
		return f.Type
	default:
		c.errf(ctx, diag.TC001, m.Token(), "member access requires a struct or union, got %s", targetType)
		m.SetResolvedType(types.VOID)
		return types.VOID
	}
}

func (c *Checker) checkIndex(ctx Context, ix *ast.IndexExpr) types.Type {
	targetType := c.checkExpr(ctx, ix.Target)
	idxType := c.checkExpr(ctx, ix.Index)
	if !types.IsInteger(idxType) {
		c.errf(ctx, diag.TC006, ix.Index.Token(), "index must be an integer, got %s", idxType)
	}

	switch tt := types.Unwrap(targetType).(type) {
	case *types.ArrayType:
		ix.SetResolvedType(tt.Element)
		return tt.Element
	case *types.PointerType:
		if tt.IsUntyped() {
			c.errf(ctx, diag.TC006, ix.Token(), "cannot index an untyped pointer")
			ix.SetResolvedType(types.VOID)
			return types.VOID
		}
		ix.SetResolvedType(tt.Base)
		return tt.Base
	default:
		c.errf(ctx, diag.TC006, ix.Token(), "cannot index %s", targetType)
		ix.SetResolvedType(types.VOID)
		return types.VOID
	}
}

func (c *Checker) checkArgs(ctx Context, tok lexer.Token, args []ast.Expr, params []types.Type, variadic bool) {
	if len(args) < len(params) || (!variadic && len(args) > len(params)) {
		c.errf(ctx, diag.TC003, tok, "expected %d argument(s), got %d", len(params), len(args))
	}
	for i, a := range args {
		var expected types.Type
		if i < len(params) {
			expected = params[i]
		}
		at := c.checkExprExpected(ctx, a, expected)
		if expected != nil && !types.Assignable(at, expected) {
			c.errf(ctx, diag.TC001, a.Token(), "cannot assign %s to parameter of type %s", at, expected)
		}
	}
}

func (c *Checker) checkCall(ctx Context, call *ast.CallExpr) types.Type {
	if _, ok := builtinName(call.Callee); ok {
		c.evalBuiltinCall(ctx, call)
		call.SetResolvedType(types.I32)
		return types.I32
	}

	if id, ok := call.Callee.(*ast.Identifier); ok {
		if sym, ok2 := ctx.Scope.Lookup(id.Name); ok2 && sym.IsGeneric {
			id.SetBoundSymbol(sym)
			id.SetResolvedType(types.VOID)
			return c.checkGenericCall(ctx, call, sym)
		}
	}

	calleeType := c.checkExpr(ctx, call.Callee)
	ft, ok := types.Unwrap(calleeType).(*types.FuncType)
	if !ok {
		c.errf(ctx, diag.TC001, call.Token(), "call target is not a function")
		call.SetResolvedType(types.VOID)
		return types.VOID
	}
	if len(call.TypeArgs) > 0 {
		c.errf(ctx, diag.TC003, call.Token(), "%s is not generic", call.Callee)
	}
	c.checkArgs(ctx, call.Token(), call.Args, ft.Params, ft.Variadic)
	call.SetResolvedType(ft.Return)
	return ft.Return
}

func (c *Checker) checkGenericCall(ctx Context, call *ast.CallExpr, sym *scope.Symbol) types.Type {
	if len(call.TypeArgs) != len(sym.TypeParams) {
		c.errf(ctx, diag.MONO002, call.Token(), "%s expects %d type argument(s), got %d", sym.Name, len(sym.TypeParams), len(call.TypeArgs))
		for _, a := range call.Args {
			c.checkExpr(ctx, a)
		}
		call.SetResolvedType(types.VOID)
		return types.VOID
	}

	args := make([]types.Type, len(call.TypeArgs))
	for i, a := range call.TypeArgs {
		args[i] = c.ResolveType(ctx, a)
	}

	spec, fresh := c.Mono.Request(mono.KindFunction, ctx.Module, sym, args, call)
	if fresh {
		c.specializeFunctionSignature(ctx, sym, spec, args)
	}

	ft, ok := spec.Type.(*types.FuncType)
	if !ok {
		call.SetResolvedType(types.VOID)
		return types.VOID
	}
	c.checkArgs(ctx, call.Token(), call.Args, ft.Params, ft.Variadic)
	call.SetBoundSymbol(spec)
	call.SetResolvedType(ft.Return)
	return ft.Return
}

func (c *Checker) specializeFunctionSignature(ctx Context, generic, spec *scope.Symbol, args []types.Type) {
	fd, ok := generic.Decl.(*ast.FunDecl)
	if !ok {
		spec.Type = types.VOID
		return
	}
	bindings := newTypeParamBindings(generic.TypeParams, args)
	specCtx := ctx.WithBindings(bindings)
	spec.Type = c.Interner.Func(c.resolveParams(specCtx, fd.Params), c.resolveReturn(specCtx, fd.Return), false)
}

func (c *Checker) checkCast(ctx Context, cast *ast.CastExpr) types.Type {
	vt := c.checkExpr(ctx, cast.Value)
	tt := c.ResolveType(ctx, cast.Type)

	castable := func(t types.Type) bool {
		switch types.Unwrap(t).(type) {
		case *types.IntType, *types.FloatType, *types.PointerType:
			return true
		}
		return false
	}
	if !castable(vt) || !castable(tt) {
		c.errf(ctx, diag.TC005, cast.Token(), "cannot cast %s to %s", vt, tt)
	}
	cast.SetResolvedType(tt)
	return tt
}

func (c *Checker) checkUnary(ctx Context, u *ast.UnaryExpr) types.Type {
	switch u.Op {
	case lexer.QUESTION:
		operandType := c.checkExpr(ctx, u.Operand)
		if !c.isLValue(u.Operand) {
			c.errf(ctx, diag.TC004, u.Token(), "operand of ? must be an lvalue")
		}
		t := c.Interner.Pointer(operandType)
		u.SetResolvedType(t)
		return t
	case lexer.AT:
		operandType := c.checkExpr(ctx, u.Operand)
		pt, ok := types.Unwrap(operandType).(*types.PointerType)
		if !ok || pt.IsUntyped() {
			c.errf(ctx, diag.TC006, u.Token(), "cannot dereference %s", operandType)
			u.SetResolvedType(types.VOID)
			return types.VOID
		}
		u.SetResolvedType(pt.Base)
		return pt.Base
	case lexer.NOT:
		operandType := c.checkExpr(ctx, u.Operand)
		if !(types.IsInteger(operandType) || isPointer(operandType)) {
			c.errf(ctx, diag.TC006, u.Token(), "! requires an integer or pointer operand")
		}
		u.SetResolvedType(types.U8)
		return types.U8
	case lexer.TILDE:
		operandType := c.checkExpr(ctx, u.Operand)
		if !types.IsInteger(operandType) {
			c.errf(ctx, diag.TC006, u.Token(), "~ requires an integer operand")
		}
		u.SetResolvedType(operandType)
		return operandType
	case lexer.PLUS, lexer.MINUS:
		operandType := c.checkExpr(ctx, u.Operand)
		if !types.IsNumeric(operandType) {
			c.errf(ctx, diag.TC006, u.Token(), "unary %s requires a numeric operand", u.Op)
		}
		u.SetResolvedType(operandType)
		return operandType
	default:
		c.checkExpr(ctx, u.Operand)
		c.errf(ctx, diag.TC006, u.Token(), "invalid unary operator %s", u.Op)
		u.SetResolvedType(types.VOID)
		return types.VOID
	}
}

func (c *Checker) checkBinary(ctx Context, b *ast.BinaryExpr) types.Type {
	lt := c.checkExpr(ctx, b.Left)
	rt := c.checkExpr(ctx, b.Right)

	switch b.Op {
	case lexer.ANDAND, lexer.OROR:
		if !isBoolable(lt) || !isBoolable(rt) {
			c.errf(ctx, diag.TC006, b.Token(), "%s requires numeric or pointer operands", b.Op)
		}
		b.SetResolvedType(types.U8)
		return types.U8

	case lexer.EQEQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE:
		if types.CommonType(lt, rt) == nil {
			c.errf(ctx, diag.TC006, b.Token(), "cannot compare %s and %s", lt, rt)
		}
		b.SetResolvedType(types.U8)
		return types.U8

	case lexer.SHL, lexer.SHR, lexer.AMP, lexer.PIPE, lexer.CARET:
		if !types.IsInteger(lt) || !types.IsInteger(rt) {
			c.errf(ctx, diag.TC006, b.Token(), "%s requires integer operands", b.Op)
		}
		ct := types.CommonType(lt, rt)
		if ct == nil {
			ct = lt
		}
		b.SetResolvedType(ct)
		return ct

	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		ct := types.CommonType(lt, rt)
		if ct == nil {
			c.errf(ctx, diag.TC006, b.Token(), "incompatible operand types %s and %s", lt, rt)
			ct = lt
		}
		b.SetResolvedType(ct)
		return ct

	default:
		c.errf(ctx, diag.TC006, b.Token(), "invalid binary operator %s", b.Op)
		b.SetResolvedType(types.VOID)
		return types.VOID
	}
}

func (c *Checker) checkAssign(ctx Context, a *ast.AssignExpr) types.Type {
	lt := c.checkExpr(ctx, a.Target)
	if !c.isLValue(a.Target) {
		c.errf(ctx, diag.TC004, a.Token(), "assignment target is not an lvalue")
	}
	rt := c.checkExprExpected(ctx, a.Value, lt)
	if !types.Assignable(rt, lt) {
		c.errf(ctx, diag.TC001, a.Token(), "cannot assign %s to %s", rt, lt)
	}
	a.SetResolvedType(lt)
	return lt
}

func (c *Checker) checkNew(ctx Context, n *ast.NewExpr) types.Type {
	tt := c.ResolveType(ctx, n.Type)
	switch st := types.Unwrap(tt).(type) {
	case *types.StructType:
		seen := map[string]bool{}
		for _, fi := range n.Fields {
			f, ok := st.FieldByName(fi.Name)
			if !ok {
				c.errf(ctx, diag.TC008, n.Token(), "%s has no field %q", st.String(), fi.Name)
				c.checkExpr(ctx, fi.Value)
				continue
			}
			if seen[fi.Name] {
				c.errf(ctx, diag.TC001, n.Token(), "duplicate initializer for field %q", fi.Name)
			}
			seen[fi.Name] = true
			vt := c.checkExprExpected(ctx, fi.Value, f.Type)
			if !types.Assignable(vt, f.Type) {
				c.errf(ctx, diag.TC001, fi.Value.Token(), "cannot assign %s to field %q of type %s", vt, fi.Name, f.Type)
			}
		}
	case *types.UnionType:
		if len(n.Fields) > 1 {
			c.errf(ctx, diag.TC001, n.Token(), "union literal may initialize at most one field")
		}
		for _, fi := range n.Fields {
			f, ok := st.FieldByName(fi.Name)
			if !ok {
				c.errf(ctx, diag.TC008, n.Token(), "%s has no field %q", st.String(), fi.Name)
				c.checkExpr(ctx, fi.Value)
				continue
			}
			vt := c.checkExprExpected(ctx, fi.Value, f.Type)
			if !types.Assignable(vt, f.Type) {
				c.errf(ctx, diag.TC001, fi.Value.Token(), "cannot assign %s to field %q of type %s", vt, fi.Name, f.Type)
			}
		}
	default:
		c.errf(ctx, diag.TC001, n.Token(), "new requires a struct or union type, got %s", tt)
	}
	n.SetResolvedType(tt)
	return tt
}

// isLValue reports whether e denotes an assignable storage location. A
// val binding is deliberately excluded: it is an immutable binding, not
// an lvalue, even though it is a value.
func (c *Checker) isLValue(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.Identifier:
		sym := v.BoundSymbol()
		if sym == nil {
			return false
		}
		switch sym.SymbolKind() {
		case "var", "param":
			return true
		}
		return false
	case *ast.MemberExpr:
		if sym := v.BoundSymbol(); sym != nil {
			switch sym.SymbolKind() {
			case "var", "param":
				return true
			}
			return false
		}
		return c.isLValue(v.Target)
	case *ast.IndexExpr:
		return true
	case *ast.UnaryExpr:
		return v.Op == lexer.AT
	default:
		return false
	}
}
