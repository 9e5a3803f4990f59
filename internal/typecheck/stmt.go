package typecheck

import (
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/types"
)

// CheckFile is phase two: it resolves top-level val/var initializers and
// checks every function body, against a module scope already populated
// by RegisterFile.
func (c *Checker) CheckFile(file *ast.File, modScope *scope.Scope, moduleName, filePath string) {
	ctx := Context{Module: moduleName, File: filePath, Scope: modScope}
	for _, stmt := range file.Stmts {
		c.checkTopLevel(ctx, stmt, modScope)
	}
}

func (c *Checker) checkTopLevel(ctx Context, stmt ast.Stmt, modScope *scope.Scope) {
	switch d := stmt.(type) {
	case *ast.ValDecl:
		sym, _ := modScope.LookupLocal(d.Name)
		vt := c.checkExprExpected(ctx, d.Value, sym.Type)
		if sym.Type == nil {
			sym.Type = vt
		} else if !types.Assignable(vt, sym.Type) {
			c.errf(ctx, diag.TC001, d.Value.Token(), "cannot assign %s to %s", vt, sym.Type)
		}
		sym.Val.Initialized = true

	case *ast.VarDecl:
		sym, _ := modScope.LookupLocal(d.Name)
		if d.Value != nil {
			vt := c.checkExprExpected(ctx, d.Value, sym.Type)
			if sym.Type == nil {
				sym.Type = vt
			} else if !types.Assignable(vt, sym.Type) {
				c.errf(ctx, diag.TC001, d.Token(), "cannot assign %s to %s", vt, sym.Type)
			}
			sym.Val.Initialized = true
		}

	case *ast.FunDecl:
		if len(d.TypeParams) > 0 {
			return // checked per-specialization via the drain queue
		}
		sym, _ := modScope.LookupLocal(d.Name)
		c.checkFunctionBody(ctx, sym, d, modScope)

	case *ast.TypeDecl, *ast.DefDecl, *ast.ExtDecl, *ast.UseDecl, *ast.ErrorStmt:
		// fully resolved in phase one; nothing left to check
	}
}

func (c *Checker) checkFunctionBody(ctx Context, sym *scope.Symbol, fd *ast.FunDecl, modScope *scope.Scope) {
	if fd.Body == nil {
		return
	}
	ft, ok := sym.Type.(*types.FuncType)
	if !ok {
		return
	}
	fnScope := scope.New(modScope, fd.Name, false)
	for i, p := range fd.Params {
		_ = fnScope.Declare(&scope.Symbol{
			Name: p.Name, SymKind: scope.KindParam, Type: ft.Params[i],
			Decl: fd, Param: &scope.ParamPayload{Index: i},
		})
	}
	bodyCtx := ctx.WithScope(fnScope).WithFunc(&funcCtx{Return: ft.Return})
	c.checkBlock(bodyCtx, fd.Body)
}

func (c *Checker) checkBlock(ctx Context, b *ast.BlockStmt) {
	blockScope := scope.New(ctx.Scope, "", false)
	blockCtx := ctx.WithScope(blockScope)
	for _, s := range b.Stmts {
		c.checkStmt(blockCtx, s)
	}
}

func (c *Checker) checkStmt(ctx Context, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ValDecl:
		vt := c.checkExprExpected(ctx, s.Value, c.optionalType(ctx, s.Type))
		sym := &scope.Symbol{Name: s.Name, SymKind: scope.KindVal, Type: vt, Decl: s, Val: &scope.ValPayload{Initialized: true}}
		if s.Type != nil {
			declared := c.ResolveType(ctx, s.Type)
			if !types.Assignable(vt, declared) {
				c.errf(ctx, diag.TC001, s.Token(), "cannot assign %s to %s", vt, declared)
			}
			sym.Type = declared
		}
		if err := ctx.Scope.Declare(sym); err != nil {
			c.errf(ctx, diag.SCP001, s.Token(), "%s", err.Error())
		}

	case *ast.VarDecl:
		var t types.Type
		if s.Type != nil {
			t = c.ResolveType(ctx, s.Type)
		}
		initialized := false
		if s.Value != nil {
			vt := c.checkExprExpected(ctx, s.Value, t)
			if t == nil {
				t = vt
			} else if !types.Assignable(vt, t) {
				c.errf(ctx, diag.TC001, s.Token(), "cannot assign %s to %s", vt, t)
			}
			initialized = true
		}
		sym := &scope.Symbol{Name: s.Name, SymKind: scope.KindVar, Type: t, Decl: s, Val: &scope.ValPayload{Initialized: initialized}}
		if err := ctx.Scope.Declare(sym); err != nil {
			c.errf(ctx, diag.SCP001, s.Token(), "%s", err.Error())
		}

	case *ast.ExprStmt:
		c.checkExpr(ctx, s.X)

	case *ast.BlockStmt:
		c.checkBlock(ctx, s)

	case *ast.IfStmt:
		c.checkIf(ctx, s)

	case *ast.ForStmt:
		c.checkFor(ctx, s)

	case *ast.BrkStmt:
		if !ctx.inLoop() {
			c.errf(ctx, diag.TC007, s.Token(), "brk outside a loop")
		}

	case *ast.CntStmt:
		if !ctx.inLoop() {
			c.errf(ctx, diag.TC007, s.Token(), "cnt outside a loop")
		}

	case *ast.RetStmt:
		c.checkRet(ctx, s)

	case *ast.AsmStmt:
		// opaque to the semantic pipeline

	case *ast.ErrorStmt:
		// already reported by the parser
	}
}

func (c *Checker) optionalType(ctx Context, te ast.TypeExpr) types.Type {
	if te == nil {
		return nil
	}
	return c.ResolveType(ctx, te)
}

func (c *Checker) checkIf(ctx Context, s *ast.IfStmt) {
	ct := c.checkExpr(ctx, s.Cond)
	if !isBoolable(ct) {
		c.errf(ctx, diag.TC006, s.Cond.Token(), "if condition must be numeric or pointer, got %s", ct)
	}
	c.checkBlock(ctx, s.Then)
	switch or := s.Or.(type) {
	case *ast.IfStmt:
		c.checkIf(ctx, or)
	case *ast.BlockStmt:
		c.checkBlock(ctx, or)
	}
}

func (c *Checker) checkFor(ctx Context, s *ast.ForStmt) {
	forScope := scope.New(ctx.Scope, "", false)
	forCtx := ctx.WithScope(forScope).enterLoop()

	if s.Init != nil {
		c.checkStmt(forCtx, s.Init)
	}
	if s.Cond != nil {
		ct := c.checkExpr(forCtx, s.Cond)
		if !isBoolable(ct) {
			c.errf(forCtx, diag.TC006, s.Cond.Token(), "for condition must be numeric or pointer, got %s", ct)
		}
	}
	if s.Post != nil {
		c.checkStmt(forCtx, s.Post)
	}
	c.checkBlock(forCtx, s.Body)
}

func (c *Checker) checkRet(ctx Context, s *ast.RetStmt) {
	var want types.Type = types.VOID
	if ctx.Func != nil {
		want = ctx.Func.Return
	}
	if s.Value == nil {
		if _, isVoid := want.(types.VoidType); !isVoid {
			c.errf(ctx, diag.TC001, s.Token(), "missing return value of type %s", want)
		}
		return
	}
	vt := c.checkExprExpected(ctx, s.Value, want)
	if !types.Assignable(vt, want) {
		c.errf(ctx, diag.TC001, s.Token(), "cannot return %s as %s", vt, want)
	}
}
