package typecheck

import (
	"strings"

	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/types"
)

// RegisterFile is phase one: it creates the module's scope, declares
// every top-level name, and resolves each symbol's provisional type.
// Bodies are not examined here (spec.md section 5's two-phase rule) so
// a function may call another declared later in the same file. The
// caller must register modules in topological (deps-first) order, since
// `use` looks dependencies up in c.Modules rather than recursing.
func (c *Checker) RegisterFile(file *ast.File, global *scope.Scope, moduleName, filePath string) *scope.Scope {
	modScope := scope.New(global, moduleName, true)
	c.Modules[moduleName] = modScope
	ctx := Context{Module: moduleName, File: filePath, Scope: modScope}

	for _, stmt := range file.Stmts {
		c.declareTopLevel(ctx, stmt, modScope)
	}
	for _, stmt := range file.Stmts {
		c.resolveTopLevelType(ctx, stmt, modScope)
	}
	return modScope
}

func (c *Checker) declareTopLevel(ctx Context, stmt ast.Stmt, dst *scope.Scope) {
	switch d := stmt.(type) {
	case *ast.UseDecl:
		c.applyUse(ctx, d, dst)

	case *ast.ValDecl:
		c.declare(ctx, dst, &scope.Symbol{Name: d.Name, SymKind: scope.KindVal, Decl: d, Val: &scope.ValPayload{}})

	case *ast.VarDecl:
		c.declare(ctx, dst, &scope.Symbol{Name: d.Name, SymKind: scope.KindVar, Decl: d, Val: &scope.ValPayload{}})

	case *ast.DefDecl:
		c.declare(ctx, dst, &scope.Symbol{Name: d.Name, SymKind: scope.KindType, Decl: d})

	case *ast.FunDecl:
		c.declare(ctx, dst, &scope.Symbol{
			Name:       d.Name,
			SymKind:    scope.KindFunc,
			Decl:       d,
			IsGeneric:  len(d.TypeParams) > 0,
			TypeParams: d.TypeParams,
			Func:       &scope.FuncPayload{IsExport: d.IsExport},
		})

	case *ast.ExtDecl:
		c.declare(ctx, dst, &scope.Symbol{
			Name:       d.Name,
			SymKind:    scope.KindFunc,
			Decl:       d,
			IsExternal: true,
			Func:       &scope.FuncPayload{IsExternal: true},
		})

	case *ast.TypeDecl:
		switch tt := d.Type.(type) {
		case *ast.StructType:
			c.declare(ctx, dst, &scope.Symbol{
				Name: tt.Name, SymKind: scope.KindType, Decl: tt,
				IsGeneric: len(tt.TypeParams) > 0, TypeParams: tt.TypeParams,
			})
		case *ast.UnionType:
			c.declare(ctx, dst, &scope.Symbol{
				Name: tt.Name, SymKind: scope.KindType, Decl: tt,
				IsGeneric: len(tt.TypeParams) > 0, TypeParams: tt.TypeParams,
			})
		}

	case *ast.ErrorStmt:
		// parse already reported; nothing to register
	}
}

func (c *Checker) declare(ctx Context, dst *scope.Scope, sym *scope.Symbol) {
	sym.IsPublic = scope.IsPublicName(sym.Name)
	sym.File = ctx.File
	if err := dst.Declare(sym); err != nil {
		c.errf(ctx, diag.SCP001, sym.Decl.Token(), "%s", err.Error())
	}
}

func (c *Checker) applyUse(ctx Context, u *ast.UseDecl, dst *scope.Scope) {
	depName := strings.Join(u.Path, ".")
	depScope, ok := c.Modules[depName]
	if !ok {
		c.errf(ctx, diag.MOD001, u.Token(), "module %q is not registered (used before its dependency was analyzed)", depName)
		return
	}

	if u.Alias != "" {
		sym := &scope.Symbol{
			Name: u.Alias, SymKind: scope.KindModule, Decl: u,
			Module: &scope.ModulePayload{ModuleScope: depScope},
		}
		c.declare(ctx, dst, sym)
		return
	}
	if err := scope.Flatten(depScope, dst); err != nil {
		c.errf(ctx, diag.SCP001, u.Token(), "%s", err.Error())
	}
}

func (c *Checker) resolveTopLevelType(ctx Context, stmt ast.Stmt, modScope *scope.Scope) {
	switch d := stmt.(type) {
	case *ast.ValDecl:
		if d.Type == nil {
			return
		}
		sym, _ := modScope.LookupLocal(d.Name)
		sym.Type = c.ResolveType(ctx, d.Type)

	case *ast.VarDecl:
		if d.Type == nil {
			return
		}
		sym, _ := modScope.LookupLocal(d.Name)
		sym.Type = c.ResolveType(ctx, d.Type)

	case *ast.DefDecl:
		sym, _ := modScope.LookupLocal(d.Name)
		sym.Type = &types.AliasType{Name: d.Name, Target: c.ResolveType(ctx, d.Type)}

	case *ast.FunDecl:
		sym, _ := modScope.LookupLocal(d.Name)
		if sym.IsGeneric {
			return
		}
		sym.Type = c.Interner.Func(c.resolveParams(ctx, d.Params), c.resolveReturn(ctx, d.Return), false)

	case *ast.ExtDecl:
		sym, _ := modScope.LookupLocal(d.Name)
		sym.Type = c.Interner.Func(c.resolveParams(ctx, d.Params), c.resolveReturn(ctx, d.Return), d.Variadic)

	case *ast.TypeDecl:
		switch tt := d.Type.(type) {
		case *ast.StructType:
			sym, _ := modScope.LookupLocal(tt.Name)
			if sym.IsGeneric {
				return
			}
			sym.Type = types.NewStruct(tt.Name, c.resolveFields(ctx, tt.Fields))
		case *ast.UnionType:
			sym, _ := modScope.LookupLocal(tt.Name)
			if sym.IsGeneric {
				return
			}
			sym.Type = types.NewUnion(tt.Name, c.resolveFields(ctx, tt.Fields))
		}
	}
}

func (c *Checker) resolveParams(ctx Context, params []*ast.Param) []types.Type {
	out := make([]types.Type, len(params))
	for i, p := range params {
		out[i] = c.ResolveType(ctx, p.Type)
	}
	return out
}

func (c *Checker) resolveReturn(ctx Context, ret ast.TypeExpr) types.Type {
	if ret == nil {
		return types.VOID
	}
	return c.ResolveType(ctx, ret)
}

func (c *Checker) resolveFields(ctx Context, fields []*ast.StructTypeField) []types.Field {
	out := make([]types.Field, len(fields))
	for i, f := range fields {
		out[i] = types.Field{Name: f.Name, Type: c.ResolveType(ctx, f.Type)}
	}
	return out
}
