package typecheck

import (
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/mono"
	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/types"
)

// ProcessSpecialization is the callback the driver passes to
// mono.Coordinator.Drain. A generic function's signature is already
// computed at request time (see specializeFunctionSignature); what
// remains here is checking its body under the bound type parameters.
// Generic struct/union instantiations have no body, so every other kind
// is a no-op: their shape was fully computed in resolveGenericType.
func (c *Checker) ProcessSpecialization(req mono.InstantiationRequest) error {
	if req.Kind != mono.KindFunction {
		return nil
	}
	c.specializeFunctionBody(req)
	return nil
}

func (c *Checker) specializeFunctionBody(req mono.InstantiationRequest) {
	fd, ok := req.Generic.Decl.(*ast.FunDecl)
	if !ok || fd.Body == nil {
		return
	}
	ft, ok := req.Result.Type.(*types.FuncType)
	if !ok {
		return
	}

	moduleScope := req.Generic.Owner
	fnScope := scope.New(moduleScope, req.Result.Name, false)
	for i, p := range fd.Params {
		_ = fnScope.Declare(&scope.Symbol{
			Name: p.Name, SymKind: scope.KindParam, Type: ft.Params[i],
			Decl: fd, Param: &scope.ParamPayload{Index: i},
		})
	}

	bindings := newTypeParamBindings(req.Generic.TypeParams, req.Args)
	moduleName := ""
	if moduleScope != nil {
		moduleName = moduleScope.Name
	}
	bodyCtx := Context{
		Module: moduleName,
		File:   req.Generic.File,
		Scope:  fnScope,
	}.WithBindings(bindings).WithFunc(&funcCtx{Return: ft.Return})

	c.checkBlock(bodyCtx, fd.Body)
}
