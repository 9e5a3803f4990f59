package scope

import (
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/types"
)

// Kind classifies what a Symbol names.
type Kind int

const (
	KindVar Kind = iota
	KindVal
	KindFunc
	KindType
	KindField
	KindParam
	KindModule
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindVal:
		return "val"
	case KindFunc:
		return "fun"
	case KindType:
		return "type"
	case KindField:
		return "field"
	case KindParam:
		return "param"
	case KindModule:
		return "module"
	default:
		return "unknown"
	}
}

// FuncPayload carries the declared-but-not-yet-bound-to-body detail
// a function symbol needs during the provisional top-level pass.
type FuncPayload struct {
	IsExport   bool
	IsExternal bool
}

// FieldPayload marks a symbol as a struct/union field, owned by the
// enclosing type symbol.
type FieldPayload struct {
	Owner  *Symbol
	Offset int
}

// ParamPayload marks a symbol as a function parameter.
type ParamPayload struct {
	Index int
}

// ModulePayload links a module symbol (created by `use alias: path;`)
// back to the scope it names.
type ModulePayload struct {
	ModuleScope *Scope
}

// ValPayload records whether a val/var binding has been initialized,
// used for basic definite-assignment diagnostics.
type ValPayload struct {
	Initialized bool
}

// Symbol is one name bound in a Scope. It implements ast.SymbolRef so
// expression nodes can carry a binding without ast importing scope.
type Symbol struct {
	Name       string
	SymKind    Kind
	Type       types.Type
	Decl       ast.Node
	Owner      *Scope
	File       string // source file the declaration came from, for diagnostics raised later (e.g. specializing a generic)
	IsPublic   bool
	IsImported bool
	IsExternal bool
	IsGeneric  bool
	TypeParams []string // names, in declaration order; only set when IsGeneric

	Func   *FuncPayload
	Field  *FieldPayload
	Param  *ParamPayload
	Module *ModulePayload
	Val    *ValPayload
}

func (s *Symbol) SymbolKind() string { return s.SymKind.String() }
func (s *Symbol) SymbolName() string { return s.Name }

var _ ast.SymbolRef = (*Symbol)(nil)
