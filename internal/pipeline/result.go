package pipeline

import (
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/mono"
	"github.com/octalide/mach/internal/scope"
)

// Result is the backend contract of spec.md section 6.5: everything a
// (not-yet-implemented) code generator needs to walk the resolved
// program, handed across the package boundary this pipeline stops at.
type Result struct {
	// Files maps a loaded module's canonical dotted name to its parsed
	// and fully resolved AST — every expression node carries a
	// resolved type and, where applicable, a bound symbol.
	Files map[string]*ast.File

	// Global is the root symbol table: the global scope and, reachable
	// through Modules, every analyzed module's scope.
	Global *scope.Scope

	// Modules maps a canonical module name to its own scope, mirroring
	// typecheck.Checker.Modules.
	Modules map[string]*scope.Scope

	// Specializations is the full monomorphization cache: every
	// concrete instantiation a backend must emit a body for.
	Specializations []*scope.Symbol

	// ModuleManglers maps a module name to the mangling function a
	// backend should use for symbols declared in it.
	ModuleManglers map[string]func(symbolName string) string

	// Sources maps each analyzed file's path to the exact (preprocessed)
	// bytes its tokens were computed against, for diagnostic rendering.
	Sources map[string][]byte
}

func mangler(moduleName string) func(string) string {
	return func(symbolName string) string {
		return mono.Mangle(moduleName, symbolName, "sym", nil)
	}
}
