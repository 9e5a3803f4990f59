// Package scope implements lexical scoping and symbol resolution for
// mach: nested scopes chained to a parent, redeclaration/shadowing
// rules, and the global scope seeded with builtin types and reflection
// intrinsics.
package scope

import (
	"fmt"

	"github.com/octalide/mach/internal/types"
)

// Scope is one lexical region: the global scope, a module scope, a
// function body, or a nested block. IsModule marks a module-root scope,
// whose public (non `_`-prefixed) top-level symbols are what `use name;`
// flattens into an importer's scope.
type Scope struct {
	Parent   *Scope
	Name     string
	IsModule bool
	symbols  map[string]*Symbol
	order    []string // declaration order, for stable iteration/diagnostics
}

func New(parent *Scope, name string, isModule bool) *Scope {
	return &Scope{Parent: parent, Name: name, IsModule: isModule, symbols: make(map[string]*Symbol)}
}

// RedeclarationError reports a name bound twice in the same scope.
type RedeclarationError struct {
	Name  string
	Scope string
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("%q is already declared in scope %q", e.Name, e.Scope)
}

// Declare binds sym.Name in s. It is an error to redeclare a name
// already present directly in s (shadowing an outer scope's binding is
// fine and is not a redeclaration).
func (s *Scope) Declare(sym *Symbol) error {
	if _, exists := s.symbols[sym.Name]; exists {
		return &RedeclarationError{Name: sym.Name, Scope: s.Name}
	}
	sym.Owner = s
	s.symbols[sym.Name] = sym
	s.order = append(s.order, sym.Name)
	return nil
}

// Lookup searches s and its ancestors outward, returning the nearest
// binding of name.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal searches only s, not its ancestors.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Symbols returns every symbol declared directly in s, in declaration
// order.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, len(s.order))
	for i, n := range s.order {
		out[i] = s.symbols[n]
	}
	return out
}

// PublicSymbols returns s's exported symbols: those whose name does not
// start with `_`, per the top-level visibility rule.
func (s *Scope) PublicSymbols() []*Symbol {
	var out []*Symbol
	for _, n := range s.order {
		sym := s.symbols[n]
		if IsPublicName(n) {
			out = append(out, sym)
		}
	}
	return out
}

// IsPublicName reports whether a top-level name is implicitly exported:
// every name except one prefixed with `_`.
func IsPublicName(name string) bool {
	return len(name) == 0 || name[0] != '_'
}

// Flatten copies mod's public top-level symbols into dst, implementing
// `use path;` (as opposed to `use alias: path;`, which binds the module
// itself via a single ModulePayload symbol instead).
func Flatten(mod *Scope, dst *Scope) error {
	for _, sym := range mod.PublicSymbols() {
		imported := *sym
		imported.IsImported = true
		if err := dst.Declare(&imported); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------
// Global scope / builtins
// ---------------------------------------------------------------------

const (
	BuiltinArch     = "__SYS_ARCH__"
	BuiltinPlatform = "__SYS_PLAT__"
	BuiltinSizeOf   = "size_of"
	BuiltinAlignOf  = "align_of"
	BuiltinOffsetOf = "offset_of"
)

// NewGlobal builds the root scope seeded with mach's builtin primitive
// types, its three compile-time reflection intrinsics, and the
// __SYS_ARCH__/__SYS_PLAT__ u32 constants.
func NewGlobal() *Scope {
	g := New(nil, "<global>", false)

	prims := map[string]types.Type{
		"void": types.VOID,
		"ptr":  nil, // untyped pointer, materialized per-use by the checker
		"u8":   types.U8,
		"u16":  types.U16,
		"u32":  types.U32,
		"u64":  types.U64,
		"i8":   types.I8,
		"i16":  types.I16,
		"i32":  types.I32,
		"i64":  types.I64,
		"f32":  types.F32,
		"f64":  types.F64,
	}
	for name, t := range prims {
		_ = g.Declare(&Symbol{Name: name, SymKind: KindType, Type: t, IsPublic: true})
	}

	for _, name := range []string{BuiltinSizeOf, BuiltinAlignOf, BuiltinOffsetOf} {
		_ = g.Declare(&Symbol{
			Name:    name,
			SymKind: KindFunc,
			IsPublic: true,
			Func:    &FuncPayload{},
		})
	}

	_ = g.Declare(&Symbol{Name: BuiltinArch, SymKind: KindVal, Type: types.U32, IsPublic: true})
	_ = g.Declare(&Symbol{Name: BuiltinPlatform, SymKind: KindVal, Type: types.U32, IsPublic: true})

	return g
}
