// Package typecheck implements mach's bidirectional type checker: a
// two-phase traversal per module (register provisional top-level symbol
// types, then resolve bodies) that attaches a resolved types.Type, and
// where applicable a bound scope.Symbol, to every expression node.
//
// The scope/symbol-building pass described separately in spec.md
// section 4.5 is fused into this package's phase one: declaring a
// top-level name and computing its provisional type happen in the same
// walk, since the latter is barely more work once the former is done.
package typecheck

import (
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/mono"
	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/target"
	"github.com/octalide/mach/internal/types"
)

// funcCtx carries the enclosing function's declared return type and loop
// nesting depth, consulted by ret/brk/cnt checking.
type funcCtx struct {
	Return    types.Type
	LoopDepth int
}

// Context is the immutable value threaded through every check call.
// Entering a new scope, function, loop, or generic binding produces a
// new Context via the With* helpers rather than mutating a shared one
// (spec.md section 9's note on the original's ambient SymbolTable
// state).
type Context struct {
	Module string
	File   string

	Scope    *scope.Scope
	Bindings *mono.BindingCtx
	Func     *funcCtx
}

func (c Context) WithScope(s *scope.Scope) Context {
	c.Scope = s
	return c
}

func (c Context) WithBindings(b *mono.BindingCtx) Context {
	c.Bindings = b
	return c
}

func (c Context) WithFunc(f *funcCtx) Context {
	c.Func = f
	return c
}

func (c Context) inLoop() bool { return c.Func != nil && c.Func.LoopDepth > 0 }

func (c Context) enterLoop() Context {
	f := *c.Func
	f.LoopDepth++
	c.Func = &f
	return c
}

// Checker owns the resources shared across every module of a build: the
// target being compiled for, its type interner, the monomorphization
// coordinator, and the diagnostic sink every stage reports to. Modules
// maps a canonical module name to its already-registered scope, so
// `use` can flatten or bind a dependency that was registered earlier in
// the build's topological order.
type Checker struct {
	Target   target.Target
	Interner *types.Interner
	Mono     *mono.Coordinator
	Sink     *diag.Sink

	Modules map[string]*scope.Scope
}

func NewChecker(t target.Target, interner *types.Interner, coord *mono.Coordinator, sink *diag.Sink) *Checker {
	return &Checker{
		Target:   t,
		Interner: interner,
		Mono:     coord,
		Sink:     sink,
		Modules:  make(map[string]*scope.Scope),
	}
}

func (c *Checker) ptrType(base types.Type) *types.PointerType { return c.Interner.Pointer(base) }
