package mono

import "github.com/octalide/mach/internal/types"

// BindingCtx binds type-parameter names to concrete types during the
// analysis of one specialization's body. A type name that matches a
// binding in the active context resolves to that binding before the
// checker falls back to an ordinary scope lookup (spec.md section 4.7).
type BindingCtx struct {
	parent   *BindingCtx
	bindings map[string]types.Type
}

// NewBindingCtx builds a binding context from parallel name/type
// slices (the generic's declared type-parameter names and the concrete
// type-argument tuple it is being specialized against).
func NewBindingCtx(parent *BindingCtx, names []string, args []types.Type) *BindingCtx {
	b := &BindingCtx{parent: parent, bindings: make(map[string]types.Type, len(names))}
	for i, n := range names {
		if i < len(args) {
			b.bindings[n] = args[i]
		}
	}
	return b
}

// Lookup searches this context and its parents outward for name,
// mirroring scope.Scope's ancestor-chain lookup.
func (b *BindingCtx) Lookup(name string) (types.Type, bool) {
	for cur := b; cur != nil; cur = cur.parent {
		if t, ok := cur.bindings[name]; ok {
			return t, true
		}
	}
	return nil, false
}
