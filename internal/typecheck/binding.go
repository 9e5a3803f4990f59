package typecheck

import (
	"github.com/octalide/mach/internal/mono"
	"github.com/octalide/mach/internal/types"
)

// newTypeParamBindings builds a root BindingCtx for a fresh specialization:
// no parent, since a generic's own type parameters never nest inside an
// enclosing generic's bindings (mach has no nested generic declarations).
func newTypeParamBindings(names []string, args []types.Type) *mono.BindingCtx {
	return mono.NewBindingCtx(nil, names, args)
}
