// Package mono implements generic monomorphization: a work-queue driven
// specializer keyed by (generic symbol, type-argument tuple), so a
// generic function/struct/union is never analyzed against unbound
// type-parameter names — only against concrete instantiations.
package mono

import (
	"fmt"
	"strings"

	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/types"
)

// SpecializationKey identifies one concrete instantiation of a generic
// symbol. Equality requires the identical generic symbol and a
// structurally equal type-argument tuple (spec.md section 3).
type SpecializationKey struct {
	Generic *scope.Symbol
	Args    []types.Type
}

// hash renders the key as a string so it can be used as a Go map key
// without relying on types.Type's identity (composite types are not
// comparable with ==, only with types.Equal). It encodes the generic
// symbol's pointer identity, not just its Name — two distinct symbols
// can legally share a name across modules (redeclaration is only
// checked per-scope), and hashing on Name alone would collide them.
func (k SpecializationKey) hash() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%p", k.Generic)
	b.WriteByte('|')
	b.WriteString(k.Generic.Name)
	b.WriteByte('|')
	for i, a := range k.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
	}
	return b.String()
}

// Equal reports whether two keys name the same generic symbol and carry
// structurally equal type-argument tuples.
func (k SpecializationKey) Equal(o SpecializationKey) bool {
	if k.Generic != o.Generic || len(k.Args) != len(o.Args) {
		return false
	}
	for i := range k.Args {
		if !types.Equal(k.Args[i], o.Args[i]) {
			return false
		}
	}
	return true
}
