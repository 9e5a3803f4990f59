package mono

import (
	"fmt"
	"strings"

	"github.com/octalide/mach/internal/types"
)

// Mangle computes the backend-visible symbol name for one specialization.
// It is a total function of (module, base name, kind, type-argument
// tuple), so two calls with equal inputs always agree.
func Mangle(module, baseName, kind string, args []types.Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = mangleType(a)
	}
	if module == "" {
		return fmt.Sprintf("%s$%s$%s", baseName, kind, strings.Join(parts, "_"))
	}
	return fmt.Sprintf("%s.%s$%s$%s", module, baseName, kind, strings.Join(parts, "_"))
}

func mangleType(t types.Type) string {
	t = types.Unwrap(t)
	switch v := t.(type) {
	case *types.PointerType:
		if v.IsUntyped() {
			return "Pptr"
		}
		return "P" + mangleType(v.Base)
	case *types.ArrayType:
		return fmt.Sprintf("A%d%s", v.Count, mangleType(v.Element))
	default:
		return sanitize(t.String())
	}
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
