package types

// Assignable reports whether a value of type from may be assigned or
// passed where a value of type to is expected, per spec.md's
// assignability rules: structural equality post-alias-unwrap, integer
// widening within one signedness (never narrowing), float widening, and
// the untyped `ptr` compatible with any pointer type in either direction.
// It knows nothing of literals: the type checker refines an integer
// literal to the expected type before asking.
func Assignable(from, to Type) bool {
	from, to = Unwrap(from), Unwrap(to)

	if Equal(from, to) {
		return true
	}

	switch toT := to.(type) {
	case *IntType:
		fromT, ok := from.(*IntType)
		if !ok {
			return false
		}
		return fromT.Unsigned == toT.Unsigned && fromT.Width <= toT.Width
	case *FloatType:
		fromT, ok := from.(*FloatType)
		if !ok {
			return false
		}
		return fromT.Width <= toT.Width
	case *PointerType:
		fromT, ok := from.(*PointerType)
		if !ok {
			return false
		}
		if toT.IsUntyped() || fromT.IsUntyped() {
			return true
		}
		return Equal(fromT.Base, toT.Base)
	}
	return false
}

// CommonType computes the type a binary operator's operands are
// promoted to: the wider of two integers of the same signedness, the
// wider of two floats, a float when paired with an integer, the shared
// type when both operands already agree, and for pointers, the typed
// side when one is the untyped `ptr` or the same base when both are
// typed. Returns nil if no common type exists for the pairing.
func CommonType(a, b Type) Type {
	a, b = Unwrap(a), Unwrap(b)
	if Equal(a, b) {
		return a
	}

	ap, aIsPtr := a.(*PointerType)
	bp, bIsPtr := b.(*PointerType)
	if aIsPtr && bIsPtr {
		if ap.IsUntyped() {
			return bp
		}
		if bp.IsUntyped() {
			return ap
		}
		if Equal(ap.Base, bp.Base) {
			return ap
		}
		return nil
	}

	ai, aIsInt := a.(*IntType)
	bi, bIsInt := b.(*IntType)
	af, aIsFloat := a.(*FloatType)
	bf, bIsFloat := b.(*FloatType)

	switch {
	case aIsInt && bIsInt:
		if ai.Unsigned != bi.Unsigned {
			return nil
		}
		if ai.Width >= bi.Width {
			return ai
		}
		return bi
	case aIsFloat && bIsFloat:
		if af.Width >= bf.Width {
			return af
		}
		return bf
	case aIsFloat && bIsInt:
		return af
	case aIsInt && bIsFloat:
		return bf
	}
	return nil
}

// IsNumeric reports whether t is an integer or float type (post-alias).
func IsNumeric(t Type) bool {
	switch Unwrap(t).(type) {
	case *IntType, *FloatType:
		return true
	}
	return false
}

// IsInteger reports whether t is an integer type (post-alias).
func IsInteger(t Type) bool {
	_, ok := Unwrap(t).(*IntType)
	return ok
}
