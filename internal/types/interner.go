package types

import (
	"fmt"
	"strings"

	"github.com/octalide/mach/internal/target"
)

// Interner deduplicates structurally identical composite types across
// every module checked with it (the pipeline uses one per build), so two occurrences of e.g. `[u8; 4]` or `?i32` resolve
// to the same *ArrayType/*PointerType instance and can be compared with
// ==, not just Equal.
type Interner struct {
	target    target.Target
	pointers  map[string]*PointerType
	arrays    map[string]*ArrayType
	funcs     map[string]*FuncType
}

func NewInterner(t target.Target) *Interner {
	return &Interner{
		target:   t,
		pointers: make(map[string]*PointerType),
		arrays:   make(map[string]*ArrayType),
		funcs:    make(map[string]*FuncType),
	}
}

func (in *Interner) Pointer(base Type) *PointerType {
	key := "?"
	if base != nil {
		key += base.String()
	}
	if existing, ok := in.pointers[key]; ok {
		return existing
	}
	p := NewPointer(base, in.target)
	in.pointers[key] = p
	return p
}

func (in *Interner) Array(elem Type, count int) *ArrayType {
	key := fmt.Sprintf("[%s;%d]", elem.String(), count)
	if existing, ok := in.arrays[key]; ok {
		return existing
	}
	a := &ArrayType{Element: elem, Count: count}
	in.arrays[key] = a
	return a
}

func (in *Interner) Func(params []Type, ret Type, variadic bool) *FuncType {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	key := fmt.Sprintf("fun(%s,%v)->%s", strings.Join(parts, ","), variadic, ret.String())
	if existing, ok := in.funcs[key]; ok {
		return existing
	}
	f := NewFunc(params, ret, variadic, in.target)
	in.funcs[key] = f
	return f
}
