// Package types implements the mach type system: a tagged-union Type per
// spec.md's Data Model, with target-dependent size/alignment computed
// once at construction, plus the assignability and common-type rules the
// type checker consults.
package types

import (
	"fmt"
	"strings"

	"github.com/octalide/mach/internal/target"
)

// Kind tags a Type's concrete representation.
type Kind int

const (
	Void Kind = iota
	Int
	UInt
	Float
	Pointer
	Array
	Function
	Struct
	Union
	Alias
	Meta
)

// Type is the common interface every concrete type representation
// implements.
type Type interface {
	Kind() Kind
	Size() int
	Align() int
	String() string
}

// AlignUp rounds size up to the next multiple of alignment, mirroring the
// original align_up(size, alignment) = (size + alignment - 1) & ~(alignment - 1).
func AlignUp(size, alignment int) int {
	if alignment <= 1 {
		return size
	}
	return (size + alignment - 1) &^ (alignment - 1)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ---------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------

// VoidType represents the absence of a value.
type VoidType struct{}

func (VoidType) Kind() Kind    { return Void }
func (VoidType) Size() int     { return 0 }
func (VoidType) Align() int    { return 1 }
func (VoidType) String() string { return "void" }

// IntType is a signed or unsigned integer of a fixed bit width.
type IntType struct {
	Width    int // 8, 16, 32, 64
	Unsigned bool
}

func (t *IntType) Kind() Kind {
	if t.Unsigned {
		return UInt
	}
	return Int
}
func (t *IntType) Size() int  { return t.Width / 8 }
func (t *IntType) Align() int { return t.Size() }
func (t *IntType) String() string {
	if t.Unsigned {
		return fmt.Sprintf("u%d", t.Width)
	}
	return fmt.Sprintf("i%d", t.Width)
}

// FloatType is an IEEE-754 float of a fixed bit width.
type FloatType struct {
	Width int // 32, 64
}

func (t *FloatType) Kind() Kind    { return Float }
func (t *FloatType) Size() int     { return t.Width / 8 }
func (t *FloatType) Align() int    { return t.Size() }
func (t *FloatType) String() string { return fmt.Sprintf("f%d", t.Width) }

// Canonical built-in primitives, sized independently of the target.
var (
	VOID = VoidType{}
	U8   = &IntType{Width: 8, Unsigned: true}
	U16  = &IntType{Width: 16, Unsigned: true}
	U32  = &IntType{Width: 32, Unsigned: true}
	U64  = &IntType{Width: 64, Unsigned: true}
	I8   = &IntType{Width: 8}
	I16  = &IntType{Width: 16}
	I32  = &IntType{Width: 32}
	I64  = &IntType{Width: 64}
	F32  = &FloatType{Width: 32}
	F64  = &FloatType{Width: 64}
)

// ---------------------------------------------------------------------
// Pointer
// ---------------------------------------------------------------------

// PointerType points to Base, or is the untyped `ptr` when Base is nil.
type PointerType struct {
	Base   Type
	target target.Target
}

func NewPointer(base Type, t target.Target) *PointerType {
	return &PointerType{Base: base, target: t}
}

func (p *PointerType) Kind() Kind { return Pointer }
func (p *PointerType) Size() int  { return p.target.PointerSize() }
func (p *PointerType) Align() int { return p.target.PointerSize() }
func (p *PointerType) IsUntyped() bool { return p.Base == nil }
func (p *PointerType) String() string {
	if p.Base == nil {
		return "ptr"
	}
	return "?" + p.Base.String()
}

// ---------------------------------------------------------------------
// Array
// ---------------------------------------------------------------------

// ArrayType is a fixed-size (Count >= 0) or unbounded (Count == -1) array.
// The element type is shared, not owned, by every array referencing it.
type ArrayType struct {
	Element Type
	Count   int
}

func (a *ArrayType) Kind() Kind { return Array }
func (a *ArrayType) Size() int {
	if a.Count < 0 {
		return 0
	}
	return a.Element.Size() * a.Count
}
func (a *ArrayType) Align() int { return a.Element.Align() }
func (a *ArrayType) String() string {
	if a.Count < 0 {
		return fmt.Sprintf("[%s]", a.Element)
	}
	return fmt.Sprintf("[%s; %d]", a.Element, a.Count)
}

// ---------------------------------------------------------------------
// Function
// ---------------------------------------------------------------------

type FuncType struct {
	Params   []Type
	Return   Type
	Variadic bool
	target   target.Target
}

func NewFunc(params []Type, ret Type, variadic bool, t target.Target) *FuncType {
	return &FuncType{Params: params, Return: ret, Variadic: variadic, target: t}
}

func (f *FuncType) Kind() Kind { return Function }
func (f *FuncType) Size() int  { return f.target.PointerSize() }
func (f *FuncType) Align() int { return f.target.PointerSize() }
func (f *FuncType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	variadic := ""
	if f.Variadic {
		variadic = ", ..."
	}
	return fmt.Sprintf("fun(%s%s) -> %s", strings.Join(parts, ", "), variadic, f.Return)
}

// ---------------------------------------------------------------------
// Struct / Union
// ---------------------------------------------------------------------

// Field is one named, laid-out member of a struct or union.
type Field struct {
	Name   string
	Type   Type
	Offset int // always 0 for union fields
}

// StructType lays fields out in declaration order: each field sits at
// align_up(cursor, field.Align()); the struct's own size is padded up to
// its alignment, which is the max field alignment.
type StructType struct {
	Name   string
	Fields []Field
	size   int
	align  int
}

// NewStruct computes field offsets and overall size/alignment per
// spec.md's layout invariants and the original type_init(TYPE_STRUCT).
func NewStruct(name string, fields []Field) *StructType {
	cursor := 0
	align := 1
	laidOut := make([]Field, len(fields))
	for i, f := range fields {
		fa := f.Type.Align()
		if fa == 0 {
			fa = 1
		}
		offset := AlignUp(cursor, fa)
		laidOut[i] = Field{Name: f.Name, Type: f.Type, Offset: offset}
		cursor = offset + f.Type.Size()
		align = maxInt(align, fa)
	}
	return &StructType{Name: name, Fields: laidOut, size: AlignUp(cursor, align), align: align}
}

func (s *StructType) Kind() Kind { return Struct }
func (s *StructType) Size() int  { return s.size }
func (s *StructType) Align() int { return s.align }
func (s *StructType) String() string {
	if s.Name != "" {
		return s.Name
	}
	return "str {...}"
}

// FieldByName returns the field named n and true, or the zero Field and
// false.
func (s *StructType) FieldByName(n string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == n {
			return f, true
		}
	}
	return Field{}, false
}

// UnionType places every field at offset 0; size is the max field size
// rounded up to the max field alignment.
type UnionType struct {
	Name   string
	Fields []Field
	size   int
	align  int
}

func NewUnion(name string, fields []Field) *UnionType {
	size, align := 0, 1
	laidOut := make([]Field, len(fields))
	for i, f := range fields {
		fa := f.Type.Align()
		if fa == 0 {
			fa = 1
		}
		laidOut[i] = Field{Name: f.Name, Type: f.Type, Offset: 0}
		size = maxInt(size, f.Type.Size())
		align = maxInt(align, fa)
	}
	return &UnionType{Name: name, Fields: laidOut, size: AlignUp(size, align), align: align}
}

func (u *UnionType) Kind() Kind { return Union }
func (u *UnionType) Size() int  { return u.size }
func (u *UnionType) Align() int { return u.align }
func (u *UnionType) String() string {
	if u.Name != "" {
		return u.Name
	}
	return "uni {...}"
}

func (u *UnionType) FieldByName(n string) (Field, bool) {
	for _, f := range u.Fields {
		if f.Name == n {
			return f, true
		}
	}
	return Field{}, false
}

// ---------------------------------------------------------------------
// Alias
// ---------------------------------------------------------------------

// AliasType is a named transparent wrapper: it is equal to and
// assignable with its Target for every purpose except diagnostics,
// where the alias's own Name is reported.
type AliasType struct {
	Name   string
	Target Type
}

func (a *AliasType) Kind() Kind    { return Alias }
func (a *AliasType) Size() int     { return a.Target.Size() }
func (a *AliasType) Align() int    { return a.Target.Align() }
func (a *AliasType) String() string { return a.Name }

// Unwrap follows a chain of aliases down to the first non-alias type.
func Unwrap(t Type) Type {
	for {
		a, ok := t.(*AliasType)
		if !ok {
			return t
		}
		t = a.Target
	}
}

// ---------------------------------------------------------------------
// Meta (compile-time type-valued expressions)
// ---------------------------------------------------------------------

// MetaType is the type of a type-valued compile-time expression, used
// only as the operand type for size_of/align_of/offset_of. It has no
// runtime representation and so no size/alignment of its own.
type MetaType struct {
	Of Type
}

func (m *MetaType) Kind() Kind    { return Meta }
func (m *MetaType) Size() int     { return 0 }
func (m *MetaType) Align() int    { return 1 }
func (m *MetaType) String() string { return fmt.Sprintf("meta(%s)", m.Of) }

// ---------------------------------------------------------------------
// Equality
// ---------------------------------------------------------------------

// Equal reports structural equality after unwrapping aliases on both
// sides (spec.md: "Alias types are transparent for equality").
func Equal(a, b Type) bool {
	a, b = Unwrap(a), Unwrap(b)
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case VoidType:
		return true
	case *IntType:
		bv := b.(*IntType)
		return av.Width == bv.Width && av.Unsigned == bv.Unsigned
	case *FloatType:
		return av.Width == b.(*FloatType).Width
	case *PointerType:
		bv := b.(*PointerType)
		if av.IsUntyped() || bv.IsUntyped() {
			return av.IsUntyped() && bv.IsUntyped()
		}
		return Equal(av.Base, bv.Base)
	case *ArrayType:
		bv := b.(*ArrayType)
		return av.Count == bv.Count && Equal(av.Element, bv.Element)
	case *FuncType:
		bv := b.(*FuncType)
		if len(av.Params) != len(bv.Params) || av.Variadic != bv.Variadic {
			return false
		}
		for i := range av.Params {
			if !Equal(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return Equal(av.Return, bv.Return)
	case *StructType:
		bv := b.(*StructType)
		return sameFields(av.Fields, bv.Fields)
	case *UnionType:
		bv := b.(*UnionType)
		return sameFields(av.Fields, bv.Fields)
	case *MetaType:
		return Equal(av.Of, b.(*MetaType).Of)
	default:
		return false
	}
}

func sameFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !Equal(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}
