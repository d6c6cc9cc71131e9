package ir

import (
	"fmt"
	"strconv"
)

// TypeShape is the classified structural category of a declared type,
// independent of its source spelling. Exactly one concrete shape implements
// it per classified type.
type TypeShape interface {
	isShape()
	String() string
}

// PrimKind identifies a fixed-width numeric or boolean primitive.
type PrimKind uint8

const (
	PrimBool PrimKind = iota
	PrimU8
	PrimI8
	PrimU16
	PrimI16
	PrimU32
	PrimI32
	PrimU64
	PrimI64
	PrimF32
	PrimF64
)

var primNames = [...]string{
	PrimBool: "bool",
	PrimU8:   "u8",
	PrimI8:   "i8",
	PrimU16:  "u16",
	PrimI16:  "i16",
	PrimU32:  "u32",
	PrimI32:  "i32",
	PrimU64:  "u64",
	PrimI64:  "i64",
	PrimF32:  "f32",
	PrimF64:  "f64",
}

func (k PrimKind) String() string {
	if int(k) < len(primNames) {
		return primNames[k]
	}
	return "unknown"
}

// Width returns the bit width of the primitive.
func (k PrimKind) Width() int {
	switch k {
	case PrimBool, PrimU8, PrimI8:
		return 8
	case PrimU16, PrimI16:
		return 16
	case PrimU32, PrimI32, PrimF32:
		return 32
	default:
		return 64
	}
}

// Signed reports whether the primitive is a signed integer.
func (k PrimKind) Signed() bool {
	switch k {
	case PrimI8, PrimI16, PrimI32, PrimI64:
		return true
	default:
		return false
	}
}

// Float reports whether the primitive is a floating-point type.
func (k PrimKind) Float() bool {
	return k == PrimF32 || k == PrimF64
}

// Primitive is a fixed-width numeric or boolean type. Width and signedness
// are preserved bit-exact across the boundary.
type Primitive struct {
	Kind PrimKind
}

// Text is the string type.
type Text struct{}

// Boxed is an owned heap indirection around Inner. The box is transparent to
// the receiver: the target side sees the inner type with no residual wrapper.
type Boxed struct {
	Inner TypeShape
}

// Optional wraps Inner in the target's native nullable form.
type Optional struct {
	Inner TypeShape
}

// Sequence is an ordered, growable container of Elem.
type Sequence struct {
	Elem TypeShape
}

// Map is an order-irrelevant key/value mapping.
type Map struct {
	Key   TypeShape
	Value TypeShape
}

// StructRef names a struct declared elsewhere in the set. Forward references
// are permitted; classify.Resolve validates that every ref lands.
type StructRef struct {
	Name string
}

// EnumRef names an enum declared elsewhere in the set.
type EnumRef struct {
	Name string
}

// Unit is the void/no-value type.
type Unit struct{}

func (Primitive) isShape() {}
func (Text) isShape()      {}
func (Boxed) isShape()     {}
func (Optional) isShape()  {}
func (Sequence) isShape()  {}
func (Map) isShape()       {}
func (StructRef) isShape() {}
func (EnumRef) isShape()   {}
func (Unit) isShape()      {}

func (p Primitive) String() string { return p.Kind.String() }
func (Text) String() string        { return "String" }
func (b Boxed) String() string     { return "Box<" + b.Inner.String() + ">" }
func (o Optional) String() string  { return "Option<" + o.Inner.String() + ">" }
func (s Sequence) String() string  { return "Vec<" + s.Elem.String() + ">" }
func (m Map) String() string {
	return "HashMap<" + m.Key.String() + ", " + m.Value.String() + ">"
}
func (r StructRef) String() string { return r.Name }
func (r EnumRef) String() string   { return r.Name }
func (Unit) String() string        { return "()" }

// PrimKindByName maps source spellings to primitive kinds.
var PrimKindByName = map[string]PrimKind{
	"bool": PrimBool,
	"u8":   PrimU8,
	"i8":   PrimI8,
	"u16":  PrimU16,
	"i16":  PrimI16,
	"u32":  PrimU32,
	"i32":  PrimI32,
	"u64":  PrimU64,
	"i64":  PrimI64,
	"f32":  PrimF32,
	"f64":  PrimF64,
}

// MaxUnsigned returns the largest value representable by an unsigned
// primitive of kind k. Panics on non-unsigned kinds.
func MaxUnsigned(k PrimKind) uint64 {
	switch k {
	case PrimU8:
		return 1<<8 - 1
	case PrimU16:
		return 1<<16 - 1
	case PrimU32:
		return 1<<32 - 1
	case PrimU64:
		return 1<<64 - 1
	}
	panic(fmt.Sprintf("MaxUnsigned: %s is not unsigned", strconv.Quote(k.String())))
}
