package ir

// Decl is a single top-level declaration in the set.
type Decl interface {
	DeclName() string
	isDecl()
}

// FieldDecl is one field of a struct or named-payload variant. Shape is nil
// until classification runs.
type FieldDecl struct {
	Name  string    `json:"name"`
	Type  TypeExpr  `json:"type"`
	Shape TypeShape `json:"-"`
}

// StructDecl is a named or tuple struct. Field order is the source order and
// is preserved through codegen and emission.
type StructDecl struct {
	Name   string      `json:"name"`
	Tuple  bool        `json:"tuple,omitempty"`
	Fields []FieldDecl `json:"fields"`
}

func (d *StructDecl) DeclName() string { return d.Name }
func (*StructDecl) isDecl()            {}

// PayloadKind tells how a variant carries data.
type PayloadKind uint8

const (
	PayloadUnit PayloadKind = iota
	PayloadTuple
	PayloadNamed
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadUnit:
		return "unit"
	case PayloadTuple:
		return "tuple"
	default:
		return "named"
	}
}

// VariantDecl is one variant of an enum. Tuple payload fields have empty
// names; codegen addresses them by position.
type VariantDecl struct {
	Name    string      `json:"name"`
	Payload PayloadKind `json:"payload"`
	Fields  []FieldDecl `json:"fields,omitempty"`
}

// EnumDecl is an enum. If every variant payload is unit the enum maps to the
// target's native enumeration; a single payload variant forces the tagged
// union representation for the whole enum.
type EnumDecl struct {
	Name     string        `json:"name"`
	Variants []VariantDecl `json:"variants"`
}

func (d *EnumDecl) DeclName() string { return d.Name }
func (*EnumDecl) isDecl()            {}

// HasPayload reports whether any variant carries data.
func (d *EnumDecl) HasPayload() bool {
	for _, v := range d.Variants {
		if v.Payload != PayloadUnit {
			return true
		}
	}
	return false
}

// ParamDecl is one function parameter.
type ParamDecl struct {
	Name  string    `json:"name"`
	Type  TypeExpr  `json:"type"`
	Shape TypeShape `json:"-"`
}

// FunctionSig is an exposed function. Return carries the success type;
// fallibility and asynchronicity are orthogonal flags set by the front-end.
type FunctionSig struct {
	Name        string      `json:"name"`
	Params      []ParamDecl `json:"params"`
	Return      TypeExpr    `json:"return"`
	ReturnShape TypeShape   `json:"-"`
	Fallible    bool        `json:"fallible,omitempty"`
	Async       bool        `json:"async,omitempty"`
}

func (d *FunctionSig) DeclName() string { return d.Name }
func (*FunctionSig) isDecl()            {}

// DeclSet is the full input to one generation run, in source declaration
// order. Aggregates (structs and enums) and signatures keep their relative
// source order independently.
type DeclSet struct {
	Decls []Decl
}

// Structs returns the struct declarations in source order.
func (s *DeclSet) Structs() []*StructDecl {
	var out []*StructDecl
	for _, d := range s.Decls {
		if sd, ok := d.(*StructDecl); ok {
			out = append(out, sd)
		}
	}
	return out
}

// Enums returns the enum declarations in source order.
func (s *DeclSet) Enums() []*EnumDecl {
	var out []*EnumDecl
	for _, d := range s.Decls {
		if ed, ok := d.(*EnumDecl); ok {
			out = append(out, ed)
		}
	}
	return out
}

// Funcs returns the function signatures in source order.
func (s *DeclSet) Funcs() []*FunctionSig {
	var out []*FunctionSig
	for _, d := range s.Decls {
		if fd, ok := d.(*FunctionSig); ok {
			out = append(out, fd)
		}
	}
	return out
}

// Aggregates returns structs and enums interleaved in source order.
func (s *DeclSet) Aggregates() []Decl {
	var out []Decl
	for _, d := range s.Decls {
		switch d.(type) {
		case *StructDecl, *EnumDecl:
			out = append(out, d)
		}
	}
	return out
}

// Struct looks up a struct declaration by name.
func (s *DeclSet) Struct(name string) (*StructDecl, bool) {
	for _, d := range s.Decls {
		if sd, ok := d.(*StructDecl); ok && sd.Name == name {
			return sd, true
		}
	}
	return nil, false
}

// Enum looks up an enum declaration by name.
func (s *DeclSet) Enum(name string) (*EnumDecl, bool) {
	for _, d := range s.Decls {
		if ed, ok := d.(*EnumDecl); ok && ed.Name == name {
			return ed, true
		}
	}
	return nil, false
}
