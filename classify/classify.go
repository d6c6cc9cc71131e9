package classify

import (
	"strconv"

	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// Classifier maps type expressions to shapes. It carries the declared
// struct/enum names so references classify to the right ref shape; unknown
// identifiers still classify (as StructRef) and are caught by Resolve.
type Classifier struct {
	structs map[string]bool
	enums   map[string]bool
}

// New builds a classifier over the declaration set's names.
func New(set *ir.DeclSet) *Classifier {
	c := &Classifier{
		structs: make(map[string]bool),
		enums:   make(map[string]bool),
	}
	for _, d := range set.Structs() {
		c.structs[d.Name] = true
	}
	for _, d := range set.Enums() {
		c.enums[d.Name] = true
	}
	return c
}

// Classify returns the shape of a single type expression, or an
// unsupported_type_kind error when no rule matches. owner is the enclosing
// declaration name, used for error context and to resolve Self.
func (c *Classifier) Classify(owner string, path []string, expr ir.TypeExpr) (ir.TypeShape, error) {
	switch {
	case expr.Name == "Box" && len(expr.Args) == 1:
		inner, err := c.Classify(owner, append(path, "[box]"), expr.Args[0])
		if err != nil {
			return nil, err
		}
		return ir.Boxed{Inner: inner}, nil

	case expr.Name == "Option" && len(expr.Args) == 1:
		inner, err := c.Classify(owner, append(path, "[some]"), expr.Args[0])
		if err != nil {
			return nil, err
		}
		return ir.Optional{Inner: inner}, nil

	case expr.Name == "Vec" && len(expr.Args) == 1:
		elem, err := c.Classify(owner, append(path, "[elem]"), expr.Args[0])
		if err != nil {
			return nil, err
		}
		return ir.Sequence{Elem: elem}, nil

	case (expr.Name == "HashMap" || expr.Name == "BTreeMap") && len(expr.Args) == 2:
		key, err := c.Classify(owner, append(path, "[key]"), expr.Args[0])
		if err != nil {
			return nil, err
		}
		value, err := c.Classify(owner, append(path, "[value]"), expr.Args[1])
		if err != nil {
			return nil, err
		}
		return ir.Map{Key: key, Value: value}, nil
	}

	// Container heads are reserved: a bare Vec or a three-argument HashMap is
	// a malformed instantiation, never a declaration reference.
	if reservedHeads[expr.Name] {
		return nil, errors.UnsupportedType(owner, path, expr.String())
	}

	if len(expr.Args) == 0 {
		if kind, ok := ir.PrimKindByName[expr.Name]; ok {
			return ir.Primitive{Kind: kind}, nil
		}
		if expr.Name == "String" {
			return ir.Text{}, nil
		}
		if expr.IsUnit() {
			return ir.Unit{}, nil
		}
		if name, ok := c.refName(owner, expr.Name); ok {
			if c.enums[name] {
				return ir.EnumRef{Name: name}, nil
			}
			// Unknown names classify as struct refs; Resolve rejects
			// them if no declaration materializes.
			return ir.StructRef{Name: name}, nil
		}
	}

	return nil, errors.UnsupportedType(owner, path, expr.String())
}

var reservedHeads = map[string]bool{
	"Box":      true,
	"Option":   true,
	"Vec":      true,
	"HashMap":  true,
	"BTreeMap": true,
}

// refName decides whether an identifier can be a struct/enum reference and
// normalizes Self to the enclosing declaration.
func (c *Classifier) refName(owner, name string) (string, bool) {
	if name == "Self" {
		return owner, owner != ""
	}
	if !isIdent(name) {
		return "", false
	}
	// A lone uppercase letter is an uninstantiated generic parameter, not a
	// declaration reference.
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return "", false
	}
	return name, true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// DeclSet classifies every field, parameter and return type in the set,
// filling the Shape slots in place. Per-declaration failures abort that
// declaration but siblings still classify; all failures are collected in the
// returned report.
func (c *Classifier) DeclSet(set *ir.DeclSet) *errors.Report {
	report := &errors.Report{}

	for _, d := range set.Decls {
		switch decl := d.(type) {
		case *ir.StructDecl:
			report.Add(c.classifyFields(decl.Name, nil, decl.Fields))
		case *ir.EnumDecl:
			for i := range decl.Variants {
				v := &decl.Variants[i]
				if err := c.classifyFields(decl.Name, []string{v.Name}, v.Fields); err != nil {
					report.Add(err)
					break
				}
			}
		case *ir.FunctionSig:
			report.Add(c.classifySig(decl))
		}
	}

	return report
}

func (c *Classifier) classifyFields(owner string, prefix []string, fields []ir.FieldDecl) *errors.Error {
	for i := range fields {
		f := &fields[i]
		path := fieldPath(prefix, f.Name, i)
		shape, err := c.Classify(owner, path, f.Type)
		if err != nil {
			return asStructured(err)
		}
		f.Shape = shape
	}
	return nil
}

func (c *Classifier) classifySig(sig *ir.FunctionSig) *errors.Error {
	for i := range sig.Params {
		p := &sig.Params[i]
		shape, err := c.Classify(sig.Name, []string{p.Name}, p.Type)
		if err != nil {
			return asStructured(err)
		}
		p.Shape = shape
	}

	if sig.Return.IsUnit() {
		sig.ReturnShape = ir.Unit{}
		return nil
	}
	shape, err := c.Classify(sig.Name, []string{"[return]"}, sig.Return)
	if err != nil {
		return asStructured(err)
	}
	sig.ReturnShape = shape
	return nil
}

func fieldPath(prefix []string, name string, index int) []string {
	elem := name
	if elem == "" { // tuple field, addressed by position
		elem = "[" + strconv.Itoa(index) + "]"
	}
	return append(append([]string{}, prefix...), elem)
}

func asStructured(err error) *errors.Error {
	if e, ok := err.(*errors.Error); ok {
		return e
	}
	return errors.Wrap(errors.PhaseClassify, errors.KindInvalidData, err, "classification failed")
}
