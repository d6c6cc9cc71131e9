package classify

import (
	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// Resolve validates that every StructRef/EnumRef in the classified set lands
// on a declaration. It returns the first dangling reference as an
// unresolved_type_reference error, which is fatal for the whole run: codecs
// downstream cannot be emitted against a missing type.
func Resolve(set *ir.DeclSet) error {
	names := make(map[string]bool)
	for _, d := range set.Decls {
		switch d.(type) {
		case *ir.StructDecl, *ir.EnumDecl:
			names[d.DeclName()] = true
		}
	}

	for _, d := range set.Decls {
		switch decl := d.(type) {
		case *ir.StructDecl:
			for i, f := range decl.Fields {
				if err := resolveShape(names, decl.Name, fieldPath(nil, f.Name, i), f.Shape); err != nil {
					return err
				}
			}
		case *ir.EnumDecl:
			for _, v := range decl.Variants {
				for i, f := range v.Fields {
					if err := resolveShape(names, decl.Name, fieldPath([]string{v.Name}, f.Name, i), f.Shape); err != nil {
						return err
					}
				}
			}
		case *ir.FunctionSig:
			for _, p := range decl.Params {
				if err := resolveShape(names, decl.Name, []string{p.Name}, p.Shape); err != nil {
					return err
				}
			}
			if err := resolveShape(names, decl.Name, []string{"[return]"}, decl.ReturnShape); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveShape(names map[string]bool, decl string, path []string, shape ir.TypeShape) error {
	switch s := shape.(type) {
	case nil:
		// Declaration failed classification; the report already carries it.
		return nil
	case ir.StructRef:
		if !names[s.Name] {
			return errors.UnresolvedRef(decl, path, s.Name)
		}
	case ir.EnumRef:
		if !names[s.Name] {
			return errors.UnresolvedRef(decl, path, s.Name)
		}
	case ir.Boxed:
		return resolveShape(names, decl, append(path, "[box]"), s.Inner)
	case ir.Optional:
		return resolveShape(names, decl, append(path, "[some]"), s.Inner)
	case ir.Sequence:
		return resolveShape(names, decl, append(path, "[elem]"), s.Elem)
	case ir.Map:
		if err := resolveShape(names, decl, append(path, "[key]"), s.Key); err != nil {
			return err
		}
		return resolveShape(names, decl, append(path, "[value]"), s.Value)
	}
	return nil
}
