package dart

import (
	"fmt"
	"strings"

	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// generateStruct emits the Dart class for a struct declaration plus its
// encode/decode pair. Fields are walked in declared order in the class, the
// encoder and the decoder alike; that symmetry is what makes
// decode(encode(x)) reproduce x.
func (e *Emitter) generateStruct(decl *ir.StructDecl) (string, error) {
	className := typeName(decl.Name)
	var b strings.Builder

	type member struct {
		name     string
		dartType string
		shape    ir.TypeShape
	}
	members := make([]member, 0, len(decl.Fields))
	for i, f := range decl.Fields {
		if f.Shape == nil {
			return "", errors.New(errors.PhaseCodegen, errors.KindInvalidData).
				Decl(decl.Name).
				Detail("field %q has no shape; classification did not run", f.Name).
				Build()
		}
		dartType, err := e.mapper.TypeName(decl.Name, []string{f.Name}, f.Shape)
		if err != nil {
			return "", err
		}

		name := memberName(f.Name)
		if decl.Tuple {
			name = tupleFieldName(i)
		}
		members = append(members, member{name: name, dartType: dartType, shape: f.Shape})
		e.codecs.need(f.Shape)
	}

	// Class declaration.
	fmt.Fprintf(&b, "class %s {\n", className)
	for _, m := range members {
		fmt.Fprintf(&b, "  final %s %s;\n", m.dartType, m.name)
	}
	b.WriteString("\n")
	if decl.Tuple {
		fmt.Fprintf(&b, "  const %s(", className)
		for i, m := range members {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "this.%s", m.name)
		}
		b.WriteString(");\n")
	} else {
		fmt.Fprintf(&b, "  const %s({", className)
		for i, m := range members {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "required this.%s", m.name)
		}
		b.WriteString("});\n")
	}
	b.WriteString("}\n\n")

	// Encoder: fields in declared order.
	suffix := snake(decl.Name)
	fmt.Fprintf(&b, "void _api2wire_%s(%s raw, WireWriter writer) {\n", suffix, className)
	for _, m := range members {
		fmt.Fprintf(&b, "  %s;\n", e.mapper.EncodeCall(m.shape, "raw."+m.name))
	}
	b.WriteString("}\n\n")

	// Decoder: same order, then construct.
	fmt.Fprintf(&b, "%s _wire2api_%s(WireReader reader) {\n", className, suffix)
	if decl.Tuple {
		fmt.Fprintf(&b, "  return %s(\n", className)
		for _, m := range members {
			fmt.Fprintf(&b, "    %s,\n", e.mapper.DecodeCall(m.shape))
		}
		b.WriteString("  );\n}\n\n")
	} else {
		fmt.Fprintf(&b, "  return %s(\n", className)
		for _, m := range members {
			fmt.Fprintf(&b, "    %s: %s,\n", m.name, e.mapper.DecodeCall(m.shape))
		}
		b.WriteString("  );\n}\n\n")
	}

	return b.String(), nil
}
