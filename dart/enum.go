package dart

import (
	"fmt"
	"strings"

	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// generateEnum emits the Dart representation of an enum and its codec.
//
// Unit-only enums map to Dart's native enum. A single payload-carrying
// variant forces the tagged-union form for the whole declaration: an
// abstract base class plus one case class per variant, encode writing the
// variant ordinal before the payload and decode dispatching on it. The
// native enum cannot carry data, so mixing the two forms is not an option.
func (e *Emitter) generateEnum(decl *ir.EnumDecl) (string, error) {
	if decl.HasPayload() {
		return e.generateTaggedUnion(decl)
	}
	return e.generateNativeEnum(decl), nil
}

func (e *Emitter) generateNativeEnum(decl *ir.EnumDecl) string {
	enumName := typeName(decl.Name)
	suffix := snake(decl.Name)
	var b strings.Builder

	fmt.Fprintf(&b, "enum %s {\n", enumName)
	for _, v := range decl.Variants {
		fmt.Fprintf(&b, "  %s,\n", memberName(v.Name))
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "void _api2wire_%s(%s raw, WireWriter writer) {\n", suffix, enumName)
	b.WriteString("  writer.writeUint32(raw.index);\n}\n\n")

	fmt.Fprintf(&b, "%s _wire2api_%s(WireReader reader) {\n", enumName, suffix)
	b.WriteString("  final tag = reader.readUint32();\n")
	fmt.Fprintf(&b, "  if (tag >= %s.values.length) {\n", enumName)
	fmt.Fprintf(&b, "    throw FrbUnknownVariantError('%s', tag);\n  }\n", enumName)
	fmt.Fprintf(&b, "  return %s.values[tag];\n}\n\n", enumName)

	return b.String()
}

func (e *Emitter) generateTaggedUnion(decl *ir.EnumDecl) (string, error) {
	baseName := typeName(decl.Name)
	suffix := snake(decl.Name)
	var b strings.Builder

	// Shared variant interface: a closed, enumerable set of case classes.
	fmt.Fprintf(&b, "abstract class %s {\n  const %s();\n}\n\n", baseName, baseName)

	type caseMember struct {
		name     string
		dartType string
		shape    ir.TypeShape
	}
	caseMembers := make([][]caseMember, len(decl.Variants))

	for vi, v := range decl.Variants {
		caseName := caseClassName(decl.Name, v.Name)
		members := make([]caseMember, 0, len(v.Fields))
		for i, f := range v.Fields {
			if f.Shape == nil {
				return "", errors.New(errors.PhaseCodegen, errors.KindInvalidData).
					Decl(decl.Name).
					Path(v.Name, f.Name).
					Detail("payload field has no shape; classification did not run").
					Build()
			}
			dartType, err := e.mapper.TypeName(decl.Name, []string{v.Name, f.Name}, f.Shape)
			if err != nil {
				return "", err
			}
			name := memberName(f.Name)
			if v.Payload == ir.PayloadTuple {
				name = tupleFieldName(i)
			}
			members = append(members, caseMember{name: name, dartType: dartType, shape: f.Shape})
			e.codecs.need(f.Shape)
		}
		caseMembers[vi] = members

		fmt.Fprintf(&b, "class %s extends %s {\n", caseName, baseName)
		for _, m := range members {
			fmt.Fprintf(&b, "  final %s %s;\n", m.dartType, m.name)
		}
		if len(members) > 0 {
			b.WriteString("\n")
		}
		switch v.Payload {
		case ir.PayloadUnit:
			fmt.Fprintf(&b, "  const %s();\n", caseName)
		case ir.PayloadTuple:
			fmt.Fprintf(&b, "  const %s(", caseName)
			for i, m := range members {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "this.%s", m.name)
			}
			b.WriteString(");\n")
		case ir.PayloadNamed:
			fmt.Fprintf(&b, "  const %s({", caseName)
			for i, m := range members {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "required this.%s", m.name)
			}
			b.WriteString("});\n")
		}
		b.WriteString("}\n\n")
	}

	// Encoder: discriminant first, payload second.
	fmt.Fprintf(&b, "void _api2wire_%s(%s raw, WireWriter writer) {\n", suffix, baseName)
	for vi, v := range decl.Variants {
		caseName := caseClassName(decl.Name, v.Name)
		fmt.Fprintf(&b, "  if (raw is %s) {\n", caseName)
		fmt.Fprintf(&b, "    writer.writeUint32(%d);\n", vi)
		for _, m := range caseMembers[vi] {
			fmt.Fprintf(&b, "    %s;\n", e.mapper.EncodeCall(m.shape, "raw."+m.name))
		}
		b.WriteString("    return;\n  }\n")
	}
	fmt.Fprintf(&b, "  throw FrbStateError('unknown %s subtype: $raw');\n}\n\n", baseName)

	// Decoder: dispatch on the discriminant before touching the payload.
	fmt.Fprintf(&b, "%s _wire2api_%s(WireReader reader) {\n", baseName, suffix)
	b.WriteString("  final tag = reader.readUint32();\n")
	b.WriteString("  switch (tag) {\n")
	for vi, v := range decl.Variants {
		caseName := caseClassName(decl.Name, v.Name)
		fmt.Fprintf(&b, "    case %d:\n", vi)
		switch v.Payload {
		case ir.PayloadUnit:
			fmt.Fprintf(&b, "      return %s();\n", caseName)
		case ir.PayloadTuple:
			fmt.Fprintf(&b, "      return %s(\n", caseName)
			for _, m := range caseMembers[vi] {
				fmt.Fprintf(&b, "        %s,\n", e.mapper.DecodeCall(m.shape))
			}
			b.WriteString("      );\n")
		case ir.PayloadNamed:
			fmt.Fprintf(&b, "      return %s(\n", caseName)
			for _, m := range caseMembers[vi] {
				fmt.Fprintf(&b, "        %s: %s,\n", m.name, e.mapper.DecodeCall(m.shape))
			}
			b.WriteString("      );\n")
		}
	}
	b.WriteString("    default:\n")
	fmt.Fprintf(&b, "      throw FrbUnknownVariantError('%s', tag);\n", baseName)
	b.WriteString("  }\n}\n\n")

	return b.String(), nil
}
