package dart

import (
	"fmt"
	"strings"

	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// codecRegistry collects every shape whose codec must be emitted as a
// standalone support function (primitives, strings, optionals, sequences,
// maps). Aggregates emit their own codecs next to their class declarations,
// so refs are not registered here. Order is first-use order, which follows
// source declaration order and keeps output deterministic.
type codecRegistry struct {
	mapper *Mapper
	shapes map[string]ir.TypeShape
	order  []string
}

func newCodecRegistry(m *Mapper) *codecRegistry {
	return &codecRegistry{
		mapper: m,
		shapes: make(map[string]ir.TypeShape),
	}
}

// need registers a shape (and, recursively, its children) for support codec
// emission.
func (r *codecRegistry) need(shape ir.TypeShape) {
	switch s := shape.(type) {
	case ir.Boxed:
		// Transparent: the box reuses the inner codec.
		r.need(s.Inner)
		return
	case ir.StructRef, ir.EnumRef:
		// Emitted with the aggregate itself.
		return
	case ir.Optional:
		r.need(s.Inner)
	case ir.Sequence:
		r.need(s.Elem)
	case ir.Map:
		r.need(s.Key)
		r.need(s.Value)
	}

	suffix := codecSuffix(shape)
	if _, seen := r.shapes[suffix]; seen {
		return
	}
	r.shapes[suffix] = shape
	r.order = append(r.order, suffix)
}

// emit writes the support codec bodies in registration order.
func (r *codecRegistry) emit(b *strings.Builder) error {
	for _, suffix := range r.order {
		if err := r.emitOne(b, suffix, r.shapes[suffix]); err != nil {
			return err
		}
	}
	return nil
}

func (r *codecRegistry) emitOne(b *strings.Builder, suffix string, shape ir.TypeShape) error {
	switch s := shape.(type) {
	case ir.Primitive:
		emitPrimitiveCodec(b, suffix, s.Kind)
	case ir.Text:
		fmt.Fprintf(b, "void _api2wire_String(String raw, WireWriter writer) {\n")
		fmt.Fprintf(b, "  writer.writeString(raw);\n}\n\n")
		fmt.Fprintf(b, "String _wire2api_String(WireReader reader) {\n")
		fmt.Fprintf(b, "  return reader.readString();\n}\n\n")
	case ir.Unit:
		fmt.Fprintf(b, "void _api2wire_unit(void raw, WireWriter writer) {}\n\n")
		fmt.Fprintf(b, "void _wire2api_unit(WireReader reader) {}\n\n")
	case ir.Optional:
		return r.emitOptional(b, suffix, s)
	case ir.Sequence:
		return r.emitSequence(b, suffix, s)
	case ir.Map:
		return r.emitMap(b, suffix, s)
	default:
		return fmt.Errorf("no support codec for shape %s", shape)
	}
	return nil
}

func emitPrimitiveCodec(b *strings.Builder, suffix string, kind ir.PrimKind) {
	dartType := "int"
	var write, read string

	switch kind {
	case ir.PrimBool:
		dartType = "bool"
		write = "writer.writeUint8(raw ? 1 : 0)"
		read = "reader.readUint8() != 0"
	case ir.PrimU8:
		write, read = "writer.writeUint8(raw)", "reader.readUint8()"
	case ir.PrimI8:
		write, read = "writer.writeInt8(raw)", "reader.readInt8()"
	case ir.PrimU16:
		write, read = "writer.writeUint16(raw)", "reader.readUint16()"
	case ir.PrimI16:
		write, read = "writer.writeInt16(raw)", "reader.readInt16()"
	case ir.PrimU32:
		write, read = "writer.writeUint32(raw)", "reader.readUint32()"
	case ir.PrimI32:
		write, read = "writer.writeInt32(raw)", "reader.readInt32()"
	case ir.PrimU64:
		// BigInt keeps the full unsigned range; Dart int is signed 64-bit.
		dartType = "BigInt"
		write, read = "writer.writeUint64Big(raw)", "reader.readUint64Big()"
	case ir.PrimI64:
		write, read = "writer.writeInt64(raw)", "reader.readInt64()"
	case ir.PrimF32:
		dartType = "double"
		write, read = "writer.writeFloat32(raw)", "reader.readFloat32()"
	case ir.PrimF64:
		dartType = "double"
		write, read = "writer.writeFloat64(raw)", "reader.readFloat64()"
	}

	fmt.Fprintf(b, "void _api2wire_%s(%s raw, WireWriter writer) {\n  %s;\n}\n\n", suffix, dartType, write)
	fmt.Fprintf(b, "%s _wire2api_%s(WireReader reader) {\n  return %s;\n}\n\n", dartType, suffix, read)
}

func (r *codecRegistry) emitOptional(b *strings.Builder, suffix string, s ir.Optional) error {
	inner, err := r.mapper.TypeName("", nil, s.Inner)
	if err != nil {
		return err
	}
	nullable := inner
	if !strings.HasSuffix(nullable, "?") {
		nullable += "?"
	}

	fmt.Fprintf(b, "void _api2wire_%s(%s raw, WireWriter writer) {\n", suffix, nullable)
	fmt.Fprintf(b, "  if (raw == null) {\n    writer.writeUint8(0);\n    return;\n  }\n")
	fmt.Fprintf(b, "  writer.writeUint8(1);\n")
	fmt.Fprintf(b, "  %s;\n}\n\n", r.mapper.EncodeCall(s.Inner, "raw"))

	fmt.Fprintf(b, "%s _wire2api_%s(WireReader reader) {\n", nullable, suffix)
	fmt.Fprintf(b, "  if (reader.readUint8() == 0) {\n    return null;\n  }\n")
	fmt.Fprintf(b, "  return %s;\n}\n\n", r.mapper.DecodeCall(s.Inner))
	return nil
}

func (r *codecRegistry) emitSequence(b *strings.Builder, suffix string, s ir.Sequence) error {
	listType, err := r.mapper.TypeName("", nil, s)
	if err != nil {
		return err
	}

	// Byte sequences move as a single block; every other element type loops
	// through its element codec.
	if p, ok := s.Elem.(ir.Primitive); ok && p.Kind == ir.PrimU8 {
		fmt.Fprintf(b, "void _api2wire_%s(Uint8List raw, WireWriter writer) {\n", suffix)
		fmt.Fprintf(b, "  writer.writeUint64(raw.length);\n")
		fmt.Fprintf(b, "  writer.writeBytes(raw);\n}\n\n")
		fmt.Fprintf(b, "Uint8List _wire2api_%s(WireReader reader) {\n", suffix)
		fmt.Fprintf(b, "  final len = reader.readUint64();\n")
		fmt.Fprintf(b, "  return reader.readBytes(len);\n}\n\n")
		return nil
	}

	fmt.Fprintf(b, "void _api2wire_%s(%s raw, WireWriter writer) {\n", suffix, listType)
	fmt.Fprintf(b, "  writer.writeUint64(raw.length);\n")
	fmt.Fprintf(b, "  for (final item in raw) {\n")
	fmt.Fprintf(b, "    %s;\n  }\n}\n\n", r.mapper.EncodeCall(s.Elem, "item"))

	fmt.Fprintf(b, "%s _wire2api_%s(WireReader reader) {\n", listType, suffix)
	fmt.Fprintf(b, "  final len = reader.readUint64();\n")
	if strings.HasPrefix(listType, "List<") {
		fmt.Fprintf(b, "  return List.generate(len, (_) => %s);\n}\n\n", r.mapper.DecodeCall(s.Elem))
	} else {
		// Typed-data views fill from a generated list.
		fmt.Fprintf(b, "  return %s.fromList(List.generate(len, (_) => %s));\n}\n\n",
			listType, r.mapper.DecodeCall(s.Elem))
	}
	return nil
}

func (r *codecRegistry) emitMap(b *strings.Builder, suffix string, s ir.Map) error {
	mapType, err := r.mapper.TypeName("", nil, s)
	if err != nil {
		return err
	}
	keyType, err := r.mapper.TypeName("", nil, s.Key)
	if err != nil {
		return err
	}
	valueType, err := r.mapper.TypeName("", nil, s.Value)
	if err != nil {
		return err
	}

	fmt.Fprintf(b, "void _api2wire_%s(%s raw, WireWriter writer) {\n", suffix, mapType)
	fmt.Fprintf(b, "  writer.writeUint64(raw.length);\n")
	fmt.Fprintf(b, "  raw.forEach((key, value) {\n")
	fmt.Fprintf(b, "    %s;\n", r.mapper.EncodeCall(s.Key, "key"))
	fmt.Fprintf(b, "    %s;\n  });\n}\n\n", r.mapper.EncodeCall(s.Value, "value"))

	fmt.Fprintf(b, "%s _wire2api_%s(WireReader reader) {\n", mapType, suffix)
	fmt.Fprintf(b, "  final len = reader.readUint64();\n")
	fmt.Fprintf(b, "  final out = <%s, %s>{};\n", keyType, valueType)
	fmt.Fprintf(b, "  for (var i = 0; i < len; i++) {\n")
	fmt.Fprintf(b, "    final key = %s;\n", r.mapper.DecodeCall(s.Key))
	fmt.Fprintf(b, "    out[key] = %s;\n  }\n", r.mapper.DecodeCall(s.Value))
	fmt.Fprintf(b, "  return out;\n}\n\n")
	return nil
}
