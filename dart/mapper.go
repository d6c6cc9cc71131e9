package dart

import (
	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// Mapper translates shapes to Dart type tokens and codec call fragments. It
// needs the declaration set to tell unit-only enums apart from payload enums
// (map key hashability, codec dispatch).
type Mapper struct {
	set *ir.DeclSet
}

// NewMapper builds a mapper over a classified declaration set.
func NewMapper(set *ir.DeclSet) *Mapper {
	return &Mapper{set: set}
}

// typedDataNames is the Vec<numeric> fast path: dart:typed_data views
// instead of List<int>/List<double>. u64 is excluded: its element type is
// BigInt while typed-data views hold int, so Vec<u64> goes through the
// generic List<BigInt> codec.
var typedDataNames = map[ir.PrimKind]string{
	ir.PrimU8:  "Uint8List",
	ir.PrimI8:  "Int8List",
	ir.PrimU16: "Uint16List",
	ir.PrimI16: "Int16List",
	ir.PrimU32: "Uint32List",
	ir.PrimI32: "Int32List",
	ir.PrimI64: "Int64List",
	ir.PrimF32: "Float32List",
	ir.PrimF64: "Float64List",
}

// TypeName maps a shape to its Dart type token. decl and path feed error
// context only.
func (m *Mapper) TypeName(decl string, path []string, shape ir.TypeShape) (string, error) {
	switch s := shape.(type) {
	case ir.Primitive:
		switch {
		case s.Kind == ir.PrimBool:
			return "bool", nil
		case s.Kind == ir.PrimU64:
			// Dart int is signed 64-bit; u64 needs BigInt to keep the
			// upper half of the range.
			return "BigInt", nil
		case s.Kind.Float():
			return "double", nil
		default:
			return "int", nil
		}
	case ir.Text:
		return "String", nil
	case ir.Boxed:
		return m.TypeName(decl, path, s.Inner)
	case ir.Optional:
		inner, err := m.TypeName(decl, path, s.Inner)
		if err != nil {
			return "", err
		}
		if len(inner) > 0 && inner[len(inner)-1] == '?' {
			return inner, nil
		}
		return inner + "?", nil
	case ir.Sequence:
		if p, ok := s.Elem.(ir.Primitive); ok {
			if name, ok := typedDataNames[p.Kind]; ok {
				return name, nil
			}
		}
		elem, err := m.TypeName(decl, path, s.Elem)
		if err != nil {
			return "", err
		}
		return "List<" + elem + ">", nil
	case ir.Map:
		if err := m.checkHashableKey(decl, path, s.Key); err != nil {
			return "", err
		}
		key, err := m.TypeName(decl, path, s.Key)
		if err != nil {
			return "", err
		}
		value, err := m.TypeName(decl, path, s.Value)
		if err != nil {
			return "", err
		}
		return "Map<" + key + ", " + value + ">", nil
	case ir.StructRef:
		return typeName(s.Name), nil
	case ir.EnumRef:
		return typeName(s.Name), nil
	case ir.Unit:
		return "void", nil
	case nil:
		return "", errors.New(errors.PhaseMap, errors.KindInvalidData).
			Decl(decl).
			Path(path...).
			Detail("shape missing; classification did not run").
			Build()
	default:
		return "", errors.New(errors.PhaseMap, errors.KindUnsupportedType).
			Decl(decl).
			Path(path...).
			SourceType(shape.String()).
			Build()
	}
}

// checkHashableKey enforces stable target-side equality/hash for map keys:
// primitives, text and unit-only enums qualify. Sequences, maps, optionals,
// boxes and aggregates with payload do not.
func (m *Mapper) checkHashableKey(decl string, path []string, key ir.TypeShape) error {
	switch s := key.(type) {
	case ir.Primitive, ir.Text:
		return nil
	case ir.EnumRef:
		if e, ok := m.set.Enum(s.Name); ok && !e.HasPayload() {
			return nil
		}
	}
	return errors.UnhashableKey(decl, append(path, "[key]"), key.String())
}

// codecSuffix derives the identifier suffix shared by a shape's encode and
// decode functions: _api2wire_<suffix> / _wire2api_<suffix>.
func codecSuffix(shape ir.TypeShape) string {
	switch s := shape.(type) {
	case ir.Primitive:
		return s.Kind.String()
	case ir.Text:
		return "String"
	case ir.Boxed:
		// Transparent: the box shares the inner codec.
		return codecSuffix(s.Inner)
	case ir.Optional:
		return "opt_" + codecSuffix(s.Inner)
	case ir.Sequence:
		if p, ok := s.Elem.(ir.Primitive); ok {
			if name, ok := typedDataNames[p.Kind]; ok {
				return snake(name)
			}
		}
		return "list_" + codecSuffix(s.Elem)
	case ir.Map:
		return "map_" + codecSuffix(s.Key) + "_" + codecSuffix(s.Value)
	case ir.StructRef:
		return snake(s.Name)
	case ir.EnumRef:
		return snake(s.Name)
	case ir.Unit:
		return "unit"
	default:
		return "unknown"
	}
}

// EncodeCall returns the Dart expression that writes value into the wire
// writer for the given shape.
func (m *Mapper) EncodeCall(shape ir.TypeShape, value string) string {
	return "_api2wire_" + codecSuffix(shape) + "(" + value + ", writer)"
}

// DecodeCall returns the Dart expression that reads a value of the given
// shape from the wire reader.
func (m *Mapper) DecodeCall(shape ir.TypeShape) string {
	return "_wire2api_" + codecSuffix(shape) + "(reader)"
}
