package wire

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

func (c *Codec) encodeValue(buf []byte, shape ir.TypeShape, value any, path []string) ([]byte, error) {
	switch s := shape.(type) {
	case ir.Primitive:
		return encodePrimitive(buf, s.Kind, value, path)
	case ir.Text:
		str, ok := value.(string)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "string")
		}
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(str)))
		return append(buf, str...), nil
	case ir.Boxed:
		// Transparent indirection.
		return c.encodeValue(buf, s.Inner, value, path)
	case ir.Optional:
		if value == nil {
			return append(buf, 0), nil
		}
		buf = append(buf, 1)
		return c.encodeValue(buf, s.Inner, value, append(path, "[some]"))
	case ir.Sequence:
		return c.encodeSequence(buf, s, value, path)
	case ir.Map:
		return c.encodeMap(buf, s, value, path)
	case ir.StructRef:
		return c.encodeStruct(buf, s.Name, value, path)
	case ir.EnumRef:
		return c.encodeEnum(buf, s.Name, value, path)
	case ir.Unit:
		if value != nil {
			return nil, mismatch(errors.PhaseEncode, path, value, "nil (unit)")
		}
		return buf, nil
	default:
		return nil, errors.New(errors.PhaseEncode, errors.KindUnsupportedType).
			Path(path...).
			SourceType(shape.String()).
			Build()
	}
}

func encodePrimitive(buf []byte, kind ir.PrimKind, value any, path []string) ([]byte, error) {
	switch kind {
	case ir.PrimBool:
		b, ok := value.(bool)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "bool")
		}
		if b {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil
	case ir.PrimU8:
		v, ok := value.(uint8)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "uint8")
		}
		return append(buf, v), nil
	case ir.PrimI8:
		v, ok := value.(int8)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "int8")
		}
		return append(buf, byte(v)), nil
	case ir.PrimU16:
		v, ok := value.(uint16)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "uint16")
		}
		return binary.LittleEndian.AppendUint16(buf, v), nil
	case ir.PrimI16:
		v, ok := value.(int16)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "int16")
		}
		return binary.LittleEndian.AppendUint16(buf, uint16(v)), nil
	case ir.PrimU32:
		v, ok := value.(uint32)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "uint32")
		}
		return binary.LittleEndian.AppendUint32(buf, v), nil
	case ir.PrimI32:
		v, ok := value.(int32)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "int32")
		}
		return binary.LittleEndian.AppendUint32(buf, uint32(v)), nil
	case ir.PrimU64:
		v, ok := value.(uint64)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "uint64")
		}
		return binary.LittleEndian.AppendUint64(buf, v), nil
	case ir.PrimI64:
		v, ok := value.(int64)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "int64")
		}
		return binary.LittleEndian.AppendUint64(buf, uint64(v)), nil
	case ir.PrimF32:
		v, ok := value.(float32)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "float32")
		}
		return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v)), nil
	case ir.PrimF64:
		v, ok := value.(float64)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "float64")
		}
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v)), nil
	default:
		return nil, errors.New(errors.PhaseEncode, errors.KindUnsupportedType).
			Path(path...).
			SourceType(kind.String()).
			Build()
	}
}

func (c *Codec) encodeSequence(buf []byte, s ir.Sequence, value any, path []string) ([]byte, error) {
	// Byte sequences move as a single block.
	if p, ok := s.Elem.(ir.Primitive); ok && p.Kind == ir.PrimU8 {
		if bytes, ok := value.([]byte); ok {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(len(bytes)))
			return append(buf, bytes...), nil
		}
	}

	items, ok := value.([]any)
	if !ok {
		return nil, mismatch(errors.PhaseEncode, path, value, "[]any")
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(items)))
	for i, item := range items {
		var err error
		buf, err = c.encodeValue(buf, s.Elem, item, append(path, indexSeg(i)))
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (c *Codec) encodeMap(buf []byte, s ir.Map, value any, path []string) ([]byte, error) {
	m, ok := value.(map[any]any)
	if !ok {
		return nil, mismatch(errors.PhaseEncode, path, value, "map[any]any")
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(m)))
	for k, v := range m {
		key := k
		// Enum-keyed maps carry the variant name string as the Go key;
		// Variant itself is not comparable.
		if _, isEnum := s.Key.(ir.EnumRef); isEnum {
			name, isStr := k.(string)
			if !isStr {
				return nil, mismatch(errors.PhaseEncode, append(path, "[key]"), k, "string (variant name)")
			}
			key = Variant{Name: name}
		}
		var err error
		buf, err = c.encodeValue(buf, s.Key, key, append(path, "[key]"))
		if err != nil {
			return nil, err
		}
		buf, err = c.encodeValue(buf, s.Value, v, append(path, "[value]"))
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (c *Codec) encodeStruct(buf []byte, name string, value any, path []string) ([]byte, error) {
	decl, ok := c.set.Struct(name)
	if !ok {
		return nil, errors.UnresolvedRef("", path, name)
	}

	if decl.Tuple {
		items, ok := value.([]any)
		if !ok {
			return nil, mismatch(errors.PhaseEncode, path, value, "[]any (tuple struct)")
		}
		if len(items) != len(decl.Fields) {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				Detail("tuple struct %s has %d fields, value carries %d", name, len(decl.Fields), len(items)).
				Build()
		}
		for i, f := range decl.Fields {
			var err error
			buf, err = c.encodeValue(buf, f.Shape, items[i], append(path, indexSeg(i)))
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	}

	fields, ok := value.(map[string]any)
	if !ok {
		return nil, mismatch(errors.PhaseEncode, path, value, "map[string]any (struct)")
	}
	for _, f := range decl.Fields {
		fv, present := fields[f.Name]
		if !present {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(append(path, f.Name)...).
				Detail("missing field %q of struct %s", f.Name, name).
				Build()
		}
		var err error
		buf, err = c.encodeValue(buf, f.Shape, fv, append(path, f.Name))
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (c *Codec) encodeEnum(buf []byte, name string, value any, path []string) ([]byte, error) {
	decl, ok := c.set.Enum(name)
	if !ok {
		return nil, errors.UnresolvedRef("", path, name)
	}
	variant, ok := value.(Variant)
	if !ok {
		return nil, mismatch(errors.PhaseEncode, path, value, "wire.Variant")
	}

	for i, v := range decl.Variants {
		if v.Name != variant.Name {
			continue
		}

		// Discriminant first, payload second.
		buf = binary.LittleEndian.AppendUint32(buf, uint32(i))
		switch v.Payload {
		case ir.PayloadUnit:
			return buf, nil
		case ir.PayloadTuple:
			if len(variant.Values) != len(v.Fields) {
				return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
					Path(append(path, v.Name)...).
					Detail("variant %s carries %d values, want %d", v.Name, len(variant.Values), len(v.Fields)).
					Build()
			}
			for j, f := range v.Fields {
				var err error
				buf, err = c.encodeValue(buf, f.Shape, variant.Values[j], append(path, v.Name, indexSeg(j)))
				if err != nil {
					return nil, err
				}
			}
			return buf, nil
		default: // PayloadNamed
			for _, f := range v.Fields {
				fv, present := variant.Fields[f.Name]
				if !present {
					return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
						Path(append(path, v.Name, f.Name)...).
						Detail("missing payload field %q", f.Name).
						Build()
				}
				var err error
				buf, err = c.encodeValue(buf, f.Shape, fv, append(path, v.Name, f.Name))
				if err != nil {
					return nil, err
				}
			}
			return buf, nil
		}
	}

	return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
		Path(path...).
		Detail("enum %s has no variant named %q", name, variant.Name).
		Build()
}

func mismatch(phase errors.Phase, path []string, value any, expected string) *errors.Error {
	return errors.New(phase, errors.KindTypeMismatch).
		Path(path...).
		Value(value).
		Detail("value %T does not match declared shape, expected %s", value, expected).
		Build()
}

func indexSeg(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
