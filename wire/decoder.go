package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// decoder walks the byte stream with a cursor. It never reads past len(data);
// every take checks remaining length first.
type decoder struct {
	c    *Codec
	data []byte
	off  int
}

func (d *decoder) take(n int, path []string) ([]byte, error) {
	if len(d.data)-d.off < n {
		return nil, errors.Truncated(path, n, len(d.data)-d.off)
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) takeU32(path []string) (uint32, error) {
	b, err := d.take(4, path)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *decoder) takeU64(path []string) (uint64, error) {
	b, err := d.take(8, path)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *decoder) takeLen(path []string) (int, error) {
	n, err := d.takeU64(path)
	if err != nil {
		return 0, err
	}
	if n > uint64(len(d.data)-d.off) {
		return 0, errors.Truncated(path, int(n), len(d.data)-d.off)
	}
	return int(n), nil
}

func (d *decoder) decodeValue(shape ir.TypeShape, path []string) (any, error) {
	switch s := shape.(type) {
	case ir.Primitive:
		return d.decodePrimitive(s.Kind, path)
	case ir.Text:
		n, err := d.takeLen(path)
		if err != nil {
			return nil, err
		}
		raw, err := d.take(n, path)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(raw) {
			return nil, errors.InvalidUTF8(path, raw)
		}
		return string(raw), nil
	case ir.Boxed:
		return d.decodeValue(s.Inner, path)
	case ir.Optional:
		b, err := d.take(1, path)
		if err != nil {
			return nil, err
		}
		switch b[0] {
		case 0:
			return nil, nil
		case 1:
			return d.decodeValue(s.Inner, append(path, "[some]"))
		default:
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(path...).
				Detail("presence byte must be 0 or 1, got %d", b[0]).
				Build()
		}
	case ir.Sequence:
		return d.decodeSequence(s, path)
	case ir.Map:
		return d.decodeMap(s, path)
	case ir.StructRef:
		return d.decodeStruct(s.Name, path)
	case ir.EnumRef:
		return d.decodeEnum(s.Name, path)
	case ir.Unit:
		return nil, nil
	default:
		return nil, errors.New(errors.PhaseDecode, errors.KindUnsupportedType).
			Path(path...).
			SourceType(shape.String()).
			Build()
	}
}

func (d *decoder) decodePrimitive(kind ir.PrimKind, path []string) (any, error) {
	b, err := d.take(kind.Width()/8, path)
	if err != nil {
		return nil, err
	}
	switch kind {
	case ir.PrimBool:
		switch b[0] {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(path...).
				Detail("bool byte must be 0 or 1, got %d", b[0]).
				Build()
		}
	case ir.PrimU8:
		return b[0], nil
	case ir.PrimI8:
		return int8(b[0]), nil
	case ir.PrimU16:
		return binary.LittleEndian.Uint16(b), nil
	case ir.PrimI16:
		return int16(binary.LittleEndian.Uint16(b)), nil
	case ir.PrimU32:
		return binary.LittleEndian.Uint32(b), nil
	case ir.PrimI32:
		return int32(binary.LittleEndian.Uint32(b)), nil
	case ir.PrimU64:
		return binary.LittleEndian.Uint64(b), nil
	case ir.PrimI64:
		return int64(binary.LittleEndian.Uint64(b)), nil
	case ir.PrimF32:
		return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
	case ir.PrimF64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	default:
		return nil, errors.New(errors.PhaseDecode, errors.KindUnsupportedType).
			Path(path...).
			SourceType(kind.String()).
			Build()
	}
}

func (d *decoder) decodeSequence(s ir.Sequence, path []string) (any, error) {
	if p, ok := s.Elem.(ir.Primitive); ok && p.Kind == ir.PrimU8 {
		n, err := d.takeLen(path)
		if err != nil {
			return nil, err
		}
		raw, err := d.take(n, path)
		if err != nil {
			return nil, err
		}
		out := make([]byte, n)
		copy(out, raw)
		return out, nil
	}

	n, err := d.takeLen(path)
	if err != nil {
		return nil, err
	}
	items := make([]any, 0, n)
	for i := 0; i < n; i++ {
		item, err := d.decodeValue(s.Elem, append(path, indexSeg(i)))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *decoder) decodeMap(s ir.Map, path []string) (any, error) {
	n, err := d.takeLen(path)
	if err != nil {
		return nil, err
	}
	m := make(map[any]any, n)
	for i := 0; i < n; i++ {
		k, err := d.decodeValue(s.Key, append(path, "[key]"))
		if err != nil {
			return nil, err
		}
		key, err := mapKey(k, append(path, "[key]"))
		if err != nil {
			return nil, err
		}
		v, err := d.decodeValue(s.Value, append(path, "[value]"))
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
	return m, nil
}

// mapKey reduces a decoded key to its comparable Go form. Unit enum variants
// collapse to their variant name; a key without a stable identity is rejected
// rather than handed to the map.
func mapKey(v any, path []string) (any, error) {
	switch k := v.(type) {
	case Variant:
		if len(k.Values) == 0 && len(k.Fields) == 0 {
			return k.Name, nil
		}
	case bool, string,
		uint8, uint16, uint32, uint64,
		int8, int16, int32, int64,
		float32, float64:
		return k, nil
	}
	return nil, errors.New(errors.PhaseDecode, errors.KindUnhashableKey).
		Path(path...).
		Detail("map key of type %T has no comparable form", v).
		Build()
}

func (d *decoder) decodeStruct(name string, path []string) (any, error) {
	decl, ok := d.c.set.Struct(name)
	if !ok {
		return nil, errors.UnresolvedRef("", path, name)
	}

	if decl.Tuple {
		items := make([]any, 0, len(decl.Fields))
		for i, f := range decl.Fields {
			v, err := d.decodeValue(f.Shape, append(path, indexSeg(i)))
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	}

	fields := make(map[string]any, len(decl.Fields))
	for _, f := range decl.Fields {
		v, err := d.decodeValue(f.Shape, append(path, f.Name))
		if err != nil {
			return nil, err
		}
		fields[f.Name] = v
	}
	return fields, nil
}

func (d *decoder) decodeEnum(name string, path []string) (any, error) {
	decl, ok := d.c.set.Enum(name)
	if !ok {
		return nil, errors.UnresolvedRef("", path, name)
	}

	tag, err := d.takeU32(path)
	if err != nil {
		return nil, err
	}
	// Bounds check before touching any payload bytes.
	if int(tag) >= len(decl.Variants) {
		return nil, errors.UnknownVariantTag(append(path, name), tag, uint32(len(decl.Variants)-1))
	}

	v := decl.Variants[tag]
	switch v.Payload {
	case ir.PayloadUnit:
		return Variant{Name: v.Name}, nil
	case ir.PayloadTuple:
		values := make([]any, 0, len(v.Fields))
		for i, f := range v.Fields {
			fv, err := d.decodeValue(f.Shape, append(path, v.Name, indexSeg(i)))
			if err != nil {
				return nil, err
			}
			values = append(values, fv)
		}
		return Variant{Name: v.Name, Values: values}, nil
	default: // PayloadNamed
		fields := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			fv, err := d.decodeValue(f.Shape, append(path, v.Name, f.Name))
			if err != nil {
				return nil, err
			}
			fields[f.Name] = fv
		}
		return Variant{Name: v.Name, Fields: fields}, nil
	}
}
