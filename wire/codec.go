package wire

import (
	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// Variant is the Go-side value of an enum. Unit variants set only Name;
// tuple payloads fill Values, named payloads fill Fields. Variant is not
// comparable, so maps keyed by a unit-only enum carry the variant name
// string as the Go map key instead.
type Variant struct {
	Fields map[string]any
	Name   string
	Values []any
}

// Codec encodes and decodes values against a classified declaration set.
// It is stateless and safe for concurrent use.
type Codec struct {
	set *ir.DeclSet
}

// New builds a codec over a classified declaration set.
func New(set *ir.DeclSet) *Codec {
	return &Codec{set: set}
}

// Encode serializes value according to shape.
func (c *Codec) Encode(shape ir.TypeShape, value any) ([]byte, error) {
	return c.encodeValue(nil, shape, value, nil)
}

// Decode deserializes one value of the given shape and requires the input
// to be fully consumed.
func (c *Codec) Decode(shape ir.TypeShape, data []byte) (any, error) {
	d := &decoder{c: c, data: data}
	v, err := d.decodeValue(shape, nil)
	if err != nil {
		return nil, err
	}
	if d.off != len(data) {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("%d trailing byte(s) after value", len(data)-d.off).
			Build()
	}
	return v, nil
}

// EncodeNamed serializes a value of a declared struct or enum type.
func (c *Codec) EncodeNamed(name string, value any) ([]byte, error) {
	shape, err := c.namedShape(name)
	if err != nil {
		return nil, err
	}
	return c.Encode(shape, value)
}

// DecodeNamed deserializes a value of a declared struct or enum type.
func (c *Codec) DecodeNamed(name string, data []byte) (any, error) {
	shape, err := c.namedShape(name)
	if err != nil {
		return nil, err
	}
	return c.Decode(shape, data)
}

func (c *Codec) namedShape(name string) (ir.TypeShape, error) {
	if _, ok := c.set.Struct(name); ok {
		return ir.StructRef{Name: name}, nil
	}
	if _, ok := c.set.Enum(name); ok {
		return ir.EnumRef{Name: name}, nil
	}
	return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
		Detail("no declared type named %q", name).
		Build()
}
