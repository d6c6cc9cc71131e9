package wire

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unoqwy/flutter-rust-bridge/classify"
	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

func testSet(t *testing.T, decls ...ir.Decl) *ir.DeclSet {
	t.Helper()
	set := &ir.DeclSet{Decls: decls}
	report := classify.New(set).DeclSet(set)
	require.NoError(t, report.Err(), "classification")
	require.NoError(t, classify.Resolve(set), "resolution")
	return set
}

func scenarioSet(t *testing.T) *ir.DeclSet {
	t.Helper()
	return testSet(t,
		&ir.StructDecl{Name: "Point", Fields: []ir.FieldDecl{
			{Name: "x", Type: ir.Expr("i32")},
			{Name: "y", Type: ir.Expr("i32")},
		}},
		&ir.StructDecl{Name: "Inventory", Fields: []ir.FieldDecl{
			{Name: "points", Type: ir.Expr("Vec", ir.Expr("Point"))},
			{Name: "labels", Type: ir.Expr("HashMap", ir.Expr("String"), ir.Expr("u32"))},
			{Name: "note", Type: ir.Expr("Option", ir.Expr("String"))},
			{Name: "blob", Type: ir.Expr("Vec", ir.Expr("u8"))},
		}},
		&ir.EnumDecl{Name: "Shape", Variants: []ir.VariantDecl{
			{Name: "Circle", Payload: ir.PayloadNamed, Fields: []ir.FieldDecl{
				{Name: "radius", Type: ir.Expr("f64")},
			}},
			{Name: "Pair", Payload: ir.PayloadTuple, Fields: []ir.FieldDecl{
				{Type: ir.Expr("i32")},
				{Type: ir.Expr("i32")},
			}},
			{Name: "Empty", Payload: ir.PayloadUnit},
		}},
	)
}

func roundTrip(t *testing.T, c *Codec, shape ir.TypeShape, value any) any {
	t.Helper()
	data, err := c.Encode(shape, value)
	require.NoError(t, err, "encode %v", value)
	got, err := c.Decode(shape, data)
	require.NoError(t, err, "decode %v", value)
	return got
}

func TestRoundTrip_Struct(t *testing.T) {
	c := New(scenarioSet(t))

	point := map[string]any{"x": int32(-3), "y": int32(7)}
	got := roundTrip(t, c, ir.StructRef{Name: "Point"}, point)
	assert.Equal(t, point, got)

	inv := map[string]any{
		"points": []any{
			map[string]any{"x": int32(1), "y": int32(2)},
			map[string]any{"x": int32(3), "y": int32(4)},
		},
		"labels": map[any]any{"alpha": uint32(1), "beta": uint32(2)},
		"note":   "restock",
		"blob":   []byte{0x00, 0xff, 0x10},
	}
	got = roundTrip(t, c, ir.StructRef{Name: "Inventory"}, inv)
	assert.Equal(t, inv, got)
}

func TestRoundTrip_StructFieldOrder(t *testing.T) {
	c := New(scenarioSet(t))

	data, err := c.EncodeNamed("Point", map[string]any{"x": int32(1), "y": int32(2)})
	require.NoError(t, err)

	// Two i32 fields in declared order, little-endian, no framing.
	require.Equal(t, []byte{1, 0, 0, 0, 2, 0, 0, 0}, data)
}

func TestRoundTrip_Enum(t *testing.T) {
	c := New(scenarioSet(t))
	shape := ir.EnumRef{Name: "Shape"}

	for _, v := range []Variant{
		{Name: "Circle", Fields: map[string]any{"radius": 2.5}},
		{Name: "Pair", Values: []any{int32(-1), int32(9)}},
		{Name: "Empty"},
	} {
		got := roundTrip(t, c, shape, v)
		assert.Equal(t, v, got)
	}
}

func TestEnum_DiscriminantLayout(t *testing.T) {
	c := New(scenarioSet(t))

	data, err := c.EncodeNamed("Shape", Variant{Name: "Empty"})
	require.NoError(t, err)
	// Ordinal 2 as little-endian u32, no payload.
	require.Equal(t, []byte{2, 0, 0, 0}, data)
}

func TestDecode_UnknownVariantTag(t *testing.T) {
	c := New(scenarioSet(t))

	_, err := c.DecodeNamed("Shape", []byte{9, 0, 0, 0})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindUnknownVariant}),
		"want unknown_variant_tag, got %v", err)
}

func TestDecode_Truncated(t *testing.T) {
	c := New(scenarioSet(t))

	full, err := c.EncodeNamed("Point", map[string]any{"x": int32(1), "y": int32(2)})
	require.NoError(t, err)

	for cut := 0; cut < len(full); cut++ {
		_, err := c.DecodeNamed("Point", full[:cut])
		require.Error(t, err, "cut at %d", cut)
		assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindTruncated}),
			"cut at %d: want truncated, got %v", cut, err)
	}
}

func TestDecode_TrailingBytes(t *testing.T) {
	c := New(scenarioSet(t))

	data, err := c.EncodeNamed("Point", map[string]any{"x": int32(1), "y": int32(2)})
	require.NoError(t, err)

	_, err = c.DecodeNamed("Point", append(data, 0xaa))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidData}))
}

func TestDecode_InvalidUTF8(t *testing.T) {
	c := New(testSet(t))
	shape := ir.Text{}

	// Length 2, then an invalid continuation pair.
	data := []byte{2, 0, 0, 0, 0, 0, 0, 0, 0xc3, 0x28}
	_, err := c.Decode(shape, data)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidUTF8}))
}

func TestRoundTrip_PrimitiveFidelity(t *testing.T) {
	c := New(testSet(t))

	t.Run("u8_exhaustive", func(t *testing.T) {
		shape := ir.Primitive{Kind: ir.PrimU8}
		for v := 0; v < 256; v++ {
			got := roundTrip(t, c, shape, uint8(v))
			require.Equal(t, uint8(v), got)
		}
	})

	t.Run("u16_exhaustive", func(t *testing.T) {
		shape := ir.Primitive{Kind: ir.PrimU16}
		for v := 0; v < 1<<16; v++ {
			got := roundTrip(t, c, shape, uint16(v))
			require.Equal(t, uint16(v), got)
		}
	})

	t.Run("boundaries", func(t *testing.T) {
		cases := []struct {
			shape ir.TypeShape
			value any
		}{
			{ir.Primitive{Kind: ir.PrimBool}, true},
			{ir.Primitive{Kind: ir.PrimBool}, false},
			{ir.Primitive{Kind: ir.PrimI8}, int8(math.MinInt8)},
			{ir.Primitive{Kind: ir.PrimI8}, int8(math.MaxInt8)},
			{ir.Primitive{Kind: ir.PrimI16}, int16(math.MinInt16)},
			{ir.Primitive{Kind: ir.PrimI32}, int32(math.MinInt32)},
			{ir.Primitive{Kind: ir.PrimI32}, int32(math.MaxInt32)},
			{ir.Primitive{Kind: ir.PrimU32}, uint32(math.MaxUint32)},
			{ir.Primitive{Kind: ir.PrimI64}, int64(math.MinInt64)},
			{ir.Primitive{Kind: ir.PrimI64}, int64(math.MaxInt64)},
			{ir.Primitive{Kind: ir.PrimU64}, uint64(math.MaxUint64)},
			{ir.Primitive{Kind: ir.PrimU64}, uint64(0)},
			{ir.Primitive{Kind: ir.PrimF32}, float32(math.MaxFloat32)},
			{ir.Primitive{Kind: ir.PrimF32}, float32(math.SmallestNonzeroFloat32)},
			{ir.Primitive{Kind: ir.PrimF64}, math.MaxFloat64},
			{ir.Primitive{Kind: ir.PrimF64}, math.Inf(-1)},
		}
		for _, tc := range cases {
			got := roundTrip(t, c, tc.shape, tc.value)
			assert.Equal(t, tc.value, got, "%s %v", tc.shape, tc.value)
		}
	})
}

func TestRoundTrip_Optional(t *testing.T) {
	c := New(testSet(t))
	shape := ir.Optional{Inner: ir.Text{}}

	// Absent encodes as a single zero byte.
	data, err := c.Encode(shape, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0}, data)
	got, err := c.Decode(shape, data)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Present-but-empty stays distinguishable from absent.
	got = roundTrip(t, c, shape, "")
	assert.Equal(t, "", got)

	got = roundTrip(t, c, shape, "hello")
	assert.Equal(t, "hello", got)
}

func TestRoundTrip_BoxTransparent(t *testing.T) {
	c := New(testSet(t))

	boxed := ir.Boxed{Inner: ir.Primitive{Kind: ir.PrimI64}}
	plain := ir.Primitive{Kind: ir.PrimI64}

	a, err := c.Encode(boxed, int64(42))
	require.NoError(t, err)
	b, err := c.Encode(plain, int64(42))
	require.NoError(t, err)
	assert.Equal(t, b, a, "boxed value must encode identically to its inner type")
}

func TestEncode_TypeMismatch(t *testing.T) {
	c := New(scenarioSet(t))

	cases := []struct {
		shape ir.TypeShape
		value any
	}{
		{ir.Primitive{Kind: ir.PrimU8}, int(5)},
		{ir.Primitive{Kind: ir.PrimI32}, int64(5)},
		{ir.Text{}, 5},
		{ir.StructRef{Name: "Point"}, []any{1, 2}},
		{ir.EnumRef{Name: "Shape"}, "Circle"},
	}
	for _, tc := range cases {
		_, err := c.Encode(tc.shape, tc.value)
		require.Error(t, err, "%s should reject %T", tc.shape, tc.value)
		assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindTypeMismatch}),
			"%s: want type_mismatch, got %v", tc.shape, err)
	}
}

func TestEncode_UnknownVariantName(t *testing.T) {
	c := New(scenarioSet(t))

	_, err := c.EncodeNamed("Shape", Variant{Name: "Triangle"})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindInvalidData}))
}

func enumKeySet(t *testing.T) *ir.DeclSet {
	t.Helper()
	return testSet(t,
		&ir.EnumDecl{Name: "Color", Variants: []ir.VariantDecl{
			{Name: "Red", Payload: ir.PayloadUnit},
			{Name: "Green", Payload: ir.PayloadUnit},
		}},
		&ir.StructDecl{Name: "Palette", Fields: []ir.FieldDecl{
			{Name: "weights", Type: ir.Expr("HashMap", ir.Expr("Color"), ir.Expr("u32"))},
		}},
	)
}

func TestRoundTrip_EnumKeyedMap(t *testing.T) {
	c := New(enumKeySet(t))

	palette := map[string]any{
		"weights": map[any]any{"Red": uint32(7), "Green": uint32(9)},
	}
	got := roundTrip(t, c, ir.StructRef{Name: "Palette"}, palette)
	assert.Equal(t, palette, got)
}

func TestDecode_EnumKeyedMapLayout(t *testing.T) {
	c := New(enumKeySet(t))
	shape := ir.Map{Key: ir.EnumRef{Name: "Color"}, Value: ir.Primitive{Kind: ir.PrimU32}}

	// One entry: ordinal 0 (Red) as the key, value 7.
	data := []byte{
		1, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0,
		7, 0, 0, 0,
	}
	got, err := c.Decode(shape, data)
	require.NoError(t, err)
	assert.Equal(t, map[any]any{"Red": uint32(7)}, got)
}

func TestEncode_EnumKeyedMapWrongKeyType(t *testing.T) {
	c := New(enumKeySet(t))
	shape := ir.Map{Key: ir.EnumRef{Name: "Color"}, Value: ir.Primitive{Kind: ir.PrimU32}}

	_, err := c.Encode(shape, map[any]any{uint32(0): uint32(7)})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindTypeMismatch}))
}

func TestDecode_UnhashableMapKey(t *testing.T) {
	c := New(scenarioSet(t))
	shape := ir.Map{Key: ir.StructRef{Name: "Point"}, Value: ir.Primitive{Kind: ir.PrimU8}}

	// One entry: Point{x:1, y:2} as the key, value 3. Struct keys have no
	// comparable Go form and must fail cleanly.
	data := []byte{
		1, 0, 0, 0, 0, 0, 0, 0,
		1, 0, 0, 0,
		2, 0, 0, 0,
		3,
	}
	_, err := c.Decode(shape, data)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindUnhashableKey}),
		"want unhashable_key_type, got %v", err)
}

func TestRoundTrip_EmptyContainers(t *testing.T) {
	c := New(scenarioSet(t))

	inv := map[string]any{
		"points": []any{},
		"labels": map[any]any{},
		"note":   nil,
		"blob":   []byte{},
	}
	got := roundTrip(t, c, ir.StructRef{Name: "Inventory"}, inv)
	assert.Equal(t, inv, got)
}
