package dart

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/Unoqwy/flutter-rust-bridge/classify"
	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// classified builds and classifies a declaration set, failing the test on
// any classification error.
func classified(t *testing.T, decls ...ir.Decl) *ir.DeclSet {
	t.Helper()
	set := &ir.DeclSet{Decls: decls}
	c := classify.New(set)
	if report := c.DeclSet(set); report.Err() != nil {
		t.Fatalf("classification failed: %v", report.Err())
	}
	if err := classify.Resolve(set); err != nil {
		t.Fatalf("resolution failed: %v", err)
	}
	return set
}

func pointDecl() *ir.StructDecl {
	return &ir.StructDecl{Name: "Point", Fields: []ir.FieldDecl{
		{Name: "x", Type: ir.Expr("i32")},
		{Name: "y", Type: ir.Expr("i32")},
	}}
}

func shapeDecl() *ir.EnumDecl {
	return &ir.EnumDecl{Name: "Shape", Variants: []ir.VariantDecl{
		{Name: "Circle", Payload: ir.PayloadNamed, Fields: []ir.FieldDecl{
			{Name: "radius", Type: ir.Expr("f64")},
		}},
		{Name: "Square", Payload: ir.PayloadUnit},
	}}
}

func emit(t *testing.T, set *ir.DeclSet, opts Options) (string, *Descriptor) {
	t.Helper()
	code, desc, report, err := NewEmitter(set, opts).Emit(nil)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if report.Err() != nil {
		t.Fatalf("Emit reported errors: %v", report.Err())
	}
	return code, desc
}

func TestEmit_StructClass(t *testing.T) {
	code, desc := emit(t, classified(t, pointDecl()), Options{})

	for _, want := range []string{
		"class Point {",
		"final int x;",
		"final int y;",
		"const Point({required this.x, required this.y});",
		"void _api2wire_point(Point raw, WireWriter writer) {",
		"Point _wire2api_point(WireReader reader) {",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q", want)
		}
	}

	// Field order in the class and both codecs matches declared order.
	if strings.Index(code, "final int x;") > strings.Index(code, "final int y;") {
		t.Error("fields reordered in class declaration")
	}
	enc := code[strings.Index(code, "_api2wire_point"):]
	if strings.Index(enc, "raw.x") > strings.Index(enc, "raw.y") {
		t.Error("fields reordered in encoder")
	}

	if len(desc.Types) != 1 || desc.Types[0].Encode != "_api2wire_point" || desc.Types[0].Decode != "_wire2api_point" {
		t.Errorf("descriptor wrong: %+v", desc.Types)
	}
}

func TestEmit_TupleStruct(t *testing.T) {
	set := classified(t, &ir.StructDecl{Name: "Pair", Tuple: true, Fields: []ir.FieldDecl{
		{Type: ir.Expr("u8")},
		{Type: ir.Expr("String")},
	}})
	code, _ := emit(t, set, Options{})

	for _, want := range []string{
		"final int field0;",
		"final String field1;",
		"const Pair(this.field0, this.field1);",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q", want)
		}
	}
}

func TestEmit_PayloadEnum(t *testing.T) {
	code, _ := emit(t, classified(t, shapeDecl()), Options{})

	for _, want := range []string{
		"abstract class Shape {",
		"class Shape_Circle extends Shape {",
		"final double radius;",
		"class Shape_Square extends Shape {",
		"const Shape_Square();",
		// Discriminant first, payload second.
		"writer.writeUint32(0);",
		"writer.writeUint32(1);",
		"final tag = reader.readUint32();",
		"throw FrbUnknownVariantError('Shape', tag);",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q", want)
		}
	}

	// The whole enum went tagged-union: no native enum declaration.
	if strings.Contains(code, "enum Shape") {
		t.Error("payload enum must not emit a native Dart enum")
	}
}

func TestEmit_UnitEnum(t *testing.T) {
	set := classified(t, &ir.EnumDecl{Name: "Weekday", Variants: []ir.VariantDecl{
		{Name: "Monday", Payload: ir.PayloadUnit},
		{Name: "Tuesday", Payload: ir.PayloadUnit},
	}})
	code, _ := emit(t, set, Options{})

	if !strings.Contains(code, "enum Weekday {") {
		t.Error("unit-only enum must map to a native Dart enum")
	}
	if !strings.Contains(code, "monday,") || !strings.Contains(code, "tuesday,") {
		t.Error("variants missing from native enum")
	}
	if !strings.Contains(code, "Weekday.values[tag]") {
		t.Error("decoder must index values by discriminant")
	}
}

func TestEmit_AsyncFallibleSignature(t *testing.T) {
	set := classified(t, &ir.FunctionSig{
		Name: "fetch",
		Params: []ir.ParamDecl{
			{Name: "id", Type: ir.Expr("u32")},
		},
		Return:   ir.Expr("String"),
		Fallible: true,
		Async:    true,
	})
	code, desc := emit(t, set, Options{})

	for _, want := range []string{
		"Future<String> fetch({required int id}) {",
		"return _transport.execute(task);",
		"decode: _wire2api_String,",
		"fallible: true,",
		"Throws [FrbException]",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q", want)
		}
	}

	if len(desc.Funcs) != 1 {
		t.Fatalf("descriptor functions = %d, want 1", len(desc.Funcs))
	}
	fb := desc.Funcs[0]
	if !fb.Async || !fb.Fallible || fb.Target != "fetch" {
		t.Errorf("descriptor binding wrong: %+v", fb)
	}
}

func TestEmit_PositionalBindingStyle(t *testing.T) {
	set := classified(t, &ir.FunctionSig{
		Name: "add",
		Params: []ir.ParamDecl{
			{Name: "a", Type: ir.Expr("i32")},
			{Name: "b", Type: ir.Expr("i32")},
		},
		Return: ir.Expr("i32"),
	})
	code, _ := emit(t, set, Options{BindingStyle: BindingPositional})

	if !strings.Contains(code, "int add(int a, int b) {") {
		t.Error("positional style must emit positional parameters")
	}
	if !strings.Contains(code, "return _transport.executeSync(task);") {
		t.Error("synchronous function must call through without a future")
	}
}

func TestEmit_NameCollision(t *testing.T) {
	set := classified(t,
		&ir.StructDecl{Name: "user_data", Fields: []ir.FieldDecl{
			{Name: "id", Type: ir.Expr("u32")},
		}},
		&ir.StructDecl{Name: "UserData", Fields: []ir.FieldDecl{
			{Name: "id", Type: ir.Expr("u32")},
		}},
	)

	_, _, _, err := NewEmitter(set, Options{}).Emit(nil)
	if err == nil {
		t.Fatal("colliding declarations must fail the run")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindNameCollision}) {
		t.Fatalf("want name_collision, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "user_data") || !strings.Contains(msg, "UserData") {
		t.Errorf("collision must name both offending declarations: %q", msg)
	}
}

func TestEmit_Deterministic(t *testing.T) {
	build := func() string {
		set := classified(t,
			pointDecl(),
			shapeDecl(),
			&ir.StructDecl{Name: "Inventory", Fields: []ir.FieldDecl{
				{Name: "items", Type: ir.Expr("Vec", ir.Expr("Point"))},
				{Name: "labels", Type: ir.Expr("HashMap", ir.Expr("String"), ir.Expr("String"))},
				{Name: "note", Type: ir.Expr("Option", ir.Expr("String"))},
			}},
			&ir.FunctionSig{Name: "tally", Return: ir.Expr("u64"), Async: true},
		)
		code, _ := emit(t, set, Options{})
		return code
	}

	first := build()
	for i := 0; i < 5; i++ {
		if build() != first {
			t.Fatal("emission must be byte-identical across runs")
		}
	}
}

func TestEmit_OrderingPreserved(t *testing.T) {
	set := classified(t,
		&ir.StructDecl{Name: "Alpha", Fields: []ir.FieldDecl{{Name: "a", Type: ir.Expr("u8")}}},
		shapeDecl(),
		&ir.StructDecl{Name: "Beta", Fields: []ir.FieldDecl{{Name: "b", Type: ir.Expr("u8")}}},
	)
	code, desc := emit(t, set, Options{})

	alpha := strings.Index(code, "class Alpha {")
	shape := strings.Index(code, "abstract class Shape {")
	beta := strings.Index(code, "class Beta {")
	if !(alpha < shape && shape < beta) {
		t.Error("aggregates must emit in source declaration order")
	}

	wantOrder := []string{"Alpha", "Shape", "Beta"}
	for i, tc := range desc.Types {
		if tc.Name != wantOrder[i] {
			t.Errorf("descriptor order: got %s at %d, want %s", tc.Name, i, wantOrder[i])
		}
	}
}

func TestEmit_SkipFailedDeclarations(t *testing.T) {
	set := classified(t, pointDecl())
	set.Decls = append(set.Decls, &ir.StructDecl{Name: "Broken", Fields: []ir.FieldDecl{
		{Name: "p", Type: ir.Expr("*mut u8")}, // unclassified: Shape stays nil
	}})

	code, desc, report, err := NewEmitter(set, Options{}).Emit(map[string]bool{"Broken": true})
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if report.Err() != nil {
		t.Fatalf("skipped declaration must not re-report: %v", report.Err())
	}
	if strings.Contains(code, "Broken") {
		t.Error("skipped declaration leaked into the artifact")
	}
	if len(desc.Types) != 1 || desc.Types[0].Name != "Point" {
		t.Errorf("descriptor should carry the surviving declaration only: %+v", desc.Types)
	}
}

func TestEmit_BigIntListCodec(t *testing.T) {
	set := classified(t, &ir.StructDecl{Name: "Batch", Fields: []ir.FieldDecl{
		{Name: "ids", Type: ir.Expr("Vec", ir.Expr("u64"))},
	}})
	code, _ := emit(t, set, Options{})

	// Vec<u64> stays off the typed-data fast path: the element codec is
	// BigInt-typed, so the list must be List<BigInt> on both sides.
	for _, want := range []string{
		"final List<BigInt> ids;",
		"void _api2wire_list_u64(List<BigInt> raw, WireWriter writer) {",
		"_api2wire_u64(item, writer);",
		"List<BigInt> _wire2api_list_u64(WireReader reader) {",
		"return List.generate(len, (_) => _wire2api_u64(reader));",
		"BigInt _wire2api_u64(WireReader reader) {",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q", want)
		}
	}
	if strings.Contains(code, "Uint64List") {
		t.Error("Vec<u64> must not emit a Uint64List view")
	}
}

func TestEmit_CodecNameCollision(t *testing.T) {
	// snake(OptU32) is opt_u32, the suffix of the Option<u32> support codec.
	set := classified(t,
		&ir.StructDecl{Name: "OptU32", Fields: []ir.FieldDecl{
			{Name: "v", Type: ir.Expr("u32")},
		}},
		&ir.StructDecl{Name: "Holder", Fields: []ir.FieldDecl{
			{Name: "x", Type: ir.Expr("Option", ir.Expr("u32"))},
		}},
	)

	_, _, _, err := NewEmitter(set, Options{}).Emit(nil)
	if err == nil {
		t.Fatal("aggregate codec shadowing a support codec must fail the run")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindNameCollision}) {
		t.Fatalf("want name_collision, got %v", err)
	}
	if !strings.Contains(err.Error(), "_api2wire_opt_u32") {
		t.Errorf("collision must name the shared codec identifier: %q", err.Error())
	}
}

func TestEmit_SupportCodecsPresent(t *testing.T) {
	set := classified(t, &ir.StructDecl{Name: "Blob", Fields: []ir.FieldDecl{
		{Name: "data", Type: ir.Expr("Vec", ir.Expr("u8"))},
		{Name: "tag", Type: ir.Expr("Option", ir.Expr("u32"))},
	}})
	code, _ := emit(t, set, Options{})

	for _, want := range []string{
		"void _api2wire_uint8_list(Uint8List raw, WireWriter writer) {",
		"writer.writeBytes(raw);",
		"void _api2wire_opt_u32(int? raw, WireWriter writer) {",
		"writer.writeUint8(0);",
		"int _wire2api_u32(WireReader reader) {",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q", want)
		}
	}
}
