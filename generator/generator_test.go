package generator

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/Unoqwy/flutter-rust-bridge/dart"
	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

func demoSet() *ir.DeclSet {
	return &ir.DeclSet{Decls: []ir.Decl{
		&ir.StructDecl{Name: "Point", Fields: []ir.FieldDecl{
			{Name: "x", Type: ir.Expr("i32")},
			{Name: "y", Type: ir.Expr("i32")},
		}},
		&ir.EnumDecl{Name: "Shape", Variants: []ir.VariantDecl{
			{Name: "Circle", Payload: ir.PayloadNamed, Fields: []ir.FieldDecl{
				{Name: "center", Type: ir.Expr("Point")},
				{Name: "radius", Type: ir.Expr("f64")},
			}},
			{Name: "Unknown", Payload: ir.PayloadUnit},
		}},
		&ir.FunctionSig{
			Name: "find_shape",
			Params: []ir.ParamDecl{
				{Name: "id", Type: ir.Expr("u64")},
			},
			Return:   ir.Expr("Option", ir.Expr("Shape")),
			Fallible: true,
			Async:    true,
		},
	}}
}

func TestGenerate_FullPipeline(t *testing.T) {
	art, err := New(Options{}).Generate(demoSet())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, want := range []string{
		"class Point {",
		"abstract class Shape {",
		"class Shape_Circle extends Shape {",
		"Future<Shape?> findShape({required BigInt id}) {",
		"class RustApi {",
	} {
		if !strings.Contains(art.DartCode, want) {
			t.Errorf("artifact missing %q", want)
		}
	}

	if art.Descriptor.ApiClass != "RustApi" {
		t.Errorf("descriptor api class = %q", art.Descriptor.ApiClass)
	}
	if len(art.Descriptor.Types) != 2 || len(art.Descriptor.Funcs) != 1 {
		t.Errorf("descriptor shape wrong: %d types, %d funcs",
			len(art.Descriptor.Types), len(art.Descriptor.Funcs))
	}
}

func TestGenerate_OptionsFlowThrough(t *testing.T) {
	art, err := New(Options{Dart: dart.Options{
		ApiClassName: "NativeBridge",
		BindingStyle: dart.BindingPositional,
	}}).Generate(demoSet())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(art.DartCode, "class NativeBridge {") {
		t.Error("api class name not honored")
	}
	if !strings.Contains(art.DartCode, "findShape(BigInt id) {") {
		t.Error("positional binding style not honored")
	}
}

func TestGenerate_UnsupportedTypeFailsDeclarationOnly(t *testing.T) {
	set := demoSet()
	set.Decls = append(set.Decls, &ir.StructDecl{Name: "Raw", Fields: []ir.FieldDecl{
		{Name: "ptr", Type: ir.Expr("*const u8")},
	}})

	art, err := New(Options{}).Generate(set)
	if art != nil {
		t.Fatal("failed run must not produce an artifact")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseClassify, Kind: errors.KindUnsupportedType}) {
		t.Fatalf("want unsupported_type_kind, got %v", err)
	}

	// The failure names its declaration and is the only one collected:
	// siblings classified fine and must not drown the report in noise.
	report, ok := err.(*errors.Report)
	if !ok {
		t.Fatalf("error should be a batch report, got %T", err)
	}
	if report.Len() != 1 || report.Errors[0].Decl != "Raw" {
		t.Errorf("report should carry exactly the failing declaration: %v", report)
	}
}

func TestGenerate_UnresolvedReferenceFatal(t *testing.T) {
	set := &ir.DeclSet{Decls: []ir.Decl{
		&ir.StructDecl{Name: "Holder", Fields: []ir.FieldDecl{
			{Name: "inner", Type: ir.Expr("Ghost")},
		}},
	}}

	art, err := New(Options{}).Generate(set)
	if art != nil {
		t.Fatal("unresolved reference must void the artifact")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseResolve, Kind: errors.KindUnresolvedRef}) {
		t.Fatalf("want unresolved_type_reference, got %v", err)
	}
	if !strings.Contains(err.Error(), "Ghost") {
		t.Errorf("error must name the dangling reference: %v", err)
	}
}

func TestGenerate_NameCollisionFatal(t *testing.T) {
	set := &ir.DeclSet{Decls: []ir.Decl{
		&ir.StructDecl{Name: "api_result", Fields: []ir.FieldDecl{
			{Name: "ok", Type: ir.Expr("bool")},
		}},
		&ir.StructDecl{Name: "ApiResult", Fields: []ir.FieldDecl{
			{Name: "ok", Type: ir.Expr("bool")},
		}},
	}}

	art, err := New(Options{}).Generate(set)
	if art != nil {
		t.Fatal("name collision must void the artifact")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindNameCollision}) {
		t.Fatalf("want name_collision, got %v", err)
	}
}

func TestGenerate_EmptySet(t *testing.T) {
	art, err := New(Options{}).Generate(&ir.DeclSet{})
	if err != nil {
		t.Fatalf("empty set should generate an empty surface: %v", err)
	}
	if !strings.Contains(art.DartCode, "class RustApi {") {
		t.Error("empty set still emits the api class shell")
	}
	if len(art.Descriptor.Types) != 0 || len(art.Descriptor.Funcs) != 0 {
		t.Error("descriptor should be empty")
	}
}
