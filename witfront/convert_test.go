package witfront

import (
	stderrors "errors"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/Unoqwy/flutter-rust-bridge/classify"
	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

func named(name string, kind wit.TypeDefKind) *wit.TypeDef {
	return &wit.TypeDef{Name: &name, Kind: kind}
}

func TestConvert_Record(t *testing.T) {
	input := Input{Types: []*wit.TypeDef{
		named("user-profile", &wit.Record{Fields: []wit.Field{
			{Name: "display-name", Type: wit.String{}},
			{Name: "age", Type: wit.U8{}},
			{Name: "scores", Type: &wit.TypeDef{Kind: &wit.List{Type: wit.F64{}}}},
			{Name: "nickname", Type: &wit.TypeDef{Kind: &wit.Option{Type: wit.String{}}}},
		}}),
	}}

	set, report := Convert(input)
	if report.Err() != nil {
		t.Fatalf("Convert failed: %v", report.Err())
	}

	s, ok := set.Struct("user_profile")
	if !ok {
		t.Fatal("record did not become a struct declaration")
	}
	if len(s.Fields) != 4 {
		t.Fatalf("fields = %d, want 4", len(s.Fields))
	}
	wants := []struct{ name, expr string }{
		{"display_name", "String"},
		{"age", "u8"},
		{"scores", "Vec<f64>"},
		{"nickname", "Option<String>"},
	}
	for i, w := range wants {
		if s.Fields[i].Name != w.name || s.Fields[i].Type.String() != w.expr {
			t.Errorf("field %d = %s %s, want %s %s",
				i, s.Fields[i].Name, s.Fields[i].Type, w.name, w.expr)
		}
	}
}

func TestConvert_EnumAndVariant(t *testing.T) {
	input := Input{Types: []*wit.TypeDef{
		named("weekday", &wit.Enum{Cases: []wit.EnumCase{
			{Name: "monday"}, {Name: "tuesday"},
		}}),
		named("event", &wit.Variant{Cases: []wit.Case{
			{Name: "ping"},
			{Name: "message", Type: wit.String{}},
		}}),
	}}

	set, report := Convert(input)
	if report.Err() != nil {
		t.Fatalf("Convert failed: %v", report.Err())
	}

	weekday, ok := set.Enum("weekday")
	if !ok {
		t.Fatal("enum declaration missing")
	}
	for _, v := range weekday.Variants {
		if v.Payload != ir.PayloadUnit {
			t.Errorf("enum case %s should be a unit variant", v.Name)
		}
	}

	event, ok := set.Enum("event")
	if !ok {
		t.Fatal("variant declaration missing")
	}
	if event.Variants[0].Payload != ir.PayloadUnit {
		t.Error("case without a type should be a unit variant")
	}
	if event.Variants[1].Payload != ir.PayloadTuple || len(event.Variants[1].Fields) != 1 {
		t.Error("case with a type should carry a single tuple field")
	}
	if event.Variants[1].Fields[0].Type.String() != "String" {
		t.Errorf("payload type = %s, want String", event.Variants[1].Fields[0].Type)
	}
}

func TestConvert_NamedTuple(t *testing.T) {
	input := Input{Types: []*wit.TypeDef{
		named("pair", &wit.Tuple{Types: []wit.Type{wit.S32{}, wit.S32{}}}),
	}}

	set, report := Convert(input)
	if report.Err() != nil {
		t.Fatalf("Convert failed: %v", report.Err())
	}
	s, ok := set.Struct("pair")
	if !ok || !s.Tuple {
		t.Fatal("named tuple should become a tuple struct")
	}
	if len(s.Fields) != 2 || s.Fields[0].Name != "" {
		t.Errorf("tuple fields wrong: %+v", s.Fields)
	}
}

func TestConvert_FunctionWithResult(t *testing.T) {
	profile := named("profile", &wit.Record{Fields: []wit.Field{
		{Name: "id", Type: wit.U64{}},
	}})

	input := Input{
		Types: []*wit.TypeDef{profile},
		Funcs: []Function{
			{
				Name:   "load-profile",
				Params: []Param{{Name: "user-id", Type: wit.U64{}}},
				Result: &wit.TypeDef{Kind: &wit.Result{OK: profile}},
				Async:  true,
			},
			{
				Name:   "reset",
				Result: &wit.TypeDef{Kind: &wit.Result{}},
			},
		},
	}

	set, report := Convert(input)
	if report.Err() != nil {
		t.Fatalf("Convert failed: %v", report.Err())
	}

	funcs := set.Funcs()
	if len(funcs) != 2 {
		t.Fatalf("funcs = %d, want 2", len(funcs))
	}

	load := funcs[0]
	if load.Name != "load_profile" || !load.Fallible || !load.Async {
		t.Errorf("load_profile flags wrong: %+v", load)
	}
	if load.Return.String() != "profile" {
		t.Errorf("return = %s, want profile", load.Return)
	}
	if load.Params[0].Name != "user_id" || load.Params[0].Type.String() != "u64" {
		t.Errorf("param wrong: %+v", load.Params[0])
	}

	reset := funcs[1]
	if !reset.Fallible || !reset.Return.IsUnit() {
		t.Errorf("empty result should be fallible unit return: %+v", reset)
	}
}

func TestConvert_FlagsRejected(t *testing.T) {
	input := Input{Types: []*wit.TypeDef{
		named("perms", &wit.Flags{Flags: []wit.Flag{{Name: "read"}, {Name: "write"}}}),
		named("ok", &wit.Record{Fields: []wit.Field{{Name: "x", Type: wit.U8{}}}}),
	}}

	set, report := Convert(input)
	if report.Len() != 1 {
		t.Fatalf("report = %d error(s), want 1", report.Len())
	}
	if !stderrors.Is(report.Err(), &errors.Error{Phase: errors.PhaseFrontend, Kind: errors.KindUnsupportedType}) {
		t.Fatalf("want unsupported_type_kind, got %v", report.Err())
	}
	// Siblings survive the rejected declaration.
	if _, ok := set.Struct("ok"); !ok {
		t.Error("valid sibling declaration dropped")
	}
}

func TestConvert_FeedsPipeline(t *testing.T) {
	input := Input{
		Types: []*wit.TypeDef{
			named("point", &wit.Record{Fields: []wit.Field{
				{Name: "x", Type: wit.S32{}},
				{Name: "y", Type: wit.S32{}},
			}}),
		},
		Funcs: []Function{{
			Name:   "origin",
			Result: named("point", &wit.Record{Fields: nil}),
		}},
	}

	set, report := Convert(input)
	if report.Err() != nil {
		t.Fatalf("Convert failed: %v", report.Err())
	}
	if r := classify.New(set).DeclSet(set); r.Err() != nil {
		t.Fatalf("converted set must classify cleanly: %v", r.Err())
	}
	if err := classify.Resolve(set); err != nil {
		t.Fatalf("converted set must resolve: %v", err)
	}
}
