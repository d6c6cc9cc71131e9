package witfront

import (
	"strconv"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// Param is one function parameter in WIT terms.
type Param struct {
	Name string
	Type wit.Type
}

// Function describes an exported function to bind. A *wit.Result in the
// return position marks the signature fallible. Async is a binding-level
// property with no WIT spelling, so callers set it directly.
type Function struct {
	Name   string
	Params []Param
	Result wit.Type
	Async  bool
}

// Input is the complete WIT surface to convert. Types must be named
// aggregates (record, variant, enum); anonymous types appear inline in field
// and parameter positions instead.
type Input struct {
	Types []*wit.TypeDef
	Funcs []Function
}

// Convert builds a declaration set from the WIT surface. Conversion failures
// are collected per declaration; the returned report carries all of them.
// The resulting set is unclassified.
func Convert(input Input) (*ir.DeclSet, *errors.Report) {
	report := &errors.Report{}
	set := &ir.DeclSet{}

	for _, td := range input.Types {
		decl, err := convertTypeDef(td)
		if err != nil {
			report.Add(err)
			continue
		}
		set.Decls = append(set.Decls, decl)
	}

	for _, fn := range input.Funcs {
		sig, err := convertFunc(fn)
		if err != nil {
			report.Add(err)
			continue
		}
		set.Decls = append(set.Decls, sig)
	}

	return set, report
}

func convertTypeDef(td *wit.TypeDef) (ir.Decl, *errors.Error) {
	if td.Name == nil || *td.Name == "" {
		return nil, errors.InvalidInput(errors.PhaseFrontend,
			"top-level type definitions must be named")
	}
	name := identName(*td.Name)

	switch kind := td.Kind.(type) {
	case *wit.Record:
		fields := make([]ir.FieldDecl, 0, len(kind.Fields))
		for _, f := range kind.Fields {
			expr, err := typeExpr(name, []string{f.Name}, f.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ir.FieldDecl{Name: identName(f.Name), Type: expr})
		}
		return &ir.StructDecl{Name: name, Fields: fields}, nil

	case *wit.Enum:
		variants := make([]ir.VariantDecl, 0, len(kind.Cases))
		for _, c := range kind.Cases {
			variants = append(variants, ir.VariantDecl{
				Name:    identName(c.Name),
				Payload: ir.PayloadUnit,
			})
		}
		return &ir.EnumDecl{Name: name, Variants: variants}, nil

	case *wit.Variant:
		variants := make([]ir.VariantDecl, 0, len(kind.Cases))
		for _, c := range kind.Cases {
			v := ir.VariantDecl{Name: identName(c.Name), Payload: ir.PayloadUnit}
			if c.Type != nil {
				expr, err := typeExpr(name, []string{c.Name}, c.Type)
				if err != nil {
					return nil, err
				}
				v.Payload = ir.PayloadTuple
				v.Fields = []ir.FieldDecl{{Type: expr}}
			}
			variants = append(variants, v)
		}
		return &ir.EnumDecl{Name: name, Variants: variants}, nil

	case *wit.Tuple:
		fields := make([]ir.FieldDecl, 0, len(kind.Types))
		for i, elem := range kind.Types {
			expr, err := typeExpr(name, []string{"[" + strconv.Itoa(i) + "]"}, elem)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ir.FieldDecl{Type: expr})
		}
		return &ir.StructDecl{Name: name, Tuple: true, Fields: fields}, nil

	default:
		return nil, errors.New(errors.PhaseFrontend, errors.KindUnsupportedType).
			Decl(name).
			SourceType(kindName(td.Kind)).
			Detail("only record, variant, enum and tuple definitions translate to declarations").
			Build()
	}
}

func convertFunc(fn Function) (*ir.FunctionSig, *errors.Error) {
	if fn.Name == "" {
		return nil, errors.InvalidInput(errors.PhaseFrontend, "function must be named")
	}
	name := identName(fn.Name)

	sig := &ir.FunctionSig{Name: name, Async: fn.Async}
	for _, p := range fn.Params {
		expr, err := typeExpr(name, []string{p.Name}, p.Type)
		if err != nil {
			return nil, err
		}
		sig.Params = append(sig.Params, ir.ParamDecl{Name: identName(p.Name), Type: expr})
	}

	ret, fallible, err := returnExpr(name, fn.Result)
	if err != nil {
		return nil, err
	}
	sig.Return = ret
	sig.Fallible = fallible
	return sig, nil
}

// returnExpr unwraps a result in the return position into the ok type plus
// the fallible flag. A nil result or a nil ok side is the unit return.
func returnExpr(owner string, t wit.Type) (ir.TypeExpr, bool, *errors.Error) {
	if t == nil {
		return ir.Expr(ir.UnitName), false, nil
	}
	if td, ok := t.(*wit.TypeDef); ok {
		if res, ok := td.Kind.(*wit.Result); ok {
			if res.OK == nil {
				return ir.Expr(ir.UnitName), true, nil
			}
			expr, err := typeExpr(owner, []string{"[return]"}, res.OK)
			return expr, true, err
		}
	}
	expr, err := typeExpr(owner, []string{"[return]"}, t)
	return expr, false, err
}

func typeExpr(owner string, path []string, t wit.Type) (ir.TypeExpr, *errors.Error) {
	switch v := t.(type) {
	case wit.Bool:
		return ir.Expr("bool"), nil
	case wit.U8:
		return ir.Expr("u8"), nil
	case wit.S8:
		return ir.Expr("i8"), nil
	case wit.U16:
		return ir.Expr("u16"), nil
	case wit.S16:
		return ir.Expr("i16"), nil
	case wit.U32:
		return ir.Expr("u32"), nil
	case wit.S32:
		return ir.Expr("i32"), nil
	case wit.U64:
		return ir.Expr("u64"), nil
	case wit.S64:
		return ir.Expr("i64"), nil
	case wit.F32:
		return ir.Expr("f32"), nil
	case wit.F64:
		return ir.Expr("f64"), nil
	case wit.Char:
		// Unicode scalar values travel as their code point.
		return ir.Expr("u32"), nil
	case wit.String:
		return ir.Expr("String"), nil
	case *wit.TypeDef:
		return typeDefExpr(owner, path, v)
	default:
		return ir.TypeExpr{}, errors.New(errors.PhaseFrontend, errors.KindUnsupportedType).
			Decl(owner).
			Path(path...).
			SourceType(kindName(t)).
			Build()
	}
}

func typeDefExpr(owner string, path []string, td *wit.TypeDef) (ir.TypeExpr, *errors.Error) {
	// A named aggregate in a use position is a reference to its declaration.
	if td.Name != nil && *td.Name != "" {
		switch td.Kind.(type) {
		case *wit.Record, *wit.Variant, *wit.Enum, *wit.Tuple:
			return ir.Expr(identName(*td.Name)), nil
		}
	}

	switch kind := td.Kind.(type) {
	case *wit.List:
		elem, err := typeExpr(owner, append(path, "[elem]"), kind.Type)
		if err != nil {
			return ir.TypeExpr{}, err
		}
		return ir.Expr("Vec", elem), nil
	case *wit.Option:
		inner, err := typeExpr(owner, append(path, "[some]"), kind.Type)
		if err != nil {
			return ir.TypeExpr{}, err
		}
		return ir.Expr("Option", inner), nil
	case *wit.Result:
		return ir.TypeExpr{}, errors.New(errors.PhaseFrontend, errors.KindUnsupportedType).
			Decl(owner).
			Path(path...).
			SourceType("result").
			Detail("result is only meaningful in a function's return position").
			Build()
	default:
		return ir.TypeExpr{}, errors.New(errors.PhaseFrontend, errors.KindUnsupportedType).
			Decl(owner).
			Path(path...).
			SourceType(kindName(td.Kind)).
			Build()
	}
}

func kindName(v any) string {
	switch v.(type) {
	case *wit.Record:
		return "record"
	case *wit.Variant:
		return "variant"
	case *wit.Enum:
		return "enum"
	case *wit.List:
		return "list"
	case *wit.Option:
		return "option"
	case *wit.Result:
		return "result"
	case *wit.Tuple:
		return "tuple"
	case *wit.Flags:
		return "flags"
	default:
		return "unknown"
	}
}

// identName normalizes a kebab-case WIT name to a declaration identifier.
func identName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
