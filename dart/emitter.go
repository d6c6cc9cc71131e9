package dart

import (
	"fmt"
	"strings"

	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// BindingStyle selects how generated method parameters bind. One style
// applies uniformly to every signature in a run.
type BindingStyle uint8

const (
	// BindingNamed emits named parameters with required markers.
	BindingNamed BindingStyle = iota
	// BindingPositional emits plain positional parameters.
	BindingPositional
)

// Options control the emitted surface.
type Options struct {
	// ApiClassName is the class exposing the generated methods.
	// Defaults to RustApi.
	ApiClassName string
	BindingStyle BindingStyle
}

func (o Options) withDefaults() Options {
	if o.ApiClassName == "" {
		o.ApiClassName = "RustApi"
	}
	return o
}

// Emitter serializes a classified declaration set into Dart source and the
// marshaling descriptor. Emission is a deterministic single pass: aggregates
// first, then signatures, both in source declaration order.
type Emitter struct {
	set    *ir.DeclSet
	opts   Options
	mapper *Mapper
	codecs *codecRegistry
}

// NewEmitter builds an emitter for one generation run.
func NewEmitter(set *ir.DeclSet, opts Options) *Emitter {
	m := NewMapper(set)
	return &Emitter{
		set:    set,
		opts:   opts.withDefaults(),
		mapper: m,
		codecs: newCodecRegistry(m),
	}
}

// Emit generates the artifact. skip names declarations that already failed
// upstream (their errors are reported elsewhere); they are left out of both
// codegen and collision checking. Per-declaration failures land in the
// returned report; a non-nil error is a whole-run failure (name collision)
// and voids the artifact immediately.
func (e *Emitter) Emit(skip map[string]bool) (string, *Descriptor, *errors.Report, error) {
	if err := e.checkCollisions(skip); err != nil {
		return "", nil, nil, err
	}

	report := &errors.Report{}
	desc := &Descriptor{ApiClass: e.opts.ApiClassName}

	var aggregates strings.Builder
	for _, d := range e.set.Aggregates() {
		if skip[d.DeclName()] {
			continue
		}
		var text string
		var err error
		switch decl := d.(type) {
		case *ir.StructDecl:
			text, err = e.generateStruct(decl)
		case *ir.EnumDecl:
			text, err = e.generateEnum(decl)
		}
		if err != nil {
			report.Add(asReportable(err))
			continue
		}
		aggregates.WriteString(text)
		suffix := snake(d.DeclName())
		desc.Types = append(desc.Types, TypeCodec{
			Name:   d.DeclName(),
			Target: typeName(d.DeclName()),
			Encode: "_api2wire_" + suffix,
			Decode: "_wire2api_" + suffix,
		})
	}

	var methods strings.Builder
	for _, sig := range e.set.Funcs() {
		if skip[sig.Name] {
			continue
		}
		text, err := e.generateFunc(sig)
		if err != nil {
			report.Add(asReportable(err))
			continue
		}
		methods.WriteString(text)
		desc.Funcs = append(desc.Funcs, FuncBinding{
			Name:     sig.Name,
			Target:   memberName(sig.Name),
			Decode:   "_wire2api_" + codecSuffix(sig.ReturnShape),
			Async:    sig.Async,
			Fallible: sig.Fallible,
		})
	}

	var out strings.Builder
	e.writePrelude(&out)
	out.WriteString(aggregates.String())
	e.writeAPIClass(&out, methods.String())
	if err := e.codecs.emit(&out); err != nil {
		return "", nil, nil, errors.Wrap(errors.PhaseEmit, errors.KindInvalidData, err, "support codec emission")
	}

	return out.String(), desc, report, nil
}

// checkCollisions walks declarations in source order and fails on the first
// pair translating to the same Dart identifier. Silent renaming would
// desynchronize generated code from hand-written call sites, so collisions
// abort the run. Types (classes, enums, variant case classes) and API
// members live in separate Dart namespaces and are checked separately.
// Codec identifiers share one flat namespace with aggregate codecs: an
// aggregate named opt_u32 would shadow the support codec for Option<u32>.
func (e *Emitter) checkCollisions(skip map[string]bool) error {
	types := make(map[string]string)   // dart name -> source decl
	members := make(map[string]string) // dart name -> source decl

	claimType := func(dartName, decl string) error {
		if first, taken := types[dartName]; taken {
			return errors.NameCollision(dartName, first, decl)
		}
		types[dartName] = decl
		return nil
	}

	for _, d := range e.set.Decls {
		if skip[d.DeclName()] {
			continue
		}
		switch decl := d.(type) {
		case *ir.StructDecl:
			if err := claimType(typeName(decl.Name), decl.Name); err != nil {
				return err
			}
		case *ir.EnumDecl:
			if err := claimType(typeName(decl.Name), decl.Name); err != nil {
				return err
			}
			if decl.HasPayload() {
				for _, v := range decl.Variants {
					if err := claimType(caseClassName(decl.Name, v.Name), decl.Name+"::"+v.Name); err != nil {
						return err
					}
				}
			}
		case *ir.FunctionSig:
			dartName := memberName(decl.Name)
			if first, taken := members[dartName]; taken {
				return errors.NameCollision(dartName, first, decl.Name)
			}
			members[dartName] = decl.Name
		}
	}

	return e.checkCodecCollisions(skip)
}

// checkCodecCollisions compares every support codec suffix the run will emit
// against the aggregate codec suffixes. The walk mirrors codec registration:
// boxes are transparent, refs carry their own codecs.
func (e *Emitter) checkCodecCollisions(skip map[string]bool) error {
	aggregates := make(map[string]string) // codec suffix -> source decl
	for _, d := range e.set.Aggregates() {
		if skip[d.DeclName()] {
			continue
		}
		aggregates[snake(d.DeclName())] = d.DeclName()
	}

	var walk func(shape ir.TypeShape, decl string) error
	walk = func(shape ir.TypeShape, decl string) error {
		switch s := shape.(type) {
		case nil:
			return nil
		case ir.Boxed:
			return walk(s.Inner, decl)
		case ir.StructRef, ir.EnumRef:
			return nil
		case ir.Optional:
			if err := walk(s.Inner, decl); err != nil {
				return err
			}
		case ir.Sequence:
			if err := walk(s.Elem, decl); err != nil {
				return err
			}
		case ir.Map:
			if err := walk(s.Key, decl); err != nil {
				return err
			}
			if err := walk(s.Value, decl); err != nil {
				return err
			}
		}
		// Refs returned above, so any suffix reached here belongs to a
		// support codec and must not match an aggregate codec.
		suffix := codecSuffix(shape)
		if first, taken := aggregates[suffix]; taken {
			return errors.NameCollision("_api2wire_"+suffix, first, decl)
		}
		return nil
	}

	for _, d := range e.set.Decls {
		if skip[d.DeclName()] {
			continue
		}
		switch decl := d.(type) {
		case *ir.StructDecl:
			for _, f := range decl.Fields {
				if err := walk(f.Shape, decl.Name); err != nil {
					return err
				}
			}
		case *ir.EnumDecl:
			for _, v := range decl.Variants {
				for _, f := range v.Fields {
					if err := walk(f.Shape, decl.Name); err != nil {
						return err
					}
				}
			}
		case *ir.FunctionSig:
			for _, p := range decl.Params {
				if err := walk(p.Shape, decl.Name); err != nil {
					return err
				}
			}
			if err := walk(decl.ReturnShape, decl.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Emitter) writePrelude(b *strings.Builder) {
	b.WriteString("// AUTO-GENERATED by frb-codegen. Do not edit by hand.\n")
	b.WriteString("//\n")
	b.WriteString("// ignore_for_file: non_constant_identifier_names, unused_element, camel_case_types\n\n")
	b.WriteString("import 'dart:typed_data';\n\n")
	b.WriteString("import 'package:frb_runtime/frb_runtime.dart';\n\n")
}

func (e *Emitter) writeAPIClass(b *strings.Builder, methods string) {
	fmt.Fprintf(b, "class %s {\n", e.opts.ApiClassName)
	b.WriteString("  final FrbTransport _transport;\n\n")
	fmt.Fprintf(b, "  %s(this._transport);\n\n", e.opts.ApiClassName)
	b.WriteString(methods)
	b.WriteString("}\n\n")
}

func asReportable(err error) *errors.Error {
	if e, ok := err.(*errors.Error); ok {
		return e
	}
	return errors.Wrap(errors.PhaseCodegen, errors.KindInvalidData, err, "code generation failed")
}
