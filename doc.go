// Package frb generates Dart bindings from a set of type and function
// declarations, so values cross the native boundary with their width,
// signedness and structure intact.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct
// responsibilities:
//
//	frb/                 Root package with the one-call Generate entry point
//	├── ir/              Declaration set model: type expressions, shapes, decls
//	├── classify/        Type expression -> shape classification and resolution
//	├── dart/            Dart code generation: mapping, aggregates, signatures
//	├── wire/            Reference binary codec mirrored by the generated Dart
//	├── generator/       Pipeline orchestration and batch error policy
//	├── witfront/        WIT type definitions -> declaration set front end
//	├── config/          YAML options loading
//	├── errors/          Structured error types for the whole pipeline
//	└── cmd/frb-codegen/ CLI with list, generate and interactive modes
//
// # Quick Start
//
// Generate bindings for a declaration set:
//
//	set := &ir.DeclSet{Decls: []ir.Decl{
//	    &ir.StructDecl{Name: "Point", Fields: []ir.FieldDecl{
//	        {Name: "x", Type: ir.Expr("i32")},
//	        {Name: "y", Type: ir.Expr("i32")},
//	    }},
//	}}
//
//	artifact, err := frb.Generate(set, generator.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("bridge_generated.dart", []byte(artifact.DartCode), 0o644)
//
// # Type System
//
// Declared types classify into a fixed set of shapes:
//
//   - Primitives: bool, u8-u64, i8-i64, f32, f64 (width preserved bit-exact)
//   - Text: String (UTF-8 across the boundary)
//   - Containers: Vec<T>, HashMap<K, V>, Option<T>, Box<T>
//   - Aggregates: declared structs (named or tuple) and enums (unit or payload)
//
// Classification is a first-match rule walk, so Vec<u8> is always a byte
// sequence and never a generic list of u8 structs. Anything that matches no
// rule fails that declaration with unsupported_type_kind while its siblings
// still generate.
//
// # Error Policy
//
// Runs are batch-reported and all-or-nothing: every per-declaration failure
// is collected before the run fails, and no artifact is written when
// anything failed. Unresolved type references and target name collisions are
// fatal immediately because the rest of the output would be built on a type
// that does not exist or an identifier that is ambiguous.
//
// # Determinism
//
// The same declaration set and options produce byte-identical output.
// Aggregates and signatures emit in source declaration order; support codecs
// emit in first-use order.
package frb
