// Package ir defines the declaration set consumed by the binding generator.
//
// A declaration set is produced by an external front-end (a source parser or
// the witfront adapter) and holds three kinds of declarations:
//
//	StructDecl   - named or tuple struct with ordered fields
//	EnumDecl     - enum whose variants carry unit, tuple or named payloads
//	FunctionSig  - exposed function with parameters, return, fallible/async flags
//
// Field and parameter types arrive as TypeExpr trees (the front-end's spelling
// of a type, e.g. Option<Vec<u8>>). The classify package turns every TypeExpr
// into a TypeShape, the closed structural category the mapper and codegen
// operate on. Shapes form a tree with no cycles; self-reference is expressed
// through Boxed indirection, never inline.
//
// All entities are built once per generation run and treated as immutable
// after classification.
package ir
