// Package errors provides the structured error types used across the
// binding generator.
//
// Every error carries a Phase (where in the pipeline it happened) and a Kind
// (the taxonomy entry), plus optional declaration name, type path and detail.
// Errors render as:
//
//	[classify] unsupported_type_kind at Point.x: source type *mut u8 - no mapping rule for this type
//	[emit] name_collision: target type UserData - declarations "user_data" and "UserData" both translate to "UserData"
//
// Use the Builder for structured construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Decl("Point").
//		Path("x").
//		SourceType("i32").
//		Detail("cannot convert string to integer").
//		Build()
//
// Per-declaration failures are accumulated in a Report and surfaced together
// at the end of a run; whole-run failures (unresolved references, name
// collisions) abort immediately. A run never produces a partial artifact.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
