// Package classify turns front-end type expressions into the closed set of
// structural shapes the rest of the engine operates on.
//
// Classification rules are ordered and first-match-wins:
//
//  1. Box<T>            -> Boxed(T)        (transparent indirection)
//  2. Option<T>         -> Optional(T)
//  3. Vec<T>            -> Sequence(T)
//  4. HashMap/BTreeMap  -> Map(K, V)
//  5. bool, u8..u64, i8..i64, f32, f64 -> Primitive (bit-exact)
//  6. String            -> Text
//  7. bare identifier   -> StructRef / EnumRef (forward refs allowed)
//  8. ()                -> Unit
//
// Anything else fails with unsupported_type_kind: raw pointers, references,
// trait objects, and single-letter identifiers (uninstantiated generic
// parameters).
//
// References are not validated during classification. Resolve runs as a
// second pass over the classified set and fails the whole run with
// unresolved_type_reference if any ref does not land on a declaration.
package classify
