// Package dart maps classified shapes to Dart constructs and emits the
// generated binding source plus its marshaling descriptor.
//
// # Type mapping
//
//	bool              -> bool
//	u8..u32, i8..i64  -> int        (fits Dart's signed 64-bit int)
//	u64               -> BigInt     (range preserved, never truncated)
//	f32, f64          -> double
//	String            -> String
//	Vec<T>            -> List<T>, or typed data (Uint8List, ...) for numeric T
//	HashMap<K, V>     -> Map<K, V>  (K limited to hashable shapes)
//	Option<T>         -> T?         (native nullability, no wrapper type)
//	Box<T>            -> T          (transparent; Dart objects are references)
//	struct            -> class with fields in declared order
//	enum (unit-only)  -> enum
//	enum (payload)    -> abstract base class + one case class per variant
//	()                -> void
//
// # Codecs
//
// Every aggregate gets an encode function (_api2wire_<name>) and a decode
// function (_wire2api_<name>) that walk fields in declared order, so
// decode(encode(x)) reproduces x. Enum codecs write the variant's ordinal as
// a little-endian u32 discriminant before the payload; decoding an
// out-of-range discriminant throws FrbUnknownVariantError.
//
// # Signatures
//
// Functions become methods on the generated API class. Asynchronous source
// functions return Future<T>; the task is dispatched without blocking and
// completes exactly once. Fallible source functions (including source-side
// aborts) surface failure as a thrown FrbException, or as a failed Future
// when async. Parameter binding is uniform per run: named-with-required
// markers by default, positional on request.
//
// # Emission
//
// Emit is deterministic and single-pass: aggregates first, then signatures,
// both in source declaration order. Two declarations translating to the same
// Dart identifier fail the run with name_collision rather than renaming.
package dart
