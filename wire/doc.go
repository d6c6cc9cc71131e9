// Package wire is the reference implementation of the binary format the
// generated Dart codecs speak. The runtime transport links it on the native
// side; the engine's tests use it to exercise the round-trip law
// decode(encode(x)) == x against real byte streams.
//
// # Format
//
// Little-endian throughout.
//
//	bool        1 byte, 0 or 1
//	u8..u64     declared width, verbatim
//	i8..i64     declared width, two's complement
//	f32/f64     IEEE-754
//	String      u64 byte length + UTF-8 bytes
//	Vec<T>      u64 count + elements
//	HashMap     u64 count + (key, value) pairs; order irrelevant on decode
//	Option<T>   1 presence byte (0 = none) + payload when present
//	Box<T>      transparent, encodes as T
//	struct      fields in declared order, no framing
//	enum        u32 ordinal discriminant + payload (absent for unit variants)
//
// # Value conventions
//
// Values travel as `any` with exact Go types per primitive (uint8, int32,
// float64, ...), string for text, []any for sequences ([]byte for Vec<u8>),
// map[any]any for maps, map[string]any for named structs, []any for tuple
// structs, Variant for enum values, and nil for Option's no-value. Maps keyed
// by a unit-only enum use the variant name string as the Go key: Variant
// itself is not comparable. Nested
// optionals collapse to plain nullability, matching the target mapping:
// present-but-empty and no-value are distinguished only by nil-ness.
//
// # Errors
//
// Decoding an out-of-range enum discriminant fails with unknown_variant_tag
// before any payload is touched. Short input fails with truncated; non-UTF-8
// text with invalid_utf8. Encoding a value that does not match its declared
// shape fails with type_mismatch.
package wire
