// Package witfront ingests WIT type definitions and produces a declaration
// set for the generation pipeline. It is one of two front ends; the other is
// the JSON declaration format decoded directly by package ir.
//
// Named records, variants, enums and tuples become struct and enum
// declarations. Anonymous container kinds (list, option) expand inline at
// their use sites; a named alias of a non-aggregate kind expands the same
// way. A result
// in a function's return position marks the signature fallible, with the ok
// side as the declared return type. WIT kinds with no counterpart in the
// target surface (flags, resources, futures, streams) are rejected per
// declaration.
package witfront
