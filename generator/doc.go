// Package generator orchestrates the full binding generation pipeline:
// classification, reference resolution, and Dart emission.
//
// Runs are all-or-nothing per artifact. Declarations that fail classification
// are reported and excluded, and their siblings still generate; a fatal error
// (an unresolved reference or a target name collision) aborts the run with no
// artifact at all. A run that produced any errors never writes partial output.
package generator
