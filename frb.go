package frb

import (
	"github.com/Unoqwy/flutter-rust-bridge/generator"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// Generate runs the full pipeline over a declaration set. The set is
// classified in place. See package generator for the error policy.
func Generate(set *ir.DeclSet, opts generator.Options) (*generator.Artifact, error) {
	return generator.New(opts).Generate(set)
}
