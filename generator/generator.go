package generator

import (
	"go.uber.org/zap"

	"github.com/Unoqwy/flutter-rust-bridge/classify"
	"github.com/Unoqwy/flutter-rust-bridge/dart"
	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// Options configure a generation run.
type Options struct {
	Dart dart.Options
}

// Artifact is the complete output of a successful run.
type Artifact struct {
	// DartCode is the generated binding source.
	DartCode string
	// Descriptor records the codec and binding surface for tooling.
	Descriptor *dart.Descriptor
}

// Generator runs the pipeline over declaration sets. It is stateless and safe
// for concurrent use.
type Generator struct {
	opts Options
}

// New builds a generator with the given options.
func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate classifies set in place, resolves references, and emits the Dart
// artifact. On failure the returned error is an *errors.Report carrying every
// collected error; no artifact is produced if anything failed.
func (g *Generator) Generate(set *ir.DeclSet) (*Artifact, error) {
	report := &errors.Report{}

	Logger().Debug("classifying declarations", zap.Int("decls", len(set.Decls)))
	report.Merge(classify.New(set).DeclSet(set))

	// Failed declarations are excluded downstream; their errors are already
	// in the report, so the emitter must not re-report them.
	skip := make(map[string]bool, report.Len())
	for _, e := range report.Errors {
		if e.Decl != "" {
			skip[e.Decl] = true
		}
	}
	if report.Len() > 0 {
		Logger().Warn("declarations failed classification", zap.Int("failed", len(skip)))
	}

	Logger().Debug("resolving type references")
	if err := classify.Resolve(set); err != nil {
		report.Add(asError(err))
		return nil, report
	}

	Logger().Debug("emitting dart bindings",
		zap.String("api_class", g.opts.Dart.ApiClassName))
	code, desc, emitReport, err := dart.NewEmitter(set, g.opts.Dart).Emit(skip)
	if err != nil {
		report.Add(asError(err))
		return nil, report
	}
	report.Merge(emitReport)

	// All-or-nothing: any error voids the whole artifact.
	if report.Len() > 0 {
		return nil, report
	}

	Logger().Info("generation complete",
		zap.Int("types", len(desc.Types)),
		zap.Int("functions", len(desc.Funcs)),
		zap.Int("bytes", len(code)))
	return &Artifact{DartCode: code, Descriptor: desc}, nil
}

func asError(err error) *errors.Error {
	if e, ok := err.(*errors.Error); ok {
		return e
	}
	return errors.Wrap(errors.PhaseEmit, errors.KindInvalidData, err, "generation failed")
}
