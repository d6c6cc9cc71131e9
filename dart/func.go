package dart

import (
	"fmt"
	"strings"

	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

// generateFunc emits one method on the generated API class.
//
// Asynchronous source functions return Future<T>: the task is handed to the
// transport without blocking the caller and the future resolves exactly once
// with either the decoded value or a failure. Synchronous functions call
// through directly. Fallible source functions, including source-side aborts
// the transport translates, surface as FrbException (thrown, or carried by
// the failed future) - never swallowed.
func (e *Emitter) generateFunc(sig *ir.FunctionSig) (string, error) {
	if sig.ReturnShape == nil {
		return "", errors.New(errors.PhaseCodegen, errors.KindInvalidData).
			Decl(sig.Name).
			Detail("return shape missing; classification did not run").
			Build()
	}

	methodName := memberName(sig.Name)
	retType, err := e.mapper.TypeName(sig.Name, []string{"[return]"}, sig.ReturnShape)
	if err != nil {
		return "", err
	}

	type param struct {
		name     string
		dartType string
		shape    ir.TypeShape
	}
	params := make([]param, 0, len(sig.Params))
	for _, p := range sig.Params {
		if p.Shape == nil {
			return "", errors.New(errors.PhaseCodegen, errors.KindInvalidData).
				Decl(sig.Name).
				Path(p.Name).
				Detail("parameter shape missing; classification did not run").
				Build()
		}
		dartType, err := e.mapper.TypeName(sig.Name, []string{p.Name}, p.Shape)
		if err != nil {
			return "", err
		}
		params = append(params, param{name: memberName(p.Name), dartType: dartType, shape: p.Shape})
		e.codecs.need(p.Shape)
	}
	e.codecs.need(sig.ReturnShape)

	var b strings.Builder

	if sig.Fallible {
		fmt.Fprintf(&b, "  /// Throws [FrbException] when the native side reports a failure.\n")
	}

	// Signature. Binding style is uniform across the run.
	declaredRet := retType
	if sig.Async {
		declaredRet = "Future<" + retType + ">"
	}
	fmt.Fprintf(&b, "  %s %s(", declaredRet, methodName)
	switch e.opts.BindingStyle {
	case BindingPositional:
		for i, p := range params {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s %s", p.dartType, p.name)
		}
	default: // named with required markers
		if len(params) > 0 {
			b.WriteString("{")
			for i, p := range params {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "required %s %s", p.dartType, p.name)
			}
			b.WriteString("}")
		}
	}
	b.WriteString(") {\n")

	// Body: build the task, hand it to the transport.
	fmt.Fprintf(&b, "    final task = FrbTask(\n")
	fmt.Fprintf(&b, "      method: '%s',\n", sig.Name)
	if len(params) == 0 {
		fmt.Fprintf(&b, "      encode: (writer) {},\n")
	} else {
		fmt.Fprintf(&b, "      encode: (writer) {\n")
		for _, p := range params {
			fmt.Fprintf(&b, "        %s;\n", e.mapper.EncodeCall(p.shape, p.name))
		}
		fmt.Fprintf(&b, "      },\n")
	}
	fmt.Fprintf(&b, "      decode: _wire2api_%s,\n", codecSuffix(sig.ReturnShape))
	fmt.Fprintf(&b, "      fallible: %v,\n", sig.Fallible)
	fmt.Fprintf(&b, "    );\n")

	if sig.Async {
		fmt.Fprintf(&b, "    return _transport.execute(task);\n")
	} else if isUnit(sig.ReturnShape) {
		fmt.Fprintf(&b, "    _transport.executeSync(task);\n")
	} else {
		fmt.Fprintf(&b, "    return _transport.executeSync(task);\n")
	}
	b.WriteString("  }\n\n")

	return b.String(), nil
}

func isUnit(shape ir.TypeShape) bool {
	_, ok := shape.(ir.Unit)
	return ok
}
