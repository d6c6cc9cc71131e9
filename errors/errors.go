package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the generation pipeline the error occurred.
type Phase string

const (
	PhaseClassify Phase = "classify" // type expression -> shape
	PhaseResolve  Phase = "resolve"  // struct/enum reference resolution
	PhaseMap      Phase = "map"      // shape -> target type token
	PhaseCodegen  Phase = "codegen"  // aggregate/signature generation
	PhaseEmit     Phase = "emit"     // artifact serialization
	PhaseEncode   Phase = "encode"   // wire encoding (reference codec)
	PhaseDecode   Phase = "decode"   // wire decoding (reference codec)
	PhaseFrontend Phase = "frontend" // declaration set ingestion
	PhaseConfig   Phase = "config"   // options loading/validation
)

// Kind categorizes the error.
type Kind string

const (
	KindUnsupportedType Kind = "unsupported_type_kind"
	KindUnresolvedRef   Kind = "unresolved_type_reference"
	KindUnhashableKey   Kind = "unhashable_key_type"
	KindUnknownVariant  Kind = "unknown_variant_tag"
	KindNameCollision   Kind = "name_collision"
	KindTypeMismatch    Kind = "type_mismatch"
	KindOverflow        Kind = "overflow"
	KindInvalidData     Kind = "invalid_data"
	KindInvalidInput    Kind = "invalid_input"
	KindTruncated       Kind = "truncated"
	KindInvalidUTF8     Kind = "invalid_utf8"
)

// Error is the structured error type used throughout the generator.
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	Decl       string
	SourceType string
	TargetType string
	Detail     string
	Path       []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	loc := e.Decl
	if len(e.Path) > 0 {
		if loc != "" {
			loc += "."
		}
		loc += strings.Join(e.Path, ".")
	}
	if loc != "" {
		b.WriteString(" at ")
		b.WriteString(loc)
	}

	if e.SourceType != "" || e.TargetType != "" {
		b.WriteString(": ")
		switch {
		case e.SourceType != "" && e.TargetType != "":
			b.WriteString("source type ")
			b.WriteString(e.SourceType)
			b.WriteString(", target type ")
			b.WriteString(e.TargetType)
		case e.SourceType != "":
			b.WriteString("source type ")
			b.WriteString(e.SourceType)
		default:
			b.WriteString("target type ")
			b.WriteString(e.TargetType)
		}
	}

	if e.Detail != "" {
		if e.SourceType != "" || e.TargetType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by phase and kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Fatal reports whether the error aborts the whole run rather than a single
// declaration.
func (e *Error) Fatal() bool {
	return e.Kind == KindUnresolvedRef || e.Kind == KindNameCollision
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Decl sets the owning declaration name.
func (b *Builder) Decl(name string) *Builder {
	b.err.Decl = name
	return b
}

// Path sets the field path within the declaration.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// SourceType sets the source-language type spelling.
func (b *Builder) SourceType(t string) *Builder {
	b.err.SourceType = t
	return b
}

// TargetType sets the target-language type token.
func (b *Builder) TargetType(t string) *Builder {
	b.err.TargetType = t
	return b
}

// Value sets the offending value.
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the generator's taxonomy.

// UnsupportedType reports a declared type that matches no classification
// rule. Fatal for the declaration; sibling declarations still complete.
func UnsupportedType(decl string, path []string, sourceType string) *Error {
	return &Error{
		Phase:      PhaseClassify,
		Kind:       KindUnsupportedType,
		Decl:       decl,
		Path:       path,
		SourceType: sourceType,
		Detail:     "no mapping rule for this type",
	}
}

// UnresolvedRef reports a struct/enum reference that never resolves.
// Fatal for the whole run.
func UnresolvedRef(decl string, path []string, refName string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUnresolvedRef,
		Decl:   decl,
		Path:   path,
		Detail: fmt.Sprintf("reference %q does not name a declared struct or enum", refName),
	}
}

// UnhashableKey reports a map key type without stable target equality/hash
// semantics. Fatal for the declaration only.
func UnhashableKey(decl string, path []string, keyType string) *Error {
	return &Error{
		Phase:      PhaseMap,
		Kind:       KindUnhashableKey,
		Decl:       decl,
		Path:       path,
		SourceType: keyType,
		Detail:     "map key has no stable equality/hash on the target side",
	}
}

// UnknownVariantTag reports an out-of-range discriminant met while decoding.
func UnknownVariantTag(path []string, tag uint32, maxValid uint32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownVariant,
		Path:   path,
		Detail: fmt.Sprintf("discriminant %d out of range (max %d)", tag, maxValid),
		Value:  tag,
	}
}

// NameCollision reports two declarations mapping to the same target
// identifier after case-convention translation. Fatal for the whole run.
func NameCollision(targetName, firstDecl, secondDecl string) *Error {
	return &Error{
		Phase:      PhaseEmit,
		Kind:       KindNameCollision,
		TargetType: targetName,
		Detail:     fmt.Sprintf("declarations %q and %q both translate to %q", firstDecl, secondDecl, targetName),
	}
}

// TypeMismatch reports a value that does not match its declared shape.
func TypeMismatch(phase Phase, path []string, sourceType, expected string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		SourceType: sourceType,
		Detail:     fmt.Sprintf("expected %s", expected),
	}
}

// Overflow reports a value outside the declared primitive's range.
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindOverflow,
		Path:       path,
		TargetType: targetType,
		Detail:     fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:      value,
	}
}

// Truncated reports wire data ending before a value was fully decoded.
func Truncated(path []string, want, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTruncated,
		Path:   path,
		Detail: fmt.Sprintf("need %d more byte(s), have %d", want, have),
	}
}

// InvalidUTF8 reports a non-UTF-8 byte sequence where text was declared.
func InvalidUTF8(path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidInput reports malformed front-end input.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with pipeline context.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
