package dart

import (
	"strconv"
	"strings"
	"unicode"
)

// Case-convention translation between the source's snake_case/PascalCase and
// Dart's conventions. Collisions introduced here (user_data and UserData both
// becoming UserData) are detected by the emitter.

// typeName converts a source type name to Dart PascalCase.
func typeName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// memberName converts a source field/function name to Dart lowerCamelCase.
func memberName(name string) string {
	pascal := typeName(name)
	if pascal == "" {
		return pascal
	}
	return string(unicode.ToLower(rune(pascal[0]))) + pascal[1:]
}

// snake converts a source type name to snake_case for codec identifiers.
func snake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 && name[i-1] != '_' {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// caseClassName names the Dart case class for a payload enum variant,
// frb-style: Shape_Circle.
func caseClassName(enumName, variantName string) string {
	return typeName(enumName) + "_" + typeName(variantName)
}

// tupleFieldName names positional members of tuple structs and variants.
func tupleFieldName(i int) string {
	return "field" + strconv.Itoa(i)
}
