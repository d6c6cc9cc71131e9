package ir

import "strings"

// TypeExpr is a type expression as spelled by the front-end: a head name and
// zero or more generic arguments. Examples: u32, String, Vec<u8>,
// HashMap<String, Point>, Box<Self>.
type TypeExpr struct {
	Name string     `json:"name"`
	Args []TypeExpr `json:"args,omitempty"`
}

// Expr builds a TypeExpr. Convenience for front-ends and tests.
func Expr(name string, args ...TypeExpr) TypeExpr {
	return TypeExpr{Name: name, Args: args}
}

// UnitName is the spelling of the unit/void type.
const UnitName = "()"

// IsUnit reports whether the expression is the unit type.
func (e TypeExpr) IsUnit() bool {
	return e.Name == UnitName || e.Name == ""
}

func (e TypeExpr) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	var b strings.Builder
	b.WriteString(e.Name)
	b.WriteByte('<')
	for i, a := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte('>')
	return b.String()
}
