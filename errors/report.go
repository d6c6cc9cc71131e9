package errors

import (
	"strconv"
	"strings"
)

// Report accumulates per-declaration errors so a run can finish walking the
// declaration set before failing. It implements error; a nil or empty report
// is success.
type Report struct {
	Errors []*Error
}

// Add appends an error to the report. Nil errors are ignored.
func (r *Report) Add(err *Error) {
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
}

// Merge appends all errors from another report.
func (r *Report) Merge(other *Report) {
	if other != nil {
		r.Errors = append(r.Errors, other.Errors...)
	}
}

// Len returns the number of collected errors.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Errors)
}

// Err returns the report as an error, or nil if nothing was collected.
func (r *Report) Err() error {
	if r.Len() == 0 {
		return nil
	}
	return r
}

// Error renders every collected error, one per line.
func (r *Report) Error() string {
	switch len(r.Errors) {
	case 0:
		return "no errors"
	case 1:
		return r.Errors[0].Error()
	}

	var b strings.Builder
	b.WriteString("generation failed with ")
	b.WriteString(strconv.Itoa(len(r.Errors)))
	b.WriteString(" error(s):")
	for _, e := range r.Errors {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Is reports whether any collected error matches target.
func (r *Report) Is(target error) bool {
	for _, e := range r.Errors {
		if e.Is(target) {
			return true
		}
	}
	return false
}
