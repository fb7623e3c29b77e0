package roster

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// FieldConversionFailure reports a cell that should hold an integer but
// does not. It aborts the run that met it.
type FieldConversionFailure struct {
	Field  string
	Column int
	Row    int
	Value  string
	Err    error
}

func (e *FieldConversionFailure) Error() string {
	return fmt.Sprintf("field conversion: %s at column %d, row %d: %q is not an integer",
		e.Field, e.Column, e.Row, e.Value)
}

func (e *FieldConversionFailure) Unwrap() error {
	return e.Err
}

// IsFieldConversionFailure reports whether err is or wraps a *FieldConversionFailure.
func IsFieldConversionFailure(err error) bool {
	var fc *FieldConversionFailure
	return errors.As(err, &fc)
}
