package tableload

import (
	"io/fs"

	"github.com/cockroachdb/errors"
)

// LoadFailure reports that a source file could not be read. The Loader
// still returns a usable zero-shaped Table alongside it.
type LoadFailure struct {
	Path string
	Err  error
}

func (e *LoadFailure) Error() string {
	return "load " + e.Path + ": " + e.Err.Error()
}

func (e *LoadFailure) Unwrap() error {
	return e.Err
}

// NotFound reports whether the underlying cause is a missing file.
func (e *LoadFailure) NotFound() bool {
	return errors.Is(e.Err, fs.ErrNotExist)
}

// PermissionDenied reports whether the file exists but could not be opened.
func (e *LoadFailure) PermissionDenied() bool {
	return errors.Is(e.Err, fs.ErrPermission)
}

// IsLoadFailure reports whether err is or wraps a *LoadFailure.
func IsLoadFailure(err error) bool {
	var lf *LoadFailure
	return errors.As(err, &lf)
}
