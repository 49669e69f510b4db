package backend

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrExecutableNotFound is matched by every NotFoundError.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrNoBackend indicates that no supported terminal could be found.
	ErrNoBackend = errors.New("no supported terminal found")

	// ErrCorrectionTimeout indicates the editor process never appeared
	// under the terminal.
	ErrCorrectionTimeout = errors.New("editor process not found")

	// ErrProcessTableUnsupported indicates the process table cannot be
	// read on this platform.
	ErrProcessTableUnsupported = errors.New("process table not supported on this platform")
)

// NotFoundError reports a terminal executable that could not be resolved.
type NotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrExecutableNotFound, e.Name)
}

// Is reports whether target is ErrExecutableNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrExecutableNotFound
}

// TempFileError reports a failure to write the generated terminal config.
type TempFileError struct {
	Path string
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *TempFileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("temp config: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("temp config %s: %s: %v", e.Path, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TempFileError) Unwrap() error {
	return e.Err
}
