package config

import (
	"errors"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownBackend indicates the backend name is not supported.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrBackendRequired indicates a terminal path was given without naming the backend.
	ErrBackendRequired = errors.New("backend must be set")

	// ErrNvimNotFound indicates the nvim executable could not be found.
	ErrNvimNotFound = errors.New("nvim executable cannot be found")
)
