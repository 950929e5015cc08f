// Package common holds pieces shared by program commands.
package common

import (
	"errors"
)

// ErrUsage marks errors caused by malformed command line.
var ErrUsage = errors.New("usage error")

// UsageError is returned by commands when required arguments are missing.
// No file access happens before it is returned.
type UsageError struct {
	Usage  string // command line synopsis, e.g. "cssdedup analyze <path-to-css>"
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

func (e *UsageError) Unwrap() error {
	return ErrUsage
}
