// Package xio: sentinel errors and the accumulated load failure.

package xio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownFormat is returned when a requested format name is not one
	// of the supported adapters.
	ErrUnknownFormat = errors.New("xio: unknown format")

	// ErrMalformed is returned (wrapped, with detail) when a file does not
	// parse under a given format.
	ErrMalformed = errors.New("xio: malformed transform file")

	// ErrGridRequired is returned when a format's conversion to or from the
	// canonical convention needs reference and moving grids it was not given.
	ErrGridRequired = errors.New("xio: format requires reference and moving grids")

	// ErrSeriesUnsupported is returned when a format cannot store more than
	// one transform per file.
	ErrSeriesUnsupported = errors.New("xio: format cannot store a transform series")

	// ErrEmptyCanonical is returned when an adapter is handed zero matrices.
	ErrEmptyCanonical = errors.New("xio: no canonical matrices given")
)

// Attempt records one format's failure while loading a file.
type Attempt struct {
	Format string
	Err    error
}

// ChainError is returned by Load when every candidate format failed. It
// keeps the structured per-attempt errors rather than discarding them.
type ChainError struct {
	Path     string
	Attempts []Attempt
}

// Error enumerates every attempted format and its failure reason.
func (e *ChainError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "xio: could not load %q (formats tried:", e.Path)
	for i, a := range e.Attempts {
		if i > 0 {
			b.WriteString(";")
		}
		fmt.Fprintf(&b, " %s: %v", a.Format, a.Err)
	}
	b.WriteString(")")

	return b.String()
}

// Unwrap exposes the per-attempt errors for errors.Is/As matching.
func (e *ChainError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a.Err
	}

	return errs
}
