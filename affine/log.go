// Package affine: advisory logging.

package affine

import "github.com/charmbracelet/log"

// logger emits non-fatal advisories, e.g. when two transforms compare equal
// but their reference spaces differ. Replace it with SetLogger to route
// advisories elsewhere (or silence them with a discarding logger).
var logger = log.Default().WithPrefix("affine")

// SetLogger replaces the package logger. Passing nil restores the default.
// Not safe for concurrent use with in-flight comparisons; set it once during
// program initialization.
func SetLogger(l *log.Logger) {
	if l == nil {
		logger = log.Default().WithPrefix("affine")

		return
	}
	logger = l
}
