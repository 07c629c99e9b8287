package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyClip reports a clip that produced zero extent on at least one
// spatial axis, typically a sub-basin lying outside the data extent.
// Recoverable: the caller skips the variable for this region.
var ErrEmptyClip = errors.New("clip produced empty extent")

// ErrNoFiles reports a variable with no matching archive files. Discovery
// only yields variables that have files, so this indicates the archive
// changed underneath the run; it is still treated as a recoverable skip.
var ErrNoFiles = errors.New("no archive files for variable")

// ClipError wraps a clip-time failure with the region and variable it
// implicates so the operator can re-run against a corrected input subset.
type ClipError struct {
	Region   string
	Variable string
	Err      error
}

func (e *ClipError) Error() string {
	return fmt.Sprintf("clip %s for %s: %v", e.Variable, e.Region, e.Err)
}

func (e *ClipError) Unwrap() error { return e.Err }
