package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the registry failure taxonomy. Filesystem failures are
// not wrapped into a sentinel: they propagate as plain wrapped errors.
var (
	// ErrNotFound marks a missing slug, version, or content object.
	ErrNotFound = errors.New("not found")

	// ErrCorrupted marks a stored object whose bytes no longer match its
	// content hash. Corruption is surfaced, never silently repaired.
	ErrCorrupted = errors.New("content corrupted")

	// ErrInvalidInput marks a malformed slug, version, or constraint.
	ErrInvalidInput = errors.New("invalid input")
)

// ConstraintError reports that no cached version of a skill satisfies the
// requested constraint. Cached carries the versions that were considered.
type ConstraintError struct {
	Slug       string
	Constraint string
	Cached     []string
}

func (e *ConstraintError) Error() string {
	if len(e.Cached) == 0 {
		return fmt.Sprintf("no cached versions of %q satisfy %q (none cached)", e.Slug, e.Constraint)
	}
	return fmt.Sprintf("no cached versions of %q satisfy %q (cached: %s)",
		e.Slug, e.Constraint, strings.Join(e.Cached, ", "))
}
