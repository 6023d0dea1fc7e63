package pipeline

import "fmt"

// UnresolvedBaseImageError indicates the base runtime reference could not be
// located. The build aborts with no partial image produced.
type UnresolvedBaseImageError struct {
	Ref string
	Err error
}

func (e *UnresolvedBaseImageError) Error() string {
	return fmt.Sprintf("unresolved base image %q: %v", e.Ref, e.Err)
}

func (e *UnresolvedBaseImageError) Unwrap() error {
	return e.Err
}

// DependencyResolutionError indicates the dependency manifest references
// unavailable or conflicting packages, or is missing altogether. The build
// aborts with no partial install retained.
type DependencyResolutionError struct {
	Manifest string
	Err      error
}

func (e *DependencyResolutionError) Error() string {
	return fmt.Sprintf("dependency resolution failed for manifest %q: %v", e.Manifest, e.Err)
}

func (e *DependencyResolutionError) Unwrap() error {
	return e.Err
}
