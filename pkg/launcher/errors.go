package launcher

import (
	"fmt"
	"strings"
)

// EntryPointMissingError indicates the launch command references a module
// that is absent from the application source tree. Starting the container
// would fail immediately, so the launch is refused up front.
type EntryPointMissingError struct {
	Module    string
	SearchDir string
}

func (e *EntryPointMissingError) Error() string {
	return fmt.Sprintf("entry point module %q not found in source tree %s", e.Module, e.SearchDir)
}

// PortBindConflictError indicates the runtime process cannot bind the
// declared port because it is already taken on the host.
type PortBindConflictError struct {
	Port int
	Err  error
}

func (e *PortBindConflictError) Error() string {
	return fmt.Sprintf("port %d is already bound on the host: %v", e.Port, e.Err)
}

func (e *PortBindConflictError) Unwrap() error {
	return e.Err
}

// isPortBindConflict recognizes the engine's report of a failed port binding.
func isPortBindConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "port is already allocated") || strings.Contains(msg, "address already in use")
}
