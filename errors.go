package nodectl

import (
	"errors"
	"fmt"
)

// Common errors returned by dispatch operations
var (
	// ErrDaemonNotFound indicates the daemon binary is missing or not executable
	ErrDaemonNotFound = errors.New("nodectl: daemon binary not found")

	// ErrBaseDirMissing indicates the base node directory does not exist
	ErrBaseDirMissing = errors.New("nodectl: base directory missing")

	// ErrRootOwned indicates a node directory is owned by root and will not be dispatched
	ErrRootOwned = errors.New("nodectl: node directory owned by root")

	// ErrUnknownCommand indicates an unrecognized top-level command
	ErrUnknownCommand = errors.New("nodectl: unknown command")

	// ErrNotRunning indicates a node has no live daemon process
	ErrNotRunning = errors.New("nodectl: node not running")
)

// OpError represents an error from a per-node operation
type OpError struct {
	// Cmd is the command that failed
	Cmd Command
	// Node is the node name or path involved
	Node string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	return fmt.Sprintf("nodectl %s %q: %v", e.Cmd.String(), e.Node, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// MultiError aggregates multiple errors from batch operations
type MultiError struct {
	// Errors contains all accumulated errors
	Errors []error
}

// Error returns a summary of the accumulated errors
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Add appends an error to the collection if it's not nil
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Err returns nil if no errors occurred, otherwise returns the MultiError itself
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}
