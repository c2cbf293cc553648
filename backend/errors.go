// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrBackend is the class sentinel for every engine failure.
	// Match with errors.Is(err, ErrBackend).
	ErrBackend = errors.New("backend: numeric backend failure")

	// ErrUnknownBackend is returned by Lookup and Probe for an unregistered name.
	ErrUnknownBackend = errors.New("backend: unknown backend")

	// ErrDuplicateBackend is returned by Register when a name is already taken.
	ErrDuplicateBackend = errors.New("backend: backend already registered")
)

// BackendError attributes a failure to an engine and an operation
// ("score", "extract"). Err carries the cause; recovered panics are
// converted to an error holding the panic value.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

// Error implements error.
func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s: %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap exposes the cause.
func (e *BackendError) Unwrap() error { return e.Err }

// Is makes every BackendError match ErrBackend.
func (e *BackendError) Is(target error) bool { return target == ErrBackend }

func wrap(name, op string, err error) error {
	if err == nil {
		return nil
	}
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}

	return &BackendError{Backend: name, Op: op, Err: err}
}

// recovered turns a panic value into an error.
func recovered(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}

	return fmt.Errorf("panic: %v", v)
}
