// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capability

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound  = errors.New("capability not found")
	ErrDuplicate = errors.New("capability already registered")
)

// NotFoundError reports a lookup of an unregistered key.
type NotFoundError struct {
	Key Key
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("capability %q not found", string(e.Key))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError lists every problem found in a parameter set.
type ValidationError struct {
	Key      Key
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("capability %s: invalid parameters: %s", e.Key, strings.Join(e.Problems, "; "))
}

// ExecutionError wraps an error returned by a provider.
type ExecutionError struct {
	Key Key
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("capability %s: execution failed: %v", e.Key, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
