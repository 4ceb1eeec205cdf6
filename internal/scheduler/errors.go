// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"fmt"
)

// PayloadError is returned when the task of a node fails.
type PayloadError struct {
	Node string
	Err  error
}

// Error implements the error interface for PayloadError.
func (e *PayloadError) Error() string {
	return fmt.Sprintf("recipe '%s' failed: %v", e.Node, e.Err)
}

// Unwrap returns the error returned by the task.
func (e *PayloadError) Unwrap() error {
	return e.Err
}

// DependencyError records that a node did not run because a dependency failed.
// Dependency is the direct dependency that failed, Err is its error.
type DependencyError struct {
	Node       string
	Dependency string
	Err        error
}

// Error implements the error interface for DependencyError.
func (e *DependencyError) Error() string {
	return fmt.Sprintf("recipe '%s' not run: dependency '%s' failed", e.Node, e.Dependency)
}

// Unwrap returns the error of the failed dependency.
func (e *DependencyError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Value any
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
