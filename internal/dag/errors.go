// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyNodeName is returned when a node is added without a name.
var ErrEmptyNodeName = errors.New("node name must not be empty")

// DuplicateNodeError is returned when a node name is added to a graph twice.
type DuplicateNodeError struct {
	Name string
}

// Error implements the error interface for DuplicateNodeError.
func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("node with id '%s' already exists", e.Name)
}

// CycleError is returned by Validate when the graph contains a cycle.
// Node is the node at which the cycle was re-entered.
// Path is the cycle witness, starting and ending with Node.
type CycleError struct {
	Node string
	Path []string
}

// Error implements the error interface for CycleError.
func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("cycle detected involving node '%s'", e.Node)
	}

	return fmt.Sprintf("cycle detected involving node '%s' (%s)", e.Node, strings.Join(e.Path, " -> "))
}

// MissingDependencyError is returned when a node depends on a name that is not in the graph.
type MissingDependencyError struct {
	Node       string
	Dependency string
}

// Error implements the error interface for MissingDependencyError.
func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("dependency '%s' of '%s' not found", e.Dependency, e.Node)
}
