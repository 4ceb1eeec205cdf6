// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"errors"
	"time"
)

// Status is the lifecycle state of a node within one run.
type Status int

const (
	StatusPending   Status = iota // Not yet requested
	StatusWaiting                 // Waiting for dependencies
	StatusRunning                 // Task is executing
	StatusCompleted               // Task returned nil
	StatusFailed                  // Task, or one of its dependencies, failed
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusWaiting:
		return "waiting"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one node.
type Result struct {
	Name     string        // Node name
	Status   Status        // Final status
	Err      error         // *PayloadError, *DependencyError, or nil
	Ran      bool          // Whether the task was invoked
	Start    time.Time     // When the task started, zero if it did not run
	Duration time.Duration // How long the task ran
}

// Skipped reports whether the node failed without running because of a dependency.
func (r *Result) Skipped() bool {
	var depErr *DependencyError
	return r.Status == StatusFailed && !r.Ran && errors.As(r.Err, &depErr)
}

// Results holds the outcome of every node, in graph insertion order.
type Results []*Result

// HasError reports whether any node failed.
func (r Results) HasError() bool {
	for _, v := range r {
		if v.Status == StatusFailed {
			return true
		}
	}

	return false
}

// Get returns the result for the named node.
func (r Results) Get(name string) (*Result, bool) {
	for _, v := range r {
		if v.Name == name {
			return v, true
		}
	}

	return nil, false
}

// Failed returns the results of the nodes whose own task failed.
func (r Results) Failed() Results {
	var out Results

	for _, v := range r {
		if v.Status == StatusFailed && v.Ran {
			out = append(out, v)
		}
	}

	return out
}
