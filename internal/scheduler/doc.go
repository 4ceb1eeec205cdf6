// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scheduler executes a validated dag.Graph.
//
// Every node is run at most once per Run. A node's task starts only after the
// tasks of all of its dependencies have completed successfully; nodes with no
// ordering relationship run concurrently. When a task fails, its dependents
// are marked failed without running, independent work carries on, and Run
// returns once everything has settled with the first task failure as its error.
package scheduler
