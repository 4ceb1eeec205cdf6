// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dag provides the name-addressed task graph that brec executes.
//
// A Graph is populated once with AddNode, checked with CheckClosed and Validate,
// and then handed read-only to the scheduler. Iteration follows insertion order
// so that listing, cycle reports and results are deterministic.
package dag
