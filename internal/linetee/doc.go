// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package linetee provides an io.Writer that splits a process's output into
// lines for progress display.
package linetee
