// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides a real-time Terminal User Interface (TUI) for watching a
// run. It lists every recipe in the graph with a live status, how long it ran,
// and the last line of output while it is running or the error once it failed.
//
// The TUI is fed by progress events and is otherwise unaware of the scheduler.
package tui
