// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress provides real-time progress reporting for recipe execution.
// The scheduler emits an event whenever a node changes state, and recipe
// payloads may emit output events. Consumers such as the TUI subscribe through
// a Reporter.
package progress
