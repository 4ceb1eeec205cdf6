// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell runs command lines through the user's shell.
//
// On Unix-like systems each line is run as `$SHELL -c line`, falling back to
// /bin/sh. On Windows it is run as `cmd.exe /C line`.
package shell
