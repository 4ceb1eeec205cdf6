// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsColorCapable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, isColorCapable(), "Expected color output to be disabled")

	t.Setenv("FORCE_COLOR", "1")
	assert.False(t, isColorCapable(), "Expected color output to be disabled as NO_COLOR is still set")

	t.Setenv("NO_COLOR", "")
	assert.True(t, isColorCapable(), "Expected color output to be enabled as FORCE_COLOR is set and NO_COLOR is unset")
}

func TestColorize(t *testing.T) {
	prev := SetEnabled(true)
	defer SetEnabled(prev)

	assert.Equal(t, "\033[36m▶ build\033[0m", Colorize("▶ build", FgCyan))
	assert.Equal(t, "\033[1;31m", ControlString(Bold, FgRed))

	SetEnabled(false)
	assert.Equal(t, "plain", Colorize("plain", FgRed))
	assert.Empty(t, ControlString(Bold))
}
