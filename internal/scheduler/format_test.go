// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"bytes"
	"testing"
	"time"

	"github.com/matt-FFFFFF/brec/internal/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteText(t *testing.T) {
	prev := color.SetEnabled(false)
	defer color.SetEnabled(prev)

	results := Results{
		{Name: "clean", Status: StatusCompleted, Ran: true, Duration: 1500 * time.Millisecond},
		{Name: "build", Status: StatusFailed, Ran: true, Err: &PayloadError{Node: "build", Err: errBoom}},
		{Name: "test", Status: StatusFailed, Err: &DependencyError{Node: "test", Dependency: "build", Err: errBoom}},
	}

	tests := []struct {
		name    string
		options *OutputOptions
		want    string
	}{
		{
			name: "defaults",
			want: "✓ clean (1.5s)\n" +
				"✗ build (0s)\n" +
				"  ➜ Error: recipe 'build' failed: boom\n" +
				"~ test\n" +
				"  ➜ Error: recipe 'test' not run: dependency 'build' failed\n",
		},
		{
			name:    "failures only",
			options: &OutputOptions{},
			want: "✗ build\n" +
				"  ➜ Error: recipe 'build' failed: boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteText(&buf, results, tt.options))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(99).String())
}
