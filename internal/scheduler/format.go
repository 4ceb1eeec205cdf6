// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"fmt"
	"io"
	"time"

	"github.com/matt-FFFFFF/brec/internal/color"
)

// OutputOptions controls what is included in the summary.
type OutputOptions struct {
	ShowDuration  bool // Whether to show how long each task ran
	ShowSkipped   bool // Whether to list nodes that did not run because a dependency failed
	ShowSucceeded bool // Whether to list successful nodes
}

// DefaultOutputOptions returns a default set of output options.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		ShowDuration:  true,
		ShowSkipped:   true,
		ShowSucceeded: true,
	}
}

// WriteText writes one status line per result to w, followed by the error
// of any failed node.
func WriteText(w io.Writer, results Results, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	for _, r := range results {
		if err := writeResult(w, r, options); err != nil {
			return err
		}
	}

	return nil
}

func writeResult(w io.Writer, r *Result, options *OutputOptions) error {
	var statusStr, labelPrefix string

	errColor := color.FgRed

	switch {
	case r.Status == StatusCompleted:
		if !options.ShowSucceeded {
			return nil
		}

		statusStr = color.Colorize("✓", color.FgGreen)
		labelPrefix = color.ControlString(color.Bold, color.FgGreen)
	case r.Skipped():
		if !options.ShowSkipped {
			return nil
		}

		statusStr = color.Colorize("~", color.FgYellow)
		labelPrefix = color.ControlString(color.Bold, color.FgYellow)
		errColor = color.FgYellow
	case r.Status == StatusFailed:
		statusStr = color.Colorize("✗", color.FgRed)
		labelPrefix = color.ControlString(color.Bold, color.FgRed)
	default:
		statusStr = color.Colorize("?", color.FgWhite)
	}

	if _, err := fmt.Fprintf(w, "%s %s%s%s", statusStr, labelPrefix, r.Name, color.ControlString(color.Reset)); err != nil {
		return err //nolint:wrapcheck
	}

	if options.ShowDuration && r.Ran {
		fmt.Fprintf(w, " (%s)", r.Duration.Round(time.Millisecond)) // nolint:errcheck
	}

	fmt.Fprintln(w) // nolint:errcheck

	if r.Err == nil {
		return nil
	}

	if _, err := fmt.Fprintf(
		w,
		"  %s %s%s\n",
		color.ColorizeNoReset("➜ Error:", errColor),
		r.Err.Error(),
		color.ControlString(color.Reset),
	); err != nil {
		return err //nolint:wrapcheck
	}

	return nil
}
