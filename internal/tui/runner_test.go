// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/brec/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	ctx := context.Background()
	model := NewModel("brec", []string{"build"}, WithAutoQuit())

	var out bytes.Buffer

	r := NewRunner(ctx, model, tea.WithInput(nil), tea.WithOutput(&out), tea.WithoutRenderer())

	errBuild := errors.New("build failed")
	err := r.Run(ctx, func(_ context.Context, reporter progress.Reporter) error {
		reporter.Report(progress.Event{Node: "build", Type: progress.EventStarted, Timestamp: time.Now()})
		reporter.Report(progress.Event{Node: "build", Type: progress.EventFailed, Timestamp: time.Now(), Data: progress.EventData{Error: errBuild}})

		return errBuild
	})

	require.ErrorIs(t, err, errBuild)
	assert.True(t, model.Completed())

	n, _ := model.Node("build")
	assert.Equal(t, StatusFailed, n.Status)
}

func TestReporter_ClosedDropsEvents(t *testing.T) {
	r := NewReporter(nil)
	r.Report(progress.Event{Node: "a"})
	r.Close()
	r.Report(progress.Event{Node: "a"})
}
