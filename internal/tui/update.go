// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/brec/internal/progress"
)

// ProgressEventMsg wraps a progress event for the tea framework.
type ProgressEventMsg struct {
	Event progress.Event
}

// RunCompletedMsg indicates that every recipe has settled.
type RunCompletedMsg struct {
	Err error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ProgressEventMsg:
		m.applyEvent(msg.Event)
		return m, nil

	case RunCompletedMsg:
		m.completed = true
		m.runErr = msg.Err

		if m.autoQuit {
			m.quitting = true
			return m, tea.Quit
		}

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

// handleKeyPress processes keyboard input.
// While the run is in progress ctrl+c is passed to the interrupt function,
// so the usual signal handling applies; q and ctrl+c quit once it is done.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		if m.completed {
			m.quitting = true
			return m, tea.Quit
		}
	case "ctrl+c":
		if m.completed {
			m.quitting = true
			return m, tea.Quit
		}

		if m.interrupt != nil {
			m.interrupt()
		}
	}

	return m, nil
}
