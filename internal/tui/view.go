// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/matt-FFFFFF/brec/internal/linetee"
)

const (
	durationRounding = 100 * time.Millisecond
	defaultWidth     = 80
	minDetailWidth   = 10
)

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")

	nameWidth := 0
	for _, n := range m.nodes {
		nameWidth = max(nameWidth, len(n.Name))
	}

	now := m.now()
	for _, n := range m.nodes {
		m.renderNode(&b, n, nameWidth, now)
	}

	if m.completed {
		b.WriteString("\n")

		if m.runErr != nil {
			b.WriteString(m.styles.Failed.Render("✗ Completed with errors"))
		} else {
			b.WriteString(m.styles.Success.Render("✓ Completed successfully"))
		}

		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("press q to quit"))
	} else {
		b.WriteString(m.styles.Help.Render("ctrl+c to interrupt, twice to cancel"))
	}

	b.WriteString("\n")

	return b.String()
}

func (m *Model) renderNode(b *strings.Builder, n *Node, nameWidth int, now time.Time) {
	var icon, name string

	padded := n.Name + strings.Repeat(" ", nameWidth-len(n.Name))

	switch n.Status {
	case StatusWaiting:
		icon = "…"
		name = m.styles.Pending.Render(padded)
	case StatusRunning:
		icon = m.spinner.View()
		name = m.styles.Running.Render(padded)
	case StatusCompleted:
		icon = m.styles.Success.Render("✓")
		name = m.styles.Success.Render(padded)
	case StatusFailed:
		icon = m.styles.Failed.Render("✗")
		name = m.styles.Failed.Render(padded)
	case StatusSkipped:
		icon = m.styles.Skipped.Render("~")
		name = m.styles.Skipped.Render(padded)
	default:
		icon = "·"
		name = m.styles.Pending.Render(padded)
	}

	line := fmt.Sprintf("%s %s", icon, name)

	if !n.StartTime.IsZero() {
		line += m.styles.Output.Render(fmt.Sprintf(" (%v)", n.Elapsed(now).Round(durationRounding)))
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	detailWidth := max(width-nameWidth-16, minDetailWidth) //nolint:mnd // icon, padding and duration

	switch {
	case n.ErrorMsg != "" && (n.Status == StatusFailed || n.Status == StatusSkipped):
		line += "  " + m.styles.Error.Render(linetee.Truncate(n.ErrorMsg, detailWidth))
	case n.LastOutput != "" && n.Status == StatusRunning:
		line += "  " + m.styles.Output.Render(linetee.Truncate(n.LastOutput, detailWidth))
	}

	b.WriteString(line)
	b.WriteString("\n")
}
