// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/brec/internal/progress"
)

// NodeStatus represents the current state of a recipe in the TUI.
type NodeStatus int

const (
	StatusPending NodeStatus = iota
	StatusWaiting
	StatusRunning
	StatusCompleted
	StatusFailed
	StatusSkipped
)

// String returns a string representation of the node status.
func (s NodeStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusWaiting:
		return "waiting"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Node is the display state of one recipe.
type Node struct {
	Name       string
	Status     NodeStatus
	StartTime  time.Time
	EndTime    time.Time
	LastOutput string
	ErrorMsg   string
}

// Elapsed returns how long the node has been running, or ran for.
func (n *Node) Elapsed(now time.Time) time.Duration {
	if n.StartTime.IsZero() {
		return 0
	}

	if n.EndTime.IsZero() {
		return now.Sub(n.StartTime)
	}

	return n.EndTime.Sub(n.StartTime)
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title   lipgloss.Style
	Pending lipgloss.Style
	Running lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
	Skipped lipgloss.Style
	Output  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Skipped: lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")),
		Output: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1),
	}
}

// Model represents the TUI application state.
// It is only touched from the bubbletea event loop.
type Model struct {
	title     string
	nodes     []*Node
	byName    map[string]*Node
	spinner   spinner.Model
	styles    *Styles
	width     int
	completed bool
	runErr    error
	quitting  bool
	autoQuit  bool
	interrupt func()
	now       func() time.Time
}

// ModelOption configures a Model.
type ModelOption func(m *Model)

// WithAutoQuit makes the program exit as soon as the run completes,
// instead of waiting for the user to press q.
func WithAutoQuit() ModelOption {
	return func(m *Model) {
		m.autoQuit = true
	}
}

// WithInterrupt sets the function called when ctrl+c is pressed during a run.
func WithInterrupt(fn func()) ModelOption {
	return func(m *Model) {
		m.interrupt = fn
	}
}

// NewModel creates a model listing the given recipe names in order.
func NewModel(title string, names []string, opts ...ModelOption) *Model {
	styles := NewStyles()

	m := &Model{
		title:   title,
		nodes:   make([]*Node, 0, len(names)),
		byName:  make(map[string]*Node, len(names)),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Running)),
		styles:  styles,
		now:     time.Now,
	}

	for _, name := range names {
		m.node(name)
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Node returns the display state of the named recipe.
func (m *Model) Node(name string) (*Node, bool) {
	n, ok := m.byName[name]
	return n, ok
}

// Completed reports whether the run has finished.
func (m *Model) Completed() bool {
	return m.completed
}

// node returns the named node, adding it if it is not yet listed.
func (m *Model) node(name string) *Node {
	if n, ok := m.byName[name]; ok {
		return n
	}

	n := &Node{Name: name}
	m.nodes = append(m.nodes, n)
	m.byName[name] = n

	return n
}

// applyEvent updates the node the event is about.
func (m *Model) applyEvent(e progress.Event) {
	n := m.node(e.Node)

	switch e.Type {
	case progress.EventWaiting:
		n.Status = StatusWaiting
	case progress.EventStarted:
		n.Status = StatusRunning
		n.StartTime = e.Timestamp
	case progress.EventOutput:
		if e.Data.OutputLine != "" {
			n.LastOutput = e.Data.OutputLine
		}
	case progress.EventCompleted:
		n.Status = StatusCompleted
		n.EndTime = e.Timestamp
	case progress.EventFailed:
		n.Status = StatusFailed
		n.EndTime = e.Timestamp
		n.ErrorMsg = errorString(e)
	case progress.EventSkipped:
		n.Status = StatusSkipped
		n.ErrorMsg = errorString(e)
	}
}

func errorString(e progress.Event) string {
	if e.Data.Error != nil {
		return e.Data.Error.Error()
	}

	return e.Message
}
