// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/brec/internal/progress"
)

var _ progress.Reporter = (*Reporter)(nil)

// Reporter implements progress.Reporter and forwards events to the TUI.
type Reporter struct {
	program *tea.Program
	closed  bool
	mu      sync.RWMutex
}

// NewReporter creates a reporter sending events to program.
func NewReporter(program *tea.Program) *Reporter {
	return &Reporter{
		program: program,
	}
}

// Report implements progress.Reporter.
func (r *Reporter) Report(event progress.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed || r.program == nil {
		return
	}

	r.program.Send(ProgressEventMsg{Event: event})
}

// Close implements progress.Reporter. Events reported afterwards are dropped.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
}

// Work is the run displayed by the TUI. It must send its events to reporter.
type Work func(ctx context.Context, reporter progress.Reporter) error

// Runner manages the TUI program for one run.
type Runner struct {
	program  *tea.Program
	reporter *Reporter
}

// NewRunner creates a runner displaying model.
// The program stops if ctx is cancelled.
func NewRunner(ctx context.Context, model *Model, opts ...tea.ProgramOption) *Runner {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(model, opts...)

	return &Runner{
		program:  program,
		reporter: NewReporter(program),
	}
}

// Reporter returns the progress reporter for this runner.
func (r *Runner) Reporter() progress.Reporter {
	return r.reporter
}

// Run runs work while displaying its progress and returns work's error.
// It returns once work has finished and the user has left the TUI.
// If the TUI cannot run, work still runs to completion and the TUI error is
// joined to the result.
func (r *Runner) Run(ctx context.Context, work Work) error {
	workDone := make(chan error, 1)

	go func() {
		err := work(ctx, r.reporter)
		r.program.Send(RunCompletedMsg{Err: err})
		workDone <- err
	}()

	_, tuiErr := r.program.Run()
	r.reporter.Close()

	err := <-workDone

	if tuiErr != nil && !(errors.Is(tuiErr, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return errors.Join(err, tuiErr)
	}

	return err
}
