// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/matt-FFFFFF/brec/internal/ctxlog"
)

const (
	goosWindows      = "windows"
	winSystemRootEnv = "SystemRoot"
	winSystem32      = "System32"
	cmdExe           = "cmd.exe"
	binSh            = "/bin/sh"
)

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrProcessKilled is returned when the process was killed because the context was done.
	ErrProcessKilled = errors.New("process killed")
)

// ExitError is returned when a line exits with a non-zero code.
type ExitError struct {
	Line string
	Code int
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("command `%s` exited with code %d", e.Line, e.Code)
}

// Runner runs command lines. The zero value runs in the current directory
// with the process environment and discards output.
type Runner struct {
	Shell  string            // Shell executable, empty for the platform default
	Dir    string            // Working directory, empty for the current directory
	Env    map[string]string // Added to the process environment
	Stdin  *os.File          // Standard input, nil for none
	Stdout io.Writer         // Receives standard output, nil to discard
	Stderr io.Writer         // Receives standard error, nil to discard

	// Signals subscribes to signals that are forwarded to the running process.
	// It returns the channel and a function to unsubscribe.
	Signals func() (<-chan os.Signal, func())
}

// Lines returns a payload that runs each line in turn, stopping at the first failure.
func (r *Runner) Lines(lines ...string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		for _, line := range lines {
			if err := r.Run(ctx, line); err != nil {
				return err
			}
		}

		return nil
	}
}

// Run runs a single line and waits for it to finish.
// If ctx is done first the process is killed.
func (r *Runner) Run(ctx context.Context, line string) error {
	logger := ctxlog.Logger(ctx).With("line", line)

	path, args, err := r.command(ctx, line)
	if err != nil {
		return errors.Join(ErrCouldNotStartProcess, err)
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return errors.Join(ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()

		return errors.Join(ErrFailedToCreatePipe, err)
	}

	logger.Debug("starting process", "path", path, "cwd", r.Dir)

	sys, group := sysProcAttr(r.Stdin)

	ps, err := os.StartProcess(path, args, &os.ProcAttr{
		Dir:   r.Dir,
		Env:   r.environ(),
		Files: []*os.File{r.Stdin, wOut, wErr},
		Sys:   sys,
	})

	// The child holds its own copies of the write ends.
	_ = wOut.Close()
	_ = wErr.Close()

	if err != nil {
		_ = rOut.Close()
		_ = rErr.Close()

		return errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	var copies sync.WaitGroup

	copies.Add(2)

	go drain(&copies, writerOrDiscard(r.Stdout), rOut)
	go drain(&copies, writerOrDiscard(r.Stderr), rErr)

	done := make(chan struct{})
	watched := make(chan struct{})

	go func() {
		defer close(watched)
		r.watch(ctx, ps, group, done)
	}()

	state, waitErr := ps.Wait()
	close(done)
	<-watched

	if ctx.Err() != nil {
		// Descendants that escaped the kill can still hold the pipes open.
		_ = rOut.Close()
		_ = rErr.Close()

		copies.Wait()

		return errors.Join(ErrProcessKilled, ctx.Err())
	}

	copies.Wait()

	if waitErr != nil {
		return fmt.Errorf("waiting for process: %w", waitErr)
	}

	logger.Debug("process finished", "exitCode", state.ExitCode())

	if code := state.ExitCode(); code != 0 {
		return &ExitError{Line: line, Code: code}
	}

	return nil
}

// watch forwards signals to the process and kills it when ctx is done.
// With group set the whole process group is signalled.
func (r *Runner) watch(ctx context.Context, ps *os.Process, group bool, done <-chan struct{}) {
	var sigs <-chan os.Signal

	if r.Signals != nil {
		ch, unsubscribe := r.Signals()
		defer unsubscribe()

		sigs = ch
	}

	for {
		select {
		case s := <-sigs:
			ctxlog.Info(ctx, "forwarding signal", "pid", ps.Pid, "signal", s.String())

			if err := signalProcess(ps, s, group); err != nil {
				ctxlog.Info(ctx, "failed to send signal", "signal", s.String(), "error", err)
			}
		case <-ctx.Done():
			killPs(ctx, ps, group)
			return
		case <-done:
			return
		}
	}
}

func (r *Runner) command(ctx context.Context, line string) (string, []string, error) {
	sh := r.Shell
	if sh == "" {
		sh = defaultShell(ctx)
	}

	path, err := exec.LookPath(sh)
	if err != nil {
		return "", nil, err //nolint:wrapcheck
	}

	name := filepath.Base(path)
	if runtime.GOOS == goosWindows {
		return path, []string{name, "/C", line}, nil
	}

	return path, []string{name, "-c", line}, nil
}

// environ returns the process environment with Env applied, sorted by key for stable output.
func (r *Runner) environ() []string {
	env := os.Environ()

	keys := make([]string, 0, len(r.Env))
	for k := range r.Env {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		env = append(env, k+"="+r.Env[k])
	}

	return env
}

func defaultShell(ctx context.Context) string {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	if sh := os.Getenv("SHELL"); sh != "" {
		ctxlog.Debug(ctx, "using SHELL environment variable", "shell", sh)
		return sh
	}

	return binSh
}

func drain(wg *sync.WaitGroup, w io.Writer, r *os.File) {
	defer wg.Done()
	defer r.Close() //nolint:errcheck

	_, _ = io.Copy(w, r)
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}

	return w
}

func killPs(ctx context.Context, ps *os.Process, group bool) {
	if err := killProcess(ps, group); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}
