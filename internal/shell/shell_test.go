// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == goosWindows {
		t.Skip("uses a POSIX shell")
	}
}

func TestRun_Output(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	var stdout, stderr bytes.Buffer

	r := &Runner{Shell: binSh, Stdout: &stdout, Stderr: &stderr}
	require.NoError(t, r.Run(t.Context(), "echo hello; echo oops >&2"))

	assert.Equal(t, "hello\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestRun_ExitCode(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	r := &Runner{Shell: binSh}
	err := r.Run(t.Context(), "exit 3")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "exit 3", exitErr.Line)
	assert.Equal(t, "command `exit 3` exited with code 3", err.Error())
}

func TestRun_EnvAndDir(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), nil, 0o600))

	var stdout bytes.Buffer

	r := &Runner{
		Shell:  binSh,
		Dir:    dir,
		Env:    map[string]string{"BREC_TEST_VALUE": "42"},
		Stdout: &stdout,
	}
	require.NoError(t, r.Run(t.Context(), `echo "$BREC_TEST_VALUE"; ls`))

	assert.Equal(t, "42\nmarker\n", stdout.String())
}

func TestLines_StopsAtFirstFailure(t *testing.T) {
	skipOnWindows(t)

	var stdout bytes.Buffer

	r := &Runner{Shell: binSh, Stdout: &stdout}
	err := r.Lines("echo one", "false", "echo three")(t.Context())

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, "false", exitErr.Line)
	assert.Equal(t, "one\n", stdout.String())
}

func TestRun_ContextCancelKillsProcess(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	tests := []struct {
		name string
		line string
	}{
		{name: "single command", line: "sleep 10"},
		{name: "forked child", line: "sleep 10; echo unreachable"},
		{name: "background child", line: "sleep 10 & wait"},
		{name: "child holding the pipes", line: "(sleep 10; echo late) | cat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
			defer cancel()

			var stdout bytes.Buffer

			start := time.Now()
			err := (&Runner{Shell: binSh, Stdout: &stdout}).Run(ctx, tt.line)

			require.ErrorIs(t, err, ErrProcessKilled)
			require.ErrorIs(t, err, context.DeadlineExceeded)
			assert.Less(t, time.Since(start), 5*time.Second)
			assert.NotContains(t, stdout.String(), "unreachable")
		})
	}
}

func TestRun_ForwardsSignals(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	sigCh := make(chan os.Signal, 1)

	var stdout bytes.Buffer

	r := &Runner{
		Shell:  binSh,
		Stdout: &stdout,
		Signals: func() (<-chan os.Signal, func()) {
			return sigCh, func() {}
		},
	}

	go func() {
		time.Sleep(200 * time.Millisecond)
		sigCh <- syscall.SIGTERM
	}()

	err := r.Run(t.Context(), `trap 'echo caught; exit 7' TERM; i=0; while [ $i -lt 50 ]; do sleep 0.1; i=$((i+1)); done`)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 7, exitErr.Code)
	assert.True(t, strings.Contains(stdout.String(), "caught"))
}

func TestRun_UnknownShell(t *testing.T) {
	err := (&Runner{Shell: "/definitely/not/a/shell"}).Run(t.Context(), "true")
	require.ErrorIs(t, err, ErrCouldNotStartProcess)
}

func TestDefaultShell(t *testing.T) {
	skipOnWindows(t)

	t.Setenv("SHELL", "/bin/bash")
	assert.Equal(t, "/bin/bash", defaultShell(t.Context()))

	t.Setenv("SHELL", "")
	assert.Equal(t, binSh, defaultShell(t.Context()))
}
