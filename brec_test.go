// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package brec

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_RunsRegisteredRecipes(t *testing.T) {
	var order []string

	clean := New("Remove build artifacts", func(_ context.Context) error {
		order = append(order, "clean")
		return nil
	})
	build := New("Build", func(_ context.Context) error {
		order = append(order, "build")
		return nil
	}, clean)

	set := NewSet()
	set.MustRegister("clean", clean)
	set.MustRegister("build", build)

	assert.Equal(t, 0, Main(context.Background(), set, []string{"brec", "-q", "build"}))
	assert.Equal(t, []string{"clean", "build"}, order)
}

func TestMain_UnknownRecipeExitsOne(t *testing.T) {
	set := NewSet()
	set.MustRegister("build", New("Build", func(context.Context) error { return nil }))

	assert.Equal(t, 1, Main(context.Background(), set, []string{"brec", "deploy"}))
}

func TestSh(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	payload := Sh("echo one > "+out, "echo two >> "+out)
	require.NoError(t, payload(context.Background()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestSh_StopsAtFirstFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	err := Sh("exit 2", "echo never > "+out)(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSh_ReceivesForwardedSignals(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}

	out := filepath.Join(t.TempDir(), "out.txt")
	started := filepath.Join(t.TempDir(), "started")

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if _, err := os.Stat(started); err == nil {
					signals.Publish(syscall.SIGTERM)
				}
			}
		}
	}()

	err := Sh(`trap 'echo caught > ` + out + `; exit 7' TERM; touch ` + started + `; i=0; while [ $i -lt 50 ]; do sleep 0.1; i=$((i+1)); done`)(context.Background())
	require.Error(t, err)

	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "caught\n", string(data))
}
