// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package shell

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/term"
)

// sysProcAttr starts the shell in its own process group so the commands it
// forks are signalled and killed with it. A shell reading from a terminal
// stays in the foreground group, where the terminal signals it directly.
func sysProcAttr(stdin *os.File) (*syscall.SysProcAttr, bool) {
	if stdin != nil && term.IsTerminal(int(stdin.Fd())) {
		return nil, false
	}

	return &syscall.SysProcAttr{Setpgid: true}, true
}

// signalProcess sends sig to ps, or to the process group it leads.
func signalProcess(ps *os.Process, sig os.Signal, group bool) error {
	s, ok := sig.(syscall.Signal)
	if !group || !ok {
		return ps.Signal(sig) //nolint:wrapcheck
	}

	if err := syscall.Kill(-ps.Pid, s); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}

		return err //nolint:wrapcheck
	}

	return nil
}

func killProcess(ps *os.Process, group bool) error {
	if !group {
		return ps.Kill() //nolint:wrapcheck
	}

	return signalProcess(ps, syscall.SIGKILL, true)
}
