// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !unix

package shell

import (
	"os"
	"syscall"
)

func sysProcAttr(*os.File) (*syscall.SysProcAttr, bool) {
	return nil, false
}

func signalProcess(ps *os.Process, sig os.Signal, _ bool) error {
	return ps.Signal(sig) //nolint:wrapcheck
}

func killProcess(ps *os.Process, _ bool) error {
	return ps.Kill() //nolint:wrapcheck
}
