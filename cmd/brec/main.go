// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the brec command-line application.
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/brec"
	"github.com/matt-FFFFFF/brec/cmd"
	"github.com/matt-FFFFFF/brec/internal/ctxlog"
)

func main() {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	os.Exit(cmd.Main(ctx, os.Args, cmd.Options{
		Version: brec.Version,
		Commit:  brec.Commit,
	}))
}
