// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for brec.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/brec/internal/ctxlog"
	"github.com/matt-FFFFFF/brec/internal/recipe"
	"github.com/matt-FFFFFF/brec/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag      = "file"
	dirFlag       = "dir"
	listFlag      = "list"
	tuiFlag       = "tui"
	quietFlag     = "quiet"
	successFlag   = "success"
	skippedFlag   = "skipped"
	durationsFlag = "durations"
	logLevelFlag  = "log-level"
	logFormatFlag = "log-format"
)

// Options configures the CLI.
type Options struct {
	Version string      // Printed by the version command
	Commit  string      // Printed by the version command
	Recipes *recipe.Set // Recipes to use instead of reading a recipe file
	Stdout  io.Writer   // Defaults to os.Stdout
	Stderr  io.Writer   // Defaults to os.Stderr

	// Signals is the channel of OS signals to watch. When nil, Main subscribes
	// to the termination signals itself.
	Signals chan os.Signal

	// Broker forwards the first signal of each kind to running recipes.
	// When nil, Main creates one.
	Broker *signalbroker.Broker
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}

	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// NewRootCmd creates the root command. broker receives the signals to forward
// to running recipes and interrupt injects a signal, as if the user pressed ctrl+c.
func NewRootCmd(opts Options, broker *signalbroker.Broker, interrupt func()) *cli.Command {
	opts.defaults()

	a := &app{
		opts:      opts,
		broker:    broker,
		interrupt: interrupt,
	}

	return &cli.Command{
		Name:      "brec",
		Usage:     "run recipes and their dependencies",
		ArgsUsage: "[recipe...]",
		Description: `brec runs the requested recipes together with every recipe they depend on.
Each recipe runs once, after all of its dependencies have completed, and
recipes that do not depend on each other run concurrently.

Recipes are read from brec.yaml, brec.yml or brec.hcl in the current directory.
With no recipe given, the available recipes are listed.

Recipe file URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.`,
		Version:   fmt.Sprintf("%s (commit: %s)", opts.Version, opts.Commit),
		Writer:    opts.Stdout,
		ErrWriter: opts.Stderr,
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      fileFlag,
				Aliases:   []string{"f"},
				Usage:     "Read recipes from this file or go-getter URL instead of discovering one",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      dirFlag,
				Aliases:   []string{"C"},
				Usage:     "Look for the recipe file in, and run recipes from, this directory",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:    listFlag,
				Aliases: []string{"l"},
				Usage:   "List the available recipes and exit",
			},
			&cli.BoolFlag{
				Name:    tuiFlag,
				Aliases: []string{"t", "interactive"},
				Usage:   "Run with interactive Terminal User Interface (TUI) showing real-time progress",
			},
			&cli.BoolFlag{
				Name:    quietFlag,
				Aliases: []string{"q"},
				Usage:   "Do not print the result summary",
			},
			&cli.BoolFlag{
				Name:  successFlag,
				Usage: "Include successful recipes in the summary",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  skippedFlag,
				Usage: "Include recipes skipped because a dependency failed in the summary",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  durationsFlag,
				Usage: "Include how long each recipe ran in the summary",
				Value: true,
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Usage: "Log level: debug, info, warn or error. Defaults to $" + ctxlog.LogLevelEnvVar + " or warn",
			},
			&cli.StringFlag{
				Name:  logFormatFlag,
				Usage: "Log format: pretty or json",
				Value: ctxlog.FormatPretty,
			},
		},
		Commands: []*cli.Command{
			versionCmd(opts),
		},
		Action: a.action,
	}
}

// Main runs the CLI with args and returns the process exit code.
// The first termination signal of a kind is forwarded to running recipes;
// a second one cancels the run.
func Main(ctx context.Context, args []string, opts Options) int {
	opts.defaults()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := opts.Signals
	if sigCh == nil {
		var stop func()

		sigCh, stop = signalbroker.Notify(ctx)
		defer stop()
	}

	broker := opts.Broker
	if broker == nil {
		broker = signalbroker.NewBroker()
	}

	go broker.Watch(ctx, sigCh, cancel)

	interrupt := func() {
		select {
		case sigCh <- os.Interrupt:
		default:
		}
	}

	err := NewRootCmd(opts, broker, interrupt).Run(ctx, args)
	if err == nil {
		ctxlog.Info(ctx, "command completed successfully")
		return 0
	}

	reportError(opts.Stderr, err)

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
	}

	return 1
}

// errReported marks an error whose details have already been written.
var errReported = errors.New("error reported")

func reportError(w io.Writer, err error) {
	if errors.Is(err, errReported) {
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err) // nolint:errcheck
}
