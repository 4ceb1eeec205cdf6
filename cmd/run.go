// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/brec/internal/builder"
	"github.com/matt-FFFFFF/brec/internal/color"
	"github.com/matt-FFFFFF/brec/internal/ctxlog"
	"github.com/matt-FFFFFF/brec/internal/dag"
	"github.com/matt-FFFFFF/brec/internal/linetee"
	"github.com/matt-FFFFFF/brec/internal/progress"
	"github.com/matt-FFFFFF/brec/internal/recipe"
	"github.com/matt-FFFFFF/brec/internal/recipefile"
	"github.com/matt-FFFFFF/brec/internal/scheduler"
	"github.com/matt-FFFFFF/brec/internal/shell"
	"github.com/matt-FFFFFF/brec/internal/signalbroker"
	"github.com/matt-FFFFFF/brec/internal/tui"
	"github.com/urfave/cli/v3"
)

const eventBufferSize = 256

type app struct {
	opts      Options
	broker    *signalbroker.Broker
	interrupt func()

	// output receives recipe output lines in TUI mode. It is set before the run starts.
	output progress.Reporter
}

func (a *app) action(ctx context.Context, cmd *cli.Command) error {
	ctx, err := configureLogging(ctx, cmd, a.opts.Stderr)
	if err != nil {
		return err
	}

	useTUI := cmd.Bool(tuiFlag)

	set, err := a.loadRecipes(ctx, cmd, useTUI)
	if err != nil {
		return err
	}

	names := cmd.Args().Slice()
	if len(names) == 0 || cmd.Bool(listFlag) {
		return writeList(a.opts.Stdout, set)
	}

	roots := make([]*recipe.Recipe, 0, len(names))

	for _, name := range names {
		r, err := set.Get(name)
		if err != nil {
			fmt.Fprintf(a.opts.Stderr, "Error: %v\n\nAvailable recipes:\n", err) // nolint:errcheck
			_ = writeList(a.opts.Stderr, set)

			return errors.Join(errReported, err)
		}

		roots = append(roots, r)
	}

	var buildOpts []builder.Option
	if !useTUI {
		buildOpts = append(buildOpts, builder.WithStartHook(a.banner))
	}

	g, err := builder.BuildAll(set, roots, buildOpts...)
	if err != nil {
		return err //nolint:wrapcheck
	}

	var results scheduler.Results

	if useTUI {
		results, err = a.runTUI(ctx, g, names)
	} else {
		results, err = a.runPlain(ctx, g)
	}

	if results != nil && !cmd.Bool(quietFlag) {
		fmt.Fprintln(a.opts.Stdout) // nolint:errcheck

		if werr := scheduler.WriteText(a.opts.Stdout, results, summaryOptions(cmd)); werr != nil {
			return errors.Join(err, werr)
		}
	}

	if err != nil && results != nil {
		// The summary already names the failed recipe.
		if cmd.Bool(quietFlag) {
			return err
		}

		return errors.Join(errReported, err)
	}

	return err
}

func summaryOptions(cmd *cli.Command) *scheduler.OutputOptions {
	return &scheduler.OutputOptions{
		ShowDuration:  cmd.Bool(durationsFlag),
		ShowSkipped:   cmd.Bool(skippedFlag),
		ShowSucceeded: cmd.Bool(successFlag),
	}
}

// banner prints the name of each recipe as it starts.
func (a *app) banner(_ context.Context, name string) {
	fmt.Fprintln(a.opts.Stdout, color.Colorize("▶ "+name, color.FgCyan)) // nolint:errcheck
}

func (a *app) runPlain(ctx context.Context, g *dag.Graph) (scheduler.Results, error) {
	reporter := progress.NewChannelReporter(ctx, eventBufferSize)
	reporter.Listen(&eventLogger{ctx: ctx})

	results, err := scheduler.New(scheduler.WithReporter(reporter)).Run(ctx, g)

	reporter.Close()

	if n := reporter.Dropped(); n > 0 {
		ctxlog.Debug(ctx, "progress events dropped", "count", n)
	}

	return results, err //nolint:wrapcheck
}

func (a *app) runTUI(ctx context.Context, g *dag.Graph, requested []string) (scheduler.Results, error) {
	model := tui.NewModel(
		"brec "+strings.Join(requested, " "),
		g.Names(),
		tui.WithInterrupt(a.interrupt),
	)
	runner := tui.NewRunner(ctx, model, tea.WithAltScreen())
	a.output = runner.Reporter()

	var results scheduler.Results

	err := runner.Run(ctx, func(ctx context.Context, reporter progress.Reporter) error {
		var err error

		results, err = scheduler.New(scheduler.WithReporter(reporter)).Run(ctx, g)

		return err //nolint:wrapcheck
	})

	return results, err //nolint:wrapcheck
}

// loadRecipes returns the configured recipe set, or reads one from the recipe file.
func (a *app) loadRecipes(ctx context.Context, cmd *cli.Command, useTUI bool) (*recipe.Set, error) {
	if a.opts.Recipes != nil {
		if a.opts.Recipes.Len() == 0 {
			return nil, recipefile.ErrNoRecipes
		}

		return a.opts.Recipes, nil
	}

	dir := cmd.String(dirFlag)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}

		dir = wd
	}

	f, err := a.readRecipeFile(ctx, cmd.String(fileFlag), dir)
	if err != nil {
		return nil, err
	}

	base := shell.Runner{
		Stdin:   os.Stdin,
		Stdout:  a.opts.Stdout,
		Stderr:  a.opts.Stderr,
		Signals: a.broker.Subscribe,
	}

	opts := []recipefile.BuildOption{recipefile.WithRunner(base)}

	if useTUI {
		base.Stdin = nil
		opts = []recipefile.BuildOption{
			recipefile.WithRunner(base),
			recipefile.WithOutput(a.captureOutput),
		}
	}

	set, err := f.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", f.Path, err)
	}

	return set, nil
}

func (a *app) readRecipeFile(ctx context.Context, src, dir string) (*recipefile.File, error) {
	if src == "" {
		path, err := recipefile.Discover(dir)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		return recipefile.Load(ctx, path) //nolint:wrapcheck
	}

	src = localSource(src, dir)

	path, cleanup, err := recipefile.Resolve(ctx, src)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	defer cleanup()

	f, err := recipefile.Load(ctx, path)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if path != src {
		// Fetched into a temporary directory, run from dir instead.
		f.BaseDir = dir
	}

	return f, nil
}

// localSource returns src joined onto dir when that names an existing file.
// Anything else, including go-getter shorthand such as
// github.com/org/repo//brec.yaml, is returned unchanged.
func localSource(src, dir string) string {
	if filepath.IsAbs(src) {
		return src
	}

	p := filepath.Join(dir, src)
	if _, err := recipefile.FsFactory().Stat(p); err == nil {
		return p
	}

	return src
}

// captureOutput sends each line a recipe writes to the TUI.
func (a *app) captureOutput(name string) (io.Writer, io.Writer) {
	line := func(isStderr bool) func(string) {
		return func(s string) {
			if a.output == nil {
				return
			}

			a.output.Report(progress.Event{
				Node:      name,
				Type:      progress.EventOutput,
				Timestamp: time.Now(),
				Data:      progress.EventData{OutputLine: s, IsStderr: isStderr},
			})
		}
	}

	return linetee.New(line(false)), linetee.New(line(true))
}

func configureLogging(ctx context.Context, cmd *cli.Command, w io.Writer) (context.Context, error) {
	if lvl := cmd.String(logLevelFlag); lvl != "" {
		if err := ctxlog.SetLevel(lvl); err != nil {
			return ctx, err //nolint:wrapcheck
		}
	}

	switch format := cmd.String(logFormatFlag); format {
	case "", ctxlog.FormatPretty:
		return ctx, nil
	default:
		logger, err := ctxlog.NewLogger(format, w)
		if err != nil {
			return ctx, err //nolint:wrapcheck
		}

		return ctxlog.New(ctx, logger), nil
	}
}

// eventLogger logs progress events at debug level.
type eventLogger struct {
	ctx context.Context
}

// OnEvent implements progress.Listener.
func (l *eventLogger) OnEvent(e progress.Event) {
	ctxlog.Debug(l.ctx, "progress", "recipe", e.Node, "event", e.Type.String(), "message", e.Message)
}
