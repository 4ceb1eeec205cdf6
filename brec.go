// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package brec lets a Go program declare recipes and run them with the brec command line.
//
//	clean := brec.New("Remove build artifacts", cleanFn)
//	build := brec.New("Build", buildFn, clean)
//	set := brec.NewSet()
//	set.MustRegister("clean", clean)
//	set.MustRegister("build", build)
//	os.Exit(brec.Main(ctx, set, os.Args))
package brec

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/brec/cmd"
	"github.com/matt-FFFFFF/brec/internal/recipe"
	"github.com/matt-FFFFFF/brec/internal/shell"
	"github.com/matt-FFFFFF/brec/internal/signalbroker"
)

// signals forwards the first termination signal received by Main to payloads created by Sh.
var signals = signalbroker.NewBroker()

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)

type (
	// Recipe is a unit of work with a description, a payload and dependencies.
	Recipe = recipe.Recipe
	// Set maps public names to recipes.
	Set = recipe.Set
	// Payload is the work a recipe performs.
	Payload = recipe.Payload
)

// New creates a recipe. deps run, once each, before payload.
func New(description string, payload Payload, deps ...*Recipe) *Recipe {
	return recipe.New(description, payload, deps...)
}

// NewSet creates an empty recipe set.
func NewSet() *Set {
	return recipe.NewSet()
}

// Main runs the brec command line against set and returns the process exit code.
func Main(ctx context.Context, set *Set, args []string) int {
	return cmd.Main(ctx, args, cmd.Options{
		Version: Version,
		Commit:  Commit,
		Recipes: set,
		Broker:  signals,
	})
}

// Sh returns a payload that runs each line in turn with the user's shell,
// stopping at the first line that fails. Under Main, the first termination
// signal is passed on to the running line.
func Sh(lines ...string) Payload {
	r := &shell.Runner{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Signals: signals.Subscribe,
	}

	return r.Lines(lines...)
}
