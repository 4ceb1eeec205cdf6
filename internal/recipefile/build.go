// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package recipefile

import (
	"context"
	"io"
	"maps"
	"path/filepath"

	"github.com/matt-FFFFFF/brec/internal/recipe"
	"github.com/matt-FFFFFF/brec/internal/shell"
)

// OutputFunc returns the writers for a recipe's standard output and error.
type OutputFunc func(name string) (stdout, stderr io.Writer)

type buildOptions struct {
	base   shell.Runner
	output OutputFunc
}

// BuildOption configures Build.
type BuildOption func(o *buildOptions)

// WithRunner sets the runner every recipe's runner is copied from.
// Its Env is merged under each recipe's env.
func WithRunner(r shell.Runner) BuildOption {
	return func(o *buildOptions) {
		o.base = r
	}
}

// WithOutput sets the output writers per recipe, overriding those of the base runner.
// Writers with a Flush method are flushed once the recipe's lines have run.
func WithOutput(fn OutputFunc) BuildOption {
	return func(o *buildOptions) {
		o.output = fn
	}
}

// Build links the definitions into a recipe.Set.
// Every unresolved dependency and duplicate name is reported.
// A recipe without run lines has no payload and always succeeds.
func (f *File) Build(opts ...BuildOption) (*recipe.Set, error) {
	o := &buildOptions{}
	for _, opt := range opts {
		opt(o)
	}

	decls := recipe.NewDeclarations()

	for _, def := range f.Recipes {
		var payload recipe.Payload

		if len(def.Run) > 0 {
			r := f.runner(o, def)
			payload = flushAfter(r.Lines(def.Run...), r.Stdout, r.Stderr)
		}

		decls.Declare(def.Name, def.Description, payload, def.Deps...)
	}

	set, err := decls.Resolve()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return set, nil
}

func (f *File) runner(o *buildOptions, def Definition) *shell.Runner {
	r := o.base

	r.Dir = f.Dir()
	if def.WorkingDirectory != "" {
		if filepath.IsAbs(def.WorkingDirectory) {
			r.Dir = def.WorkingDirectory
		} else {
			r.Dir = filepath.Join(f.Dir(), def.WorkingDirectory)
		}
	}

	env := maps.Clone(o.base.Env)
	if env == nil {
		env = make(map[string]string, len(def.Env))
	}

	maps.Copy(env, def.Env)
	r.Env = env

	if o.output != nil {
		r.Stdout, r.Stderr = o.output(def.Name)
	}

	return &r
}

type flusher interface {
	Flush()
}

// flushAfter returns a payload that flushes ws once payload returns, so a
// final line without a newline is not lost.
func flushAfter(payload recipe.Payload, ws ...io.Writer) recipe.Payload {
	var fs []flusher

	for _, w := range ws {
		if f, ok := w.(flusher); ok {
			fs = append(fs, f)
		}
	}

	if len(fs) == 0 {
		return payload
	}

	return func(ctx context.Context) error {
		defer func() {
			for _, f := range fs {
				f.Flush()
			}
		}()

		return payload(ctx)
	}
}
