// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package builder converts a rooted graph of recipes into a name-addressed dag.Graph.
package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/brec/internal/dag"
	"github.com/matt-FFFFFF/brec/internal/recipe"
)

// ErrNoRoots is returned by BuildAll when no root recipe is given.
var ErrNoRoots = errors.New("no recipes requested")

// UnresolvedNameError is returned when a reachable recipe has no registered name.
// Referrer is the name of the recipe that depends on it, and is empty for a root.
type UnresolvedNameError struct {
	Referrer string
}

// Error implements the error interface for UnresolvedNameError.
func (e *UnresolvedNameError) Error() string {
	if e.Referrer == "" {
		return "a requested recipe is not registered, all recipes (including dependencies) must be registered"
	}

	return fmt.Sprintf("dependency of '%s' is not a registered recipe", e.Referrer)
}

// Namer resolves the registered name of a recipe by identity.
// *recipe.Set satisfies it.
type Namer interface {
	NameOf(r *recipe.Recipe) (string, bool)
}

// StartHook is called with the node name immediately before its payload runs.
type StartHook func(ctx context.Context, name string)

// Option configures a build.
type Option func(b *builder)

// WithStartHook installs a hook that runs before each payload.
func WithStartHook(hook StartHook) Option {
	return func(b *builder) {
		b.onStart = hook
	}
}

type builder struct {
	names   Namer
	graph   *dag.Graph
	visited map[*recipe.Recipe]struct{}
	onStart StartHook
}

// Build walks root and its transitive dependencies and returns the resulting graph.
// Each distinct recipe becomes exactly one node, however many dependents reference it.
// On error no graph is returned.
func Build(names Namer, root *recipe.Recipe, opts ...Option) (*dag.Graph, error) {
	return BuildAll(names, []*recipe.Recipe{root}, opts...)
}

// BuildAll builds a single graph containing every root and their dependencies,
// as if they were the dependencies of one virtual root.
func BuildAll(names Namer, roots []*recipe.Recipe, opts ...Option) (*dag.Graph, error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	b := &builder{
		names:   names,
		graph:   dag.New(),
		visited: make(map[*recipe.Recipe]struct{}),
	}

	for _, opt := range opts {
		opt(b)
	}

	for _, root := range roots {
		if _, err := b.add(root, ""); err != nil {
			return nil, err
		}
	}

	return b.graph, nil
}

// add registers r and its dependencies, returning the name of r.
func (b *builder) add(r *recipe.Recipe, referrer string) (string, error) {
	if r == nil {
		return "", &UnresolvedNameError{Referrer: referrer}
	}

	name, ok := b.names.NameOf(r)
	if !ok {
		return "", &UnresolvedNameError{Referrer: referrer}
	}

	if _, seen := b.visited[r]; seen {
		return name, nil
	}

	b.visited[r] = struct{}{}

	deps := r.Deps()
	depNames := make([]string, 0, len(deps))

	for _, dep := range deps {
		depName, err := b.add(dep, name)
		if err != nil {
			return "", err
		}

		depNames = append(depNames, depName)
	}

	if err := b.graph.AddNode(name, depNames, b.task(name, r)); err != nil {
		return "", err //nolint:wrapcheck
	}

	return name, nil
}

func (b *builder) task(name string, r *recipe.Recipe) dag.Task {
	onStart := b.onStart

	return func(ctx context.Context) error {
		if onStart != nil {
			onStart(ctx, name)
		}

		return r.Run(ctx)
	}
}
