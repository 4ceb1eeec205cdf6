// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builder

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/brec/internal/dag"
	"github.com/matt-FFFFFF/brec/internal/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Chain(t *testing.T) {
	clean := recipe.New("Remove build artifacts", nil)
	build := recipe.New("Build the project", nil, clean)

	set := recipe.NewSet()
	set.MustRegister("clean", clean)
	set.MustRegister("build", build)

	g, err := Build(set, build)
	require.NoError(t, err)

	assert.Equal(t, []string{"clean", "build"}, g.Names(), "dependencies are registered before dependents")

	n, ok := g.Node("build")
	require.True(t, ok)
	assert.Equal(t, []string{"clean"}, n.Deps)
}

func TestBuild_DiamondVisitsSharedOnce(t *testing.T) {
	a := recipe.New("a", nil)
	b := recipe.New("b", nil, a)
	c := recipe.New("c", nil, a)
	d := recipe.New("d", nil, b, c)

	set := recipe.NewSet()
	for name, r := range map[string]*recipe.Recipe{"a": a, "b": b, "c": c, "d": d} {
		set.MustRegister(name, r)
	}

	g, err := Build(set, d)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
	assert.NoError(t, g.Validate())
}

func TestBuild_OnlyReachableRecipes(t *testing.T) {
	lonely := recipe.New("unrelated", nil)
	root := recipe.New("root", nil)

	set := recipe.NewSet()
	set.MustRegister("lonely", lonely)
	set.MustRegister("root", root)

	g, err := Build(set, root)
	require.NoError(t, err)
	assert.Equal(t, []string{"root"}, g.Names())
}

func TestBuild_UnresolvedDependency(t *testing.T) {
	hidden := recipe.New("not registered", nil)
	root := recipe.New("root", nil, hidden)

	set := recipe.NewSet()
	set.MustRegister("root", root)

	g, err := Build(set, root)
	assert.Nil(t, g)

	var unresolved *UnresolvedNameError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "root", unresolved.Referrer)
	assert.Contains(t, err.Error(), "'root'")
}

func TestBuild_UnresolvedRoot(t *testing.T) {
	_, err := Build(recipe.NewSet(), recipe.New("orphan", nil))

	var unresolved *UnresolvedNameError
	require.ErrorAs(t, err, &unresolved)
	assert.Empty(t, unresolved.Referrer)
}

func TestBuild_NilDependency(t *testing.T) {
	root := recipe.New("root", nil, nil)
	set := recipe.NewSet()
	set.MustRegister("root", root)

	_, err := Build(set, root)

	var unresolved *UnresolvedNameError
	require.ErrorAs(t, err, &unresolved)
}

// aliasNamer resolves every recipe to the same name, which no Set would do.
type aliasNamer struct{}

func (aliasNamer) NameOf(*recipe.Recipe) (string, bool) { return "same", true }

func TestBuild_DuplicateNode(t *testing.T) {
	a := recipe.New("a", nil)
	b := recipe.New("b", nil, a)

	_, err := Build(aliasNamer{}, b)

	var dup *dag.DuplicateNodeError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "same", dup.Name)
}

func TestBuildAll_VirtualRoot(t *testing.T) {
	setup := recipe.New("setup", nil)
	a := recipe.New("a", nil, setup)
	b := recipe.New("b", nil, setup)

	set := recipe.NewSet()
	set.MustRegister("setup", setup)
	set.MustRegister("a", a)
	set.MustRegister("b", b)

	g, err := BuildAll(set, []*recipe.Recipe{a, b, a})
	require.NoError(t, err)
	assert.Equal(t, []string{"setup", "a", "b"}, g.Names())
}

func TestBuildAll_NoRoots(t *testing.T) {
	_, err := BuildAll(recipe.NewSet(), nil)
	assert.ErrorIs(t, err, ErrNoRoots)
}

func TestBuild_StartHookRunsBeforePayload(t *testing.T) {
	var events []string

	root := recipe.New("root", func(context.Context) error {
		events = append(events, "payload")
		return nil
	})

	set := recipe.NewSet()
	set.MustRegister("root", root)

	g, err := Build(set, root, WithStartHook(func(_ context.Context, name string) {
		events = append(events, "start:"+name)
	}))
	require.NoError(t, err)

	n, _ := g.Node("root")
	require.NoError(t, n.Task(context.Background()))
	assert.Equal(t, []string{"start:root", "payload"}, events)
}

func TestBuild_CycleReachesGraph(t *testing.T) {
	decls := recipe.NewDeclarations()
	decls.Declare("a", "a", nil, "b")
	decls.Declare("b", "b", nil, "a")

	set, err := decls.Resolve()
	require.NoError(t, err)

	root, _ := set.Lookup("a")

	g, err := Build(set, root)
	require.NoError(t, err, "building terminates on cycles, validation reports them")

	var cycle *dag.CycleError
	require.ErrorAs(t, g.Validate(), &cycle)
	assert.Contains(t, []string{"a", "b"}, cycle.Node)
}
