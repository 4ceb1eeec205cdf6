// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipe_Run(t *testing.T) {
	t.Run("nil payload succeeds", func(t *testing.T) {
		r := New("nothing", nil)
		assert.NoError(t, r.Run(context.Background()))
	})

	t.Run("payload error is returned", func(t *testing.T) {
		want := errors.New("boom")
		r := New("fails", func(context.Context) error { return want })
		assert.ErrorIs(t, r.Run(context.Background()), want)
	})
}

func TestRecipe_DepsIsACopy(t *testing.T) {
	a := New("a", nil)
	b := New("b", nil, a)

	deps := b.Deps()
	deps[0] = nil

	require.Len(t, b.Deps(), 1)
	assert.Same(t, a, b.Deps()[0])
}

func TestSet_Register(t *testing.T) {
	clean := New("Remove build artifacts", nil)
	build := New("Build the project", nil, clean)

	s := NewSet()
	require.NoError(t, s.Register("clean", clean))
	require.NoError(t, s.Register("build", build))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"clean", "build"}, s.Names())

	name, ok := s.NameOf(build)
	assert.True(t, ok)
	assert.Equal(t, "build", name)

	got, ok := s.Lookup("clean")
	assert.True(t, ok)
	assert.Same(t, clean, got)
}

func TestSet_RegisterErrors(t *testing.T) {
	s := NewSet()
	a := New("same", nil)
	b := New("same", nil)

	assert.ErrorIs(t, s.Register("", a), ErrEmptyName)
	assert.ErrorIs(t, s.Register("a", nil), ErrNilRecipe)

	require.NoError(t, s.Register("a", a))
	require.NoError(t, s.Register("a", a), "re-registering the same recipe is a no-op")

	err := s.Register("a", b)

	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Name)
}

func TestSet_IdentityNotValue(t *testing.T) {
	s := NewSet()
	a := New("identical", nil)
	b := New("identical", nil)

	s.MustRegister("a", a)

	_, ok := s.NameOf(b)
	assert.False(t, ok, "a structurally equal recipe must not share a name")
}

func TestSet_AliasKeepsFirstName(t *testing.T) {
	s := NewSet()
	a := New("a", nil)

	s.MustRegister("first", a)
	s.MustRegister("second", a)

	name, _ := s.NameOf(a)
	assert.Equal(t, "first", name)
	assert.Equal(t, 2, s.Len())
}

func TestSet_Get(t *testing.T) {
	s := NewSet()
	s.MustRegister("a", New("a", nil))

	_, err := s.Get("missing")

	var unknown *UnknownRecipeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Unknown recipe 'missing'", err.Error())
}

func TestSet_MustRegisterPanics(t *testing.T) {
	s := NewSet()
	assert.Panics(t, func() { s.MustRegister("", New("x", nil)) })
}

func TestSet_All(t *testing.T) {
	s := NewSet()
	s.MustRegister("x", New("x", nil))
	s.MustRegister("y", New("y", nil))

	var names []string
	for name := range s.All() {
		names = append(names, name)
	}

	assert.Equal(t, []string{"x", "y"}, names)
}
