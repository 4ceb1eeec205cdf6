// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package recipe

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrEmptyName is returned when a recipe is registered without a name.
	ErrEmptyName = errors.New("recipe name must not be empty")
	// ErrNilRecipe is returned when a nil recipe is registered.
	ErrNilRecipe = errors.New("recipe must not be nil")
)

// DuplicateNameError is returned when a name is already taken by a different recipe.
type DuplicateNameError struct {
	Name string
}

// Error implements the error interface for DuplicateNameError.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("recipe %q is already registered", e.Name)
}

// UnknownRecipeError is returned when a requested recipe name is not registered.
type UnknownRecipeError struct {
	Name string
}

// Error implements the error interface for UnknownRecipeError.
func (e *UnknownRecipeError) Error() string {
	return fmt.Sprintf("Unknown recipe '%s'", e.Name)
}

// Set is a registry of named recipes. It remembers registration order.
// A Set is not safe for concurrent registration; it is built once and then only read.
type Set struct {
	byName map[string]*Recipe
	names  map[*Recipe]string
	order  []string
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{
		byName: make(map[string]*Recipe),
		names:  make(map[*Recipe]string),
	}
}

// Register adds the recipe under the given name.
// Registering the same recipe under the same name again is a no-op.
// A recipe registered under several names keeps the first one as its canonical name.
func (s *Set) Register(name string, r *Recipe) error {
	if name == "" {
		return ErrEmptyName
	}

	if r == nil {
		return ErrNilRecipe
	}

	if existing, ok := s.byName[name]; ok {
		if existing == r {
			return nil
		}

		return &DuplicateNameError{Name: name}
	}

	s.byName[name] = r
	s.order = append(s.order, name)

	if _, ok := s.names[r]; !ok {
		s.names[r] = name
	}

	return nil
}

// MustRegister is like Register but panics on error.
// It is intended for recipe sets declared in Go code.
func (s *Set) MustRegister(name string, r *Recipe) *Recipe {
	if err := s.Register(name, r); err != nil {
		panic(err)
	}

	return r
}

// NameOf returns the canonical name of the recipe, if it has been registered.
func (s *Set) NameOf(r *Recipe) (string, bool) {
	name, ok := s.names[r]
	return name, ok
}

// Lookup returns the recipe registered under name.
func (s *Set) Lookup(name string) (*Recipe, bool) {
	r, ok := s.byName[name]
	return r, ok
}

// Get returns the recipe registered under name, or an UnknownRecipeError.
func (s *Set) Get(name string) (*Recipe, error) {
	r, ok := s.byName[name]
	if !ok {
		return nil, &UnknownRecipeError{Name: name}
	}

	return r, nil
}

// Len returns the number of registered names.
func (s *Set) Len() int {
	return len(s.order)
}

// Names returns the registered names in registration order.
func (s *Set) Names() []string {
	return slices.Clone(s.order)
}

// All iterates over the registered names and recipes in registration order.
func (s *Set) All() iter.Seq2[string, *Recipe] {
	return func(yield func(string, *Recipe) bool) {
		for _, name := range s.order {
			if !yield(name, s.byName[name]) {
				return
			}
		}
	}
}
