// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package recipe

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// UndefinedDependencyError is returned when a declaration depends on a name that was never declared.
type UndefinedDependencyError struct {
	Recipe     string
	Dependency string
}

// Error implements the error interface for UndefinedDependencyError.
func (e *UndefinedDependencyError) Error() string {
	return fmt.Sprintf("dependency '%s' of '%s' is not a declared recipe", e.Dependency, e.Recipe)
}

type declaration struct {
	name        string
	description string
	payload     Payload
	deps        []string
}

// Declarations collects recipes that refer to their dependencies by name,
// as they appear in a recipe file. Resolve links the names into recipes.
// Unlike New, declarations may refer to recipes declared later, so cycles
// can be expressed and are left for graph validation to report.
type Declarations struct {
	decls []declaration
}

// NewDeclarations returns an empty set of declarations.
func NewDeclarations() *Declarations {
	return &Declarations{}
}

// Declare adds a named recipe whose dependencies are given by name.
func (d *Declarations) Declare(name, description string, payload Payload, deps ...string) {
	d.decls = append(d.decls, declaration{
		name:        name,
		description: description,
		payload:     payload,
		deps:        deps,
	})
}

// Len returns the number of declarations.
func (d *Declarations) Len() int {
	return len(d.decls)
}

// Resolve creates one recipe per declaration and registers it in a new Set.
// Every problem found is reported, not only the first.
func (d *Declarations) Resolve() (*Set, error) {
	var result *multierror.Error

	set := NewSet()
	recipes := make([]*Recipe, len(d.decls))

	for i, decl := range d.decls {
		r := &Recipe{description: decl.description, payload: decl.payload}
		if err := set.Register(decl.name, r); err != nil {
			result = multierror.Append(result, err)
			continue
		}

		recipes[i] = r
	}

	for i, decl := range d.decls {
		r := recipes[i]
		if r == nil {
			continue
		}

		r.deps = make([]*Recipe, 0, len(decl.deps))

		for _, depName := range decl.deps {
			dep, ok := set.Lookup(depName)
			if !ok {
				result = multierror.Append(result, &UndefinedDependencyError{Recipe: decl.name, Dependency: depName})
				continue
			}

			r.deps = append(r.deps, dep)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return set, nil
}
