// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package recipe

import (
	"context"
	"slices"
)

// Payload is the work performed by a recipe. A nil Payload succeeds without doing anything.
type Payload func(ctx context.Context) error

// Recipe is an immutable description of one schedulable piece of work.
type Recipe struct {
	description string
	payload     Payload
	deps        []*Recipe
}

// New creates a recipe with the given description, payload and dependencies.
// The dependency order is preserved.
func New(description string, payload Payload, deps ...*Recipe) *Recipe {
	return &Recipe{
		description: description,
		payload:     payload,
		deps:        slices.Clone(deps),
	}
}

// Description returns the human readable description of the recipe.
func (r *Recipe) Description() string {
	return r.description
}

// Payload returns the work performed by the recipe.
func (r *Recipe) Payload() Payload {
	return r.payload
}

// Deps returns a copy of the recipe's dependencies, in declaration order.
func (r *Recipe) Deps() []*Recipe {
	return slices.Clone(r.deps)
}

// Run invokes the payload. It returns nil if the recipe has no payload.
func (r *Recipe) Run(ctx context.Context) error {
	if r.payload == nil {
		return nil
	}

	return r.payload(ctx)
}
