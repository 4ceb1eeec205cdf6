// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package recipe defines the unit of work that brec schedules, and the Set
// that gives each recipe its name.
//
// Recipes are compared by identity. Two recipes with identical descriptions,
// payloads and dependencies are still two different recipes, and each will run.
// A name is never derived from the recipe itself; it must be registered in a Set.
package recipe
