// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package recipefile finds, fetches and decodes recipe files.
//
// A recipe file is YAML (brec.yaml or brec.yml) or HCL (brec.hcl). Each
// recipe has a name, an optional description, the names of its
// dependencies and a list of shell lines to run. Build turns a decoded File
// into a recipe.Set whose payloads run those lines with the shell package.
package recipefile
