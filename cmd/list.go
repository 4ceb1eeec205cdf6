// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/brec/internal/recipe"
)

var (
	listNameStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	listDescriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// writeList writes one line per recipe, in registration order: the name
// padded to the longest name, then the description.
func writeList(w io.Writer, set *recipe.Set) error {
	width := 0
	for name := range set.All() {
		width = max(width, lipgloss.Width(name))
	}

	nameStyle := listNameStyle.Width(width)

	for name, r := range set.All() {
		line := "  " + nameStyle.Render(name)
		if d := r.Description(); d != "" {
			line += "  " + listDescriptionStyle.Render(d)
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}
