// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNode(t *testing.T) {
	g := New()
	require.NoError(t, g.AddNode("clean", nil, nil))
	require.NoError(t, g.AddNode("build", []string{"clean", "clean"}, nil))

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"clean", "build"}, g.Names())

	n, ok := g.Node("build")
	require.True(t, ok)
	assert.Equal(t, []string{"clean"}, n.Deps, "duplicate dependencies are collapsed")
}

func TestAddNode_Duplicate(t *testing.T) {
	g := New()
	require.NoError(t, g.AddNode("a", nil, nil))

	err := g.AddNode("a", nil, nil)

	var dup *DuplicateNodeError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Name)
	assert.Equal(t, "node with id 'a' already exists", err.Error())
	assert.Equal(t, 1, g.Len())
}

func TestAddNode_EmptyName(t *testing.T) {
	assert.ErrorIs(t, New().AddNode("", nil, nil), ErrEmptyNodeName)
}

func TestCheckClosed(t *testing.T) {
	tests := []struct {
		name    string
		nodes   map[string][]string
		order   []string
		wantDep string
	}{
		{
			name:  "closed graph",
			nodes: map[string][]string{"a": nil, "b": {"a"}},
			order: []string{"a", "b"},
		},
		{
			name:    "missing dependency",
			nodes:   map[string][]string{"b": {"a"}},
			order:   []string{"b"},
			wantDep: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, name := range tt.order {
				require.NoError(t, g.AddNode(name, tt.nodes[name], nil))
			}

			err := g.CheckClosed()
			if tt.wantDep == "" {
				assert.NoError(t, err)
				return
			}

			var missing *MissingDependencyError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantDep, missing.Dependency)
		})
	}
}
