// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type edge struct {
	name string
	deps []string
}

func buildGraph(t *testing.T, edges ...edge) *Graph {
	t.Helper()

	g := New()
	for _, e := range edges {
		require.NoError(t, g.AddNode(e.name, e.deps, nil))
	}

	return g
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		edges     []edge
		wantCycle bool
		wantNodes []string // acceptable re-entered nodes
		wantPath  []string
	}{
		{
			name:  "empty graph",
			edges: nil,
		},
		{
			name:  "linear chain",
			edges: []edge{{"a", nil}, {"b", []string{"a"}}, {"c", []string{"b"}}},
		},
		{
			name: "diamond",
			edges: []edge{
				{"a", nil},
				{"b", []string{"a"}},
				{"c", []string{"a"}},
				{"d", []string{"b", "c"}},
			},
		},
		{
			name:      "direct cycle",
			edges:     []edge{{"a", []string{"b"}}, {"b", []string{"a"}}},
			wantCycle: true,
			wantNodes: []string{"a", "b"},
			wantPath:  []string{"a", "b", "a"},
		},
		{
			name:      "self reference",
			edges:     []edge{{"a", []string{"a"}}},
			wantCycle: true,
			wantNodes: []string{"a"},
			wantPath:  []string{"a", "a"},
		},
		{
			name: "three-way cycle behind an acyclic prefix",
			edges: []edge{
				{"root", []string{"x"}},
				{"x", []string{"y"}},
				{"y", []string{"z"}},
				{"z", []string{"x"}},
			},
			wantCycle: true,
			wantNodes: []string{"x"},
			wantPath:  []string{"x", "y", "z", "x"},
		},
		{
			name:  "missing dependency is not a cycle",
			edges: []edge{{"a", []string{"ghost"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := buildGraph(t, tt.edges...).Validate()
			if !tt.wantCycle {
				assert.NoError(t, err)
				return
			}

			var cycle *CycleError
			require.ErrorAs(t, err, &cycle)
			assert.Contains(t, tt.wantNodes, cycle.Node)
			assert.Equal(t, tt.wantPath, cycle.Path)
			assert.Contains(t, err.Error(), "cycle detected involving node '"+cycle.Node+"'")
		})
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	g := buildGraph(t, edge{"a", nil}, edge{"b", []string{"a"}})
	before := g.Names()

	require.NoError(t, g.Validate())
	require.NoError(t, g.Validate())

	assert.Equal(t, before, g.Names())
}
