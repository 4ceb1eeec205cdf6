// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dag

import (
	"context"
	"slices"
)

// Task is the procedure attached to a node.
type Task func(ctx context.Context) error

// Node is one unit of work in the graph.
type Node struct {
	Name string   // Unique name of the node
	Deps []string // Names of the nodes that must complete first, without duplicates
	Task Task     // The work to perform, may be nil
}

// Graph is a mapping from node name to node.
// It is not safe for concurrent modification; once built it may be read concurrently.
type Graph struct {
	nodes map[string]*Node
	order []string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
	}
}

// AddNode adds a node to the graph.
// Duplicate dependency names are collapsed, keeping the first occurrence.
// It returns a DuplicateNodeError if the name is already present.
func (g *Graph) AddNode(name string, deps []string, task Task) error {
	if name == "" {
		return ErrEmptyNodeName
	}

	if _, ok := g.nodes[name]; ok {
		return &DuplicateNodeError{Name: name}
	}

	unique := make([]string, 0, len(deps))
	for _, d := range deps {
		if !slices.Contains(unique, d) {
			unique = append(unique, d)
		}
	}

	g.nodes[name] = &Node{
		Name: name,
		Deps: unique,
		Task: task,
	}
	g.order = append(g.order, name)

	return nil
}

// Node returns the node with the given name.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Names returns the node names in insertion order.
func (g *Graph) Names() []string {
	return slices.Clone(g.order)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// CheckClosed verifies that every dependency name resolves to a node in the graph.
func (g *Graph) CheckClosed() error {
	for _, name := range g.order {
		for _, dep := range g.nodes[name].Deps {
			if _, ok := g.nodes[dep]; !ok {
				return &MissingDependencyError{Node: name, Dependency: dep}
			}
		}
	}

	return nil
}
