// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dag

type visitState int

const (
	unvisited visitState = iota
	inProgress
	finished
)

// Validate checks that the graph is acyclic using a three-colour depth-first search.
// Dependencies that are not in the graph are ignored here, see CheckClosed.
// It returns a CycleError naming the node at which the cycle was re-entered.
func (g *Graph) Validate() error {
	state := make(map[string]visitState, len(g.nodes))
	path := make([]string, 0, len(g.nodes))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case finished:
			return nil
		case inProgress:
			return newCycleError(name, path)
		}

		n, ok := g.nodes[name]
		if !ok {
			return nil
		}

		state[name] = inProgress
		path = append(path, name)

		for _, dep := range n.Deps {
			if err := visit(dep); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		state[name] = finished

		return nil
	}

	for _, name := range g.order {
		if err := visit(name); err != nil {
			return err
		}
	}

	return nil
}

// newCycleError extracts the cycle witness from the current recursion path.
func newCycleError(reentered string, path []string) *CycleError {
	start := 0

	for i, p := range path {
		if p == reentered {
			start = i
			break
		}
	}

	witness := make([]string, 0, len(path)-start+1)
	witness = append(witness, path[start:]...)
	witness = append(witness, reentered)

	return &CycleError{Node: reentered, Path: witness}
}
