package spreadsheet

import (
	"slices"

	"golang.org/x/exp/maps"
)

// This file holds the dependency-graph operations. The graph is not a
// standalone type — its state is just the union of every Cell's
// references/dependents maps (see cell.go). What remains here are the
// two traversals that operate over that union: cycle detection and
// transitive cache invalidation.

// wouldCreateCycle runs the cycle detector: a DFS from frontier (this
// cell's prospective referenced cells) over every other cell's
// *current* references, looking for a path back to c. This visits
// every reference of every node reachable from frontier, bounded by a
// visited set, rather than stopping at the first referenced cell of
// each node — a shortcut that would miss cycles reachable only through
// a later reference in a multi-reference formula.
func (c *Cell) wouldCreateCycle(frontier []*Cell) bool {
	visited := make(map[*Cell]struct{})
	stack := append([]*Cell(nil), frontier...)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur == c {
			return true
		}
		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}

		for ref := range cur.references {
			stack = append(stack, ref)
		}
	}
	return false
}

// invalidateDependents clears this cell's transitive dependents'
// caches. A visited set bounds the walk to O(|dependents closure|)
// even though the same dependent is reachable via multiple paths.
func (c *Cell) invalidateDependents() {
	visited := make(map[*Cell]struct{})
	stack := make([]*Cell, 0, len(c.dependents))
	for dep := range c.dependents {
		stack = append(stack, dep)
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}

		cur.cacheValid = false
		cur.cacheValue = 0

		for dep := range cur.dependents {
			stack = append(stack, dep)
		}
	}
}

// ReferencePositions returns the sorted positions of cells this cell
// currently references as committed graph edges (as opposed to
// GetReferencedCells, which reads the positions straight out of the
// formula AST — the two always agree, but this one is useful for tests
// asserting graph-edge state directly rather than re-deriving it from
// the parse tree).
func (c *Cell) ReferencePositions() []Position {
	return sortedPositions(c.references)
}

// DependentPositions returns the sorted positions of cells that
// currently name this cell in their formula: the reverse edges that
// mirror ReferencePositions on the other endpoint.
func (c *Cell) DependentPositions() []Position {
	return sortedPositions(c.dependents)
}

func sortedPositions(set map[*Cell]struct{}) []Position {
	cells := maps.Keys(set)
	positions := make([]Position, len(cells))
	for i, cell := range cells {
		positions[i] = cell.pos
	}
	slices.SortFunc(positions, func(a, b Position) int {
		if a.Less(b) {
			return -1
		}
		if b.Less(a) {
			return 1
		}
		return 0
	})
	return positions
}
