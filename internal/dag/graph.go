// Package dag builds and schedules dependency graphs of tasks.
//
// Build validates a set of task descriptors (unique ids, resolvable
// dependencies) and produces an immutable Graph. Schedule turns a Graph into
// a Plan: an ordered sequence of levels where every task's dependencies sit in
// strictly earlier levels. Cycles are detected by Schedule, since cycle
// detection and topological sort are the same traversal.
//
// The graph is an arena. Nodes are addressed by their position in the input
// and edges are stored as index lists, so there are no pointer cycles.
package dag

import (
	"fmt"
	"slices"
	"sort"

	"github.com/Iron-Ham/hookrun/internal/errors"
)

// Descriptor is the view of a task the graph needs. Anything else a task
// carries is opaque to this package.
type Descriptor interface {
	TaskID() string
	TaskDeps() []string
}

// Graph is a validated dependency graph. It is never mutated after Build
// returns and is safe for concurrent reads.
type Graph[T Descriptor] struct {
	nodes []T
	index map[string]int

	// deps[i] holds the distinct dependency indices of node i in declaration order.
	deps [][]int
	// dependents[i] holds the nodes that depend on node i.
	dependents [][]int
}

// Len returns the number of nodes.
func (g *Graph[T]) Len() int {
	return len(g.nodes)
}

// Node returns the task with the given id.
func (g *Graph[T]) Node(id string) (T, bool) {
	i, ok := g.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return g.nodes[i], true
}

// Nodes returns the tasks in input order.
func (g *Graph[T]) Nodes() []T {
	return slices.Clone(g.nodes)
}

// IDs returns the task ids in input order.
func (g *Graph[T]) IDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.TaskID()
	}
	return ids
}

// Dependencies returns the distinct dependency ids of a task, sorted.
func (g *Graph[T]) Dependencies(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.idsOf(g.deps[i])
}

// Dependents returns the ids of tasks that directly depend on id, sorted.
func (g *Graph[T]) Dependents(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.idsOf(g.dependents[i])
}

func (g *Graph[T]) idsOf(indices []int) []string {
	if len(indices) == 0 {
		return nil
	}
	ids := make([]string, len(indices))
	for k, j := range indices {
		ids[k] = g.nodes[j].TaskID()
	}
	sort.Strings(ids)
	return ids
}

// Subgraph returns the graph restricted to the given roots and everything
// they transitively depend on. Input order is preserved.
func (g *Graph[T]) Subgraph(roots []string) (*Graph[T], error) {
	keep := make([]bool, len(g.nodes))
	var stack []int
	for _, id := range roots {
		i, ok := g.index[id]
		if !ok {
			return nil, fmt.Errorf("%w: no task with id %q", errors.ErrInvalidInput, id)
		}
		stack = append(stack, i)
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if keep[i] {
			continue
		}
		keep[i] = true
		stack = append(stack, g.deps[i]...)
	}

	var subset []T
	for i, n := range g.nodes {
		if keep[i] {
			subset = append(subset, n)
		}
	}
	return Build(subset)
}
