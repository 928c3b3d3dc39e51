package dag

import "sort"

// Level is one frontier of the plan. Tasks in a level have no dependency
// relation to one another and may run concurrently.
type Level struct {
	Index int      `json:"index"`
	IDs   []string `json:"ids"`
}

// Plan is an ordered sequence of levels covering every task exactly once.
// It is read-only once returned by Schedule.
type Plan struct {
	Levels []Level `json:"levels"`

	deps    map[string][]string
	levelOf map[string]int
}

// Len returns the number of tasks in the plan.
func (p *Plan) Len() int {
	return len(p.levelOf)
}

// Order returns the levels concatenated: a valid topological order.
func (p *Plan) Order() []string {
	order := make([]string, 0, len(p.levelOf))
	for _, lvl := range p.Levels {
		order = append(order, lvl.IDs...)
	}
	return order
}

// Dependencies returns the sorted direct dependency ids of a task.
// The returned slice must not be modified.
func (p *Plan) Dependencies(id string) []string {
	return p.deps[id]
}

// LevelOf returns the level index a task was assigned to.
func (p *Plan) LevelOf(id string) (int, bool) {
	lvl, ok := p.levelOf[id]
	return lvl, ok
}

// Schedule computes the execution plan of g by repeated frontier extraction.
//
// Each round collects every unassigned node whose remaining in-degree is zero,
// sorted by id, as the next level, then releases its dependents. Nodes left
// unassigned when no frontier remains are reported as a *CycleError. An empty
// graph yields an empty plan.
func Schedule[T Descriptor](g *Graph[T]) (*Plan, error) {
	n := len(g.nodes)
	inDegree := make([]int, n)
	var frontier []int
	for i := range g.nodes {
		inDegree[i] = len(g.deps[i])
		if inDegree[i] == 0 {
			frontier = append(frontier, i)
		}
	}

	plan := &Plan{
		Levels:  []Level{},
		deps:    make(map[string][]string, n),
		levelOf: make(map[string]int, n),
	}

	for len(frontier) > 0 {
		ids := make([]string, len(frontier))
		for k, i := range frontier {
			ids[k] = g.nodes[i].TaskID()
		}
		sort.Strings(ids)

		index := len(plan.Levels)
		plan.Levels = append(plan.Levels, Level{Index: index, IDs: ids})

		var next []int
		for _, i := range frontier {
			id := g.nodes[i].TaskID()
			plan.levelOf[id] = index
			plan.deps[id] = g.idsOf(g.deps[i])
			for _, j := range g.dependents[i] {
				inDegree[j]--
				if inDegree[j] == 0 {
					next = append(next, j)
				}
			}
		}
		frontier = next
	}

	if len(plan.levelOf) < n {
		var stuck []string
		for _, node := range g.nodes {
			if _, ok := plan.levelOf[node.TaskID()]; !ok {
				stuck = append(stuck, node.TaskID())
			}
		}
		sort.Strings(stuck)
		return nil, &CycleError{IDs: stuck}
	}

	return plan, nil
}
