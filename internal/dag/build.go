package dag

// Build validates tasks and constructs their dependency graph.
//
// Checks run in order and the first violation is returned:
//  1. a repeated id yields *DuplicateIDError
//  2. a dependency naming no task yields *UnknownDependencyError
//
// Repeated entries within one task's dependency list collapse to a single
// edge. Cycles are not detected here; see Schedule.
func Build[T Descriptor](tasks []T) (*Graph[T], error) {
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		id := t.TaskID()
		if _, ok := index[id]; ok {
			return nil, &DuplicateIDError{ID: id}
		}
		index[id] = i
	}

	for _, t := range tasks {
		for _, dep := range t.TaskDeps() {
			if _, ok := index[dep]; !ok {
				return nil, &UnknownDependencyError{TaskID: t.TaskID(), Missing: dep}
			}
		}
	}

	g := &Graph[T]{
		nodes:      make([]T, len(tasks)),
		index:      index,
		deps:       make([][]int, len(tasks)),
		dependents: make([][]int, len(tasks)),
	}
	copy(g.nodes, tasks)

	for i, t := range tasks {
		seen := make(map[int]bool, len(t.TaskDeps()))
		for _, dep := range t.TaskDeps() {
			j := index[dep]
			if seen[j] {
				continue
			}
			seen[j] = true
			g.deps[i] = append(g.deps[i], j)
			g.dependents[j] = append(g.dependents[j], i)
		}
	}

	return g, nil
}
