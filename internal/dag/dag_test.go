package dag

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/Iron-Ham/hookrun/internal/errors"
)

type task struct {
	id   string
	deps []string
}

func (t task) TaskID() string     { return t.id }
func (t task) TaskDeps() []string { return t.deps }

func tk(id string, deps ...string) task {
	return task{id: id, deps: deps}
}

func mustPlan(t *testing.T, tasks ...task) *Plan {
	t.Helper()
	g, err := Build(tasks)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	plan, err := Schedule(g)
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	return plan
}

func levelIDs(p *Plan) [][]string {
	out := make([][]string, len(p.Levels))
	for i, lvl := range p.Levels {
		out[i] = lvl.IDs
	}
	return out
}

// -----------------------------------------------------------------------------
// Build
// -----------------------------------------------------------------------------

func TestBuild_DuplicateID(t *testing.T) {
	orders := [][]task{
		{tk("a"), tk("b"), tk("a")},
		{tk("a"), tk("a"), tk("b")},
		{tk("b"), tk("a"), tk("a")},
	}

	for i, tasks := range orders {
		t.Run(fmt.Sprintf("order %d", i), func(t *testing.T) {
			_, err := Build(tasks)
			if !errors.Is(err, errors.ErrDuplicateID) {
				t.Fatalf("Build() error = %v, want ErrDuplicateID", err)
			}
			var dup *DuplicateIDError
			if !errors.As(err, &dup) {
				t.Fatalf("Build() error type = %T, want *DuplicateIDError", err)
			}
			if dup.ID != "a" {
				t.Errorf("DuplicateIDError.ID = %q, want %q", dup.ID, "a")
			}
		})
	}
}

func TestBuild_DuplicateCheckedBeforeUnknown(t *testing.T) {
	_, err := Build([]task{tk("a", "ghost"), tk("a")})
	if !errors.Is(err, errors.ErrDuplicateID) {
		t.Fatalf("Build() error = %v, want ErrDuplicateID", err)
	}
}

func TestBuild_UnknownDependency(t *testing.T) {
	_, err := Build([]task{tk("a"), tk("b", "a", "missing")})

	var unk *UnknownDependencyError
	if !errors.As(err, &unk) {
		t.Fatalf("Build() error = %v, want *UnknownDependencyError", err)
	}
	if unk.TaskID != "b" || unk.Missing != "missing" {
		t.Errorf("UnknownDependencyError = %+v, want {b missing}", unk)
	}
	if !errors.Is(err, errors.ErrUnknownDependency) {
		t.Error("error should match ErrUnknownDependency")
	}
	if !errors.IsStructural(err) {
		t.Error("IsStructural() = false, want true")
	}
}

func TestBuild_CollapsesRepeatedDependencies(t *testing.T) {
	g, err := Build([]task{tk("a"), tk("b", "a", "a", "a")})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := g.Dependencies("b"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Dependencies(b) = %v, want [a]", got)
	}
	if got := g.Dependents("a"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Dependents(a) = %v, want [b]", got)
	}

	plan, err := Schedule(g)
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if want := [][]string{{"a"}, {"b"}}; !reflect.DeepEqual(levelIDs(plan), want) {
		t.Errorf("levels = %v, want %v", levelIDs(plan), want)
	}
}

func TestBuild_DoesNotDetectCycles(t *testing.T) {
	if _, err := Build([]task{tk("x", "y"), tk("y", "x")}); err != nil {
		t.Errorf("Build() error = %v, want nil", err)
	}
}

func TestGraph_Accessors(t *testing.T) {
	g, err := Build([]task{tk("z"), tk("a", "z")})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
	if got := g.IDs(); !reflect.DeepEqual(got, []string{"z", "a"}) {
		t.Errorf("IDs() = %v, want input order", got)
	}
	if n, ok := g.Node("a"); !ok || n.id != "a" {
		t.Errorf("Node(a) = %v, %v", n, ok)
	}
	if _, ok := g.Node("nope"); ok {
		t.Error("Node(nope) ok = true, want false")
	}
	if g.Dependencies("nope") != nil {
		t.Error("Dependencies(nope) should be nil")
	}
}

// -----------------------------------------------------------------------------
// Schedule
// -----------------------------------------------------------------------------

func TestSchedule(t *testing.T) {
	tests := []struct {
		name  string
		tasks []task
		want  [][]string
	}{
		{
			name:  "empty",
			tasks: nil,
			want:  [][]string{},
		},
		{
			name:  "diamond with tail",
			tasks: []task{tk("D", "C"), tk("C", "A", "B"), tk("B"), tk("A")},
			want:  [][]string{{"A", "B"}, {"C"}, {"D"}},
		},
		{
			name:  "independent tasks share one level",
			tasks: []task{tk("e"), tk("c"), tk("a"), tk("d"), tk("b")},
			want:  [][]string{{"a", "b", "c", "d", "e"}},
		},
		{
			name:  "level is one past deepest dependency",
			tasks: []task{tk("a"), tk("b", "a"), tk("c", "b"), tk("d", "a", "c"), tk("e", "a")},
			want:  [][]string{{"a"}, {"b", "e"}, {"c"}, {"d"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := mustPlan(t, tt.tasks...)
			if got := levelIDs(plan); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("levels = %v, want %v", got, tt.want)
			}
			for i, lvl := range plan.Levels {
				if lvl.Index != i {
					t.Errorf("Levels[%d].Index = %d", i, lvl.Index)
				}
			}
		})
	}
}

func TestSchedule_Cycle(t *testing.T) {
	tests := []struct {
		name  string
		tasks []task
		want  []string
	}{
		{
			name:  "two node cycle",
			tasks: []task{tk("X", "Y"), tk("Y", "X")},
			want:  []string{"X", "Y"},
		},
		{
			name:  "self dependency",
			tasks: []task{tk("ok"), tk("loop", "loop")},
			want:  []string{"loop"},
		},
		{
			name:  "downstream of a cycle is unresolved too",
			tasks: []task{tk("a"), tk("c", "b"), tk("b", "c", "a"), tk("d", "b")},
			want:  []string{"b", "c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.tasks)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			plan, err := Schedule(g)
			if plan != nil {
				t.Error("Schedule() returned a plan for a cyclic graph")
			}
			var cyc *CycleError
			if !errors.As(err, &cyc) {
				t.Fatalf("Schedule() error = %v, want *CycleError", err)
			}
			if !reflect.DeepEqual(cyc.IDs, tt.want) {
				t.Errorf("CycleError.IDs = %v, want %v", cyc.IDs, tt.want)
			}
			if !errors.Is(err, errors.ErrDependencyCycle) {
				t.Error("error should match ErrDependencyCycle")
			}
		})
	}
}

func TestPlan_Accessors(t *testing.T) {
	plan := mustPlan(t, tk("A"), tk("B"), tk("C", "B", "A"), tk("D", "C"))

	if got := plan.Order(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D"}) {
		t.Errorf("Order() = %v", got)
	}
	if plan.Len() != 4 {
		t.Errorf("Len() = %d, want 4", plan.Len())
	}
	if got := plan.Dependencies("C"); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Dependencies(C) = %v, want [A B]", got)
	}
	if got := plan.Dependencies("A"); got != nil {
		t.Errorf("Dependencies(A) = %v, want nil", got)
	}
	if lvl, ok := plan.LevelOf("D"); !ok || lvl != 2 {
		t.Errorf("LevelOf(D) = %d, %v, want 2, true", lvl, ok)
	}
	if _, ok := plan.LevelOf("nope"); ok {
		t.Error("LevelOf(nope) ok = true, want false")
	}
}

// TestSchedule_RandomDAGs checks the level invariant on generated graphs.
// Edges only point from lower to higher generation index, so every graph is
// acyclic; the input is shuffled so declaration order plays no role.
func TestSchedule_RandomDAGs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(25)
		tasks := make([]task, n)
		for i := 0; i < n; i++ {
			tasks[i] = tk(fmt.Sprintf("t%02d", i))
			for j := 0; j < i; j++ {
				if rng.Intn(4) == 0 {
					tasks[i].deps = append(tasks[i].deps, tasks[j].id)
				}
			}
		}
		rng.Shuffle(n, func(i, j int) { tasks[i], tasks[j] = tasks[j], tasks[i] })

		plan := mustPlan(t, tasks...)

		if plan.Len() != n || len(plan.Order()) != n {
			t.Fatalf("round %d: plan covers %d tasks, want %d", round, len(plan.Order()), n)
		}
		for _, tsk := range tasks {
			lvl, ok := plan.LevelOf(tsk.id)
			if !ok {
				t.Fatalf("round %d: %s missing from plan", round, tsk.id)
			}
			depth := 0
			for _, dep := range tsk.deps {
				dl, _ := plan.LevelOf(dep)
				if dl >= lvl {
					t.Fatalf("round %d: %s (level %d) depends on %s (level %d)", round, tsk.id, lvl, dep, dl)
				}
				depth = max(depth, dl+1)
			}
			if depth != lvl {
				t.Fatalf("round %d: %s at level %d, want %d", round, tsk.id, lvl, depth)
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Subgraph
// -----------------------------------------------------------------------------

func TestGraph_Subgraph(t *testing.T) {
	g, err := Build([]task{tk("fmt"), tk("vet"), tk("build", "fmt"), tk("test", "build"), tk("lint", "vet")})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	sub, err := g.Subgraph([]string{"test"})
	if err != nil {
		t.Fatalf("Subgraph() error = %v", err)
	}
	if got := sub.IDs(); !reflect.DeepEqual(got, []string{"fmt", "build", "test"}) {
		t.Errorf("Subgraph(test).IDs() = %v", got)
	}

	sub, err = g.Subgraph([]string{"lint", "fmt"})
	if err != nil {
		t.Fatalf("Subgraph() error = %v", err)
	}
	if got := sub.IDs(); !reflect.DeepEqual(got, []string{"fmt", "vet", "lint"}) {
		t.Errorf("Subgraph(lint, fmt).IDs() = %v", got)
	}

	if _, err := g.Subgraph([]string{"ghost"}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Subgraph(ghost) error = %v, want ErrInvalidInput", err)
	}
}
