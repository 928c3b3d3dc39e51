package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/hookrun/internal/dag"
	"github.com/Iron-Ham/hookrun/internal/hook"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name        string
		outcomes    []Outcome
		wantSuccess bool
		wantSummary Summary
	}{
		{
			name:        "empty run succeeds",
			outcomes:    nil,
			wantSuccess: true,
			wantSummary: Summary{},
		},
		{
			name:        "all succeeded",
			outcomes:    []Outcome{Succeeded("b", 0), Succeeded("a", 0)},
			wantSuccess: true,
			wantSummary: Summary{Total: 2, Succeeded: 2},
		},
		{
			name:        "failure",
			outcomes:    []Outcome{Succeeded("a", 0), Failed("b", errors.New("boom"))},
			wantSuccess: false,
			wantSummary: Summary{Total: 2, Succeeded: 1, Failed: 1},
		},
		{
			name:        "skip alone is not a success",
			outcomes:    []Outcome{Skipped("a", ReasonCanceled, "")},
			wantSuccess: false,
			wantSummary: Summary{Total: 1, Skipped: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Aggregate("sequential", tt.outcomes, time.Second)
			if r.Success != tt.wantSuccess {
				t.Errorf("Success = %v, want %v", r.Success, tt.wantSuccess)
			}
			if r.Summary != tt.wantSummary {
				t.Errorf("Summary = %+v, want %+v", r.Summary, tt.wantSummary)
			}
			if r.Strategy != "sequential" || r.Elapsed != time.Second {
				t.Errorf("Strategy/Elapsed = %q/%v", r.Strategy, r.Elapsed)
			}
		})
	}
}

func TestAggregate_SortsByIDWithoutMutatingInput(t *testing.T) {
	in := []Outcome{Succeeded("c", 0), Succeeded("a", 0), Succeeded("b", 0)}
	r := Aggregate("concurrent", in, 0)

	var got []string
	for _, o := range r.Outcomes {
		got = append(got, o.ID)
	}
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("outcome order = %v, want [a b c]", got)
	}
	if in[0].ID != "c" {
		t.Error("Aggregate() reordered its input")
	}
}

func TestReport_Lookups(t *testing.T) {
	r := Aggregate("sequential", []Outcome{
		Failed("A", nil).WithExitCode(1),
		Succeeded("B", 0),
		Skipped("C", ReasonDependency, "A"),
	}, 0)

	o, ok := r.Outcome("C")
	if !ok || o.SkippedBy != "A" {
		t.Errorf("Outcome(C) = %+v, %v", o, ok)
	}
	if _, ok := r.Outcome("Z"); ok {
		t.Error("Outcome(Z) ok = true, want false")
	}

	want := map[string]Kind{"A": KindFailed, "B": KindSucceeded, "C": KindSkipped}
	if got := r.Kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("Kinds() = %v, want %v", got, want)
	}
	if got := r.NonSuccess(); len(got) != 2 || got[0].ID != "A" || got[1].ID != "C" {
		t.Errorf("NonSuccess() = %v", got)
	}
}

func TestOutcome_Predicates(t *testing.T) {
	tests := []struct {
		name         string
		outcome      Outcome
		wantSuccess  bool
		wantBlocking bool
	}{
		{"succeeded", Succeeded("a", 0), true, false},
		{"failed", Failed("a", nil), false, true},
		{"skipped", Skipped("a", ReasonDependency, "b"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.Success(); got != tt.wantSuccess {
				t.Errorf("Success() = %v, want %v", got, tt.wantSuccess)
			}
			if got := tt.outcome.Blocking(); got != tt.wantBlocking {
				t.Errorf("Blocking() = %v, want %v", got, tt.wantBlocking)
			}
		})
	}
}

func TestOutcome_JSON(t *testing.T) {
	o := Failed("lint", errors.New("exit status 2")).WithExitCode(2)
	o.Duration = 1500 * time.Millisecond
	o.Stderr = "bad.go:1: oops\n"

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for key, want := range map[string]any{
		"id":          "lint",
		"outcome":     "failed",
		"exit_code":   float64(2),
		"duration_ms": float64(1500),
		"error":       "exit status 2",
	} {
		if fields[key] != want {
			t.Errorf("field %q = %v, want %v", key, fields[key], want)
		}
	}
	if _, ok := fields["skipped_by"]; ok {
		t.Error("skipped_by should be omitted when empty")
	}

	var back Outcome
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal(Outcome) error = %v", err)
	}
	if back.Kind != KindFailed || back.Duration != o.Duration || back.ExitCode == nil || *back.ExitCode != 2 {
		t.Errorf("decoded outcome = %+v", back)
	}
}

func TestOutcome_JSONOmitsExitCodeForSkips(t *testing.T) {
	data, err := json.Marshal(Skipped("deploy", ReasonDependency, "test"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "exit_code") {
		t.Errorf("skipped outcome JSON = %s, should not contain exit_code", data)
	}
	if !strings.Contains(string(data), `"skip_reason":"dependency"`) {
		t.Errorf("skipped outcome JSON = %s, missing skip_reason", data)
	}
}

func TestRenderJSON(t *testing.T) {
	r := Aggregate("concurrent", []Outcome{Succeeded("a", 10*time.Millisecond)}, 20*time.Millisecond)

	var buf bytes.Buffer
	if err := RenderJSON(&buf, r); err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var doc struct {
		Strategy  string    `json:"strategy"`
		Success   bool      `json:"success"`
		ElapsedMS int64     `json:"elapsed_ms"`
		Summary   Summary   `json:"summary"`
		Outcomes  []Outcome `json:"outcomes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if doc.Strategy != "concurrent" || !doc.Success || doc.ElapsedMS != 20 || doc.Summary.Total != 1 {
		t.Errorf("decoded report = %+v", doc)
	}
	if len(doc.Outcomes) != 1 || doc.Outcomes[0].ID != "a" {
		t.Errorf("outcomes = %+v", doc.Outcomes)
	}
}

func TestRenderJSON_EmptyOutcomesIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderJSON(&buf, Aggregate("sequential", nil, 0)); err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"outcomes": []`) {
		t.Errorf("RenderJSON() = %s, want empty outcomes array", buf.String())
	}
}

func TestRenderHuman(t *testing.T) {
	r := Aggregate("concurrent", []Outcome{
		func() Outcome {
			o := Failed("A", errors.New("exit status 1")).WithExitCode(1)
			o.Stderr = "A broke\n"
			return o
		}(),
		func() Outcome {
			o := Succeeded("B", 5*time.Millisecond)
			o.Stdout = "B chatter\n"
			return o
		}(),
		Skipped("C", ReasonDependency, "A"),
		Skipped("D", ReasonDependency, "C"),
	}, time.Second)

	var buf bytes.Buffer
	if err := RenderHuman(&buf, r, false); err != nil {
		t.Fatalf("RenderHuman() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"FAIL", "PASS", "SKIP",
		"exit 1",
		"A broke",
		"skipped: A did not succeed",
		"4 hooks: 1 passed, 1 failed, 2 skipped",
		"(concurrent)",
		"Result: FAILURE",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderHuman() output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "B chatter") {
		t.Error("output of a passing hook should be hidden without verbose")
	}

	buf.Reset()
	if err := RenderHuman(&buf, r, true); err != nil {
		t.Fatalf("RenderHuman(verbose) error = %v", err)
	}
	if !strings.Contains(buf.String(), "B chatter") {
		t.Error("verbose output should include passing hook output")
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "xml", Aggregate("sequential", nil, 0), false); err == nil {
		t.Error("Render(xml) error = nil, want error")
	}
	if err := Render(&buf, FormatHuman, Aggregate("sequential", nil, 0), false); err != nil {
		t.Errorf("Render(human) error = %v", err)
	}
	if !strings.Contains(buf.String(), "Result: SUCCESS") {
		t.Errorf("empty run should render SUCCESS, got:\n%s", buf.String())
	}
}

func testPlan(t *testing.T, hooks []hook.Hook) *dag.Plan {
	t.Helper()
	g, err := dag.Build(hooks)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	plan, err := dag.Schedule(g)
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	return plan
}

func TestRenderPlan(t *testing.T) {
	hooks := []hook.Hook{
		{ID: "fmt", Name: "Format"},
		{ID: "build", DependsOn: []string{"fmt"}},
		{ID: "test", DependsOn: []string{"build"}},
	}
	plan := testPlan(t, hooks)

	var buf bytes.Buffer
	if err := RenderPlan(&buf, plan, hooks); err != nil {
		t.Fatalf("RenderPlan() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Execution plan: 3 hooks in 3 levels",
		"Level 0", "Level 2",
		"build  <- fmt",
		"Dependency graph:",
		"├─ ● Format",
		"└─ ● test",
		"└──▶  Format",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderPlan() output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPlanJSON(t *testing.T) {
	hooks := []hook.Hook{
		{ID: "A"}, {ID: "B"},
		{ID: "C", DependsOn: []string{"B", "A"}},
	}
	plan := testPlan(t, hooks)

	var buf bytes.Buffer
	if err := RenderPlanJSON(&buf, plan, hooks); err != nil {
		t.Fatalf("RenderPlanJSON() error = %v", err)
	}

	var doc struct {
		Total  int             `json:"total"`
		Levels []planLevelJSON `json:"levels"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc.Total != 3 || len(doc.Levels) != 2 {
		t.Fatalf("decoded plan = %+v", doc)
	}
	if got := doc.Levels[1].Hooks[0].DependsOn; !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("C depends_on = %v, want [A B]", got)
	}
	if doc.Levels[0].Hooks[0].DependsOn == nil {
		t.Error("depends_on should encode as an empty array")
	}
}
