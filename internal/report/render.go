package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/hookrun/internal/dag"
	"github.com/Iron-Ham/hookrun/internal/hook"
	"github.com/Iron-Ham/hookrun/internal/tui/styles"
	"github.com/Iron-Ham/hookrun/internal/util"
)

// Output formats understood by the renderers.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
)

// Render writes r in the named format.
func Render(w io.Writer, format string, r *Report, verbose bool) error {
	switch format {
	case FormatJSON:
		return RenderJSON(w, r)
	case FormatHuman, "":
		return RenderHuman(w, r, verbose)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderHuman writes one status line per hook followed by a summary.
// Captured output is shown for hooks that did not succeed, and for every
// hook when verbose is set.
func RenderHuman(w io.Writer, r *Report, verbose bool) error {
	var b strings.Builder

	width := 0
	for _, o := range r.Outcomes {
		width = max(width, len(o.ID))
	}

	for _, o := range r.Outcomes {
		kind := o.Kind.String()
		fmt.Fprintf(&b, "%s %-*s  %s", styles.Badge(kind), width, o.ID, styles.Muted.Render(detail(o)))
		b.WriteString("\n")

		if o.Success() && !verbose {
			continue
		}
		for _, stream := range []string{o.Stdout, o.Stderr, o.Error} {
			if text := util.Indent(stream, "    "); text != "" {
				b.WriteString(styles.OutputBlock.Render(text))
				b.WriteString("\n")
			}
		}
	}

	s := r.Summary
	line := fmt.Sprintf("%d hooks: %d passed, %d failed, %d skipped in %s",
		s.Total, s.Succeeded, s.Failed, s.Skipped, util.FormatDuration(r.Elapsed))
	if r.Strategy != "" {
		line += fmt.Sprintf(" (%s)", r.Strategy)
	}
	b.WriteString(styles.Summary.Render(line))
	b.WriteString("\n")

	if r.Success {
		b.WriteString(styles.Secondary.Bold(true).Render("Result: SUCCESS"))
	} else {
		b.WriteString(styles.Error.Bold(true).Render("Result: FAILURE"))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func detail(o Outcome) string {
	switch o.Kind {
	case KindSkipped:
		switch o.SkipReason {
		case ReasonDependency:
			return fmt.Sprintf("skipped: %s did not succeed", o.SkippedBy)
		case "":
			return "skipped"
		default:
			return "skipped: " + o.SkipReason
		}
	case KindFailed:
		if o.ExitCode != nil {
			return fmt.Sprintf("%s  exit %d", util.FormatDuration(o.Duration), *o.ExitCode)
		}
		return util.FormatDuration(o.Duration)
	default:
		return util.FormatDuration(o.Duration)
	}
}

// RenderJSON writes r as an indented JSON document.
func RenderJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// RenderPlan writes the execution levels of plan followed by the dependency
// tree of hooks in declaration order.
func RenderPlan(w io.Writer, plan *dag.Plan, hooks []hook.Hook) error {
	var b strings.Builder
	idx := hook.Index(hooks)
	name := func(id string) string {
		if h, ok := idx[id]; ok {
			return h.DisplayName()
		}
		return id
	}

	fmt.Fprintf(&b, "%s\n\n", styles.Title.Render(
		fmt.Sprintf("Execution plan: %d hooks in %d levels", plan.Len(), len(plan.Levels))))

	for _, lvl := range plan.Levels {
		b.WriteString(styles.LevelHeader.Render(fmt.Sprintf("Level %d", lvl.Index)))
		b.WriteString("\n")
		for _, id := range lvl.IDs {
			fmt.Fprintf(&b, "  %s %s", styles.Secondary.Render("●"), id)
			if deps := plan.Dependencies(id); len(deps) > 0 {
				b.WriteString(styles.Muted.Render("  <- " + strings.Join(deps, ", ")))
			}
			b.WriteString("\n")
		}
	}

	if len(hooks) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.LevelHeader.Render("Dependency graph:"))
		b.WriteString("\n")
	}
	for i, h := range hooks {
		last := i == len(hooks)-1
		branch, rail := "├─", "│  "
		if last {
			branch, rail = "└─", "   "
		}
		fmt.Fprintf(&b, "%s %s %s\n", styles.Primary.Render(branch),
			styles.Secondary.Render("●"), h.DisplayName())
		for j, dep := range h.DependsOn {
			conn := "├──▶"
			if j == len(h.DependsOn)-1 {
				conn = "└──▶"
			}
			fmt.Fprintf(&b, "%s  %s\n", styles.Primary.Render(rail+conn), styles.Warning.Render(name(dep)))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

type planHookJSON struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	DependsOn []string `json:"depends_on"`
}

type planLevelJSON struct {
	Index int            `json:"index"`
	Hooks []planHookJSON `json:"hooks"`
}

// RenderPlanJSON writes the plan as an indented JSON document.
func RenderPlanJSON(w io.Writer, plan *dag.Plan, hooks []hook.Hook) error {
	idx := hook.Index(hooks)
	levels := make([]planLevelJSON, 0, len(plan.Levels))
	for _, lvl := range plan.Levels {
		pl := planLevelJSON{Index: lvl.Index, Hooks: make([]planHookJSON, 0, len(lvl.IDs))}
		for _, id := range lvl.IDs {
			deps := plan.Dependencies(id)
			if deps == nil {
				deps = []string{}
			}
			name := id
			if h, ok := idx[id]; ok {
				name = h.DisplayName()
			}
			pl.Hooks = append(pl.Hooks, planHookJSON{ID: id, Name: name, DependsOn: deps})
		}
		levels = append(levels, pl)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"total":  plan.Len(),
		"levels": levels,
	})
}
