package report

import (
	"encoding/json"
	"sort"
	"time"
)

// Summary counts outcomes by kind.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// Report is the result of one run: every outcome sorted by id plus the
// overall verdict.
type Report struct {
	Strategy string
	Success  bool
	Summary  Summary
	Elapsed  time.Duration
	Outcomes []Outcome
}

// Aggregate folds outcomes into a report. The input is not modified.
// The verdict is a success only if every outcome succeeded; an empty run
// is a success.
func Aggregate(strategy string, outcomes []Outcome, elapsed time.Duration) *Report {
	sorted := make([]Outcome, len(outcomes))
	copy(sorted, outcomes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	r := &Report{
		Strategy: strategy,
		Success:  true,
		Elapsed:  elapsed,
		Outcomes: sorted,
	}
	for _, o := range sorted {
		r.Summary.Total++
		switch o.Kind {
		case KindSucceeded:
			r.Summary.Succeeded++
		case KindFailed:
			r.Summary.Failed++
			r.Success = false
		default:
			r.Summary.Skipped++
			r.Success = false
		}
	}
	return r
}

// Outcome returns the outcome recorded for id.
func (r *Report) Outcome(id string) (Outcome, bool) {
	i := sort.Search(len(r.Outcomes), func(i int) bool {
		return r.Outcomes[i].ID >= id
	})
	if i < len(r.Outcomes) && r.Outcomes[i].ID == id {
		return r.Outcomes[i], true
	}
	return Outcome{}, false
}

// Kinds maps each hook id to its outcome kind.
func (r *Report) Kinds() map[string]Kind {
	kinds := make(map[string]Kind, len(r.Outcomes))
	for _, o := range r.Outcomes {
		kinds[o.ID] = o.Kind
	}
	return kinds
}

// NonSuccess returns the failed and skipped outcomes in id order.
func (r *Report) NonSuccess() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Success() {
			out = append(out, o)
		}
	}
	return out
}

type reportJSON struct {
	Strategy  string    `json:"strategy"`
	Success   bool      `json:"success"`
	ElapsedMS int64     `json:"elapsed_ms"`
	Summary   Summary   `json:"summary"`
	Outcomes  []Outcome `json:"outcomes"`
}

// MarshalJSON encodes the report with elapsed time in milliseconds.
func (r *Report) MarshalJSON() ([]byte, error) {
	outcomes := r.Outcomes
	if outcomes == nil {
		outcomes = []Outcome{}
	}
	return json.Marshal(reportJSON{
		Strategy:  r.Strategy,
		Success:   r.Success,
		ElapsedMS: r.Elapsed.Milliseconds(),
		Summary:   r.Summary,
		Outcomes:  outcomes,
	})
}
