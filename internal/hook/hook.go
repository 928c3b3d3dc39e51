// Package hook defines the descriptor for a single schedulable hook.
//
// A Hook is an immutable value. The scheduler only reads its identity and
// its declared dependencies; every other field is payload that is handed
// through untouched to whatever runs the hook.
package hook

import "sort"

// Hook describes one schedulable unit of work.
type Hook struct {
	// ID uniquely identifies the hook within a run.
	ID string `yaml:"id" json:"id"`

	// Name is a human readable label. Falls back to ID when empty.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Entry is the command line to execute.
	Entry string `yaml:"entry" json:"entry"`

	// Args are appended to the split entry.
	Args []string `yaml:"args,omitempty" json:"args,omitempty"`

	// Language is carried as metadata only.
	Language string `yaml:"language,omitempty" json:"language,omitempty"`

	// Files is a regular expression a path must match to be passed to the hook.
	Files string `yaml:"files,omitempty" json:"files,omitempty"`

	// Exclude is a regular expression; matching paths are never passed.
	Exclude string `yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// Glob lists glob patterns; when set a path must match at least one.
	Glob []string `yaml:"glob,omitempty" json:"glob,omitempty"`

	// PassFilenames appends the filtered file list to the command line.
	PassFilenames bool `yaml:"pass_filenames,omitempty" json:"pass_filenames,omitempty"`

	// WorkingDir is relative to the repository root.
	WorkingDir string `yaml:"working_dir,omitempty" json:"working_dir,omitempty"`

	// Env holds extra environment variables for the hook process.
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty"`

	// DependsOn lists the ids of hooks that must succeed before this one runs.
	DependsOn []string `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`
}

// TaskID returns the hook id.
func (h Hook) TaskID() string { return h.ID }

// TaskDeps returns the declared dependency ids.
func (h Hook) TaskDeps() []string { return h.DependsOn }

// DisplayName returns Name, or ID when no name was given.
func (h Hook) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.ID
}

// EnvList returns the hook environment as sorted KEY=VALUE pairs.
func (h Hook) EnvList() []string {
	if len(h.Env) == 0 {
		return nil
	}
	out := make([]string, 0, len(h.Env))
	for k, v := range h.Env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Index maps hook ids to hooks. Later duplicates do not overwrite earlier ones.
func Index(hooks []Hook) map[string]Hook {
	idx := make(map[string]Hook, len(hooks))
	for _, h := range hooks {
		if _, ok := idx[h.ID]; !ok {
			idx[h.ID] = h
		}
	}
	return idx
}
