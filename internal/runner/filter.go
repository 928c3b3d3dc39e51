package runner

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/hookrun/internal/hook"
)

// Filter selects the files a hook receives.
//
// A path is kept when it matches Files (if set), does not match Exclude, and
// matches at least one glob (if any are set). Globs treat "/" as a
// separator, so "*" stays within a directory and "**" crosses them.
type Filter struct {
	files   *regexp.Regexp
	exclude *regexp.Regexp
	globs   []glob.Glob
}

// NewFilter compiles the file selection of h.
func NewFilter(h hook.Hook) (*Filter, error) {
	f := &Filter{}
	var err error
	if h.Files != "" {
		if f.files, err = regexp.Compile(h.Files); err != nil {
			return nil, fmt.Errorf("invalid files pattern %q: %w", h.Files, err)
		}
	}
	if h.Exclude != "" {
		if f.exclude, err = regexp.Compile(h.Exclude); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", h.Exclude, err)
		}
	}
	for _, pattern := range h.Glob {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// Match reports whether path passes the filter.
func (f *Filter) Match(path string) bool {
	path = filepath.ToSlash(path)
	if f.files != nil && !f.files.MatchString(path) {
		return false
	}
	if f.exclude != nil && f.exclude.MatchString(path) {
		return false
	}
	if len(f.globs) == 0 {
		return true
	}
	for _, g := range f.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Apply returns the paths that pass the filter, in input order.
func (f *Filter) Apply(paths []string) []string {
	var out []string
	for _, p := range paths {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
