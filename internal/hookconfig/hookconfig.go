// Package hookconfig reads hook definitions from a pre-commit style YAML file.
//
// The file layout is:
//
//	repos:
//	  - repo: local
//	    hooks:
//	      - id: fmt
//	        entry: gofmt -l
//	        files: \.go$
//	      - id: lint
//	        entry: golangci-lint run
//	        depends_on: [fmt]
//
// Only syntactic checks happen here. Duplicate ids, unknown dependencies and
// cycles are reported by the dag package when the graph is built.
package hookconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/hookrun/internal/errors"
	"github.com/Iron-Ham/hookrun/internal/hook"
	"github.com/Iron-Ham/hookrun/internal/runner"
)

// DefaultFile is the hook configuration file looked up in the repository root.
const DefaultFile = ".pre-commit-config.yaml"

// File is a decoded hook configuration file.
type File struct {
	Repos []Repo `yaml:"repos"`
}

// Repo groups hooks under a source. The source is informational; hooks are
// always run from the local checkout.
type Repo struct {
	Repo  string      `yaml:"repo"`
	Hooks []hook.Hook `yaml:"hooks"`
}

// Hooks returns every hook in file order.
func (f *File) Hooks() []hook.Hook {
	var hooks []hook.Hook
	for _, r := range f.Repos {
		hooks = append(hooks, r.Hooks...)
	}
	return hooks
}

// Load reads and validates the configuration at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("no hook configuration", errors.ErrConfigNotFound).WithPath(path)
		}
		return nil, errors.NewConfigError("cannot read hook configuration", err).WithPath(path)
	}

	f, err := Parse(data)
	if err != nil {
		var cfgErr *errors.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, cfgErr.WithPath(path)
		}
		return nil, err
	}
	return f, nil
}

// Parse decodes and validates configuration data.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("cannot parse yaml: %v", err), errors.ErrConfigInvalid)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	for i, r := range f.Repos {
		for j, h := range r.Hooks {
			field := fmt.Sprintf("repos[%d].hooks[%d]", i, j)
			if h.ID == "" {
				return invalid("hook has no id", field+".id")
			}
			if h.Entry == "" {
				return invalid(fmt.Sprintf("hook %q has no entry", h.ID), field+".entry")
			}
			for k, dep := range h.DependsOn {
				if dep == "" {
					return invalid(fmt.Sprintf("hook %q has an empty dependency", h.ID), fmt.Sprintf("%s.depends_on[%d]", field, k))
				}
			}
			if _, err := runner.NewFilter(h); err != nil {
				return invalid(fmt.Sprintf("hook %q: %v", h.ID, err), field)
			}
		}
	}
	return nil
}

func invalid(message, field string) *errors.ConfigError {
	return errors.NewConfigError(message, errors.ErrConfigInvalid).WithField(field)
}
