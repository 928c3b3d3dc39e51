package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Iron-Ham/hookrun/internal/config"
	"github.com/Iron-Ham/hookrun/internal/dag"
	"github.com/Iron-Ham/hookrun/internal/errors"
	"github.com/Iron-Ham/hookrun/internal/git"
	"github.com/Iron-Ham/hookrun/internal/hook"
	"github.com/Iron-Ham/hookrun/internal/hookconfig"
	"github.com/Iron-Ham/hookrun/internal/logging"
)

// project is a loaded, validated and scheduled hook configuration.
type project struct {
	root  string
	hooks []hook.Hook
	plan  *dag.Plan
}

// loadProject reads the hook configuration and schedules it. When only is
// non-empty the plan is restricted to those hooks and their dependencies.
// Structural problems are returned here, before anything runs.
func loadProject(cfg *config.Config, only []string) (*project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := git.FindRoot(cwd)
	if err != nil {
		// Outside a repository hooks can still run on explicit files.
		root = cwd
	}

	path := cfg.Run.HookConfig
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	file, err := hookconfig.Load(path)
	if err != nil {
		return nil, err
	}

	g, err := dag.Build(file.Hooks())
	if err != nil {
		return nil, graphError(err, path)
	}
	if len(only) > 0 {
		if g, err = g.Subgraph(only); err != nil {
			return nil, err
		}
	}
	plan, err := dag.Schedule(g)
	if err != nil {
		return nil, graphError(err, path)
	}

	return &project{root: root, hooks: g.Nodes(), plan: plan}, nil
}

func graphError(err error, path string) error {
	if errors.IsStructural(err) {
		return errors.Wrapf(err, "invalid hook graph in %s", path)
	}
	return err
}

// candidateFiles returns the files hooks are filtered against, relative to
// the project root: explicit args, all tracked files, or the staged files.
func (p *project) candidateFiles(ctx context.Context, args []string, allFiles bool) ([]string, error) {
	if len(args) > 0 {
		files := make([]string, 0, len(args))
		for _, arg := range args {
			abs, err := filepath.Abs(arg)
			if err != nil {
				return nil, err
			}
			rel, err := filepath.Rel(p.root, abs)
			if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				return nil, fmt.Errorf("%w: file %s is outside %s", errors.ErrInvalidInput, arg, p.root)
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return files, nil
	}
	if allFiles {
		return git.TrackedFiles(ctx, p.root)
	}
	return git.StagedFiles(ctx, p.root)
}

// newLogger creates the run logger. Logging is off unless enabled in the
// settings.
func newLogger(cfg *config.Config, root string) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(root), cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	return logger.WithRun(strconv.FormatInt(time.Now().UnixNano(), 36)), nil
}
